package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/avetrov/userdeck/internal/client/client"
	"github.com/avetrov/userdeck/internal/client/notify"
	"github.com/avetrov/userdeck/internal/logging"
)

// DeleteStage is the current step of the delete-confirm workflow.
type DeleteStage string

const (
	DeleteIdle       DeleteStage = "idle"
	DeleteConfirming DeleteStage = "confirming"
	DeleteDeleting   DeleteStage = "deleting"
	DeleteFailed     DeleteStage = "failed"
)

// Delete sequences the single active delete-confirm flow.
type Delete struct {
	client   client.Client
	cache    Cache
	notifier notify.Notifier
	log      logging.Logger

	mu       sync.Mutex
	stage    DeleteStage
	targetID int64
}

func NewDelete(c client.Client, cache Cache, notifier notify.Notifier, log logging.Logger) *Delete {
	return &Delete{
		client:   c,
		cache:    cache,
		notifier: notifier,
		log:      log.With("workflow", "delete"),
		stage:    DeleteIdle,
	}
}

func (d *Delete) Stage() DeleteStage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stage
}

// TargetID returns the record pending deletion; false when none is pending.
func (d *Delete) TargetID() (int64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stage == DeleteIdle {
		return 0, false
	}
	return d.targetID, true
}

// Request records the deletion target and asks for confirmation. Only valid
// while idle.
func (d *Delete) Request(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stage != DeleteIdle {
		return ErrBusy
	}
	d.targetID = id
	d.stage = DeleteConfirming
	return nil
}

// Confirm executes the pending deletion. Only valid while confirming. On
// success the record is removed from the cache, a success notification is
// emitted, and the workflow returns to idle. On failure the workflow moves
// to failed; the caller cancels and may request again.
func (d *Delete) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if d.stage != DeleteConfirming {
		d.mu.Unlock()
		return ErrInvalidStage
	}
	d.stage = DeleteDeleting
	id := d.targetID
	d.mu.Unlock()

	err := d.client.Remove(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.stage = DeleteFailed
		d.log.Error(ctx, "delete failed", "id", id, "error", err)
		d.notifier.Error("Failed to delete user. Please try again.")
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	d.cache.ApplyRemoval(id)
	d.stage = DeleteIdle
	d.targetID = 0
	d.notifier.Success("User deleted successfully!")
	return nil
}

// Cancel abandons the pending deletion without calling the gateway. Valid
// while confirming or failed.
func (d *Delete) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stage != DeleteConfirming && d.stage != DeleteFailed {
		return ErrInvalidStage
	}
	d.stage = DeleteIdle
	d.targetID = 0
	return nil
}
