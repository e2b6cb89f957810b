package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/avetrov/userdeck/internal/client/client"
	"github.com/avetrov/userdeck/internal/client/models"
	"github.com/avetrov/userdeck/internal/client/notify"
	"github.com/avetrov/userdeck/internal/logging"
)

// EditStage is the current step of the edit workflow.
type EditStage string

const (
	EditIdle    EditStage = "idle"
	EditEditing EditStage = "editing"
	EditSaving  EditStage = "saving"
	EditFailed  EditStage = "failed"
)

// Edit sequences the single active record-edit flow: stage a copy, mutate
// the staged buffer, commit through the gateway, reconcile into the cache.
type Edit struct {
	client   client.Client
	cache    Cache
	notifier notify.Notifier
	log      logging.Logger

	mu     sync.Mutex
	stage  EditStage
	buffer models.User
}

func NewEdit(c client.Client, cache Cache, notifier notify.Notifier, log logging.Logger) *Edit {
	return &Edit{
		client:   c,
		cache:    cache,
		notifier: notifier,
		log:      log.With("workflow", "edit"),
		stage:    EditIdle,
	}
}

func (e *Edit) Stage() EditStage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stage
}

// Buffer returns a copy of the staged record. The second return is false
// when no edit is active.
func (e *Edit) Buffer() (models.User, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stage == EditIdle {
		return models.User{}, false
	}
	return e.buffer, true
}

// Begin stages a copy of u for editing. Only valid while idle.
func (e *Edit) Begin(u models.User) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stage != EditIdle {
		return ErrBusy
	}
	e.buffer = u
	e.stage = EditEditing
	return nil
}

// UpdateField mutates one mutable field of the staged buffer. Valid while
// editing, and after a failed commit (the buffer stays editable).
func (e *Edit) UpdateField(name string, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stage != EditEditing && e.stage != EditFailed {
		return ErrInvalidStage
	}

	switch name {
	case FieldFirstName:
		e.buffer.FirstName = value
	case FieldLastName:
		e.buffer.LastName = value
	case FieldEmail:
		e.buffer.Email = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return nil
}

// Commit sends the staged mutable fields through the gateway. On success the
// cache is patched in place, a success notification is emitted, and the
// workflow returns to idle. On failure the workflow moves to the failed
// stage with the buffer retained, so the caller can retry or cancel.
//
// Identity and avatar are never sent.
func (e *Edit) Commit(ctx context.Context) error {
	e.mu.Lock()
	if e.stage != EditEditing && e.stage != EditFailed {
		e.mu.Unlock()
		return ErrInvalidStage
	}
	e.stage = EditSaving
	staged := e.buffer
	e.mu.Unlock()

	patch := models.UserPatch{
		FirstName: &staged.FirstName,
		LastName:  &staged.LastName,
		Email:     &staged.Email,
	}

	_, err := e.client.Update(ctx, staged.ID, patch)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		e.stage = EditFailed
		e.log.Error(ctx, "update failed", "id", staged.ID, "error", err)
		e.notifier.Error("Failed to update user. Please try again.")
		return fmt.Errorf("update user %d: %w", staged.ID, err)
	}

	if err := e.cache.ApplyUpdate(staged.ID, patch); err != nil {
		// The record left the page while the save was in flight. The remote
		// update still succeeded, so finish the workflow normally.
		e.log.Warn(ctx, "updated record not in cache", "id", staged.ID, "error", err)
	}

	e.stage = EditIdle
	e.buffer = models.User{}
	e.notifier.Success("User updated successfully!")
	return nil
}

// Cancel discards the staged buffer. Valid while editing or failed.
func (e *Edit) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stage != EditEditing && e.stage != EditFailed {
		return ErrInvalidStage
	}
	e.stage = EditIdle
	e.buffer = models.User{}
	return nil
}
