// Package workflow models the transient per-record mutation flows (editing
// one record, confirming the deletion of one record) as explicit
// finite-state machines, independent of any presentation layer. The UI only
// reads stages and invokes transitions.
//
// Each workflow allows at most one active instance at a time: starting a
// second one while the first is not idle is rejected with ErrBusy rather
// than silently replacing the pending target. Out-of-order transitions are
// rejected with ErrInvalidStage, never queued.
//
// On success a workflow reconciles the result into the page cache through
// the Cache interface instead of triggering a refetch.
package workflow

import (
	"errors"

	"github.com/avetrov/userdeck/internal/client/models"
)

var (
	// ErrBusy rejects a second Begin/Request while a workflow is active.
	ErrBusy = errors.New("another operation is already in progress")

	// ErrInvalidStage rejects a transition invoked out of stage order.
	ErrInvalidStage = errors.New("operation not valid in current stage")

	// ErrUnknownField rejects an edit to a field that is not mutable.
	ErrUnknownField = errors.New("unknown field")
)

// Cache is the slice of the resource controller that successful mutations
// are reconciled into.
type Cache interface {
	ApplyUpdate(id int64, patch models.UserPatch) error
	ApplyRemoval(id int64)
}

// Mutable field names accepted by the edit workflow. They match the wire
// names of the update operation.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
)
