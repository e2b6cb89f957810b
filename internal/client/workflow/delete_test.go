package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avetrov/userdeck/internal/client/notify"
)

func TestDelete_ConfirmRemoves(t *testing.T) {
	g := &fakeGateway{}
	cache := &fakeCache{}
	rec := &notify.Recorder{}
	d := NewDelete(g, cache, rec, testLogger())
	ctx := context.Background()

	require.NoError(t, d.Request(7))
	assert.Equal(t, DeleteConfirming, d.Stage())

	id, ok := d.TargetID()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)

	require.NoError(t, d.Confirm(ctx))
	assert.Equal(t, DeleteIdle, d.Stage())
	assert.Equal(t, []int64{7}, g.removeIDs)
	assert.Equal(t, []int64{7}, cache.removals)
	assert.Equal(t, []string{"User deleted successfully!"}, rec.Successes)
}

func TestDelete_CancelLeavesRecord(t *testing.T) {
	g := &fakeGateway{}
	cache := &fakeCache{}
	d := NewDelete(g, cache, &notify.Recorder{}, testLogger())

	require.NoError(t, d.Request(7))
	require.NoError(t, d.Cancel())

	assert.Equal(t, DeleteIdle, d.Stage())
	assert.Empty(t, g.removeIDs, "no gateway call on cancel")
	assert.Empty(t, cache.removals)

	_, ok := d.TargetID()
	assert.False(t, ok)
}

func TestDelete_RequestWhileActiveRejected(t *testing.T) {
	d := NewDelete(&fakeGateway{}, &fakeCache{}, &notify.Recorder{}, testLogger())

	require.NoError(t, d.Request(7))
	require.ErrorIs(t, d.Request(8), ErrBusy)

	id, _ := d.TargetID()
	assert.Equal(t, int64(7), id, "pending target not overwritten")
}

func TestDelete_ConfirmOutOfOrderRejected(t *testing.T) {
	d := NewDelete(&fakeGateway{}, &fakeCache{}, &notify.Recorder{}, testLogger())
	require.ErrorIs(t, d.Confirm(context.Background()), ErrInvalidStage)
}

func TestDelete_FailureThenCancel(t *testing.T) {
	boom := errors.New("boom")
	g := &fakeGateway{removeErr: boom}
	cache := &fakeCache{}
	rec := &notify.Recorder{}
	d := NewDelete(g, cache, rec, testLogger())
	ctx := context.Background()

	require.NoError(t, d.Request(7))
	require.ErrorIs(t, d.Confirm(ctx), boom)

	assert.Equal(t, DeleteFailed, d.Stage())
	assert.Empty(t, cache.removals, "nothing applied before success")
	assert.Equal(t, []string{"Failed to delete user. Please try again."}, rec.Errors)

	require.NoError(t, d.Cancel())
	assert.Equal(t, DeleteIdle, d.Stage())

	// the flow may be started again after a failure
	require.NoError(t, d.Request(7))
	g.removeErr = nil
	require.NoError(t, d.Confirm(ctx))
	assert.Equal(t, []int64{7}, cache.removals)
}
