package users

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avetrov/userdeck/internal/client/models"
	"github.com/avetrov/userdeck/internal/client/notify"
	"github.com/avetrov/userdeck/internal/logging"
)

// fakeClient implements client.Client for controller tests.
type fakeClient struct {
	mu        sync.Mutex
	pages     map[int]*models.UserPage
	listErr   error
	listCalls []int

	// listFn, when set, overrides the canned behavior above.
	listFn func(ctx context.Context, page int) (*models.UserPage, error)
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Authenticate(context.Context, string, string) (string, error) {
	return "", nil
}

func (f *fakeClient) ListPage(ctx context.Context, page int) (*models.UserPage, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, page)
	fn := f.listFn
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, page)
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	p, ok := f.pages[page]
	if !ok {
		return &models.UserPage{TotalPages: 1}, nil
	}
	return p, nil
}

func (f *fakeClient) GetOne(context.Context, int64) (*models.User, error) { return nil, nil }

func (f *fakeClient) Update(context.Context, int64, models.UserPatch) (*models.User, error) {
	return nil, nil
}

func (f *fakeClient) Remove(context.Context, int64) error { return nil }

func (f *fakeClient) calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.listCalls))
	copy(out, f.listCalls)
	return out
}

func sixUsers() []models.User {
	return []models.User{
		{ID: 1, FirstName: "George", LastName: "Bluth", Email: "george.bluth@reqres.in"},
		{ID: 2, FirstName: "Janet", LastName: "Weaver", Email: "janet.weaver@reqres.in"},
		{ID: 3, FirstName: "Emma", LastName: "Wong", Email: "emma.wong@reqres.in"},
		{ID: 4, FirstName: "Eve", LastName: "Holt", Email: "eve.holt@reqres.in"},
		{ID: 5, FirstName: "Charles", LastName: "Morris", Email: "charles.morris@reqres.in"},
		{ID: 6, FirstName: "Tracey", LastName: "Ramos", Email: "tracey.ramos@reqres.in"},
	}
}

func newController(t *testing.T, f *fakeClient) (*Controller, *notify.Recorder) {
	t.Helper()
	rec := &notify.Recorder{}
	log := logging.NewTextLogger(io.Discard, slog.LevelDebug)
	return NewController(f, rec, log), rec
}

func TestLoadPage_ReplacesItems(t *testing.T) {
	f := &fakeClient{pages: map[int]*models.UserPage{
		1: {Items: sixUsers(), TotalPages: 2},
	}}
	c, _ := newController(t, f)

	require.NoError(t, c.LoadPage(context.Background(), 1))

	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, 2, c.TotalPages())
	assert.Len(t, c.Filtered(), 6)
	assert.False(t, c.Loading())
}

func TestLoadPage_FailureKeepsPriorState(t *testing.T) {
	f := &fakeClient{pages: map[int]*models.UserPage{
		1: {Items: sixUsers(), TotalPages: 2},
	}}
	c, rec := newController(t, f)
	ctx := context.Background()

	require.NoError(t, c.LoadPage(ctx, 1))

	f.listErr = errors.New("boom")
	err := c.LoadPage(ctx, 2)
	require.Error(t, err)

	assert.Equal(t, 1, c.CurrentPage())
	assert.Len(t, c.Filtered(), 6)
	assert.False(t, c.Loading())
	assert.Equal(t, []string{"Failed to load users. Please try again."}, rec.Errors)
}

func TestLoadPage_RejectsBadPageNumber(t *testing.T) {
	c, _ := newController(t, &fakeClient{})
	require.Error(t, c.LoadPage(context.Background(), 0))
}

func TestPaging_Scenario(t *testing.T) {
	f := &fakeClient{pages: map[int]*models.UserPage{
		1: {Items: sixUsers(), TotalPages: 2},
		2: {Items: []models.User{{ID: 7, FirstName: "Michael", LastName: "Lawson", Email: "michael.lawson@reqres.in"}}, TotalPages: 2},
	}}
	c, _ := newController(t, f)
	ctx := context.Background()

	require.NoError(t, c.LoadPage(ctx, 1))

	// prev at the lower bound is a no-op: no gateway call
	require.NoError(t, c.PrevPage(ctx))
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, []int{1}, f.calls())

	require.NoError(t, c.NextPage(ctx))
	assert.Equal(t, 2, c.CurrentPage())
	assert.Len(t, c.Filtered(), 1)

	// next at the upper bound is a no-op
	require.NoError(t, c.NextPage(ctx))
	assert.Equal(t, 2, c.CurrentPage())
	assert.Equal(t, []int{1, 2}, f.calls())
}

func TestNextPage_NoOpWhileLoading(t *testing.T) {
	release := make(chan struct{})
	f := &fakeClient{}
	f.listFn = func(ctx context.Context, page int) (*models.UserPage, error) {
		<-release
		return &models.UserPage{Items: sixUsers(), TotalPages: 3}, nil
	}
	c, _ := newController(t, f)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.LoadPage(ctx, 1)
	}()

	require.Eventually(t, c.Loading, time.Second, time.Millisecond)
	require.NoError(t, c.NextPage(ctx))
	assert.Equal(t, []int{1}, f.calls())

	close(release)
	<-done
}

func TestLoadPage_StaleResponseDiscarded(t *testing.T) {
	slow := make(chan struct{})
	f := &fakeClient{}
	f.listFn = func(ctx context.Context, page int) (*models.UserPage, error) {
		if page == 1 {
			<-slow
			return &models.UserPage{Items: sixUsers(), TotalPages: 2}, nil
		}
		return &models.UserPage{
			Items:      []models.User{{ID: 7, FirstName: "Michael", LastName: "Lawson", Email: "michael.lawson@reqres.in"}},
			TotalPages: 2,
		}, nil
	}
	c, _ := newController(t, f)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.LoadPage(ctx, 1) // slow request
	}()

	require.Eventually(t, c.Loading, time.Second, time.Millisecond)
	require.NoError(t, c.LoadPage(ctx, 2)) // newer request wins

	close(slow)
	<-done

	assert.Equal(t, 2, c.CurrentPage())
	assert.Len(t, c.Filtered(), 1)
	assert.False(t, c.Loading())
}

func TestFiltered_DerivedFromQuery(t *testing.T) {
	f := &fakeClient{pages: map[int]*models.UserPage{
		1: {Items: sixUsers(), TotalPages: 1},
	}}
	c, _ := newController(t, f)
	require.NoError(t, c.LoadPage(context.Background(), 1))

	c.SetSearchQuery("EVE")
	got := c.Filtered()
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].ID)

	c.SetSearchQuery("w")
	got = c.Filtered()
	require.Len(t, got, 2) // Janet Weaver, Emma Wong
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	c.SetSearchQuery("zzz")
	assert.Empty(t, c.Filtered())

	c.SetSearchQuery("")
	assert.Len(t, c.Filtered(), 6)
}

func TestApplyUpdate_VisibleWithoutNetworkCall(t *testing.T) {
	f := &fakeClient{pages: map[int]*models.UserPage{
		1: {Items: sixUsers(), TotalPages: 1},
	}}
	c, _ := newController(t, f)
	require.NoError(t, c.LoadPage(context.Background(), 1))

	email := "x@y.com"
	require.NoError(t, c.ApplyUpdate(4, models.UserPatch{Email: &email}))

	got := c.Filtered()
	assert.Equal(t, "x@y.com", got[3].Email)
	assert.Equal(t, int64(4), got[3].ID, "position preserved")
	assert.Equal(t, []int{1}, f.calls(), "no refetch")
}

func TestApplyUpdate_UnknownID(t *testing.T) {
	c, _ := newController(t, &fakeClient{})
	email := "x@y.com"
	require.ErrorIs(t, c.ApplyUpdate(99, models.UserPatch{Email: &email}), ErrUnknownUser)
}

func TestApplyRemoval_RemovesExactlyOneAndIsIdempotent(t *testing.T) {
	f := &fakeClient{pages: map[int]*models.UserPage{
		1: {Items: sixUsers(), TotalPages: 1},
	}}
	c, _ := newController(t, f)
	require.NoError(t, c.LoadPage(context.Background(), 1))

	c.ApplyRemoval(3)
	assert.Len(t, c.Filtered(), 5)

	c.ApplyRemoval(3)
	assert.Len(t, c.Filtered(), 5)

	_, ok := c.Get(3)
	assert.False(t, ok)
}
