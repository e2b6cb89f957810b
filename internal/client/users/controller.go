// Package users owns the client-side cache of the paginated user
// collection: the current page of records, the total page count, the
// loading flag, the search query, and the filtered view derived from them.
//
// Successful mutations are reconciled in place through ApplyUpdate and
// ApplyRemoval instead of refetching the page, so unrelated local state
// (the search query, the page position) survives every edit and delete.
package users

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/avetrov/userdeck/internal/client/client"
	"github.com/avetrov/userdeck/internal/client/models"
	"github.com/avetrov/userdeck/internal/client/notify"
	"github.com/avetrov/userdeck/internal/logging"
)

// ErrUnknownUser is returned by ApplyUpdate when the target record is not
// in the current page.
var ErrUnknownUser = errors.New("unknown user")

// Controller is the paginated resource controller.
type Controller struct {
	client   client.Client
	notifier notify.Notifier
	log      logging.Logger

	mu          sync.Mutex
	items       []models.User
	currentPage int
	totalPages  int
	query       string
	loading     bool
	loadSeq     uint64
}

func NewController(c client.Client, notifier notify.Notifier, log logging.Logger) *Controller {
	return &Controller{
		client:      c,
		notifier:    notifier,
		log:         log.With("component", "users"),
		currentPage: 1,
		totalPages:  1,
	}
}

// LoadPage fetches page n and replaces the cached items and total page
// count on success. On failure the previous page state is left untouched
// and an error notification is emitted.
//
// Load responses are sequence-stamped: when another LoadPage has started
// after this one, the late response is discarded, so a slow page can never
// overwrite a newer one.
func (c *Controller) LoadPage(ctx context.Context, n int) error {
	if n < 1 {
		return fmt.Errorf("page must be >= 1, got %d", n)
	}

	c.mu.Lock()
	c.loading = true
	c.loadSeq++
	seq := c.loadSeq
	c.mu.Unlock()

	page, err := c.client.ListPage(ctx, n)

	c.mu.Lock()
	if seq != c.loadSeq {
		c.mu.Unlock()
		c.log.Debug(ctx, "stale page response discarded", "page", n)
		return nil
	}
	c.loading = false

	if err != nil {
		c.mu.Unlock()
		c.log.Error(ctx, "page load failed", "page", n, "error", err)
		c.notifier.Error("Failed to load users. Please try again.")
		return fmt.Errorf("load page %d: %w", n, err)
	}

	c.items = page.Items
	c.totalPages = page.TotalPages
	if c.totalPages < 1 {
		c.totalPages = 1
	}
	c.currentPage = n
	c.mu.Unlock()

	c.log.Debug(ctx, "page loaded", "page", n, "items", len(page.Items), "total_pages", page.TotalPages)
	return nil
}

// NextPage loads the following page. It is a no-op at the last page or
// while a load is in flight.
func (c *Controller) NextPage(ctx context.Context) error {
	c.mu.Lock()
	if c.loading || c.currentPage >= c.totalPages {
		c.mu.Unlock()
		return nil
	}
	n := c.currentPage + 1
	c.mu.Unlock()
	return c.LoadPage(ctx, n)
}

// PrevPage loads the preceding page. It is a no-op at page 1 or while a
// load is in flight.
func (c *Controller) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	if c.loading || c.currentPage <= 1 {
		c.mu.Unlock()
		return nil
	}
	n := c.currentPage - 1
	c.mu.Unlock()
	return c.LoadPage(ctx, n)
}

// SetSearchQuery narrows the filtered view. Purely local, no network call.
func (c *Controller) SetSearchQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
}

func (c *Controller) SearchQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Filtered derives the visible records from the cached page and the search
// query. The result is recomputed on every call and never stored, so it
// cannot diverge from the cache.
func (c *Controller) Filtered() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.User, 0, len(c.items))
	for _, u := range c.items {
		if u.Matches(c.query) {
			out = append(out, u)
		}
	}
	return out
}

// Get returns the cached record with the given id.
func (c *Controller) Get(id int64) (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range c.items {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// ApplyUpdate overlays the patch onto the cached record with the given id,
// preserving its position. The record must be present.
func (c *Controller) ApplyUpdate(id int64, patch models.UserPatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			patch.ApplyTo(&c.items[i])
			return nil
		}
	}
	return fmt.Errorf("apply update for id %d: %w", id, ErrUnknownUser)
}

// ApplyRemoval drops the cached record with the given id. Calling it for an
// absent id is a no-op.
func (c *Controller) ApplyRemoval(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Controller) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage
}

func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}
