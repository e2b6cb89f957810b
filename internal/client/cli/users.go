package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/avetrov/userdeck/internal/client/models"
	"github.com/avetrov/userdeck/internal/client/router"
	"github.com/avetrov/userdeck/internal/client/workflow"
)

// requireAuth gates protected commands the way protected routes are gated:
// when the session is unauthenticated the user is sent to the login view.
func (a *App) requireAuth() bool {
	if a.session.IsAuthenticated() {
		return true
	}
	a.Navigate(router.PathLogin)
	return false
}

// List renders the filtered records of the current page.
func (a *App) List(_ context.Context) error {
	if !a.requireAuth() {
		return nil
	}
	a.renderList()
	return nil
}

// Search sets the local search query and re-renders. An empty query clears
// the filter. No network call is involved.
func (a *App) Search(_ context.Context, query string) error {
	if !a.requireAuth() {
		return nil
	}
	a.controller.SetSearchQuery(query)
	a.renderList()
	return nil
}

// NextPage advances to the following page.
func (a *App) NextPage(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}
	if err := a.controller.NextPage(ctx); err != nil {
		return err
	}
	a.renderList()
	return nil
}

// PrevPage goes back one page.
func (a *App) PrevPage(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}
	if err := a.controller.PrevPage(ctx); err != nil {
		return err
	}
	a.renderList()
	return nil
}

// EditUser starts the edit dialog for a record on the current page.
func (a *App) EditUser(ctx context.Context, arg string) error {
	if !a.requireAuth() {
		return nil
	}

	id, err := parseID(arg)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid id: %s\n", arg)
		return err
	}

	u, ok := a.controller.Get(id)
	if !ok {
		a.notifier.Error(fmt.Sprintf("User %d is not on the current page.", id))
		return nil
	}
	return a.editUser(ctx, u)
}

// DeleteUser runs the delete-confirm flow for a record.
func (a *App) DeleteUser(ctx context.Context, arg string) error {
	if !a.requireAuth() {
		return nil
	}

	id, err := parseID(arg)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid id: %s\n", arg)
		return err
	}

	if err := a.del.Request(id); err != nil {
		if errors.Is(err, workflow.ErrBusy) {
			a.notifier.Error("Another delete is already in progress.")
			return nil
		}
		return err
	}

	yes, err := Confirm(a.reader, fmt.Sprintf("Delete user %d?", id), a.out)
	if err != nil || !yes {
		_ = a.del.Cancel()
		return err
	}

	if err := a.del.Confirm(ctx); err != nil {
		// Workflow already surfaced the notification; reset so the user can
		// try again later.
		_ = a.del.Cancel()
		return err
	}

	a.renderList()
	return nil
}

// openEditPage is the full-page edit entry point reached through
// /users/:id/edit: the record is fetched from the backend rather than taken
// from the page cache. A fetch failure navigates back to the listing.
func (a *App) openEditPage(ctx context.Context, arg string) {
	id, err := parseID(arg)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid id: %s\n", arg)
		return
	}

	u, err := a.gateway.GetOne(ctx, id)
	if err != nil {
		a.log.Warn(ctx, "fetch user failed", "id", id, "error", err)
		a.notifier.Error("Failed to load user information.")
		a.Navigate(router.PathUsers)
		return
	}

	_ = a.editUser(ctx, *u)
}

// editUser drives the edit workflow interactively: stage the record, prompt
// for each mutable field (empty input keeps the current value), then commit.
// After a failed commit the user may retry or discard the buffer.
func (a *App) editUser(ctx context.Context, u models.User) error {
	if err := a.edit.Begin(u); err != nil {
		if errors.Is(err, workflow.ErrBusy) {
			a.notifier.Error("Another edit is already in progress.")
			return nil
		}
		return err
	}

	fields := []struct {
		name    string
		label   string
		current string
	}{
		{workflow.FieldFirstName, "First name", u.FirstName},
		{workflow.FieldLastName, "Last name", u.LastName},
		{workflow.FieldEmail, "Email", u.Email},
	}

	for _, f := range fields {
		value, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", f.label, f.current), a.out)
		if err != nil {
			_ = a.edit.Cancel()
			return err
		}
		if value == "" {
			continue
		}
		if err := a.edit.UpdateField(f.name, value); err != nil {
			_ = a.edit.Cancel()
			return err
		}
	}

	for {
		err := a.edit.Commit(ctx)
		if err == nil {
			a.renderList()
			return nil
		}

		retry, perr := Confirm(a.reader, "Saving failed. Retry?", a.out)
		if perr != nil || !retry {
			_ = a.edit.Cancel()
			return err
		}
	}
}

func (a *App) renderList() {
	items := a.controller.Filtered()
	query := a.controller.SearchQuery()

	if len(items) == 0 {
		if query != "" {
			fmt.Fprintf(a.out, "No users found matching %q.\n", query)
		} else {
			fmt.Fprintln(a.out, "No users found.")
		}
	}

	for _, u := range items {
		fmt.Fprintf(a.out, "%4d  %-24s  %s\n", u.ID, u.FullName(), u.Email)
	}

	fmt.Fprintf(a.out, "Page %d of %d\n", a.controller.CurrentPage(), a.controller.TotalPages())
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
