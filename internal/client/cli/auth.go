package cli

import (
	"context"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, exchanges them for a token through the
// gateway, and hands the token to the session manager. The session manager
// persists it and navigates to the users view.
//
// A rejected login surfaces an error notification and leaves the session
// untouched.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.gateway.Authenticate(ctx, email, password)
	if err != nil {
		a.log.Warn(ctx, "authentication failed", "account", email, "error", err)
		a.notifier.Error("Login failed. Please check your credentials.")
		return err
	}

	return a.session.Login(ctx, email, token)
}

// Logout delegates to the session manager, which clears the stored
// credential and navigates back to the login view.
func (a *App) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}
