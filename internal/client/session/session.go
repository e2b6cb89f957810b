// Package session owns the authenticated/unauthenticated state of the
// client, derived from the credential persisted in the local store.
//
// The manager is the only writer of the persisted credential; the transport
// layer reads it through the client.CredentialSource interface on every
// call. State transitions emit navigation side effects and notifications,
// and registered listeners are told about every change.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avetrov/userdeck/internal/client/notify"
	"github.com/avetrov/userdeck/internal/client/repositories/credentials"
	"github.com/avetrov/userdeck/internal/client/router"
	"github.com/avetrov/userdeck/internal/dbx"
	"github.com/avetrov/userdeck/internal/logging"
)

// ErrEmptyCredential is returned by Login when the credential is blank.
var ErrEmptyCredential = errors.New("empty credential")

// Navigator receives navigation side effects. The CLI implements it by
// switching the active view.
type Navigator interface {
	Navigate(path string)
}

// Manager resolves and owns the session state.
type Manager struct {
	db       *sql.DB
	nav      Navigator
	notifier notify.Notifier
	log      logging.Logger

	mu            sync.Mutex
	authenticated bool
	listeners     []func(authenticated bool)

	initOnce sync.Once
}

func NewManager(db *sql.DB, nav Navigator, notifier notify.Notifier, log logging.Logger) *Manager {
	return &Manager{
		db:       db,
		nav:      nav,
		notifier: notifier,
		log:      log.With("component", "session"),
	}
}

func (m *Manager) repo(db dbx.DBTX) credentials.Repository {
	return credentials.NewSQLiteRepository(db)
}

// Credential implements client.CredentialSource: it reads the persisted
// token on every call, so the transport always sees the current state.
func (m *Manager) Credential(ctx context.Context) (string, error) {
	return m.repo(m.db).Get(ctx, credentials.KeyAuthToken)
}

// Initialize resolves the starting state from the persisted credential.
// It runs its body exactly once per process; later calls are no-ops.
// Without a stored credential the session starts unauthenticated and
// navigation is redirected to the login view.
func (m *Manager) Initialize(ctx context.Context) error {
	var err error
	m.initOnce.Do(func() {
		var token string
		token, err = m.Credential(ctx)
		if err != nil {
			err = fmt.Errorf("read stored credential: %w", err)
			return
		}

		if token != "" {
			m.setAuthenticated(true)
			m.log.Info(ctx, "session restored from stored credential")
			return
		}

		m.setAuthenticated(false)
		m.nav.Navigate(router.PathLogin)
	})
	return err
}

// Login persists the credential obtained from the gateway and flips the
// session to authenticated. The caller must have acquired a valid token
// beforehand; Login itself performs no remote call.
func (m *Manager) Login(ctx context.Context, email string, token string) error {
	if token == "" {
		return ErrEmptyCredential
	}

	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := m.repo(tx)
		if err := repo.Set(ctx, credentials.KeyAuthToken, token); err != nil {
			return err
		}
		if err := repo.Set(ctx, credentials.KeyAccountEmail, email); err != nil {
			return err
		}
		return repo.Set(ctx, credentials.KeyLoggedInAt, time.Now().UTC().Format(time.RFC3339))
	})
	if err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	m.setAuthenticated(true)
	m.nav.Navigate(router.PathUsers)
	m.notifier.Success("Login successful!")
	m.log.Info(ctx, "logged in", "account", email)
	return nil
}

// Logout clears the persisted credential and flips the session to
// unauthenticated. Safe to call repeatedly.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.repo(m.db).Clear(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}

	m.setAuthenticated(false)
	m.nav.Navigate(router.PathLogin)
	m.notifier.Info("You have been logged out")
	m.log.Info(ctx, "logged out")
	return nil
}

// IsAuthenticated reports the current session state.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

// AccountEmail returns the stored account email, "" when logged out.
func (m *Manager) AccountEmail(ctx context.Context) (string, error) {
	return m.repo(m.db).Get(ctx, credentials.KeyAccountEmail)
}

// Subscribe registers a listener invoked on every state change. Listeners
// are called synchronously with the new state.
func (m *Manager) Subscribe(fn func(authenticated bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) setAuthenticated(v bool) {
	m.mu.Lock()
	changed := m.authenticated != v
	m.authenticated = v
	listeners := make([]func(bool), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range listeners {
		fn(v)
	}
}
