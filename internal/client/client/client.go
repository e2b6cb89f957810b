package client

import (
	"context"

	"github.com/avetrov/userdeck/internal/client/models"
)

// Client is the transport-agnostic contract to the user directory backend.
type Client interface {
	Close() error
	Authenticate(ctx context.Context, email string, password string) (string, error)
	ListPage(ctx context.Context, page int) (*models.UserPage, error)
	GetOne(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	Remove(ctx context.Context, id int64) error
}

// CredentialSource supplies the persisted bearer credential for outbound
// calls. Returning an empty credential with a nil error is a valid state:
// the request simply goes out without an Authorization header.
type CredentialSource interface {
	Credential(ctx context.Context) (string, error)
}
