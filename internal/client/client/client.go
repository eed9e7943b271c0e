package client

import (
	"context"

	"github.com/dmitrijs2005/contactdir/internal/client/models"
)

// AuthStatus is the identity endpoint payload. Older backends omit
// Authenticated and answer 401 for anonymous callers instead.
type AuthStatus struct {
	Authenticated *bool  `json:"authenticated,omitempty"`
	Username      string `json:"username"`
}

// Client is the transport contract towards the directory backend. Every
// call carries the session cookie obtained by Login or Signup.
type Client interface {
	Me(ctx context.Context) (*AuthStatus, error)
	Login(ctx context.Context, username string, password []byte) error
	Signup(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error

	ListContacts(ctx context.Context, search string) ([]models.Contact, error)
	CreateContact(ctx context.Context, form models.ContactForm) error
	UpdateContact(ctx context.Context, id models.ID, form models.ContactForm) error
	DeleteContact(ctx context.Context, id models.ID) error

	Picture(ctx context.Context, id models.ID, version models.Version) ([]byte, string, error)
	Export(ctx context.Context) ([]byte, error)
}
