package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/contactdir/internal/client/client"
	"github.com/dmitrijs2005/contactdir/internal/client/models"
	"github.com/dmitrijs2005/contactdir/internal/client/state"
	"github.com/dmitrijs2005/contactdir/internal/common"
	"github.com/dmitrijs2005/contactdir/internal/logging"
)

// AuthService changes who the client acts as. After every successful call
// the session is resolved again and the list is re-synced, since both
// depend on the identity.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (models.Session, error)
	// Signup registers a new account and is logged in by the backend.
	// Credentials are pre-checked locally; the backend stays authoritative.
	Signup(ctx context.Context, username string, password []byte) (models.Session, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client    client.Client
	store     *state.Store
	session   SessionService
	directory DirectoryService
	log       logging.Logger
}

func NewAuthService(c client.Client, store *state.Store, session SessionService, dir DirectoryService, log logging.Logger) AuthService {
	return &authService{client: c, store: store, session: session, directory: dir, log: log}
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (models.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return models.Anonymous, common.ErrEmptyField
	}

	if err := a.client.Login(ctx, username, password); err != nil {
		return models.Anonymous, fmt.Errorf("login: %w", err)
	}

	sess := a.refresh(ctx)
	if !sess.Authenticated {
		return sess, fmt.Errorf("login: %w", client.ErrUnauthorized)
	}
	a.log.Info(ctx, "logged in", "username", sess.Username)
	return sess, nil
}

func (a *authService) Signup(ctx context.Context, username string, password []byte) (models.Session, error) {
	username = strings.TrimSpace(username)
	if err := ValidateCredentials(username, password); err != nil {
		return models.Anonymous, err
	}

	if err := a.client.Signup(ctx, username, password); err != nil {
		return models.Anonymous, fmt.Errorf("signup: %w", err)
	}

	sess := a.refresh(ctx)
	a.log.Info(ctx, "signed up", "username", username, "authenticated", sess.Authenticated)
	return sess, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	a.refresh(ctx)
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) refresh(ctx context.Context) models.Session {
	sess := a.session.Resolve(ctx)
	// the list is re-rendered even if the sync fails, so controls follow
	// the new identity
	if err := a.directory.Sync(ctx, a.store.SearchTerm()); err != nil {
		a.log.Debug(ctx, "sync after identity change failed", "error", err)
	}
	return sess
}

// ValidateCredentials mirrors the backend signup rules: a username of 3 to
// 150 characters and a password of 8 to 100 characters holding at least one
// ASCII letter and one digit.
func ValidateCredentials(username string, password []byte) error {
	if n := utf8.RuneCountInString(username); n < 3 || n > 150 {
		return common.ErrInvalidUsername
	}
	if n := utf8.RuneCount(password); n < 8 || n > 100 {
		return common.ErrInvalidPassword
	}

	var letter, digit bool
	for _, b := range password {
		switch {
		case b >= '0' && b <= '9':
			digit = true
		case (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z'):
			letter = true
		}
	}
	if !letter || !digit {
		return common.ErrInvalidPassword
	}
	return nil
}
