package services

import (
	"context"

	"github.com/dmitrijs2005/contactdir/internal/client/client"
	"github.com/dmitrijs2005/contactdir/internal/client/models"
	"github.com/dmitrijs2005/contactdir/internal/client/state"
	"github.com/dmitrijs2005/contactdir/internal/logging"
)

// SessionService determines who the current user is.
type SessionService interface {
	// Resolve asks the backend for the current identity and stores the
	// result. It never fails: any error yields the anonymous session.
	Resolve(ctx context.Context) models.Session
}

type sessionService struct {
	client client.Client
	store  *state.Store
	log    logging.Logger
}

func NewSessionService(c client.Client, store *state.Store, log logging.Logger) SessionService {
	return &sessionService{client: c, store: store, log: log}
}

func (s *sessionService) Resolve(ctx context.Context) models.Session {
	sess := s.resolve(ctx)
	s.store.SetSession(sess)
	return sess
}

func (s *sessionService) resolve(ctx context.Context) models.Session {
	st, err := s.client.Me(ctx)
	if err != nil {
		s.log.Debug(ctx, "identity unavailable, continuing anonymously", "error", err)
		return models.Anonymous
	}
	if st == nil || st.Username == "" {
		return models.Anonymous
	}
	if st.Authenticated != nil && !*st.Authenticated {
		return models.Anonymous
	}
	return models.Session{Authenticated: true, Username: st.Username}
}
