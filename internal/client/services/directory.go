package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/contactdir/internal/client/client"
	"github.com/dmitrijs2005/contactdir/internal/client/state"
	"github.com/dmitrijs2005/contactdir/internal/client/view"
	"github.com/dmitrijs2005/contactdir/internal/logging"
)

// Presenter is the render target of the contact list.
type Presenter interface {
	SetLoading(on bool)
	Show(v view.View)
	ShowLoadError(msg string)
}

// DirectoryService keeps the contact snapshot in line with the backend.
type DirectoryService interface {
	// Sync fetches the list filtered by term (empty means no filter),
	// replaces the snapshot and renders it. On failure the snapshot is kept
	// and an error placeholder is shown instead of the list. A response that
	// was overtaken by a newer Sync is discarded.
	Sync(ctx context.Context, term string) error
	// Render redraws the current snapshot without a round trip.
	Render()
}

type directoryService struct {
	client    client.Client
	store     *state.Store
	presenter Presenter
	log       logging.Logger

	mu       sync.Mutex
	inFlight int
}

func NewDirectoryService(c client.Client, store *state.Store, p Presenter, log logging.Logger) DirectoryService {
	return &directoryService{client: c, store: store, presenter: p, log: log}
}

func (s *directoryService) Sync(ctx context.Context, term string) error {
	gen := s.store.BeginSync()
	s.store.SetSearchTerm(term)

	s.loading(true)
	defer s.loading(false)

	contacts, err := s.client.ListContacts(ctx, term)
	if err != nil {
		if !s.store.IsLatest(gen) {
			s.log.Debug(ctx, "dropping stale sync failure", "generation", gen, "error", err)
			return nil
		}
		s.log.Warn(ctx, "unable to load contacts", "search", term, "error", err)
		s.presenter.ShowLoadError(view.LoadFailed)
		return fmt.Errorf("sync contacts: %w", err)
	}

	if !s.store.ApplySync(gen, contacts) {
		s.log.Debug(ctx, "dropping stale sync result", "generation", gen, "count", len(contacts))
		return nil
	}
	s.log.Debug(ctx, "contacts synced", "generation", gen, "count", len(contacts), "search", term)
	s.Render()
	return nil
}

func (s *directoryService) Render() {
	s.presenter.Show(view.Render(s.store.Contacts(), s.store.Session()))
}

// loading toggles the indicator on the first request in flight and off
// when the last one finishes, so overlapping syncs do not hide it early.
func (s *directoryService) loading(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.inFlight++
		if s.inFlight == 1 {
			s.presenter.SetLoading(true)
		}
		return
	}
	s.inFlight--
	if s.inFlight == 0 {
		s.presenter.SetLoading(false)
	}
}
