// Package state holds the in-memory application context shared by the
// client components: the resolved session, the last applied contact
// snapshot, the edit target of the contact form and the active search term.
//
// The store is written from the REPL goroutine and from debounce timers, so
// every accessor takes the lock. Snapshots handed out are copies.
package state

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/contactdir/internal/client/models"
)

// Store is the application context. The zero value is not usable; call
// NewStore.
type Store struct {
	mu sync.RWMutex

	session  models.Session
	contacts []models.Contact
	search   string

	// latest sync generation issued by BeginSync
	gen uint64

	editTarget models.ID
	editing    bool
}

func NewStore() *Store {
	return &Store{session: models.Anonymous}
}

func (s *Store) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *Store) SetSession(sess models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = sess
}

// Contacts returns a copy of the current snapshot in server order.
func (s *Store) Contacts() []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.contacts)
}

// Contact looks a contact up in the current snapshot.
func (s *Store) Contact(id models.ID) (models.Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.FindContact(s.contacts, id)
}

// SearchTerm is the filter the list was last requested with. Mutations
// re-sync with it.
func (s *Store) SearchTerm() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = term
}

// BeginSync issues a new sync generation. Only the result carrying the most
// recently issued generation may be applied.
func (s *Store) BeginSync() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// IsLatest reports whether gen is still the newest issued generation.
func (s *Store) IsLatest(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gen == s.gen
}

// ApplySync replaces the snapshot wholesale when gen is the latest issued
// generation. It reports whether the snapshot was replaced.
func (s *Store) ApplySync(gen uint64, contacts []models.Contact) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.contacts = slices.Clone(contacts)
	return true
}

// EditTarget returns the contact the next form submission updates. ok is
// false when the next submission creates a new contact.
func (s *Store) EditTarget() (id models.ID, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editTarget, s.editing
}

func (s *Store) SetEditTarget(id models.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editTarget, s.editing = id, true
}

func (s *Store) ClearEditTarget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editTarget, s.editing = "", false
}
