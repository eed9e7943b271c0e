package state

import (
	"sync"
	"testing"

	"github.com/dmitrijs2005/contactdir/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_StartsAnonymousAndEmpty(t *testing.T) {
	s := NewStore()

	assert.Equal(t, models.Anonymous, s.Session())
	assert.Empty(t, s.Contacts())
	assert.Empty(t, s.SearchTerm())
	_, editing := s.EditTarget()
	assert.False(t, editing)
}

func TestStore_OnlyLatestSyncApplies(t *testing.T) {
	s := NewStore()

	first := s.BeginSync()
	second := s.BeginSync()
	require.Greater(t, second, first)

	newer := []models.Contact{{ID: "2", Name: "Newer"}}
	older := []models.Contact{{ID: "1", Name: "Older"}}

	assert.True(t, s.ApplySync(second, newer))
	assert.False(t, s.ApplySync(first, older), "stale response must be dropped")
	assert.Equal(t, newer, s.Contacts())

	assert.False(t, s.IsLatest(first))
	assert.True(t, s.IsLatest(second))
}

func TestStore_ContactsReturnsCopy(t *testing.T) {
	s := NewStore()
	gen := s.BeginSync()
	require.True(t, s.ApplySync(gen, []models.Contact{{ID: "1", Name: "Ann"}}))

	got := s.Contacts()
	got[0].Name = "mutated"

	c, ok := s.Contact("1")
	require.True(t, ok)
	assert.Equal(t, "Ann", c.Name)

	_, ok = s.Contact("missing")
	assert.False(t, ok)
}

func TestStore_EditTarget(t *testing.T) {
	s := NewStore()

	s.SetEditTarget("7")
	id, ok := s.EditTarget()
	require.True(t, ok)
	assert.Equal(t, models.ID("7"), id)

	s.ClearEditTarget()
	_, ok = s.EditTarget()
	assert.False(t, ok)
}

func TestStore_ConcurrentSyncs(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gen := s.BeginSync()
			s.ApplySync(gen, []models.Contact{{ID: "x"}})
			_ = s.Contacts()
		}()
	}
	wg.Wait()

	assert.True(t, s.IsLatest(50))
}
