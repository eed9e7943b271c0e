package view

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/contactdir/internal/client/models"
	"github.com/dmitrijs2005/contactdir/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []models.Contact{
	{ID: "1", Name: "Ann", Address: "Oak St", OwnerUsername: "alice", HasPicture: true, UpdatedAt: "v1",
		Weather: &models.Weather{Description: "light rain", TemperatureCelsius: 12.345}},
	{ID: "2", Name: "Bob", Address: "Elm St", OwnerUsername: "bob"},
}

func TestRender_EmptyState(t *testing.T) {
	v := Render(nil, models.Anonymous)
	assert.Empty(t, v.Cards)
	assert.Equal(t, EmptyAnonymous, v.Empty)

	v = Render([]models.Contact{}, models.Session{Authenticated: true, Username: "alice"})
	assert.Empty(t, v.Cards)
	assert.Equal(t, EmptyAuthenticated, v.Empty)
}

func TestRender_AnonymousNeverGetsControls(t *testing.T) {
	sessions := []models.Session{
		models.Anonymous,
		{Authenticated: false, Username: "alice"},
	}
	for _, sess := range sessions {
		v := Render(sample, sess)
		require.Len(t, v.Cards, len(sample))
		for _, c := range v.Cards {
			assert.False(t, c.CanEdit)
			assert.False(t, c.CanDelete)
		}
	}
}

func TestRender_OwnershipGatesControls(t *testing.T) {
	v := Render(sample, models.Session{Authenticated: true, Username: "alice"})
	require.Len(t, v.Cards, 2)

	for i, c := range v.Cards {
		owner := sample[i].OwnerUsername == "alice"
		assert.Equal(t, owner, c.CanEdit, c.ID)
		assert.Equal(t, owner, c.CanDelete, c.ID)
	}
}

func TestRender_CardContents(t *testing.T) {
	v := Render(sample, models.Anonymous)

	ann := v.Cards[0]
	assert.Equal(t, "light rain · 12.3°C", ann.Weather)
	assert.Equal(t, "/api/contacts/1/picture?ts=v1", ann.PictureURL)
	assert.Equal(t, "alice", ann.Owner)

	bob := v.Cards[1]
	assert.Empty(t, bob.Weather)
	assert.Empty(t, bob.PictureURL)
}

func TestPictureURL_CacheBusting(t *testing.T) {
	a := PictureURL("5", "2024-01-01T00:00:00")
	b := PictureURL("5", "2024-01-02T00:00:00")
	assert.NotEqual(t, a, b)
	assert.Equal(t, "/api/contacts/5/picture?ts=2024-01-01T00%3A00%3A00", a)
	assert.Equal(t, "/api/contacts/5/picture", PictureURL("5", ""))
}

func TestWeatherBadge(t *testing.T) {
	assert.Empty(t, WeatherBadge(nil))
	assert.Equal(t, "sunny · -3.0°C", WeatherBadge(&models.Weather{Description: "sunny", TemperatureCelsius: -3}))
	assert.Equal(t, "fog · 0.1°C", WeatherBadge(&models.Weather{Description: "fog", TemperatureCelsius: 0.05}))
}

func TestAuthControls(t *testing.T) {
	anon := AuthControls(models.Anonymous)
	assert.Equal(t, Controls{Login: true, Signup: true}, anon)

	auth := AuthControls(models.Session{Authenticated: true, Username: "alice"})
	assert.Equal(t, Controls{Create: true, Export: true, Logout: true}, auth)
}

func TestDispatcher_OnlyRenderedActions(t *testing.T) {
	v := Render(sample, models.Session{Authenticated: true, Username: "alice"})

	var edited, deleted []models.ID
	d := Bind(v, map[Action]Handler{
		ActionEdit: func(_ context.Context, id models.ID) error {
			edited = append(edited, id)
			return nil
		},
		ActionDelete: func(_ context.Context, id models.ID) error {
			deleted = append(deleted, id)
			return nil
		},
	})

	ctx := context.Background()
	require.NoError(t, d.Dispatch(ctx, ActionEdit, "1"))
	require.NoError(t, d.Dispatch(ctx, ActionDelete, "1"))
	assert.ErrorIs(t, d.Dispatch(ctx, ActionEdit, "2"), common.ErrActionNotAvailable)
	assert.ErrorIs(t, d.Dispatch(ctx, ActionDelete, "404"), common.ErrActionNotAvailable)

	assert.Equal(t, []models.ID{"1"}, edited)
	assert.Equal(t, []models.ID{"1"}, deleted)
	assert.True(t, d.Available(ActionEdit, "1"))
	assert.False(t, d.Available(ActionDelete, "2"))
}

func TestDispatcher_RebindReflectsLatestRender(t *testing.T) {
	sess := models.Session{Authenticated: true, Username: "alice"}
	handlers := map[Action]Handler{ActionEdit: func(context.Context, models.ID) error { return nil }}

	d := Bind(Render(sample, sess), handlers)
	require.True(t, d.Available(ActionEdit, "1"))

	d = Bind(Render(sample[1:], sess), handlers)
	assert.False(t, d.Available(ActionEdit, "1"))

	var nilD *Dispatcher
	assert.ErrorIs(t, nilD.Dispatch(context.Background(), ActionEdit, "1"), common.ErrActionNotAvailable)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Render(nil, models.Anonymous)))
	assert.Equal(t, EmptyAnonymous+"\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteText(&buf, Render(sample, models.Session{Authenticated: true, Username: "alice"})))
	out := buf.String()
	assert.Contains(t, out, "Ann  [light rain · 12.3°C]")
	assert.Contains(t, out, "/api/contacts/1/picture?ts=v1")
	assert.Contains(t, out, PicturePlaceholder)
	assert.Contains(t, out, "edit 1, delete 1")
	assert.NotContains(t, out, "edit 2")
}
