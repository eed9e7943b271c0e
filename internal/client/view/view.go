// Package view projects the application state into a read-only list view.
//
// Render is a pure function of the contact snapshot and the session. The
// returned View describes what to draw; Bind turns it into a Dispatcher
// that maps the actions actually rendered to their handlers.
package view

import (
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/contactdir/internal/client/models"
)

const (
	EmptyAnonymous     = "No contacts yet. Sign in to create and manage contacts."
	EmptyAuthenticated = "No contacts yet. Add one with the 'add' command."
	LoadFailed         = "Unable to load contacts right now."
	PicturePlaceholder = "[no picture]"
)

// Card is one rendered contact.
type Card struct {
	ID         models.ID
	Name       string
	Address    string
	Owner      string
	Weather    string // empty when the contact has no weather data
	PictureURL string // empty when the contact has no picture
	CanEdit    bool
	CanDelete  bool
}

// View is the result of a render pass. Either Cards is non-empty or Empty
// holds the empty-state message.
type View struct {
	Empty string
	Cards []Card
}

// Render builds the list view for contacts as seen by sess. Contact order
// is preserved.
func Render(contacts []models.Contact, sess models.Session) View {
	if len(contacts) == 0 {
		msg := EmptyAnonymous
		if sess.Authenticated {
			msg = EmptyAuthenticated
		}
		return View{Empty: msg}
	}

	cards := make([]Card, 0, len(contacts))
	for _, c := range contacts {
		owner := sess.Owns(c.OwnerUsername)
		card := Card{
			ID:        c.ID,
			Name:      c.Name,
			Address:   c.Address,
			Owner:     c.OwnerUsername,
			Weather:   WeatherBadge(c.Weather),
			CanEdit:   owner,
			CanDelete: owner,
		}
		if c.HasPicture {
			card.PictureURL = PictureURL(c.ID, c.UpdatedAt)
		}
		cards = append(cards, card)
	}
	return View{Cards: cards}
}

// PictureURL is the relative picture reference of a contact. The version is
// appended as the ts parameter, so a contact whose updatedAt changed never
// reuses a cached image.
func PictureURL(id models.ID, version models.Version) string {
	u := "/api/contacts/" + url.PathEscape(id.String()) + "/picture"
	if version != "" {
		u += "?" + url.Values{"ts": {string(version)}}.Encode()
	}
	return u
}

// WeatherBadge formats weather as "<description> · <temp>°C" with one
// decimal. It returns "" for nil.
func WeatherBadge(w *models.Weather) string {
	if w == nil {
		return ""
	}
	return fmt.Sprintf("%s · %.1f°C", w.Description, w.TemperatureCelsius)
}
