// Package form drives the create/edit dialog of a contact.
//
// The controller is a small state machine: Closed, CreateOpen and
// EditOpen(id). The edit target lives in the shared state.Store so other
// components can see which contact is being edited.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/contactdir/internal/client/client"
	"github.com/dmitrijs2005/contactdir/internal/client/models"
	"github.com/dmitrijs2005/contactdir/internal/client/notify"
	"github.com/dmitrijs2005/contactdir/internal/client/state"
	"github.com/dmitrijs2005/contactdir/internal/client/view"
	"github.com/dmitrijs2005/contactdir/internal/logging"
)

// SaveFailed is shown when the backend gave no usable message.
const SaveFailed = "Unable to save contact."

var ErrClosed = errors.New("form is not open")

type Mode int

const (
	Closed Mode = iota
	CreateOpen
	EditOpen
)

func (m Mode) String() string {
	switch m {
	case CreateOpen:
		return "create"
	case EditOpen:
		return "edit"
	default:
		return "closed"
	}
}

// Gateway performs the writes.
type Gateway interface {
	Create(ctx context.Context, form models.ContactForm) error
	Update(ctx context.Context, id models.ID, form models.ContactForm) error
}

// Syncer refreshes the list after a successful write.
type Syncer interface {
	Sync(ctx context.Context, term string) error
}

// State is a read-only snapshot of the dialog.
type State struct {
	Mode        Mode
	Target      models.ID
	Name        string
	Address     string
	PictureFile string // selected upload, empty when none
	Preview     string // current picture of the edited contact
	Message     string // inline error of the last submit
}

type Controller struct {
	store    *state.Store
	gateway  Gateway
	syncer   Syncer
	notifier notify.Notifier
	log      logging.Logger

	loadPicture func(path string) (*models.Picture, error)

	mode    Mode
	name    string
	address string
	picture *models.Picture
	preview string
	message string
}

func NewController(store *state.Store, gw Gateway, s Syncer, n notify.Notifier, log logging.Logger) *Controller {
	return &Controller{
		store:       store,
		gateway:     gw,
		syncer:      s,
		notifier:    n,
		log:         log,
		loadPicture: models.LoadPicture,
	}
}

func (c *Controller) State() State {
	st := State{
		Mode:    c.mode,
		Name:    c.name,
		Address: c.address,
		Preview: c.preview,
		Message: c.message,
	}
	if c.mode == EditOpen {
		st.Target, _ = c.store.EditTarget()
	}
	if c.picture != nil {
		st.PictureFile = c.picture.FileName
	}
	return st
}

func (c *Controller) reset() {
	c.name, c.address = "", ""
	c.picture = nil
	c.preview = ""
	c.message = ""
}

// OpenCreate opens an empty dialog from any state.
func (c *Controller) OpenCreate() {
	c.reset()
	c.store.ClearEditTarget()
	c.mode = CreateOpen
}

// OpenEdit opens the dialog for a contact of the current snapshot. It is a
// no-op returning false when the contact is not there. The picture upload is
// never pre-filled; the current picture is offered as a preview.
func (c *Controller) OpenEdit(id models.ID) bool {
	contact, ok := c.store.Contact(id)
	if !ok {
		return false
	}

	c.reset()
	c.name = contact.Name
	c.address = contact.Address
	if contact.HasPicture {
		c.preview = view.PictureURL(contact.ID, contact.UpdatedAt)
	}
	c.store.SetEditTarget(contact.ID)
	c.mode = EditOpen
	return true
}

// Cancel closes the dialog and forgets the edit target.
func (c *Controller) Cancel() {
	c.reset()
	c.store.ClearEditTarget()
	c.mode = Closed
}

func (c *Controller) SetName(v string)    { c.name = v }
func (c *Controller) SetAddress(v string) { c.address = v }

// SelectPicture attaches a local image file to the next submission.
func (c *Controller) SelectPicture(path string) error {
	if c.mode == Closed {
		return ErrClosed
	}
	pic, err := c.loadPicture(path)
	if err != nil {
		return err
	}
	c.picture = pic
	return nil
}

// ClearPicture drops a selected upload.
func (c *Controller) ClearPicture() { c.picture = nil }

// Submit trims the fields and sends them: a create in CreateOpen, an update
// of the edit target in EditOpen. On success the dialog closes and the list
// is re-synced with the current search term. On failure the dialog stays
// open and the extracted message is shown inline.
func (c *Controller) Submit(ctx context.Context) error {
	form := models.ContactForm{
		Name:    strings.TrimSpace(c.name),
		Address: strings.TrimSpace(c.address),
		Picture: c.picture,
	}
	c.message = ""

	var err error
	switch c.mode {
	case CreateOpen:
		err = c.gateway.Create(ctx, form)
	case EditOpen:
		id, ok := c.store.EditTarget()
		if !ok {
			return fmt.Errorf("submit: %w", ErrClosed)
		}
		err = c.gateway.Update(ctx, id, form)
	default:
		return ErrClosed
	}

	if err != nil {
		c.message = client.MessageOf(err, SaveFailed)
		c.notifier.Notify(ctx, notify.Notice{
			Severity:  notify.Error,
			Placement: notify.Inline,
			Text:      c.message,
		})
		return err
	}

	c.Cancel()
	if err := c.syncer.Sync(ctx, c.store.SearchTerm()); err != nil {
		c.log.Debug(ctx, "sync after save failed", "error", err)
	}
	return nil
}
