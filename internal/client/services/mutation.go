package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/contactdir/internal/client/client"
	"github.com/dmitrijs2005/contactdir/internal/client/models"
	"github.com/dmitrijs2005/contactdir/internal/client/notify"
	"github.com/dmitrijs2005/contactdir/internal/client/state"
	"github.com/dmitrijs2005/contactdir/internal/common"
	"github.com/dmitrijs2005/contactdir/internal/logging"
)

const (
	DeletePrompt = "Delete this contact?"
	DeleteFailed = "Unable to delete contact."
)

// MutationService writes contacts. The view is never patched locally; the
// caller re-syncs after a confirmed write.
type MutationService interface {
	Create(ctx context.Context, form models.ContactForm) error
	Update(ctx context.Context, id models.ID, form models.ContactForm) error
	// Remove asks for confirmation, deletes the contact and re-syncs with
	// the current search term. Declining returns common.ErrCancelled
	// without contacting the backend. Failures raise an interruptive alert
	// and leave the snapshot untouched.
	Remove(ctx context.Context, id models.ID) error
}

type mutationService struct {
	client    client.Client
	store     *state.Store
	directory DirectoryService
	notifier  notify.Notifier
	log       logging.Logger
}

func NewMutationService(c client.Client, store *state.Store, dir DirectoryService, n notify.Notifier, log logging.Logger) MutationService {
	return &mutationService{client: c, store: store, directory: dir, notifier: n, log: log}
}

func (s *mutationService) Create(ctx context.Context, form models.ContactForm) error {
	if err := s.client.CreateContact(ctx, form); err != nil {
		s.log.Info(ctx, "create rejected", "error", err)
		return err
	}
	s.log.Info(ctx, "contact created", "name", form.Name, "picture", form.HasPicture())
	return nil
}

func (s *mutationService) Update(ctx context.Context, id models.ID, form models.ContactForm) error {
	if err := s.client.UpdateContact(ctx, id, form); err != nil {
		s.log.Info(ctx, "update rejected", "id", id, "error", err)
		return err
	}
	s.log.Info(ctx, "contact updated", "id", id, "picture", form.HasPicture())
	return nil
}

func (s *mutationService) Remove(ctx context.Context, id models.ID) error {
	if !s.notifier.Confirm(ctx, DeletePrompt) {
		return fmt.Errorf("delete %s: %w", id, common.ErrCancelled)
	}

	if err := s.client.DeleteContact(ctx, id); err != nil {
		s.log.Warn(ctx, "delete failed", "id", id, "error", err)
		s.notifier.Notify(ctx, notify.Notice{
			Severity:  notify.Error,
			Placement: notify.Interruptive,
			Text:      DeleteFailed,
		})
		return err
	}

	s.log.Info(ctx, "contact deleted", "id", id)
	return s.directory.Sync(ctx, s.store.SearchTerm())
}
