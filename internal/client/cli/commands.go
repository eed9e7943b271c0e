package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactdir/internal/client/client"
	"github.com/dmitrijs2005/contactdir/internal/client/models"
	"github.com/dmitrijs2005/contactdir/internal/client/notify"
	"github.com/dmitrijs2005/contactdir/internal/client/view"
	"github.com/dmitrijs2005/contactdir/internal/common"
)

// getSimpleText, getTextWithDefault and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText      = GetSimpleText
	getTextWithDefault = GetTextWithDefault
	getPassword        = GetPassword
)

// report shows err inline unless it is a user cancellation.
func (a *App) report(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, common.ErrCancelled) {
		return err
	}
	a.notifier.Notify(ctx, notify.Notice{Severity: notify.Error, Placement: notify.Inline, Text: describe(err)})
	return err
}

func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "Server is unavailable, try again later."
	case errors.Is(err, client.ErrUnauthorized):
		return client.MessageOf(err, "Not allowed. Are you logged in?")
	default:
		return client.MessageOf(err, err.Error())
	}
}

// List redraws the current snapshot.
func (a *App) List(ctx context.Context) error {
	a.directory.Render()
	return nil
}

// Refresh resolves the session again and re-syncs with the active filter.
func (a *App) Refresh(ctx context.Context) error {
	a.sessions.Resolve(ctx)
	// a failed sync is already on screen as the error placeholder
	_ = a.directory.Sync(ctx, a.store.SearchTerm())
	return nil
}

// Search schedules a filtered sync. Rapid successive searches collapse into
// one request with the last term.
func (a *App) Search(ctx context.Context, term string) error {
	a.search.Call(term)
	return nil
}

// Show prints one contact of the current snapshot.
func (a *App) Show(ctx context.Context, arg string) error {
	id, err := models.ParseID(arg)
	if err != nil {
		return a.report(ctx, err)
	}
	c, ok := a.store.Contact(id)
	if !ok {
		return a.report(ctx, fmt.Errorf("contact %s is not in the current list", id))
	}
	return view.WriteText(a.out, view.Render([]models.Contact{c}, a.store.Session()))
}

// Add opens the form in create mode.
func (a *App) Add(ctx context.Context) error {
	a.form.OpenCreate()
	return a.runForm(ctx)
}

// Edit dispatches the edit action of a rendered card.
func (a *App) Edit(ctx context.Context, arg string) error {
	id, err := models.ParseID(arg)
	if err != nil {
		return a.report(ctx, err)
	}
	return a.report(ctx, a.presenter.Dispatch(ctx, view.ActionEdit, id))
}

// Delete dispatches the delete action of a rendered card. Confirmation and
// failure alerts are handled by the mutation service.
func (a *App) Delete(ctx context.Context, arg string) error {
	id, err := models.ParseID(arg)
	if err != nil {
		return a.report(ctx, err)
	}
	err = a.presenter.Dispatch(ctx, view.ActionDelete, id)
	if errors.Is(err, common.ErrActionNotAvailable) {
		return a.report(ctx, err)
	}
	return err
}

func (a *App) editContact(ctx context.Context, id models.ID) error {
	if !a.form.OpenEdit(id) {
		return fmt.Errorf("contact %s is not in the current list", id)
	}
	return a.runForm(ctx)
}

// runForm fills the open form from the prompt and submits it. A rejected
// submission keeps the form open with the entered values; the user may edit
// and resubmit or give up.
func (a *App) runForm(ctx context.Context) error {
	for {
		st := a.form.State()
		if st.Preview != "" {
			fmt.Fprintf(a.out, "Current picture: %s\n", st.Preview)
		}

		name, err := getTextWithDefault(a.reader, "Name", st.Name, a.out)
		if err != nil {
			a.form.Cancel()
			return err
		}
		address, err := getTextWithDefault(a.reader, "Address", st.Address, a.out)
		if err != nil {
			a.form.Cancel()
			return err
		}
		a.form.SetName(name)
		a.form.SetAddress(address)

		path, err := getSimpleText(a.reader, "Picture file (empty to keep/skip)", a.out)
		if err != nil {
			a.form.Cancel()
			return err
		}
		if path != "" {
			if err := a.form.SelectPicture(path); err != nil {
				a.notifier.Notify(ctx, notify.Notice{Severity: notify.Warning, Placement: notify.Inline, Text: err.Error()})
			}
		}

		err = a.form.Submit(ctx)
		if err == nil {
			return nil
		}
		// the form already showed the message inline
		if !a.notifier.Confirm(ctx, "Edit and try again?") {
			a.form.Cancel()
			return fmt.Errorf("%w: %w", common.ErrCancelled, err)
		}
	}
}

// Picture downloads the picture of a contact into the download directory.
func (a *App) Picture(ctx context.Context, arg string) error {
	id, err := models.ParseID(arg)
	if err != nil {
		return a.report(ctx, err)
	}
	path, cached, err := a.pictures.Download(ctx, id)
	if err != nil {
		return a.report(ctx, err)
	}
	src := "downloaded"
	if cached {
		src = "from cache"
	}
	a.notifier.Notify(ctx, notify.Notice{Severity: notify.Success, Text: fmt.Sprintf("Picture saved to %s (%s)", path, src)})
	return nil
}

// Export stores the directory export in the requested format.
func (a *App) Export(ctx context.Context, format string) error {
	loc, err := a.exports.Export(ctx, format)
	if err != nil {
		return a.report(ctx, err)
	}
	a.notifier.Notify(ctx, notify.Notice{Severity: notify.Success, Text: "Export saved to " + loc})
	return nil
}

// Login prompts for credentials and logs in.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	sess, err := a.auth.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.notifier.Notify(ctx, notify.Notice{Severity: notify.Error, Text: "Invalid username or password."})
			return err
		}
		return a.report(ctx, err)
	}
	a.notifier.Notify(ctx, notify.Notice{Severity: notify.Success, Text: "Welcome, " + sess.Username + "!"})
	return nil
}

// Signup prompts for credentials, registers and logs in.
func (a *App) Signup(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username (3-150 characters)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	sess, err := a.auth.Signup(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidUsername) || errors.Is(err, common.ErrInvalidPassword) {
			a.notifier.Notify(ctx, notify.Notice{Severity: notify.Error, Text: err.Error()})
			return err
		}
		return a.report(ctx, err)
	}
	msg := "Account created."
	if sess.Authenticated {
		msg = "Account created. Welcome, " + sess.Username + "!"
	}
	a.notifier.Notify(ctx, notify.Notice{Severity: notify.Success, Text: msg})
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return a.report(ctx, err)
	}
	a.notifier.Notify(ctx, notify.Notice{Severity: notify.Success, Text: "Logged out."})
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	sess := a.store.Session()
	if !sess.Authenticated {
		fmt.Fprintln(a.out, "anonymous")
		return nil
	}
	fmt.Fprintln(a.out, sess.Username)
	return nil
}
