package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/contactdir/internal/client/client"
	"github.com/dmitrijs2005/contactdir/internal/client/models"
	"github.com/dmitrijs2005/contactdir/internal/client/view"
)

type fakeClient struct {
	client.Client

	mu sync.Mutex

	// presets
	MeStatus    *client.AuthStatus
	MeErr       error
	ListResult  []models.Contact
	ListErr     error
	ListFn      func(ctx context.Context, search string) ([]models.Contact, error)
	WriteErr    error
	DeleteErr   error
	LoginErr    error
	SignupErr   error
	LogoutErr   error
	PictureData []byte
	PictureType string
	PictureErr  error
	ExportData  []byte
	ExportErr   error

	// captured
	Calls       []string
	LastSearch  string
	LastForm    models.ContactForm
	LastID      models.ID
	LastVersion models.Version
	LastUser    string
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

func (f *fakeClient) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeClient) Me(ctx context.Context) (*client.AuthStatus, error) {
	f.record("me")
	return f.MeStatus, f.MeErr
}

func (f *fakeClient) ListContacts(ctx context.Context, search string) ([]models.Contact, error) {
	f.record("list")
	f.mu.Lock()
	f.LastSearch = search
	fn := f.ListFn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, search)
	}
	return f.ListResult, f.ListErr
}

func (f *fakeClient) CreateContact(ctx context.Context, form models.ContactForm) error {
	f.record("create")
	f.LastForm = form
	return f.WriteErr
}

func (f *fakeClient) UpdateContact(ctx context.Context, id models.ID, form models.ContactForm) error {
	f.record("update")
	f.LastID, f.LastForm = id, form
	return f.WriteErr
}

func (f *fakeClient) DeleteContact(ctx context.Context, id models.ID) error {
	f.record("delete")
	f.LastID = id
	return f.DeleteErr
}

func (f *fakeClient) Login(ctx context.Context, username string, password []byte) error {
	f.record("login")
	f.LastUser = username
	return f.LoginErr
}

func (f *fakeClient) Signup(ctx context.Context, username string, password []byte) error {
	f.record("signup")
	f.LastUser = username
	return f.SignupErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.record("logout")
	return f.LogoutErr
}

func (f *fakeClient) Picture(ctx context.Context, id models.ID, version models.Version) ([]byte, string, error) {
	f.record("picture")
	f.LastID, f.LastVersion = id, version
	return f.PictureData, f.PictureType, f.PictureErr
}

func (f *fakeClient) Export(ctx context.Context) ([]byte, error) {
	f.record("export")
	return f.ExportData, f.ExportErr
}

type fakePresenter struct {
	mu       sync.Mutex
	loading  []bool
	views    []view.View
	errors   []string
	sequence []string
}

func (p *fakePresenter) SetLoading(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = append(p.loading, on)
	if on {
		p.sequence = append(p.sequence, "loading:on")
	} else {
		p.sequence = append(p.sequence, "loading:off")
	}
}

func (p *fakePresenter) Show(v view.View) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.views = append(p.views, v)
	p.sequence = append(p.sequence, "show")
}

func (p *fakePresenter) ShowLoadError(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errors = append(p.errors, msg)
	p.sequence = append(p.sequence, "error")
}

func boolPtr(b bool) *bool { return &b }
