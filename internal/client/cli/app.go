package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/contactdir/internal/client/client"
	"github.com/dmitrijs2005/contactdir/internal/client/config"
	"github.com/dmitrijs2005/contactdir/internal/client/form"
	"github.com/dmitrijs2005/contactdir/internal/client/notify"
	"github.com/dmitrijs2005/contactdir/internal/client/services"
	"github.com/dmitrijs2005/contactdir/internal/client/state"
	"github.com/dmitrijs2005/contactdir/internal/client/view"
	"github.com/dmitrijs2005/contactdir/internal/debounce"
	"github.com/dmitrijs2005/contactdir/internal/logging"
)

// App is the application context of one CLI session. Every component gets
// the shared store and its collaborators explicitly.
type App struct {
	config *config.Config
	log    logging.Logger

	store     *state.Store
	sessions  services.SessionService
	directory services.DirectoryService
	mutations services.MutationService
	auth      services.AuthService
	pictures  services.PictureService
	exports   services.ExportService
	form      *form.Controller

	notifier  notify.Notifier
	presenter *terminalPresenter
	search    *debounce.Debouncer[string]

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the client for cfg. The search debouncer is bound to ctx, so
// cancelling ctx drops a pending search.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	api := client.NewRESTClient(cfg.ServerURL, cfg.RequestTimeout, log.With("component", "http"))
	return newApp(ctx, cfg, log, api, in, out)
}

func newApp(ctx context.Context, cfg *config.Config, log logging.Logger, api client.Client, in io.Reader, out io.Writer) (*App, error) {
	reader := bufio.NewReader(in)
	store := state.NewStore()
	notifier := notify.NewTerminal(out, reader)
	presenter := newTerminalPresenter(out)

	directory := services.NewDirectoryService(api, store, presenter, log)
	sessions := services.NewSessionService(api, store, log)
	mutations := services.NewMutationService(api, store, directory, notifier, log)

	pictures, err := services.NewPictureService(api, store, cfg.DownloadDir, cfg.PictureCacheSize, log)
	if err != nil {
		return nil, err
	}

	sinks := []services.ExportSink{
		services.CSVFileSink{Dir: cfg.DownloadDir},
		services.XLSXSink{Dir: cfg.DownloadDir},
	}
	if cfg.Export.Enabled() {
		s3Sink, err := services.NewS3Sink(ctx, cfg.Export)
		if err != nil {
			log.Warn(ctx, "s3 export disabled", "error", err)
		} else {
			sinks = append(sinks, s3Sink)
		}
	}

	a := &App{
		config:    cfg,
		log:       log,
		store:     store,
		sessions:  sessions,
		directory: directory,
		mutations: mutations,
		auth:      services.NewAuthService(api, store, sessions, directory, log),
		pictures:  pictures,
		exports:   services.NewExportService(api, log, sinks...),
		form:      form.NewController(store, mutations, directory, notifier, log),
		notifier:  notifier,
		presenter: presenter,
		reader:    reader,
		out:       out,
	}

	presenter.handlers = map[view.Action]view.Handler{
		view.ActionEdit:   a.editContact,
		view.ActionDelete: a.mutations.Remove,
	}
	a.search = debounce.New(ctx, cfg.SearchDebounce, func(term string) {
		// failures are already rendered as the error placeholder
		_ = a.directory.Sync(ctx, term)
	})

	return a, nil
}

// Run resolves the session, draws the list and serves the REPL until the
// user leaves or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.search.Stop()

	fmt.Fprintln(a.out, "Welcome to the contact directory (type 'help' for commands)")
	a.sessions.Resolve(ctx)
	_ = a.directory.Sync(ctx, "")

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) status() string {
	s := "anonymous"
	if sess := a.store.Session(); sess.Authenticated {
		s = sess.Username
	}
	if term := a.store.SearchTerm(); term != "" {
		s += fmt.Sprintf(" search=%q", term)
	}
	return s
}

func (a *App) controls() view.Controls {
	return view.AuthControls(a.store.Session())
}
