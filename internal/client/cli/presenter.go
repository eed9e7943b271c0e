package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/contactdir/internal/client/models"
	"github.com/dmitrijs2005/contactdir/internal/client/view"
)

// terminalPresenter draws the contact list and owns the dispatch table of
// the last render. Renders may come from the REPL goroutine or from a
// debounced search, hence the lock.
type terminalPresenter struct {
	mu         sync.Mutex
	out        io.Writer
	handlers   map[view.Action]view.Handler
	dispatcher *view.Dispatcher
}

func newTerminalPresenter(out io.Writer) *terminalPresenter {
	return &terminalPresenter{out: out}
}

func (p *terminalPresenter) SetLoading(on bool) {
	if !on {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, "Loading contacts...")
}

func (p *terminalPresenter) Show(v view.View) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dispatcher = view.Bind(v, p.handlers)
	_ = view.WriteText(p.out, v)
}

// ShowLoadError replaces the list with msg. Nothing is rendered, so no card
// action stays available.
func (p *terminalPresenter) ShowLoadError(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dispatcher = view.Bind(view.View{}, p.handlers)
	fmt.Fprintln(p.out, msg)
}

// Dispatch runs a card action of the last render. The lock is released
// before the handler runs, since handlers usually re-render.
func (p *terminalPresenter) Dispatch(ctx context.Context, action view.Action, id models.ID) error {
	p.mu.Lock()
	d := p.dispatcher
	p.mu.Unlock()
	return d.Dispatch(ctx, action, id)
}
