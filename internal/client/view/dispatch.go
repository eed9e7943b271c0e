package view

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/contactdir/internal/client/models"
	"github.com/dmitrijs2005/contactdir/internal/common"
)

// Action names a per-card affordance.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Handler performs an action on one contact.
type Handler func(ctx context.Context, id models.ID) error

type actionKey struct {
	action Action
	id     models.ID
}

// Dispatcher is the action table of one render pass. It is rebuilt on every
// render, so handlers always refer to the contacts just drawn.
type Dispatcher struct {
	table map[actionKey]func(ctx context.Context) error
}

// Bind builds the dispatch table for v. Only actions rendered on a card get
// an entry; handlers missing from the map are skipped.
func Bind(v View, handlers map[Action]Handler) *Dispatcher {
	d := &Dispatcher{table: make(map[actionKey]func(ctx context.Context) error)}
	for _, card := range v.Cards {
		id := card.ID
		if h, ok := handlers[ActionEdit]; ok && card.CanEdit {
			d.table[actionKey{ActionEdit, id}] = func(ctx context.Context) error { return h(ctx, id) }
		}
		if h, ok := handlers[ActionDelete]; ok && card.CanDelete {
			d.table[actionKey{ActionDelete, id}] = func(ctx context.Context) error { return h(ctx, id) }
		}
	}
	return d
}

// Available reports whether action was rendered for id.
func (d *Dispatcher) Available(action Action, id models.ID) bool {
	if d == nil {
		return false
	}
	_, ok := d.table[actionKey{action, id}]
	return ok
}

// Dispatch runs the handler bound for (action, id). It fails with
// common.ErrActionNotAvailable when the action was not rendered.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action, id models.ID) error {
	if d == nil {
		return fmt.Errorf("%s %s: %w", action, id, common.ErrActionNotAvailable)
	}
	fn, ok := d.table[actionKey{action, id}]
	if !ok {
		return fmt.Errorf("%s %s: %w", action, id, common.ErrActionNotAvailable)
	}
	return fn(ctx)
}
