package board

import (
	"slices"
	"sync"

	"github.com/amterp/kanboard/internal/model"
	"github.com/amterp/kanboard/internal/store"
)

// ViewListener receives the re-derived board after every store change.
type ViewListener func(view View)

// Controller keeps a partitioned view of the store up to date.
// It holds one store subscription and recomputes the full view from each
// snapshot; no incremental patching.
type Controller struct {
	store store.CardStore

	// deliverMu serializes re-derivation and listener delivery, so listeners
	// see views in revision order. Listeners must not call SetColumns.
	deliverMu sync.Mutex

	mu        sync.RWMutex
	specs     []model.ColumnSpec
	view      View
	listeners []ViewListener

	unsubscribe func()
}

// NewController subscribes to s and derives the initial view.
func NewController(s store.CardStore, specs []model.ColumnSpec) *Controller {
	c := &Controller{
		store: s,
		specs: slices.Clone(specs),
	}
	c.view = Partition(s.Snapshot(), c.specs)
	c.unsubscribe = s.Subscribe(c.onSnapshot)
	return c
}

// View returns the latest derived board.
func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

// Columns returns the current column specs.
func (c *Controller) Columns() []model.ColumnSpec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.specs)
}

// OnChange registers fn to run after each re-derivation.
func (c *Controller) OnChange(fn ViewListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// NewDrag returns an idle drag whose drops move cards in the store.
func (c *Controller) NewDrag() *Drag {
	return NewDrag(c.store)
}

// SetColumns replaces the column display and re-derives the view.
func (c *Controller) SetColumns(specs []model.ColumnSpec) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	c.specs = slices.Clone(specs)
	c.mu.Unlock()
	c.deliver(c.store.Snapshot())
}

// Close drops the store subscription.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

func (c *Controller) onSnapshot(snap model.Snapshot) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()
	c.deliver(snap)
}

func (c *Controller) deliver(snap model.Snapshot) {
	c.mu.Lock()
	// A reload racing a mutation must not roll the view back.
	if snap.Revision < c.view.Revision {
		c.mu.Unlock()
		return
	}
	view := Partition(snap, c.specs)
	c.view = view
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(view)
	}
}
