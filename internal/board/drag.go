package board

import (
	"fmt"

	"github.com/amterp/kanboard/internal/model"
)

// DragState is the state of a single drag gesture.
type DragState int

const (
	DragIdle DragState = iota
	DragDragging
)

func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	default:
		return fmt.Sprintf("drag_state(%d)", int(s))
	}
}

// Mover is the one store operation a drag may issue.
type Mover interface {
	Move(cardID string, status model.Status) bool
}

// DropResult describes how a drag gesture ended.
type DropResult struct {
	CardID string       `json:"card_id"`
	Target model.Status `json:"target,omitempty"`
	// Moved is true when a move was issued, even if it was an identity move.
	Moved bool `json:"moved"`
	// Found is false when the store no longer had the card.
	Found bool `json:"found"`
}

// Drag interprets drag notifications from a gesture recognizer.
// Idle -> Start -> Dragging -> (Pointer)* -> Release|Cancel -> Idle.
// Nothing touches the store until Release over a recognized target.
// A Drag is driven by one input sequence and is not safe for concurrent use.
type Drag struct {
	mover    Mover
	state    DragState
	activeID string
	offsetX  int
	offsetY  int
}

// NewDrag creates an idle drag bound to mover.
func NewDrag(mover Mover) *Drag {
	return &Drag{mover: mover}
}

// State returns the current state.
func (d *Drag) State() DragState {
	return d.state
}

// ActiveID returns the id of the card being dragged, or "".
func (d *Drag) ActiveID() string {
	return d.activeID
}

// Offset returns the visual offset accumulated since Start.
func (d *Drag) Offset() (int, int) {
	return d.offsetX, d.offsetY
}

// Start begins dragging cardID.
func (d *Drag) Start(cardID string) error {
	if cardID == "" {
		return fmt.Errorf("drag start requires a card id")
	}
	if d.state == DragDragging {
		return fmt.Errorf("already dragging card %s", d.activeID)
	}
	d.state = DragDragging
	d.activeID = cardID
	d.offsetX, d.offsetY = 0, 0
	return nil
}

// Pointer records pointer movement while dragging. It never mutates the store.
func (d *Drag) Pointer(dx, dy int) {
	if d.state != DragDragging {
		return
	}
	d.offsetX += dx
	d.offsetY += dy
}

// Release ends the gesture over target, the drop target name under the
// pointer ("" when over nothing). A recognized target issues exactly one
// Move; anything else abandons the drag with no store call.
func (d *Drag) Release(target string) DropResult {
	if d.state != DragDragging {
		return DropResult{}
	}
	cardID := d.activeID
	d.reset()

	status, ok := ParseDropTarget(target)
	if !ok {
		return DropResult{CardID: cardID}
	}
	found := d.mover.Move(cardID, status)
	return DropResult{CardID: cardID, Target: status, Moved: true, Found: found}
}

// Cancel abandons the gesture without touching the store.
func (d *Drag) Cancel() {
	d.reset()
}

func (d *Drag) reset() {
	d.state = DragIdle
	d.activeID = ""
	d.offsetX, d.offsetY = 0, 0
}
