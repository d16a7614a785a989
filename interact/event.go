package interact

import (
	"strconv"
	"time"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/rows"
)

// PointerKind is the kind of a pointer event.
type PointerKind uint8

// Pointer event kinds.
const (
	Move PointerKind = iota
	Down
	Up
)

// String returns the kind name.
func (k PointerKind) String() string {
	switch k {
	case Move:
		return "move"
	case Down:
		return "down"
	case Up:
		return "up"
	default:
		return "PointerKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// PointerEvent is a primary-button pointer event in design coordinates.
type PointerEvent struct {
	Kind      PointerKind
	Pos       formgrid.Point
	Modifiers formgrid.Modifiers
	Time      time.Time
}

// Key identifies a key the engine reacts to.
type Key uint8

// Keys.
const (
	KeyNone Key = iota
	KeyEscape
	KeyTab
	KeyEnter
	KeySpace
)

// KeyEvent is a key press.
type KeyEvent struct {
	Key       Key
	Modifiers formgrid.Modifiers
}

// MouseInfo describes the pointer at the moment a notification fires.
type MouseInfo struct {
	Pos         formgrid.Point
	Modifiers   formgrid.Modifiers
	Time        time.Time
	DoubleClick bool
}

// DragState is one end of a drag: the item under the pointer, or the zero
// id for none, and the pointer position.
type DragState struct {
	Target    rows.CellID
	Pos       formgrid.Point
	Modifiers formgrid.Modifiers
}

// Target is a hit-testable item.
type Target struct {
	ID     rows.CellID
	Bounds formgrid.Rect
	State  rows.CellState
	// Order is the paint order; later items are on top.
	Order int
}

// Source supplies the items the coordinator hit-tests against.
type Source interface {
	// TargetsAt returns every item containing p, in any order.
	TargetsAt(p formgrid.Point) []Target
	// Target returns the item with the given id, if it still exists.
	Target(id rows.CellID) (Target, bool)
}

// Callbacks receives gesture notifications. Nil fields are skipped.
type Callbacks struct {
	ItemEnter func(id rows.CellID)
	ItemLeave func(id rows.CellID)

	ItemClick func(id rows.CellID, m MouseInfo)
	AreaClick func(m MouseInfo)

	DragStart     func(id rows.CellID, begin DragState)
	DragOver      func(id rows.CellID, over DragState)
	// ItemDragEnd receives the zero id when the dragged item was removed
	// during the drag.
	ItemDragEnd   func(id rows.CellID, begin, end DragState)
	FrameMove     func(r formgrid.Rect)
	FrameComplete func(r formgrid.Rect, m MouseInfo)

	// Cancel fires when a gesture enters Cancelled.
	Cancel func()
}
