package interact

import (
	"math"
	"strconv"
	"time"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/rows"
)

// State is the gesture state.
type State uint8

// Gesture states.
const (
	Idle State = iota
	Hover
	MouseDownZone
	DraggingItem
	FrameSelecting
	Cancelled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hover:
		return "hover"
	case MouseDownZone:
		return "mouse-down-zone"
	case DraggingItem:
		return "dragging-item"
	case FrameSelecting:
		return "frame-selecting"
	case Cancelled:
		return "cancelled"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

type downRecord struct {
	item rows.CellID
	pos  formgrid.Point
	time time.Time
	mods formgrid.Modifiers
	ok   bool
}

// Coordinator is the pointer and keyboard state machine of one grid.
//
// Coordinator is not safe for concurrent use.
type Coordinator struct {
	src  Source
	cb   Callbacks
	opts options

	state State
	hover rows.CellID

	down        downRecord
	prevDown    downRecord
	doubleClick bool

	drag      rows.CellID
	dragBegin DragState
	dragOver  rows.CellID
	pos       formgrid.Point
}

// New creates a coordinator hit-testing against src.
func New(src Source, cb Callbacks, opts ...Option) *Coordinator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Coordinator{src: src, cb: cb, opts: o}
}

// SetCallbacks replaces the notification callbacks.
func (c *Coordinator) SetCallbacks(cb Callbacks) { c.cb = cb }

// State returns the current gesture state.
func (c *Coordinator) State() State { return c.state }

// Hovered returns the item under the pointer while idle or hovering.
func (c *Coordinator) Hovered() rows.CellID { return c.hover }

// Pressed returns the item pressed in the current gesture, if any.
func (c *Coordinator) Pressed() rows.CellID {
	if c.state == MouseDownZone {
		return c.down.item
	}
	return rows.CellID{}
}

// Dragged returns the item being dragged and the current drop target.
func (c *Coordinator) Dragged() (item, over rows.CellID) {
	if c.state != DraggingItem {
		return rows.CellID{}, rows.CellID{}
	}
	return c.drag, c.dragOver
}

// Frame returns the swept rectangle while frame selecting.
func (c *Coordinator) Frame() (formgrid.Rect, bool) {
	if c.state != FrameSelecting {
		return formgrid.Rect{}, false
	}
	return formgrid.RectFromPoints(c.down.pos, c.pos), true
}

// HitTest returns the top-ranked item at p.
func (c *Coordinator) HitTest(p formgrid.Point) (Target, bool) {
	return top(c.src.TargetsAt(p), rows.CellID{})
}

// rank orders items for hit-testing: disabled items rank lowest whatever
// their other state, and selected items outrank any interactive state.
func rank(s rows.CellState) int {
	r := 1
	switch {
	case s.Has(rows.StateDisabled):
		r = 0
	case s.Has(rows.StatePressed), s.Has(rows.StateDragging):
		r = 3
	case s.Has(rows.StateHovered):
		r = 2
	}
	if s.Has(rows.StateSelected) {
		r += 10
	}
	return r
}

// top returns the winner among ts, skipping exclude. Ties go to the item
// painted last.
func top(ts []Target, exclude rows.CellID) (Target, bool) {
	var best Target
	found := false
	for _, t := range ts {
		if t.ID.IsZero() || t.ID == exclude {
			continue
		}
		if !found {
			best, found = t, true
			continue
		}
		rt, rb := rank(t.State), rank(best.State)
		if rt > rb || (rt == rb && t.Order > best.Order) {
			best = t
		}
	}
	return best, found
}

// HandlePointer advances the state machine.
func (c *Coordinator) HandlePointer(ev PointerEvent) {
	c.pos = ev.Pos
	switch ev.Kind {
	case Move:
		c.move(ev)
	case Down:
		c.press(ev)
	case Up:
		c.release(ev)
	}
}

// HandleKey advances the state machine and reports whether the key was
// consumed.
func (c *Coordinator) HandleKey(ev KeyEvent) bool {
	if ev.Key != KeyEscape {
		return false
	}
	switch c.state {
	case MouseDownZone, DraggingItem, FrameSelecting:
		c.cancel()
		return true
	case Cancelled:
		return true
	}
	return false
}

// Reset abandons any gesture without notifications and clears hover.
func (c *Coordinator) Reset() {
	c.setHover(rows.CellID{})
	c.transition(Idle)
	c.drag, c.dragOver = rows.CellID{}, rows.CellID{}
}

// Sync drops references to items that no longer exist. Call it after the
// item set changes.
func (c *Coordinator) Sync() {
	if !c.hover.IsZero() {
		if _, ok := c.src.Target(c.hover); !ok {
			c.setHover(rows.CellID{})
			if c.state == Hover {
				c.transition(Idle)
			}
		}
	}
	if !c.drag.IsZero() {
		if _, ok := c.src.Target(c.drag); !ok {
			c.drag = rows.CellID{}
		}
	}
	if !c.down.item.IsZero() {
		if _, ok := c.src.Target(c.down.item); !ok {
			c.down.item = rows.CellID{}
		}
	}
}

func (c *Coordinator) move(ev PointerEvent) {
	switch c.state {
	case Idle, Hover:
		c.updateHover(ev.Pos)

	case MouseDownZone:
		if c.insideDeadZone(ev.Pos) {
			return
		}
		switch {
		case !c.opts.drag:
			c.cancel()
		case !c.down.item.IsZero():
			c.drag = c.down.item
			c.dragBegin = DragState{Target: c.down.item, Pos: c.down.pos, Modifiers: c.down.mods}
			c.transition(DraggingItem)
			if c.cb.DragStart != nil {
				c.cb.DragStart(c.drag, c.dragBegin)
			}
			c.dragMove(ev)
		case c.opts.frame:
			c.transition(FrameSelecting)
			c.frameMove()
		default:
			c.cancel()
		}

	case DraggingItem:
		c.dragMove(ev)

	case FrameSelecting:
		c.frameMove()
	}
}

func (c *Coordinator) dragMove(ev PointerEvent) {
	if !c.drag.IsZero() {
		if _, ok := c.src.Target(c.drag); !ok {
			c.drag = rows.CellID{}
		}
	}
	over, _ := top(c.src.TargetsAt(ev.Pos), c.drag)
	c.dragOver = over.ID
	if c.cb.DragOver != nil {
		c.cb.DragOver(c.drag, DragState{Target: c.dragOver, Pos: ev.Pos, Modifiers: ev.Modifiers})
	}
}

func (c *Coordinator) frameMove() {
	if c.cb.FrameMove != nil {
		r, _ := c.Frame()
		c.cb.FrameMove(r)
	}
}

func (c *Coordinator) press(ev PointerEvent) {
	if c.state != Idle && c.state != Hover {
		return
	}
	t, _ := c.HitTest(ev.Pos)
	c.down = downRecord{item: t.ID, pos: ev.Pos, time: ev.Time, mods: ev.Modifiers, ok: true}
	c.doubleClick = c.isDoubleClick(c.down)
	c.transition(MouseDownZone)
}

func (c *Coordinator) isDoubleClick(d downRecord) bool {
	p := c.prevDown
	if !p.ok || p.item != d.item {
		return false
	}
	gap := d.time.Sub(p.time)
	if gap < 0 || gap > c.opts.doubleClickTime {
		return false
	}
	return p.pos.Distance(d.pos) <= c.opts.doubleClickDistance
}

func (c *Coordinator) release(ev PointerEvent) {
	info := MouseInfo{Pos: ev.Pos, Modifiers: ev.Modifiers, Time: ev.Time}
	switch c.state {
	case Idle:
		return

	case Hover:
		c.setHover(rows.CellID{})
		c.transition(Idle)
		return

	case MouseDownZone:
		// The click goes to the item resolved at mouse-down.
		info.DoubleClick = c.doubleClick
		item := c.down.item
		c.finishDown()
		c.transition(Idle)
		if item.IsZero() {
			if c.cb.AreaClick != nil {
				c.cb.AreaClick(info)
			}
		} else if c.cb.ItemClick != nil {
			c.cb.ItemClick(item, info)
		}

	case DraggingItem:
		c.dragMove(ev)
		end := DragState{Target: c.dragOver, Pos: ev.Pos, Modifiers: ev.Modifiers}
		item, begin := c.drag, c.dragBegin
		c.drag, c.dragOver = rows.CellID{}, rows.CellID{}
		c.prevDown = downRecord{}
		c.transition(Idle)
		if c.cb.ItemDragEnd != nil {
			c.cb.ItemDragEnd(item, begin, end)
		}

	case FrameSelecting:
		r, _ := c.Frame()
		c.prevDown = downRecord{}
		c.transition(Idle)
		if c.cb.FrameComplete != nil {
			c.cb.FrameComplete(r, info)
		}

	case Cancelled:
		c.drag, c.dragOver = rows.CellID{}, rows.CellID{}
		c.prevDown = downRecord{}
		c.transition(Idle)
	}
	c.updateHover(ev.Pos)
}

// finishDown records the completed down for double-click detection. A
// double-click consumes the record so a third down starts a new pair.
func (c *Coordinator) finishDown() {
	if c.doubleClick {
		c.prevDown = downRecord{}
	} else {
		c.prevDown = c.down
	}
	c.doubleClick = false
}

func (c *Coordinator) cancel() {
	c.transition(Cancelled)
	if c.cb.Cancel != nil {
		c.cb.Cancel()
	}
}

func (c *Coordinator) insideDeadZone(p formgrid.Point) bool {
	d := p.Sub(c.down.pos)
	return math.Abs(d.X) <= c.opts.deadZone.W/2 && math.Abs(d.Y) <= c.opts.deadZone.H/2
}

func (c *Coordinator) updateHover(p formgrid.Point) {
	t, ok := c.HitTest(p)
	c.setHover(t.ID)
	if ok {
		c.transition(Hover)
	} else {
		c.transition(Idle)
	}
}

// setHover fires leave and enter once per change of hovered item.
func (c *Coordinator) setHover(id rows.CellID) {
	if id == c.hover {
		return
	}
	old := c.hover
	c.hover = id
	if !old.IsZero() && c.cb.ItemLeave != nil {
		c.cb.ItemLeave(old)
	}
	if !id.IsZero() && c.cb.ItemEnter != nil {
		c.cb.ItemEnter(id)
	}
}

func (c *Coordinator) transition(s State) {
	if c.state == s {
		return
	}
	formgrid.Logger().Debug("interact: transition", "from", c.state, "to", s)
	c.state = s
}
