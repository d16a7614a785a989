package grid

import (
	"strconv"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
	"github.com/gogpu/formgrid/interact"
	"github.com/gogpu/formgrid/rows"
)

// Action is the kind of activation reported by OnAction.
type Action uint8

// Actions.
const (
	// ActionPress is a button click. The payload is the button caption.
	ActionPress Action = iota
	// ActionToggle is a checkbox click. The payload is the new value.
	ActionToggle
	// ActionDropDown is a click on a combo. The payload is its items.
	ActionDropDown
	// ActionActivate is Enter or Space on a focused cell of any other kind.
	// The payload is the cell value.
	ActionActivate
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionToggle:
		return "toggle"
	case ActionDropDown:
		return "drop-down"
	case ActionActivate:
		return "activate"
	default:
		return "Action(" + strconv.Itoa(int(a)) + ")"
	}
}

// Handlers are the application callbacks. Nil fields are skipped.
type Handlers struct {
	// OnValueChanging validates an edit before it is stored. Returning
	// false rejects it and the cell keeps old.
	OnValueChanging func(id rows.CellID, old, proposed content.Value) bool
	// OnValueChanged reports a stored edit.
	OnValueChanged func(id rows.CellID, v content.Value)

	OnAction func(id rows.CellID, a Action, payload content.Value)

	OnItemEnter func(id rows.CellID)
	OnItemLeave func(id rows.CellID)

	OnAreaClick   func(m interact.MouseInfo)
	OnItemClick   func(id rows.CellID, m interact.MouseInfo)
	OnItemDragEnd func(id rows.CellID, begin, end interact.DragState)
	// OnFrameSelect reports the swept rectangle, in design space, and the
	// cells it selected.
	OnFrameSelect func(r formgrid.Rect, ids []rows.CellID)

	OnFocusChanged func(old, focused rows.CellID)
}

// callbacks wires the coordinator's notifications into the engine.
func (e *Engine) callbacks() interact.Callbacks {
	return interact.Callbacks{
		ItemEnter: func(id rows.CellID) {
			if e.handlers.OnItemEnter != nil {
				e.handlers.OnItemEnter(id)
			}
		},
		ItemLeave: func(id rows.CellID) {
			if e.handlers.OnItemLeave != nil {
				e.handlers.OnItemLeave(id)
			}
		},
		ItemClick: e.itemClick,
		AreaClick: e.areaClick,
		DragStart: func(_ rows.CellID, begin interact.DragState) {
			e.drag = begin
		},
		ItemDragEnd: func(id rows.CellID, begin, end interact.DragState) {
			e.drag = interact.DragState{}
			if e.handlers.OnItemDragEnd != nil {
				e.handlers.OnItemDragEnd(id, begin, end)
			}
		},
		FrameComplete: e.frameComplete,
	}
}

func (e *Engine) itemClick(id rows.CellID, m interact.MouseInfo) {
	switch {
	case m.Modifiers&(formgrid.ModCtrl|formgrid.ModMeta) != 0:
		if e.selected[id] {
			delete(e.selected, id)
		} else {
			e.selected[id] = true
		}
	default:
		clear(e.selected)
		e.selected[id] = true
	}

	if err := e.Focus(id); err == nil {
		e.activate(id, false)
	}
	if e.handlers.OnItemClick != nil {
		e.handlers.OnItemClick(id, m)
	}
}

func (e *Engine) areaClick(m interact.MouseInfo) {
	clear(e.selected)
	e.Blur()
	if e.handlers.OnAreaClick != nil {
		e.handlers.OnAreaClick(m)
	}
}

func (e *Engine) frameComplete(r formgrid.Rect, m interact.MouseInfo) {
	if m.Modifiers&(formgrid.ModCtrl|formgrid.ModMeta) == 0 {
		clear(e.selected)
	}
	var ids []rows.CellID
	for _, c := range e.rows.CellsIn(r) {
		row, _ := e.rows.Row(c.ID.Row)
		if !e.cellVisible(row, c.Field) || c.Bounds.IsEmpty() {
			continue
		}
		e.selected[c.ID] = true
		ids = append(ids, c.ID)
	}
	if e.handlers.OnFrameSelect != nil {
		e.handlers.OnFrameSelect(r, ids)
	}
}

// Selected reports whether a cell is selected.
func (e *Engine) Selected(id rows.CellID) bool { return e.selected[id] }

// Selection returns the selected cells in no particular order.
func (e *Engine) Selection() []rows.CellID {
	out := make([]rows.CellID, 0, len(e.selected))
	for id := range e.selected {
		out = append(out, id)
	}
	return out
}

// ClearSelection deselects every cell.
func (e *Engine) ClearSelection() { clear(e.selected) }
