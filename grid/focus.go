package grid

import (
	"fmt"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
	"github.com/gogpu/formgrid/editor"
	"github.com/gogpu/formgrid/interact"
	"github.com/gogpu/formgrid/rows"
)

// Focused returns the cell holding input focus, or the zero id.
func (e *Engine) Focused() rows.CellID { return e.focus }

// focusable reports whether a cell can take focus.
func (e *Engine) focusable(id rows.CellID) bool {
	row, f, err := e.lookup(id)
	if err != nil || !row.Visible() {
		return false
	}
	k, ok := e.repo.Kind(f.Kind())
	if !ok || !k.Interactive || k.Mode == editor.DirectPaint {
		return false
	}
	if b, _ := e.form.Bounds(f); b.IsEmpty() {
		return false
	}
	ch := e.chain(row, f)
	return ch.Bool(content.PropVisible, true) && ch.Bool(content.PropEnabled, true)
}

// Focus moves input focus to a cell. The previous cell's live control is
// demoted and its edit committed; a rejected edit does not block the move.
func (e *Engine) Focus(id rows.CellID) error {
	if id == e.focus {
		return nil
	}
	if !e.focusable(id) {
		return fmt.Errorf("%w: %v", ErrNotFocusable, id)
	}
	e.setFocus(id)
	return nil
}

// Blur removes focus, committing any edit.
func (e *Engine) Blur() { e.setFocus(rows.CellID{}) }

func (e *Engine) setFocus(id rows.CellID) {
	old := e.focus
	if old == id {
		return
	}
	if err := e.demote(old); err != nil {
		formgrid.Logger().Debug("grid: commit on focus change", "err", err)
	}
	e.focus = id
	formgrid.Logger().Debug("grid: focus", "row", id.Row, "field", id.Field)
	if e.handlers.OnFocusChanged != nil {
		e.handlers.OnFocusChanged(old, id)
	}
}

// MoveFocus moves focus to the next (or previous) tab stop. Tab order runs
// through the fields of one row, then continues on the next visible row.
// It reports whether focus moved.
func (e *Engine) MoveFocus(forward bool) bool {
	order := e.form.TabOrder(e.form.Root())
	var visible []*rows.Row
	for _, r := range e.rows.Rows() {
		if r.Visible() {
			visible = append(visible, r)
		}
	}
	n := len(order) * len(visible)
	if n == 0 {
		return false
	}

	pos := -1
	if !e.focus.IsZero() {
		for ri, r := range visible {
			if r.ID() != e.focus.Row {
				continue
			}
			for fi, f := range order {
				if f.Name() == e.focus.Field {
					pos = ri*len(order) + fi
				}
			}
		}
	}
	step := 1
	if !forward {
		step = -1
		if pos < 0 {
			pos = n
		}
	}
	for range n {
		pos = ((pos+step)%n + n) % n
		id := rows.CellID{Row: visible[pos/len(order)].ID(), Field: order[pos%len(order)].Name()}
		if id == e.focus {
			return false
		}
		if e.focusable(id) {
			e.setFocus(id)
			return true
		}
	}
	return false
}

// activate fires the kind's action for a clicked or activated cell.
func (e *Engine) activate(id rows.CellID, fromKey bool) {
	row, f, err := e.lookup(id)
	if err != nil {
		return
	}
	ch := e.chain(row, f)
	var (
		action  Action
		payload content.Value
	)
	switch f.Kind() {
	case editor.KindButton:
		action, payload = ActionPress, content.String(ch.String(content.PropCaption, ""))
	case editor.KindCheckBox:
		on, _ := ch.Value(content.PropValue).AsBool()
		if err := e.SetValue(id, content.Bool(!on)); err != nil {
			return
		}
		action, payload = ActionToggle, content.Bool(!on)
	case editor.KindCombo:
		action, payload = ActionDropDown, content.Strings(resolveState(ch).Items)
	default:
		if !fromKey {
			return
		}
		if err := e.CommitLive(); err != nil {
			return
		}
		action, payload = ActionActivate, e.chain(row, f).Value(content.PropValue)
	}
	if e.handlers.OnAction != nil {
		e.handlers.OnAction(id, action, payload)
	}
}

// HandlePointer feeds a pointer event in host coordinates.
func (e *Engine) HandlePointer(ev interact.PointerEvent) {
	ev.Pos = e.host.HostToDesign(ev.Pos)
	e.pointer = ev.Pos
	e.coord.HandlePointer(ev)
}

// HandleKey feeds a key press and reports whether it was consumed.
func (e *Engine) HandleKey(ev interact.KeyEvent) bool {
	if e.coord.HandleKey(ev) {
		return true
	}
	switch ev.Key {
	case interact.KeyTab:
		e.MoveFocus(ev.Modifiers&formgrid.ModShift == 0)
		return true
	case interact.KeyEnter, interact.KeySpace:
		if e.focus.IsZero() {
			return false
		}
		e.activate(e.focus, true)
		return true
	case interact.KeyEscape:
		if e.focus.IsZero() {
			return false
		}
		e.RevertLive()
		return true
	}
	return false
}
