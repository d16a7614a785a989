package grid

import (
	"errors"
	"fmt"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
	"github.com/gogpu/formgrid/rows"
)

// ErrUnboundField is returned when editing a field with no data column.
var ErrUnboundField = errors.New("grid: field has no column")

// SetValue stores v as the row's value for a cell. OnValueChanging may
// reject it, in which case nothing is stored and any live control reverts
// to the old value.
func (e *Engine) SetValue(id rows.CellID, v content.Value) error {
	row, f, err := e.lookup(id)
	if err != nil {
		return err
	}
	if f.Column() == "" {
		return fmt.Errorf("%w: %q", ErrUnboundField, f.Name())
	}
	old := e.chain(row, f).Value(content.PropValue)
	if e.handlers.OnValueChanging != nil && !e.handlers.OnValueChanging(id, old, v) {
		e.syncLive(id, old)
		formgrid.Logger().Debug("grid: value rejected", "row", id.Row, "field", id.Field)
		return fmt.Errorf("%w: %v", ErrValueRejected, id)
	}
	if err := row.Store().Set(f.Column(), content.PropValue, v); err != nil {
		return fmt.Errorf("grid: store value: %w", err)
	}
	e.repo.Invalidate(id)
	e.syncLive(id, v)
	if e.handlers.OnValueChanged != nil {
		e.handlers.OnValueChanged(id, v)
	}
	return nil
}

// syncLive pushes v into the cell's live control, if it has one.
func (e *Engine) syncLive(id rows.CellID, v content.Value) {
	ctl, ok := e.repo.Live(id)
	if !ok {
		return
	}
	st := ctl.State()
	st.Value = v
	ctl.SetState(st)
}

// commit stores an edited value if it differs from the current one.
func (e *Engine) commit(id rows.CellID, v content.Value) error {
	cur, err := e.Value(id)
	if err != nil {
		return err
	}
	if v.Equal(cur) {
		return nil
	}
	return e.SetValue(id, v)
}

// CommitLive stores the value typed into the focused cell's live control.
func (e *Engine) CommitLive() error {
	if e.focus.IsZero() {
		return nil
	}
	ctl, ok := e.repo.Live(e.focus)
	if !ok {
		return nil
	}
	return e.commit(e.focus, ctl.State().Value)
}

// RevertLive discards the edit in the focused cell's live control.
func (e *Engine) RevertLive() {
	if e.focus.IsZero() {
		return
	}
	if v, err := e.Value(e.focus); err == nil {
		e.syncLive(e.focus, v)
	}
}

// demote returns a cell's live control to the pool and commits its value.
func (e *Engine) demote(id rows.CellID) error {
	st, ok := e.repo.Demote(id)
	if !ok {
		return nil
	}
	return e.commit(id, st.Value)
}

// Invalidate forces the next paint of a cell to regenerate its image.
// Call it after changing a cell's properties directly in a store.
func (e *Engine) Invalidate(id rows.CellID) { e.repo.Invalidate(id) }

// InvalidateAll drops every cached image, for example after a change to
// form-wide style defaults.
func (e *Engine) InvalidateAll() {
	if err := e.demote(e.focus); err != nil {
		formgrid.Logger().Warn("grid: commit on invalidate", "err", err)
	}
	e.repo.Clear()
}
