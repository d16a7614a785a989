package grid

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
	"github.com/gogpu/formgrid/editor"
	"github.com/gogpu/formgrid/interact"
	"github.com/gogpu/formgrid/layout"
	"github.com/gogpu/formgrid/rows"
)

var (
	// ErrUnknownCell is returned for a cell id whose row or field does not exist.
	ErrUnknownCell = errors.New("grid: unknown cell")

	// ErrValueRejected is returned when OnValueChanging declines an edit.
	ErrValueRejected = errors.New("grid: value rejected")

	// ErrNotFocusable is returned when focusing a disabled or hidden cell,
	// or one whose kind cannot take input.
	ErrNotFocusable = errors.New("grid: cell cannot take focus")
)

// Engine is a virtualized form grid bound to one host.
type Engine struct {
	host  formgrid.Host
	form  *layout.Form
	rows  *rows.Virtualizer
	repo  *editor.Repository
	coord *interact.Coordinator
	opts  options

	handlers Handlers

	focus    rows.CellID
	selected map[rows.CellID]bool
	drag     interact.DragState
	pointer  formgrid.Point
}

// New creates an engine painting form through host. A nil kinds slice uses
// editor.StandardKinds.
func New(host formgrid.Host, form *layout.Form, kinds []editor.Kind, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rowSize.IsEmpty() {
		o.rowSize = form.Size()
	} else {
		o.fixedRowSize = true
	}
	if kinds == nil {
		kinds = editor.StandardKinds()
	}
	e := &Engine{
		host:     host,
		form:     form,
		rows:     rows.New(form),
		repo:     editor.New(host, kinds, o.editor...),
		opts:     o,
		selected: make(map[rows.CellID]bool),
	}
	e.coord = interact.New(e, e.callbacks(), o.interact...)
	e.rows.PrepareBands(o.rowSize)
	formgrid.Logger().Info("grid: engine created", "form", form.Name(), "fields", len(form.Fields()), "row_size", o.rowSize)
	return e
}

// Form returns the layout.
func (e *Engine) Form() *layout.Form { return e.form }

// Rows returns the row virtualizer.
func (e *Engine) Rows() *rows.Virtualizer { return e.rows }

// Repository returns the editor repository.
func (e *Engine) Repository() *editor.Repository { return e.repo }

// Coordinator returns the interaction state machine.
func (e *Engine) Coordinator() *interact.Coordinator { return e.coord }

// SetHandlers replaces the application callbacks.
func (e *Engine) SetHandlers(h Handlers) { e.handlers = h }

// SetRowSize changes the band size of every row. Once set, the band size
// no longer follows the form size.
func (e *Engine) SetRowSize(s formgrid.Size) {
	e.opts.rowSize, e.opts.fixedRowSize = s, true
	e.rows.PrepareBands(s)
}

// SetViewportSize tells the engine the host viewport changed size, in
// design units. Size-dependent containers reflow, rows that follow the
// form size are re-banded, and cached images are dropped so cells repaint
// at their new bounds.
func (e *Engine) SetViewportSize(s formgrid.Size) {
	before := e.form.Version()
	e.form.SetViewportSize(s)
	if e.form.Version() == before {
		return
	}
	if !e.opts.fixedRowSize {
		e.opts.rowSize = e.rowSizeFor(s)
	}
	e.rows.PrepareBands(e.opts.rowSize)
	e.InvalidateAll()
	e.coord.Sync()
	formgrid.Logger().Debug("grid: viewport resized", "size", s, "row_size", e.opts.rowSize)
}

// rowSizeFor returns the band size of a row when the form lays out in a
// viewport of size s: a size-dependent root takes the viewport width.
func (e *Engine) rowSizeFor(s formgrid.Size) formgrid.Size {
	rs := e.form.Size()
	if e.form.Root().SizeDependent() && s.W > 0 {
		rs.W = s.W
	}
	return rs
}

// ContentSize returns the design-space size of all visible rows.
func (e *Engine) ContentSize() formgrid.Size { return e.rows.ContentSize() }

// AddRow appends a row and sets the given column values on it.
func (e *Engine) AddRow(values map[string]content.Value) (*rows.Row, error) {
	return e.InsertRow(e.rows.Len(), values)
}

// InsertRow inserts a row at position i.
func (e *Engine) InsertRow(i int, values map[string]content.Value) (*rows.Row, error) {
	r := e.rows.Insert(i)
	for col, v := range values {
		if err := r.Store().Set(col, content.PropValue, v); err != nil {
			e.rows.Remove(r.ID())
			return nil, fmt.Errorf("grid: row value %q: %w", col, err)
		}
	}
	return r, nil
}

// RemoveRow deletes a row. Its cached images and live controls are released
// and any gesture or focus on it is dropped.
func (e *Engine) RemoveRow(id rows.RowID) bool {
	if !e.rows.Remove(id) {
		return false
	}
	for c := range e.selected {
		if c.Row == id {
			delete(e.selected, c)
		}
	}
	e.repo.ForgetRow(id)
	if e.focus.Row == id {
		e.setFocus(rows.CellID{})
	}
	e.coord.Sync()
	return true
}

// SetRowVisible shows or hides a row.
func (e *Engine) SetRowVisible(id rows.RowID, visible bool) error {
	if err := e.rows.SetVisible(id, visible); err != nil {
		return err
	}
	if !visible {
		e.coord.Sync()
	}
	return nil
}

// chain returns the property resolution chain of a cell.
func (e *Engine) chain(row *rows.Row, f *layout.Field) content.Chain {
	return content.Chain{
		Row:    row.Store(),
		Field:  f.Store(),
		Form:   e.form.Store(),
		Column: f.Column(),
	}
}

func (e *Engine) lookup(id rows.CellID) (*rows.Row, *layout.Field, error) {
	row, ok := e.rows.Row(id.Row)
	if !ok {
		return nil, nil, fmt.Errorf("%w: row %d", ErrUnknownCell, id.Row)
	}
	f, ok := e.form.Field(id.Field)
	if !ok {
		return nil, nil, fmt.Errorf("%w: field %q", ErrUnknownCell, id.Field)
	}
	return row, f, nil
}

// Value returns the effective value of a cell.
func (e *Engine) Value(id rows.CellID) (content.Value, error) {
	row, f, err := e.lookup(id)
	if err != nil {
		return content.Value{}, err
	}
	return e.chain(row, f).Value(content.PropValue), nil
}

// ControlState resolves everything a control needs to render a cell,
// except its size and scale.
func (e *Engine) ControlState(id rows.CellID) (formgrid.ControlState, error) {
	row, f, err := e.lookup(id)
	if err != nil {
		return formgrid.ControlState{}, err
	}
	return resolveState(e.chain(row, f)), nil
}

func resolveState(ch content.Chain) formgrid.ControlState {
	s := formgrid.ControlState{
		Value:   ch.Value(content.PropValue),
		Caption: ch.String(content.PropCaption, ""),
		Enabled: ch.Bool(content.PropEnabled, true),
		Style: formgrid.Style{
			FontStyle:     formgrid.FontStyle(ch.Int(content.PropFontStyle, 0)),
			FontSizeRatio: ch.Float(content.PropFontSizeRatio, 1),
			FontColor:     colorOf(ch, content.PropFontColor, formgrid.Black),
			Background:    colorOf(ch, content.PropBackground, formgrid.Transparent),
		},
	}
	if items, ok := ch.Value(content.PropItems).AsStrings(); ok {
		s.Items = items
	} else if buttons, ok := ch.Value(content.PropButtons).AsStrings(); ok {
		s.Items = buttons
	}
	return s
}

func colorOf(ch content.Chain, prop content.PropertyID, def color.NRGBA) color.NRGBA {
	if c, ok := ch.Value(prop).AsColor(); ok {
		return c
	}
	return def
}

// cellVisible reports whether the field is shown in row.
func (e *Engine) cellVisible(row *rows.Row, f *layout.Field) bool {
	return e.chain(row, f).Bool(content.PropVisible, true)
}

// stateOf computes the interaction state bits of a cell.
func (e *Engine) stateOf(c *rows.Cell, ch content.Chain) rows.CellState {
	var s rows.CellState
	if c.ID == e.focus {
		s |= rows.StateFocused
	}
	if c.ID == e.coord.Hovered() {
		s |= rows.StateHovered
	}
	if c.ID == e.coord.Pressed() {
		s |= rows.StatePressed
	}
	if dragged, _ := e.coord.Dragged(); c.ID == dragged {
		s |= rows.StateDragging
	}
	if e.selected[c.ID] {
		s |= rows.StateSelected
	}
	if !ch.Bool(content.PropEnabled, true) {
		s |= rows.StateDisabled
	}
	return s
}

// TargetsAt implements interact.Source.
func (e *Engine) TargetsAt(p formgrid.Point) []interact.Target {
	cells := e.rows.CellsAt(p)
	out := make([]interact.Target, 0, len(cells))
	for _, c := range cells {
		row, _ := e.rows.Row(c.ID.Row)
		ch := e.chain(row, c.Field)
		if !ch.Bool(content.PropVisible, true) || c.Bounds.IsEmpty() {
			continue
		}
		out = append(out, interact.Target{ID: c.ID, Bounds: c.Bounds, State: e.stateOf(c, ch), Order: c.Order})
	}
	return out
}

// Target implements interact.Source.
func (e *Engine) Target(id rows.CellID) (interact.Target, bool) {
	c, ok := e.rows.Cell(id)
	if !ok {
		return interact.Target{}, false
	}
	row, _ := e.rows.Row(id.Row)
	ch := e.chain(row, c.Field)
	if !ch.Bool(content.PropVisible, true) {
		return interact.Target{}, false
	}
	return interact.Target{ID: id, Bounds: c.Bounds, State: e.stateOf(c, ch), Order: c.Order}, true
}
