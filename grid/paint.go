package grid

import (
	"errors"
	"fmt"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
	"github.com/gogpu/formgrid/editor"
	"github.com/gogpu/formgrid/rows"
)

// Paint draws every cell intersecting view, a design-space rectangle, then
// the gesture overlays. A cell that fails to render is skipped and its
// error joined into the result; the rest of the frame is still painted.
func (e *Engine) Paint(view formgrid.Rect) error {
	rng := rows.Range{Start: view.Y, End: view.Bottom()}
	cells := e.rows.VisibleCells(&rng)
	visible := make(map[rows.CellID]bool, len(cells))
	scale := formgrid.HostScale(e.host)

	var errs []error
	for _, c := range cells {
		if c.Bounds.IsEmpty() || !c.Bounds.Intersects(view) {
			continue
		}
		row, _ := e.rows.Row(c.ID.Row)
		ch := e.chain(row, c.Field)
		if !ch.Bool(content.PropVisible, true) {
			continue
		}
		c.State = e.stateOf(c, ch)
		visible[c.ID] = true
		// A live cell that can no longer stay live commits its edit first,
		// so the bitmap drawn below already shows the stored value.
		if _, live := e.repo.Live(c.ID); live && !e.repo.NeedsLiveControl(c, true, false) {
			if err := e.demote(c.ID); err != nil {
				formgrid.Logger().Debug("grid: commit on demotion", "row", c.ID.Row, "field", c.ID.Field, "err", err)
			}
		}
		st := resolveState(ch)
		st.Scale = scale
		err := e.repo.Render(editor.Request{
			Cell:      c,
			State:     st,
			Dest:      formgrid.DesignToHostRect(e.host, c.Bounds),
			Displayed: true,
		})
		if err != nil {
			formgrid.Logger().Warn("grid: cell paint failed", "row", c.ID.Row, "field", c.ID.Field, "err", err)
			errs = append(errs, fmt.Errorf("grid: paint %v: %w", c.ID, err))
		}
	}

	// A focused cell scrolled out of view gives up its control; its edit
	// is committed and focus stays.
	if !e.focus.IsZero() && !visible[e.focus] {
		if err := e.demote(e.focus); err != nil {
			formgrid.Logger().Debug("grid: commit offscreen edit", "err", err)
		}
	}
	e.repo.ReleaseOffscreen(visible)
	e.paintOverlays()
	return errors.Join(errs...)
}

func (e *Engine) paintOverlays() {
	if r, ok := e.coord.Frame(); ok {
		e.host.DrawRectangle(formgrid.DesignToHostRect(e.host, r), e.opts.stroke, e.opts.fill)
	}
	item, over := e.coord.Dragged()
	if !over.IsZero() {
		if t, ok := e.Target(over); ok {
			e.host.DrawRectangle(formgrid.DesignToHostRect(e.host, t.Bounds), e.opts.stroke, formgrid.Transparent)
		}
	}
	if !item.IsZero() {
		if t, ok := e.Target(item); ok {
			ghost := t.Bounds.Translate(e.pointer.Sub(e.drag.Pos))
			e.host.DrawRectangle(formgrid.DesignToHostRect(e.host, ghost), e.opts.stroke, e.opts.fill)
		}
	}
}
