package rows

import (
	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/layout"
)

// Cell pairs one row with one layout field. Cells are ephemeral: they are
// built for visible rows on demand and may be discarded at any time.
type Cell struct {
	ID     CellID
	Field  *layout.Field
	Bounds formgrid.Rect
	State  CellState

	// Order is the paint order among the cells of one materialization.
	// Later cells are painted on top.
	Order int

	// ImageID is the shared cache entry last painted for the cell, or 0.
	ImageID int
	// Live reports whether a pooled control currently represents the cell.
	Live bool
}

// Cells materializes one cell per field, in document order, for each row.
// Field bounds are translated by the row's band origin.
func (v *Virtualizer) Cells(rows []*Row) []*Cell {
	fields := v.form.Fields()
	out := make([]*Cell, 0, len(rows)*len(fields))
	for _, r := range rows {
		origin := r.band.Origin()
		for _, f := range fields {
			b, _ := v.form.Bounds(f)
			out = append(out, &Cell{
				ID:     CellID{Row: r.id, Field: f.Name()},
				Field:  f,
				Bounds: b.Translate(origin),
				Order:  len(out),
			})
		}
	}
	return out
}

// VisibleCells materializes the cells of every row intersecting r.
func (v *Virtualizer) VisibleCells(r *Range) []*Cell {
	return v.Cells(v.RowsInRange(r))
}

// Cell materializes the cell identified by id.
func (v *Virtualizer) Cell(id CellID) (*Cell, bool) {
	row, ok := v.Row(id.Row)
	if !ok || !row.visible {
		return nil, false
	}
	f, ok := v.form.Field(id.Field)
	if !ok {
		return nil, false
	}
	v.ensureBands()
	b, _ := v.form.Bounds(f)
	return &Cell{
		ID:     id,
		Field:  f,
		Bounds: b.Translate(row.band.Origin()),
		Order:  f.Order(),
	}, true
}

// CellsAt returns the cells whose bounds contain p, in paint order.
func (v *Virtualizer) CellsAt(p formgrid.Point) []*Cell {
	row, ok := v.RowAt(p.Y)
	if !ok {
		return nil
	}
	var out []*Cell
	for _, c := range v.Cells([]*Row{row}) {
		if c.Bounds.Contains(p) {
			out = append(out, c)
		}
	}
	return out
}

// CellsIn returns the cells of visible rows whose bounds intersect r.
func (v *Virtualizer) CellsIn(r formgrid.Rect) []*Cell {
	rng := Range{Start: r.Y, End: r.Bottom()}
	var out []*Cell
	for _, c := range v.VisibleCells(&rng) {
		if c.Bounds.Intersects(r) {
			out = append(out, c)
		}
	}
	return out
}
