package rows

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
	"github.com/gogpu/formgrid/layout"
)

// Range is a vertical pixel range [Start, End) in design space.
type Range struct {
	Start, End float64

	// Adjustable lets RowsInRange shrink the range to the band actually
	// covered by the returned rows.
	Adjustable bool
}

// Unrestricted returns the sentinel range that selects every row.
func Unrestricted() Range {
	return Range{Start: math.Inf(-1), End: math.Inf(1)}
}

// IsUnrestricted reports whether r is the sentinel.
func (r Range) IsUnrestricted() bool {
	return math.IsInf(r.Start, -1) && math.IsInf(r.End, 1)
}

// Height returns End - Start.
func (r Range) Height() float64 { return r.End - r.Start }

// Virtualizer owns the rows of a grid and their vertical bands.
//
// Virtualizer is not safe for concurrent use.
type Virtualizer struct {
	form    *layout.Form
	rows    []*Row
	index   map[RowID]int
	indexOK bool
	nextID  RowID

	rowSize    formgrid.Size
	bandsValid bool
	content    formgrid.Size
}

// New creates an empty virtualizer for form.
func New(form *layout.Form) *Virtualizer {
	return &Virtualizer{form: form, nextID: 1}
}

// Form returns the layout the rows are rendered with.
func (v *Virtualizer) Form() *layout.Form { return v.form }

// Len returns the number of rows, visible or not.
func (v *Virtualizer) Len() int { return len(v.rows) }

// Rows returns every row in order. The slice must not be modified.
func (v *Virtualizer) Rows() []*Row { return v.rows }

// Add appends a visible row and returns it.
func (v *Virtualizer) Add() *Row {
	return v.Insert(len(v.rows))
}

// Insert adds a visible row at position i.
func (v *Virtualizer) Insert(i int) *Row {
	i = max(0, min(i, len(v.rows)))
	r := &Row{
		id:      v.nextID,
		store:   content.NewStore(v.form.Columns()),
		visible: true,
	}
	v.nextID++
	v.rows = slices.Insert(v.rows, i, r)
	v.indexOK = false
	v.bandsValid = false
	return r
}

// Remove deletes the row with the given id.
func (v *Virtualizer) Remove(id RowID) bool {
	i, ok := v.position(id)
	if !ok {
		return false
	}
	v.rows = slices.Delete(v.rows, i, i+1)
	v.indexOK = false
	v.bandsValid = false
	return true
}

// Clear removes every row. Row ids are never reused.
func (v *Virtualizer) Clear() {
	v.rows = nil
	v.indexOK = false
	v.bandsValid = false
}

// Row looks up a row by id.
func (v *Virtualizer) Row(id RowID) (*Row, bool) {
	i, ok := v.position(id)
	if !ok {
		return nil, false
	}
	return v.rows[i], true
}

// Index returns the position of the row with the given id.
func (v *Virtualizer) Index(id RowID) (int, bool) {
	return v.position(id)
}

func (v *Virtualizer) position(id RowID) (int, bool) {
	if !v.indexOK {
		if v.index == nil {
			v.index = make(map[RowID]int, len(v.rows))
		} else {
			clear(v.index)
		}
		for i, r := range v.rows {
			v.index[r.id] = i
		}
		v.indexOK = true
	}
	i, ok := v.index[id]
	return i, ok
}

// SetVisible shows or hides a row.
func (v *Virtualizer) SetVisible(id RowID, visible bool) error {
	r, ok := v.Row(id)
	if !ok {
		return fmt.Errorf("rows: unknown row %d", id)
	}
	if r.visible != visible {
		r.visible = visible
		v.bandsValid = false
	}
	return nil
}

// PrepareBands assigns every visible row a band of oneRowSize stacked from
// the top. Invisible rows get a zero-height band at the running offset and
// do not advance it.
func (v *Virtualizer) PrepareBands(oneRowSize formgrid.Size) {
	var y float64
	v.content = formgrid.Size{}
	for _, r := range v.rows {
		if !r.visible {
			r.band = formgrid.Rect{Y: y, W: oneRowSize.W}
			continue
		}
		r.band = formgrid.Rect{Y: y, W: oneRowSize.W, H: oneRowSize.H}
		y += oneRowSize.H
		v.content.W = max(v.content.W, r.band.Right())
		v.content.H = max(v.content.H, r.band.Bottom())
	}
	v.rowSize = oneRowSize
	v.bandsValid = true
}

// ensureBands recomputes bands after rows changed.
func (v *Virtualizer) ensureBands() {
	if !v.bandsValid {
		v.PrepareBands(v.rowSize)
	}
}

// RowSize returns the size last passed to PrepareBands.
func (v *Virtualizer) RowSize() formgrid.Size { return v.rowSize }

// ContentSize returns (max right, max bottom) across visible rows.
func (v *Virtualizer) ContentSize() formgrid.Size {
	v.ensureBands()
	return v.content
}

// RowsInRange returns the visible rows intersecting *r, in order.
//
// The unrestricted sentinel selects every visible row and is replaced by
// the full content height. An adjustable range is shrunk to the band the
// returned rows cover. With no rows at all, r becomes a zero-sized range.
func (v *Virtualizer) RowsInRange(r *Range) []*Row {
	v.ensureBands()
	if len(v.rows) == 0 {
		*r = Range{Adjustable: r.Adjustable}
		return nil
	}
	if r.IsUnrestricted() {
		*r = Range{Start: 0, End: v.content.H, Adjustable: r.Adjustable}
	}

	// Bands are monotone, so the first candidate is found by binary search.
	start := sort.Search(len(v.rows), func(i int) bool {
		return v.rows[i].band.Bottom() > r.Start
	})

	var out []*Row
	for _, row := range v.rows[start:] {
		if row.band.Y >= r.End {
			break
		}
		if !row.visible || row.band.H <= 0 {
			continue
		}
		out = append(out, row)
	}

	if r.Adjustable {
		if len(out) == 0 {
			*r = Range{Start: r.Start, End: r.Start, Adjustable: true}
		} else {
			*r = Range{Start: out[0].band.Y, End: out[len(out)-1].band.Bottom(), Adjustable: true}
		}
	}
	return out
}

// RowAt returns the visible row whose band contains y.
func (v *Virtualizer) RowAt(y float64) (*Row, bool) {
	r := Range{Start: y, End: math.Nextafter(y, math.Inf(1))}
	rows := v.RowsInRange(&r)
	if len(rows) == 0 {
		return nil, false
	}
	return rows[0], true
}
