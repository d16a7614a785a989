package rows

import (
	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
)

// RowID identifies a row for its whole lifetime. Zero is never assigned.
type RowID uint64

// Row is one data record.
type Row struct {
	id      RowID
	store   *content.Store
	visible bool
	band    formgrid.Rect
}

// ID returns the row identifier.
func (r *Row) ID() RowID { return r.id }

// Store returns the row's property overrides, keyed by column.
func (r *Row) Store() *content.Store { return r.store }

// Visible reports whether the row occupies space.
func (r *Row) Visible() bool { return r.visible }

// Band returns the row's design-space band computed by PrepareBands.
func (r *Row) Band() formgrid.Rect { return r.band }

// CellID is the stable identity of a cell: a row and a field name.
type CellID struct {
	Row   RowID
	Field string
}

// IsZero reports whether id refers to no cell.
func (id CellID) IsZero() bool { return id.Row == 0 }

// CellState is a bit set of interaction states.
type CellState uint8

// Cell states.
const (
	StateFocused CellState = 1 << iota
	StateHovered
	StatePressed
	StateDragging
	StateSelected
	StateDisabled
)

// Has reports whether every bit of s2 is set.
func (s CellState) Has(s2 CellState) bool { return s&s2 == s2 }
