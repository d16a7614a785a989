// Package rows virtualizes a form over an unbounded list of data rows.
//
// A Virtualizer owns the rows. PrepareBands assigns every visible row a
// contiguous vertical band; RowsInRange returns the rows intersecting a
// pixel range by scanning the monotone bands. Cells (row × field) are
// materialized lazily for visible rows only and are safe to discard: the
// identity of a cell is its CellID, never the *Cell pointer.
package rows
