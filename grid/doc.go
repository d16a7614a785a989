// Package grid is the form grid engine: it repeats one form layout per data
// row, paints only the rows in view, and routes input to the cell under the
// pointer or holding focus.
//
// An Engine ties the other packages together. Rows and their values live in
// a rows.Virtualizer and content stores; painting goes through an
// editor.Repository, which draws most cells from cached bitmaps and backs
// only the focused (or hovered, for some kinds) cell with a live control;
// pointer and key events go through an interact.Coordinator.
//
// The engine runs on one goroutine. Every method must be called from the
// goroutine that owns the host.
package grid
