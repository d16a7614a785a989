// Package content implements the sparse per-owner property store.
//
// A Store is a typed key/value bag owned by a row, a layout field, or a
// whole form. Keys pack an optional column id with a property id:
//
//	key := content.MakeKey(column, content.PropValue) // (column << 16) | property
//
// Column id 0 means "no column" and holds the shared default for a property.
// Column names are folded (trimmed and case-insensitive) unless the
// registry is switched to exact mode before the first id is allocated.
//
// # Resolution
//
// A Chain resolves the effective value of a property for one cell:
//
//	row override (column) -> field default -> form override (column) -> form default
//
// Reads never allocate column ids; only writes do.
package content
