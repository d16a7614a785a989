// Package layout holds the static field layout of a form.
//
// A Form is a tree of containers and fields. Every node carries an Anchor
// that places it inside its parent container. On each axis exactly one of
// four patterns must be set:
//
//	begin + size   left=10, width=50
//	begin + end    left=10, right=10
//	size + end     width=50, right=10
//	size only      width=50 (centered)
//
// Any other combination, or one that resolves to a negative extent, fails
// with formgrid.ErrInvalidLayoutSpec and the field is rendered as a
// zero-size placeholder.
//
// Forms are read-only once handed to the engine. Bounds, design sizes and
// tab orders are computed lazily and cached until the tree changes.
package layout
