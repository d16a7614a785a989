package layout

import (
	"fmt"

	"github.com/gogpu/formgrid"
)

// Length is an optional anchor distance.
type Length struct {
	V   float64
	Set bool
}

// L returns a set length.
func L(v float64) Length {
	return Length{V: v, Set: true}
}

// Anchor places a node inside its container. Left, Top, Right and Bottom
// are distances from the matching container edge.
type Anchor struct {
	Left, Top, Right, Bottom Length
	Width, Height            Length
}

// Fixed returns an anchor pinned to the top-left corner with a fixed size.
func Fixed(x, y, w, h float64) Anchor {
	return Anchor{Left: L(x), Top: L(y), Width: L(w), Height: L(h)}
}

// Axis names a layout axis.
type Axis uint8

// Axes.
const (
	Horizontal Axis = iota
	Vertical
)

// String returns the axis name.
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// SpecError describes an unresolvable anchor.
type SpecError struct {
	Field  string
	Axis   Axis
	Reason string
}

func (e *SpecError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("layout: %s anchor: %s", e.Axis, e.Reason)
	}
	return fmt.Sprintf("layout: field %q: %s anchor: %s", e.Field, e.Axis, e.Reason)
}

// Unwrap returns formgrid.ErrInvalidLayoutSpec.
func (e *SpecError) Unwrap() error {
	return formgrid.ErrInvalidLayoutSpec
}

// ResolveBounds places a within container. It fails with a *SpecError when
// either axis does not match one of the four valid patterns or resolves to
// a negative extent.
func ResolveBounds(a Anchor, container formgrid.Rect) (formgrid.Rect, error) {
	x, w, err := resolveAxis(a.Left, a.Width, a.Right, container.X, container.W)
	if err != "" {
		return formgrid.Rect{}, &SpecError{Axis: Horizontal, Reason: err}
	}
	y, h, err := resolveAxis(a.Top, a.Height, a.Bottom, container.Y, container.H)
	if err != "" {
		return formgrid.Rect{}, &SpecError{Axis: Vertical, Reason: err}
	}
	return formgrid.Rect{X: x, Y: y, W: w, H: h}, nil
}

// resolveAxis returns the position and extent on one axis, or a reason the
// combination is invalid.
func resolveAxis(begin, size, end Length, origin, extent float64) (pos, length float64, reason string) {
	switch {
	case begin.Set && size.Set && !end.Set:
		pos, length = origin+begin.V, size.V
	case begin.Set && end.Set && !size.Set:
		pos, length = origin+begin.V, extent-begin.V-end.V
	case size.Set && end.Set && !begin.Set:
		pos, length = origin+extent-end.V-size.V, size.V
	case size.Set && !begin.Set && !end.Set:
		pos, length = origin+(extent-size.V)/2, size.V
	default:
		return 0, 0, describe(begin, size, end)
	}
	if length < 0 {
		return 0, 0, fmt.Sprintf("negative extent %g", length)
	}
	return pos, length, ""
}

func describe(begin, size, end Length) string {
	switch {
	case !begin.Set && !size.Set && !end.Set:
		return "no edges set"
	case begin.Set && size.Set && end.Set:
		return "over-constrained: begin, size and end all set"
	case begin.Set:
		return "begin without size or end"
	default:
		return "end without size"
	}
}
