package formgrid

import (
	"image/color"

	"github.com/gogpu/formgrid/content"
)

// FontStyle is a bit set of font decorations.
type FontStyle uint8

// Font style bits.
const (
	FontBold FontStyle = 1 << iota
	FontItalic
	FontUnderline
	FontStrikeout
)

// Style is the visual style resolved for one cell.
type Style struct {
	FontStyle FontStyle

	// FontSizeRatio scales the host's base font size. Zero means 1.
	FontSizeRatio float64

	FontColor  color.NRGBA
	Background color.NRGBA
}

// ControlState is everything a control needs to render one cell:
// the effective value, style, target size and structural items.
type ControlState struct {
	Value content.Value
	Style Style
	Size  Size

	// Caption is the static text of labels and buttons.
	Caption string

	// Items holds combo entries or sub-button captions, in display order.
	Items []string

	Enabled bool
	Focused bool

	// Scale is the design-to-host ratio the cell is rendered at. Text is
	// drawn at FontSizeRatio times Scale. Zero means 1.
	Scale float64
}

// Control is one native input-control instance owned by the host toolkit.
// The engine only ever binds state into it and reads the edited value back.
type Control interface {
	// Kind returns the editor kind name the control was created for.
	Kind() string

	// SetState binds the control to a cell's resolved state.
	SetState(s ControlState)

	// State returns the control's current state, including any value the
	// user has typed since the last SetState.
	State() ControlState
}

// ControlFactory creates native controls for an editor kind.
type ControlFactory interface {
	NewControl(kind string) (Control, error)
}

// Rasterizer renders a live control off-screen.
type Rasterizer interface {
	// Rasterize renders c into a bitmap of the given size.
	Rasterize(c Control, size Size) (*Bitmap, error)
}

// ControlHost mounts and unmounts controls in the host's native control tree.
type ControlHost interface {
	PlaceControl(c Control, bounds Rect)
	RemoveControl(c Control)
}

// TextStyle describes how DrawText renders a string.
type TextStyle struct {
	FontStyle FontStyle
	// SizeRatio scales the host's base font size. Zero means 1.
	SizeRatio float64
	Color     color.NRGBA
	Align     Align
}

// Align is a horizontal text alignment.
type Align uint8

// Alignments.
const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Canvas provides the primitive drawing operations used by direct-paint
// kinds and by the interaction overlays. All rectangles are host coordinates.
type Canvas interface {
	DrawBitmap(b *Bitmap, dest Rect)
	DrawRectangle(r Rect, stroke, fill color.NRGBA)
	DrawText(s string, r Rect, style TextStyle)
}

// Modifiers is a bit set of keyboard modifier keys.
type Modifiers uint8

// Modifier bits.
const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Device reports the current pointer and keyboard state.
type Device interface {
	PointerPosition() Point
	ModifierKeys() Modifiers
}

// Viewport converts between design space and host space. The engine never
// computes pan or zoom itself.
type Viewport interface {
	DesignToHost(p Point) Point
	HostToDesign(p Point) Point
}

// Host is the full set of services a rendering toolkit supplies.
type Host interface {
	ControlFactory
	Rasterizer
	ControlHost
	Canvas
	Device
	Viewport
}

// DesignToHostRect maps a design-space rectangle through v.
func DesignToHostRect(v Viewport, r Rect) Rect {
	return RectFromPoints(v.DesignToHost(r.Origin()), v.DesignToHost(Pt(r.Right(), r.Bottom())))
}

// HostScale returns the design-to-host ratio of v along the x axis.
func HostScale(v Viewport) float64 {
	o := v.DesignToHost(Point{})
	return v.DesignToHost(Pt(1, 0)).X - o.X
}
