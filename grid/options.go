package grid

import (
	"image/color"
	"time"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/editor"
	"github.com/gogpu/formgrid/interact"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	rowSize      formgrid.Size
	fixedRowSize bool
	stroke       color.NRGBA
	fill         color.NRGBA
	editor       []editor.Option
	interact     []interact.Option
}

func defaultOptions() options {
	tint := formgrid.Highlight
	tint.A = 0x40
	return options{
		stroke: formgrid.Highlight,
		fill:   tint,
	}
}

// WithRowSize sets the band size of one row. The default is the form size.
func WithRowSize(s formgrid.Size) Option {
	return func(o *options) {
		o.rowSize = s
	}
}

// WithOverlayColors sets the stroke and fill of the frame-select and drag
// overlays.
func WithOverlayColors(stroke, fill color.NRGBA) Option {
	return func(o *options) {
		o.stroke, o.fill = stroke, fill
	}
}

// WithCacheCapacity sets the number of shared cell bitmaps kept.
func WithCacheCapacity(n int) Option {
	return func(o *options) {
		o.editor = append(o.editor, editor.WithCacheCapacity(n))
	}
}

// WithPoolSize sets the default number of live controls per kind.
func WithPoolSize(n int) Option {
	return func(o *options) {
		o.editor = append(o.editor, editor.WithPoolSize(n))
	}
}

// WithMaxKeyText sets the longest text, in runes, shared through the cache.
func WithMaxKeyText(n int) Option {
	return func(o *options) {
		o.editor = append(o.editor, editor.WithMaxKeyText(n))
	}
}

// WithUrgentThreshold sets the live-control count at which hover
// promotions stop.
func WithUrgentThreshold(n int) Option {
	return func(o *options) {
		o.editor = append(o.editor, editor.WithUrgentThreshold(n))
	}
}

// WithDeadZone sets the drag dead zone in design units.
func WithDeadZone(s formgrid.Size) Option {
	return func(o *options) {
		o.interact = append(o.interact, interact.WithDeadZone(s))
	}
}

// WithDrag enables or disables item dragging.
func WithDrag(enabled bool) Option {
	return func(o *options) {
		o.interact = append(o.interact, interact.WithDrag(enabled))
	}
}

// WithFrameSelect enables or disables frame selection.
func WithFrameSelect(enabled bool) Option {
	return func(o *options) {
		o.interact = append(o.interact, interact.WithFrameSelect(enabled))
	}
}

// WithDoubleClick sets the platform double-click thresholds.
func WithDoubleClick(d time.Duration, distance float64) Option {
	return func(o *options) {
		o.interact = append(o.interact, interact.WithDoubleClick(d, distance))
	}
}
