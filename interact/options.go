package interact

import (
	"time"

	"github.com/gogpu/formgrid"
)

// Gesture defaults.
var (
	// DefaultDeadZone is the rectangle, centered on the down point, the
	// pointer must leave before a press becomes a drag.
	DefaultDeadZone = formgrid.Sz(6, 6)
	// DefaultDoubleClickTime is the longest gap between two downs of a
	// double-click.
	DefaultDoubleClickTime = 500 * time.Millisecond
	// DefaultDoubleClickDistance is the farthest two downs of a
	// double-click may be apart.
	DefaultDoubleClickDistance = 4.0
)

// Option configures a Coordinator.
type Option func(*options)

type options struct {
	deadZone            formgrid.Size
	drag                bool
	frame               bool
	doubleClickTime     time.Duration
	doubleClickDistance float64
}

func defaultOptions() options {
	return options{
		deadZone:            DefaultDeadZone,
		drag:                true,
		frame:               true,
		doubleClickTime:     DefaultDoubleClickTime,
		doubleClickDistance: DefaultDoubleClickDistance,
	}
}

// WithDeadZone sets the drag dead zone.
func WithDeadZone(s formgrid.Size) Option {
	return func(o *options) {
		o.deadZone = formgrid.Sz(max(s.W, 0), max(s.H, 0))
	}
}

// WithDrag enables or disables dragging. With dragging disabled, leaving
// the dead zone cancels the gesture.
func WithDrag(enabled bool) Option {
	return func(o *options) {
		o.drag = enabled
	}
}

// WithFrameSelect enables or disables frame selection over empty area.
func WithFrameSelect(enabled bool) Option {
	return func(o *options) {
		o.frame = enabled
	}
}

// WithDoubleClick sets the platform double-click thresholds.
func WithDoubleClick(d time.Duration, distance float64) Option {
	return func(o *options) {
		o.doubleClickTime = d
		o.doubleClickDistance = distance
	}
}
