package editor

import (
	"strconv"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
)

// CacheMode selects how a kind's cells are represented when not live.
type CacheMode uint8

// Cache modes.
const (
	// DirectPaint kinds are drawn procedurally every frame and never cached.
	DirectPaint CacheMode = iota
	// ManagerCache kinds are drawn from the shared bitmap cache.
	ManagerCache
	// ManagerCacheWithItemImage kinds use the shared cache, but keep a
	// private per-cell bitmap when the key is degenerate.
	ManagerCacheWithItemImage
)

// String returns the mode name.
func (m CacheMode) String() string {
	switch m {
	case DirectPaint:
		return "direct-paint"
	case ManagerCache:
		return "manager-cache"
	case ManagerCacheWithItemImage:
		return "manager-cache-with-item-image"
	default:
		return "CacheMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Kind describes the caching and pooling policy of one editor kind.
type Kind struct {
	Name string
	Mode CacheMode

	// Interactive kinds can be promoted to a live control.
	Interactive bool
	// HoverLive kinds are promoted while hovered, not only while focused.
	HoverLive bool
	// NeedsWarmup marks kinds whose first render after construction is
	// wrong; the repository discards one render before trusting output.
	NeedsWarmup bool
	// PoolSize caps the live instances of the kind. Zero uses the
	// repository default.
	PoolSize int

	// Signature returns the structural part of the cache key, such as
	// combo items or sub-buttons. Nil means the kind has no structure.
	Signature func(s formgrid.ControlState) string

	// Paint draws a DirectPaint cell into dest (host coordinates).
	Paint func(c formgrid.Canvas, s formgrid.ControlState, dest formgrid.Rect)
}

// Standard kind names.
const (
	KindLabel    = "label"
	KindTextBox  = "textbox"
	KindButton   = "button"
	KindCheckBox = "checkbox"
	KindCombo    = "combo"
)

// ItemsSignature is a Signature that serializes ControlState.Items.
func ItemsSignature(s formgrid.ControlState) string {
	if len(s.Items) == 0 {
		return ""
	}
	return content.Strings(s.Items).Canonical()
}

// StandardKinds returns the built-in kinds.
func StandardKinds() []Kind {
	return []Kind{
		{
			Name:  KindLabel,
			Mode:  DirectPaint,
			Paint: paintLabel,
		},
		{
			Name:        KindTextBox,
			Mode:        ManagerCacheWithItemImage,
			Interactive: true,
		},
		{
			Name:        KindButton,
			Mode:        ManagerCache,
			Interactive: true,
			HoverLive:   true,
			Signature:   ItemsSignature,
		},
		{
			Name:        KindCheckBox,
			Mode:        ManagerCache,
			Interactive: true,
		},
		{
			Name:        KindCombo,
			Mode:        ManagerCache,
			Interactive: true,
			NeedsWarmup: true,
			Signature:   ItemsSignature,
		},
	}
}

// paintLabel draws a static label: background, then caption or value.
func paintLabel(c formgrid.Canvas, s formgrid.ControlState, dest formgrid.Rect) {
	if s.Style.Background.A != 0 {
		c.DrawRectangle(dest, formgrid.Transparent, s.Style.Background)
	}
	text := s.Caption
	if text == "" {
		text = s.Value.Text()
	}
	if text == "" {
		return
	}
	ratio := s.Style.FontSizeRatio
	if ratio == 0 {
		ratio = 1
	}
	c.DrawText(text, dest, formgrid.TextStyle{
		FontStyle: s.Style.FontStyle,
		SizeRatio: ratio,
		Color:     s.Style.FontColor,
	})
}
