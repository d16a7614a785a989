// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/text"
	"golang.org/x/image/draw"
)

// ErrForeignControl is returned when a control not created by a Host is
// passed back to it.
var ErrForeignControl = errors.New("surface: control not created by this host")

type placement struct {
	control *Control
	bounds  formgrid.Rect
}

// Host is a software implementation of formgrid.Host.
//
// Host is not safe for concurrent use.
type Host struct {
	bm       *formgrid.Bitmap
	registry *Registry
	text     *text.Renderer
	view     Viewport
	scaler   draw.Scaler

	placed  []placement
	pointer formgrid.Point
	mods    formgrid.Modifiers

	rasterizations int
}

// Option configures a Host.
type Option func(*options)

type options struct {
	registry *Registry
	textSize float64
	scaler   draw.Scaler
}

// WithRegistry sets the control kinds the host can create.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithTextSize sets the base font size in pixels.
func WithTextSize(px float64) Option {
	return func(o *options) {
		o.textSize = px
	}
}

// WithScaler sets the interpolator used when a bitmap is drawn at a
// different size. The default is draw.ApproxBiLinear.
func WithScaler(s draw.Scaler) Option {
	return func(o *options) {
		o.scaler = s
	}
}

// New creates a host drawing into a width×height image.
func New(width, height int, opts ...Option) *Host {
	o := options{registry: globalRegistry, scaler: draw.ApproxBiLinear}
	for _, opt := range opts {
		opt(&o)
	}
	return &Host{
		bm:       formgrid.NewBitmap(width, height),
		registry: o.registry,
		text:     text.NewRenderer(o.textSize),
		view:     Viewport{Zoom: 1},
		scaler:   o.scaler,
	}
}

// Bitmap returns the render target.
func (h *Host) Bitmap() *formgrid.Bitmap { return h.bm }

// Snapshot returns a copy of the render target.
func (h *Host) Snapshot() *formgrid.Bitmap { return h.bm.Clone() }

// Clear fills the render target with c.
func (h *Host) Clear(c color.Color) { h.bm.Clear(c) }

// Text returns the host's text renderer.
func (h *Host) Text() *text.Renderer { return h.text }

// Rasterizations returns the number of off-screen renders performed.
func (h *Host) Rasterizations() int { return h.rasterizations }

// SetViewport sets the pan and zoom transform.
func (h *Host) SetViewport(v Viewport) { h.view = v }

// DesignToHost implements formgrid.Viewport.
func (h *Host) DesignToHost(p formgrid.Point) formgrid.Point { return h.view.DesignToHost(p) }

// HostToDesign implements formgrid.Viewport.
func (h *Host) HostToDesign(p formgrid.Point) formgrid.Point { return h.view.HostToDesign(p) }

// SetPointer records the device state reported by PointerPosition and
// ModifierKeys.
func (h *Host) SetPointer(p formgrid.Point, mods formgrid.Modifiers) {
	h.pointer, h.mods = p, mods
}

// PointerPosition implements formgrid.Device.
func (h *Host) PointerPosition() formgrid.Point { return h.pointer }

// ModifierKeys implements formgrid.Device.
func (h *Host) ModifierKeys() formgrid.Modifiers { return h.mods }

// NewControl implements formgrid.ControlFactory.
func (h *Host) NewControl(kind string) (formgrid.Control, error) {
	c, err := h.registry.New(kind)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (h *Host) own(c formgrid.Control) (*Control, error) {
	sc, ok := c.(*Control)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrForeignControl, c)
	}
	return sc, nil
}

// Rasterize implements formgrid.Rasterizer. The bitmap is rendered at the
// scale carried in the control's state, or at the current zoom when the
// state has none, so drawing it back needs no scaling.
func (h *Host) Rasterize(c formgrid.Control, size formgrid.Size) (*formgrid.Bitmap, error) {
	sc, err := h.own(c)
	if err != nil {
		return nil, err
	}
	h.rasterizations++
	bm := formgrid.NewBitmap(int(math.Ceil(size.W)), int(math.Ceil(size.H)))
	if sc.painted == 0 && sc.kind.BlackFirstPaint {
		sc.painted++
		bm.Clear(formgrid.Black)
		return bm, nil
	}
	scale := sc.state.Scale
	if scale <= 0 {
		scale = h.view.zoom()
	}
	sc.paint(bm.RGBA(), bm.Bounds(), h.text, scale)
	return bm, nil
}

// PlaceControl implements formgrid.ControlHost. Placed controls are drawn
// by Flush, on top of everything else, in placement order.
func (h *Host) PlaceControl(c formgrid.Control, bounds formgrid.Rect) {
	sc, err := h.own(c)
	if err != nil {
		formgrid.Logger().Warn("surface: place control", "err", err)
		return
	}
	for i := range h.placed {
		if h.placed[i].control == sc {
			h.placed[i].bounds = bounds
			return
		}
	}
	h.placed = append(h.placed, placement{control: sc, bounds: bounds})
}

// RemoveControl implements formgrid.ControlHost.
func (h *Host) RemoveControl(c formgrid.Control) {
	h.placed = slices.DeleteFunc(h.placed, func(p placement) bool { return p.control == c })
}

// Placed returns the bounds of a placed control.
func (h *Host) Placed(c formgrid.Control) (formgrid.Rect, bool) {
	for _, p := range h.placed {
		if p.control == c {
			return p.bounds, true
		}
	}
	return formgrid.Rect{}, false
}

// PlacedCount returns the number of placed controls.
func (h *Host) PlacedCount() int { return len(h.placed) }

// Flush draws every placed control into the render target.
func (h *Host) Flush() {
	for _, p := range h.placed {
		r := p.bounds.Image().Intersect(h.bm.Bounds())
		if r.Empty() {
			continue
		}
		p.control.paint(h.bm.RGBA(), p.bounds.Image(), h.text, h.view.zoom())
	}
}

// DrawBitmap implements formgrid.Canvas. Bitmaps whose size differs from
// dest are scaled.
func (h *Host) DrawBitmap(b *formgrid.Bitmap, dest formgrid.Rect) {
	if b == nil || dest.IsEmpty() {
		return
	}
	dst := h.bm.RGBA()
	r := dest.Image()
	if r.Dx() == b.Width() && r.Dy() == b.Height() {
		draw.Draw(dst, r, b.RGBA(), image.Point{}, draw.Over)
		return
	}
	h.scaler.Scale(dst, r, b.RGBA(), b.Bounds(), draw.Over, nil)
}

// DrawRectangle implements formgrid.Canvas. Transparent colors are skipped.
func (h *Host) DrawRectangle(r formgrid.Rect, stroke, bg color.NRGBA) {
	ir := r.Image()
	if bg.A != 0 {
		fill(h.bm.RGBA(), ir, bg)
	}
	if stroke.A != 0 {
		frame(h.bm.RGBA(), ir, stroke)
	}
}

// DrawText implements formgrid.Canvas. The size ratio is scaled by the
// viewport zoom.
func (h *Host) DrawText(s string, r formgrid.Rect, st formgrid.TextStyle) {
	ratio := st.SizeRatio
	if ratio == 0 {
		ratio = 1
	}
	st.SizeRatio = ratio * h.view.zoom()
	if err := h.text.Draw(h.bm.RGBA(), s, r.Image(), st); err != nil {
		formgrid.Logger().Warn("surface: draw text", "err", err)
	}
}
