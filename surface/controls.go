// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/content"
	"github.com/gogpu/formgrid/text"
	"golang.org/x/image/draw"
)

// Control is a software control instance.
type Control struct {
	kind    Kind
	state   formgrid.ControlState
	painted int
}

// Kind implements formgrid.Control.
func (c *Control) Kind() string { return c.kind.Name }

// SetState implements formgrid.Control.
func (c *Control) SetState(s formgrid.ControlState) { c.state = s }

// State implements formgrid.Control.
func (c *Control) State() formgrid.ControlState { return c.state }

// Type simulates user input: it replaces the control's value with a string.
func (c *Control) Type(s string) { c.state.Value = content.String(s) }

// Toggle simulates a click on a checkbox.
func (c *Control) Toggle() {
	v, _ := c.state.Value.AsBool()
	c.state.Value = content.Bool(!v)
}

// Select simulates picking combo item i.
func (c *Control) Select(i int) {
	if i >= 0 && i < len(c.state.Items) {
		c.state.Value = content.String(c.state.Items[i])
	}
}

// paint draws the control with its font scaled by zoom. The state's own
// Scale is ignored; callers pass the scale to render at.
func (c *Control) paint(dst *image.RGBA, r image.Rectangle, t *text.Renderer, zoom float64) {
	c.painted++
	if c.kind.Paint == nil {
		return
	}
	s := c.state
	if s.Style.FontSizeRatio == 0 {
		s.Style.FontSizeRatio = 1
	}
	s.Style.FontSizeRatio *= zoom
	c.kind.Paint(dst, r, s, t)
}

var (
	frameColor    = color.NRGBA{R: 0x7a, G: 0x7a, B: 0x7a, A: 0xff}
	focusColor    = formgrid.Highlight
	faceColor     = color.NRGBA{R: 0xe1, G: 0xe1, B: 0xe1, A: 0xff}
	disabledColor = color.NRGBA{R: 0x9a, G: 0x9a, B: 0x9a, A: 0xff}
)

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// frame draws a one pixel border inside r.
func frame(dst draw.Image, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func background(s formgrid.ControlState, def color.NRGBA) color.NRGBA {
	if s.Style.Background.A != 0 {
		return s.Style.Background
	}
	return def
}

func textStyle(s formgrid.ControlState, align formgrid.Align) formgrid.TextStyle {
	c := s.Style.FontColor
	if !s.Enabled {
		c = disabledColor
	}
	return formgrid.TextStyle{
		FontStyle: s.Style.FontStyle,
		SizeRatio: s.Style.FontSizeRatio,
		Color:     c,
		Align:     align,
	}
}

func border(s formgrid.ControlState) color.Color {
	if s.Focused {
		return focusColor
	}
	return frameColor
}

func drawText(dst *image.RGBA, str string, r image.Rectangle, s formgrid.ControlState, align formgrid.Align, t *text.Renderer) {
	if t == nil || str == "" {
		return
	}
	if err := t.Draw(dst, str, r, textStyle(s, align)); err != nil {
		formgrid.Logger().Warn("surface: draw text", "err", err)
	}
}

func paintTextBox(dst *image.RGBA, r image.Rectangle, s formgrid.ControlState, t *text.Renderer) {
	fill(dst, r, background(s, formgrid.White))
	frame(dst, r, border(s))
	drawText(dst, s.Value.Text(), r.Inset(3), s, formgrid.AlignStart, t)
}

func paintButton(dst *image.RGBA, r image.Rectangle, s formgrid.ControlState, t *text.Renderer) {
	fill(dst, r, background(s, faceColor))
	frame(dst, r, border(s))
	caption := s.Caption
	if caption == "" {
		caption = s.Value.Text()
	}
	drawText(dst, caption, r.Inset(2), s, formgrid.AlignCenter, t)
}

func paintCheckBox(dst *image.RGBA, r image.Rectangle, s formgrid.ControlState, t *text.Renderer) {
	if bg := s.Style.Background; bg.A != 0 {
		fill(dst, r, bg)
	}
	side := min(r.Dy()-4, 14)
	if side <= 0 {
		return
	}
	box := image.Rect(r.Min.X+2, r.Min.Y+(r.Dy()-side)/2, r.Min.X+2+side, r.Min.Y+(r.Dy()-side)/2+side)
	fill(dst, box, formgrid.White)
	frame(dst, box, border(s))
	if checked, _ := s.Value.AsBool(); checked {
		mark := box.Inset(3)
		c := s.Style.FontColor
		if c.A == 0 {
			c = formgrid.Black
		}
		fill(dst, mark, c)
	}
	label := r
	label.Min.X = box.Max.X + 4
	drawText(dst, s.Caption, label, s, formgrid.AlignStart, t)
}

func paintCombo(dst *image.RGBA, r image.Rectangle, s formgrid.ControlState, t *text.Renderer) {
	fill(dst, r, background(s, formgrid.White))
	frame(dst, r, border(s))
	arrow := min(r.Dy(), 16)
	btn := image.Rect(r.Max.X-arrow, r.Min.Y, r.Max.X, r.Max.Y)
	fill(dst, btn.Inset(1), faceColor)
	// Downward triangle, one row at a time.
	cx, cy := (btn.Min.X+btn.Max.X)/2, (btn.Min.Y+btn.Max.Y)/2
	for i := range 4 {
		fill(dst, image.Rect(cx-3+i, cy-2+i, cx+4-i, cy-1+i), frameColor)
	}
	label := r.Inset(3)
	label.Max.X = btn.Min.X - 2
	drawText(dst, s.Value.Text(), label, s, formgrid.AlignStart, t)
}
