package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/gogpu/formgrid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the font size, in pixels, of a size ratio of 1.
const DefaultSize = 13.0

// faceKey identifies one sized face.
type faceKey struct {
	v    variant
	size float64
}

// Renderer draws single-line text into images.
//
// Renderer is safe for concurrent use, but a face is shared between calls
// of the same size and style, so concurrent Draw calls serialize on it.
type Renderer struct {
	measure  *Measurer
	baseSize float64

	mu    sync.Mutex
	fonts map[variant]*opentype.Font
	faces map[faceKey]font.Face
}

// NewRenderer creates a renderer. A baseSize <= 0 uses DefaultSize.
func NewRenderer(baseSize float64) *Renderer {
	if baseSize <= 0 {
		baseSize = DefaultSize
	}
	return &Renderer{
		measure:  NewMeasurer(),
		baseSize: baseSize,
		fonts:    make(map[variant]*opentype.Font),
		faces:    make(map[faceKey]font.Face),
	}
}

// Measurer returns the renderer's width measurer.
func (r *Renderer) Measurer() *Measurer { return r.measure }

// Size returns the pixel size of a style's ratio.
func (r *Renderer) Size(ratio float64) float64 {
	if ratio <= 0 {
		ratio = 1
	}
	return r.baseSize * ratio
}

func (r *Renderer) face(v variant, size float64) (font.Face, error) {
	k := faceKey{v: v, size: size}
	if f, ok := r.faces[k]; ok {
		return f, nil
	}
	ot, ok := r.fonts[v]
	if !ok {
		var err error
		ot, err = opentype.Parse(v.ttf())
		if err != nil {
			return nil, fmt.Errorf("text: parse font: %w", err)
		}
		r.fonts[v] = ot
	}
	f, err := opentype.NewFace(ot, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: new face: %w", err)
	}
	r.faces[k] = f
	return f, nil
}

// Draw draws s into dst inside rect, vertically centered, cut with an
// ellipsis when too wide. AlignStart means the leading edge of the
// string's direction.
func (r *Renderer) Draw(dst draw.Image, s string, rect image.Rectangle, st formgrid.TextStyle) error {
	if s == "" || rect.Empty() {
		return nil
	}
	size := r.Size(st.SizeRatio)
	s = r.measure.Ellipsize(s, float64(rect.Dx()), st.FontStyle, size)
	if s == "" {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	face, err := r.face(variantOf(st.FontStyle), size)
	if err != nil {
		return err
	}

	d := &font.Drawer{
		Dst:  clipTo(dst, rect),
		Src:  image.NewUniform(st.Color),
		Face: face,
	}
	width := d.MeasureString(s).Ceil()
	x := rect.Min.X
	switch resolveAlign(st.Align, DirectionOf(s)) {
	case formgrid.AlignCenter:
		x += (rect.Dx() - width) / 2
	case formgrid.AlignEnd:
		x = rect.Max.X - width
	}
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	baseline := rect.Min.Y + (rect.Dy()-(ascent+descent))/2 + ascent
	d.Dot = fixed.P(x, baseline)
	d.DrawString(s)

	thick := max(1, int(math.Round(size/14)))
	if st.FontStyle&formgrid.FontUnderline != 0 {
		line(dst, rect, x, x+width, baseline+thick, thick, st.Color)
	}
	if st.FontStyle&formgrid.FontStrikeout != 0 {
		line(dst, rect, x, x+width, baseline-ascent/3, thick, st.Color)
	}
	return nil
}

// resolveAlign maps a logical alignment to a physical one.
func resolveAlign(a formgrid.Align, dir Direction) formgrid.Align {
	if dir != RTL {
		return a
	}
	switch a {
	case formgrid.AlignStart:
		return formgrid.AlignEnd
	case formgrid.AlignEnd:
		return formgrid.AlignStart
	}
	return a
}

func line(dst draw.Image, clip image.Rectangle, x0, x1, y, thick int, c color.Color) {
	r := image.Rect(x0, y, x1, y+thick).Intersect(clip)
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// clipped restricts drawing to a rectangle.
type clipped struct {
	draw.Image
	clip image.Rectangle
}

func clipTo(dst draw.Image, r image.Rectangle) draw.Image {
	if sub, ok := dst.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		if d, ok := sub.SubImage(r).(draw.Image); ok {
			return d
		}
	}
	return &clipped{Image: dst, clip: r.Intersect(dst.Bounds())}
}

func (c *clipped) Bounds() image.Rectangle { return c.clip }

func (c *clipped) Set(x, y int, col color.Color) {
	if image.Pt(x, y).In(c.clip) {
		c.Image.Set(x, y, col)
	}
}
