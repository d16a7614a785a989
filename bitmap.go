package formgrid

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

// Bitmap is a rectangular RGBA pixel buffer produced by rasterizing a
// control off-screen. Bitmaps stored in a cache are treated as immutable.
type Bitmap struct {
	img *image.RGBA
}

// NewBitmap creates a transparent bitmap with the given dimensions.
// Non-positive dimensions are clamped to zero.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Bitmap{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// BitmapFromImage copies img into a new bitmap anchored at the origin.
func BitmapFromImage(img image.Image) *Bitmap {
	b := img.Bounds()
	bm := NewBitmap(b.Dx(), b.Dy())
	draw.Draw(bm.img, bm.img.Bounds(), img, b.Min, draw.Src)
	return bm
}

// Width returns the width of the bitmap.
func (b *Bitmap) Width() int {
	return b.img.Rect.Dx()
}

// Height returns the height of the bitmap.
func (b *Bitmap) Height() int {
	return b.img.Rect.Dy()
}

// RGBA returns the backing image. Callers must not modify a cached bitmap.
func (b *Bitmap) RGBA() *image.RGBA {
	return b.img
}

// Clear fills the entire bitmap with a color.
func (b *Bitmap) Clear(c color.Color) {
	draw.Draw(b.img, b.img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Clone returns a deep copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	c := NewBitmap(b.Width(), b.Height())
	copy(c.img.Pix, b.img.Pix)
	return c
}

// SavePNG saves the bitmap to a PNG file.
func (b *Bitmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, b.img)
}

// At implements the image.Image interface.
func (b *Bitmap) At(x, y int) color.Color {
	return b.img.At(x, y)
}

// Bounds implements the image.Image interface.
func (b *Bitmap) Bounds() image.Rectangle {
	return b.img.Rect
}

// ColorModel implements the image.Image interface.
func (b *Bitmap) ColorModel() color.Model {
	return color.RGBAModel
}
