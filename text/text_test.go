package text

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/gogpu/formgrid"
)

func TestDirectionOf(t *testing.T) {
	tests := []struct {
		s    string
		want Direction
	}{
		{"", LTR},
		{"hello", LTR},
		{"123 ", LTR},
		{"שלום", RTL},
		{"  مرحبا", RTL},
		{"42 שלום", RTL},
		{"abc שלום", LTR},
	}
	for _, tt := range tests {
		if got := DirectionOf(tt.s); got != tt.want {
			t.Errorf("DirectionOf(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestWidthGrowsWithText(t *testing.T) {
	m := NewMeasurer()
	a := m.Width("i", 0, 13)
	b := m.Width("iiii", 0, 13)
	c := m.Width("WWWW", 0, 13)
	if a <= 0 {
		t.Fatalf("Width(i) = %v, want > 0", a)
	}
	if b <= a || c <= b {
		t.Errorf("widths not increasing: %v, %v, %v", a, b, c)
	}
	if m.Width("", 0, 13) != 0 {
		t.Error("empty string should measure 0")
	}
	if big := m.Width("iiii", 0, 26); big <= b {
		t.Errorf("Width at double size = %v, want > %v", big, b)
	}
}

func TestWidthIsCached(t *testing.T) {
	m := NewMeasurer()
	m.Width("cached", formgrid.FontBold, 13)
	m.Width("cached", formgrid.FontBold, 13)
	// Underline does not change the font file, so it shares the entry.
	m.Width("cached", formgrid.FontBold|formgrid.FontUnderline, 13)
	st := m.Stats()
	if st.Misses != 1 || st.Hits != 2 {
		t.Errorf("Stats() hits/misses = %d/%d, want 2/1", st.Hits, st.Misses)
	}
}

func TestEllipsize(t *testing.T) {
	m := NewMeasurer()
	s := "The quick brown fox jumps over the lazy dog"
	full := m.Width(s, 0, 13)

	if got := m.Ellipsize(s, full+1, 0, 13); got != s {
		t.Errorf("fitting text changed: %q", got)
	}
	got := m.Ellipsize(s, full/2, 0, 13)
	if !strings.HasSuffix(got, Ellipsis) || len(got) >= len(s) {
		t.Errorf("Ellipsize() = %q", got)
	}
	if w := m.Width(got, 0, 13); w > full/2 {
		t.Errorf("ellipsized width = %v, want <= %v", w, full/2)
	}
	if got := m.Ellipsize(s, 1, 0, 13); got != "" {
		t.Errorf("Ellipsize(too narrow) = %q, want empty", got)
	}
}

func TestResolveAlign(t *testing.T) {
	if got := resolveAlign(formgrid.AlignStart, RTL); got != formgrid.AlignEnd {
		t.Errorf("start in RTL = %v", got)
	}
	if got := resolveAlign(formgrid.AlignCenter, RTL); got != formgrid.AlignCenter {
		t.Errorf("center in RTL = %v", got)
	}
	if got := resolveAlign(formgrid.AlignStart, LTR); got != formgrid.AlignStart {
		t.Errorf("start in LTR = %v", got)
	}
}

// inked returns the horizontal extent of non-transparent pixels.
func inked(img *image.RGBA) (minX, maxX int, ok bool) {
	b := img.Bounds()
	minX, maxX = b.Max.X, b.Min.X
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				minX, maxX, ok = min(minX, x), max(maxX, x), true
			}
		}
	}
	return minX, maxX, ok
}

func TestDrawAlignsAndClips(t *testing.T) {
	r := NewRenderer(0)
	black := color.NRGBA{A: 255}

	start := image.NewRGBA(image.Rect(0, 0, 200, 30))
	if err := r.Draw(start, "abc", image.Rect(10, 0, 190, 30), formgrid.TextStyle{Color: black}); err != nil {
		t.Fatal(err)
	}
	end := image.NewRGBA(image.Rect(0, 0, 200, 30))
	if err := r.Draw(end, "abc", image.Rect(10, 0, 190, 30), formgrid.TextStyle{Color: black, Align: formgrid.AlignEnd}); err != nil {
		t.Fatal(err)
	}

	s0, _, ok := inked(start)
	if !ok {
		t.Fatal("nothing drawn")
	}
	e0, e1, ok := inked(end)
	if !ok {
		t.Fatal("nothing drawn with AlignEnd")
	}
	if s0 < 10 || s0 > 20 {
		t.Errorf("start-aligned ink begins at %d", s0)
	}
	if e0 <= 100 || e1 >= 190 {
		t.Errorf("end-aligned ink spans [%d,%d]", e0, e1)
	}

	rtl := image.NewRGBA(image.Rect(0, 0, 200, 30))
	if err := r.Draw(rtl, "שלום", image.Rect(10, 0, 190, 30), formgrid.TextStyle{Color: black}); err != nil {
		t.Fatal(err)
	}
	if r0, _, ok := inked(rtl); ok && r0 < 100 {
		t.Errorf("RTL start-aligned ink begins at %d, want right half", r0)
	}

	clip := image.NewRGBA(image.Rect(0, 0, 200, 30))
	long := strings.Repeat("wide text ", 20)
	if err := r.Draw(clip, long, image.Rect(0, 0, 60, 30), formgrid.TextStyle{Color: black}); err != nil {
		t.Fatal(err)
	}
	if _, c1, _ := inked(clip); c1 >= 60 {
		t.Errorf("ink escapes clip rect at x=%d", c1)
	}
}

func BenchmarkWidthCached(b *testing.B) {
	m := NewMeasurer()
	m.Width("benchmark text", 0, 13)
	for b.Loop() {
		m.Width("benchmark text", 0, 13)
	}
}
