package text

import (
	"strconv"
	"strings"

	"github.com/gogpu/formgrid"
	"github.com/gogpu/formgrid/cache"
)

// DefaultWidthCacheCapacity is the per-shard capacity of the width cache.
const DefaultWidthCacheCapacity = 512

// Ellipsis is appended to text cut to fit a width.
const Ellipsis = "…"

// Measurer caches shaped string widths.
type Measurer struct {
	shaper *Shaper
	widths *cache.ShardedCache[string, float64]
}

// NewMeasurer creates a measurer with its own shaper.
func NewMeasurer() *Measurer {
	return &Measurer{
		shaper: NewShaper(),
		widths: cache.NewSharded[string, float64](DefaultWidthCacheCapacity, cache.StringHasher),
	}
}

// Width returns the advance of s. Shaping failures measure as zero and are
// logged once per key since the result is cached.
func (m *Measurer) Width(s string, style formgrid.FontStyle, size float64) float64 {
	if s == "" {
		return 0
	}
	return m.widths.GetOrCreate(widthKey(s, style, size), func() float64 {
		w, err := m.shaper.Advance(s, style, size)
		if err != nil {
			formgrid.Logger().Warn("text: shaping failed", "err", err)
			return 0
		}
		return w
	})
}

// Stats returns width cache statistics.
func (m *Measurer) Stats() cache.Stats { return m.widths.Stats() }

func widthKey(s string, style formgrid.FontStyle, size float64) string {
	var b strings.Builder
	b.Grow(len(s) + 16)
	b.WriteString(strconv.Itoa(int(variantOf(style))))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(size, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(s)
	return b.String()
}

// Ellipsize returns s unchanged if it fits in width, otherwise the longest
// prefix of s followed by Ellipsis that fits. If not even the ellipsis
// fits, it returns "".
func (m *Measurer) Ellipsize(s string, width float64, style formgrid.FontStyle, size float64) string {
	if m.Width(s, style, size) <= width {
		return s
	}
	if m.Width(Ellipsis, style, size) > width {
		return ""
	}
	// Binary search on rune count; width is monotonic in prefix length.
	runes := []rune(s)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.Width(string(runes[:mid])+Ellipsis, style, size) <= width {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return strings.TrimRight(string(runes[:lo]), " ") + Ellipsis
}

