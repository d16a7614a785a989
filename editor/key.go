package editor

import (
	"hash/fnv"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/formgrid"
)

// DefaultMaxKeyText is the longest value or caption, in runes, that still
// produces a shared cache key.
const DefaultMaxKeyText = 256

// KeyBuilder composes cache keys.
type KeyBuilder struct {
	// MaxText is the longest text, in runes, allowed in a shared key.
	// Zero uses DefaultMaxKeyText.
	MaxText int
}

// CreateKey returns the shared cache key for a cell of the named kind.
// Keys are deterministic: equal inputs give equal keys, and a change in any
// single component gives a different key. Oversized text makes the key
// degenerate; CreateKey then returns formgrid.ErrCacheKeyDegenerate.
func (k KeyBuilder) CreateKey(kind string, s formgrid.ControlState, signature string) (string, error) {
	limit := k.MaxText
	if limit <= 0 {
		limit = DefaultMaxKeyText
	}
	if utf8.RuneCountInString(s.Value.Text()) > limit || utf8.RuneCountInString(s.Caption) > limit {
		return "", formgrid.ErrCacheKeyDegenerate
	}
	return compose(kind, s, signature), nil
}

// Fingerprint hashes the same components as CreateKey without any length
// limit. It detects staleness of private per-cell bitmaps.
func Fingerprint(kind string, s formgrid.ControlState, signature string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(compose(kind, s, signature))) // fnv.Write never returns an error
	return h.Sum64()
}

// compose serializes every render input. Strings are length-prefixed so no
// component can bleed into the next.
func compose(kind string, s formgrid.ControlState, signature string) string {
	var b strings.Builder
	b.Grow(64 + len(signature) + len(s.Caption))

	field(&b, kind)
	field(&b, s.Value.Canonical())
	b.WriteString(strconv.FormatFloat(s.Size.W, 'g', -1, 64))
	b.WriteByte('x')
	b.WriteString(strconv.FormatFloat(s.Size.H, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(int(s.Style.FontStyle)))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(fontRatio(s.Style.FontSizeRatio), 'g', -1, 64))
	b.WriteByte('@')
	b.WriteString(strconv.FormatFloat(fontRatio(s.Scale), 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(formgrid.HexString(s.Style.FontColor))
	b.WriteString(formgrid.HexString(s.Style.Background))
	if s.Enabled {
		b.WriteString("|e|")
	} else {
		b.WriteString("|d|")
	}
	field(&b, s.Caption)
	field(&b, signature)
	return b.String()
}

func field(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

// fontRatio normalizes an unset ratio or scale so 0 and 1 share a key.
func fontRatio(r float64) float64 {
	if r == 0 {
		return 1
	}
	return r
}
