package text

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/formgrid"
	"golang.org/x/image/math/fixed"
)

// Shaper computes shaped advances with go-text's HarfBuzz port.
//
// Shaper is safe for concurrent use. Parsed fonts are shared; faces and
// HarfbuzzShaper values are per call since neither is concurrent-safe.
type Shaper struct {
	pool sync.Pool

	mu    sync.RWMutex
	fonts map[variant]*font.Font
}

// NewShaper creates a shaper over the Go font family.
func NewShaper() *Shaper {
	return &Shaper{
		pool:  sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }},
		fonts: make(map[variant]*font.Font),
	}
}

// Advance returns the shaped width of s in pixels at size.
func (s *Shaper) Advance(str string, style formgrid.FontStyle, size float64) (float64, error) {
	if str == "" || size <= 0 {
		return 0, nil
	}
	f, err := s.font(variantOf(style))
	if err != nil {
		return 0, err
	}
	runes := []rune(str)
	dir := di.DirectionLTR
	if DirectionOf(str) == RTL {
		dir = di.DirectionRTL
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      font.NewFace(f),
		Size:      fixed.Int26_6(size * 64),
		Script:    scriptOf(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)
	return float64(out.Advance) / 64, nil
}

func (s *Shaper) font(v variant) (*font.Font, error) {
	s.mu.RLock()
	f, ok := s.fonts[v]
	s.mu.RUnlock()
	if ok {
		return f, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fonts[v]; ok {
		return f, nil
	}
	face, err := font.ParseTTF(bytes.NewReader(v.ttf()))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	s.fonts[v] = face.Font
	return face.Font, nil
}

// scriptOf returns the script of the first non-space rune.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
