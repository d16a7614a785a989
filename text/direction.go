package text

import "golang.org/x/text/unicode/bidi"

// Direction is the base direction of a string.
type Direction uint8

// Directions.
const (
	LTR Direction = iota
	RTL
)

// DirectionOf returns the direction of the first strong character in s.
// Strings with no strong character are LTR.
func DirectionOf(s string) Direction {
	for _, r := range s {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return LTR
		case bidi.R, bidi.AL:
			return RTL
		}
	}
	return LTR
}
