// Package text measures and draws single-line cell text.
//
// Widths come from HarfBuzz shaping (go-text/typesetting) over the Go font
// family and are cached in a sharded LRU. Glyphs are drawn with
// golang.org/x/image/font faces. Direction is taken from the first strong
// character so right-to-left values align to the cell's right edge.
package text
