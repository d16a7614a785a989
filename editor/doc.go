// Package editor implements the editor repository: the bitmap cache and
// live-control pool that let a grid of thousands of cells share a handful
// of native controls.
//
// Most cells are static and are drawn from a cached bitmap. The bitmap is
// produced by binding the cell's resolved state into one shared,
// non-interactive paint instance per kind and rasterizing it off-screen.
// Only cells that hold focus (or hover, for hover-live kinds) are promoted
// to a pooled live control placed in the host's native control tree.
//
// # Cache coherence
//
// A cache key is composed from every input that can change the rendered
// pixels: kind, value, target size, font style, font size ratio, font
// color, background, enabled state, caption and a kind-specific structural
// signature. Equal keys imply identical bitmaps.
//
// The Repository is single-threaded: all calls must come from the host's
// UI thread.
package editor
