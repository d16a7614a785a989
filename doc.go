// Package formgrid is a virtualized, data-bound form grid engine.
//
// # Overview
//
// A grid repeats one form layout per data row. Only the rows that intersect
// the viewport get cells, and most cells are painted from cached bitmaps
// instead of live controls. A small per-kind pool of live controls follows
// the focus and the pointer.
//
// # Quick Start
//
//	form, _ := layout.Load("order", templates)
//	host := surface.New(640, 400)
//	eng := grid.New(host, form, nil)
//	eng.AddRow(map[string]content.Value{"sku": content.String("A-1")})
//	eng.Paint(formgrid.R(0, 0, 640, 400))
//	host.Bitmap().SavePNG("grid.png")
//
// # Architecture
//
// The library is organized into:
//   - content: property values, column ids and the property stores
//   - layout: anchors, forms and template loading
//   - rows: row bands and the cell virtualizer
//   - cache: generic LRU caches, including the shared bitmap cache
//   - editor: editor kinds, bitmap keys and the live-control pool
//   - interact: the pointer and keyboard state machine
//   - text: shaping, measuring and drawing text
//   - surface: a software host that implements [Host]
//   - grid: the engine that ties everything together
//
// This package holds the shared geometry, color and bitmap types and the
// interfaces a host implements.
//
// # Logging
//
// Components log through [Logger]. Logging is off until [SetLogger] is
// called.
package formgrid

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
