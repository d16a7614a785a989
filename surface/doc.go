// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface is a software host for the grid engine.
//
// Host renders into an *image.RGBA and implements every host service the
// engine consumes: control creation and off-screen rasterization, control
// placement, primitive drawing, device state and a pan/zoom viewport.
// It backs the demo command and the engine's end-to-end tests.
//
// # Controls
//
// Controls are created through a Registry of kinds. The built-in kinds
// mirror the engine's standard editors:
//
//   - textbox: a bordered single-line value
//   - button: a raised caption
//   - checkbox: a box with a check mark and caption
//   - combo: a bordered value with a drop arrow
//
// The combo control reproduces a quirk of some native toolkits: its first
// rasterization after construction comes back solid black.
//
// # Usage
//
//	h := surface.New(640, 480)
//	h.SetViewport(surface.Viewport{Zoom: 2})
//	// ... hand h to the engine and paint ...
//	h.Flush() // draw placed live controls on top
//	_ = h.Bitmap().SavePNG("out.png")
package surface
