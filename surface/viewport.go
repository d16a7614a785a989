// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "github.com/gogpu/formgrid"

// Viewport is a pan and zoom transform: host = (design - Pan) * Zoom.
type Viewport struct {
	Pan  formgrid.Point
	Zoom float64
}

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// DesignToHost maps a design-space point to host pixels.
func (v Viewport) DesignToHost(p formgrid.Point) formgrid.Point {
	return p.Sub(v.Pan).Mul(v.zoom())
}

// HostToDesign maps a host pixel to design space.
func (v Viewport) HostToDesign(p formgrid.Point) formgrid.Point {
	return p.Mul(1 / v.zoom()).Add(v.Pan)
}
