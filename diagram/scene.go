// seehuhn.de/go/paraxial - first-order optics with ray-transfer matrices
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package diagram draws ray diagrams of paraxial optical systems.
//
// A [Scene] holds the traced rays, the marginal ray and the image of an
// optical system.  Scenes can be rendered to PNG images, using the
// anti-aliased [Canvas] of this package, or to PDF files.  The spread of the
// ray bundles along the axis can be plotted with [Profile.WriteChart].
package diagram

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/paraxial"
)

// Ray is a traced ray of the fan.
type Ray struct {
	Path    paraxial.Path
	FromTip bool // launched from the tip of the object, rather than its base
}

// Scene collects everything shown in a ray diagram.  Coordinates are in
// cm, with z along the horizontal axis and the ray height upwards.
type Scene struct {
	System       *paraxial.System
	ObjectHeight float64
	Rays         []Ray
	Marginal     paraxial.Marginal
	Image        paraxial.Image

	// Bounds is the part of the (z, height) plane shown in the diagram.
	Bounds rect.Rect

	// JawExtent is how far the iris jaws reach from the axis.
	JawExtent float64
}

// NewScene traces the rays through s and runs the marginal ray and image
// searches.  The object height of s must be set.
func NewScene(s *paraxial.System, rays []paraxial.Launch, search paraxial.MarginalSearch) (*Scene, error) {
	im, err := s.FindImage(rays)
	if err != nil {
		return nil, err
	}
	h, _ := s.ObjectHeight()

	sc := &Scene{
		System:       s,
		ObjectHeight: h,
		Marginal:     search.Run(s),
		Image:        im,
		JawExtent:    max(math.Abs(h), 6) * 1.5,
	}
	for _, r := range rays {
		p := s.Trace(r.Slope, r.Height)
		if len(p) < 2 {
			continue
		}
		sc.Rays = append(sc.Rays, Ray{
			Path:    p,
			FromTip: math.Abs(r.Height-h) < heightTolerance && h != 0,
		})
	}

	yMax := sc.JawExtent
	for _, e := range s.Elements() {
		yMax = max(yMax, e.Aperture().Diameter/2)
	}
	if tip := im.Tip; tip != nil {
		yMax = max(yMax, math.Abs(tip.Height)+2)
	}
	sc.Bounds = rect.Rect{
		LLx: -scenePadding,
		LLy: -yMax - scenePadding,
		URx: s.Length() + scenePadding,
		URy: yMax + scenePadding,
	}
	return sc, nil
}

// DeviceMatrix returns the transformation which maps the scene bounds onto
// a width×height pixel raster, preserving the aspect ratio and centring
// the result.  Device y grows downwards.
func (sc *Scene) DeviceMatrix(width, height int) matrix.Matrix {
	s, dx, dy := sc.fit(float64(width), float64(height))
	return matrix.Matrix{s, 0, 0, -s, dx, float64(height) - dy}
}

// PageMatrix is like DeviceMatrix, but for a page with y growing upwards.
func (sc *Scene) PageMatrix(width, height float64) matrix.Matrix {
	s, dx, dy := sc.fit(width, height)
	return matrix.Matrix{s, 0, 0, s, dx, dy}
}

// fit returns the scale factor and the offsets of the scene's lower left
// corner, for a target area of the given size.
func (sc *Scene) fit(width, height float64) (s, dx, dy float64) {
	b := sc.Bounds
	s = min(width/(b.URx-b.LLx), height/(b.URy-b.LLy))
	dx = (width-s*(b.URx-b.LLx))/2 - s*b.LLx
	dy = (height-s*(b.URy-b.LLy))/2 - s*b.LLy
	return s, dx, dy
}

// isStop reports whether e is the element which limits the marginal ray.
func (sc *Scene) isStop(e paraxial.Element) bool {
	return sc.Marginal.Stop != nil && sc.Marginal.Stop == e
}

const (
	// scenePadding is the margin around the optical system, in cm.
	scenePadding = 2

	// heightTolerance is used to recognise rays launched from the base and
	// from the tip of the object.
	heightTolerance = 1e-10
)
