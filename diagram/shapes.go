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

package diagram

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/paraxial"
)

// Dimensions of the drawn elements, in cm.
const (
	lensThickness = 0.4
	jawThickness  = 0.15
)

func pt(z, y float64) vec.Vec2 {
	return vec.Vec2{X: z, Y: y}
}

// Arrow returns the outline of an upright arrow standing on the optical
// axis at position z.  Negative heights give an inverted arrow.
// The trunk is 1/16 of the height wide, the head 1.5 times that on each
// side, and the head starts at 90% of the height.
func Arrow(z, height float64) *path.Data {
	trunk := math.Abs(height) / 16
	head := 1.5 * trunk
	headStart := 0.9 * height

	return (&path.Data{}).
		MoveTo(pt(z-trunk/2, 0)).
		LineTo(pt(z+trunk/2, 0)).
		LineTo(pt(z+trunk/2, headStart)).
		LineTo(pt(z+head, headStart)).
		LineTo(pt(z, height)).
		LineTo(pt(z-head, headStart)).
		LineTo(pt(z-trunk/2, headStart)).
		Close()
}

// LensOutline returns the outline of a lens.  Converging lenses are drawn
// biconvex, diverging lenses biconcave, and a lens without power as a
// plain slab.
func LensOutline(l paraxial.Lens) *path.Data {
	z, r, w := l.Z, l.Diameter/2, lensThickness/2
	p := &path.Data{}
	switch {
	case l.Power > 0:
		p.MoveTo(pt(z, r)).
			CubeTo(pt(z+w, r/2), pt(z+w, -r/2), pt(z, -r)).
			CubeTo(pt(z-w, -r/2), pt(z-w, r/2), pt(z, r))
	case l.Power < 0:
		p.MoveTo(pt(z-w, r)).
			LineTo(pt(z+w, r)).
			CubeTo(pt(z, r/2), pt(z, -r/2), pt(z+w, -r)).
			LineTo(pt(z-w, -r)).
			CubeTo(pt(z, -r/2), pt(z, r/2), pt(z-w, r))
	default:
		p.MoveTo(pt(z-w/2, r)).
			LineTo(pt(z+w/2, r)).
			LineTo(pt(z+w/2, -r)).
			LineTo(pt(z-w/2, -r))
	}
	return p.Close()
}

// IrisJaws returns the two blades of an iris, reaching from the edge of
// the clear aperture out to ±extent.  If the aperture is wider than the
// extent, the result is empty.
func IrisJaws(i paraxial.Iris, extent float64) *path.Data {
	r, w := i.Diameter/2, jawThickness/2
	p := &path.Data{}
	if r >= extent {
		return p
	}
	p.MoveTo(pt(i.Z-w, r)).
		LineTo(pt(i.Z+w, r)).
		LineTo(pt(i.Z+w, extent)).
		LineTo(pt(i.Z-w, extent)).
		Close()
	p.MoveTo(pt(i.Z-w, -extent)).
		LineTo(pt(i.Z+w, -extent)).
		LineTo(pt(i.Z+w, -r)).
		LineTo(pt(i.Z-w, -r)).
		Close()
	return p
}

// Polyline returns an open path through the samples of a traced ray.
func Polyline(ray paraxial.Path) *path.Data {
	p := &path.Data{}
	for i, v := range ray {
		if i == 0 {
			p.MoveTo(v)
		} else {
			p.LineTo(v)
		}
	}
	return p
}

// Axis returns the optical axis between z0 and z1.
func Axis(z0, z1 float64) *path.Data {
	return (&path.Data{}).MoveTo(pt(z0, 0)).LineTo(pt(z1, 0))
}
