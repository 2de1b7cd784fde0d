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

package paraxial

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Path is the trajectory of a single ray through a [System].
// Each sample has the axial position in X and the ray height in Y.
// The first sample is at z=0; each op adds one sample.
type Path []vec.Vec2

// End returns the axial position of the last sample.
func (p Path) End() float64 {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].X
}

// Reaches reports whether the path extends to the axial position z.
// For z = [System.Length], this tells whether the ray passed the system
// without being blocked, except for apertures on the final plane: a ray
// blocked there also ends at the system length.
func (p Path) Reaches(z float64) bool {
	return math.Abs(p.End()-z) <= zTolerance
}

// HeightAt returns the ray height at axial position z, interpolating
// linearly between samples.  The first segment containing z is used.
// If z is outside the range covered by the path, ok is false.
func (p Path) HeightAt(z float64) (y float64, ok bool) {
	for i := range len(p) - 1 {
		a, b := p[i], p[i+1]
		if a.X <= z && z <= b.X {
			if b.X == a.X {
				return a.Y, true
			}
			t := (z - a.X) / (b.X - a.X)
			return a.Y + t*(b.Y-a.Y), true
		}
	}
	return 0, false
}

// Trace follows the ray with paraxial slope w and height y from z=0 through
// the system.
//
// After every op, all elements located at the new axial position are
// checked, regardless of their order in the registry.  If the ray height
// exceeds the clear radius of one of them, the ray is vignetted and the path
// ends there.  Use [Path.Reaches] with [System.Length] to detect this; it
// cannot tell apart rays blocked by an aperture at the very end of the
// system.
func (s *System) Trace(w, y float64) Path {
	path := make(Path, 1, len(s.ops)+1)
	path[0] = vec.Vec2{X: 0, Y: y}

	z := 0.0
	for _, op := range s.ops {
		y, w = op.Matrix().Apply(y, w)
		z += op.Length()
		path = append(path, vec.Vec2{X: z, Y: y})

		for _, e := range s.elements {
			a := e.Aperture()
			if math.Abs(a.Z-z) < zTolerance && a.Blocks(y) {
				return path
			}
		}
	}
	return path
}
