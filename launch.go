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

import "math"

// Launch is the state of a ray at z=0.
type Launch struct {
	Slope  float64 // paraxial slope w, i.e. tan of the angle to the axis
	Height float64 // ray height y
}

// Fan returns a fan of rays from the tip and from the base of an object of
// height objectHeight.  The launch angles run from fromDeg to toDeg in steps
// of stepDeg, all in degrees; the returned slopes are tangents of these
// angles.  For every angle the tip ray comes first, followed by the base ray.
func Fan(objectHeight, fromDeg, toDeg, stepDeg float64) []Launch {
	if !(stepDeg > 0) || toDeg < fromDeg {
		return nil
	}
	n := int(math.Floor((toDeg-fromDeg)/stepDeg+1e-9)) + 1

	rays := make([]Launch, 0, 2*n)
	for k := range n {
		w := math.Tan((fromDeg + float64(k)*stepDeg) * math.Pi / 180)
		rays = append(rays,
			Launch{Slope: w, Height: objectHeight},
			Launch{Slope: w, Height: 0})
	}
	return rays
}
