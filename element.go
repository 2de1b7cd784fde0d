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

// Element is a physical aperture in the optical system.
// The concrete types are [Lens] and [Iris].
type Element interface {
	// Aperture returns the axial position and clear diameter of the element.
	Aperture() Aperture

	isElement()
}

// Aperture is a circular opening centred on the optical axis.
type Aperture struct {
	Z        float64 // axial position
	Diameter float64 // clear diameter, > 0
}

// Blocks reports whether a ray at height y is stopped by the aperture.
// A ray exactly on the rim passes.
func (a Aperture) Blocks(y float64) bool {
	return math.Abs(y) > a.Diameter/2
}

// Lens is a thin lens of finite diameter.
type Lens struct {
	Z        float64
	Diameter float64
	Power    float64
}

// Aperture implements the [Element] interface.
func (l Lens) Aperture() Aperture { return Aperture{Z: l.Z, Diameter: l.Diameter} }

func (Lens) isElement() {}

// Iris is an opaque screen with a circular hole.
type Iris struct {
	Z        float64
	Diameter float64
}

// Aperture implements the [Element] interface.
func (i Iris) Aperture() Aperture { return Aperture{Z: i.Z, Diameter: i.Diameter} }

func (Iris) isElement() {}

func kindOf(e Element) string {
	switch e.(type) {
	case Lens:
		return "lens"
	case Iris:
		return "iris"
	default:
		return "element"
	}
}
