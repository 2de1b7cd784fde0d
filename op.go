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

// Op is one step of the ray-transfer cascade.
// The concrete types are [Transfer] and [Refraction].
type Op interface {
	// Matrix returns the ray-transfer matrix of the step.
	Matrix() Matrix

	// Length returns the axial distance covered by the step.
	Length() float64

	isOp()
}

// Transfer is free propagation along the optical axis.
type Transfer struct {
	Distance float64 // >= 0
}

// Matrix implements the [Op] interface.
func (t Transfer) Matrix() Matrix { return Translation(t.Distance) }

// Length implements the [Op] interface.
func (t Transfer) Length() float64 { return t.Distance }

func (Transfer) isOp() {}

// Refraction is a thin lens, acting at a single axial plane.
type Refraction struct {
	Power float64 // 1 / focal length
}

// Matrix implements the [Op] interface.
func (r Refraction) Matrix() Matrix { return ThinLens(r.Power) }

// Length implements the [Op] interface.
// Refraction does not advance the axial position.
func (Refraction) Length() float64 { return 0 }

func (Refraction) isOp() {}
