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
	"errors"
	"fmt"
)

// Configuration errors, returned by the System mutation methods.
var (
	// ErrZeroFocalLength indicates a lens with focal length zero.
	ErrZeroFocalLength = errors.New("paraxial: focal length must not be zero")

	// ErrNegativeDistance indicates a transfer over a negative distance.
	ErrNegativeDistance = errors.New("paraxial: transfer distance must not be negative")

	// ErrInvalidDiameter indicates a lens or iris without a positive
	// clear aperture.
	ErrInvalidDiameter = errors.New("paraxial: diameter must be positive")

	// ErrNotFinite indicates a NaN or infinite input value.
	ErrNotFinite = errors.New("paraxial: value must be finite")
)

// ErrNoObjectHeight is returned by image queries on a system where
// SetObjectHeight has not been called.
var ErrNoObjectHeight = errors.New("paraxial: object height not set")

// PositionError reports an element whose axial position does not match the
// op sequence: a lens away from the position of its refraction op, or an
// iris which does not lie on any boundary between ops.  The ray tracer only
// checks apertures at op boundaries, so such an element has no effect.
type PositionError struct {
	Index   int     // index of the element in the registry
	Element Element // the misplaced element
	Want    float64 // position of the matching (or nearest) op boundary
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("paraxial: element %d (%s) at z=%g, expected z=%g",
		e.Index, kindOf(e.Element), e.Element.Aperture().Z, e.Want)
}
