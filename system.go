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
	"math"
	"slices"
)

// System is a rotationally symmetric paraxial optical system.
//
// A System is built once by a sequence of Set/Append calls and then queried.
// There are no operations to edit or remove steps.  The query methods do not
// modify the System, so a fully built System may be queried from several
// goroutines at once; building must not overlap with queries.
type System struct {
	ops      []Op
	elements []Element

	objectHeight float64
	hasObject    bool
}

// New returns an empty optical system.
func New() *System {
	return &System{}
}

// SetObjectHeight records the height of the object at z=0.
// The object height must be set before [System.FindImage] is called.
func (s *System) SetObjectHeight(h float64) error {
	if !finite(h) {
		return ErrNotFinite
	}
	s.objectHeight = h
	s.hasObject = true
	return nil
}

// ObjectHeight returns the object height, and whether it has been set.
func (s *System) ObjectHeight() (float64, bool) {
	return s.objectHeight, s.hasObject
}

// AppendTransfer appends free propagation over the distance d >= 0.
func (s *System) AppendTransfer(d float64) error {
	if !finite(d) {
		return ErrNotFinite
	}
	if d < 0 {
		return ErrNegativeDistance
	}
	s.ops = append(s.ops, Transfer{Distance: d})
	return nil
}

// AppendRefraction appends a thin lens with optical power p.
//
// This adds both a refraction op and a [Lens] element at position z.  The
// caller is responsible for passing the current cumulative transfer distance
// as z; use [System.Validate] to check this.
func (s *System) AppendRefraction(z, p, diameter float64) error {
	if !finite(z) || !finite(p) || !finite(diameter) {
		return ErrNotFinite
	}
	if diameter <= 0 {
		return ErrInvalidDiameter
	}
	s.ops = append(s.ops, Refraction{Power: p})
	s.elements = append(s.elements, Lens{Z: z, Diameter: diameter, Power: p})
	return nil
}

// AppendLens is like [System.AppendRefraction], but takes the focal length
// of the lens instead of its optical power.
func (s *System) AppendLens(z, focalLength, diameter float64) error {
	p, err := Power(focalLength)
	if err != nil {
		return err
	}
	return s.AppendRefraction(z, p, diameter)
}

// AppendIris appends an iris at position z.  No op is added.
func (s *System) AppendIris(z, diameter float64) error {
	if !finite(z) || !finite(diameter) {
		return ErrNotFinite
	}
	if diameter <= 0 {
		return ErrInvalidDiameter
	}
	s.elements = append(s.elements, Iris{Z: z, Diameter: diameter})
	return nil
}

// Ops returns a copy of the op sequence, in traversal order.
func (s *System) Ops() []Op {
	return slices.Clone(s.ops)
}

// Elements returns a copy of the element registry, in insertion order.
func (s *System) Elements() []Element {
	return slices.Clone(s.elements)
}

// Length returns the total axial length of the system, i.e. the sum of all
// transfer distances.
func (s *System) Length() float64 {
	var total float64
	for _, op := range s.ops {
		total += op.Length()
	}
	return total
}

// Matrix returns the ray-transfer matrix of the complete op sequence,
// ignoring all apertures.
func (s *System) Matrix() Matrix {
	M := Identity
	for _, op := range s.ops {
		M = M.Mul(op.Matrix())
	}
	return M
}

// Validate checks the element positions against the op sequence.
// The k-th lens must sit at the position of the k-th refraction op, and
// every iris must sit on the boundary after some op.  The returned error
// joins one [*PositionError] per misplaced element.
func (s *System) Validate() error {
	var boundaries, lensAt []float64
	z := 0.0
	for _, op := range s.ops {
		z += op.Length()
		boundaries = append(boundaries, z)
		if _, isLens := op.(Refraction); isLens {
			lensAt = append(lensAt, z)
		}
	}

	var errs []error
	lens := 0
	for i, e := range s.elements {
		pos := e.Aperture().Z
		switch e.(type) {
		case Lens:
			want := lensAt[lens]
			lens++
			if math.Abs(pos-want) >= zTolerance {
				errs = append(errs, &PositionError{Index: i, Element: e, Want: want})
			}
		case Iris:
			want := nearest(boundaries, pos)
			if math.Abs(pos-want) >= zTolerance {
				errs = append(errs, &PositionError{Index: i, Element: e, Want: want})
			}
		}
	}
	return errors.Join(errs...)
}

// nearest returns the value in xs closest to x, or 0 if xs is empty.
func nearest(xs []float64, x float64) float64 {
	best := 0.0
	bestDist := math.Inf(1)
	for _, v := range xs {
		if d := math.Abs(v - x); d < bestDist {
			best, bestDist = v, d
		}
	}
	return best
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Numerical tolerances.
const (
	// zTolerance is the absolute tolerance for comparing axial positions,
	// and for matching launch heights to the object base and tip.
	zTolerance = 1e-10
)
