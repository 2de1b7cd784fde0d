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

// Matrix is a paraxial ray-transfer matrix.
//
// If M = [A B C D] is a [Matrix], then M corresponds to the 2x2 matrix
//
//	/ A B \
//	\ C D /
//
// acting on the column vector (y, w), where y is the ray height and w is the
// paraxial slope of the ray (the tangent of the angle to the optical axis).
type Matrix [4]float64

// Identity leaves every ray unchanged.
var Identity = Matrix{1, 0, 0, 1}

// Translation returns the matrix for free propagation over the axial
// distance d.
func Translation(d float64) Matrix {
	return Matrix{1, d, 0, 1}
}

// ThinLens returns the matrix for a thin lens with optical power p.
// The height of the ray is unchanged, the slope changes by -p*y.
func ThinLens(p float64) Matrix {
	return Matrix{1, 0, -p, 1}
}

// Power converts a focal length into an optical power.
// A focal length of exactly zero has no finite power and is rejected.
func Power(focalLength float64) (float64, error) {
	if focalLength == 0 {
		return 0, ErrZeroFocalLength
	}
	if math.IsNaN(focalLength) {
		return 0, ErrNotFinite
	}
	return 1 / focalLength, nil
}

// Apply applies the matrix to the ray state (y, w).
func (M Matrix) Apply(y, w float64) (float64, float64) {
	return M[0]*y + M[1]*w, M[2]*y + M[3]*w
}

// Mul returns the matrix which is equivalent to first applying M and then B.
func (M Matrix) Mul(B Matrix) Matrix {
	// / B0 B1 \  / M0 M1 \
	// \ B2 B3 /  \ M2 M3 /
	return Matrix{
		B[0]*M[0] + B[1]*M[2],
		B[0]*M[1] + B[1]*M[3],
		B[2]*M[0] + B[3]*M[2],
		B[2]*M[1] + B[3]*M[3],
	}
}

// Det returns the determinant of M.
// All matrices built from translations and refractions in a single medium
// have determinant 1.
func (M Matrix) Det() float64 {
	return M[0]*M[3] - M[1]*M[2]
}
