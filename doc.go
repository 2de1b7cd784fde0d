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

// Package paraxial models first-order optical systems with ray-transfer
// matrices.
//
// A [System] is a cascade of free-space transfers and thin-lens
// refractions, together with the lenses and irises which limit the ray
// bundle.  Rays are described by their height y above the optical axis and
// their paraxial slope w.  All rays lie in a single meridional plane, and
// the system is rotationally symmetric about the axis.
//
// Three queries are provided: [System.Trace] follows a single ray,
// [System.MarginalRays] finds the steepest axial ray which passes the
// system together with the aperture stop, and [System.FindImage] locates the
// image of the object from a bundle of rays.
//
// Angles at the API boundary ([Fan], [MarginalSearch], [MarginalRay]) are
// given in degrees.  All other angles are paraxial slopes.
package paraxial
