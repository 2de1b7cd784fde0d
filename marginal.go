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

// MarginalSearch configures the search for the marginal ray.
//
// Rays are launched from the axis at z=0 with angles Step, 2*Step, 3*Step,
// ... (in degrees) until one of them is vignetted.  The search gives up once
// the angle would exceed MaxAngle.
type MarginalSearch struct {
	// Step is the angular increment in degrees.  Must be positive.
	Step float64

	// MaxAngle is the largest angle tried, in degrees.
	// Must be in the range (0, 90).
	MaxAngle float64
}

// DefaultMarginalSearch is used by [System.MarginalRays].
var DefaultMarginalSearch = MarginalSearch{
	Step:     0.01,
	MaxAngle: 89,
}

// MarginalRay is the steepest axial ray which passes the system.
type MarginalRay struct {
	Angle float64 // launch angle in degrees
	Path  Path
}

// Marginal is the result of a marginal-ray search.
type Marginal struct {
	// Rays holds the marginal ray, if one was found.
	// The slice has zero or one elements.
	Rays []MarginalRay

	// Stop is the element which blocked the first vignetted ray, or nil.
	// If several elements share the blocking position, this is the first
	// one in insertion order.
	Stop Element

	// Unbounded is set if no ray up to MaxAngle was vignetted.  In this
	// case no aperture stop was found and Rays is empty.
	//
	// Vignetting is detected by a ray ending before the system length, so
	// an aperture on the final plane of the system never limits the search.
	// Append a transfer after such an aperture to make it effective.
	Unbounded bool
}

// MarginalRays runs [DefaultMarginalSearch] on the system.
func (s *System) MarginalRays() Marginal {
	return DefaultMarginalSearch.Run(s)
}

// Run performs the search on the system s.
// Invalid Step or MaxAngle values are replaced by the defaults.  This
// includes steps so small that more than 1e7 rays would be needed.
//
// If even the first angle is vignetted, no marginal ray exists and Rays is
// empty, but Stop is still reported.
func (m MarginalSearch) Run(s *System) Marginal {
	maxAngle := m.MaxAngle
	if !(maxAngle > 0 && maxAngle < 90) {
		maxAngle = DefaultMarginalSearch.MaxAngle
	}
	step := m.Step
	if !(step > 0) || math.IsInf(step, 1) || !(maxAngle/step <= maxMarginalSteps) {
		step = DefaultMarginalSearch.Step
	}

	length := s.Length()
	var res Marginal
	var last *MarginalRay

	// integer steps avoid drift from repeated addition
	n := int(math.Floor(maxAngle/step + 1e-9))
	for k := 1; k <= n; k++ {
		angle := float64(k) * step
		path := s.Trace(math.Tan(angle*math.Pi/180), 0)

		if len(path) >= 2 && path.Reaches(length) {
			last = &MarginalRay{Angle: angle, Path: path}
			continue
		}

		if len(path) >= 2 {
			res.Stop = s.elementAt(path.End())
		}
		if last != nil {
			res.Rays = []MarginalRay{*last}
		}
		return res
	}

	res.Unbounded = true
	return res
}

// elementAt returns the first registered element at axial position z.
func (s *System) elementAt(z float64) Element {
	for _, e := range s.elements {
		if math.Abs(e.Aperture().Z-z) < zTolerance {
			return e
		}
	}
	return nil
}

// maxMarginalSteps is the largest number of rays a search may launch.
const maxMarginalSteps = 1e7
