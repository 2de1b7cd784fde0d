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

// Package prescription describes optical systems as an ordered list of
// construction steps, the way a lens prescription is written down.
//
// Lenses and irises are placed at the current position, which is the sum of
// all transfer distances before them.  [Prescription.Build] turns the steps
// into a [paraxial.System].
package prescription

import (
	"errors"
	"fmt"

	"seehuhn.de/go/paraxial"
)

// Prescription is a named optical system.
type Prescription struct {
	Name        string // lowercase a-z, 0-9 and - only
	Description string
	Steps       []Step

	// Fan gives the launch angles of the rays used to locate the image.
	// The zero value means [DefaultFan].
	Fan Fan
}

// Fan is a range of launch angles, in degrees.
type Fan struct {
	From, To, Step float64
}

// DefaultFan is the ray fan used when a prescription does not specify one.
var DefaultFan = Fan{From: -10, To: 10, Step: 1}

// Step is one construction step of a prescription.
type Step interface {
	isStep()
}

// Object sets the object height at z=0.
type Object struct {
	Height float64
}

// Transfer advances the current position.
type Transfer struct {
	Distance float64 // >= 0
}

// Lens places a thin lens, given by its focal length, at the current
// position.
type Lens struct {
	FocalLength float64 // must not be zero
	Diameter    float64 // > 0
}

// Refraction places a thin lens, given by its optical power, at the current
// position.
type Refraction struct {
	Power    float64
	Diameter float64 // > 0
}

// Iris places an iris at the current position.
type Iris struct {
	Diameter float64 // > 0
}

func (Object) isStep()     {}
func (Transfer) isStep()   {}
func (Lens) isStep()       {}
func (Refraction) isStep() {}
func (Iris) isStep()       {}

// ErrNoObject is returned by [Prescription.Build] if the steps do not set an
// object height.
var ErrNoObject = errors.New("prescription: no object height")

// Build constructs the optical system described by p.
// Errors from the mutation methods of [paraxial.System] are returned
// wrapped, together with the index of the offending step.
func (p *Prescription) Build() (*paraxial.System, error) {
	s := paraxial.New()
	z := 0.0
	hasObject := false
	for i, step := range p.Steps {
		var err error
		switch step := step.(type) {
		case Object:
			err = s.SetObjectHeight(step.Height)
			hasObject = true
		case Transfer:
			err = s.AppendTransfer(step.Distance)
			if err == nil {
				z += step.Distance
			}
		case Lens:
			err = s.AppendLens(z, step.FocalLength, step.Diameter)
		case Refraction:
			err = s.AppendRefraction(z, step.Power, step.Diameter)
		case Iris:
			err = s.AppendIris(z, step.Diameter)
		default:
			err = fmt.Errorf("unsupported step type %T", step)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: step %d (%s): %w", p.Name, i, stepName(step), err)
		}
	}
	if !hasObject {
		return nil, fmt.Errorf("%s: %w", p.Name, ErrNoObject)
	}
	return s, nil
}

// Rays returns the ray fan of the prescription for the given system.
func (p *Prescription) Rays(s *paraxial.System) []paraxial.Launch {
	fan := p.Fan
	if fan == (Fan{}) {
		fan = DefaultFan
	}
	h, _ := s.ObjectHeight()
	return paraxial.Fan(h, fan.From, fan.To, fan.Step)
}

func stepName(step Step) string {
	switch step.(type) {
	case Object:
		return "object"
	case Transfer:
		return "transfer"
	case Lens:
		return "lens"
	case Refraction:
		return "refraction"
	case Iris:
		return "iris"
	default:
		return "unknown"
	}
}
