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

package prescription

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// The JSON form of a prescription is an object with "name", "description",
// "fan" and "steps" fields.  Each step is an object with exactly one key:
//
//	{"object": 4}
//	{"transfer": 10}
//	{"iris": 6}
//	{"lens": {"focal": 6, "diameter": 6}}
//	{"refraction": {"power": 0.1667, "diameter": 6}}

type jsonPrescription struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Fan         *jsonFan   `json:"fan,omitempty"`
	Steps       []jsonStep `json:"steps"`
}

type jsonFan struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
	Step float64 `json:"step"`
}

type jsonStep struct {
	Object     *float64        `json:"object,omitempty"`
	Transfer   *float64        `json:"transfer,omitempty"`
	Iris       *float64        `json:"iris,omitempty"`
	Lens       *jsonLens       `json:"lens,omitempty"`
	Refraction *jsonRefraction `json:"refraction,omitempty"`
}

type jsonLens struct {
	Focal    float64 `json:"focal"`
	Diameter float64 `json:"diameter"`
}

type jsonRefraction struct {
	Power    float64 `json:"power"`
	Diameter float64 `json:"diameter"`
}

// MarshalJSON implements the [json.Marshaler] interface.
func (p *Prescription) MarshalJSON() ([]byte, error) {
	out := jsonPrescription{
		Name:        p.Name,
		Description: p.Description,
		Steps:       make([]jsonStep, 0, len(p.Steps)),
	}
	if p.Fan != (Fan{}) {
		out.Fan = &jsonFan{From: p.Fan.From, To: p.Fan.To, Step: p.Fan.Step}
	}

	for i, step := range p.Steps {
		var js jsonStep
		switch step := step.(type) {
		case Object:
			js.Object = &step.Height
		case Transfer:
			js.Transfer = &step.Distance
		case Iris:
			js.Iris = &step.Diameter
		case Lens:
			js.Lens = &jsonLens{Focal: step.FocalLength, Diameter: step.Diameter}
		case Refraction:
			js.Refraction = &jsonRefraction{Power: step.Power, Diameter: step.Diameter}
		default:
			return nil, fmt.Errorf("prescription: step %d: unsupported type %T", i, step)
		}
		out.Steps = append(out.Steps, js)
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (p *Prescription) UnmarshalJSON(data []byte) error {
	var in jsonPrescription
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return fmt.Errorf("prescription: %w", err)
	}

	steps := make([]Step, 0, len(in.Steps))
	for i, js := range in.Steps {
		var candidates []Step
		if js.Object != nil {
			candidates = append(candidates, Object{Height: *js.Object})
		}
		if js.Transfer != nil {
			candidates = append(candidates, Transfer{Distance: *js.Transfer})
		}
		if js.Iris != nil {
			candidates = append(candidates, Iris{Diameter: *js.Iris})
		}
		if js.Lens != nil {
			candidates = append(candidates, Lens{FocalLength: js.Lens.Focal, Diameter: js.Lens.Diameter})
		}
		if js.Refraction != nil {
			candidates = append(candidates, Refraction{Power: js.Refraction.Power, Diameter: js.Refraction.Diameter})
		}
		if len(candidates) != 1 {
			return fmt.Errorf("prescription: step %d: want exactly one of object, transfer, iris, lens, refraction; got %d", i, len(candidates))
		}
		steps = append(steps, candidates[0])
	}

	*p = Prescription{
		Name:        in.Name,
		Description: in.Description,
		Steps:       steps,
	}
	if in.Fan != nil {
		p.Fan = Fan{From: in.Fan.From, To: in.Fan.To, Step: in.Fan.Step}
	}
	return nil
}

// Decode reads a prescription in JSON form from r.
func Decode(r io.Reader) (*Prescription, error) {
	p := &Prescription{}
	if err := json.NewDecoder(r).Decode(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadFile reads a prescription from the JSON file at path.
func ReadFile(path string) (p *Prescription, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	p, err = Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
