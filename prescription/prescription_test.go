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
	"encoding/json"
	"errors"
	"maps"
	"math"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"seehuhn.de/go/paraxial"
)

func TestBuildPositions(t *testing.T) {
	s, err := reference.Build()
	if err != nil {
		t.Fatal(err)
	}
	if h, ok := s.ObjectHeight(); !ok || h != 4 {
		t.Errorf("object height %g, %t", h, ok)
	}
	if l := s.Length(); l != 24 {
		t.Errorf("length %g, want 24", l)
	}

	want := []paraxial.Element{
		paraxial.Iris{Z: 10, Diameter: 6},
		paraxial.Lens{Z: 12, Diameter: 6, Power: 1.0 / 6},
		paraxial.Iris{Z: 14, Diameter: 4},
	}
	got := s.Elements()
	if !slices.Equal(got, want) {
		t.Errorf("elements %v, want %v", got, want)
	}
}

func TestAllValid(t *testing.T) {
	for _, name := range slices.Sorted(maps.Keys(All)) {
		p := All[name]
		t.Run(name, func(t *testing.T) {
			if p.Name != name {
				t.Errorf("registered as %q, named %q", name, p.Name)
			}
			s, err := p.Build()
			if err != nil {
				t.Fatal(err)
			}
			if err := s.Validate(); err != nil {
				t.Error(err)
			}
			if len(p.Rays(s)) == 0 {
				t.Error("empty ray fan")
			}
			if res := s.MarginalRays(); res.Unbounded || res.Stop == nil {
				t.Errorf("no aperture stop: %+v", res)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name  string
		steps []Step
		want  error
	}{
		{"zero focal length", []Step{Object{Height: 1}, Transfer{Distance: 1}, Lens{FocalLength: 0, Diameter: 1}}, paraxial.ErrZeroFocalLength},
		{"negative transfer", []Step{Object{Height: 1}, Transfer{Distance: -1}}, paraxial.ErrNegativeDistance},
		{"iris without hole", []Step{Object{Height: 1}, Iris{Diameter: 0}}, paraxial.ErrInvalidDiameter},
		{"no object", []Step{Transfer{Distance: 1}}, ErrNoObject},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Prescription{Name: "broken", Steps: tc.steps}
			_, err := p.Build()
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			if !strings.HasPrefix(err.Error(), "broken: ") {
				t.Errorf("error %q does not name the prescription", err)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	const doc = `{
		"name": "demo",
		"fan": {"from": -5, "to": 5, "step": 2.5},
		"steps": [
			{"object": 2},
			{"transfer": 10},
			{"iris": 6},
			{"lens": {"focal": 5, "diameter": 4}},
			{"transfer": 5},
			{"refraction": {"power": -0.1, "diameter": 3}},
			{"transfer": 1}
		]
	}`
	p, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	want := []Step{
		Object{Height: 2},
		Transfer{Distance: 10},
		Iris{Diameter: 6},
		Lens{FocalLength: 5, Diameter: 4},
		Transfer{Distance: 5},
		Refraction{Power: -0.1, Diameter: 3},
		Transfer{Distance: 1},
	}
	if p.Name != "demo" || !slices.Equal(p.Steps, want) {
		t.Errorf("got %+v", p)
	}
	if p.Fan != (Fan{From: -5, To: 5, Step: 2.5}) {
		t.Errorf("fan %+v", p.Fan)
	}

	s, err := p.Build()
	if err != nil {
		t.Fatal(err)
	}
	if n := len(p.Rays(s)); n != 10 {
		t.Errorf("got %d rays, want 10", n)
	}
	lens := s.Elements()[1].(paraxial.Lens)
	if lens.Z != 10 || math.Abs(lens.Power-0.2) > 1e-15 {
		t.Errorf("lens %+v", lens)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"two keys":    `{"name": "x", "steps": [{"transfer": 1, "iris": 2}]}`,
		"empty step":  `{"name": "x", "steps": [{}]}`,
		"unknown key": `{"name": "x", "steps": [{"mirror": 1}]}`,
		"bad type":    `{"name": "x", "steps": [{"transfer": "far"}]}`,
		"not json":    `steps:`,
	}
	for _, name := range slices.Sorted(maps.Keys(cases)) {
		if _, err := Decode(strings.NewReader(cases[name])); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	data, err := json.Marshal(relay)
	if err != nil {
		t.Fatal(err)
	}
	var p Prescription
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatal(err)
	}
	if p.Name != relay.Name || p.Fan != relay.Fan || !slices.Equal(p.Steps, relay.Steps) {
		t.Errorf("got %+v, want %+v", p, relay)
	}
}

// TestExported checks that the files written by the export command are up
// to date.
func TestExported(t *testing.T) {
	for _, name := range slices.Sorted(maps.Keys(All)) {
		t.Run(name, func(t *testing.T) {
			p, err := ReadFile(filepath.Join("..", "testdata", "prescriptions", name+".json"))
			if err != nil {
				t.Fatalf("%v (run \"go run ./prescription/export\")", err)
			}
			want := All[name]
			if p.Name != want.Name || p.Description != want.Description ||
				p.Fan != want.Fan || !slices.Equal(p.Steps, want.Steps) {
				t.Errorf("file is out of date: got %+v, want %+v", p, want)
			}
		})
	}
}
