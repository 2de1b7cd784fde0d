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
	"math"
	"testing"
)

func TestMarginalReference(t *testing.T) {
	s := referenceSystem(t)
	res := s.MarginalRays()

	if res.Unbounded {
		t.Fatal("reference system reported as unbounded")
	}
	if len(res.Rays) != 1 {
		t.Fatalf("got %d marginal rays, want 1", len(res.Rays))
	}

	// the iris at z=14 limits axial rays to slope 0.2, i.e. 11.3099°
	ray := res.Rays[0]
	if math.Abs(ray.Angle-11.30) > 1e-9 {
		t.Errorf("marginal angle %g, want 11.30", ray.Angle)
	}
	if math.Abs(ray.Path.End()-s.Length()) > 1e-10 {
		t.Errorf("marginal ray ends at %g, want %g", ray.Path.End(), s.Length())
	}
	if want := (Iris{Z: 14, Diameter: 4}); res.Stop != want {
		t.Errorf("stop = %#v, want %#v", res.Stop, want)
	}
}

// TestMarginalMonotone checks that the returned angle passes and the next
// step does not.
func TestMarginalMonotone(t *testing.T) {
	s := New()
	mustBuild(t,
		s.AppendTransfer(5),
		s.AppendLens(5, 10, 3),
		s.AppendTransfer(5),
		s.AppendIris(10, 5),
		s.AppendTransfer(1),
	)

	search := MarginalSearch{Step: 0.5, MaxAngle: 80}
	res := search.Run(s)
	if len(res.Rays) != 1 {
		t.Fatalf("got %+v", res)
	}
	angle := res.Rays[0].Angle
	if r := math.Remainder(angle, search.Step); math.Abs(r) > 1e-9 {
		t.Errorf("angle %g is not a multiple of the step", angle)
	}

	pass := func(deg float64) bool {
		return s.Trace(math.Tan(deg*math.Pi/180), 0).Reaches(s.Length())
	}
	if !pass(angle) {
		t.Errorf("marginal angle %g is vignetted", angle)
	}
	if pass(angle + search.Step) {
		t.Errorf("angle %g passes as well", angle+search.Step)
	}

	// the lens (radius 1.5 at z=5) is hit before the iris
	if _, ok := res.Stop.(Lens); !ok {
		t.Errorf("stop = %#v, want the lens", res.Stop)
	}
}

func TestMarginalFirstStepFails(t *testing.T) {
	s := New()
	mustBuild(t,
		s.AppendTransfer(1000),
		s.AppendIris(1000, 0.01), // tan(0.01°)*1000 = 0.17 > 0.005
		s.AppendTransfer(1),
	)

	res := s.MarginalRays()
	if len(res.Rays) != 0 {
		t.Errorf("got marginal ray %+v, want none", res.Rays)
	}
	if want := (Iris{Z: 1000, Diameter: 0.01}); res.Stop != want {
		t.Errorf("stop = %#v, want %#v", res.Stop, want)
	}
	if res.Unbounded {
		t.Error("Unbounded set")
	}
}

// TestMarginalEndPlane pins down that an aperture on the final plane of
// the system cannot limit the search: a ray truncated there still ends at
// the system length.
func TestMarginalEndPlane(t *testing.T) {
	s := New()
	mustBuild(t,
		s.AppendTransfer(1000),
		s.AppendIris(1000, 0.01),
	)

	path := s.Trace(math.Tan(45*math.Pi/180), 0)
	if !path.Reaches(s.Length()) {
		t.Errorf("path %v does not reach the end plane", path)
	}

	res := MarginalSearch{Step: 1, MaxAngle: 30}.Run(s)
	if !res.Unbounded || len(res.Rays) != 0 || res.Stop != nil {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestMarginalUnbounded(t *testing.T) {
	s := New()
	mustBuild(t,
		s.AppendTransfer(10),
		s.AppendLens(10, 5, 1000),
		s.AppendTransfer(10),
	)

	res := MarginalSearch{Step: 1, MaxAngle: 30}.Run(s)
	if !res.Unbounded {
		t.Error("search did not hit the ceiling")
	}
	if len(res.Rays) != 0 || res.Stop != nil {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestMarginalEmptySystem(t *testing.T) {
	res := New().MarginalRays()
	if len(res.Rays) != 0 || res.Stop != nil || res.Unbounded {
		t.Errorf("unexpected result %+v", res)
	}
}

// TestMarginalStopTie checks that the first registered element at the
// blocking position is reported.
func TestMarginalStopTie(t *testing.T) {
	s := New()
	mustBuild(t,
		s.AppendTransfer(10),
		s.AppendIris(10, 8),
		s.AppendRefraction(10, 0.1, 2),
		s.AppendTransfer(1),
	)

	res := MarginalSearch{Step: 1, MaxAngle: 45}.Run(s)
	if want := (Iris{Z: 10, Diameter: 8}); res.Stop != want {
		t.Errorf("stop = %#v, want %#v", res.Stop, want)
	}
}

func TestMarginalInvalidSearch(t *testing.T) {
	s := referenceSystem(t)
	want := s.MarginalRays()

	cases := []MarginalSearch{
		{Step: -1, MaxAngle: 120},
		{Step: math.NaN(), MaxAngle: math.NaN()},
		{Step: 1e-300, MaxAngle: 89},
		{Step: math.SmallestNonzeroFloat64, MaxAngle: 45},
	}
	for _, search := range cases {
		res := search.Run(s)
		if res.Unbounded || len(res.Rays) != 1 || res.Rays[0].Angle != want.Rays[0].Angle {
			t.Errorf("%+v: invalid parameters not replaced by defaults: %+v", search, res)
		}
	}
}
