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
	"testing"
)

func TestFindImageReference(t *testing.T) {
	s := referenceSystem(t)
	rays := Fan(4, -10, 10, 1)
	if len(rays) != 42 {
		t.Fatalf("got %d rays, want 42", len(rays))
	}

	im, err := s.FindImage(rays)
	if err != nil {
		t.Fatal(err)
	}
	if im.Base == nil || im.Tip == nil {
		t.Fatalf("no image found: %+v", im)
	}

	// object 12cm in front of an f=6 lens: image 12cm behind the lens
	if math.Abs(im.Base.Z-24) > 0.05 || math.Abs(im.Tip.Z-24) > 0.05 {
		t.Errorf("image at z=%g / %g, want 24", im.Base.Z, im.Tip.Z)
	}
	if math.Abs(im.Base.Height) > 1e-6 {
		t.Errorf("base image height %g, want 0", im.Base.Height)
	}
	if math.Abs(im.Tip.Height+4) > 1e-6 {
		t.Errorf("tip image height %g, want -4", im.Tip.Height)
	}

	h, ok := im.Height()
	if !ok || math.Abs(h+4) > 1e-6 {
		t.Errorf("image height %g, %t, want -4", h, ok)
	}
	m, ok := im.Magnification(4)
	if !ok || math.Abs(m-1) > 1e-6 {
		t.Errorf("magnification %g, %t, want 1", m, ok)
	}
}

func TestFindImageNoObject(t *testing.T) {
	s := New()
	mustBuild(t, s.AppendTransfer(10))
	_, err := s.FindImage(Fan(1, -5, 5, 1))
	if !errors.Is(err, ErrNoObjectHeight) {
		t.Errorf("got %v, want %v", err, ErrNoObjectHeight)
	}
}

func TestFindImageIdempotent(t *testing.T) {
	s := referenceSystem(t)
	rays := Fan(4, -10, 10, 1)

	a, err := s.FindImage(rays)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.FindImage(rays)
	if err != nil {
		t.Fatal(err)
	}
	if *a.Base != *b.Base || *a.Tip != *b.Tip {
		t.Errorf("results differ: %+v / %+v", a, b)
	}
}

func TestFindImageMissingGroups(t *testing.T) {
	s := referenceSystem(t)

	// one ray per group is not enough to find a convergence point
	rays := []Launch{
		{Slope: 0.1, Height: 0},
		{Slope: -0.15, Height: 4},
		{Slope: 0.2, Height: 1}, // neither base nor tip
		{Slope: 0.3, Height: 1},
	}
	im, err := s.FindImage(rays)
	if err != nil {
		t.Fatal(err)
	}
	if im.Base != nil || im.Tip != nil {
		t.Errorf("got %+v, want no convergence", im)
	}
	if _, ok := im.Height(); ok {
		t.Error("image height reported without convergence points")
	}
	if _, ok := im.Magnification(4); ok {
		t.Error("magnification reported without convergence points")
	}

	// without ops, paths have a single sample and are discarded
	empty := New()
	mustBuild(t, empty.SetObjectHeight(4))
	im, err = empty.FindImage(Fan(4, -5, 5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if im.Base != nil || im.Tip != nil {
		t.Errorf("empty system: got %+v", im)
	}
}

// TestFindImageShort checks a system shorter than the minimal separation of
// convergence candidates.
func TestFindImageShort(t *testing.T) {
	s := New()
	mustBuild(t,
		s.SetObjectHeight(1),
		s.AppendTransfer(0.5),
	)

	im, err := s.FindImage(Fan(1, -5, 5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if im.Base != nil || im.Tip != nil {
		t.Errorf("got %+v, want no image", im)
	}
}

// TestFindImageDiverging documents a limitation of the search: for a
// bundle which never reconverges, the least spread sample beyond 1cm from
// the object is reported.
func TestFindImageDiverging(t *testing.T) {
	s := New()
	mustBuild(t,
		s.SetObjectHeight(1),
		s.AppendTransfer(10),
	)

	im, err := s.FindImage(Fan(1, -5, 5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if im.Base == nil || im.Base.Z <= 1 || im.Base.Z > 1.02 {
		t.Errorf("base convergence %+v, want just beyond z=1", im.Base)
	}
}

func TestProfile(t *testing.T) {
	s := referenceSystem(t)
	rays := Fan(4, -10, 10, 1)

	samples := s.Profile(rays, 25)
	if len(samples) != 25 {
		t.Fatalf("got %d samples, want 25", len(samples))
	}
	for i, smp := range samples {
		if math.Abs(smp.Z-float64(i)) > 1e-9 {
			t.Errorf("sample %d at z=%g", i, smp.Z)
		}
		if smp.Spread < 0 {
			t.Errorf("sample %d: negative spread", i)
		}
	}
	// all 42 rays reach z=10; only 21 base and 5 tip rays get further
	if samples[10].Rays != 42 {
		t.Errorf("z=10: %d rays, want 42", samples[10].Rays)
	}
	if samples[24].Rays != 26 {
		t.Errorf("z=24: %d rays, want 26", samples[24].Rays)
	}
}

func TestFan(t *testing.T) {
	rays := Fan(2, -1, 1, 0.5)
	if len(rays) != 10 {
		t.Fatalf("got %d rays, want 10", len(rays))
	}
	if rays[0].Height != 2 || rays[1].Height != 0 {
		t.Errorf("tip ray must come before base ray: %v", rays[:2])
	}
	if w := rays[4].Slope; w != 0 {
		t.Errorf("central slope %g, want 0", w)
	}
	if w, want := rays[9].Slope, math.Tan(math.Pi/180); math.Abs(w-want) > 1e-15 {
		t.Errorf("last slope %g, want %g", w, want)
	}

	if Fan(1, 5, -5, 1) != nil || Fan(1, 0, 1, 0) != nil {
		t.Error("invalid range produced rays")
	}
}
