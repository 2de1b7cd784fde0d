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
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Point is an axial position together with a ray height.
type Point struct {
	Z      float64
	Height float64
}

// Image describes where the rays from the object converge.
// Either field is nil if no convergence point was found for the
// corresponding group of rays.
type Image struct {
	Base *Point // convergence of the rays launched from height 0
	Tip  *Point // convergence of the rays launched from the object height
}

// Height returns the signed image height, tip minus base.
// The result is only valid if both convergence points were found.
func (im Image) Height() (float64, bool) {
	if im.Base == nil || im.Tip == nil {
		return 0, false
	}
	return im.Tip.Height - im.Base.Height, true
}

// Magnification returns |image height / object height|.
func (im Image) Magnification(objectHeight float64) (float64, bool) {
	h, ok := im.Height()
	if !ok || objectHeight == 0 {
		return 0, false
	}
	return math.Abs(h / objectHeight), true
}

// Sample describes a ray bundle at one axial position.
type Sample struct {
	Z      float64
	Spread float64 // largest minus smallest ray height
	Mean   float64 // mean ray height
	Rays   int     // number of rays reaching Z
}

// FindImage locates the image of the object.
//
// The rays are split into base rays (launch height 0) and tip rays (launch
// height equal to the object height); other rays are ignored.  For each
// group, the bundle is sampled at 1000 positions along the system and the
// samples are ordered by spread.  The best sample is almost always the
// object plane itself, where all rays of a group coincide, so the second
// best sample which is more than 1cm away from the first is reported as the
// convergence point.
//
// This is a heuristic.  Systems with several internal foci, or with two
// convergence points closer than 1cm, can give misleading results.
//
// The object height must have been set, otherwise [ErrNoObjectHeight] is
// returned.  A group without a convergence point is not an error.
func (s *System) FindImage(rays []Launch) (Image, error) {
	h, ok := s.ObjectHeight()
	if !ok {
		return Image{}, ErrNoObjectHeight
	}

	var base, tip []Launch
	for _, r := range rays {
		if math.Abs(r.Height) < zTolerance {
			base = append(base, r)
		}
		if math.Abs(r.Height-h) < zTolerance {
			tip = append(tip, r)
		}
	}

	return Image{
		Base: s.converge(base),
		Tip:  s.converge(tip),
	}, nil
}

// Profile traces the given rays and samples the bundle at n evenly spaced
// positions from 0 to [System.Length], in axial order.  Positions not
// reached by any ray are omitted.
func (s *System) Profile(rays []Launch, n int) []Sample {
	return s.profile(s.tracePaths(rays), n)
}

// converge returns the convergence point of a group of rays from a common
// object point, or nil.
func (s *System) converge(rays []Launch) *Point {
	paths := s.tracePaths(rays)
	if len(paths) < 2 {
		return nil
	}

	samples := s.profile(paths, profileSamples)
	slices.SortFunc(samples, func(a, b Sample) int {
		return cmp.Or(
			cmp.Compare(a.Spread, b.Spread),
			cmp.Compare(a.Z, b.Z),
			cmp.Compare(a.Mean, b.Mean))
	})

	var picked []float64
candidates:
	for _, c := range samples {
		for _, z := range picked {
			if math.Abs(c.Z-z) <= minSeparation {
				continue candidates
			}
		}
		picked = append(picked, c.Z)
		if len(picked) == 2 {
			return &Point{Z: c.Z, Height: c.Mean}
		}
	}
	return nil
}

// tracePaths traces the rays, keeping only paths with at least two samples.
func (s *System) tracePaths(rays []Launch) []Path {
	var paths []Path
	for _, r := range rays {
		p := s.Trace(r.Slope, r.Height)
		if len(p) > 1 {
			paths = append(paths, p)
		}
	}
	return paths
}

func (s *System) profile(paths []Path, n int) []Sample {
	if len(paths) == 0 {
		return nil
	}
	n = max(n, 2)

	length := s.Length()
	zs := floats.Span(make([]float64, n), 0, length)
	zs[n-1] = length // exact end point, so that unblocked rays are sampled there
	samples := make([]Sample, 0, n)
	heights := make([]float64, 0, len(paths))
	for _, z := range zs {
		heights = heights[:0]
		for _, p := range paths {
			if y, ok := p.HeightAt(z); ok {
				heights = append(heights, y)
			}
		}
		if len(heights) == 0 {
			continue
		}
		samples = append(samples, Sample{
			Z:      z,
			Spread: floats.Max(heights) - floats.Min(heights),
			Mean:   stat.Mean(heights, nil),
			Rays:   len(heights),
		})
	}
	return samples
}

// Parameters of the image search.
const (
	// profileSamples is the number of axial positions examined.
	profileSamples = 1000

	// minSeparation is the minimal axial distance between two distinct
	// convergence candidates, in cm.
	minSeparation = 1.0
)
