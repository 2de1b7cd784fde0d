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

package diagram

import (
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"seehuhn.de/go/paraxial"
)

// Profile holds the spread of the base and tip ray bundles along the
// optical axis.
type Profile struct {
	Base []paraxial.Sample
	Tip  []paraxial.Sample
}

// NewProfile samples the ray bundles of the scene at n axial positions.
func NewProfile(sc *Scene, rays []paraxial.Launch, n int) *Profile {
	var base, tip []paraxial.Launch
	for _, r := range rays {
		if math.Abs(r.Height) < heightTolerance {
			base = append(base, r)
		}
		if math.Abs(r.Height-sc.ObjectHeight) < heightTolerance {
			tip = append(tip, r)
		}
	}
	return &Profile{
		Base: sc.System.Profile(base, n),
		Tip:  sc.System.Profile(tip, n),
	}
}

// WriteChart plots the bundle spread against the axial position and writes
// the chart to w.  The format is any of the formats supported by
// gonum.org/v1/plot, for example "png", "svg" or "pdf".  Sizes are in
// centimetres.
func (pr *Profile) WriteChart(w io.Writer, width, height float64, format string) error {
	p := plot.New()
	p.Title.Text = "Ray bundle spread"
	p.X.Label.Text = "Distance (cm)"
	p.Y.Label.Text = "Spread (cm)"
	p.Add(plotter.NewGrid())

	var lines []any
	if len(pr.Base) > 0 {
		lines = append(lines, "base rays", spreadXYs(pr.Base))
	}
	if len(pr.Tip) > 0 {
		lines = append(lines, "tip rays", spreadXYs(pr.Tip))
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return err
	}

	wt, err := p.WriterTo(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func spreadXYs(samples []paraxial.Sample) plotter.XYs {
	xys := make(plotter.XYs, len(samples))
	for i, s := range samples {
		xys[i].X = s.Z
		xys[i].Y = s.Spread
	}
	return xys
}
