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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/paraxial"
)

// WritePDF writes the scene as a single page PDF file, with a page size of
// width×height PDF points.  The PDF version shows the geometry in shades of
// grey and has no text labels.
func WritePDF(fname string, sc *Scene, width, height float64) error {
	paper := &pdf.Rectangle{URx: width, URy: height}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	M := sc.PageMatrix(width, height)
	page.Transform(M)
	unit := 1 / M[0] // one PDF point in scene units

	draw := func(p *path.Data) {
		for cmd, pts := range p.Iter().ToCubic() {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				page.LineTo(pts[0].X, pts[0].Y)
			case path.CmdCubeTo:
				page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
			case path.CmdClose:
				page.ClosePath()
			}
		}
	}

	fillStroke := func(p *path.Data) {
		draw(p)
		page.Fill()
		draw(p)
		page.Stroke()
	}

	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)

	b := sc.Bounds
	page.SetStrokeColor(color.DeviceGray(0.6))
	page.SetLineWidth(0.5 * unit)
	page.SetLineDash([]float64{4 * unit, 3 * unit}, 0)
	draw(Axis(b.LLx, b.URx))
	page.Stroke()
	page.SetLineDash(nil, 0)

	page.SetFillColor(color.DeviceGray(0.85))
	page.SetStrokeColor(color.DeviceGray(0))
	fillStroke(Arrow(0, sc.ObjectHeight))

	for _, e := range sc.System.Elements() {
		var outline *path.Data
		switch e := e.(type) {
		case paraxial.Lens:
			page.SetFillColor(color.DeviceGray(0.7))
			outline = LensOutline(e)
		case paraxial.Iris:
			page.SetFillColor(color.DeviceGray(0.3))
			outline = IrisJaws(e, sc.JawExtent)
		}
		if len(outline.Cmds) == 0 {
			continue
		}
		if sc.isStop(e) {
			page.SetLineWidth(1.5 * unit)
			fillStroke(outline)
			page.SetLineWidth(0.5 * unit)
		} else {
			draw(outline)
			page.Fill()
		}
	}

	page.SetLineWidth(0.4 * unit)
	for _, ray := range sc.Rays {
		gray := 0.55
		if ray.FromTip {
			gray = 0.35
		}
		page.SetStrokeColor(color.DeviceGray(gray))
		draw(Polyline(ray.Path))
		page.Stroke()
	}

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(1.2 * unit)
	for _, m := range sc.Marginal.Rays {
		draw(Polyline(m.Path))
		page.Stroke()
	}

	if h, ok := sc.Image.Height(); ok {
		page.SetLineWidth(0.5 * unit)
		page.SetFillColor(color.DeviceGray(0.85))
		fillStroke(Arrow(sc.Image.Base.Z, h))
	}

	return page.Close()
}
