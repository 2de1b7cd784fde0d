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
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/paraxial"
)

// Colours used in raster diagrams.  Alpha values are not premultiplied.
var (
	colAxis     = color.NRGBA{0, 0, 0, 80}
	colArrow    = color.NRGBA{128, 128, 128, 80}
	colOutline  = color.NRGBA{0, 0, 0, 255}
	colLens     = color.NRGBA{0, 0, 255, 128}
	colIris     = color.NRGBA{255, 0, 0, 128}
	colTipRay   = color.NRGBA{0, 128, 0, 128}
	colBaseRay  = color.NRGBA{0, 0, 255, 128}
	colMarginal = color.NRGBA{255, 0, 0, 230}
	colText     = color.NRGBA{0, 0, 0, 255}
	colStop     = color.NRGBA{255, 0, 0, 255}
)

// Pens used in raster diagrams, widths in pixels.
var (
	penAxis     = Pen{Width: 1, Cap: graphics.LineCapButt, Dash: []float64{6, 4}}
	penOutline  = Pen{Width: 1, Cap: graphics.LineCapRound}
	penRay      = Pen{Width: 1.2, Cap: graphics.LineCapRound}
	penMarginal = Pen{Width: 2.5, Cap: graphics.LineCapRound}
)

// Render draws the scene into a new width×height RGBA image.
func Render(sc *Scene, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	c := NewCanvas(rect.Rect{URx: float64(width), URy: float64(height)})
	c.CTM = sc.DeviceMatrix(width, height)
	r := &rgbaPainter{img: img, c: c}

	b := sc.Bounds
	r.stroke(Axis(b.LLx, b.URx), penAxis, colAxis)

	obj := Arrow(0, sc.ObjectHeight)
	r.fill(obj, colArrow)
	r.stroke(obj, penOutline, colOutline)

	for _, e := range sc.System.Elements() {
		var outline *path.Data
		switch e := e.(type) {
		case paraxial.Lens:
			outline = LensOutline(e)
			r.fill(outline, colLens)
		case paraxial.Iris:
			outline = IrisJaws(e, sc.JawExtent)
			r.fill(outline, colIris)
		}
		if sc.isStop(e) && len(outline.Cmds) > 0 {
			r.stroke(outline, penOutline, colStop)
		}
	}

	for _, ray := range sc.Rays {
		col := colBaseRay
		if ray.FromTip {
			col = colTipRay
		}
		r.stroke(Polyline(ray.Path), penRay, col)
	}
	for _, m := range sc.Marginal.Rays {
		r.stroke(Polyline(m.Path), penMarginal, colMarginal)
	}

	if h, ok := sc.Image.Height(); ok {
		im := Arrow(sc.Image.Base.Z, h)
		r.fill(im, colArrow)
		r.stroke(im, penOutline, colOutline)
	}

	for _, l := range labels(sc) {
		r.text(l)
	}
	return img
}

// WritePNG renders the scene and writes it to w in PNG format.
func WritePNG(w io.Writer, sc *Scene, width, height int) error {
	return png.Encode(w, Render(sc, width, height))
}

// Label is a text annotation of a diagram.
type Label struct {
	At    vec.Vec2 // anchor in scene coordinates
	Lines []string
	Stop  bool // the label marks the aperture stop
}

// labels returns the annotations of the scene.  Labels are anchored at the
// centre of their bottom edge, half a centimetre above the arrow tips.
func labels(sc *Scene) []Label {
	res := []Label{{
		At:    vec.Vec2{X: 0, Y: sc.ObjectHeight + 0.5},
		Lines: []string{"Object", fmt.Sprintf("Height: %.1fcm", sc.ObjectHeight)},
	}}

	if stop := sc.Marginal.Stop; stop != nil {
		a := stop.Aperture()
		res = append(res, Label{
			At:    vec.Vec2{X: a.Z, Y: a.Diameter / 2},
			Lines: []string{"STOP"},
			Stop:  true,
		})
	}

	if h, ok := sc.Image.Height(); ok {
		lines := []string{"Image", fmt.Sprintf("Height: %.1fcm", math.Abs(h))}
		if m, ok := sc.Image.Magnification(sc.ObjectHeight); ok {
			lines = append(lines, fmt.Sprintf("Magnification: %.2fx", m))
		}
		res = append(res, Label{
			At:    vec.Vec2{X: sc.Image.Base.Z, Y: sc.Image.Tip.Height + 0.5},
			Lines: lines,
		})
	}
	return res
}

// rgbaPainter composites canvas coverage onto an RGBA image.
type rgbaPainter struct {
	img *image.RGBA
	c   *Canvas
}

func (r *rgbaPainter) fill(p *path.Data, col color.NRGBA) {
	r.c.Fill(p, r.blend(col))
}

func (r *rgbaPainter) stroke(p *path.Data, pen Pen, col color.NRGBA) {
	r.c.Stroke(p, pen, r.blend(col))
}

// blend returns an emit function which paints col with source-over
// compositing, scaled by the pixel coverage.
func (r *rgbaPainter) blend(col color.NRGBA) func(y, xMin int, coverage []float32) {
	src := [3]float32{float32(col.R), float32(col.G), float32(col.B)}
	alpha := float32(col.A) / 255
	return func(y, xMin int, coverage []float32) {
		row := r.img.Pix[y*r.img.Stride:]
		for i, cov := range coverage {
			a := alpha * cov
			if a <= 0 {
				continue
			}
			off := 4 * (xMin + i)
			for k := range 3 {
				dst := float32(row[off+k])
				row[off+k] = uint8(dst + (src[k]-dst)*a + 0.5)
			}
			row[off+3] = uint8(float32(row[off+3]) + (255-float32(row[off+3]))*a + 0.5)
		}
	}
}

// text draws a label with the fixed 7x13 font.
func (r *rgbaPainter) text(l Label) {
	face := basicfont.Face7x13
	col := colText
	if l.Stop {
		col = colStop
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(col),
		Face: face,
	}

	anchor := apply(r.c.CTM, l.At)
	lineHeight := face.Metrics().Height.Ceil()
	y := int(anchor.Y) - lineHeight*(len(l.Lines)-1) - face.Metrics().Descent.Ceil()
	for _, line := range l.Lines {
		w := d.MeasureString(line).Ceil()
		x := int(anchor.X) - w/2
		if l.Stop {
			// right aligned, like a tag on the element
			x = int(anchor.X) - w - 2
		}
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
		y += lineHeight
	}
}
