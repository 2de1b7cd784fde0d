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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Pen describes how lines are stroked.  All lengths are in device pixels,
// so that line widths stay the same when the diagram is rescaled.
type Pen struct {
	Width float64
	Cap   graphics.LineCapStyle

	// Dash specifies alternating on/off lengths.  An empty slice means a
	// solid line.
	Dash []float64
}

// Stroke renders the outline of p, given in diagram coordinates, with the
// pen.  Curves are flattened first.  Segments, round joins and caps are
// all emitted as clockwise polygons and filled together with the nonzero
// rule, so overlaps do not cancel.
func (c *Canvas) Stroke(p *path.Data, pen Pen, emit func(y, xMin int, coverage []float32)) {
	if pen.Width <= 0 {
		return
	}
	d := pen.Width / 2

	outline := &path.Data{}
	for _, line := range c.polylines(p) {
		for _, piece := range dashed(line, pen.Dash) {
			strokePolyline(outline, piece, d, pen.Cap)
		}
	}

	c.resetEdges()
	c.addPath(outline, matrix.Identity)
	c.scan(emit)
}

// polylines flattens p into device space polylines, one per subpath.
func (c *Canvas) polylines(p *path.Data) [][]vec.Vec2 {
	var res [][]vec.Vec2
	var cur []vec.Vec2
	var current, start vec.Vec2
	flush := func() {
		if len(cur) > 1 {
			res = append(res, cur)
		}
		cur = nil
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			flush()
			current = p.Coords[k]
			start = current
			cur = append(cur, apply(c.CTM, current))
			k++
		case path.CmdLineTo:
			current = p.Coords[k]
			cur = append(cur, apply(c.CTM, current))
			k++
		case path.CmdQuadTo:
			q, end := p.Coords[k], p.Coords[k+1]
			c1 := current.Add(q.Sub(current).Mul(2.0 / 3))
			c2 := end.Add(q.Sub(end).Mul(2.0 / 3))
			cur = c.appendCubic(cur, current, c1, c2, end)
			current = end
			k += 2
		case path.CmdCubeTo:
			cur = c.appendCubic(cur, current, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if len(cur) > 0 {
				cur = append(cur, apply(c.CTM, start))
			}
			flush()
			current = start
		}
	}
	flush()
	return res
}

// appendCubic appends the device space points of a flattened cubic,
// excluding the start point.
func (c *Canvas) appendCubic(dst []vec.Vec2, p0, p1, p2, p3 vec.Vec2) []vec.Vec2 {
	n := cubicSteps(c.CTM, c.Flatness, p0, p1, p2, p3)
	for i := 1; i <= n; i++ {
		dst = append(dst, apply(c.CTM, cubicAt(p0, p1, p2, p3, float64(i)/float64(n))))
	}
	return dst
}

// dashed splits a polyline into its "on" pieces.
func dashed(line []vec.Vec2, dash []float64) [][]vec.Vec2 {
	total := 0.0
	for _, d := range dash {
		total += max(d, 0)
	}
	if len(dash) == 0 || total <= 0 {
		return [][]vec.Vec2{line}
	}

	var res [][]vec.Vec2
	idx := 0
	remaining := dash[0]
	cur := []vec.Vec2{line[0]}
	for i := 1; i < len(line); i++ {
		a, b := line[i-1], line[i]
		segLen := b.Sub(a).Length()
		pos := 0.0
		for segLen-pos > remaining {
			pos += remaining
			pt := a.Add(b.Sub(a).Mul(pos / segLen))
			if idx%2 == 0 {
				res = append(res, append(cur, pt))
				cur = nil
			} else {
				cur = []vec.Vec2{pt}
			}
			idx = (idx + 1) % len(dash)
			remaining = max(dash[idx], 0)
		}
		remaining -= segLen - pos
		if idx%2 == 0 {
			cur = append(cur, b)
		}
	}
	if idx%2 == 0 && len(cur) > 1 {
		res = append(res, cur)
	}
	return res
}

// strokePolyline appends the stroke outline of a polyline with half
// width d to out.
func strokePolyline(out *path.Data, line []vec.Vec2, d float64, capStyle graphics.LineCapStyle) {
	var first, last vec.Vec2
	n := 0
	for i := 1; i < len(line); i++ {
		a, b := line[i-1], line[i]
		v := b.Sub(a)
		l := v.Length()
		if l < zeroLengthThreshold {
			continue
		}
		t := v.Mul(1 / l)
		nrm := vec.Vec2{X: -t.Y, Y: t.X}
		if capStyle == graphics.LineCapSquare {
			// square caps extend the end segments
			if n == 0 {
				a = a.Sub(t.Mul(d))
			}
			if i == len(line)-1 {
				b = b.Add(t.Mul(d))
			}
		}
		out.MoveTo(a.Add(nrm.Mul(d))).
			LineTo(b.Add(nrm.Mul(d))).
			LineTo(b.Sub(nrm.Mul(d))).
			LineTo(a.Sub(nrm.Mul(d))).
			Close()

		if n > 0 {
			// round join at the shared vertex
			addDisc(out, line[i-1], d)
		} else {
			first = line[i-1]
		}
		last = line[i]
		n++
	}
	if n == 0 || capStyle != graphics.LineCapRound {
		return
	}
	addDisc(out, first, d)
	addDisc(out, last, d)
}

// addDisc appends a clockwise polygon approximating a circle.
func addDisc(out *path.Data, center vec.Vec2, r float64) {
	n := 8
	if r > 2 {
		n = 16
	}
	for i := range n {
		phi := -2 * math.Pi * float64(i) / float64(n)
		pt := center.Add(vec.Vec2{X: r * math.Cos(phi), Y: r * math.Sin(phi)})
		if i == 0 {
			out.MoveTo(pt)
		} else {
			out.LineTo(pt)
		}
	}
	out.Close()
}

// zeroLengthThreshold is the device length below which a segment is
// considered to have no direction.
const zeroLengthThreshold = 1e-9
