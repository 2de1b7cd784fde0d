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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Canvas converts closed outlines into anti-aliased pixel coverage, using
// the nonzero winding rule.  A Canvas can be reused for many shapes; its
// internal buffers grow as needed and are never released.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	// CTM maps diagram coordinates (cm) to device pixels.
	CTM matrix.Matrix

	// Clip limits the output to this device rectangle.
	// Coordinates must be integers.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	Flatness float64

	cover     []float32 // per pixel change of the winding coverage
	area      []float32 // per pixel partial coverage
	edges     []edge
	active    []int     // indices of edges crossing the current scanline
	crossings []float64 // y values where an edge enters a new pixel column

	xMin, xMax, yMin, yMax float64 // device bounding box of edges
}

// NewCanvas returns a Canvas with the given clip rectangle and an identity
// transformation.
func NewCanvas(clip rect.Rect) *Canvas {
	return &Canvas{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
	}
}

// Fill computes the coverage of the path p, which is given in diagram
// coordinates.  Open subpaths are closed implicitly.  Coverage is passed
// to emit row by row; the slice is only valid during the callback.
func (c *Canvas) Fill(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	c.resetEdges()
	c.addPath(p, c.CTM)
	c.scan(emit)
}

func (c *Canvas) resetEdges() {
	c.edges = c.edges[:0]
	c.xMin, c.yMin = math.Inf(1), math.Inf(1)
	c.xMax, c.yMax = math.Inf(-1), math.Inf(-1)
}

// addPath walks the path and appends its edges, transformed by ctm.
func (c *Canvas) addPath(p *path.Data, ctm matrix.Matrix) {
	var current, start vec.Vec2
	open := false
	closeSubpath := func() {
		if open && current != start {
			c.addEdge(ctm, current, start)
		}
		current = start
		open = false
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			closeSubpath()
			current = p.Coords[k]
			start = current
			open = true
			k++
		case path.CmdLineTo:
			c.addEdge(ctm, current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			// raise to a cubic with the same shape
			q := p.Coords[k]
			end := p.Coords[k+1]
			c1 := current.Add(q.Sub(current).Mul(2.0 / 3))
			c2 := end.Add(q.Sub(end).Mul(2.0 / 3))
			c.flattenCubic(ctm, current, c1, c2, end)
			current = end
			k += 2
		case path.CmdCubeTo:
			c.flattenCubic(ctm, current, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			closeSubpath()
		}
	}
	closeSubpath()
}

// flattenCubic approximates a cubic Bézier curve by line segments.
func (c *Canvas) flattenCubic(ctm matrix.Matrix, p0, p1, p2, p3 vec.Vec2) {
	n := cubicSteps(ctm, c.Flatness, p0, p1, p2, p3)
	prev := p0
	for i := 1; i <= n; i++ {
		pt := cubicAt(p0, p1, p2, p3, float64(i)/float64(n))
		c.addEdge(ctm, prev, pt)
		prev = pt
	}
}

// cubicSteps returns the number of line segments needed to approximate
// the curve within the given tolerance, following Wang's formula.
func cubicSteps(ctm matrix.Matrix, flatness float64, p0, p1, p2, p3 vec.Vec2) int {
	d1 := linear(ctm, p0.Sub(p1.Mul(2)).Add(p2))
	d2 := linear(ctm, p1.Sub(p2.Mul(2)).Add(p3))
	m := max(d1.Length(), d2.Length())
	if m == 0 || flatness <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(math.Sqrt(3*m/(4*flatness)))))
}

func cubicAt(p0, p1, p2, p3 vec.Vec2, t float64) vec.Vec2 {
	s := 1 - t
	return p0.Mul(s * s * s).Add(p1.Mul(3 * s * s * t)).Add(p2.Mul(3 * s * t * t)).Add(p3.Mul(t * t * t))
}

// addEdge transforms the segment from p0 to p1 and records it.
func (c *Canvas) addEdge(ctm matrix.Matrix, p0, p1 vec.Vec2) {
	a := apply(ctm, p0)
	b := apply(ctm, p1)

	dy := b.Y - a.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	c.edges = append(c.edges, edge{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy: (b.X - a.X) / dy,
	})

	c.xMin = min(c.xMin, a.X, b.X)
	c.xMax = max(c.xMax, a.X, b.X)
	c.yMin = min(c.yMin, a.Y, b.Y)
	c.yMax = max(c.yMax, a.Y, b.Y)
}

// scan runs an active edge list over the scanlines covered by the edges.
func (c *Canvas) scan(emit func(y, xMin int, coverage []float32)) {
	if len(c.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(c.xMin)), int(c.Clip.LLx))
	xMax := min(int(math.Floor(c.xMax))+1, int(c.Clip.URx))
	yMin := max(int(math.Floor(c.yMin)), int(c.Clip.LLy))
	yMax := min(int(math.Floor(c.yMax))+1, int(c.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	width := xMax - xMin
	c.cover = slices.Grow(c.cover[:0], width)[:width]
	c.area = slices.Grow(c.area[:0], width)[:width]

	slices.SortFunc(c.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	c.active = c.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top, bot := float64(y), float64(y+1)

		for next < len(c.edges) && min(c.edges[next].y0, c.edges[next].y1) < bot {
			c.active = append(c.active, next)
			next++
		}
		if len(c.active) == 0 {
			continue
		}

		clear(c.cover)
		clear(c.area)
		for i := 0; i < len(c.active); {
			e := &c.edges[c.active[i]]
			if max(e.y0, e.y1) <= top {
				c.active[i] = c.active[len(c.active)-1]
				c.active = c.active[:len(c.active)-1]
				continue
			}
			c.accumulate(e, y, xMin, xMax)
			i++
		}

		integrateNonZero(c.cover, c.area)
		if row, offset := trimZeros(c.cover); row != nil {
			emit(y, xMin+offset, row)
		}
	}
}

// accumulate adds the contribution of the part of e inside scanline y.
// The edge is split where it crosses pixel column boundaries, and each
// piece is deposited in the column containing its midpoint.
func (c *Canvas) accumulate(e *edge, y, xMin, xMax int) {
	top := max(float64(y), min(e.y0, e.y1))
	bot := min(float64(y+1), max(e.y0, e.y1))
	if bot <= top {
		return
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xTop := e.x0 + e.dxdy*(top-e.y0)
	xBot := e.x0 + e.dxdy*(bot-e.y0)
	c.crossings = append(c.crossings[:0], top, bot)
	hi := max(xTop, xBot)
	for x := math.Floor(min(xTop, xBot)) + 1; x <= hi; x++ {
		if yx := e.y0 + (x-e.x0)/e.dxdy; yx > top && yx < bot {
			c.crossings = append(c.crossings, yx)
		}
	}
	slices.Sort(c.crossings)

	for i := range len(c.crossings) - 1 {
		y0, y1 := c.crossings[i], c.crossings[i+1]
		if y1 <= y0 {
			continue
		}
		xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
		c.deposit(xMid, sign*float32(y1-y0), xMin, xMax)
	}
}

// deposit records coverage cov for a piece of edge at horizontal position x.
// Pixels right of x are covered fully, the pixel containing x partially.
func (c *Canvas) deposit(x float64, cov float32, xMin, xMax int) {
	pix := int(math.Floor(x))
	switch {
	case pix < xMin:
		c.cover[0] += cov
		c.area[0] += cov
	case pix < xMax:
		i := pix - xMin
		c.cover[i] += cov
		c.area[i] += cov * float32(1-(x-float64(pix)))
	}
}

// integrateNonZero turns the accumulated cover and area values into
// coverage in [0, 1].  The result is stored in cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the part of coverage between the first and last
// non-zero entries, together with its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage) - 1
	for coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// apply maps p through the affine transformation M.
func apply(M matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: M[0]*p.X + M[2]*p.Y + M[4],
		Y: M[1]*p.X + M[3]*p.Y + M[5],
	}
}

// linear applies only the 2x2 part of M, for difference vectors.
func linear(M matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: M[0]*v.X + M[2]*v.Y,
		Y: M[1]*v.X + M[3]*v.Y,
	}
}

const (
	// defaultFlatness is the default curve flattening tolerance in device
	// pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimal vertical extent for an edge to
	// contribute to coverage.
	horizontalEdgeThreshold = 1e-10
)
