package terra

import (
	"container/heap"
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/tntn-go/tntn/geomutil"
)

// scanTriangle fits the affine plane through face id's three anchored
// samples and rasterizes it in horizontal spans, keeping only the
// single worst-error pixel as this triangle's candidate, per spec
// §4.3's scan_triangle. Degenerate (collinear) triangles are silent
// no-ops, per spec §4.2's failure semantics.
func (e *engine) scanTriangle(id int32) {
	a, b, c, anchor := e.dm.Face(id)

	za := e.sampleZ(a)
	zb := e.sampleZ(b)
	zc := e.sampleZ(c)

	plane, ok := geomutil.FitPlane(a.X, a.Y, za, b.X, b.Y, zb, c.X, c.Y, zc)
	if !ok {
		return
	}

	type v3 struct{ X, Y, Z float64 }
	pts := [3]v3{{a.X, a.Y, za}, {b.X, b.Y, zb}, {c.X, c.Y, zc}}
	// insertion-sort three elements by Y, ascending
	if pts[0].Y > pts[1].Y {
		pts[0], pts[1] = pts[1], pts[0]
	}
	if pts[1].Y > pts[2].Y {
		pts[1], pts[2] = pts[2], pts[1]
	}
	if pts[0].Y > pts[1].Y {
		pts[0], pts[1] = pts[1], pts[0]
	}
	v0, v1, v2 := pts[0], pts[1], pts[2]

	cand := &Candidate{Importance: math.Inf(-1), Token: e.nextToken(), Hint: anchor}

	y0, y1, y2 := int(v0.Y), int(v1.Y), int(v2.Y)

	var dxLong float64
	if y2 != y0 {
		dxLong = (v2.X - v0.X) / float64(y2-y0)
	}

	if y1 != y0 {
		dx1 := (v1.X - v0.X) / float64(y1-y0)
		for y := y0; y < y1; y++ {
			x1 := v0.X + dx1*float64(y-y0)
			x2 := v0.X + dxLong*float64(y-y0)
			e.scanLine(plane, y, x1, x2, cand)
		}
	}
	if y2 != y1 {
		dx1 := (v2.X - v1.X) / float64(y2-y1)
		for y := y1; y <= y2; y++ {
			x1 := v1.X + dx1*float64(y-y1)
			x2 := v0.X + dxLong*float64(y-y0)
			e.scanLine(plane, y, x1, x2, cand)
		}
	}

	if math.IsInf(cand.Importance, -1) {
		return // nothing to scan, e.g. a triangle with zero raster footprint
	}

	e.token[cand.Y][cand.X] = cand.Token
	heap.Push(&e.heap, cand)
}

// scanLine evaluates one raster row of the triangle's span [x1, x2]
// (order-independent), per spec §4.3's "ceil of min, floor of max,
// inclusive" half-open convention.
func (e *engine) scanLine(plane geomutil.Plane, y int, x1, x2 float64, cand *Candidate) {
	if y < 0 || y >= e.r.Height {
		return
	}
	xMin, xMax := x1, x2
	if xMin > xMax {
		xMin, xMax = xMax, xMin
	}
	startX := int(math.Ceil(xMin))
	endX := int(math.Floor(xMax))

	for x := startX; x <= endX; x++ {
		if x < 0 || x >= e.r.Width {
			continue
		}
		if e.used[y][x] {
			continue
		}
		z := e.r.At(y, x)
		if e.r.IsNoData(z) {
			continue
		}
		diff := math.Abs(z - plane.Eval(float64(x), float64(y)))
		cand.Consider(x, y, z, diff)
	}
}

// sampleZ returns the raster height at pixel-space point p, treating p
// as an exact integer grid coordinate (every mesh vertex in Terra is
// either a corner or a previously-accepted candidate pixel).
func (e *engine) sampleZ(p vec.Vec2) float64 {
	return e.r.At(int(p.Y), int(p.X))
}
