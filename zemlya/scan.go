package zemlya

import (
	"container/heap"
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/tntn-go/tntn/geomutil"
	"github.com/tntn-go/tntn/quadedge"
	"github.com/tntn-go/tntn/terra"
)

// scanTriangle fits a plane through face id's three already-accepted
// vertex heights (from e.result, not the raw raster) and rasterizes it
// in horizontal spans against whichever raster this level samples
// from, keeping the single worst-error pixel as this triangle's
// candidate. Grounded on original_source ZemlyaMesh.cpp::scan_triangle.
func (e *engine) scanTriangle(id int32) {
	a, b, c, anchor := e.dm.Face(id)

	za := e.result.At(int(a.Y), int(a.X))
	zb := e.result.At(int(b.Y), int(b.X))
	zc := e.result.At(int(c.Y), int(c.X))

	plane, ok := geomutil.FitPlane(a.X, a.Y, za, b.X, b.Y, zb, c.X, c.Y, zc)
	if !ok {
		return
	}

	type v3 struct{ X, Y, Z float64 }
	pts := [3]v3{{a.X, a.Y, za}, {b.X, b.Y, zb}, {c.X, c.Y, zc}}
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

	cand := &terra.Candidate{Importance: math.Inf(-1), Token: e.nextToken(), Hint: anchor}

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
		return
	}

	e.token[cand.Y][cand.X] = cand.Token
	heap.Push(&e.heap, cand)
}

// scanLine samples whichever raster the current level draws from: the
// finest level (currentLevel == topLevel) reads the raw raster
// directly, every coarser level reads the per-level e.insert working
// raster, per original_source's "attention - use m_raster/m_insert
// depending on level".
func (e *engine) scanLine(plane geomutil.Plane, y int, x1, x2 float64, cand *terra.Candidate) {
	if y < 0 || y >= e.r.Height {
		return
	}
	xMin, xMax := x1, x2
	if xMin > xMax {
		xMin, xMax = xMax, xMin
	}
	startX := int(math.Ceil(xMin))
	endX := int(math.Floor(xMax))

	src := e.insert
	if e.currentLevel == e.topLevel {
		src = e.r
	}

	for x := startX; x <= endX; x++ {
		if x < 0 || x >= e.r.Width {
			continue
		}
		if e.used[y][x] {
			continue
		}
		z := src.At(y, x)
		if src.IsNoData(z) {
			continue
		}
		diff := math.Abs(z - plane.Eval(float64(x), float64(y)))
		cand.Consider(x, y, z, diff)
	}
}

// drainHeap runs one level's worth of greedy insertion: pop the best
// remaining candidate, insert it if it still clears the error
// threshold and hasn't gone stale, and rescan every triangle incident
// to the new vertex, exactly mirroring terra's refine loop (continue,
// never break, on every disqualifying check) but without an iteration
// cap, since zemlya's levels are themselves the throttle.
func (e *engine) drainHeap() {
	for e.heap.Len() > 0 {
		c := heap.Pop(&e.heap).(*terra.Candidate)

		if c.Importance < e.maxError {
			continue
		}
		if e.token[c.Y][c.X] != c.Token {
			continue
		}

		e.result.Set(c.Y, c.X, c.Z)
		e.used[c.Y][c.X] = true

		edge, _ := e.dm.InsertHint(vec.Vec2{X: float64(c.X), Y: float64(c.Y)}, c.Hint)
		e.rescanIncident(edge)
	}
}

// rescanIncident walks the Onext ring of the vertex most recently
// inserted and re-scans every incident triangle.
func (e *engine) rescanIncident(anchor quadedge.Edge) {
	g := e.dm.Graph()
	start := anchor.Sym()
	cur := start
	for {
		e.scanTriangle(g.Left(cur))
		cur = g.Onext(cur)
		if cur == start {
			break
		}
	}
}
