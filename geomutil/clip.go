package geomutil

import "math"

// Point3 is a bare (x, y, z) triple, used where a full mesh.Vertex would
// create an import cycle (geomutil sits below mesh in the dependency
// graph).
type Point3 struct {
	X, Y, Z float64
}

// ClipLine is a directed line (origin o, direction d); ClipTriangle keeps
// the half-plane to the left of the line, i.e. where cross(d, p-o) >= 0.
type ClipLine struct {
	OX, OY float64
	DX, DY float64
}

// side returns the signed cross(d, p-o): positive when p is to the left
// of the line, negative to the right, zero on the line.
func (l ClipLine) side(p Point3) float64 {
	return l.DX*(p.Y-l.OY) - l.DY*(p.X-l.OX)
}

// intersect computes the 2D crossing of segment (a, b) with the line and
// linearly interpolates z along the segment by the ratio of 2D distance,
// per spec §4.6.
func (l ClipLine) intersect(a, b Point3) Point3 {
	sa, sb := l.side(a), l.side(b)
	t := sa / (sa - sb)
	return Point3{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
		Z: a.Z + t*(b.Z-a.Z),
	}
}

// ClipTriangle clips triangle (a, b, c) against line, keeping the part in
// line's left half-plane, per spec §4.6's 2.5D triangle-line clipping.
// It returns zero, one, or two triangles (as flattened vertex triples);
// front-facing orientation (CCW) of the input is preserved in the output.
func ClipTriangle(a, b, c Point3, line ClipLine) [][3]Point3 {
	pts := [3]Point3{a, b, c}
	sides := [3]float64{line.side(a), line.side(b), line.side(c)}

	var left, other []int
	for i, s := range sides {
		if s >= 0 {
			left = append(left, i)
		} else {
			other = append(other, i)
		}
	}

	switch len(left) {
	case 0:
		return nil
	case 3:
		return [][3]Point3{{a, b, c}}
	case 1:
		li := left[0]
		o0, o1 := other[0], other[1]
		lp := pts[li]
		// s0, s1 correspond to edges (lp -> pts[o0]) and (lp -> pts[o1])
		s0 := pts[o0]
		if sides[o0] != 0 {
			s0 = line.intersect(lp, pts[o0])
		}
		s1 := pts[o1]
		if sides[o1] != 0 {
			s1 = line.intersect(lp, pts[o1])
		}
		tri := orderedTriangle(li, o0, o1, lp, s0, s1)
		return [][3]Point3{tri}
	case 2:
		oi := other[0]
		l0, l1 := left[0], left[1]
		op := pts[oi]
		i0 := line.intersect(op, pts[l0])
		i1 := line.intersect(op, pts[l1])
		// Two ways to triangulate the resulting quad (op excluded); pick
		// the shorter new diagonal to avoid sliver triangles, per spec.
		l0p, l1p := pts[l0], pts[l1]
		diagA := dist2(i0, l1p)
		diagB := dist2(i1, l0p)
		var t1, t2 [3]Point3
		if diagA <= diagB {
			t1 = orderedTriangle(l0, l1, -1, l0p, l1p, i0)
			t2 = orderedTriangle(l1, -1, -1, l1p, i1, i0)
		} else {
			t1 = orderedTriangle(l0, l1, -1, l0p, l1p, i1)
			t2 = orderedTriangle(l0, -1, -1, l0p, i1, i0)
		}
		return [][3]Point3{t1, t2}
	default:
		return nil
	}
}

// orderedTriangle returns a, b, c as a CCW triangle, swapping b and c
// when their signed xy area is negative. The index arguments (-1 marks a
// synthetic, clipped vertex) are not used in the decision.
func orderedTriangle(idxA, idxB, idxC int, a, b, c Point3) [3]Point3 {
	area := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if area < 0 {
		return [3]Point3{a, c, b}
	}
	return [3]Point3{a, b, c}
}

func dist2(a, b Point3) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// UnitSquareClipLines returns the four clip lines bounding the unit
// square [0,1]^2, applied in order bottom, right, top, left per spec
// §4.6.
func UnitSquareClipLines() [4]ClipLine {
	return [4]ClipLine{
		{OX: 0, OY: 0, DX: 1, DY: 0},
		{OX: 1, OY: 0, DX: 0, DY: 1},
		{OX: 1, OY: 1, DX: -1, DY: 0},
		{OX: 0, OY: 1, DX: 0, DY: -1},
	}
}

// ClipTrianglePolygon clips a triangle against all four unit-square
// clip lines in sequence, returning the resulting (possibly empty) set
// of triangles. NaN-tainted results (degenerate intersections) are swept.
func ClipTrianglePolygon(a, b, c Point3, lines [4]ClipLine) [][3]Point3 {
	tris := [][3]Point3{{a, b, c}}
	for _, line := range lines {
		var next [][3]Point3
		for _, t := range tris {
			next = append(next, ClipTriangle(t[0], t[1], t[2], line)...)
		}
		tris = next
		if len(tris) == 0 {
			return nil
		}
	}
	out := tris[:0]
	for _, t := range tris {
		if hasNaN(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func hasNaN(t [3]Point3) bool {
	for _, p := range t {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
			return true
		}
	}
	return false
}
