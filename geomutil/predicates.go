package geomutil

import (
	"gonum.org/v1/gonum/mat"
	"seehuhn.de/go/geom/vec"
)

// IncircleEpsilon is the tolerance used by InCircle, per spec §4.2.
const IncircleEpsilon = 1e-6

// TriArea returns twice the signed area of triangle (a, b, c) in the xy
// plane. Positive iff a, b, c are in counter-clockwise order.
func TriArea(a, b, c vec.Vec2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// InCircle reports whether d lies strictly inside the circle through
// a, b, c, which must be given in counter-clockwise order. It evaluates
// the standard 4x4 determinant
//
//	| ax  ay  ax^2+ay^2  1 |
//	| bx  by  bx^2+by^2  1 |
//	| cx  cy  cx^2+cy^2  1 |
//	| dx  dy  dx^2+dy^2  1 |
//
// via gonum, which is positive iff d is inside the circumscribed circle.
func InCircle(a, b, c, d vec.Vec2) bool {
	row := func(p vec.Vec2) []float64 {
		return []float64{p.X, p.Y, p.X*p.X + p.Y*p.Y, 1}
	}
	m := mat.NewDense(4, 4, append(append(append(
		row(a), row(b)...), row(c)...), row(d)...))
	return mat.Det(m) > IncircleEpsilon
}

// Plane is an affine height field z = A*x + B*y + C, as fitted by
// scan_triangle (spec §4.3) through a triangle's three anchored samples.
type Plane struct {
	A, B, C float64
}

// Eval returns the plane's height at (x, y).
func (p Plane) Eval(x, y float64) float64 {
	return p.A*x + p.B*y + p.C
}

// FitPlane solves the 3x3 linear system for the unique plane passing
// through three non-collinear points (x0,y0,z0), (x1,y1,z1), (x2,y2,z2).
// ok is false if the points are collinear (singular system), matching
// spec §4.2's "degenerate configurations ... are silent no-ops".
func FitPlane(x0, y0, z0, x1, y1, z1, x2, y2, z2 float64) (p Plane, ok bool) {
	a := mat.NewDense(3, 3, []float64{
		x0, y0, 1,
		x1, y1, 1,
		x2, y2, 1,
	})
	b := mat.NewDense(3, 1, []float64{z0, z1, z2})
	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		return Plane{}, false
	}
	return Plane{A: x.At(0, 0), B: x.At(1, 0), C: x.At(2, 0)}, true
}
