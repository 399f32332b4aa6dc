package mesh

// trianglesCross reports whether triangles a and b overlap in the xy
// plane (beyond merely sharing an edge or vertex), used by the
// O(n^2) pairwise check in Validate. It uses the separating-axis test
// for convex polygons: two triangles' interiors are disjoint iff some
// edge of either triangle has all vertices of the other triangle on or
// outside its line.
func trianglesCross(a, b Triangle) bool {
	pa := [3]Vertex{a.A, a.B, a.C}
	pb := [3]Vertex{b.A, b.B, b.C}

	if separatingAxis(pa, pb) || separatingAxis(pb, pa) {
		return false
	}
	return true
}

func separatingAxis(p, q [3]Vertex) bool {
	for i := 0; i < 3; i++ {
		o := p[i]
		n := p[(i+1)%3]
		// Outward normal of edge (o -> n), assuming p is CCW: (dy, -dx).
		nx := n.Y - o.Y
		ny := o.X - n.X

		allOutside := true
		for _, v := range q {
			side := nx*(v.X-o.X) + ny*(v.Y-o.Y)
			if side < -1e-12 {
				allOutside = false
				break
			}
		}
		if allOutside {
			return true
		}
	}
	return false
}
