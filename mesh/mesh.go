// Package mesh defines the TIN output type shared by every meshing
// engine and consumer in this module: Vertex, Face, Triangle, and Mesh
// itself, plus the "proper TIN" validation spec §3 requires.
package mesh

import "math"

// Vertex is a point (x, y, z) of doubles, spec §3.
type Vertex struct {
	X, Y, Z float64
}

// Face is an ordered triple of vertex indices into a Mesh's Vertices
// slice (0-based), spec §3. Counter-clockwise in the xy plane means
// outward/up-facing.
type Face struct {
	A, B, C int
}

// Triangle is an ordered triple of vertices, inline rather than
// indexed, spec §3.
type Triangle struct {
	A, B, C Vertex
}

// SignedArea2D returns twice the signed xy-plane area of t. Positive
// iff t is counter-clockwise (up-facing).
func (t Triangle) SignedArea2D() float64 {
	return (t.B.X-t.A.X)*(t.C.Y-t.A.Y) - (t.B.Y-t.A.Y)*(t.C.X-t.A.X)
}

// Mesh holds, simultaneously, up to two redundant views of the same
// surface: the indexed/decomposed view (Vertices + Faces) and the
// expanded view (Triangles). Either may be absent; ToTriangles and
// ToIndexed generate the missing view on demand. Spec §3.
type Mesh struct {
	Vertices  []Vertex
	Faces     []Face
	Triangles []Triangle
}

// HasIndexed reports whether the indexed view is populated.
func (m *Mesh) HasIndexed() bool { return len(m.Vertices) > 0 && len(m.Faces) > 0 }

// HasExpanded reports whether the expanded view is populated.
func (m *Mesh) HasExpanded() bool { return len(m.Triangles) > 0 }

// Empty reports whether the mesh carries no geometry in either view.
func (m *Mesh) Empty() bool { return !m.HasIndexed() && !m.HasExpanded() }

// ToTriangles returns the expanded view, generating it from the indexed
// view if necessary. The returned slice is cached on m.
func (m *Mesh) ToTriangles() []Triangle {
	if m.HasExpanded() {
		return m.Triangles
	}
	if !m.HasIndexed() {
		return nil
	}
	out := make([]Triangle, len(m.Faces))
	for i, f := range m.Faces {
		out[i] = Triangle{A: m.Vertices[f.A], B: m.Vertices[f.B], C: m.Vertices[f.C]}
	}
	m.Triangles = out
	return out
}

// ToIndexed returns the indexed view, generating it from the expanded
// view if necessary (deduplicating coincident vertices exactly, by
// value). The returned slices are cached on m.
func (m *Mesh) ToIndexed() ([]Vertex, []Face) {
	if m.HasIndexed() {
		return m.Vertices, m.Faces
	}
	if !m.HasExpanded() {
		return nil, nil
	}
	index := make(map[Vertex]int)
	var verts []Vertex
	faces := make([]Face, len(m.Triangles))
	lookup := func(v Vertex) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := len(verts)
		verts = append(verts, v)
		index[v] = i
		return i
	}
	for i, t := range m.Triangles {
		faces[i] = Face{A: lookup(t.A), B: lookup(t.B), C: lookup(t.C)}
	}
	m.Vertices = verts
	m.Faces = faces
	return verts, faces
}

// Bounds returns the xy bounding box over every vertex the mesh
// currently holds (preferring the indexed view). ok is false for an
// empty mesh.
func (m *Mesh) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	verts := m.Vertices
	if len(verts) == 0 {
		verts = vertsOf(m.ToTriangles())
	}
	if len(verts) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, v := range verts {
		minX = math.Min(minX, v.X)
		minY = math.Min(minY, v.Y)
		maxX = math.Max(maxX, v.X)
		maxY = math.Max(maxY, v.Y)
	}
	return minX, minY, maxX, maxY, true
}

func vertsOf(tris []Triangle) []Vertex {
	out := make([]Vertex, 0, 3*len(tris))
	for _, t := range tris {
		out = append(out, t.A, t.B, t.C)
	}
	return out
}

// ZBounds returns the z-range over every vertex, analogous to Bounds.
func (m *Mesh) ZBounds() (minZ, maxZ float64, ok bool) {
	verts := m.Vertices
	if len(verts) == 0 {
		verts = vertsOf(m.ToTriangles())
	}
	if len(verts) == 0 {
		return 0, 0, false
	}
	minZ, maxZ = math.Inf(1), math.Inf(-1)
	for _, v := range verts {
		minZ = math.Min(minZ, v.Z)
		maxZ = math.Max(maxZ, v.Z)
	}
	return minZ, maxZ, true
}

// Validate checks the "proper TIN" invariants from spec §3: no
// duplicate vertices, every vertex referenced, no face with repeated
// indices, all faces up-facing, and (the expensive O(n^2) check) no two
// faces crossing in 2D -- the last is only run when allowPairwiseCheck
// is true, since it is quadratic in face count.
func (m *Mesh) Validate(allowPairwiseCheck bool) []error {
	var errs []error
	verts, faces := m.ToIndexed()

	seen := make(map[Vertex]bool, len(verts))
	for _, v := range verts {
		if seen[v] {
			errs = append(errs, &DuplicateVertexError{Vertex: v})
		}
		seen[v] = true
	}

	referenced := make([]bool, len(verts))
	for _, f := range faces {
		if f.A == f.B || f.B == f.C || f.A == f.C {
			errs = append(errs, &RepeatedIndexError{Face: f})
			continue
		}
		if f.A < 0 || f.A >= len(verts) || f.B < 0 || f.B >= len(verts) || f.C < 0 || f.C >= len(verts) {
			errs = append(errs, &IndexOutOfRangeError{Face: f})
			continue
		}
		referenced[f.A], referenced[f.B], referenced[f.C] = true, true, true

		tri := Triangle{A: verts[f.A], B: verts[f.B], C: verts[f.C]}
		if tri.SignedArea2D() < 0 {
			errs = append(errs, &NotUpFacingError{Face: f})
		}
	}
	for i, ref := range referenced {
		if !ref {
			errs = append(errs, &UnreferencedVertexError{Index: i})
		}
	}

	if allowPairwiseCheck {
		tris := m.ToTriangles()
		for i := 0; i < len(tris); i++ {
			for j := i + 1; j < len(tris); j++ {
				if trianglesCross(tris[i], tris[j]) {
					errs = append(errs, &CrossingFacesError{I: i, J: j})
				}
			}
		}
	}
	return errs
}
