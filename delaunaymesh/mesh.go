// Package delaunaymesh implements the incremental Delaunay mesh of
// spec §4.2 on top of package quadedge: point location, site
// insertion via a spoke fan plus edge-swap legalization, and the
// DelaunayTriangle face-linked-list of spec §3.
package delaunaymesh

import (
	"math"
	"math/rand"

	"seehuhn.de/go/geom/vec"

	"github.com/tntn-go/tntn/geomutil"
	"github.com/tntn-go/tntn/quadedge"
)

// FixedSeed is the mandatory reproducibility seed for locate's
// tie-breaking generator, spec §4.2/§5.
const FixedSeed = 42

// onSegmentEpsilon is the tolerance used to decide whether an inserted
// point lies on an existing edge rather than strictly inside a face.
const onSegmentEpsilon = 1e-9

// Face is a DelaunayTriangle record: an anchor half-edge (any of the
// triangle's three), a Next handle forming the singly-linked list of
// all faces (spec §3), and Dead marking a face that has been replaced
// by later insertions -- it remains in the list (so insertion order is
// preserved for the "scan all faces" phase, spec §5) but is skipped by
// Walk.
type Face struct {
	Anchor quadedge.Edge
	Next   int32
	Dead   bool
}

// Mesh is the incremental Delaunay mesh.
type Mesh struct {
	graph  *quadedge.Graph
	points []vec.Vec2
	faces  *quadedge.ObjPool[Face]

	faceHead, faceTail int32
	hint               quadedge.Edge
	rng                *rand.Rand
}

// New constructs the mesh from four corner points (a, b, c, d) of an
// axis-aligned bounding quadrilateral given in CCW order, building four
// boundary edges and the diagonal a-c, producing two triangular faces,
// per spec §4.2.
func New(a, b, c, d vec.Vec2) *Mesh {
	m := &Mesh{
		graph:    quadedge.NewGraph(4096),
		points:   make([]vec.Vec2, 0, 4096),
		faces:    quadedge.NewObjPool[Face](1024),
		faceHead: -1,
		faceTail: -1,
		rng:      rand.New(rand.NewSource(FixedSeed)),
	}

	ia := m.addPoint(a)
	ib := m.addPoint(b)
	ic := m.addPoint(c)
	id := m.addPoint(d)

	ea := m.graph.MakeEdge()
	m.graph.SetOrg(ea, ia)
	m.graph.SetDest(ea, ib)

	eb := m.graph.MakeEdge()
	m.graph.Splice(ea.Sym(), eb)
	m.graph.SetOrg(eb, ib)
	m.graph.SetDest(eb, ic)

	ec := m.graph.MakeEdge()
	m.graph.Splice(eb.Sym(), ec)
	m.graph.SetOrg(ec, ic)
	m.graph.SetDest(ec, id)

	ed := m.graph.Connect(ec, ea)

	diag := m.graph.Connect(ed, ec) // ia -> ic, the diagonal

	m.addFace(ea)   // triangle a, b, c (ea, eb, diag.Sym())
	m.addFace(diag) // triangle a, c, d (diag, ec, ed)

	m.hint = ea
	return m
}

// Graph exposes the underlying quad-edge graph, for callers (package
// terra) that need to walk edges directly.
func (m *Mesh) Graph() *quadedge.Graph { return m.graph }

// Point returns the 2D point stored at vertex index v.
func (m *Mesh) Point(v int32) vec.Vec2 { return m.points[v] }

func (m *Mesh) addPoint(p vec.Vec2) int32 {
	m.points = append(m.points, p)
	return int32(len(m.points) - 1)
}

func (m *Mesh) addFace(anchor quadedge.Edge) int32 {
	id := m.faces.Alloc()
	f := m.faces.Get(id)
	f.Anchor = anchor
	f.Next = -1
	if m.faceHead == -1 {
		m.faceHead = id
	} else {
		m.faces.Get(m.faceTail).Next = id
	}
	m.faceTail = id
	m.relabel(id, anchor)
	return id
}

// relabel sets face id's anchor and Left() payload for all three edges
// bordering it.
func (m *Mesh) relabel(id int32, anchor quadedge.Edge) {
	f := m.faces.Get(id)
	f.Anchor = anchor
	e := anchor
	for i := 0; i < 3; i++ {
		m.graph.SetLeft(e, id)
		e = m.graph.Lnext(e)
	}
}

func (m *Mesh) killFace(id int32) {
	if id < 0 {
		return
	}
	m.faces.Get(id).Dead = true
}

// Face returns face id's three vertices (spec §3: recovered from
// anchor.Org, anchor.Dest, anchor.Lprev.Org) and its anchor edge.
func (m *Mesh) Face(id int32) (a, b, c vec.Vec2, anchor quadedge.Edge) {
	f := m.faces.Get(id)
	anchor = f.Anchor
	a = m.Point(m.graph.Org(anchor))
	b = m.Point(m.graph.Dest(anchor))
	c = m.Point(m.graph.Org(m.graph.Lprev(anchor)))
	return
}

// Walk calls fn for every live face, in face-list (insertion) order,
// stopping early if fn returns false. Spec §5: "iteration over faces
// ... follows the face linked list in insertion order."
func (m *Mesh) Walk(fn func(id int32) bool) {
	for id := m.faceHead; id != -1; id = m.faces.Get(id).Next {
		if m.faces.Get(id).Dead {
			continue
		}
		if !fn(id) {
			return
		}
	}
}

func (m *Mesh) classify(e quadedge.Edge, p vec.Vec2) float64 {
	org := m.Point(m.graph.Org(e))
	dest := m.Point(m.graph.Dest(e))
	return geomutil.TriArea(org, dest, p)
}

func (m *Mesh) rightOf(p vec.Vec2, e quadedge.Edge) bool { return m.classify(e, p) < 0 }
func (m *Mesh) leftOf(p vec.Vec2, e quadedge.Edge) bool  { return m.classify(e, p) > 0 }

// ccwBoundary reports whether e is a boundary edge of the mesh (its
// right side has no incident face), per original_source
// DelaunayMesh.cpp's ccw_boundary.
func (m *Mesh) ccwBoundary(e quadedge.Edge) bool {
	return !m.rightOf(m.Point(m.graph.Dest(m.graph.Oprev(e))), e)
}

// Locate walks half-edges starting from hint until it finds the edge e
// such that x lies in e's left face (or on e's origin), per spec
// §4.2. Ties are broken by a deterministic, fixed-seed-42 pseudo-random
// bit, per spec §4.2/§5.
func (m *Mesh) Locate(x vec.Vec2, hint quadedge.Edge) quadedge.Edge {
	e := hint
	if m.rightOf(x, e) {
		e = e.Sym()
	}

	const maxSteps = 1 << 20
	for step := 0; step < maxSteps; step++ {
		if x == m.Point(m.graph.Org(e)) || x == m.Point(m.graph.Dest(e)) {
			return e
		}
		eo := m.graph.Onext(e)
		ed := m.graph.Dprev(e)
		sEo := m.classify(eo, x)
		sEd := m.classify(ed, x)

		switch {
		case sEd < 0 && sEo <= 0:
			return e
		case sEd < 0:
			e = eo
		case sEo <= 0:
			e = ed
		case sEd == 0 && sEo == 0:
			if m.rng.Intn(2) == 0 {
				e = eo
			} else {
				e = ed
			}
		default:
			e = e.Sym()
		}
	}
	return e
}

// onSegment reports whether p lies on segment (a, b) within epsilon.
func onSegment(p, a, b vec.Vec2) bool {
	area := geomutil.TriArea(a, b, p)
	if math.Abs(area) > onSegmentEpsilon {
		return false
	}
	dot := (p.X-a.X)*(b.X-a.X) + (p.Y-a.Y)*(b.Y-a.Y)
	lenSq := (b.X-a.X)*(b.X-a.X) + (b.Y-a.Y)*(b.Y-a.Y)
	return dot >= -onSegmentEpsilon && dot <= lenSq+onSegmentEpsilon
}

// Insert locates x, inserts it into the mesh (building a spoke fan to
// its containing triangle, or merging the two triangles on either side
// if x falls on an existing edge), and legalizes the result via
// incircle-driven edge swaps, per spec §4.2 steps 1-4. It returns an
// edge whose Dest is the new vertex x, and true; if x coincides with an
// existing vertex it returns the located edge and false (a no-op other
// than locating).
func (m *Mesh) Insert(p vec.Vec2) (quadedge.Edge, bool) {
	return m.InsertHint(p, m.hint)
}

// InsertHint behaves like Insert but starts Locate from the given
// half-edge rather than the mesh's internal hint, letting a caller
// (package terra's candidate, which records the triangle it was
// scanned from) skip the walk from an unrelated part of the mesh, per
// spec §4.3 step 3d's "mesh.insert((x, y), candidate.triangle)".
func (m *Mesh) InsertHint(p vec.Vec2, hint quadedge.Edge) (quadedge.Edge, bool) {
	e := m.Locate(p, hint)

	orgPt := m.Point(m.graph.Org(e))
	destPt := m.Point(m.graph.Dest(e))
	if p == orgPt || p == destPt {
		return e, false
	}

	boundaryEdge := quadedge.NilEdge
	if onSegment(p, orgPt, destPt) {
		m.killFace(m.graph.Left(e))
		if m.ccwBoundary(e) {
			// e is a boundary edge: there is no face on its right to
			// kill, and e itself must survive until the spoke fan is
			// built -- deleting it now (and re-anchoring on Oprev(e),
			// as the interior case does) would sever the ring the fan
			// loop below walks. Deletion is deferred until after the
			// fan is complete, per original_source DelaunayMesh.cpp's
			// spoke().
			boundaryEdge = e
		} else {
			m.killFace(m.graph.Left(e.Sym()))
			prev := m.graph.Oprev(e)
			m.graph.DeleteEdge(e)
			e = prev
		}
	} else {
		m.killFace(m.graph.Left(e))
	}

	xIdx := m.addPoint(p)

	base := m.graph.MakeEdge()
	m.graph.SetOrg(base, m.graph.Org(e))
	m.graph.SetDest(base, xIdx)
	m.graph.Splice(base, e)
	startBase := base

	for {
		newEdge := m.graph.Connect(e, base.Sym())
		m.addFace(newEdge)
		base = newEdge
		e = m.graph.Oprev(base)
		if m.graph.Lnext(e) == startBase {
			break
		}
	}

	if boundaryEdge != quadedge.NilEdge {
		m.graph.DeleteEdge(boundaryEdge)
	}

	e = startBase
	for {
		t := m.graph.Oprev(e)
		tDest := m.Point(m.graph.Dest(t))
		eOrg := m.Point(m.graph.Org(e))
		eDest := m.Point(m.graph.Dest(e))
		if m.rightOf(tDest, e) && geomutil.InCircle(eOrg, tDest, eDest, p) {
			m.swap(e)
			e = m.graph.Oprev(e)
		} else if m.graph.Lnext(e) == startBase {
			m.hint = startBase
			return startBase, true
		} else {
			e = m.graph.Lprev(m.graph.Onext(e))
		}
	}
}

// swap performs the quadedge.Swap topological flip and relabels the
// two incident faces' anchors and Left payloads, per spec §4.1/§4.2's
// "relabel both incident faces' anchors".
func (m *Mesh) swap(e quadedge.Edge) {
	idA := m.graph.Left(e)
	idB := m.graph.Left(e.Sym())
	m.graph.Swap(e)
	m.relabel(idA, e)
	m.relabel(idB, e.Sym())
}
