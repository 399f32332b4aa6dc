package quadedge

// Edge is a directed half-edge handle: group*4 + rotation, where group
// identifies the quartet (an "edge" in the undirected sense) and
// rotation in [0,4) selects e, Rot(e), Sym(e), invRot(e). NilEdge (-1)
// denotes "no edge".
type Edge int32

// NilEdge is the zero-value sentinel for "no edge".
const NilEdge Edge = -1

func makeEdgeHandle(group int32, rot int32) Edge {
	return Edge(group*4 + rot)
}

func (e Edge) group() int32 { return int32(e) / 4 }
func (e Edge) rot() int32   { return int32(e) % 4 }

// Rot returns the dual of e, rotated 90 degrees counter-clockwise.
func (e Edge) Rot() Edge { return makeEdgeHandle(e.group(), (e.rot()+1)%4) }

// Sym returns the same undirected edge with reversed direction.
func (e Edge) Sym() Edge { return makeEdgeHandle(e.group(), (e.rot()+2)%4) }

// InvRot is the dual of e, rotated 90 degrees clockwise.
func (e Edge) InvRot() Edge { return makeEdgeHandle(e.group(), (e.rot()+3)%4) }

// Graph owns the pool-allocated arena of edge quartets. It is not safe
// for concurrent use, matching spec §5's single-threaded core.
type Graph struct {
	onext   []Edge  // Onext ring pointer, one slot per directed edge
	payload []int32 // Org (primal slots) / Left-face (dual slots) data, one slot per directed edge
}

// NewGraph creates an empty graph with capacity reserved for the given
// number of edge quartets (spec §5 suggests 4096).
func NewGraph(edgeCapacity int) *Graph {
	return &Graph{
		onext:   make([]Edge, 0, edgeCapacity*4),
		payload: make([]int32, 0, edgeCapacity*4),
	}
}

// MakeEdge allocates a new isolated edge quartet: an edge with two
// distinct, unconnected endpoints and no incident faces, per spec
// §4.1. It returns the primal edge e0; e0.Sym(), e0.Rot(), and
// e0.Rot().Rot().Rot() are its dual/reverse forms.
func (g *Graph) MakeEdge() Edge {
	group := int32(len(g.onext) / 4)
	e0 := makeEdgeHandle(group, 0)
	e1 := makeEdgeHandle(group, 1)
	e2 := makeEdgeHandle(group, 2)
	e3 := makeEdgeHandle(group, 3)

	g.onext = append(g.onext, e0, e3, e2, e1)
	g.payload = append(g.payload, -1, -1, -1, -1)
	return e0
}

// Onext returns e's Onext ring pointer: the next edge counter-clockwise
// around e's origin.
func (g *Graph) Onext(e Edge) Edge { return g.onext[e] }

// Oprev returns the next edge clockwise around e's origin.
func (g *Graph) Oprev(e Edge) Edge { return g.Onext(e.Rot()).Rot() }

// Dnext returns the next edge counter-clockwise around e's destination.
func (g *Graph) Dnext(e Edge) Edge { return g.Onext(e.Sym()).Sym() }

// Dprev returns the next edge clockwise around e's destination.
func (g *Graph) Dprev(e Edge) Edge { return g.Onext(e.InvRot()).InvRot() }

// Lnext returns the next edge counter-clockwise around e's left face.
func (g *Graph) Lnext(e Edge) Edge { return g.Onext(e.InvRot()).Rot() }

// Lprev returns the next edge clockwise around e's left face.
func (g *Graph) Lprev(e Edge) Edge { return g.Onext(e).Sym() }

// Rnext returns the next edge counter-clockwise around e's right face.
func (g *Graph) Rnext(e Edge) Edge { return g.Onext(e.Rot()).InvRot() }

// Rprev returns the next edge clockwise around e's right face.
func (g *Graph) Rprev(e Edge) Edge { return g.Onext(e.Sym()) }

// Org returns e's origin vertex payload.
func (g *Graph) Org(e Edge) int32 { return g.payload[e] }

// SetOrg sets e's origin vertex payload.
func (g *Graph) SetOrg(e Edge, v int32) { g.payload[e] = v }

// Dest returns e's destination vertex payload (the origin of Sym(e)).
func (g *Graph) Dest(e Edge) int32 { return g.Org(e.Sym()) }

// SetDest sets e's destination vertex payload.
func (g *Graph) SetDest(e Edge, v int32) { g.SetOrg(e.Sym(), v) }

// Left returns e's left-face payload.
func (g *Graph) Left(e Edge) int32 { return g.payload[e.Rot()] }

// SetLeft sets e's left-face payload.
func (g *Graph) SetLeft(e Edge, f int32) { g.payload[e.Rot()] = f }

// Right returns e's right-face payload.
func (g *Graph) Right(e Edge) int32 { return g.payload[e.InvRot()] }

// SetRight sets e's right-face payload.
func (g *Graph) SetRight(e Edge, f int32) { g.payload[e.InvRot()] = f }

// Splice is the sole topological mutator (spec §4.1). Let alpha =
// Rot(Onext(a)), beta = Rot(Onext(b)); it atomically swaps
// Onext(a)<->Onext(b) and Onext(alpha)<->Onext(beta). If a and b share
// an origin, this separates their Onext rings into two; otherwise it
// merges them into one.
func (g *Graph) Splice(a, b Edge) {
	alpha := g.Onext(a).Rot()
	beta := g.Onext(b).Rot()

	g.onext[a], g.onext[b] = g.onext[b], g.onext[a]
	g.onext[alpha], g.onext[beta] = g.onext[beta], g.onext[alpha]
}

// Connect creates a new edge from a.Dest() to b.Org(), lying in the
// face to the left of both a and b, per spec §4.1.
func (g *Graph) Connect(a, b Edge) Edge {
	e := g.MakeEdge()
	g.SetOrg(e, g.Dest(a))
	g.SetDest(e, g.Org(b))
	g.Splice(e, g.Lnext(a))
	g.Splice(e.Sym(), b)
	return e
}

// DeleteEdge removes e from the subdivision by splicing it out of both
// its endpoints' rings. The edge's memory is not reclaimed (pools are
// append-only for the run's duration); callers must not use e or its
// derived handles afterward.
func (g *Graph) DeleteEdge(e Edge) {
	g.Splice(e, g.Oprev(e))
	g.Splice(e.Sym(), g.Oprev(e.Sym()))
}

// Swap flips the diagonal of the quadrilateral spanning e: detaches e
// from both endpoint rings, rotates one step around its bounding
// quadrilateral, and reattaches, per spec §4.1. It updates e's Org and
// Dest but does not touch face payloads -- callers that track face
// records (package delaunaymesh) must relabel incident face anchors
// themselves after calling Swap.
func (g *Graph) Swap(e Edge) {
	a := g.Oprev(e)
	b := g.Oprev(e.Sym())

	g.Splice(e, a)
	g.Splice(e.Sym(), b)

	g.Splice(e, g.Lnext(a))
	g.Splice(e.Sym(), g.Lnext(b))

	g.SetOrg(e, g.Dest(a))
	g.SetDest(e, g.Dest(b))
}
