// Package terra implements the greedy-insertion refinement meshing
// algorithm of spec §4.3: a priority queue of per-triangle worst-error
// candidates, scan-converted against a deterministic token grid so that
// stale candidates are discarded for free at pop time rather than
// requiring heap decrease-key.
package terra

import (
	"container/heap"

	"seehuhn.de/go/geom/vec"

	"github.com/tntn-go/tntn/delaunaymesh"
	"github.com/tntn-go/tntn/mesh"
	"github.com/tntn-go/tntn/quadedge"
	"github.com/tntn-go/tntn/raster"
	"github.com/tntn-go/tntn/tntnlog"
)

// Options configures a greedy-refinement run.
type Options struct {
	MaxError float64
	// MaxIterations caps the number of accepted insertions; candidates
	// discarded as below threshold or stale do not count. 0 means
	// unbounded, per spec §4.3.
	MaxIterations int
	Logger        *tntnlog.Logger
}

func (o Options) logger() *tntnlog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return tntnlog.Default
}

// engine holds all per-run mutable state: the raster, the used/token
// grids, the Delaunay mesh, the candidate heap and monotonic token
// counter. Spec §5: "state-sharing across these steps is pervasive".
type engine struct {
	r        *raster.Raster
	used     [][]bool
	token    [][]int
	dm       *delaunaymesh.Mesh
	heap     CandidateHeap
	counter  int
	maxError float64
}

// Run executes Terra greedy refinement on r and returns the resulting
// Mesh. Per spec §7, invalid input or a degenerate seed configuration
// is a silent failure: Run logs a diagnostic and returns an empty Mesh
// rather than an error.
func Run(r *raster.Raster, opts Options) *mesh.Mesh {
	log := opts.logger()

	if r == nil || r.Width < 2 || r.Height < 2 {
		log.Errorf("terra: raster too small or nil")
		return &mesh.Mesh{}
	}
	if opts.MaxError <= 0 {
		log.Errorf("terra: max_error must be > 0")
		return &mesh.Mesh{}
	}

	r.ImputeCorners()
	if !r.CornersValid() {
		log.Errorf("terra: corners could not be imputed, all surrounding data missing")
		return &mesh.Mesh{}
	}

	e := newEngine(r, opts.MaxError)
	e.initMesh()
	e.initialScan()
	e.refine(opts.MaxIterations)
	return e.convert()
}

func newEngine(r *raster.Raster, maxError float64) *engine {
	used := make([][]bool, r.Height)
	token := make([][]int, r.Height)
	for y := range used {
		used[y] = make([]bool, r.Width)
		token[y] = make([]int, r.Width)
	}
	return &engine{r: r, used: used, token: token, maxError: maxError}
}

// initMesh seeds the Delaunay mesh with the raster's bounding
// rectangle in pixel-index space (x = column, y = row), per spec §4.3
// step 1. Corners are given in the order that satisfies geomutil's
// CCW convention for this coordinate system.
func (e *engine) initMesh() {
	w, h := float64(e.r.Width-1), float64(e.r.Height-1)
	e.dm = delaunaymesh.New(
		vec.Vec2{X: 0, Y: 0},
		vec.Vec2{X: w, Y: 0},
		vec.Vec2{X: w, Y: h},
		vec.Vec2{X: 0, Y: h},
	)
	e.used[0][0] = true
	e.used[0][e.r.Width-1] = true
	e.used[e.r.Height-1][0] = true
	e.used[e.r.Height-1][e.r.Width-1] = true
}

func (e *engine) initialScan() {
	e.dm.Walk(func(id int32) bool {
		e.scanTriangle(id)
		return true
	})
}

// refine runs the heap-driven loop of spec §4.3 step 3, mirroring
// original_source TerraMesh.cpp's control flow: every popped candidate
// is checked in turn (threshold, iteration cap, staleness) with a
// `continue` rather than an early break, so the queue always drains
// fully even past the stopping condition.
func (e *engine) refine(maxIterations int) {
	iterations := 0
	for e.heap.Len() > 0 {
		c := heap.Pop(&e.heap).(*Candidate)

		if c.Importance < e.maxError {
			continue
		}
		if maxIterations > 0 && iterations >= maxIterations {
			continue
		}
		if e.token[c.Y][c.X] != c.Token {
			continue
		}

		e.used[c.Y][c.X] = true
		edge, _ := e.dm.InsertHint(vec.Vec2{X: float64(c.X), Y: float64(c.Y)}, c.Hint)
		e.rescanIncident(edge)
		iterations++
	}
}

// rescanIncident re-scans every triangle incident to the vertex most
// recently inserted, per spec §4.3 step 4's "after optimizing, scan
// every triangle incident to x".
func (e *engine) rescanIncident(anchor quadedge.Edge) {
	g := e.dm.Graph()
	start := anchor.Sym() // Org(anchor.Sym()) == the newly inserted vertex
	cur := start
	for {
		e.scanTriangle(g.Left(cur))
		cur = g.Onext(cur)
		if cur == start {
			break
		}
	}
}

func (e *engine) nextToken() int {
	e.counter++
	return e.counter
}

// convert walks the used grid in row-major order to assign each used
// pixel a vertex index, then walks the face list producing CCW faces,
// per spec §4.3 step 4.
func (e *engine) convert() *mesh.Mesh {
	vertexID := make([][]int, e.r.Height)
	for y := range vertexID {
		vertexID[y] = make([]int, e.r.Width)
		for x := range vertexID[y] {
			vertexID[y][x] = -1
		}
	}

	var verts []mesh.Vertex
	for y := 0; y < e.r.Height; y++ {
		for x := 0; x < e.r.Width; x++ {
			if !e.used[y][x] {
				continue
			}
			z := e.r.At(y, x)
			if e.r.IsNoData(z) {
				continue
			}
			wx, wy := e.r.RowColToWorld(y, x)
			vertexID[y][x] = len(verts)
			verts = append(verts, mesh.Vertex{X: wx, Y: wy, Z: z})
		}
	}

	var faces []mesh.Face
	e.dm.Walk(func(id int32) bool {
		a, b, c, _ := e.dm.Face(id)
		ia := vertexID[int(a.Y)][int(a.X)]
		ib := vertexID[int(b.Y)][int(b.X)]
		ic := vertexID[int(c.Y)][int(c.X)]
		if ia < 0 || ib < 0 || ic < 0 {
			return true
		}
		tri := mesh.Triangle{A: verts[ia], B: verts[ib], C: verts[ic]}
		if tri.SignedArea2D() < 0 {
			ib, ic = ic, ib
		}
		faces = append(faces, mesh.Face{A: ia, B: ib, C: ic})
		return true
	})

	return &mesh.Mesh{Vertices: verts, Faces: faces}
}
