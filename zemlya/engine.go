package zemlya

import (
	"seehuhn.de/go/geom/vec"

	"github.com/tntn-go/tntn/delaunaymesh"
	"github.com/tntn-go/tntn/mesh"
	"github.com/tntn-go/tntn/raster"
	"github.com/tntn-go/tntn/terra"
	"github.com/tntn-go/tntn/tntnlog"
)

// Options configures a coarse-to-fine run.
type Options struct {
	MaxError float64
	Logger   *tntnlog.Logger
}

func (o Options) logger() *tntnlog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return tntnlog.Default
}

// engine holds all per-run mutable state, mirroring terra's engine but
// adding the pyramid/insert/result triple and the current/top level
// counters that drive which raster a given level samples from.
type engine struct {
	r      *raster.Raster
	sample *raster.Raster
	insert *raster.Raster
	result *raster.Raster

	used  [][]bool
	token [][]int

	dm      *delaunaymesh.Mesh
	heap    terra.CandidateHeap
	counter int

	maxError     float64
	currentLevel int
	topLevel     int
}

// Run executes the coarse-to-fine greedy refinement of this package's
// doc comment: a mip-pyramid seeds a per-level working raster, and one
// greedy-insertion pass runs per level from coarsest to finest,
// accumulating accepted vertices into a single result raster.
func Run(r *raster.Raster, opts Options) *mesh.Mesh {
	log := opts.logger()

	if r == nil || r.Width < 2 || r.Height < 2 {
		log.Errorf("zemlya: raster too small or nil")
		return &mesh.Mesh{}
	}
	if opts.MaxError <= 0 {
		log.Errorf("zemlya: max_error must be > 0")
		return &mesh.Mesh{}
	}

	r.ImputeCorners()
	if !r.CornersValid() {
		log.Errorf("zemlya: corners could not be imputed, all surrounding data missing")
		return &mesh.Mesh{}
	}

	e := newEngine(r, opts.MaxError)
	e.run(log)
	return e.convert()
}

func newEngine(r *raster.Raster, maxError float64) *engine {
	w, h := r.Width, r.Height
	e := &engine{
		r:        r,
		sample:   newLike(r),
		insert:   newLike(r),
		result:   newLike(r),
		maxError: maxError,
		topLevel: maxLevel(w, h),
	}
	e.used = make([][]bool, h)
	e.token = make([][]int, h)
	for y := range e.used {
		e.used[y] = make([]bool, w)
		e.token[y] = make([]int, w)
	}
	return e
}

// repairCorner copies the raw raster value into result for a corner,
// falling back to the nearest-valid spiral average if the raw value is
// itself missing (spec §4.4's "corners are imputed before seeding").
func (e *engine) repairCorner(row, col int) {
	z := e.r.At(row, col)
	if e.r.IsNoData(z) {
		if v, ok := e.r.NearestValidAverage(row, col); ok {
			z = v
		}
	}
	e.result.Set(row, col, z)
}

func (e *engine) run(log *tntnlog.Logger) {
	buildSamplePyramid(e.r, e.sample, e.topLevel)

	w, h := e.r.Width, e.r.Height
	e.repairCorner(0, 0)
	e.repairCorner(0, w-1)
	e.repairCorner(h-1, 0)
	e.repairCorner(h-1, w-1)

	e.dm = delaunaymesh.New(
		vec.Vec2{X: 0, Y: 0},
		vec.Vec2{X: float64(w - 1), Y: 0},
		vec.Vec2{X: float64(w - 1), Y: float64(h - 1)},
		vec.Vec2{X: 0, Y: float64(h - 1)},
	)

	log.Infof("zemlya: starting coarse-to-fine insertion, %d levels", e.topLevel)

	for level := 1; level <= e.topLevel; level++ {
		e.currentLevel = level
		for y := range e.used {
			for x := range e.used[y] {
				e.used[y][x] = false
			}
		}
		e.updateInsertRaster(level)

		e.heap = nil
		e.dm.Walk(func(id int32) bool {
			e.scanTriangle(id)
			return true
		})
		e.drainHeap()
	}
}

// updateInsertRaster refreshes e.insert for the given level, per
// original_source ZemlyaMesh.cpp's greedy_insert: from level 5 onward
// (below the half-pixel pyramid-offset threshold) previously-accepted
// points switch to their exact raw-raster value; at coarser levels
// their "commanding area" shrinks by re-averaging a smaller pyramid
// neighborhood. Either way, one new candidate point per quadrant is
// added at this level's stride.
func (e *engine) updateInsertRaster(level int) {
	w, h := e.r.Width, e.r.Height
	noData := e.r.NoDataValue
	step := e.topLevel - level
	if step == 0 {
		return // finest level scans the raw raster directly, see scanLine.
	}
	stride := 1 << step
	co := 1 << (step - 1)

	switch {
	case level >= 5 && level <= e.topLevel-1:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				z := e.insert.At(y, x)
				if e.insert.IsNoData(z) {
					continue
				}
				e.insert.Set(y, x, e.r.At(y, x))
			}
		}
		for y := 0; y < h; y += stride {
			for x := 0; x < w; x += stride {
				if y+co < h && x+co < w {
					e.insert.Set(y+co, x+co, e.r.At(y+co, x+co))
				}
			}
		}

	default:
		if step >= 3 {
			d := 1 << (step - 3)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					z := e.insert.At(y, x)
					if e.insert.IsNoData(z) {
						continue
					}
					v1 := valueAt(e.sample, y-d, x-d, w, h, noData)
					v2 := valueAt(e.sample, y-d, x+d, w, h, noData)
					v3 := valueAt(e.sample, y+d, x-d, w, h, noData)
					v4 := valueAt(e.sample, y+d, x+d, w, h, noData)
					avg := averageOf(v1, v2, v3, v4, noData)
					if avg == noData {
						continue
					}
					e.insert.Set(y, x, avg)
				}
			}
		}
		for y := 0; y < h; y += stride {
			for x := 0; x < w; x += stride {
				if y+co < h && x+co < w {
					e.insert.Set(y+co, x+co, e.sample.At(y+co, x+co))
				}
			}
		}
	}
}

func (e *engine) nextToken() int {
	e.counter++
	return e.counter
}

// convert builds the final Mesh from e.result's accepted samples and
// the Delaunay mesh's final face list, enforcing CCW winding in world
// space the same way terra.convert does.
func (e *engine) convert() *mesh.Mesh {
	w, h := e.r.Width, e.r.Height
	vertexID := make([][]int, h)
	for y := range vertexID {
		vertexID[y] = make([]int, w)
		for x := range vertexID[y] {
			vertexID[y][x] = -1
		}
	}

	var verts []mesh.Vertex
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			z := e.result.At(y, x)
			if e.result.IsNoData(z) {
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
