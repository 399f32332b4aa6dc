package terra

import (
	"github.com/tntn-go/tntn/mesh"
	"github.com/tntn-go/tntn/raster"
)

// Dense builds the fully-triangulated, two-triangles-per-cell mesh with
// no refinement: one vertex per sampled raster cell (every `step`th row
// and column, always including the last row/column), connected in the
// regular "quadwalk" pattern. This is the supplemented simple/dense
// meshing method of spec §12, grounded on original_source
// simple_meshing.cpp's generate_tin_dense_quadwalk. No-data samples are
// filled via the same nearest-valid-average helper used for corner
// imputation.
func Dense(r *raster.Raster, step int) *mesh.Mesh {
	if step <= 0 {
		step = 1
	}
	w, h := r.Width, r.Height
	if w < 2 || h < 2 {
		return &mesh.Mesh{}
	}

	vertsPerRow := ceilDiv(w-1, step) + 1
	vertsPerCol := ceilDiv(h-1, step) + 1

	verts := make([]mesh.Vertex, 0, vertsPerRow*vertsPerCol)
	faces := make([]mesh.Face, 0, (vertsPerRow-1)*(vertsPerCol-1)*2)

	sampleAt := func(row, col int) float64 {
		z := r.At(row, col)
		if !r.IsNoData(z) {
			return z
		}
		if v, ok := r.NearestValidAverage(row, col); ok {
			return v
		}
		return r.NoDataValue
	}

	addVertex := func(row, col int) {
		x, y := r.RowColToWorld(row, col)
		verts = append(verts, mesh.Vertex{X: x, Y: y, Z: sampleAt(row, col)})
	}

	// first row: vertices only, no faces yet.
	for vc := 0; vc < vertsPerRow; vc++ {
		col := minInt(vc*step, w-1)
		addVertex(0, col)
	}

	for vr := 1; vr < vertsPerCol; vr++ {
		row := minInt(vr*step, h-1)

		addVertex(row, 0) // first column: vertex only

		for vc := 1; vc < vertsPerRow; vc++ {
			col := minInt(vc*step, w-1)
			addVertex(row, col)

			this := vr*vertsPerRow + vc
			faces = append(faces,
				mesh.Face{A: this, B: this - vertsPerRow, C: this - vertsPerRow - 1},
				mesh.Face{A: this, B: this - vertsPerRow - 1, C: this - 1},
			)
		}
	}

	m := &mesh.Mesh{Vertices: verts, Faces: faces}
	enforceCCW(m)
	return m
}

// enforceCCW flips any face whose signed 2D area is negative, per spec
// §3's "counter-clockwise in the xy plane = outward/up-facing".
func enforceCCW(m *mesh.Mesh) {
	for i, f := range m.Faces {
		a, b, c := m.Vertices[f.A], m.Vertices[f.B], m.Vertices[f.C]
		tri := mesh.Triangle{A: a, B: b, C: c}
		if tri.SignedArea2D() < 0 {
			m.Faces[i].B, m.Faces[i].C = f.C, f.B
		}
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
