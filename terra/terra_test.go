package terra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tntn-go/tntn/raster"
)

func flatRaster(w, h int, z float64) *raster.Raster {
	r := raster.New(w, h, 0, 0, 1)
	for i := range r.Data {
		r.Data[i] = z
	}
	return r
}

// TestFlatPlaneYieldsTwoTriangles is spec §8 scenario 1: a flat 10x10
// raster with max-error 0.01 should need no refinement beyond the four
// corners.
func TestFlatPlaneYieldsTwoTriangles(t *testing.T) {
	r := flatRaster(10, 10, 0)
	m := Run(r, Options{MaxError: 0.01})
	require.NotNil(t, m)
	assert.Len(t, m.Vertices, 4)
	assert.Len(t, m.Faces, 2)
}

// TestLinearRampYieldsTwoTriangles is spec §8 scenario 2: z = x is
// exactly representable by a single plane.
func TestLinearRampYieldsTwoTriangles(t *testing.T) {
	r := raster.New(10, 10, 0, 0, 1)
	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			r.Set(row, col, float64(col))
		}
	}
	m := Run(r, Options{MaxError: 0.01})
	require.NotNil(t, m)
	assert.Len(t, m.Vertices, 4)
	assert.Len(t, m.Faces, 2)
}

// TestGaussianBumpWithinErrorBound is spec §8 scenario 3.
func TestGaussianBumpWithinErrorBound(t *testing.T) {
	const n = 100
	r := raster.New(n, n, 0, 0, 1)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			dx := float64(col) - 50
			dy := float64(row) - 50
			z := math.Exp(-(dx*dx + dy*dy) / 200)
			r.Set(row, col, z)
		}
	}
	m := Run(r, Options{MaxError: 0.05})
	require.NotNil(t, m)
	assert.GreaterOrEqual(t, len(m.Vertices), 10)
	assert.LessOrEqual(t, len(m.Vertices), 500)
}

func TestAllCellsEqualYieldsBoundingRectangle(t *testing.T) {
	r := flatRaster(5, 5, 42)
	m := Run(r, Options{MaxError: 0.001})
	require.NotNil(t, m)
	assert.Len(t, m.Faces, 2)
}

func TestNoDataCornerIsImputed(t *testing.T) {
	r := raster.New(2, 2, 0, 0, 1)
	r.Set(0, 0, 1)
	r.Set(0, 1, 2)
	r.Set(1, 0, 3)
	r.Set(1, 1, r.NoDataValue)
	m := Run(r, Options{MaxError: 0.001})
	require.NotNil(t, m)
	assert.Len(t, m.Faces, 2)
}

func TestInvalidMaxErrorReturnsEmptyMesh(t *testing.T) {
	r := flatRaster(4, 4, 0)
	m := Run(r, Options{MaxError: 0})
	require.NotNil(t, m)
	assert.Empty(t, m.Vertices)
}

func TestDenseMeshCoversWholeGrid(t *testing.T) {
	r := flatRaster(3, 3, 1)
	m := Dense(r, 1)
	require.NotNil(t, m)
	assert.Len(t, m.Vertices, 9)
	assert.Len(t, m.Faces, 8)
}
