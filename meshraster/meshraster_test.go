package meshraster

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tntn-go/tntn/mesh"
	"github.com/tntn-go/tntn/raster"
)

func flatMesh(w, h, z float64) *mesh.Mesh {
	verts := []mesh.Vertex{
		{X: 0, Y: 0, Z: z},
		{X: w, Y: 0, Z: z},
		{X: w, Y: h, Z: z},
		{X: 0, Y: h, Z: z},
	}
	faces := []mesh.Face{{A: 0, B: 1, C: 2}, {A: 0, B: 2, C: 3}}
	return &mesh.Mesh{Vertices: verts, Faces: faces}
}

func TestRasterizeFlatMeshProducesConstantRaster(t *testing.T) {
	m := flatMesh(9, 9, 7)
	r := Rasterize(m, 10, 10)
	require.NotNil(t, r)
	require.Equal(t, 10, r.Width)
	for row := 1; row < r.Height-1; row++ {
		for col := 1; col < r.Width-1; col++ {
			v := r.At(row, col)
			if !r.IsNoData(v) {
				assert.InDelta(t, 7.0, v, 1e-9)
			}
		}
	}
}

func TestRasterizeEmptyMeshReturnsEmptyRaster(t *testing.T) {
	r := Rasterize(&mesh.Mesh{}, 10, 10)
	require.NotNil(t, r)
	assert.Zero(t, r.Width)
}

func TestCompareIdenticalRastersIsZero(t *testing.T) {
	a := raster.New(10, 10, 0, 0, 1)
	for i := range a.Data {
		a.Data[i] = 3.0
	}
	b := raster.New(10, 10, 0, 0, 1)
	copy(b.Data, a.Data)

	res, errMap := Compare(a, b)
	require.NotNil(t, errMap)
	assert.Equal(t, 0.0, res.Mean)
	assert.Equal(t, 0.0, res.MaxAbsError)
	assert.Greater(t, res.Count, 0)
}

func TestCompareDimensionMismatchReturnsEmpty(t *testing.T) {
	a := raster.New(10, 10, 0, 0, 1)
	b := raster.New(5, 5, 0, 0, 1)
	res, errMap := Compare(a, b)
	assert.Equal(t, 0, res.Count)
	assert.Zero(t, errMap.Width)
}

func TestCompareConstantOffsetMatchesMeanAndMax(t *testing.T) {
	a := raster.New(10, 10, 0, 0, 1)
	b := raster.New(10, 10, 0, 0, 1)
	for i := range a.Data {
		a.Data[i] = 5.0
		b.Data[i] = 3.0
	}
	res, _ := Compare(a, b)
	assert.InDelta(t, 2.0, res.Mean, 1e-9)
	assert.InDelta(t, 2.0, res.MaxAbsError, 1e-9)
	assert.InDelta(t, 0.0, res.StdDev, 1e-9)
}

func TestPointsToRasterRecoversRegularGrid(t *testing.T) {
	var points []mesh.Vertex
	for row := 0; row < 4; row++ {
		for col := 0; col < 5; col++ {
			points = append(points, mesh.Vertex{
				X: float64(col) * 2,
				Y: float64(row) * 2,
				Z: float64(row*5 + col),
			})
		}
	}
	r := PointsToRaster(points)
	require.NotNil(t, r)
	assert.Equal(t, 5, r.Width)
	assert.Equal(t, 4, r.Height)
	assert.InDelta(t, 2.0, r.CellSize, 1e-9)
}

func TestPointsToRasterEmptyInput(t *testing.T) {
	r := PointsToRaster(nil)
	require.NotNil(t, r)
	assert.Zero(t, r.Width)
}

func TestDumpBMPWritesValidHeader(t *testing.T) {
	r := raster.New(4, 4, 0, 0, 1)
	for i := range r.Data {
		r.Data[i] = float64(i)
	}
	var buf bytes.Buffer
	err := DumpBMP(r, &buf)
	require.NoError(t, err)
	assert.Equal(t, byte('B'), buf.Bytes()[0])
	assert.Equal(t, byte('M'), buf.Bytes()[1])
}
