package tiles

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tntn-go/tntn/geomutil"
	"github.com/tntn-go/tntn/mesh"
	"github.com/tntn-go/tntn/qmesh"
	"github.com/tntn-go/tntn/raster"
	"github.com/tntn-go/tntn/terra"
)

func identityProjection(x, y, z float64) (float64, float64, float64, error) {
	return x, y, z, nil
}

func TestMercatorRoundTrip(t *testing.T) {
	m := NewMercator()
	lon, lat := -122.4194, 37.7749
	x, y := m.LonLatToMeters(lon, lat)
	lon2, lat2 := m.MetersToLonLat(x, y)
	assert.InDelta(t, lon, lon2, 1e-6)
	assert.InDelta(t, lat, lat2, 1e-6)
}

func TestTileBoundsPixelRoundTrip(t *testing.T) {
	m := NewMercator()
	minX, minY, maxX, maxY := m.TileBounds(5, 7, 4)
	assert.Less(t, minX, maxX)
	assert.Less(t, minY, maxY)
	tx, ty := m.MetersToTileXY((minX+maxX)/2, (minY+maxY)/2, 4)
	assert.Equal(t, 5, tx)
	assert.Equal(t, 7, ty)
}

func TestEstimateZoomRangeClampsWhenMinExceedsMax(t *testing.T) {
	r := raster.New(32, 32, 0, 0, 1000)
	zr := EstimateZoomRange(r)
	assert.LessOrEqual(t, zr.Min, zr.Max)
}

func slopedRaster() *raster.Raster {
	r := raster.New(32, 32, 0, 0, 1000)
	for row := 0; row < r.Height; row++ {
		for col := 0; col < r.Width; col++ {
			x, y := r.RowColToWorld(row, col)
			r.Set(row, col, (x+y)*1e-4)
		}
	}
	return r
}

func TestPyramidGenerateProducesDecodableTiles(t *testing.T) {
	r := slopedRaster()
	build := func(cropped *raster.Raster) *mesh.Mesh {
		return terra.Run(cropped, terra.Options{MaxError: 0.5})
	}
	p := NewPyramid(r, build, geomutil.ProjectionFunc(identityProjection))
	p.Concurrency = 2

	var mu sync.Mutex
	var results []TileResult
	sink := func(tr TileResult) error {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, tr)
		return nil
	}

	zr := p.EstimateZoomRange()
	err := p.Generate(context.Background(), zr, sink)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for _, tr := range results {
		m, header, _, err := qmesh.Decode(tr.Data)
		require.NoError(t, err)
		assert.NotEmpty(t, m.Vertices)
		assert.GreaterOrEqual(t, header.BoundingSphereRadius, 0.0)
		assert.Equal(t, zr.Min, tr.Zoom)
	}
}

func TestGenerateWithEmptyMeshBuildProducesNoTiles(t *testing.T) {
	r := slopedRaster()
	build := func(cropped *raster.Raster) *mesh.Mesh { return &mesh.Mesh{} }
	p := NewPyramid(r, build, geomutil.ProjectionFunc(identityProjection))

	called := false
	sink := func(TileResult) error { called = true; return nil }
	err := p.Generate(context.Background(), p.EstimateZoomRange(), sink)
	require.NoError(t, err)
	assert.False(t, called)
}
