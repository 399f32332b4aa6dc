package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(w, h int, z float64) *Raster {
	r := New(w, h, 0, 0, 1)
	for i := range r.Data {
		r.Data[i] = z
	}
	return r
}

func TestRowColToWorldRoundTrip(t *testing.T) {
	r := flat(10, 10, 0)
	row, col := 3, 4
	x, y := r.RowColToWorld(row, col)
	gotRow, gotCol := r.WorldToRowCol(x, y)
	assert.Equal(t, row, gotRow)
	assert.Equal(t, col, gotCol)
}

func TestIsNoData(t *testing.T) {
	r := flat(2, 2, 5)
	assert.False(t, r.IsNoData(5))
	assert.True(t, r.IsNoData(r.NoDataValue))
}

func TestCornersValid(t *testing.T) {
	r := flat(4, 4, 1)
	assert.True(t, r.CornersValid())
	r.Set(0, 0, r.NoDataValue)
	assert.False(t, r.CornersValid())
}

func TestImputeCornersOneMissing(t *testing.T) {
	r := flat(4, 4, 2)
	r.Set(0, 0, r.NoDataValue)
	require.False(t, r.CornersValid())
	r.ImputeCorners()
	assert.True(t, r.CornersValid())
	assert.InDelta(t, 2, r.At(0, 0), 1e-9)
}

func TestImputeCornersAllValidNoop(t *testing.T) {
	r := flat(4, 4, 7)
	r.ImputeCorners()
	assert.Equal(t, 7.0, r.At(0, 0))
}

func TestOverviewMeanPoolSkipsNoData(t *testing.T) {
	r := New(2, 2, 0, 0, 1)
	r.Set(0, 0, 10)
	r.Set(0, 1, r.NoDataValue)
	r.Set(1, 0, 20)
	r.Set(1, 1, 30)

	out := r.Overview(2)
	require.Equal(t, 1, out.Width)
	require.Equal(t, 1, out.Height)
	assert.InDelta(t, 20, out.At(0, 0), 1e-9) // mean of 10, 20, 30
	assert.Equal(t, 2.0, out.CellSize)
}

func TestMeanPool2x2AllNoData(t *testing.T) {
	nd := NoData
	assert.Equal(t, nd, MeanPool2x2(nd, nd, nd, nd, nd))
}

func TestBounds(t *testing.T) {
	r := flat(4, 4, 0)
	b := r.Bounds()
	assert.Equal(t, 0.0, b.LLx)
	assert.Equal(t, 0.0, b.LLy)
	assert.Equal(t, 3.0, b.URx)
	assert.Equal(t, 3.0, b.URy)
}

func TestLoadFromMemorySource(t *testing.T) {
	src := &MemorySource{
		W: 2, H: 2, Cell: 1, X: 0, Y: 0, NoData: NoData,
		RowsData: [][]float64{{1, 2}, {3, 4}},
	}
	r := Load(src)
	assert.Equal(t, 1.0, r.At(0, 0))
	assert.Equal(t, 4.0, r.At(1, 1))
}
