package raster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGrid = `ncols 3
nrows 2
xllcorner 0.0
yllcorner 0.0
cellsize 10.0
NODATA_value -9999
1 2 3
4 -9999 6
`

func TestReadASCIIGrid(t *testing.T) {
	r, err := ReadASCIIGrid(strings.NewReader(sampleGrid))
	require.NoError(t, err)
	assert.Equal(t, 3, r.Width)
	assert.Equal(t, 2, r.Height)
	assert.Equal(t, 5.0, r.PosX)
	assert.Equal(t, 5.0, r.PosY)
	assert.Equal(t, 10.0, r.CellSize)
	assert.Equal(t, -9999.0, r.NoDataValue)
	assert.Equal(t, 1.0, r.At(0, 0))
	assert.Equal(t, 6.0, r.At(1, 2))
	assert.True(t, r.IsNoData(r.At(1, 1)))
}

func TestReadASCIIGridMissingHeaderFails(t *testing.T) {
	_, err := ReadASCIIGrid(strings.NewReader("ncols 3\nnrows 2\n1 2 3\n4 5 6\n"))
	assert.Error(t, err)
}

func TestReadASCIIGridRowLengthMismatchFails(t *testing.T) {
	bad := `ncols 3
nrows 1
xllcorner 0
yllcorner 0
cellsize 1
1 2
`
	_, err := ReadASCIIGrid(strings.NewReader(bad))
	assert.Error(t, err)
}
