package meshio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tntn-go/tntn/mesh"
)

func squareMesh() *mesh.Mesh {
	return &mesh.Mesh{
		Vertices: []mesh.Vertex{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 1},
			{X: 0, Y: 1, Z: 1},
		},
		Faces: []mesh.Face{{A: 0, B: 1, C: 2}, {A: 0, B: 2, C: 3}},
	}
}

func TestWriteOBJ(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, squareMesh()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "v 0."))
	assert.Equal(t, "f 1 2 3", lines[4])
	assert.Equal(t, "f 1 3 4", lines[5])
}

func TestWriteOFF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOFF(&buf, squareMesh()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "OFF", lines[0])
	// 4 vertices, 2 faces, 5 distinct undirected edges in this square.
	assert.Equal(t, "4 2 5", lines[1])
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, squareMesh()))
	out := buf.String()
	assert.Contains(t, out, `"FeatureCollection"`)
	assert.Contains(t, out, `"Point"`)
	assert.Contains(t, out, `"LineString"`)
}

func TestWritersRejectEmptyMesh(t *testing.T) {
	empty := &mesh.Mesh{}
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteOBJ(&buf, empty), ErrNotDecomposed)
	assert.ErrorIs(t, WriteOFF(&buf, empty), ErrNotDecomposed)
	assert.ErrorIs(t, WriteGeoJSON(&buf, empty), ErrNotDecomposed)
}
