package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() *Mesh {
	return &Mesh{
		Vertices: []Vertex{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
		Faces: []Face{
			{A: 0, B: 1, C: 2},
			{A: 0, B: 2, C: 3},
		},
	}
}

func TestToTrianglesAndBack(t *testing.T) {
	m := square()
	tris := m.ToTriangles()
	require.Len(t, tris, 2)

	m2 := &Mesh{Triangles: tris}
	verts, faces := m2.ToIndexed()
	assert.Len(t, verts, 4)
	assert.Len(t, faces, 2)
}

func TestValidateProperTIN(t *testing.T) {
	m := square()
	errs := m.Validate(true)
	assert.Empty(t, errs)
}

func TestValidateCatchesCWFace(t *testing.T) {
	m := square()
	m.Faces[0] = Face{A: 0, B: 2, C: 1} // flipped
	errs := m.Validate(false)
	require.NotEmpty(t, errs)
	_, ok := errs[0].(*NotUpFacingError)
	assert.True(t, ok)
}

func TestValidateCatchesRepeatedIndex(t *testing.T) {
	m := square()
	m.Faces[0] = Face{A: 0, B: 0, C: 2}
	errs := m.Validate(false)
	require.NotEmpty(t, errs)
	_, ok := errs[0].(*RepeatedIndexError)
	assert.True(t, ok)
}

func TestBounds(t *testing.T) {
	m := square()
	minX, minY, maxX, maxY, ok := m.Bounds()
	require.True(t, ok)
	assert.Equal(t, 0.0, minX)
	assert.Equal(t, 0.0, minY)
	assert.Equal(t, 1.0, maxX)
	assert.Equal(t, 1.0, maxY)
}
