package qmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tntn-go/tntn/geomutil"
	"github.com/tntn-go/tntn/mesh"
)

func identityProjection(x, y, z float64) (float64, float64, float64, error) {
	return x, y, z, nil
}

func flatMesh() *mesh.Mesh {
	verts := []mesh.Vertex{
		{X: 0, Y: 0, Z: 0},
		{X: 10, Y: 0, Z: 0},
		{X: 10, Y: 10, Z: 5},
		{X: 0, Y: 10, Z: 5},
	}
	faces := []mesh.Face{{A: 0, B: 1, C: 2}, {A: 0, B: 2, C: 3}}
	return &mesh.Mesh{Vertices: verts, Faces: faces}
}

func TestZigZagRoundTrip(t *testing.T) {
	for _, n := range []int16{0, -1, 1, 32767, -32768, 1234, -1234} {
		assert.Equal(t, n, zigZagDecode(zigZagEncode(n)))
	}
}

func TestZigZagKnownValues(t *testing.T) {
	assert.Equal(t, uint16(0), zigZagEncode(0))
	assert.Equal(t, uint16(1), zigZagEncode(-1))
	assert.Equal(t, uint16(65534), zigZagEncode(32767))
	assert.Equal(t, uint16(65535), zigZagEncode(-32768))
}

func TestHighWatermarkRoundTrip(t *testing.T) {
	indices := []int{0, 1, 2, 0, 2, 3, 2, 3, 4}
	codes := highWatermarkEncode(indices)
	assert.Equal(t, indices, highWatermarkDecode(codes))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := flatMesh()
	data, err := Encode(m, EncodeOptions{Project: identityProjection})
	require.NoError(t, err)
	assert.Equal(t, headerSize, 88)

	decoded, header, edges, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded.Vertices, 4)
	require.Len(t, decoded.Faces, 2)

	for i, v := range m.Vertices {
		assert.InDelta(t, v.X, decoded.Vertices[i].X, 1e-2)
		assert.InDelta(t, v.Y, decoded.Vertices[i].Y, 1e-2)
		assert.InDelta(t, v.Z, decoded.Vertices[i].Z, 1e-2)
	}
	assert.Equal(t, m.Faces, decoded.Faces)
	assert.Greater(t, header.BoundingSphereRadius, 0.0)
	assert.NotEmpty(t, edges.West)
}

func TestEncodeWithoutProjectionFails(t *testing.T) {
	_, err := Encode(flatMesh(), EncodeOptions{})
	assert.ErrorIs(t, err, geomutil.ErrProjectionUnavailable)
}

func TestEncodeCoordinateOutOfRangeFails(t *testing.T) {
	m := flatMesh()
	_, err := Encode(m, EncodeOptions{
		Project: identityProjection,
		Bounds:  Bounds{MinX: 0, MinY: 0, MinZ: 0, MaxX: 1, MaxY: 1, MaxZ: 1},
	})
	assert.ErrorIs(t, err, ErrEncodingRange)
}

func TestDecodeEmptyInputFails(t *testing.T) {
	_, _, _, err := Decode(nil)
	assert.Error(t, err)
}
