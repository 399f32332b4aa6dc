package qmesh

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/tntn-go/tntn/binio"
	"github.com/tntn-go/tntn/mesh"
)

// EdgeIndices holds the four edge-vertex rings decoded alongside a mesh.
type EdgeIndices struct {
	West, South, East, North []uint32
}

// Decode parses quantized-mesh wire format data into a Mesh, the
// Header it was encoded with, and its four edge-vertex index rings.
// Unknown trailing bytes (extensions) are tolerated but not parsed, per
// spec §4.5.
func Decode(data []byte) (*mesh.Mesh, Header, EdgeIndices, error) {
	buf := binio.NewBuffer(data)
	r, err := binio.NewReader(buf, binary.LittleEndian)
	if err != nil {
		return nil, Header{}, EdgeIndices{}, err
	}
	var e binio.ErrorTracker

	header := readHeader(r, &e)
	if e.HasError() {
		return nil, Header{}, EdgeIndices{}, errors.Errorf("qmesh: header: %s", e.String())
	}

	vertexCount := r.ReadUint32(&e)
	if e.HasError() {
		return nil, Header{}, EdgeIndices{}, errors.Errorf("qmesh: vertexCount: %s", e.String())
	}

	var us, vs, hs []uint16
	if vertexCount > 0 {
		us = r.ReadUint16Array(int(vertexCount), &e)
		vs = r.ReadUint16Array(int(vertexCount), &e)
		hs = r.ReadUint16Array(int(vertexCount), &e)
		if e.HasError() {
			return nil, Header{}, EdgeIndices{}, errors.Errorf("qmesh: vertex data: %s", e.String())
		}
	}

	alignment := int64(2)
	if vertexCount > 65536 {
		alignment = 4
	}
	r.Skip(int64(alignmentPadding(r.Pos(), int(alignment))))

	triangleCount := r.ReadUint32(&e)
	if e.HasError() {
		return nil, Header{}, EdgeIndices{}, errors.Errorf("qmesh: triangleCount: %s", e.String())
	}

	var faces []mesh.Face
	if triangleCount > 0 {
		var codes []uint32
		if vertexCount <= 65536 {
			codes = widenUint16(r.ReadUint16Array(int(triangleCount)*3, &e))
		} else {
			codes = r.ReadUint32Array(int(triangleCount)*3, &e)
		}
		if e.HasError() {
			return nil, Header{}, EdgeIndices{}, errors.Errorf("qmesh: indices: %s", e.String())
		}
		faces = decodeFaces(codes)
	}

	edges := EdgeIndices{}
	edges.West = readIndexRing(r, vertexCount, &e)
	edges.South = readIndexRing(r, vertexCount, &e)
	edges.East = readIndexRing(r, vertexCount, &e)
	edges.North = readIndexRing(r, vertexCount, &e)
	if e.HasError() {
		return nil, Header{}, EdgeIndices{}, errors.Errorf("qmesh: edge indices: %s", e.String())
	}

	bounds := boundsFromHeader(header)
	vertices := decodeVertices(bounds, us, vs, hs)

	m := &mesh.Mesh{}
	m.Vertices = vertices
	m.Faces = faces
	return m, header, edges, nil
}

func readHeader(r *binio.Reader, e *binio.ErrorTracker) Header {
	var h Header
	h.CenterX = r.ReadFloat64(e)
	h.CenterY = r.ReadFloat64(e)
	h.CenterZ = r.ReadFloat64(e)
	h.MinimumHeight = r.ReadFloat32(e)
	h.MaximumHeight = r.ReadFloat32(e)
	h.BoundingSphereCenterX = r.ReadFloat64(e)
	h.BoundingSphereCenterY = r.ReadFloat64(e)
	h.BoundingSphereCenterZ = r.ReadFloat64(e)
	h.BoundingSphereRadius = r.ReadFloat64(e)
	h.HorizonOcclusionX = r.ReadFloat64(e)
	h.HorizonOcclusionY = r.ReadFloat64(e)
	h.HorizonOcclusionZ = r.ReadFloat64(e)
	return h
}

func readIndexRing(r *binio.Reader, vertexCount uint32, e *binio.ErrorTracker) []uint32 {
	n := r.ReadUint32(e)
	if n == 0 {
		return nil
	}
	if vertexCount <= 65536 {
		return widenUint16(r.ReadUint16Array(int(n), e))
	}
	return r.ReadUint32Array(int(n), e)
}

func widenUint16(v []uint16) []uint32 {
	out := make([]uint32, len(v))
	for i, x := range v {
		out[i] = uint32(x)
	}
	return out
}

func decodeFaces(codes []uint32) []mesh.Face {
	faces := make([]mesh.Face, 0, len(codes)/3)
	idx := highWatermarkDecode(codes)
	for i := 0; i+2 < len(idx); i += 3 {
		faces = append(faces, mesh.Face{A: idx[i], B: idx[i+1], C: idx[i+2]})
	}
	return faces
}

// boundsFromHeader reconstructs the dequantization box from the header,
// per spec §4.5: xy from bounding-sphere center +/- radius, z from
// minimum/maximum height.
func boundsFromHeader(h Header) Bounds {
	return Bounds{
		MinX: h.BoundingSphereCenterX - h.BoundingSphereRadius,
		MinY: h.BoundingSphereCenterY - h.BoundingSphereRadius,
		MinZ: float64(h.MinimumHeight),
		MaxX: h.BoundingSphereCenterX + h.BoundingSphereRadius,
		MaxY: h.BoundingSphereCenterY + h.BoundingSphereRadius,
		MaxZ: float64(h.MaximumHeight),
	}
}

func decodeVertices(b Bounds, us, vs, hs []uint16) []mesh.Vertex {
	out := make([]mesh.Vertex, len(us))
	u, v, h := 0, 0, 0
	for i := range us {
		u += int(zigZagDecode(us[i]))
		v += int(zigZagDecode(vs[i]))
		h += int(zigZagDecode(hs[i]))
		out[i] = mesh.Vertex{
			X: dequantizeCoordinate(u, b.MinX, b.MaxX),
			Y: dequantizeCoordinate(v, b.MinY, b.MaxY),
			Z: dequantizeCoordinate(h, b.MinZ, b.MaxZ),
		}
	}
	return out
}
