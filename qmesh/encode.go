package qmesh

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/tntn-go/tntn/binio"
	"github.com/tntn-go/tntn/geomutil"
	"github.com/tntn-go/tntn/mesh"
)

// ErrEncodingRange is returned when a vertex coordinate falls outside
// the bounding box supplied for quantization.
var ErrEncodingRange = errors.New("qmesh: coordinate out of [min, max] range")

// ErrVertexCountOverflow is returned when a mesh has more vertices than
// a uint32 can count.
var ErrVertexCountOverflow = errors.New("qmesh: vertex count exceeds uint32")

// Bounds is the axis-aligned box used to quantize and later dequantize
// vertex coordinates.
type Bounds struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// EncodeOptions configures Encode.
type EncodeOptions struct {
	// Bounds quantizes x/y/z; if zero-valued, it is derived from m.
	Bounds Bounds
	// Project converts a Web-Mercator (x, y) plus elevation to ECEF,
	// used for the header's center/boundingSphereCenter/horizonOcclusion
	// fields. A nil Project makes Encode fail with
	// geomutil.ErrProjectionUnavailable.
	Project geomutil.ProjectionFunc
}

// Encode returns m encoded in quantized-mesh wire format.
func Encode(m *mesh.Mesh, opts EncodeOptions) ([]byte, error) {
	bounds := opts.Bounds
	if bounds == (Bounds{}) {
		minX, minY, maxX, maxY, ok := m.Bounds()
		minZ, maxZ, _ := m.ZBounds()
		if !ok {
			minX, minY, maxX, maxY = 0, 0, 0, 0
		}
		bounds = Bounds{MinX: minX, MinY: minY, MinZ: minZ, MaxX: maxX, MaxY: maxY, MaxZ: maxZ}
	}

	header, err := buildHeader(m, bounds, opts.Project)
	if err != nil {
		return nil, err
	}

	buf := binio.NewBuffer(nil)
	w, err := binio.NewWriter(buf, binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	var e binio.ErrorTracker

	writeHeader(w, header, &e)

	triangles := m.ToTriangles()
	nvertices, us, vs, hs, order, wests, souths, easts, norths, err := quantizeVertices(triangles, bounds)
	if err != nil {
		return nil, err
	}

	w.WriteUint32(nvertices, &e)
	w.WriteUint16Array(us, &e)
	w.WriteUint16Array(vs, &e)
	w.WriteUint16Array(hs, &e)

	indices := vertexIndices(triangles, order)

	if nvertices <= 65536 {
		writeFaces16(w, indices, &e)
		writeIndices16(w, wests, &e)
		writeIndices16(w, souths, &e)
		writeIndices16(w, easts, &e)
		writeIndices16(w, norths, &e)
	} else {
		writeFaces32(w, indices, &e)
		writeIndices32(w, wests, &e)
		writeIndices32(w, souths, &e)
		writeIndices32(w, easts, &e)
		writeIndices32(w, norths, &e)
	}

	if e.HasError() {
		return nil, errors.Errorf("qmesh: %s", e.String())
	}
	return buf.Bytes(), nil
}

func buildHeader(m *mesh.Mesh, b Bounds, project geomutil.ProjectionFunc) (Header, error) {
	cx, cy := (b.MinX+b.MaxX)/2, (b.MinY+b.MaxY)/2

	if project == nil {
		return Header{}, geomutil.ErrProjectionUnavailable
	}
	centerX, centerY, centerZ, err := project(cx, cy, (b.MinZ+b.MaxZ)/2)
	if err != nil {
		return Header{}, err
	}
	horizonX, horizonY, horizonZ, err := geomutil.HorizonOcclusionPoint(project, cx, cy, b.MaxZ)
	if err != nil {
		return Header{}, err
	}
	radius := geomutil.BoundingSphereRadius(b.MinX, b.MinY, b.MaxX, b.MaxY)

	return Header{
		CenterX: centerX, CenterY: centerY, CenterZ: centerZ,
		MinimumHeight: float32(b.MinZ), MaximumHeight: float32(b.MaxZ),
		BoundingSphereCenterX: centerX, BoundingSphereCenterY: centerY, BoundingSphereCenterZ: centerZ,
		BoundingSphereRadius: radius,
		HorizonOcclusionX:    horizonX, HorizonOcclusionY: horizonY, HorizonOcclusionZ: horizonZ,
	}, nil
}

func writeHeader(w *binio.Writer, h Header, e *binio.ErrorTracker) {
	w.WriteFloat64(h.CenterX, e)
	w.WriteFloat64(h.CenterY, e)
	w.WriteFloat64(h.CenterZ, e)
	w.WriteFloat32(h.MinimumHeight, e)
	w.WriteFloat32(h.MaximumHeight, e)
	w.WriteFloat64(h.BoundingSphereCenterX, e)
	w.WriteFloat64(h.BoundingSphereCenterY, e)
	w.WriteFloat64(h.BoundingSphereCenterZ, e)
	w.WriteFloat64(h.BoundingSphereRadius, e)
	w.WriteFloat64(h.HorizonOcclusionX, e)
	w.WriteFloat64(h.HorizonOcclusionY, e)
	w.WriteFloat64(h.HorizonOcclusionZ, e)
}

// quantizeVertices walks triangles in order, assigning each distinct
// vertex a sequential id on first sight (order of appearance across the
// whole triangle stream, per spec), quantizing and zig-zag/delta
// encoding u/v/height, and bucketing edge vertices into the four rings.
func quantizeVertices(triangles []mesh.Triangle, b Bounds) (nvertices uint32, us, vs, hs []uint16, order map[mesh.Vertex]int, wests, souths, easts, norths []uint32, err error) {
	order = make(map[mesh.Vertex]int)
	prevU, prevV, prevH := 0, 0, 0

	for _, t := range triangles {
		for _, vtx := range [3]mesh.Vertex{t.A, t.B, t.C} {
			if _, seen := order[vtx]; seen {
				continue
			}
			if vtx.X < b.MinX || vtx.X > b.MaxX || vtx.Y < b.MinY || vtx.Y > b.MaxY || vtx.Z < b.MinZ || vtx.Z > b.MaxZ {
				err = ErrEncodingRange
				return
			}
			idx := len(order)
			order[vtx] = idx

			u := quantizeCoordinate(vtx.X, b.MinX, b.MaxX)
			v := quantizeCoordinate(vtx.Y, b.MinY, b.MaxY)
			hgt := quantizeCoordinate(vtx.Z, b.MinZ, b.MaxZ)

			if u == 0 {
				wests = append(wests, uint32(idx))
			} else if u == coordinateMax {
				easts = append(easts, uint32(idx))
			}
			if v == 0 {
				norths = append(norths, uint32(idx))
			} else if v == coordinateMax {
				souths = append(souths, uint32(idx))
			}

			us = append(us, zigZagEncode(int16(u-prevU)))
			vs = append(vs, zigZagEncode(int16(v-prevV)))
			hs = append(hs, zigZagEncode(int16(hgt-prevH)))
			prevU, prevV, prevH = u, v, hgt
		}
	}
	if len(order) > 0xFFFFFFFF {
		err = ErrVertexCountOverflow
		return
	}
	nvertices = uint32(len(order))
	return
}

func vertexIndices(triangles []mesh.Triangle, order map[mesh.Vertex]int) []int {
	out := make([]int, 0, 3*len(triangles))
	for _, t := range triangles {
		out = append(out, order[t.A], order[t.B], order[t.C])
	}
	return out
}

func writeFaces16(w *binio.Writer, indices []int, e *binio.ErrorTracker) {
	codes := highWatermarkEncode(indices)
	pad := alignmentPadding(w.Pos(), 2)
	for i := 0; i < pad; i++ {
		w.WriteByte(paddingByte, e)
	}
	w.WriteUint32(uint32(len(indices)/3), e)
	if len(codes) > 0 {
		u16 := make([]uint16, len(codes))
		for i, c := range codes {
			u16[i] = uint16(c)
		}
		w.WriteUint16Array(u16, e)
	}
}

func writeFaces32(w *binio.Writer, indices []int, e *binio.ErrorTracker) {
	codes := highWatermarkEncode(indices)
	pad := alignmentPadding(w.Pos(), 4)
	for i := 0; i < pad; i++ {
		w.WriteByte(paddingByte, e)
	}
	w.WriteUint32(uint32(len(indices)/3), e)
	if len(codes) > 0 {
		w.WriteUint32Array(codes, e)
	}
}

func writeIndices16(w *binio.Writer, indices []uint32, e *binio.ErrorTracker) {
	w.WriteUint32(uint32(len(indices)), e)
	u16 := make([]uint16, len(indices))
	for i, v := range indices {
		u16[i] = uint16(v)
	}
	w.WriteUint16Array(u16, e)
}

func writeIndices32(w *binio.Writer, indices []uint32, e *binio.ErrorTracker) {
	w.WriteUint32(uint32(len(indices)), e)
	w.WriteUint32Array(indices, e)
}
