// Package qmesh encodes and decodes Mesh values in the "quantized mesh"
// wire format used by 3D globe viewers: an 88-byte header, zig-zag/delta
// coded vertex coordinates, high-watermark coded triangle indices, and
// four edge-vertex index rings. Grounded byte-for-byte on original_source
// QuantizedMeshIO.{h,cpp}.
package qmesh

// coordinateMax is the largest value a quantized u/v/height coordinate
// can take; [0, coordinateMax] is mapped linearly onto the axis's
// [min, max] world-space range.
const coordinateMax = 32767

// paddingByte fills the gap between the end of vertex data and the
// 2- or 4-byte aligned start of triangleCount.
const paddingByte = 0xCA

// Header is the fixed 88-byte preamble of a quantized-mesh tile.
type Header struct {
	CenterX, CenterY, CenterZ                      float64
	MinimumHeight, MaximumHeight                   float32
	BoundingSphereCenterX, BoundingSphereCenterY   float64
	BoundingSphereCenterZ, BoundingSphereRadius    float64
	HorizonOcclusionX, HorizonOcclusionY           float64
	HorizonOcclusionZ                              float64
}

// headerSize is the header's on-wire size in bytes: 3+1+1+3+1+3 fields
// of 8 bytes each except the two float32 heights.
const headerSize = 3*8 + 4 + 4 + 3*8 + 8 + 3*8
