package mesh

import "fmt"

// DuplicateVertexError reports a vertex value that appears more than
// once in the indexed view, violating the "proper TIN" invariant
// (spec §3).
type DuplicateVertexError struct {
	Vertex Vertex
}

func (e *DuplicateVertexError) Error() string {
	return fmt.Sprintf("mesh: duplicate vertex %+v", e.Vertex)
}

// RepeatedIndexError reports a face with two or more identical vertex
// indices.
type RepeatedIndexError struct {
	Face Face
}

func (e *RepeatedIndexError) Error() string {
	return fmt.Sprintf("mesh: face %+v repeats a vertex index", e.Face)
}

// IndexOutOfRangeError reports a face index outside the vertex slice.
type IndexOutOfRangeError struct {
	Face Face
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("mesh: face %+v references an out-of-range vertex", e.Face)
}

// UnreferencedVertexError reports a vertex no face references.
type UnreferencedVertexError struct {
	Index int
}

func (e *UnreferencedVertexError) Error() string {
	return fmt.Sprintf("mesh: vertex %d is never referenced by a face", e.Index)
}

// NotUpFacingError reports a face whose signed 2D area is negative.
type NotUpFacingError struct {
	Face Face
}

func (e *NotUpFacingError) Error() string {
	return fmt.Sprintf("mesh: face %+v is not up-facing (negative signed area)", e.Face)
}

// CrossingFacesError reports two faces (by index into Mesh.Triangles)
// that cross each other in 2D.
type CrossingFacesError struct {
	I, J int
}

func (e *CrossingFacesError) Error() string {
	return fmt.Sprintf("mesh: faces %d and %d cross in 2D", e.I, e.J)
}
