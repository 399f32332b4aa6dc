// Package quadedge implements the Guibas-Stolfi quad-edge data
// structure over a pool-allocated arena of directed half-edges: edge
// quartet creation, Splice (the sole topological mutator), Connect,
// Swap, and the eight navigator compositions. Higher algorithms
// (package delaunaymesh) build triangulations on top of these
// primitives; this package knows nothing about triangles or faces
// beyond the generic integer "left/right" payload each directed edge
// carries.
package quadedge

// ObjPool is a typed arena vending stable int32 handles into a
// contiguous backing array. Reservations are appended, never
// relocated, while live handles exist; Recycle is a deliberate no-op
// placeholder (spec §3: "the pool grows monotonically for the
// duration of one meshing run, then is released as a whole").
type ObjPool[T any] struct {
	items []T
}

// NewObjPool creates a pool with the given initial capacity reserved
// (spec §5 recommends 4096 for edges, 1024 for triangles).
func NewObjPool[T any](capacity int) *ObjPool[T] {
	return &ObjPool[T]{items: make([]T, 0, capacity)}
}

// Alloc appends a new zero-valued T and returns its index.
func (p *ObjPool[T]) Alloc() int32 {
	var zero T
	p.items = append(p.items, zero)
	return int32(len(p.items) - 1)
}

// Get returns a pointer to the item at index i, valid until the pool's
// backing array is reallocated by a subsequent Alloc.
func (p *ObjPool[T]) Get(i int32) *T {
	return &p.items[i]
}

// Len returns the number of items ever allocated.
func (p *ObjPool[T]) Len() int { return len(p.items) }

// Recycle is a no-op: pools in this module grow for the lifetime of a
// single meshing run and are released as a whole, never individually.
func (p *ObjPool[T]) Recycle(int32) {}
