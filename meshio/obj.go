// Package meshio writes a Mesh to the text interchange formats spec
// §12 supplements the wire-format encoders with: Wavefront OBJ, OFF,
// and a GeoJSON FeatureCollection of vertex points and triangle
// outlines. Grounded on original_source MeshIO.cpp.
package meshio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/tntn-go/tntn/mesh"
)

// ErrNotDecomposed is returned by every writer in this package when m
// has no indexed (Vertices/Faces) view and cannot be decomposed from
// its expanded view either, mirroring the original's
// "mesh is not in decomposed format" guard.
var ErrNotDecomposed = errors.New("meshio: mesh has no vertex/face data")

// WriteOBJ writes m as a Wavefront OBJ: one "v x y z" line per vertex,
// 18-decimal precision to match the original's fmt::format, followed by
// one 1-indexed "f a b c" line per face.
func WriteOBJ(w io.Writer, m *mesh.Mesh) error {
	verts, faces := m.ToIndexed()
	if len(verts) == 0 {
		return ErrNotDecomposed
	}

	bw := bufio.NewWriter(w)
	for _, v := range verts {
		if _, err := fmt.Fprintf(bw, "v %.18f %.18f %.18f\n", v.X, v.Y, v.Z); err != nil {
			return err
		}
	}
	for _, f := range faces {
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", f.A+1, f.B+1, f.C+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}
