package meshio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tntn-go/tntn/mesh"
)

// edgeKey is an undirected edge between two vertex indices, ordered so
// that (a, b) and (b, a) collide, matching the original's
// EdgeCompareLess ordering by (min, max).
type edgeKey struct{ lo, hi int }

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{lo: a, hi: b}
}

func countEdges(faces []mesh.Face) int {
	seen := make(map[edgeKey]struct{}, 3*len(faces))
	for _, f := range faces {
		seen[makeEdgeKey(f.A, f.B)] = struct{}{}
		seen[makeEdgeKey(f.B, f.C)] = struct{}{}
		seen[makeEdgeKey(f.C, f.A)] = struct{}{}
	}
	return len(seen)
}

// WriteOFF writes m in Object File Format: the "OFF" magic, a counts
// line (vertices, faces, edges), the vertex list, then one "3 a b c"
// line per 0-indexed triangular face.
func WriteOFF(w io.Writer, m *mesh.Mesh) error {
	verts, faces := m.ToIndexed()
	if len(verts) == 0 {
		return ErrNotDecomposed
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprint(bw, "OFF\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "%d %d %d\n", len(verts), len(faces), countEdges(faces)); err != nil {
		return err
	}
	for _, v := range verts {
		if _, err := fmt.Fprintf(bw, "%.18f %.18f %.18f\n", v.X, v.Y, v.Z); err != nil {
			return err
		}
	}
	for _, f := range faces {
		if _, err := fmt.Fprintf(bw, "3 %d %d %d\n", f.A, f.B, f.C); err != nil {
			return err
		}
	}
	return bw.Flush()
}
