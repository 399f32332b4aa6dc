package meshio

import (
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/tntn-go/tntn/mesh"
)

// WriteGeoJSON writes m as a GeoJSON FeatureCollection: one Point
// feature per vertex, then one closed LineString feature per triangle
// (its three edges plus the closing segment back to the first vertex),
// matching the line/point feature shapes original_source MeshIO.cpp's
// make_geojson_vertex/make_geojson_face emit. Coordinates are written
// as (x, y); z is dropped, as in the original.
//
// Modern GeoJSON (RFC 7946, which orb/geojson implements) has no named
// CRS member; the original's CRS84 "crs" block is not reproduced.
func WriteGeoJSON(w io.Writer, m *mesh.Mesh) error {
	verts, faces := m.ToIndexed()
	if len(verts) == 0 {
		return ErrNotDecomposed
	}

	fc := geojson.NewFeatureCollection()
	for _, v := range verts {
		f := geojson.NewFeature(orb.Point{v.X, v.Y})
		fc.Append(f)
	}
	for i, face := range faces {
		a, b, c := verts[face.A], verts[face.B], verts[face.C]
		line := orb.LineString{
			{a.X, a.Y},
			{b.X, b.Y},
			{c.X, c.Y},
			{a.X, a.Y},
		}
		f := geojson.NewFeature(line)
		f.Properties = geojson.Properties{"id": i}
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
