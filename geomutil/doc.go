// Package geomutil collects the small pieces of 2D/3D geometry shared by
// the meshing core and the tile pyramid driver: signed-area and
// in-circle predicates, plane least-squares fitting, 2D vector helpers
// for line clipping, and the handful of geodesy conversions the spec
// permits (Mercator tile centers to ECEF, horizon-occlusion points).
package geomutil
