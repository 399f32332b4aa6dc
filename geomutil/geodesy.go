package geomutil

import (
	"math"

	"github.com/pkg/errors"
)

// ErrProjectionUnavailable is returned when a ProjectionFunc is required
// but not supplied, per spec §4.5/§7's ProjectionUnavailable taxonomy.
var ErrProjectionUnavailable = errors.New("geomutil: ECEF projection unavailable")

// wgs84A, wgs84F are the WGS84 ellipsoid semi-major axis (meters) and
// flattening, used by DefaultProjection to convert geographic
// coordinates to ECEF. Spec §1 permits exactly this one piece of
// ellipsoidal geometry.
const (
	wgs84A = 6378137.0
	wgs84F = 1.0 / 298.257223563
)

// ProjectionFunc converts a point in projected Web-Mercator meters
// (EPSG:3857) plus an elevation in meters to Earth-Centered, Earth-Fixed
// Cartesian coordinates. A nil ProjectionFunc means ECEF conversion is
// unavailable (spec §4.5).
type ProjectionFunc func(mercX, mercY, elevation float64) (x, y, z float64, err error)

// DefaultProjection inverts spherical Web-Mercator to WGS84 longitude and
// latitude, then converts to ECEF using the standard ellipsoidal formula.
// earthRadius mirrors the spherical-Mercator constant used by the tile
// math in package tiles (§4.6).
func DefaultProjection(mercX, mercY, elevation float64) (x, y, z float64, err error) {
	const earthRadius = 6378137.0
	lon := mercX / earthRadius
	lat := 2*math.Atan(math.Exp(mercY/earthRadius)) - math.Pi/2

	sinLat := math.Sin(lat)
	e2 := wgs84F * (2 - wgs84F)
	n := wgs84A / math.Sqrt(1-e2*sinLat*sinLat)

	x = (n + elevation) * math.Cos(lat) * math.Cos(lon)
	y = (n + elevation) * math.Cos(lat) * math.Sin(lon)
	z = (n*(1-e2) + elevation) * sinLat
	return x, y, z, nil
}

// HorizonOcclusionPoint reproduces the original encoder's coarse horizon
// occlusion point: the tile center projected to ECEF at the tile's
// maximum height, rather than a proper horizon-culling computation. Spec
// §9 Open Question (ii): this is "coarse but broadly compatible" and is
// reproduced exactly rather than improved.
func HorizonOcclusionPoint(proj ProjectionFunc, centerMercX, centerMercY, maxHeight float64) (x, y, z float64, err error) {
	if proj == nil {
		return 0, 0, 0, ErrProjectionUnavailable
	}
	return proj(centerMercX, centerMercY, maxHeight)
}

// BoundingSphereRadius reproduces the original encoder's radius
// computation: half the 2D diagonal of the tile's xy bounding box, ignoring
// the z extent entirely. Spec §9 Open Question (i): loose but consumers
// depend on it, so it is reproduced exactly.
func BoundingSphereRadius(minX, minY, maxX, maxY float64) float64 {
	dx := maxX - minX
	dy := maxY - minY
	return math.Sqrt(dx*dx+dy*dy) / 2
}
