// Package tiles partitions a meshed surface into a pyramid of
// Web-Mercator tiles, downsampling the source raster per zoom and
// clipping the mesh to each tile's unit quadrant before handing it to
// an encoder. Grounded on original_source MercatorProjection.h and
// TileMaker.{h,cpp}.
package tiles

import "math"

// EarthRadius is the WGS84/spherical-Mercator radius in meters, spec
// §4.6's projection constant.
const EarthRadius = 6378137.0

// HalfCircumference is PI * EarthRadius, the half-equator distance in
// projected meters, matching MercatorProjection.h's HALF_CIRCUMFERENCE.
const HalfCircumference = math.Pi * EarthRadius

// Mercator holds the one configurable parameter of the tile grid (the
// logical pixel size of a tile, 256 in every common Web-Mercator
// scheme) and derives all tile math from it.
type Mercator struct {
	TileSize int
}

// NewMercator returns a Mercator with the standard 256-pixel tile size.
func NewMercator() Mercator { return Mercator{TileSize: 256} }

// TileSizeInMeters returns the ground size of one tile at zoom z.
func (m Mercator) TileSizeInMeters(zoom int) float64 {
	return 2 * HalfCircumference / math.Exp2(float64(zoom))
}

// resolution returns meters/pixel at zoom z.
func (m Mercator) resolution(zoom int) float64 {
	return m.TileSizeInMeters(zoom) / float64(m.TileSize)
}

// LonLatToMeters converts geographic (lon, lat) degrees to projected
// Web-Mercator (x, y) meters.
func (m Mercator) LonLatToMeters(lon, lat float64) (x, y float64) {
	x = lon * HalfCircumference / 180
	y = math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	y = y * HalfCircumference / 180
	return x, y
}

// MetersToLonLat inverts LonLatToMeters.
func (m Mercator) MetersToLonLat(x, y float64) (lon, lat float64) {
	lon = x / HalfCircumference * 180
	lat = y / HalfCircumference * 180
	lat = 180 / math.Pi * (2*math.Atan(math.Exp(lat*math.Pi/180)) - math.Pi/2)
	return lon, lat
}

// MetersToPixel converts projected meters to pixel coordinates at zoom z,
// with pixel (0,0) at the bottom-left (south-west) of the whole pyramid
// at that zoom.
func (m Mercator) MetersToPixel(x, y float64, zoom int) (px, py float64) {
	res := m.resolution(zoom)
	px = (x + HalfCircumference) / res
	py = (y + HalfCircumference) / res
	return px, py
}

// PixelsToMeters inverts MetersToPixel.
func (m Mercator) PixelsToMeters(px, py float64, zoom int) (x, y float64) {
	res := m.resolution(zoom)
	x = px*res - HalfCircumference
	y = py*res - HalfCircumference
	return x, y
}

// MetersToTileXY returns the tile indices covering projected point (x, y)
// at zoom z, TMS-style with tile (0,0) at the bottom-left.
func (m Mercator) MetersToTileXY(x, y float64, zoom int) (tx, ty int) {
	px, py := m.MetersToPixel(x, y, zoom)
	tx = int(math.Floor(px / float64(m.TileSize)))
	ty = int(math.Floor(py / float64(m.TileSize)))
	return tx, ty
}

// TileBounds returns the projected-meter bounds of tile (tx, ty) at
// zoom z.
func (m Mercator) TileBounds(tx, ty, zoom int) (minX, minY, maxX, maxY float64) {
	minX, minY = m.PixelsToMeters(float64(tx*m.TileSize), float64(ty*m.TileSize), zoom)
	maxX, maxY = m.PixelsToMeters(float64((tx+1)*m.TileSize), float64((ty+1)*m.TileSize), zoom)
	return minX, minY, maxX, maxY
}
