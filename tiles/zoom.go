package tiles

import (
	"math"

	"github.com/tntn-go/tntn/geomutil"
	"github.com/tntn-go/tntn/raster"
)

// pixelSizeAtZoomZero is the ground resolution, in meters/pixel, of a
// single 256-pixel tile covering the whole world at zoom 0.
const pixelSizeAtZoomZero = 2 * HalfCircumference / 256

// EstimateZoomRange derives the feasible [min, max] zoom for r, per
// spec §4.6: the max zoom is the one whose pixel resolution roughly
// matches r's cell size, and the min zoom is the coarsest level at
// which the raster still covers at least ~128 pixels on its shorter
// side.
func EstimateZoomRange(r *raster.Raster) geomutil.ZoomRange {
	estimatedMax := int(math.Round(math.Log2(pixelSizeAtZoomZero / r.CellSize)))

	size := r.Width
	if r.Height < size {
		size = r.Height
	}
	estimatedMin := int(math.Floor(math.Log2(128 * math.Exp2(float64(estimatedMax)) / float64(size))))
	if estimatedMin < 0 {
		estimatedMin = 0
	}
	if estimatedMin > estimatedMax {
		estimatedMin = estimatedMax
	}
	return geomutil.ZoomRange{Min: estimatedMin, Max: estimatedMax}
}
