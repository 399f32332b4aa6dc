// Package zemlya implements the coarse-to-fine variant of greedy-
// insertion refinement: instead of seeding from the four corners and
// scanning the full-resolution raster from the first triangle onward,
// it builds a mip-style pyramid of 2x2 averages and walks the levels
// from coarsest to finest, running a full greedy-insertion pass at each
// level before moving to the next. This converges faster on very large
// rasters because early triangles are scored against a representative
// regional average rather than one arbitrary full-resolution sample.
package zemlya

import "github.com/tntn-go/tntn/raster"

// averageOf mirrors original_source ZemlyaMesh.cpp's average_of: the
// mean of up to four samples, skipping no-data ones, or NoDataValue if
// all four are missing.
func averageOf(d1, d2, d3, d4, noDataValue float64) float64 {
	sum := 0.0
	count := 0
	for _, d := range [4]float64{d1, d2, d3, d4} {
		if isNoData(d, noDataValue) {
			continue
		}
		sum += d
		count++
	}
	if count == 0 {
		return noDataValue
	}
	return sum / float64(count)
}

func isNoData(v, noDataValue float64) bool {
	return v == noDataValue
}

// maxLevel is ceil(log2(max(width, height))), the number of halvings
// needed to collapse the raster down to a single commanding point.
func maxLevel(width, height int) int {
	n := width
	if height > n {
		n = height
	}
	level := 0
	for (1 << level) < n {
		level++
	}
	return level
}

// buildSamplePyramid fills sample (already allocated to r's dimensions,
// pre-filled with no-data) with one "commanding" average per level,
// coarsest first, stored at the half-pixel-offset position each level's
// quadrant averages to. This embeds the whole power-of-two pyramid in a
// single dense raster the way original_source's m_sample does, rather
// than as a list of progressively smaller rasters.
func buildSamplePyramid(r, sample *raster.Raster, top int) {
	w, h := r.Width, r.Height
	noData := r.NoDataValue

	for level := top - 1; level >= 1; level-- {
		step := top - level
		stride := 1 << step
		for y := 0; y < h; y += stride {
			for x := 0; x < w; x += stride {
				if step == 1 {
					if y+1 >= h || x+1 >= w {
						continue
					}
					v1 := sampleOrRaster(r, y, x, noData)
					v2 := sampleOrRaster(r, y, x+1, noData)
					v3 := sampleOrRaster(r, y+1, x, noData)
					v4 := sampleOrRaster(r, y+1, x+1, noData)
					sample.Set(y+1, x+1, averageOf(v1, v2, v3, v4, noData))
					continue
				}

				co := 1 << (step - 1)
				d := 1 << (step - 2)
				if y+co >= h || x+co >= w {
					continue
				}
				v1 := valueAt(sample, y+co-d, x+co-d, w, h, noData)
				v2 := valueAt(sample, y+co-d, x+co+d, w, h, noData)
				v3 := valueAt(sample, y+co+d, x+co-d, w, h, noData)
				v4 := valueAt(sample, y+co+d, x+co+d, w, h, noData)
				sample.Set(y+co, x+co, averageOf(v1, v2, v3, v4, noData))
			}
		}
	}
}

func sampleOrRaster(r *raster.Raster, y, x int, noData float64) float64 {
	v := r.At(y, x)
	if r.IsNoData(v) {
		return noData
	}
	return v
}

func valueAt(r *raster.Raster, y, x, w, h int, noData float64) float64 {
	if y < 0 || y >= h || x < 0 || x >= w {
		return noData
	}
	return r.At(y, x)
}

// newLike allocates a raster the same size and geo-reference as r but
// shares r's no-data sentinel rather than raster.New's default, so
// that values copied in from r never need sentinel translation.
func newLike(r *raster.Raster) *raster.Raster {
	out := raster.New(r.Width, r.Height, r.PosX, r.PosY, r.CellSize)
	out.NoDataValue = r.NoDataValue
	for i := range out.Data {
		out.Data[i] = r.NoDataValue
	}
	return out
}
