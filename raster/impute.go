package raster

import "math"

// ImputeCorners fills any no-data corner sample with a nearest-valid
// spiral-weighted average, per spec §4.3 step 1: center weight 3, the
// four-cross average weight 2, the four-diagonal average weight 1, over
// up to 64 surrounding pixels.
func (r *Raster) ImputeCorners() {
	corners := [4][2]int{
		{0, 0}, {0, r.Width - 1}, {r.Height - 1, 0}, {r.Height - 1, r.Width - 1},
	}
	for _, c := range corners {
		row, col := c[0], c[1]
		if !r.IsNoData(r.At(row, col)) {
			continue
		}
		if v, ok := r.NearestValidAverage(row, col); ok {
			r.Set(row, col, v)
		}
	}
}

// NearestValidAverage walks concentric rings outward from (row, col),
// up to a radius of 8 cells (the outermost ring holds 64 pixels),
// accumulating a center/cross/diagonal-weighted average of the first
// ring that contains any valid samples. Used both for corner imputation
// (spec §4.3 step 1) and, by package terra's Dense constructor, for any
// no-data vertex sample in a full-resolution mesh.
func (r *Raster) NearestValidAverage(row, col int) (float64, bool) {
	const maxRadius = 8

	centerSum, centerN := 0.0, 0
	crossSum, crossN := 0.0, 0
	diagSum, diagN := 0.0, 0

	for radius := 1; radius <= maxRadius; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if maxInt(abs(dx), abs(dy)) != radius {
					continue // only this ring
				}
				rr, cc := row+dy, col+dx
				if rr < 0 || rr >= r.Height || cc < 0 || cc >= r.Width {
					continue
				}
				v := r.At(rr, cc)
				if r.IsNoData(v) {
					continue
				}
				switch {
				case dx == 0 || dy == 0:
					crossSum += v
					crossN++
				case abs(dx) == abs(dy):
					diagSum += v
					diagN++
				default:
					centerSum += v
					centerN++
				}
			}
		}
		if crossN > 0 || diagN > 0 || centerN > 0 {
			break
		}
	}

	weightSum := 0.0
	valueSum := 0.0
	if centerN > 0 {
		valueSum += 3 * (centerSum / float64(centerN))
		weightSum += 3
	}
	if crossN > 0 {
		valueSum += 2 * (crossSum / float64(crossN))
		weightSum += 2
	}
	if diagN > 0 {
		valueSum += 1 * (diagSum / float64(diagN))
		weightSum += 1
	}
	if weightSum == 0 {
		return 0, false
	}
	return valueSum / weightSum, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Overview downsamples r by the given integer factor using mean-pool
// averaging that skips no-data cells, per original_source
// RasterOverviews.{h,cpp} and spec §10's "per-zoom overview".
func (r *Raster) Overview(factor int) *Raster {
	if factor <= 1 {
		out := New(r.Width, r.Height, r.PosX, r.PosY, r.CellSize)
		copy(out.Data, r.Data)
		out.NoDataValue = r.NoDataValue
		return out
	}

	outW := (r.Width + factor - 1) / factor
	outH := (r.Height + factor - 1) / factor
	out := New(outW, outH, r.PosX, r.PosY, r.CellSize*float64(factor))
	out.NoDataValue = r.NoDataValue

	for oy := 0; oy < outH; oy++ {
		for ox := 0; ox < outW; ox++ {
			sum, n := 0.0, 0
			for dy := 0; dy < factor; dy++ {
				for dx := 0; dx < factor; dx++ {
					sy, sx := oy*factor+dy, ox*factor+dx
					if sy >= r.Height || sx >= r.Width {
						continue
					}
					v := r.At(sy, sx)
					if r.IsNoData(v) {
						continue
					}
					sum += v
					n++
				}
			}
			if n == 0 {
				out.Set(oy, ox, out.NoDataValue)
			} else {
				out.Set(oy, ox, sum/float64(n))
			}
		}
	}
	return out
}

// MeanPool2x2 is the single-step 2x2 mean used by zemlya's mip-pyramid
// construction (spec §4.4), skipping NaN/no-data inputs.
func MeanPool2x2(a, b, c, d, noData float64) float64 {
	sum, n := 0.0, 0
	for _, v := range [4]float64{a, b, c, d} {
		if v == noData || math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return noData
	}
	return sum / float64(n)
}
