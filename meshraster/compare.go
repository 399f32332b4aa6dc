package meshraster

import (
	"math"

	"github.com/tntn-go/tntn/raster"
)

// CompareResult summarizes a pixel-wise comparison of two rasters.
type CompareResult struct {
	Mean        float64
	StdDev      float64
	RMS         float64
	MaxAbsError float64
	Count       int
}

// Compare measures the pixel-wise difference between a and b, which
// must share dimensions, ignoring a 2-pixel border (mesh edges rarely
// rasterize cleanly there) and any pixel that is no-data in either
// input. It returns summary statistics and a dense error raster
// (absolute difference |a-b|, no-data where the comparison was skipped).
//
// Mean/variance use Welford's single-pass method for numerical
// stability, grounded on original_source Mesh2Raster.cpp::measureError
// (itself citing jonisalonen.com's derivation).
func Compare(a, b *raster.Raster) (CompareResult, *raster.Raster) {
	var result CompareResult
	if a == nil || b == nil || a.Width != b.Width || a.Height != b.Height {
		return result, &raster.Raster{}
	}

	errMap := raster.New(a.Width, a.Height, a.PosX, a.PosY, a.CellSize)

	var mean, s float64
	count := 0
	maxAbs := 0.0

	for row := 2; row < a.Height-2; row++ {
		for col := 2; col < a.Width-2; col++ {
			va, vb := a.At(row, col), b.At(row, col)
			if a.IsNoData(va) || b.IsNoData(vb) {
				continue
			}
			d := va - vb
			count++
			oldMean := mean
			mean += (d - mean) / float64(count)
			s += (d - mean) * (d - oldMean)

			if abs := math.Abs(d); abs > maxAbs {
				maxAbs = abs
			}
			errMap.Set(row, col, math.Abs(d))
		}
	}

	result.Count = count
	result.MaxAbsError = maxAbs
	if count > 0 {
		result.Mean = mean
		variance := s / float64(count)
		result.StdDev = math.Sqrt(variance)
		result.RMS = math.Sqrt(variance + mean*mean) // E[d^2] = Var(d) + Mean(d)^2
	}
	return result, errMap
}
