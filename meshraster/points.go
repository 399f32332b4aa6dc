package meshraster

import (
	"math"
	"sort"

	"github.com/tntn-go/tntn/mesh"
	"github.com/tntn-go/tntn/raster"
)

// PointsToRaster reshapes a scattered point cloud believed to have come
// from a regular grid back into a dense Raster, by recovering the grid
// spacing from the smallest non-zero gap between distinct x (and y)
// coordinates. Points that don't land on the recovered grid are
// dropped. Grounded on original_source SurfacePoints.cpp's to_raster
// and find_non_zero_min_diff.
func PointsToRaster(points []mesh.Vertex) *raster.Raster {
	if len(points) == 0 {
		return &raster.Raster{}
	}

	xs := distinctSorted(points, func(v mesh.Vertex) float64 { return v.X })
	ys := distinctSorted(points, func(v mesh.Vertex) float64 { return v.Y })

	minDX, minX := minNonZeroDiff(xs)
	minDY, minY := minNonZeroDiff(ys)

	w := 1
	if minDX != 0 {
		maxX := xs[len(xs)-1]
		w = 1 + int(math.Round((maxX-minX)/minDX))
	}
	h := 1
	if minDY != 0 {
		maxY := ys[len(ys)-1]
		h = 1 + int(math.Round((maxY-minY)/minDY))
	}

	cellSize := (nonZero(minDX) + nonZero(minDY)) / 2
	r := raster.New(w, h, minX, minY, cellSize)

	for _, p := range points {
		col := 0
		if minDX != 0 {
			col = int(math.Round((p.X - minX) / minDX))
		}
		row := h - 1
		if minDY != 0 {
			row = h - 1 - int(math.Round((p.Y-minY)/minDY))
		}
		if col < 0 || col >= w || row < 0 || row >= h {
			continue
		}
		r.Set(row, col, p.Z)
	}
	return r
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func distinctSorted(points []mesh.Vertex, key func(mesh.Vertex) float64) []float64 {
	seen := make(map[float64]bool, len(points))
	var out []float64
	for _, p := range points {
		v := key(p)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

// minNonZeroDiff returns the smallest non-zero gap between adjacent
// sorted values, and the minimum value itself.
func minNonZeroDiff(sorted []float64) (minDiff, min float64) {
	if len(sorted) == 0 {
		return 0, 0
	}
	min = sorted[0]
	minDiff = 0
	for i := 1; i < len(sorted); i++ {
		d := sorted[i] - sorted[i-1]
		if d <= 0 {
			continue
		}
		if minDiff == 0 || d < minDiff {
			minDiff = d
		}
	}
	return minDiff, min
}
