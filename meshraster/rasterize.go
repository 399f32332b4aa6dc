// Package meshraster renders a Mesh back into a dense Raster by
// barycentric interpolation, and compares two co-registered rasters
// pixel-by-pixel. Grounded on original_source Mesh2Raster.cpp and
// SuperTriangle.cpp.
package meshraster

import (
	"github.com/tntn-go/tntn/mesh"
	"github.com/tntn-go/tntn/raster"
)

// Rasterize renders m into a new raster of width x height pixels,
// square-celled, covering m's xy bounding box with (PosX, PosY) at the
// lower-left corner, matching this module's Raster convention (spec
// §3). Cell size is derived from the bounding box width alone, so a
// mesh whose aspect ratio does not match width:height will stretch.
func Rasterize(m *mesh.Mesh, width, height int) *raster.Raster {
	if width <= 0 || height <= 0 {
		return &raster.Raster{}
	}
	minX, minY, maxX, maxY, ok := m.Bounds()
	if !ok {
		return &raster.Raster{}
	}
	meshW := maxX - minX
	meshH := maxY - minY
	if meshW <= 0 || meshH <= 0 {
		return &raster.Raster{}
	}

	cellSize := meshW
	if width > 1 {
		cellSize = meshW / float64(width-1)
	}

	out := raster.New(width, height, minX, minY, cellSize)

	for _, t := range m.ToTriangles() {
		rasterizeTriangle(out, t)
	}
	return out
}

// toPixel converts a world (x, y) to continuous (col, row) in r's
// index space, inverse of RowColToWorld but without rounding.
func toPixel(r *raster.Raster, x, y float64) (col, row float64) {
	col = (x - r.PosX) / r.CellSize
	row = float64(r.Height-1) - (y-r.PosY)/r.CellSize
	return
}

// rasterizeTriangle fills every pixel whose center falls inside t's
// projection, interpolating z by barycentric weights. Grounded on
// Mesh2Raster::rasterise_triangle's bbox-scan-and-test loop and
// SuperTriangle::interpolate's weight formula (codeplea.com/triangular-
// interpolation).
func rasterizeTriangle(r *raster.Raster, t mesh.Triangle) {
	c1, row1 := toPixel(r, t.A.X, t.A.Y)
	c2, row2 := toPixel(r, t.B.X, t.B.Y)
	c3, row3 := toPixel(r, t.C.X, t.C.Y)

	minCol, maxCol := minOf3(c1, c2, c3), maxOf3(c1, c2, c3)
	minRow, maxRow := minOf3(row1, row2, row3), maxOf3(row1, row2, row3)

	cs := clampInt(int(minCol), 0, r.Width)
	ce := clampInt(int(maxCol)+2, 0, r.Width)
	rs := clampInt(int(minRow), 0, r.Height)
	re := clampInt(int(maxRow)+2, 0, r.Height)

	wdem := (row2-row3)*(c1-c3) + (c3-c2)*(row1-row3)
	if wdem == 0 {
		return // degenerate projected triangle
	}

	for row := rs; row < re; row++ {
		y := float64(row)
		for col := cs; col < ce; col++ {
			x := float64(col)
			w1 := ((row2-row3)*(x-c3) + (c3-c2)*(y-row3)) / wdem
			w2 := ((row3-row1)*(x-c3) + (c1-c3)*(y-row3)) / wdem
			w3 := 1.0 - w1 - w2
			if w1 < 0 || w1 > 1 || w2 < 0 || w2 > 1 || w3 < 0 || w3 > 1 {
				continue
			}
			z := t.A.Z*w1 + t.B.Z*w2 + t.C.Z*w3
			r.Set(row, col, z)
		}
	}
}

func minOf3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxOf3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
