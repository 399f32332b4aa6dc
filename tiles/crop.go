package tiles

import (
	"math"

	"github.com/tntn-go/tntn/raster"
)

// cropRaster extracts the sub-grid of r covering world-space box
// [minX,minY]-[maxX,maxY], widened by one cell on each side to avoid
// seams at tile boundaries. Returns nil if the box does not overlap r.
func cropRaster(r *raster.Raster, minX, minY, maxX, maxY float64) *raster.Raster {
	colMin := int(math.Floor((minX-r.PosX)/r.CellSize)) - 1
	colMax := int(math.Ceil((maxX-r.PosX)/r.CellSize)) + 1
	rowTop := int(math.Floor(float64(r.Height-1)-(maxY-r.PosY)/r.CellSize)) - 1
	rowBottom := int(math.Ceil(float64(r.Height-1)-(minY-r.PosY)/r.CellSize)) + 1

	if colMin < 0 {
		colMin = 0
	}
	if rowTop < 0 {
		rowTop = 0
	}
	if colMax > r.Width-1 {
		colMax = r.Width - 1
	}
	if rowBottom > r.Height-1 {
		rowBottom = r.Height - 1
	}
	if colMin > colMax || rowTop > rowBottom {
		return nil
	}

	w, h := colMax-colMin+1, rowBottom-rowTop+1
	originX, originY := r.RowColToWorld(rowBottom, colMin)
	out := raster.New(w, h, originX, originY, r.CellSize)
	out.NoDataValue = r.NoDataValue
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			out.Set(row, col, r.At(rowTop+row, colMin+col))
		}
	}
	return out
}
