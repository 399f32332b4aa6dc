// Package raster implements the dense geo-referenced elevation grid of
// spec §3: row-major storage, world/grid coordinate conversion,
// no-data handling, nearest-valid spiral corner imputation, and
// mean-pool overview downsampling.
package raster

import (
	"math"

	"seehuhn.de/go/geom/rect"
)

// NoData is the default no-data sentinel, the type's maximum value.
const NoData = math.MaxFloat64

// Raster is a dense row-major grid of elevation samples. Row 0 is the
// top row; (PosX, PosY) geo-references the lower-left cell center,
// matching spec §3's "lower-left image convention is authoritative".
type Raster struct {
	Width, Height int
	PosX, PosY    float64
	CellSize      float64
	NoDataValue   float64
	Data          []float64 // row-major, len == Width*Height
}

// New allocates a raster of the given size, filled with NoDataValue.
func New(width, height int, posX, posY, cellSize float64) *Raster {
	r := &Raster{
		Width:       width,
		Height:      height,
		PosX:        posX,
		PosY:        posY,
		CellSize:    cellSize,
		NoDataValue: NoData,
		Data:        make([]float64, width*height),
	}
	for i := range r.Data {
		r.Data[i] = NoData
	}
	return r
}

func (r *Raster) index(row, col int) int { return row*r.Width + col }

// At returns the sample at (row, col).
func (r *Raster) At(row, col int) float64 { return r.Data[r.index(row, col)] }

// Set stores the sample at (row, col).
func (r *Raster) Set(row, col int, v float64) { r.Data[r.index(row, col)] = v }

// IsNoData reports whether v is this raster's no-data sentinel or NaN.
func (r *Raster) IsNoData(v float64) bool {
	return v == r.NoDataValue || math.IsNaN(v)
}

// RowColToWorld converts a grid cell to world (x, y), with row 0 at the
// top and (PosX, PosY) the lower-left cell center.
func (r *Raster) RowColToWorld(row, col int) (x, y float64) {
	x = r.PosX + float64(col)*r.CellSize
	y = r.PosY + float64(r.Height-1-row)*r.CellSize
	return
}

// WorldToRowCol is the inverse of RowColToWorld, rounding to the
// nearest cell.
func (r *Raster) WorldToRowCol(x, y float64) (row, col int) {
	col = int(math.Round((x - r.PosX) / r.CellSize))
	row = r.Height - 1 - int(math.Round((y-r.PosY)/r.CellSize))
	return
}

// CornersValid reports whether all four corner samples are non-no-data.
func (r *Raster) CornersValid() bool {
	return !r.IsNoData(r.At(0, 0)) &&
		!r.IsNoData(r.At(0, r.Width-1)) &&
		!r.IsNoData(r.At(r.Height-1, 0)) &&
		!r.IsNoData(r.At(r.Height-1, r.Width-1))
}

// Bounds returns the raster's world-space bounding rectangle, lower-left
// and upper-right cell centers.
func (r *Raster) Bounds() rect.Rect {
	llx, lly := r.RowColToWorld(r.Height-1, 0)
	urx, ury := r.RowColToWorld(0, r.Width-1)
	return rect.Rect{LLx: llx, LLy: lly, URx: urx, URy: ury}
}

// Source is the external raster-loader boundary of spec §6: an object
// queryable for its geo-reference and raw samples. A GDAL-backed
// implementation is out of scope (spec §1); MemorySource below
// satisfies this for tests. The meshing entry points (including
// terra.Dense) take a *Raster, not a Source.
type Source interface {
	Width() int
	Height() int
	CellSize() float64
	PosX() float64
	PosY() float64
	NoDataValue() float64
	Row(row int) []float64
}

// Load materializes a Raster from a Source.
func Load(s Source) *Raster {
	r := &Raster{
		Width:       s.Width(),
		Height:      s.Height(),
		PosX:        s.PosX(),
		PosY:        s.PosY(),
		CellSize:    s.CellSize(),
		NoDataValue: s.NoDataValue(),
		Data:        make([]float64, s.Width()*s.Height()),
	}
	for row := 0; row < r.Height; row++ {
		copy(r.Data[row*r.Width:(row+1)*r.Width], s.Row(row))
	}
	return r
}

// MemorySource is an in-memory Source implementation, the test double
// named in spec §6/§12 ("no GDAL binding is implemented").
type MemorySource struct {
	W, H     int
	Cell     float64
	X, Y     float64
	NoData   float64
	RowsData [][]float64
}

func (m *MemorySource) Width() int           { return m.W }
func (m *MemorySource) Height() int          { return m.H }
func (m *MemorySource) CellSize() float64    { return m.Cell }
func (m *MemorySource) PosX() float64        { return m.X }
func (m *MemorySource) PosY() float64        { return m.Y }
func (m *MemorySource) NoDataValue() float64 { return m.NoData }
func (m *MemorySource) Row(row int) []float64 {
	return m.RowsData[row]
}
