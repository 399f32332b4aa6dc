package tiles

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tntn-go/tntn/geomutil"
	"github.com/tntn-go/tntn/mesh"
	"github.com/tntn-go/tntn/raster"
)

// MeshBuilder meshes a (cropped, per-batch) raster. terra.Run and
// zemlya.Run both satisfy this signature.
type MeshBuilder func(r *raster.Raster) *mesh.Mesh

// TileResult is one encoded quantized-mesh tile emitted by Generate.
type TileResult struct {
	TX, TY, Zoom int
	Data         []byte
}

// TileSink receives each TileResult as it is produced. Generate may
// call Sink from multiple goroutines concurrently; a Sink that is not
// safe for concurrent use must synchronize itself.
type TileSink func(TileResult) error

// Pyramid drives tile generation over a single source raster, per spec
// §4.6.
type Pyramid struct {
	Raster      *raster.Raster
	Build       MeshBuilder
	Project     geomutil.ProjectionFunc
	Mercator    Mercator
	Concurrency int
	// Format selects each tile's wire encoding: "terrain" (the default,
	// quantized-mesh) or "obj" (Wavefront OBJ text, via meshio).
	Format string
}

// NewPyramid returns a Pyramid with the standard 256-pixel Mercator
// grid, a concurrency of 4 batch workers, and terrain (quantized-mesh)
// output.
func NewPyramid(r *raster.Raster, build MeshBuilder, project geomutil.ProjectionFunc) *Pyramid {
	return &Pyramid{Raster: r, Build: build, Project: project, Mercator: NewMercator(), Concurrency: 4, Format: "terrain"}
}

// EstimateZoomRange returns the feasible zoom range for this pyramid's
// raster.
func (p *Pyramid) EstimateZoomRange() geomutil.ZoomRange {
	return EstimateZoomRange(p.Raster)
}

// Generate clamps requested into the raster's feasible zoom range and
// emits every tile at every zoom level in that range to sink. Batches
// of nearby tiles within a zoom level are meshed together from a single
// cropped, buffered raster window and then sliced per tile, per spec
// §4.6's partitioning scheme; batches run concurrently (bounded by
// Concurrency) but each batch is a pure function of its own cropped
// raster, so the set of tiles produced is independent of how many
// workers ran concurrently. Grounded on the protomaps pmtiles Extract
// function's bounded-errgroup worker pool.
func (p *Pyramid) Generate(ctx context.Context, requested geomutil.ZoomRange, sink TileSink) error {
	estimated := p.EstimateZoomRange()
	zr := requested.Clamp(estimated.Min, estimated.Max)

	for zoom := zr.Min; zoom <= zr.Max; zoom++ {
		if err := p.generateZoom(ctx, zoom, estimated.Max, sink); err != nil {
			return err
		}
	}
	return nil
}

type tileBatch struct {
	tx0, ty0, tx1, ty1 int
}

func (p *Pyramid) generateZoom(ctx context.Context, zoom, estimatedMax int, sink TileSink) error {
	factor := 1
	if estimatedMax > zoom {
		factor = 1 << uint(estimatedMax-zoom)
	}
	overview := p.Raster.Overview(factor)

	bounds := overview.Bounds()
	tx0, ty0 := p.Mercator.MetersToTileXY(bounds.LLx, bounds.LLy, zoom)
	tx1, ty1 := p.Mercator.MetersToTileXY(bounds.URx, bounds.URy, zoom)
	if tx0 > tx1 {
		tx0, tx1 = tx1, tx0
	}
	if ty0 > ty1 {
		ty0, ty1 = ty1, ty0
	}

	tileMeters := p.Mercator.TileSizeInMeters(zoom)
	n := int(math.Floor(overview.CellSize * 800 / tileMeters))
	if n < 1 {
		n = 1
	}

	var batches []tileBatch
	for by := ty0; by <= ty1; by += n {
		byMax := by + n - 1
		if byMax > ty1 {
			byMax = ty1
		}
		for bx := tx0; bx <= tx1; bx += n {
			bxMax := bx + n - 1
			if bxMax > tx1 {
				bxMax = tx1
			}
			batches = append(batches, tileBatch{tx0: bx, ty0: by, tx1: bxMax, ty1: byMax})
		}
	}

	concurrency := p.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(batches) {
		concurrency = len(batches)
	}
	if concurrency == 0 {
		return nil
	}

	errs, _ := errgroup.WithContext(ctx)
	var mu sync.Mutex
	next := 0

	for w := 0; w < concurrency; w++ {
		errs.Go(func() error {
			for {
				mu.Lock()
				if next >= len(batches) {
					mu.Unlock()
					return nil
				}
				b := batches[next]
				next++
				mu.Unlock()

				if err := ctx.Err(); err != nil {
					return err
				}
				if err := p.processBatch(zoom, b, overview, sink); err != nil {
					return err
				}
			}
		})
	}
	return errs.Wait()
}

func (p *Pyramid) processBatch(zoom int, b tileBatch, overview *raster.Raster, sink TileSink) error {
	minX, minY, _, _ := p.Mercator.TileBounds(b.tx0, b.ty0, zoom)
	_, _, maxX, maxY := p.Mercator.TileBounds(b.tx1, b.ty1, zoom)

	buffer := 100 * overview.CellSize
	cropped := cropRaster(overview, minX-buffer, minY-buffer, maxX+buffer, maxY+buffer)
	if cropped == nil {
		return nil
	}

	batchMesh := p.Build(cropped)
	if batchMesh == nil || batchMesh.Empty() {
		return nil
	}
	triangles := batchMesh.ToTriangles()
	if len(triangles) == 0 {
		return nil
	}

	encode := p.encodeTile
	if p.Format == "obj" {
		encode = p.encodeTileOBJ
	}

	for ty := b.ty0; ty <= b.ty1; ty++ {
		for tx := b.tx0; tx <= b.tx1; tx++ {
			data, ok, err := encode(tx, ty, zoom, triangles)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := sink(TileResult{TX: tx, TY: ty, Zoom: zoom, Data: data}); err != nil {
				return err
			}
		}
	}
	return nil
}
