// Command dem2tintiles meshes a raster DEM and slices the result into a
// Web-Mercator pyramid of tiles, per spec §6's illustrative CLI
// surface.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/urfave/cli/v2"

	"github.com/tntn-go/tntn/geomutil"
	"github.com/tntn-go/tntn/mesh"
	"github.com/tntn-go/tntn/raster"
	"github.com/tntn-go/tntn/terra"
	"github.com/tntn-go/tntn/tiles"
	"github.com/tntn-go/tntn/tntnlog"
	"github.com/tntn-go/tntn/zemlya"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "dem2tintiles",
		Usage: "mesh a DEM raster into a Web-Mercator tile pyramid",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "input Esri ASCII Grid raster"},
			&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Required: true, Usage: "directory to write {z}/{x}/{y}.* tiles under"},
			&cli.IntFlag{Name: "min-zoom", Value: -1, Usage: "minimum zoom level (default: estimated from the raster)"},
			&cli.IntFlag{Name: "max-zoom", Value: -1, Usage: "maximum zoom level (default: estimated from the raster)"},
			&cli.StringFlag{Name: "method", Value: "terra", Usage: "terra or zemlya"},
			&cli.Float64Flag{Name: "max-error", Value: 1.0, Usage: "maximum vertical error in meters"},
			&cli.StringFlag{Name: "output-format", Value: "terrain", Usage: "terrain or obj"},
			&cli.IntFlag{Name: "concurrency", Value: 4, Usage: "concurrent tile-batch workers"},
			&cli.BoolFlag{Name: "quiet", Usage: "suppress informational logging"},
		},
		Action: run,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level := tntnlog.Info
	if c.Bool("quiet") {
		level = tntnlog.Warn
	}
	log := tntnlog.New(os.Stderr, level)

	format := c.String("output-format")
	if format != "terrain" && format != "obj" {
		return fmt.Errorf("dem2tintiles: unknown --output-format %q", format)
	}

	in, err := os.Open(c.String("input"))
	if err != nil {
		return err
	}
	defer in.Close()

	r, err := raster.ReadASCIIGrid(in)
	if err != nil {
		return err
	}
	log.Infof("loaded raster %dx%d, cell size %.3f", r.Width, r.Height, r.CellSize)

	if err := os.MkdirAll(c.String("output-dir"), 0o755); err != nil {
		return err
	}

	build, err := meshBuilder(c, log)
	if err != nil {
		return err
	}

	p := tiles.NewPyramid(r, build, geomutil.DefaultProjection)
	p.Format = format
	if n := c.Int("concurrency"); n > 0 {
		p.Concurrency = n
	}

	requested := p.EstimateZoomRange()
	if z := c.Int("min-zoom"); z >= 0 {
		requested.Min = z
	}
	if z := c.Int("max-zoom"); z >= 0 {
		requested.Max = z
	}
	log.Infof("generating zoom %d..%d", requested.Min, requested.Max)

	ext := "terrain"
	if format == "obj" {
		ext = "obj"
	}
	outputDir := c.String("output-dir")

	var mu sync.Mutex
	count := 0
	sink := func(tr tiles.TileResult) error {
		dir := filepath.Join(outputDir, fmt.Sprint(tr.Zoom), fmt.Sprint(tr.TX))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("%d.%s", tr.TY, ext))
		if err := os.WriteFile(path, tr.Data, 0o644); err != nil {
			return err
		}
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	}

	if err := p.Generate(context.Background(), requested, sink); err != nil {
		return err
	}
	log.Infof("wrote %d tiles", count)
	return nil
}

func meshBuilder(c *cli.Context, log *tntnlog.Logger) (tiles.MeshBuilder, error) {
	maxError := c.Float64("max-error")
	switch c.String("method") {
	case "terra":
		return func(r *raster.Raster) *mesh.Mesh {
			return terra.Run(r, terra.Options{MaxError: maxError, Logger: log})
		}, nil
	case "zemlya":
		return func(r *raster.Raster) *mesh.Mesh {
			return zemlya.Run(r, zemlya.Options{MaxError: maxError, Logger: log})
		}, nil
	default:
		return nil, fmt.Errorf("dem2tintiles: unknown --method %q", c.String("method"))
	}
}
