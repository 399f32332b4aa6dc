// Command dem2tin meshes a single raster DEM into a TIN and writes it
// out in one of the module's text mesh formats, per spec §6's
// illustrative CLI surface.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tntn-go/tntn/mesh"
	"github.com/tntn-go/tntn/meshio"
	"github.com/tntn-go/tntn/raster"
	"github.com/tntn-go/tntn/terra"
	"github.com/tntn-go/tntn/tntnlog"
	"github.com/tntn-go/tntn/zemlya"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "dem2tin",
		Usage: "mesh a DEM raster into a TIN",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "input Esri ASCII Grid raster"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "output mesh file"},
			&cli.StringFlag{Name: "method", Value: "terra", Usage: "terra, zemlya, or dense"},
			&cli.Float64Flag{Name: "max-error", Value: 1.0, Usage: "maximum vertical error in meters, for terra/zemlya"},
			&cli.IntFlag{Name: "dense-step", Value: 1, Usage: "grid stride for --method dense"},
			&cli.StringFlag{Name: "format", Value: "obj", Usage: "obj, off, or geojson"},
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

	m, err := buildMesh(r, c, log)
	if err != nil {
		return err
	}
	log.Infof("meshed %d vertices, %d faces", len(m.Vertices), len(m.Faces))

	out, err := os.Create(c.String("output"))
	if err != nil {
		return err
	}
	defer out.Close()

	switch c.String("format") {
	case "obj":
		return meshio.WriteOBJ(out, m)
	case "off":
		return meshio.WriteOFF(out, m)
	case "geojson":
		return meshio.WriteGeoJSON(out, m)
	default:
		return fmt.Errorf("dem2tin: unknown --format %q", c.String("format"))
	}
}

func buildMesh(r *raster.Raster, c *cli.Context, log *tntnlog.Logger) (*mesh.Mesh, error) {
	switch c.String("method") {
	case "terra":
		return terra.Run(r, terra.Options{MaxError: c.Float64("max-error"), Logger: log}), nil
	case "zemlya":
		return zemlya.Run(r, zemlya.Options{MaxError: c.Float64("max-error"), Logger: log}), nil
	case "dense":
		return terra.Dense(r, c.Int("dense-step")), nil
	default:
		return nil, fmt.Errorf("dem2tin: unknown --method %q", c.String("method"))
	}
}
