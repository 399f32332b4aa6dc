package raster

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadASCIIGrid parses an Esri ASCII Grid ("AAIGrid") stream into a
// Raster. This is the module's one concrete raster-file format, chosen
// because it is plain self-describing text with no external library or
// GDAL binding required (spec §1 explicitly excludes GDAL-based
// loading); the CLI commands use it as their --input reader.
func ReadASCIIGrid(r io.Reader) (*Raster, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header := map[string]float64{}
	have := map[string]bool{}
	firstDataLine := ""

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		key := strings.ToLower(fields[0])
		if len(fields) != 2 || !isHeaderKey(key) {
			firstDataLine = line
			break
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "raster: ascii grid header %q", fields[0])
		}
		header[key] = v
		have[key] = true
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "raster: ascii grid header")
	}
	for _, k := range []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize"} {
		if !have[k] {
			return nil, errors.Errorf("raster: ascii grid missing %q", k)
		}
	}

	width := int(header["ncols"])
	height := int(header["nrows"])
	cellSize := header["cellsize"]
	noData := NoData
	if have["nodata_value"] {
		noData = header["nodata_value"]
	}

	// xllcorner/yllcorner are the lower-left cell CORNER; Raster.PosX/PosY
	// is the lower-left cell CENTER.
	posX := header["xllcorner"] + cellSize/2
	posY := header["yllcorner"] + cellSize/2

	out := New(width, height, posX, posY, cellSize)
	out.NoDataValue = noData

	row := 0
	if firstDataLine != "" && row < height {
		if err := parseGridRow(out, row, firstDataLine, noData); err != nil {
			return nil, err
		}
		row++
	}
	for row < height && sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := parseGridRow(out, row, line, noData); err != nil {
			return nil, err
		}
		row++
	}
	if row != height {
		return nil, errors.Errorf("raster: ascii grid has %d data rows, want %d", row, height)
	}
	return out, nil
}

func isHeaderKey(key string) bool {
	switch key {
	case "ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "nodata_value":
		return true
	default:
		return false
	}
}

func parseGridRow(out *Raster, row int, line string, noData float64) error {
	fields := strings.Fields(line)
	if len(fields) != out.Width {
		return errors.Errorf("raster: ascii grid row %d has %d values, want %d", row, len(fields), out.Width)
	}
	for col, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return errors.Wrapf(err, "raster: ascii grid row %d col %d", row, col)
		}
		out.Set(row, col, v)
	}
	out.NoDataValue = noData
	return nil
}
