package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gridFixture = `ncols 4
nrows 4
xllcorner 0
yllcorner 0
cellsize 10
NODATA_value -9999
0 1 2 3
1 2 3 4
2 3 4 5
3 4 5 6
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.asc")
	require.NoError(t, os.WriteFile(path, []byte(gridFixture), 0o644))
	return path
}

func TestRunWritesOBJ(t *testing.T) {
	input := writeFixture(t)
	output := filepath.Join(t.TempDir(), "out.obj")

	app := newApp()
	err := app.Run([]string{"dem2tin", "--input", input, "--output", output, "--method", "dense", "--format", "obj", "--quiet"})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "v "))
	assert.Contains(t, string(data), "f ")
}

func TestRunWritesGeoJSON(t *testing.T) {
	input := writeFixture(t)
	output := filepath.Join(t.TempDir(), "out.geojson")

	app := newApp()
	err := app.Run([]string{"dem2tin", "--input", input, "--output", output, "--method", "dense", "--format", "geojson", "--quiet"})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FeatureCollection")
}

func TestRunRejectsUnknownMethod(t *testing.T) {
	input := writeFixture(t)
	output := filepath.Join(t.TempDir(), "out.obj")

	app := newApp()
	err := app.Run([]string{"dem2tin", "--input", input, "--output", output, "--method", "bogus", "--quiet"})
	assert.Error(t, err)
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	input := writeFixture(t)
	output := filepath.Join(t.TempDir(), "out.xyz")

	app := newApp()
	err := app.Run([]string{"dem2tin", "--input", input, "--output", output, "--format", "bogus", "--quiet"})
	assert.Error(t, err)
}
