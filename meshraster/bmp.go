package meshraster

import (
	"image"
	"image/color"
	"io"
	"math"

	"golang.org/x/image/bmp"

	"github.com/tntn-go/tntn/raster"
)

// DumpBMP writes a grayscale visualization of r to w, normalizing
// valid samples to [0, 255] and rendering no-data pixels magenta. This
// is a debug aid (spec §6's alternate output sinks), not part of the
// production tile/quantized-mesh pipeline.
func DumpBMP(r *raster.Raster, w io.Writer) error {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))

	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range r.Data {
		if r.IsNoData(v) {
			continue
		}
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	span := max - min

	for row := 0; row < r.Height; row++ {
		for col := 0; col < r.Width; col++ {
			v := r.At(row, col)
			if r.IsNoData(v) {
				img.Set(col, row, color.RGBA{R: 255, B: 255, A: 255})
				continue
			}
			g := uint8(255)
			if span > 0 {
				g = uint8(255 * (v - min) / span)
			}
			img.Set(col, row, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}

	return bmp.Encode(w, img)
}
