package renderer

import (
	"image"
	"image/color"
	"math"
)

// Downsample samples img down to at most maxCols columns, every pixel
// composited onto bg. Rows are sampled with the same step.
func Downsample(img image.Image, maxCols int, bg color.RGBA) [][]color.RGBA {
	b := img.Bounds()
	if b.Empty() {
		return nil
	}
	step := max(int(math.Ceil(float64(b.Dx())/float64(max(maxCols, 1)))), 1)
	var rows [][]color.RGBA
	for y := b.Min.Y; y < b.Max.Y; y += step {
		row := make([]color.RGBA, 0, b.Dx()/step+1)
		for x := b.Min.X; x < b.Max.X; x += step {
			row = append(row, Over(img.At(x, y), bg))
		}
		rows = append(rows, row)
	}
	return rows
}

// Over composites c onto an opaque bg.
func Over(c color.Color, bg color.RGBA) color.RGBA {
	r, g, b, a := c.RGBA()
	inv := 0xffff - a
	mix := func(v uint32, under uint8) uint8 {
		return uint8((v + uint32(under)*0x101*inv/0xffff) >> 8)
	}
	return color.RGBA{mix(r, bg.R), mix(g, bg.G), mix(b, bg.B), 255}
}
