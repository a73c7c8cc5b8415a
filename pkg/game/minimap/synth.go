package minimap

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"mvminimap/pkg/game/config"
)

// Palette maps a terrain class to its configured fill color.
func Palette(colors config.TerrainColors, t Terrain) color.NRGBA {
	switch t {
	case TerrainLand:
		return colors.Land
	case TerrainSea:
		return colors.Sea
	case TerrainFord:
		return colors.Ford
	case TerrainMountain:
		return colors.Mountain
	case TerrainHill:
		return colors.Hill
	case TerrainForest:
		return colors.Forest
	case TerrainRiver:
		return colors.River
	case TerrainShallow:
		return colors.Shallow
	case TerrainLadder:
		return colors.Ladder
	case TerrainBush:
		return colors.Bush
	case TerrainCounter:
		return colors.Counter
	case TerrainWall:
		return colors.Wall
	default:
		return colors.Floor
	}
}

// Synthesize paints a classification at tileSize pixels per tile. Floor tiles
// with impassable sides get wall strips of wallWidth pixels, then the result is
// blurred blurPasses times.
func Synthesize(c *Classification, p *config.Params) *image.RGBA {
	size := p.TileSize
	img := image.NewRGBA(image.Rect(0, 0, c.Width*size, c.Height*size))
	wall := image.NewUniform(p.Colors.Wall)
	ww := p.Dir4WallWidth
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			t, dirs := c.At(x, y)
			px, py := x*size, y*size
			block := image.Rect(px, py, px+size, py+size)
			draw.Draw(img, block, image.NewUniform(Palette(p.Colors, t)), image.Point{}, draw.Src)
			if dirs == 0 || ww <= 0 {
				continue
			}
			for _, r := range wallStrips(block, dirs, ww) {
				draw.Draw(img, r, wall, image.Point{}, draw.Over)
			}
		}
	}
	Blur(img, p.BlurIntensity)
	return img
}

func wallStrips(block image.Rectangle, dirs uint8, w int) []image.Rectangle {
	var out []image.Rectangle
	if dirs&WallDown != 0 {
		out = append(out, image.Rect(block.Min.X, block.Max.Y-w, block.Max.X, block.Max.Y))
	}
	if dirs&WallLeft != 0 {
		out = append(out, image.Rect(block.Min.X, block.Min.Y, block.Min.X+w, block.Max.Y))
	}
	if dirs&WallRight != 0 {
		out = append(out, image.Rect(block.Max.X-w, block.Min.Y, block.Max.X, block.Max.Y))
	}
	if dirs&WallUp != 0 {
		out = append(out, image.Rect(block.Min.X, block.Min.Y, block.Max.X, block.Min.Y+w))
	}
	return out
}
