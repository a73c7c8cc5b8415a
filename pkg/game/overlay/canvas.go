// Package overlay draws markings, event icons and vehicle icons onto the
// marker layer that sits above the terrain image.
package overlay

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// IconsPerRow is the number of icons in one row of the marker sheet.
const IconsPerRow = 8

// Canvas is a drawing surface for the marker layer.
type Canvas interface {
	Size() (w, h int)
	Clear()
	FillRect(x, y, w, h float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	// DrawIcon copies icon n of the marker sheet with its top-left at (x, y).
	DrawIcon(n int, x, y float64)
}

// IconSheet is the marker icon sheet, IconsPerRow square icons per row.
type IconSheet struct {
	Image image.Image
	Size  int
}

// NewIconSheet derives the icon size from the sheet width.
func NewIconSheet(img image.Image) IconSheet {
	s := IconSheet{Image: img}
	if img != nil {
		s.Size = img.Bounds().Dx() / IconsPerRow
	}
	return s
}

// Rect returns the source rectangle of icon n.
func (s IconSheet) Rect(n int) image.Rectangle {
	x := n % IconsPerRow * s.Size
	y := n / IconsPerRow * s.Size
	return image.Rect(x, y, x+s.Size, y+s.Size).Add(s.Image.Bounds().Min)
}

// RGBACanvas is a Canvas backed by an image.RGBA.
type RGBACanvas struct {
	Image *image.RGBA
	Icons IconSheet
}

// NewRGBACanvas allocates a transparent w by h canvas.
func NewRGBACanvas(w, h int, icons IconSheet) *RGBACanvas {
	return &RGBACanvas{Image: image.NewRGBA(image.Rect(0, 0, w, h)), Icons: icons}
}

func (c *RGBACanvas) Size() (int, int) {
	b := c.Image.Bounds()
	return b.Dx(), b.Dy()
}

func (c *RGBACanvas) Clear() {
	draw.Draw(c.Image, c.Image.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (c *RGBACanvas) FillRect(x, y, w, h float64, col color.Color) {
	r := image.Rect(round(x), round(y), round(x+w), round(y+h))
	draw.Draw(c.Image, r, image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *RGBACanvas) FillCircle(cx, cy, r float64, col color.Color) {
	src := image.NewUniform(col)
	y0 := int(math.Floor(cy - r))
	y1 := int(math.Ceil(cy + r))
	for y := y0; y < y1; y++ {
		dy := float64(y) + 0.5 - cy
		if dy*dy > r*r {
			continue
		}
		half := math.Sqrt(r*r - dy*dy)
		row := image.Rect(round(cx-half), y, round(cx+half), y+1)
		draw.Draw(c.Image, row, src, image.Point{}, draw.Over)
	}
}

func (c *RGBACanvas) DrawIcon(n int, x, y float64) {
	if c.Icons.Image == nil || c.Icons.Size == 0 || n < 0 {
		return
	}
	src := c.Icons.Rect(n)
	dst := image.Rect(round(x), round(y), round(x)+c.Icons.Size, round(y)+c.Icons.Size)
	draw.Draw(c.Image, dst, c.Icons.Image, src.Min, draw.Over)
}

func round(v float64) int {
	return int(math.Round(v))
}
