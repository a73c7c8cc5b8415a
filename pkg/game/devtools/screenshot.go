// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"mvminimap/pkg/game/overlay"
	"mvminimap/pkg/game/present"
)

// Layers are the images a minimap frame is composed from.
type Layers struct {
	Terrain image.Image
	Markers image.Image
	Icons   overlay.IconSheet
	Frame   image.Image
}

// Compose draws the minimap of v the way a frontend shows it, onto an image
// covering v.Rect. The frame picture is centred and clipped to that area.
func Compose(v present.View, l Layers) *image.RGBA {
	r := v.Rect
	dst := image.NewRGBA(image.Rect(0, 0, max(r.Width, 0), max(r.Height, 0)))
	if !v.Visible || l.Terrain == nil {
		return dst
	}
	origin := image.Pt(r.X, r.Y)

	terrainMask := alphaMask(v.Opacity)
	for _, piece := range v.Terrain {
		if piece.Src.Empty() {
			continue
		}
		at := v.TerrainOrigin.Add(scalePt(piece.Dst, v.Zoom)).Sub(origin)
		size := scalePt(piece.Src.Size(), v.Zoom)
		dr := image.Rectangle{Min: at, Max: at.Add(size)}
		draw.NearestNeighbor.Scale(dst, dr, l.Terrain, piece.Src, draw.Over, &draw.Options{SrcMask: terrainMask})
	}

	if l.Markers != nil && !v.Overlay.Empty() {
		at := v.OverlayOrigin.Sub(origin)
		dr := image.Rectangle{Min: at, Max: at.Add(v.Overlay.Size())}
		draw.DrawMask(dst, dr, l.Markers, v.Overlay.Min, alphaMask(v.OverlayOpacity), image.Point{}, draw.Over)
	}

	if v.Player.Visible && l.Icons.Image != nil && l.Icons.Size > 0 {
		drawIcon(dst, l.Icons, v.Player, origin)
	}

	if l.Frame != nil {
		fb := l.Frame.Bounds()
		at := image.Pt((r.Width-fb.Dx())/2, (r.Height-fb.Dy())/2)
		draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(fb.Size())}, l.Frame, fb.Min, draw.Over)
	}
	return dst
}

// drawIcon draws the player icon rotated about its anchor.
func drawIcon(dst *image.RGBA, icons overlay.IconSheet, p present.PlayerIcon, origin image.Point) {
	src := icons.Rect(p.Icon)
	size := float64(icons.Size)
	ax := float64(src.Min.X) + size*0.5
	ay := float64(src.Min.Y) + size*p.AnchorY
	x := p.X - float64(origin.X)
	y := p.Y - float64(origin.Y)
	sin, cos := math.Sincos(p.Rotation)
	m := f64.Aff3{
		cos, -sin, x - cos*ax + sin*ay,
		sin, cos, y - sin*ax - cos*ay,
	}
	draw.NearestNeighbor.Transform(dst, m, icons.Image, src, draw.Over, nil)
}

func scalePt(p image.Point, zoom float64) image.Point {
	return image.Pt(int(math.Round(float64(p.X)*zoom)), int(math.Round(float64(p.Y)*zoom)))
}

func alphaMask(opacity int) image.Image {
	return image.NewUniform(color.Alpha{A: uint8(min(max(opacity, 0), 255))})
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveScreenshot writes img to a time-stamped PNG in the working directory and
// returns the file name.
func SaveScreenshot(img image.Image) (string, error) {
	filename := fmt.Sprintf("minimap-%s.png", time.Now().Format("20060102-150405"))
	b, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filename, b, 0o644); err != nil {
		return "", fmt.Errorf("save screenshot: %w", err)
	}
	return filename, nil
}
