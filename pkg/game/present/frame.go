// Package present turns minimap state into what a frontend draws each frame:
// the terrain crop, the marker layer window, the player icon and the frame image.
package present

import (
	"image"
	"math"

	"mvminimap/pkg/game/minimap"
)

// ComputeFrame derives the drawn area and tile rates for a bw by bh terrain
// image shown in viewport. It also returns the marker canvas size.
func ComputeFrame(mode minimap.Mode, viewport minimap.Rect, zoom float64, bw, bh, mapW, mapH int) (minimap.Frame, image.Point) {
	if mode == minimap.ModeFull {
		zoom = math.Min(float64(viewport.Width)/float64(bw), float64(viewport.Height)/float64(bh))
	}
	w := int(math.Round(math.Min(float64(viewport.Width), float64(bw)*zoom)))
	h := int(math.Round(math.Min(float64(viewport.Height), float64(bh)*zoom)))
	f := minimap.Frame{
		Zoom: zoom,
		Rect: minimap.Rect{
			X:      viewport.X + floorDiv(viewport.Width-w, 2),
			Y:      viewport.Y + floorDiv(viewport.Height-h, 2),
			Width:  w,
			Height: h,
		},
		XRate: 1,
		YRate: 1,
	}
	if mapW > 0 && mapH > 0 {
		f.XRate = float64(bw) / float64(mapW) * zoom
		f.YRate = float64(bh) / float64(mapH) * zoom
	}
	canvas := image.Pt(
		int(math.Floor(float64(bw)*zoom))+w,
		int(math.Floor(float64(bh)*zoom))+h,
	)
	return f, canvas
}

func floorDiv(a, b int) int {
	return int(math.Floor(float64(a) / float64(b)))
}

// Piece is one part of a wrapped crop: Src in the terrain image, drawn at Dst
// relative to the crop origin, both in unzoomed pixels.
type Piece struct {
	Src image.Rectangle
	Dst image.Point
}

// LoopPieces splits a crop window that may run past the right or bottom edge
// of a bw by bh image into up to four pieces that wrap to the opposite edge.
// Empty pieces are kept so the result always has four entries.
func LoopPieces(window image.Rectangle, bw, bh int) [4]Piece {
	fx, fy := window.Min.X, window.Min.Y
	fw, fh := window.Dx(), window.Dy()
	x1 := clampInt(fx, 0, bw)
	y1 := clampInt(fy, 0, bh)
	w1 := clampInt(fw-x1+fx, 0, bw-x1)
	h1 := clampInt(fh-y1+fy, 0, bh-y1)
	w2 := clampInt(fw-w1, 0, fw)
	h2 := clampInt(fh-h1, 0, fh)
	return [4]Piece{
		{Src: image.Rect(x1, y1, x1+w1, y1+h1), Dst: image.Pt(0, 0)},
		{Src: image.Rect(0, y1, w2, y1+h1), Dst: image.Pt(w1, 0)},
		{Src: image.Rect(x1, 0, x1+w1, h2), Dst: image.Pt(0, h1)},
		{Src: image.Rect(0, 0, w2, h2), Dst: image.Pt(w1, h1)},
	}
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// fmod is a floored modulo.
func fmod(x, n float64) float64 {
	if n == 0 {
		return 0
	}
	return math.Mod(math.Mod(x, n)+n, n)
}
