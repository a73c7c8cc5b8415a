package ebiten

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"mvminimap/pkg/game/overlay"
	"mvminimap/pkg/game/present"
)

// syncMinimapImages re-uploads the terrain when the presenter swapped it and
// the marker canvas whenever it was redrawn.
func (e *EbitenRenderer) syncMinimapImages(s *present.Sprite) {
	if base := s.Base(); base != e.terrainSrc {
		e.terrainSrc = base
		e.terrain = nil
		if base != nil {
			e.terrain = ebiten.NewImageFromImage(base)
		}
	}

	c, ok := s.Canvas().(*overlay.RGBACanvas)
	if !ok {
		e.markers, e.markerCanvas = nil, nil
		return
	}
	if c != e.markerCanvas {
		e.markerCanvas = c
		b := c.Image.Bounds()
		e.markers = ebiten.NewImage(b.Dx(), b.Dy())
		e.markerRedraws = -1
	}
	if r := s.Redraws(); r != e.markerRedraws {
		e.markerRedraws = r
		e.markers.WritePixels(c.Image.Pix)
	}
}

func (e *EbitenRenderer) frameImage(name string) *ebiten.Image {
	if img, ok := e.frames[name]; ok {
		return img
	}
	var img *ebiten.Image
	if src := e.assets.Frame(name); src != nil {
		img = ebiten.NewImageFromImage(src)
	}
	e.frames[name] = img
	return img
}

// drawMinimap draws v: terrain at the minimap opacity, then markers at the
// blink opacity, then the player icon and the frame at full strength.
func (e *EbitenRenderer) drawMinimap(screen *ebiten.Image, v present.View) {
	e.syncMinimapImages(e.preview.Sprite)
	if !v.Visible || e.terrain == nil {
		return
	}
	r := image.Rect(v.Rect.X, v.Rect.Y, v.Rect.X+v.Rect.Width, v.Rect.Y+v.Rect.Height)
	clip, ok := screen.SubImage(r).(*ebiten.Image)
	if !ok {
		return
	}

	for _, piece := range v.Terrain {
		if piece.Src.Empty() {
			continue
		}
		src := e.terrain.SubImage(piece.Src).(*ebiten.Image)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(v.Zoom, v.Zoom)
		op.GeoM.Translate(
			float64(v.TerrainOrigin.X)+math.Round(float64(piece.Dst.X)*v.Zoom),
			float64(v.TerrainOrigin.Y)+math.Round(float64(piece.Dst.Y)*v.Zoom))
		op.ColorScale.ScaleAlpha(float32(v.Opacity) / 255)
		clip.DrawImage(src, op)
	}

	if e.markers != nil && !v.Overlay.Empty() {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(v.OverlayOrigin.X), float64(v.OverlayOrigin.Y))
		op.ColorScale.ScaleAlpha(float32(v.OverlayOpacity) / 255)
		clip.DrawImage(e.markers.SubImage(v.Overlay).(*ebiten.Image), op)
	}

	icons := e.assets.Icons
	if v.Player.Visible && e.icons != nil && icons.Size > 0 {
		size := float64(icons.Size)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-size*0.5, -size*v.Player.AnchorY)
		op.GeoM.Rotate(v.Player.Rotation)
		op.GeoM.Translate(v.Player.X, v.Player.Y)
		clip.DrawImage(e.icons.SubImage(icons.Rect(v.Player.Icon)).(*ebiten.Image), op)
	}

	if frame := e.frameImage(v.FrameName); v.FrameName != "" && frame != nil {
		fb := frame.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(
			float64(r.Min.X+(r.Dx()-fb.Dx())/2),
			float64(r.Min.Y+(r.Dy()-fb.Dy())/2))
		screen.DrawImage(frame, op)
	}
}
