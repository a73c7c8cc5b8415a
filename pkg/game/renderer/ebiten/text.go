package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// drawText draws str with the top of its line face.Size below y, so callers
// can step y by whole lines.
func drawText(screen *ebiten.Image, str string, x, y int, col color.Color, face *text.GoTextFace) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y)+face.Size)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, face, op)
}

// drawCentredText draws str centred on (x, y).
func drawCentredText(screen *ebiten.Image, str string, x, y float64, col color.Color, face *text.GoTextFace) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, str, face, op)
}

// faded scales every channel of c by alpha in [0,1], which fades a
// premultiplied color towards transparent.
func faded(c color.Color, alpha float64) color.RGBA {
	alpha = min(max(alpha, 0), 1)
	r, g, b, a := c.RGBA()
	scale := func(v uint32) uint8 { return uint8(float64(v>>8) * alpha) }
	return color.RGBA{scale(r), scale(g), scale(b), scale(a)}
}

// textWidth is the width of str in the UI face.
func (e *EbitenRenderer) textWidth(str string) float64 {
	w, _ := text.Measure(str, e.getSansFontFace(), 0)
	return w
}
