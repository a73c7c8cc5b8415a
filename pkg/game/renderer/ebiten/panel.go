package ebiten

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// panelStyle is how a rounded window is filled and outlined.
type panelStyle struct {
	radius  float32
	border  float32
	fill    color.Color
	outline color.Color
	// shadow scales the drop shadow, 0 for none.
	shadow float32
}

// shadowRings is how far the drop shadow spreads, one ring per pixel.
const shadowRings = 8

// roundedRect adds a rounded rectangle with its top-left at (x, y) to p.
// Winding counter-clockwise cuts a hole out of a clockwise shape.
func roundedRect(p *vector.Path, x, y, w, h, r float32, dir vector.Direction) {
	r = min(max(r, 0), w/2, h/2)
	if r == 0 {
		p.MoveTo(x, y)
		p.LineTo(x, y+h)
		p.LineTo(x+w, y+h)
		p.LineTo(x+w, y)
		p.Close()
		return
	}
	// corner centres clockwise from the top right, with the angle each arc starts at
	corners := [4]struct{ cx, cy, from float32 }{
		{x + w - r, y + r, 3 * math.Pi / 2},
		{x + w - r, y + h - r, 0},
		{x + r, y + h - r, math.Pi / 2},
		{x + r, y + r, math.Pi},
	}
	p.MoveTo(x+r, y)
	for _, c := range corners {
		p.Arc(c.cx, c.cy, r, c.from, c.from+math.Pi/2, dir)
	}
	p.Close()
}

// shadowColor darkens c to the tone its drop shadow is drawn in.
func shadowColor(c color.Color, alpha uint8) color.RGBA {
	r, g, b, _ := c.RGBA()
	dark := func(v uint32) uint8 { return uint8(max((v>>8)*15/255, 8)) }
	return color.RGBA{dark(r), dark(g), dark(b), alpha}
}

func fillPath(screen *ebiten.Image, p *vector.Path, c color.Color) {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.FillPath(screen, p, nil, op)
}

// drawPanel draws a rounded window over (x, y, w, h) with its shadow.
func drawPanel(screen *ebiten.Image, x, y, w, h float32, s panelStyle) {
	var path vector.Path
	if s.shadow > 0 {
		// rings from the outside in, each one pixel wide and a little darker
		for i := shadowRings; i >= 1; i-- {
			outer, inner := float32(i), float32(i-1)
			path.Reset()
			roundedRect(&path, x-outer, y-outer, w+outer*2, h+outer*2, s.radius+outer, vector.Clockwise)
			roundedRect(&path, x-inner, y-inner, w+inner*2, h+inner*2, s.radius+inner, vector.CounterClockwise)
			alpha := float32(min(12+i*8, 55)) * s.shadow
			fillPath(screen, &path, shadowColor(s.outline, uint8(alpha)))
		}
	}

	path.Reset()
	roundedRect(&path, x, y, w, h, s.radius, vector.Clockwise)
	fillPath(screen, &path, s.fill)
	if s.border > 0 {
		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(s.outline)
		vector.StrokePath(screen, &path, &vector.StrokeOptions{Width: s.border, MiterLimit: 10}, op)
	}
}
