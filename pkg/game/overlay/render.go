package overlay

import (
	"image/color"

	"mvminimap/pkg/game/minimap"
)

// Source is what the renderer reads each redraw.
type Source interface {
	MarkingData() []minimap.MarkingEntry
	ActiveMapID() int
	Event(id int) (minimap.EventState, bool)
	LiveMarkers() []minimap.IconMarker
}

// Layout is the geometry of the marker layer.
type Layout struct {
	// Width and Height are the canvas size: the zoomed map plus one view rectangle.
	Width, Height int
	// ViewWidth and ViewHeight are the drawn minimap area in pixels.
	ViewWidth, ViewHeight int
	MapWidth, MapHeight   int
	LoopH, LoopV          bool
	// FrameX and FrameY are the top-left of the visible window into the canvas.
	FrameX, FrameY float64
}

// Renderer draws markings and live markers.
type Renderer struct {
	Colors   func(n int) color.NRGBA
	IconSize int
}

type pass struct {
	l      Layout
	bw, bh float64
	xRate  float64
	yRate  float64
	cx, cy float64
	c      Canvas
	draws  int
}

// Redraw clears c and draws everything src reports. It returns the number of
// primitives drawn, wrap-around copies included.
func (r *Renderer) Redraw(c Canvas, l Layout, src Source) int {
	c.Clear()
	if l.MapWidth <= 0 || l.MapHeight <= 0 {
		return 0
	}
	p := &pass{l: l, c: c}
	p.bw = float64(l.Width - l.ViewWidth)
	p.bh = float64(l.Height - l.ViewHeight)
	p.xRate = p.bw / float64(l.MapWidth)
	p.yRate = p.bh / float64(l.MapHeight)
	p.cx = l.FrameX + float64(l.ViewWidth)/2
	p.cy = l.FrameY + float64(l.ViewHeight)/2

	size := float64(r.IconSize)
	active := src.ActiveMapID()
	for _, e := range src.MarkingData() {
		m := e.Marking
		switch m.Kind {
		case minimap.CircleOnEvent:
			if active != m.MapID {
				continue
			}
			if ev, ok := src.Event(m.EventID); ok {
				p.circle(float64(ev.X), float64(ev.Y), m.Radius, r.color(m.Color))
			}
		case minimap.CircleAtPoint:
			p.circle(m.X, m.Y, m.Radius, r.color(m.Color))
		case minimap.RectAtPoint:
			p.rect(m.X, m.Y, m.Width, m.Height, r.color(m.Color))
		case minimap.IconOnEvent:
			if active != m.MapID {
				continue
			}
			if ev, ok := src.Event(m.EventID); ok {
				p.icon(float64(ev.X), float64(ev.Y), m.Icon, size)
			}
		case minimap.IconAtPoint:
			p.icon(m.X, m.Y, m.Icon, size)
		}
	}
	for _, mk := range src.LiveMarkers() {
		p.icon(float64(mk.X), float64(mk.Y), mk.Icon, size)
	}
	return p.draws
}

func (r *Renderer) color(n int) color.NRGBA {
	if r.Colors == nil {
		return color.NRGBA{}
	}
	return r.Colors(n)
}

// phantoms returns the primary position and its wrap-around copies.
func (p *pass) phantoms(x, y float64) [][2]float64 {
	x2 := x - p.bw
	if x < p.cx {
		x2 = x + p.bw
	}
	y2 := y - p.bh
	if y < p.cy {
		y2 = y + p.bh
	}
	out := [][2]float64{{x, y}}
	if p.l.LoopH {
		out = append(out, [2]float64{x2, y})
	}
	if p.l.LoopV {
		out = append(out, [2]float64{x, y2})
	}
	if p.l.LoopH && p.l.LoopV {
		out = append(out, [2]float64{x2, y2})
	}
	return out
}

func (p *pass) icon(x, y float64, n int, size float64) {
	dx := (x+0.5)*p.xRate - size/2
	dy := (y+0.5)*p.yRate - size/2
	for _, at := range p.phantoms(dx, dy) {
		p.c.DrawIcon(n, at[0], at[1])
		p.draws++
	}
}

func (p *pass) circle(x, y, r float64, c color.Color) {
	dx := (x + 0.5) * p.xRate
	dy := (y + 0.5) * p.yRate
	r *= p.xRate
	for _, at := range p.phantoms(dx, dy) {
		p.c.FillCircle(at[0], at[1], r, c)
		p.draws++
	}
}

func (p *pass) rect(x, y, w, h float64, c color.Color) {
	dx := x * p.xRate
	dy := y * p.yRate
	w *= p.xRate
	h *= p.yRate
	for _, at := range p.phantoms(dx, dy) {
		p.c.FillRect(at[0], at[1], w, h, c)
		p.draws++
	}
}
