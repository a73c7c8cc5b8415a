package minimap

import "math"

// Rect returns the configured viewport rectangle.
func (m *Minimap) Rect() Rect { return m.rect }

// Mode returns the display mode.
func (m *Minimap) Mode() Mode { return m.mode }

// Opacity returns the terrain opacity, 0..255.
func (m *Minimap) Opacity() int { return m.opacity }

// Zoom returns the configured zoom used in scaled mode.
func (m *Minimap) Zoom() float64 { return m.zoom }

// Visible reports the user visibility toggle.
func (m *Minimap) Visible() bool { return m.visible }

// FrameName returns the decorative overlay image name, empty for none.
func (m *Minimap) FrameName() string { return m.frameName }

// Frame returns the geometry last applied by the presentation layer.
func (m *Minimap) Frame() Frame { return m.frame }

// Center returns the viewport center in tiles.
func (m *Minimap) Center() (x, y float64) { return m.centerX, m.centerY }

// Start reconfigures the viewport. A frame refresh is requested only when a
// value actually changes.
func (m *Minimap) Start(r Rect, mode Mode, opacity int, zoom float64) {
	if m.rect == r && m.mode == mode && m.opacity == opacity && m.zoom == zoom {
		return
	}
	m.rect = r
	m.mode = mode
	m.opacity = opacity
	m.zoom = zoom
	m.requestFrame = true
}

// SetVisible toggles the minimap.
func (m *Minimap) SetVisible(v bool) { m.visible = v }

// SetFrameName sets or clears the decorative overlay image.
func (m *Minimap) SetFrameName(name string) { m.frameName = name }

// SetZoom changes the zoom. Non-positive values are ignored.
func (m *Minimap) SetZoom(zoom float64) {
	if zoom > 0 {
		m.zoom = zoom
		m.requestFrame = true
	}
}

// Enabled reports whether there is something to show.
func (m *Minimap) Enabled() bool {
	return m.IsReady() && m.visible &&
		(m.mode == ModeFull || m.zoom > 0) &&
		!m.rect.Empty()
}

// FrameRequested reports whether the presentation must recompute its frame.
func (m *Minimap) FrameRequested() bool { return m.requestFrame }

// MarkerRequested reports whether markings changed since the last redraw.
func (m *Minimap) MarkerRequested() bool { return m.requestMarker }

// ClearMarkerRequest acknowledges a marker redraw.
func (m *Minimap) ClearMarkerRequest() { m.requestMarker = false }

// ApplyFrame stores a freshly computed frame and recenters on the base position.
func (m *Minimap) ApplyFrame(f Frame) {
	m.frame = f
	m.requestFrame = false
	m.SetCenter()
}

// Offset returns the top-left of the visible area in unzoomed bitmap pixels.
func (m *Minimap) Offset() (ox, oy int) {
	zoom := m.frame.Zoom
	if zoom == 0 {
		zoom = 1
	}
	fx := (m.centerX+0.5)*m.frame.XRate - float64(m.frame.Rect.Width)/2
	fy := (m.centerY+0.5)*m.frame.YRate - float64(m.frame.Rect.Height)/2
	return int(math.Round(fx / zoom)), int(math.Round(fy / zoom))
}

// Base returns the position the viewport follows: the map center when another
// map is active, otherwise the player or the camera.
func (m *Minimap) Base() (x, y float64) {
	w := m.host.World
	if w == nil || w.ActiveMapID() != m.mapID {
		return float64(m.Width()) / 2, float64(m.Height()) / 2
	}
	if m.params.ScrollMapLink {
		return w.DisplayCenter()
	}
	p := w.Player()
	return p.RealX, p.RealY
}

// SetCenter snaps the viewport onto the base position and stops any scroll.
func (m *Minimap) SetCenter() {
	m.scroll.duration = 0
	m.lastBaseX, m.lastBaseY = m.Base()
	m.setCenterX(m.lastBaseX)
	m.setCenterY(m.lastBaseY)
}

func (m *Minimap) setCenterX(x float64) {
	if m.mode == ModeFull || !m.LoopHorizontal() {
		hw := halfExtent(m.frame.Rect.Width, m.frame.XRate)
		m.centerX = clamp(x, hw-0.5, float64(m.Width())-hw-0.5)
	} else {
		m.centerX = mod(x, float64(m.Width()))
	}
}

func (m *Minimap) setCenterY(y float64) {
	if m.mode == ModeFull || !m.LoopVertical() {
		hh := halfExtent(m.frame.Rect.Height, m.frame.YRate)
		m.centerY = clamp(y, hh-0.5, float64(m.Height())-hh-0.5)
	} else {
		m.centerY = mod(y, float64(m.Height()))
	}
}

func halfExtent(px int, rate float64) float64 {
	if rate == 0 {
		return 0
	}
	return float64(px) / rate / 2
}

// clamp applies the lower bound first, so hi wins when the range is inverted.
func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// mod is a floored modulo that is never negative for positive n.
func mod(x, n float64) float64 {
	if n == 0 {
		return 0
	}
	return math.Mod(math.Mod(x, n)+n, n)
}

// Mod is mod for integer pixel offsets.
func Mod(x, n int) int {
	if n == 0 {
		return 0
	}
	return (x%n + n) % n
}
