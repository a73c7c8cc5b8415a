// Package minimap holds the minimap model: which map is shown, the viewport
// over it, its scroll animation, user markings and the terrain bitmap.
package minimap

import (
	"image"
	"strconv"

	"mvminimap/pkg/engine/logger"
	"mvminimap/pkg/game/config"
)

// Readiness tracks the map data load.
type Readiness int

const (
	Unloaded Readiness = iota
	Loading
	Ready
)

func (r Readiness) String() string {
	switch r {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	}
	return "unloaded"
}

// Mode is the viewport display mode.
type Mode int

const (
	// ModeFull fits the whole map into the rectangle.
	ModeFull Mode = iota
	// ModeScaled shows the map at a fixed zoom and scrolls it.
	ModeScaled
)

// Rect is a screen rectangle in pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Frame is the geometry the presentation layer derived for the current map.
type Frame struct {
	Zoom float64 `json:"zoom"`
	// Rect is the drawn area, centered inside the viewport rectangle.
	Rect  Rect    `json:"rect"`
	XRate float64 `json:"xRate"`
	YRate float64 `json:"yRate"`
}

// Minimap is the live minimap state. It is driven from a single goroutine.
type Minimap struct {
	params *config.Params
	host   Host

	mapID     int
	rect      Rect
	mode      Mode
	opacity   int
	zoom      float64
	visible   bool
	frameName string
	markings  *Markings

	scroll    Scroll
	centerX   float64
	centerY   float64
	lastBaseX float64
	lastBaseY float64
	frame     Frame

	requestFrame  bool
	requestMarker bool
	requestCreate bool

	readiness  Readiness
	pending    Request[*MapData]
	data       *MapData
	tileset    *Tileset
	generation int

	bitmap        image.Image
	bitmapDirty   bool
	pendingBitmap Request[image.Image]
}

// New returns a minimap using the configured defaults.
func New(p *config.Params, host Host) *Minimap {
	d := p.DefaultData
	m := &Minimap{
		params:   p,
		host:     host,
		markings: NewMarkings(),
		frame:    Frame{Zoom: 1, XRate: 1, YRate: 1},
	}
	m.rect = Rect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height}
	m.mode = Mode(d.Mode)
	m.opacity = d.Opacity
	m.zoom = d.Zoom
	m.visible = p.DefaultVisible
	m.SetScrollType(p.DefaultScrollType, p.DefaultScrollParam)
	return m
}

// Attach sets the host collaborators, for instance after the state was restored.
func (m *Minimap) Attach(host Host) {
	m.host = host
}

// Params returns the configuration the minimap runs with.
func (m *Minimap) Params() *config.Params { return m.params }

// MapID is the map shown, 0 when none.
func (m *Minimap) MapID() int { return m.mapID }

// Generation changes every time a new map is created or the minimap is cleared.
func (m *Minimap) Generation() int { return m.generation }

// Readiness reports the map data load state without polling.
func (m *Minimap) Readiness() Readiness { return m.readiness }

// Data returns the loaded map, nil until ready.
func (m *Minimap) Data() *MapData { return m.data }

// Tileset returns the tileset of the loaded map.
func (m *Minimap) Tileset() *Tileset { return m.tileset }

// Markings returns the marking collection.
func (m *Minimap) Markings() *Markings { return m.markings }

// Setup switches to mapID. It is a no-op when mapID is already shown.
func (m *Minimap) Setup(mapID int) {
	if m.mapID == mapID {
		return
	}
	m.mapID = mapID
	m.create()
}

// Clear forgets the current map.
func (m *Minimap) Clear() {
	m.mapID = 0
	m.reset()
	m.readiness = Unloaded
	m.requestFrame = true
}

// RequestCreate asks for the map data to be reloaded once the scene is ready.
func (m *Minimap) RequestCreate() {
	m.requestCreate = true
}

// OnSceneLoaded runs a pending create request.
func (m *Minimap) OnSceneLoaded() {
	if m.requestCreate {
		m.requestCreate = false
		m.create()
	}
}

func (m *Minimap) reset() {
	m.pending = nil
	m.data = nil
	m.tileset = nil
	m.bitmap = nil
	m.bitmapDirty = false
	m.pendingBitmap = nil
	m.generation++
}

func (m *Minimap) create() {
	m.reset()
	m.requestFrame = true
	if m.mapID <= 0 || m.host.Maps == nil {
		m.readiness = Unloaded
		return
	}
	logger.For("minimap").WithField("map", m.mapID).Debug("loading map data")
	m.pending = m.host.Maps.RequestMap(m.mapID)
	m.readiness = Loading
}

// IsReady polls the pending load and reports whether map data is available.
func (m *Minimap) IsReady() bool {
	if m.readiness == Loading && m.pending != nil && m.pending.Done() {
		data, err := m.pending.Result()
		m.pending = nil
		if err != nil || data == nil {
			logger.For("minimap").WithError(err).WithField("map", m.mapID).Warn("map data unavailable")
			m.readiness = Unloaded
			return false
		}
		m.onLoaded(data)
	}
	return m.readiness == Ready
}

func (m *Minimap) onLoaded(data *MapData) {
	m.data = data
	m.readiness = Ready
	if m.host.Maps != nil {
		if ts, ok := m.host.Maps.Tileset(data.TilesetID); ok {
			m.tileset = ts
		}
	}
	if v, ok := data.Meta[m.params.MapMetaMinimapZoom]; ok {
		if z, err := strconv.ParseFloat(v, 64); err == nil && z != 0 {
			m.zoom = z
		}
	}
	m.bitmapDirty = true
	m.requestFrame = true
	m.requestMarker = true
}

// Bitmap returns the terrain image of the current map. The image is built on
// the first call after the map became ready, or loaded when the map names one.
func (m *Minimap) Bitmap() (image.Image, bool) {
	if !m.IsReady() {
		return nil, false
	}
	if m.bitmapDirty {
		m.buildBitmap()
	}
	if m.pendingBitmap != nil {
		if !m.pendingBitmap.Done() {
			return nil, false
		}
		img, err := m.pendingBitmap.Result()
		m.pendingBitmap = nil
		if err != nil || img == nil {
			logger.For("minimap").WithError(err).Warn("minimap image unavailable, synthesizing")
			m.bitmap = m.synthesize()
		} else {
			m.bitmap = img
		}
	}
	return m.bitmap, m.bitmap != nil
}

func (m *Minimap) buildBitmap() {
	m.bitmapDirty = false
	if name := m.data.Meta[m.params.MapMetaMinimap]; name != "" && m.host.Images != nil {
		m.pendingBitmap = m.host.Images.SystemImage(name)
		return
	}
	m.bitmap = m.synthesize()
}

func (m *Minimap) synthesize() image.Image {
	c := Classify(m.data, m.tileset, m.params.WallRegionIDs, m.params.FloorRegionIDs)
	logger.For("minimap").WithField("map", m.mapID).Debug("synthesized terrain image")
	return Synthesize(c, m.params)
}

// Width is the map width in tiles, 0 before load.
func (m *Minimap) Width() int {
	if m.data == nil {
		return 0
	}
	return m.data.Width
}

// Height is the map height in tiles, 0 before load.
func (m *Minimap) Height() int {
	if m.data == nil {
		return 0
	}
	return m.data.Height
}

// LoopHorizontal reports whether the shown map wraps horizontally.
func (m *Minimap) LoopHorizontal() bool {
	return m.data != nil && m.data.LoopHorizontal()
}

// LoopVertical reports whether the shown map wraps vertically.
func (m *Minimap) LoopVertical() bool {
	return m.data != nil && m.data.LoopVertical()
}

// Tick advances the minimap by one frame.
func (m *Minimap) Tick() {
	if m.mapID > 0 {
		m.updateScroll()
	}
}
