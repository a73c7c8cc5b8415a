package present

import (
	"image"
	"math"

	"mvminimap/pkg/engine/logger"
	"mvminimap/pkg/game/minimap"
	"mvminimap/pkg/game/overlay"
)

// PlayerIcon is the player marker. X and Y are the icon anchor on screen.
type PlayerIcon struct {
	Visible  bool
	Icon     int
	X, Y     float64
	AnchorY  float64
	Rotation float64
}

// View is everything a frontend needs to draw the minimap for one frame.
type View struct {
	Visible bool
	Layer   Layer
	// Rect is the drawn area on screen.
	Rect    minimap.Rect
	Zoom    float64
	Opacity int

	// Terrain pieces are drawn scaled by Zoom from TerrainOrigin.
	Terrain       [4]Piece
	TerrainOrigin image.Point

	// Overlay is the window into the marker canvas drawn unscaled at OverlayOrigin.
	Overlay        image.Rectangle
	OverlayOrigin  image.Point
	OverlayOpacity int

	Player    PlayerIcon
	FrameName string
}

// CanvasFactory makes a marker canvas of the given size.
type CanvasFactory func(w, h int) overlay.Canvas

// Sprite is the per-scene minimap presenter. It owns the marker canvas and
// drives the model once per frame.
type Sprite struct {
	m         *minimap.Minimap
	renderer  *overlay.Renderer
	newCanvas CanvasFactory

	shown      bool
	visible    bool
	generation int
	loaded     bool
	base       image.Image
	bw, bh     int

	frame       minimap.Frame
	canvas      overlay.Canvas
	canvasSize  image.Point
	refresh     overlay.Refresh
	markerFrame image.Rectangle
	draws       int
	redraws     int

	view View
}

// NewSprite creates a presenter for m. Markers are drawn with icons of
// iconSize pixels on canvases from newCanvas.
func NewSprite(m *minimap.Minimap, iconSize int, newCanvas CanvasFactory) *Sprite {
	p := m.Params()
	return &Sprite{
		m: m,
		renderer: &overlay.Renderer{
			Colors:   p.MarkingColor,
			IconSize: iconSize,
		},
		newCanvas:  newCanvas,
		shown:      true,
		generation: -1,
		refresh:    overlay.Refresh{Every: p.UpdateCount},
	}
}

// Canvas returns the marker canvas, nil before the first frame refresh.
func (s *Sprite) Canvas() overlay.Canvas { return s.canvas }

// Base returns the terrain image shown.
func (s *Sprite) Base() image.Image { return s.base }

// View returns the state computed by the last Update.
func (s *Sprite) View() View { return s.view }

// LastDraws is the number of marker primitives of the last redraw.
func (s *Sprite) LastDraws() int { return s.draws }

// Redraws counts marker canvas redraws so frontends can tell when to re-upload it.
func (s *Sprite) Redraws() int { return s.redraws }

// Shown reports whether the current scene shows the minimap at all.
func (s *Sprite) Shown() bool { return s.shown }

// Leave hides the minimap when the map scene hands over to next.
func (s *Sprite) Leave(next Scene) {
	if next != SceneMap && s.m.Params().HideNextScene {
		s.shown = false
	}
}

// Enter starts a new map scene. The frame is refreshed on the next Update,
// which recentres the minimap and drops any scroll in progress.
func (s *Sprite) Enter() {
	s.shown = true
	s.loaded = false
	s.refresh.Reset()
}

func (s *Sprite) isReady() bool {
	if gen := s.m.Generation(); gen != s.generation {
		s.generation = gen
		s.loaded = false
		s.base = nil
	}
	if !s.loaded {
		img, ok := s.m.Bitmap()
		if !ok {
			return false
		}
		s.base = img
		s.bw, s.bh = img.Bounds().Dx(), img.Bounds().Dy()
		s.loaded = true
		s.refreshFrame()
	}
	return true
}

// Update advances one frame and reports whether the minimap is visible.
func (s *Sprite) Update() bool {
	s.visible = s.m.Enabled() && s.isReady() && s.shown
	s.view.Visible = s.visible
	if !s.visible {
		return false
	}
	s.m.Tick()
	if s.m.FrameRequested() {
		s.refreshFrame()
	}
	s.refresh.Tick()
	s.updateParts()
	return true
}

func (s *Sprite) refreshFrame() {
	m := s.m
	frame, size := ComputeFrame(m.Mode(), m.Rect(), m.Zoom(), s.bw, s.bh, m.Width(), m.Height())
	s.frame = frame
	if s.canvas == nil || size != s.canvasSize {
		s.canvas = s.newCanvas(size.X, size.Y)
		s.canvasSize = size
	}
	s.redraw()
	m.ApplyFrame(frame)
	logger.For("present").WithField("zoom", frame.Zoom).WithField("rect", frame.Rect).Debug("frame refreshed")
}

func (s *Sprite) redraw() {
	m := s.m
	l := overlay.Layout{
		Width:      s.canvasSize.X,
		Height:     s.canvasSize.Y,
		ViewWidth:  s.frame.Rect.Width,
		ViewHeight: s.frame.Rect.Height,
		MapWidth:   m.Width(),
		MapHeight:  m.Height(),
		LoopH:      m.LoopHorizontal(),
		LoopV:      m.LoopVertical(),
		FrameX:     float64(s.markerFrame.Min.X),
		FrameY:     float64(s.markerFrame.Min.Y),
	}
	s.draws = s.renderer.Redraw(s.canvas, l, m)
	s.redraws++
}

func (s *Sprite) updateParts() {
	offX, offY := s.m.Offset()
	ox := minimap.Mod(offX, s.bw)
	oy := minimap.Mod(offY, s.bh)

	r := s.frame.Rect
	s.view.Layer = Layer(s.m.Params().MinimapZ)
	s.view.Rect = r
	s.view.Zoom = s.frame.Zoom
	s.view.Opacity = s.m.Opacity()

	s.updatePlayer(ox, oy)
	s.updateTerrain(ox, oy)
	s.updateMarker(ox, oy)
	s.view.FrameName = s.m.FrameName()
}

// center is the screen position the parts are anchored on.
func (s *Sprite) center() (float64, float64) {
	r := s.frame.Rect
	return float64(r.X) + float64(r.Width)/2, float64(r.Y) + float64(r.Height)/2
}

func (s *Sprite) updatePlayer(ox, oy int) {
	m := s.m
	icon := &s.view.Player
	icon.Visible = m.ActiveMapID() == m.MapID()
	if !icon.Visible {
		return
	}
	p := m.Player()
	style := m.Params().Player
	if p.Riding {
		style = m.Params().VehicleOn
	}
	icon.Icon = style.Index
	icon.AnchorY = style.AnchorY
	icon.Rotation = 0
	if style.Turn {
		icon.Rotation = p.Facing.Rotation()
	}

	zoom := s.frame.Zoom
	r := s.frame.Rect
	bw, bh := float64(s.bw), float64(s.bh)
	px := (p.RealX + 0.5) * bw / float64(m.Width())
	py := (p.RealY + 0.5) * bh / float64(m.Height())
	x := fmod(px-float64(ox), bw)*zoom - float64(r.Width)/2
	y := fmod(py-float64(oy), bh)*zoom - float64(r.Height)/2
	icon.Visible = math.Abs(x) < float64(r.Width)/2 && math.Abs(y) < float64(r.Height)/2

	cx, cy := s.center()
	icon.X, icon.Y = cx+x, cy+y
}

func (s *Sprite) updateTerrain(ox, oy int) {
	zoom := s.frame.Zoom
	r := s.frame.Rect
	w := int(math.Ceil(float64(r.Width) / zoom))
	h := int(math.Ceil(float64(r.Height) / zoom))
	s.view.Terrain = LoopPieces(image.Rect(ox, oy, ox+w, oy+h), s.bw, s.bh)

	cx, cy := s.center()
	s.view.TerrainOrigin = image.Pt(
		int(math.Floor(cx+math.Floor(-float64(w)*0.5)*zoom)),
		int(math.Floor(cy+math.Floor(-float64(h)*0.5)*zoom)),
	)
}

func (s *Sprite) updateMarker(ox, oy int) {
	p := s.m.Params()
	if s.refresh.Due(s.m.MarkerRequested()) {
		s.redraw()
		s.m.ClearMarkerRequest()
		s.refresh.Reset()
	}
	s.view.OverlayOpacity = overlay.Opacity(p.BlinkDuration, s.refresh.Count())

	zoom := s.frame.Zoom
	r := s.frame.Rect
	x := int(float64(ox) * zoom)
	y := int(float64(oy) * zoom)
	s.markerFrame = image.Rect(x, y, x+r.Width, y+r.Height)
	s.view.Overlay = s.markerFrame

	cx, cy := s.center()
	s.view.OverlayOrigin = image.Pt(
		int(math.Floor(cx-float64(r.Width)/2)),
		int(math.Floor(cy-float64(r.Height)/2)),
	)
}
