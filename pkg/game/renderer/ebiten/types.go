package ebiten

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"mvminimap/pkg/game/gameplay"
	"mvminimap/pkg/game/overlay"
	"mvminimap/pkg/game/renderer"
)

// keyRepeatInfo tracks the repeat state for a key or button
type keyRepeatInfo struct {
	firstPressed int64 // Timestamp when first pressed (milliseconds)
	lastRepeat   int64 // Timestamp when last repeat event was sent (milliseconds)
}

// EbitenRenderer is the Ebiten window frontend. Ebiten calls Update and Draw
// on one goroutine, so the preview is only ever touched from there.
type EbitenRenderer struct {
	// Font sources for text rendering
	monoFontSource     *text.GoTextFaceSource
	sansFontSource     *text.GoTextFaceSource
	sansBoldFontSource *text.GoTextFaceSource

	// Cached font faces
	cachedMonoFace  *text.GoTextFace
	cachedSansFace  *text.GoTextFace
	cachedTitleFace *text.GoTextFace
	cachedInfoFaces map[int]*text.GoTextFace

	preview *gameplay.Preview
	service renderer.Service
	assets  *renderer.Assets

	console             renderer.Console
	consoleAnimProgress float64 // 0.0 (closed) to 1.0 (open)
	consoleOpenedFrame  bool

	// Key repeat state tracking
	// Maps key/button codes to their repeat state
	keyRepeatState map[string]keyRepeatInfo

	// Minimap images uploaded from the presenter
	terrain       *ebiten.Image
	terrainSrc    image.Image
	markers       *ebiten.Image
	markerCanvas  overlay.Canvas
	markerRedraws int
	icons         *ebiten.Image
	shadow        *ebiten.Image
	frames        map[string]*ebiten.Image

	// Menu highlight animation state
	menuHighlightY       float64
	menuHighlightTargetY float64
	menuHighlightFrom    float64
	menuHighlightStart   int64
}
