package ebiten

import "image/color"

// Screen size in pixels, the engine's default resolution.
const (
	screenWidth  = 816
	screenHeight = 624
	tileSize     = 48
)

// Color palette for the preview chrome.
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}
	colorPlayer          = color.RGBA{0, 255, 0, 255}
	colorFollower        = color.RGBA{120, 220, 120, 255}
	colorEvent           = color.RGBA{255, 200, 100, 255}
	colorVehicle         = color.RGBA{100, 150, 255, 255}
	colorSpriteText      = color.RGBA{15, 15, 26, 255}
	colorWallEdge        = color.RGBA{40, 40, 56, 255}
	colorText            = color.RGBA{200, 210, 245, 255}
	colorSubtle          = color.RGBA{120, 130, 180, 255}
	colorAction          = color.RGBA{180, 150, 250, 255}
	colorDenied          = color.RGBA{255, 100, 100, 255}
	colorPanelBackground = color.RGBA{30, 30, 50, 220}
	colorBattle          = color.RGBA{60, 10, 20, 255}
	colorMenuHighlight   = color.RGBA{100, 60, 160, 255}
)

const (
	uiFontSize    = 18
	titleFontSize = 22.0
)

const (
	keyRepeatInitialDelay = 300 // Initial delay before first repeat (milliseconds)
	keyRepeatInterval     = 100 // Interval between repeat events (milliseconds)
)
