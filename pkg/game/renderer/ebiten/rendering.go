package ebiten

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"mvminimap/pkg/engine/logger"
	"mvminimap/pkg/engine/world"
	"mvminimap/pkg/game/minimap"
	"mvminimap/pkg/game/present"
	"mvminimap/pkg/game/renderer"
)

// maxMessages is how many log lines the message window shows.
const maxMessages = 4

// Draw renders the preview to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	p := e.preview
	if p == nil || e.sansFontSource == nil {
		return
	}

	scene := renderer.BuildScene(p, tileSize, tileSize)
	if p.Scene == present.SceneBattle {
		e.drawBattle(screen)
	} else {
		e.drawTiles(screen, scene.Tiles)
		e.drawCharacters(screen, scene.Sprites)
		e.drawInfo(screen, scene.Info)
	}

	// the map scene draws pictures, the timer, the flash and the fade above
	// the characters; the preview has none of them, so every slot below the
	// windows lands here
	if scene.Minimap.Layer != present.AboveWindows {
		e.drawMinimap(screen, scene.Minimap)
	}
	e.drawMessages(screen, scene.Messages, scene.Hint)
	if scene.Minimap.Layer == present.AboveWindows {
		e.drawMinimap(screen, scene.Minimap)
	}

	if p.Menu != nil {
		e.drawMenu(screen, p.Menu)
	}
	e.drawConsole(screen)
	e.drawDebug(screen)
}

// drawDebug prints the minimap's loading state while map data is on its way,
// and the frame rate when debug logging is on.
func (e *EbitenRenderer) drawDebug(screen *ebiten.Image) {
	m := e.preview.Game.Session.Minimap
	if m.Readiness() == minimap.Loading {
		ebitenutil.DebugPrintAt(screen, "Loading map data...", 8, 8)
	}
	if logger.Log.IsLevelEnabled(logrus.DebugLevel) {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %0.1f  FPS %0.1f", ebiten.ActualTPS(), ebiten.ActualFPS()), screenWidth-160, screenHeight-20)
	}
}

// drawTiles fills each tile with its terrain color and edges blocked sides.
func (e *EbitenRenderer) drawTiles(screen *ebiten.Image, tiles []renderer.Tile) {
	colors := e.preview.Game.Params.Colors
	for _, t := range tiles {
		x, y := float32(t.X), float32(t.Y)
		vector.DrawFilledRect(screen, x, y, tileSize, tileSize, minimap.Palette(colors, t.Terrain), false)
		if t.Walls == 0 {
			continue
		}
		const edge = 4
		if t.Walls&minimap.WallUp != 0 {
			vector.DrawFilledRect(screen, x, y, tileSize, edge, colorWallEdge, false)
		}
		if t.Walls&minimap.WallDown != 0 {
			vector.DrawFilledRect(screen, x, y+tileSize-edge, tileSize, edge, colorWallEdge, false)
		}
		if t.Walls&minimap.WallLeft != 0 {
			vector.DrawFilledRect(screen, x, y, edge, tileSize, colorWallEdge, false)
		}
		if t.Walls&minimap.WallRight != 0 {
			vector.DrawFilledRect(screen, x+tileSize-edge, y, edge, tileSize, colorWallEdge, false)
		}
	}
}

// drawCharacters draws every shadow first, then the characters back to front.
func (e *EbitenRenderer) drawCharacters(screen *ebiten.Image, sprites []renderer.Sprite) {
	if e.shadow != nil {
		sw, sh := e.shadow.Bounds().Dx(), e.shadow.Bounds().Dy()
		for _, s := range sprites {
			if s.Shadow == nil || s.Shadow.Opacity <= 0 {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(-float64(sw)/2, -float64(sh)/2)
			op.GeoM.Scale(s.Shadow.Scale, s.Shadow.Scale)
			op.GeoM.Translate(s.Shadow.X, s.Shadow.Y)
			op.ColorScale.ScaleAlpha(float32(s.Shadow.Opacity) / 255)
			screen.DrawImage(e.shadow, op)
		}
	}

	face := e.getMonoFontFace()
	for _, s := range sprites {
		if s.Opacity <= 0 {
			continue
		}
		alpha := float64(s.Opacity) / 255
		cx, cy := float32(s.X), float32(s.Y-tileSize/2)
		col := spriteColor(s.Kind)
		vector.DrawFilledCircle(screen, cx, cy, tileSize*0.4, faded(col, alpha), true)
		if s.Label != "" {
			drawCentredText(screen, s.Label, s.X, s.Y-tileSize/2, faded(colorSpriteText, alpha), face)
		}
		// facing tick on the rim
		dx, dy := facingOffset(s.Facing)
		vector.DrawFilledCircle(screen, cx+dx*tileSize*0.3, cy+dy*tileSize*0.3, 4, faded(colorSpriteText, alpha), true)
	}
}

func spriteColor(k renderer.SpriteKind) color.Color {
	switch k {
	case renderer.SpriteFollower:
		return colorFollower
	case renderer.SpriteEvent:
		return colorEvent
	case renderer.SpriteVehicle:
		return colorVehicle
	}
	return colorPlayer
}

func facingOffset(d world.Direction) (float32, float32) {
	switch d {
	case world.Up:
		return 0, -1
	case world.Left:
		return -1, 0
	case world.Right:
		return 1, 0
	}
	return 0, 1
}

// drawInfo draws event info labels as small dark windows.
func (e *EbitenRenderer) drawInfo(screen *ebiten.Image, boxes []renderer.InfoBox) {
	for _, b := range boxes {
		x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
		w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
		drawPanel(screen, x, y, w, h, panelStyle{radius: 4, border: 1, fill: colorPanelBackground, outline: colorSubtle, shadow: 0.5})
		cx := float64(b.Rect.Min.X+b.Rect.Max.X) / 2
		cy := float64(b.Rect.Min.Y+b.Rect.Max.Y) / 2
		drawCentredText(screen, b.Text, cx, cy, colorText, e.getInfoFontFace(b.FontSize))
	}
}

// drawBattle stands in for the battle scene while the map is away.
func (e *EbitenRenderer) drawBattle(screen *ebiten.Image) {
	screen.Fill(colorBattle)
	drawCentredText(screen, gotext.Get("BATTLE_START"), screenWidth/2, screenHeight/2, colorDenied, e.getSansBoldTitleFontFace())
}

// drawMessages draws the message window along the bottom of the screen with
// the controls hint above it.
func (e *EbitenRenderer) drawMessages(screen *ebiten.Image, messages []string, hint string) {
	face := e.getSansFontFace()
	lineHeight := uiFontSize + 6
	if len(messages) > maxMessages {
		messages = messages[len(messages)-maxMessages:]
	}
	const margin = 12
	if len(messages) > 0 {
		h := len(messages)*lineHeight + margin*2
		y := screenHeight - margin - h
		drawPanel(screen, margin, float32(y), screenWidth-margin*2, float32(h), panelStyle{radius: 8, border: 1, fill: colorPanelBackground, outline: colorSubtle, shadow: 0.6})
		for i, msg := range messages {
			// older lines fade out
			alpha := 0.5 + 0.5*float64(i+1)/float64(len(messages))
			drawText(screen, msg, margin*2, y+margin/2+i*lineHeight, faded(colorText, alpha), face)
		}
	}
	if hint != "" {
		w, _ := text.Measure(hint, face, 0)
		x := (screenWidth - int(w)) / 2
		y := margin
		drawText(screen, hint, x, y, colorAction, face)
	}
}
