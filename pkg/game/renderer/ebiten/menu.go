package ebiten

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	gamemenu "mvminimap/pkg/game/menu"
)

const (
	menuCornerRadius = 12
	menuPadding      = 24
	// highlightAnimMillis is how long the highlight takes to reach a new item.
	highlightAnimMillis = 150
)

// drawMenu draws m as a panel centred on the screen, the selected item
// behind a highlight that slides between items.
func (e *EbitenRenderer) drawMenu(screen *ebiten.Image, m *gamemenu.Menu) {
	items := m.Items()
	helpText := m.HelpText()
	instructions := m.Instructions()

	face := e.getSansFontFace()
	titleFace := e.getSansBoldTitleFontFace()
	lineHeight := uiFontSize + 6
	_, textHeight := text.Measure("Ag", face, 0)

	panelW := screenWidth * 7 / 10
	panelH := int(e.menuHeight(len(items), helpText != "", instructions != ""))
	panelX := (screenWidth - panelW) / 2
	panelY := (screenHeight - panelH) / 2

	// dim whatever is behind the menu
	vector.DrawFilledRect(screen, 0, 0, screenWidth, screenHeight, color.RGBA{0, 0, 0, 120}, false)
	drawPanel(screen, float32(panelX), float32(panelY), float32(panelW), float32(panelH), panelStyle{
		radius: menuCornerRadius, border: 2, fill: colorPanelBackground, outline: colorAction, shadow: 1,
	})

	x := panelX + menuPadding
	y := panelY + menuPadding
	drawText(screen, m.Title(), x, y-titleFontSize, colorAction, titleFace)
	y += 4
	if helpText != "" {
		drawText(screen, helpText, x, y-uiFontSize, colorSubtle, e.getSansFontFace())
		y += lineHeight
	}
	y += lineHeight

	selected := m.Selected()
	if selected >= 0 && selected < len(items) {
		target := float64(y + selected*lineHeight + uiFontSize)
		hy := e.highlightY(target)
		width := e.textWidth(items[selected].GetLabel())
		const padX = 8.0
		vector.DrawFilledRect(screen, float32(float64(x)-padX), float32(hy),
			float32(width+padX*2), float32(textHeight+4), colorMenuHighlight, false)
	}

	for i, item := range items {
		col := colorText
		if !item.IsSelectable() {
			col = colorSubtle
		}
		if m.Capturing() && i == selected {
			col = colorAction
		}
		drawText(screen, item.GetLabel(), x, y+i*lineHeight, col, e.getSansFontFace())
	}

	if instructions != "" {
		iy := panelY + panelH - menuPadding - lineHeight
		drawText(screen, instructions, x, iy, colorSubtle, e.getSansFontFace())
	}
}

// highlightY eases the highlight towards target, restarting the slide when
// the selection moves.
func (e *EbitenRenderer) highlightY(target float64) float64 {
	now := time.Now().UnixMilli()
	if e.menuHighlightTargetY != target {
		if e.menuHighlightTargetY == 0 {
			e.menuHighlightY = target
		}
		e.menuHighlightFrom = e.menuHighlightY
		e.menuHighlightTargetY = target
		e.menuHighlightStart = now
	}
	elapsed := now - e.menuHighlightStart
	if elapsed >= highlightAnimMillis {
		e.menuHighlightY = target
		return target
	}
	t := easeInOut(float64(elapsed) / highlightAnimMillis)
	e.menuHighlightY = e.menuHighlightFrom + (target-e.menuHighlightFrom)*t
	return e.menuHighlightY
}

// menuHeight is the panel height for a menu of n items.
func (e *EbitenRenderer) menuHeight(n int, help, instructions bool) float64 {
	lineHeight := float64(uiFontSize + 6)
	height := float64(menuPadding*2) + titleFontSize + 4
	if help {
		height += lineHeight
	}
	height += lineHeight + float64(n)*lineHeight
	if instructions {
		height += lineHeight * 1.5
	}
	_, textHeight := text.Measure("Ag", e.getSansFontFace(), 0)
	return height + textHeight - uiFontSize + 8
}

// easeInOut provides smooth easing for animations (ease-in-out cubic)
func easeInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
