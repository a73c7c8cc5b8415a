package ebiten

import (
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	engineinput "mvminimap/pkg/engine/input"
)

// consoleAnimFrames is how long the console takes to slide open or shut.
const consoleAnimFrames = 12

// handleConsoleToggle opens the console on its binding and closes it on
// Escape or the backtick. It reports whether the console was toggled.
func (e *EbitenRenderer) handleConsoleToggle() bool {
	if e.console.Active {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyGraveAccent) {
			e.console.Toggle()
			return true
		}
		return false
	}
	if e.preview.Menu != nil {
		return false
	}
	for _, kc := range keyCodes {
		if inpututil.IsKeyJustPressed(kc.key) &&
			engineinput.Resolve(engineinput.DeviceKeyboard, codeFor(kc)) == engineinput.ActionConsole {
			e.console.Toggle()
			e.consoleOpenedFrame = true
			return true
		}
	}
	return false
}

// handleConsoleInput processes input when console is active
func (e *EbitenRenderer) handleConsoleInput() {
	if !e.console.Active {
		return
	}
	chars := ebiten.AppendInputChars(nil)
	if e.consoleOpenedFrame {
		// the key that opened the console is not typed into it
		e.consoleOpenedFrame = false
		return
	}

	switch {
	case e.shouldRepeatKey(func() bool { return ebiten.IsKeyPressed(ebiten.KeyBackspace) }, "console_backspace"):
		e.console.Backspace()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		e.console.Submit(e.preview)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		e.console.HistoryUp()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		e.console.HistoryDown()
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		e.console.ScrollUp()
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		e.console.ScrollDown()
	}

	typed := strings.Map(func(r rune) rune {
		if r == '`' || r < 32 {
			return -1
		}
		return r
	}, string(chars))
	if typed != "" {
		e.console.Type(typed)
	}
}

// updateConsoleAnimation moves the slide one frame towards open or shut.
func (e *EbitenRenderer) updateConsoleAnimation() {
	step := 1.0 / consoleAnimFrames
	if e.console.Active {
		e.consoleAnimProgress = min(e.consoleAnimProgress+step, 1)
	} else {
		e.consoleAnimProgress = max(e.consoleAnimProgress-step, 0)
	}
}

// drawConsole draws the console overlay with animation
func (e *EbitenRenderer) drawConsole(screen *ebiten.Image) {
	if e.consoleAnimProgress <= 0 {
		return
	}
	progress := easeInOut(e.consoleAnimProgress)

	// Console takes up bottom portion of screen
	consoleHeight := int(float64(screenHeight) * 0.4 * progress)
	consoleY := screenHeight - consoleHeight

	bgColor := color.RGBA{0, 0, 0, uint8(220 * progress)}
	vector.DrawFilledRect(screen, 0, float32(consoleY), screenWidth, float32(consoleHeight), bgColor, false)
	borderColor := color.RGBA{100, 100, 150, uint8(255 * progress)}
	vector.DrawFilledRect(screen, 0, float32(consoleY), screenWidth, 2, borderColor, false)

	if consoleHeight <= 20 {
		return
	}
	face := e.getMonoUIFontFace()
	lineHeight := uiFontSize + 6
	const paddingX, paddingY = 10, 10

	// Reserve space for the input line
	linesToShow := (consoleHeight - paddingY*2 - lineHeight*2) / lineHeight
	outputY := consoleY + paddingY
	textColor := color.RGBA{200, 200, 200, uint8(255 * progress)}
	for _, line := range e.console.Lines(linesToShow) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(paddingX, float64(outputY)+face.Size)
		op.ColorScale.ScaleWithColor(textColor)
		text.Draw(screen, line, face, op)
		outputY += lineHeight
	}

	cursor := "_"
	if time.Now().UnixMilli()/500%2 == 0 {
		cursor = " "
	}
	inputText := "> " + e.console.Text
	_, inputTextHeight := text.Measure(inputText+"_", face, 0)
	inputY := consoleY + consoleHeight - paddingY - int(inputTextHeight*2)

	op := &text.DrawOptions{}
	op.GeoM.Translate(paddingX, float64(inputY)+face.Size)
	op.ColorScale.ScaleWithColor(color.RGBA{255, 255, 255, uint8(255 * progress)})
	text.Draw(screen, inputText+cursor, face, op)
}
