// Package ebiten is the windowed frontend of the preview: the map with its
// characters, shadows and info labels, the minimap at its configured layer,
// the menu and a drop-down console.
package ebiten

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"mvminimap/pkg/engine/logger"
	"mvminimap/pkg/game/gameplay"
	"mvminimap/pkg/game/renderer"
)

// New creates an Ebiten renderer drawing with assets.
func New(assets *renderer.Assets) *EbitenRenderer {
	return &EbitenRenderer{
		assets:          assets,
		keyRepeatState:  make(map[string]keyRepeatInfo),
		cachedInfoFaces: make(map[int]*text.GoTextFace),
		frames:          make(map[string]*ebiten.Image),
	}
}

// Init loads the fonts and sets up the window.
func (e *EbitenRenderer) Init() error {
	var err error
	if e.monoFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF)); err != nil {
		return fmt.Errorf("load mono font: %w", err)
	}
	if e.sansFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("load sans font: %w", err)
	}
	if e.sansBoldFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		return fmt.Errorf("load bold font: %w", err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Minimap Preview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// one update per engine frame
	ebiten.SetTPS(60)
	return nil
}

// Run opens the window and drives p until it quits or the window closes.
func (e *EbitenRenderer) Run(p *gameplay.Preview, service renderer.Service) error {
	e.preview = p
	e.service = service
	if e.assets.Icons.Image != nil {
		e.icons = ebiten.NewImageFromImage(e.assets.Icons.Image)
	}
	if e.assets.Shadow != nil {
		e.shadow = ebiten.NewImageFromImage(e.assets.Shadow)
	}
	logger.For("ebiten").Info("window opening")
	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update reads input and advances the preview one frame (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	if e.preview.Quit {
		return ebiten.Termination
	}
	e.updateConsoleAnimation()
	if e.handleConsoleToggle() || e.console.Active {
		e.handleConsoleInput()
		renderer.Step(e.preview, noIntent, e.service)
		return nil
	}
	if e.captureMenuKey() {
		renderer.Step(e.preview, noIntent, e.service)
		return nil
	}

	intent := e.checkGamepadInput()
	if intent.Action == noIntent.Action {
		intent = e.checkInput()
	}
	renderer.Step(e.preview, intent, e.service)
	return nil
}

// Layout keeps the engine's screen size and lets Ebiten scale the window.
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
