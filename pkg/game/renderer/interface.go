// Package renderer holds what the preview frontends share: the Renderer
// interface, the per-frame step and the scene a frontend draws.
package renderer

import (
	engineinput "mvminimap/pkg/engine/input"
	"mvminimap/pkg/game/gameplay"
)

// Service runs once per frame on the game loop, after the preview has ticked.
// The dev server uses it to answer queued requests.
type Service func(p *gameplay.Preview)

// Renderer defines the interface for preview frontends.
// Implementations include the Ebiten window and the terminal views.
type Renderer interface {
	// Init prepares the frontend (window, fonts, colors, terminal).
	Init() error

	// Run drives p until it quits or the frontend is closed.
	Run(p *gameplay.Preview, service Service) error
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Step advances the preview by one frame after applying intent.
func Step(p *gameplay.Preview, intent engineinput.Intent, service Service) {
	if intent.Action != engineinput.ActionNone {
		gameplay.ProcessIntent(p, intent)
	}
	gameplay.Tick(p)
	if service != nil {
		service(p)
	}
}
