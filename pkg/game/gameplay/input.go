package gameplay

import (
	"github.com/leonelquinteros/gotext"

	engineinput "mvminimap/pkg/engine/input"
	"mvminimap/pkg/engine/world"
	"mvminimap/pkg/game/devtools"
	gamemenu "mvminimap/pkg/game/menu"
	"mvminimap/pkg/game/present"
)

// ProcessIntent handles a high-level input intent from the tiered input system.
func ProcessIntent(p *Preview, intent engineinput.Intent) {
	if p.Menu != nil {
		if p.Menu.Handle(intent.Action) {
			p.closeMenu()
		}
		return
	}
	if p.Scene != present.SceneMap {
		return
	}

	g := p.Game
	m := g.Session.Minimap
	switch intent.Action {
	case engineinput.ActionNone, engineinput.ActionConsole:
		return

	case engineinput.ActionMoveUp:
		move(p, world.Up)
	case engineinput.ActionMoveDown:
		move(p, world.Down)
	case engineinput.ActionMoveLeft:
		move(p, world.Left)
	case engineinput.ActionMoveRight:
		move(p, world.Right)

	case engineinput.ActionBoard:
		if !g.Board() {
			logMessage(g, gotext.Get("NOTHING_TO_BOARD"))
		}
	case engineinput.ActionGather:
		g.Gather()

	case engineinput.ActionOpenMenu:
		p.OpenMenu(gamemenu.NewGameplayMenuHandler(g))
	case engineinput.ActionBattle:
		p.StartBattle()

	case engineinput.ActionToggleMinimap:
		m.SetVisible(!m.Visible())
	case engineinput.ActionZoomIn:
		m.SetZoom(m.Zoom() + gamemenu.ZoomStep)
	case engineinput.ActionZoomOut:
		m.SetZoom(m.Zoom() - gamemenu.ZoomStep)

	case engineinput.ActionScreenshot:
		screenshot(p)
	case engineinput.ActionQuit:
		p.Quit = true
	}
}

func move(p *Preview, d world.Direction) {
	if p.Game.Move(d) {
		p.moves++
		return
	}
	if !p.Game.Player.IsMoving() {
		// turn in place against a wall, as the engine does
		p.Game.Player.Facing = d
	}
}

func screenshot(p *Preview) {
	if p.Capture == nil {
		logMessage(p.Game, gotext.Get("SCREENSHOT_UNAVAILABLE"))
		return
	}
	filename, err := devtools.SaveScreenshot(p.Capture())
	if err != nil {
		logMessage(p.Game, gotext.Get("SCREENSHOT_FAILED"), err)
		return
	}
	logMessage(p.Game, gotext.Get("SCREENSHOT_SAVED"), filename)
}
