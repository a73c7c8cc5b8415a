package menu

import (
	"fmt"

	"github.com/leonelquinteros/gotext"

	"mvminimap/pkg/game/state"
)

// ZoomStep is how much one zoom item changes the minimap zoom.
const ZoomStep = 0.5

// GameplayMenuAction represents the action type for gameplay menu items.
type GameplayMenuAction int

const (
	GameplayMenuActionResume GameplayMenuAction = iota
	GameplayMenuActionMinimap
	GameplayMenuActionZoomIn
	GameplayMenuActionZoomOut
	GameplayMenuActionFollowersFade
	GameplayMenuActionBindings
	GameplayMenuActionQuit
)

// GameplayMenuItem represents a menu item in the gameplay menu.
type GameplayMenuItem struct {
	Label  string
	Action GameplayMenuAction
}

func (m *GameplayMenuItem) GetLabel() string   { return m.Label }
func (m *GameplayMenuItem) IsSelectable() bool { return true }

// GetHelpText returns help text for this menu item.
func (m *GameplayMenuItem) GetHelpText() string {
	switch m.Action {
	case GameplayMenuActionMinimap:
		return gotext.Get("MENU_HELP_MINIMAP")
	case GameplayMenuActionZoomIn, GameplayMenuActionZoomOut:
		return gotext.Get("MENU_HELP_ZOOM")
	case GameplayMenuActionFollowersFade:
		return gotext.Get("MENU_HELP_FADE")
	case GameplayMenuActionBindings:
		return gotext.Get("MENU_HELP_BINDINGS")
	case GameplayMenuActionQuit:
		return gotext.Get("MENU_HELP_QUIT")
	}
	return ""
}

// GameplayMenuHandler handles the in-game menu. Toggles apply at once; Resume,
// Bindings and Quit close the menu and leave their action for the caller.
type GameplayMenuHandler struct {
	g              *state.Game
	selectedAction GameplayMenuAction
}

// NewGameplayMenuHandler creates a new gameplay menu handler for g.
func NewGameplayMenuHandler(g *state.Game) *GameplayMenuHandler {
	return &GameplayMenuHandler{g: g}
}

func (h *GameplayMenuHandler) GetTitle() string { return gotext.Get("MENU_TITLE") }

func (h *GameplayMenuHandler) GetInstructions(selected MenuItem) string {
	return gotext.Get("MENU_INSTRUCTIONS")
}

// OnActivate is called when an item is activated.
func (h *GameplayMenuHandler) OnActivate(item MenuItem, index int) (shouldClose bool, helpText string) {
	gameplayItem, ok := item.(*GameplayMenuItem)
	if !ok {
		return false, ""
	}
	h.selectedAction = gameplayItem.Action
	m := h.g.Session.Minimap
	switch gameplayItem.Action {
	case GameplayMenuActionMinimap:
		m.SetVisible(!m.Visible())
	case GameplayMenuActionZoomIn:
		m.SetZoom(m.Zoom() + ZoomStep)
		return false, fmt.Sprintf("%s %g", gotext.Get("ZOOM"), m.Zoom())
	case GameplayMenuActionZoomOut:
		m.SetZoom(m.Zoom() - ZoomStep)
		return false, fmt.Sprintf("%s %g", gotext.Get("ZOOM"), m.Zoom())
	case GameplayMenuActionFollowersFade:
		h.g.Fade.Enabled = !h.g.Fade.Enabled
	default:
		return true, ""
	}
	return false, ""
}

func (h *GameplayMenuHandler) OnExit() {}

// GetSelectedAction returns the last activated action.
func (h *GameplayMenuHandler) GetSelectedAction() GameplayMenuAction {
	return h.selectedAction
}

// GetMenuItems returns the menu items for the gameplay menu.
func (h *GameplayMenuHandler) GetMenuItems() []MenuItem {
	return []MenuItem{
		&GameplayMenuItem{Label: gotext.Get("MENU_RESUME"), Action: GameplayMenuActionResume},
		&GameplayMenuItem{Label: onOff(gotext.Get("MENU_MINIMAP"), h.g.Session.Minimap.Visible()), Action: GameplayMenuActionMinimap},
		&GameplayMenuItem{Label: gotext.Get("MENU_ZOOM_IN"), Action: GameplayMenuActionZoomIn},
		&GameplayMenuItem{Label: gotext.Get("MENU_ZOOM_OUT"), Action: GameplayMenuActionZoomOut},
		&GameplayMenuItem{Label: onOff(gotext.Get("MENU_FADE"), h.g.Fade.Enabled), Action: GameplayMenuActionFollowersFade},
		&GameplayMenuItem{Label: gotext.Get("MENU_BINDINGS"), Action: GameplayMenuActionBindings},
		&GameplayMenuItem{Label: gotext.Get("MENU_QUIT"), Action: GameplayMenuActionQuit},
	}
}

func onOff(label string, on bool) string {
	if on {
		return fmt.Sprintf("%s: %s", label, gotext.Get("ON"))
	}
	return fmt.Sprintf("%s: %s", label, gotext.Get("OFF"))
}
