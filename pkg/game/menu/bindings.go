package menu

import (
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"

	engineinput "mvminimap/pkg/engine/input"
)

// BindingMenuItem represents a menu item for a key binding.
type BindingMenuItem struct {
	Action        engineinput.Action
	NonRebindable bool
}

// GetLabel returns the display label for this binding menu item.
func (b *BindingMenuItem) GetLabel() string {
	name := engineinput.ActionName(b.Action)
	codes := engineinput.GetBindingsByAction()[b.Action]
	codeText := strings.Join(codes, ", ")
	if codeText == "" {
		codeText = gotext.Get("UNBOUND")
	}
	if b.NonRebindable {
		return fmt.Sprintf("%s: %s (%s)", name, codeText, gotext.Get("FIXED"))
	}
	return fmt.Sprintf("%s: %s", name, codeText)
}

func (b *BindingMenuItem) IsSelectable() bool { return true }

// GetHelpText returns help text for this binding.
func (b *BindingMenuItem) GetHelpText() string {
	if b.NonRebindable {
		return ""
	}
	return gotext.Get("BINDINGS_HELP_EDIT")
}

// BindingsMenuHandler lists the rebindable actions. Activating one waits for
// the next key, which becomes that action's only key.
type BindingsMenuHandler struct {
	actions []engineinput.Action
	editing engineinput.Action
}

// NewBindingsMenuHandler creates a new bindings menu handler.
func NewBindingsMenuHandler() *BindingsMenuHandler {
	return &BindingsMenuHandler{
		actions: []engineinput.Action{
			engineinput.ActionMoveUp,
			engineinput.ActionMoveDown,
			engineinput.ActionMoveLeft,
			engineinput.ActionMoveRight,
			engineinput.ActionBoard,
			engineinput.ActionGather,
			engineinput.ActionBattle,
			engineinput.ActionToggleMinimap,
			engineinput.ActionZoomIn,
			engineinput.ActionZoomOut,
			engineinput.ActionScreenshot,
		},
	}
}

func (h *BindingsMenuHandler) GetTitle() string { return gotext.Get("BINDINGS_TITLE") }

// GetInstructions returns the menu instructions.
func (h *BindingsMenuHandler) GetInstructions(selected MenuItem) string {
	if h.Capturing() {
		return gotext.Get("BINDINGS_PRESS_KEY")
	}
	if b, ok := selected.(*BindingMenuItem); ok && !b.NonRebindable {
		return gotext.Get("BINDINGS_INSTRUCTIONS_EDIT")
	}
	return gotext.Get("BINDINGS_INSTRUCTIONS")
}

// OnActivate starts editing the activated binding.
func (h *BindingsMenuHandler) OnActivate(item MenuItem, index int) (shouldClose bool, helpText string) {
	b, ok := item.(*BindingMenuItem)
	if !ok || b.NonRebindable {
		return false, ""
	}
	h.editing = b.Action
	return false, fmt.Sprintf(gotext.Get("BINDINGS_EDITING"), engineinput.ActionName(b.Action))
}

func (h *BindingsMenuHandler) OnExit() { h.editing = engineinput.ActionNone }

// Capturing reports whether a binding is being edited.
func (h *BindingsMenuHandler) Capturing() bool { return h.editing != engineinput.ActionNone }

// CaptureKey binds code to the action being edited. Escape cancels.
func (h *BindingsMenuHandler) CaptureKey(code string) string {
	action := h.editing
	h.editing = engineinput.ActionNone
	if code == "" || code == "escape" {
		return ""
	}
	if !engineinput.SetSingleBinding(action, code) {
		return fmt.Sprintf(gotext.Get("BINDINGS_RESERVED"), code)
	}
	return fmt.Sprintf(gotext.Get("BINDINGS_SET"), engineinput.ActionName(action), code)
}

// GetMenuItems returns the menu items for the bindings menu.
func (h *BindingsMenuHandler) GetMenuItems() []MenuItem {
	items := make([]MenuItem, len(h.actions))
	for i, action := range h.actions {
		items[i] = &BindingMenuItem{
			Action:        action,
			NonRebindable: isNonRebindable(action),
		}
	}
	return items
}

// isNonRebindable checks if an action cannot be rebound.
func isNonRebindable(action engineinput.Action) bool {
	return action == engineinput.ActionZoomIn ||
		action == engineinput.ActionZoomOut
}
