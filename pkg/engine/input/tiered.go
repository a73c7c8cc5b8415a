package input

import (
	"sort"
	"sync"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceGamepad
	DeviceTerminal
)

// Action represents a high‑level intent in the preview.
type Action int

const (
	ActionNone Action = iota

	// Movement
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight

	// Party
	ActionBoard  // get on or off the vehicle underfoot
	ActionGather // call the followers onto the player

	// Scenes
	ActionOpenMenu
	ActionBattle

	// Minimap
	ActionToggleMinimap
	ActionZoomIn
	ActionZoomOut

	// Meta / UI
	ActionConsole
	ActionScreenshot
	ActionQuit
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "arrow_up", "gamepad_a").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

var (
	bindingsMu sync.RWMutex
	// bindings maps raw codes to actions. Multiple codes may point to the same Action.
	bindings = map[string]Action{
		"arrow_up":    ActionMoveUp,
		"k":           ActionMoveUp,
		"arrow_down":  ActionMoveDown,
		"j":           ActionMoveDown,
		"arrow_left":  ActionMoveLeft,
		"h":           ActionMoveLeft,
		"arrow_right": ActionMoveRight,
		"l":           ActionMoveRight,

		"enter": ActionBoard,
		"space": ActionBoard,
		"g":     ActionGather,

		"escape": ActionOpenMenu,
		"x":      ActionOpenMenu,
		"b":      ActionBattle,

		"tab": ActionToggleMinimap,
		"m":   ActionToggleMinimap,
		"=":   ActionZoomIn,
		"+":   ActionZoomIn,
		"-":   ActionZoomOut,

		"`":   ActionConsole,
		":":   ActionConsole,
		"f12": ActionScreenshot,
		"p":   ActionScreenshot,
		"q":   ActionQuit,

		"gamepad_dpad_up":    ActionMoveUp,
		"gamepad_dpad_down":  ActionMoveDown,
		"gamepad_dpad_left":  ActionMoveLeft,
		"gamepad_dpad_right": ActionMoveRight,
		"gamepad_a":          ActionBoard,
		"gamepad_b":          ActionOpenMenu,
		"gamepad_start":      ActionOpenMenu,
	}
)

// reserved codes keep their action whatever gets rebound.
var reserved = map[string]bool{
	"arrow_up":    true,
	"arrow_down":  true,
	"arrow_left":  true,
	"arrow_right": true,
	"escape":      true,
	"`":           true,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// Resolve maps a raw code straight to its action.
func Resolve(device Device, code string) Action {
	return MapToIntent(NewDebouncedInput(RawInput{Device: device, Code: code, Timestamp: time.Now()})).Action
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveUp:
		return "Move Up"
	case ActionMoveDown:
		return "Move Down"
	case ActionMoveLeft:
		return "Move Left"
	case ActionMoveRight:
		return "Move Right"
	case ActionBoard:
		return "Board"
	case ActionGather:
		return "Gather"
	case ActionOpenMenu:
		return "Open Menu"
	case ActionBattle:
		return "Battle"
	case ActionToggleMinimap:
		return "Toggle Minimap"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	case ActionConsole:
		return "Console"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// ParseAction finds an action by the name ActionName gives it, ignoring case
// and spaces.
func ParseAction(name string) (Action, bool) {
	want := squash(name)
	for a := ActionMoveUp; a <= ActionQuit; a++ {
		if squash(ActionName(a)) == want {
			return a, true
		}
	}
	return ActionNone, false
}

func squash(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			continue
		case c >= 'A' && c <= 'Z':
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single
// code. Reserved codes are neither removed nor rebound; it reports false when
// code is reserved and the action was left without its own key.
func SetSingleBinding(action Action, code string) bool {
	bindingsMu.Lock()
	defer bindingsMu.Unlock()
	if reserved[code] {
		return false
	}
	for c, a := range bindings {
		if a == action && !reserved[c] {
			delete(bindings, c)
		}
	}
	if code != "" {
		bindings[code] = action
	}
	return true
}
