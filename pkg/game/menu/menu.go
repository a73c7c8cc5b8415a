// Package menu provides a generic menu system for the preview.
package menu

import (
	engineinput "mvminimap/pkg/engine/input"
)

// MenuItem represents a single item in a menu.
type MenuItem interface {
	// GetLabel returns the display label for this menu item.
	GetLabel() string
	// IsSelectable returns whether this item can be selected.
	IsSelectable() bool
	// GetHelpText returns optional help text for this item.
	GetHelpText() string
}

// MenuHandler handles menu item selection and activation.
type MenuHandler interface {
	// OnActivate is called when an item is activated (e.g., Enter pressed).
	// Returns true if the menu should close, and any help text to display.
	OnActivate(item MenuItem, index int) (shouldClose bool, helpText string)
	// OnExit is called when the menu is exited.
	OnExit()
	// GetTitle returns the menu title.
	GetTitle() string
	// GetInstructions returns the menu instructions.
	GetInstructions(selected MenuItem) string
	// GetMenuItems is called every frame so the menu can refresh.
	GetMenuItems() []MenuItem
}

// KeyCapturer is implemented by handlers that take the next raw key code,
// as the bindings menu does while editing a binding.
type KeyCapturer interface {
	Capturing() bool
	CaptureKey(code string) (helpText string)
}

// Menu is an open menu. Unlike a modal loop it is fed one action per frame by
// the game loop and drawn by whichever renderer is current.
type Menu struct {
	handler  MenuHandler
	items    []MenuItem
	selected int
	helpText string
}

// Open shows a menu for handler with the first selectable item selected.
func Open(handler MenuHandler) *Menu {
	m := &Menu{handler: handler}
	m.refresh()
	m.selected = m.firstSelectable()
	return m
}

// Handler returns the menu's handler.
func (m *Menu) Handler() MenuHandler { return m.handler }

// Title returns the menu title.
func (m *Menu) Title() string { return m.handler.GetTitle() }

// Items returns the items as of the last action.
func (m *Menu) Items() []MenuItem { return m.items }

// Selected returns the selected index.
func (m *Menu) Selected() int { return m.selected }

// HelpText returns the message left by the last activation, or the selected
// item's own help.
func (m *Menu) HelpText() string {
	if m.helpText != "" {
		return m.helpText
	}
	if item := m.selectedItem(); item != nil {
		return item.GetHelpText()
	}
	return ""
}

// Instructions returns the handler's instructions for the selected item.
func (m *Menu) Instructions() string {
	return m.handler.GetInstructions(m.selectedItem())
}

// Capturing reports whether the menu is waiting for a raw key code.
func (m *Menu) Capturing() bool {
	kc, ok := m.handler.(KeyCapturer)
	return ok && kc.Capturing()
}

// Key passes a raw key code to a capturing handler.
func (m *Menu) Key(code string) {
	if kc, ok := m.handler.(KeyCapturer); ok && kc.Capturing() {
		m.helpText = kc.CaptureKey(code)
		m.refresh()
	}
}

// Handle applies one action and reports whether the menu closed.
func (m *Menu) Handle(action engineinput.Action) (closed bool) {
	m.refresh()
	switch action {
	case engineinput.ActionMoveUp:
		m.step(-1)
	case engineinput.ActionMoveDown:
		m.step(1)
	case engineinput.ActionBoard:
		// Activate selected item
		item := m.selectedItem()
		if item == nil || !item.IsSelectable() {
			return false
		}
		shouldClose, helpText := m.handler.OnActivate(item, m.selected)
		m.helpText = helpText
		if shouldClose {
			m.handler.OnExit()
			return true
		}
		m.refresh()
	case engineinput.ActionOpenMenu, engineinput.ActionQuit:
		m.handler.OnExit()
		return true
	}
	return false
}

// step moves the selection to the next selectable item in dir, wrapping
// around the ends.
func (m *Menu) step(dir int) {
	n := len(m.items)
	for i := 1; i < n; i++ {
		j := (m.selected + dir*i + n) % n
		if m.items[j].IsSelectable() {
			m.selected = j
			m.helpText = ""
			return
		}
	}
}

func (m *Menu) refresh() {
	m.items = m.handler.GetMenuItems()
	if m.selected >= len(m.items) || (len(m.items) > 0 && !m.items[m.selected].IsSelectable()) {
		m.selected = m.firstSelectable()
	}
}

func (m *Menu) firstSelectable() int {
	for i, item := range m.items {
		if item.IsSelectable() {
			return i
		}
	}
	return 0
}

func (m *Menu) selectedItem() MenuItem {
	if m.selected >= 0 && m.selected < len(m.items) {
		return m.items[m.selected]
	}
	return nil
}
