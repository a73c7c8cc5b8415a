package ebiten

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "mvminimap/pkg/engine/input"
	"mvminimap/pkg/game/present"
)

var noIntent = engineinput.Intent{Action: engineinput.ActionNone}

type keyCode struct {
	key  ebiten.Key
	code string
}

// keyCodes names the keys the bindings understand.
var keyCodes = func() []keyCode {
	codes := []keyCode{
		{ebiten.KeyArrowUp, "arrow_up"},
		{ebiten.KeyArrowDown, "arrow_down"},
		{ebiten.KeyArrowLeft, "arrow_left"},
		{ebiten.KeyArrowRight, "arrow_right"},
		{ebiten.KeyEnter, "enter"},
		{ebiten.KeyNumpadEnter, "enter"},
		{ebiten.KeySpace, "space"},
		{ebiten.KeyEscape, "escape"},
		{ebiten.KeyTab, "tab"},
		{ebiten.KeyEqual, "="},
		{ebiten.KeyNumpadAdd, "+"},
		{ebiten.KeyMinus, "-"},
		{ebiten.KeyNumpadSubtract, "-"},
		{ebiten.KeyGraveAccent, "`"},
		{ebiten.KeySemicolon, ";"},
		{ebiten.KeyComma, ","},
		{ebiten.KeyPeriod, "."},
		{ebiten.KeySlash, "/"},
		{ebiten.KeyF12, "f12"},
	}
	for k := ebiten.KeyA; k <= ebiten.KeyZ; k++ {
		codes = append(codes, keyCode{k, string(rune('a' + k - ebiten.KeyA))})
	}
	for k := ebiten.KeyDigit0; k <= ebiten.KeyDigit9; k++ {
		codes = append(codes, keyCode{k, string(rune('0' + k - ebiten.KeyDigit0))})
	}
	return codes
}()

// shifted are the codes a key gives with Shift held.
var shifted = map[string]string{
	";": ":",
	"=": "+",
	"/": "?",
}

func codeFor(kc keyCode) string {
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		if s, ok := shifted[kc.code]; ok {
			return s
		}
	}
	return kc.code
}

func isMove(a engineinput.Action) bool {
	return a >= engineinput.ActionMoveUp && a <= engineinput.ActionMoveRight
}

// shouldRepeatKey checks if a key/button should trigger (initial press or repeat)
// Returns true if the key should trigger, false otherwise
func (e *EbitenRenderer) shouldRepeatKey(isPressed func() bool, code string) bool {
	now := time.Now().UnixMilli()

	pressed := isPressed()
	state, exists := e.keyRepeatState[code]

	if !pressed {
		// Key released - clean up state
		delete(e.keyRepeatState, code)
		return false
	}
	if !exists {
		// First press - record it and trigger immediately
		e.keyRepeatState[code] = keyRepeatInfo{firstPressed: now, lastRepeat: now}
		return true
	}

	// Key is held - check if we should repeat
	if now-state.firstPressed >= keyRepeatInitialDelay && now-state.lastRepeat >= keyRepeatInterval {
		state.lastRepeat = now
		e.keyRepeatState[code] = state
		return true
	}
	return false
}

// held reports whether a movement key should fire this frame. On the map the
// player keeps walking while it is down; menus step with key repeat.
func (e *EbitenRenderer) held(isPressed func() bool, code string) bool {
	if e.preview.Scene == present.SceneMap && e.preview.Menu == nil {
		e.shouldRepeatKey(isPressed, code)
		return isPressed()
	}
	return e.shouldRepeatKey(isPressed, code)
}

// captureMenuKey feeds the next key to a menu waiting for one, as the
// bindings menu does while editing. It reports whether input was taken.
func (e *EbitenRenderer) captureMenuKey() bool {
	m := e.preview.Menu
	if m == nil || !m.Capturing() {
		return false
	}
	for _, kc := range keyCodes {
		if inpututil.IsKeyJustPressed(kc.key) {
			m.Key(codeFor(kc))
			break
		}
	}
	return true
}

// checkGamepadInput checks for controller/gamepad input and returns the corresponding Intent.
// NOTE: Button indices here are tuned for common XInput-style controllers on Linux;
// mappings may vary between devices/platforms.
func (e *EbitenRenderer) checkGamepadInput() engineinput.Intent {
	var ids []ebiten.GamepadID
	ids = ebiten.AppendGamepadIDs(ids[:0])

	for _, id := range ids {
		// Axes: 0 = X (left = -1, right = +1), 1 = Y (up = -1, down = +1)
		const deadZone = 0.5
		stickX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		stickY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			stickX = ebiten.GamepadAxisValue(id, 0)
			stickY = ebiten.GamepadAxisValue(id, 1)
		}

		directions := []struct {
			pressed func() bool
			button  ebiten.GamepadButton
			code    string
		}{
			{func() bool { return stickX < -deadZone }, ebiten.GamepadButton14, "gamepad_dpad_left"},
			{func() bool { return stickX > deadZone }, ebiten.GamepadButton12, "gamepad_dpad_right"},
			{func() bool { return stickY < -deadZone }, ebiten.GamepadButton11, "gamepad_dpad_up"},
			{func() bool { return stickY > deadZone }, ebiten.GamepadButton13, "gamepad_dpad_down"},
		}
		for _, d := range directions {
			button := d.button
			stick := d.pressed
			pressed := func() bool { return stick() || ebiten.IsGamepadButtonPressed(id, button) }
			if e.held(pressed, fmt.Sprintf("gamepad_%d_%s", id, d.code)) {
				return gamepadIntent(d.code)
			}
		}

		// Face buttons:
		//  - A / Cross: 0
		//  - B / Circle: 1
		//  - Start: 7
		if inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton0) {
			return gamepadIntent("gamepad_a")
		}
		if inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton1) {
			return gamepadIntent("gamepad_b")
		}
		if inpututil.IsGamepadButtonJustPressed(id, ebiten.GamepadButton7) {
			return gamepadIntent("gamepad_start")
		}
	}
	return noIntent
}

func gamepadIntent(code string) engineinput.Intent {
	return engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
		Device:    engineinput.DeviceGamepad,
		Code:      code,
		Timestamp: time.Now(),
	}))
}

// checkInput checks for keyboard input and returns the corresponding Intent.
// Movement keys go through the bindings like everything else, so rebinding
// a direction moves its continuous walking with it.
func (e *EbitenRenderer) checkInput() engineinput.Intent {
	for _, kc := range keyCodes {
		code := codeFor(kc)
		action := engineinput.Resolve(engineinput.DeviceKeyboard, code)
		if !isMove(action) {
			continue
		}
		key := kc.key
		if e.held(func() bool { return ebiten.IsKeyPressed(key) }, "key_"+code) {
			return engineinput.Intent{Action: action}
		}
	}
	for _, kc := range keyCodes {
		if !inpututil.IsKeyJustPressed(kc.key) {
			continue
		}
		action := engineinput.Resolve(engineinput.DeviceKeyboard, codeFor(kc))
		if action != engineinput.ActionNone && !isMove(action) {
			return engineinput.Intent{Action: action}
		}
	}
	return noIntent
}
