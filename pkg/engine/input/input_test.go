package input

import "testing"

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte{0x1b, '[', 'A'}, "arrow_up"},
		{[]byte{0x1b, 'O', 'D'}, "arrow_left"},
		{[]byte{0x1b}, "escape"},
		{[]byte{0x1b, '[', 'Z'}, ""},
		{[]byte{'\r'}, "enter"},
		{[]byte{'G'}, "g"},
		{[]byte{3}, "ctrl+c"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := DecodeKey(tt.in); got != tt.want {
			t.Errorf("DecodeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve(DeviceKeyboard, "arrow_up"); got != ActionMoveUp {
		t.Errorf("Resolve(arrow_up) = %v, want %v", ActionName(got), ActionName(ActionMoveUp))
	}
	if got := Resolve(DeviceKeyboard, "nothing"); got != ActionNone {
		t.Errorf("Resolve(nothing) = %v, want None", ActionName(got))
	}
}

func TestParseAction(t *testing.T) {
	if a, ok := ParseAction("togglemini map"); !ok || a != ActionToggleMinimap {
		t.Errorf("ParseAction(togglemini map) = %v, %v", a, ok)
	}
	if _, ok := ParseAction("fly"); ok {
		t.Error("ParseAction(fly) should fail")
	}
}

func TestSetSingleBinding(t *testing.T) {
	SetSingleBinding(ActionGather, "f")
	defer SetSingleBinding(ActionGather, "g")

	if got := Resolve(DeviceKeyboard, "f"); got != ActionGather {
		t.Errorf("Resolve(f) = %v, want Gather", ActionName(got))
	}
	if got := Resolve(DeviceKeyboard, "g"); got != ActionNone {
		t.Errorf("Resolve(g) after rebinding = %v, want None", ActionName(got))
	}

	if SetSingleBinding(ActionQuit, "escape") {
		t.Error("SetSingleBinding(Quit, escape) = true, want false")
	}
	if got := Resolve(DeviceKeyboard, "escape"); got != ActionOpenMenu {
		t.Errorf("reserved escape rebound to %v", ActionName(got))
	}
	SetSingleBinding(ActionQuit, "q")
}
