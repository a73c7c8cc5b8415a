package termview

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"mvminimap/pkg/engine/input"
	"mvminimap/pkg/game/config"
	"mvminimap/pkg/game/devtools"
	"mvminimap/pkg/game/gameplay"
	"mvminimap/pkg/game/overlay"
	"mvminimap/pkg/game/present"
	"mvminimap/pkg/game/rmmv"
)

func newPreview(t *testing.T) *gameplay.Preview {
	t.Helper()
	dir := t.TempDir()
	if err := devtools.WriteDevProject(dir); err != nil {
		t.Fatal(err)
	}
	proj, err := rmmv.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	g, err := gameplay.BuildGame(proj, config.Default(), 0)
	if err != nil {
		t.Fatal(err)
	}
	s := present.NewSprite(g.Session.Minimap, 16, func(w, h int) overlay.Canvas {
		return overlay.NewRGBACanvas(w, h, overlay.IconSheet{})
	})
	return gameplay.NewPreview(g, s)
}

func TestKeyCode(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "arrow_up"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "space"},
		{tcell.NewEventKey(tcell.KeyRune, 'M', tcell.ModNone), "m"},
		{tcell.NewEventKey(tcell.KeyRune, '`', tcell.ModNone), "`"},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), ""},
	}
	for _, tt := range tests {
		if got := keyCode(tt.ev); got != tt.want {
			t.Errorf("keyCode(%v) = %q, want %q", tt.ev.Name(), got, tt.want)
		}
	}
}

func TestDrawMap(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(100, 40)

	v := &Viewer{screen: screen}
	p := newPreview(t)
	v.draw(p)

	found := false
	for y := 0; y < 40 && !found; y++ {
		for x := 0; x < 40; x++ {
			if r, _, _, _ := screen.GetContent(x, y); r == '@' {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("player not drawn on the map")
	}
}

func TestConsoleKeys(t *testing.T) {
	v := &Viewer{}
	p := newPreview(t)
	if _, ok := v.handleKey(p, tcell.NewEventKey(tcell.KeyRune, '`', tcell.ModNone)); ok {
		t.Fatal("console key produced an intent")
	}
	if !v.console.Active {
		t.Fatal("console did not open")
	}
	for _, r := range "var 2 5" {
		v.handleKey(p, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	v.handleKey(p, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if got := p.Game.Vars.Value(2); got != 5 {
		t.Errorf("v[2] = %g, want 5", got)
	}
	v.handleKey(p, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if v.console.Active {
		t.Error("Escape left the console open")
	}
	intent, ok := v.handleKey(p, tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone))
	if !ok || intent.Action != input.ActionToggleMinimap {
		t.Errorf("m = %v, want toggle minimap", intent)
	}
}
