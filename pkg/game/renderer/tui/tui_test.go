package tui

import (
	"strings"
	"testing"

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

func TestPrint(t *testing.T) {
	p := newPreview(t)
	tr := New()
	if err := tr.Init(); err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	tr.Print(&b, p)
	out := b.String()
	if !strings.Contains(out, "(1)") {
		t.Errorf("Print() has no map header:\n%s", out)
	}
	if !strings.Contains(out, "@") {
		t.Errorf("Print() has no player:\n%s", out)
	}
}

func TestSettle(t *testing.T) {
	p := newPreview(t)
	Settle(p, nil)
	if busy(p) {
		t.Error("busy after settling")
	}
}
