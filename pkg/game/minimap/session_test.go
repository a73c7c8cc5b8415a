package minimap

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"mvminimap/pkg/game/config"
)

func newTestSession(maps *fakeMaps) (*Session, *fakeWorld) {
	p := config.Default()
	w := &fakeWorld{active: 1, events: map[int]EventState{}}
	w.placePlayer(3, 3)
	s := NewSession(p, Host{Maps: maps, Images: &fakeImages{}, World: w}, VariableMap{1: 2})
	return s, w
}

func testMaps() *fakeMaps {
	return &fakeMaps{
		maps: map[int]*MapData{
			1: newMapData(1, 10, 8, ScrollNone),
			2: newMapData(2, 12, 12, ScrollLoopBoth),
		},
		tilesets: map[int]*Tileset{1: {ID: 1, Mode: 1}},
	}
}

func TestReadinessLifecycle(t *testing.T) {
	maps := testMaps()
	maps.deferred = true
	s, _ := newTestSession(maps)
	m := s.Minimap

	if m.Readiness() != Unloaded {
		t.Fatalf("Readiness() = %v, want unloaded", m.Readiness())
	}
	s.OnMapSetup(1)
	if m.Readiness() != Loading {
		t.Fatalf("Readiness() = %v, want loading", m.Readiness())
	}
	if m.Enabled() {
		t.Error("Enabled() = true while loading")
	}
	if _, ok := m.Bitmap(); ok {
		t.Error("Bitmap() available while loading")
	}

	maps.release()
	if !m.IsReady() || m.Readiness() != Ready {
		t.Fatalf("Readiness() = %v after release, want ready", m.Readiness())
	}
	if !m.Enabled() {
		t.Error("Enabled() = false once ready")
	}
	img, ok := m.Bitmap()
	if !ok {
		t.Fatal("Bitmap() not available once ready")
	}
	if got := img.Bounds().Size(); got != image.Pt(40, 32) {
		t.Errorf("Bitmap() size = %v, want 40x32", got)
	}
}

func TestSetupSameMapIsNoop(t *testing.T) {
	maps := testMaps()
	s, _ := newTestSession(maps)
	s.OnMapSetup(1)
	gen := s.Minimap.Generation()
	s.OnMapSetup(1)
	if s.Minimap.Generation() != gen || maps.requests != 1 {
		t.Errorf("Setup(same map) reloaded: generation %d -> %d, %d requests", gen, s.Minimap.Generation(), maps.requests)
	}
}

func TestMapOutsideListClears(t *testing.T) {
	s, _ := newTestSession(testMaps())
	s.OnMapSetup(1)
	s.Minimap.IsReady()
	s.OnMapSetup(42)
	if s.Minimap.MapID() != 0 || s.Minimap.Readiness() != Unloaded {
		t.Errorf("after leaving the list: MapID = %d, Readiness = %v", s.Minimap.MapID(), s.Minimap.Readiness())
	}
	if s.Minimap.Enabled() {
		t.Error("Enabled() = true with no map")
	}
}

func TestLoadFailureStaysHidden(t *testing.T) {
	s, _ := newTestSession(testMaps())
	s.Minimap.Setup(3)
	if s.Minimap.IsReady() {
		t.Error("IsReady() = true for a map that failed to load")
	}
	if s.Minimap.Readiness() != Unloaded {
		t.Errorf("Readiness() = %v, want unloaded", s.Minimap.Readiness())
	}
}

func TestZoomMetaOverride(t *testing.T) {
	maps := testMaps()
	maps.maps[1].Meta["MinimapZoom"] = "2.5"
	s, _ := newTestSession(maps)
	s.OnMapSetup(1)
	s.Minimap.IsReady()
	if got := s.Minimap.Zoom(); got != 2.5 {
		t.Errorf("Zoom() = %v, want 2.5", got)
	}
}

func TestExplicitImageOverride(t *testing.T) {
	maps := testMaps()
	maps.maps[1].Meta["Minimap"] = "Town"
	s, _ := newTestSession(maps)
	town := image.NewRGBA(image.Rect(0, 0, 64, 48))
	s.Minimap.Attach(Host{
		Maps:   maps,
		Images: &fakeImages{images: map[string]image.Image{"Town": town}},
		World:  &fakeWorld{},
	})
	s.OnMapSetup(1)

	img, ok := s.Minimap.Bitmap()
	if !ok || img != image.Image(town) {
		t.Errorf("Bitmap() = %v, %v, want the named image", img, ok)
	}
}

func TestExecAliases(t *testing.T) {
	maps := testMaps()
	s, _ := newTestSession(maps)
	s.params.Commands["HideMiniMap"] = "HideMM"
	s = NewSession(s.params, Host{Maps: maps, World: &fakeWorld{}}, nil)

	for _, name := range []string{"HideMM", "HideMiniMap"} {
		s.Minimap.SetVisible(true)
		handled, err := s.Exec(name, nil)
		if !handled || err != nil {
			t.Fatalf("Exec(%s) = %v, %v", name, handled, err)
		}
		if s.Minimap.Visible() {
			t.Errorf("Exec(%s) left the minimap visible", name)
		}
	}
}

func TestExecUnknownAndBadArgs(t *testing.T) {
	s, _ := newTestSession(testMaps())
	if handled, err := s.Exec("ShowPicture", []string{"1"}); handled || err != nil {
		t.Errorf("Exec(ShowPicture) = %v, %v, want not handled", handled, err)
	}
	if handled, err := s.Exec("ChangeMinimap", []string{"x"}); !handled || !errors.Is(err, ErrBadArgument) {
		t.Errorf("Exec(ChangeMinimap x) = %v, %v, want ErrBadArgument", handled, err)
	}
}

func TestExecUsesVariables(t *testing.T) {
	s, _ := newTestSession(testMaps())
	if _, err := s.Exec("ChangeMinimap", []string{"v[1]"}); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if got := s.Minimap.MapID(); got != 2 {
		t.Errorf("MapID() = %d, want 2 from variable 1", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	maps := testMaps()
	s, _ := newTestSession(maps)
	s.OnMapSetup(1)
	s.Minimap.IsReady()
	s.Minimap.ApplyFrame(Frame{Zoom: 2, Rect: Rect{X: 4, Y: 4, Width: 40, Height: 30}, XRate: 8, YRate: 8})
	s.Exec("MiniMap", []string{"8", "8", "80", "60", "1", "200", "2"})
	s.Exec("MarkingCirPos", []string{"3", "0", "4", "5", "1", "2"})
	s.Exec("MarkingIcoEve", []string{"9", "0", "1", "6"})
	s.Exec("SetMinimapScroll", []string{"3", "12"})
	s.Exec("StartMinimapScroll", []string{"2", "2"})
	s.Exec("SetMinimapFrame", []string{"Gold"})
	s.Minimap.Tick()

	saved, err := s.Save()
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	restored, _ := newTestSession(maps)
	if err := restored.Load(saved); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	again, err := restored.Save()
	if err != nil {
		t.Fatalf("Save() after load error = %v", err)
	}
	if !bytes.Equal(saved, again) {
		t.Errorf("round trip changed state:\n got %s\nwant %s", again, saved)
	}

	if restored.Minimap.Readiness() != Unloaded {
		t.Errorf("Readiness() = %v right after load, want unloaded", restored.Minimap.Readiness())
	}
	restored.OnSceneLoaded()
	if !restored.Minimap.IsReady() || restored.Minimap.MapID() != 1 {
		t.Errorf("after scene load: ready = %v, map = %d", restored.Minimap.IsReady(), restored.Minimap.MapID())
	}
}

func TestGoRequest(t *testing.T) {
	release := make(chan struct{})
	r := Go(func() (int, error) {
		<-release
		return 7, nil
	})
	if r.Done() {
		t.Fatal("Done() = true before the work finished")
	}
	close(release)
	for !r.Done() {
	}
	if v, err := r.Result(); v != 7 || err != nil {
		t.Errorf("Result() = %d, %v, want 7, nil", v, err)
	}
}
