package present

import (
	"image"
	"math"
	"testing"

	"mvminimap/pkg/engine/world"
	"mvminimap/pkg/game/config"
	"mvminimap/pkg/game/minimap"
	"mvminimap/pkg/game/overlay"
)

func TestComputeFrameFullMode(t *testing.T) {
	viewport := minimap.Rect{X: 32, Y: 32, Width: 160, Height: 128}
	f, canvas := ComputeFrame(minimap.ModeFull, viewport, 1, 80, 60, 20, 15)
	if f.Zoom != 2 {
		t.Errorf("Zoom = %v, want 2", f.Zoom)
	}
	want := minimap.Rect{X: 32, Y: 36, Width: 160, Height: 120}
	if f.Rect != want {
		t.Errorf("Rect = %+v, want %+v", f.Rect, want)
	}
	if f.XRate != 8 || f.YRate != 8 {
		t.Errorf("rates = (%v, %v), want (8, 8)", f.XRate, f.YRate)
	}
	if canvas != image.Pt(320, 240) {
		t.Errorf("canvas = %v, want (320,240)", canvas)
	}
}

func TestComputeFrameScaledMode(t *testing.T) {
	tests := []struct {
		name     string
		zoom     float64
		bw, bh   int
		wantRect minimap.Rect
	}{
		{"larger than view", 1, 400, 400, minimap.Rect{Width: 160, Height: 128}},
		{"smaller than view is centered", 1, 100, 64, minimap.Rect{X: 30, Y: 32, Width: 100, Height: 64}},
		{"zoomed", 0.5, 200, 400, minimap.Rect{X: 30, Y: 0, Width: 100, Height: 128}},
	}
	viewport := minimap.Rect{Width: 160, Height: 128}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := ComputeFrame(minimap.ModeScaled, viewport, tt.zoom, tt.bw, tt.bh, 10, 10)
			if f.Zoom != tt.zoom {
				t.Errorf("Zoom = %v, want %v", f.Zoom, tt.zoom)
			}
			if f.Rect != tt.wantRect {
				t.Errorf("Rect = %+v, want %+v", f.Rect, tt.wantRect)
			}
		})
	}
}

func TestLoopPieces(t *testing.T) {
	got := LoopPieces(image.Rect(70, 50, 90, 70), 80, 60)
	want := [4]Piece{
		{Src: image.Rect(70, 50, 80, 60), Dst: image.Pt(0, 0)},
		{Src: image.Rect(0, 50, 10, 60), Dst: image.Pt(10, 0)},
		{Src: image.Rect(70, 0, 80, 10), Dst: image.Pt(0, 10)},
		{Src: image.Rect(0, 0, 10, 10), Dst: image.Pt(10, 10)},
	}
	if got != want {
		t.Errorf("LoopPieces() = %+v, want %+v", got, want)
	}
}

func TestLoopPiecesInside(t *testing.T) {
	got := LoopPieces(image.Rect(10, 10, 30, 20), 80, 60)
	if got[0].Src != image.Rect(10, 10, 30, 20) {
		t.Errorf("main piece = %v", got[0].Src)
	}
	for i := 1; i < 4; i++ {
		if !got[i].Src.Empty() {
			t.Errorf("piece %d = %v, want empty", i, got[i].Src)
		}
	}
}

type maps struct{ data *minimap.MapData }

func (m maps) RequestMap(id int) minimap.Request[*minimap.MapData] {
	return minimap.Resolved(m.data, nil)
}

func (m maps) Tileset(int) (*minimap.Tileset, bool) { return nil, false }

type scene struct {
	active int
	player minimap.PlayerState
}

func (s *scene) ActiveMapID() int                     { return s.active }
func (s *scene) Player() minimap.PlayerState          { return s.player }
func (s *scene) DisplayCenter() (float64, float64)    { return 0, 0 }
func (s *scene) Event(int) (minimap.EventState, bool) { return minimap.EventState{}, false }
func (s *scene) Events() []minimap.EventState         { return nil }
func (s *scene) Vehicles() []minimap.VehicleState     { return nil }

type countingCanvas struct {
	*overlay.RGBACanvas
	clears *int
}

func (c countingCanvas) Clear() {
	*c.clears++
	c.RGBACanvas.Clear()
}

type fixture struct {
	params *config.Params
	scene  *scene
	m      *minimap.Minimap
	sprite *Sprite
	clears int
}

// newFixture shows a 20x15 map in full mode in a 160x128 viewport at (32, 32).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	p := config.Default()
	p.DefaultData.Mode = int(minimap.ModeFull)
	p.UpdateCount = 3
	p.BlinkDuration = 4
	data := &minimap.MapData{ID: 1, Width: 20, Height: 15, Data: make([]int, minimap.LayerCount*20*15)}

	f := &fixture{params: p, scene: &scene{active: 1}}
	f.scene.player.Character = world.NewCharacter(10, 7)
	f.m = minimap.New(p, minimap.Host{Maps: maps{data}, World: f.scene})
	f.m.Setup(1)
	f.sprite = NewSprite(f.m, 8, func(w, h int) overlay.Canvas {
		return countingCanvas{overlay.NewRGBACanvas(w, h, overlay.IconSheet{}), &f.clears}
	})
	return f
}

func TestSpriteFirstFrame(t *testing.T) {
	f := newFixture(t)
	if !f.sprite.Update() {
		t.Fatal("Update() = false for a ready map")
	}
	v := f.sprite.View()
	if v.Zoom != 2 {
		t.Errorf("Zoom = %v, want 2", v.Zoom)
	}
	if want := (minimap.Rect{X: 32, Y: 36, Width: 160, Height: 120}); v.Rect != want {
		t.Errorf("Rect = %+v, want %+v", v.Rect, want)
	}
	if w, h := f.sprite.Canvas().Size(); w != 320 || h != 240 {
		t.Errorf("canvas = %dx%d, want 320x240", w, h)
	}
	if !v.Player.Visible || v.Player.X != 116 || v.Player.Y != 96 {
		t.Errorf("Player = %+v, want visible at (116, 96)", v.Player)
	}
	if v.Player.Icon != f.params.Player.Index || v.Player.Rotation != 0 {
		t.Errorf("Player = %+v, want the unturned player marker", v.Player)
	}
	if v.Overlay != image.Rect(0, 0, 160, 120) {
		t.Errorf("Overlay = %v", v.Overlay)
	}
	if v.TerrainOrigin != image.Pt(32, 36) {
		t.Errorf("TerrainOrigin = %v, want (32,36)", v.TerrainOrigin)
	}
	if v.Terrain[0].Src != image.Rect(0, 0, 80, 60) {
		t.Errorf("Terrain[0] = %+v", v.Terrain[0])
	}
}

func TestSpriteRidingTurnsIcon(t *testing.T) {
	f := newFixture(t)
	f.scene.player.Riding = true
	f.scene.player.Facing = world.Left
	f.sprite.Update()

	p := f.sprite.View().Player
	if p.Icon != f.params.VehicleOn.Index {
		t.Errorf("Icon = %d, want vehicle marker %d", p.Icon, f.params.VehicleOn.Index)
	}
	if math.Abs(p.Rotation-3*math.Pi/2) > 1e-9 {
		t.Errorf("Rotation = %v, want 3π/2", p.Rotation)
	}
}

func TestSpritePlayerHiddenOnOtherMap(t *testing.T) {
	f := newFixture(t)
	f.scene.active = 2
	f.sprite.Update()
	if f.sprite.View().Player.Visible {
		t.Error("player icon visible while on another map")
	}
}

func TestSpriteMarkerRefresh(t *testing.T) {
	f := newFixture(t)
	f.sprite.Update()
	if f.clears != 2 {
		t.Fatalf("clears after first frame = %d, want 2", f.clears)
	}
	f.sprite.Update()
	if got := f.sprite.View().OverlayOpacity; got != 240 {
		t.Errorf("OverlayOpacity = %d, want 240", got)
	}
	f.sprite.Update()
	if f.clears != 2 {
		t.Errorf("clears = %d before the period, want 2", f.clears)
	}
	f.sprite.Update()
	if f.clears != 3 {
		t.Errorf("clears = %d after the period, want 3", f.clears)
	}

	f.m.SetMarking(1, minimap.Marking{MapID: 1, Kind: minimap.CircleAtPoint, X: 3, Y: 3, Radius: 1, Color: 1})
	f.sprite.Update()
	if f.clears != 4 {
		t.Errorf("clears = %d after a marking change, want 4", f.clears)
	}
	if f.sprite.LastDraws() != 1 {
		t.Errorf("LastDraws() = %d, want 1", f.sprite.LastDraws())
	}
}

func TestSpriteLeaveAndEnter(t *testing.T) {
	f := newFixture(t)
	f.sprite.Update()
	f.sprite.Leave(SceneMenu)
	if f.sprite.Update() {
		t.Error("Update() = true after leaving for the menu")
	}
	f.sprite.Enter()
	if !f.sprite.Update() {
		t.Error("Update() = false after entering a map scene")
	}

	f.params.HideNextScene = false
	f.sprite.Leave(SceneBattle)
	if !f.sprite.Update() {
		t.Error("Update() = false with hiding disabled")
	}
}

func TestSpriteReloadsOnMapChange(t *testing.T) {
	f := newFixture(t)
	f.sprite.Update()
	first := f.sprite.Base()
	f.m.Clear()
	if f.sprite.Update() {
		t.Error("Update() = true with no map")
	}
	f.m.Setup(1)
	f.sprite.Update()
	if f.sprite.Base() == nil || f.sprite.Base() == first {
		t.Error("terrain image was not rebuilt after the map changed")
	}
}
