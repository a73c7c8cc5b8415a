package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mvminimap/pkg/engine/world"
	"mvminimap/pkg/game/config"
	"mvminimap/pkg/game/minimap"
	"mvminimap/pkg/game/rmmv"
)

// testMap is 5x4 floor with a wall tile in the top-right corner.
func testMap() string {
	const w, h = 5, 4
	data := make([]int, minimap.LayerCount*w*h)
	for i := 0; i < w*h; i++ {
		data[i] = 1
	}
	data[4] = 2
	b, _ := json.Marshal(data)
	return fmt.Sprintf(`{"displayName": "Shop", "note": "", "width": %d, "height": %d, "scrollType": 0, "tilesetId": 1,
  "data": %s,
  "events": [null,
    {"id": 1, "name": "Clerk", "x": 2, "y": 2, "note": "<Marker:3>",
     "pages": [{"image": {"characterName": "People1", "direction": 2}, "priorityType": 1, "through": false,
       "list": [{"code": 108, "parameters": ["info:Shop,18"]},
                {"code": 108, "parameters": ["<KNHShadow:0,2,80>"]},
                {"code": 0, "parameters": []}]}]}]}`, w, h, b)
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "data")
	if err := os.MkdirAll(data, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"Map001.json":   testMap(),
		"Tilesets.json": `[null, {"id": 1, "mode": 1, "flags": [16, 0, 15]}]`,
		"System.json":   `{"startMapId": 1, "startX": 1, "startY": 1, "boat": {"startMapId": 1, "startX": 3, "startY": 3}}`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(data, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	p, err := rmmv.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(p, config.Default())
	if err := g.Transfer(1, 1, 1); err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	return g
}

func walk(g *Game) {
	for i := 0; i < 64 && g.Player.IsMoving(); i++ {
		g.Update()
	}
}

func TestTransfer(t *testing.T) {
	g := newTestGame(t)
	if len(g.Events) != 1 {
		t.Fatalf("Events = %d, want 1", len(g.Events))
	}
	e := g.Events[0]
	if e.Marker != 3 || e.MarkerIndex() != 3 {
		t.Errorf("event marker = %d", e.Marker)
	}
	if !e.HasInfo || e.Info.Text != "shop" || e.Info.FontSize != 18 {
		t.Errorf("event info = %+v", e.Info)
	}
	if !e.Shadow.Enabled || e.Shadow.Scale != 80 || e.Shadow.AddY != 2 {
		t.Errorf("event shadow = %+v", e.Shadow)
	}
	if got := g.Session.Minimap.MapID(); got != 1 {
		t.Errorf("minimap map = %d, want 1", got)
	}
	if len(g.Vehicles) != 1 || g.Vehicles[0].Type != "boat" {
		t.Errorf("Vehicles = %+v", g.Vehicles)
	}
	if err := g.Transfer(9, 0, 0); err == nil {
		t.Error("Transfer() to a missing map succeeded")
	}
}

func TestMove(t *testing.T) {
	g := newTestGame(t)
	if !g.Move(world.Right) {
		t.Fatal("Move(Right) from (1,1) failed")
	}
	if g.Move(world.Right) {
		t.Error("Move() while stepping should fail")
	}
	walk(g)
	if g.Player.X != 2 || g.Player.IsMoving() {
		t.Errorf("player = %+v", g.Player.Character)
	}

	if err := g.Transfer(1, 3, 0); err != nil {
		t.Fatal(err)
	}
	if g.Move(world.Right) {
		t.Error("Move() into a wall succeeded")
	}
	if g.Move(world.Up) {
		t.Error("Move() off the map succeeded")
	}
}

func TestDisplayCenter(t *testing.T) {
	g := newTestGame(t)
	x, y := locator{g}.DisplayCenter()
	if x != centerX || y != centerY {
		t.Errorf("DisplayCenter() = %v,%v, want %v,%v on a map smaller than the screen", x, y, centerX, centerY)
	}
}

func TestGatherAndFade(t *testing.T) {
	g := newTestGame(t)
	g.AddParty(2)
	g.Move(world.Right)
	walk(g)

	g.Gather()
	for i := 0; i < 100 && g.Gathering; i++ {
		g.Update()
	}
	if g.Gathering {
		t.Fatal("followers never gathered")
	}
	for _, f := range g.Followers {
		if !f.Hidden() || f.Opacity != 0 || f.X != g.Player.X {
			t.Errorf("follower %d = hidden %v opacity %v at %d", f.MemberIndex, f.Hidden(), f.Opacity, f.X)
		}
	}

	g.Move(world.Right)
	walk(g)
	if g.Followers[0].Hidden() {
		t.Error("first follower should have faded back in behind the player")
	}
	if !g.Followers[1].Hidden() {
		t.Error("second follower should wait for the first to move")
	}
}

func TestCommand(t *testing.T) {
	g := newTestGame(t)
	ok, err := g.Command("MiniMap 0 0 100 80 0 200")
	if !ok || err != nil {
		t.Fatalf("Command(MiniMap) = %v, %v", ok, err)
	}
	if got := g.Session.Minimap.Opacity(); got != 200 {
		t.Errorf("Opacity() = %d, want 200", got)
	}
	if ok, _ := g.Command("FollowersFade off"); !ok || g.Fade.Enabled {
		t.Error("FollowersFade off was not applied")
	}
	if ok, _ := g.Command("ShowPicture 1"); ok {
		t.Error("Command(ShowPicture) should not be handled")
	}
	if ok, err := g.Command("MiniMap x"); !ok || err == nil {
		t.Errorf("Command(MiniMap x) = %v, %v, want handled with error", ok, err)
	}
}

func TestSaveLoad(t *testing.T) {
	g := newTestGame(t)
	g.Command("SetMinimapZoom 3")
	g.Fade.Enabled = false
	path := filepath.Join(t.TempDir(), "file1.rpgsave.json")
	if err := g.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(b), `"minimap"`) {
		t.Fatalf("save file = %s, %v", b, err)
	}

	g.Command("SetMinimapZoom 1")
	g.Fade.Enabled = true
	scenes := g.MapScenes
	if err := g.LoadFrom(path); err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if g.Fade.Enabled {
		t.Error("Fade.Enabled after load = true, want the saved false")
	}
	if g.MapScenes != scenes+1 {
		t.Errorf("MapScenes = %d after load, want %d", g.MapScenes, scenes+1)
	}
	if got := g.Session.Minimap.Zoom(); got != 3 {
		t.Errorf("Zoom() after load = %v, want 3", got)
	}
	if got := g.Session.Minimap.Readiness(); got != minimap.Loading {
		t.Errorf("Readiness() after load = %v, want Loading", got)
	}
}

func TestBoard(t *testing.T) {
	g := newTestGame(t)
	if g.Board() {
		t.Error("Board() away from the boat succeeded")
	}
	if err := g.Transfer(1, 3, 3); err != nil {
		t.Fatal(err)
	}
	if !g.Board() || !g.Player.Riding || !g.Vehicles[0].Driving {
		t.Fatal("Board() on the boat failed")
	}
	if g.Move(world.Left) {
		t.Error("a boat should not move over floor")
	}
	if !g.Board() || g.Player.Riding {
		t.Error("Board() again should get off")
	}
}
