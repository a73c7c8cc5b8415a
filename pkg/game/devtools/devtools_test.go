package devtools

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"mvminimap/pkg/game/config"
	"mvminimap/pkg/game/generator"
	"mvminimap/pkg/game/minimap"
	"mvminimap/pkg/game/present"
	"mvminimap/pkg/game/rmmv"
	"mvminimap/pkg/game/state"
)

func newDevGame(t *testing.T) *state.Game {
	t.Helper()
	dir := t.TempDir()
	if err := WriteDevProject(dir); err != nil {
		t.Fatalf("WriteDevProject() error = %v", err)
	}
	p, err := rmmv.Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	g := state.NewGame(p, config.Default())
	if err := g.Transfer(1, 4, 4); err != nil {
		t.Fatalf("Transfer() error = %v", err)
	}
	return g
}

func TestDevProjectTerrain(t *testing.T) {
	g := newDevGame(t)
	town := g.Terrain()
	tests := []struct {
		x, y int
		want minimap.Terrain
	}{
		{0, 0, minimap.TerrainWall},
		{5, 5, minimap.TerrainFloor},
		{4, 12, minimap.TerrainRiver},
		{15, 12, minimap.TerrainShallow},
		{5, 18, minimap.TerrainBush},
		{26, 19, minimap.TerrainLadder},
		{23, 6, minimap.TerrainCounter},
		{11, 8, minimap.TerrainWall},
	}
	for _, tt := range tests {
		if got, _ := town.At(tt.x, tt.y); got != tt.want {
			t.Errorf("town At(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if _, dirs := town.At(22, 4); dirs != minimap.WallUp {
		t.Errorf("town At(22, 4) wall bits = %#x, want %#x", dirs, minimap.WallUp)
	}

	if err := g.Transfer(2, 14, 13); err != nil {
		t.Fatalf("Transfer(2) error = %v", err)
	}
	field := g.Terrain()
	fieldTests := []struct {
		x, y int
		want minimap.Terrain
	}{
		{0, 0, minimap.TerrainSea},
		{9, 5, minimap.TerrainLand},
		{13, 7, minimap.TerrainForest},
		{25, 9, minimap.TerrainHill},
		{31, 15, minimap.TerrainMountain},
		{11, 26, minimap.TerrainFord},
	}
	for _, tt := range fieldTests {
		if got, _ := field.At(tt.x, tt.y); got != tt.want {
			t.Errorf("field At(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if !g.Map.LoopHorizontal() || g.Map.LoopVertical() {
		t.Errorf("field loops = %v/%v, want horizontal only", g.Map.LoopHorizontal(), g.Map.LoopVertical())
	}
}

func TestDevProjectEvents(t *testing.T) {
	g := newDevGame(t)
	if len(g.Events) != 4 {
		t.Fatalf("Events = %d, want 4", len(g.Events))
	}
	markers := map[string]int{}
	for _, e := range g.Events {
		markers[e.Name] = e.Marker
	}
	want := map[string]int{"Clerk": 3, "Chest": 4, "Old Man": -1, "Gate": 5}
	for name, m := range want {
		if markers[name] != m {
			t.Errorf("%s marker = %d, want %d", name, markers[name], m)
		}
	}
	for _, e := range g.Events {
		if !e.HasInfo {
			t.Errorf("%s has no info label", e.Name)
		}
	}
}

func TestDevProjectDungeon(t *testing.T) {
	g := newDevGame(t)
	l := generator.Generate(40, 30, DevDungeonSeed)
	if err := g.Transfer(3, l.StartX, l.StartY); err != nil {
		t.Fatalf("Transfer(3) error = %v", err)
	}
	dungeon := g.Terrain()
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			want := minimap.TerrainWall
			switch {
			case x == l.StartX && y == l.StartY:
				want = minimap.TerrainLadder
			case l.IsFloor(x, y):
				want = minimap.TerrainFloor
			}
			if got, _ := dungeon.At(x, y); got != want {
				t.Fatalf("dungeon At(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if len(g.Events) == 0 || g.Events[0].Name != "Stairs" {
		t.Fatalf("Events = %+v, want the stairs first", g.Events)
	}
	if e := g.Events[0]; e.X != l.ExitX || e.Y != l.ExitY || e.Marker != 5 {
		t.Errorf("stairs at (%d,%d) marker %d, want (%d,%d) marker 5", e.X, e.Y, e.Marker, l.ExitX, l.ExitY)
	}
}

func TestTerrainSymbol(t *testing.T) {
	tests := []struct {
		in   minimap.Terrain
		want rune
	}{
		{minimap.TerrainFloor, '.'},
		{minimap.TerrainSea, '~'},
		{minimap.TerrainWall, '#'},
		{minimap.Terrain(99), '?'},
	}
	for _, tt := range tests {
		if got := TerrainSymbol(tt.in); got != tt.want {
			t.Errorf("TerrainSymbol(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteTerrain(t *testing.T) {
	g := newDevGame(t)
	var buf bytes.Buffer
	if err := WriteTerrain(&buf, g); err != nil {
		t.Fatalf("WriteTerrain() error = %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 24 {
		t.Fatalf("lines = %d, want 24", len(lines))
	}
	if want := "#...@.E"; !strings.HasPrefix(lines[4], want) {
		t.Errorf("row 4 = %q, want prefix %q", lines[4], want)
	}
	if lines[0] != strings.Repeat("#", 32) {
		t.Errorf("row 0 = %q, want all walls", lines[0])
	}
}

var red = color.RGBA{R: 255, A: 255}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestCompose(t *testing.T) {
	v := present.View{
		Visible:       true,
		Rect:          minimap.Rect{X: 10, Y: 10, Width: 8, Height: 8},
		Zoom:          2,
		Opacity:       255,
		TerrainOrigin: image.Pt(10, 10),
	}
	v.Terrain[0] = present.Piece{Src: image.Rect(0, 0, 4, 4)}
	blue := color.RGBA{B: 255, A: 255}
	img := Compose(v, Layers{Terrain: solid(4, 4, red), Frame: solid(4, 4, blue)})

	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("Compose() bounds = %v, want 8x8", b)
	}
	if got := img.RGBAAt(0, 0); got != red {
		t.Errorf("corner = %v, want %v", got, red)
	}
	if got := img.RGBAAt(7, 7); got != red {
		t.Errorf("far corner = %v, want %v", got, red)
	}
	if got := img.RGBAAt(4, 4); got != blue {
		t.Errorf("centre = %v, want frame colour %v", got, blue)
	}

	v.Visible = false
	if got := Compose(v, Layers{Terrain: solid(4, 4, red)}).RGBAAt(0, 0); got.A != 0 {
		t.Errorf("hidden minimap pixel = %v, want transparent", got)
	}
}

func TestComposeOpacity(t *testing.T) {
	v := present.View{
		Visible: true,
		Rect:    minimap.Rect{Width: 4, Height: 4},
		Zoom:    1,
		Opacity: 0,
	}
	v.Terrain[0] = present.Piece{Src: image.Rect(0, 0, 4, 4)}
	if got := Compose(v, Layers{Terrain: solid(4, 4, red)}).RGBAAt(1, 1); got.A != 0 {
		t.Errorf("opacity 0 pixel = %v, want transparent", got)
	}
}

// loop plays the game loop until the returned stop is called.
func loop(s *Server, run Runner, snap Snapshot, capture func() image.Image) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			case <-time.After(time.Millisecond):
			}
			s.Service(run, snap, capture)
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}

func echo(line string) Result {
	if line == "nope" {
		return Result{}
	}
	return Result{Handled: true, Output: []string{"ran " + line}}
}

func TestServerState(t *testing.T) {
	s := NewServer()
	s.Service(echo, Snapshot{Frame: 7, MapName: "Town"}, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var got Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Frame != 7 || got.MapName != "Town" {
		t.Errorf("GET /state = %+v", got)
	}
}

func TestServerCommands(t *testing.T) {
	s := NewServer()
	stop := loop(s, echo, Snapshot{}, nil)
	defer stop()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	tests := []struct {
		body       string
		wantStatus int
		wantOutput string
	}{
		{`{"command": "minimap zoom 2"}`, http.StatusOK, "ran minimap zoom 2"},
		{`{"command": "nope"}`, http.StatusNotFound, ""},
		{`{"command": "  "}`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		resp, err := http.Post(ts.URL+"/commands", "application/json", strings.NewReader(tt.body))
		if err != nil {
			t.Fatal(err)
		}
		var res Result
		json.NewDecoder(resp.Body).Decode(&res)
		resp.Body.Close()
		if resp.StatusCode != tt.wantStatus {
			t.Errorf("POST %s status = %d, want %d", tt.body, resp.StatusCode, tt.wantStatus)
		}
		if tt.wantOutput != "" && (len(res.Output) != 1 || res.Output[0] != tt.wantOutput) {
			t.Errorf("POST %s output = %v, want %q", tt.body, res.Output, tt.wantOutput)
		}
	}
}

func TestServerMinimapPNG(t *testing.T) {
	s := NewServer()
	stop := loop(s, echo, Snapshot{}, func() image.Image { return solid(2, 2, red) })
	defer stop()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/minimap.png")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Errorf("GET /minimap.png = %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
}

func TestServerWebSocket(t *testing.T) {
	s := NewServer()
	s.Service(echo, Snapshot{MapName: "Field"}, nil)
	stop := loop(s, echo, Snapshot{MapName: "Field"}, nil)
	defer stop()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteJSON(wsMessage{Command: "minimap show"}); err != nil {
		t.Fatal(err)
	}
	sawSnapshot := false
	for i := 0; i < 100; i++ {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage() error = %v", err)
		}
		var reply wsReply
		if json.Unmarshal(data, &reply) == nil && reply.Type == "result" {
			if reply.Command != "minimap show" || !reply.Handled {
				t.Errorf("reply = %+v", reply)
			}
			if !sawSnapshot {
				t.Error("no snapshot before the command result")
			}
			return
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err == nil && snap.MapName == "Field" {
			sawSnapshot = true
		}
	}
	t.Error("no command result received")
}

func TestRegisterWithFullBuffer(t *testing.T) {
	s := NewServer()
	s.Service(echo, Snapshot{MapName: "Field"}, nil)
	c := &client{srv: s, send: make(chan []byte, 1)}
	c.send <- []byte("broadcast")

	done := make(chan struct{})
	go func() {
		s.register(c)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("register() blocked on a full send buffer")
	}
	if got := string(<-c.send); got != "broadcast" {
		t.Errorf("queued message = %q, want the earlier broadcast", got)
	}
}
