package devtools

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/tidwall/sjson"

	"mvminimap/pkg/game/generator"
	"mvminimap/pkg/game/minimap"
	"mvminimap/pkg/game/overlay"
)

// Developer project tiles. Area tileset 1 and field tileset 2 share one flag table.
const (
	devFloor      = 1
	devWall       = 2
	devLadder     = 3
	devBush       = 4
	devCounter    = 5
	devFloorWallN = 6
	devRiver      = 2048 + 1*48
	devShallow    = 2048 + 2*48
	devLand       = 2048 + 16*48
	devForest     = 2048 + 20*48
	devHill       = 2048 + 22*48
	devMountain   = 2048 + 23*48
)

// DevFrameName is the frame picture the developer project ships.
const DevFrameName = "MinimapFrame"

const devIconSize = 16

// WriteDevProject writes a small RPG Maker MV project into dir for trying the
// minimap without a game: a town (map 1) with every area terrain and marked
// events, a looping field (map 2) with a boat and an airship, and a generated
// dungeon (map 3).
func WriteDevProject(dir string) error {
	files := map[string][]byte{}
	var err error
	if files["Map001.json"], err = devTown(); err != nil {
		return err
	}
	if files["Map002.json"], err = devField(); err != nil {
		return err
	}
	if files["Map003.json"], err = devDungeon(); err != nil {
		return err
	}
	files["Tilesets.json"] = devTilesets()
	files["System.json"] = []byte(`{"startMapId": 1, "startX": 4, "startY": 4,
 "boat": {"startMapId": 2, "startX": 12, "startY": 25},
 "ship": {"startMapId": 0, "startX": 0, "startY": 0},
 "airship": {"startMapId": 2, "startX": 20, "startY": 10}}`)
	files["MapInfos.json"] = []byte(`[null, {"id": 1, "name": "Town", "parentId": 0, "order": 1},
 {"id": 2, "name": "Field", "parentId": 0, "order": 2},
 {"id": 3, "name": "Dungeon", "parentId": 1, "order": 3}]`)
	files["Actors.json"] = []byte(`[null, {"id": 1, "name": "Hero", "characterName": "Actor1", "note": "<KNHShadow>"},
 {"id": 2, "name": "Mage", "characterName": "Actor1", "note": "<KNHShadow:0,2,90>"}]`)

	data := filepath.Join(dir, "data")
	if err := os.MkdirAll(data, 0o755); err != nil {
		return err
	}
	for name, b := range files {
		if err := os.WriteFile(filepath.Join(data, name), b, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := writePNG(filepath.Join(dir, "img", "system", "MinimapMarkerSet.png"), DevIconSheet()); err != nil {
		return err
	}
	return writePNG(filepath.Join(dir, "img", "pictures", DevFrameName+".png"), devFrame(176, 144))
}

// devGrid is one map's tile layers under construction.
type devGrid struct {
	w, h int
	data []int
}

func newDevGrid(w, h, fill int) *devGrid {
	g := &devGrid{w: w, h: h, data: make([]int, minimap.LayerCount*w*h)}
	g.fill(0, 0, 0, w, h, fill)
	return g
}

func (g *devGrid) set(z, x, y, tile int) {
	g.data[(z*g.h+y)*g.w+x] = tile
}

func (g *devGrid) fill(z, x0, y0, w, h, tile int) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			g.set(z, x, y, tile)
		}
	}
}

func devTown() ([]byte, error) {
	const w, h = 32, 24
	g := newDevGrid(w, h, devFloor)
	// outer wall
	g.fill(0, 0, 0, w, 1, devWall)
	g.fill(0, 0, h-1, w, 1, devWall)
	g.fill(0, 0, 0, 1, h, devWall)
	g.fill(0, w-1, 0, 1, h, devWall)
	// shop with a counter
	g.fill(0, 20, 3, 9, 1, devWall)
	g.fill(0, 20, 3, 1, 7, devWall)
	g.fill(0, 22, 6, 5, 1, devCounter)
	g.fill(0, 21, 4, 7, 1, devFloorWallN)
	// river with a ford of shallows
	g.fill(0, 3, 12, 26, 2, devRiver)
	g.fill(0, 14, 12, 3, 2, devShallow)
	// garden and a ladder down
	g.fill(0, 4, 17, 6, 4, devBush)
	g.set(0, 26, 19, devLadder)
	// a fence painted with the wall region
	for x := 10; x < 14; x++ {
		g.set(minimap.RegionLayer, x, 8, 63)
	}

	b := []byte(`{"displayName": "Town", "note": "", "scrollType": 0, "tilesetId": 1, "events": [null]}`)
	b, err := setAll(b, map[string]any{"width": w, "height": h, "data": g.data})
	if err != nil {
		return nil, err
	}
	events := []string{
		devEvent(1, "Clerk", 24, 5, "<Marker:3>", "info:Shop,18", "<KNHShadow>"),
		devEvent(2, "Chest", 6, 4, "<Marker:4>", "info:Treasure"),
		devEvent(3, "Old Man", 9, 10, "", "info:Elder", "infomove:0,-8", "<KNHShadow:0,0,120>"),
		devEvent(4, "Gate", 15, 22, "<Marker:5>", "info:To the field"),
	}
	for i, ev := range events {
		if b, err = sjson.SetRawBytes(b, fmt.Sprintf("events.%d", i+1), []byte(ev)); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func devField() ([]byte, error) {
	const w, h = 48, 32
	g := newDevGrid(w, h, 0)
	// sea everywhere, an island of land with woods, hills and a range
	g.fill(1, 0, 0, w, h, devRiver)
	g.fill(0, 8, 4, 32, 22, devLand)
	g.fill(1, 8, 4, 32, 22, 0)
	g.fill(1, 12, 6, 8, 6, devForest)
	g.fill(1, 24, 8, 6, 4, devHill)
	g.fill(1, 30, 14, 6, 8, devMountain)
	// a ford off the south shore
	g.fill(1, 10, 26, 6, 2, 0)

	b := []byte(`{"displayName": "Field", "note": "<MinimapZoom:2>", "scrollType": 2, "tilesetId": 2, "events": [null]}`)
	b, err := setAll(b, map[string]any{"width": w, "height": h, "data": g.data})
	if err != nil {
		return nil, err
	}
	ev := devEvent(1, "Town", 14, 12, "<Marker:5>", "info:Town")
	return sjson.SetRawBytes(b, "events.1", []byte(ev))
}

// DevDungeonSeed is the seed map 3 is generated from.
const DevDungeonSeed = 1

func devDungeon() ([]byte, error) {
	const w, h = 40, 30
	l := generator.Generate(w, h, DevDungeonSeed)
	g := newDevGrid(w, h, devWall)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if l.IsFloor(x, y) {
				g.set(0, x, y, devFloor)
			}
		}
	}
	g.set(0, l.StartX, l.StartY, devLadder)

	b := []byte(`{"displayName": "Dungeon", "note": "", "scrollType": 0, "tilesetId": 1, "events": [null]}`)
	b, err := setAll(b, map[string]any{"width": w, "height": h, "data": g.data})
	if err != nil {
		return nil, err
	}
	events := []string{devEvent(1, "Stairs", l.ExitX, l.ExitY, "<Marker:5>", "info:Stairs")}
	// a chest in the middle of every other room
	for i := 1; i < len(l.Rooms); i += 2 {
		cx, cy := l.Rooms[i].Center()
		if (cx == l.ExitX && cy == l.ExitY) || (cx == l.StartX && cy == l.StartY) {
			continue
		}
		events = append(events, devEvent(len(events)+1, "Chest", cx, cy, "<Marker:4>", "info:"+l.Rooms[i].Name))
	}
	for i, ev := range events {
		if b, err = sjson.SetRawBytes(b, fmt.Sprintf("events.%d", i+1), []byte(ev)); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// devEvent renders an event with one page whose list starts with comments.
func devEvent(id int, name string, x, y int, note string, comments ...string) string {
	b := []byte(`{"pages": [{"image": {"characterName": "People1", "direction": 2}, "priorityType": 1, "through": false, "list": []}]}`)
	b, _ = setAll(b, map[string]any{"id": id, "name": name, "x": x, "y": y, "note": note})
	for _, c := range comments {
		b, _ = sjson.SetBytes(b, "pages.0.list.-1", map[string]any{"code": 108, "indent": 0, "parameters": []string{c}})
	}
	b, _ = sjson.SetRawBytes(b, "pages.0.list.-1", []byte(`{"code": 0, "indent": 0, "parameters": []}`))
	return string(b)
}

func devTilesets() []byte {
	flags := make([]int, devMountain+48)
	flags[0] = minimap.FlagStar
	flags[devWall] = minimap.FlagImpassable
	flags[devLadder] = minimap.FlagLadder
	flags[devBush] = minimap.FlagBush
	flags[devCounter] = minimap.FlagCounter
	flags[devFloorWallN] = minimap.WallUp
	flags[devRiver] = minimap.FlagImpassable
	b := []byte(`[null, {"id": 1, "mode": 1}, {"id": 2, "mode": 0}]`)
	b, _ = sjson.SetBytes(b, "1.flags", flags)
	b, _ = sjson.SetBytes(b, "2.flags", flags)
	return b
}

func setAll(b []byte, fields map[string]any) ([]byte, error) {
	var err error
	for path, v := range fields {
		if b, err = sjson.SetBytes(b, path, v); err != nil {
			return nil, fmt.Errorf("set %s: %w", path, err)
		}
	}
	return b, nil
}

var devIconColors = []color.NRGBA{
	{}, {255, 230, 64, 255}, {64, 160, 255, 255}, {255, 96, 96, 255},
	{96, 220, 96, 255}, {255, 160, 32, 255}, {200, 120, 255, 255}, {64, 255, 255, 255},
}

// DevIconSheet draws a marker icon sheet: triangles for the player (1) and
// the driven vehicle (7), a square for parked vehicles (2) and dots for the rest.
func DevIconSheet() *image.RGBA {
	c := overlay.NewRGBACanvas(devIconSize*overlay.IconsPerRow, devIconSize*2, overlay.IconSheet{})
	for n := 1; n < overlay.IconsPerRow*2; n++ {
		col := devIconColors[(n-1)%(len(devIconColors)-1)+1]
		x := float64(n % overlay.IconsPerRow * devIconSize)
		y := float64(n / overlay.IconsPerRow * devIconSize)
		switch n {
		case 1, 7:
			// apex up so a rotation of 0 faces north
			for row := 2; row < devIconSize-2; row++ {
				half := float64(row-1) / 2
				c.FillRect(x+devIconSize/2-half, y+float64(row), half*2, 1, col)
			}
		case 2:
			c.FillRect(x+3, y+3, devIconSize-6, devIconSize-6, col)
		default:
			c.FillCircle(x+devIconSize/2, y+devIconSize/2, devIconSize/2-2, col)
		}
	}
	return c.Image
}

func devFrame(w, h int) *image.RGBA {
	c := overlay.NewRGBACanvas(w, h, overlay.IconSheet{})
	border := color.NRGBA{R: 96, G: 72, B: 40, A: 255}
	const bw = 6
	c.FillRect(0, 0, float64(w), bw, border)
	c.FillRect(0, float64(h-bw), float64(w), bw, border)
	c.FillRect(0, 0, bw, float64(h), border)
	c.FillRect(float64(w-bw), 0, bw, float64(h), border)
	return c.Image
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
