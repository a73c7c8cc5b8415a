package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mvminimap/pkg/game/minimap"
	"mvminimap/pkg/game/state"
)

const mapDumpFilename = "map.txt"

var terrainSymbols = map[minimap.Terrain]rune{
	minimap.TerrainFloor:    '.',
	minimap.TerrainLand:     ',',
	minimap.TerrainSea:      '~',
	minimap.TerrainFord:     '-',
	minimap.TerrainMountain: '^',
	minimap.TerrainHill:     'n',
	minimap.TerrainForest:   'T',
	minimap.TerrainRiver:    '=',
	minimap.TerrainShallow:  '_',
	minimap.TerrainLadder:   'H',
	minimap.TerrainBush:     '"',
	minimap.TerrainCounter:  'C',
	minimap.TerrainWall:     '#',
}

// TerrainSymbol returns the dump character for a terrain class.
func TerrainSymbol(t minimap.Terrain) rune {
	if r, ok := terrainSymbols[t]; ok {
		return r
	}
	return '?'
}

// WriteTerrain writes one line per map row. The player is '@', vehicles are
// 'V' and events with a marker are 'E'.
func WriteTerrain(w io.Writer, g *state.Game) error {
	c := g.Terrain()
	if c == nil {
		return fmt.Errorf("no map loaded")
	}
	marks := make(map[[2]int]rune)
	for _, e := range g.Events {
		if e.Marker >= 0 {
			marks[[2]int{e.X, e.Y}] = 'E'
		}
	}
	for _, v := range g.Vehicles {
		if v.MapID == g.MapID {
			marks[[2]int{v.X, v.Y}] = 'V'
		}
	}
	marks[[2]int{g.Player.X, g.Player.Y}] = '@'

	line := make([]rune, c.Width)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if r, ok := marks[[2]int{x, y}]; ok {
				line[x] = r
				continue
			}
			t, _ := c.At(x, y)
			line[x] = TerrainSymbol(t)
		}
		if _, err := fmt.Fprintln(w, string(line)); err != nil {
			return err
		}
	}
	return nil
}

// DumpMapToFile writes map.txt: the minimap state, a legend, the terrain grid
// and the markings of the shown map.
func DumpMapToFile(g *state.Game) (string, error) {
	absPath, err := filepath.Abs(mapDumpFilename)
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	m := g.Session.Minimap
	fmt.Fprintln(f, "=== MAP DUMP ===")
	fmt.Fprintln(f, "")
	fmt.Fprintln(f, "--- Metadata ---")
	fmt.Fprintf(f, "map_id: %d\n", g.MapID)
	if g.Map != nil {
		fmt.Fprintf(f, "map_name: %q\n", g.Map.DisplayName)
		fmt.Fprintf(f, "map_size: %dx%d\n", g.Map.Width, g.Map.Height)
	}
	fmt.Fprintf(f, "player: %d,%d riding: %v\n", g.Player.X, g.Player.Y, g.Player.Riding)
	fmt.Fprintf(f, "minimap_map: %d readiness: %s visible: %v\n", m.MapID(), m.Readiness(), m.Visible())
	r := m.Rect()
	fmt.Fprintf(f, "minimap_rect: %d,%d %dx%d mode: %d zoom: %g opacity: %d\n", r.X, r.Y, r.Width, r.Height, m.Mode(), m.Zoom(), m.Opacity())
	cx, cy := m.Center()
	fmt.Fprintf(f, "minimap_center: %g,%g scrolling: %v\n", cx, cy, m.Scrolling())
	fmt.Fprintln(f, "")

	fmt.Fprintln(f, "--- Legend ---")
	for t := minimap.TerrainFloor; t <= minimap.TerrainWall; t++ {
		fmt.Fprintf(f, "%c ", TerrainSymbol(t))
	}
	fmt.Fprintln(f, "(floor land sea ford mountain hill forest river shallow ladder bush counter wall)")
	fmt.Fprintln(f, "@ = player  V = vehicle  E = event with a marker")
	fmt.Fprintln(f, "")

	fmt.Fprintln(f, "--- Terrain ---")
	if err := WriteTerrain(f, g); err != nil {
		return "", err
	}
	fmt.Fprintln(f, "")

	fmt.Fprintln(f, "--- Markings ---")
	for _, e := range m.Markings().OnMap(m.MapID()) {
		fmt.Fprintf(f, "  id: %d kind: %s event: %d pos: %g,%g radius: %g size: %gx%g color: %d icon: %d\n",
			e.ID, e.Kind, e.EventID, e.X, e.Y, e.Radius, e.Width, e.Height, e.Color, e.Icon)
	}
	return absPath, nil
}
