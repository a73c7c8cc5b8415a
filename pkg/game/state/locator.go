package state

import (
	"math"

	"mvminimap/pkg/game/minimap"
)

// centerX and centerY are the player's screen position in tiles.
const (
	centerX = (ScreenTilesX - 1) / 2.0
	centerY = (ScreenTilesY - 1) / 2.0
)

// DisplayOrigin is the map position of the screen's top-left corner. The
// screen follows the player and stops at the edges of maps that do not loop.
func (g *Game) DisplayOrigin() (x, y float64) {
	if g.Map == nil {
		return 0, 0
	}
	x = g.Player.RealX - centerX
	y = g.Player.RealY - centerY
	if g.Map.LoopHorizontal() {
		x = floorMod(x, float64(g.Map.Width))
	} else {
		x = math.Max(0, math.Min(x, float64(g.Map.Width-ScreenTilesX)))
	}
	if g.Map.LoopVertical() {
		y = floorMod(y, float64(g.Map.Height))
	} else {
		y = math.Max(0, math.Min(y, float64(g.Map.Height-ScreenTilesY)))
	}
	return x, y
}

func floorMod(v, n float64) float64 {
	return math.Mod(math.Mod(v, n)+n, n)
}

// locator exposes the game to the minimap.
type locator struct{ g *Game }

func (l locator) ActiveMapID() int { return l.g.MapID }

func (l locator) Player() minimap.PlayerState { return l.g.Player }

func (l locator) DisplayCenter() (float64, float64) {
	x, y := l.g.DisplayOrigin()
	return x + centerX, y + centerY
}

func (l locator) Event(id int) (minimap.EventState, bool) {
	for _, e := range l.g.Events {
		if e.ID == id {
			return e.EventState, true
		}
	}
	return minimap.EventState{}, false
}

func (l locator) Events() []minimap.EventState {
	out := make([]minimap.EventState, 0, len(l.g.Events))
	for _, e := range l.g.Events {
		out = append(out, e.EventState)
	}
	return out
}

func (l locator) Vehicles() []minimap.VehicleState { return l.g.Vehicles }
