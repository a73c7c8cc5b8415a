package renderer

import (
	"image"
	"math"
	"sort"

	"mvminimap/pkg/engine/world"
	"mvminimap/pkg/game/entities"
	"mvminimap/pkg/game/gameplay"
	"mvminimap/pkg/game/minimap"
	"mvminimap/pkg/game/present"
	"mvminimap/pkg/game/state"
)

// Tile is one map tile on screen, X and Y being its top-left pixel.
type Tile struct {
	X, Y    int
	MapX    int
	MapY    int
	Terrain minimap.Terrain
	Walls   uint8
}

// SpriteKind tells frontends how to draw a character.
type SpriteKind int

const (
	SpritePlayer SpriteKind = iota
	SpriteFollower
	SpriteEvent
	SpriteVehicle
)

// Sprite is a character on screen anchored at its bottom centre.
type Sprite struct {
	Kind    SpriteKind
	Label   string
	X, Y    float64
	Facing  world.Direction
	Opacity int
	// Shadow is nil for characters without one.
	Shadow *entities.ShadowSprite
}

// InfoBox is an event's info label on screen.
type InfoBox struct {
	Rect     image.Rectangle
	Text     string
	FontSize int
}

// Scene is one frame of the map scene in screen pixels.
type Scene struct {
	TileWidth, TileHeight int
	Tiles                 []Tile
	Sprites               []Sprite // back to front
	Info                  []InfoBox
	Messages              []string
	Hint                  string
	Minimap               present.View
}

// camera maps real tile positions to the screen the way the engine scrolls.
type camera struct {
	ox, oy       float64
	w, h         int
	loopH, loopV bool
	tw, th       float64
}

func newCamera(g *state.Game, tw, th int) camera {
	ox, oy := g.DisplayOrigin()
	c := camera{ox: ox, oy: oy, tw: float64(tw), th: float64(th)}
	if g.Map != nil {
		c.w, c.h = g.Map.Width, g.Map.Height
		c.loopH, c.loopV = g.Map.LoopHorizontal(), g.Map.LoopVertical()
	}
	return c
}

// adjust is the offset of a real coordinate from the display origin. Looping
// maps bring positions left behind the origin round to the far side.
func adjust(v, origin float64, size, screenTiles int, loop bool) float64 {
	d := v - origin
	if loop && d < -float64(size-screenTiles)/2 {
		d += float64(size)
	}
	return d
}

// screen returns the bottom-centre pixel of a character at (realX, realY).
func (c camera) screen(realX, realY float64) (float64, float64) {
	x := adjust(realX, c.ox, c.w, state.ScreenTilesX, c.loopH)
	y := adjust(realY, c.oy, c.h, state.ScreenTilesY, c.loopV)
	return math.Round((x + 0.5) * c.tw), math.Round((y + 1) * c.th)
}

// BuildScene lays out the map scene of p with tiles of tw by th pixels.
func BuildScene(p *gameplay.Preview, tw, th int) Scene {
	g := p.Game
	s := Scene{
		TileWidth:  tw,
		TileHeight: th,
		Messages:   g.Messages,
		Hint:       gameplay.ShowMovementHint(p),
		Minimap:    p.View(),
	}
	if g.Map == nil || g.Terrain() == nil {
		return s
	}
	c := newCamera(g, tw, th)
	s.Tiles = buildTiles(g.Terrain(), c)
	s.Sprites = buildSprites(g, c)
	s.Info = buildInfo(g, c)
	return s
}

func buildTiles(t *minimap.Classification, c camera) []Tile {
	fx, fy := math.Floor(c.ox), math.Floor(c.oy)
	tiles := make([]Tile, 0, (state.ScreenTilesX+1)*(state.ScreenTilesY+1))
	for ty := 0; ty <= state.ScreenTilesY; ty++ {
		for tx := 0; tx <= state.ScreenTilesX; tx++ {
			mx, my := int(fx)+tx, int(fy)+ty
			if c.loopH {
				mx = minimap.Mod(mx, t.Width)
			}
			if c.loopV {
				my = minimap.Mod(my, t.Height)
			}
			if mx < 0 || my < 0 || mx >= t.Width || my >= t.Height {
				continue
			}
			terrain, walls := t.At(mx, my)
			tiles = append(tiles, Tile{
				X:       int(math.Round((fx + float64(tx) - c.ox) * c.tw)),
				Y:       int(math.Round((fy + float64(ty) - c.oy) * c.th)),
				MapX:    mx,
				MapY:    my,
				Terrain: terrain,
				Walls:   walls,
			})
		}
	}
	return tiles
}

func buildSprites(g *state.Game, c camera) []Sprite {
	var out []Sprite
	add := func(kind SpriteKind, label string, ch world.Character, opacity int, sh entities.Shadow, transparent bool) {
		x, y := c.screen(ch.RealX, ch.RealY)
		sp := Sprite{Kind: kind, Label: label, X: x, Y: y, Facing: ch.Facing, Opacity: opacity}
		if sh.Enabled {
			placed := sh.Place(entities.CharacterView{ScreenX: x, ScreenY: y, Opacity: opacity, Transparent: transparent})
			sp.Shadow = &placed
		}
		out = append(out, sp)
	}

	for _, e := range g.Events {
		if e.PageIndex < 0 || e.Transparent {
			continue
		}
		add(SpriteEvent, label(e.Name), e.Character, 255, e.Shadow, false)
	}
	for _, v := range g.Vehicles {
		if v.MapID != g.MapID || v.Driving {
			continue
		}
		add(SpriteVehicle, label(v.Type), world.NewCharacter(v.X, v.Y), 255, entities.NoShadow, false)
	}
	for i := len(g.Followers) - 1; i >= 0; i-- {
		f := g.Followers[i]
		add(SpriteFollower, "", f.Character, int(f.Opacity), f.Shadow, f.Hidden())
	}
	kind := SpritePlayer
	if g.Player.Riding {
		kind = SpriteVehicle
	}
	add(kind, "@", g.Player.Character, 255, g.PlayerShadow, false)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Y < out[j].Y })
	return out
}

func buildInfo(g *state.Game, c camera) []InfoBox {
	var out []InfoBox
	for _, e := range g.Events {
		if !e.HasInfo || e.PageIndex < 0 || e.Transparent {
			continue
		}
		x, y := c.screen(e.Character.RealX, e.Character.RealY)
		out = append(out, InfoBox{
			Rect:     e.Info.Bounds(int(x), int(y)),
			Text:     e.Info.Text,
			FontSize: e.Info.FontSize,
		})
	}
	return out
}

// label is the letter a character is drawn with.
func label(name string) string {
	for _, r := range name {
		return string(r)
	}
	return "?"
}

// Cell is the grid cell of t in a layout of tw by th pixel tiles.
func (t Tile) Cell(tw, th int) (col, row int) {
	return int(math.Round(float64(t.X) / float64(tw))), int(math.Round(float64(t.Y) / float64(th)))
}

// Cell is the grid cell s stands on in a layout of tw by th pixel tiles.
func (s Sprite) Cell(tw, th int) (col, row int) {
	return int(math.Floor(s.X / float64(tw))), int(math.Floor(s.Y/float64(th) - 0.5))
}
