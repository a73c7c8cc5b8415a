// Package state is the preview game the minimap runs against: one map, the
// player with followers, the map's events and the vehicles.
package state

import (
	"fmt"
	"strconv"
	"strings"

	"mvminimap/pkg/engine/logger"
	"mvminimap/pkg/engine/world"
	"mvminimap/pkg/game/config"
	"mvminimap/pkg/game/entities"
	"mvminimap/pkg/game/minimap"
	"mvminimap/pkg/game/rmmv"
)

// Screen size in tiles at the engine's default resolution.
const (
	ScreenTilesX = 17
	ScreenTilesY = 13
)

// DefaultMoveSpeed is the engine's normal walking speed.
const DefaultMoveSpeed = 4

// Event is a map event as the preview shows it.
type Event struct {
	minimap.EventState
	Name      string
	Character world.Character
	Shadow    entities.Shadow
	Info      entities.InfoLabel
	HasInfo   bool
}

// Game represents the preview game state.
type Game struct {
	Project *rmmv.Project
	Params  *config.Params
	Session *minimap.Session
	Fade    *entities.FollowersFade
	Vars    minimap.VariableMap

	MapID   int
	Map     *rmmv.Map
	terrain *minimap.Classification

	Player       minimap.PlayerState
	PlayerShadow entities.Shadow
	Speed        int
	Followers    []*entities.Follower
	Gathering    bool

	Events   []*Event
	Vehicles []minimap.VehicleState

	Messages  []string
	Frame     int
	// MapScenes counts the map scenes started by transfers and loads.
	MapScenes int
}

// NewGame creates a game on project p. Call Transfer to enter a map.
func NewGame(p *rmmv.Project, params *config.Params) *Game {
	g := &Game{
		Project: p,
		Params:  params,
		Fade:    entities.NewFollowersFade(params.FollowersFade),
		Vars:    make(minimap.VariableMap),
		Speed:   DefaultMoveSpeed,
	}
	g.Session = minimap.NewSession(params, minimap.Host{Maps: p, Images: p, World: locator{g}}, g.Vars)
	if vehicles, err := p.Vehicles(); err == nil {
		g.Vehicles = vehicles
	} else {
		logger.For("state").WithError(err).Debug("no vehicles")
	}
	return g
}

// AddParty creates n followers standing on the player.
func (g *Game) AddParty(n int) {
	g.Followers = g.Followers[:0]
	for i := 1; i <= n; i++ {
		g.Followers = append(g.Followers, &entities.Follower{
			Character:   g.Player.Character,
			MemberIndex: i,
			Opacity:     255,
			Shadow:      entities.NoShadow,
		})
	}
}

// SetPartyShadow applies an actor's shadow note to the player.
func (g *Game) SetPartyShadow(note string) {
	g.PlayerShadow, _ = entities.ParseShadow(note)
}

// Transfer moves the player to (x, y) on mapID and runs the map setup hooks.
func (g *Game) Transfer(mapID, x, y int) error {
	m, err := g.Project.LoadMap(mapID)
	if err != nil {
		return fmt.Errorf("transfer to map %d: %w", mapID, err)
	}
	ts, _ := g.Project.Tileset(m.TilesetID)
	g.MapID = mapID
	g.Map = m
	g.terrain = minimap.Classify(&m.MapData, ts, g.Params.WallRegionIDs, g.Params.FloorRegionIDs)

	facing := g.Player.Facing
	g.Player.Character = world.NewCharacter(x, y)
	if facing.IsValid() {
		g.Player.Facing = facing
	}
	for _, f := range g.Followers {
		f.Character = g.Player.Character
	}
	if g.Player.Riding {
		for i := range g.Vehicles {
			if g.Vehicles[i].Driving {
				g.Vehicles[i].MapID, g.Vehicles[i].X, g.Vehicles[i].Y = mapID, x, y
			}
		}
	}

	g.Events = g.Events[:0]
	for _, ev := range m.Events {
		g.Events = append(g.Events, g.newEvent(ev))
	}

	g.Session.OnMapSetup(mapID)
	g.MapScenes++
	g.Session.OnSceneLoaded()
	g.AddMessage(fmt.Sprintf("%s (%d)", m.DisplayName, mapID))
	logger.For("state").WithField("map", mapID).Info("transferred")
	return nil
}

// Terrain returns the classification of the current map, nil before the first transfer.
func (g *Game) Terrain() *minimap.Classification { return g.terrain }

func (g *Game) newEvent(ev rmmv.Event) *Event {
	e := &Event{
		EventState: minimap.EventState{ID: ev.ID, X: ev.X, Y: ev.Y, Marker: -1, PageIndex: -1},
		Name:       ev.Name,
		Character:  world.NewCharacter(ev.X, ev.Y),
		Shadow:     entities.NoShadow,
	}
	if v, ok := ev.Meta[g.Params.EventMetaMarker]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			e.Marker = n
		}
	}
	// the preview has no switches, so the first page is always active
	if len(ev.Pages) > 0 {
		page := ev.Pages[0]
		e.PageIndex = 0
		if d := world.Direction(page.Direction); d.IsValid() {
			e.Character.Facing = d
		}
		e.Shadow = entities.EventShadow(page.CommentStarts(), ev.Note)
		e.Info, e.HasInfo = entities.ParseInfo(page.LeadingComments())
	} else {
		e.Shadow, _ = entities.ParseShadow(ev.Note)
	}
	return e
}

// Passable reports whether the player may step onto (x, y).
func (g *Game) Passable(x, y int) bool {
	if g.terrain == nil || x < 0 || y < 0 || x >= g.terrain.Width || y >= g.terrain.Height {
		return false
	}
	t, _ := g.terrain.At(x, y)
	switch t {
	case minimap.TerrainWall, minimap.TerrainMountain, minimap.TerrainRiver:
		return false
	case minimap.TerrainSea, minimap.TerrainFord, minimap.TerrainShallow:
		return g.Player.Riding
	}
	return !g.Player.Riding || g.riddenType() == "airship"
}

func (g *Game) riddenType() string {
	for _, v := range g.Vehicles {
		if v.Driving {
			return v.Type
		}
	}
	return ""
}

// Move starts a one-tile step of the player and pulls the followers along.
// It reports false when the player is mid-step or the tile is blocked.
func (g *Game) Move(d world.Direction) bool {
	if g.Map == nil || g.Player.IsMoving() {
		return false
	}
	g.Player.Facing = d
	dx, dy := d.Delta()
	w, h := g.Map.Width, g.Map.Height
	nx, ny := g.Player.X+dx, g.Player.Y+dy
	if g.Map.LoopHorizontal() {
		nx = minimap.Mod(nx, w)
	}
	if g.Map.LoopVertical() {
		ny = minimap.Mod(ny, h)
	}
	if !g.Passable(nx, ny) {
		return false
	}

	prev := g.Player.Character
	g.Player.Move(d, w, h, g.Map.LoopHorizontal(), g.Map.LoopVertical())
	if !g.Player.Riding {
		for _, f := range g.Followers {
			next := f.Character
			g.chase(&f.Character, prev)
			prev = next
		}
	}
	g.carryVehicle()
	return true
}

// chase steps c one tile toward target, as followers do.
func (g *Game) chase(c *world.Character, target world.Character) {
	dx := wrapDelta(target.X-c.X, g.Map.Width, g.Map.LoopHorizontal())
	dy := wrapDelta(target.Y-c.Y, g.Map.Height, g.Map.LoopVertical())
	var d world.Direction
	switch {
	case dx > 0:
		d = world.Right
	case dx < 0:
		d = world.Left
	case dy > 0:
		d = world.Down
	case dy < 0:
		d = world.Up
	default:
		return
	}
	c.Move(d, g.Map.Width, g.Map.Height, g.Map.LoopHorizontal(), g.Map.LoopVertical())
}

// wrapDelta takes the short way round on looping axes.
func wrapDelta(d, size int, loop bool) int {
	if !loop || size == 0 {
		return d
	}
	d = minimap.Mod(d, size)
	if d > size/2 {
		d -= size
	}
	return d
}

func (g *Game) carryVehicle() {
	for i := range g.Vehicles {
		if g.Vehicles[i].Driving {
			g.Vehicles[i].X, g.Vehicles[i].Y = g.Player.X, g.Player.Y
		}
	}
}

// Gather sends the followers to the player's tile.
func (g *Game) Gather() {
	g.Gathering = true
}

func (g *Game) gathered() bool {
	if !g.Gathering {
		return false
	}
	for _, f := range g.Followers {
		if f.IsMoving() || f.X != g.Player.X || f.Y != g.Player.Y {
			return false
		}
	}
	return true
}

// Board gets on a vehicle on the player's tile, or off the one being driven.
func (g *Game) Board() bool {
	if g.Player.IsMoving() {
		return false
	}
	if g.Player.Riding {
		for i := range g.Vehicles {
			g.Vehicles[i].Driving = false
		}
		g.Player.Riding = false
		return true
	}
	for i, v := range g.Vehicles {
		if v.MapID == g.MapID && v.X == g.Player.X && v.Y == g.Player.Y {
			g.Vehicles[i].Driving = true
			g.Player.Riding = true
			g.AddMessage(v.Type)
			return true
		}
	}
	return false
}

// Update advances one frame: walking, gathering and follower fading.
func (g *Game) Update() {
	g.Frame++
	step := entities.DistancePerFrame(g.Speed)
	g.Player.Advance(step)
	for _, f := range g.Followers {
		f.Advance(step)
	}

	gathered := g.gathered()
	if g.Gathering && !gathered {
		moving := false
		for _, f := range g.Followers {
			moving = moving || f.IsMoving()
		}
		if !moving {
			for _, f := range g.Followers {
				g.chase(&f.Character, g.Player.Character)
			}
		}
	}

	party := &entities.Party{
		Player:    g.Player.Character,
		Opacity:   255,
		Speed:     g.Speed,
		Gathering: g.Gathering,
		Gathered:  gathered,
		Followers: g.Followers,
	}
	g.Fade.Update(party)
	if gathered {
		g.Gathering = false
	}
}

// Command runs a plugin command line through the minimap and the follower fade.
func (g *Game) Command(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := fields[0], fields[1:]
	if ok, err := g.Session.Exec(name, args); ok {
		return true, err
	}
	return g.Fade.Exec(name, args), nil
}

// SaveTo writes the minimap state and the followers fade switch into a save file.
func (g *Game) SaveTo(path string) error {
	b, err := g.Session.Save()
	if err != nil {
		return err
	}
	fade := g.Fade.Enabled
	return rmmv.WriteSave(path, rmmv.Save{Minimap: b, FollowersFade: &fade})
}

// LoadFrom restores the minimap state and the followers fade switch from a
// save file and reloads the minimap's map. Saves without the switch keep the
// current one.
func (g *Game) LoadFrom(path string) error {
	s, err := rmmv.ReadSave(path)
	if err != nil {
		return err
	}
	if err := g.Session.Load(s.Minimap); err != nil {
		return err
	}
	if s.FollowersFade != nil {
		g.Fade.Enabled = *s.FollowersFade
	}
	g.MapScenes++
	g.Session.OnSceneLoaded()
	return nil
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	const maxMessages = 5
	g.Messages = append(g.Messages, msg)

	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = g.Messages[:0]
}
