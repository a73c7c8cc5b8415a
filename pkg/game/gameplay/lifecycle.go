// Package gameplay drives the preview: it turns input into player actions,
// runs console and plugin commands, and moves between the map, menu and
// battle scenes the minimap reacts to.
package gameplay

import (
	"fmt"
	"image"
	"sort"

	"github.com/leonelquinteros/gotext"

	"mvminimap/pkg/engine/logger"
	"mvminimap/pkg/game/config"
	"mvminimap/pkg/game/entities"
	"mvminimap/pkg/game/menu"
	"mvminimap/pkg/game/present"
	"mvminimap/pkg/game/rmmv"
	"mvminimap/pkg/game/state"
)

// BattleFrames is how long the stand-in battle scene lasts.
const BattleFrames = 90

// MaxFollowers is the number of party members walking behind the player.
const MaxFollowers = 3

// Preview is the running preview: the game, its minimap sprite and the
// scene being shown.
type Preview struct {
	Game   *state.Game
	Sprite *present.Sprite
	Scene  present.Scene
	Menu   *menu.Menu
	Quit   bool

	// Capture composes the minimap as currently shown. Frontends set it.
	Capture func() image.Image

	battleLeft int
	moves      int
	mapScenes  int
}

// NewPreview wraps g with its minimap sprite on the map scene.
func NewPreview(g *state.Game, s *present.Sprite) *Preview {
	return &Preview{Game: g, Sprite: s, Scene: present.SceneMap, mapScenes: g.MapScenes}
}

// BuildGame creates the game on p: the party from the actor database and the
// player on the start position, or on the centre of startMap when it is set.
func BuildGame(p *rmmv.Project, params *config.Params, startMap int) (*state.Game, error) {
	g := state.NewGame(p, params)
	setupParty(g, p)

	mapID, x, y, err := p.StartPosition()
	if err != nil {
		return nil, err
	}
	if startMap > 0 {
		m, err := p.LoadMap(startMap)
		if err != nil {
			return nil, err
		}
		mapID, x, y = startMap, m.Width/2, m.Height/2
	}
	if err := g.Transfer(mapID, x, y); err != nil {
		return nil, err
	}

	g.ClearMessages()
	logMessage(g, gotext.Get("WELCOME"))
	if g.Map != nil {
		logMessage(g, "%s (%d)", g.Map.DisplayName, mapID)
	}
	return g, nil
}

// setupParty makes the lowest actor the leader and the next ones followers.
func setupParty(g *state.Game, p *rmmv.Project) {
	actors, err := p.Actors()
	if err != nil {
		logger.For("gameplay").WithError(err).Debug("no actors, walking alone")
		return
	}
	ids := make([]int, 0, len(actors))
	for id := range actors {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	if len(ids) == 0 {
		return
	}
	g.SetPartyShadow(actors[ids[0]].Note)
	g.AddParty(min(len(ids)-1, MaxFollowers))
	for i, f := range g.Followers {
		f.Shadow, _ = entities.ParseShadow(actors[ids[i+1]].Note)
	}
}

// View returns what the frontend draws for the minimap this frame. Scenes
// that hid the sprite draw nothing even though the last view is kept.
func (p *Preview) View() present.View {
	v := p.Sprite.View()
	if !p.Sprite.Shown() {
		v.Visible = false
	}
	return v
}

// Tick advances one frame of the current scene.
func Tick(p *Preview) {
	switch p.Scene {
	case present.SceneMap:
		p.Game.Update()
		// a transfer or load starts a new map scene
		if p.Game.MapScenes != p.mapScenes {
			p.mapScenes = p.Game.MapScenes
			p.Sprite.Enter()
		}
		p.Sprite.Update()
	case present.SceneBattle:
		p.battleLeft--
		if p.battleLeft <= 0 {
			p.enterMap()
			logMessage(p.Game, gotext.Get("BATTLE_OVER"))
		}
	}
}

// leave hands the map over to another scene.
func (p *Preview) leave(next present.Scene) {
	if p.Scene == present.SceneMap {
		p.Sprite.Leave(next)
	}
	p.Scene = next
}

// enterMap starts a new map scene.
func (p *Preview) enterMap() {
	p.Scene = present.SceneMap
	p.mapScenes = p.Game.MapScenes
	p.Sprite.Enter()
	p.Game.Session.OnSceneLoaded()
}

// StartBattle leaves the map for a battle that ends by itself.
func (p *Preview) StartBattle() {
	if p.Scene != present.SceneMap {
		return
	}
	p.leave(present.SceneBattle)
	p.battleLeft = BattleFrames
	logMessage(p.Game, gotext.Get("BATTLE_START"))
}

// OpenMenu leaves the map for a menu.
func (p *Preview) OpenMenu(h menu.MenuHandler) {
	p.leave(present.SceneMenu)
	p.Menu = menu.Open(h)
}

// closeMenu returns to the map and follows up on the item that closed it.
func (p *Preview) closeMenu() {
	h := p.Menu.Handler()
	p.Menu = nil
	p.enterMap()
	if gh, ok := h.(*menu.GameplayMenuHandler); ok {
		switch gh.GetSelectedAction() {
		case menu.GameplayMenuActionBindings:
			p.OpenMenu(menu.NewBindingsMenuHandler())
		case menu.GameplayMenuActionQuit:
			p.Quit = true
		}
	}
}

// Status is the one-line minimap summary shown by the status command.
func Status(g *state.Game) string {
	m := g.Session.Minimap
	r := m.Rect()
	return fmt.Sprintf("map %d %s visible=%v rect=%d,%d %dx%d mode=%d zoom=%g opacity=%d markings=%d",
		m.MapID(), m.Readiness(), m.Visible(), r.X, r.Y, r.Width, r.Height, m.Mode(), m.Zoom(), m.Opacity(), m.Markings().Len())
}
