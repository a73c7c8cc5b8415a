// Package rmmv reads an RPG Maker MV project: maps, tilesets, actors and
// system images, and wraps save files.
package rmmv

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"

	"mvminimap/pkg/engine/logger"
	"mvminimap/pkg/game/minimap"
)

// Event command codes carrying comments.
const (
	CodeComment         = 108
	CodeCommentContinue = 408
)

// ErrMapNotFound is returned when a map file does not exist.
var ErrMapNotFound = errors.New("map not found")

// Command is one entry of an event page list. Text is its first parameter
// when that is a string.
type Command struct {
	Code int
	Text string
}

// Page is the part of an event page the plugins look at.
type Page struct {
	CharacterName string
	Direction     int
	PriorityType  int
	Through       bool
	List          []Command
}

// Comments returns the text of every comment line on the page.
func (p Page) Comments() []string {
	var out []string
	for _, c := range p.List {
		if c.Code == CodeComment || c.Code == CodeCommentContinue {
			out = append(out, c.Text)
		}
	}
	return out
}

// LeadingComments returns the comment lines at the top of the page, stopping
// at the first other command.
func (p Page) LeadingComments() []string {
	var out []string
	for _, c := range p.List {
		if c.Code != CodeComment && c.Code != CodeCommentContinue {
			break
		}
		out = append(out, c.Text)
	}
	return out
}

// CommentStarts returns the text of each comment block's first line.
func (p Page) CommentStarts() []string {
	var out []string
	for _, c := range p.List {
		if c.Code == CodeComment {
			out = append(out, c.Text)
		}
	}
	return out
}

// Event is an event as stored in a map file.
type Event struct {
	ID    int
	Name  string
	X, Y  int
	Note  string
	Meta  map[string]string
	Pages []Page
}

// Map is a loaded map file.
type Map struct {
	minimap.MapData
	DisplayName string
	Note        string
	Events      []Event
}

// Actor is a database actor.
type Actor struct {
	ID            int
	Name          string
	CharacterName string
	Note          string
	Meta          map[string]string
}

// MapInfo is an entry of the map tree.
type MapInfo struct {
	ID       int
	Name     string
	ParentID int
	Order    int
}

// Project is an RPG Maker MV project directory.
type Project struct {
	dir string

	tilesetsOnce sync.Once
	tilesets     map[int]*minimap.Tileset
}

// Open checks that dir holds a data directory.
func Open(dir string) (*Project, error) {
	info, err := os.Stat(filepath.Join(dir, "data"))
	if err != nil {
		return nil, fmt.Errorf("open project %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open project %s: data is not a directory", dir)
	}
	return &Project{dir: dir}, nil
}

// Dir returns the project root.
func (p *Project) Dir() string { return p.dir }

func (p *Project) readData(name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(p.dir, "data", name))
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(b) {
		return nil, fmt.Errorf("%s: invalid JSON", name)
	}
	return b, nil
}

// MapFile returns the file name of a map.
func MapFile(mapID int) string {
	return fmt.Sprintf("Map%03d.json", mapID)
}

// LoadMap reads and decodes a map file.
func (p *Project) LoadMap(mapID int) (*Map, error) {
	b, err := p.readData(MapFile(mapID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %d", ErrMapNotFound, mapID)
	}
	if err != nil {
		return nil, fmt.Errorf("load map %d: %w", mapID, err)
	}
	return DecodeMap(mapID, b)
}

// DecodeMap decodes the JSON of a map file.
func DecodeMap(mapID int, b []byte) (*Map, error) {
	root := gjson.ParseBytes(b)
	m := &Map{
		MapData: minimap.MapData{
			ID:         mapID,
			Width:      int(root.Get("width").Int()),
			Height:     int(root.Get("height").Int()),
			ScrollType: int(root.Get("scrollType").Int()),
			TilesetID:  int(root.Get("tilesetId").Int()),
		},
		DisplayName: root.Get("displayName").String(),
		Note:        root.Get("note").String(),
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("map %d: bad size %dx%d", mapID, m.Width, m.Height)
	}
	m.Meta = ParseMeta(m.Note)

	tiles := root.Get("data").Array()
	m.Data = make([]int, minimap.LayerCount*m.Width*m.Height)
	for i := 0; i < len(tiles) && i < len(m.Data); i++ {
		m.Data[i] = int(tiles[i].Int())
	}

	root.Get("events").ForEach(func(_, ev gjson.Result) bool {
		if ev.Type == gjson.Null {
			return true
		}
		e := decodeEvent(ev)
		m.Events = append(m.Events, e)
		m.MapData.Events = append(m.MapData.Events, minimap.EventData{ID: e.ID, X: e.X, Y: e.Y, Meta: e.Meta})
		return true
	})
	return m, nil
}

func decodeEvent(ev gjson.Result) Event {
	e := Event{
		ID:   int(ev.Get("id").Int()),
		Name: ev.Get("name").String(),
		X:    int(ev.Get("x").Int()),
		Y:    int(ev.Get("y").Int()),
		Note: ev.Get("note").String(),
	}
	e.Meta = ParseMeta(e.Note)
	ev.Get("pages").ForEach(func(_, pg gjson.Result) bool {
		page := Page{
			CharacterName: pg.Get("image.characterName").String(),
			Direction:     int(pg.Get("image.direction").Int()),
			PriorityType:  int(pg.Get("priorityType").Int()),
			Through:       pg.Get("through").Bool(),
		}
		pg.Get("list").ForEach(func(_, cmd gjson.Result) bool {
			c := Command{Code: int(cmd.Get("code").Int())}
			if p0 := cmd.Get("parameters.0"); p0.Type == gjson.String {
				c.Text = p0.String()
			}
			page.List = append(page.List, c)
			return true
		})
		e.Pages = append(e.Pages, page)
		return true
	})
	return e
}

// RequestMap loads a map on a background goroutine.
func (p *Project) RequestMap(mapID int) minimap.Request[*minimap.MapData] {
	return minimap.Go(func() (*minimap.MapData, error) {
		m, err := p.LoadMap(mapID)
		if err != nil {
			return nil, err
		}
		return &m.MapData, nil
	})
}

// Tileset returns a tileset from Tilesets.json, read on first use.
func (p *Project) Tileset(id int) (*minimap.Tileset, bool) {
	p.tilesetsOnce.Do(p.loadTilesets)
	ts, ok := p.tilesets[id]
	return ts, ok
}

func (p *Project) loadTilesets() {
	p.tilesets = make(map[int]*minimap.Tileset)
	b, err := p.readData("Tilesets.json")
	if err != nil {
		logger.For("rmmv").WithError(err).Warn("tilesets unavailable")
		return
	}
	gjson.ParseBytes(b).ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.Null {
			return true
		}
		ts := &minimap.Tileset{
			ID:   int(v.Get("id").Int()),
			Mode: int(v.Get("mode").Int()),
		}
		for _, f := range v.Get("flags").Array() {
			ts.Flags = append(ts.Flags, int(f.Int()))
		}
		p.tilesets[ts.ID] = ts
		return true
	})
}

// Actors reads Actors.json.
func (p *Project) Actors() (map[int]Actor, error) {
	b, err := p.readData("Actors.json")
	if err != nil {
		return nil, fmt.Errorf("load actors: %w", err)
	}
	actors := make(map[int]Actor)
	gjson.ParseBytes(b).ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.Null {
			return true
		}
		a := Actor{
			ID:            int(v.Get("id").Int()),
			Name:          v.Get("name").String(),
			CharacterName: v.Get("characterName").String(),
			Note:          v.Get("note").String(),
		}
		a.Meta = ParseMeta(a.Note)
		actors[a.ID] = a
		return true
	})
	return actors, nil
}

// MapInfos reads the map tree from MapInfos.json.
func (p *Project) MapInfos() ([]MapInfo, error) {
	b, err := p.readData("MapInfos.json")
	if err != nil {
		return nil, fmt.Errorf("load map infos: %w", err)
	}
	var infos []MapInfo
	gjson.ParseBytes(b).ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.Null {
			return true
		}
		infos = append(infos, MapInfo{
			ID:       int(v.Get("id").Int()),
			Name:     v.Get("name").String(),
			ParentID: int(v.Get("parentId").Int()),
			Order:    int(v.Get("order").Int()),
		})
		return true
	})
	return infos, nil
}

// SystemImage loads img/system/<name>.png on a background goroutine.
func (p *Project) SystemImage(name string) minimap.Request[image.Image] {
	path := filepath.Join(p.dir, "img", "system", name+".png")
	return minimap.Go(func() (image.Image, error) {
		return loadPNG(path)
	})
}

// LoadSystemImage loads img/system/<name>.png synchronously.
func (p *Project) LoadSystemImage(name string) (image.Image, error) {
	return loadPNG(filepath.Join(p.dir, "img", "system", name+".png"))
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// LoadPicture loads img/pictures/<name>.png synchronously.
func (p *Project) LoadPicture(name string) (image.Image, error) {
	return loadPNG(filepath.Join(p.dir, "img", "pictures", name+".png"))
}

// VehicleTypes are the vehicle keys of System.json in drawing order.
var VehicleTypes = []string{"boat", "ship", "airship"}

// Vehicles reads the vehicle start positions from System.json. Vehicles that
// start on no map are skipped.
func (p *Project) Vehicles() ([]minimap.VehicleState, error) {
	b, err := p.readData("System.json")
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	sys := gjson.ParseBytes(b)
	var out []minimap.VehicleState
	for _, name := range VehicleTypes {
		v := sys.Get(name)
		mapID := int(v.Get("startMapId").Int())
		if mapID <= 0 {
			continue
		}
		out = append(out, minimap.VehicleState{
			Type:  name,
			MapID: mapID,
			X:     int(v.Get("startX").Int()),
			Y:     int(v.Get("startY").Int()),
		})
	}
	return out, nil
}

// StartPosition returns the player's start map and tile from System.json.
func (p *Project) StartPosition() (mapID, x, y int, err error) {
	b, err := p.readData("System.json")
	if err != nil {
		return 0, 0, 0, fmt.Errorf("load start position: %w", err)
	}
	sys := gjson.ParseBytes(b)
	return int(sys.Get("startMapId").Int()), int(sys.Get("startX").Int()), int(sys.Get("startY").Int()), nil
}
