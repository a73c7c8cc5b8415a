package minimap

import (
	"image"

	"mvminimap/pkg/engine/world"
)

// Layer indices inside MapData.Data.
const (
	LayerCount  = 6
	RegionLayer = 5
)

// Scroll types as stored on a map.
const (
	ScrollNone = iota
	ScrollLoopVertical
	ScrollLoopHorizontal
	ScrollLoopBoth
)

// MapData is the raw map the host hands over.
type MapData struct {
	ID         int
	Width      int
	Height     int
	ScrollType int
	TilesetID  int
	// Data holds LayerCount layers of tile ids, indexed (z*Height+y)*Width+x.
	Data   []int
	Meta   map[string]string
	Events []EventData
}

// EventData is the static part of an event as stored on the map.
type EventData struct {
	ID   int
	X, Y int
	Meta map[string]string
}

// TileID returns the tile at (x, y) on layer z, or 0 when out of range.
func (m *MapData) TileID(x, y, z int) int {
	i := (z*m.Height+y)*m.Width + x
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height || i < 0 || i >= len(m.Data) {
		return 0
	}
	return m.Data[i]
}

// LoopHorizontal reports whether the map wraps on the x axis.
func (m *MapData) LoopHorizontal() bool {
	return m.ScrollType == ScrollLoopHorizontal || m.ScrollType == ScrollLoopBoth
}

// LoopVertical reports whether the map wraps on the y axis.
func (m *MapData) LoopVertical() bool {
	return m.ScrollType == ScrollLoopVertical || m.ScrollType == ScrollLoopBoth
}

// Tileset carries the passability flags and the mode of a tileset.
type Tileset struct {
	ID    int
	Mode  int
	Flags []int
}

// Flag returns the flag word of tileID, 0 when unknown.
func (t *Tileset) Flag(tileID int) int {
	if t == nil || tileID < 0 || tileID >= len(t.Flags) {
		return 0
	}
	return t.Flags[tileID]
}

// IsOverworld reports whether the tileset is a field (world map) tileset.
func (t *Tileset) IsOverworld() bool {
	return t != nil && t.Mode == 0
}

// MapDataSource loads map data and tilesets.
type MapDataSource interface {
	RequestMap(mapID int) Request[*MapData]
	Tileset(id int) (*Tileset, bool)
}

// ImageSource loads named system images such as an explicit minimap picture.
type ImageSource interface {
	SystemImage(name string) Request[image.Image]
}

// PlayerState is the player as seen by the minimap.
type PlayerState struct {
	world.Character
	// Riding is true while in a vehicle and not boarding or alighting.
	Riding bool
}

// EventState is a live event on the active map.
type EventState struct {
	ID          int
	X, Y        int
	Marker      int
	PageIndex   int
	Transparent bool
}

// MarkerIndex returns the icon to draw for the event, -1 for none.
func (e EventState) MarkerIndex() int {
	if e.PageIndex >= 0 && !e.Transparent {
		return e.Marker
	}
	return -1
}

// VehicleState is a boat, ship or airship.
type VehicleState struct {
	Type    string
	MapID   int
	X, Y    int
	Driving bool
}

// EntityLocator exposes the live scene to the minimap.
type EntityLocator interface {
	ActiveMapID() int
	Player() PlayerState
	// DisplayCenter is the display origin plus the screen centre, in tiles.
	DisplayCenter() (x, y float64)
	Event(id int) (EventState, bool)
	Events() []EventState
	Vehicles() []VehicleState
}

// Host bundles the collaborators the minimap depends on.
type Host struct {
	Maps   MapDataSource
	Images ImageSource
	World  EntityLocator
}
