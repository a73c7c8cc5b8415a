package minimap

import (
	"errors"
	"image"

	"mvminimap/pkg/engine/world"
	"mvminimap/pkg/game/config"
)

// pendingRequest completes when done is set.
type pendingRequest[T any] struct {
	done bool
	v    T
	err  error
}

func (r *pendingRequest[T]) Done() bool         { return r.done }
func (r *pendingRequest[T]) Result() (T, error) { return r.v, r.err }

type fakeMaps struct {
	maps     map[int]*MapData
	tilesets map[int]*Tileset
	// deferred requests wait until released
	deferred bool
	pending  []*pendingRequest[*MapData]
	requests int
}

func (f *fakeMaps) RequestMap(mapID int) Request[*MapData] {
	f.requests++
	data, ok := f.maps[mapID]
	var err error
	if !ok {
		err = errors.New("no such map")
	}
	if f.deferred {
		r := &pendingRequest[*MapData]{v: data, err: err}
		f.pending = append(f.pending, r)
		return r
	}
	return Resolved(data, err)
}

func (f *fakeMaps) Tileset(id int) (*Tileset, bool) {
	ts, ok := f.tilesets[id]
	return ts, ok
}

func (f *fakeMaps) release() {
	for _, r := range f.pending {
		r.done = true
	}
	f.pending = nil
}

type fakeImages struct {
	images map[string]image.Image
}

func (f *fakeImages) SystemImage(name string) Request[image.Image] {
	img, ok := f.images[name]
	if !ok {
		return Resolved[image.Image](nil, errors.New("missing image"))
	}
	return Resolved(img, nil)
}

type fakeWorld struct {
	active   int
	player   PlayerState
	display  [2]float64
	events   map[int]EventState
	vehicles []VehicleState
}

func (w *fakeWorld) ActiveMapID() int                  { return w.active }
func (w *fakeWorld) Player() PlayerState               { return w.player }
func (w *fakeWorld) DisplayCenter() (float64, float64) { return w.display[0], w.display[1] }
func (w *fakeWorld) Vehicles() []VehicleState          { return w.vehicles }

func (w *fakeWorld) Event(id int) (EventState, bool) {
	e, ok := w.events[id]
	return e, ok
}

func (w *fakeWorld) Events() []EventState {
	out := make([]EventState, 0, len(w.events))
	for id := 1; len(out) < len(w.events); id++ {
		if e, ok := w.events[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

func (w *fakeWorld) placePlayer(x, y float64) {
	w.player.Character = world.NewCharacter(int(x), int(y))
	w.player.RealX, w.player.RealY = x, y
}

func newMapData(id, width, height, scrollType int) *MapData {
	return &MapData{
		ID:         id,
		Width:      width,
		Height:     height,
		ScrollType: scrollType,
		TilesetID:  1,
		Data:       make([]int, LayerCount*width*height),
		Meta:       map[string]string{},
	}
}

func setTile(d *MapData, x, y, z, tileID int) {
	d.Data[(z*d.Height+y)*d.Width+x] = tileID
}

type fixture struct {
	params *config.Params
	maps   *fakeMaps
	world  *fakeWorld
	images *fakeImages
	m      *Minimap
}

// newFixture builds a ready minimap on map 1 with the given data. The player
// stands on map 99 so the base position is the map center.
func newFixture(data *MapData) *fixture {
	f := &fixture{
		params: config.Default(),
		maps: &fakeMaps{
			maps:     map[int]*MapData{data.ID: data},
			tilesets: map[int]*Tileset{1: {ID: 1, Mode: 1, Flags: make([]int, 8192)}},
		},
		world:  &fakeWorld{active: 99, events: map[int]EventState{}},
		images: &fakeImages{images: map[string]image.Image{}},
	}
	f.m = New(f.params, Host{Maps: f.maps, Images: f.images, World: f.world})
	f.m.Setup(data.ID)
	f.m.IsReady()
	return f
}

func (f *fixture) tick(n int) {
	for i := 0; i < n; i++ {
		f.m.Tick()
	}
}
