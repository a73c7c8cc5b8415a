package minimap

import "mvminimap/pkg/engine/logger"

// SetMarking stores m under id. Unknown kinds are ignored.
func (mm *Minimap) SetMarking(id int, m Marking) bool {
	if !m.Kind.Valid() {
		logger.For("minimap").WithField("id", id).WithField("kind", int(m.Kind)).Debug("ignoring marking of unknown kind")
		return false
	}
	mm.markings.Put(id, m)
	mm.requestMarker = true
	return true
}

// RemoveMarking deletes id.
func (mm *Minimap) RemoveMarking(id int) {
	mm.markings.Remove(id)
	mm.requestMarker = true
}

// MarkingData returns the markings owned by the shown map.
func (mm *Minimap) MarkingData() []MarkingEntry {
	return mm.markings.OnMap(mm.mapID)
}

// ActiveMapID is the map the player is on, 0 without a host.
func (mm *Minimap) ActiveMapID() int {
	if mm.host.World == nil {
		return 0
	}
	return mm.host.World.ActiveMapID()
}

// Event looks up a live event on the active map.
func (mm *Minimap) Event(id int) (EventState, bool) {
	if mm.host.World == nil {
		return EventState{}, false
	}
	return mm.host.World.Event(id)
}

// Player returns the player state.
func (mm *Minimap) Player() PlayerState {
	if mm.host.World == nil {
		return PlayerState{}
	}
	return mm.host.World.Player()
}

// IconMarker is an icon drawn for a live event or a parked vehicle.
type IconMarker struct {
	X, Y int
	Icon int
}

// LiveMarkers returns the icons of events and vehicles. Events only count when
// the shown map is the active one.
func (mm *Minimap) LiveMarkers() []IconMarker {
	w := mm.host.World
	if w == nil {
		return nil
	}
	var out []IconMarker
	if w.ActiveMapID() == mm.mapID {
		for _, e := range w.Events() {
			if n := e.MarkerIndex(); n >= 0 {
				out = append(out, IconMarker{X: e.X, Y: e.Y, Icon: n})
			}
		}
	}
	for _, v := range w.Vehicles() {
		if n := mm.vehicleMarker(v); n >= 0 {
			out = append(out, IconMarker{X: v.X, Y: v.Y, Icon: n})
		}
	}
	return out
}

func (mm *Minimap) vehicleMarker(v VehicleState) int {
	if v.Driving || v.MapID != mm.mapID {
		return -1
	}
	if n, ok := mm.params.VehicleOffMarkers[v.Type]; ok {
		return n
	}
	return -1
}
