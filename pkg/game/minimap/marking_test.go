package minimap

import (
	"encoding/json"
	"testing"
)

func TestMarkingsOrderedByID(t *testing.T) {
	s := NewMarkings()
	for _, id := range []int{7, 2, 5} {
		s.Put(id, Marking{MapID: 1, Kind: CircleAtPoint})
	}
	got := s.Entries()
	want := []int{2, 5, 7}
	if len(got) != len(want) {
		t.Fatalf("Entries() len = %d, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.ID != want[i] {
			t.Errorf("Entries()[%d].ID = %d, want %d", i, e.ID, want[i])
		}
	}
}

func TestMarkingsRemoveUnknown(t *testing.T) {
	s := NewMarkings()
	s.Put(1, Marking{Kind: IconAtPoint})
	s.Remove(42)
	if s.Len() != 1 {
		t.Errorf("Len() = %d after removing an unknown id, want 1", s.Len())
	}
	s.Remove(1)
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestMarkingsOnMap(t *testing.T) {
	s := NewMarkings()
	s.Put(1, Marking{MapID: 1, Kind: CircleAtPoint})
	s.Put(2, Marking{MapID: 2, Kind: CircleAtPoint})
	s.Put(3, Marking{MapID: 1, Kind: RectAtPoint})

	got := s.OnMap(1)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("OnMap(1) = %+v, want ids 1 and 3", got)
	}
}

func TestMarkingsJSON(t *testing.T) {
	s := NewMarkings()
	s.Put(3, Marking{MapID: 2, Kind: RectAtPoint, X: 1, Y: 2, Width: 3, Height: 4, Color: 5})
	s.Put(1, Marking{MapID: 2, Kind: IconOnEvent, EventID: 9, Icon: 4})

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	restored := NewMarkings()
	if err := json.Unmarshal(b, restored); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, id := range []int{1, 3} {
		want, _ := s.Get(id)
		got, ok := restored.Get(id)
		if !ok || got != want {
			t.Errorf("restored marking %d = %+v, want %+v", id, got, want)
		}
	}
}

func TestSetMarkingRejectsUnknownKind(t *testing.T) {
	f := readyFixture(10, 10, ScrollNone)
	f.m.ClearMarkerRequest()
	if f.m.SetMarking(1, Marking{MapID: 1, Kind: MarkingKind(5)}) {
		t.Error("SetMarking() accepted kind 5")
	}
	if f.m.Markings().Len() != 0 {
		t.Error("SetMarking() stored a marking of unknown kind")
	}
	if f.m.MarkerRequested() {
		t.Error("SetMarking() requested a redraw for a rejected marking")
	}
}

func TestMarkingDataFollowsShownMap(t *testing.T) {
	f := readyFixture(10, 10, ScrollNone)
	f.m.SetMarking(1, Marking{MapID: 1, Kind: CircleAtPoint})
	f.m.SetMarking(2, Marking{MapID: 3, Kind: CircleAtPoint})

	if got := f.m.MarkingData(); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("MarkingData() = %+v, want only marking 1", got)
	}
	f.m.RemoveMarking(1)
	if got := f.m.MarkingData(); len(got) != 0 {
		t.Errorf("MarkingData() = %+v after removal, want none", got)
	}
}

func TestLiveMarkers(t *testing.T) {
	f := readyFixture(10, 10, ScrollNone)
	f.world.active = 1
	f.world.events = map[int]EventState{
		1: {ID: 1, X: 1, Y: 1, Marker: 3},
		2: {ID: 2, X: 2, Y: 2, Marker: 4, Transparent: true},
		3: {ID: 3, X: 3, Y: 3, Marker: 5, PageIndex: -1},
		4: {ID: 4, X: 4, Y: 4, Marker: -1},
	}
	f.world.vehicles = []VehicleState{
		{Type: "boat", MapID: 1, X: 5, Y: 5},
		{Type: "ship", MapID: 1, X: 6, Y: 6, Driving: true},
		{Type: "airship", MapID: 2, X: 7, Y: 7},
	}

	got := f.m.LiveMarkers()
	want := []IconMarker{{X: 1, Y: 1, Icon: 3}, {X: 5, Y: 5, Icon: 2}}
	if len(got) != len(want) {
		t.Fatalf("LiveMarkers() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LiveMarkers()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	f.world.active = 2
	if got := f.m.LiveMarkers(); len(got) != 1 || got[0].Icon != 2 {
		t.Errorf("LiveMarkers() on another map = %+v, want the parked boat only", got)
	}
}
