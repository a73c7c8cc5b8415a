package minimap

import (
	"encoding/json"

	g "github.com/zyedidia/generic"
	"github.com/zyedidia/generic/avl"
)

// MarkingKind selects the shape of a marking.
type MarkingKind int

const (
	CircleOnEvent MarkingKind = iota
	CircleAtPoint
	RectAtPoint
	IconOnEvent
	IconAtPoint
)

// Valid reports whether k is one of the five known kinds.
func (k MarkingKind) Valid() bool {
	return k >= CircleOnEvent && k <= IconAtPoint
}

func (k MarkingKind) String() string {
	switch k {
	case CircleOnEvent:
		return "circle-on-event"
	case CircleAtPoint:
		return "circle-at-point"
	case RectAtPoint:
		return "rect-at-point"
	case IconOnEvent:
		return "icon-on-event"
	case IconAtPoint:
		return "icon-at-point"
	}
	return "unknown"
}

// FollowsEvent reports whether the marking is anchored to a live event.
func (k MarkingKind) FollowsEvent() bool {
	return k == CircleOnEvent || k == IconOnEvent
}

// Marking is a user-placed annotation. Only the fields of its Kind are used.
type Marking struct {
	MapID   int         `json:"mapId"`
	Kind    MarkingKind `json:"kind"`
	EventID int         `json:"eventId,omitempty"`
	X       float64     `json:"x,omitempty"`
	Y       float64     `json:"y,omitempty"`
	Radius  float64     `json:"radius,omitempty"`
	Width   float64     `json:"width,omitempty"`
	Height  float64     `json:"height,omitempty"`
	Color   int         `json:"color,omitempty"`
	Icon    int         `json:"icon,omitempty"`
}

// MarkingEntry pairs a marking with its id.
type MarkingEntry struct {
	ID int `json:"id"`
	Marking
}

// Markings is an id-ordered collection of markings.
type Markings struct {
	tree *avl.Tree[int, Marking]
}

// NewMarkings returns an empty collection.
func NewMarkings() *Markings {
	return &Markings{tree: avl.New[int, Marking](g.Less[int])}
}

// Put inserts or replaces the marking with the given id.
func (s *Markings) Put(id int, m Marking) {
	s.tree.Put(id, m)
}

// Remove deletes id. Removing an unknown id is a no-op.
func (s *Markings) Remove(id int) {
	if _, ok := s.tree.Get(id); ok {
		s.tree.Remove(id)
	}
}

// Get looks up a marking by id.
func (s *Markings) Get(id int) (Marking, bool) {
	return s.tree.Get(id)
}

// Len returns the number of markings.
func (s *Markings) Len() int {
	return s.tree.Size()
}

// Entries returns every marking in ascending id order.
func (s *Markings) Entries() []MarkingEntry {
	out := make([]MarkingEntry, 0, s.tree.Size())
	s.tree.Each(func(id int, m Marking) {
		out = append(out, MarkingEntry{ID: id, Marking: m})
	})
	return out
}

// OnMap returns the markings owned by mapID in ascending id order.
func (s *Markings) OnMap(mapID int) []MarkingEntry {
	var out []MarkingEntry
	s.tree.Each(func(id int, m Marking) {
		if m.MapID == mapID {
			out = append(out, MarkingEntry{ID: id, Marking: m})
		}
	})
	return out
}

func (s *Markings) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Entries())
}

func (s *Markings) UnmarshalJSON(b []byte) error {
	var entries []MarkingEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return err
	}
	s.tree = avl.New[int, Marking](g.Less[int])
	for _, e := range entries {
		s.tree.Put(e.ID, e.Marking)
	}
	return nil
}
