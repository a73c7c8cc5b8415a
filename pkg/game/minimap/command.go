package minimap

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Variables resolves game variables referenced from command arguments.
type Variables interface {
	Value(n int) float64
}

// VariableMap is a Variables backed by a map. Unset variables read as 0.
type VariableMap map[int]float64

func (v VariableMap) Value(n int) float64 { return v[n] }

var (
	// ErrUnknownCommand is returned for names that are not minimap commands.
	ErrUnknownCommand = errors.New("unknown minimap command")

	// ErrBadArgument is returned when a command has too few or malformed arguments.
	ErrBadArgument = errors.New("bad command arguments")
)

var variableRef = regexp.MustCompile(`(?i)\\?v\[(\d+)\]`)

// Expand substitutes v[n] and \V[n] references with variable values.
func Expand(arg string, vars Variables) string {
	if vars == nil {
		return arg
	}
	return variableRef.ReplaceAllStringFunc(arg, func(ref string) string {
		n, _ := strconv.Atoi(variableRef.FindStringSubmatch(ref)[1])
		return strconv.FormatFloat(vars.Value(n), 'f', -1, 64)
	})
}

// Command is one parsed plugin command.
type Command interface {
	apply(m *Minimap)
}

type (
	// ShowViewport reconfigures the viewport (MiniMap).
	ShowViewport struct {
		Rect    Rect
		Mode    Mode
		Opacity int
		Zoom    float64
	}
	// SetVisible shows or hides the minimap (ShowMiniMap, HideMiniMap).
	SetVisible struct{ Visible bool }
	// SwitchMap displays another map (ChangeMinimap).
	SwitchMap struct{ MapID int }
	// SetFrameOverlay sets the decorative frame image (SetMinimapFrame).
	SetFrameOverlay struct{ Name string }
	// ClearFrameOverlay removes the frame image (ClearMinimapFrame).
	ClearFrameOverlay struct{}
	// SetZoom changes the zoom only (SetMinimapZoom).
	SetZoom struct{ Zoom float64 }
	// AddMarking creates or replaces a marking. MapID 0 means the shown map,
	// or the active map for IconAtPoint.
	AddMarking struct {
		ID      int
		Marking Marking
	}
	// RemoveMarking deletes a marking (DeleteMarking).
	RemoveMarking struct{ ID int }
	// SetScrollPolicy sets the scroll policy (SetMinimapScroll).
	SetScrollPolicy struct {
		Policy int
		Param  float64
	}
	// StartScroll scrolls to a tile (StartMinimapScroll).
	StartScroll struct{ X, Y float64 }
	// ResetScroll scrolls back to the player (ResetMinimapScroll).
	ResetScroll struct{}
)

func (c ShowViewport) apply(m *Minimap)      { m.Start(c.Rect, c.Mode, c.Opacity, c.Zoom) }
func (c SetVisible) apply(m *Minimap)        { m.SetVisible(c.Visible) }
func (c SwitchMap) apply(m *Minimap)         { m.Setup(c.MapID) }
func (c SetFrameOverlay) apply(m *Minimap)   { m.SetFrameName(c.Name) }
func (c ClearFrameOverlay) apply(m *Minimap) { m.SetFrameName("") }
func (c SetZoom) apply(m *Minimap)           { m.SetZoom(c.Zoom) }
func (c RemoveMarking) apply(m *Minimap)     { m.RemoveMarking(c.ID) }
func (c SetScrollPolicy) apply(m *Minimap)   { m.SetScrollType(c.Policy, c.Param) }
func (c StartScroll) apply(m *Minimap)       { m.StartScroll(c.X, c.Y) }
func (c ResetScroll) apply(m *Minimap)       { m.ResetScroll() }

func (c AddMarking) apply(m *Minimap) {
	mk := c.Marking
	if mk.MapID == 0 {
		if mk.Kind == IconAtPoint {
			mk.MapID = m.ActiveMapID()
		} else {
			mk.MapID = m.mapID
		}
	}
	m.SetMarking(c.ID, mk)
}

// Apply runs a parsed command against m.
func Apply(m *Minimap, c Command) {
	c.apply(m)
}

type argReader struct {
	name string
	args []string
	vars Variables
	err  error
}

func (r *argReader) num(i int) float64 {
	if r.err != nil {
		return 0
	}
	if i >= len(r.args) {
		r.err = fmt.Errorf("%w: %s needs argument %d", ErrBadArgument, r.name, i+1)
		return 0
	}
	s := strings.TrimSpace(Expand(r.args[i], r.vars))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = fmt.Errorf("%w: %s argument %d %q: %v", ErrBadArgument, r.name, i+1, r.args[i], err)
		return 0
	}
	return v
}

func (r *argReader) int(i int) int {
	return int(r.num(i))
}

// Parse builds a command from its canonical name and raw arguments.
func Parse(name string, args []string, vars Variables) (Command, error) {
	r := &argReader{name: name, args: args, vars: vars}
	var c Command
	switch name {
	case "MiniMap":
		zoom := 1.0
		if len(args) > 6 && args[6] != "" {
			zoom = max(r.num(6), 0)
		}
		c = ShowViewport{
			Rect: Rect{
				X:      r.int(0),
				Y:      r.int(1),
				Width:  max(r.int(2), 0),
				Height: max(r.int(3), 0),
			},
			Mode:    Mode(r.int(4)),
			Opacity: min(max(r.int(5), 0), 255),
			Zoom:    zoom,
		}
	case "HideMiniMap":
		c = SetVisible{Visible: false}
	case "ShowMiniMap":
		c = SetVisible{Visible: true}
	case "ChangeMinimap":
		c = SwitchMap{MapID: r.int(0)}
	case "SetMinimapFrame":
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: %s needs a name", ErrBadArgument, name)
		}
		c = SetFrameOverlay{Name: args[0]}
	case "ClearMinimapFrame":
		c = ClearFrameOverlay{}
	case "SetMinimapZoom":
		c = SetZoom{Zoom: r.num(0)}
	case "MarkingCirEve":
		c = AddMarking{ID: r.int(0), Marking: Marking{
			MapID: r.int(1), Kind: CircleOnEvent,
			EventID: r.int(2), Radius: r.num(3), Color: r.int(4),
		}}
	case "MarkingCirPos":
		c = AddMarking{ID: r.int(0), Marking: Marking{
			MapID: r.int(1), Kind: CircleAtPoint,
			X: r.num(2), Y: r.num(3), Radius: r.num(4), Color: r.int(5),
		}}
	case "MarkingRecPos":
		c = AddMarking{ID: r.int(0), Marking: Marking{
			MapID: r.int(1), Kind: RectAtPoint,
			X: r.num(2), Y: r.num(3), Width: r.num(4), Height: r.num(5), Color: r.int(6),
		}}
	case "MarkingIcoEve":
		c = AddMarking{ID: r.int(0), Marking: Marking{
			MapID: r.int(1), Kind: IconOnEvent,
			EventID: r.int(2), Icon: r.int(3),
		}}
	case "MarkingIcoPos":
		c = AddMarking{ID: r.int(0), Marking: Marking{
			MapID: r.int(1), Kind: IconAtPoint,
			X: r.num(2), Y: r.num(3), Icon: r.int(4),
		}}
	case "DeleteMarking":
		c = RemoveMarking{ID: r.int(0)}
	case "SetMinimapScroll":
		c = SetScrollPolicy{Policy: r.int(0), Param: r.num(1)}
	case "StartMinimapScroll":
		c = StartScroll{X: r.num(0), Y: r.num(1)}
	case "ResetMinimapScroll":
		c = ResetScroll{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if r.err != nil {
		return nil, r.err
	}
	return c, nil
}
