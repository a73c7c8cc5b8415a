package devtools

import (
	"mvminimap/pkg/game/minimap"
	"mvminimap/pkg/game/present"
	"mvminimap/pkg/game/state"
)

// Snapshot is the game and minimap state the debug server publishes.
type Snapshot struct {
	Frame    int             `json:"frame"`
	MapID    int             `json:"mapId"`
	MapName  string          `json:"mapName"`
	PlayerX  int             `json:"playerX"`
	PlayerY  int             `json:"playerY"`
	Riding   bool            `json:"riding"`
	Scene    string          `json:"scene"`
	Minimap  MinimapSnapshot `json:"minimap"`
	Messages []string        `json:"messages"`
}

// MinimapSnapshot describes what the minimap shows.
type MinimapSnapshot struct {
	MapID     int                    `json:"mapId"`
	Readiness string                 `json:"readiness"`
	Enabled   bool                   `json:"enabled"`
	Drawn     bool                   `json:"drawn"`
	Layer     string                 `json:"layer"`
	Rect      minimap.Rect           `json:"rect"`
	Zoom      float64                `json:"zoom"`
	Opacity   int                    `json:"opacity"`
	CenterX   float64                `json:"centerX"`
	CenterY   float64                `json:"centerY"`
	Scrolling bool                   `json:"scrolling"`
	Frame     string                 `json:"frame,omitempty"`
	Markings  []minimap.MarkingEntry `json:"markings"`
}

// Capture takes a snapshot of g with the view the sprite computed last.
func Capture(g *state.Game, v present.View, scene string) Snapshot {
	m := g.Session.Minimap
	cx, cy := m.Center()
	snap := Snapshot{
		Frame:   g.Frame,
		MapID:   g.MapID,
		PlayerX: g.Player.X,
		PlayerY: g.Player.Y,
		Riding:  g.Player.Riding,
		Scene:   scene,
		Minimap: MinimapSnapshot{
			MapID:     m.MapID(),
			Readiness: m.Readiness().String(),
			Enabled:   m.Enabled(),
			Drawn:     v.Visible,
			Layer:     v.Layer.String(),
			Rect:      m.Rect(),
			Zoom:      m.Zoom(),
			Opacity:   m.Opacity(),
			CenterX:   cx,
			CenterY:   cy,
			Scrolling: m.Scrolling(),
			Frame:     m.FrameName(),
			Markings:  m.Markings().OnMap(m.MapID()),
		},
		Messages: append([]string(nil), g.Messages...),
	}
	if g.Map != nil {
		snap.MapName = g.Map.DisplayName
	}
	return snap
}
