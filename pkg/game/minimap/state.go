package minimap

import "encoding/json"

type savedState struct {
	MapID     int       `json:"mapId"`
	Rect      Rect      `json:"rect"`
	Mode      Mode      `json:"type"`
	Opacity   int       `json:"opacity"`
	Zoom      float64   `json:"zoom"`
	Visible   bool      `json:"visible"`
	FrameName string    `json:"frameName"`
	Markings  *Markings `json:"markingData"`

	ScrollPolicy   ScrollPolicy `json:"scrollType"`
	ScrollParam    float64      `json:"scrollParam"`
	ScrollDuration int          `json:"scrollDuration"`
	ScrollTargetX  float64      `json:"scrollTargetX"`
	ScrollTargetY  float64      `json:"scrollTargetY"`
	ScrollStartX   float64      `json:"scrollStartX"`
	ScrollStartY   float64      `json:"scrollStartY"`

	CenterX   float64 `json:"minimapX"`
	CenterY   float64 `json:"minimapY"`
	LastBaseX float64 `json:"lastBaseX"`
	LastBaseY float64 `json:"lastBaseY"`
	Frame     Frame   `json:"frame"`

	RequestFrame  bool `json:"requestFrame"`
	RequestMarker bool `json:"requestMarker"`
}

// MarshalJSON saves the viewport, scroll and markings. Map data is not saved.
func (m *Minimap) MarshalJSON() ([]byte, error) {
	return json.Marshal(savedState{
		MapID:     m.mapID,
		Rect:      m.rect,
		Mode:      m.mode,
		Opacity:   m.opacity,
		Zoom:      m.zoom,
		Visible:   m.visible,
		FrameName: m.frameName,
		Markings:  m.markings,

		ScrollPolicy:   m.scroll.policy,
		ScrollParam:    m.scroll.param,
		ScrollDuration: m.scroll.duration,
		ScrollTargetX:  m.scroll.targetX,
		ScrollTargetY:  m.scroll.targetY,
		ScrollStartX:   m.scroll.startX,
		ScrollStartY:   m.scroll.startY,

		CenterX:   m.centerX,
		CenterY:   m.centerY,
		LastBaseX: m.lastBaseX,
		LastBaseY: m.lastBaseY,
		Frame:     m.frame,

		RequestFrame:  m.requestFrame,
		RequestMarker: m.requestMarker,
	})
}

// UnmarshalJSON restores a saved minimap into m, keeping its configuration and
// host. The map data is reloaded on the next OnSceneLoaded.
func (m *Minimap) UnmarshalJSON(b []byte) error {
	s := savedState{Markings: NewMarkings()}
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	m.mapID = s.MapID
	m.rect = s.Rect
	m.mode = s.Mode
	m.opacity = s.Opacity
	m.zoom = s.Zoom
	m.visible = s.Visible
	m.frameName = s.FrameName
	m.markings = s.Markings
	if m.markings == nil {
		m.markings = NewMarkings()
	}
	m.scroll = Scroll{
		policy:   s.ScrollPolicy,
		param:    s.ScrollParam,
		duration: s.ScrollDuration,
		targetX:  s.ScrollTargetX,
		targetY:  s.ScrollTargetY,
		startX:   s.ScrollStartX,
		startY:   s.ScrollStartY,
	}
	m.centerX, m.centerY = s.CenterX, s.CenterY
	m.lastBaseX, m.lastBaseY = s.LastBaseX, s.LastBaseY
	m.frame = s.Frame
	m.requestFrame = s.RequestFrame
	m.requestMarker = s.RequestMarker

	m.reset()
	m.readiness = Unloaded
	m.requestCreate = true
	return nil
}
