package minimap

import "math"

// ScrollPolicy selects how a programmatic scroll moves.
type ScrollPolicy int

const (
	// ScrollSpeed moves linearly; the parameter is tiles per 8 frames.
	ScrollSpeed ScrollPolicy = iota
	// ScrollLinear moves linearly over a fixed number of frames.
	ScrollLinear
	// ScrollDecelerate slows down toward the target.
	ScrollDecelerate
	// ScrollEase accelerates then decelerates along a cosine.
	ScrollEase
)

// Scroll is the programmatic scroll animation.
type Scroll struct {
	policy   ScrollPolicy
	param    float64
	duration int
	targetX  float64
	targetY  float64
	startX   float64
	startY   float64
}

// Active reports whether frames remain in the animation.
func (s Scroll) Active() bool { return s.duration > 0 }

// Policy returns the active scroll policy and its parameter.
func (m *Minimap) Policy() (ScrollPolicy, float64) {
	return m.scroll.policy, m.scroll.param
}

// Scrolling reports whether a programmatic scroll is in progress.
func (m *Minimap) Scrolling() bool { return m.scroll.Active() }

// SetScrollType sets the policy, clamped to 0..3, and a non-negative parameter.
func (m *Minimap) SetScrollType(policy int, param float64) {
	if policy < int(ScrollSpeed) {
		policy = int(ScrollSpeed)
	}
	if policy > int(ScrollEase) {
		policy = int(ScrollEase)
	}
	m.scroll.policy = ScrollPolicy(policy)
	m.scroll.param = math.Max(param, 0)
}

// StartScroll animates the viewport center toward (x, y).
func (m *Minimap) StartScroll(x, y float64) {
	s := &m.scroll
	if s.policy == ScrollSpeed && s.param > 0 {
		d := math.Hypot(x-m.centerX, y-m.centerY) * 8
		s.duration = int(math.Round(d / s.param))
	} else {
		s.duration = int(math.Round(s.param))
	}
	if s.duration == 0 {
		m.setCenterX(x)
		m.setCenterY(y)
		return
	}
	s.targetX, s.targetY = x, y
	s.startX, s.startY = m.centerX, m.centerY
}

// ResetScroll scrolls back onto the base position.
func (m *Minimap) ResetScroll() {
	m.StartScroll(m.Base())
}

func (m *Minimap) updateScroll() {
	if s := &m.scroll; s.duration > 0 {
		d := float64(s.duration)
		var mx, my float64
		switch s.policy {
		case ScrollSpeed, ScrollLinear:
			mx = (m.centerX*(d-1) + s.targetX) / d
			my = (m.centerY*(d-1) + s.targetY) / d
		case ScrollDecelerate:
			mx = decelerate(d, s.targetX, m.centerX)
			my = decelerate(d, s.targetY, m.centerY)
		case ScrollEase:
			rate := (math.Cos((d-1)/s.param*math.Pi) + 1) / 2
			mx = math.Round(s.startX - (s.startX-s.targetX)*rate)
			my = math.Round(s.startY - (s.startY-s.targetY)*rate)
		}
		m.setCenterX(mx)
		m.setCenterY(my)
		s.duration--
	} else {
		m.follow()
	}
	m.lastBaseX, m.lastBaseY = m.Base()
}

func decelerate(d, target, current float64) float64 {
	return math.Round(target + (current-target)*(d-1)*(d-1)/(d*d))
}

// follow nudges the center by the base movement. On bounded axes the nudge only
// happens once the base has passed the center in the direction it moves.
func (m *Minimap) follow() {
	x1, y1 := m.lastBaseX, m.lastBaseY
	x2, y2 := m.Base()
	if m.mode == ModeFull || !m.LoopHorizontal() {
		if (x2 < x1 && x2 < m.centerX) || (x2 > x1 && x2 > m.centerX) {
			m.setCenterX(m.centerX + x2 - x1)
		}
	} else if x2 != x1 {
		m.setCenterX(m.centerX + x2 - x1)
	}
	if m.mode == ModeFull || !m.LoopVertical() {
		if (y2 > y1 && y2 > m.centerY) || (y2 < y1 && y2 < m.centerY) {
			m.setCenterY(m.centerY + y2 - y1)
		}
	} else if y2 != y1 {
		m.setCenterY(m.centerY + y2 - y1)
	}
}
