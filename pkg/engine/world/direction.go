package world

import "math"

// Direction is a facing in numpad notation, as the engine stores it.
type Direction int

// Direction constants
const (
	Down  Direction = 2
	Left  Direction = 4
	Right Direction = 6
	Up    Direction = 8
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{Down, Left, Right, Up}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Up:
		return "Up"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is one of the four facings
func (d Direction) IsValid() bool {
	return d == Down || d == Left || d == Right || d == Up
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return d
	}
	return 10 - d
}

// Delta returns the x and y tile offsets for this direction
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, -1
	default:
		return 0, 0
	}
}

// Rotation returns the clockwise angle in radians that turns an up-facing icon to face d.
// Invalid directions are not rotated.
func (d Direction) Rotation() float64 {
	switch d {
	case Down:
		return math.Pi
	case Left:
		return 270 * math.Pi / 180
	case Right:
		return math.Pi / 2
	default:
		return 0
	}
}
