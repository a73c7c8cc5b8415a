package world

// Character is the position state shared by the player, followers, events and vehicles.
// X and Y are the logical tile; RealX and RealY move toward them while walking.
type Character struct {
	X, Y         int
	RealX, RealY float64
	Facing       Direction
}

// NewCharacter places a character on a tile facing down.
func NewCharacter(x, y int) Character {
	return Character{X: x, Y: y, RealX: float64(x), RealY: float64(y), Facing: Down}
}

// IsMoving reports whether the real position still lags the logical tile.
func (c *Character) IsMoving() bool {
	return c.RealX != float64(c.X) || c.RealY != float64(c.Y)
}

// StepDistance returns how far the character still has to travel on its current step.
func (c *Character) StepDistance() float64 {
	if d := abs(c.RealX - float64(c.X)); d != 0 {
		return d
	}
	return abs(c.RealY - float64(c.Y))
}

// Move starts a one-tile step toward d, wrapping on looping axes when width or height is set.
func (c *Character) Move(d Direction, width, height int, loopH, loopV bool) bool {
	dx, dy := d.Delta()
	c.Facing = d
	nx, ny := c.X+dx, c.Y+dy
	if loopH && width > 0 {
		nx = (nx%width + width) % width
	}
	if loopV && height > 0 {
		ny = (ny%height + height) % height
	}
	if (width > 0 && (nx < 0 || nx >= width)) || (height > 0 && (ny < 0 || ny >= height)) {
		return false
	}
	// keep the real position continuous across a wrap
	c.RealX += float64(nx - c.X - dx)
	c.RealY += float64(ny - c.Y - dy)
	c.X, c.Y = nx, ny
	return true
}

// Advance moves the real position toward the logical tile by speed tiles.
func (c *Character) Advance(speed float64) {
	c.RealX = approach(c.RealX, float64(c.X), speed)
	c.RealY = approach(c.RealY, float64(c.Y), speed)
}

func approach(from, to, step float64) float64 {
	if from < to {
		return min(from+step, to)
	}
	return max(from-step, to)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
