package overlay

// Opacity returns the marker layer opacity for the current refresh counter.
// With a blink duration the layer starts above full and fades as the counter
// climbs; without one it stays opaque.
func Opacity(blinkDuration, updateCount int) int {
	if blinkDuration <= 0 {
		return 255
	}
	v := 320 * (blinkDuration - updateCount) / blinkDuration
	return min(max(v, 0), 255)
}

// Refresh counts frames between periodic marker redraws.
type Refresh struct {
	Every int
	count int
}

// Count returns the frames since the last redraw.
func (r *Refresh) Count() int { return r.count }

// Tick advances one frame.
func (r *Refresh) Tick() { r.count++ }

// Due reports whether a redraw is needed, either forced or periodic.
func (r *Refresh) Due(forced bool) bool {
	return forced || r.count >= r.Every
}

// Reset restarts the count after a redraw.
func (r *Refresh) Reset() { r.count = 0 }
