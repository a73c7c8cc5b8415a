package generator

import (
	"slices"
	"testing"
)

// reachable counts the floor tiles connected to (x, y) through N/E/S/W steps.
func reachable(l *Layout, x, y int) int {
	seen := map[[2]int]bool{{x, y}: true}
	queue := [][2]int{{x, y}}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			n := [2]int{c[0] + d[0], c[1] + d[1]}
			if l.IsFloor(n[0], n[1]) && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen)
}

func countFloor(l *Layout) int {
	n := 0
	for _, f := range l.Floor {
		if f {
			n++
		}
	}
	return n
}

func TestGenerateAllFloorReachable(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		l := Generate(48, 36, seed)
		if len(l.Rooms) < 2 {
			t.Errorf("seed %d: %d rooms, want at least 2", seed, len(l.Rooms))
		}
		if !l.IsFloor(l.StartX, l.StartY) || !l.IsFloor(l.ExitX, l.ExitY) {
			t.Fatalf("seed %d: start (%d,%d) or exit (%d,%d) is not floor", seed, l.StartX, l.StartY, l.ExitX, l.ExitY)
		}
		if got, want := reachable(l, l.StartX, l.StartY), countFloor(l); got != want {
			t.Errorf("seed %d: %d of %d floor tiles reachable from the start", seed, got, want)
		}
	}
}

func TestGenerateBorderIsWall(t *testing.T) {
	l := Generate(40, 30, 7)
	for x := 0; x < l.Width; x++ {
		if l.IsFloor(x, 0) || l.IsFloor(x, l.Height-1) {
			t.Fatalf("floor on the top or bottom border at x=%d", x)
		}
	}
	for y := 0; y < l.Height; y++ {
		if l.IsFloor(0, y) || l.IsFloor(l.Width-1, y) {
			t.Fatalf("floor on the left or right border at y=%d", y)
		}
	}
}

func TestGenerateNamedRooms(t *testing.T) {
	l := Generate(48, 36, 3)
	for i, r := range l.Rooms {
		if r.Name == "" {
			t.Errorf("Rooms[%d] has no name", i)
		}
		cx, cy := r.Center()
		if !l.IsFloor(cx, cy) {
			t.Errorf("Rooms[%d] centre (%d,%d) is not floor", i, cx, cy)
		}
	}
}

func TestGenerateSeed(t *testing.T) {
	a, b := Generate(48, 36, 42), Generate(48, 36, 42)
	if !slices.Equal(a.Floor, b.Floor) || a.StartX != b.StartX || a.StartY != b.StartY {
		t.Error("the same seed gave different layouts")
	}
}

func TestGenerateTiny(t *testing.T) {
	l := Generate(3, 3, 1)
	if len(l.Rooms) != 1 {
		t.Fatalf("len(Rooms) = %d, want 1", len(l.Rooms))
	}
	if !l.IsFloor(l.StartX, l.StartY) {
		t.Error("start is not floor")
	}
}
