package world

import (
	"math"
	"testing"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		d        Direction
		dx, dy   int
		opposite Direction
		rotation float64
	}{
		{Down, 0, 1, Up, math.Pi},
		{Left, -1, 0, Right, 3 * math.Pi / 2},
		{Right, 1, 0, Left, math.Pi / 2},
		{Up, 0, -1, Down, 0},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			if dx, dy := tt.d.Delta(); dx != tt.dx || dy != tt.dy {
				t.Errorf("Delta() = %d,%d, want %d,%d", dx, dy, tt.dx, tt.dy)
			}
			if got := tt.d.Opposite(); got != tt.opposite {
				t.Errorf("Opposite() = %v, want %v", got, tt.opposite)
			}
			if got := tt.d.Rotation(); math.Abs(got-tt.rotation) > 1e-9 {
				t.Errorf("Rotation() = %v, want %v", got, tt.rotation)
			}
		})
	}
	if Direction(5).IsValid() || Direction(5).Rotation() != 0 {
		t.Error("Direction(5) should be invalid and unrotated")
	}
}

func TestCharacterMove(t *testing.T) {
	c := NewCharacter(0, 0)
	if c.Move(Left, 10, 10, false, false) {
		t.Error("Move(Left) off the edge should fail")
	}
	if !c.Move(Right, 10, 10, false, false) || c.X != 1 || !c.IsMoving() {
		t.Fatalf("Move(Right) = %+v", c)
	}
	if got := c.StepDistance(); got != 1 {
		t.Errorf("StepDistance() = %v, want 1", got)
	}
	c.Advance(0.25)
	c.Advance(0.25)
	if c.RealX != 0.5 || c.StepDistance() != 0.5 {
		t.Errorf("RealX = %v, want 0.5", c.RealX)
	}
	c.Advance(1)
	if c.IsMoving() || c.RealX != 1 {
		t.Errorf("Advance() overshot: %+v", c)
	}
}

func TestCharacterMove_Wrap(t *testing.T) {
	c := NewCharacter(9, 0)
	if !c.Move(Right, 10, 10, true, false) {
		t.Fatal("Move(Right) on a looping map should wrap")
	}
	if c.X != 0 || c.RealX != -1 {
		t.Errorf("after wrap X,RealX = %d,%v, want 0,-1", c.X, c.RealX)
	}
	c = NewCharacter(0, 0)
	if !c.Move(Up, 10, 10, false, true) || c.Y != 9 || c.RealY != 10 {
		t.Errorf("Move(Up) wrap = %+v", c)
	}
	if c.Facing != Up {
		t.Errorf("Facing = %v, want Up", c.Facing)
	}
}
