package entity

import (
	"image/color"
	"testing"

	"chosenoffset.com/squarefield/internal/render"
)

type heldKeys map[string]bool

func (h heldKeys) Held(key string) bool { return h[key] }

func TestMoveSingleAxis(t *testing.T) {
	tests := []struct {
		name   string
		keys   heldKeys
		dx, dy float64
	}{
		{"arrow left", heldKeys{"arrowleft": true}, -6, 0},
		{"a", heldKeys{"a": true}, -6, 0},
		{"arrow right", heldKeys{"arrowright": true}, 6, 0},
		{"d", heldKeys{"d": true}, 6, 0},
		{"arrow up", heldKeys{"arrowup": true}, 0, -6},
		{"w", heldKeys{"w": true}, 0, -6},
		{"arrow down", heldKeys{"arrowdown": true}, 0, 6},
		{"s", heldKeys{"s": true}, 0, 6},
		{"both aliases count once", heldKeys{"a": true, "arrowleft": true}, -6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(400, 300, DefaultOptions(), nil)
			for i := 1; i <= 3; i++ {
				if !e.Move(tt.keys) {
					t.Fatalf("Expected move to report movement")
				}
				wantX := 400 + float64(i)*tt.dx
				wantY := 300 + float64(i)*tt.dy
				if e.X != wantX || e.Y != wantY {
					t.Errorf("After %d moves expected (%v, %v), got (%v, %v)", i, wantX, wantY, e.X, e.Y)
				}
			}
		})
	}
}

func TestMoveDiagonalIsNotNormalized(t *testing.T) {
	e := New(400, 300, DefaultOptions(), nil)
	if !e.Move(heldKeys{"arrowup": true, "a": true}) {
		t.Fatal("Expected diagonal move to report movement")
	}
	if e.X != 394 || e.Y != 294 {
		t.Errorf("Expected (394, 294), got (%v, %v)", e.X, e.Y)
	}
}

func TestMoveNoKeys(t *testing.T) {
	e := New(400, 300, DefaultOptions(), nil)
	cases := []heldKeys{
		{},
		{"q": true, " ": true},
		{"a": false, "d": false},
		{"a": true, "d": true},
	}
	for _, keys := range cases {
		if e.Move(keys) {
			t.Errorf("Expected no movement for %v", keys)
		}
	}
	if e.X != 400 || e.Y != 300 {
		t.Errorf("Expected position unchanged, got (%v, %v)", e.X, e.Y)
	}
}

func TestClampBounds(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
		w, h         float64
	}{
		{"inside", 400, 300, 400, 300, 800, 600},
		{"past right edge", 1000, 300, 725, 300, 800, 600},
		{"past left edge", -50, 300, 75, 300, 800, 600},
		{"past top edge", 400, 10, 400, 75, 800, 600},
		{"past bottom edge", 400, 900, 400, 525, 800, 600},
		{"corner", 5000, -5000, 725, 75, 800, 600},
		{"viewport smaller than square", 40, 40, 75, 75, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.x, tt.y, DefaultOptions(), nil)
			e.Clamp(tt.w, tt.h)
			if e.X != tt.wantX || e.Y != tt.wantY {
				t.Errorf("Expected (%v, %v), got (%v, %v)", tt.wantX, tt.wantY, e.X, e.Y)
			}
		})
	}
}

func TestClampIdempotent(t *testing.T) {
	points := [][2]float64{{-1000, -1000}, {0, 0}, {400, 300}, {799, 1}, {12345, 600}}
	for _, p := range points {
		e := New(p[0], p[1], DefaultOptions(), nil)
		e.Clamp(800, 600)
		x, y := e.Position()
		e.Clamp(800, 600)
		if e.X != x || e.Y != y {
			t.Errorf("Clamp not idempotent for %v: (%v, %v) then (%v, %v)", p, x, y, e.X, e.Y)
		}
	}
}

func TestSequenceEndingInClampStaysInBounds(t *testing.T) {
	e := New(400, 300, DefaultOptions(), nil)
	steps := []func(){
		func() { e.Move(heldKeys{"d": true, "s": true}) },
		func() { e.TeleportTo(-300, 2000) },
		func() { e.Move(heldKeys{"arrowleft": true}) },
		func() { e.TeleportTo(810, -4) },
		func() { e.Move(heldKeys{"w": true}) },
	}
	half := e.Size() / 2
	for i, step := range steps {
		step()
		e.Clamp(800, 600)
		if e.X < half || e.X > 800-half || e.Y < half || e.Y > 600-half {
			t.Errorf("Step %d left entity out of bounds at (%v, %v)", i, e.X, e.Y)
		}
	}
}

func TestTeleportThenClamp(t *testing.T) {
	e := New(400, 300, DefaultOptions(), nil)

	e.TeleportTo(200, 250)
	if e.X != 200 || e.Y != 250 {
		t.Errorf("Expected teleport to (200, 250), got (%v, %v)", e.X, e.Y)
	}
	e.Clamp(800, 600)
	if e.X != 200 || e.Y != 250 {
		t.Errorf("Expected in-bounds teleport to stay at (200, 250), got (%v, %v)", e.X, e.Y)
	}

	e.TeleportTo(1000, 300)
	if e.X != 1000 {
		t.Errorf("Expected TeleportTo not to clamp, got x=%v", e.X)
	}
	e.Clamp(800, 600)
	if e.X != 725 || e.Y != 300 {
		t.Errorf("Expected (725, 300), got (%v, %v)", e.X, e.Y)
	}
}

func TestGraphicsFollowsPosition(t *testing.T) {
	rect := render.NewRect(150, 150, color.White)
	e := New(400, 300, DefaultOptions(), rect)

	if x, y := rect.Position(); x != 400 || y != 300 {
		t.Errorf("Expected drawable at (400, 300), got (%v, %v)", x, y)
	}

	e.Move(heldKeys{"d": true})
	if x, _ := rect.Position(); x != 406 {
		t.Errorf("Expected drawable x 406, got %v", x)
	}

	e.TeleportTo(1000, 300)
	e.Clamp(800, 600)
	if x, _ := rect.Position(); x != 725 {
		t.Errorf("Expected drawable x 725, got %v", x)
	}

	e.Destroy()
	e.Destroy()
	if !rect.Destroyed() {
		t.Error("Expected drawable to be destroyed")
	}
	if e.Graphics() != nil {
		t.Error("Expected graphics handle to be released")
	}
}
