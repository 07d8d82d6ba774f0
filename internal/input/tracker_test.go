package input

import (
	"testing"

	"chosenoffset.com/squarefield/internal/render"
)

func TestKeyDownUp(t *testing.T) {
	tr := NewTracker()

	tr.KeyDown(&render.KeyEvent{Key: "D"})
	if !tr.Held("d") {
		t.Error("Expected 'd' to be held after pressing 'D'")
	}
	if !tr.Held("D") {
		t.Error("Expected lookup to be case-insensitive")
	}
	if got := tr.Keys()["d"]; !got {
		t.Error("Expected lowercase entry in map")
	}

	tr.KeyUp(&render.KeyEvent{Key: "d"})
	if tr.Held("d") {
		t.Error("Expected 'd' to be released")
	}

	tr.KeyDown(&render.KeyEvent{Key: "ArrowLeft"})
	if !tr.Held("arrowleft") {
		t.Error("Expected 'arrowleft' to be held")
	}
}

func TestUnknownKeysAreNotHeld(t *testing.T) {
	tr := NewTracker()
	for _, key := range []string{"", "x", "arrowup", "Unidentified"} {
		if tr.Held(key) {
			t.Errorf("Expected %q not to be held", key)
		}
	}
}

func TestNavigationKeysPreventDefault(t *testing.T) {
	tests := []struct {
		key       string
		prevented bool
	}{
		{"ArrowUp", true},
		{"ArrowDown", true},
		{"ArrowLeft", true},
		{"ArrowRight", true},
		{" ", true},
		{"w", false},
		{"a", false},
		{"Escape", false},
		{"Enter", false},
	}

	for _, tt := range tests {
		tr := NewTracker()
		ev := &render.KeyEvent{Key: tt.key}
		tr.KeyDown(ev)
		if ev.DefaultPrevented() != tt.prevented {
			t.Errorf("Key %q: expected prevented=%v, got %v", tt.key, tt.prevented, ev.DefaultPrevented())
		}
	}
}

func TestKeyUpNeverPreventsDefault(t *testing.T) {
	tr := NewTracker()
	ev := &render.KeyEvent{Key: "ArrowUp"}
	tr.KeyUp(ev)
	if ev.DefaultPrevented() {
		t.Error("Expected key-up not to prevent default")
	}
}
