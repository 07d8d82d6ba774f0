// Package input tracks which keys are currently held.
package input

import (
	"strings"

	"chosenoffset.com/squarefield/internal/render"
)

// navigationKeys are keys whose default host handling is suppressed on press.
var navigationKeys = map[string]bool{
	"ArrowUp":    true,
	"ArrowDown":  true,
	"ArrowLeft":  true,
	"ArrowRight": true,
	" ":          true,
}

// HeldKeys maps a lowercase key name to whether it is held. Absent keys are
// not held.
type HeldKeys map[string]bool

// Held reports whether key is held. The lookup is case-insensitive.
func (h HeldKeys) Held(key string) bool {
	return h[strings.ToLower(key)]
}

// Tracker maintains the live Held-Keys Map from key events.
type Tracker struct {
	keys HeldKeys
}

// NewTracker creates a tracker with nothing held.
func NewTracker() *Tracker {
	return &Tracker{keys: make(HeldKeys)}
}

// KeyDown marks the event's key as held. Navigation keys have their default
// handling prevented; nothing else is suppressed.
func (t *Tracker) KeyDown(ev *render.KeyEvent) {
	if navigationKeys[ev.Key] {
		ev.PreventDefault()
	}
	t.keys[strings.ToLower(ev.Key)] = true
}

// KeyUp clears the event's key.
func (t *Tracker) KeyUp(ev *render.KeyEvent) {
	t.keys[strings.ToLower(ev.Key)] = false
}

// Held reports whether key is currently held.
func (t *Tracker) Held(key string) bool {
	return t.keys.Held(key)
}

// Keys returns the live map. Callers must not retain it across lifecycles.
func (t *Tracker) Keys() HeldKeys {
	return t.keys
}
