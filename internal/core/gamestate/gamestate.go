// Package gamestate provides the application's side state: a free-form global
// key/value store and the player profile. Neither is wired into gameplay yet;
// the field only reads the profile for its overlay.
package gamestate

import (
	"fmt"
	"maps"
	"sync"
)

// GameState holds global key/value data.
type GameState struct {
	mu sync.RWMutex

	// Data holds arbitrary values (e.g., "theme", "last_seed")
	Data map[string]any
}

// New creates a new empty GameState
func New() *GameState {
	return &GameState{
		Data: make(map[string]any),
	}
}

// SetData replaces all data with a copy of data.
func (gs *GameState) SetData(data map[string]any) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.Data = maps.Clone(data)
	if gs.Data == nil {
		gs.Data = make(map[string]any)
	}
}

// UpdateKey sets a single value
func (gs *GameState) UpdateKey(key string, value any) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.Data[key] = value
}

// Get returns the value for key and whether it was set
func (gs *GameState) Get(key string) (any, bool) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	v, ok := gs.Data[key]
	return v, ok
}

// Snapshot returns a copy of all data
func (gs *GameState) Snapshot() map[string]any {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return maps.Clone(gs.Data)
}

// Debug returns a string representation of the game state for debugging
func (gs *GameState) Debug() string {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return fmt.Sprintf("GameState{Data: %d}", len(gs.Data))
}
