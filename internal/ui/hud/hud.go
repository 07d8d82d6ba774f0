// Package hud provides the read-only profile readout drawn over the field.
package hud

import (
	"fmt"

	"chosenoffset.com/squarefield/internal/core/gamestate"
	"chosenoffset.com/squarefield/internal/render"
)

// ProfileSource supplies the profile to display.
type ProfileSource interface {
	Profile() gamestate.Profile
}

// HUD renders the player profile into a label.
type HUD struct {
	source ProfileSource
	label  render.Label
	last   gamestate.Profile
	drawn  bool
}

// New creates a HUD that writes into label at (x, y).
func New(source ProfileSource, label render.Label, x, y int) *HUD {
	label.SetPosition(float64(x), float64(y))
	h := &HUD{source: source, label: label}
	h.Refresh()
	return h
}

// Label returns the label the HUD draws into, or nil once destroyed.
func (h *HUD) Label() render.Label {
	return h.label
}

// Refresh updates the label if the profile changed since the last call.
func (h *HUD) Refresh() {
	if h.label == nil {
		return
	}
	p := h.source.Profile()
	if h.drawn && p == h.last {
		return
	}
	h.label.SetText(Format(p))
	h.last = p
	h.drawn = true
}

// Destroy releases the label.
func (h *HUD) Destroy() {
	if h.label == nil {
		return
	}
	h.label.Destroy()
	h.label = nil
}

// Format renders a profile as a single line.
func Format(p gamestate.Profile) string {
	return fmt.Sprintf("%s  Lv %d  ATK %d  HP %d/%d", p.Name, p.Level, p.Attack, p.Health, p.MaxHealth)
}
