package game

import (
	"go.uber.org/zap"

	"chosenoffset.com/squarefield/internal/render"
)

// tick is the frame loop: move for the held keys, clamp only if something
// moved, then refresh the overlay.
func (f *Field) tick() {
	if f.player == nil {
		return
	}
	if f.player.Move(f.keys) {
		f.clampPlayer()
	}
	if f.hud != nil {
		f.hud.Refresh()
	}
}

// pointerDown teleports the square to the press and clamps it.
func (f *Field) pointerDown(ev render.PointerEvent) {
	if f.player == nil {
		return
	}
	f.player.TeleportTo(ev.X, ev.Y)
	f.clampPlayer()
	f.log.Debug("Pointer down",
		zap.Float64("x", ev.X),
		zap.Float64("y", ev.Y),
		zap.Float64("player_x", f.player.X),
		zap.Float64("player_y", f.player.Y))
}

// resize matches the surface to the viewport and pulls the square back
// inside the new bounds.
func (f *Field) resize() {
	if f.surface == nil {
		return
	}
	w, h := f.host.ViewportSize()
	f.surface.Resize(w, h)
	f.clampPlayer()
	f.log.Debug("Viewport resized", zap.Int("width", w), zap.Int("height", h))
}

func (f *Field) clampPlayer() {
	if f.player == nil || f.surface == nil {
		return
	}
	screen := f.surface.Screen()
	f.player.Clamp(float64(screen.Dx()), float64(screen.Dy()))
}
