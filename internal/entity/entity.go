// Package entity provides the movable square the player controls.
// An Entity is a plain position record; it holds a drawable handle from the
// rendering backend only to paint itself.
package entity

import (
	"chosenoffset.com/squarefield/internal/render"
)

// KeyState reports whether a key is currently held. Key names are lowercase.
type KeyState interface {
	Held(key string) bool
}

// Direction represents the four movement directions.
type Direction int

const (
	DirNone Direction = iota
	DirNorth
	DirSouth
	DirEast
	DirWest
)

// Delta returns the unit x,y delta for a direction.
func (d Direction) Delta() (float64, float64) {
	switch d {
	case DirNorth:
		return 0, -1
	case DirSouth:
		return 0, 1
	case DirEast:
		return 1, 0
	case DirWest:
		return -1, 0
	default:
		return 0, 0
	}
}

// directionKeys lists the key aliases for each direction.
var directionKeys = []struct {
	dir  Direction
	keys []string
}{
	{DirWest, []string{"arrowleft", "a"}},
	{DirEast, []string{"arrowright", "d"}},
	{DirNorth, []string{"arrowup", "w"}},
	{DirSouth, []string{"arrowdown", "s"}},
}

// Options configures a new entity.
type Options struct {
	Size  float64
	Speed float64
}

// DefaultOptions returns the standard square: 150px wide, 6px per tick.
func DefaultOptions() Options {
	return Options{Size: 150, Speed: 6}
}

// Entity is the single controllable square.
type Entity struct {
	X, Y float64

	size  float64
	speed float64
	gfx   render.Graphics
}

// New creates an entity at (x, y). gfx may be nil.
func New(x, y float64, opts Options, gfx render.Graphics) *Entity {
	e := &Entity{
		X:     x,
		Y:     y,
		size:  opts.Size,
		speed: opts.Speed,
		gfx:   gfx,
	}
	e.sync()
	return e
}

// Size returns the side length of the square.
func (e *Entity) Size() float64 { return e.size }

// Speed returns the distance moved per axis per tick.
func (e *Entity) Speed() float64 { return e.speed }

// Position returns the center of the square.
func (e *Entity) Position() (x, y float64) { return e.X, e.Y }

// Graphics returns the drawable handle, or nil once destroyed.
func (e *Entity) Graphics() render.Graphics { return e.gfx }

// Move applies one tick of movement for the held keys and reports whether
// the entity moved. Each axis is applied at full speed, so diagonal movement
// is faster than axis-aligned movement.
func (e *Entity) Move(keys KeyState) bool {
	var dx, dy float64
	for _, dk := range directionKeys {
		if !anyHeld(keys, dk.keys) {
			continue
		}
		ux, uy := dk.dir.Delta()
		dx += ux * e.speed
		dy += uy * e.speed
	}
	if dx == 0 && dy == 0 {
		return false
	}
	e.X += dx
	e.Y += dy
	e.sync()
	return true
}

func anyHeld(keys KeyState, names []string) bool {
	for _, k := range names {
		if keys.Held(k) {
			return true
		}
	}
	return false
}

// Clamp keeps the square fully inside a width x height viewport. When the
// viewport is smaller than the square the lower bound wins.
func (e *Entity) Clamp(width, height float64) {
	half := e.size / 2
	e.X = max(half, min(width-half, e.X))
	e.Y = max(half, min(height-half, e.Y))
	e.sync()
}

// TeleportTo moves the center to (x, y). It does not clamp.
func (e *Entity) TeleportTo(x, y float64) {
	e.X, e.Y = x, y
	e.sync()
}

// Destroy releases the drawable handle. Safe to call twice.
func (e *Entity) Destroy() {
	if e.gfx == nil {
		return
	}
	e.gfx.Destroy()
	e.gfx = nil
}

func (e *Entity) sync() {
	if e.gfx != nil {
		e.gfx.SetPosition(e.X, e.Y)
	}
}
