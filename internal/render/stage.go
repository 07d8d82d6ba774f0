package render

import (
	"image/color"
	"slices"
)

// BaseStage implements the bookkeeping side of Stage: children, hit-testing
// and pointer listeners. Backends use it and add drawing.
type BaseStage struct {
	children    []Drawable
	interactive bool
	pointerDown Listeners[func(PointerEvent)]
}

// NewBaseStage creates an empty, non-interactive stage.
func NewBaseStage() *BaseStage {
	return &BaseStage{}
}

// AddChild appends d on top of the existing children. Adding a child twice
// has no effect.
func (s *BaseStage) AddChild(d Drawable) {
	if d == nil || slices.Contains(s.children, d) {
		return
	}
	s.children = append(s.children, d)
}

// RemoveChild removes d if present.
func (s *BaseStage) RemoveChild(d Drawable) {
	s.children = slices.DeleteFunc(s.children, func(c Drawable) bool { return c == d })
}

// Children returns the children in draw order.
func (s *BaseStage) Children() []Drawable {
	return s.children
}

// SetInteractive enables or disables hit-testing.
func (s *BaseStage) SetInteractive(interactive bool) {
	s.interactive = interactive
}

// Interactive reports whether the stage receives pointer events.
func (s *BaseStage) Interactive() bool {
	return s.interactive
}

// AddPointerDownListener registers fn for pointer presses on the stage.
func (s *BaseStage) AddPointerDownListener(fn func(PointerEvent)) (remove func()) {
	return s.pointerDown.Add(fn)
}

// PointerListenerCount returns the number of pointer-down listeners.
func (s *BaseStage) PointerListenerCount() int {
	return s.pointerDown.Len()
}

// DispatchPointerDown delivers ev to the pointer listeners if the stage is
// interactive. The hit area is the whole stage, so coordinates are not
// checked. It reports whether the event was delivered.
func (s *BaseStage) DispatchPointerDown(ev PointerEvent) bool {
	if !s.interactive {
		return false
	}
	s.pointerDown.Each(func(fn func(PointerEvent)) { fn(ev) })
	return true
}

// Release drops all children and listeners.
func (s *BaseStage) Release() {
	s.children = nil
	s.pointerDown.Clear()
	s.interactive = false
}

// Rect is a filled rectangle centered on its position.
type Rect struct {
	Width, Height float64
	Fill          color.Color

	x, y      float64
	destroyed bool
}

// NewRect creates a rectangle at the origin.
func NewRect(width, height float64, fill color.Color) *Rect {
	return &Rect{Width: width, Height: height, Fill: fill}
}

// SetPosition moves the rectangle's center.
func (r *Rect) SetPosition(x, y float64) {
	r.x, r.y = x, y
}

// Position returns the rectangle's center.
func (r *Rect) Position() (x, y float64) {
	return r.x, r.y
}

// Bounds returns the top-left corner and size of the rectangle.
func (r *Rect) Bounds() (x, y, w, h float64) {
	return r.x - r.Width/2, r.y - r.Height/2, r.Width, r.Height
}

// Destroy marks the rectangle as released.
func (r *Rect) Destroy() {
	r.destroyed = true
}

// Destroyed reports whether Destroy was called.
func (r *Rect) Destroyed() bool {
	return r.destroyed
}

// Text is a line of text anchored at its top-left corner.
type Text struct {
	x, y      float64
	text      string
	destroyed bool
}

// NewText creates an empty text drawable.
func NewText() *Text {
	return &Text{}
}

func (t *Text) SetPosition(x, y float64) { t.x, t.y = x, y }

func (t *Text) Position() (x, y float64) { return t.x, t.y }

func (t *Text) SetText(text string) { t.text = text }

func (t *Text) Text() string { return t.text }

func (t *Text) Destroy() { t.destroyed = true }

func (t *Text) Destroyed() bool { return t.destroyed }
