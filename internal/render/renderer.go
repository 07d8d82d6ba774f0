package render

import (
	"image"
	"image/color"
)

// Host is the windowing and input system the field lives in. It supplies the
// viewport size, keyboard and resize notifications, displays attached surfaces
// and runs posted tasks on its dispatch thread.
//
// All listeners and posted tasks are invoked serially from a single goroutine,
// never concurrently with each other.
type Host interface {
	// ViewportSize returns the current size of the visible area in pixels.
	ViewportSize() (width, height int)

	// AddKeyDownListener registers fn for key presses. The returned function
	// unregisters it.
	AddKeyDownListener(fn func(*KeyEvent)) (remove func())

	// AddKeyUpListener registers fn for key releases.
	AddKeyUpListener(fn func(*KeyEvent)) (remove func())

	// AddResizeListener registers fn to be called after the viewport changes size.
	AddResizeListener(fn func()) (remove func())

	// Attach makes the surface's output visible. Detach hides it again.
	Attach(s Surface)
	Detach(s Surface)
	IsAttached(s Surface) bool

	// Post schedules task on the dispatch thread. It is safe to call from any
	// goroutine. A non-nil error returned by task stops the host's run loop.
	Post(task func() error)
}

// SurfaceOptions configures a new rendering surface.
type SurfaceOptions struct {
	Width      int
	Height     int
	Background color.Color
}

// Provider creates rendering surfaces. CreateSurface may block and is called
// off the dispatch thread.
type Provider interface {
	CreateSurface(opts SurfaceOptions) (Surface, error)
}

// Surface is a drawable root plus its per-frame ticker.
type Surface interface {
	// Stage returns the root container that drawables are added to.
	Stage() Stage

	// Ticker returns the surface's frame ticker.
	Ticker() Ticker

	// Screen returns the current rendering area, anchored at the origin.
	Screen() image.Rectangle

	// Resize changes the rendering dimensions.
	Resize(width, height int)

	// NewRect creates a filled rectangle centered on its position.
	NewRect(width, height float64, fill color.Color) Graphics

	// NewLabel creates a text drawable anchored at its top-left corner.
	NewLabel() Label

	// Destroy releases everything the surface holds. Safe to call twice.
	Destroy()
}

// Stage is the root container of a surface.
type Stage interface {
	AddChild(d Drawable)
	RemoveChild(d Drawable)

	// SetInteractive makes the whole stage a hit area. Pointer listeners only
	// fire while the stage is interactive.
	SetInteractive(interactive bool)

	AddPointerDownListener(fn func(PointerEvent)) (remove func())
}

// Ticker runs registered callbacks once per frame.
type Ticker interface {
	Add(fn func()) (remove func())
}

// Drawable is anything that can live on a stage.
type Drawable interface {
	SetPosition(x, y float64)
	Position() (x, y float64)

	// Destroy releases the drawable. It must not be drawn afterwards.
	Destroy()
}

// Graphics is a drawable shape.
type Graphics interface {
	Drawable
}

// Label is a drawable line of text.
type Label interface {
	Drawable
	SetText(text string)
	Text() string
}

// KeyEvent describes a key press or release. Key uses browser-style key names:
// "a" for letters, " " for space, "ArrowUp" for arrows.
type KeyEvent struct {
	Key string

	defaultPrevented bool
}

// PreventDefault stops the host from running its own handling for the key.
func (e *KeyEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *KeyEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// PointerEvent is a pointer press in surface-global coordinates.
type PointerEvent struct {
	X, Y float64
}
