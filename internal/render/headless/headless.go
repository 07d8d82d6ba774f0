// Package headless is an in-memory rendering backend. It implements the host
// and provider contracts without a window so that the field can be driven by
// synthetic events, in tests or in a scripted run.
package headless

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"sync"
	"time"

	"chosenoffset.com/squarefield/internal/render"
)

// ErrTimeout is returned by Await when no task is posted in time.
var ErrTimeout = errors.New("headless: timed out waiting for posted task")

// Host is a windowless host and surface provider.
type Host struct {
	width, height int

	keyDown render.Listeners[func(*render.KeyEvent)]
	keyUp   render.Listeners[func(*render.KeyEvent)]
	resize  render.Listeners[func()]

	attached []render.Surface
	tasks    chan func() error

	mu       sync.Mutex
	surfaces []*Surface

	// CreateErr, when set, makes CreateSurface fail.
	CreateErr error

	// Gate, when non-nil, blocks CreateSurface until it is closed or receives.
	Gate chan struct{}

	// AwaitTimeout bounds Await. Zero means five seconds.
	AwaitTimeout time.Duration
}

// NewHost creates a host with the given viewport size.
func NewHost(width, height int) *Host {
	return &Host{
		width:  width,
		height: height,
		tasks:  make(chan func() error, 64),
	}
}

// ViewportSize returns the simulated viewport size.
func (h *Host) ViewportSize() (width, height int) {
	return h.width, h.height
}

func (h *Host) AddKeyDownListener(fn func(*render.KeyEvent)) (remove func()) {
	return h.keyDown.Add(fn)
}

func (h *Host) AddKeyUpListener(fn func(*render.KeyEvent)) (remove func()) {
	return h.keyUp.Add(fn)
}

func (h *Host) AddResizeListener(fn func()) (remove func()) {
	return h.resize.Add(fn)
}

// Attach shows s.
func (h *Host) Attach(s render.Surface) {
	if s == nil || h.IsAttached(s) {
		return
	}
	h.attached = append(h.attached, s)
}

// Detach hides s.
func (h *Host) Detach(s render.Surface) {
	h.attached = slices.DeleteFunc(h.attached, func(a render.Surface) bool { return a == s })
}

// IsAttached reports whether s is shown.
func (h *Host) IsAttached(s render.Surface) bool {
	return slices.Contains(h.attached, s)
}

// Post queues task for the next Await or Drain.
func (h *Host) Post(task func() error) {
	h.tasks <- task
}

// Await blocks until a task is posted, runs it and then drains anything else
// already queued. It returns the first task error.
func (h *Host) Await() error {
	timeout := h.AwaitTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	select {
	case task := <-h.tasks:
		if err := task(); err != nil {
			return err
		}
	case <-time.After(timeout):
		return ErrTimeout
	}
	return h.Drain()
}

// Drain runs every queued task without blocking and returns the first error.
func (h *Host) Drain() error {
	for {
		select {
		case task := <-h.tasks:
			if err := task(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// KeyDown dispatches a key press and returns the event so callers can inspect
// whether its default was prevented.
func (h *Host) KeyDown(key string) *render.KeyEvent {
	ev := &render.KeyEvent{Key: key}
	h.keyDown.Each(func(fn func(*render.KeyEvent)) { fn(ev) })
	return ev
}

// KeyUp dispatches a key release.
func (h *Host) KeyUp(key string) *render.KeyEvent {
	ev := &render.KeyEvent{Key: key}
	h.keyUp.Each(func(fn func(*render.KeyEvent)) { fn(ev) })
	return ev
}

// PointerDown presses the pointer at (x, y) over every attached surface. It
// reports whether any stage accepted the event.
func (h *Host) PointerDown(x, y float64) bool {
	delivered := false
	for _, s := range slices.Clone(h.attached) {
		hs, ok := s.(*Surface)
		if !ok || hs.destroyed {
			continue
		}
		if hs.stage.DispatchPointerDown(render.PointerEvent{X: x, Y: y}) {
			delivered = true
		}
	}
	return delivered
}

// Resize changes the viewport and notifies resize listeners.
func (h *Host) Resize(width, height int) {
	h.width, h.height = width, height
	h.resize.Each(func(fn func()) { fn() })
}

// Tick advances every live surface by one frame.
func (h *Host) Tick() {
	for _, s := range h.Surfaces() {
		if s.destroyed {
			continue
		}
		s.ticker.Each(func(fn func()) { fn() })
	}
}

// ListenerCount returns the number of listeners registered on the host and
// on every live surface.
func (h *Host) ListenerCount() int {
	n := h.keyDown.Len() + h.keyUp.Len() + h.resize.Len()
	for _, s := range h.Surfaces() {
		if s.destroyed {
			continue
		}
		n += s.stage.PointerListenerCount() + s.ticker.Len()
	}
	return n
}

// Surfaces returns every surface created so far, destroyed ones included.
func (h *Host) Surfaces() []*Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.surfaces)
}

// CreateSurface implements render.Provider.
func (h *Host) CreateSurface(opts render.SurfaceOptions) (render.Surface, error) {
	if h.Gate != nil {
		<-h.Gate
	}
	if h.CreateErr != nil {
		return nil, h.CreateErr
	}
	s := &Surface{
		width:      opts.Width,
		height:     opts.Height,
		Background: opts.Background,
	}
	s.stage = render.NewBaseStage()

	h.mu.Lock()
	h.surfaces = append(h.surfaces, s)
	h.mu.Unlock()
	return s, nil
}

// Surface is an in-memory surface.
type Surface struct {
	Background color.Color

	width, height int
	stage         *render.BaseStage
	ticker        render.Listeners[func()]
	destroyed     bool
}

func (s *Surface) Stage() render.Stage { return s.stage }

// BaseStage exposes the stage's concrete type for inspection.
func (s *Surface) BaseStage() *render.BaseStage { return s.stage }

func (s *Surface) Ticker() render.Ticker { return &s.ticker }

func (s *Surface) Screen() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
}

func (s *Surface) NewRect(width, height float64, fill color.Color) render.Graphics {
	return render.NewRect(width, height, fill)
}

func (s *Surface) NewLabel() render.Label {
	return render.NewText()
}

// Destroy releases the surface and any children still on its stage.
func (s *Surface) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	for _, c := range s.stage.Children() {
		c.Destroy()
	}
	s.stage.Release()
	s.ticker.Clear()
}

// Destroyed reports whether Destroy was called.
func (s *Surface) Destroyed() bool {
	return s.destroyed
}
