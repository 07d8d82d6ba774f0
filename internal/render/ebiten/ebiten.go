package ebiten

import (
	"image"
	"image/color"
	"slices"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/squarefield/internal/render"
)

// Host implements render.Host and render.Provider on top of Ebiten, and is
// itself the ebiten.Game driven by RunGame. Every listener, tick and posted
// task runs inside Update.
type Host struct {
	mu            sync.Mutex
	width, height int
	resized       bool
	tasks         []func() error
	surfaces      []*Surface

	keyDown render.Listeners[func(*render.KeyEvent)]
	keyUp   render.Listeners[func(*render.KeyEvent)]
	resize  render.Listeners[func()]

	attached []*Surface
	defaults map[string]func()
	quit     bool

	// Background fills the window where no surface is attached.
	Background color.Color

	// OnClose runs once when the loop is about to end because of Quit or the
	// window being closed.
	OnClose func()

	// scratch buffers reused across frames
	keys    []ebiten.Key
	touches []ebiten.TouchID
}

// NewHost creates a host for a window of the given size.
func NewHost(width, height int) *Host {
	return &Host{
		width:      width,
		height:     height,
		defaults:   make(map[string]func()),
		Background: color.Black,
	}
}

// ViewportSize returns the current outside size of the window.
func (h *Host) ViewportSize() (width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// AddKeyDownListener registers fn for key presses.
func (h *Host) AddKeyDownListener(fn func(*render.KeyEvent)) (remove func()) {
	return h.keyDown.Add(fn)
}

// AddKeyUpListener registers fn for key releases.
func (h *Host) AddKeyUpListener(fn func(*render.KeyEvent)) (remove func()) {
	return h.keyUp.Add(fn)
}

// AddResizeListener registers fn for window size changes.
func (h *Host) AddResizeListener(fn func()) (remove func()) {
	return h.resize.Add(fn)
}

// Attach draws s every frame. Surfaces from other providers are ignored.
func (h *Host) Attach(s render.Surface) {
	es, ok := s.(*Surface)
	if !ok || slices.Contains(h.attached, es) {
		return
	}
	h.attached = append(h.attached, es)
}

// Detach stops drawing s.
func (h *Host) Detach(s render.Surface) {
	h.attached = slices.DeleteFunc(h.attached, func(a *Surface) bool { return render.Surface(a) == s })
}

// IsAttached reports whether s is being drawn.
func (h *Host) IsAttached(s render.Surface) bool {
	es, ok := s.(*Surface)
	return ok && slices.Contains(h.attached, es)
}

// Post queues task for the next Update. Safe from any goroutine.
func (h *Host) Post(task func() error) {
	h.mu.Lock()
	h.tasks = append(h.tasks, task)
	h.mu.Unlock()
}

// SetDefaultAction sets what the host does for a key press no listener
// prevented. An empty key is ignored.
func (h *Host) SetDefaultAction(key string, action func()) {
	if key == "" {
		return
	}
	h.defaults[key] = action
}

// Quit ends the run loop after the current Update.
func (h *Host) Quit() {
	h.quit = true
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if err := h.runTasks(); err != nil {
		return err
	}

	h.mu.Lock()
	resized := h.resized
	h.resized = false
	h.mu.Unlock()
	if resized {
		h.resize.Each(func(fn func()) { fn() })
	}

	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		ev := &render.KeyEvent{Key: keyName(k)}
		h.keyDown.Each(func(fn func(*render.KeyEvent)) { fn(ev) })
		if !ev.DefaultPrevented() {
			if action := h.defaults[ev.Key]; action != nil {
				action()
			}
		}
	}

	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		ev := &render.KeyEvent{Key: keyName(k)}
		h.keyUp.Each(func(fn func(*render.KeyEvent)) { fn(ev) })
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		h.pointerDown(x, y)
	}
	h.touches = inpututil.AppendJustPressedTouchIDs(h.touches[:0])
	for _, id := range h.touches {
		x, y := ebiten.TouchPosition(id)
		h.pointerDown(x, y)
	}

	for _, s := range h.liveSurfaces() {
		s.ticker.Each(func(fn func()) { fn() })
	}

	if h.quit || ebiten.IsWindowBeingClosed() {
		if h.OnClose != nil {
			h.OnClose()
			h.OnClose = nil
		}
		return ebiten.Termination
	}
	return nil
}

func (h *Host) runTasks() error {
	h.mu.Lock()
	tasks := h.tasks
	h.tasks = nil
	h.mu.Unlock()

	for i, task := range tasks {
		if err := task(); err != nil {
			// Keep the rest for a later Update; the loop is ending anyway.
			h.mu.Lock()
			h.tasks = append(tasks[i+1:], h.tasks...)
			h.mu.Unlock()
			return err
		}
	}
	return nil
}

func (h *Host) pointerDown(x, y int) {
	ev := render.PointerEvent{X: float64(x), Y: float64(y)}
	for _, s := range slices.Clone(h.attached) {
		if !s.destroyed {
			s.stage.DispatchPointerDown(ev)
		}
	}
}

func (h *Host) liveSurfaces() []*Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.surfaces)
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(h.Background)
	for _, s := range h.attached {
		s.draw(screen)
	}
}

// Layout implements ebiten.Game. The logical screen always matches the
// window, so pointer coordinates are window pixels.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.mu.Lock()
	if outsideWidth != h.width || outsideHeight != h.height {
		h.width, h.height = outsideWidth, outsideHeight
		h.resized = true
	}
	h.mu.Unlock()
	return outsideWidth, outsideHeight
}

// CreateSurface implements render.Provider. GPU memory is allocated lazily on
// the first Draw, so this is safe off the game goroutine.
func (h *Host) CreateSurface(opts render.SurfaceOptions) (render.Surface, error) {
	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}
	s := &Surface{
		host:       h,
		width:      opts.Width,
		height:     opts.Height,
		background: bg,
		stage:      render.NewBaseStage(),
	}
	h.mu.Lock()
	h.surfaces = append(h.surfaces, s)
	h.mu.Unlock()
	return s, nil
}

// Surface draws its stage into an offscreen canvas.
type Surface struct {
	host          *Host
	width, height int
	background    color.Color
	stage         *render.BaseStage
	ticker        render.Listeners[func()]
	canvas        *ebiten.Image
	destroyed     bool
}

func (s *Surface) Stage() render.Stage { return s.stage }

func (s *Surface) Ticker() render.Ticker { return &s.ticker }

func (s *Surface) Screen() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// Resize changes the canvas size. The canvas is reallocated on the next Draw.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
}

func (s *Surface) NewRect(width, height float64, fill color.Color) render.Graphics {
	return render.NewRect(width, height, fill)
}

func (s *Surface) NewLabel() render.Label {
	return render.NewText()
}

// Destroy releases the canvas, the stage's children and listeners.
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
	if s.canvas != nil {
		s.canvas.Deallocate()
		s.canvas = nil
	}

	h := s.host
	h.mu.Lock()
	h.surfaces = slices.DeleteFunc(h.surfaces, func(o *Surface) bool { return o == s })
	h.mu.Unlock()
}

func (s *Surface) draw(screen *ebiten.Image) {
	if s.destroyed || s.width <= 0 || s.height <= 0 {
		return
	}
	if s.canvas != nil {
		b := s.canvas.Bounds()
		if b.Dx() != s.width || b.Dy() != s.height {
			s.canvas.Deallocate()
			s.canvas = nil
		}
	}
	if s.canvas == nil {
		s.canvas = ebiten.NewImage(s.width, s.height)
	}

	s.canvas.Fill(s.background)
	for _, c := range s.stage.Children() {
		switch d := c.(type) {
		case *render.Rect:
			if d.Destroyed() {
				continue
			}
			x, y, w, h := d.Bounds()
			vector.DrawFilledRect(s.canvas, float32(x), float32(y), float32(w), float32(h), d.Fill, false)
		case *render.Text:
			if d.Destroyed() {
				continue
			}
			x, y := d.Position()
			ebitenutil.DebugPrintAt(s.canvas, d.Text(), int(x), int(y))
		}
	}
	screen.DrawImage(s.canvas, nil)
}

// keyName converts an ebiten.Key to a browser-style key name: letters as
// typed without shift, digits as the digit, space as " " and everything else
// by its Ebiten name ("ArrowUp", "Escape", "Enter").
func keyName(key ebiten.Key) string {
	if key == ebiten.KeySpace {
		return " "
	}
	name := key.String()
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		return strings.ToLower(name)
	}
	if digit, ok := strings.CutPrefix(name, "Digit"); ok && len(digit) == 1 {
		return digit
	}
	return name
}

// Engine configures the window and runs the loop.
type Engine struct{}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() *Engine {
	return &Engine{}
}

// SetWindowSize sets the window size in pixels.
func (e *Engine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *Engine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *Engine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// SetTPS sets the number of Update calls per second.
func (e *Engine) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

// HandleWindowClosing routes the window close button through the host's
// OnClose instead of ending the loop immediately.
func (e *Engine) HandleWindowClosing() {
	ebiten.SetWindowClosingHandled(true)
}

// RunGame runs the loop until the window closes, the host quits or a posted
// task fails. It blocks.
func (e *Engine) RunGame(h *Host) error {
	return ebiten.RunGame(h)
}
