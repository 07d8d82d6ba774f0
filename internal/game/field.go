package game

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chosenoffset.com/squarefield/internal/entity"
	"chosenoffset.com/squarefield/internal/input"
	"chosenoffset.com/squarefield/internal/render"
	"chosenoffset.com/squarefield/internal/ui/hud"
)

// Field owns the rendering surface, the player square and every listener
// wired to them. It goes uninitialized -> active -> torn-down exactly once.
//
// All methods except Mount's surface creation run on the host's dispatch
// thread, so the field needs no locking.
type Field struct {
	host     render.Host
	provider render.Provider
	profile  ProfileStore
	opts     Options
	log      *zap.Logger

	state    State
	mounting bool
	disposed bool

	surface render.Surface
	player  *entity.Entity
	keys    *input.Tracker
	hud     *hud.HUD

	// removers unregister listeners, in registration order
	removers []func()
}

// NewField creates an unmounted field. profile may be nil, in which case no
// overlay is drawn.
func NewField(host render.Host, provider render.Provider, profile ProfileStore, opts Options, log *zap.Logger) *Field {
	if log == nil {
		log = zap.NewNop()
	}
	return &Field{
		host:     host,
		provider: provider,
		profile:  profile,
		opts:     opts,
		log:      log.With(zap.String("field", uuid.NewString())),
	}
}

// State returns the lifecycle state.
func (f *Field) State() State { return f.state }

// Player returns the square, or nil while not active.
func (f *Field) Player() *entity.Entity { return f.player }

// Surface returns the rendering surface, or nil while not active.
func (f *Field) Surface() render.Surface { return f.surface }

// Keys returns the input tracker, or nil while not active.
func (f *Field) Keys() *input.Tracker { return f.keys }

// Mount starts creating the surface. Creation runs on its own goroutine and
// the field becomes active when the host runs the posted completion. A
// creation error is returned from that completion, so it surfaces from the
// host's run loop rather than here.
func (f *Field) Mount() error {
	if f.disposed {
		return ErrTornDown
	}
	if f.mounting || f.state != StateUninitialized {
		return ErrAlreadyMounted
	}
	f.mounting = true

	w, h := f.host.ViewportSize()
	opts := render.SurfaceOptions{
		Width:      w,
		Height:     h,
		Background: f.opts.Background,
	}
	f.log.Debug("Creating surface", zap.Int("width", w), zap.Int("height", h))

	go func() {
		s, err := f.provider.CreateSurface(opts)
		f.host.Post(func() error {
			return f.activate(s, err)
		})
	}()
	return nil
}

// activate finishes Mount on the dispatch thread.
func (f *Field) activate(s render.Surface, err error) error {
	f.mounting = false
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	if f.disposed {
		f.log.Debug("Field torn down during surface creation, destroying surface")
		s.Destroy()
		return nil
	}

	f.surface = s
	f.host.Attach(s)

	screen := s.Screen()
	size := f.opts.Player.Size
	gfx := s.NewRect(size, size, f.opts.PlayerColor)
	f.player = entity.New(float64(screen.Dx())/2, float64(screen.Dy())/2, f.opts.Player, gfx)
	stage := s.Stage()
	stage.AddChild(gfx)

	if f.opts.ShowHUD && f.profile != nil {
		label := s.NewLabel()
		stage.AddChild(label)
		f.hud = hud.New(f.profile, label, f.opts.HUDX, f.opts.HUDY)
	}

	f.keys = input.NewTracker()

	stage.SetInteractive(true)
	f.register(stage.AddPointerDownListener(f.pointerDown))
	f.register(f.host.AddKeyDownListener(f.keys.KeyDown))
	f.register(f.host.AddKeyUpListener(f.keys.KeyUp))
	f.register(s.Ticker().Add(f.tick))
	f.register(f.host.AddResizeListener(f.resize))

	f.state = StateActive
	f.log.Info("Field mounted",
		zap.Int("width", screen.Dx()),
		zap.Int("height", screen.Dy()),
		zap.Float64("x", f.player.X),
		zap.Float64("y", f.player.Y))
	return nil
}

func (f *Field) register(remove func()) {
	f.removers = append(f.removers, remove)
}

// Unmount tears the field down: listeners are removed in reverse order, the
// surface is detached, then the square and the surface are released. If the
// surface is still being created it is destroyed as soon as it arrives.
// Calling Unmount again is a no-op.
func (f *Field) Unmount() {
	f.disposed = true

	for i := len(f.removers) - 1; i >= 0; i-- {
		if f.removers[i] != nil {
			f.removers[i]()
			f.removers[i] = nil
		}
	}
	f.removers = nil

	if f.surface != nil {
		if f.host.IsAttached(f.surface) {
			f.host.Detach(f.surface)
		}
		stage := f.surface.Stage()
		if f.hud != nil {
			if label := f.hud.Label(); label != nil {
				stage.RemoveChild(label)
			}
			f.hud.Destroy()
			f.hud = nil
		}
		if f.player != nil {
			if gfx := f.player.Graphics(); gfx != nil {
				stage.RemoveChild(gfx)
			}
			f.player.Destroy()
			f.player = nil
		}
		f.surface.Destroy()
		f.surface = nil
	}
	f.keys = nil

	if f.state != StateTornDown {
		f.state = StateTornDown
		f.log.Info("Field unmounted", zap.Bool("mounting", f.mounting))
	}
}
