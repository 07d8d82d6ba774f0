package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chosenoffset.com/squarefield/internal/config"
	"chosenoffset.com/squarefield/internal/core/gamestate"
	"chosenoffset.com/squarefield/internal/game"
	ebitenrender "chosenoffset.com/squarefield/internal/render/ebiten"
	"chosenoffset.com/squarefield/internal/render/headless"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := "config/squarefield.toml"
	if p := os.Getenv("SQUAREFIELD_CONFIG"); p != "" {
		cfgPath = p
	}
	flag.StringVar(&cfgPath, "config", cfgPath, "path to the TOML settings file")
	smokeFrames := flag.Int("smoke", 0, "run N frames without a window holding ArrowRight, then exit")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	seed, err := gamestate.LoadProfile(cfg.Profile.Path)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	profiles := gamestate.NewProfileStore()
	if err := profiles.SetProfile(seed); err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	profiles.OnChange = func(p gamestate.Profile) {
		log.Debug("Profile changed",
			zap.String("name", p.Name),
			zap.Int("level", p.Level),
			zap.Int("health", p.Health))
	}

	global := gamestate.New()
	global.UpdateKey("config_path", cfgPath)
	global.UpdateKey("window_title", cfg.Window.Title)
	log.Debug("Global state ready", zap.String("state", global.Debug()))

	opts := game.OptionsFromConfig(cfg)

	if *smokeFrames > 0 {
		return runSmoke(*smokeFrames, cfg, profiles, opts, log)
	}

	host := ebitenrender.NewHost(cfg.Window.Width, cfg.Window.Height)
	host.Background = cfg.BackgroundColor()

	field := game.NewField(host, host, profiles, opts, log)
	if err := field.Mount(); err != nil {
		return fmt.Errorf("mount field: %w", err)
	}
	defer field.Unmount()

	host.OnClose = field.Unmount
	host.SetDefaultAction(cfg.Window.QuitKey, host.Quit)

	engine := ebitenrender.NewEngine()
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowResizable(cfg.Window.Resizable)
	engine.SetTPS(cfg.Window.TPS)
	engine.HandleWindowClosing()

	log.Info("Starting",
		zap.String("config", cfgPath),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("player", seed.Name))
	if err := engine.RunGame(host); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	log.Info("Stopped")
	return nil
}

// runSmoke drives the field on the headless backend. It exercises the full
// mount, input, tick and teardown path without a display.
func runSmoke(frames int, cfg *config.Config, profiles *gamestate.ProfileStore, opts game.Options, log *zap.Logger) error {
	host := headless.NewHost(cfg.Window.Width, cfg.Window.Height)
	field := game.NewField(host, host, profiles, opts, log)
	if err := field.Mount(); err != nil {
		return fmt.Errorf("mount field: %w", err)
	}
	defer field.Unmount()
	if err := host.Await(); err != nil {
		return fmt.Errorf("mount field: %w", err)
	}

	host.KeyDown("ArrowRight")
	for i := 0; i < frames; i++ {
		host.Tick()
	}
	host.KeyUp("ArrowRight")

	x, y := field.Player().Position()
	log.Info("Smoke run finished",
		zap.Int("frames", frames),
		zap.Float64("x", x),
		zap.Float64("y", y))
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
