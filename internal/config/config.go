// Package config holds the application settings: window, surface, player
// square, overlay and logging. Settings are loaded from a TOML file layered
// over defaults so a config file only needs the values it changes.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `toml:"window"`
	Surface SurfaceConfig `toml:"surface"`
	Player  PlayerConfig  `toml:"player"`
	HUD     HUDConfig     `toml:"hud"`
	Profile ProfileConfig `toml:"profile"`
	Logging LoggingConfig `toml:"logging"`
}

// WindowConfig describes the host window.
type WindowConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	Resizable bool   `toml:"resizable"`
	TPS       int    `toml:"tps"`      // ticks per second
	QuitKey   string `toml:"quit_key"` // key name that closes the window, empty disables
}

// SurfaceConfig describes the rendering surface.
type SurfaceConfig struct {
	Background string `toml:"background"` // hex, e.g. "#222222"
}

// PlayerConfig describes the controllable square.
type PlayerConfig struct {
	Size  float64 `toml:"size"`
	Speed float64 `toml:"speed"` // pixels per tick per axis
	Color string  `toml:"color"`
}

// HUDConfig controls the profile overlay.
type HUDConfig struct {
	Enabled bool `toml:"enabled"`
	X       int  `toml:"x"`
	Y       int  `toml:"y"`
}

// ProfileConfig points at the player profile seed.
type ProfileConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig controls the logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    800,
			Title:     "Square Field",
			Resizable: true,
			TPS:       60,
			QuitKey:   "Escape",
		},
		Surface: SurfaceConfig{
			Background: "#222222",
		},
		Player: PlayerConfig{
			Size:  150,
			Speed: 6,
			Color: "#0d3dd9",
		},
		HUD: HUDConfig{
			Enabled: true,
			X:       8,
			Y:       8,
		},
		Profile: ProfileConfig{
			Path: "data/profile.yaml",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads settings from path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML settings over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window tps %d must be positive", c.Window.TPS))
	}
	if c.Player.Size <= 0 {
		errs = append(errs, fmt.Errorf("player size %v must be positive", c.Player.Size))
	}
	if c.Player.Speed < 0 {
		errs = append(errs, fmt.Errorf("player speed %v must not be negative", c.Player.Speed))
	}
	if _, err := ParseColor(c.Surface.Background); err != nil {
		errs = append(errs, fmt.Errorf("surface background: %w", err))
	}
	if _, err := ParseColor(c.Player.Color); err != nil {
		errs = append(errs, fmt.Errorf("player color: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// BackgroundColor returns the parsed surface background.
func (c *Config) BackgroundColor() color.RGBA {
	clr, _ := ParseColor(c.Surface.Background)
	return clr
}

// PlayerColor returns the parsed square color.
func (c *Config) PlayerColor() color.RGBA {
	clr, _ := ParseColor(c.Player.Color)
	return clr
}

// ParseColor parses "#rrggbb", "#rrggbbaa" or "0xrrggbb" into an opaque or
// translucent RGBA color.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "#"), "0x")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	// Alpha is premultiplied by image/color convention.
	a := uint8(v)
	return color.RGBA{
		R: premultiply(uint8(v>>24), a),
		G: premultiply(uint8(v>>16), a),
		B: premultiply(uint8(v>>8), a),
		A: a,
	}, nil
}

func premultiply(c, a uint8) uint8 {
	return uint8(uint16(c) * uint16(a) / 0xff)
}
