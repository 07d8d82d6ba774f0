package game

import (
	"errors"
	"image/color"

	"chosenoffset.com/squarefield/internal/config"
	"chosenoffset.com/squarefield/internal/core/gamestate"
	"chosenoffset.com/squarefield/internal/entity"
)

var (
	// ErrAlreadyMounted is returned by a second Mount on the same field.
	ErrAlreadyMounted = errors.New("field already mounted")
	// ErrTornDown is returned by Mount after Unmount.
	ErrTornDown = errors.New("field torn down")
)

// State is the lifecycle state of a Field.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateTornDown:
		return "torn-down"
	default:
		return "unknown"
	}
}

// ProfileStore is the player profile collaborator. The field only reads it
// for the overlay.
type ProfileStore interface {
	SetProfile(p gamestate.Profile) error
	LevelUp()
	TakeDamage(amount int)
	Profile() gamestate.Profile
}

// Options configures a Field.
type Options struct {
	Player      entity.Options
	PlayerColor color.Color
	Background  color.Color

	// ShowHUD draws the profile readout at (HUDX, HUDY).
	ShowHUD    bool
	HUDX, HUDY int
}

// DefaultOptions returns the standard field: a blue 150px square moving 6px
// per tick on a dark background.
func DefaultOptions() Options {
	return Options{
		Player:      entity.DefaultOptions(),
		PlayerColor: color.RGBA{0x0d, 0x3d, 0xd9, 0xff},
		Background:  color.RGBA{0x22, 0x22, 0x22, 0xff},
	}
}

// OptionsFromConfig builds field options from application settings.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Player: entity.Options{
			Size:  cfg.Player.Size,
			Speed: cfg.Player.Speed,
		},
		PlayerColor: cfg.PlayerColor(),
		Background:  cfg.BackgroundColor(),
		ShowHUD:     cfg.HUD.Enabled,
		HUDX:        cfg.HUD.X,
		HUDY:        cfg.HUD.Y,
	}
}
