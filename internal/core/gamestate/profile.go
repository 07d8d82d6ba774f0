package gamestate

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrInvalidProfile is returned when a profile breaks its invariants.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile holds the player's attributes.
type Profile struct {
	Name      string `yaml:"name"`
	Level     int    `yaml:"level"`
	Attack    int    `yaml:"attack"`
	Health    int    `yaml:"health"`
	MaxHealth int    `yaml:"max_health"`
}

// DefaultProfile returns the starting profile.
func DefaultProfile() Profile {
	return Profile{
		Name:      "Square",
		Level:     1,
		Attack:    10,
		Health:    100,
		MaxHealth: 100,
	}
}

// Validate checks level >= 1 and 0 <= health <= max health.
func (p Profile) Validate() error {
	if p.Level < 1 {
		return fmt.Errorf("%w: level %d below 1", ErrInvalidProfile, p.Level)
	}
	if p.Health < 0 {
		return fmt.Errorf("%w: negative health %d", ErrInvalidProfile, p.Health)
	}
	if p.MaxHealth < p.Health {
		return fmt.Errorf("%w: health %d above max %d", ErrInvalidProfile, p.Health, p.MaxHealth)
	}
	return nil
}

// ProfileStore holds the current profile. It is safe for concurrent use.
type ProfileStore struct {
	mu      sync.RWMutex
	profile Profile

	// OnChange callback when the profile changes (for UI updates)
	OnChange func(Profile)
}

// NewProfileStore creates a store holding DefaultProfile.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profile: DefaultProfile()}
}

// SetProfile replaces the profile.
func (s *ProfileStore) SetProfile(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	s.changed(p)
	return nil
}

// LevelUp increments the level by one.
func (s *ProfileStore) LevelUp() {
	s.mu.Lock()
	s.profile.Level++
	p := s.profile
	s.mu.Unlock()
	s.changed(p)
}

// TakeDamage subtracts amount from health, flooring at zero. Non-positive
// amounts are ignored.
func (s *ProfileStore) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	s.mu.Lock()
	s.profile.Health = max(0, s.profile.Health-amount)
	p := s.profile
	s.mu.Unlock()
	s.changed(p)
}

// Profile returns a copy of the current profile.
func (s *ProfileStore) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *ProfileStore) changed(p Profile) {
	if s.OnChange != nil {
		s.OnChange(p)
	}
}

// LoadProfile reads a YAML profile seed. A missing file yields DefaultProfile.
// Fields absent from the file keep their default values.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultProfile(), nil
		}
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}

	p := DefaultProfile()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	if p.MaxHealth < p.Health {
		p.MaxHealth = p.Health
	}
	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}
