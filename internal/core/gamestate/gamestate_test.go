package gamestate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalData(t *testing.T) {
	gs := New()

	if _, ok := gs.Get("theme"); ok {
		t.Error("Expected empty state")
	}

	gs.UpdateKey("theme", "dark")
	if v, ok := gs.Get("theme"); !ok || v != "dark" {
		t.Errorf("Expected theme 'dark', got %v (set=%v)", v, ok)
	}

	src := map[string]any{"seed": 42}
	gs.SetData(src)
	if _, ok := gs.Get("theme"); ok {
		t.Error("Expected SetData to replace existing keys")
	}
	src["seed"] = 7
	if v, _ := gs.Get("seed"); v != 42 {
		t.Errorf("Expected SetData to copy its input, got seed=%v", v)
	}

	gs.SetData(nil)
	gs.UpdateKey("after_nil", true)
	if len(gs.Snapshot()) != 1 {
		t.Errorf("Expected one key after nil reset, got %d", len(gs.Snapshot()))
	}
}

func TestProfileStoreDefaults(t *testing.T) {
	s := NewProfileStore()
	p := s.Profile()
	if p.Name != "Square" || p.Level != 1 || p.Attack != 10 || p.Health != 100 {
		t.Errorf("Unexpected default profile: %+v", p)
	}
}

func TestLevelUp(t *testing.T) {
	s := NewProfileStore()
	s.LevelUp()
	s.LevelUp()
	if got := s.Profile().Level; got != 3 {
		t.Errorf("Expected level 3, got %d", got)
	}
}

func TestTakeDamageFloorsAtZero(t *testing.T) {
	s := NewProfileStore()

	s.TakeDamage(30)
	if got := s.Profile().Health; got != 70 {
		t.Errorf("Expected health 70, got %d", got)
	}

	s.TakeDamage(500)
	if got := s.Profile().Health; got != 0 {
		t.Errorf("Expected health 0, got %d", got)
	}

	s.TakeDamage(-20)
	if got := s.Profile().Health; got != 0 {
		t.Errorf("Expected negative damage to be ignored, got %d", got)
	}
}

func TestSetProfile(t *testing.T) {
	s := NewProfileStore()

	var notified []Profile
	s.OnChange = func(p Profile) { notified = append(notified, p) }

	want := Profile{Name: "Hero", Level: 4, Attack: 12, Health: 40, MaxHealth: 80}
	if err := s.SetProfile(want); err != nil {
		t.Fatalf("SetProfile failed: %v", err)
	}
	if s.Profile() != want {
		t.Errorf("Expected %+v, got %+v", want, s.Profile())
	}

	bad := []Profile{
		{Name: "x", Level: 0, Health: 1, MaxHealth: 1},
		{Name: "x", Level: 1, Health: -1, MaxHealth: 1},
		{Name: "x", Level: 1, Health: 10, MaxHealth: 5},
	}
	for _, p := range bad {
		if err := s.SetProfile(p); !errors.Is(err, ErrInvalidProfile) {
			t.Errorf("Expected ErrInvalidProfile for %+v, got %v", p, err)
		}
	}
	if s.Profile() != want {
		t.Error("Expected rejected profiles to leave the store unchanged")
	}

	s.LevelUp()
	if len(notified) != 2 || notified[1].Level != 5 {
		t.Errorf("Expected two change notifications, got %+v", notified)
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()

	p, err := LoadProfile(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got %v", err)
	}
	if p != DefaultProfile() {
		t.Errorf("Expected default profile, got %+v", p)
	}

	path := filepath.Join(dir, "profile.yaml")
	yamlData := "name: Knight\nlevel: 3\nhealth: 150\n"
	if err := os.WriteFile(path, []byte(yamlData), 0644); err != nil {
		t.Fatal(err)
	}
	p, err = LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if p.Name != "Knight" || p.Level != 3 || p.Attack != 10 || p.Health != 150 || p.MaxHealth != 150 {
		t.Errorf("Unexpected profile: %+v", p)
	}

	if err := os.WriteFile(path, []byte("level: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfile(path); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("Expected ErrInvalidProfile, got %v", err)
	}

	if err := os.WriteFile(path, []byte("level: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfile(path); err == nil {
		t.Error("Expected parse error")
	}
}
