package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultBlahajConfig() {
		t.Errorf("embedded defaults = %+v\nhardcoded = %+v", cfg, DefaultBlahajConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if w := cfg.Warnings(60); len(w) != 0 {
		t.Errorf("defaults should not warn at 60 fps: %v", w)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := "prey:\n  count: 7\nsession:\n  duration_seconds: 5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := LoadBlahajWithSource(path)
	if err != nil {
		t.Fatalf("LoadBlahaj error: %v", err)
	}
	if src != path {
		t.Errorf("source = %q, expected %q", src, path)
	}
	if cfg.Prey.Count != 7 || cfg.Session.DurationSeconds != 5 {
		t.Errorf("overrides not applied: prey=%d duration=%d", cfg.Prey.Count, cfg.Session.DurationSeconds)
	}
	// Untouched keys keep their defaults
	if cfg.Wave.GridSize != DefaultBlahajConfig().Wave.GridSize {
		t.Errorf("wave.grid_size = %d, expected default", cfg.Wave.GridSize)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBlahaj(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("wave: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBlahaj(bad); err == nil {
		t.Error("malformed custom file should be an error")
	}
}

func TestLoadFallsBackToLocalConfigs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir) // no ~/.blahaj here
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte("prey:\n  speed: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := LoadBlahajWithSource("")
	if err != nil {
		t.Fatalf("LoadBlahaj error: %v", err)
	}
	if cfg.Prey.Speed != 9 {
		t.Errorf("prey.speed = %v, expected 9 from ./configs", cfg.Prey.Speed)
	}
	if src != filepath.Join("configs", FileName) {
		t.Errorf("source = %q", src)
	}
}

func TestLoadEmbeddedWhenNothingFound(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	cfg, src, err := LoadBlahajWithSource("")
	if err != nil {
		t.Fatalf("LoadBlahaj error: %v", err)
	}
	if src != "embedded" {
		t.Errorf("source = %q, expected embedded", src)
	}
	if cfg != DefaultBlahajConfig() {
		t.Error("embedded config should equal defaults")
	}
}

func TestApplyBlahajPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		wantCount int
		wantSecs  int
		wantGrow  bool
	}{
		{DifficultyEasy, 80, 90, true},
		{DifficultyNormal, 60, 60, true},
		{DifficultyHard, 40, 45, true},
		{DifficultyFixed, 60, 60, false},
		{"", 60, 60, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultBlahajConfig()
			ApplyBlahajPreset(&cfg, tt.preset)
			if cfg.Prey.Count != tt.wantCount {
				t.Errorf("prey.count = %d, expected %d", cfg.Prey.Count, tt.wantCount)
			}
			if cfg.Session.DurationSeconds != tt.wantSecs {
				t.Errorf("duration = %d, expected %d", cfg.Session.DurationSeconds, tt.wantSecs)
			}
			if grows := cfg.Player.GrowthPerPrey > 0; grows != tt.wantGrow {
				t.Errorf("growth enabled = %v, expected %v", grows, tt.wantGrow)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset config should validate: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) error: %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset should reject unknown names")
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := DefaultBlahajConfig()
	cfg.Wave.GridSize = 2
	cfg.Prey.TurnInterval = 0
	cfg.Session.DurationSeconds = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate should fail")
	}
	for _, key := range []string{"wave.grid_size", "prey.turn_interval", "session.duration_seconds"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q should mention %s", err, key)
		}
	}
}

func TestWarningsFlagCourant(t *testing.T) {
	cfg := DefaultBlahajConfig()
	cfg.Wave.Speed = 40 // 40/60 / (60/159) ~ 1.77

	warns := cfg.Warnings(60)
	if len(warns) == 0 || !strings.Contains(warns[0], "courant") {
		t.Fatalf("expected a courant warning, got %v", warns)
	}

	// A faster tick rate brings it back under the bound
	if warns := cfg.Warnings(240); len(warns) != 0 {
		t.Errorf("240 fps should be stable, got %v", warns)
	}
}

func TestCheckTickRateRejectsFastGains(t *testing.T) {
	cfg := DefaultBlahajConfig()
	if err := cfg.CheckTickRate(60); err != nil {
		t.Fatalf("defaults at 60 fps: %v", err)
	}

	tests := []struct {
		name     string
		tickRate int
		mutate   func(*BlahajConfig)
		keys     []string
	}{
		{"smoothing below its rate", 7, nil, []string{"player.smoothing_gain"}},
		{"smoothing just under its rate", 14, nil, []string{"player.smoothing_gain"}},
		{"camera gain", 60, func(c *BlahajConfig) { c.Player.CameraGain = 60 }, []string{"player.camera_gain"}},
		{"turn gain", 60, func(c *BlahajConfig) { c.Prey.TurnGain = 90 }, []string{"prey.turn_gain"}},
		{"all three", 1, nil, []string{"player.smoothing_gain", "player.camera_gain", "prey.turn_gain"}},
		{"zero rate", 0, nil, []string{"tick rate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultBlahajConfig()
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			err := c.CheckTickRate(tt.tickRate)
			if err == nil {
				t.Fatal("CheckTickRate should fail")
			}
			for _, key := range tt.keys {
				if !strings.Contains(err.Error(), key) {
					t.Errorf("error %q should mention %s", err, key)
				}
			}
		})
	}
}

func TestMarshalRoundTripsThroughParse(t *testing.T) {
	cfg := DefaultBlahajConfig()
	cfg.Wave.ResetOnRestart = true

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, expected %+v", got, cfg)
	}
}
