package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "blahaj.yaml"

// LoadBlahaj loads the game configuration.
// Search order: customPath -> ~/.blahaj/configs/blahaj.yaml -> ./configs/blahaj.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it
// changes.
func LoadBlahaj(customPath string) (BlahajConfig, error) {
	cfg, _, err := LoadBlahajWithSource(customPath)
	return cfg, err
}

// LoadBlahajWithSource is LoadBlahaj that also reports where the config came
// from ("embedded" for the built-in file).
func LoadBlahajWithSource(customPath string) (BlahajConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBlahajConfig(), "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultBlahajConfig(), "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultBlahajYAML)
	if err != nil {
		return DefaultBlahajConfig(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// Parse decodes YAML over the default configuration.
func Parse(data []byte) (BlahajConfig, error) {
	cfg := DefaultBlahajConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg BlahajConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blahaj", "configs", filename)
}

// ApplyBlahajPreset modifies the config based on a difficulty preset.
// Normal and the empty preset leave the loaded values alone.
func ApplyBlahajPreset(cfg *BlahajConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Prey.Count = 80
		cfg.Prey.Speed = 2.5
		cfg.Prey.CaptureFactor = 1.5
		cfg.Session.DurationSeconds = 90
	case DifficultyHard:
		cfg.Prey.Count = 40
		cfg.Prey.Speed = 4.5
		cfg.Prey.CaptureFactor = 1.0
		cfg.Session.DurationSeconds = 45
	case DifficultyFixed:
		// The shark keeps its starting size all round
		cfg.Player.GrowthPerPrey = 0
	}
}

// Validate reports values the simulation cannot run with.
func (c BlahajConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Wave.GridSize >= 3, "wave.grid_size must be at least 3, got %d", c.Wave.GridSize)
	check(c.Wave.Extent > 0, "wave.extent must be positive, got %v", c.Wave.Extent)
	check(c.Wave.Speed >= 0, "wave.speed must not be negative, got %v", c.Wave.Speed)
	check(c.Wave.Damping >= 0, "wave.damping must not be negative, got %v", c.Wave.Damping)
	check(c.Wave.PulseRadius > 0, "wave.pulse_radius must be positive, got %v", c.Wave.PulseRadius)

	check(c.Player.MaxSpeed > 0, "player.max_speed must be positive, got %v", c.Player.MaxSpeed)
	check(c.Player.Acceleration >= 0, "player.acceleration must not be negative, got %v", c.Player.Acceleration)
	check(c.Player.Deceleration >= 0, "player.deceleration must not be negative, got %v", c.Player.Deceleration)
	check(c.Player.StartScale > 0, "player.start_scale must be positive, got %v", c.Player.StartScale)
	check(c.Player.GrowthPerPrey >= 0, "player.growth_per_prey must not be negative, got %v", c.Player.GrowthPerPrey)
	check(c.Player.SmoothingGain > 0, "player.smoothing_gain must be positive, got %v", c.Player.SmoothingGain)
	check(c.Player.CameraGain > 0, "player.camera_gain must be positive, got %v", c.Player.CameraGain)

	check(c.Prey.Count >= 0, "prey.count must not be negative, got %d", c.Prey.Count)
	check(c.Prey.Speed >= 0, "prey.speed must not be negative, got %v", c.Prey.Speed)
	check(c.Prey.TurnInterval > 0, "prey.turn_interval must be positive, got %d", c.Prey.TurnInterval)
	check(c.Prey.CaptureFactor > 0, "prey.capture_factor must be positive, got %v", c.Prey.CaptureFactor)

	check(c.Session.DurationSeconds > 0, "session.duration_seconds must be positive, got %d", c.Session.DurationSeconds)
	check(c.Input.HoldTicks >= 1, "input.hold_ticks must be at least 1, got %d", c.Input.HoldTicks)

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// CheckTickRate reports smoothing gains that cannot run at tickRate. Each
// gain eases a value by gain/tickRate of the remaining gap per tick, so a
// product of 1 or more snaps or overshoots instead of easing.
func (c BlahajConfig) CheckTickRate(tickRate int) error {
	if tickRate <= 0 {
		return fmt.Errorf("config: tick rate must be positive, got %d", tickRate)
	}

	dt := 1 / float64(tickRate)
	gains := []struct {
		key  string
		gain float64
	}{
		{"player.smoothing_gain", c.Player.SmoothingGain},
		{"player.camera_gain", c.Player.CameraGain},
		{"prey.turn_gain", c.Prey.TurnGain},
	}

	var errs []error
	for _, g := range gains {
		if g.gain*dt >= 1 {
			errs = append(errs, fmt.Errorf("%s %v is too high for %d fps: keep it below %d or raise the tick rate",
				g.key, g.gain, tickRate, tickRate))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: unstable at %d fps: %w", tickRate, errors.Join(errs...))
	}
	return nil
}

// Warnings lists settings that run but misbehave at the given tick rate.
func (c BlahajConfig) Warnings(tickRate int) []string {
	var warns []string
	if tickRate <= 0 || c.Wave.GridSize < 2 || c.Wave.Extent <= 0 {
		return nil
	}

	dt := 1 / float64(tickRate)
	dx := c.Wave.Extent / float64(c.Wave.GridSize-1)
	courant := c.Wave.Speed * dt / dx
	if courant > 1/math.Sqrt2 {
		warns = append(warns, fmt.Sprintf(
			"wave courant number %.3f exceeds %.3f at %d fps: the surface will blow up; lower wave.speed or wave.grid_size, or raise the tick rate",
			courant, 1/math.Sqrt2, tickRate))
	}

	if c.Prey.CaptureFactor*c.Player.StartScale*2 >= c.Wave.Extent {
		warns = append(warns, "capture radius covers the whole pond: every prey is eaten on the first tick")
	}
	if c.Player.MaxSpeed*dt > c.Wave.Extent/2 {
		warns = append(warns, "player.max_speed crosses half the pond in one tick")
	}
	return warns
}
