// Package config provides YAML-based game configuration loading, difficulty
// presets and sanity checks for the pond simulation.
package config

import "fmt"

// BlahajConfig contains all tunables for a session.
type BlahajConfig struct {
	Wave    WaveConfig    `yaml:"wave"`
	Player  PlayerConfig  `yaml:"player"`
	Prey    PreyConfig    `yaml:"prey"`
	Session SessionConfig `yaml:"session"`
	Input   InputConfig   `yaml:"input"`
}

// WaveConfig defines the pond surface.
type WaveConfig struct {
	GridSize       int     `yaml:"grid_size"` // Cells per side
	Extent         float64 `yaml:"extent"`    // World units per side
	Speed          float64 `yaml:"speed"`     // Propagation speed, units/s
	Damping        float64 `yaml:"damping"`   // Velocity loss per second
	PulseStrength  float64 `yaml:"pulse_strength"`
	PulseRadius    float64 `yaml:"pulse_radius"`
	ResetOnRestart bool    `yaml:"reset_on_restart"`
}

// PlayerConfig defines shark handling and the chase camera.
type PlayerConfig struct {
	MaxSpeed       float64 `yaml:"max_speed"`
	Acceleration   float64 `yaml:"acceleration"`
	Deceleration   float64 `yaml:"deceleration"`
	CoastDrag      float64 `yaml:"coast_drag"`
	TurnStep       float64 `yaml:"turn_step"`  // Radians per tick while turning
	BankAngle      float64 `yaml:"bank_angle"` // Roll target while turning, radians
	BobAmplitude   float64 `yaml:"bob_amplitude"`
	BobFrequency   float64 `yaml:"bob_frequency"`
	SmoothingGain  float64 `yaml:"smoothing_gain"`
	CameraGain     float64 `yaml:"camera_gain"`
	CameraDistance float64 `yaml:"camera_distance"`
	CameraHeight   float64 `yaml:"camera_height"`
	GrowthPerPrey  float64 `yaml:"growth_per_prey"`
	StartScale     float64 `yaml:"start_scale"`
}

// PreyConfig defines the swarm.
type PreyConfig struct {
	Count         int     `yaml:"count"`
	Speed         float64 `yaml:"speed"`
	TurnInterval  int     `yaml:"turn_interval"` // Ticks between heading picks
	TurnGain      float64 `yaml:"turn_gain"`
	RollRate      float64 `yaml:"roll_rate"`
	RollAmplitude float64 `yaml:"roll_amplitude"`
	CaptureFactor float64 `yaml:"capture_factor"` // Capture radius per unit of player scale
}

// SessionConfig defines the timed round.
type SessionConfig struct {
	DurationSeconds int `yaml:"duration_seconds"`
}

// InputConfig tunes how terminal key repeats become held actions.
type InputConfig struct {
	HoldTicks int `yaml:"hold_ticks"` // Ticks a key stays held after its last repeat
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. An empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}
