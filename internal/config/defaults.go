package config

import (
	_ "embed"
)

//go:embed defaults/blahaj.yaml
var defaultBlahajYAML []byte

// CaptureFactor is the default capture radius per unit of player scale.
const CaptureFactor = 1.2

// DefaultBlahajConfig returns the hard-coded configuration. It matches the
// embedded defaults/blahaj.yaml.
func DefaultBlahajConfig() BlahajConfig {
	return BlahajConfig{
		Wave: WaveConfig{
			GridSize:      160,
			Extent:        60,
			Speed:         8,
			Damping:       0,
			PulseStrength: 0.03,
			PulseRadius:   0.9,
		},
		Player: PlayerConfig{
			MaxSpeed:       14,
			Acceleration:   20,
			Deceleration:   30,
			CoastDrag:      4,
			TurnStep:       0.06,
			BankAngle:      0.5,
			BobAmplitude:   0.15,
			BobFrequency:   10,
			SmoothingGain:  15,
			CameraGain:     5,
			CameraDistance: 6,
			CameraHeight:   3,
			GrowthPerPrey:  0.08,
			StartScale:     1,
		},
		Prey: PreyConfig{
			Count:         60,
			Speed:         3,
			TurnInterval:  60,
			TurnGain:      2,
			RollRate:      4,
			RollAmplitude: 0.3,
			CaptureFactor: CaptureFactor,
		},
		Session: SessionConfig{
			DurationSeconds: 60,
		},
		Input: InputConfig{
			HoldTicks: 8,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBlahajYAML
}
