package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Dt returns the fixed timestep in seconds for this tick rate.
func (c RuntimeConfig) Dt() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score       int    // Current score
	GameOver    bool   // Whether the round has ended (results screen)
	Phase       string // Name of the active state ("menu", "playing", "results")
	SecondsLeft int    // Whole seconds left on the round timer
}

// EventType identifies something that happened during a tick.
type EventType int

const (
	EventSessionStarted EventType = iota
	EventPreyEaten
	EventSessionEnded
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventSessionStarted:
		return "session_started"
	case EventPreyEaten:
		return "prey_eaten"
	case EventSessionEnded:
		return "session_ended"
	default:
		return "unknown"
	}
}

// Event is emitted by a game tick for the platform to log or persist.
type Event struct {
	Type  EventType
	Frame uint64
	X, Z  float64 // Where it happened, in world units
	Value int     // Type-specific payload (prey eaten count, final score)
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
