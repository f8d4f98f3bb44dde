// Package blahaj implements the shark game: a timed chase over a simulated
// pond, driven one fixed tick at a time through Menu, Playing and Results.
package blahaj

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/blahaj-tide/internal/assets"
	"github.com/vovakirdan/blahaj-tide/internal/config"
	"github.com/vovakirdan/blahaj-tide/internal/core"
	"github.com/vovakirdan/blahaj-tide/internal/games/blahaj/wave"
	"github.com/vovakirdan/blahaj-tide/internal/registry"
)

// ID is the registry name of the game.
const ID = "blahaj"

// skySpin is how fast the backdrop turns, in radians per second.
const skySpin = 0.02

// State is the session phase.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateResults
)

// String returns the lowercase phase name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateResults:
		return "results"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options configure a new Game.
type Options struct {
	Config  config.BlahajConfig
	Catalog *assets.Catalog // nil uses the embedded sprite sheet
}

type meshes struct {
	shark assets.Handle
	prey  assets.Handle
	sky   assets.Handle
	water assets.Handle
}

// Game owns everything a session touches. It is not safe for concurrent
// use; the platform calls Step and Render from one goroutine.
type Game struct {
	cfg     config.BlahajConfig
	runtime core.RuntimeConfig
	catalog *assets.Catalog
	meshes  meshes

	clock    *core.FrameClock
	rng      *rand.Rand
	field    *wave.Field
	prey     *PreyPool
	player   *Player
	backdrop Actor

	state  State
	timer  int // ticks left in the round
	events []core.Event // this tick's events; a fresh slice every Step
	frame  FrameData
}

// New validates the configuration, allocates the pond and loads the sprite
// handles. The game starts on the menu with DefaultConfig runtime settings;
// call Reset to change them.
func New(opts Options) (*Game, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	field, err := wave.New(wave.Params{
		N:       opts.Config.Wave.GridSize,
		Extent:  opts.Config.Wave.Extent,
		Speed:   opts.Config.Wave.Speed,
		Damping: opts.Config.Wave.Damping,
	})
	if err != nil {
		return nil, fmt.Errorf("blahaj: %w", err)
	}

	catalog := opts.Catalog
	if catalog == nil {
		if catalog, err = assets.DefaultCatalog(); err != nil {
			return nil, fmt.Errorf("blahaj: %w", err)
		}
	}
	m, err := loadMeshes(catalog)
	if err != nil {
		return nil, fmt.Errorf("blahaj: %w", err)
	}

	g := &Game{
		cfg:     opts.Config,
		catalog: catalog,
		meshes:  m,
		field:   field,
	}
	g.Reset(core.DefaultConfig())
	return g, nil
}

func loadMeshes(l assets.Loader) (meshes, error) {
	var m meshes
	for _, slot := range []struct {
		name string
		dst  *assets.Handle
	}{
		{assets.Shark, &m.shark},
		{assets.Prey, &m.prey},
		{assets.Sky, &m.sky},
		{assets.Water, &m.water},
	} {
		h, err := l.Load(slot.name)
		if err != nil {
			return m, err
		}
		*slot.dst = h
	}
	return m, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Blahaj Tide" }

// Reset starts over from the menu: calm water, a fresh shark and a full
// swarm. runtime.Seed drives every random choice.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	g.clock = core.NewFrameClock(runtime.TickRate)
	g.rng = rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- gameplay randomness

	g.field.Reset()
	g.prey = NewPreyPool(g.cfg.Prey, g.cfg.Wave.Extent, g.meshes.prey, g.rng)
	g.prey.Spawn(g.cfg.Prey.Count)
	g.player = NewPlayer(g.cfg.Player, g.cfg.Wave, g.meshes.shark)
	g.backdrop = Actor{
		Position: core.V3(0, 0, 0),
		Scale:    g.cfg.Wave.Extent,
		Alive:    true,
		Mesh:     g.meshes.sky,
	}

	g.state = StateMenu
	g.timer = 0
	g.events = nil
}

// Resize records a new screen size. Only the projection aspect depends on
// it, so the round carries on untouched.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.clock.Tick()
	g.events = nil
	dt := g.clock.Dt()

	switch g.state {
	case StateMenu:
		g.field.Step(dt)
		if in.Has(core.ActionConfirm) {
			g.beginRound()
		}
	case StatePlaying:
		g.stepPlaying(in, dt)
	case StateResults:
		g.field.Step(dt)
		if in.Has(core.ActionConfirm) {
			g.restart()
			g.beginRound()
		}
	default:
		panic(fmt.Sprintf("blahaj: unknown session state %d", int(g.state)))
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

// stepPlaying runs one round tick. The order matters: the player's wake
// must land before the pond integrates, and prey test capture against the
// player's already-moved position.
func (g *Game) stepPlaying(in core.InputFrame, dt float64) {
	g.backdrop.Heading += skySpin * dt

	g.player.Update(IntentFrom(in), dt, g.clock.SessionTime(), g.field)

	if eaten := g.prey.Update(dt, g.player.Position, g.player.Scale); eaten > 0 {
		g.player.Grow(eaten)
		g.emit(core.EventPreyEaten, eaten)
	}

	g.field.Step(dt)
	g.prey.Compact()

	g.timer--
	if g.timer <= 0 {
		g.timer = 0
		g.state = StateResults
		g.emit(core.EventSessionEnded, g.Score())
	}
}

// beginRound starts the countdown. Player and swarm are whatever Reset or
// restart left them as.
func (g *Game) beginRound() {
	g.timer = g.cfg.Session.DurationSeconds * g.runtime.TickRate
	g.clock.StartSession()
	g.state = StatePlaying
	g.emit(core.EventSessionStarted, g.timer)
}

// restart rebuilds the shark and the swarm for another round. The pond is
// left as it is unless wave.reset_on_restart is set.
func (g *Game) restart() {
	g.player.Reset()
	g.prey.Spawn(g.cfg.Prey.Count)
	g.backdrop.Heading = 0
	if g.cfg.Wave.ResetOnRestart {
		g.field.Reset()
	}
}

func (g *Game) emit(t core.EventType, value int) {
	g.events = append(g.events, core.Event{
		Type:  t,
		Frame: g.clock.Frame(),
		X:     g.player.Position.X,
		Z:     g.player.Position.Z,
		Value: value,
	})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:       g.Score(),
		GameOver:    g.state == StateResults,
		Phase:       g.state.String(),
		SecondsLeft: g.SecondsLeft(),
	}
}

// Phase returns the session phase.
func (g *Game) Phase() State { return g.state }

// Score returns the number of fish eaten this round.
func (g *Game) Score() int { return g.prey.Eaten() }

// PreyTotal returns the size of the swarm at the start of the round.
func (g *Game) PreyTotal() int { return g.prey.Initial() }

// RoundSeconds returns the configured round length.
func (g *Game) RoundSeconds() int { return g.cfg.Session.DurationSeconds }

// Seed returns the RNG seed of the last Reset.
func (g *Game) Seed() int64 { return g.runtime.Seed }

// TimerTicks returns the ticks left in the round.
func (g *Game) TimerTicks() int { return g.timer }

// SecondsLeft returns the round time left, rounded up.
func (g *Game) SecondsLeft() int {
	return int(math.Ceil(float64(g.timer) / float64(g.runtime.TickRate)))
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.BlahajConfig { return g.cfg }

// Runtime returns the runtime settings from the last Reset.
func (g *Game) Runtime() core.RuntimeConfig { return g.runtime }

// Clock exposes the frame clock.
func (g *Game) Clock() *core.FrameClock { return g.clock }

// Field exposes the pond. Callers must treat it as read-only.
func (g *Game) Field() *wave.Field { return g.field }

// Player exposes the shark. Callers must treat it as read-only.
func (g *Game) Player() *Player { return g.player }

// Prey exposes the swarm. Callers must treat it as read-only.
func (g *Game) Prey() *PreyPool { return g.prey }

// Catalog returns the sprite catalog used by Render.
func (g *Game) Catalog() *assets.Catalog { return g.catalog }

// Register the game with the registry
func init() {
	registry.Register(ID, "Blahaj Tide", func(opts registry.Options) (registry.Game, error) {
		cfg, err := config.LoadBlahaj(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		preset, err := config.ParsePreset(opts.Difficulty)
		if err != nil {
			return nil, err
		}
		config.ApplyBlahajPreset(&cfg, preset)
		return New(Options{Config: cfg})
	})
}
