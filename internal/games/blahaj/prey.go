package blahaj

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/blahaj-tide/internal/assets"
	"github.com/vovakirdan/blahaj-tide/internal/config"
	"github.com/vovakirdan/blahaj-tide/internal/core"
)

// Prey is one fish in the swarm.
type Prey struct {
	Actor
	target float64 // heading the fish is turning towards
	turnIn int     // ticks until the next heading pick
	phase  float64 // roll oscillator phase
}

// PreyPool owns the swarm. Removal swaps the last fish into the hole, so
// pointers and indices are only valid until the next Compact.
type PreyPool struct {
	cfg  config.PreyConfig
	half float64
	mesh assets.Handle
	rng  *rand.Rand

	prey    []Prey
	initial int
	live    int
}

// NewPreyPool creates an empty pool for a pond of the given side length.
func NewPreyPool(cfg config.PreyConfig, extent float64, mesh assets.Handle, rng *rand.Rand) *PreyPool {
	return &PreyPool{
		cfg:  cfg,
		half: extent / 2,
		mesh: mesh,
		rng:  rng,
	}
}

// Spawn replaces the swarm with n fresh fish scattered over the pond.
func (pp *PreyPool) Spawn(n int) {
	n = max(n, 0)
	if cap(pp.prey) < n {
		pp.prey = make([]Prey, 0, n)
	}
	pp.prey = pp.prey[:0]

	for i := 0; i < n; i++ {
		heading := pp.rng.Float64() * 2 * math.Pi
		pp.prey = append(pp.prey, Prey{
			Actor: Actor{
				Position: core.V3(
					(pp.rng.Float64()*2-1)*pp.half,
					0,
					(pp.rng.Float64()*2-1)*pp.half,
				),
				Heading: heading,
				Scale:   1,
				Speed:   pp.cfg.Speed,
				Alive:   true,
				Mesh:    pp.mesh,
			},
			target: heading,
			turnIn: 1 + pp.rng.Intn(max(pp.cfg.TurnInterval, 1)),
			phase:  pp.rng.Float64() * 2 * math.Pi,
		})
	}
	pp.initial = n
	pp.live = n
}

// Update moves every live fish one tick and eats those inside the capture
// radius around the player. It returns how many were eaten this tick. Dead
// fish stay in place until Compact.
func (pp *PreyPool) Update(dt float64, playerPos core.Vec3, playerScale float64) int {
	reach := pp.cfg.CaptureFactor * playerScale
	reachSq := reach * reach
	eaten := 0

	for i := range pp.prey {
		p := &pp.prey[i]
		if !p.Alive {
			continue
		}

		p.Position = p.Position.Add(p.Forward().Scale(p.Speed * dt))
		wrapXZ(&p.Position, pp.half)

		p.turnIn--
		if p.turnIn <= 0 {
			p.target = p.Heading + (pp.rng.Float64()*2-1)*math.Pi/2
			p.turnIn = pp.cfg.TurnInterval
		}
		p.Heading = Smooth(p.Heading, p.target, pp.cfg.TurnGain, dt)

		p.phase += pp.cfg.RollRate * dt
		p.Roll = pp.cfg.RollAmplitude * math.Sin(p.phase)

		dx := p.Position.X - playerPos.X
		dz := p.Position.Z - playerPos.Z
		if dx*dx+dz*dz < reachSq {
			p.Alive = false
			pp.live--
			eaten++
		}
	}
	return eaten
}

// Compact drops eaten fish by swapping the last fish into each hole. It
// returns the number removed.
func (pp *PreyPool) Compact() int {
	removed := 0
	for i := 0; i < len(pp.prey); {
		if pp.prey[i].Alive {
			i++
			continue
		}
		last := len(pp.prey) - 1
		pp.prey[i] = pp.prey[last]
		pp.prey = pp.prey[:last]
		removed++
	}
	return removed
}

// Live returns the number of fish not yet eaten.
func (pp *PreyPool) Live() int { return pp.live }

// Initial returns the population at the last Spawn.
func (pp *PreyPool) Initial() int { return pp.initial }

// Eaten returns Initial - Live.
func (pp *PreyPool) Eaten() int { return pp.initial - pp.live }

// Len returns the slice length, which includes eaten fish until Compact.
func (pp *PreyPool) Len() int { return len(pp.prey) }

// Each calls fn for every live fish. fn must not keep the pointer.
func (pp *PreyPool) Each(fn func(*Prey)) {
	for i := range pp.prey {
		if pp.prey[i].Alive {
			fn(&pp.prey[i])
		}
	}
}
