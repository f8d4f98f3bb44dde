package blahaj

import (
	"math"

	"github.com/vovakirdan/blahaj-tide/internal/core"
)

// Autopilot steers the shark towards the nearest fish. It drives headless
// simulations and the attract mode.
type Autopilot struct {
	// Replay confirms on the results screen to start another round.
	Replay bool
}

// Input decides the actions for the next tick of g.
func (a *Autopilot) Input(g *Game) core.InputFrame {
	in := core.NewInputFrame()

	switch g.Phase() {
	case StateMenu:
		in.Set(core.ActionConfirm)
		return in
	case StateResults:
		if a.Replay {
			in.Set(core.ActionConfirm)
		}
		return in
	}

	p := g.Player()
	target, ok := nearestPrey(g.Prey(), p.Position, g.Config().Wave.Extent/2)
	if !ok {
		in.Set(core.ActionDecelerate)
		return in
	}

	want := math.Atan2(target.X, target.Z)
	turn := core.AngDiff(p.Heading, want)
	step := g.Config().Player.TurnStep
	switch {
	case turn > step/2:
		in.Set(core.ActionTurnLeft)
	case turn < -step/2:
		in.Set(core.ActionTurnRight)
	}

	// Brake to turn on the spot rather than circling the target
	if math.Abs(turn) < math.Pi/3 {
		in.Set(core.ActionAccelerate)
	} else {
		in.Set(core.ActionDecelerate)
	}
	return in
}

// nearestPrey returns the offset to the closest live fish, measured the
// short way round the pond.
func nearestPrey(pool *PreyPool, from core.Vec3, half float64) (core.Vec3, bool) {
	best := math.Inf(1)
	var offset core.Vec3
	pool.Each(func(p *Prey) {
		dx, dz := toroidalDelta(from, p.Position, half)
		if d := dx*dx + dz*dz; d < best {
			best = d
			offset = core.V3(dx, 0, dz)
		}
	})
	return offset, !math.IsInf(best, 1)
}
