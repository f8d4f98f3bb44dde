package blahaj

import (
	"math"

	"github.com/vovakirdan/blahaj-tide/internal/assets"
	"github.com/vovakirdan/blahaj-tide/internal/config"
	"github.com/vovakirdan/blahaj-tide/internal/core"
)

// Pulser receives the wake the shark leaves while swimming hard.
type Pulser interface {
	AddPulse(strength, radius, cx, cz float64)
}

// Intent is the player's held controls for one tick.
type Intent struct {
	Left       bool
	Right      bool
	Accelerate bool
	Decelerate bool
}

// IntentFrom reads the steering actions out of an input frame.
func IntentFrom(in core.InputFrame) Intent {
	return Intent{
		Left:       in.Has(core.ActionTurnLeft),
		Right:      in.Has(core.ActionTurnRight),
		Accelerate: in.Has(core.ActionAccelerate),
		Decelerate: in.Has(core.ActionDecelerate),
	}
}

// Player is the shark plus the chase camera that follows it.
type Player struct {
	Actor
	Camera Camera

	cfg   config.PlayerConfig
	wave  config.WaveConfig
	half  float64
	spawn core.Vec3

	pitchTarget float64
	rollTarget  float64
	scaleTarget float64
}

// NewPlayer creates a shark for a pond of the given side length and places
// it at the origin.
func NewPlayer(cfg config.PlayerConfig, wave config.WaveConfig, mesh assets.Handle) *Player {
	p := &Player{
		cfg:  cfg,
		wave: wave,
		half: wave.Extent / 2,
	}
	p.Mesh = mesh
	p.Reset()
	return p
}

// Reset puts the shark back at its spawn point, at rest and starting size,
// with the camera snapped into place behind it.
func (p *Player) Reset() {
	p.Position = p.spawn
	p.Heading = 0
	p.Pitch, p.pitchTarget = 0, 0
	p.Roll, p.rollTarget = 0, 0
	p.Scale, p.scaleTarget = p.cfg.StartScale, p.cfg.StartScale
	p.Speed = 0
	p.Alive = true

	p.Camera = NewCamera()
	p.Camera.Position = p.cameraGoal()
	p.Camera.Target = p.Position
}

// Update applies one tick of input and moves the shark. field receives the
// wake pulse when accelerating and must be stepped after this call for the
// pulse to propagate in the same tick.
func (p *Player) Update(in Intent, dt, sessionTime float64, field Pulser) {
	p.rollTarget = 0
	if in.Left {
		p.Heading += p.cfg.TurnStep
		p.rollTarget = -p.cfg.BankAngle
	}
	if in.Right {
		p.Heading -= p.cfg.TurnStep
		p.rollTarget = p.cfg.BankAngle
	}
	if in.Left && in.Right {
		p.rollTarget = 0
	}

	switch {
	case in.Accelerate:
		p.Speed += p.cfg.Acceleration * dt
		p.pitchTarget = p.cfg.BobAmplitude * math.Sin(p.cfg.BobFrequency*sessionTime)
		if field != nil {
			field.AddPulse(p.wave.PulseStrength*p.Scale, p.wave.PulseRadius, p.Position.X, p.Position.Z)
		}
	case in.Decelerate:
		p.Speed -= p.cfg.Deceleration * dt
		p.pitchTarget = 0
	default:
		p.Speed -= p.cfg.CoastDrag * dt
		p.pitchTarget = 0
	}
	p.Speed = core.ClampF(p.Speed, 0, p.cfg.MaxSpeed)

	k := p.cfg.SmoothingGain
	p.Pitch = Smooth(p.Pitch, p.pitchTarget, k, dt)
	p.Roll = Smooth(p.Roll, p.rollTarget, k, dt)
	p.Scale = Smooth(p.Scale, p.scaleTarget, k, dt)

	p.Position = p.Position.Add(p.Forward().Scale(p.Speed * dt))
	if shift := wrapXZ(&p.Position, p.half); shift != (core.Vec3{}) {
		// Carry the camera across the seam with the shark
		p.Camera.Position = p.Camera.Position.Add(shift)
	}

	p.Camera.Position = SmoothVec(p.Camera.Position, p.cameraGoal(), p.cfg.CameraGain, dt)
	p.Camera.Target = p.Position
}

// Grow raises the target size for n eaten fish. Scale eases towards it.
func (p *Player) Grow(n int) {
	p.scaleTarget += float64(n) * p.cfg.GrowthPerPrey
}

// ScaleTarget returns the size the shark is easing towards.
func (p *Player) ScaleTarget() float64 { return p.scaleTarget }

// cameraGoal is the spot behind and above the shark the camera drifts to.
func (p *Player) cameraGoal() core.Vec3 {
	offset := core.Identity().
		RotateY(p.Heading).
		TransformPoint(core.V3(0, p.cfg.CameraHeight, -p.cfg.CameraDistance))
	return p.Position.Add(offset)
}
