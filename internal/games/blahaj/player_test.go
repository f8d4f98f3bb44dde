package blahaj

import (
	"math"
	"testing"

	"github.com/vovakirdan/blahaj-tide/internal/config"
	"github.com/vovakirdan/blahaj-tide/internal/core"
)

type pulse struct{ strength, radius, x, z float64 }

type recordingPulser struct{ pulses []pulse }

func (r *recordingPulser) AddPulse(strength, radius, cx, cz float64) {
	r.pulses = append(r.pulses, pulse{strength, radius, cx, cz})
}

func newTestPlayer() *Player {
	cfg := config.DefaultBlahajConfig()
	return NewPlayer(cfg.Player, cfg.Wave, 1)
}

func TestPlayerStartsAtRest(t *testing.T) {
	p := newTestPlayer()
	if p.Position != (core.Vec3{}) || p.Speed != 0 || p.Heading != 0 {
		t.Errorf("fresh player = %+v", p.Actor)
	}
	if p.Scale != 1 || p.ScaleTarget() != 1 {
		t.Errorf("scale = %v / %v, expected 1", p.Scale, p.ScaleTarget())
	}
	// Camera sits behind (-Z) and above the shark
	if p.Camera.Position.Z >= 0 || p.Camera.Position.Y <= 0 {
		t.Errorf("camera = %+v, expected behind and above", p.Camera.Position)
	}
}

func TestAccelerateRampsToMaxAndLeavesWake(t *testing.T) {
	p := newTestPlayer()
	wake := &recordingPulser{}
	dt := 1.0 / 60

	for i := 0; i < 120; i++ {
		p.Update(Intent{Accelerate: true}, dt, float64(i)*dt, wake)
	}

	if p.Speed != p.cfg.MaxSpeed {
		t.Errorf("speed = %v, expected max %v", p.Speed, p.cfg.MaxSpeed)
	}
	if len(wake.pulses) != 120 {
		t.Fatalf("pulses = %d, expected one per accelerating tick", len(wake.pulses))
	}
	first := wake.pulses[0]
	if first.x != 0 || first.z != 0 || first.radius != p.wave.PulseRadius {
		t.Errorf("first pulse = %+v, expected at origin", first)
	}
	if want := p.wave.PulseStrength * p.cfg.StartScale; !near(first.strength, want) {
		t.Errorf("first pulse strength = %v, expected %v", first.strength, want)
	}
	if p.Position.Z <= 0 {
		t.Errorf("heading 0 should swim towards +Z, at %+v", p.Position)
	}
}

func TestBrakeAndCoastStopAtZero(t *testing.T) {
	p := newTestPlayer()
	p.Speed = 5

	p.Update(Intent{Decelerate: true}, 1.0/60, 0, nil)
	if want := 5 - p.cfg.Deceleration/60; math.Abs(p.Speed-want) > 1e-9 {
		t.Errorf("after brake speed = %v, expected %v", p.Speed, want)
	}

	for i := 0; i < 600; i++ {
		p.Update(Intent{}, 1.0/60, 0, nil)
	}
	if p.Speed != 0 {
		t.Errorf("coasting should come to rest, speed = %v", p.Speed)
	}
}

func TestTurningBanksAndYaws(t *testing.T) {
	p := newTestPlayer()

	p.Update(Intent{Left: true}, 1.0/60, 0, nil)
	if !near(p.Heading, p.cfg.TurnStep) {
		t.Errorf("left turn heading = %v, expected %v", p.Heading, p.cfg.TurnStep)
	}
	if p.Roll >= 0 {
		t.Errorf("left turn should bank negative, roll = %v", p.Roll)
	}

	for i := 0; i < 2; i++ {
		p.Update(Intent{Right: true}, 1.0/60, 0, nil)
	}
	if !near(p.Heading, -p.cfg.TurnStep) {
		t.Errorf("heading = %v, expected %v", p.Heading, -p.cfg.TurnStep)
	}

	// Both held cancel the bank
	for i := 0; i < 120; i++ {
		p.Update(Intent{Left: true, Right: true}, 1.0/60, 0, nil)
	}
	if math.Abs(p.Roll) > 1e-6 {
		t.Errorf("roll = %v, expected level", p.Roll)
	}
}

func TestGrowEasesScale(t *testing.T) {
	p := newTestPlayer()
	p.Grow(5)

	want := 1 + 5*p.cfg.GrowthPerPrey
	if !near(p.ScaleTarget(), want) {
		t.Fatalf("ScaleTarget() = %v, expected %v", p.ScaleTarget(), want)
	}

	p.Update(Intent{}, 1.0/60, 0, nil)
	if p.Scale <= 1 || p.Scale >= want {
		t.Errorf("scale should ease, got %v", p.Scale)
	}
	for i := 0; i < 60; i++ {
		p.Update(Intent{}, 1.0/60, 0, nil)
	}
	if math.Abs(p.Scale-want) > 1e-3 {
		t.Errorf("scale = %v, expected ~%v", p.Scale, want)
	}
}

func TestWrapCarriesCamera(t *testing.T) {
	p := newTestPlayer()
	dt := 1.0 / 60

	// Face +X and settle the camera just short of the seam
	p.Heading = math.Pi / 2
	p.Position = core.V3(29.9, 0, 0)
	p.Camera.Position = p.cameraGoal()
	p.Speed = p.cfg.MaxSpeed

	p.Update(Intent{Accelerate: true}, dt, 0, nil)

	if p.Position.X > -29 {
		t.Fatalf("player should have wrapped to the far side, x = %v", p.Position.X)
	}
	if gap := p.Camera.Position.X - p.Position.X; math.Abs(gap) > p.cfg.CameraDistance+1 {
		t.Errorf("camera left behind across the seam: gap = %v", gap)
	}
}

func TestIntentFrom(t *testing.T) {
	in := core.NewInputFrame()
	in.Set(core.ActionTurnLeft)
	in.Set(core.ActionAccelerate)

	got := IntentFrom(in)
	want := Intent{Left: true, Accelerate: true}
	if got != want {
		t.Errorf("IntentFrom = %+v, expected %+v", got, want)
	}
}

func TestWakeStrengthFollowsScale(t *testing.T) {
	p := newTestPlayer()
	p.Grow(20)
	for range 300 {
		p.Update(Intent{}, 1.0/60, 0, nil)
	}

	wake := &recordingPulser{}
	scale := p.Scale
	p.Update(Intent{Accelerate: true}, 1.0/60, 0, wake)
	if len(wake.pulses) != 1 {
		t.Fatalf("pulses = %d, expected 1", len(wake.pulses))
	}
	// The pulse is laid before this tick's scale easing
	if want := p.wave.PulseStrength * scale; !near(wake.pulses[0].strength, want) {
		t.Errorf("pulse strength = %v, expected %v", wake.pulses[0].strength, want)
	}
}

func TestLowTickRateScaleNeverOvershoots(t *testing.T) {
	for _, fps := range []int{7, 10, 15, 30} {
		p := newTestPlayer()
		p.Grow(10)
		target := p.ScaleTarget()
		dt := 1 / float64(fps)

		prev := p.Scale
		for i := range 40 {
			p.Update(Intent{}, dt, float64(i)*dt, nil)
			if p.Scale <= 0 || p.Scale > target || p.Scale < prev {
				t.Fatalf("%d fps tick %d: scale %v (prev %v, target %v)", fps, i, p.Scale, prev, target)
			}
			prev = p.Scale
		}
		if !near(p.Scale, target) {
			t.Errorf("%d fps: scale = %v after 40 ticks, expected %v", fps, p.Scale, target)
		}
	}
}
