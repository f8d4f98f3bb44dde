package blahaj

import (
	"math"

	"github.com/vovakirdan/blahaj-tide/internal/assets"
	"github.com/vovakirdan/blahaj-tide/internal/core"
)

// Actor is anything drawn on the pond: the shark, a prey fish, the sky.
// Position.Y stays 0 for swimmers.
type Actor struct {
	Position core.Vec3
	Heading  float64 // Yaw in radians, 0 = +Z
	Pitch    float64
	Roll     float64
	Scale    float64
	Speed    float64
	Alive    bool
	Mesh     assets.Handle
}

// Forward returns the unit vector the actor faces in the XZ plane.
func (a *Actor) Forward() core.Vec3 {
	return forward(a.Heading)
}

func forward(heading float64) core.Vec3 {
	return core.V3(math.Sin(heading), 0, math.Cos(heading))
}

// Model returns T * Ry(heading) * Rx(pitch) * Rz(roll) * S(scale).
func (a *Actor) Model() core.Mat4 {
	return core.Identity().
		Translate(a.Position).
		RotateY(a.Heading).
		RotateX(a.Pitch).
		RotateZ(a.Roll).
		Scale(core.V3(a.Scale, a.Scale, a.Scale))
}

// Smooth moves v towards target by k*dt of the remaining gap. It approaches
// the target monotonically and never overshoots; once k*dt reaches 1 it
// lands on the target in one call.
func Smooth(v, target, k, dt float64) float64 {
	a := k * dt
	if a >= 1 {
		return target
	}
	return v + (target-v)*a
}

// SmoothVec is Smooth applied per component.
func SmoothVec(v, target core.Vec3, k, dt float64) core.Vec3 {
	return core.V3(
		Smooth(v.X, target.X, k, dt),
		Smooth(v.Y, target.Y, k, dt),
		Smooth(v.Z, target.Z, k, dt),
	)
}

// wrapXZ folds p back into [-half, half] on X and Z and returns the shift
// that was applied.
func wrapXZ(p *core.Vec3, half float64) core.Vec3 {
	x := core.WrapF(p.X, half)
	z := core.WrapF(p.Z, half)
	shift := core.V3(x-p.X, 0, z-p.Z)
	p.X, p.Z = x, z
	return shift
}

// toroidalDelta returns the shortest XZ offset from a to b on a pond that
// wraps at +-half.
func toroidalDelta(a, b core.Vec3, half float64) (dx, dz float64) {
	return core.WrapF(b.X-a.X, half), core.WrapF(b.Z-a.Z, half)
}
