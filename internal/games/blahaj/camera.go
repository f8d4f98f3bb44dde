package blahaj

import (
	"github.com/vovakirdan/blahaj-tide/internal/core"
)

// Camera is a perspective chase camera.
type Camera struct {
	Position core.Vec3
	Target   core.Vec3
	Fovy     float64 // Vertical field of view in radians
	Near     float64
	Far      float64
}

// NewCamera returns a camera with the default lens.
func NewCamera() Camera {
	return Camera{
		Fovy: core.Deg2Rad(60),
		Near: 0.1,
		Far:  500,
	}
}

// View returns the world-to-camera matrix.
func (c Camera) View() core.Mat4 {
	return core.LookAt(c.Position, c.Target, core.V3(0, 1, 0))
}

// Projection returns the camera-to-clip matrix for the given aspect ratio.
func (c Camera) Projection(aspect float64) core.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return core.Perspective(c.Fovy, aspect, c.Near, c.Far)
}
