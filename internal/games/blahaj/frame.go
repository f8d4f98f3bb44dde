package blahaj

import (
	"github.com/vovakirdan/blahaj-tide/internal/assets"
	"github.com/vovakirdan/blahaj-tide/internal/core"
)

// cellAspect is the height of a terminal cell over its width.
const cellAspect = 2.0

// Drawable is one actor handed to a renderer.
type Drawable struct {
	Mesh    assets.Handle
	Model   core.Mat4
	Heading float64 // Yaw, for renderers that pick sprites by facing
	Scale   float64
}

// HUD carries the overlay values.
type HUD struct {
	SecondsLeft int
	Score       int
	PreyLeft    int
	State       State
}

// Surface is the water under a point of the pond.
type Surface struct {
	Height float64
	Normal core.Vec3
}

// FrameData is everything a renderer needs for one frame. Heights and
// Normals are row-major N*N (and 3*N*N) copies owned by the FrameData, so
// they stay valid while the game keeps stepping.
type FrameData struct {
	Heights []float32
	Normals []float32
	N       int
	Extent  float64
	Water   assets.Handle

	Backdrop Drawable
	Player   Drawable
	Actors   []Drawable // live prey

	Camera     Camera
	View       core.Mat4
	Projection core.Mat4

	CaptureRadius float64 // Around the player, in world units
	Swell         Surface // Water under the player

	HUD HUD
}

// Frame fills dst with the current frame, reusing its buffers.
func (g *Game) Frame(dst *FrameData) {
	dst.Heights = g.field.SnapshotHeights(dst.Heights)
	dst.Normals = g.field.SnapshotNormals(dst.Normals)
	dst.N = g.field.Size()
	dst.Extent = g.field.Extent()
	dst.Water = g.meshes.water

	dst.Backdrop = drawableOf(&g.backdrop)
	dst.Player = drawableOf(&g.player.Actor)
	dst.Actors = dst.Actors[:0]
	g.prey.Each(func(p *Prey) {
		dst.Actors = append(dst.Actors, drawableOf(&p.Actor))
	})

	aspect := 1.0
	if g.runtime.ScreenH > 0 {
		aspect = float64(g.runtime.ScreenW) / (float64(g.runtime.ScreenH) * cellAspect)
	}
	dst.Camera = g.player.Camera
	dst.View = g.player.Camera.View()
	dst.Projection = g.player.Camera.Projection(aspect)
	dst.CaptureRadius = g.cfg.Prey.CaptureFactor * g.player.Scale

	pos := g.player.Position
	nx, ny, nz := g.field.NormalAt(pos.X, pos.Z)
	dst.Swell = Surface{
		Height: g.field.HeightAt(pos.X, pos.Z),
		Normal: core.V3(float64(nx), float64(ny), float64(nz)),
	}

	dst.HUD = HUD{
		SecondsLeft: g.SecondsLeft(),
		Score:       g.Score(),
		PreyLeft:    g.prey.Live(),
		State:       g.state,
	}
}

// Position returns the translation part of the model matrix.
func (d Drawable) Position() core.Vec3 {
	return core.V3(d.Model[3], d.Model[7], d.Model[11])
}

func drawableOf(a *Actor) Drawable {
	return Drawable{
		Mesh:    a.Mesh,
		Model:   a.Model(),
		Heading: a.Heading,
		Scale:   a.Scale,
	}
}
