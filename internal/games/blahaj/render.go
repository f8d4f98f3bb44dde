package blahaj

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/blahaj-tide/internal/assets"
	"github.com/vovakirdan/blahaj-tide/internal/core"
)

// Screen layout
const (
	hudRow     = 0
	horizonRow = 1
	pondTop    = 2
	minWidth   = 24
	minHeight  = 8
)

// Water shading
const (
	viewSpan   = 40.0 // World units across the screen
	baseShade  = 0.2
	heightGain = 1.5
	slopeGain  = 3.0
	foamShade  = 0.75
)

var lightDir = core.V3(-0.4, 1, 0.3).Normalize()

// SpriteSource resolves handles to terminal sprites.
type SpriteSource interface {
	Sprite(h assets.Handle) (assets.Sprite, bool)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.Frame(&g.frame)
	DrawFrame(dst, &g.frame, g.catalog)
}

// DrawFrame draws a top-down view of f centred on the player. Screen up is
// +Z and screen right is -X, which keeps turns to the left turning left.
func DrawFrame(dst *core.Screen, f *FrameData, sprites SpriteSource) {
	w, h := dst.Width(), dst.Height()
	if w < minWidth || h < minHeight {
		renderTooSmall(dst)
		return
	}

	v := newViewport(f, w, h)
	drawWater(dst, f, v, sprites)
	drawHorizon(dst, f, sprites)
	drawActors(dst, f, v, sprites)
	drawHUD(dst, f)

	switch f.HUD.State {
	case StateMenu:
		renderOverlay(dst, "B L A H A J   T I D E", "Enter: dive in   Q: quit",
			"←/→ steer   ↑ swim   ↓ brake")
	case StateResults:
		renderOverlay(dst, "Time!", fmt.Sprintf("You ate %d fish", f.HUD.Score),
			"Enter: play again   Q: quit")
	}
}

type viewport struct {
	center core.Vec3
	half   float64 // half the pond side
	upc    float64 // world units per column
	w, h   int     // pond area in cells
}

func newViewport(f *FrameData, w, h int) viewport {
	span := math.Min(f.Extent, viewSpan)
	return viewport{
		center: f.Player.Position(),
		half:   f.Extent / 2,
		upc:    span / float64(w),
		w:      w,
		h:      h - pondTop,
	}
}

// toScreen maps a world point to a cell, taking the short way round the
// wrapped pond.
func (v viewport) toScreen(p core.Vec3) (col, row int, ok bool) {
	dx, dz := toroidalDelta(v.center, p, v.half)
	col = v.w/2 - int(math.Round(dx/v.upc))
	row = pondTop + v.h/2 - int(math.Round(dz/(v.upc*cellAspect)))
	ok = col >= 0 && col < v.w && row >= pondTop && row < pondTop+v.h
	return col, row, ok
}

func (v viewport) toWorld(col, row int) (x, z float64) {
	x = v.center.X - float64(col-v.w/2)*v.upc
	z = v.center.Z + float64(pondTop+v.h/2-row)*v.upc*cellAspect
	return core.WrapF(x, v.half), core.WrapF(z, v.half)
}

// cellIndex returns the grid cell nearest to world (x, z).
func (f *FrameData) cellIndex(x, z float64) int {
	dx := f.Extent / float64(f.N-1)
	j := core.Clamp(int(math.Round((x+f.Extent/2)/dx)), 0, f.N-1)
	i := core.Clamp(int(math.Round((z+f.Extent/2)/dx)), 0, f.N-1)
	return i*f.N + j
}

// shade returns the ramp position of the cell nearest to world (x, z).
func (f *FrameData) shade(x, z float64) float64 {
	c := f.cellIndex(x, z)
	n := core.V3(float64(f.Normals[3*c]), float64(f.Normals[3*c+1]), float64(f.Normals[3*c+2]))
	return surfaceShade(Surface{Height: float64(f.Heights[c]), Normal: n})
}

// surfaceShade combines height and lighting into a ramp position. Border
// cells keep a zero normal and shade as flat water.
func surfaceShade(s Surface) float64 {
	light := lightDir.Y
	if s.Normal.Y != 0 {
		light = s.Normal.Dot(lightDir)
	}
	return baseShade + s.Height*heightGain + (light-lightDir.Y)*slopeGain
}

func drawWater(dst *core.Screen, f *FrameData, v viewport, sprites SpriteSource) {
	water, ok := sprites.Sprite(f.Water)
	if !ok || f.N < 2 || len(f.Heights) < f.N*f.N {
		return
	}
	for row := pondTop; row < pondTop+v.h; row++ {
		for col := 0; col < v.w; col++ {
			x, z := v.toWorld(col, row)
			t := f.shade(x, z)
			color := water.Color
			if t >= foamShade {
				color = water.Accent
			}
			dst.SetCell(col, row, water.Shade(t), color)
		}
	}
}

// drawHorizon scrolls the sky strip with the backdrop's rotation.
func drawHorizon(dst *core.Screen, f *FrameData, sprites SpriteSource) {
	sky, ok := sprites.Sprite(f.Backdrop.Mesh)
	if !ok {
		return
	}
	offset := f.Backdrop.Heading * 40
	for col := 0; col < dst.Width(); col++ {
		wave := math.Sin(float64(col)*0.7+offset) * math.Cos(float64(col)*0.23)
		t := core.MapF(wave, -1, 1, 0, 1)
		dst.SetCell(col, horizonRow, sky.Shade(t), sky.Color)
	}
}

func drawActors(dst *core.Screen, f *FrameData, v viewport, sprites SpriteSource) {
	for _, d := range f.Actors {
		sp, ok := sprites.Sprite(d.Mesh)
		if !ok {
			continue
		}
		if col, row, ok := v.toScreen(d.Position()); ok {
			dst.SetCell(col, row, sp.Glyph(-d.Heading), sp.Color)
		}
	}

	shark, ok := sprites.Sprite(f.Player.Mesh)
	if !ok {
		return
	}
	pos := f.Player.Position()

	// Capture ring, once it is wide enough to read
	if f.CaptureRadius/v.upc >= 1.5 {
		for k := 0; k < 32; k++ {
			a := float64(k) * 2 * math.Pi / 32
			p := pos.Add(forward(a).Scale(f.CaptureRadius))
			if col, row, ok := v.toScreen(p); ok {
				dst.SetCell(col, row, '·', shark.Accent)
			}
		}
	}

	if col, row, ok := v.toScreen(pos); ok {
		color := shark.Color
		if surfaceShade(f.Swell) >= foamShade {
			// Riding a crest
			color = shark.Accent
		}
		dst.SetCell(col, row, shark.Glyph(-f.Player.Heading), color)
	}
}

func drawHUD(dst *core.Screen, f *FrameData) {
	for x := 0; x < dst.Width(); x++ {
		dst.Set(x, hudRow, ' ')
	}
	left := fmt.Sprintf(" time %3d", f.HUD.SecondsLeft)
	right := fmt.Sprintf("fish %d  left %d ", f.HUD.Score, f.HUD.PreyLeft)

	timeColor := core.ColorBrightWhite
	if f.HUD.State == StatePlaying && f.HUD.SecondsLeft <= 10 {
		timeColor = core.ColorBrightRed
	}
	dst.DrawTextColor(0, hudRow, left, timeColor)
	dst.DrawTextColor(dst.Width()-utf8.RuneCountInString(right), hudRow, right, core.ColorBrightYellow)
}

// renderOverlay draws a centered message box.
func renderOverlay(dst *core.Screen, title string, lines ...string) {
	boxW := utf8.RuneCountInString(title)
	for _, l := range lines {
		boxW = core.Max(boxW, utf8.RuneCountInString(l))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightCyan)

	dst.DrawTextCentered(boxY+1, title, core.ColorBrightWhite)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+3+i, l, core.ColorDefault)
	}
}

// renderTooSmall shows a "window too small" message.
func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorGray)
}
