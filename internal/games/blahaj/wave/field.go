// Package wave simulates the pond surface as a linear 2D wave equation on a
// square height grid.
//
// The integrator is explicit: velocities are updated from the discrete
// Laplacian, then heights from the new velocities. It is only stable while
// the Courant number c*dt/dx stays below 1/sqrt(2); Courant and StableDt
// report the margin but nothing clamps it.
package wave

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned by New for grids that cannot be simulated.
var ErrInvalidParams = errors.New("wave: invalid field parameters")

// Params describes a field.
type Params struct {
	N       int     // Cells per side, including the fixed boundary ring
	Extent  float64 // Side length of the pond in world units
	Speed   float64 // Wave propagation speed in world units per second
	Damping float64 // Fraction of velocity removed per second (0 = none)
}

// Field is an N*N height field with a per-cell rate of change and surface
// normal. Boundary cells (row/col 0 and N-1) are never written by Step.
type Field struct {
	n       int
	extent  float64
	dx      float64
	speed   float64
	damping float64

	u       []float32 // heights, row-major, row = z, col = x
	v       []float32 // du/dt
	normals []float32 // 3 floats per cell
}

// New allocates a field. Heights, velocities and normals start at zero.
func New(p Params) (*Field, error) {
	if p.N < 3 {
		return nil, fmt.Errorf("%w: grid size %d (need at least 3)", ErrInvalidParams, p.N)
	}
	if p.Extent <= 0 || math.IsNaN(p.Extent) || math.IsInf(p.Extent, 0) {
		return nil, fmt.Errorf("%w: extent %v", ErrInvalidParams, p.Extent)
	}
	if p.Speed < 0 || math.IsNaN(p.Speed) {
		return nil, fmt.Errorf("%w: speed %v", ErrInvalidParams, p.Speed)
	}
	if p.Damping < 0 {
		return nil, fmt.Errorf("%w: damping %v", ErrInvalidParams, p.Damping)
	}

	cells := p.N * p.N
	return &Field{
		n:       p.N,
		extent:  p.Extent,
		dx:      p.Extent / float64(p.N-1),
		speed:   p.Speed,
		damping: p.Damping,
		u:       make([]float32, cells),
		v:       make([]float32, cells),
		normals: make([]float32, 3*cells),
	}, nil
}

// Size returns the number of cells per side.
func (f *Field) Size() int { return f.n }

// Extent returns the side length of the pond in world units.
func (f *Field) Extent() float64 { return f.extent }

// Spacing returns the distance between neighbouring cells.
func (f *Field) Spacing() float64 { return f.dx }

// Courant returns c*dt/dx for the given timestep.
func (f *Field) Courant(dt float64) float64 {
	return f.speed * dt / f.dx
}

// StableDt returns the largest timestep the 2D explicit scheme tolerates.
func (f *Field) StableDt() float64 {
	if f.speed == 0 {
		return math.Inf(1)
	}
	return f.dx / (f.speed * math.Sqrt2)
}

// Reset flattens the surface and stops all motion.
func (f *Field) Reset() {
	clear(f.u)
	clear(f.v)
	clear(f.normals)
}

// cellCoord maps a grid index to its world coordinate.
func (f *Field) cellCoord(i int) float64 {
	return -f.extent/2 + float64(i)*f.dx
}

// AddPulse raises every cell by strength*exp(-d^2/radius), where d is the
// world-space distance from the cell to (cx, cz).
func (f *Field) AddPulse(strength, radius, cx, cz float64) {
	if radius <= 0 {
		return
	}
	inv := 1 / radius
	for i := 0; i < f.n; i++ {
		dz := f.cellCoord(i) - cz
		row := f.u[i*f.n : (i+1)*f.n]
		for j := range row {
			dx := f.cellCoord(j) - cx
			row[j] += float32(strength * math.Exp(-(dx*dx+dz*dz)*inv))
		}
	}
}

// Step advances the field by dt.
func (f *Field) Step(dt float64) {
	n := f.n
	k := float32(f.speed * f.speed * dt / (f.dx * f.dx))
	keep := float32(1)
	if f.damping > 0 {
		keep = float32(math.Max(0, 1-f.damping*dt))
	}

	for i := 1; i < n-1; i++ {
		for j := 1; j < n-1; j++ {
			c := i*n + j
			lap := f.u[c-n] + f.u[c+n] + f.u[c-1] + f.u[c+1] - 4*f.u[c]
			f.v[c] = (f.v[c] + k*lap) * keep
		}
	}

	fdt := float32(dt)
	for i := 1; i < n-1; i++ {
		for j := 1; j < n-1; j++ {
			c := i*n + j
			f.u[c] += f.v[c] * fdt
		}
	}

	f.updateNormals()
}

// updateNormals recomputes interior normals from forward differences. The
// tangents along x and z are (dx, du_x, 0) and (0, du_z, dx); their cross
// product points up out of the surface.
func (f *Field) updateNormals() {
	n := f.n
	h := float32(f.dx)
	for i := 1; i < n-1; i++ {
		for j := 1; j < n-1; j++ {
			c := i*n + j
			dux := f.u[c+1] - f.u[c]
			duz := f.u[c+n] - f.u[c]

			nx := -h * dux
			ny := h * h
			nz := -h * duz
			inv := float32(1 / math.Sqrt(float64(nx*nx+ny*ny+nz*nz)))

			f.normals[3*c] = nx * inv
			f.normals[3*c+1] = ny * inv
			f.normals[3*c+2] = nz * inv
		}
	}
}

// Height returns the height of cell (i, j). Out-of-range indices read 0.
func (f *Field) Height(i, j int) float32 {
	if i < 0 || i >= f.n || j < 0 || j >= f.n {
		return 0
	}
	return f.u[i*f.n+j]
}

// SetHeight overwrites the height of cell (i, j). This is the only way to
// move a boundary cell.
func (f *Field) SetHeight(i, j int, h float32) {
	if i < 0 || i >= f.n || j < 0 || j >= f.n {
		return
	}
	f.u[i*f.n+j] = h
}

// Normal returns the surface normal at cell (i, j). Boundary cells report
// the zero vector.
func (f *Field) Normal(i, j int) (x, y, z float32) {
	if i < 0 || i >= f.n || j < 0 || j >= f.n {
		return 0, 0, 0
	}
	c := 3 * (i*f.n + j)
	return f.normals[c], f.normals[c+1], f.normals[c+2]
}

// Heights exposes the height buffer (row-major, N*N). Callers must not
// modify it.
func (f *Field) Heights() []float32 { return f.u }

// Normals exposes the normal buffer (row-major, 3*N*N). Callers must not
// modify it.
func (f *Field) Normals() []float32 { return f.normals }

// SnapshotHeights copies the heights into dst, growing it if needed.
func (f *Field) SnapshotHeights(dst []float32) []float32 {
	dst = grow(dst, len(f.u))
	copy(dst, f.u)
	return dst
}

// SnapshotNormals copies the normals into dst, growing it if needed.
func (f *Field) SnapshotNormals(dst []float32) []float32 {
	dst = grow(dst, len(f.normals))
	copy(dst, f.normals)
	return dst
}

func grow(dst []float32, n int) []float32 {
	if cap(dst) < n {
		return make([]float32, n)
	}
	return dst[:n]
}

// gridPos maps a world coordinate to a fractional grid index, clamped to
// the grid. NaN maps to the pond centre.
func (f *Field) gridPos(w float64) float64 {
	if math.IsNaN(w) {
		w = 0
	}
	g := (w + f.extent/2) / f.dx
	return math.Max(0, math.Min(float64(f.n-1), g))
}

// HeightAt samples the surface at world (x, z) with bilinear interpolation.
func (f *Field) HeightAt(x, z float64) float64 {
	gx, gz := f.gridPos(x), f.gridPos(z)
	j0, i0 := int(gx), int(gz)
	j1, i1 := min(j0+1, f.n-1), min(i0+1, f.n-1)
	tx, tz := gx-float64(j0), gz-float64(i0)

	h00 := float64(f.u[i0*f.n+j0])
	h01 := float64(f.u[i0*f.n+j1])
	h10 := float64(f.u[i1*f.n+j0])
	h11 := float64(f.u[i1*f.n+j1])

	top := h00 + (h01-h00)*tx
	bottom := h10 + (h11-h10)*tx
	return top + (bottom-top)*tz
}

// NormalAt returns the normal of the cell nearest to world (x, z).
func (f *Field) NormalAt(x, z float64) (nx, ny, nz float32) {
	j := int(math.Round(f.gridPos(x)))
	i := int(math.Round(f.gridPos(z)))
	return f.Normal(i, j)
}

// Energy returns the sum of squared heights over the whole grid.
func (f *Field) Energy() float64 {
	var e float64
	for _, h := range f.u {
		e += float64(h) * float64(h)
	}
	return e
}

// Finite reports whether every height is a finite number.
func (f *Field) Finite() bool {
	for _, h := range f.u {
		if math.IsNaN(float64(h)) || math.IsInf(float64(h), 0) {
			return false
		}
	}
	return true
}
