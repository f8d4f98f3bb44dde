package core

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); got != V3(5, 7, 9) {
		t.Errorf("Add = %+v", got)
	}
	if got := b.Sub(a); got != V3(3, 3, 3) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %f, expected 32", got)
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); got != V3(0, 0, 1) {
		t.Errorf("x cross y = %+v, expected z", got)
	}
	if got := V3(3, 0, 4).Len(); got != 5 {
		t.Errorf("Len = %f, expected 5", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize(0) = %+v, expected zero", got)
	}
}

func TestMat4Identity(t *testing.T) {
	p := V3(1, -2, 3)
	if got := Identity().TransformPoint(p); got != p {
		t.Errorf("Identity moved point to %+v", got)
	}
	m := Identity().Translate(V3(1, 2, 3))
	if got := m.Mul(Identity()); got != m {
		t.Error("m * I should equal m")
	}
}

func TestMat4ModelChain(t *testing.T) {
	// Translate, yaw by 90 degrees, scale by 2: local +Z ends up at +X*2 + offset.
	m := Identity().
		Translate(V3(10, 0, -5)).
		RotateY(math.Pi / 2).
		Scale(V3(2, 2, 2))

	got := m.TransformPoint(V3(0, 0, 1))
	want := V3(12, 0, -5)
	if !vecNear(got, want) {
		t.Errorf("TransformPoint = %+v, expected %+v", got, want)
	}
}

func TestMat4Rotations(t *testing.T) {
	if got := Identity().RotateX(math.Pi / 2).TransformPoint(V3(0, 1, 0)); !vecNear(got, V3(0, 0, 1)) {
		t.Errorf("RotateX(90) * Y = %+v, expected +Z", got)
	}
	if got := Identity().RotateZ(math.Pi / 2).TransformPoint(V3(1, 0, 0)); !vecNear(got, V3(0, 1, 0)) {
		t.Errorf("RotateZ(90) * X = %+v, expected +Y", got)
	}
}

func TestLookAt(t *testing.T) {
	eye := V3(0, 5, 10)
	view := LookAt(eye, V3(0, 0, 0), V3(0, 1, 0))

	// The eye maps to the origin of view space.
	if got := view.TransformPoint(eye); !vecNear(got, Vec3{}) {
		t.Errorf("eye in view space = %+v, expected origin", got)
	}
	// The target lies straight ahead, down -Z.
	got := view.TransformPoint(V3(0, 0, 0))
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y) > 1e-9 || got.Z >= 0 {
		t.Errorf("target in view space = %+v, expected on -Z axis", got)
	}
}

func TestPerspectiveDepth(t *testing.T) {
	p := Perspective(Deg2Rad(90), 1, 1, 100)

	near := p.TransformPoint(V3(0, 0, -1))
	far := p.TransformPoint(V3(0, 0, -100))
	if math.Abs(near.Z+1) > 1e-9 {
		t.Errorf("near plane depth = %f, expected -1", near.Z)
	}
	if math.Abs(far.Z-1) > 1e-9 {
		t.Errorf("far plane depth = %f, expected 1", far.Z)
	}
}
