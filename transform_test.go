package trellis

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = (%v, %v), want (%v, %v)", name, got.X, got.Y, want.X, want.Y)
	}
}

func assertMatrix(t *testing.T, name string, got, want Matrix) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- composeLocal ---

func TestComposeLocalIdentity(t *testing.T) {
	got := composeLocal(Vec2{}, Vec2{}, Vec2{1, 1}, 0, Vec2{})
	assertMatrix(t, "identity", got, IdentityMatrix)
}

func TestComposeLocalTranslation(t *testing.T) {
	got := composeLocal(Vec2{10, 20}, Vec2{}, Vec2{1, 1}, 0, Vec2{})
	assertMatrix(t, "translation", got, Matrix{1, 0, 0, 1, 10, 20})
}

func TestComposeLocalScale(t *testing.T) {
	got := composeLocal(Vec2{}, Vec2{}, Vec2{2, 3}, 0, Vec2{})
	assertMatrix(t, "scale", got, Matrix{2, 0, 0, 3, 0, 0})
}

func TestComposeLocalRotation90(t *testing.T) {
	got := composeLocal(Vec2{}, Vec2{}, Vec2{1, 1}, 90, Vec2{})
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", got, Matrix{0, 1, -1, 0, 0, 0})
}

func TestComposeLocalOrigin(t *testing.T) {
	got := composeLocal(Vec2{100, 200}, Vec2{16, 16}, Vec2{1, 1}, 0, Vec2{})
	// T(100,200) * T(-16,-16) = [1,0,0,1, 84, 184]
	assertMatrix(t, "origin", got, Matrix{1, 0, 0, 1, 84, 184})
}

func TestComposeLocalShear(t *testing.T) {
	got := composeLocal(Vec2{}, Vec2{}, Vec2{1, 1}, 0, Vec2{1, 0})
	assertMatrix(t, "shear", got, Matrix{1, 0, 1, 1, 0, 0})
}

func TestComposeLocalOriginIsFixedPoint(t *testing.T) {
	// Whatever the transform, the origin lands on the offset.
	origin := Vec2{12, 7}
	offset := Vec2{50, -30}
	m := composeLocal(offset, origin, Vec2{2, 0.5}, 33, Vec2{0.3, -0.2})
	assertVec(t, "origin", m.Apply(origin), offset)
}

// --- Matrix ---

func TestMatrixInvert(t *testing.T) {
	m := composeLocal(Vec2{5, 9}, Vec2{3, 4}, Vec2{2, 3}, 30, Vec2{0.2, 0.1})
	assertMatrix(t, "m*inv", m.Multiply(m.Invert()), IdentityMatrix)
	assertMatrix(t, "inv*m", m.Invert().Multiply(m), IdentityMatrix)
}

func TestMatrixInvertSingular(t *testing.T) {
	m := Matrix{0, 0, 0, 0, 5, 5}
	if !m.Singular() {
		t.Fatal("zero matrix should be singular")
	}
	assertMatrix(t, "inv", m.Invert(), IdentityMatrix)
}

func TestMatrixMultiplyOrder(t *testing.T) {
	translate := Matrix{1, 0, 0, 1, 10, 0}
	scale := Matrix{2, 0, 0, 2, 0, 0}
	// Scale first, then translate.
	assertVec(t, "T*S", translate.Multiply(scale).Apply(Vec2{1, 1}), Vec2{12, 2})
	// Translate first, then scale.
	assertVec(t, "S*T", scale.Multiply(translate).Apply(Vec2{1, 1}), Vec2{22, 2})
}

func TestMatrixApplyRect(t *testing.T) {
	m := composeLocal(Vec2{}, Vec2{}, Vec2{1, 1}, 90, Vec2{})
	q := m.ApplyRect(Rect{Width: 10, Height: 4})
	assertVec(t, "TopLeft", q.TopLeft, Vec2{0, 0})
	assertVec(t, "TopRight", q.TopRight, Vec2{0, 10})
	assertVec(t, "BottomRight", q.BottomRight, Vec2{-4, 10})
	assertVec(t, "BottomLeft", q.BottomLeft, Vec2{-4, 0})
}

func TestMatrixGeoM(t *testing.T) {
	m := Matrix{1, 2, 3, 4, 5, 6}
	g := m.GeoM()
	x, y := g.Apply(1, 1)
	want := m.Apply(Vec2{1, 1})
	assertNear(t, "x", x, want.X)
	assertNear(t, "y", y, want.Y)
}

// --- Space conversion ---

func TestToScreenAndLocalSpace(t *testing.T) {
	root := NewBox("root", 200, 200)
	parent := NewBox("parent", 100, 100)
	parent.SetPosition(Vec2{20, 30})
	parent.SetScale(Vec2{2, 2})
	root.AddChild(parent)
	child := NewBox("child", 10, 10)
	child.SetPosition(Vec2{5, 5})
	child.SetRotation(45)
	parent.AddChild(child)

	p := Vec2{3, 4}
	screen := child.ToScreenSpace(p)
	assertVec(t, "roundtrip", child.ToLocalSpace(screen), p)
	// Child's top-left: parent (20,30) + 2 * (5,5).
	assertVec(t, "child origin", child.ToScreenSpace(Vec2{}), Vec2{30, 40})
}
