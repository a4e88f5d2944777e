package trellis

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func assertApprox(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 0.01 {
		t.Errorf("%s = %f, want ~%f", name, got, want)
	}
}

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewBox("pos", 10, 10)
	node.SetPosition(Vec2{10, 20})

	g := TweenPosition(node, Vec2{100, 200}, 1.0, ease.Linear)
	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	assertApprox(t, "X", node.X(), 100)
	assertApprox(t, "Y", node.Y(), 200)
}

func TestTweenSizeInterpolates(t *testing.T) {
	node := NewBox("size", 0, 10)
	g := TweenSize(node, Vec2{100, 10}, 1.0, ease.Linear)

	g.Update(0.5)
	if g.Done {
		t.Error("should not be done halfway")
	}
	assertApprox(t, "width", node.DrawWidth(), 50)
}

func TestTweenSizeDrivesAutoSizedParent(t *testing.T) {
	p := NewContainer("p")
	p.SetAutoSizeAxes(AxesBoth)
	c := NewBox("c", 10, 10)
	p.AddChild(c)
	UpdateLayout(p)

	g := TweenSize(c, Vec2{30, 50}, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)
	assertApprox(t, "parent width", p.DrawWidth(), 30)
	assertApprox(t, "parent height", p.DrawHeight(), 50)
}

func TestTweenScaleAndRotation(t *testing.T) {
	node := NewBox("n", 10, 10)
	s := TweenScale(node, Vec2{2, 3}, 0.5, ease.Linear)
	r := TweenRotation(node, 90, 0.5, ease.Linear)
	for i := 0; i < 2; i++ {
		s.Update(0.25)
		r.Update(0.25)
	}
	if !s.Done || !r.Done {
		t.Fatal("expected both tweens done")
	}
	assertApprox(t, "scale x", node.Scale().X, 2)
	assertApprox(t, "scale y", node.Scale().Y, 3)
	assertApprox(t, "rotation", node.Rotation(), 90)
}

func TestTweenAlphaInterpolates(t *testing.T) {
	node := NewContainer("alpha")
	g := TweenAlpha(node, 0, 1.0, ease.Linear)

	g.Update(0.5)
	assertApprox(t, "alpha", node.Alpha(), 0.5)
	assertApprox(t, "draw alpha", node.DrawAlpha(), 0.5)
}

func TestTweenPadding(t *testing.T) {
	node := NewContainer("pad")
	node.SetAutoSizeAxes(AxesBoth)
	g := TweenPadding(node, Uniform(10), 1.0, ease.Linear)

	g.Update(0.5)
	g.Update(0.5)
	assertApprox(t, "size", node.DrawWidth(), 20)
}

func TestTweenStartsFromValueAtFirstUpdate(t *testing.T) {
	node := NewBox("n", 10, 10)
	g := TweenRotation(node, 100, 1.0, ease.Linear)
	node.SetRotation(50)

	g.Update(0.5)
	assertApprox(t, "rotation", node.Rotation(), 75)
}

func TestTweenStopsOnDisposedNode(t *testing.T) {
	node := NewBox("n", 10, 10)
	g := TweenPosition(node, Vec2{100, 100}, 1.0, ease.Linear)
	node.Dispose()

	g.Update(0.5)
	if !g.Done {
		t.Error("expected Done for disposed target")
	}
	if node.Position() != (Vec2{}) {
		t.Error("disposed node was written")
	}
}

func TestTweenReset(t *testing.T) {
	node := NewBox("n", 10, 10)
	g := TweenRotation(node, 90, 0.5, ease.Linear)
	g.Update(0.5)
	if !g.Done {
		t.Fatal("expected Done")
	}

	g.Reset()
	if g.Done {
		t.Error("Reset should clear Done")
	}
	g.Update(0.25)
	assertApprox(t, "rewound", node.Rotation(), 45)
}

func TestTweenSequence(t *testing.T) {
	node := NewContainer("pad")
	seq := TweenPadding(node, Uniform(12), 0.5, ease.Linear).
		Then(TweenPadding(node, Uniform(4), 0.5, ease.Linear))

	seq.Update(0.25)
	seq.Update(0.25)
	assertApprox(t, "first leg", node.Padding().Top, 12)
	if seq.Done {
		t.Fatal("sequence ended after first leg")
	}

	seq.Update(0.25)
	assertApprox(t, "second leg midway", node.Padding().Top, 8)
	seq.Update(0.25)
	if !seq.Done {
		t.Error("expected sequence Done")
	}
	assertApprox(t, "second leg", node.Padding().Top, 4)
}
