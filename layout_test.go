package trellis

import "testing"

// --- Relative size and position ---

func TestRelativeSizeUsesContentArea(t *testing.T) {
	p := NewBox("p", 200, 100)
	p.SetPadding(Uniform(10))
	c := NewBox("c", 0.5, 20)
	c.SetRelativeSizeAxes(AxesX)
	p.AddChild(c)
	assertVec(t, "DrawSize", c.DrawSize(), Vec2{90, 20})
	assertVec(t, "ChildSize", p.ChildSize(), Vec2{180, 80})
}

func TestRelativeSizeFollowsParent(t *testing.T) {
	p := NewBox("p", 200, 100)
	c := NewBox("c", 1, 1)
	c.SetRelativeSizeAxes(AxesBoth)
	p.AddChild(c)
	assertVec(t, "before", c.DrawSize(), Vec2{200, 100})
	p.SetWidth(50)
	assertVec(t, "after", c.DrawSize(), Vec2{50, 100})
}

func TestRelativePosition(t *testing.T) {
	p := NewBox("p", 200, 100)
	c := NewBox("c", 10, 10)
	c.SetRelativePositionAxes(AxesX)
	c.SetPosition(Vec2{0.25, 10})
	p.AddChild(c)
	assertVec(t, "DrawPosition", c.DrawPosition(), Vec2{50, 10})
	p.SetWidth(400)
	assertVec(t, "after resize", c.DrawPosition(), Vec2{100, 10})
}

func TestRootRelativeAxesDegenerateToZero(t *testing.T) {
	root := NewBox("root", 0.5, 40)
	root.SetRelativeSizeAxes(AxesX)
	root.SetRelativePositionAxes(AxesBoth)
	root.SetPosition(Vec2{0.5, 0.5})
	assertVec(t, "DrawSize", root.DrawSize(), Vec2{0, 40})
	assertVec(t, "DrawPosition", root.DrawPosition(), Vec2{})
}

// --- Anchor, origin, padding, margin ---

func TestAnchorAndOriginCentre(t *testing.T) {
	p := NewBox("p", 200, 100)
	c := NewBox("c", 20, 10)
	c.SetAnchor(AnchorCentre)
	c.SetOrigin(AnchorCentre)
	p.AddChild(c)
	assertVec(t, "AnchorPosition", c.AnchorPosition(), Vec2{100, 50})
	assertVec(t, "OriginPosition", c.OriginPosition(), Vec2{10, 5})
	assertVec(t, "TopLeft", c.ScreenSpaceQuad().TopLeft, Vec2{90, 45})
}

func TestAnchorBottomRightWithPadding(t *testing.T) {
	p := NewBox("p", 200, 100)
	p.SetPadding(MarginPadding{Top: 5, Left: 10, Bottom: 15, Right: 20})
	c := NewBox("c", 20, 10)
	c.SetAnchor(AnchorBottomRight)
	c.SetOrigin(AnchorBottomRight)
	p.AddChild(c)
	// Content spans x 10..180, y 5..85.
	assertVec(t, "BottomRight", c.ScreenSpaceQuad().BottomRight, Vec2{180, 85})
}

func TestPaddingOffsetsChildren(t *testing.T) {
	p := NewBox("p", 100, 100)
	p.SetPadding(MarginPadding{Top: 5, Left: 10})
	c := NewBox("c", 10, 10)
	p.AddChild(c)
	assertVec(t, "TopLeft", c.ScreenSpaceQuad().TopLeft, Vec2{10, 5})

	p.SetPadding(MarginPadding{Top: 7, Left: 3})
	assertVec(t, "after change", c.ScreenSpaceQuad().TopLeft, Vec2{3, 7})
}

func TestMarginPushesDrawRectangle(t *testing.T) {
	p := NewBox("p", 100, 100)
	c := NewBox("c", 20, 10)
	c.SetMargin(MarginPadding{Top: 3, Left: 4, Bottom: 1, Right: 2})
	p.AddChild(c)
	assertVec(t, "LayoutSize", c.LayoutSize(), Vec2{26, 14})
	assertVec(t, "OriginPosition", c.OriginPosition(), Vec2{-4, -3})
	assertVec(t, "TopLeft", c.ScreenSpaceQuad().TopLeft, Vec2{4, 3})
	if got := c.LayoutBounds(); got != (Rect{0, 0, 26, 14}) {
		t.Errorf("LayoutBounds = %+v", got)
	}
}

func TestSymmetricMarginCentreOrigin(t *testing.T) {
	c := NewBox("c", 20, 10)
	c.SetMargin(Uniform(5))
	c.SetOrigin(AnchorCentre)
	// The layout rectangle's centre is the draw rectangle's centre.
	assertVec(t, "OriginPosition", c.OriginPosition(), Vec2{10, 5})
}

// --- Transforms and bounds ---

func TestBoundingBoxRotated(t *testing.T) {
	n := NewBox("n", 10, 20)
	n.SetRotation(90)
	bb := n.BoundingBox()
	assertNear(t, "X", bb.X, -20)
	assertNear(t, "Y", bb.Y, 0)
	assertNear(t, "Width", bb.Width, 20)
	assertNear(t, "Height", bb.Height, 10)
}

func TestDrawMatrixFollowsParent(t *testing.T) {
	root := NewBox("root", 300, 300)
	p := NewBox("p", 100, 100)
	root.AddChild(p)
	c := NewBox("c", 10, 10)
	c.SetPosition(Vec2{5, 5})
	p.AddChild(c)
	assertVec(t, "before", c.ScreenSpaceQuad().TopLeft, Vec2{5, 5})

	p.SetPosition(Vec2{100, 50})
	assertVec(t, "after move", c.ScreenSpaceQuad().TopLeft, Vec2{105, 55})

	p.SetScale(Vec2{2, 2})
	assertVec(t, "after scale", c.ScreenSpaceQuad().TopLeft, Vec2{110, 60})
	assertVec(t, "scaled corner", c.ScreenSpaceQuad().BottomRight, Vec2{130, 80})
}

func TestScaleDoesNotChangeDrawSize(t *testing.T) {
	n := NewBox("n", 10, 20)
	n.SetScale(Vec2{3, 3})
	assertVec(t, "DrawSize", n.DrawSize(), Vec2{10, 20})
	bb := n.BoundingBox()
	assertNear(t, "Width", bb.Width, 30)
	assertNear(t, "Height", bb.Height, 60)
}

func TestShearProducesParallelogram(t *testing.T) {
	n := NewBox("n", 10, 10)
	n.SetShear(Vec2{1, 0})
	q := n.ScreenSpaceQuad()
	assertVec(t, "BottomLeft", q.BottomLeft, Vec2{10, 10})
	assertVec(t, "BottomRight", q.BottomRight, Vec2{20, 10})
	assertNear(t, "AABB width", n.BoundingBox().Width, 20)
}

// --- Colour ---

func TestDrawAlphaInherited(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)
	p.SetAlpha(0.5)
	c.SetAlpha(0.5)
	assertNear(t, "DrawAlpha", c.DrawAlpha(), 0.25)
	p.SetAlpha(1)
	assertNear(t, "after parent change", c.DrawAlpha(), 0.5)
}

// --- UpdateLayout ---

func TestUpdateLayoutSettlesEverything(t *testing.T) {
	root := NewBox("root", 100, 100)
	c := NewBox("c", 1, 1)
	c.SetRelativeSizeAxes(AxesBoth)
	root.AddChild(c)
	UpdateLayout(root)
	for _, n := range []*Node{root, c} {
		if !n.IsValid(InvalidateAll) {
			t.Errorf("%s not fully valid: %b", n.Name, n.valid)
		}
	}
}

func TestHiddenNodesStillLayOut(t *testing.T) {
	p := NewContainer("p")
	p.SetAutoSizeAxes(AxesBoth)
	c := NewBox("c", 40, 30)
	c.SetVisible(false)
	p.AddChild(c)
	assertVec(t, "DrawSize", p.DrawSize(), Vec2{40, 30})
}
