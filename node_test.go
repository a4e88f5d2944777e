package trellis

import "testing"

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != "test" || n.Mode() != LayoutPlain {
		t.Errorf("Name/Mode = %q/%d", n.Name, n.Mode())
	}
	if n.Scale() != (Vec2{1, 1}) {
		t.Errorf("Scale = %v, want (1, 1)", n.Scale())
	}
	if n.Alpha() != 1 || !n.Visible() || n.Color != ColorWhite {
		t.Error("presentation defaults wrong")
	}
	if n.Parent() != nil || n.NumChildren() != 0 {
		t.Error("new node should be detached and empty")
	}
}

func TestNewBoxSize(t *testing.T) {
	n := NewBox("box", 30, 40)
	if n.Size() != (Vec2{30, 40}) || n.DrawSize() != (Vec2{30, 40}) {
		t.Errorf("Size = %v, DrawSize = %v", n.Size(), n.DrawSize())
	}
}

func TestNewGridPanicsOnZeroCells(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewGrid("g", 0, 1)
}

func TestUniqueIDs(t *testing.T) {
	a, b := NewContainer("a"), NewContainer("b")
	if a.ID == b.ID {
		t.Error("IDs should be unique")
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	p := NewContainer("p")
	a, b := NewContainer("a"), NewContainer("b")
	p.AddChild(a)
	p.AddChild(b)
	if p.NumChildren() != 2 || p.ChildAt(0) != a || p.ChildAt(1) != b {
		t.Fatal("children out of order")
	}
	if a.Parent() != p {
		t.Error("parent not set")
	}
}

func TestAddChildAt(t *testing.T) {
	p := NewContainer("p")
	a, b, c := NewContainer("a"), NewContainer("b"), NewContainer("c")
	p.AddChild(a)
	p.AddChild(c)
	p.AddChildAt(b, 1)
	for i, want := range []*Node{a, b, c} {
		if p.ChildAt(i) != want {
			t.Errorf("child %d = %q, want %q", i, p.ChildAt(i).Name, want.Name)
		}
		if want.index != i {
			t.Errorf("%q index = %d, want %d", want.Name, want.index, i)
		}
	}
}

func TestAddChildReparents(t *testing.T) {
	p1, p2 := NewContainer("p1"), NewContainer("p2")
	c := NewContainer("c")
	p1.AddChild(c)
	p2.AddChild(c)
	if p1.NumChildren() != 0 || c.Parent() != p2 {
		t.Error("child should move to the new parent")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil", func() { NewContainer("p").AddChild(nil) }},
		{"self", func() {
			n := NewContainer("n")
			n.AddChild(n)
		}},
		{"cycle", func() {
			a, b := NewContainer("a"), NewContainer("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
		{"index", func() { NewContainer("p").AddChildAt(NewContainer("c"), 3) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveChild(t *testing.T) {
	p := NewContainer("p")
	a, b, c := NewContainer("a"), NewContainer("b"), NewContainer("c")
	p.AddChild(a)
	p.AddChild(b)
	p.AddChild(c)
	p.RemoveChild(b)
	if p.NumChildren() != 2 || p.ChildAt(1) != c || c.index != 1 {
		t.Error("sibling indices not updated")
	}
	if b.Parent() != nil {
		t.Error("removed child still has a parent")
	}
}

func TestRemoveChildAtAndChildren(t *testing.T) {
	p := NewContainer("p")
	a, b := NewContainer("a"), NewContainer("b")
	p.AddChild(a)
	p.AddChild(b)
	if got := p.RemoveChildAt(0); got != a {
		t.Errorf("RemoveChildAt returned %q", got.Name)
	}
	p.RemoveChildren()
	if p.NumChildren() != 0 || b.Parent() != nil {
		t.Error("RemoveChildren left children attached")
	}
}

func TestRemoveFromParentNoParent(t *testing.T) {
	n := NewContainer("n")
	n.RemoveFromParent() // no-op
}

func TestSetChildIndex(t *testing.T) {
	p := NewContainer("p")
	a, b, c := NewContainer("a"), NewContainer("b"), NewContainer("c")
	p.AddChild(a)
	p.AddChild(b)
	p.AddChild(c)

	p.SetChildIndex(a, 2)
	for i, want := range []*Node{b, c, a} {
		if p.ChildAt(i) != want || want.index != i {
			t.Fatalf("after move to end: child %d = %q", i, p.ChildAt(i).Name)
		}
	}
	p.SetChildIndex(a, 0)
	for i, want := range []*Node{a, b, c} {
		if p.ChildAt(i) != want || want.index != i {
			t.Fatalf("after move to front: child %d = %q", i, p.ChildAt(i).Name)
		}
	}
}

func TestFindChild(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	leaf := NewContainer("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)
	if root.FindChild("leaf") != leaf || root.FindChild("root") != root {
		t.Error("FindChild failed")
	}
	if root.FindChild("missing") != nil {
		t.Error("FindChild should return nil")
	}
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	gc := NewContainer("gc")
	p.AddChild(c)
	c.AddChild(gc)
	c.Dispose()
	if !c.IsDisposed() || !gc.IsDisposed() {
		t.Error("subtree should be disposed")
	}
	if p.NumChildren() != 0 {
		t.Error("disposed node should leave its parent")
	}
	c.Dispose() // idempotent
}

func TestDebugDisposedPanics(t *testing.T) {
	globalDebug = true
	defer func() { globalDebug = false }()

	c := NewContainer("c")
	c.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic adding a disposed node in debug mode")
		}
	}()
	NewContainer("p").AddChild(c)
}

// --- Structural invalidation ---

func TestAddChildInvalidatesAutoSizedParent(t *testing.T) {
	p := NewContainer("p")
	p.SetAutoSizeAxes(AxesBoth)
	p.AddChild(NewBox("a", 10, 10))
	assertVec(t, "one child", p.DrawSize(), Vec2{10, 10})

	p.AddChild(NewBox("b", 30, 5))
	assertVec(t, "two children", p.DrawSize(), Vec2{30, 10})

	p.RemoveChildAt(1)
	assertVec(t, "removed", p.DrawSize(), Vec2{10, 10})
}

func TestReparentedChildRecomputesAgainstNewParent(t *testing.T) {
	small, big := NewBox("small", 10, 10), NewBox("big", 100, 100)
	c := NewBox("c", 0.5, 0.5)
	c.SetRelativeSizeAxes(AxesBoth)
	small.AddChild(c)
	assertVec(t, "small", c.DrawSize(), Vec2{5, 5})
	big.AddChild(c)
	assertVec(t, "big", c.DrawSize(), Vec2{50, 50})
}
