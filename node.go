package trellis

import "fmt"

// --- Callback contexts ---

// PointerContext carries pointer event data.
type PointerContext struct {
	Node     *Node
	UserData any
	GlobalX  float64
	GlobalY  float64
	LocalX   float64
	LocalY   float64
	Button   MouseButton
}

// ClickContext carries click event data.
type ClickContext struct {
	Node     *Node
	UserData any
	GlobalX  float64
	GlobalY  float64
	LocalX   float64
	LocalY   float64
	Button   MouseButton
}

// DragContext carries drag event data.
type DragContext struct {
	Node     *Node
	UserData any
	GlobalX  float64
	GlobalY  float64
	LocalX   float64
	LocalY   float64
	StartX   float64
	StartY   float64
	DeltaX   float64
	DeltaY   float64
	Button   MouseButton
}

// --- ID counter ---

// nodeIDCounter is a plain counter; trellis is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used
// for plain, flow and grid containers; the layout mode selects how children
// are arranged.
//
// Geometric inputs are private and changed through setters so that every
// write runs invalidation. Computed geometry (DrawSize, DrawPosition,
// DrawMatrix, BoundingBox, ...) is cached and recomputed lazily on read.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	parent   *Node
	children []*Node
	index    int // position in parent.children

	// Arrangement
	mode      LayoutMode
	direction FlowDirection
	spacing   Vec2
	columns   int
	rows      int

	// Geometric inputs
	position             Vec2
	size                 Vec2
	scale                Vec2
	shear                Vec2
	rotation             float64
	anchor               Vec2
	origin               Vec2
	margin               MarginPadding
	padding              MarginPadding
	relativeSizeAxes     Axes
	relativePositionAxes Axes
	autoSizeAxes         Axes
	bypassAutoSizeAxes   Axes
	alpha                float64
	visible              bool
	masking              bool

	// Computed (guarded by valid)
	valid         Invalidation
	sizing        bool // auto-size in progress; drawSize holds only non-auto axes
	drawSize      Vec2
	drawPosition  Vec2
	localMatrix   Matrix
	drawMatrix    Matrix
	quad          Quad
	boundingBox   Rect
	drawAlpha     float64
	flowPositions []Vec2
	flowExtent    Vec2
	stats         LayoutStats

	// Presentation & interaction
	Color        Color
	Interactable bool
	UserData     any

	// Per-node callbacks (nil by default; zero cost when unused)
	OnPointerDown func(PointerContext)
	OnPointerUp   func(PointerContext)
	OnClick       func(ClickContext)
	OnDragStart   func(DragContext)
	OnDrag        func(DragContext)
	OnDragEnd     func(DragContext)
	OnHover       func(PointerContext)
	OnHoverLost   func(PointerContext)

	// Internal
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.scale = Vec2{1, 1}
	n.alpha = 1
	n.visible = true
	n.Color = ColorWhite
	n.columns = 1
	n.rows = 1
}

// NewContainer creates a plain container. Children position themselves with
// Position, Anchor and Origin inside the padded content area.
func NewContainer(name string) *Node {
	n := &Node{Name: name, mode: LayoutPlain}
	nodeDefaults(n)
	return n
}

// NewBox creates a plain node with an explicit size, the usual leaf.
func NewBox(name string, width, height float64) *Node {
	n := NewContainer(name)
	n.size = Vec2{width, height}
	return n
}

// NewFlow creates a flow container that places its children one after
// another in the given direction. Children of a flow container do not own
// their position.
func NewFlow(name string, direction FlowDirection) *Node {
	n := &Node{Name: name, mode: LayoutFlow, direction: direction}
	nodeDefaults(n)
	return n
}

// NewGrid creates a grid container with columns × rows equal cells.
// Panics if either count is not positive.
func NewGrid(name string, columns, rows int) *Node {
	if columns < 1 || rows < 1 {
		panic(fmt.Sprintf("trellis: grid %q needs at least one column and row, got %dx%d", name, columns, rows))
	}
	n := &Node{Name: name, mode: LayoutGrid}
	nodeDefaults(n)
	n.columns, n.rows = columns, rows
	return n
}

// Mode returns the node's layout mode.
func (n *Node) Mode() LayoutMode {
	return n.mode
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.AddChildAt(child, -1)
}

// AddChildAt inserts child at the given index; -1 appends.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("trellis: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("trellis: adding child would create a cycle")
	}
	if child.parent != nil {
		child.parent.detach(child)
	}
	if index == -1 {
		index = len(n.children)
	}
	if index < 0 || index > len(n.children) {
		panic("trellis: child index out of range")
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
	n.reindex(index)

	invalidateSubtree(child)
	n.invalidateForChildren()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child's parent is not n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.parent != n {
		panic("trellis: child's parent is not this node")
	}
	n.detach(child)
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChildAt")
	}
	if index < 0 || index >= len(n.children) {
		panic("trellis: child index out of range")
	}
	child := n.children[index]
	n.detach(child)
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.parent = nil
		child.index = 0
		invalidateSubtree(child)
	}
	clear(n.children)
	n.children = n.children[:0]
	n.invalidateForChildren()
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Parent returns the node's parent, or nil for a detached node or root.
func (n *Node) Parent() *Node {
	return n.parent
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.parent != n {
		panic("trellis: child's parent is not this node")
	}
	if index < 0 || index >= len(n.children) {
		panic("trellis: child index out of range")
	}
	oldIndex := child.index
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
	n.reindex(min(oldIndex, index))
	n.invalidateForChildren()
}

// FindChild returns the first descendant (depth-first, including n) with
// the given name, or nil.
func (n *Node) FindChild(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.FindChild(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	n.children = nil
	n.parent = nil
	n.flowPositions = nil
	n.valid = 0
	n.UserData = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnClick = nil
	n.OnDragStart = nil
	n.OnDrag = nil
	n.OnDragEnd = nil
	n.OnHover = nil
	n.OnHoverLost = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// detach removes child from n.children, clears its parent and invalidates
// both sides.
func (n *Node) detach(child *Node) {
	i := child.index
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	n.reindex(i)
	child.parent = nil
	child.index = 0
	invalidateSubtree(child)
	n.invalidateForChildren()
}

// reindex refreshes the cached sibling index of children from i onward.
func (n *Node) reindex(from int) {
	for i := from; i < len(n.children); i++ {
		n.children[i].index = i
	}
}

// invalidateForChildren runs after the child list changes: auto-size and
// child placement depend on which children are present and in what order.
func (n *Node) invalidateForChildren() {
	flags := InvalidateChildLayout
	if n.autoSizeAxes != AxesNone {
		flags |= InvalidateSize
	}
	n.Invalidate(flags, SourceChild, true)
}
