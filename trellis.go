package trellis

import (
	"fmt"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets, sizes, and fractions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// axis returns the component of v on a single axis (AxesX or AxesY).
func (v Vec2) axis(a Axes) float64 {
	if a == AxesY {
		return v.Y
	}
	return v.X
}

// withAxis returns v with the component on axis a replaced by f.
func (v Vec2) withAxis(a Axes, f float64) Vec2 {
	if a == AxesY {
		v.Y = f
	} else {
		v.X = f
	}
	return v
}

// Anchor and origin presets, expressed as fractions of the relevant size.
var (
	AnchorTopLeft      = Vec2{0, 0}
	AnchorTopCentre    = Vec2{0.5, 0}
	AnchorTopRight     = Vec2{1, 0}
	AnchorCentreLeft   = Vec2{0, 0.5}
	AnchorCentre       = Vec2{0.5, 0.5}
	AnchorCentreRight  = Vec2{1, 0.5}
	AnchorBottomLeft   = Vec2{0, 1}
	AnchorBottomCentre = Vec2{0.5, 1}
	AnchorBottomRight  = Vec2{1, 1}
)

// Axes is a set of layout axes.
type Axes uint8

const (
	AxesNone Axes = 0
	AxesX    Axes = 1 // horizontal axis
	AxesY    Axes = 2 // vertical axis
	AxesBoth      = AxesX | AxesY
)

// Has reports whether every axis in o is present in a.
func (a Axes) Has(o Axes) bool { return a&o == o }

// String returns "None", "X", "Y" or "Both".
func (a Axes) String() string {
	switch a & AxesBoth {
	case AxesX:
		return "X"
	case AxesY:
		return "Y"
	case AxesBoth:
		return "Both"
	default:
		return "None"
	}
}

// eachAxis lists the single axes in iteration order.
var eachAxis = [2]Axes{AxesX, AxesY}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Vec2 { return Vec2{r.X, r.Y} }

// BottomRight returns the bottom-right corner.
func (r Rect) BottomRight() Vec2 { return Vec2{r.X + r.Width, r.Y + r.Height} }

// Size returns the rectangle's width and height.
func (r Rect) Size() Vec2 { return Vec2{r.Width, r.Height} }

// Quad is a quadrilateral given by its four corners in drawing order
// (top-left, top-right, bottom-right, bottom-left of the source rectangle).
// Under rotation and shear it is a parallelogram rather than a rectangle.
type Quad struct {
	TopLeft, TopRight, BottomRight, BottomLeft Vec2
}

// AABB returns the axis-aligned bounding box of the quad.
func (q Quad) AABB() Rect {
	minX := math.Min(math.Min(q.TopLeft.X, q.TopRight.X), math.Min(q.BottomRight.X, q.BottomLeft.X))
	minY := math.Min(math.Min(q.TopLeft.Y, q.TopRight.Y), math.Min(q.BottomRight.Y, q.BottomLeft.Y))
	maxX := math.Max(math.Max(q.TopLeft.X, q.TopRight.X), math.Max(q.BottomRight.X, q.BottomLeft.X))
	maxY := math.Max(math.Max(q.TopLeft.Y, q.TopRight.Y), math.Max(q.BottomRight.Y, q.BottomLeft.Y))
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// Contains reports whether (x, y) lies inside the quad, edges included.
// The quad must be convex, which every affine image of a rectangle is.
func (q Quad) Contains(x, y float64) bool {
	pts := [4]Vec2{q.TopLeft, q.TopRight, q.BottomRight, q.BottomLeft}
	var positive, negative bool
	for i := 0; i < 4; i++ {
		p1 := pts[i]
		p2 := pts[(i+1)%4]
		cross := (p2.X-p1.X)*(y-p1.Y) - (p2.Y-p1.Y)*(x-p1.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// MarginPadding holds a value for each side of a box. It is used for both
// a node's outer Margin and its inner Padding.
type MarginPadding struct {
	Top, Left, Bottom, Right float64
}

// Uniform returns a MarginPadding with the same value on every side.
func Uniform(v float64) MarginPadding {
	return MarginPadding{Top: v, Left: v, Bottom: v, Right: v}
}

// Horizontal returns the sum of Left and Right.
func (m MarginPadding) Horizontal() float64 { return m.Left + m.Right }

// Vertical returns the sum of Top and Bottom.
func (m MarginPadding) Vertical() float64 { return m.Top + m.Bottom }

// Total returns (Horizontal, Vertical).
func (m MarginPadding) Total() Vec2 { return Vec2{m.Horizontal(), m.Vertical()} }

// TopLeft returns (Left, Top).
func (m MarginPadding) TopLeft() Vec2 { return Vec2{m.Left, m.Top} }

// LayoutMode selects how a node arranges its children.
type LayoutMode uint8

const (
	LayoutPlain LayoutMode = iota // children positioned by their own Position/Anchor
	LayoutFlow                    // children placed one after another by the container
	LayoutGrid                    // children placed in equal cells
)

// String returns the lower-case mode name.
func (m LayoutMode) String() string {
	switch m {
	case LayoutPlain:
		return "plain"
	case LayoutFlow:
		return "flow"
	case LayoutGrid:
		return "grid"
	}
	return fmt.Sprintf("LayoutMode(%d)", uint8(m))
}

// FlowDirection controls how a flow container places its children.
type FlowDirection uint8

const (
	FlowFull       FlowDirection = iota // left to right, wrapping rows at the content width
	FlowHorizontal                      // a single row
	FlowVertical                        // a single column
)

// String returns the direction name used in test scripts.
func (d FlowDirection) String() string {
	switch d {
	case FlowFull:
		return "Full"
	case FlowHorizontal:
		return "Horizontal"
	case FlowVertical:
		return "Vertical"
	}
	return fmt.Sprintf("FlowDirection(%d)", uint8(d))
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown EventType = iota // fires when a pointer button is pressed
	EventPointerUp                    // fires when a pointer button is released
	EventClick                        // fires on press then release over the same node
	EventDragStart                    // fires when movement exceeds the drag dead zone
	EventDrag                         // fires each frame while dragging
	EventDragEnd                      // fires when the pointer is released after dragging
	EventHover                        // fires when the pointer enters a node
	EventHoverLost                    // fires when the pointer leaves a node
)
