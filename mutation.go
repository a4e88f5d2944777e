package trellis

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// MutationKind names a node property a Mutation writes.
type MutationKind uint8

const (
	MutatePosition             MutationKind = iota // Vec
	MutateX                                        // Float
	MutateY                                        // Float
	MutateSize                                     // Vec
	MutateWidth                                    // Float
	MutateHeight                                   // Float
	MutateScale                                    // Vec
	MutateRotation                                 // Float, degrees
	MutateShear                                    // Vec
	MutateAnchor                                   // Vec
	MutateOrigin                                   // Vec
	MutateMargin                                   // Edges
	MutatePadding                                  // Edges
	MutateRelativeSizeAxes                         // Axes
	MutateRelativePositionAxes                     // Axes
	MutateAutoSizeAxes                             // Axes
	MutateBypassAutoSizeAxes                       // Axes
	MutateAlpha                                    // Float
	MutateSpacing                                  // Vec
	MutateGridSize                                 // Vec, whole columns and rows
	MutateFlowDirection                            // Direction
	mutationKindCount
)

var mutationNames = [mutationKindCount]string{
	MutatePosition:             "position",
	MutateX:                    "x",
	MutateY:                    "y",
	MutateSize:                 "size",
	MutateWidth:                "width",
	MutateHeight:               "height",
	MutateScale:                "scale",
	MutateRotation:             "rotation",
	MutateShear:                "shear",
	MutateAnchor:               "anchor",
	MutateOrigin:               "origin",
	MutateMargin:               "margin",
	MutatePadding:              "padding",
	MutateRelativeSizeAxes:     "relativeSizeAxes",
	MutateRelativePositionAxes: "relativePositionAxes",
	MutateAutoSizeAxes:         "autoSizeAxes",
	MutateBypassAutoSizeAxes:   "bypassAutoSizeAxes",
	MutateAlpha:                "alpha",
	MutateSpacing:              "spacing",
	MutateGridSize:             "gridSize",
	MutateFlowDirection:        "flowDirection",
}

// String returns the property name used in test scripts.
func (k MutationKind) String() string {
	if k < mutationKindCount {
		return mutationNames[k]
	}
	return fmt.Sprintf("MutationKind(%d)", uint8(k))
}

// Mutation is a single typed property write. Only the payload field that
// matches Kind is read.
type Mutation struct {
	Kind      MutationKind
	Float     float64
	Vec       Vec2
	Axes      Axes
	Edges     MarginPadding
	Direction FlowDirection
}

// String formats the mutation as "property=value".
func (m Mutation) String() string {
	switch m.Kind {
	case MutateX, MutateY, MutateWidth, MutateHeight, MutateRotation, MutateAlpha:
		return fmt.Sprintf("%v=%g", m.Kind, m.Float)
	case MutateMargin, MutatePadding:
		return fmt.Sprintf("%v=%+v", m.Kind, m.Edges)
	case MutateRelativeSizeAxes, MutateRelativePositionAxes, MutateAutoSizeAxes, MutateBypassAutoSizeAxes:
		return fmt.Sprintf("%v=%v", m.Kind, m.Axes)
	case MutateFlowDirection:
		return fmt.Sprintf("%v=%v", m.Kind, m.Direction)
	default:
		return fmt.Sprintf("%v=(%g, %g)", m.Kind, m.Vec.X, m.Vec.Y)
	}
}

// Check reports whether applying m to n would be rejected, without
// changing n.
func (m Mutation) Check(n *Node) error {
	switch m.Kind {
	case MutatePosition, MutateX, MutateY:
		return n.checkPosition()
	case MutateRelativeSizeAxes:
		return checkAxes(m.Axes, n.autoSizeAxes)
	case MutateAutoSizeAxes:
		return checkAxes(n.relativeSizeAxes, m.Axes)
	case MutateGridSize:
		if n.mode != LayoutGrid {
			return fmt.Errorf("grid size on %v node: %w", n.mode, ErrLayoutMode)
		}
		if c, r := m.Vec.X, m.Vec.Y; c < 1 || r < 1 || c != math.Trunc(c) || r != math.Trunc(r) {
			return fmt.Errorf("grid size (%g, %g) is not a positive whole count", c, r)
		}
	case MutateFlowDirection:
		if n.mode != LayoutFlow {
			return fmt.Errorf("flow direction on %v node: %w", n.mode, ErrLayoutMode)
		}
		if m.Direction > FlowVertical {
			return fmt.Errorf("unknown flow direction %d", uint8(m.Direction))
		}
	}
	if m.Kind >= mutationKindCount {
		return fmt.Errorf("unknown mutation kind %d", uint8(m.Kind))
	}
	return nil
}

// Apply writes the mutation through the node's setter. Configurations the
// setters would panic on are returned as errors instead and leave n
// unchanged.
func (m Mutation) Apply(n *Node) error {
	if err := m.Check(n); err != nil {
		return fmt.Errorf("apply %v to %q: %w", m, n.Name, err)
	}
	switch m.Kind {
	case MutatePosition:
		n.SetPosition(m.Vec)
	case MutateX:
		n.SetX(m.Float)
	case MutateY:
		n.SetY(m.Float)
	case MutateSize:
		n.SetSize(m.Vec)
	case MutateWidth:
		n.SetWidth(m.Float)
	case MutateHeight:
		n.SetHeight(m.Float)
	case MutateScale:
		n.SetScale(m.Vec)
	case MutateRotation:
		n.SetRotation(m.Float)
	case MutateShear:
		n.SetShear(m.Vec)
	case MutateAnchor:
		n.SetAnchor(m.Vec)
	case MutateOrigin:
		n.SetOrigin(m.Vec)
	case MutateMargin:
		n.SetMargin(m.Edges)
	case MutatePadding:
		n.SetPadding(m.Edges)
	case MutateRelativeSizeAxes:
		n.SetRelativeSizeAxes(m.Axes)
	case MutateRelativePositionAxes:
		n.SetRelativePositionAxes(m.Axes)
	case MutateAutoSizeAxes:
		n.SetAutoSizeAxes(m.Axes)
	case MutateBypassAutoSizeAxes:
		n.SetBypassAutoSizeAxes(m.Axes)
	case MutateAlpha:
		n.SetAlpha(m.Float)
	case MutateSpacing:
		n.SetSpacing(m.Vec)
	case MutateGridSize:
		n.SetGridSize(int(m.Vec.X), int(m.Vec.Y))
	case MutateFlowDirection:
		n.SetFlowDirection(m.Direction)
	}
	return nil
}

// ParseMutation builds a Mutation from a property name and a JSON value.
// Floats are numbers, vectors are [x, y], axes are "None"/"X"/"Y"/"Both"
// and edges are {"top":..,"left":..,"bottom":..,"right":..} or a number
// for all sides. Grid sizes are [columns, rows] and flow directions are
// "Full"/"Horizontal"/"Vertical".
func ParseMutation(property string, value json.RawMessage) (Mutation, error) {
	kind, ok := mutationKindByName(property)
	if !ok {
		return Mutation{}, fmt.Errorf("parse mutation: unknown property %q", property)
	}
	m := Mutation{Kind: kind}
	var err error
	switch kind {
	case MutateX, MutateY, MutateWidth, MutateHeight, MutateRotation, MutateAlpha:
		err = json.Unmarshal(value, &m.Float)
	case MutateMargin, MutatePadding:
		m.Edges, err = parseEdges(value)
	case MutateRelativeSizeAxes, MutateRelativePositionAxes, MutateAutoSizeAxes, MutateBypassAutoSizeAxes:
		m.Axes, err = parseAxes(value)
	case MutateFlowDirection:
		m.Direction, err = parseFlowDirection(value)
	default:
		var v [2]float64
		err = json.Unmarshal(value, &v)
		m.Vec = Vec2{v[0], v[1]}
	}
	if err != nil {
		return Mutation{}, fmt.Errorf("parse mutation %s: %w", property, err)
	}
	return m, nil
}

func mutationKindByName(name string) (MutationKind, bool) {
	for k, s := range mutationNames {
		if strings.EqualFold(s, name) {
			return MutationKind(k), true
		}
	}
	return 0, false
}

func parseAxes(value json.RawMessage) (Axes, error) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return AxesNone, err
	}
	for _, a := range [...]Axes{AxesNone, AxesX, AxesY, AxesBoth} {
		if strings.EqualFold(a.String(), s) {
			return a, nil
		}
	}
	return AxesNone, fmt.Errorf("unknown axes %q", s)
}

func parseFlowDirection(value json.RawMessage) (FlowDirection, error) {
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return FlowFull, err
	}
	for _, d := range [...]FlowDirection{FlowFull, FlowHorizontal, FlowVertical} {
		if strings.EqualFold(d.String(), s) {
			return d, nil
		}
	}
	return FlowFull, fmt.Errorf("unknown flow direction %q", s)
}

func parseEdges(value json.RawMessage) (MarginPadding, error) {
	var all float64
	if err := json.Unmarshal(value, &all); err == nil {
		return Uniform(all), nil
	}
	var e struct {
		Top, Left, Bottom, Right float64
	}
	if err := json.Unmarshal(value, &e); err != nil {
		return MarginPadding{}, err
	}
	return MarginPadding{Top: e.Top, Left: e.Left, Bottom: e.Bottom, Right: e.Right}, nil
}
