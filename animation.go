package trellis

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 layout values on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenSize,
// TweenScale, TweenRotation, TweenAlpha, TweenPadding) and call Update(dt)
// each frame. Values are written through the node's setters, so every step
// runs the normal invalidation. Start values are read on the first Update,
// which lets a group queued in a TweenSequence begin where the previous one
// ended. If the target node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens   [4]*gween.Tween
	count    int
	to       [4]float64
	values   [4]float64
	duration float32
	fn       ease.TweenFunc
	read     func() [4]float64
	apply    func(v [4]float64)
	target   *Node
	started  bool
	Done     bool
}

// Update advances all tweens by dt seconds and writes values to the target.
// If the target node has been disposed, Done is set to true and no writes
// occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	if !g.started {
		from := g.read()
		for i := 0; i < g.count; i++ {
			g.tweens[i] = gween.New(float32(from[i]), float32(g.to[i]), g.duration, g.fn)
		}
		g.started = true
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(g.values)
}

// Reset rewinds the group to the start values captured by its first Update.
func (g *TweenGroup) Reset() {
	if g.started {
		for i := 0; i < g.count; i++ {
			g.tweens[i].Reset()
		}
	}
	g.Done = false
}

func newTweenGroup(target *Node, duration float32, fn ease.TweenFunc, read func() [4]float64, apply func([4]float64), to ...float64) *TweenGroup {
	g := &TweenGroup{count: len(to), target: target, duration: duration, fn: fn, read: read, apply: apply}
	copy(g.to[:], to)
	return g
}

// TweenPosition creates a TweenGroup that animates the node's position.
func TweenPosition(node *Node, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		func() [4]float64 { return [4]float64{node.position.X, node.position.Y} },
		func(v [4]float64) { node.SetPosition(Vec2{v[0], v[1]}) },
		to.X, to.Y)
}

// TweenSize creates a TweenGroup that animates the node's size input.
func TweenSize(node *Node, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		func() [4]float64 { return [4]float64{node.size.X, node.size.Y} },
		func(v [4]float64) { node.SetSize(Vec2{v[0], v[1]}) },
		to.X, to.Y)
}

// TweenScale creates a TweenGroup that animates the node's scale.
func TweenScale(node *Node, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		func() [4]float64 { return [4]float64{node.scale.X, node.scale.Y} },
		func(v [4]float64) { node.SetScale(Vec2{v[0], v[1]}) },
		to.X, to.Y)
}

// TweenRotation creates a TweenGroup that animates the node's rotation, in
// degrees.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		func() [4]float64 { return [4]float64{node.rotation} },
		func(v [4]float64) { node.SetRotation(v[0]) },
		to)
}

// TweenAlpha creates a TweenGroup that animates the node's alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		func() [4]float64 { return [4]float64{node.alpha} },
		func(v [4]float64) { node.SetAlpha(v[0]) },
		to)
}

// TweenPadding creates a TweenGroup that animates all four padding sides.
func TweenPadding(node *Node, to MarginPadding, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		func() [4]float64 {
			p := node.padding
			return [4]float64{p.Top, p.Left, p.Bottom, p.Right}
		},
		func(v [4]float64) { node.SetPadding(MarginPadding{Top: v[0], Left: v[1], Bottom: v[2], Right: v[3]}) },
		to.Top, to.Left, to.Bottom, to.Right)
}

// TweenSequence runs tween groups one after another. Leftover time from a
// finished group is not carried into the next one.
type TweenSequence struct {
	groups  []*TweenGroup
	current int
	Done    bool
}

// Then appends groups to a new sequence starting with g.
func (g *TweenGroup) Then(next ...*TweenGroup) *TweenSequence {
	return &TweenSequence{groups: append([]*TweenGroup{g}, next...)}
}

// Then appends more groups to the sequence.
func (s *TweenSequence) Then(next ...*TweenGroup) *TweenSequence {
	s.groups = append(s.groups, next...)
	s.Done = false
	return s
}

// Update advances the active group by dt seconds.
func (s *TweenSequence) Update(dt float32) {
	if s.Done {
		return
	}
	if s.current >= len(s.groups) {
		s.Done = true
		return
	}
	g := s.groups[s.current]
	g.Update(dt)
	if g.Done {
		s.current++
		if s.current >= len(s.groups) {
			s.Done = true
		}
	}
}
