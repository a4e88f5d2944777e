package trellis

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const defaultDragDeadZone = 4.0 // pixels

// --- Pointer state ---

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node // last node the pointer was hovering over (for hover/hover lost)
	dragging  bool
	button    MouseButton // button captured at press time
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type dragHandler struct {
	id uint32
	fn func(DragContext)
}

type handlerRegistry struct {
	pointerDown []pointerHandler
	pointerUp   []pointerHandler
	hover       []pointerHandler
	hoverLost   []pointerHandler
	click       []clickHandler
	dragStart   []dragHandler
	drag        []dragHandler
	dragEnd     []dragHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventHover:
		h.reg.hover = removeHandler(h.reg.hover, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventHoverLost:
		h.reg.hoverLost = removeHandler(h.reg.hoverLost, h.id, func(p pointerHandler) uint32 { return p.id })
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id, func(c clickHandler) uint32 { return c.id })
	case EventDragStart:
		h.reg.dragStart = removeHandler(h.reg.dragStart, h.id, func(d dragHandler) uint32 { return d.id })
	case EventDrag:
		h.reg.drag = removeHandler(h.reg.drag, h.id, func(d dragHandler) uint32 { return d.id })
	case EventDragEnd:
		h.reg.dragEnd = removeHandler(h.reg.dragEnd, h.id, func(d dragHandler) uint32 { return d.id })
	}
}

// removeHandler removes the entry with the given id, zeroing the vacated
// slot to avoid retaining the closure.
func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	for i := range s {
		if idOf(s[i]) == id {
			copy(s[i:], s[i+1:])
			var zero T
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.pointerDown = append(s.handlers.pointerDown, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerDown}
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.pointerUp = append(s.handlers.pointerUp, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPointerUp}
}

// OnHover registers a scene-level callback fired when the pointer moves
// onto a new node.
func (s *Scene) OnHover(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.hover = append(s.handlers.hover, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventHover}
}

// OnHoverLost registers a scene-level callback fired when the pointer
// leaves a node.
func (s *Scene) OnHoverLost(fn func(PointerContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.hoverLost = append(s.handlers.hoverLost, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventHoverLost}
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// OnDragStart registers a scene-level callback for drag start events.
func (s *Scene) OnDragStart(fn func(DragContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.dragStart = append(s.handlers.dragStart, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDragStart}
}

// OnDrag registers a scene-level callback for drag events.
func (s *Scene) OnDrag(fn func(DragContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.drag = append(s.handlers.drag, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDrag}
}

// OnDragEnd registers a scene-level callback for drag end events.
func (s *Scene) OnDragEnd(fn func(DragContext)) CallbackHandle {
	id := s.handlers.next()
	s.handlers.dragEnd = append(s.handlers.dragEnd, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDragEnd}
}

func (r *handlerRegistry) next() uint32 {
	r.nextID++
	return r.nextID
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Hit testing ---

// Contains reports whether the screen-space point (x, y) falls inside the
// node's draw rectangle and inside every masking ancestor. The point is
// mapped into local space, so rotated and sheared nodes are tested against
// their actual parallelogram.
func (n *Node) Contains(x, y float64) bool {
	if !n.containsLocal(x, y) {
		return false
	}
	for p := n.parent; p != nil; p = p.parent {
		if p.masking && !p.containsLocal(x, y) {
			return false
		}
	}
	return true
}

func (n *Node) containsLocal(x, y float64) bool {
	size := n.DrawSize()
	if size.X <= 0 || size.Y <= 0 {
		return false
	}
	if n.DrawMatrix().Singular() {
		return false
	}
	return n.BoundingBox().Contains(x, y) && n.ScreenSpaceQuad().Contains(x, y)
}

// collectInteractable walks the tree in painter order (DFS), appending
// interactable nodes to buf. Skips invisible subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.visible {
		return buf
	}
	if n.Interactable {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// HitTest returns the topmost visible, interactable node under the
// screen-space point, or nil.
func HitTest(root *Node, x, y float64) *Node {
	return hitTestBuf(root, x, y, nil)
}

func hitTestBuf(root *Node, x, y float64, buf []*Node) *Node {
	buf = collectInteractable(root, buf[:0])
	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(buf) - 1; i >= 0; i-- {
		if buf[i].Contains(x, y) {
			return buf[i]
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update() with layout already settled.
// Injected events take precedence over the real mouse.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	cx, cy := ebiten.CursorPosition()
	if !s.pointer.down {
		for _, b := range [...]struct {
			eb ebiten.MouseButton
			mb MouseButton
		}{
			{ebiten.MouseButtonLeft, MouseButtonLeft},
			{ebiten.MouseButtonRight, MouseButtonRight},
			{ebiten.MouseButtonMiddle, MouseButtonMiddle},
		} {
			if inpututil.IsMouseButtonJustPressed(b.eb) {
				s.processPointer(float64(cx), float64(cy), true, b.mb)
				return
			}
		}
		s.processPointer(float64(cx), float64(cy), false, MouseButtonLeft)
		return
	}
	held := ebiten.IsMouseButtonPressed(toEbitenButton(s.pointer.button))
	s.processPointer(float64(cx), float64(cy), held, s.pointer.button)
}

func toEbitenButton(b MouseButton) ebiten.MouseButton {
	switch b {
	case MouseButtonRight:
		return ebiten.MouseButtonRight
	case MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

// processPointer runs the pointer state machine for one frame.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointer
	hit := hitTestBuf(s.root, x, y, s.hitBuf)

	if hit != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.disposed {
			s.firePointer(EventHoverLost, ps.hoverNode, x, y, button)
		}
		if hit != nil {
			s.firePointer(EventHover, hit, x, y, button)
		}
		ps.hoverNode = hit
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.dragging = false
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hitNode = hit
		ps.button = button
		s.firePointer(EventPointerDown, hit, x, y, button)

	case pressed && ps.down:
		if !ps.dragging && math.Hypot(x-ps.startX, y-ps.startY) > s.dragDeadZone {
			ps.dragging = true
			s.fireDrag(EventDragStart, ps, x, y)
		} else if ps.dragging && (x != ps.lastX || y != ps.lastY) {
			s.fireDrag(EventDrag, ps, x, y)
		}
		ps.lastX, ps.lastY = x, y

	case !pressed && ps.down:
		ps.down = false
		s.firePointer(EventPointerUp, hit, x, y, ps.button)
		if ps.dragging {
			s.fireDrag(EventDragEnd, ps, x, y)
		} else if hit != nil && hit == ps.hitNode {
			s.fireClick(hit, x, y, ps.button)
		}
		ps.dragging = false
		ps.hitNode = nil
	}
}

func (s *Scene) firePointer(evt EventType, n *Node, x, y float64, button MouseButton) {
	ctx := PointerContext{Node: n, GlobalX: x, GlobalY: y, Button: button}
	if n != nil {
		l := n.ToLocalSpace(Vec2{x, y})
		ctx.LocalX, ctx.LocalY = l.X, l.Y
		ctx.UserData = n.UserData
	}

	var nodeFn func(PointerContext)
	var handlers []pointerHandler
	switch evt {
	case EventPointerDown:
		handlers = s.handlers.pointerDown
		if n != nil {
			nodeFn = n.OnPointerDown
		}
	case EventPointerUp:
		handlers = s.handlers.pointerUp
		if n != nil {
			nodeFn = n.OnPointerUp
		}
	case EventHover:
		handlers = s.handlers.hover
		if n != nil {
			nodeFn = n.OnHover
		}
	case EventHoverLost:
		handlers = s.handlers.hoverLost
		if n != nil {
			nodeFn = n.OnHoverLost
		}
	}
	if nodeFn != nil {
		nodeFn(ctx)
	}
	for _, h := range handlers {
		h.fn(ctx)
	}
	s.emit(InteractionEvent{Type: evt, Node: n, GlobalX: x, GlobalY: y, LocalX: ctx.LocalX, LocalY: ctx.LocalY, Button: button})
}

func (s *Scene) fireClick(n *Node, x, y float64, button MouseButton) {
	l := n.ToLocalSpace(Vec2{x, y})
	ctx := ClickContext{Node: n, UserData: n.UserData, GlobalX: x, GlobalY: y, LocalX: l.X, LocalY: l.Y, Button: button}
	if n.OnClick != nil {
		n.OnClick(ctx)
	}
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	s.emit(InteractionEvent{Type: EventClick, Node: n, GlobalX: x, GlobalY: y, LocalX: l.X, LocalY: l.Y, Button: button})
}

func (s *Scene) fireDrag(evt EventType, ps *pointerState, x, y float64) {
	n := ps.hitNode
	ctx := DragContext{
		Node: n, GlobalX: x, GlobalY: y,
		StartX: ps.startX, StartY: ps.startY,
		DeltaX: x - ps.lastX, DeltaY: y - ps.lastY,
		Button: ps.button,
	}
	if n != nil {
		l := n.ToLocalSpace(Vec2{x, y})
		ctx.LocalX, ctx.LocalY = l.X, l.Y
		ctx.UserData = n.UserData
	}

	var nodeFn func(DragContext)
	var handlers []dragHandler
	switch evt {
	case EventDragStart:
		handlers = s.handlers.dragStart
		if n != nil {
			nodeFn = n.OnDragStart
		}
	case EventDrag:
		handlers = s.handlers.drag
		if n != nil {
			nodeFn = n.OnDrag
		}
	case EventDragEnd:
		handlers = s.handlers.dragEnd
		if n != nil {
			nodeFn = n.OnDragEnd
		}
	}
	if nodeFn != nil {
		nodeFn(ctx)
	}
	for _, h := range handlers {
		h.fn(ctx)
	}
	s.emit(InteractionEvent{
		Type: evt, Node: n, GlobalX: x, GlobalY: y, LocalX: ctx.LocalX, LocalY: ctx.LocalY,
		StartX: ps.startX, StartY: ps.startY, DeltaX: ctx.DeltaX, DeltaY: ctx.DeltaY, Button: ps.button,
	})
}
