package trellis

import "github.com/tanema/gween/ease"

// injectedPointer is one queued frame of synthetic pointer state in screen
// space. A queued frame replaces the real mouse for that Update.
type injectedPointer struct {
	at      Vec2
	pressed bool
	button  MouseButton
}

func (s *Scene) enqueuePointer(at Vec2, pressed bool, button MouseButton) {
	s.injectQueue = append(s.injectQueue, injectedPointer{at: at, pressed: pressed, button: button})
}

// InjectPress queues a left button press at (x, y).
func (s *Scene) InjectPress(x, y float64) {
	s.enqueuePointer(Vec2{x, y}, true, MouseButtonLeft)
}

// InjectMove queues a move to (x, y) with the button still held.
func (s *Scene) InjectMove(x, y float64) {
	s.enqueuePointer(Vec2{x, y}, true, MouseButtonLeft)
}

// InjectHover queues a move to (x, y) with no button held.
func (s *Scene) InjectHover(x, y float64) {
	s.enqueuePointer(Vec2{x, y}, false, MouseButtonLeft)
}

// InjectRelease queues a release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.enqueuePointer(Vec2{x, y}, false, MouseButtonLeft)
}

// InjectClick queues a left click at (x, y). Takes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectClickButton(x, y, MouseButtonLeft)
}

// InjectClickButton queues a press and release of button at (x, y).
func (s *Scene) InjectClickButton(x, y float64, button MouseButton) {
	at := Vec2{x, y}
	s.enqueuePointer(at, true, button)
	s.enqueuePointer(at, false, button)
}

// InjectDrag queues a linear left-button drag that takes frames frames,
// press and release included. frames is raised to 2 if smaller.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	s.InjectDragEased(Vec2{fromX, fromY}, Vec2{toX, toY}, frames, ease.Linear)
}

// InjectDragEased is InjectDrag with the intermediate moves spaced by fn,
// so scripted drags can accelerate or settle like a hand would.
func (s *Scene) InjectDragEased(from, to Vec2, frames int, fn ease.TweenFunc) {
	frames = max(frames, 2)
	s.enqueuePointer(from, true, MouseButtonLeft)
	moves := frames - 2
	for i := 1; i <= moves; i++ {
		t := float64(fn(float32(i), 0, 1, float32(moves+1)))
		s.enqueuePointer(from.Add(to.Sub(from).Scale(t)), true, MouseButtonLeft)
	}
	s.enqueuePointer(to, false, MouseButtonLeft)
}

// processInjectedInput feeds the oldest queued frame to processPointer and
// reports whether one was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	p := s.injectQueue[0]
	s.injectQueue = s.injectQueue[1:]
	s.processPointer(p.at.X, p.at.Y, p.pressed, p.button)
	return true
}
