package trellis

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	NodeID   uint32 // 0 when the pointer is over no interactable node
	NodeName string
	Node     *Node
	GlobalX  float64
	GlobalY  float64
	LocalX   float64
	LocalY   float64
	Button   MouseButton
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
}

// Scene is the top-level object that owns the node tree, input state and
// the debug renderer. The root node is sized to the screen.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	// ClearColor fills the screen before drawing. Zero alpha skips the fill.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// Render state
	vertices []ebiten.Vertex
	indices  []uint16

	// Input state
	handlers     handlerRegistry
	pointer      pointerState
	hitBuf       []*Node
	dragDeadZone float64
	injectQueue  []injectedPointer

	// Automation
	testRunner      *TestRunner
	screenshotQueue []string
	updateFunc      func() error
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	return &Scene{
		root:          root,
		dragDeadZone:  defaultDragDeadZone,
		ScreenshotDir: "screenshots",
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetSize sizes the root node, normally to the screen size.
func (s *Scene) SetSize(width, height float64) {
	s.root.SetSize(Vec2{width, height})
}

// SetUpdateFunc sets a callback run at the start of each Update when the
// scene is driven by Run.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update advances the test runner, settles layout and processes input.
func (s *Scene) Update() {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	// Hit testing needs settled geometry.
	UpdateLayout(s.root)
	s.processInput()
}

// Draw settles layout and renders every visible node's quad to screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	UpdateLayout(s.root)

	if s.debug {
		stats.layoutTime = time.Since(t0)
		t0 = time.Now()
	}

	quads := s.render(screen, s.root)

	if s.debug {
		stats.drawTime = time.Since(t0)
		stats.nodeCount = countNodes(s.root)
		stats.quadCount = quads
		// Counters cover the whole frame, including mutations made in Update.
		stats.layout = TreeStats(s.root)
		ResetStats(s.root)
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

func (s *Scene) emit(evt InteractionEvent) {
	if s.store == nil {
		return
	}
	if evt.Node != nil {
		evt.NodeID = evt.Node.ID
		evt.NodeName = evt.Node.Name
	}
	s.store.EmitEvent(evt)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and per-frame
// layout and draw stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// --- Run ---

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	Debug   bool
	ShowFPS bool
	// Resizable lets the user resize the window; the root follows the
	// window size so relative children reflow.
	Resizable bool
}

// gameShell adapts a Scene to ebiten.Game.
type gameShell struct {
	scene *Scene
	cfg   RunConfig
}

func (g *gameShell) Update() error {
	if g.scene.updateFunc != nil {
		if err := g.scene.updateFunc(); err != nil {
			return err
		}
	}
	g.scene.Update()
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.cfg.Width, g.cfg.Height
	if g.cfg.Resizable {
		w, h = outsideWidth, outsideHeight
	}
	g.scene.SetSize(float64(w), float64(h))
	return w, h
}

// Run opens a window and drives the scene until the window closes or the
// update callback returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	scene.SetDebugMode(cfg.Debug)
	scene.SetSize(float64(cfg.Width), float64(cfg.Height))

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(&gameShell{scene: scene, cfg: cfg})
}
