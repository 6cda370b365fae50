package arcade

import (
	"image"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
}

// System is advanced once per scene step after timers and tweens.
type System interface {
	Update(dt float64)
}

// SystemFunc adapts a function to System.
type SystemFunc func(dt float64)

// Update calls f(dt).
func (f SystemFunc) Update(dt float64) { f(dt) }

const defaultCommandCap = 1024

// Scene is the top-level object that owns the node tree, cameras, timers,
// tweens, input state, and render buffers.
type Scene struct {
	Key           string
	Width, Height int
	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	Clock    *Clock
	Tweens   *Tweens
	Keys     *Keyboard
	Textures *TextureCache
	Signals  *Signals
	// Rand is the scene's seeded random source; demos draw from it so that
	// scripted runs are reproducible.
	Rand *rand.Rand
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	game     *Game
	root     *Node
	store    EntityStore
	debug    bool
	cameras  []*Camera
	systems  []System
	updateFn func(s *Scene, dt float64) error
	frame    int

	commands   []RenderCommand
	sortBuf    []RenderCommand
	cullBounds Rect
	cullActive bool

	handlers     handlerRegistry
	captured     [maxPointers]*Node
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	dragDeadZone float64

	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates a standalone scene of the given logical size with its own
// texture cache, signals, and a fixed-seed random source.
func NewScene(width, height int) *Scene {
	root := NewContainer("root")
	root.Interactable = true
	s := &Scene{
		Width:         width,
		Height:        height,
		Clock:         NewClock(),
		Tweens:        &Tweens{},
		Keys:          NewKeyboard(),
		Textures:      NewTextureCache(),
		Rand:          rand.New(rand.NewPCG(1, 2)),
		ScreenshotDir: "screenshots",
		root:          root,
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:       make([]RenderCommand, 0, defaultCommandCap),
		dragDeadZone:  defaultDragDeadZone,
	}
	s.Signals = NewSignals(s.Clock.Now)
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Add attaches nodes to the root and returns the first one.
func (s *Scene) Add(nodes ...*Node) *Node {
	for _, n := range nodes {
		s.root.AddChild(n)
	}
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// Game returns the game running this scene, or nil for a standalone scene.
func (s *Scene) Game() *Game {
	return s.game
}

// Frame returns the number of steps taken.
func (s *Scene) Frame() int {
	return s.frame
}

// Bounds returns the scene's logical rectangle.
func (s *Scene) Bounds() Rect {
	return Rect{Width: float64(s.Width), Height: float64(s.Height)}
}

// AddSystem registers sys to run every step after timers and tweens.
func (s *Scene) AddSystem(sys System) {
	s.systems = append(s.systems, sys)
}

// SetUpdateFunc sets the per-step callback that runs after every system and
// node hook. A non-nil error stops the game.
func (s *Scene) SetUpdateFunc(fn func(s *Scene, dt float64) error) {
	s.updateFn = fn
}

// Update reads devices and advances the scene by one tick of 1/TPS seconds.
func (s *Scene) Update() error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.processInput()
	s.Keys.poll()
	return s.advance(1.0 / float64(ebiten.TPS()))
}

// Step advances the scene by dt seconds without reading devices. Injected
// pointer events and keys are still consumed, so scripted runs work headless.
func (s *Scene) Step(dt float64) error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.processInjectedInput(0)
	s.Keys.stepInjected()
	return s.advance(dt)
}

// advance runs one simulation tick: cameras, clock, tweens, systems, node
// hooks, then the scene's update callback.
func (s *Scene) advance(dt float64) error {
	s.frame++
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	for _, cam := range s.cameras {
		cam.update(dt)
	}
	s.Clock.Advance(dt)
	s.Tweens.Update(dt)
	for _, sys := range s.systems {
		sys.Update(dt)
	}
	walkUpdate(s.root, dt)
	if s.updateFn != nil {
		if err := s.updateFn(s, dt); err != nil {
			return err
		}
	}
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	return nil
}

// Draw traverses the scene tree once per camera, sorts the commands, and
// submits them to screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.NRGBA())
	}
	if len(s.cameras) == 0 {
		s.drawWithCamera(screen, nil)
	} else {
		for _, cam := range s.cameras {
			vp := cam.Viewport
			sub := screen.SubImage(image.Rect(
				int(vp.X), int(vp.Y),
				int(vp.X+vp.Width), int(vp.Y+vp.Height),
			)).(*ebiten.Image)
			if cam.Background.A > 0 {
				sub.Fill(cam.Background.NRGBA())
			}
			s.drawWithCamera(sub, cam)
			cam.drawEffects(sub)
		}
	}
	s.flushScreenshots(screen)
}

// drawWithCamera renders the scene from a camera's perspective.
// A nil camera uses the identity view without culling.
func (s *Scene) drawWithCamera(target *ebiten.Image, cam *Camera) {
	s.commands = s.commands[:0]

	view := identityTransform
	s.cullActive = false
	if cam != nil {
		view = cam.computeViewMatrix()
		s.cullActive = cam.CullEnabled
		if cam.CullEnabled {
			s.cullBounds = cam.VisibleBounds()
		}
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	treeOrder := 0
	s.traverse(s.root, identityTransform, 1.0, false, view, &treeOrder)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.mergeSort()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submitBatches(target)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.batchCount = countBatches(s.commands)
		s.debugLog(stats)
	}
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport, s.Rand)
	s.cameras = append(s.cameras, cam)
	return cam
}

// MainCamera returns the first camera, creating a full-scene camera if the
// scene has none.
func (s *Scene) MainCamera() *Camera {
	if len(s.cameras) == 0 {
		return s.NewCamera(s.Bounds())
	}
	return s.cameras[0]
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-frame timing stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations, which lack a Scene pointer, can check it cheaply.
var globalDebug bool

// shutdown releases the scene's graph, timers, and tweens.
func (s *Scene) shutdown() {
	s.Clock.RemoveAll()
	for _, t := range s.Tweens.active {
		t.Stop()
	}
	s.root.Dispose()
	s.cameras = nil
	s.systems = nil
	s.handlers = handlerRegistry{}
	s.injectQueue = nil
}
