package arcade

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func stepScene(t *testing.T, s *Scene, steps int) {
	t.Helper()
	for range steps {
		if err := s.Step(1.0 / 60); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
}

func interactiveRect(name string, x, y, w, h float64) *Node {
	n := NewRect(name, w, h, ColorWhite)
	n.SetPosition(x, y)
	n.Interactable = true
	return n
}

func TestClickHitsTopmostNode(t *testing.T) {
	s := NewScene(200, 200)
	back := s.Add(interactiveRect("back", 100, 100, 50, 50))
	front := s.Add(interactiveRect("front", 100, 100, 20, 20))

	var clicked []string
	back.OnClick = func(ClickContext) { clicked = append(clicked, "back") }
	front.OnClick = func(ClickContext) { clicked = append(clicked, "front") }

	s.InjectClick(100, 100)
	s.InjectClick(120, 120)
	stepScene(t, s, 4)

	if len(clicked) != 2 || clicked[0] != "front" || clicked[1] != "back" {
		t.Errorf("clicked = %v, want [front back]", clicked)
	}
}

func TestClickRequiresReleaseOnSameNode(t *testing.T) {
	s := NewScene(200, 200)
	n := s.Add(interactiveRect("n", 50, 50, 20, 20))
	clicks := 0
	n.OnClick = func(ClickContext) { clicks++ }

	s.InjectPress(50, 50)
	s.InjectRelease(150, 150)
	stepScene(t, s, 3)

	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
}

func TestDraggableFollowsPointer(t *testing.T) {
	s := NewScene(400, 400)
	n := s.Add(interactiveRect("box", 100, 100, 40, 40))
	n.Draggable = true

	var started, ended int
	n.OnDragStart = func(DragContext) { started++ }
	n.OnDragEnd = func(DragContext) { ended++ }

	// Grab 5px off centre so the grab offset is exercised.
	s.InjectDrag(105, 100, 305, 200, 10)
	stepScene(t, s, 12)

	assertNear(t, "X", n.X, 300)
	assertNear(t, "Y", n.Y, 200)
	if started != 1 || ended != 1 {
		t.Errorf("drag start/end = %d/%d, want 1/1", started, ended)
	}
}

func TestDragDeadZoneSuppressesDrag(t *testing.T) {
	s := NewScene(200, 200)
	n := s.Add(interactiveRect("n", 50, 50, 40, 40))
	drags, clicks := 0, 0
	n.OnDrag = func(DragContext) { drags++ }
	n.OnClick = func(ClickContext) { clicks++ }

	s.InjectPress(50, 50)
	s.InjectMove(52, 51)
	s.InjectRelease(52, 51)
	stepScene(t, s, 4)

	if drags != 0 || clicks != 1 {
		t.Errorf("drags = %d, clicks = %d, want 0 and 1", drags, clicks)
	}
}

func TestSceneHandlerRemove(t *testing.T) {
	s := NewScene(100, 100)
	s.Add(interactiveRect("n", 50, 50, 20, 20))
	count := 0
	h := s.OnClick(func(ClickContext) { count++ })

	s.InjectClick(50, 50)
	stepScene(t, s, 2)
	h.Remove()
	s.InjectClick(50, 50)
	stepScene(t, s, 2)

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestEnterLeave(t *testing.T) {
	s := NewScene(200, 200)
	n := s.Add(interactiveRect("n", 50, 50, 20, 20))
	var events []string
	n.OnPointerEnter = func(PointerContext) { events = append(events, "enter") }
	n.OnPointerLeave = func(PointerContext) { events = append(events, "leave") }

	s.InjectHover(50, 50)
	s.InjectHover(150, 150)
	stepScene(t, s, 2)

	if len(events) != 2 || events[0] != "enter" || events[1] != "leave" {
		t.Errorf("events = %v, want [enter leave]", events)
	}
}

func TestInputThroughCamera(t *testing.T) {
	s := NewScene(200, 200)
	cam := s.MainCamera()
	cam.CenterOn(1000, 1000)
	n := s.Add(interactiveRect("far", 1000, 1000, 20, 20))
	clicks := 0
	n.OnClick = func(ClickContext) { clicks++ }

	// The camera centre maps to the middle of the viewport.
	s.InjectClick(100, 100)
	stepScene(t, s, 2)

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestHitShapeCircle(t *testing.T) {
	s := NewScene(200, 200)
	n := NewContainer("disc")
	n.Interactable = true
	n.HitShape = CircleHitShape{Radius: 10}
	n.SetPosition(100, 100)
	s.Add(n)
	stepScene(t, s, 1)

	if got := s.NodeAt(105, 105); got != n {
		t.Error("NodeAt inside circle should hit")
	}
	if got := s.NodeAt(109, 109); got != nil {
		t.Error("NodeAt outside circle should miss")
	}
}

func TestKeyboardInjection(t *testing.T) {
	s := NewScene(100, 100)
	var presses, downFrames int
	s.SetUpdateFunc(func(s *Scene, dt float64) error {
		if s.Keys.JustPressed(ebiten.KeySpace) {
			presses++
		}
		if s.Keys.IsDown(ebiten.KeySpace) {
			downFrames++
		}
		return nil
	})

	s.InjectKey(ebiten.KeySpace, 3)
	stepScene(t, s, 6)

	if presses != 1 || downFrames != 3 {
		t.Errorf("presses = %d, downFrames = %d, want 1 and 3", presses, downFrames)
	}
}

func TestKeyboardPollMergesInjected(t *testing.T) {
	k := NewKeyboard()
	k.Inject(ebiten.KeyQ, 2)

	k.poll()
	if !k.IsDown(ebiten.KeyQ) || !k.JustPressed(ebiten.KeyQ) {
		t.Fatal("injected key should be down and just pressed after poll")
	}
	k.poll()
	if !k.IsDown(ebiten.KeyQ) || k.JustPressed(ebiten.KeyQ) {
		t.Error("held key should stay down without a new press")
	}
	k.poll()
	if k.IsDown(ebiten.KeyQ) {
		t.Error("key released after its frames ran out")
	}
}
