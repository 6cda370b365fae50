package arcade

import "testing"

// traverseScene runs one traversal with an identity view, without drawing.
func traverseScene(s *Scene) {
	s.commands = s.commands[:0]
	treeOrder := 0
	s.traverse(s.root, identityTransform, 1.0, false, identityTransform, &treeOrder)
}

func TestSingleRectEmitsOneCommand(t *testing.T) {
	s := NewScene(100, 100)
	s.Add(NewRect("r", 10, 10, ColorWhite))

	traverseScene(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	if s.commands[0].Type != CommandSprite {
		t.Errorf("Type = %d, want CommandSprite", s.commands[0].Type)
	}
	if s.commands[0].Image != WhitePixel {
		t.Error("nil texture should draw WhitePixel")
	}
}

func TestInvisibleSubtreeSkipped(t *testing.T) {
	s := NewScene(100, 100)
	parent := NewContainer("parent")
	parent.Visible = false
	parent.AddChild(NewRect("child", 10, 10, ColorWhite))
	s.Add(parent)

	traverseScene(s)

	if len(s.commands) != 0 {
		t.Errorf("commands = %d, want 0 for invisible subtree", len(s.commands))
	}
}

func TestZeroAlphaSkippedButChildrenInherit(t *testing.T) {
	s := NewScene(100, 100)
	parent := NewRect("parent", 10, 10, ColorWhite)
	parent.SetAlpha(0.5)
	child := NewRect("child", 5, 5, ColorWhite)
	parent.AddChild(child)
	hidden := NewRect("hidden", 5, 5, ColorWhite)
	hidden.SetAlpha(0)
	s.Add(parent, hidden)

	traverseScene(s)

	if len(s.commands) != 2 {
		t.Fatalf("commands = %d, want 2", len(s.commands))
	}
	if got := s.commands[1].Color.A; got != 0.5 {
		t.Errorf("child alpha = %v, want 0.5", got)
	}
}

func TestPolygonEmitsMeshCommand(t *testing.T) {
	s := NewScene(100, 100)
	poly := NewPolygon("tri", TrianglePoints(10), ColorWhite)
	poly.SetPosition(50, 50)
	s.Add(poly)

	traverseScene(s)

	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	cmd := s.commands[0]
	if cmd.Type != CommandMesh {
		t.Fatalf("Type = %d, want CommandMesh", cmd.Type)
	}
	if len(cmd.meshVerts) != 4 || len(cmd.meshInds) != 9 {
		t.Errorf("mesh = %d verts %d indices, want 4 and 9", len(cmd.meshVerts), len(cmd.meshInds))
	}
	// Hub vertex is the centroid, which is the node position.
	assertNear(t, "hub X", float64(cmd.meshVerts[0].DstX), 50)
	assertNear(t, "hub Y", float64(cmd.meshVerts[0].DstY), 50)
}

func TestZIndexOrdersSiblings(t *testing.T) {
	s := NewScene(100, 100)
	a := NewRect("a", 1, 1, ColorWhite)
	b := NewRect("b", 1, 1, ColorWhite)
	a.SetZIndex(2)
	s.Add(a, b)

	traverseScene(s)
	s.mergeSort()

	if len(s.commands) != 2 {
		t.Fatalf("commands = %d, want 2", len(s.commands))
	}
	if s.commands[0].treeOrder >= s.commands[1].treeOrder {
		t.Error("commands out of tree order")
	}
	// b was emitted first despite being added second.
	if s.commands[0].Transform != b.worldTransform {
		t.Error("lower ZIndex sibling should draw first")
	}
}

func TestRenderLayerSortIsStable(t *testing.T) {
	s := NewScene(100, 100)
	layers := []uint8{3, 1, 3, 0, 1, 2, 0}
	for _, l := range layers {
		r := NewRect("r", 1, 1, ColorWhite)
		r.RenderLayer = l
		s.Add(r)
	}

	traverseScene(s)
	s.mergeSort()

	for i := 1; i < len(s.commands); i++ {
		prev, cur := s.commands[i-1], s.commands[i]
		if prev.RenderLayer > cur.RenderLayer {
			t.Fatalf("layer %d before %d at %d", prev.RenderLayer, cur.RenderLayer, i)
		}
		if prev.RenderLayer == cur.RenderLayer && prev.treeOrder > cur.treeOrder {
			t.Fatalf("unstable order within layer %d at %d", cur.RenderLayer, i)
		}
	}
}

func TestCullingSkipsOffscreenNodes(t *testing.T) {
	s := NewScene(100, 100)
	near := NewRect("near", 10, 10, ColorWhite)
	near.SetPosition(50, 50)
	far := NewRect("far", 10, 10, ColorWhite)
	far.SetPosition(1000, 1000)
	s.Add(near, far)

	s.cullActive = true
	s.cullBounds = Rect{Width: 100, Height: 100}
	traverseScene(s)

	if len(s.commands) != 1 {
		t.Errorf("commands = %d, want 1 with culling", len(s.commands))
	}
}
