package arcade

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestLocalTransform(t *testing.T) {
	tests := []struct {
		name  string
		setup func(n *Node)
		want  [6]float64
	}{
		{"identity", func(n *Node) {}, identityTransform},
		{"translation", func(n *Node) { n.X, n.Y = 10, 20 }, [6]float64{1, 0, 0, 1, 10, 20}},
		{"scale", func(n *Node) { n.ScaleX, n.ScaleY = 2, 3 }, [6]float64{2, 0, 0, 3, 0, 0}},
		{"rotate 90", func(n *Node) { n.Rotation = math.Pi / 2 }, [6]float64{0, 1, -1, 0, 0, 0}},
		{"pixel pivot", func(n *Node) { n.PivotX, n.PivotY = 5, 5; n.X, n.Y = 5, 5 }, identityTransform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewContainer("n")
			tt.setup(n)
			assertMatrix(t, "local", computeLocalTransform(n), tt.want)
		})
	}
}

func TestSpritePivotIsFractional(t *testing.T) {
	// A 1x1 white pixel scaled to 40x20 with a centred pivot.
	n := NewRect("r", 40, 20, ColorWhite)
	n.SetPosition(100, 50)
	updateWorldTransform(n, identityTransform, 1, false)

	x, y := n.LocalToWorld(0, 0)
	assertNear(t, "top-left x", x, 80)
	assertNear(t, "top-left y", y, 40)

	wp := n.WorldPosition()
	assertNear(t, "WorldPosition.X", wp.X, 100)
	assertNear(t, "WorldPosition.Y", wp.Y, 50)
}

func TestMultiplyAffineTranslations(t *testing.T) {
	a := [6]float64{1, 0, 0, 1, 10, 0}
	b := [6]float64{1, 0, 0, 1, 0, 5}
	assertMatrix(t, "a*b", multiplyAffine(a, b), [6]float64{1, 0, 0, 1, 10, 5})
}

func TestInvertAffine(t *testing.T) {
	m := [6]float64{2, 0.5, -0.3, 1.5, 7, -4}
	assertMatrix(t, "m*inv", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingularReturnsIdentity(t *testing.T) {
	assertMatrix(t, "inv", invertAffine([6]float64{0, 0, 0, 0, 5, 5}), identityTransform)
}

func TestWorldTransformParentChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.X = 100
	child.X = 10

	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "parent.tx", parent.worldTransform[4], 100)
	assertNear(t, "child.tx", child.worldTransform[4], 110)
}

func TestAlphaPropagation(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.Alpha = 0.5
	child.Alpha = 0.5

	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "child.worldAlpha", child.worldAlpha, 0.25)
}

func TestDirtyFlagSkipsClean(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	child.X = 10
	updateWorldTransform(parent, identityTransform, 1.0, false)

	child.X = 999 // direct write, no dirty flag
	updateWorldTransform(parent, identityTransform, 1.0, false)
	assertNear(t, "child.tx (stale)", child.worldTransform[4], 10)

	child.MarkDirty()
	updateWorldTransform(parent, identityTransform, 1.0, false)
	assertNear(t, "child.tx (refreshed)", child.worldTransform[4], 999)
}

func TestParentRecomputedPropagates(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	child.X = 10
	updateWorldTransform(parent, identityTransform, 1.0, false)

	parent.SetPosition(200, 0)
	updateWorldTransform(parent, identityTransform, 1.0, false)

	assertNear(t, "child.tx", child.worldTransform[4], 210)
}

func TestWorldToLocalRoundtrip(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.SetPosition(50, 30)
	parent.SetRotation(0.7)
	child.SetScale(2, 0.5)
	child.SetPosition(10, -4)
	updateWorldTransform(parent, identityTransform, 1.0, false)

	wx, wy := child.LocalToWorld(3, 9)
	lx, ly := child.WorldToLocal(wx, wy)
	assertNear(t, "lx", lx, 3)
	assertNear(t, "ly", ly, 9)
}

func TestSettersMarkDirty(t *testing.T) {
	setters := map[string]func(n *Node){
		"SetPosition": func(n *Node) { n.SetPosition(1, 2) },
		"Move":        func(n *Node) { n.Move(1, 0) },
		"SetScale":    func(n *Node) { n.SetScale(2, 2) },
		"SetRotation": func(n *Node) { n.SetRotation(1) },
		"SetPivot":    func(n *Node) { n.SetPivot(1, 1) },
		"SetAlpha":    func(n *Node) { n.SetAlpha(0.5) },
	}
	for name, set := range setters {
		n := NewContainer("n")
		n.transformDirty = false
		set(n)
		if !n.transformDirty {
			t.Errorf("%s did not mark the node dirty", name)
		}
	}
}
