package physics

import (
	"math"

	"github.com/phanxgames/arcade"
)

// manifold is the contact between two bodies: a unit normal pointing from a
// to b and the penetration depth along it.
type manifold struct {
	nx, ny float64
	depth  float64
}

// Overlaps reports whether the shapes of a and b intersect.
func Overlaps(a, b *Body) bool {
	_, ok := contact(a, b)
	return ok
}

func contact(a, b *Body) (manifold, bool) {
	switch {
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		return circleCircle(a.Position(), a.Radius, b.Position(), b.Radius)
	case a.Shape == ShapeCircle:
		return circleRect(a.Position(), a.Radius, b.Bounds())
	case b.Shape == ShapeCircle:
		m, ok := circleRect(b.Position(), b.Radius, a.Bounds())
		m.nx, m.ny = -m.nx, -m.ny
		return m, ok
	}
	return rectRect(a.Bounds(), b.Bounds())
}

func circleCircle(pa arcade.Vec2, ra float64, pb arcade.Vec2, rb float64) (manifold, bool) {
	dx, dy := pb.X-pa.X, pb.Y-pa.Y
	dist := math.Hypot(dx, dy)
	overlap := ra + rb - dist
	if overlap <= 0 {
		return manifold{}, false
	}
	if dist == 0 {
		return manifold{nx: 1, depth: overlap}, true
	}
	return manifold{nx: dx / dist, ny: dy / dist, depth: overlap}, true
}

// circleRect returns the contact from a circle to a rectangle.
func circleRect(c arcade.Vec2, r float64, box arcade.Rect) (manifold, bool) {
	qx := clamp(c.X, box.X, box.Right())
	qy := clamp(c.Y, box.Y, box.Bottom())
	dx, dy := qx-c.X, qy-c.Y
	dist := math.Hypot(dx, dy)
	if dist > 0 {
		if dist >= r {
			return manifold{}, false
		}
		return manifold{nx: dx / dist, ny: dy / dist, depth: r - dist}, true
	}
	// Centre inside the box: push out along the shallowest axis.
	m, _ := rectRect(arcade.Rect{X: c.X - r, Y: c.Y - r, Width: 2 * r, Height: 2 * r}, box)
	return m, true
}

func rectRect(a, b arcade.Rect) (manifold, bool) {
	ox := math.Min(a.Right(), b.Right()) - math.Max(a.X, b.X)
	oy := math.Min(a.Bottom(), b.Bottom()) - math.Max(a.Y, b.Y)
	if ox <= 0 || oy <= 0 {
		return manifold{}, false
	}
	ca, cb := a.Center(), b.Center()
	if ox < oy {
		nx := 1.0
		if cb.X < ca.X {
			nx = -1
		}
		return manifold{nx: nx, depth: ox}, true
	}
	ny := 1.0
	if cb.Y < ca.Y {
		ny = -1
	}
	return manifold{ny: ny, depth: oy}, true
}

// separate pushes a and b apart in proportion to their inverse masses and
// exchanges momentum along the normal. Two immovable bodies are left alone.
func separate(a, b *Body, m manifold) bool {
	ia, ib := a.invMass(), b.invMass()
	total := ia + ib
	if total == 0 {
		return false
	}
	push := m.depth / total
	a.Node.Move(-m.nx*push*ia, -m.ny*push*ia)
	b.Node.Move(m.nx*push*ib, m.ny*push*ib)

	markTouching(a, b, m)

	rv := (b.Velocity.X-a.Velocity.X)*m.nx + (b.Velocity.Y-a.Velocity.Y)*m.ny
	if rv > 0 {
		return true
	}
	e := math.Max(restitution(a, m), restitution(b, m))
	j := -(1 + e) * rv / total
	a.Velocity.X -= j * ia * m.nx
	a.Velocity.Y -= j * ia * m.ny
	b.Velocity.X += j * ib * m.nx
	b.Velocity.Y += j * ib * m.ny
	return true
}

// restitution picks the body's Bounce for the dominant normal axis.
func restitution(b *Body, m manifold) float64 {
	if math.Abs(m.nx) >= math.Abs(m.ny) {
		return b.Bounce.X
	}
	return b.Bounce.Y
}

func markTouching(a, b *Body, m manifold) {
	if math.Abs(m.nx) >= math.Abs(m.ny) {
		if m.nx > 0 {
			a.Touching.Right, b.Touching.Left = true, true
		} else {
			a.Touching.Left, b.Touching.Right = true, true
		}
		return
	}
	if m.ny > 0 {
		a.Touching.Down, b.Touching.Up = true, true
	} else {
		a.Touching.Up, b.Touching.Down = true, true
	}
}
