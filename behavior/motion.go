package behavior

import (
	"math"

	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/physics"
)

// SpeedKeeper renormalises a body's speed to Target when it drifts by more
// than Tolerance, keeping its direction.
type SpeedKeeper struct {
	Target    float64
	Tolerance float64
}

// Apply corrects b and reports whether a correction was made. A stationary
// body has no direction and is left alone.
func (k SpeedKeeper) Apply(b *physics.Body) bool {
	s := b.Speed()
	if s == 0 || math.Abs(s-k.Target) <= k.Tolerance {
		return false
	}
	b.Velocity = b.Velocity.Scale(k.Target / s)
	return true
}

// ApplyAll corrects every active member of g and returns the number fixed.
func (k SpeedKeeper) ApplyAll(g physics.Collidable) int {
	n := 0
	g.EachBody(func(b *physics.Body) {
		if k.Apply(b) {
			n++
		}
	})
	return n
}

// Wrap moves n to the opposite edge once it is more than margin outside
// bounds on an axis. Reports whether it moved.
func Wrap(n *arcade.Node, bounds arcade.Rect, margin float64) bool {
	x, y := n.X, n.Y
	left, right := bounds.X-margin, bounds.Right()+margin
	top, bottom := bounds.Y-margin, bounds.Bottom()+margin
	switch {
	case x < left:
		x = right
	case x > right:
		x = left
	}
	switch {
	case y < top:
		y = bottom
	case y > bottom:
		y = top
	}
	if x == n.X && y == n.Y {
		return false
	}
	n.SetPosition(x, y)
	return true
}

// Bounce reflects b's velocity off the edges of bounds and clamps it inside.
// Reports whether any edge was hit.
func Bounce(b *physics.Body, bounds arcade.Rect) bool {
	r := b.Bounds()
	x, y := b.Node.X, b.Node.Y
	hit := false
	if r.X < bounds.X {
		x += bounds.X - r.X
		b.Velocity.X = math.Abs(b.Velocity.X)
		hit = true
	} else if r.Right() > bounds.Right() {
		x -= r.Right() - bounds.Right()
		b.Velocity.X = -math.Abs(b.Velocity.X)
		hit = true
	}
	if r.Y < bounds.Y {
		y += bounds.Y - r.Y
		b.Velocity.Y = math.Abs(b.Velocity.Y)
		hit = true
	} else if r.Bottom() > bounds.Bottom() {
		y -= r.Bottom() - bounds.Bottom()
		b.Velocity.Y = -math.Abs(b.Velocity.Y)
		hit = true
	}
	if hit {
		b.SetPosition(x, y)
	}
	return hit
}
