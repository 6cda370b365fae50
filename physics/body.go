// Package physics is arcade-style physics for scene nodes: velocity
// integration, world-bound bouncing, and AABB/circle separation between
// registered colliders.
//
// A Body drives its node's local X and Y, which are treated as the body's
// centre. Bodies are expected to live directly under the scene root or under
// an untransformed container.
package physics

import (
	"math"

	"github.com/phanxgames/arcade"
)

// Shape is a body's collision shape.
type Shape uint8

const (
	ShapeRect Shape = iota
	ShapeCircle
)

// Sides records contact on each side of a body during the last step.
type Sides struct {
	Up, Down, Left, Right bool
}

// Any reports whether any side is set.
func (s Sides) Any() bool {
	return s.Up || s.Down || s.Left || s.Right
}

// Body is the physics state of one node.
type Body struct {
	Node *arcade.Node

	Velocity     arcade.Vec2
	Acceleration arcade.Vec2
	// Drag slows each axis by this many px/s² while it has no acceleration.
	Drag arcade.Vec2
	// Bounce is the restitution per axis, applied on world-bound and body
	// collisions.
	Bounce arcade.Vec2
	// MaxVelocity caps each axis when non-zero.
	MaxVelocity arcade.Vec2
	// MaxSpeed caps the velocity magnitude when non-zero.
	MaxSpeed float64
	Mass     float64

	Shape         Shape
	Width, Height float64
	Radius        float64

	Immovable          bool
	AllowGravity       bool
	CollideWorldBounds bool
	Enabled            bool

	// OnWorldBounds runs when the body hits the world edge.
	OnWorldBounds func(b *Body, blocked Sides)

	// Blocked is set by world-bound contact, Touching by body contact. Both
	// reset at the start of every step.
	Blocked  Sides
	Touching Sides

	world *World
}

func newBody(n *arcade.Node) *Body {
	w, h := n.DisplaySize()
	return &Body{
		Node:         n,
		Mass:         1,
		Shape:        ShapeRect,
		Width:        w,
		Height:       h,
		AllowGravity: true,
		Enabled:      true,
	}
}

// SetCircle switches the body to a circle of radius r.
func (b *Body) SetCircle(r float64) *Body {
	b.Shape = ShapeCircle
	b.Radius = r
	b.Width, b.Height = 2*r, 2*r
	return b
}

// SetSize switches the body to a w x h rectangle.
func (b *Body) SetSize(w, h float64) *Body {
	b.Shape = ShapeRect
	b.Width, b.Height = w, h
	return b
}

// SetVelocity sets both velocity components.
func (b *Body) SetVelocity(vx, vy float64) *Body {
	b.Velocity = arcade.Vec2{X: vx, Y: vy}
	return b
}

// SetBounce sets restitution on both axes.
func (b *Body) SetBounce(x, y float64) *Body {
	b.Bounce = arcade.Vec2{X: x, Y: y}
	return b
}

// Position returns the body centre.
func (b *Body) Position() arcade.Vec2 {
	return arcade.Vec2{X: b.Node.X, Y: b.Node.Y}
}

// SetPosition moves the body centre.
func (b *Body) SetPosition(x, y float64) {
	b.Node.SetPosition(x, y)
}

// Speed returns the velocity magnitude.
func (b *Body) Speed() float64 {
	return b.Velocity.Len()
}

// Bounds returns the body's axis-aligned box.
func (b *Body) Bounds() arcade.Rect {
	return arcade.Rect{
		X:      b.Node.X - b.Width/2,
		Y:      b.Node.Y - b.Height/2,
		Width:  b.Width,
		Height: b.Height,
	}
}

// Active reports whether the body takes part in simulation.
func (b *Body) Active() bool {
	return b.Enabled && b.Node != nil && !b.Node.IsDisposed()
}

// Stop zeroes velocity and acceleration.
func (b *Body) Stop() {
	b.Velocity = arcade.Vec2{}
	b.Acceleration = arcade.Vec2{}
}

func (b *Body) invMass() float64 {
	if b.Immovable || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// integrate advances velocity and position by dt.
func (b *Body) integrate(dt float64, gravity arcade.Vec2) {
	if b.Immovable {
		b.Node.Move(b.Velocity.X*dt, b.Velocity.Y*dt)
		return
	}
	ax, ay := b.Acceleration.X, b.Acceleration.Y
	if b.AllowGravity {
		ax += gravity.X
		ay += gravity.Y
	}
	b.Velocity.X = applyDrag(b.Velocity.X+ax*dt, b.Acceleration.X, b.Drag.X, dt)
	b.Velocity.Y = applyDrag(b.Velocity.Y+ay*dt, b.Acceleration.Y, b.Drag.Y, dt)

	if b.MaxVelocity.X > 0 {
		b.Velocity.X = clamp(b.Velocity.X, -b.MaxVelocity.X, b.MaxVelocity.X)
	}
	if b.MaxVelocity.Y > 0 {
		b.Velocity.Y = clamp(b.Velocity.Y, -b.MaxVelocity.Y, b.MaxVelocity.Y)
	}
	if b.MaxSpeed > 0 {
		if s := b.Velocity.Len(); s > b.MaxSpeed {
			b.Velocity = b.Velocity.Scale(b.MaxSpeed / s)
		}
	}
	b.Node.Move(b.Velocity.X*dt, b.Velocity.Y*dt)
}

func applyDrag(v, accel, drag, dt float64) float64 {
	if accel != 0 || drag <= 0 {
		return v
	}
	d := drag * dt
	switch {
	case v > d:
		return v - d
	case v < -d:
		return v + d
	}
	return 0
}

// collideBounds keeps the body inside r, reflecting velocity scaled by
// Bounce. Reports the blocked sides.
func (b *Body) collideBounds(r arcade.Rect) Sides {
	var s Sides
	hw, hh := b.Width/2, b.Height/2
	x, y := b.Node.X, b.Node.Y
	if x-hw < r.X {
		x = r.X + hw
		b.Velocity.X = math.Abs(b.Velocity.X) * b.Bounce.X
		s.Left = true
	} else if x+hw > r.Right() {
		x = r.Right() - hw
		b.Velocity.X = -math.Abs(b.Velocity.X) * b.Bounce.X
		s.Right = true
	}
	if y-hh < r.Y {
		y = r.Y + hh
		b.Velocity.Y = math.Abs(b.Velocity.Y) * b.Bounce.Y
		s.Up = true
	} else if y+hh > r.Bottom() {
		y = r.Bottom() - hh
		b.Velocity.Y = -math.Abs(b.Velocity.Y) * b.Bounce.Y
		s.Down = true
	}
	if s.Any() {
		b.Node.SetPosition(x, y)
	}
	return s
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
