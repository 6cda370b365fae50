package physics

import (
	"slices"

	"github.com/phanxgames/arcade"
)

// Collidable is anything whose bodies can be tested: a *Body or a *Group.
type Collidable interface {
	EachBody(fn func(*Body))
}

// EachBody implements Collidable for a single body.
func (b *Body) EachBody(fn func(*Body)) {
	if b.Active() {
		fn(b)
	}
}

// Collider is a registered pair test run after integration every step.
type Collider struct {
	a, b     Collidable
	separate bool
	callback func(a, b *Body)
	// ProcessCallback, when set, vetoes a pair before separation.
	ProcessCallback func(a, b *Body) bool
	Active          bool
	world           *World
}

// Remove unregisters the collider.
func (c *Collider) Remove() {
	c.Active = false
	c.world.colliders = slices.DeleteFunc(c.world.colliders, func(x *Collider) bool { return x == c })
}

// World owns bodies and steps them as a scene system.
type World struct {
	Gravity arcade.Vec2
	Bounds  arcade.Rect
	// TimeScale multiplies dt each step. Zero pauses the world.
	TimeScale float64
	// Paused stops integration and collision processing.
	Paused bool

	bodies    []*Body
	colliders []*Collider
	hits      int
}

// NewWorld creates a world with the given bounds and no gravity.
func NewWorld(bounds arcade.Rect) *World {
	return &World{Bounds: bounds, TimeScale: 1}
}

// Attach creates a world for the scene's bounds and registers it as a
// system.
func Attach(s *arcade.Scene) *World {
	w := NewWorld(s.Bounds())
	s.AddSystem(w)
	return w
}

// Enable gives n a rectangular body sized from its display size.
func (w *World) Enable(n *arcade.Node) *Body {
	b := newBody(n)
	b.world = w
	w.bodies = append(w.bodies, b)
	return b
}

// EnableCircle gives n a circular body.
func (w *World) EnableCircle(n *arcade.Node, radius float64) *Body {
	return w.Enable(n).SetCircle(radius)
}

// Remove drops b from the world.
func (w *World) Remove(b *Body) {
	w.bodies = slices.DeleteFunc(w.bodies, func(x *Body) bool { return x == b })
	b.world = nil
}

// Bodies returns the world's bodies. The slice MUST NOT be mutated.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Collisions returns the number of separating contacts resolved since the
// world was created.
func (w *World) Collisions() int {
	return w.hits
}

// AddCollider separates overlapping bodies of a and b every step, then calls
// cb for each contact. a and b may be the same group.
func (w *World) AddCollider(a, b Collidable, cb func(a, b *Body)) *Collider {
	return w.addCollider(a, b, true, cb)
}

// AddOverlap calls cb for every overlapping pair without separating them.
func (w *World) AddOverlap(a, b Collidable, cb func(a, b *Body)) *Collider {
	return w.addCollider(a, b, false, cb)
}

func (w *World) addCollider(a, b Collidable, separate bool, cb func(a, b *Body)) *Collider {
	c := &Collider{a: a, b: b, separate: separate, callback: cb, Active: true, world: w}
	w.colliders = append(w.colliders, c)
	return c
}

// Update implements arcade.System.
func (w *World) Update(dt float64) {
	w.Step(dt)
}

// Step integrates every active body, resolves world bounds, then runs the
// registered colliders in order.
func (w *World) Step(dt float64) {
	if w.Paused {
		return
	}
	dt *= w.TimeScale
	if dt <= 0 {
		return
	}
	w.bodies = slices.DeleteFunc(w.bodies, func(b *Body) bool { return b.Node == nil || b.Node.IsDisposed() })

	for _, b := range w.bodies {
		b.Blocked, b.Touching = Sides{}, Sides{}
		if !b.Active() {
			continue
		}
		b.integrate(dt, w.Gravity)
		if b.CollideWorldBounds {
			if s := b.collideBounds(w.Bounds); s.Any() {
				b.Blocked = s
				if b.OnWorldBounds != nil {
					b.OnWorldBounds(b, s)
				}
			}
		}
	}

	// Callbacks may register colliders; they run from the next step.
	for _, c := range slices.Clone(w.colliders) {
		if c.Active {
			w.run(c)
		}
	}
}

func (w *World) run(c *Collider) {
	var as, bs []*Body
	c.a.EachBody(func(b *Body) { as = append(as, b) })
	same := c.a == c.b
	if !same {
		c.b.EachBody(func(b *Body) { bs = append(bs, b) })
	}
	for i, a := range as {
		others := bs
		if same {
			others = as[i+1:]
		}
		for _, b := range others {
			if a == b || !a.Active() || !b.Active() {
				continue
			}
			if c.separate {
				if w.collide(c, a, b) && c.callback != nil {
					c.callback(a, b)
				}
			} else if Overlaps(a, b) && (c.ProcessCallback == nil || c.ProcessCallback(a, b)) && c.callback != nil {
				c.callback(a, b)
			}
		}
	}
}

func (w *World) collide(c *Collider, a, b *Body) bool {
	m, ok := contact(a, b)
	if !ok {
		return false
	}
	if c.ProcessCallback != nil && !c.ProcessCallback(a, b) {
		return false
	}
	if !separate(a, b, m) {
		return false
	}
	w.hits++
	return true
}

// Collide separates a and b immediately if they overlap.
func (w *World) Collide(a, b *Body) bool {
	m, ok := contact(a, b)
	if !ok || !separate(a, b, m) {
		return false
	}
	w.hits++
	return true
}
