package physics

import "github.com/phanxgames/arcade"

// Group is a pool of bodies that share a factory. Killed members are hidden
// and disabled, then handed out again by Get.
type Group struct {
	// MaxSize caps the pool; zero or less means unbounded.
	MaxSize int
	// Circle, when positive, gives new members a circular body of that radius.
	Circle float64

	world   *World
	parent  *arcade.Node
	create  func() *arcade.Node
	members []*Body
}

// NewGroup creates a pool whose members are built by create and attached to
// parent.
func (w *World) NewGroup(parent *arcade.Node, maxSize int, create func() *arcade.Node) *Group {
	return &Group{MaxSize: maxSize, world: w, parent: parent, create: create}
}

// Get activates a member at (x, y), reusing a dead one when possible.
// Returns nil when the pool is full and every member is active.
func (g *Group) Get(x, y float64) *Body {
	for _, b := range g.members {
		if b.Node.IsDisposed() {
			continue
		}
		if !b.Enabled {
			g.revive(b, x, y)
			return b
		}
	}
	if g.MaxSize > 0 && g.liveMembers() >= g.MaxSize {
		return nil
	}
	n := g.create()
	g.parent.AddChild(n)
	b := g.world.Enable(n)
	if g.Circle > 0 {
		b.SetCircle(g.Circle)
	}
	g.members = append(g.members, b)
	b.SetPosition(x, y)
	return b
}

func (g *Group) revive(b *Body, x, y float64) {
	b.Stop()
	b.Enabled = true
	b.Node.Visible = true
	b.Node.Alpha = 1
	b.SetPosition(x, y)
}

func (g *Group) liveMembers() int {
	n := 0
	for _, b := range g.members {
		if !b.Node.IsDisposed() {
			n++
		}
	}
	return n
}

// Kill disables and hides b so Get can reuse it.
func (g *Group) Kill(b *Body) {
	b.Enabled = false
	b.Stop()
	b.Node.Visible = false
}

// KillAll kills every member.
func (g *Group) KillAll() {
	for _, b := range g.members {
		g.Kill(b)
	}
}

// CountActive returns the number of enabled members.
func (g *Group) CountActive() int {
	n := 0
	for _, b := range g.members {
		if b.Active() {
			n++
		}
	}
	return n
}

// Len returns the pool size including dead members.
func (g *Group) Len() int {
	return g.liveMembers()
}

// Each calls fn for every active member.
func (g *Group) Each(fn func(*Body)) {
	for _, b := range g.members {
		if b.Active() {
			fn(b)
		}
	}
}

// EachBody implements Collidable.
func (g *Group) EachBody(fn func(*Body)) {
	g.Each(fn)
}
