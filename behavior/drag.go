package behavior

import (
	"github.com/phanxgames/arcade"
	"github.com/tanema/gween/ease"
)

// DragReturn makes a node draggable and tweens it back to where the drag
// began once it is released.
type DragReturn struct {
	Duration float64
	Ease     ease.TweenFunc
	// OnReturned runs when the node is back at its origin.
	OnReturned func(n *arcade.Node)

	node    *arcade.Node
	tweens  *arcade.Tweens
	origin  arcade.Vec2
	returns int
}

// NewDragReturn wires n's drag callbacks. Existing OnDragStart and
// OnDragEnd callbacks still run first.
func NewDragReturn(tweens *arcade.Tweens, n *arcade.Node, duration float64) *DragReturn {
	d := &DragReturn{Duration: duration, Ease: ease.OutBack, node: n, tweens: tweens, origin: n.Position()}
	n.Interactable = true
	n.Draggable = true

	prevStart, prevEnd := n.OnDragStart, n.OnDragEnd
	n.OnDragStart = func(ctx arcade.DragContext) {
		if prevStart != nil {
			prevStart(ctx)
		}
		// A node grabbed mid-return keeps its original home.
		if !d.Returning() {
			d.origin = n.Position()
		}
		d.tweens.KillTweensOf(n)
	}
	n.OnDragEnd = func(ctx arcade.DragContext) {
		if prevEnd != nil {
			prevEnd(ctx)
		}
		d.tweens.MoveTo(n, d.origin.X, d.origin.Y, d.Duration, d.Ease, func() {
			d.returns++
			if d.OnReturned != nil {
				d.OnReturned(n)
			}
		})
	}
	return d
}

// Origin returns the position the node returns to.
func (d *DragReturn) Origin() arcade.Vec2 {
	return d.origin
}

// Returning reports whether the return tween is running.
func (d *DragReturn) Returning() bool {
	return d.tweens.IsTweening(d.node)
}

// Returns counts completed returns.
func (d *DragReturn) Returns() int {
	return d.returns
}
