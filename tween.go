package arcade

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Prop names an animatable Node property.
type Prop uint8

const (
	PropX Prop = iota
	PropY
	PropScaleX
	PropScaleY
	PropAlpha
	PropRotation
	PropColorR
	PropColorG
	PropColorB
	PropColorA
	// PropAngle is Rotation in degrees.
	PropAngle
)

func (n *Node) prop(p Prop) float64 {
	switch p {
	case PropX:
		return n.X
	case PropY:
		return n.Y
	case PropScaleX:
		return n.ScaleX
	case PropScaleY:
		return n.ScaleY
	case PropAlpha:
		return n.Alpha
	case PropRotation:
		return n.Rotation
	case PropColorR:
		return n.Color.R
	case PropColorG:
		return n.Color.G
	case PropColorB:
		return n.Color.B
	case PropColorA:
		return n.Color.A
	case PropAngle:
		return n.Rotation * 180 / math.Pi
	}
	return 0
}

func (n *Node) setProp(p Prop, v float64) {
	switch p {
	case PropX:
		n.X = v
	case PropY:
		n.Y = v
	case PropScaleX:
		n.ScaleX = v
	case PropScaleY:
		n.ScaleY = v
	case PropAlpha:
		n.Alpha = v
	case PropRotation:
		n.Rotation = v
	case PropColorR:
		n.Color.R = v
	case PropColorG:
		n.Color.G = v
	case PropColorB:
		n.Color.B = v
	case PropColorA:
		n.Color.A = v
	case PropAngle:
		n.Rotation = v * math.Pi / 180
	}
	n.transformDirty = true
}

// TweenConfig describes a property animation on a node.
type TweenConfig struct {
	Target *Node
	To     map[Prop]float64
	// Duration of one forward pass in seconds.
	Duration float64
	// Ease defaults to ease.Linear.
	Ease ease.TweenFunc
	// Delay before the first pass starts.
	Delay float64
	// Yoyo plays each pass forward then back.
	Yoyo bool
	// Repeat is the number of extra cycles; -1 repeats forever.
	Repeat     int
	OnComplete func()
}

type tweenTrack struct {
	prop     Prop
	from, to float64
	tween    *gween.Tween
	finished bool
}

// Tween animates up to every Prop of one node. Values are written to the
// target each Update; a disposed target stops the tween immediately without
// invoking OnComplete.
type Tween struct {
	cfg     TweenConfig
	tracks  []tweenTrack
	delay   float64
	reverse bool
	repeats int
	done    bool
}

// NewTween creates an unmanaged tween. Call Update each frame or register it
// with a Tweens manager.
func NewTween(cfg TweenConfig) *Tween {
	if cfg.Ease == nil {
		cfg.Ease = ease.Linear
	}
	t := &Tween{cfg: cfg, delay: cfg.Delay, repeats: cfg.Repeat}
	if cfg.Target == nil {
		t.done = true
		return t
	}
	// Fixed order keeps updates deterministic.
	for p := PropX; p <= PropAngle; p++ {
		to, ok := cfg.To[p]
		if !ok {
			continue
		}
		t.tracks = append(t.tracks, tweenTrack{prop: p, from: cfg.Target.prop(p), to: to})
	}
	t.startPass()
	return t
}

func (t *Tween) startPass() {
	for i := range t.tracks {
		tr := &t.tracks[i]
		from, to := tr.from, tr.to
		if t.reverse {
			from, to = to, from
		}
		tr.tween = gween.New(float32(from), float32(to), float32(t.cfg.Duration), t.cfg.Ease)
		tr.finished = false
	}
}

// Done reports whether the tween has completed or been stopped.
func (t *Tween) Done() bool {
	return t.done
}

// Target returns the animated node.
func (t *Tween) Target() *Node {
	return t.cfg.Target
}

// Stop ends the tween where it is without invoking OnComplete.
func (t *Tween) Stop() {
	t.done = true
}

// Update advances the tween by dt seconds.
func (t *Tween) Update(dt float64) {
	if t.done {
		return
	}
	target := t.cfg.Target
	if target.IsDisposed() {
		t.done = true
		return
	}
	if t.delay > 0 {
		t.delay -= dt
		if t.delay > 0 {
			return
		}
		dt = -t.delay
		t.delay = 0
	}

	for {
		leftover, finished := t.advance(dt)
		if !finished || !t.nextPass() {
			return
		}
		// Time past the end of a pass carries into the next one.
		if leftover <= 0 || t.cfg.Duration <= 0 {
			return
		}
		dt = leftover
	}
}

// advance steps every unfinished track and reports whether the pass is over,
// along with the time left over past its end.
func (t *Tween) advance(dt float64) (float64, bool) {
	target := t.cfg.Target
	allDone := true
	var leftover float64
	for i := range t.tracks {
		tr := &t.tracks[i]
		if tr.finished {
			continue
		}
		v, finished := tr.tween.Update(float32(dt))
		target.setProp(tr.prop, float64(v))
		tr.finished = finished
		if !finished {
			allDone = false
			continue
		}
		leftover = max(leftover, float64(tr.tween.Overflow))
	}
	return leftover, allDone
}

// nextPass starts the yoyo or repeat pass that follows a finished one. It
// returns false once the tween has completed.
func (t *Tween) nextPass() bool {
	switch {
	case t.cfg.Yoyo && !t.reverse:
		t.reverse = true
	case t.repeats != 0:
		if t.repeats > 0 {
			t.repeats--
		}
		t.reverse = false
	default:
		t.done = true
		if t.cfg.OnComplete != nil {
			t.cfg.OnComplete()
		}
		return false
	}
	t.startPass()
	return true
}

// TweenPosition creates an unmanaged tween moving node to (toX, toY).
func TweenPosition(node *Node, toX, toY, duration float64, fn ease.TweenFunc) *Tween {
	return NewTween(TweenConfig{Target: node, To: map[Prop]float64{PropX: toX, PropY: toY}, Duration: duration, Ease: fn})
}

// TweenScale creates an unmanaged tween scaling node to (toSX, toSY).
func TweenScale(node *Node, toSX, toSY, duration float64, fn ease.TweenFunc) *Tween {
	return NewTween(TweenConfig{Target: node, To: map[Prop]float64{PropScaleX: toSX, PropScaleY: toSY}, Duration: duration, Ease: fn})
}

// TweenAlpha creates an unmanaged tween fading node to alpha.
func TweenAlpha(node *Node, to, duration float64, fn ease.TweenFunc) *Tween {
	return NewTween(TweenConfig{Target: node, To: map[Prop]float64{PropAlpha: to}, Duration: duration, Ease: fn})
}

// TweenRotation creates an unmanaged tween rotating node to the given angle.
func TweenRotation(node *Node, to, duration float64, fn ease.TweenFunc) *Tween {
	return NewTween(TweenConfig{Target: node, To: map[Prop]float64{PropRotation: to}, Duration: duration, Ease: fn})
}

// TweenColor creates an unmanaged tween of all four tint components.
func TweenColor(node *Node, to Color, duration float64, fn ease.TweenFunc) *Tween {
	return NewTween(TweenConfig{Target: node, To: map[Prop]float64{
		PropColorR: to.R, PropColorG: to.G, PropColorB: to.B, PropColorA: to.A,
	}, Duration: duration, Ease: fn})
}

// Tweens owns the tweens of one scene. Tweens added from a callback start on
// the next Update.
type Tweens struct {
	active  []*Tween
	pending []*Tween
	running bool
}

// Add creates a tween from cfg and starts running it.
func (m *Tweens) Add(cfg TweenConfig) *Tween {
	t := NewTween(cfg)
	m.Run(t)
	return t
}

// Run registers an existing tween.
func (m *Tweens) Run(t *Tween) {
	if m.running {
		m.pending = append(m.pending, t)
		return
	}
	m.active = append(m.active, t)
}

// MoveTo tweens node to (x, y) and calls onComplete when it arrives.
func (m *Tweens) MoveTo(node *Node, x, y, duration float64, fn ease.TweenFunc, onComplete func()) *Tween {
	return m.Add(TweenConfig{Target: node, To: map[Prop]float64{PropX: x, PropY: y}, Duration: duration, Ease: fn, OnComplete: onComplete})
}

// FadeTo tweens node's alpha.
func (m *Tweens) FadeTo(node *Node, alpha, duration float64) *Tween {
	return m.Add(TweenConfig{Target: node, To: map[Prop]float64{PropAlpha: alpha}, Duration: duration})
}

// KillTweensOf stops every tween targeting node.
func (m *Tweens) KillTweensOf(node *Node) {
	for _, t := range m.active {
		if t.cfg.Target == node {
			t.Stop()
		}
	}
	for _, t := range m.pending {
		if t.cfg.Target == node {
			t.Stop()
		}
	}
}

// IsTweening reports whether a live tween targets node.
func (m *Tweens) IsTweening(node *Node) bool {
	for _, t := range m.active {
		if !t.done && t.cfg.Target == node {
			return true
		}
	}
	return false
}

// Len returns the number of live tweens.
func (m *Tweens) Len() int {
	n := len(m.pending)
	for _, t := range m.active {
		if !t.done {
			n++
		}
	}
	return n
}

// Update advances every tween and drops finished ones.
func (m *Tweens) Update(dt float64) {
	m.running = true
	for _, t := range m.active {
		t.Update(dt)
	}
	m.running = false

	live := m.active[:0]
	for _, t := range m.active {
		if !t.done {
			live = append(live, t)
		}
	}
	clear(m.active[len(live):])
	m.active = append(live, m.pending...)
	clear(m.pending)
	m.pending = m.pending[:0]
}
