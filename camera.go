package arcade

import (
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// overlay is a timed full-viewport color effect.
type overlay struct {
	color      Color
	duration   float64
	elapsed    float64
	from, to   float64
	hold       bool // keep the final alpha after completion
	active     bool
	onComplete func()
}

func (o *overlay) alpha() float64 {
	if !o.active && !o.hold {
		return 0
	}
	if o.duration <= 0 {
		return o.to
	}
	t := math.Min(o.elapsed/o.duration, 1)
	return o.from + (o.to-o.from)*t
}

func (o *overlay) update(dt float64) {
	if !o.active {
		return
	}
	o.elapsed += dt
	if o.elapsed >= o.duration {
		o.elapsed = o.duration
		o.active = false
		if o.onComplete != nil {
			fn := o.onComplete
			o.onComplete = nil
			fn()
		}
	}
}

// Camera controls the view into the scene: position, zoom, rotation, and viewport.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
	// Background, when its alpha is non-zero, fills the viewport before drawing.
	Background Color

	// CullEnabled skips nodes whose world AABB doesn't intersect the
	// camera's visible bounds.
	CullEnabled bool

	followTarget  *Node
	followOffsetX float64
	followOffsetY float64
	followLerp    float64

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	Bounds        Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool
	viewKey       viewKey

	scrollTween *scrollAnim

	shakeDuration  float64
	shakeElapsed   float64
	shakeIntensity float64
	shakeX, shakeY float64
	rng            *rand.Rand

	flash overlay
	fade  overlay
}

// viewKey captures the inputs of the view matrix so direct field writes are
// noticed without an explicit MarkDirty.
type viewKey struct {
	x, y, zoom, rot, sx, sy float64
	vp                      Rect
}

// newCamera creates a Camera with default values and the given viewport.
func newCamera(viewport Rect, rng *rand.Rand) *Camera {
	return &Camera{
		Zoom:        1.0,
		Viewport:    viewport,
		CullEnabled: true,
		dirty:       true,
		rng:         rng,
		X:           viewport.Width / 2,
		Y:           viewport.Height / 2,
	}
}

// Follow makes the camera track a target node with the given offset and lerp factor.
// A lerp of 1.0 snaps immediately; lower values give smoother following.
func (c *Camera) Follow(node *Node, offsetX, offsetY, lerp float64) {
	c.followTarget = node
	c.followOffsetX = offsetX
	c.followOffsetY = offsetY
	c.followLerp = lerp
}

// Unfollow stops tracking the current target node.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// Following returns the followed node, or nil.
func (c *Camera) Following() *Node {
	return c.followTarget
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *Camera) ScrollTo(x, y, duration float64, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), float32(duration), easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), float32(duration), easeFn),
	}
}

// CenterOn moves the camera immediately.
func (c *Camera) CenterOn(x, y float64) {
	c.X, c.Y = x, y
	c.scrollTween = nil
	if c.BoundsEnabled {
		c.clampToBounds()
	}
	c.dirty = true
}

// SetZoom sets the zoom factor.
func (c *Camera) SetZoom(z float64) {
	c.Zoom = z
	c.dirty = true
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// Shake jitters the view for duration seconds. intensity is the maximum
// offset as a fraction of the viewport size.
func (c *Camera) Shake(duration, intensity float64) {
	c.shakeDuration = duration
	c.shakeElapsed = 0
	c.shakeIntensity = intensity
}

// Shaking reports whether a shake is in progress.
func (c *Camera) Shaking() bool {
	return c.shakeElapsed < c.shakeDuration
}

// ShakeOffset returns the current view jitter in screen pixels.
func (c *Camera) ShakeOffset() (float64, float64) {
	return c.shakeX, c.shakeY
}

// Flash fills the viewport with clr and fades it out over duration seconds.
func (c *Camera) Flash(duration float64, clr Color) {
	c.flash = overlay{color: clr, duration: duration, from: 1, to: 0, active: true}
}

// Fade fades the viewport to clr over duration seconds and holds it there.
func (c *Camera) Fade(duration float64, clr Color, onComplete func()) {
	c.fade = overlay{color: clr, duration: duration, from: 0, to: 1, active: true, hold: true, onComplete: onComplete}
}

// FadeIn fades from clr back to the scene over duration seconds.
func (c *Camera) FadeIn(duration float64, clr Color, onComplete func()) {
	c.fade = overlay{color: clr, duration: duration, from: 1, to: 0, active: true, onComplete: onComplete}
}

// FlashAlpha returns the current flash overlay opacity.
func (c *Camera) FlashAlpha() float64 {
	return c.flash.alpha()
}

// FadeAlpha returns the current fade overlay opacity.
func (c *Camera) FadeAlpha() float64 {
	return c.fade.alpha()
}

// ClampToBounds immediately clamps the camera position so the visible area
// stays within Bounds. No-op if BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// update advances follow, scroll, effects, and bounds clamping.
func (c *Camera) update(dt float64) {
	if c.followTarget != nil {
		if c.followTarget.IsDisposed() {
			c.followTarget = nil
		} else {
			p := c.followTarget.WorldPosition()
			c.X += (p.X + c.followOffsetX - c.X) * c.followLerp
			c.Y += (p.Y + c.followOffsetY - c.Y) * c.followLerp
		}
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(float32(dt))
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(float32(dt))
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}

	if c.shakeElapsed < c.shakeDuration {
		c.shakeElapsed += dt
		if c.shakeElapsed >= c.shakeDuration {
			c.shakeX, c.shakeY = 0, 0
		} else {
			c.shakeX = (c.rng.Float64()*2 - 1) * c.shakeIntensity * c.Viewport.Width
			c.shakeY = (c.rng.Float64()*2 - 1) * c.shakeIntensity * c.Viewport.Height
		}
	}
	c.flash.update(dt)
	c.fade.update(dt)
}

// clampToBounds restricts camera position so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// Bounds smaller than the visible area center the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(cx+shake, cy+shake) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) computeViewMatrix() [6]float64 {
	key := viewKey{c.X, c.Y, c.Zoom, c.Rotation, c.shakeX, c.shakeY, c.Viewport}
	if !c.dirty && key == c.viewKey {
		return c.viewMatrix
	}
	c.dirty = false
	c.viewKey = key

	cx := c.Viewport.X + c.Viewport.Width/2 + c.shakeX
	cy := c.Viewport.Y + c.Viewport.Height/2 + c.shakeY

	sin, cos := math.Sincos(-c.Rotation)
	z := c.Zoom

	a := z * cos
	b := -z * sin
	cc := z * sin
	d := z * cos
	tx := cx + z*(-cos*c.X+sin*c.Y)
	ty := cy + z*(-sin*c.X-cos*c.Y)

	c.viewMatrix = [6]float64{a, cc, b, d, tx, ty}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's visible
// area in world space.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	inv := c.invViewMatrix
	vx, vy := c.Viewport.X, c.Viewport.Y
	vr, vb := vx+c.Viewport.Width, vy+c.Viewport.Height
	return boundsOfPoints(
		pt(transformPoint(inv, vx, vy)),
		pt(transformPoint(inv, vr, vy)),
		pt(transformPoint(inv, vr, vb)),
		pt(transformPoint(inv, vx, vb)),
	)
}

// MarkDirty forces a recomputation of the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// drawEffects paints flash and fade overlays over the viewport.
func (c *Camera) drawEffects(target *ebiten.Image) {
	vp := c.Viewport
	for _, o := range []*overlay{&c.fade, &c.flash} {
		a := o.alpha()
		if a <= 0 {
			continue
		}
		clr := o.color.WithAlpha(o.color.A * a).NRGBA()
		vector.DrawFilledRect(target, float32(vp.X), float32(vp.Y), float32(vp.Width), float32(vp.Height), clr, false)
	}
}

func pt(x, y float64) Vec2 { return Vec2{x, y} }

func boundsOfPoints(p0, p1, p2, p3 Vec2) Rect {
	minX := math.Min(math.Min(p0.X, p1.X), math.Min(p2.X, p3.X))
	minY := math.Min(math.Min(p0.Y, p1.Y), math.Min(p2.Y, p3.Y))
	maxX := math.Max(math.Max(p0.X, p1.X), math.Max(p2.X, p3.X))
	maxY := math.Max(math.Max(p0.Y, p1.Y), math.Max(p2.Y, p3.Y))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// worldBounds returns the node's axis-aligned bounds in world space, using the
// node's local size. Containers and empty nodes return a zero rect.
func worldBounds(n *Node) Rect {
	var lx, ly, w, h float64
	if n.Type == NodeTypeMesh {
		r := n.MeshBounds()
		lx, ly, w, h = r.X, r.Y, r.Width, r.Height
	} else {
		w, h = n.Size()
	}
	if w == 0 && h == 0 {
		return Rect{}
	}
	m := n.worldTransform
	return boundsOfPoints(
		pt(transformPoint(m, lx, ly)),
		pt(transformPoint(m, lx+w, ly)),
		pt(transformPoint(m, lx+w, ly+h)),
		pt(transformPoint(m, lx, ly+h)),
	)
}

// WorldBounds returns the node's world-space AABB as of the last transform refresh.
func (n *Node) WorldBounds() Rect {
	return worldBounds(n)
}

// shouldCull reports whether a node lies entirely outside cullBounds.
// Containers and nodes without a size are never culled.
func shouldCull(n *Node, cullBounds Rect) bool {
	if n.Type == NodeTypeContainer {
		return false
	}
	aabb := worldBounds(n)
	if aabb.Width == 0 && aabb.Height == 0 {
		return false
	}
	return !aabb.Intersects(cullBounds)
}
