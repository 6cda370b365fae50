package arcade

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// maxPointers bounds the pointer table; pointer 0 is the mouse and the
	// remaining slots are for injected pointers.
	maxPointers         = 4
	defaultDragDeadZone = 4.0 // pixels
)

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return Rect(r).Contains(x, y)
}

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node
	dragging  bool
	button    MouseButton
	// grab offset from pointer to node position, in the node's parent space
	grabX, grabY float64
}

type handlerEntry[T any] struct {
	id uint32
	fn func(T)
}

type handlerList[T any] []handlerEntry[T]

func (l *handlerList[T]) add(id uint32, fn func(T)) {
	*l = append(*l, handlerEntry[T]{id: id, fn: fn})
}

func (l *handlerList[T]) remove(id uint32) {
	s := *l
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handlerEntry[T]{}
			*l = s[:len(s)-1]
			return
		}
	}
}

func (l handlerList[T]) fire(ctx T) {
	for _, h := range l {
		h.fn(ctx)
	}
}

type handlerRegistry struct {
	pointerDown  handlerList[PointerContext]
	pointerUp    handlerList[PointerContext]
	pointerMove  handlerList[PointerContext]
	pointerEnter handlerList[PointerContext]
	pointerLeave handlerList[PointerContext]
	click        handlerList[ClickContext]
	dragStart    handlerList[DragContext]
	drag         handlerList[DragContext]
	dragEnd      handlerList[DragContext]
	nextID       uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	remove func()
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

func register[T any](reg *handlerRegistry, list *handlerList[T], fn func(T)) CallbackHandle {
	reg.nextID++
	id := reg.nextID
	list.add(id, fn)
	return CallbackHandle{remove: func() { list.remove(id) }}
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerUp, fn)
}

// OnPointerMove registers a scene-level callback for hover moves.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerMove, fn)
}

// OnPointerEnter registers a scene-level callback fired when the pointer
// moves onto a node.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback fired when the pointer
// leaves a node.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerLeave, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.click, fn)
}

// OnDragStart registers a scene-level callback for drag start events.
func (s *Scene) OnDragStart(fn func(DragContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.dragStart, fn)
}

// OnDrag registers a scene-level callback for drag events.
func (s *Scene) OnDrag(fn func(DragContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.drag, fn)
}

// OnDragEnd registers a scene-level callback for drag end events.
func (s *Scene) OnDragEnd(fn func(DragContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.dragEnd, fn)
}

// CapturePointer routes all events for pointerID to the given node.
func (s *Scene) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer stops routing events for pointerID to a captured node.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// PointerPosition returns the last known world position of the mouse.
func (s *Scene) PointerPosition() Vec2 {
	return Vec2{s.pointers[0].lastX, s.pointers[0].lastY}
}

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's local bounds. Containers with no
// HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	switch n.Type {
	case NodeTypeContainer:
		return false
	case NodeTypeMesh:
		r := n.MeshBounds()
		if r.Width == 0 && r.Height == 0 {
			return false
		}
		return r.Contains(lx, ly)
	}
	w, h := n.Size()
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Skips invisible or non-interactable
// subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range sortedChildren(n) {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// NodeAt returns the topmost interactable node under a world-space point.
func (s *Scene) NodeAt(worldX, worldY float64) *Node {
	return s.hitTest(worldX, worldY)
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// screenToWorld converts screen coordinates to world coordinates through the
// camera whose viewport contains the point, or the first camera.
func (s *Scene) screenToWorld(sx, sy float64) (float64, float64) {
	if len(s.cameras) == 0 {
		return sx, sy
	}
	cam := s.cameras[0]
	for _, c := range s.cameras {
		if c.Viewport.Contains(sx, sy) {
			cam = c
			break
		}
	}
	return cam.ScreenToWorld(sx, sy)
}

// processInput handles injected pointer events, or the real mouse when the
// injection queue is empty. World transforms are refreshed by the caller.
func (s *Scene) processInput() {
	mods := readModifiers()
	if s.processInjectedInput(mods) {
		return
	}
	mx, my := ebiten.CursorPosition()
	wx, wy := s.screenToWorld(float64(mx), float64(my))

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}
	s.processPointer(0, wx, wy, pressed, button, mods)
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]

	target := s.captured[pointerID]
	if target == nil {
		target = s.hitTest(wx, wy)
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.IsDisposed() {
			s.firePointer(EventPointerLeave, ps.hoverNode, pointerID, wx, wy, button, mods)
		}
		if target != nil {
			s.firePointer(EventPointerEnter, target, pointerID, wx, wy, button, mods)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		ps.dragging = false
		s.firePointer(EventPointerDown, target, pointerID, wx, wy, button, mods)

	case !pressed && ps.down:
		if ps.dragging {
			s.applyAutoDrag(ps, wx, wy)
			s.fireDrag(EventDragEnd, ps, pointerID, wx, wy, wx-ps.lastX, wy-ps.lastY, mods)
		} else if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, pointerID, wx, wy, ps.button, mods)
		}
		s.firePointer(EventPointerUp, target, pointerID, wx, wy, ps.button, mods)
		s.captured[pointerID] = nil
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.lastX, ps.lastY = wx, wy

	case pressed && ps.down:
		if wx == ps.lastX && wy == ps.lastY {
			return
		}
		if !ps.dragging && math.Hypot(wx-ps.startX, wy-ps.startY) > s.dragDeadZone {
			ps.dragging = true
			s.beginAutoDrag(ps)
			s.fireDrag(EventDragStart, ps, pointerID, wx, wy, wx-ps.startX, wy-ps.startY, mods)
		}
		if ps.dragging {
			s.applyAutoDrag(ps, wx, wy)
			s.fireDrag(EventDrag, ps, pointerID, wx, wy, wx-ps.lastX, wy-ps.lastY, mods)
		}
		ps.lastX, ps.lastY = wx, wy

	default:
		if wx != ps.lastX || wy != ps.lastY {
			s.firePointer(EventPointerMove, target, pointerID, wx, wy, button, mods)
			ps.lastX, ps.lastY = wx, wy
		}
	}
}

// parentLocal converts a world point into n's parent space.
func parentLocal(n *Node, wx, wy float64) (float64, float64) {
	if n.Parent == nil {
		return wx, wy
	}
	return n.Parent.WorldToLocal(wx, wy)
}

// beginAutoDrag records where a Draggable node was grabbed, measured from the
// press position so the node does not jump by the dead zone.
func (s *Scene) beginAutoDrag(ps *pointerState) {
	n := ps.hitNode
	if n == nil || !n.Draggable {
		return
	}
	px, py := parentLocal(n, ps.startX, ps.startY)
	ps.grabX, ps.grabY = n.X-px, n.Y-py
}

func (s *Scene) applyAutoDrag(ps *pointerState, wx, wy float64) {
	n := ps.hitNode
	if n == nil || !n.Draggable || n.IsDisposed() {
		return
	}
	px, py := parentLocal(n, wx, wy)
	n.SetPosition(px+ps.grabX, py+ps.grabY)
	// Keep hit testing accurate for the rest of this frame.
	if n.Parent != nil {
		updateWorldTransform(n, n.Parent.worldTransform, n.Parent.worldAlpha, true)
	}
}

func pointerContext(node *Node, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) PointerContext {
	ctx := PointerContext{
		Node: node, GlobalX: wx, GlobalY: wy,
		Button: button, PointerID: pointerID, Modifiers: mods,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.EntityID = node.EntityID
		ctx.UserData = node.UserData
	}
	return ctx
}

func (s *Scene) firePointer(ev EventType, node *Node, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := pointerContext(node, pointerID, wx, wy, button, mods)
	var list handlerList[PointerContext]
	var cb func(PointerContext)
	switch ev {
	case EventPointerDown:
		list = s.handlers.pointerDown
		if node != nil {
			cb = node.OnPointerDown
		}
	case EventPointerUp:
		list = s.handlers.pointerUp
		if node != nil {
			cb = node.OnPointerUp
		}
	case EventPointerMove:
		list = s.handlers.pointerMove
		if node != nil {
			cb = node.OnPointerMove
		}
	case EventPointerEnter:
		list = s.handlers.pointerEnter
		if node != nil {
			cb = node.OnPointerEnter
		}
	case EventPointerLeave:
		list = s.handlers.pointerLeave
		if node != nil {
			cb = node.OnPointerLeave
		}
	}
	// Scene-level handlers first, then the node.
	list.fire(ctx)
	if cb != nil {
		cb(ctx)
	}
	s.emitInteractionEvent(ev, node, ctx.GlobalX, ctx.GlobalY, ctx.LocalX, ctx.LocalY, button, mods, DragContext{})
}

func (s *Scene) fireClick(node *Node, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	p := pointerContext(node, pointerID, wx, wy, button, mods)
	ctx := ClickContext(p)
	s.handlers.click.fire(ctx)
	if node.OnClick != nil {
		node.OnClick(ctx)
	}
	s.emitInteractionEvent(EventClick, node, wx, wy, ctx.LocalX, ctx.LocalY, button, mods, DragContext{})
}

func (s *Scene) fireDrag(ev EventType, ps *pointerState, pointerID int, wx, wy, dx, dy float64, mods KeyModifiers) {
	node := ps.hitNode
	p := pointerContext(node, pointerID, wx, wy, ps.button, mods)
	ctx := DragContext{
		Node: node, EntityID: p.EntityID, UserData: p.UserData,
		GlobalX: wx, GlobalY: wy, LocalX: p.LocalX, LocalY: p.LocalY,
		StartX: ps.startX, StartY: ps.startY, DeltaX: dx, DeltaY: dy,
		Button: ps.button, PointerID: pointerID, Modifiers: mods,
	}
	var list handlerList[DragContext]
	var cb func(DragContext)
	switch ev {
	case EventDragStart:
		list = s.handlers.dragStart
		if node != nil {
			cb = node.OnDragStart
		}
	case EventDrag:
		list = s.handlers.drag
		if node != nil {
			cb = node.OnDrag
		}
	case EventDragEnd:
		list = s.handlers.dragEnd
		if node != nil {
			cb = node.OnDragEnd
		}
	}
	list.fire(ctx)
	if cb != nil {
		cb(ctx)
	}
	s.emitInteractionEvent(ev, node, wx, wy, ctx.LocalX, ctx.LocalY, ps.button, mods, ctx)
}

func (s *Scene) emitInteractionEvent(eventType EventType, node *Node, wx, wy, lx, ly float64,
	button MouseButton, mods KeyModifiers, drag DragContext) {
	if s.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:      eventType,
		EntityID:  node.EntityID,
		GlobalX:   wx,
		GlobalY:   wy,
		LocalX:    lx,
		LocalY:    ly,
		Button:    button,
		Modifiers: mods,
		StartX:    drag.StartX,
		StartY:    drag.StartY,
		DeltaX:    drag.DeltaX,
		DeltaY:    drag.DeltaY,
	})
}
