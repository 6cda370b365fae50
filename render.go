package arcade

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandSprite CommandType = iota // DrawImage
	CommandMesh                      // DrawTriangles
	CommandParticle                  // one DrawImage per live particle
)

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Type        CommandType
	Transform   [6]float64
	Image       *ebiten.Image
	Color       Color
	BlendMode   BlendMode
	RenderLayer uint8
	treeOrder   int

	meshVerts []ebiten.Vertex
	meshInds  []uint16
	emitter   *ParticleEmitter
}

// traverse walks the node tree depth-first, updating transforms and emitting
// render commands for visible leaf nodes. view is pre-multiplied into every
// emitted transform.
func (s *Scene) traverse(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, view [6]float64, treeOrder *int) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	// Culling suppresses only this node's command; children are always
	// visited because their bounds may lie elsewhere.
	culled := s.cullActive && shouldCull(n, s.cullBounds)

	if !culled && n.worldAlpha > 0 {
		s.emit(n, view, treeOrder)
	}

	for _, child := range sortedChildren(n) {
		s.traverse(child, n.worldTransform, n.worldAlpha, recompute, view, treeOrder)
	}
}

func (s *Scene) emit(n *Node, view [6]float64, treeOrder *int) {
	tint := Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha}
	switch n.Type {
	case NodeTypeSprite:
		img := n.Texture
		if img == nil {
			img = WhitePixel
		}
		*treeOrder++
		s.commands = append(s.commands, RenderCommand{
			Type:        CommandSprite,
			Transform:   multiplyAffine(view, n.worldTransform),
			Image:       img,
			Color:       tint,
			BlendMode:   n.BlendMode,
			RenderLayer: n.RenderLayer,
			treeOrder:   *treeOrder,
		})
	case NodeTypeText:
		if n.TextBlock == nil {
			return
		}
		img := n.TextBlock.render()
		if img == nil {
			return
		}
		*treeOrder++
		s.commands = append(s.commands, RenderCommand{
			Type:        CommandSprite,
			Transform:   multiplyAffine(view, n.worldTransform),
			Image:       img,
			Color:       tint,
			BlendMode:   n.BlendMode,
			RenderLayer: n.RenderLayer,
			treeOrder:   *treeOrder,
		})
	case NodeTypeMesh:
		if len(n.Vertices) == 0 || len(n.Indices) == 0 || n.MeshImage == nil {
			return
		}
		dst := ensureTransformedVerts(n)
		transformVertices(n.Vertices, dst, multiplyAffine(view, n.worldTransform), tint)
		*treeOrder++
		s.commands = append(s.commands, RenderCommand{
			Type:        CommandMesh,
			Image:       n.MeshImage,
			BlendMode:   n.BlendMode,
			RenderLayer: n.RenderLayer,
			treeOrder:   *treeOrder,
			meshVerts:   dst,
			meshInds:    n.Indices,
		})
	case NodeTypeParticles:
		e := n.Emitter
		if e == nil || e.alive == 0 {
			return
		}
		// World-space particles already hold world positions.
		base := multiplyAffine(view, n.worldTransform)
		if e.config.WorldSpace {
			base = view
		}
		img := e.config.Texture
		if img == nil {
			img = WhitePixel
		}
		*treeOrder++
		s.commands = append(s.commands, RenderCommand{
			Type:        CommandParticle,
			Transform:   base,
			Image:       img,
			Color:       tint,
			BlendMode:   e.config.BlendMode,
			RenderLayer: n.RenderLayer,
			treeOrder:   *treeOrder,
			emitter:     e,
		})
	}
}

// sortedChildren returns n's children in ZIndex order, rebuilding the cached
// order when it is stale. Uses a stable insertion sort: children are few and
// usually already sorted.
func sortedChildren(n *Node) []*Node {
	if len(n.children) == 0 {
		return nil
	}
	if n.childrenSorted && len(n.sortedChildren) == len(n.children) {
		return n.sortedChildren
	}
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
	return n.sortedChildren
}

// commandLessOrEqual orders by render layer, then traversal order.
func commandLessOrEqual(a, b *RenderCommand) bool {
	if a.RenderLayer != b.RenderLayer {
		return a.RenderLayer < b.RenderLayer
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort sorts s.commands in place using s.sortBuf as scratch space.
// Bottom-up and allocation-free once the buffer reaches its high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]RenderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a, b := s.commands, s.sortBuf
	swapped := false
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}
	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges the sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}
