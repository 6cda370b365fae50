package arcade

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// batchKey groups consecutive commands that Ebitengine can merge into a
// single draw call.
type batchKey struct {
	blend BlendMode
	image *ebiten.Image
}

func commandBatchKey(cmd *RenderCommand) batchKey {
	return batchKey{blend: cmd.BlendMode, image: cmd.Image}
}

// submitBatches draws the sorted commands onto target.
func (s *Scene) submitBatches(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	var triOp ebiten.DrawTrianglesOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandSprite:
			submitSprite(target, cmd, &op)
		case CommandMesh:
			triOp.Blend = cmd.BlendMode.EbitenBlend()
			target.DrawTriangles(cmd.meshVerts, cmd.meshInds, cmd.Image, &triOp)
		case CommandParticle:
			submitParticles(target, cmd, &op)
		}
	}
}

// submitSprite draws a single sprite command with a premultiplied tint.
func submitSprite(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	op.GeoM = commandGeoM(cmd)
	op.ColorScale.Reset()
	a := float32(cmd.Color.A)
	op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
	op.Blend = cmd.BlendMode.EbitenBlend()
	target.DrawImage(cmd.Image, op)
}

// submitParticles draws every live particle of the command's emitter,
// scaled about the texture center and tinted by the emitter node.
func submitParticles(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	e := cmd.emitter
	b := cmd.Image.Bounds()
	hw, hh := float64(b.Dx())/2, float64(b.Dy())/2
	base := commandGeoM(cmd)
	op.Blend = cmd.BlendMode.EbitenBlend()
	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		op.GeoM.Reset()
		op.GeoM.Translate(-hw, -hh)
		op.GeoM.Scale(p.scale, p.scale)
		op.GeoM.Translate(p.x, p.y)
		op.GeoM.Concat(base)

		a := float32(p.alpha * cmd.Color.A)
		op.ColorScale.Reset()
		op.ColorScale.Scale(
			float32(p.color.R*cmd.Color.R)*a,
			float32(p.color.G*cmd.Color.G)*a,
			float32(p.color.B*cmd.Color.B)*a,
			a,
		)
		target.DrawImage(cmd.Image, op)
	}
}

// commandGeoM converts a command's affine transform into an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, cmd.Transform[0])
	m.SetElement(1, 0, cmd.Transform[1])
	m.SetElement(0, 1, cmd.Transform[2])
	m.SetElement(1, 1, cmd.Transform[3])
	m.SetElement(0, 2, cmd.Transform[4])
	m.SetElement(1, 2, cmd.Transform[5])
	return m
}

// countBatches counts runs of consecutive commands sharing a batch key.
func countBatches(commands []RenderCommand) int {
	if len(commands) == 0 {
		return 0
	}
	count := 1
	prev := commandBatchKey(&commands[0])
	for i := 1; i < len(commands); i++ {
		cur := commandBatchKey(&commands[i])
		if cur != prev {
			count++
			prev = cur
		}
	}
	return count
}
