package arcade

import (
	"errors"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ErrTextureExists is returned when a texture key is already registered.
var ErrTextureExists = errors.New("arcade: texture already exists")

// TextureCache owns named, immutable textures for a game.
type TextureCache struct {
	textures map[string]*ebiten.Image
}

// NewTextureCache creates an empty cache.
func NewTextureCache() *TextureCache {
	return &TextureCache{textures: make(map[string]*ebiten.Image)}
}

// Add registers img under key.
func (c *TextureCache) Add(key string, img *ebiten.Image) error {
	if _, ok := c.textures[key]; ok {
		return fmt.Errorf("add %q: %w", key, ErrTextureExists)
	}
	c.textures[key] = img
	return nil
}

// Get returns the texture for key, or nil.
func (c *TextureCache) Get(key string) *ebiten.Image {
	return c.textures[key]
}

// Has reports whether key is registered.
func (c *TextureCache) Has(key string) bool {
	_, ok := c.textures[key]
	return ok
}

// Remove deallocates and forgets the texture for key.
func (c *TextureCache) Remove(key string) {
	if img, ok := c.textures[key]; ok {
		img.Deallocate()
		delete(c.textures, key)
	}
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int {
	return len(c.textures)
}

type drawOpKind uint8

const (
	opFillRect drawOpKind = iota
	opStrokeRect
	opFillCircle
	opStrokeCircle
	opFillPolygon
	opStrokePolygon
	opLine
)

type drawOp struct {
	kind   drawOpKind
	color  Color
	width  float64
	x, y   float64
	w, h   float64
	points []Vec2
}

// Graphics records vector drawing calls that are rasterised into a texture
// by GenerateTexture. Fill and line styles apply to calls made after them.
type Graphics struct {
	fill      Color
	line      Color
	lineWidth float64
	ops       []drawOp
}

// NewGraphics creates an empty recorder with white fill and a 1px white line.
func NewGraphics() *Graphics {
	return &Graphics{fill: ColorWhite, line: ColorWhite, lineWidth: 1}
}

// FillStyle sets the fill color for subsequent fill calls.
func (g *Graphics) FillStyle(c Color) *Graphics {
	g.fill = c
	return g
}

// LineStyle sets the stroke width and color for subsequent stroke calls.
func (g *Graphics) LineStyle(width float64, c Color) *Graphics {
	g.lineWidth = width
	g.line = c
	return g
}

// Clear drops all recorded calls.
func (g *Graphics) Clear() *Graphics {
	g.ops = g.ops[:0]
	return g
}

// FillRect records a filled rectangle.
func (g *Graphics) FillRect(x, y, w, h float64) *Graphics {
	g.ops = append(g.ops, drawOp{kind: opFillRect, color: g.fill, x: x, y: y, w: w, h: h})
	return g
}

// StrokeRect records a rectangle outline.
func (g *Graphics) StrokeRect(x, y, w, h float64) *Graphics {
	g.ops = append(g.ops, drawOp{kind: opStrokeRect, color: g.line, width: g.lineWidth, x: x, y: y, w: w, h: h})
	return g
}

// FillCircle records a filled circle.
func (g *Graphics) FillCircle(cx, cy, r float64) *Graphics {
	g.ops = append(g.ops, drawOp{kind: opFillCircle, color: g.fill, x: cx, y: cy, w: r})
	return g
}

// StrokeCircle records a circle outline.
func (g *Graphics) StrokeCircle(cx, cy, r float64) *Graphics {
	g.ops = append(g.ops, drawOp{kind: opStrokeCircle, color: g.line, width: g.lineWidth, x: cx, y: cy, w: r})
	return g
}

// FillPolygon records a filled closed outline. Fewer than three points are
// ignored.
func (g *Graphics) FillPolygon(points []Vec2) *Graphics {
	if len(points) < 3 {
		return g
	}
	g.ops = append(g.ops, drawOp{kind: opFillPolygon, color: g.fill, points: append([]Vec2(nil), points...)})
	return g
}

// StrokePolygon records a closed outline. Fewer than three points are ignored.
func (g *Graphics) StrokePolygon(points []Vec2) *Graphics {
	if len(points) < 3 {
		return g
	}
	g.ops = append(g.ops, drawOp{kind: opStrokePolygon, color: g.line, width: g.lineWidth, points: append([]Vec2(nil), points...)})
	return g
}

// FillTriangle records a filled triangle.
func (g *Graphics) FillTriangle(x0, y0, x1, y1, x2, y2 float64) *Graphics {
	return g.FillPolygon([]Vec2{{x0, y0}, {x1, y1}, {x2, y2}})
}

// FillRoundedRect records a filled rectangle with corners of radius r.
func (g *Graphics) FillRoundedRect(x, y, w, h, r float64) *Graphics {
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		return g.FillRect(x, y, w, h)
	}
	const seg = 6
	corners := [4]struct{ cx, cy, a float64 }{
		{x + w - r, y + r, -math.Pi / 2},
		{x + w - r, y + h - r, 0},
		{x + r, y + h - r, math.Pi / 2},
		{x + r, y + r, math.Pi},
	}
	pts := make([]Vec2, 0, 4*(seg+1))
	for _, c := range corners {
		for i := 0; i <= seg; i++ {
			sin, cos := math.Sincos(c.a + float64(i)*(math.Pi/2)/seg)
			pts = append(pts, Vec2{c.cx + cos*r, c.cy + sin*r})
		}
	}
	return g.FillPolygon(pts)
}

// LineBetween records a straight line segment.
func (g *Graphics) LineBetween(x0, y0, x1, y1 float64) *Graphics {
	g.ops = append(g.ops, drawOp{kind: opLine, color: g.line, width: g.lineWidth, x: x0, y: y0, w: x1, h: y1})
	return g
}

// Len returns the number of recorded calls.
func (g *Graphics) Len() int {
	return len(g.ops)
}

// Draw replays the recorded calls onto dst.
func (g *Graphics) Draw(dst *ebiten.Image) {
	for i := range g.ops {
		op := &g.ops[i]
		clr := op.color.NRGBA()
		switch op.kind {
		case opFillRect:
			vector.DrawFilledRect(dst, float32(op.x), float32(op.y), float32(op.w), float32(op.h), clr, true)
		case opStrokeRect:
			vector.StrokeRect(dst, float32(op.x), float32(op.y), float32(op.w), float32(op.h), float32(op.width), clr, true)
		case opFillCircle:
			vector.DrawFilledCircle(dst, float32(op.x), float32(op.y), float32(op.w), clr, true)
		case opStrokeCircle:
			vector.StrokeCircle(dst, float32(op.x), float32(op.y), float32(op.w), float32(op.width), clr, true)
		case opLine:
			vector.StrokeLine(dst, float32(op.x), float32(op.y), float32(op.w), float32(op.h), float32(op.width), clr, true)
		case opFillPolygon:
			path := polygonPath(op.points)
			vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
			drawPathTriangles(dst, vs, is, op.color)
		case opStrokePolygon:
			path := polygonPath(op.points)
			vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{
				Width:    float32(op.width),
				LineJoin: vector.LineJoinMiter,
			})
			drawPathTriangles(dst, vs, is, op.color)
		}
	}
}

func polygonPath(points []Vec2) *vector.Path {
	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()
	return &path
}

func drawPathTriangles(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16, c Color) {
	for i := range vs {
		vs[i].SrcX = 0.5
		vs[i].SrcY = 0.5
		vs[i].ColorR = float32(c.R * c.A)
		vs[i].ColorG = float32(c.G * c.A)
		vs[i].ColorB = float32(c.B * c.A)
		vs[i].ColorA = float32(c.A)
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, FillRule: ebiten.FillRuleNonZero}
	dst.DrawTriangles(vs, is, WhitePixel, op)
}

// GenerateTexture rasterises the recorded calls into a w x h image and
// registers it under key. The Graphics may be reused afterwards.
func (g *Graphics) GenerateTexture(cache *TextureCache, key string, w, h int) (*ebiten.Image, error) {
	if cache.Has(key) {
		return nil, fmt.Errorf("generate %q: %w", key, ErrTextureExists)
	}
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	g.Draw(img)
	if err := cache.Add(key, img); err != nil {
		img.Deallocate()
		return nil, err
	}
	return img, nil
}
