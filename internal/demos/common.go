package demos

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arcade"
)

var (
	colorBall   = arcade.RGB(0x4fc3f7)
	colorStar   = arcade.RGB(0xffd54f)
	colorRock   = arcade.RGB(0x9e9e9e)
	colorShip   = arcade.RGB(0x81c784)
	colorEnemy  = arcade.RGB(0xe57373)
	colorBullet = arcade.RGB(0xfff59d)
	colorWall   = arcade.RGB(0x37474f)
	colorPanel  = arcade.RGB(0x263238)
	colorAccent = arcade.RGB(0xba68c8)
	colorBg     = arcade.RGB(0x101820)
)

// shapeTexture rasterises pts, which are centred on the origin, into a
// texture just large enough to hold them. Textures are shared across scenes,
// so an existing key is reused.
func shapeTexture(s *arcade.Scene, key string, pts []arcade.Vec2, c arcade.Color) (*ebiten.Image, error) {
	if img := s.Textures.Get(key); img != nil {
		return img, nil
	}
	b := arcade.PointsBounds(pts)
	g := arcade.NewGraphics().FillStyle(c).FillPolygon(arcade.TranslatePoints(pts, -b.X, -b.Y))
	img, err := g.GenerateTexture(s.Textures, key, int(b.Width+1), int(b.Height+1))
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", key, err)
	}
	return img, nil
}

// circleTexture rasterises a filled circle of radius r.
func circleTexture(s *arcade.Scene, key string, r float64, c arcade.Color) (*ebiten.Image, error) {
	if img := s.Textures.Get(key); img != nil {
		return img, nil
	}
	g := arcade.NewGraphics().FillStyle(c).FillCircle(r, r, r)
	img, err := g.GenerateTexture(s.Textures, key, int(2*r+1), int(2*r+1))
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", key, err)
	}
	return img, nil
}

// label adds a status text node at (x, y).
func label(s *arcade.Scene, x, y float64, content string) *arcade.Node {
	n := arcade.NewText("label", content, 18)
	n.SetPosition(x, y)
	n.RenderLayer = 10
	s.Add(n)
	return n
}

// button adds a clickable panel with a centred caption.
func button(s *arcade.Scene, name string, x, y, w, h float64, caption string, onClick func()) *arcade.Node {
	bg := arcade.NewRect(name, w, h, colorPanel)
	bg.SetPosition(x, y)
	bg.Interactable = true
	bg.OnClick = func(arcade.ClickContext) { onClick() }
	s.Add(bg)

	txt := arcade.NewText(name+"_caption", caption, 18)
	txt.SetPivot(0.5, 0.5)
	txt.SetPosition(x, y)
	txt.RenderLayer = 10
	s.Add(txt)
	return bg
}

func randRange(s *arcade.Scene, lo, hi float64) float64 {
	return lo + s.Rand.Float64()*(hi-lo)
}

// sparks adds a burst-only emitter above the gameplay layers. Particles
// stay where they were emitted.
func sparks(s *arcade.Scene, from, to arcade.Color) *arcade.ParticleEmitter {
	n := arcade.NewParticleEmitter("sparks", arcade.EmitterConfig{
		MaxParticles: 96,
		Lifetime:     arcade.Range{Min: 0.3, Max: 0.6},
		Speed:        arcade.Range{Min: 60, Max: 180},
		Angle:        arcade.Range{Min: 0, Max: 2 * math.Pi},
		StartScale:   arcade.Range{Min: 3, Max: 5},
		EndAlpha:     arcade.Range{Min: 0, Max: 0},
		StartColor:   from,
		EndColor:     to,
		WorldSpace:   true,
		Seed:         s.Rand.Uint64(),
	})
	n.RenderLayer = 5
	s.Add(n)
	return n.Emitter
}
