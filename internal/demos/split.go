package demos

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/physics"
)

const (
	splitWorldW = 1600
	splitWorldH = 1200
	splitSpeed  = 240
	splitCoins  = 20
)

type splitPlayer struct {
	name                  string
	up, down, left, right ebiten.Key
	color                 arcade.Color
	body                  *physics.Body
	cam                   *arcade.Camera
	hud                   *arcade.Node
}

func init() {
	register(Demo{
		Name:        "split",
		Description: "two players on one keyboard (WASD and arrows), each with their own camera",
		Scenes:      splitScenes,
	})
}

func (p *splitPlayer) direction(k *arcade.Keyboard) arcade.Vec2 {
	var v arcade.Vec2
	if k.IsDown(p.left) {
		v.X--
	}
	if k.IsDown(p.right) {
		v.X++
	}
	if k.IsDown(p.up) {
		v.Y--
	}
	if k.IsDown(p.down) {
		v.Y++
	}
	return v.Normalize()
}

func splitScenes(env Env) []arcade.SceneConfig {
	var players []*splitPlayer
	return []arcade.SceneConfig{{
		Key:        "split",
		Background: arcade.ColorBlack,
		Preload: func(s *arcade.Scene) error {
			if _, err := circleTexture(s, "pawn", 14, arcade.ColorWhite); err != nil {
				return err
			}
			_, err := shapeTexture(s, "coin", arcade.StarPoints(5, 5, 12), colorStar)
			return err
		},
		Create: func(s *arcade.Scene) error {
			world := physics.Attach(s)
			world.Bounds = arcade.Rect{Width: splitWorldW, Height: splitWorldH}

			floor := arcade.NewRect("floor", splitWorldW, splitWorldH, colorPanel)
			floor.SetPivot(0, 0)
			floor.ZIndex = -1
			s.Add(floor)

			coinTex := s.Textures.Get("coin")
			coins := world.NewGroup(s.Root(), splitCoins, func() *arcade.Node { return arcade.NewSprite("coin", coinTex) })
			for range splitCoins {
				coins.Get(randRange(s, 40, splitWorldW-40), randRange(s, 40, splitWorldH-40))
			}

			players = []*splitPlayer{
				{name: "p1", up: ebiten.KeyW, down: ebiten.KeyS, left: ebiten.KeyA, right: ebiten.KeyD, color: colorShip},
				{name: "p2", up: ebiten.KeyArrowUp, down: ebiten.KeyArrowDown, left: ebiten.KeyArrowLeft, right: ebiten.KeyArrowRight, color: colorEnemy},
			}
			half := float64(s.Width) / 2
			for i, p := range players {
				n := arcade.NewSprite(p.name, s.Textures.Get("pawn"))
				n.Color = p.color
				n.SetPosition(splitWorldW/3*float64(i+1), splitWorldH/2)
				s.Add(n)
				p.body = world.EnableCircle(n, 14)
				p.body.CollideWorldBounds = true

				p.cam = s.NewCamera(arcade.Rect{X: half * float64(i), Width: half, Height: float64(s.Height)})
				p.cam.BoundsEnabled = true
				p.cam.Bounds = world.Bounds
				p.cam.Follow(n, 0, 0, 0.2)
				p.cam.CenterOn(n.X, n.Y)

				p.hud = arcade.NewText(p.name+"_hud", "", 18)
				p.hud.RenderLayer = 10
				s.Add(p.hud)
				s.Signals.Set(p.name, 0)
			}

			world.AddOverlap(players[0].body, coins, func(_, coin *physics.Body) {
				coins.Kill(coin)
				s.Signals.Inc("p1")
				env.play("collect")
			})
			world.AddOverlap(players[1].body, coins, func(_, coin *physics.Body) {
				coins.Kill(coin)
				s.Signals.Inc("p2")
				env.play("collect")
			})
			s.Signals.Set("coinsLeft", splitCoins)
			return nil
		},
		Update: func(s *arcade.Scene, dt float64) error {
			left := 0
			for _, p := range players {
				p.body.Velocity = p.direction(s.Keys).Scale(splitSpeed)
				p.hud.SetTextf("%s: %d", p.name, s.Signals.Int(p.name))
				stickToView(p.hud, p.cam, 10, 10)
				s.Signals.Set(p.name+"X", p.body.Node.X)
				left += s.Signals.Int(p.name)
			}
			s.Signals.Set("coinsLeft", splitCoins-left)
			return nil
		},
	}}
}
