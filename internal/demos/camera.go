package demos

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/physics"
)

const (
	camWorldW   = 2400
	camWorldH   = 1800
	camSpeed    = 260
	camMarkers  = 40
	shakeLength = 0.35
)

func init() {
	register(Demo{
		Name:        "camera",
		Description: "camera following a player across a large world, with shake and flash on Space",
		Scenes:      cameraScenes,
	})
}

// stickToView pins a HUD node to the top-left of cam's visible area.
func stickToView(n *arcade.Node, cam *arcade.Camera, x, y float64) {
	v := cam.VisibleBounds()
	n.SetPosition(v.X+x, v.Y+y)
}

func cameraScenes(env Env) []arcade.SceneConfig {
	var (
		player *physics.Body
		cam    *arcade.Camera
		status *arcade.Node
	)
	return []arcade.SceneConfig{{
		Key:        "camera",
		Background: colorBg,
		Preload: func(s *arcade.Scene) error {
			if _, err := shapeTexture(s, "marker", arcade.HexagonPoints(24), colorAccent); err != nil {
				return err
			}
			_, err := circleTexture(s, "player", 14, colorShip)
			return err
		},
		Create: func(s *arcade.Scene) error {
			world := physics.Attach(s)
			world.Bounds = arcade.Rect{Width: camWorldW, Height: camWorldH}

			floor := arcade.NewRect("floor", camWorldW, camWorldH, colorPanel)
			floor.SetPivot(0, 0)
			floor.ZIndex = -1
			s.Add(floor)

			marker := s.Textures.Get("marker")
			for range camMarkers {
				m := arcade.NewSprite("marker", marker)
				m.SetPosition(randRange(s, 50, camWorldW-50), randRange(s, 50, camWorldH-50))
				m.SetRotation(randRange(s, 0, 1))
				s.Add(m)
			}

			p := arcade.NewSprite("player", s.Textures.Get("player"))
			p.SetPosition(camWorldW/2, camWorldH/2)
			s.Add(p)
			player = world.EnableCircle(p, 14)
			player.CollideWorldBounds = true

			cam = s.MainCamera()
			cam.BoundsEnabled = true
			cam.Bounds = world.Bounds
			cam.Follow(p, 0, 0, 0.15)
			cam.CenterOn(p.X, p.Y)

			s.Signals.Set("shakes", 0)
			status = label(s, 10, 10, "")
			return nil
		},
		Update: func(s *arcade.Scene, dt float64) error {
			dir := s.Keys.Cursors().Normalize()
			player.Velocity = dir.Scale(camSpeed)

			if s.Keys.JustPressed(ebiten.KeySpace) && !cam.Shaking() {
				cam.Shake(shakeLength, 0.02)
				cam.Flash(0.25, arcade.ColorWhite)
				s.Signals.Inc("shakes")
				env.play("hit")
			}

			s.Signals.Set("playerX", player.Node.X)
			s.Signals.Set("playerY", player.Node.Y)
			s.Signals.Set("cameraX", cam.X)
			s.Signals.Set("cameraY", cam.Y)
			status.SetTextf("Player %.0f,%.0f  Shakes: %d", player.Node.X, player.Node.Y, s.Signals.Int("shakes"))
			stickToView(status, cam, 10, 10)
			return nil
		},
	}}
}
