package demos

import (
	"math"

	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/behavior"
	"github.com/phanxgames/arcade/physics"
)

const (
	ballCount  = 10
	ballRadius = 16
	ballSpeed  = 200
)

func init() {
	register(Demo{
		Name:        "balls",
		Description: "bouncing balls with a collision counter and speed renormalisation",
		Scenes:      ballsScenes,
	})
}

func ballsScenes(env Env) []arcade.SceneConfig {
	var (
		world  *physics.World
		balls  *physics.Group
		keeper = behavior.SpeedKeeper{Target: ballSpeed, Tolerance: 5}
		status *arcade.Node
	)
	return []arcade.SceneConfig{{
		Key:        "balls",
		Background: colorBg,
		Preload: func(s *arcade.Scene) error {
			_, err := circleTexture(s, "ball", ballRadius, colorBall)
			return err
		},
		Create: func(s *arcade.Scene) error {
			world = physics.Attach(s)
			tex := s.Textures.Get("ball")
			balls = world.NewGroup(s.Root(), ballCount, func() *arcade.Node {
				return arcade.NewSprite("ball", tex)
			})
			balls.Circle = ballRadius
			for i := range ballCount {
				// A grid start keeps balls from spawning inside each other.
				x := 80 + float64(i%5)*150
				y := 150 + float64(i/5)*250
				b := balls.Get(x, y)
				b.CollideWorldBounds = true
				b.SetBounce(1, 1)
				physics.SetVelocityFromAngle(b, randRange(s, 0, 2*math.Pi), ballSpeed)
			}
			world.AddCollider(balls, balls, func(a, b *physics.Body) {
				s.Signals.Inc("collisions")
				env.play("hit")
			})
			s.Signals.Set("collisions", 0)
			s.Signals.Set("corrections", 0)
			status = label(s, 10, 10, "Collisions: 0")
			return nil
		},
		Update: func(s *arcade.Scene, dt float64) error {
			if n := keeper.ApplyAll(balls); n > 0 {
				s.Signals.Add("corrections", n)
			}
			worst := 0.0
			balls.Each(func(b *physics.Body) {
				worst = max(worst, math.Abs(b.Speed()-ballSpeed))
			})
			s.Signals.Set("speedError", worst)
			status.SetTextf("Collisions: %d", s.Signals.Int("collisions"))
			return nil
		},
	}}
}
