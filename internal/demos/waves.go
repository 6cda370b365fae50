package demos

import (
	"context"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/behavior"
	"github.com/phanxgames/arcade/physics"
)

const (
	waveCount     = 3
	enemySpeed    = 70
	bulletSpeed   = 420
	fireRate      = 0.2
	shooterSpeed  = 300
	pointsPerKill = 10
)

func init() {
	register(Demo{
		Name:        "waves",
		Description: "shoot down waves of enemies; the final score is saved as a high score",
		Scenes:      wavesScenes,
	})
}

func wavesScenes(env Env) []arcade.SceneConfig {
	var (
		world   *physics.World
		shooter *physics.Body
		enemies *physics.Group
		bullets *physics.Group
		waves   *behavior.WaveSpawner
		gun     *behavior.Cooldown
		status  *arcade.Node
	)
	refresh := func(s *arcade.Scene) {
		status.SetTextf("Wave %d/%d  Score: %d  Left: %d", waves.Wave(), waveCount, s.Signals.Int("score"), waves.Remaining())
	}
	return []arcade.SceneConfig{{
		Key:        "waves",
		Background: arcade.ColorBlack,
		Preload: func(s *arcade.Scene) error {
			if _, err := shapeTexture(s, "enemy", arcade.RegularPolygonPoints(3, 16, math.Pi/2), colorEnemy); err != nil {
				return err
			}
			if _, err := shapeTexture(s, "shooter", arcade.TrianglePoints(18), colorShip); err != nil {
				return err
			}
			_, err := circleTexture(s, "bullet", 4, colorBullet)
			return err
		},
		Create: func(s *arcade.Scene) error {
			world = physics.Attach(s)
			w, h := float64(s.Width), float64(s.Height)

			n := arcade.NewSprite("shooter", s.Textures.Get("shooter"))
			n.SetPosition(w/2, h-40)
			s.Add(n)
			shooter = world.Enable(n)
			shooter.CollideWorldBounds = true

			enemyTex := s.Textures.Get("enemy")
			enemies = world.NewGroup(s.Root(), 0, func() *arcade.Node { return arcade.NewSprite("enemy", enemyTex) })
			bulletTex := s.Textures.Get("bullet")
			bullets = world.NewGroup(s.Root(), 8, func() *arcade.Node { return arcade.NewSprite("bullet", bulletTex) })
			bullets.Circle = 4
			gun = behavior.NewCooldown(s.Clock, fireRate)

			s.Signals.Set("score", 0)
			s.Signals.Set("kills", 0)
			s.Signals.Set("escaped", 0)
			s.Signals.Set("wave", 0)
			s.Signals.Set("complete", false)
			status = label(s, 10, 10, "")
			burst := sparks(s, colorEnemy, colorBullet)
			s.Signals.Set("sparks", 0)

			waves = behavior.NewWaveSpawner(s.Clock, behavior.WaveConfig{
				MaxWaves:      waveCount,
				SpawnInterval: 0.6,
				WaveDelay:     1.5,
				Spawn: func(wave, i int) {
					b := enemies.Get(randRange(s, 40, w-40), -20)
					b.Velocity = arcade.Vec2{X: randRange(s, -30, 30), Y: enemySpeed + 15*float64(wave)}
				},
				OnWaveStart: func(wave int) {
					s.Signals.Set("wave", wave)
					s.Signals.Log("wave %d", wave)
				},
				OnWaveComplete: func(wave int) {
					s.Signals.Log("wave %d cleared", wave)
				},
				OnAllComplete: func() {
					s.Signals.Set("complete", true)
					if env.Store != nil {
						if err := env.Store.RecordScore(context.Background(), "waves", "player", s.Signals.Int("score")); err != nil {
							s.Signals.Log("save score: %v", err)
						}
					}
				},
			})
			waves.Start()

			world.AddOverlap(bullets, enemies, func(bullet, enemy *physics.Body) {
				if !bullet.Enabled || !enemy.Enabled {
					return
				}
				bullets.Kill(bullet)
				at := enemy.Position()
				enemies.Kill(enemy)
				waves.Killed()
				s.Signals.Add("sparks", burst.Explode(16, at.X, at.Y))
				s.Signals.Inc("kills")
				s.Signals.Add("score", pointsPerKill)
				env.play("hit")
			})
			refresh(s)
			return nil
		},
		Update: func(s *arcade.Scene, dt float64) error {
			shooter.Velocity = arcade.Vec2{X: s.Keys.Cursors().X * shooterSpeed}
			if s.Keys.IsDown(ebiten.KeySpace) && gun.Trigger() {
				if b := bullets.Get(shooter.Node.X, shooter.Node.Y-20); b != nil {
					b.Velocity = arcade.Vec2{Y: -bulletSpeed}
					s.Signals.Inc("shots")
					env.play("shoot")
				}
			}
			bullets.Each(func(b *physics.Body) {
				if b.Node.Y < -10 {
					bullets.Kill(b)
				}
			})
			h := float64(s.Height)
			enemies.Each(func(b *physics.Body) {
				if b.Node.Y > h+20 {
					enemies.Kill(b)
					waves.Killed()
					s.Signals.Inc("escaped")
				}
			})
			s.Signals.Set("alive", waves.Alive())
			refresh(s)
			return nil
		},
	}}
}
