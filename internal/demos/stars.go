package demos

import (
	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/behavior"
	"github.com/tanema/gween/ease"
)

const (
	starCap      = 12
	starInterval = 0.5
)

func init() {
	register(Demo{
		Name:        "stars",
		Description: "capped spawner filling the screen with clickable stars",
		Scenes:      starsScenes,
	})
}

func starsScenes(env Env) []arcade.SceneConfig {
	var (
		spawner *behavior.Spawner
		status  *arcade.Node
	)
	refresh := func(s *arcade.Scene) {
		status.SetTextf("Stars: %d/%d  Collected: %d", s.Signals.Int("stars"), starCap, s.Signals.Int("collected"))
	}
	return []arcade.SceneConfig{{
		Key:        "stars",
		Background: colorBg,
		Preload: func(s *arcade.Scene) error {
			_, err := shapeTexture(s, "star", arcade.StarPoints(5, 8, 20), colorStar)
			return err
		},
		Create: func(s *arcade.Scene) error {
			tex := s.Textures.Get("star")
			s.Signals.Set("stars", 0)
			s.Signals.Set("collected", 0)
			s.Signals.Set("done", false)
			s.Signals.Set("sparks", 0)
			status = label(s, 10, 10, "")
			refresh(s)
			burst := sparks(s, colorStar, colorAccent)

			spawner = behavior.NewSpawner(s.Clock, behavior.SpawnerConfig{
				Interval: starInterval,
				Cap:      starCap,
				Spawn: func(i int) {
					star := arcade.NewSprite("star", tex)
					star.SetPosition(randRange(s, 40, float64(s.Width)-40), randRange(s, 60, float64(s.Height)-40))
					star.SetScale(0, 0)
					star.Interactable = true
					star.OnClick = func(arcade.ClickContext) {
						star.Interactable = false
						s.Tweens.KillTweensOf(star)
						s.Signals.Inc("collected")
						env.play("collect")
						s.Signals.Add("sparks", burst.Explode(12, star.X, star.Y))
						s.Tweens.Add(arcade.TweenConfig{
							Target:     star,
							To:         map[arcade.Prop]float64{arcade.PropScaleX: 2, arcade.PropScaleY: 2, arcade.PropAlpha: 0},
							Duration:   0.25,
							OnComplete: star.Dispose,
						})
						refresh(s)
					}
					s.Add(star)
					s.Tweens.Add(arcade.TweenConfig{
						Target:   star,
						To:       map[arcade.Prop]float64{arcade.PropScaleX: 1, arcade.PropScaleY: 1},
						Duration: 0.3,
						Ease:     ease.OutBack,
					})
					s.Signals.Inc("stars")
					s.Signals.Log("star %d at %.0f,%.0f", i+1, star.X, star.Y)
					refresh(s)
				},
				OnDone: func() { s.Signals.Set("done", true) },
			})
			return nil
		},
		Update: func(s *arcade.Scene, dt float64) error {
			if spawner.Count() != s.Signals.Int("stars") {
				s.Signals.Set("stars", spawner.Count())
			}
			return nil
		},
	}}
}
