package demos

import (
	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/behavior"
)

const (
	levelLimit = 8
	maxLevel   = 5
)

func init() {
	register(Demo{
		Name:        "levels",
		Description: "clear every target before the per-level timer runs out",
		Scenes:      levelScenes,
	})
}

func levelScenes(env Env) []arcade.SceneConfig {
	var (
		timer   *behavior.LevelTimer
		targets *arcade.Node
		left    int
		status  *arcade.Node
	)
	var startLevel func(s *arcade.Scene, level int)
	startLevel = func(s *arcade.Scene, level int) {
		targets.RemoveChildren()
		left = level + 2
		tex := s.Textures.Get("target")
		for range left {
			t := arcade.NewSprite("target", tex)
			t.SetPosition(randRange(s, 60, float64(s.Width)-60), randRange(s, 80, float64(s.Height)-60))
			t.Interactable = true
			t.OnClick = func(arcade.ClickContext) {
				t.Dispose()
				left--
				s.Signals.Inc("hits")
				env.play("collect")
				if left > 0 {
					return
				}
				took := timer.Complete()
				s.Signals.Log("level %d in %.2fs", level, took)
				s.Signals.Set("cleared", level)
				if level == maxLevel {
					s.Signals.Set("finished", true)
					env.play("unlock")
					return
				}
				startLevel(s, level+1)
			}
			targets.AddChild(t)
		}
		timer.Start(level)
		s.Signals.Set("level", level)
		s.Signals.Set("targets", left)
	}
	return []arcade.SceneConfig{{
		Key:        "levels",
		Background: colorBg,
		Preload: func(s *arcade.Scene) error {
			_, err := shapeTexture(s, "target", arcade.HexagonPoints(22), colorEnemy)
			return err
		},
		Create: func(s *arcade.Scene) error {
			targets = arcade.NewContainer("targets")
			targets.Interactable = true
			s.Add(targets)
			s.Signals.Set("hits", 0)
			s.Signals.Set("timeouts", 0)
			s.Signals.Set("cleared", 0)
			s.Signals.Set("finished", false)
			status = label(s, 10, 10, "")

			timer = behavior.NewLevelTimer(s.Clock, levelLimit, func(level int) {
				s.Signals.Inc("timeouts")
				s.MainCamera().Shake(0.3, 0.015)
				env.play("error")
				startLevel(s, level)
			})
			startLevel(s, 1)
			return nil
		},
		Update: func(s *arcade.Scene, dt float64) error {
			s.Signals.Set("targets", left)
			s.Signals.Set("total", timer.Total())
			status.SetTextf("Level %d  Time: %.1f  Targets: %d  Total: %.1f",
				timer.Level(), timer.Remaining(), left, timer.Total())
			return nil
		},
	}}
}
