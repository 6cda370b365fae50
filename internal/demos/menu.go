package demos

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arcade"
	"github.com/tanema/gween/ease"
)

const fadeTime = 0.3

func init() {
	register(Demo{
		Name:        "menu",
		Description: "menu scene that starts a game scene; Escape returns to the menu",
		Scenes:      menuScenes,
	})
}

// switchScene fades the main camera out, then starts key.
func switchScene(s *arcade.Scene, key string) {
	s.MainCamera().Fade(fadeTime, arcade.ColorBlack, func() {
		if err := s.Game().Start(key); err != nil {
			s.Signals.Log("%v", err)
		}
	})
}

func menuScenes(env Env) []arcade.SceneConfig {
	var (
		leaving bool
		score   *arcade.Node
	)
	menu := arcade.SceneConfig{
		Key:        "menu",
		Background: colorPanel,
		Create: func(s *arcade.Scene) error {
			leaving = false
			s.Signals.Set("scene", "menu")
			s.Signals.Inc("menuVisits")
			s.MainCamera().FadeIn(fadeTime, arcade.ColorBlack, nil)

			title := arcade.NewText("title", "ARCADE", 48)
			title.SetPivot(0.5, 0.5)
			title.SetPosition(float64(s.Width)/2, 160)
			s.Add(title)
			s.Tweens.Add(arcade.TweenConfig{
				Target:   title,
				To:       map[arcade.Prop]float64{arcade.PropScaleX: 1.1, arcade.PropScaleY: 1.1},
				Duration: 0.8,
				Ease:     ease.InOutSine,
				Yoyo:     true,
				Repeat:   -1,
			})
			button(s, "start", float64(s.Width)/2, float64(s.Height)/2+40, 200, 60, "Start", func() {
				if leaving {
					return
				}
				leaving = true
				env.play("collect")
				switchScene(s, "play")
			})
			return nil
		},
		Update: func(s *arcade.Scene, dt float64) error {
			if !leaving && s.Keys.JustPressed(ebiten.KeyEnter) {
				leaving = true
				switchScene(s, "play")
			}
			return nil
		},
	}
	play := arcade.SceneConfig{
		Key:        "play",
		Background: colorBg,
		Preload: func(s *arcade.Scene) error {
			_, err := shapeTexture(s, "gem", arcade.HexagonPoints(30), colorAccent)
			return err
		},
		Create: func(s *arcade.Scene) error {
			leaving = false
			s.Signals.Set("scene", "play")
			s.Signals.Inc("plays")
			s.Signals.Set("gems", 0)
			s.MainCamera().FadeIn(fadeTime, arcade.ColorBlack, nil)

			gem := arcade.NewSprite("gem", s.Textures.Get("gem"))
			gem.SetPosition(float64(s.Width)/2, float64(s.Height)/2)
			gem.Interactable = true
			gem.OnClick = func(arcade.ClickContext) {
				s.Signals.Inc("gems")
				score.SetTextf("Gems: %d  (Esc for menu)", s.Signals.Int("gems"))
				env.play("collect")
				s.Tweens.KillTweensOf(gem)
				gem.SetPosition(randRange(s, 60, float64(s.Width)-60), randRange(s, 80, float64(s.Height)-60))
				gem.SetScale(0.6, 0.6)
				s.Tweens.Add(arcade.TweenConfig{
					Target:   gem,
					To:       map[arcade.Prop]float64{arcade.PropScaleX: 1, arcade.PropScaleY: 1},
					Duration: 0.2,
					Ease:     ease.OutBack,
				})
			}
			s.Add(gem)
			score = label(s, 10, 10, "Gems: 0  (Esc for menu)")
			return nil
		},
		Update: func(s *arcade.Scene, dt float64) error {
			if !leaving && s.Keys.JustPressed(ebiten.KeyEscape) {
				leaving = true
				switchScene(s, "menu")
			}
			return nil
		},
	}
	return []arcade.SceneConfig{menu, play}
}
