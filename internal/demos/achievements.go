package demos

import (
	"context"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/achievement"
	"github.com/tanema/gween/ease"
)

// comboWindow is how close together clicks must land to build a combo.
const comboWindow = 0.5

func init() {
	register(Demo{
		Name:        "achievements",
		Description: "click the button to unlock achievements; progress is saved between runs (R resets)",
		Scenes:      achievementScenes,
	})
}

func achievementConfig() achievement.Config {
	return achievement.Config{
		Definitions: []achievement.Definition{
			{ID: "first", Name: "First Click", Description: "click once", Target: 1},
			{ID: "ten", Name: "Clicker", Description: "click ten times", Target: 10},
			{ID: "combo", Name: "Combo", Description: "five quick clicks in a row", Target: 5},
		},
		Meta: achievement.Definition{ID: "master", Name: "Master", Description: "unlock every other achievement", Target: 3},
	}
}

func achievementScenes(env Env) []arcade.SceneConfig {
	var (
		tracker   *achievement.Tracker
		list      *arcade.Node
		popup     *arcade.Node
		combo     int
		lastClick float64
	)
	ctx := context.Background()
	persist := func(s *arcade.Scene) {
		if env.Store == nil {
			return
		}
		if err := tracker.Save(ctx, env.Store); err != nil {
			s.Signals.Log("%v", err)
		}
	}
	refresh := func(s *arcade.Scene) {
		var b strings.Builder
		for _, d := range tracker.Definitions() {
			mark := " "
			if tracker.Unlocked(d.ID) {
				mark = "x"
			}
			fmt.Fprintf(&b, "[%s] %s (%d/%d)\n", mark, d.Name, min(tracker.Value(d.ID), d.Target), d.Target)
		}
		meta := achievementConfig().Meta
		mark := " "
		if tracker.Unlocked(meta.ID) {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s", mark, meta.Name)
		list.SetText(b.String())
		s.Signals.Set("unlocked", tracker.UnlockedCount())
	}
	announce := func(s *arcade.Scene, unlocked []achievement.Definition) {
		for _, d := range unlocked {
			s.Signals.Log("unlocked %s", d.ID)
			popup.SetText("Unlocked: " + d.Name)
			popup.SetAlpha(1)
			s.Tweens.KillTweensOf(popup)
			s.Tweens.Add(arcade.TweenConfig{
				Target:   popup,
				To:       map[arcade.Prop]float64{arcade.PropAlpha: 0},
				Duration: 1.5,
				Delay:    0.5,
				Ease:     ease.InQuad,
			})
			env.play("unlock")
		}
		if len(unlocked) > 0 {
			persist(s)
		}
	}
	return []arcade.SceneConfig{{
		Key:        "achievements",
		Background: colorBg,
		Create: func(s *arcade.Scene) error {
			t, err := achievement.NewTracker(achievementConfig())
			if err != nil {
				return err
			}
			tracker = t
			if env.Store != nil {
				if err := tracker.Load(ctx, env.Store); err != nil {
					return err
				}
			}
			combo, lastClick = 0, -comboWindow

			s.Signals.Set("clicks", 0)
			list = label(s, 40, 40, "")
			popup = arcade.NewText("popup", "", 24)
			popup.SetPivot(0.5, 0.5)
			popup.SetPosition(float64(s.Width)/2, float64(s.Height)-80)
			popup.SetAlpha(0)
			s.Add(popup)

			button(s, "clicker", float64(s.Width)/2, float64(s.Height)/2, 200, 80, "Click me", func() {
				s.Signals.Inc("clicks")
				now := s.Clock.Now()
				if now-lastClick <= comboWindow {
					combo++
				} else {
					combo = 1
				}
				lastClick = now
				var unlocked []achievement.Definition
				for _, p := range []struct {
					id string
					v  int
				}{{"first", 1}, {"ten", tracker.Value("ten") + 1}, {"combo", combo}} {
					u, err := tracker.Progress(p.id, p.v)
					if err != nil {
						s.Signals.Log("%v", err)
						continue
					}
					unlocked = append(unlocked, u...)
				}
				announce(s, unlocked)
				refresh(s)
			})
			refresh(s)
			return nil
		},
		Update: func(s *arcade.Scene, dt float64) error {
			if s.Keys.JustPressed(ebiten.KeyR) {
				tracker.Reset()
				persist(s)
				refresh(s)
			}
			return nil
		},
	}}
}
