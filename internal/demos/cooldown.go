package demos

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/behavior"
)

const skillSize = 96

type skill struct {
	name     string
	key      ebiten.Key
	duration float64
	cd       *behavior.Cooldown
	shade    *arcade.Node
}

func init() {
	register(Demo{
		Name:        "cooldown",
		Description: "three skills on Q, W and E (or click) gated by cooldowns of 1, 3 and 5 seconds",
		Scenes:      cooldownScenes,
	})
}

func cooldownScenes(env Env) []arcade.SceneConfig {
	var (
		skills []*skill
		status *arcade.Node
	)
	cast := func(s *arcade.Scene, sk *skill) {
		if !sk.cd.Trigger() {
			s.Signals.Inc("blocked")
			env.play("error")
			return
		}
		s.Signals.Inc("casts")
		s.Signals.Inc("casts." + sk.name)
		env.play("shoot")
		s.MainCamera().Flash(0.15, colorAccent.WithAlpha(0.4))
	}
	return []arcade.SceneConfig{{
		Key:        "cooldown",
		Background: colorBg,
		Create: func(s *arcade.Scene) error {
			skills = []*skill{
				{name: "bolt", key: ebiten.KeyQ, duration: 1},
				{name: "shield", key: ebiten.KeyW, duration: 3},
				{name: "nova", key: ebiten.KeyE, duration: 5},
			}
			s.Signals.Set("casts", 0)
			s.Signals.Set("blocked", 0)
			for i, sk := range skills {
				sk.cd = behavior.NewCooldown(s.Clock, sk.duration)
				x := 250 + float64(i)*150
				y := float64(s.Height) / 2
				button(s, sk.name, x, y, skillSize, skillSize, sk.name, func() { cast(s, sk) })

				// The shade shrinks from the top as the skill recovers.
				sk.shade = arcade.NewRect(sk.name+"_shade", skillSize, 0, arcade.ColorBlack.WithAlpha(0.6))
				sk.shade.SetPivot(0.5, 1)
				sk.shade.SetPosition(x, y+skillSize/2)
				sk.shade.RenderLayer = 5
				s.Add(sk.shade)
			}
			status = label(s, 10, 10, "")
			return nil
		},
		Update: func(s *arcade.Scene, dt float64) error {
			for _, sk := range skills {
				if s.Keys.JustPressed(sk.key) {
					cast(s, sk)
				}
				sk.shade.SetScale(skillSize, skillSize*(1-sk.cd.Progress()))
				s.Signals.Set("ready."+sk.name, sk.cd.Ready())
			}
			status.SetTextf("Casts: %d  Blocked: %d", s.Signals.Int("casts"), s.Signals.Int("blocked"))
			return nil
		},
	}}
}
