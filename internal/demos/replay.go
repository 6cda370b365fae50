package demos

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/replay"
)

const recordWindow = 5

func init() {
	register(Demo{
		Name:        "replay",
		Description: "click to drop markers for five seconds, then watch the take replay (S cycles speed)",
		Scenes:      replayScenes,
	})
}

func replayScenes(env Env) []arcade.SceneConfig {
	var (
		rec     *replay.Recorder
		player  *replay.Player
		markers *arcade.Node
		status  *arcade.Node
	)
	drop := func(s *arcade.Scene, x, y float64, c arcade.Color) {
		m := arcade.NewSprite("marker", s.Textures.Get("drop"))
		m.Color = c
		m.SetPosition(x, y)
		m.SetScale(0.2, 0.2)
		markers.AddChild(m)
		s.Tweens.Add(arcade.TweenConfig{
			Target:   m,
			To:       map[arcade.Prop]float64{arcade.PropScaleX: 1, arcade.PropScaleY: 1},
			Duration: 0.15,
		})
	}
	refresh := func(s *arcade.Scene) {
		switch {
		case rec.Recording():
			status.SetTextf("Recording %.1fs  Actions: %d", rec.Remaining(), s.Signals.Int("recorded"))
		case player != nil:
			status.SetTextf("Replay x%.1f  %3.0f%%  Actions: %d/%d", player.Speed(), 100*player.Progress(), player.Played(), player.Len())
		default:
			status.SetText("Nothing recorded")
		}
	}
	return []arcade.SceneConfig{{
		Key:        "replay",
		Background: colorBg,
		Preload: func(s *arcade.Scene) error {
			_, err := circleTexture(s, "drop", 10, arcade.ColorWhite)
			return err
		},
		Create: func(s *arcade.Scene) error {
			player = nil
			pad := arcade.NewRect("pad", float64(s.Width), float64(s.Height), colorBg)
			pad.SetPivot(0, 0)
			pad.Interactable = true
			s.Add(pad)
			markers = arcade.NewContainer("markers")
			s.Add(markers)

			s.Signals.Set("recorded", 0)
			s.Signals.Set("replayed", 0)
			s.Signals.Set("replaying", false)
			s.Signals.Set("replayDone", false)
			s.Signals.Set("speed", 1.0)
			status = label(s, 10, 10, "")

			rec = replay.NewRecorder(recordWindow, func(actions []replay.Action) {
				markers.RemoveChildren()
				p, err := replay.NewPlayer(actions, recordWindow, func(a replay.Action) {
					drop(s, a.X, a.Y, colorStar)
					s.Signals.Inc("replayed")
				})
				if err != nil {
					s.Signals.Log("%v", err)
					return
				}
				p.OnDone(func() {
					s.Signals.Set("replaying", false)
					s.Signals.Set("replayDone", true)
					env.play("unlock")
				})
				player = p
				player.Play()
				s.Signals.Set("replaying", true)
			})
			s.AddSystem(rec)
			rec.Start()

			pad.OnClick = func(ctx arcade.ClickContext) {
				if !rec.Recording() {
					return
				}
				rec.Record("click", ctx.GlobalX, ctx.GlobalY)
				drop(s, ctx.GlobalX, ctx.GlobalY, colorBall)
				s.Signals.Inc("recorded")
			}
			return nil
		},
		Update: func(s *arcade.Scene, dt float64) error {
			if player != nil {
				if s.Keys.JustPressed(ebiten.KeyS) {
					s.Signals.Set("speed", player.CycleSpeed())
				}
				player.Update(dt)
				s.Signals.Set("progress", player.Progress())
			}
			refresh(s)
			return nil
		},
	}}
}
