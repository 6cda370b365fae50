// Package arcade is a small retained-mode toolkit for procedural 2D game
// demos on [Ebitengine].
//
// A game is a set of scenes. Each scene generates its textures in Preload,
// builds nodes in Create, and mutates them in Update, by tweens, or from
// timer callbacks:
//
//	err := arcade.Run(arcade.GameConfig{
//		Title: "Stars", Width: 800, Height: 600,
//		Scenes: []arcade.SceneConfig{{
//			Key: "main",
//			Preload: func(s *arcade.Scene) error {
//				g := arcade.NewGraphics().FillStyle(arcade.RGB(0xffcc00))
//				g.FillPolygon(arcade.TranslatePoints(arcade.StarPoints(5, 6, 14), 14, 14))
//				_, err := g.GenerateTexture(s.Textures, "star", 28, 28)
//				return err
//			},
//			Create: func(s *arcade.Scene) error {
//				star := arcade.NewSprite("star", s.Textures.Get("star"))
//				star.SetPosition(400, 300)
//				s.Add(star)
//				return nil
//			},
//		}},
//	})
//
// # Scene graph
//
// Every visual element is a [Node]: containers, sprites over a texture,
// polygon meshes, and text. Children inherit their parent's transform and
// alpha. Sprite and text pivots are fractions of the node size, so the
// default sprite origin is its centre.
//
// # Time
//
// [Clock] runs timers in scene time, [Tweens] interpolates node properties
// with [gween] easing, and [Scene.Step] advances both deterministically
// without a window, which is how tests and scripted runs drive a scene.
//
// # Verification
//
// Demos publish counters through [Signals]. A JSON [TestRunner] script can
// click, drag, press keys, wait, take screenshots, and assert on signals.
//
// Physics, reusable game behaviors, path finding, persistence, replay,
// sound, and the ECS bridge live in subpackages.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package arcade
