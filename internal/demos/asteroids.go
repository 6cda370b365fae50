package demos

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/behavior"
	"github.com/phanxgames/arcade/physics"
)

const (
	asteroidCount = 6
	wrapMargin    = 24
	shipTurn      = 3.5
	shipThrust    = 220
)

func init() {
	register(Demo{
		Name:        "asteroids",
		Description: "drifting rocks and a thrusting ship that wrap around the screen edges",
		Scenes:      asteroidsScenes,
	})
}

func asteroidsScenes(Env) []arcade.SceneConfig {
	var (
		world  *physics.World
		ship   *physics.Body
		rocks  []*physics.Body
		status *arcade.Node
	)
	return []arcade.SceneConfig{{
		Key:        "asteroids",
		Background: arcade.ColorBlack,
		Preload: func(s *arcade.Scene) error {
			for i := range 3 {
				key := fmt.Sprintf("rock%d", i)
				if _, err := shapeTexture(s, key, arcade.RegularPolygonPoints(6+i, 18+6*float64(i), 0), colorRock); err != nil {
					return err
				}
			}
			// The ship points along +X so rotation matches velocity angles.
			_, err := shapeTexture(s, "ship", arcade.RegularPolygonPoints(3, 14, 0), colorShip)
			return err
		},
		Create: func(s *arcade.Scene) error {
			world = physics.Attach(s)
			rocks = rocks[:0]
			for i := range asteroidCount {
				n := arcade.NewSprite("rock", s.Textures.Get(fmt.Sprintf("rock%d", i%3)))
				n.SetPosition(randRange(s, 0, float64(s.Width)), randRange(s, 0, float64(s.Height)))
				s.Add(n)
				b := world.Enable(n)
				physics.SetVelocityFromAngle(b, randRange(s, 0, 2*math.Pi), randRange(s, 40, 120))
				spin := randRange(s, -1.5, 1.5)
				n.OnUpdate = func(dt float64) { n.SetRotation(n.Rotation + spin*dt) }
				rocks = append(rocks, b)
			}

			n := arcade.NewSprite("ship", s.Textures.Get("ship"))
			n.SetPosition(float64(s.Width)/2, float64(s.Height)/2)
			n.SetRotation(-math.Pi / 2)
			s.Add(n)
			ship = world.Enable(n)
			ship.Drag = arcade.Vec2{X: 60, Y: 60}
			ship.MaxSpeed = 300

			s.Signals.Set("wraps", 0)
			s.Signals.Set("shipWraps", 0)
			status = label(s, 10, 10, "Wraps: 0")
			return nil
		},
		Update: func(s *arcade.Scene, dt float64) error {
			turn := s.Keys.Cursors().X
			ship.Node.SetRotation(ship.Node.Rotation + turn*shipTurn*dt)
			if s.Keys.AnyDown(ebiten.KeyArrowUp, ebiten.KeyW) {
				ship.Acceleration = physics.VelocityFromAngle(ship.Node.Rotation, shipThrust)
			} else {
				ship.Acceleration = arcade.Vec2{}
			}

			bounds := s.Bounds()
			for _, r := range rocks {
				if behavior.Wrap(r.Node, bounds, wrapMargin) {
					s.Signals.Inc("wraps")
				}
			}
			if behavior.Wrap(ship.Node, bounds, wrapMargin) {
				s.Signals.Inc("shipWraps")
			}
			status.SetTextf("Wraps: %d  Ship: %d", s.Signals.Int("wraps"), s.Signals.Int("shipWraps"))
			s.Signals.Set("shipSpeed", ship.Speed())
			return nil
		},
	}}
}
