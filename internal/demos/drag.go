package demos

import (
	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/behavior"
	"github.com/phanxgames/arcade/ecs"
	"github.com/yohamta/donburi"
)

func init() {
	register(Demo{
		Name:        "drag",
		Description: "drag shapes around; they spring back to where they started",
		Scenes:      dragScenes,
	})
}

// dragShape is stored on each shape's entity.
type dragShape struct {
	Kind  string
	Drags int
}

var dragShapeComponent = donburi.NewComponentType[dragShape]()

func dragScenes(env Env) []arcade.SceneConfig {
	shapes := []struct {
		key string
		pts []arcade.Vec2
		c   arcade.Color
	}{
		{"hexagon", arcade.HexagonPoints(40), colorBall},
		{"starshape", arcade.StarPoints(5, 18, 42), colorStar},
		{"triangle", arcade.TrianglePoints(44), colorEnemy},
	}
	var (
		store  *ecs.Store
		status *arcade.Node
	)
	refresh := func(s *arcade.Scene) {
		status.SetTextf("Drags: %d  Returned: %d", s.Signals.Int("drags"), s.Signals.Int("returns"))
	}
	return []arcade.SceneConfig{{
		Key:        "drag",
		Background: colorBg,
		Preload: func(s *arcade.Scene) error {
			for _, sh := range shapes {
				if _, err := shapeTexture(s, sh.key, sh.pts, sh.c); err != nil {
					return err
				}
			}
			return nil
		},
		Create: func(s *arcade.Scene) error {
			store = ecs.NewStore(donburi.NewWorld())
			s.SetEntityStore(store)
			s.AddSystem(store)
			ecs.InteractionEventType.Subscribe(store.World(), func(w donburi.World, ev arcade.InteractionEvent) {
				if ev.Type != arcade.EventDragStart {
					return
				}
				e, ok := store.Entity(ev.EntityID)
				if !ok {
					return
				}
				sh := dragShapeComponent.Get(w.Entry(e))
				sh.Drags++
				s.Signals.Set("drags."+sh.Kind, sh.Drags)
			})

			s.Signals.Set("drags", 0)
			s.Signals.Set("returns", 0)
			status = label(s, 10, 10, "")
			refresh(s)

			for i, sh := range shapes {
				n := arcade.NewSprite(sh.key, s.Textures.Get(sh.key))
				n.SetPosition(200+float64(i)*200, float64(s.Height)/2)
				n.HitShape = arcade.PolygonHitShape(arcade.TranslatePoints(sh.pts, -arcade.PointsBounds(sh.pts).X, -arcade.PointsBounds(sh.pts).Y))
				n.OnDragStart = func(arcade.DragContext) {
					s.Signals.Inc("drags")
					refresh(s)
				}
				s.Add(n)

				e := store.Attach(n, dragShapeComponent)
				dragShapeComponent.SetValue(store.World().Entry(e), dragShape{Kind: sh.key})

				dr := behavior.NewDragReturn(s.Tweens, n, 0.4)
				dr.OnReturned = func(*arcade.Node) {
					s.Signals.Inc("returns")
					env.play("collect")
					refresh(s)
				}
			}
			return nil
		},
	}}
}
