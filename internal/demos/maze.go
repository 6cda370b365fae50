package demos

import (
	"github.com/phanxgames/arcade"
	"github.com/phanxgames/arcade/nav"
)

const (
	mazeRows  = 11
	mazeCols  = 15
	mazeTile  = 24
	walkDelay = 0.08
)

func init() {
	register(Demo{
		Name:        "maze",
		Description: "generated maze; click a cell and the walker follows the A* path there",
		Width:       800,
		Height:      640,
		Scenes:      mazeScenes,
	})
}

func mazeScenes(env Env) []arcade.SceneConfig {
	var (
		grid   *nav.Grid
		walker *arcade.Node
		pos    nav.Cell
		path   []nav.Cell
		status *arcade.Node
		origin arcade.Vec2
	)
	cellCenter := func(c nav.Cell) (float64, float64) {
		return origin.X + (float64(c.Col)+0.5)*mazeTile, origin.Y + (float64(c.Row)+0.5)*mazeTile
	}
	refresh := func(s *arcade.Scene) {
		status.SetTextf("Path: %d  Steps: %d  Arrivals: %d", s.Signals.Int("pathLength"), s.Signals.Int("steps"), s.Signals.Int("arrivals"))
	}
	goTo := func(s *arcade.Scene, goal nav.Cell) {
		p := grid.FindPath(pos, goal)
		if p == nil {
			s.Signals.Inc("unreachable")
			env.play("error")
			return
		}
		path = p[1:]
		s.Signals.Set("pathLength", len(p)-1)
		s.Signals.Set("goalRow", goal.Row)
		s.Signals.Set("goalCol", goal.Col)
		refresh(s)
	}
	return []arcade.SceneConfig{{
		Key:        "maze",
		Background: colorBg,
		Preload: func(s *arcade.Scene) error {
			_, err := circleTexture(s, "walker", mazeTile/2-3, colorStar)
			return err
		},
		Create: func(s *arcade.Scene) error {
			m := nav.GenerateMaze(mazeRows, mazeCols, s.Rand.Uint64())
			grid = m.Grid()
			origin = arcade.Vec2{
				X: (float64(s.Width) - float64(grid.Cols)*mazeTile) / 2,
				Y: (float64(s.Height) - float64(grid.Rows)*mazeTile) / 2,
			}

			board := arcade.NewContainer("board")
			board.Interactable = true
			s.Add(board)
			for r := range grid.Rows {
				for c := range grid.Cols {
					cell := nav.Cell{Row: r, Col: c}
					x, y := cellCenter(cell)
					tile := arcade.NewRect("tile", mazeTile, mazeTile, colorPanel)
					if !grid.Walkable(r, c) {
						tile.Color = colorWall
					}
					tile.SetPosition(x, y)
					tile.Interactable = true
					tile.OnClick = func(arcade.ClickContext) { goTo(s, cell) }
					board.AddChild(tile)
				}
			}

			pos = nav.GridCell(0, 0)
			walker = arcade.NewSprite("walker", s.Textures.Get("walker"))
			walker.SetPosition(cellCenter(pos))
			walker.ZIndex = 1
			s.Add(walker)

			s.Signals.Set("pathLength", 0)
			s.Signals.Set("steps", 0)
			s.Signals.Set("arrivals", 0)
			s.Signals.Set("row", pos.Row)
			s.Signals.Set("col", pos.Col)
			status = label(s, 10, 10, "")
			refresh(s)

			s.Clock.Loop(walkDelay, func() {
				if len(path) == 0 {
					return
				}
				pos, path = path[0], path[1:]
				x, y := cellCenter(pos)
				s.Tweens.KillTweensOf(walker)
				s.Tweens.MoveTo(walker, x, y, walkDelay, nil, nil)
				s.Signals.Inc("steps")
				s.Signals.Set("row", pos.Row)
				s.Signals.Set("col", pos.Col)
				if len(path) == 0 {
					s.Signals.Inc("arrivals")
					env.play("collect")
				}
				refresh(s)
			})

			// Walk to the far corner right away so the demo moves on its own.
			goTo(s, nav.GridCell(mazeRows-1, mazeCols-1))
			return nil
		},
	}}
}
