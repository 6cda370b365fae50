// Package nav generates grid mazes and finds paths across walkable grids.
package nav

import (
	"math/rand/v2"
)

// Wall bits on a maze cell.
const (
	WallN uint8 = 1 << iota
	WallE
	WallS
	WallW
	wallAll = WallN | WallE | WallS | WallW
)

// Maze is a rows x cols grid of cells, each holding its remaining walls.
type Maze struct {
	Rows, Cols int
	cells      []uint8
}

// Cell is a grid coordinate.
type Cell struct {
	Row, Col int
}

var dirs = [4]struct {
	dr, dc     int
	wall, back uint8
}{
	{-1, 0, WallN, WallS},
	{0, 1, WallE, WallW},
	{1, 0, WallS, WallN},
	{0, -1, WallW, WallE},
}

// GenerateMaze carves a perfect maze with an iterative recursive
// backtracker starting at the top-left cell. The same seed yields the same
// maze.
func GenerateMaze(rows, cols int, seed uint64) *Maze {
	m := &Maze{Rows: max(rows, 1), Cols: max(cols, 1)}
	m.cells = make([]uint8, m.Rows*m.Cols)
	for i := range m.cells {
		m.cells[i] = wallAll
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
	visited := make([]bool, len(m.cells))
	stack := []Cell{{0, 0}}
	visited[0] = true

	var options []int
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		options = options[:0]
		for i, d := range dirs {
			r, c := cur.Row+d.dr, cur.Col+d.dc
			if m.In(r, c) && !visited[m.index(r, c)] {
				options = append(options, i)
			}
		}
		if len(options) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := dirs[options[rng.IntN(len(options))]]
		next := Cell{cur.Row + d.dr, cur.Col + d.dc}
		m.cells[m.index(cur.Row, cur.Col)] &^= d.wall
		m.cells[m.index(next.Row, next.Col)] &^= d.back
		visited[m.index(next.Row, next.Col)] = true
		stack = append(stack, next)
	}
	return m
}

func (m *Maze) index(r, c int) int { return r*m.Cols + c }

// In reports whether (r, c) is inside the maze.
func (m *Maze) In(r, c int) bool {
	return r >= 0 && r < m.Rows && c >= 0 && c < m.Cols
}

// Walls returns the wall bits of cell (r, c).
func (m *Maze) Walls(r, c int) uint8 {
	return m.cells[m.index(r, c)]
}

// HasWall reports whether cell (r, c) has the given wall.
func (m *Maze) HasWall(r, c int, wall uint8) bool {
	return m.Walls(r, c)&wall != 0
}

// Grid converts the maze into a (2*Rows+1) x (2*Cols+1) walkable grid where
// maze cell (r, c) maps to grid cell (2r+1, 2c+1).
func (m *Maze) Grid() *Grid {
	g := NewGrid(2*m.Rows+1, 2*m.Cols+1)
	for r := range m.Rows {
		for c := range m.Cols {
			gr, gc := 2*r+1, 2*c+1
			g.Set(gr, gc, true)
			if !m.HasWall(r, c, WallE) {
				g.Set(gr, gc+1, true)
			}
			if !m.HasWall(r, c, WallS) {
				g.Set(gr+1, gc, true)
			}
		}
	}
	return g
}

// GridCell maps maze cell (r, c) to its grid coordinate.
func GridCell(r, c int) Cell {
	return Cell{2*r + 1, 2*c + 1}
}
