package nav

import "container/heap"

// Grid is a rectangular walkability map.
type Grid struct {
	Rows, Cols int
	open       []bool
}

// NewGrid creates a grid with every cell blocked.
func NewGrid(rows, cols int) *Grid {
	return &Grid{Rows: rows, Cols: cols, open: make([]bool, rows*cols)}
}

// In reports whether (r, c) is inside the grid.
func (g *Grid) In(r, c int) bool {
	return r >= 0 && r < g.Rows && c >= 0 && c < g.Cols
}

// Set marks (r, c) walkable or blocked. Out-of-range cells are ignored.
func (g *Grid) Set(r, c int, walkable bool) {
	if g.In(r, c) {
		g.open[r*g.Cols+c] = walkable
	}
}

// Walkable reports whether (r, c) can be entered.
func (g *Grid) Walkable(r, c int) bool {
	return g.In(r, c) && g.open[r*g.Cols+c]
}

type node struct {
	cell   Cell
	g, f   int
	parent int
	index  int
}

type openSet []*node

func (s openSet) Len() int { return len(s) }
func (s openSet) Less(i, j int) bool {
	if s[i].f != s[j].f {
		return s[i].f < s[j].f
	}
	return s[i].g > s[j].g
}
func (s openSet) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
	s[i].index = i
	s[j].index = j
}
func (s *openSet) Push(x any) {
	n := x.(*node)
	n.index = len(*s)
	*s = append(*s, n)
}
func (s *openSet) Pop() any {
	old := *s
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*s = old[:len(old)-1]
	n.index = -1
	return n
}

// FindPath returns the cells from start to goal inclusive using 4-way A*
// with a Manhattan heuristic, or nil when goal is unreachable or either end
// is blocked.
func (g *Grid) FindPath(start, goal Cell) []Cell {
	if !g.Walkable(start.Row, start.Col) || !g.Walkable(goal.Row, goal.Col) {
		return nil
	}
	idx := func(c Cell) int { return c.Row*g.Cols + c.Col }
	nodes := make(map[int]*node)
	closed := make([]bool, g.Rows*g.Cols)

	s := &node{cell: start, f: manhattan(start, goal), parent: -1}
	nodes[idx(start)] = s
	open := &openSet{}
	heap.Push(open, s)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		ci := idx(cur.cell)
		if cur.cell == goal {
			return g.unwind(nodes, ci)
		}
		closed[ci] = true
		for _, d := range dirs {
			nc := Cell{cur.cell.Row + d.dr, cur.cell.Col + d.dc}
			if !g.Walkable(nc.Row, nc.Col) {
				continue
			}
			ni := idx(nc)
			if closed[ni] {
				continue
			}
			cost := cur.g + 1
			n, seen := nodes[ni]
			if !seen {
				n = &node{cell: nc, g: cost, f: cost + manhattan(nc, goal), parent: ci}
				nodes[ni] = n
				heap.Push(open, n)
				continue
			}
			if cost < n.g {
				n.g, n.f, n.parent = cost, cost+manhattan(nc, goal), ci
				heap.Fix(open, n.index)
			}
		}
	}
	return nil
}

func (g *Grid) unwind(nodes map[int]*node, i int) []Cell {
	var path []Cell
	for i >= 0 {
		n := nodes[i]
		path = append(path, n.cell)
		i = n.parent
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

func manhattan(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
