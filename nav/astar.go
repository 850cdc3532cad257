package nav

import (
	"container/heap"

	"github.com/jakecoffman/cp"
)

// Pathfinder runs A* on the uniform grid induced by CellSize.
type Pathfinder struct {
	CellSize int
	// MaxExpansions caps popped nodes per search; zero means unlimited.
	MaxExpansions int
}

// Result is a search outcome with instrumentation.
type Result struct {
	Path     []cp.Vector
	Expanded int
	Reached  bool
}

// FindPath returns the cell-centre waypoints from start's cell to goal's
// cell, start cell included, or nil when the goal cannot be reached.
func (p Pathfinder) FindPath(walkable Walkable, start, goal cp.Vector, bounds Bounds) []cp.Vector {
	return p.Search(walkable, start, goal, bounds).Path
}

// Search is FindPath with expansion statistics.
func (p Pathfinder) Search(walkable Walkable, start, goal cp.Vector, bounds Bounds) Result {
	cell := p.CellSize
	if cell <= 0 {
		cell = DefaultCellSize
	}
	if walkable == nil {
		return Result{}
	}

	startC := ToCell(start, cell)
	goalC := ToCell(goal, cell)

	open := &openSet{}
	heap.Init(open)
	seq := 0
	heap.Push(open, &openItem{pos: startC, f: heuristic(startC, goalC), g: 0, seq: seq})

	cameFrom := make(map[Cell]Cell, 128)
	gScore := map[Cell]int{startC: 0}

	res := Result{}
	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		if current.g > gScore[current.pos] {
			// superseded by a cheaper push
			continue
		}
		if p.MaxExpansions > 0 && res.Expanded >= p.MaxExpansions {
			return res
		}
		res.Expanded++

		if current.pos == goalC {
			res.Path = reconstructPath(cameFrom, current.pos, cell)
			res.Reached = true
			return res
		}

		for _, n := range neighbors(current.pos) {
			wx, wy := CellCenter(n, cell)
			if !bounds.contains(wx, wy) || !walkable(wx, wy) {
				continue
			}
			tentative := current.g + 1
			if prev, seen := gScore[n]; seen && tentative >= prev {
				continue
			}
			cameFrom[n] = current.pos
			gScore[n] = tentative
			seq++
			heap.Push(open, &openItem{pos: n, f: tentative + heuristic(n, goalC), g: tentative, seq: seq})
		}
	}
	return res
}

func reconstructPath(cameFrom map[Cell]Cell, goal Cell, cellSize int) []cp.Vector {
	cells := []Cell{goal}
	cur := goal
	for {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		cells = append(cells, prev)
		cur = prev
	}
	path := make([]cp.Vector, len(cells))
	for i, c := range cells {
		path[len(cells)-1-i] = cellCenterVec(c, cellSize)
	}
	return path
}

func neighbors(c Cell) [4]Cell {
	return [4]Cell{
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X, Y: c.Y - 1},
	}
}

func heuristic(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type openItem struct {
	pos   Cell
	f     int
	g     int
	seq   int
	index int
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
