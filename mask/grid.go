package mask

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalidGrid = errors.New("mask: invalid grid")

const noPortal = -1

// Grid is a coarse mask described by ASCII rows. Each character covers a
// Scale x Scale square of world units:
//
//	#  blocked
//	.  walkable
//	0-9 portal with that id (walkable)
type Grid struct {
	Scale int

	cols    int
	rows    int
	blocked []bool
	portal  []int
	bounds  map[int]Rect
}

// ParseGrid builds a grid mask from rows of equal length.
func ParseGrid(rows []string, scale int) (*Grid, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: scale must be positive, got %d", ErrInvalidGrid, scale)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidGrid)
	}
	cols := len(rows[0])
	g := &Grid{
		Scale:   scale,
		cols:    cols,
		rows:    len(rows),
		blocked: make([]bool, cols*len(rows)),
		portal:  make([]int, cols*len(rows)),
	}
	for y, row := range rows {
		row = strings.TrimRight(row, "\r")
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidGrid, y, len(row), cols)
		}
		for x := 0; x < cols; x++ {
			idx := y*cols + x
			g.portal[idx] = noPortal
			switch ch := row[x]; {
			case ch == '#':
				g.blocked[idx] = true
			case ch == '.':
			case ch >= '0' && ch <= '9':
				g.portal[idx] = int(ch - '0')
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d col %d", ErrInvalidGrid, ch, y, x)
			}
		}
	}
	g.rebuildBounds()
	return g, nil
}

// MustParseGrid is ParseGrid for fixtures; it panics on error.
func MustParseGrid(scale int, rows ...string) *Grid {
	g, err := ParseGrid(rows, scale)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the world size covered by the grid.
func (g *Grid) Size() (width, height int) {
	if g == nil {
		return 0, 0
	}
	return g.cols * g.Scale, g.rows * g.Scale
}

// SetBlocked toggles the cell containing world point (x, y).
func (g *Grid) SetBlocked(x, y int, blocked bool) {
	idx, ok := g.index(x, y)
	if !ok {
		return
	}
	g.blocked[idx] = blocked
}

func (g *Grid) IsWalkable(x, y int) bool {
	idx, ok := g.index(x, y)
	if !ok {
		return false
	}
	return !g.blocked[idx]
}

func (g *Grid) IsPortal(x, y int) (int, bool) {
	idx, ok := g.index(x, y)
	if !ok || g.portal[idx] == noPortal {
		return 0, false
	}
	return g.portal[idx], true
}

func (g *Grid) Portals() []int {
	if g == nil {
		return nil
	}
	ids := make([]int, 0, len(g.bounds))
	for id := range g.bounds {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (g *Grid) PortalBounds(id int) (Rect, bool) {
	if g == nil {
		return Rect{}, false
	}
	r, ok := g.bounds[id]
	return r, ok
}

func (g *Grid) index(x, y int) (int, bool) {
	if g == nil || x < 0 || y < 0 {
		return 0, false
	}
	cx := x / g.Scale
	cy := y / g.Scale
	if cx >= g.cols || cy >= g.rows {
		return 0, false
	}
	return cy*g.cols + cx, true
}

func (g *Grid) rebuildBounds() {
	g.bounds = map[int]Rect{}
	s := float64(g.Scale)
	for idx, id := range g.portal {
		if id == noPortal {
			continue
		}
		x := float64(idx % g.cols)
		y := float64(idx / g.cols)
		cell := Rect{Left: x * s, Right: (x + 1) * s, Top: y * s, Bottom: (y + 1) * s}
		r, ok := g.bounds[id]
		if !ok {
			g.bounds[id] = cell
			continue
		}
		g.bounds[id] = union(r, cell)
	}
}

func union(a, b Rect) Rect {
	if b.Left < a.Left {
		a.Left = b.Left
	}
	if b.Right > a.Right {
		a.Right = b.Right
	}
	if b.Top < a.Top {
		a.Top = b.Top
	}
	if b.Bottom > a.Bottom {
		a.Bottom = b.Bottom
	}
	return a
}
