// Package nav implements grid A* path-finding over a scene's walkability
// predicate.
package nav

import (
	"math"

	"github.com/jakecoffman/cp"
)

const DefaultCellSize = 20

// Walkable reports whether the world pixel (x, y) can be stood on.
type Walkable func(x, y int) bool

// Cell is a grid coordinate.
type Cell struct {
	X int
	Y int
}

// Bounds is the world size searched by the planner.
type Bounds struct {
	Width  int
	Height int
}

func (b Bounds) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// ToCell snaps a world point to its containing cell.
func ToCell(p cp.Vector, cellSize int) Cell {
	s := float64(cellSize)
	return Cell{X: int(math.Floor(p.X / s)), Y: int(math.Floor(p.Y / s))}
}

// CellCenter returns the world representative point of c.
func CellCenter(c Cell, cellSize int) (x, y int) {
	half := cellSize / 2
	return c.X*cellSize + half, c.Y*cellSize + half
}

func cellCenterVec(c Cell, cellSize int) cp.Vector {
	x, y := CellCenter(c, cellSize)
	return cp.Vector{X: float64(x), Y: float64(y)}
}

// NearestWalkable searches offsets of p within +/-radius in step increments
// and returns the walkable candidate closest to p. Ties keep scan order
// (dy outer, dx inner).
func NearestWalkable(walkable Walkable, p cp.Vector, radius, step int) (cp.Vector, bool) {
	if walkable == nil {
		return cp.Vector{}, false
	}
	if walkable(int(p.X), int(p.Y)) {
		return p, true
	}
	if step <= 0 || radius <= 0 {
		return cp.Vector{}, false
	}
	best := cp.Vector{}
	bestDist := math.Inf(1)
	found := false
	for dy := -radius; dy <= radius; dy += step {
		for dx := -radius; dx <= radius; dx += step {
			if dx == 0 && dy == 0 {
				continue
			}
			c := cp.Vector{X: p.X + float64(dx), Y: p.Y + float64(dy)}
			if !walkable(int(c.X), int(c.Y)) {
				continue
			}
			if d := c.DistanceSq(p); d < bestDist {
				best, bestDist, found = c, d, true
			}
		}
	}
	return best, found
}
