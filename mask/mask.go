// Package mask holds the collision mask collaborator used by navigation:
// walkability and portal queries over a scene's world-space pixels.
package mask

import "github.com/jakecoffman/cp"

// Mask answers walkability and portal queries for one scene.
type Mask interface {
	IsWalkable(x, y int) bool
	// IsPortal reports the portal id covering (x, y), if any.
	IsPortal(x, y int) (int, bool)
	// Portals lists portal ids in ascending order.
	Portals() []int
	PortalBounds(id int) (Rect, bool)
}

// Rect is an axis-aligned world rectangle. Y grows downwards, so Top <= Bottom.
type Rect struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

func (r Rect) Center() cp.Vector {
	return cp.Vector{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

func (r Rect) Contains(p cp.Vector) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Footprint adapts m to a walkability predicate for a width x height box
// centred on the queried point: the centre and all four corners must be
// walkable. A zero-sized footprint degrades to a point query.
func Footprint(m Mask, width, height float64) func(x, y int) bool {
	if m == nil {
		return func(int, int) bool { return false }
	}
	if width <= 0 && height <= 0 {
		return m.IsWalkable
	}
	hw := int(width / 2)
	hh := int(height / 2)
	return func(x, y int) bool {
		return m.IsWalkable(x, y) &&
			m.IsWalkable(x-hw, y-hh) &&
			m.IsWalkable(x+hw, y-hh) &&
			m.IsWalkable(x-hw, y+hh) &&
			m.IsWalkable(x+hw, y+hh)
	}
}
