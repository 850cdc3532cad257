package mask

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	blockedMax = 64
	portalMin  = 240
)

// Image is a pixel-resolution mask decoded from a mask image. Near-black
// pixels are blocked, near-white pixels are portals and anything else is
// floor. Portal regions are 4-connected components of portal pixels,
// numbered from 0 in raster order of their first pixel.
type Image struct {
	width   int
	height  int
	blocked []bool
	portal  []int
	bounds  []Rect
}

// Load decodes a png, jpeg, bmp or webp mask from disk.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mask: open %s: %w", path, err)
	}
	defer f.Close()
	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("mask: decode %s: %w", path, err)
	}
	return m, nil
}

func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

func FromImage(img image.Image) *Image {
	b := img.Bounds()
	m := &Image{
		width:   b.Dx(),
		height:  b.Dy(),
		blocked: make([]bool, b.Dx()*b.Dy()),
		portal:  make([]int, b.Dx()*b.Dy()),
	}
	isPortal := make([]bool, len(m.portal))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			r, g, bl = r>>8, g>>8, bl>>8
			idx := y*m.width + x
			m.portal[idx] = noPortal
			switch {
			case r < blockedMax && g < blockedMax && bl < blockedMax:
				m.blocked[idx] = true
			case r > portalMin && g > portalMin && bl > portalMin:
				isPortal[idx] = true
			}
		}
	}
	m.label(isPortal)
	return m
}

func (m *Image) label(isPortal []bool) {
	queue := make([]int, 0, 256)
	for start, ok := range isPortal {
		if !ok || m.portal[start] != noPortal {
			continue
		}
		id := len(m.bounds)
		sx, sy := float64(start%m.width), float64(start/m.width)
		r := Rect{Left: sx, Right: sx, Top: sy, Bottom: sy}
		m.portal[start] = id
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			x, y := cur%m.width, cur/m.width
			r = union(r, Rect{Left: float64(x), Right: float64(x), Top: float64(y), Bottom: float64(y)})
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= m.width || ny >= m.height {
					continue
				}
				n := ny*m.width + nx
				if isPortal[n] && m.portal[n] == noPortal {
					m.portal[n] = id
					queue = append(queue, n)
				}
			}
		}
		m.bounds = append(m.bounds, r)
	}
}

func (m *Image) Size() (width, height int) {
	if m == nil {
		return 0, 0
	}
	return m.width, m.height
}

func (m *Image) IsWalkable(x, y int) bool {
	if m == nil || x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return !m.blocked[y*m.width+x]
}

func (m *Image) IsPortal(x, y int) (int, bool) {
	if m == nil || x < 0 || y < 0 || x >= m.width || y >= m.height {
		return 0, false
	}
	id := m.portal[y*m.width+x]
	if id == noPortal {
		return 0, false
	}
	return id, true
}

func (m *Image) Portals() []int {
	if m == nil {
		return nil
	}
	ids := make([]int, len(m.bounds))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func (m *Image) PortalBounds(id int) (Rect, bool) {
	if m == nil || id < 0 || id >= len(m.bounds) {
		return Rect{}, false
	}
	return m.bounds[id], true
}
