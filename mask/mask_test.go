package mask

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrid(t *testing.T) {
	g, err := ParseGrid([]string{
		"#####",
		"#..0#",
		"#..0#",
		"#1..#",
		"#####",
	}, 10)
	require.NoError(t, err)

	w, h := g.Size()
	assert.Equal(t, 50, w)
	assert.Equal(t, 50, h)

	cases := []struct {
		name     string
		x, y     int
		walkable bool
		portal   int
		isPortal bool
	}{
		{"wall", 5, 5, false, 0, false},
		{"floor", 15, 15, true, 0, false},
		{"portal_zero", 35, 25, true, 0, true},
		{"portal_one", 15, 35, true, 1, true},
		{"outside", 60, 5, false, 0, false},
		{"negative", -1, 15, false, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.walkable, g.IsWalkable(c.x, c.y))
			id, ok := g.IsPortal(c.x, c.y)
			assert.Equal(t, c.isPortal, ok)
			if c.isPortal {
				assert.Equal(t, c.portal, id)
			}
		})
	}

	assert.Equal(t, []int{0, 1}, g.Portals())
	r, ok := g.PortalBounds(0)
	require.True(t, ok)
	assert.Equal(t, Rect{Left: 30, Right: 40, Top: 10, Bottom: 30}, r)
	assert.Equal(t, cp.Vector{X: 35, Y: 20}, r.Center())
}

func TestParseGridErrors(t *testing.T) {
	cases := []struct {
		name  string
		rows  []string
		scale int
	}{
		{"no_rows", nil, 10},
		{"bad_scale", []string{"..."}, 0},
		{"ragged", []string{"...", ".."}, 10},
		{"unknown_rune", []string{".x."}, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseGrid(c.rows, c.scale)
			assert.ErrorIs(t, err, ErrInvalidGrid)
		})
	}
}

func TestGridSetBlocked(t *testing.T) {
	g := MustParseGrid(10, "...")
	require.True(t, g.IsWalkable(15, 5))
	g.SetBlocked(15, 5, true)
	assert.False(t, g.IsWalkable(15, 5))
	assert.True(t, g.IsWalkable(25, 5))
}

func TestFootprint(t *testing.T) {
	g := MustParseGrid(10,
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	)
	point := Footprint(g, 0, 0)
	assert.True(t, point(12, 12))

	box := Footprint(g, 10, 10)
	assert.True(t, box(25, 25))
	assert.False(t, box(12, 25), "left edge pokes into the wall")
	assert.False(t, Footprint(nil, 10, 10)(25, 25))
}

func TestFromImageLabelsPortals(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	floor := color.RGBA{R: 120, G: 120, B: 120, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, floor)
		}
	}
	img.Set(0, 0, color.Black)
	// two separate portal blobs
	img.Set(2, 1, white)
	img.Set(3, 1, white)
	img.Set(6, 2, white)
	img.Set(6, 3, white)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	m, err := Decode(&buf)
	require.NoError(t, err)

	assert.False(t, m.IsWalkable(0, 0))
	assert.True(t, m.IsWalkable(1, 0))
	assert.True(t, m.IsWalkable(2, 1), "portals are walkable")

	id, ok := m.IsPortal(3, 1)
	require.True(t, ok)
	assert.Equal(t, 0, id)
	id, ok = m.IsPortal(6, 3)
	require.True(t, ok)
	assert.Equal(t, 1, id)

	assert.Equal(t, []int{0, 1}, m.Portals())
	r, ok := m.PortalBounds(1)
	require.True(t, ok)
	assert.Equal(t, Rect{Left: 6, Right: 6, Top: 2, Bottom: 3}, r)

	_, ok = m.PortalBounds(2)
	assert.False(t, ok)
}
