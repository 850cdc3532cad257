package mask

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRaster(t *testing.T) {
	g := MustParseGrid(10, "#.0")
	img := Raster(g, 30, 10, 5, Palette{})
	assert.Equal(t, DefaultPalette.Blocked, img.NRGBAAt(2, 2))
	assert.Equal(t, DefaultPalette.Floor, img.NRGBAAt(12, 7))
	assert.Equal(t, DefaultPalette.Portal, img.NRGBAAt(29, 9))

	red := color.NRGBA{R: 0xff, A: 0xff}
	img = Raster(g, 30, 10, 1, Palette{Floor: red})
	assert.Equal(t, red, img.NRGBAAt(15, 5))
}
