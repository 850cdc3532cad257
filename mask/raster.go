package mask

import (
	"image"
	"image/color"
)

// Palette colours a rasterized mask.
type Palette struct {
	Floor   color.Color
	Blocked color.Color
	Portal  color.Color
}

var DefaultPalette = Palette{
	Floor:   color.NRGBA{R: 0x3a, G: 0x3a, B: 0x40, A: 0xff},
	Blocked: color.NRGBA{R: 0x12, G: 0x12, B: 0x16, A: 0xff},
	Portal:  color.NRGBA{R: 0x4f, G: 0xa8, B: 0xd8, A: 0xff},
}

// Raster draws m into a width x height image, sampling once per step x step
// block. Nil palette colours fall back to DefaultPalette.
func Raster(m Mask, width, height, step int, pal Palette) *image.NRGBA {
	if step <= 0 {
		step = 1
	}
	if pal.Floor == nil {
		pal.Floor = DefaultPalette.Floor
	}
	if pal.Blocked == nil {
		pal.Blocked = DefaultPalette.Blocked
	}
	if pal.Portal == nil {
		pal.Portal = DefaultPalette.Portal
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y += step {
		for x := 0; x < width; x += step {
			c := pal.Floor
			if _, ok := m.IsPortal(x, y); ok {
				c = pal.Portal
			} else if !m.IsWalkable(x, y) {
				c = pal.Blocked
			}
			for dy := 0; dy < step && y+dy < height; dy++ {
				for dx := 0; dx < step && x+dx < width; dx++ {
					img.Set(x+dx, y+dy, c)
				}
			}
		}
	}
	return img
}
