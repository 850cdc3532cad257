package main

import (
	"image/color"

	"github.com/milk9111/catcafe/npc"
	"golang.org/x/image/colornames"
)

func stateColor(state string) color.Color {
	switch npc.StateID(state) {
	case npc.StateWander:
		return colornames.Limegreen
	case npc.StateTravel:
		return colornames.Orange
	default:
		return colornames.Lightgrey
	}
}

// fit scales a scene of w x h into the view, keeping its aspect.
func fit(w, h, viewW, viewH int) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	sx := float64(viewW) / float64(w)
	sy := float64(viewH) / float64(h)
	if sx < sy {
		return sx
	}
	return sy
}
