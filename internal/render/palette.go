package render

import (
	"fmt"
	"image/color"
	"math"
)

// Palette maps an escape count to a color. Cells holding the sentinel
// (count == budget) are interior points and render black.
type Palette func(count, budget int) color.RGBA

var interior = color.RGBA{A: 255}

func Grayscale(count, budget int) color.RGBA {
	if count >= budget {
		return interior
	}
	v := uint8(255 * float64(count) / float64(budget))
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

// Heat uses the Bernstein-polynomial ramp common in escape-time renders:
// dark blue filaments through orange to white near the boundary.
func Heat(count, budget int) color.RGBA {
	if count >= budget {
		return interior
	}
	t := float64(count) / float64(budget)
	r := 9 * (1 - t) * t * t * t
	g := 15 * (1 - t) * (1 - t) * t * t
	b := 8.5 * (1 - t) * (1 - t) * (1 - t) * t
	return color.RGBA{
		R: uint8(math.Min(255, 255*r)),
		G: uint8(math.Min(255, 255*g)),
		B: uint8(math.Min(255, 255*b)),
		A: 255,
	}
}

var palettes = map[string]Palette{
	"gray": Grayscale,
	"heat": Heat,
}

func GetPalette(name string) (Palette, error) {
	p, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette: %s", name)
	}
	return p, nil
}
