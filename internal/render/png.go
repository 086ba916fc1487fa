package render

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/san-kum/fractal/internal/field"
)

// Image rasterizes a field, one pixel per cell.
func Image(f *field.Field, budget int, p Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for row := 0; row < f.Height; row++ {
		for col, count := range f.Row(row) {
			img.SetRGBA(col, row, p(count, budget))
		}
	}
	return img
}

func EncodePNG(w io.Writer, f *field.Field, budget int, p Palette) error {
	return png.Encode(w, Image(f, budget, p))
}

func WritePNG(path string, f *field.Field, budget int, p Palette) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return EncodePNG(out, f, budget, p)
}
