package render

import "github.com/san-kum/fractal/internal/field"

// shade orders characters from sparse to dense; interior cells use '@'.
const shade = " .,:;i+x%#"

// ASCII renders a field as shaded text, one character per cell. Meant
// for quick terminal previews of stored runs.
func ASCII(f *field.Field, budget int) string {
	out := make([]byte, 0, (f.Width+1)*f.Height)
	for row := 0; row < f.Height; row++ {
		for _, count := range f.Row(row) {
			out = append(out, shadeChar(count, budget))
		}
		out = append(out, '\n')
	}
	return string(out)
}

func shadeChar(count, budget int) byte {
	if count >= budget {
		return '@'
	}
	idx := count * len(shade) / budget
	if idx >= len(shade) {
		idx = len(shade) - 1
	}
	return shade[idx]
}
