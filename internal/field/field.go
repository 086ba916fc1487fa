package field

// Field holds the escape-time result for every grid cell in row-major
// order. A cell holds the iteration index at which its orbit diverged,
// or the sentinel (the iteration budget used to compute it) if it never
// did. A Field is never mutated after the evaluator returns it.
type Field struct {
	Height int
	Width  int
	Counts []int
}

func New(height, width int) *Field {
	return &Field{
		Height: height,
		Width:  width,
		Counts: make([]int, height*width),
	}
}

func (f *Field) At(row, col int) int {
	return f.Counts[row*f.Width+col]
}

func (f *Field) Set(row, col, count int) {
	f.Counts[row*f.Width+col] = count
}

// Row returns one row of counts. The returned slice aliases the field.
func (f *Field) Row(row int) []int {
	return f.Counts[row*f.Width : (row+1)*f.Width]
}

// Equal reports whether two fields have identical shape and counts.
func (f *Field) Equal(other *Field) bool {
	if other == nil || f.Height != other.Height || f.Width != other.Width {
		return false
	}
	for i, c := range f.Counts {
		if c != other.Counts[i] {
			return false
		}
	}
	return true
}
