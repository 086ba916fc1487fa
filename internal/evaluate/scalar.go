package evaluate

import (
	"context"

	"github.com/san-kum/fractal/internal/field"
)

// Scalar is the reference strategy: cells are evaluated independently,
// one at a time, in row-major order.
type Scalar struct{}

func NewScalar() *Scalar { return &Scalar{} }

func (s *Scalar) Name() string { return "scalar" }

func (s *Scalar) Evaluate(ctx context.Context, grid field.Grid, opts Options) (*field.Field, error) {
	if err := validate(grid, opts); err != nil {
		return nil, err
	}

	radius := opts.radius()
	radius2 := radius * radius

	f := field.New(grid.Height, grid.Width)
	for row := 0; row < grid.Height; row++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		counts := f.Row(row)
		for col := 0; col < grid.Width; col++ {
			cr, ci := grid.Point(row, col)
			counts[col] = escapeTime(cr, ci, opts.Budget, radius2)
		}
	}

	return f, nil
}
