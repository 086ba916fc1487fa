package evaluate

import (
	"context"
	"fmt"

	"github.com/san-kum/fractal/internal/field"
)

// DefaultRadius is the classical divergence threshold |z| > 2.
const DefaultRadius = 2.0

type Options struct {
	// Budget is the maximum number of iterations per cell. It doubles as
	// the sentinel count for cells that never diverge.
	Budget int
	// Radius is the divergence threshold. Zero means DefaultRadius.
	Radius float64
}

func (o Options) radius() float64 {
	if o.Radius == 0 {
		return DefaultRadius
	}
	return o.Radius
}

// Strategy evaluates an escape-time field. Implementations are pure:
// identical inputs produce identical fields regardless of strategy or
// worker count.
type Strategy interface {
	Name() string
	Evaluate(ctx context.Context, grid field.Grid, opts Options) (*field.Field, error)
}

func validate(grid field.Grid, opts Options) error {
	if err := grid.Validate(); err != nil {
		return err
	}
	if opts.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive, got %d", field.ErrInvalidArgument, opts.Budget)
	}
	if opts.radius() <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %g", field.ErrInvalidArgument, opts.Radius)
	}
	return nil
}

// escapeTime runs the orbit of a single cell. Every strategy funnels
// through the same operation order so integer results match exactly:
// square, update imaginary then real part, then test against radius2.
func escapeTime(cr, ci float64, budget int, radius2 float64) int {
	zr, zi := cr, ci
	for i := 0; i < budget; i++ {
		zr2 := zr * zr
		zi2 := zi * zi
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
		if zr*zr+zi*zi > radius2 {
			return i
		}
	}
	return budget
}
