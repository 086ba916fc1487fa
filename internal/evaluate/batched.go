package evaluate

import (
	"context"

	"github.com/san-kum/fractal/internal/field"
)

// Batched advances every cell through the same iteration step together.
// A per-call active mask records which cells have already diverged;
// diverged cells stop updating so their orbits cannot overflow or
// re-trigger the divergence test. The mask and orbit buffers are local
// to one invocation.
type Batched struct{}

func NewBatched() *Batched { return &Batched{} }

func (b *Batched) Name() string { return "batched" }

func (b *Batched) Evaluate(ctx context.Context, grid field.Grid, opts Options) (*field.Field, error) {
	if err := validate(grid, opts); err != nil {
		return nil, err
	}

	radius := opts.radius()
	radius2 := radius * radius

	n := grid.Cells()
	cr := make([]float64, n)
	ci := make([]float64, n)
	zr := make([]float64, n)
	zi := make([]float64, n)
	active := make([]bool, n)

	f := field.New(grid.Height, grid.Width)
	for row := 0; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			idx := row*grid.Width + col
			cr[idx], ci[idx] = grid.Point(row, col)
			zr[idx], zi[idx] = cr[idx], ci[idx]
			active[idx] = true
			f.Counts[idx] = opts.Budget
		}
	}

	remaining := n
	for i := 0; i < opts.Budget && remaining > 0; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// One full sweep is iteration i for every still-active cell.
		// Cells never read each other's state, so the sweep itself is
		// the barrier between iteration steps.
		for idx := 0; idx < n; idx++ {
			if !active[idx] {
				continue
			}
			zr2 := zr[idx] * zr[idx]
			zi2 := zi[idx] * zi[idx]
			zi[idx] = 2*zr[idx]*zi[idx] + ci[idx]
			zr[idx] = zr2 - zi2 + cr[idx]
			if zr[idx]*zr[idx]+zi[idx]*zi[idx] > radius2 {
				f.Counts[idx] = i
				active[idx] = false
				remaining--
			}
		}
	}

	return f, nil
}
