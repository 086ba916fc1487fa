package evaluate

import (
	"context"
	"runtime"
	"sync"

	"github.com/san-kum/fractal/internal/field"
)

// Parallel fans the scalar kernel out across row chunks. Cells share no
// state, so workers need no locks; each writes only its own rows.
type Parallel struct {
	workers int
}

// NewParallel returns a parallel strategy with the given worker count.
// A count below 1 uses runtime.NumCPU().
func NewParallel(workers int) *Parallel {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Parallel{workers: workers}
}

func (p *Parallel) Name() string { return "parallel" }

func (p *Parallel) Workers() int { return p.workers }

func (p *Parallel) Evaluate(ctx context.Context, grid field.Grid, opts Options) (*field.Field, error) {
	if err := validate(grid, opts); err != nil {
		return nil, err
	}

	radius := opts.radius()
	radius2 := radius * radius

	f := field.New(grid.Height, grid.Width)

	workers := p.workers
	if workers > grid.Height {
		workers = grid.Height
	}
	chunkSize := (grid.Height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > grid.Height {
				end = grid.Height
			}

			for row := start; row < end; row++ {
				if ctx.Err() != nil {
					return
				}
				counts := f.Row(row)
				for col := 0; col < grid.Width; col++ {
					cr, ci := grid.Point(row, col)
					counts[col] = escapeTime(cr, ci, opts.Budget, radius2)
				}
			}
		}(w)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f, nil
}
