package field

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when an evaluation precondition is
// violated: non-positive dimensions, budget or radius, or a range whose
// minimum is not below its maximum. Callers check it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// Grid describes a rectangular sampling of the complex plane. Row 0 maps
// to ImagMin and row Height-1 to ImagMax; column 0 maps to RealMin and
// column Width-1 to RealMax. Both bounds are included in the sampling.
type Grid struct {
	Height  int
	Width   int
	RealMin float64
	RealMax float64
	ImagMin float64
	ImagMax float64
}

func (g Grid) Validate() error {
	if g.Height <= 0 {
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidArgument, g.Height)
	}
	if g.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidArgument, g.Width)
	}
	if g.RealMin >= g.RealMax {
		return fmt.Errorf("%w: real range [%g, %g] must have min < max", ErrInvalidArgument, g.RealMin, g.RealMax)
	}
	if g.ImagMin >= g.ImagMax {
		return fmt.Errorf("%w: imag range [%g, %g] must have min < max", ErrInvalidArgument, g.ImagMin, g.ImagMax)
	}
	return nil
}

// Point returns the complex-plane coordinate of cell (row, col). A
// single-sample axis collapses to its lower bound.
func (g Grid) Point(row, col int) (re, im float64) {
	re = g.RealMin
	if g.Width > 1 {
		re += (g.RealMax - g.RealMin) * float64(col) / float64(g.Width-1)
	}
	im = g.ImagMin
	if g.Height > 1 {
		im += (g.ImagMax - g.ImagMin) * float64(row) / float64(g.Height-1)
	}
	return re, im
}

// Cells returns the total number of samples in the grid.
func (g Grid) Cells() int {
	return g.Height * g.Width
}
