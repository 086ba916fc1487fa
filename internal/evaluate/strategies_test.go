package evaluate_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fractal/internal/evaluate"
	"github.com/san-kum/fractal/internal/field"
)

func allStrategies() []evaluate.Strategy {
	return []evaluate.Strategy{
		evaluate.NewScalar(),
		evaluate.NewBatched(),
		evaluate.NewParallel(4),
	}
}

var _ = Describe("escape-time strategies", func() {
	var ctx context.Context

	smallGrid := field.Grid{
		Height: 10, Width: 10,
		RealMin: -1.5, RealMax: 0.5,
		ImagMin: -1.0, ImagMax: 1.0,
	}

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("golden 3x3 field", func() {
		grid := field.Grid{
			Height: 3, Width: 3,
			RealMin: -1.5, RealMax: 0.0,
			ImagMin: -1.0, ImagMax: 0.0,
		}
		// Hand-computed with z0 = c, budget 5, radius 2. Row 0 samples
		// imag -1, row 2 samples imag 0 (the real axis stays bounded).
		golden := []int{
			0, 1, 5,
			1, 4, 5,
			5, 5, 5,
		}

		It("matches for every strategy", func() {
			for _, strat := range allStrategies() {
				fld, err := strat.Evaluate(ctx, grid, evaluate.Options{Budget: 5, Radius: 2.0})
				Expect(err).NotTo(HaveOccurred(), strat.Name())
				Expect(fld.Counts).To(Equal(golden), strat.Name())
			}
		})
	})

	Describe("known points", func() {
		It("keeps c = 0 bounded for the whole budget", func() {
			grid := field.Grid{Height: 1, Width: 1, RealMin: 0, RealMax: 1, ImagMin: 0, ImagMax: 1}
			for _, budget := range []int{1, 7, 100} {
				for _, strat := range allStrategies() {
					fld, err := strat.Evaluate(ctx, grid, evaluate.Options{Budget: budget})
					Expect(err).NotTo(HaveOccurred())
					Expect(fld.At(0, 0)).To(Equal(budget), strat.Name())
				}
			}
		})

		It("diverges c = 3 at iteration 0", func() {
			grid := field.Grid{Height: 1, Width: 1, RealMin: 3, RealMax: 4, ImagMin: 0, ImagMax: 1}
			for _, strat := range allStrategies() {
				fld, err := strat.Evaluate(ctx, grid, evaluate.Options{Budget: 50, Radius: 2.0})
				Expect(err).NotTo(HaveOccurred())
				Expect(fld.At(0, 0)).To(Equal(0), strat.Name())
			}
		})
	})

	Describe("shape and range invariants", func() {
		It("returns exactly height x width cells, each within [0, budget]", func() {
			for _, strat := range allStrategies() {
				fld, err := strat.Evaluate(ctx, smallGrid, evaluate.Options{Budget: 20})
				Expect(err).NotTo(HaveOccurred())
				Expect(fld.Height).To(Equal(smallGrid.Height))
				Expect(fld.Width).To(Equal(smallGrid.Width))
				Expect(fld.Counts).To(HaveLen(smallGrid.Cells()))
				for _, count := range fld.Counts {
					Expect(count).To(And(BeNumerically(">=", 0), BeNumerically("<=", 20)))
				}
			}
		})
	})

	Describe("determinism", func() {
		It("repeated invocations produce identical fields", func() {
			for _, strat := range allStrategies() {
				first, err := strat.Evaluate(ctx, smallGrid, evaluate.Options{Budget: 20})
				Expect(err).NotTo(HaveOccurred())
				second, err := strat.Evaluate(ctx, smallGrid, evaluate.Options{Budget: 20})
				Expect(err).NotTo(HaveOccurred())
				Expect(second.Equal(first)).To(BeTrue(), strat.Name())
			}
		})
	})

	Describe("strategy equivalence", func() {
		It("agrees bit for bit across strategies and worker counts", func() {
			reference, err := evaluate.NewScalar().Evaluate(ctx, smallGrid, evaluate.Options{Budget: 20, Radius: 2.0})
			Expect(err).NotTo(HaveOccurred())

			others := []evaluate.Strategy{
				evaluate.NewBatched(),
				evaluate.NewParallel(1),
				evaluate.NewParallel(3),
				evaluate.NewParallel(16),
			}
			for _, strat := range others {
				fld, err := strat.Evaluate(ctx, smallGrid, evaluate.Options{Budget: 20, Radius: 2.0})
				Expect(err).NotTo(HaveOccurred())
				Expect(fld.Counts).To(Equal(reference.Counts), strat.Name())
			}
		})
	})

	Describe("monotonic budget", func() {
		It("only sentinel cells may change when the budget grows", func() {
			for _, strat := range allStrategies() {
				low, err := strat.Evaluate(ctx, smallGrid, evaluate.Options{Budget: 20})
				Expect(err).NotTo(HaveOccurred())
				high, err := strat.Evaluate(ctx, smallGrid, evaluate.Options{Budget: 40})
				Expect(err).NotTo(HaveOccurred())

				for i, count := range low.Counts {
					if count < 20 {
						Expect(high.Counts[i]).To(Equal(count), strat.Name())
					} else {
						Expect(high.Counts[i]).To(BeNumerically(">=", 20), strat.Name())
					}
				}
			}
		})
	})

	Describe("boundary rejection", func() {
		badInputs := []struct {
			name string
			grid field.Grid
			opts evaluate.Options
		}{
			{"zero height", field.Grid{Height: 0, Width: 10, RealMin: -1, RealMax: 1, ImagMin: -1, ImagMax: 1}, evaluate.Options{Budget: 10}},
			{"negative width", field.Grid{Height: 10, Width: -1, RealMin: -1, RealMax: 1, ImagMin: -1, ImagMax: 1}, evaluate.Options{Budget: 10}},
			{"zero budget", field.Grid{Height: 10, Width: 10, RealMin: -1, RealMax: 1, ImagMin: -1, ImagMax: 1}, evaluate.Options{Budget: 0}},
			{"reversed real range", field.Grid{Height: 10, Width: 10, RealMin: 0.5, RealMax: -0.5, ImagMin: -1, ImagMax: 1}, evaluate.Options{Budget: 10}},
			{"negative radius", field.Grid{Height: 10, Width: 10, RealMin: -1, RealMax: 1, ImagMin: -1, ImagMax: 1}, evaluate.Options{Budget: 10, Radius: -2}},
		}

		It("rejects invalid input before any computation", func() {
			for _, strat := range allStrategies() {
				for _, tc := range badInputs {
					fld, err := strat.Evaluate(ctx, tc.grid, tc.opts)
					Expect(err).To(MatchError(field.ErrInvalidArgument), "%s: %s", strat.Name(), tc.name)
					Expect(fld).To(BeNil(), "%s: %s", strat.Name(), tc.name)
				}
			}
		})
	})

	Describe("cancellation", func() {
		It("returns the context error once cancelled", func() {
			cancelled, cancel := context.WithCancel(context.Background())
			cancel()

			for _, strat := range allStrategies() {
				fld, err := strat.Evaluate(cancelled, smallGrid, evaluate.Options{Budget: 20})
				Expect(err).To(MatchError(context.Canceled), strat.Name())
				Expect(fld).To(BeNil(), strat.Name())
			}
		})
	})
})
