// Package evaluate computes escape-time fields over rectangular samplings
// of the complex plane.
//
// Every strategy implements the same contract: given a grid and an
// iteration budget, return the iteration index at which each cell's orbit
// under z <- z^2 + c first exceeds the divergence radius, or the budget
// itself when the orbit stays bounded. The orbit starts at z0 = c.
//
// Three interchangeable strategies are provided:
//
//   - scalar: reference nested loop, one cell at a time
//   - batched: advances all cells through the same iteration together,
//     tracking per-cell completion with an active mask
//   - parallel: scalar kernel fanned out across row chunks
//
// All strategies perform the identical per-cell arithmetic in the same
// order, so their integer outputs agree bit for bit:
//
//	strat, _ := evaluate.NewRegistry().Get("parallel", 0)
//	fld, err := strat.Evaluate(ctx, grid, evaluate.Options{Budget: 100})
package evaluate
