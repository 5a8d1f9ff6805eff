// Package solver implements exact search algorithms for the 0/1 knapsack problem.
//
// Key Components:
//
//   - Solver: abstract solver interface for extensibility
//   - Evaluator: what a solver needs from a problem (item count and evaluation)
//   - BruteForce: exhaustive enumeration of every subset of items
//   - NewSolver: factory selecting a Solver by Strategy
//
// Search Strategy:
//
// BruteForce visits every one of the 2^n subsets exactly once by mutating a
// single working Candidate in place:
//  1. Evaluate the empty subset
//  2. For each boundary b in 1..n, force item b-1 and count through every
//     combination of items 0..b-2 like a binary counter
//  3. Keep a clone of the first candidate reaching a strictly greater value
//
// Example usage:
//
//	s, err := solver.NewSolver(solver.BruteForceStrategy)
//	if err != nil {
//	    return err
//	}
//	result, err := s.Solve(problem)
//	if err != nil {
//	    return err
//	}
//	log.Info("best selection",
//	    "items", result.Solution.Selected(),
//	    "value", result.Value,
//	    "evaluations", result.Evaluations)
//
// The solver is designed to be:
//   - Exact: no pruning, approximation or heuristics
//   - Deterministic: same inputs produce same outputs, ties go to the first subset found
//   - Allocation-free in the search loop: only new best candidates are cloned
//   - Synchronous: a search owns all of its state and shares nothing
package solver
