// Package core provides the data model of the 0/1 knapsack solver.
//
// This package contains the domain types that the search algorithms in the
// solver package mutate and evaluate:
//
//   - Item: an immutable (value, weight) pair
//   - Problem: an ordered, immutable list of items plus a capacity bound
//   - ProblemBuilder: accumulates items and a capacity, then builds a Problem
//   - Candidate: a fixed-length bitset recording which items are selected
//
// Item positions are their identity: the order in which items are added to a
// ProblemBuilder defines the index space that every Candidate evaluated
// against the resulting Problem must match.
//
// Example usage:
//
//	problem := core.NewProblemBuilder().
//	    WithCapacity(50).
//	    AddItem(core.Item{Value: 60, Weight: 10}).
//	    AddItem(core.Item{Value: 100, Weight: 20}).
//	    AddItem(core.Item{Value: 120, Weight: 30}).
//	    Build()
//
//	candidate := core.NewCandidate(problem.ItemCount())
//	if err := candidate.Include(1); err != nil {
//	    return err
//	}
//	if value, ok := problem.Evaluate(candidate); ok {
//	    log.Info("candidate is feasible", "value", value)
//	}
//
// The core package is designed to be:
//   - Immutable where possible (Problem, Item)
//   - Free of I/O and global state
//   - Bounds-checked: out-of-range Candidate access reports ErrIndexOutOfRange
package core
