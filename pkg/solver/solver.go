package solver

import (
	"errors"
	"fmt"

	"github.com/llm-d/llm-d-knapsack-solver/pkg/core"
)

// ErrUnsupportedStrategy is returned for strategies without a Solver.
var ErrUnsupportedStrategy = errors.New("unsupported solver strategy")

// Evaluator is the view of a problem that a Solver searches. *core.Problem implements it.
type Evaluator interface {
	// ItemCount returns the length every evaluated Candidate has.
	ItemCount() int
	// Evaluate returns the value of c, or false when c is infeasible or not comparable.
	Evaluate(c *core.Candidate) (uint64, bool)
}

// Solver finds the feasible Candidate of maximal value.
type Solver interface {
	// Solve searches ev and returns the best candidate found.
	Solve(ev Evaluator) (*Result, error)
}

// Result is the outcome of a search. The Solution is owned by the caller.
type Result struct {
	// Solution is the best feasible candidate, or the empty candidate when nothing was feasible.
	Solution *core.Candidate
	// Value is the evaluated value of Solution.
	Value uint64
	// Found reports whether any candidate was feasible.
	Found bool
	// Evaluations counts the candidates presented to the Evaluator.
	Evaluations uint64
	// Feasible counts the evaluations that returned a value.
	Feasible uint64
}

// Strategy is an enumeration of the search algorithms a Solver can implement
type Strategy int

// enumeration of Strategy
const (
	BruteForceStrategy Strategy = iota
)

var strategyNames = map[Strategy]string{
	BruteForceStrategy: "brute-force",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy returns the Strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, name)
}

// NewSolver is a factory that creates a new Solver based on the provided strategy
func NewSolver(strategy Strategy) (Solver, error) {
	switch strategy {
	case BruteForceStrategy:
		return NewBruteForce(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedStrategy, strategy)
	}
}
