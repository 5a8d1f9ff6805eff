package solver

import (
	"fmt"

	"github.com/llm-d/llm-d-knapsack-solver/pkg/core"
)

// BruteForce enumerates every subset of items exactly once.
// It holds no state between searches and is safe for concurrent use.
type BruteForce struct{}

// NewBruteForce creates a BruteForce solver.
func NewBruteForce() *BruteForce {
	return &BruteForce{}
}

// Solve visits all 2^n subsets of ev's items, grouped by their highest selected
// position (the boundary), and returns the first one reaching the maximal value.
func (b *BruteForce) Solve(ev Evaluator) (*Result, error) {
	if ev == nil {
		return nil, fmt.Errorf("evaluator cannot be nil")
	}
	s := &search{
		ev:   ev,
		work: core.NewCandidate(ev.ItemCount()),
	}
	if err := s.run(); err != nil {
		return nil, fmt.Errorf("brute-force search failed: %w", err)
	}
	if s.result.Solution == nil {
		s.result.Solution = core.NewCandidate(ev.ItemCount())
	}
	return &s.result, nil
}

// search is the state of one enumeration: the working candidate and the best so far.
type search struct {
	ev     Evaluator
	work   *core.Candidate
	result Result
}

func (s *search) run() error {
	n := s.work.Len()

	// boundary 0: only the empty subset
	s.evaluate()

	for boundary := 1; boundary <= n; boundary++ {
		top := boundary - 1
		if err := s.work.Include(top); err != nil {
			return err
		}
		for {
			s.evaluate()
			advanced, err := s.advance(top)
			if err != nil {
				return err
			}
			if !advanced {
				break
			}
		}
		for i := 0; i < boundary; i++ {
			if err := s.work.Exclude(i); err != nil {
				return err
			}
		}
	}
	return nil
}

// advance moves positions [0, limit) to their next combination: the lowest
// unselected position is selected and every position below it is cleared.
// It returns false when all positions were already selected.
func (s *search) advance(limit int) (bool, error) {
	for i := 0; i < limit; i++ {
		selected, err := s.work.Contains(i)
		if err != nil {
			return false, err
		}
		if selected {
			continue
		}
		if err := s.work.Include(i); err != nil {
			return false, err
		}
		for j := 0; j < i; j++ {
			if err := s.work.Exclude(j); err != nil {
				return false, err
			}
		}
		return true, nil
	}
	return false, nil
}

func (s *search) evaluate() {
	s.result.Evaluations++
	value, ok := s.ev.Evaluate(s.work)
	if !ok {
		return
	}
	s.result.Feasible++
	if !s.result.Found || value > s.result.Value {
		s.result.Found = true
		s.result.Value = value
		s.result.Solution = s.work.Clone()
	}
}
