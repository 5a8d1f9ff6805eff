package solver

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/llm-d/llm-d-knapsack-solver/pkg/core"
)

// recordingEvaluator wraps an Evaluator and records every candidate it sees as a bit mask.
type recordingEvaluator struct {
	Evaluator
	masks []uint64
}

func (r *recordingEvaluator) Evaluate(c *core.Candidate) (uint64, bool) {
	var mask uint64
	for i := 0; i < c.Len(); i++ {
		selected, err := c.Contains(i)
		Expect(err).NotTo(HaveOccurred())
		if selected {
			mask |= 1 << i
		}
	}
	r.masks = append(r.masks, mask)
	return r.Evaluator.Evaluate(c)
}

// rejectAll never finds a candidate feasible.
type rejectAll struct{ n int }

func (r rejectAll) ItemCount() int {
	return r.n
}

func (r rejectAll) Evaluate(*core.Candidate) (uint64, bool) {
	return 0, false
}

func buildProblem(capacity uint64, items ...core.Item) *core.Problem {
	b := core.NewProblemBuilder().WithCapacity(capacity)
	for _, it := range items {
		b.AddItem(it)
	}
	return b.Build()
}

func randomProblem(r *rand.Rand, n int) *core.Problem {
	b := core.NewProblemBuilder().WithCapacity(r.Uint64N(200))
	for i := 0; i < n; i++ {
		b.AddItem(core.Item{Value: r.Uint64N(50), Weight: r.Uint64N(80)})
	}
	return b.Build()
}

// oracle evaluates every mask in ascending order and keeps the first strictly better one.
func oracle(p *core.Problem) (uint64, []int) {
	n := p.ItemCount()
	var bestValue uint64
	var bestMask uint64
	for mask := uint64(0); mask < 1<<n; mask++ {
		var weight, value uint64
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				weight += p.ItemAt(i).Weight
				value += p.ItemAt(i).Value
			}
		}
		if weight <= p.Capacity() && value > bestValue {
			bestValue, bestMask = value, mask
		}
	}
	selected := []int{}
	for i := 0; i < n; i++ {
		if bestMask&(1<<i) != 0 {
			selected = append(selected, i)
		}
	}
	return bestValue, selected
}

var _ = Describe("BruteForce", func() {
	var bf *BruteForce

	BeforeEach(func() {
		bf = NewBruteForce()
	})

	DescribeTable("enumeration",
		func(n int) {
			r := rand.New(rand.NewPCG(uint64(n), 42))
			rec := &recordingEvaluator{Evaluator: randomProblem(r, n)}

			result, err := bf.Solve(rec)
			Expect(err).NotTo(HaveOccurred())

			total := uint64(1) << n
			Expect(result.Evaluations).To(Equal(total))
			Expect(rec.masks).To(HaveLen(int(total)))

			seen := make(map[uint64]bool, total)
			for i, mask := range rec.masks {
				Expect(seen[mask]).To(BeFalse(), "subset %b visited twice", mask)
				seen[mask] = true
				// subsets come out grouped by highest item, in binary counting order
				Expect(mask).To(Equal(uint64(i)))
			}
			Expect(seen).To(HaveLen(int(total)))
		},
		Entry("no items", 0),
		Entry("one item", 1),
		Entry("two items", 2),
		Entry("three items", 3),
		Entry("seven items", 7),
		Entry("twelve items", 12),
	)

	Context("end-to-end scenarios", func() {
		It("should solve the textbook instance", func() {
			problem := buildProblem(50,
				core.Item{Value: 60, Weight: 10},
				core.Item{Value: 100, Weight: 20},
				core.Item{Value: 120, Weight: 30},
			)
			result, err := bf.Solve(problem)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Found).To(BeTrue())
			Expect(result.Value).To(Equal(uint64(220)))
			Expect(result.Solution.Selected()).To(Equal([]int{1, 2}))
			Expect(result.Evaluations).To(Equal(uint64(8)))
			Expect(result.Feasible).To(Equal(uint64(7)))

			value, ok := problem.Evaluate(result.Solution)
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal(result.Value))
		})

		It("should return the empty candidate for a problem without items", func() {
			for _, capacity := range []uint64{0, 1, 1000} {
				result, err := bf.Solve(buildProblem(capacity))
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Solution.Len()).To(BeZero())
				Expect(result.Value).To(BeZero())
				Expect(result.Found).To(BeTrue())
				Expect(result.Evaluations).To(Equal(uint64(1)))
			}
		})

		It("should return the empty candidate when no item fits", func() {
			problem := buildProblem(5,
				core.Item{Value: 10, Weight: 6},
				core.Item{Value: 20, Weight: 7},
				core.Item{Value: 30, Weight: 100},
			)
			result, err := bf.Solve(problem)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Solution.Len()).To(Equal(3))
			Expect(result.Solution.Selected()).To(BeEmpty())
			Expect(result.Value).To(BeZero())
			Expect(result.Feasible).To(Equal(uint64(1)))
		})

		It("should keep the first of equally valuable subsets", func() {
			problem := buildProblem(5,
				core.Item{Value: 10, Weight: 5},
				core.Item{Value: 10, Weight: 3},
			)
			result, err := bf.Solve(problem)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Value).To(Equal(uint64(10)))
			Expect(result.Solution.Selected()).To(Equal([]int{0}))
		})

		It("should skip subsets whose value overflows", func() {
			problem := buildProblem(2,
				core.Item{Value: 1 << 63, Weight: 1},
				core.Item{Value: 1 << 63, Weight: 1},
			)
			result, err := bf.Solve(problem)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Evaluations).To(Equal(uint64(4)))
			// {}, {0} and {1} are comparable; {0, 1} is not
			Expect(result.Feasible).To(Equal(uint64(3)))
			Expect(result.Value).To(Equal(uint64(1 << 63)))
			Expect(result.Solution.Selected()).To(Equal([]int{0}))
		})
	})

	It("should match an independent enumeration on random problems", func() {
		r := rand.New(rand.NewPCG(2025, 1))
		for trial := 0; trial < 50; trial++ {
			problem := randomProblem(r, 1+r.IntN(10))
			wantValue, wantSelected := oracle(problem)

			result, err := bf.Solve(problem)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Value).To(Equal(wantValue), "trial %d\n%s", trial, problem)
			Expect(result.Solution.Selected()).To(Equal(wantSelected), "trial %d\n%s", trial, problem)
			Expect(problem.FeasibleAgainst(result.Solution)).To(BeTrue())
		}
	})

	It("should report nothing found when every candidate is rejected", func() {
		result, err := bf.Solve(rejectAll{n: 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Found).To(BeFalse())
		Expect(result.Feasible).To(BeZero())
		Expect(result.Evaluations).To(Equal(uint64(16)))
		Expect(result.Solution.Len()).To(Equal(4))
		Expect(result.Solution.Selected()).To(BeEmpty())
	})

	It("should hand the caller a solution independent of later searches", func() {
		problem := buildProblem(50,
			core.Item{Value: 60, Weight: 10},
			core.Item{Value: 100, Weight: 20},
		)
		first, err := bf.Solve(problem)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Solution.Exclude(0)).To(Succeed())

		second, err := bf.Solve(problem)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Solution.Selected()).To(Equal([]int{0, 1}))
	})

	It("should reject a nil evaluator", func() {
		_, err := bf.Solve(nil)
		Expect(err).To(HaveOccurred())
	})
})
