package core

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Candidate", func() {
	Context("when created empty", func() {
		It("should have the requested length with nothing selected", func() {
			c := NewCandidate(70)
			Expect(c.Len()).To(Equal(70))
			Expect(c.Count()).To(BeZero())
			Expect(c.Selected()).To(BeEmpty())
			for i := 0; i < c.Len(); i++ {
				Expect(c.Contains(i)).To(BeFalse())
			}
		})

		It("should treat a negative length as zero", func() {
			Expect(NewCandidate(-3).Len()).To(BeZero())
		})

		It("should render every flag", func() {
			c := NewCandidate(3)
			Expect(c.Include(1)).To(Succeed())
			Expect(c.Include(2)).To(Succeed())
			Expect(c.String()).To(Equal("[0 1 1]"))
			Expect(NewCandidate(0).String()).To(Equal("[]"))
		})
	})

	DescribeTable("set and clear at every position",
		func(n int) {
			c := NewCandidate(n)
			for i := 0; i < n; i++ {
				Expect(c.Include(i)).To(Succeed())
				Expect(c.Contains(i)).To(BeTrue())
				Expect(c.Include(i)).To(Succeed())
				Expect(c.Contains(i)).To(BeTrue(), "include should be idempotent")
				Expect(c.Count()).To(Equal(1))

				Expect(c.Exclude(i)).To(Succeed())
				Expect(c.Contains(i)).To(BeFalse())
				Expect(c.Exclude(i)).To(Succeed())
				Expect(c.Contains(i)).To(BeFalse(), "exclude should be idempotent")
				Expect(c.Count()).To(BeZero())
			}
		},
		Entry("single position", 1),
		Entry("within one word", 10),
		Entry("exactly one word", 64),
		Entry("across words", 130),
	)

	DescribeTable("out-of-range access",
		func(n, index int) {
			c := NewCandidate(n)
			before := c.Clone()

			_, err := c.Contains(index)
			Expect(err).To(MatchError(ErrIndexOutOfRange))
			Expect(c.Include(index)).To(MatchError(ErrIndexOutOfRange))
			Expect(c.Exclude(index)).To(MatchError(ErrIndexOutOfRange))

			Expect(c.Equal(before)).To(BeTrue(), "failed access must not mutate the candidate")
		},
		Entry("index equal to length", 4, 4),
		Entry("index past length", 4, 100),
		Entry("negative index", 4, -1),
		Entry("empty candidate", 0, 0),
		Entry("unused bits of the last word", 65, 127),
	)

	Context("when cloned", func() {
		It("should not share storage with the original", func() {
			original := NewCandidate(8)
			Expect(original.Include(3)).To(Succeed())

			clone := original.Clone()
			Expect(clone.Equal(original)).To(BeTrue())

			Expect(clone.Include(5)).To(Succeed())
			Expect(clone.Exclude(3)).To(Succeed())

			Expect(original.Contains(3)).To(BeTrue())
			Expect(original.Contains(5)).To(BeFalse())
			Expect(original.Selected()).To(Equal([]int{3}))
			Expect(clone.Selected()).To(Equal([]int{5}))
		})
	})

	Context("when compared", func() {
		It("should distinguish lengths even with the same flags", func() {
			Expect(NewCandidate(3).Equal(NewCandidate(4))).To(BeFalse())
		})

		It("should handle nil candidates", func() {
			var missing *Candidate
			Expect(missing.Equal(nil)).To(BeTrue())
			Expect(NewCandidate(1).Equal(nil)).To(BeFalse())
		})
	})

	Context("when created randomly", func() {
		It("should be reproducible for the same seed", func() {
			a := NewRandomCandidate(200, rand.New(rand.NewPCG(7, 7)))
			b := NewRandomCandidate(200, rand.New(rand.NewPCG(7, 7)))
			Expect(a.Len()).To(Equal(200))
			Expect(a.Equal(b)).To(BeTrue())
		})

		It("should select some but not all items over many positions", func() {
			c := NewRandomCandidate(1000, rand.New(rand.NewPCG(1, 2)))
			Expect(c.Count()).To(BeNumerically(">", 400))
			Expect(c.Count()).To(BeNumerically("<", 600))
		})
	})
})
