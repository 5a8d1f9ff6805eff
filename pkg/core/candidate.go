package core

import (
	"fmt"
	"math/bits"
	"math/rand/v2"
	"strings"
)

const wordSize = 64

// Candidate is a fixed-length set of inclusion flags, one per item position.
// The length never changes after creation; every index access is range-checked.
// A Candidate is not safe for concurrent mutation.
type Candidate struct {
	words []uint64
	size  int
}

// NewCandidate creates a Candidate of length n with every item excluded.
// A negative n yields an empty Candidate.
func NewCandidate(n int) *Candidate {
	if n < 0 {
		n = 0
	}
	return &Candidate{
		words: make([]uint64, (n+wordSize-1)/wordSize),
		size:  n,
	}
}

// NewRandomCandidate creates a Candidate of length n where each flag is set
// independently with probability 1/2, drawing from r.
func NewRandomCandidate(n int, r *rand.Rand) *Candidate {
	c := NewCandidate(n)
	for i := 0; i < c.size; i++ {
		if r.Uint64()&1 == 1 {
			c.set(i)
		}
	}
	return c
}

// Len returns the number of item positions.
func (c *Candidate) Len() int {
	return c.size
}

// Contains reports whether item i is selected.
func (c *Candidate) Contains(i int) (bool, error) {
	if err := c.checkIndex(i); err != nil {
		return false, err
	}
	return c.has(i), nil
}

// Include selects item i.
func (c *Candidate) Include(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.set(i)
	return nil
}

// Exclude deselects item i.
func (c *Candidate) Exclude(i int) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.clear(i)
	return nil
}

// Count returns the number of selected items.
func (c *Candidate) Count() int {
	n := 0
	for _, w := range c.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Selected returns the selected positions in ascending order.
func (c *Candidate) Selected() []int {
	selected := make([]int, 0, c.Count())
	for i := 0; i < c.size; i++ {
		if c.has(i) {
			selected = append(selected, i)
		}
	}
	return selected
}

// Clone returns a deep copy with independent storage.
func (c *Candidate) Clone() *Candidate {
	words := make([]uint64, len(c.words))
	copy(words, c.words)
	return &Candidate{words: words, size: c.size}
}

// Equal reports whether both candidates have the same length and the same flags.
func (c *Candidate) Equal(other *Candidate) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.size != other.size {
		return false
	}
	for i := range c.words {
		if c.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// String renders the flags in position order, e.g. "[0 1 1]".
func (c *Candidate) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < c.size; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if c.has(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func (c *Candidate) checkIndex(i int) error {
	if i < 0 || i >= c.size {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, c.size)
	}
	return nil
}

// has, set and clear assume 0 <= i < size.
func (c *Candidate) has(i int) bool {
	return c.words[i/wordSize]&(1<<(uint(i)%wordSize)) != 0
}

func (c *Candidate) set(i int) {
	c.words[i/wordSize] |= 1 << (uint(i) % wordSize)
}

func (c *Candidate) clear(i int) {
	c.words[i/wordSize] &^= 1 << (uint(i) % wordSize)
}
