package core

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/llm-d/llm-d-knapsack-solver/pkg/config"
)

// Problem is an ordered list of items and a capacity bound.
// A Problem is immutable once built and safe for concurrent reads.
type Problem struct {
	items    []Item
	capacity uint64
}

// ItemCount returns the number of items, which is the length every Candidate must have.
func (p *Problem) ItemCount() int {
	return len(p.items)
}

// Capacity returns the weight bound.
func (p *Problem) Capacity() uint64 {
	return p.capacity
}

// ItemAt returns a copy of the item at position i.
// The index is not checked: i must be in [0, ItemCount()).
func (p *Problem) ItemAt(i int) Item {
	return p.items[i]
}

// Items returns a copy of all items in position order.
func (p *Problem) Items() []Item {
	items := make([]Item, len(p.items))
	copy(items, p.items)
	return items
}

// Evaluate returns the total value of the items selected by c, and false when c is
// not comparable with this problem: its length differs from ItemCount, the selected
// weights overflow the capacity, or the selected values overflow uint64. Weights are
// absorbed in position order and evaluation stops at the first selected item that
// no longer fits.
func (p *Problem) Evaluate(c *Candidate) (uint64, bool) {
	if c == nil || c.Len() != len(p.items) {
		return 0, false
	}
	var total uint64
	remaining := p.capacity
	for i, item := range p.items {
		if !c.has(i) {
			continue
		}
		if item.Weight > remaining {
			return 0, false
		}
		remaining -= item.Weight
		var carry uint64
		total, carry = bits.Add64(total, item.Value, 0)
		if carry != 0 {
			return 0, false
		}
	}
	return total, true
}

// TotalWeight returns the cumulative weight of the items selected by c.
// It returns false when the length of c differs from ItemCount or the sum overflows.
func (p *Problem) TotalWeight(c *Candidate) (uint64, bool) {
	if c == nil || c.Len() != len(p.items) {
		return 0, false
	}
	var weight uint64
	for i, item := range p.items {
		if !c.has(i) {
			continue
		}
		next := weight + item.Weight
		if next < weight {
			return 0, false
		}
		weight = next
	}
	return weight, true
}

// FeasibleAgainst reports whether the items selected by c fit within the capacity.
func (p *Problem) FeasibleAgainst(c *Candidate) bool {
	weight, ok := p.TotalWeight(c)
	return ok && weight <= p.capacity
}

// Equal reports whether both problems have the same capacity and the same items in the same order.
func (p *Problem) Equal(other *Problem) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.capacity != other.capacity || len(p.items) != len(other.items) {
		return false
	}
	for i := range p.items {
		if p.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

// String renders the capacity followed by one line per item.
func (p *Problem) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "capacity: %d\n", p.capacity)
	for i, item := range p.items {
		fmt.Fprintf(&sb, "[%d] value: %d, weight: %d\n", i, item.Value, item.Weight)
	}
	return sb.String()
}

// ProblemBuilder accumulates items and a capacity. The zero value is ready to use.
type ProblemBuilder struct {
	items    []Item
	capacity uint64
}

// NewProblemBuilder creates an empty builder with zero capacity.
func NewProblemBuilder() *ProblemBuilder {
	return &ProblemBuilder{}
}

// WithCapacity sets the capacity bound.
func (b *ProblemBuilder) WithCapacity(capacity uint64) *ProblemBuilder {
	b.capacity = capacity
	return b
}

// AddItem appends an item; its position is the number of items added before it.
func (b *ProblemBuilder) AddItem(item Item) *ProblemBuilder {
	b.items = append(b.items, item)
	return b
}

// Build returns a Problem holding a copy of the accumulated items.
// The builder can keep accumulating without affecting problems it already built.
func (b *ProblemBuilder) Build() *Problem {
	items := make([]Item, len(b.items))
	copy(items, b.items)
	return &Problem{items: items, capacity: b.capacity}
}

// NewProblemFromSpec builds a Problem from its configuration data.
func NewProblemFromSpec(spec *config.ProblemSpec) (*Problem, error) {
	if spec == nil {
		return nil, fmt.Errorf("problem spec cannot be nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid problem spec %q: %w", spec.Name, err)
	}
	builder := NewProblemBuilder().WithCapacity(spec.Capacity)
	for _, item := range spec.Items {
		builder.AddItem(Item{Value: item.Value, Weight: item.Weight})
	}
	return builder.Build(), nil
}
