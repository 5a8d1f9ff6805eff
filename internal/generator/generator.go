// Package generator creates random knapsack problems from a GeneratorSpec.
// The source of randomness is injected so that generation is reproducible.
package generator

import (
	"fmt"
	"math/rand/v2"

	"k8s.io/utils/ptr"

	"github.com/llm-d/llm-d-knapsack-solver/pkg/config"
	"github.com/llm-d/llm-d-knapsack-solver/pkg/core"
)

// Generator draws problems within the bounds of its spec.
// A Generator is not safe for concurrent use; its random source is shared between calls.
type Generator struct {
	spec config.GeneratorSpec
	rand *rand.Rand
}

// New creates a Generator drawing from r.
func New(spec config.GeneratorSpec, r *rand.Rand) (*Generator, error) {
	if r == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}
	return &Generator{spec: spec, rand: r}, nil
}

// NewSeeded creates a Generator with a PCG source seeded from the spec.
// When the spec has no seed a random one is chosen; the seed in use is returned
// so the run can be reproduced.
func NewSeeded(spec config.GeneratorSpec) (*Generator, uint64, error) {
	seed := ptr.Deref(spec.Seed, rand.Uint64())
	g, err := New(spec, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		return nil, 0, err
	}
	return g, seed, nil
}

// Generate returns a problem with spec.Count items and spec.Capacity.
// Values are uniform in [MinValue, MaxValue) and weights in [MinWeight, MaxWeight).
func (g *Generator) Generate() *core.Problem {
	builder := core.NewProblemBuilder().WithCapacity(g.spec.Capacity)
	for i := 0; i < g.spec.Count; i++ {
		builder.AddItem(core.Item{
			Value:  g.between(g.spec.MinValue, g.spec.MaxValue),
			Weight: g.between(g.spec.MinWeight, g.spec.MaxWeight),
		})
	}
	return builder.Build()
}

// GenerateSpec returns a generated problem in its configuration form, named name.
func (g *Generator) GenerateSpec(name string) *config.ProblemSpec {
	problem := g.Generate()
	spec := &config.ProblemSpec{
		Name:     name,
		Capacity: problem.Capacity(),
		Items:    make([]config.ItemSpec, 0, problem.ItemCount()),
	}
	for _, item := range problem.Items() {
		spec.Items = append(spec.Items, config.ItemSpec{Value: item.Value, Weight: item.Weight})
	}
	return spec
}

// between assumes lo < hi, which Validate guarantees.
func (g *Generator) between(lo, hi uint64) uint64 {
	return lo + g.rand.Uint64N(hi-lo)
}
