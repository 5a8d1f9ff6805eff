package actuator

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	"github.com/llm-d/llm-d-knapsack-solver/internal/optimizer"
	"github.com/llm-d/llm-d-knapsack-solver/pkg/config"
	"github.com/llm-d/llm-d-knapsack-solver/pkg/core"
)

// Report is the serialized form of a Decision.
type Report struct {
	Name        string      `json:"name"`
	Capacity    uint64      `json:"capacity"`
	Items       []core.Item `json:"items"`
	Found       bool        `json:"found"`
	Solution    string      `json:"solution"`
	Selected    []int       `json:"selected"`
	TotalValue  uint64      `json:"totalValue"`
	TotalWeight uint64      `json:"totalWeight"`
	Evaluations uint64      `json:"evaluations"`
	Feasible    uint64      `json:"feasible"`
}

// NewReport converts a decision into a Report.
func NewReport(d *optimizer.Decision) (*Report, error) {
	if d == nil || d.Problem == nil || d.Result == nil || d.Result.Solution == nil {
		return nil, fmt.Errorf("decision is incomplete")
	}
	weight, ok := d.Problem.TotalWeight(d.Result.Solution)
	if !ok {
		return nil, fmt.Errorf("solution of problem %q does not match its items: %w", d.Name, core.ErrLengthMismatch)
	}
	return &Report{
		Name:        d.Name,
		Capacity:    d.Problem.Capacity(),
		Items:       d.Problem.Items(),
		Found:       d.Result.Found,
		Solution:    d.Result.Solution.String(),
		Selected:    d.Result.Solution.Selected(),
		TotalValue:  d.Result.Value,
		TotalWeight: weight,
		Evaluations: d.Result.Evaluations,
		Feasible:    d.Result.Feasible,
	}, nil
}

// Actuator writes decisions to an output stream.
type Actuator struct {
	out    io.Writer
	format string
}

// NewActuator creates an Actuator writing format to out.
func NewActuator(out io.Writer, format string) (*Actuator, error) {
	if out == nil {
		return nil, fmt.Errorf("output writer cannot be nil")
	}
	switch format {
	case config.FormatText, config.FormatYAML, config.FormatJSON:
	default:
		return nil, fmt.Errorf("%w: output format %q", config.ErrInvalidValue, format)
	}
	return &Actuator{out: out, format: format}, nil
}

// Emit writes one report per decision. Nil decisions belong to failed problems and are skipped.
func (a *Actuator) Emit(decisions []*optimizer.Decision) error {
	reports := make([]*Report, 0, len(decisions))
	for _, d := range decisions {
		if d == nil {
			continue
		}
		r, err := NewReport(d)
		if err != nil {
			return err
		}
		reports = append(reports, r)
	}

	switch a.format {
	case config.FormatYAML:
		data, err := yaml.Marshal(reports)
		if err != nil {
			return fmt.Errorf("failed to marshal reports: %w", err)
		}
		_, err = a.out.Write(data)
		return err
	case config.FormatJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	default:
		return a.writeText(reports)
	}
}

func (a *Actuator) writeText(reports []*Report) error {
	for i, r := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(a.out); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(a.out, "problem: %s\ncapacity: %d\n", r.Name, r.Capacity); err != nil {
			return err
		}
		for j, item := range r.Items {
			if _, err := fmt.Fprintf(a.out, "[%d] value: %d, weight: %d\n", j, item.Value, item.Weight); err != nil {
				return err
			}
		}
		if !r.Found {
			if _, err := fmt.Fprintf(a.out, "solution: none\nevaluations: %d\n", r.Evaluations); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(a.out, "solution: %s\nselected: %v\nvalue: %d, weight: %d\nevaluations: %d\n",
			r.Solution, r.Selected, r.TotalValue, r.TotalWeight, r.Evaluations); err != nil {
			return err
		}
	}
	return nil
}
