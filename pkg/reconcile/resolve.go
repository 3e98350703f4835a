package reconcile

import (
	"github.com/agentstation/factmap/pkg/types"
)

// Alternative is a losing value for a conflicting field.
type Alternative struct {
	Value   any              `json:"value" yaml:"value"`
	Key     string           `json:"key" yaml:"key"`
	Sources []types.SourceID `json:"sources" yaml:"sources"`
	Weight  int              `json:"weight" yaml:"weight"`
}

// Resolution is the recommended value for one conflicting field.
type Resolution struct {
	Field          string           `json:"field" yaml:"field"`
	Recommended    any              `json:"recommended" yaml:"recommended"`
	RecommendedKey string           `json:"recommendedKey" yaml:"recommendedKey"`
	Sources        []types.SourceID `json:"sources" yaml:"sources"`
	// Confidence is the winning group's share of the field's total weight.
	Confidence   float64       `json:"confidence" yaml:"confidence"`
	Alternatives []Alternative `json:"alternatives" yaml:"alternatives"`
}

// Resolve recommends a value for each conflict: the group with the highest
// summed weight, with the others as alternatives in descending weight.
// Equal weights are settled by source count and then by normalized key,
// so identical input always yields the same winner.
func (e *Engine) Resolve(conflicts []Conflict) map[string]Resolution {
	out := make(map[string]Resolution, len(conflicts))
	for _, c := range conflicts {
		if len(c.Groups) == 0 {
			continue
		}
		order := ranked(c.Groups)
		win := order[0]

		res := Resolution{
			Field:          c.Field,
			Recommended:    win.Value,
			RecommendedKey: win.Key,
			Sources:        win.Sources,
			Alternatives:   make([]Alternative, 0, len(order)-1),
		}
		if total := c.TotalWeight(); total > 0 {
			res.Confidence = float64(win.Weight) / float64(total)
		}
		for _, g := range order[1:] {
			res.Alternatives = append(res.Alternatives, Alternative{
				Value:   g.Value,
				Key:     g.Key,
				Sources: g.Sources,
				Weight:  g.Weight,
			})
		}
		out[c.Field] = res
	}
	return out
}
