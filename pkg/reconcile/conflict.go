package reconcile

import (
	"sort"

	"github.com/agentstation/factmap/pkg/entity"
	"github.com/agentstation/factmap/pkg/fields"
	"github.com/agentstation/factmap/pkg/types"
)

// Group is a set of sources reporting the same normalized value for a field.
type Group struct {
	// Key is the normalized comparison key shared by the group.
	Key string `json:"key" yaml:"key"`
	// Value is the group's value as reported by its representative source.
	Value any `json:"value" yaml:"value"`
	// Sources lists the contributing sources in snapshot order.
	Sources []types.SourceID `json:"sources" yaml:"sources"`
	// Weight is the sum of the contributors' reliability weights.
	Weight int `json:"weight" yaml:"weight"`

	value     fields.Value
	repWeight int
	repSource types.SourceID
}

// Conflict is a core field on which sources report more than one distinct
// value. Its groups partition the reporting sources: each appears in
// exactly one group.
type Conflict struct {
	Field  string  `json:"field" yaml:"field"`
	Groups []Group `json:"groups" yaml:"groups"`
}

// TotalWeight returns the summed weight of all groups.
func (c Conflict) TotalWeight() int {
	total := 0
	for _, g := range c.Groups {
		total += g.Weight
	}
	return total
}

// DetectConflicts returns one Conflict per core field with more than one
// distinct value, in core field order. Groups are listed in the order their
// value was first seen. A source that does not report a field takes no
// part in that field's grouping.
func (e *Engine) DetectConflicts(ent *entity.Entity) ([]Conflict, error) {
	if err := ent.Validate(); err != nil {
		return nil, err
	}
	return e.detect(ent.Snapshots), nil
}

func (e *Engine) detect(snapshots []entity.Snapshot) []Conflict {
	var conflicts []Conflict
	for _, d := range e.spec.Core() {
		groups := e.group(d, snapshots)
		if len(groups) > 1 {
			conflicts = append(conflicts, Conflict{Field: d.Path, Groups: groups})
		}
	}
	return conflicts
}

// group partitions the snapshots reporting d by normalized value.
func (e *Engine) group(d fields.Descriptor, snapshots []entity.Snapshot) []Group {
	var groups []Group
	index := make(map[string]int)

	for i := range snapshots {
		s := &snapshots[i]
		v, ok := d.Get(&s.Record)
		if !ok {
			continue
		}
		key := v.Key()
		w := e.registry.Get(s.SourceID)

		gi, seen := index[key]
		if !seen {
			index[key] = len(groups)
			groups = append(groups, Group{
				Key:       key,
				Value:     v.Raw(),
				Sources:   []types.SourceID{s.SourceID},
				Weight:    w,
				value:     v,
				repWeight: w,
				repSource: s.SourceID,
			})
			continue
		}

		g := &groups[gi]
		g.Sources = append(g.Sources, s.SourceID)
		g.Weight += w
		if w > g.repWeight || (w == g.repWeight && s.SourceID < g.repSource) {
			g.Value, g.value, g.repWeight, g.repSource = v.Raw(), v, w, s.SourceID
		}
	}
	return groups
}

// ranked returns a copy of groups ordered best first.
//
// Ties on weight go to the group with more sources, then to the smaller
// normalized key. The order never depends on snapshot order, so resolving
// or merging the same sources always picks the same winner.
func ranked(groups []Group) []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		if len(a.Sources) != len(b.Sources) {
			return len(a.Sources) > len(b.Sources)
		}
		return a.Key < b.Key
	})
	return out
}
