package reconcile

import (
	"slices"

	"github.com/agentstation/factmap/pkg/entity"
	"github.com/agentstation/factmap/pkg/fields"
	"github.com/agentstation/factmap/pkg/types"
)

// FieldProvenance records which sources won and lost a merged field.
type FieldProvenance struct {
	Winners     []types.SourceID `json:"winners" yaml:"winners"`
	Losers      []types.SourceID `json:"losers,omitempty" yaml:"losers,omitempty"`
	Weight      int              `json:"weight" yaml:"weight"`
	TotalWeight int              `json:"totalWeight" yaml:"totalWeight"`
}

// MergedRecord is the canonical view of an entity built from its snapshots.
// It is for display and publication; it is never merged again as if it were
// a source.
type MergedRecord struct {
	Record  fields.Record              `json:"record" yaml:"record"`
	Sources []types.SourceID           `json:"sources" yaml:"sources"`
	Fields  map[string]FieldProvenance `json:"fields" yaml:"fields"`
}

// Merge builds the canonical record for snapshots. For every core and
// secondary field it groups the reported values by normalized key, sums the
// reporters' weights per group and keeps the original value of the heaviest
// group. The result does not depend on snapshot order.
//
// No snapshots yields nil. A single snapshot's record is returned as is.
func (e *Engine) Merge(snapshots []entity.Snapshot) (*MergedRecord, error) {
	if err := entity.ValidateSnapshots(snapshots); err != nil {
		return nil, err
	}
	return e.merge(snapshots), nil
}

func (e *Engine) merge(snapshots []entity.Snapshot) *MergedRecord {
	if len(snapshots) == 0 {
		return nil
	}

	merged := &MergedRecord{
		Sources: make([]types.SourceID, 0, len(snapshots)),
		Fields:  make(map[string]FieldProvenance),
	}
	for _, s := range snapshots {
		merged.Sources = append(merged.Sources, s.SourceID)
	}
	slices.Sort(merged.Sources)

	if len(snapshots) == 1 {
		merged.Record = snapshots[0].Record.Clone()
	}

	for _, d := range e.spec.All() {
		groups := e.group(d, snapshots)
		if len(groups) == 0 {
			continue
		}
		order := ranked(groups)
		win := order[0]
		if len(snapshots) > 1 {
			d.Set(&merged.Record, win.value)
		}

		prov := FieldProvenance{
			Winners: sortedIDs(win.Sources),
			Weight:  win.Weight,
		}
		for _, g := range order {
			prov.TotalWeight += g.Weight
		}
		for _, g := range order[1:] {
			prov.Losers = append(prov.Losers, g.Sources...)
		}
		if prov.Losers != nil {
			slices.Sort(prov.Losers)
		}
		merged.Fields[d.Path] = prov
	}
	return merged
}

func sortedIDs(ids []types.SourceID) []types.SourceID {
	out := slices.Clone(ids)
	slices.Sort(out)
	return out
}
