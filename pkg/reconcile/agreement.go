package reconcile

import (
	"github.com/agentstation/factmap/pkg/entity"
	"github.com/agentstation/factmap/pkg/fields"
)

// Presence points and field weights for the agreement score.
const (
	presentPoints = 1.0
	emptyPoints   = 0.5

	coreFieldWeight      = 2.0
	secondaryFieldWeight = 1.0
)

// AgreementScore returns a coarse 0..1 coverage signal: how completely the
// sources fill in the configured fields. A field earns 1 per source that
// reports it with content, 0.5 per source that reports it empty and 0 per
// source that omits it, averaged over sources. Core fields count double.
//
// The score says nothing about whether sources agree with each other;
// DetectConflicts does that. Entities with fewer than two snapshots score 1.
func (e *Engine) AgreementScore(ent *entity.Entity) (float64, error) {
	if err := ent.Validate(); err != nil {
		return 0, err
	}
	return e.agreement(ent.Snapshots), nil
}

func (e *Engine) agreement(snapshots []entity.Snapshot) float64 {
	if len(snapshots) < 2 {
		return 1
	}

	var achieved, possible float64
	score := func(ds []fields.Descriptor, weight float64) {
		for _, d := range ds {
			var points float64
			for i := range snapshots {
				points += presence(d, &snapshots[i].Record)
			}
			achieved += weight * points / float64(len(snapshots))
			possible += weight
		}
	}
	score(e.spec.Core(), coreFieldWeight)
	score(e.spec.Secondary(), secondaryFieldWeight)

	if possible == 0 {
		return 1
	}
	return achieved / possible
}

func presence(d fields.Descriptor, r *fields.Record) float64 {
	v, ok := d.Get(r)
	switch {
	case !ok:
		return 0
	case v.IsEmpty():
		return emptyPoints
	default:
		return presentPoints
	}
}
