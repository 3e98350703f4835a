package reconcile

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agentstation/factmap/pkg/changes"
	"github.com/agentstation/factmap/pkg/entity"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/fields"
	"github.com/agentstation/factmap/pkg/logging"
)

const defaultWorkers = 4

// Transition is a status change between two classifications.
type Transition struct {
	From Status `json:"from" yaml:"from"`
	To   Status `json:"to" yaml:"to"`
}

// Changed reports whether the status moved.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Report is everything recomputed for an entity after its snapshots change.
type Report struct {
	EntityID     string                `json:"entityId" yaml:"entityId"`
	Verification VerificationResult    `json:"verification" yaml:"verification"`
	Merged       *MergedRecord         `json:"merged,omitempty" yaml:"merged,omitempty"`
	Resolutions  map[string]Resolution `json:"resolutions" yaml:"resolutions"`

	// ContentHash is the hash of the merged record's core fields.
	ContentHash string `json:"contentHash" yaml:"contentHash"`

	// Changed is true when ContentHash differs from the previous report's.
	Changed bool `json:"changed" yaml:"changed"`

	// ChangedFields lists the merged core fields that moved since the
	// previous report. It is empty on a first run.
	ChangedFields []changes.FieldChange `json:"changedFields,omitempty" yaml:"changedFields,omitempty"`

	Transition Transition `json:"transition" yaml:"transition"`
	ComputedAt time.Time  `json:"computedAt" yaml:"computedAt"`
}

// Reconcile classifies, merges and resolves ent in one pass. prev is the
// report from the last time ent was reconciled, or nil; it supplies the
// status the transition starts from and the hash used for change detection.
func (e *Engine) Reconcile(ctx context.Context, prev *Report, ent *entity.Entity) (*Report, error) {
	if err := ent.Validate(); err != nil {
		return nil, err
	}

	verification := e.classify(ent.Snapshots)
	merged := e.merge(ent.Snapshots)

	var content fields.Record
	if merged != nil {
		content = merged.Record
	}

	from := StatusUnverified
	prevHash := ""
	if prev != nil {
		from = prev.Verification.Status
		prevHash = prev.ContentHash
	}

	report := &Report{
		EntityID:     ent.ID,
		Verification: verification,
		Merged:       merged,
		Resolutions:  e.Resolve(verification.Conflicts),
		ContentHash:  e.changes.Hash(&content),
		Transition:   Transition{From: from, To: verification.Status},
		ComputedAt:   e.now(),
	}
	report.Changed = e.changes.HasChanged(prevHash, &content)
	if prev != nil && prev.Merged != nil && report.Changed {
		report.ChangedFields = e.changes.Diff(&prev.Merged.Record, &content)
	}

	e.logReport(ctx, report)
	return report, nil
}

// ReconcileAll reconciles entities concurrently and returns their reports
// in input order. previous maps entity IDs to their last reports and may be
// nil. It stops at the first invalid entity or when ctx is done.
func (e *Engine) ReconcileAll(ctx context.Context, entities []*entity.Entity, previous map[string]*Report) ([]*Report, error) {
	for i, ent := range entities {
		if ent == nil {
			return nil, errors.NewValidationError("entities", i, "entity is nil")
		}
	}

	reports := make([]*Report, len(entities))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, ent := range entities {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := e.Reconcile(gctx, previous[ent.ID], ent)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (e *Engine) logReport(ctx context.Context, r *Report) {
	logger := e.logger
	if l, ok := logging.Lookup(ctx); ok {
		logger = l
	}

	v := r.Verification
	if r.Transition.To == StatusDisputed && r.Transition.From != StatusDisputed {
		logger.Warn().
			Str("entity_id", r.EntityID).
			Str("from", r.Transition.From.String()).
			Int("conflicts", v.ConflictCount).
			Msg("Entity disputed, needs review")
		return
	}

	logger.Debug().
		Str("entity_id", r.EntityID).
		Str("status", v.Status.String()).
		Bool("status_changed", r.Transition.Changed()).
		Int("sources", v.SourceCount).
		Int("conflicts", v.ConflictCount).
		Int("confidence", v.Confidence).
		Float64("agreement", v.AgreementScore).
		Bool("content_changed", r.Changed).
		Msg("Reconciled entity")
}
