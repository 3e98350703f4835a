package reconcile

import (
	"math"

	"github.com/agentstation/factmap/pkg/entity"
	"github.com/agentstation/factmap/pkg/reliability"
)

// Status is an entity's verification state.
type Status string

// Verification states. Every entity starts unverified and only moves when
// its snapshots change and it is classified again.
const (
	StatusUnverified        Status = "unverified"
	StatusPartiallyVerified Status = "partially-verified"
	StatusVerified          Status = "verified"
	// StatusDisputed flags an entity for human review. It is advisory and
	// does not reject the entity.
	StatusDisputed Status = "disputed"
)

// String returns the status name.
func (s Status) String() string {
	return string(s)
}

// VerificationResult is the outcome of classifying one entity.
type VerificationResult struct {
	Status              Status     `json:"status" yaml:"status"`
	SourceCount         int        `json:"sourceCount" yaml:"sourceCount"`
	VerifiedSourceCount int        `json:"verifiedSourceCount" yaml:"verifiedSourceCount"`
	Confidence          int        `json:"confidence" yaml:"confidence"`
	Conflicts           []Conflict `json:"conflicts" yaml:"conflicts"`
	ConflictCount       int        `json:"conflictCount" yaml:"conflictCount"`
	AgreementScore      float64    `json:"agreementScore" yaml:"agreementScore"`
}

// Classify assigns a status and a 0..100 confidence to ent.
//
// Rules, first match wins:
//
//  1. no sources: unverified, confidence 0
//  2. one source: unverified, confidence is that source's registry weight
//  3. more than Policy.MaxConflicts conflicting core fields: disputed
//  4. enough verified sources and agreement for verified
//  5. enough verified sources and agreement for partially-verified
//  6. otherwise unverified
//
// From two sources on, confidence is the mean source reliability scaled by
// the agreement score. A snapshot's explicit Confidence replaces its
// registry weight in that mean.
func (e *Engine) Classify(ent *entity.Entity) (VerificationResult, error) {
	if err := ent.Validate(); err != nil {
		return VerificationResult{}, err
	}
	return e.classify(ent.Snapshots), nil
}

func (e *Engine) classify(snapshots []entity.Snapshot) VerificationResult {
	res := VerificationResult{
		Status:         StatusUnverified,
		SourceCount:    len(snapshots),
		AgreementScore: 1,
		Conflicts:      []Conflict{},
	}
	for _, s := range snapshots {
		if s.Verified {
			res.VerifiedSourceCount++
		}
	}

	switch len(snapshots) {
	case 0:
		return res
	case 1:
		res.Confidence = clampWeight(e.registry.Get(snapshots[0].SourceID))
		return res
	}

	res.Conflicts = e.detect(snapshots)
	res.ConflictCount = len(res.Conflicts)
	res.AgreementScore = e.agreement(snapshots)
	res.Confidence = clampWeight(int(math.Round(e.averageReliability(snapshots) * res.AgreementScore)))

	p := e.policy
	switch {
	case res.ConflictCount > p.MaxConflicts:
		res.Status = StatusDisputed
	case res.VerifiedSourceCount >= p.VerifiedMinSources && res.AgreementScore >= p.VerifiedMinAgreement:
		res.Status = StatusVerified
	case res.VerifiedSourceCount >= p.PartialMinSources && res.AgreementScore >= p.PartialMinAgreement:
		res.Status = StatusPartiallyVerified
	}
	return res
}

func (e *Engine) averageReliability(snapshots []entity.Snapshot) float64 {
	if len(snapshots) == 0 {
		return 0
	}
	total := 0
	for _, s := range snapshots {
		if s.Confidence != nil {
			total += clampWeight(*s.Confidence)
			continue
		}
		total += e.registry.Get(s.SourceID)
	}
	return float64(total) / float64(len(snapshots))
}

func clampWeight(w int) int {
	return max(reliability.MinWeight, min(reliability.MaxWeight, w))
}
