package reconcile

import (
	"fmt"

	"github.com/agentstation/factmap/pkg/errors"
)

// Policy holds the thresholds the classifier applies. They are policy, not
// code, and are normally loaded from configuration.
type Policy struct {
	// MaxConflicts is the number of conflicting core fields an entity may
	// have before it is disputed regardless of anything else.
	MaxConflicts int `json:"maxConflicts" yaml:"maxConflicts" mapstructure:"max_conflicts"`

	// VerifiedMinSources is the number of verified sources required for
	// the verified status.
	VerifiedMinSources int `json:"verifiedMinSources" yaml:"verifiedMinSources" mapstructure:"verified_min_sources"`

	// VerifiedMinAgreement is the agreement score required for verified.
	VerifiedMinAgreement float64 `json:"verifiedMinAgreement" yaml:"verifiedMinAgreement" mapstructure:"verified_min_agreement"`

	// PartialMinSources is the number of verified sources required for
	// partially-verified.
	PartialMinSources int `json:"partialMinSources" yaml:"partialMinSources" mapstructure:"partial_min_sources"`

	// PartialMinAgreement is the agreement score required for
	// partially-verified.
	PartialMinAgreement float64 `json:"partialMinAgreement" yaml:"partialMinAgreement" mapstructure:"partial_min_agreement"`
}

// DefaultPolicy returns the standard thresholds.
func DefaultPolicy() Policy {
	return Policy{
		MaxConflicts:         3,
		VerifiedMinSources:   3,
		VerifiedMinAgreement: 0.8,
		PartialMinSources:    1,
		PartialMinAgreement:  0.6,
	}
}

// Validate rejects thresholds that cannot be met or make no sense.
func (p Policy) Validate() error {
	switch {
	case p.MaxConflicts < 0:
		return policyError("max conflicts %d is negative", p.MaxConflicts)
	case p.VerifiedMinSources < 0 || p.PartialMinSources < 0:
		return policyError("source thresholds must not be negative")
	case p.VerifiedMinAgreement < 0 || p.VerifiedMinAgreement > 1:
		return policyError("verified agreement %v outside [0,1]", p.VerifiedMinAgreement)
	case p.PartialMinAgreement < 0 || p.PartialMinAgreement > 1:
		return policyError("partial agreement %v outside [0,1]", p.PartialMinAgreement)
	}
	return nil
}

func policyError(format string, args ...any) error {
	return errors.NewConfigError("policy", fmt.Sprintf(format, args...), nil)
}
