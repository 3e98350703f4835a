// Package entity holds the per-source snapshots reported for one event or
// point of interest.
package entity

import (
	"slices"
	"time"

	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/fields"
	"github.com/agentstation/factmap/pkg/types"
)

// Snapshot is one source's reported view of an entity at a point in time.
type Snapshot struct {
	SourceID types.SourceID `json:"sourceId" yaml:"sourceId"`
	Record   fields.Record  `json:"record" yaml:"record"`
	Verified bool           `json:"isVerified" yaml:"isVerified"`

	// Confidence overrides the registry weight when averaging reliability.
	Confidence *int `json:"confidence,omitempty" yaml:"confidence,omitempty"`

	LastChecked time.Time `json:"lastChecked" yaml:"lastChecked"`
	ContentHash string    `json:"contentHash,omitempty" yaml:"contentHash,omitempty"`
}

// Validate reports programmer errors in s.
func (s Snapshot) Validate() error {
	if s.SourceID == "" {
		return errors.NewValidationError("sourceId", s.SourceID, "cannot be empty")
	}
	return nil
}

// Entity is an event or POI together with the snapshots reported for it,
// kept in the order their sources first reported.
type Entity struct {
	ID        string           `json:"id" yaml:"id"`
	Kind      types.EntityKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Snapshots []Snapshot       `json:"snapshots" yaml:"snapshots"`
}

// UpsertResult describes what Upsert did.
type UpsertResult struct {
	// Replaced is true when the source already had a snapshot.
	Replaced bool
	// Stale is true when the new snapshot was checked earlier than the one
	// it replaced. It is applied anyway.
	Stale bool
}

// Upsert records s as the current snapshot of its source. A snapshot from a
// source already present replaces the old one in place; it never adds a
// second entry.
func (e *Entity) Upsert(s Snapshot) (UpsertResult, error) {
	if e == nil {
		return UpsertResult{}, errors.NewValidationError("entity", nil, "entity is nil")
	}
	if err := s.Validate(); err != nil {
		return UpsertResult{}, err
	}

	i := e.indexOf(s.SourceID)
	if i < 0 {
		e.Snapshots = append(e.Snapshots, s)
		return UpsertResult{}, nil
	}

	prev := e.Snapshots[i]
	e.Snapshots[i] = s
	return UpsertResult{
		Replaced: true,
		Stale:    !s.LastChecked.IsZero() && s.LastChecked.Before(prev.LastChecked),
	}, nil
}

// Remove drops the snapshot of id and reports whether one existed.
func (e *Entity) Remove(id types.SourceID) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	e.Snapshots = slices.Delete(e.Snapshots, i, i+1)
	return true
}

// Snapshot returns the snapshot reported by id.
func (e *Entity) Snapshot(id types.SourceID) (Snapshot, bool) {
	i := e.indexOf(id)
	if i < 0 {
		return Snapshot{}, false
	}
	return e.Snapshots[i], true
}

// Len returns the number of sources reporting on the entity.
func (e *Entity) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Snapshots)
}

// Validate checks that every snapshot names a source and no source
// appears twice.
func (e *Entity) Validate() error {
	if e == nil {
		return errors.NewValidationError("entity", nil, "entity is nil")
	}
	return ValidateSnapshots(e.Snapshots)
}

// ValidateSnapshots checks a snapshot list handed to the engine directly.
func ValidateSnapshots(snapshots []Snapshot) error {
	seen := make(map[types.SourceID]bool, len(snapshots))
	for _, s := range snapshots {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.SourceID] {
			return errors.NewValidationError("snapshots", s.SourceID, "source reported more than once")
		}
		seen[s.SourceID] = true
	}
	return nil
}

func (e *Entity) indexOf(id types.SourceID) int {
	if e == nil {
		return -1
	}
	return slices.IndexFunc(e.Snapshots, func(s Snapshot) bool { return s.SourceID == id })
}
