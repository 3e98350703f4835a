// Package changes computes content hashes over an entity's core fields so a
// re-check scheduler can tell whether newly arrived data needs the entity to
// be reconciled again.
package changes

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/agentstation/factmap/pkg/fields"
)

// ChangeType is the kind of change to a single field.
type ChangeType string

const (
	// ChangeTypeAdd means the field was absent and is now reported.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate means the field's normalized value changed.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove means the field is no longer reported.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange describes one field whose value differs between two records.
type FieldChange struct {
	Path     string     `json:"path"`
	OldValue string     `json:"oldValue"`
	NewValue string     `json:"newValue"`
	Type     ChangeType `json:"type"`
}

// Detector hashes and compares records over a fixed field set.
type Detector struct {
	spec *fields.Spec
}

// New returns a detector hashing the core fields of the given field set.
func New(spec *fields.Spec) *Detector {
	return &Detector{spec: spec}
}

// Hash returns the hex SHA-256 digest of r's core fields encoded as
// canonical JSON. Map insertion order and time zones do not affect it.
func (d *Detector) Hash(r *fields.Record) string {
	return HashContent(d.spec.CanonicalCore(r))
}

// HasChanged reports whether r hashes differently from oldHash. An empty
// oldHash always counts as changed.
func (d *Detector) HasChanged(oldHash string, r *fields.Record) bool {
	return oldHash == "" || oldHash != d.Hash(r)
}

// Diff lists the core fields whose normalized values differ between old and
// updated, in core field order.
func (d *Detector) Diff(old, updated *fields.Record) []FieldChange {
	var out []FieldChange
	for _, desc := range d.spec.Core() {
		ov, oldOK := desc.Get(old)
		nv, newOK := desc.Get(updated)
		ok, nk := ov.Key(), nv.Key()
		if oldOK == newOK && ok == nk {
			continue
		}
		change := FieldChange{Path: desc.Path, OldValue: ok, NewValue: nk, Type: ChangeTypeUpdate}
		switch {
		case !oldOK:
			change.Type = ChangeTypeAdd
		case !newOK:
			change.Type = ChangeTypeRemove
		}
		out = append(out, change)
	}
	return out
}

// HashContent hashes arbitrary content as canonical JSON. Content that
// cannot be encoded hashes as JSON null.
func HashContent(content any) string {
	raw, err := fields.CanonicalJSON(content)
	if err != nil {
		raw = []byte(fields.NullKey)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
