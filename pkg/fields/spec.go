package fields

import (
	"fmt"

	"github.com/agentstation/factmap/pkg/errors"
)

// Spec lists which fields decide verification (core) and which only earn
// partial credit (secondary), each in a fixed order.
type Spec struct {
	core      []Descriptor
	secondary []Descriptor
}

// DefaultCore is the core field list used when none is configured.
var DefaultCore = []string{
	PathTitle,
	PathStartDate,
	PathLocationName,
	PathLocationAddress,
}

// DefaultSecondary is the secondary field list used when none is configured.
var DefaultSecondary = []string{
	PathDescription,
	PathEndDate,
	PathLocationCity,
	PathCategory,
	PathURL,
	PathOrganizer,
	PathCoordinates,
	PathOpeningHours,
	PathImages,
	PathPrice,
	PathCapacity,
}

// NewSpec resolves the configured field paths. It fails with a
// misconfiguration error when the core list is empty, a path is unknown,
// or a path is listed twice.
func NewSpec(core, secondary []string) (*Spec, error) {
	if len(core) == 0 {
		return nil, errors.NewConfigError("fields", "core field list is empty", nil)
	}

	seen := make(map[string]bool, len(core)+len(secondary))
	resolve := func(paths []string) ([]Descriptor, error) {
		out := make([]Descriptor, 0, len(paths))
		for _, p := range paths {
			d, ok := Lookup(p)
			if !ok {
				return nil, errors.NewConfigError("fields", fmt.Sprintf("unknown field %q", p), errors.NewNotFoundError("field", p))
			}
			if seen[p] {
				return nil, errors.NewConfigError("fields", fmt.Sprintf("field %q listed more than once", p), nil)
			}
			seen[p] = true
			out = append(out, d)
		}
		return out, nil
	}

	c, err := resolve(core)
	if err != nil {
		return nil, err
	}
	s, err := resolve(secondary)
	if err != nil {
		return nil, err
	}
	return &Spec{core: c, secondary: s}, nil
}

// DefaultSpec returns the built-in event/POI field spec.
func DefaultSpec() *Spec {
	s, err := NewSpec(DefaultCore, DefaultSecondary)
	if err != nil {
		panic(err)
	}
	return s
}

// Core returns the core descriptors in configured order.
func (s *Spec) Core() []Descriptor {
	return s.core
}

// Secondary returns the secondary descriptors in configured order.
func (s *Spec) Secondary() []Descriptor {
	return s.secondary
}

// All returns core followed by secondary descriptors.
func (s *Spec) All() []Descriptor {
	all := make([]Descriptor, 0, len(s.core)+len(s.secondary))
	all = append(all, s.core...)
	return append(all, s.secondary...)
}

// CorePaths returns the core field paths.
func (s *Spec) CorePaths() []string {
	return paths(s.core)
}

// SecondaryPaths returns the secondary field paths.
func (s *Spec) SecondaryPaths() []string {
	return paths(s.secondary)
}

// CanonicalCore returns the core fields of r as a path-keyed map suitable
// for hashing. Absent fields map to nil; dates are rendered in UTC. A
// field that cannot be encoded as JSON, such as a NaN price, maps to
// NullKey so the remaining fields still count.
func (s *Spec) CanonicalCore(r *Record) map[string]any {
	out := make(map[string]any, len(s.core))
	for _, d := range s.core {
		v, _ := d.Get(r)
		c := v.canonical()
		if _, err := CanonicalJSON(c); err != nil {
			c = NullKey
		}
		out[d.Path] = c
	}
	return out
}

func paths(ds []Descriptor) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Path
	}
	return out
}
