// Package reliability maps source identifiers to trust weights.
//
// A Registry is immutable once built and safe for concurrent reads. Lookups
// never fail: sources the registry does not recognize resolve to its default
// weight. Entries may be exact ids ("calpe-official") or patterns
// ("scraper-*"); an exact id always wins over a pattern, and among patterns
// the longest one wins. Source ids match case-insensitively.
package reliability

import (
	"fmt"
	"maps"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/types"
)

// Weight bounds.
const (
	MinWeight = 0
	MaxWeight = 100

	// DefaultWeight is returned for sources the registry does not know.
	DefaultWeight = 50
)

// Lookup resolves a source to its weight.
type Lookup interface {
	Get(id types.SourceID) int
}

// Registry is an immutable source → weight table.
type Registry struct {
	exact         map[types.SourceID]int
	patterns      []pattern
	defaultWeight int
}

type pattern struct {
	glob   string
	weight int
}

// DefaultWeights is the built-in trust table.
func DefaultWeights() map[types.SourceID]int {
	return map[types.SourceID]int{
		types.OfficialID:      95,
		"turisme-cv":          90,
		"google-places":       85,
		"eventbrite":          80,
		"tripadvisor":         75,
		types.ManualID:        70,
		"facebook":            65,
		"instagram":           60,
		"scraper-*":           55,
		"community-submitted": 40,
	}
}

// New builds a registry from weights. Keys containing '*', '?' or '[' are
// treated as patterns. Weights and the default must lie in [0,100].
func New(weights map[types.SourceID]int, defaultWeight int) (*Registry, error) {
	if err := checkWeight("default", defaultWeight); err != nil {
		return nil, err
	}

	r := &Registry{
		exact:         make(map[types.SourceID]int, len(weights)),
		defaultWeight: defaultWeight,
	}
	for raw, w := range weights {
		id := fold(raw)
		if strings.TrimSpace(string(id)) == "" {
			return nil, errors.NewConfigError("reliability", "empty source id", nil)
		}
		if err := checkWeight(string(id), w); err != nil {
			return nil, err
		}
		if isPattern(string(id)) {
			if _, err := filepath.Match(string(id), ""); err != nil {
				return nil, errors.NewConfigError("reliability", fmt.Sprintf("bad pattern %q", id), err)
			}
			for _, p := range r.patterns {
				if p.glob == string(id) {
					return nil, errors.NewConfigError("reliability", fmt.Sprintf("duplicate source id %q", raw), nil)
				}
			}
			r.patterns = append(r.patterns, pattern{glob: string(id), weight: w})
			continue
		}
		if _, dup := r.exact[id]; dup {
			return nil, errors.NewConfigError("reliability", fmt.Sprintf("duplicate source id %q", raw), nil)
		}
		r.exact[id] = w
	}

	// Longest pattern first; ties broken alphabetically so lookups never
	// depend on map iteration order.
	sort.Slice(r.patterns, func(i, j int) bool {
		if len(r.patterns[i].glob) != len(r.patterns[j].glob) {
			return len(r.patterns[i].glob) > len(r.patterns[j].glob)
		}
		return r.patterns[i].glob < r.patterns[j].glob
	})
	return r, nil
}

// Default returns a registry with DefaultWeights and DefaultWeight.
func Default() *Registry {
	r, err := New(DefaultWeights(), DefaultWeight)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the weight for id, or the default weight.
func (r *Registry) Get(id types.SourceID) int {
	id = fold(id)
	if w, ok := r.exact[id]; ok {
		return w
	}
	for _, p := range r.patterns {
		if MatchesPattern(string(id), p.glob) {
			return p.weight
		}
	}
	return r.defaultWeight
}

// Known reports whether id matches an explicit entry.
func (r *Registry) Known(id types.SourceID) bool {
	id = fold(id)
	if _, ok := r.exact[id]; ok {
		return true
	}
	for _, p := range r.patterns {
		if MatchesPattern(string(id), p.glob) {
			return true
		}
	}
	return false
}

// DefaultWeight returns the weight used for unknown sources.
func (r *Registry) DefaultWeight() int {
	return r.defaultWeight
}

// Weights returns a copy of the registry's entries.
func (r *Registry) Weights() map[types.SourceID]int {
	out := maps.Clone(r.exact)
	for _, p := range r.patterns {
		out[types.SourceID(p.glob)] = p.weight
	}
	return out
}

// MatchesPattern reports whether id matches pattern. A trailing '*' is a
// prefix match; other patterns use filepath.Match syntax.
func MatchesPattern(id, pattern string) bool {
	if id == pattern {
		return true
	}
	if strings.HasSuffix(pattern, "*") && !strings.ContainsAny(pattern[:len(pattern)-1], "*?[") {
		return strings.HasPrefix(id, strings.TrimSuffix(pattern, "*"))
	}
	matched, err := filepath.Match(pattern, id)
	return err == nil && matched
}

func fold(id types.SourceID) types.SourceID {
	return types.SourceID(strings.ToLower(string(id)))
}

func isPattern(id string) bool {
	return strings.ContainsAny(id, "*?[")
}

func checkWeight(name string, w int) error {
	if w < MinWeight || w > MaxWeight {
		return errors.NewConfigError("reliability",
			fmt.Sprintf("weight %d for %s outside [%d,%d]", w, name, MinWeight, MaxWeight), nil)
	}
	return nil
}

// Store holds the current Registry and allows it to be swapped at runtime.
// Readers never block; a swap is visible to lookups that start after it.
type Store struct {
	current atomic.Pointer[Registry]
}

// NewStore returns a store serving r.
func NewStore(r *Registry) *Store {
	s := &Store{}
	s.current.Store(r)
	return s
}

// Get returns the weight for id from the current registry.
func (s *Store) Get(id types.SourceID) int {
	return s.current.Load().Get(id)
}

// Registry returns the registry currently served.
func (s *Store) Registry() *Registry {
	return s.current.Load()
}

// Swap replaces the served registry and returns the previous one.
func (s *Store) Swap(r *Registry) *Registry {
	return s.current.Swap(r)
}
