// Package reconcile decides, per entity, how far the facts reported by its
// sources can be trusted, where they disagree and what the canonical value
// of each field is.
//
// An Engine bundles the reliability registry, the field spec and the
// classification policy. It holds no mutable state: every method is a pure
// function of its arguments, so one Engine may reconcile many entities
// concurrently.
//
//	eng, err := reconcile.New(
//		reconcile.WithRegistry(reliability.Default()),
//		reconcile.WithPolicy(reconcile.DefaultPolicy()),
//	)
//	result, err := eng.Classify(ent)
package reconcile

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/factmap/pkg/changes"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/fields"
	"github.com/agentstation/factmap/pkg/logging"
	"github.com/agentstation/factmap/pkg/reliability"
	"github.com/agentstation/factmap/pkg/types"
)

// Engine reconciles source snapshots. Construct it with New.
type Engine struct {
	registry reliability.Lookup
	spec     *fields.Spec
	policy   Policy
	changes  *changes.Detector
	logger   *zerolog.Logger
	workers  int
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine) error

// New creates an Engine. Without options it uses the default registry,
// field spec and policy.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		registry: reliability.Default(),
		spec:     fields.DefaultSpec(),
		policy:   DefaultPolicy(),
		logger:   logging.Default(),
		workers:  defaultWorkers,
		now:      func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	e.changes = changes.New(e.spec)
	return e, nil
}

// WithRegistry sets the source weight lookup.
func WithRegistry(r reliability.Lookup) Option {
	return func(e *Engine) error {
		if r == nil {
			return errors.NewConfigError("engine", "registry is nil", nil)
		}
		e.registry = r
		return nil
	}
}

// WithSpec sets the core and secondary field lists.
func WithSpec(s *fields.Spec) Option {
	return func(e *Engine) error {
		if s == nil {
			return errors.NewConfigError("engine", "field spec is nil", nil)
		}
		e.spec = s
		return nil
	}
}

// WithPolicy sets the classification thresholds.
func WithPolicy(p Policy) Option {
	return func(e *Engine) error {
		if err := p.Validate(); err != nil {
			return err
		}
		e.policy = p
		return nil
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *zerolog.Logger) Option {
	return func(e *Engine) error {
		if l != nil {
			e.logger = l
		}
		return nil
	}
}

// WithWorkers bounds the number of entities ReconcileAll processes at once.
func WithWorkers(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			return errors.NewConfigError("engine", "workers must be at least 1", nil)
		}
		e.workers = n
		return nil
	}
}

// WithClock sets the time source used to stamp reports.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) error {
		if now != nil {
			e.now = now
		}
		return nil
	}
}

// Spec returns the engine's field spec.
func (e *Engine) Spec() *fields.Spec {
	return e.spec
}

// Policy returns the engine's classification thresholds.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Weight returns the registry weight of a source.
func (e *Engine) Weight(id types.SourceID) int {
	return e.registry.Get(id)
}

// Hash returns the content hash of r's core fields.
func (e *Engine) Hash(r *fields.Record) string {
	return e.changes.Hash(r)
}

// HasChanged reports whether r's core content differs from oldHash.
func (e *Engine) HasChanged(oldHash string, r *fields.Record) bool {
	return e.changes.HasChanged(oldHash, r)
}
