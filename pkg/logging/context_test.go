package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/agentstation/factmap/pkg/logging"
	"github.com/stretchr/testify/assert"
)

func TestContextFields(t *testing.T) {
	tests := []struct {
		name   string
		decor  func(context.Context) context.Context
		expect []string
	}{
		{
			name:   "entity",
			decor:  func(ctx context.Context) context.Context { return logging.WithEntity(ctx, "poi-42") },
			expect: []string{`"entity_id":"poi-42"`},
		},
		{
			name:   "source",
			decor:  func(ctx context.Context) context.Context { return logging.WithSource(ctx, "calpe-official") },
			expect: []string{`"source_id":"calpe-official"`},
		},
		{
			name:   "operation",
			decor:  func(ctx context.Context) context.Context { return logging.WithOperation(ctx, "classify") },
			expect: []string{`"operation":"classify"`},
		},
		{
			name: "custom fields",
			decor: func(ctx context.Context) context.Context {
				return logging.WithFields(ctx, map[string]any{"sources": 3, "verified": true})
			},
			expect: []string{`"sources":3`, `"verified":true`},
		},
		{
			name:   "error",
			decor:  func(ctx context.Context) context.Context { return logging.WithError(ctx, errors.New("boom")) },
			expect: []string{`"error":"boom"`},
		},
		{
			name: "chained",
			decor: func(ctx context.Context) context.Context {
				ctx = logging.WithEntity(ctx, "event-7")
				ctx = logging.WithSource(ctx, "facebook")
				return logging.WithOperation(ctx, "merge")
			},
			expect: []string{`"entity_id":"event-7"`, `"source_id":"facebook"`, `"operation":"merge"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := logging.NewTestLogger(t)
			ctx := logging.WithLogger(context.Background(), tl.Logger)
			ctx = tt.decor(ctx)

			logging.FromContext(ctx).Info().Msg("reconciled")

			for _, want := range tt.expect {
				tl.AssertContains(t, want)
			}
		})
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.FromContext(nil))
	assert.Same(t, logging.Default(), logging.Ctx(context.Background()))
}

func TestWithErrorNil(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, logging.WithError(ctx, nil))
}

func TestRequestID(t *testing.T) {
	ctx := logging.WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", logging.RequestID(ctx))
	assert.Empty(t, logging.RequestID(context.Background()))
}
