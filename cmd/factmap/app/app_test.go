package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/factmap/cmd/factmap/cmd/classify"
	"github.com/agentstation/factmap/cmd/factmap/cmd/hash"
	"github.com/agentstation/factmap/cmd/factmap/cmd/merge"
	"github.com/agentstation/factmap/internal/config"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/logging"
	"github.com/agentstation/factmap/pkg/reconcile"
)

const eventsFile = "testdata/events.yaml"

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New("1.2.3", "abc", "today", "test",
		WithConfig(config.Default()),
		WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	return a
}

func run(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := a.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func TestClassifyJSON(t *testing.T) {
	out, err := run(t, newTestApp(t), "classify", "-o", "json", eventsFile)
	require.NoError(t, err)

	var reports []*reconcile.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	fiesta := reports[0]
	assert.Equal(t, "fiesta-penon", fiesta.EntityID)
	assert.Equal(t, 1, fiesta.Verification.ConflictCount, "only the facebook title differs")
	assert.Equal(t, reconcile.StatusPartiallyVerified, fiesta.Verification.Status)

	mercado := reports[1]
	assert.Equal(t, reconcile.StatusDisputed, mercado.Verification.Status)
	assert.Equal(t, 4, mercado.Verification.ConflictCount)
}

func TestClassifyTable(t *testing.T) {
	out, err := run(t, newTestApp(t), "classify", "--format", "table", "--conflicts", eventsFile)
	require.NoError(t, err)
	assert.Contains(t, out, "fiesta-penon")
	assert.Contains(t, out, "disputed")
	assert.Contains(t, out, "Conflicts: mercado-medieval")
}

func TestClassifyStrict(t *testing.T) {
	_, err := run(t, newTestApp(t), "classify", "-o", "json", "--strict", eventsFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, classify.ErrDisputed)
}

func TestHashWithPrevious(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "classify", "-o", "json", eventsFile)
	require.NoError(t, err)
	prev := filepath.Join(t.TempDir(), "reports.json")
	require.NoError(t, os.WriteFile(prev, []byte(out), 0o600))

	out, err = run(t, a, "hash", "-o", "json", "--previous", prev, eventsFile)
	require.NoError(t, err)

	var results []hash.Result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Changed, r.EntityID)
		assert.Len(t, r.ContentHash, 64)
	}
}

func TestMergeYAML(t *testing.T) {
	out, err := run(t, newTestApp(t), "merge", "-o", "yaml", eventsFile)
	require.NoError(t, err)

	var results []merge.Result
	require.NoError(t, yaml.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)

	fiesta := results[0].Merged
	require.NotNil(t, fiesta)
	assert.Equal(t, "Fiesta del Peñón", fiesta.Record.Title["es"])
	assert.Equal(t, "festival", *fiesta.Record.Category)
}

func TestResolveTable(t *testing.T) {
	out, err := run(t, newTestApp(t), "resolve", "-o", "table", eventsFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Resolutions: fiesta-penon")
	assert.Contains(t, out, "Resolutions: mercado-medieval")
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   func(error) bool
	}{
		{"bad format", []string{"classify", "-o", "xml", eventsFile}, nil},
		{"missing file", []string{"classify", "missing.yaml"}, nil},
		{"no files", []string{"merge"}, nil},
		{"invalid entity", []string{"hash", "testdata/invalid.yaml"}, errors.IsValidationError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, newTestApp(t), tt.args...)
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, tt.is(err))
			}
		})
	}
}

func TestEngineFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Weights = map[string]int{"town-hall": 99}
	a, err := New("dev", "", "", "", WithConfig(cfg), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)

	eng, err := a.Engine()
	require.NoError(t, err)
	assert.Equal(t, 99, eng.Weight("town-hall"))

	again, err := a.Engine()
	require.NoError(t, err)
	assert.Same(t, eng, again)
}

func TestVersion(t *testing.T) {
	out, err := run(t, newTestApp(t), "--version")
	require.NoError(t, err)
	assert.Equal(t, "factmap 1.2.3\n", out)
}

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name       string
		flags      Flags
		configured string
		want       string
	}{
		{"default", Flags{}, "", "info"},
		{"configured", Flags{}, "error", "error"},
		{"invalid configured", Flags{}, "loud", "info"},
		{"verbose", Flags{Verbose: true}, "error", "debug"},
		{"quiet", Flags{Quiet: true}, "", "warn"},
		{"both", Flags{Verbose: true, Quiet: true}, "", "warn"},
		{"explicit wins", Flags{LogLevel: "trace", Verbose: true}, "error", "trace"},
		{"invalid explicit", Flags{LogLevel: "chatty"}, "", "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.flags, tt.configured))
		})
	}
}
