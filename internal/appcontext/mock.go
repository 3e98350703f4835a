package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/factmap/pkg/reconcile"
)

// Mock is an Interface for tests. Nil function fields return zero values,
// except Engine, which returns a default engine.
type Mock struct {
	EngineFunc       func() (*reconcile.Engine, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
}

// Engine returns the engine from EngineFunc or a default engine.
func (m *Mock) Engine() (*reconcile.Engine, error) {
	if m.EngineFunc != nil {
		return m.EngineFunc()
	}
	return reconcile.New(reconcile.WithLogger(m.Logger()))
}

// Logger returns the logger from LoggerFunc or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format from OutputFormatFunc or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns the version from VersionFunc or "test".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "test"
}

var _ Interface = (*Mock)(nil)
