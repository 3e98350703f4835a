// Package appcontext provides the shared application context interface
// used by all commands.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/factmap/pkg/reconcile"
)

// Interface defines what commands need from the application. The App in
// cmd/factmap/app implements it; tests use Mock.
type Interface interface {
	// Engine returns the reconciliation engine built from the loaded
	// configuration, creating it on first use.
	Engine() (*reconcile.Engine, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string
}
