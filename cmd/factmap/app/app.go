// Package app provides the application context and dependency management
// for the factmap CLI.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/factmap/internal/appcontext"
	"github.com/agentstation/factmap/internal/config"
	"github.com/agentstation/factmap/pkg/reconcile"
)

// App holds the CLI's configuration, logger and lazily built engine.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	flags  *Flags
	logger *zerolog.Logger
	// fixedLogger is set by WithLogger; flags then no longer rebuild it.
	fixedLogger bool

	mu     sync.Mutex
	config *config.Config
	engine *reconcile.Engine
}

var _ appcontext.Interface = (*App)(nil)

// New creates an App with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		flags:   &Flags{},
	}

	logger := NewLogger(app.flags, nil)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format flag value; empty means auto-detect.
func (a *App) OutputFormat() string {
	return a.flags.Format
}

// Config returns the engine configuration, loading it on first use from
// the --config file or the default locations.
func (a *App) Config() (*config.Config, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadConfig()
}

func (a *App) loadConfig() (*config.Config, error) {
	if a.config != nil {
		return a.config, nil
	}
	cfg, err := config.Load(a.flags.ConfigFile)
	if err != nil {
		return nil, err
	}
	a.config = cfg
	return cfg, nil
}

// Engine returns the reconciliation engine, building it on first use.
func (a *App) Engine() (*reconcile.Engine, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.engine != nil {
		return a.engine, nil
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	eng, err := cfg.Engine(a.logger)
	if err != nil {
		return nil, err
	}
	a.engine = eng
	a.logger.Debug().
		Str("config", cfg.File).
		Strs("core", cfg.Fields.Core).
		Int("workers", cfg.Workers).
		Msg("Engine ready")
	return eng, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets the engine configuration instead of loading it.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) error {
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.fixedLogger = true
		return nil
	}
}
