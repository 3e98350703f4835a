package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/factmap/pkg/logging"
)

// NewLogger creates the CLI logger. Log level precedence (highest to lowest):
//  1. --log-level flag
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for warn)
//  4. log.level from the config file or FACTMAP_LOG_LEVEL
//  5. info
//
// cfg may be nil when no configuration has been loaded yet.
func NewLogger(flags *Flags, cfg *logging.Config) zerolog.Logger {
	logCfg := logging.DefaultConfig()
	if cfg != nil {
		copied := *cfg
		logCfg = &copied
	}
	logCfg.Level = determineLogLevel(flags, logCfg.Level)
	if flags.NoColor {
		logCfg.NoColor = true
	}
	return logging.NewLoggerFromConfig(logCfg)
}

func determineLogLevel(flags *Flags, configured string) string {
	if flags.LogLevel != "" {
		validated := validateLogLevel(flags.LogLevel)
		if validated != flags.LogLevel {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", flags.LogLevel, validated)
		}
		return validated
	}

	if flags.Verbose && flags.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if flags.Verbose {
		return "debug"
	}
	if flags.Quiet {
		return "warn"
	}

	if configured != "" {
		return validateLogLevel(configured)
	}
	return "info"
}

// validateLogLevel returns level when it is known and "info" otherwise.
func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	}
	return "info"
}
