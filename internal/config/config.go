// Package config loads the reconciliation engine settings from a YAML
// config file, FACTMAP_* environment variables and .env files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/fields"
	"github.com/agentstation/factmap/pkg/logging"
	"github.com/agentstation/factmap/pkg/reconcile"
	"github.com/agentstation/factmap/pkg/reliability"
	"github.com/agentstation/factmap/pkg/types"
)

// EnvPrefix prefixes every environment override, e.g. FACTMAP_DEFAULT_WEIGHT.
const EnvPrefix = "FACTMAP"

// FileName is the config file searched for in the working and home
// directories when no explicit path is given.
const FileName = ".factmap"

// Fields lists the field paths compared by the engine.
type Fields struct {
	Core      []string `mapstructure:"core" yaml:"core"`
	Secondary []string `mapstructure:"secondary" yaml:"secondary"`
}

// Config is the complete engine configuration.
type Config struct {
	// Weights maps source ids and patterns such as "scraper-*" to trust
	// weights in [0,100]. Entries from a config file extend and override
	// the built-in table. Source ids are matched case-insensitively.
	Weights       map[string]int   `mapstructure:"weights" yaml:"weights"`
	DefaultWeight int              `mapstructure:"default_weight" yaml:"default_weight"`
	Fields        Fields           `mapstructure:"fields" yaml:"fields"`
	Policy        reconcile.Policy `mapstructure:"policy" yaml:"policy"`
	Workers       int              `mapstructure:"workers" yaml:"workers"`
	Log           logging.Config   `mapstructure:"log" yaml:"log"`

	// File is the config file actually read, empty when none was found.
	File string `mapstructure:"-" yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	weights := make(map[string]int)
	for id, w := range reliability.DefaultWeights() {
		weights[string(id)] = w
	}
	return &Config{
		Weights:       weights,
		DefaultWeight: reliability.DefaultWeight,
		Fields: Fields{
			Core:      append([]string(nil), fields.DefaultCore...),
			Secondary: append([]string(nil), fields.DefaultSecondary...),
		},
		Policy:  reconcile.DefaultPolicy(),
		Workers: 4,
		Log:     *logging.DefaultConfig(),
	}
}

// Load reads configuration in order of precedence:
//  1. FACTMAP_* environment variables (including those from .env files)
//  2. the config file at path, or .factmap.yaml in the working or home directory
//  3. defaults
//
// A missing default config file is not an error; a missing explicit one is.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.WrapParse("yaml", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapConfig("config", err)
	}
	cfg.File = v.ConfigFileUsed()

	// Environment lists arrive as one comma separated string.
	cfg.Fields.Core = splitList(cfg.Fields.Core)
	cfg.Fields.Secondary = splitList(cfg.Fields.Secondary)

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override nested values.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("weights", d.Weights)
	v.SetDefault("default_weight", d.DefaultWeight)
	v.SetDefault("fields.core", d.Fields.Core)
	v.SetDefault("fields.secondary", d.Fields.Secondary)
	v.SetDefault("policy.max_conflicts", d.Policy.MaxConflicts)
	v.SetDefault("policy.verified_min_sources", d.Policy.VerifiedMinSources)
	v.SetDefault("policy.verified_min_agreement", d.Policy.VerifiedMinAgreement)
	v.SetDefault("policy.partial_min_sources", d.Policy.PartialMinSources)
	v.SetDefault("policy.partial_min_agreement", d.Policy.PartialMinAgreement)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)
	v.SetDefault("log.no_color", d.Log.NoColor)
}

// Registry builds the source reliability registry.
func (c *Config) Registry() (*reliability.Registry, error) {
	weights := make(map[types.SourceID]int, len(c.Weights))
	for id, w := range c.Weights {
		weights[types.SourceID(id)] = w
	}
	return reliability.New(weights, c.DefaultWeight)
}

// Spec builds the field spec.
func (c *Config) Spec() (*fields.Spec, error) {
	return fields.NewSpec(c.Fields.Core, c.Fields.Secondary)
}

// Engine builds a reconciliation engine from the configuration.
func (c *Config) Engine(logger *zerolog.Logger) (*reconcile.Engine, error) {
	registry, err := c.Registry()
	if err != nil {
		return nil, err
	}
	spec, err := c.Spec()
	if err != nil {
		return nil, err
	}
	return reconcile.New(
		reconcile.WithRegistry(registry),
		reconcile.WithSpec(spec),
		reconcile.WithPolicy(c.Policy),
		reconcile.WithWorkers(c.Workers),
		reconcile.WithLogger(logger),
	)
}

// loadEnvFiles loads .env and then .env.local; variables already set in
// the environment are never overwritten.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(filepath.Clean(name)); err == nil {
			_ = godotenv.Load(name)
		}
	}
}

func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
