// Package config loads the urn tool configuration from YAML and builds the
// logger the other packages share.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// EnvPath names the environment variable consulted when no --config flag
// is given.
const EnvPath = "URN_CONFIG"

// Output formats.
const (
	FormatTable = "table"
	FormatPlot  = "plot"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	Format    string `yaml:"format" default:"table"`
	Rational  bool   `yaml:"rational"`
	Precision int32  `yaml:"precision" default:"10"`
	Commas    bool   `yaml:"commas"`
	Color     string `yaml:"color" default:"auto"`
}

// LogConfig controls the logger returned by NewLogger.
type LogConfig struct {
	Level  string `yaml:"level" default:"warn"`
	Format string `yaml:"format" default:"text"`
}

// EngineConfig tunes the evaluator.
type EngineConfig struct {
	BinomialCacheSize int `yaml:"binomial_cache_size" default:"4096"`
}

// Config is the complete tool configuration.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
	Engine EngineConfig `yaml:"engine"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Parse reads a YAML document over the defaults. Keys absent from data keep
// their default values; unknown keys are an error.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing configuration")
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	cfg.Output.Color = strings.ToLower(cfg.Output.Color)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the configuration file at path. An empty path falls back to
// $URN_CONFIG, and to the defaults when that is unset too.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading configuration %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return cfg, nil
}

// Validate checks that every option has a usable value.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatTable, FormatPlot:
	default:
		return errors.Errorf("output.format must be %q or %q, got %q", FormatTable, FormatPlot, c.Output.Format)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("output.color must be auto, always or never, got %q", c.Output.Color)
	}
	if c.Output.Precision < 0 {
		return errors.Errorf("output.precision must not be negative, got %d", c.Output.Precision)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Engine.BinomialCacheSize <= 0 {
		return errors.Errorf("engine.binomial_cache_size must be positive, got %d", c.Engine.BinomialCacheSize)
	}
	return nil
}

// NewLogger builds a logger writing to w at the configured level and format.
func (c *Config) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log.level")
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)
	if c.Log.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}
	return log, nil
}
