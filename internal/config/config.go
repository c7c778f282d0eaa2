// Package config holds the runtime configuration of the preprocessor.
// Values come from an optional YAML file; environment variables override
// file values key by key.
package config

import (
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"

	"github.com/kubespec/preprocess/internal/types"
)

// Config is the preprocessor configuration.
//
// Debug enables per-model rewrite logging.
// OutputPrefix is prepended to the input base name to form the output name.
// Workers bounds the number of files processed concurrently in batch mode.
type Config struct {
	Debug        bool   `koanf:"debug" yaml:"debug"`
	OutputPrefix string `koanf:"outputPrefix" yaml:"outputPrefix"`
	Workers      int    `koanf:"workers" yaml:"workers"`
}

// DefaultOutputPrefix marks processed spec files.
const DefaultOutputPrefix = "processed-"

// NewDefaultConfig returns the configuration used when no file is given.
func NewDefaultConfig() *Config {
	return &Config{
		OutputPrefix: DefaultOutputPrefix,
		Workers:      runtime.NumCPU(),
	}
}

// EnsureConfigValues backfills zero values with defaults.
func (c *Config) EnsureConfigValues() {
	if c.OutputPrefix == "" {
		c.OutputPrefix = DefaultOutputPrefix
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// transformConfig applies environment variable overrides: every key can be
// overridden by its SNAKE_CASE upper form, e.g. outputPrefix -> OUTPUT_PREFIX.
func (c *Config) transformConfig(k *koanf.Koanf) *koanf.Koanf {
	transformed := koanf.New(".")
	for key, value := range k.All() {
		envKey := strings.ToUpper(types.ToSnakeCase(key))
		finalValue := value
		if envValue, exists := os.LookupEnv(envKey); exists {
			finalValue = envValue
		}
		_ = transformed.Set(key, finalValue)
	}
	return transformed
}

// MustConfig creates a config from a YAML file path.
// A missing or unreadable file falls back to the defaults.
func MustConfig(filePath string) *Config {
	res := NewDefaultConfig()
	if filePath == "" {
		return res
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(filePath), yaml.Parser()); err != nil {
		slog.Error("error loading config. using fallback", "error", err)
		return res
	}

	transformed := res.transformConfig(k)
	if err := transformed.Unmarshal("", res); err != nil {
		slog.Error("error loading config. using fallback", "error", err)
		return NewDefaultConfig()
	}
	res.EnsureConfigValues()

	return res
}

// NewConfigFromContent creates a config from YAML file content.
func NewConfigFromContent(content []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, err
	}

	cfg := NewDefaultConfig()
	transformed := cfg.transformConfig(k)
	if err := transformed.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.EnsureConfigValues()

	return cfg, nil
}
