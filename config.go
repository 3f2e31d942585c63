package fulltext

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings that shape the index.
type Config struct {
	IndexAmount int  `yaml:"index_amount"` // Longest indexed shingle (default: 12)
	IgnoreCase  bool `yaml:"ignore_case"`  // Case-fold text and queries (default: true)
	OnlyPrefix  bool `yaml:"only_prefix"`  // Shingle word prefixes only (default: false)
}

// DefaultConfig returns the standard index configuration.
func DefaultConfig() Config {
	return Config{
		IndexAmount: 12,
		IgnoreCase:  true,
		OnlyPrefix:  false,
	}
}

// Validate checks that the configuration can build an index.
func (c Config) Validate() error {
	if c.IndexAmount < 1 {
		return fmt.Errorf("%w: index_amount must be at least 1, got %d", ErrInvalidArgument, c.IndexAmount)
	}
	return nil
}

// LoadConfig reads a YAML configuration file. Keys missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Options is a partial configuration. Nil fields are left unchanged when
// merged into a Config.
type Options struct {
	IndexAmount *int  `yaml:"index_amount"`
	IgnoreCase  *bool `yaml:"ignore_case"`
	OnlyPrefix  *bool `yaml:"only_prefix"`
}

// apply returns c with every non-nil option merged in.
func (o Options) apply(c Config) Config {
	if o.IndexAmount != nil {
		c.IndexAmount = *o.IndexAmount
	}
	if o.IgnoreCase != nil {
		c.IgnoreCase = *o.IgnoreCase
	}
	if o.OnlyPrefix != nil {
		c.OnlyPrefix = *o.OnlyPrefix
	}
	return c
}

// Option configures an Index at construction time.
type Option func(*Index)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(idx *Index) {
		idx.config = cfg
	}
}

// WithOptions merges a partial configuration into the defaults.
func WithOptions(opts Options) Option {
	return func(idx *Index) {
		idx.config = opts.apply(idx.config)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Index) {
		if logger != nil {
			idx.logger = logger
		}
	}
}
