package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Konsultn-Engineering/ejsql/dialect"
	"github.com/Konsultn-Engineering/ejsql/errs"
)

// RenderConfig controls how a template is obtained for one render call.
type RenderConfig struct {
	// Cache reuses and stores the compiled template under Filename.
	Cache bool `json:"cache" yaml:"cache"`
	// Filename is the cache key identifying the template.
	Filename string `json:"filename" yaml:"filename"`
}

// Validate rejects Cache without a Filename rather than silently skipping
// the cache or sharing an anonymous key between unrelated templates.
func (rc RenderConfig) Validate() error {
	if rc.Cache && strings.TrimSpace(rc.Filename) == "" {
		return &errs.ConfigError{Field: "filename", Message: "required when cache is enabled"}
	}
	return nil
}

// EvalConfig controls evaluation of a compiled template.
type EvalConfig struct {
	// Debug adds the failing marker and surrounding template text to
	// evaluation errors.
	Debug bool `json:"debug" yaml:"debug"`
}

// Config describes an Engine. The zero value is a Postgres engine with an
// unbounded cache.
type Config struct {
	Dialect   string `json:"dialect" yaml:"dialect"`
	CacheSize int    `json:"cache_size" yaml:"cache_size"`
	Debug     bool   `json:"debug" yaml:"debug"`
}

// Validate validates engine configuration.
func (c Config) Validate() error {
	if _, ok := dialect.ByName(c.Dialect); !ok {
		return &errs.ConfigError{
			Field:   "dialect",
			Message: fmt.Sprintf("unknown dialect %q (supported: %s)", c.Dialect, strings.Join(dialect.Names(), ", ")),
		}
	}
	if c.CacheSize < 0 {
		return &errs.ConfigError{Field: "cache_size", Message: "must not be negative"}
	}
	return nil
}

// LoadConfig decodes a YAML engine configuration. Unknown keys are
// rejected. An empty document yields the zero Config.
func LoadConfig(r io.Reader) (Config, error) {
	const errCtx = "loading engine config"

	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}
	return cfg, nil
}
