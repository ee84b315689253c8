// Package config handles loading and saving user configuration for phonix.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/phonix/internal/corpus"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// CacheOff disables the dictionary cache when used as corpus.cache.
const CacheOff = "off"

// Config holds all user configuration.
type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Highlight HighlightConfig `yaml:"highlight"`
	Log       LogConfig       `yaml:"log"`
}

// CorpusConfig selects where the alignment corpus comes from.
type CorpusConfig struct {
	Source  string        `yaml:"source"`  // http(s) URL or local file
	Cache   string        `yaml:"cache"`   // SQLite path; "" = <config dir>/dictionary.db, "off" = disabled
	Timeout time.Duration `yaml:"timeout"` // download timeout
}

// HighlightConfig controls how marked letters are shown.
type HighlightConfig struct {
	Format     string `yaml:"format"` // ansi, html or plain
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Bold       bool   `yaml:"bold"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Source:  corpus.DefaultSource,
			Timeout: 60 * time.Second,
		},
		Highlight: HighlightConfig{
			Format:     "ansi",
			Foreground: "#000000",
			Background: "#FFFF00",
			Bold:       true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f)
}

// LoadFromReader decodes YAML over the defaults. Unknown keys are an error.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Corpus.Source) == "" {
		errs = append(errs, errors.New("corpus.source: must not be empty"))
	}
	if c.Corpus.Timeout < 0 {
		errs = append(errs, fmt.Errorf("corpus.timeout: must not be negative, got %s", c.Corpus.Timeout))
	}
	switch c.Highlight.Format {
	case "ansi", "html", "plain":
	default:
		errs = append(errs, fmt.Errorf("highlight.format: unknown format %q", c.Highlight.Format))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// CachePath resolves the dictionary cache location. ok is false when the
// cache is disabled.
func (c *Config) CachePath(dir string) (string, bool) {
	switch c.Corpus.Cache {
	case CacheOff:
		return "", false
	case "":
		return filepath.Join(dir, "dictionary.db"), true
	default:
		return c.Corpus.Cache, true
	}
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ConfigDir returns the default configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "phonix"), nil
}

// EnsureConfigDir creates dir, or the default config directory when dir is
// empty, and returns it.
func EnsureConfigDir(dir string) (string, error) {
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
