// Package config loads namecheck settings from a .namecheck.toml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/phobologic/namecheck/internal/convention"
)

// FileName is the config file looked up in the checked root.
const FileName = ".namecheck.toml"

// DefaultMaxFileSize is the size above which files are skipped.
const DefaultMaxFileSize = 1_000_000 // 1 MB

// ErrInvalid is returned for configs with unknown keys or bad values.
var ErrInvalid = errors.New("invalid config")

// Formats lists the supported output formats.
var Formats = []string{"text", "toon"}

// Config holds user settings. Zero values are replaced by defaults on load.
type Config struct {
	Format      string   `toml:"format"`
	MaxFileSize int      `toml:"max_file_size"`
	Exclude     []string `toml:"exclude"`
	Disable     []string `toml:"disable"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format:      "text",
		MaxFileSize: DefaultMaxFileSize,
	}
}

// Load decodes the config file at path.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find loads FileName from root, or returns Default when root has none.
// The returned path is empty when no file was read.
func Find(root string) (Config, string, error) {
	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), "", nil
		}
		return Config{}, "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

func (c Config) withDefaults() Config {
	def := Default()
	if c.Format == "" {
		c.Format = def.Format
	}
	if c.MaxFileSize == 0 {
		c.MaxFileSize = def.MaxFileSize
	}
	return c
}

// Validate checks the format name, size limit and disabled kind labels.
func (c Config) Validate() error {
	if !validFormat(c.Format) {
		return fmt.Errorf("%w: format %q (want one of %s)", ErrInvalid, c.Format, strings.Join(Formats, ", "))
	}
	if c.MaxFileSize < 1 {
		return fmt.Errorf("%w: max_file_size must be positive", ErrInvalid)
	}
	for _, label := range c.Disable {
		if _, ok := convention.ParseKind(label); !ok {
			return fmt.Errorf("%w: unknown kind %q in disable (want one of %s)",
				ErrInvalid, label, strings.Join(convention.Labels(), ", "))
		}
	}
	return nil
}

// Enabled returns the kind labels not listed in Disable.
func (c Config) Enabled() []string {
	disabled := make(map[string]struct{}, len(c.Disable))
	for _, label := range c.Disable {
		disabled[label] = struct{}{}
	}
	var out []string
	for _, label := range convention.Labels() {
		if _, ok := disabled[label]; !ok {
			out = append(out, label)
		}
	}
	return out
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
