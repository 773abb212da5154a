// Package config loads the optional book.yaml build configuration that
// lives next to the book sidecar.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is looked up in the book root; it is fine for it not to exist.
const ConfigFile = "book.yaml"

// Config tunes the build. Every field is optional.
type Config struct {
	// Output is the name of the output subfolder, "html" by default.
	Output string `yaml:"output"`
	// Template points at a custom mustache template file, relative to the
	// book root. Empty means the built-in template.
	Template string `yaml:"template"`
	// Unsafe disables HTML sanitization of rendered pages.
	Unsafe bool `yaml:"unsafe"`
}

// Default returns the configuration used when no book.yaml exists.
func Default() Config {
	return Config{Output: "html"}
}

// Load reads book.yaml from folder. A missing file yields the defaults; a
// malformed one is an error since silently ignoring it would build to the
// wrong place.
func Load(folder string) (Config, error) {
	cfg := Default()
	path := filepath.Join(folder, ConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("could not read config file at %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config file %s: %w", path, err)
	}
	if cfg.Output == "" {
		cfg.Output = "html"
	}
	return cfg, nil
}
