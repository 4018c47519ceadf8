package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"ipxcheck/internal/model"
)

// Config represents the complete configuration.
type Config struct {
	KindLabels map[string]string `yaml:"kindLabels" json:"kindLabels" toml:"kindLabels"`
	Options    Options           `yaml:"options" json:"options" toml:"options"`
}

// Options represents validation and reporting options.
type Options struct {
	Revision     string   `yaml:"revision" json:"revision" toml:"revision"`
	Workers      int      `yaml:"workers" json:"workers" toml:"workers"`
	Format       string   `yaml:"format" json:"format" toml:"format"`
	Template     string   `yaml:"template" json:"template" toml:"template"`
	FailuresOnly bool     `yaml:"failuresOnly" json:"failuresOnly" toml:"failuresOnly"`
	IncludeKinds []string `yaml:"includeKinds" json:"includeKinds" toml:"includeKinds"`
	ExcludeKinds []string `yaml:"excludeKinds" json:"excludeKinds" toml:"excludeKinds"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		KindLabels: DefaultKindLabels(),
		Options:    DefaultOptions(),
	}
}

// LoadFile loads configuration from a file (YAML, JSON or TOML based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var loaded Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing TOML config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				if err := toml.Unmarshal(data, &loaded); err != nil {
					return fmt.Errorf("unable to parse config as YAML, JSON or TOML")
				}
			}
		}
	}

	if err := loaded.Options.check(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	c.merge(&loaded)
	return nil
}

// check rejects option values the command cannot honour.
func (o *Options) check() error {
	if o.Revision != "" && !model.Revision(o.Revision).Known() {
		return fmt.Errorf("unknown revision %q", o.Revision)
	}
	if o.Workers < 0 {
		return fmt.Errorf("negative worker count %d", o.Workers)
	}
	switch o.Format {
	case "", FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q", o.Format)
	}
	for _, k := range append(append([]string(nil), o.IncludeKinds...), o.ExcludeKinds...) {
		if !knownKind(k) {
			return fmt.Errorf("unknown document kind %q", k)
		}
	}
	return nil
}

// Check validates the options after command line overrides were applied.
func (c *Config) Check() error {
	return c.Options.check()
}

func knownKind(name string) bool {
	for _, k := range model.Kinds {
		if string(k) == name {
			return true
		}
	}
	return false
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *Config) {
	for k, v := range loaded.KindLabels {
		c.KindLabels[k] = v
	}

	if loaded.Options.Revision != "" {
		c.Options.Revision = loaded.Options.Revision
	}
	if loaded.Options.Workers != 0 {
		c.Options.Workers = loaded.Options.Workers
	}
	if loaded.Options.Format != "" {
		c.Options.Format = loaded.Options.Format
	}
	if loaded.Options.Template != "" {
		c.Options.Template = loaded.Options.Template
	}
	if loaded.Options.FailuresOnly {
		c.Options.FailuresOnly = true
	}
	c.Options.IncludeKinds = loaded.Options.IncludeKinds
	c.Options.ExcludeKinds = loaded.Options.ExcludeKinds
}

// KindLabel returns the report heading for documents of kind k.
func (c *Config) KindLabel(k model.Kind) string {
	if label, ok := c.KindLabels[string(k)]; ok {
		return label
	}
	return string(k)
}

// ShouldIncludeKind checks if documents of kind k are validated.
func (c *Config) ShouldIncludeKind(k model.Kind) bool {
	if len(c.Options.IncludeKinds) > 0 {
		found := false
		for _, name := range c.Options.IncludeKinds {
			if name == string(k) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	for _, name := range c.Options.ExcludeKinds {
		if name == string(k) {
			return false
		}
	}

	return true
}
