package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/penev92/ModularAI/capability"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

//go:embed default.yaml
var defaultYAML []byte

// Module types accepted in the modules list.
const (
	ModuleAttacking   = "attacking"
	ModuleBaseBuilder = "base-builder"
	ModuleHarvester   = "harvester"
)

type Config struct {
	Bot     BotConfig                        `yaml:"bot"`
	Modules []ModuleConfig                   `yaml:"modules"`
	Actors  map[string]capability.Definition `yaml:"actors"`
}

type BotConfig struct {
	Name        string `yaml:"name"`
	UpdateDelay int    `yaml:"update-delay"`
	Debug       bool   `yaml:"debug"`
}

// ModuleConfig is a flat union; only the fields of the given Type are read.
type ModuleConfig struct {
	Type      string `yaml:"type"`
	Condition string `yaml:"condition"`

	UseAttackingCategories []string `yaml:"use-attacking-categories"`

	BaseBuilderTypes    []string `yaml:"base-builder-types"`
	BaseExpansionRadius int      `yaml:"base-expansion-radius"`

	HarvesterTypes []string `yaml:"harvester-types"`
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("embedded defaults: %w", err)
	}
	return &c, nil
}

// Load reads path on top of the defaults. Sections present in the file
// replace the defaults wholesale; bot settings are merged field by field,
// so "debug: false" in a file switches debugging off.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var file overlay
	if err := yaml.Unmarshal(b, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.merge(file)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// overlay is a config file as read from disk. Bot fields are pointers so an
// explicit zero value (debug: false) can override a default.
type overlay struct {
	Bot struct {
		Name        *string `yaml:"name"`
		UpdateDelay *int    `yaml:"update-delay"`
		Debug       *bool   `yaml:"debug"`
	} `yaml:"bot"`
	Modules []ModuleConfig                   `yaml:"modules"`
	Actors  map[string]capability.Definition `yaml:"actors"`
}

func (c *Config) merge(o overlay) {
	if o.Bot.Name != nil && *o.Bot.Name != "" {
		c.Bot.Name = *o.Bot.Name
	}
	if o.Bot.UpdateDelay != nil {
		c.Bot.UpdateDelay = *o.Bot.UpdateDelay
	}
	if o.Bot.Debug != nil {
		c.Bot.Debug = *o.Bot.Debug
	}
	if o.Modules != nil {
		c.Modules = o.Modules
	}
	if o.Actors != nil {
		c.Actors = o.Actors
	}
}

// Validate checks everything that can be checked without building the
// controller. Tag and gate syntax are checked when they are compiled.
func (c *Config) Validate() error {
	if c.Bot.UpdateDelay <= 0 {
		return fmt.Errorf("%w: bot.update-delay must be positive, got %d", ErrInvalid, c.Bot.UpdateDelay)
	}

	seen := make(map[string]bool, len(c.Modules))
	for i, m := range c.Modules {
		switch m.Type {
		case ModuleAttacking:
		case ModuleBaseBuilder:
			if len(m.BaseBuilderTypes) == 0 {
				return fmt.Errorf("%w: modules[%d]: base-builder-types is empty", ErrInvalid, i)
			}
			if m.BaseExpansionRadius < 0 {
				return fmt.Errorf("%w: modules[%d]: base-expansion-radius must not be negative", ErrInvalid, i)
			}
		case ModuleHarvester:
			if len(m.HarvesterTypes) == 0 {
				return fmt.Errorf("%w: modules[%d]: harvester-types is empty", ErrInvalid, i)
			}
		default:
			return fmt.Errorf("%w: modules[%d]: unknown type %q", ErrInvalid, i, m.Type)
		}
		if seen[m.Type] {
			return fmt.Errorf("%w: modules[%d]: duplicate %s module", ErrInvalid, i, m.Type)
		}
		seen[m.Type] = true
	}
	return nil
}

// Registry resolves the actor definitions into capability profiles.
func (c *Config) Registry() (*capability.Registry, error) {
	r, err := capability.NewRegistry(c.Actors)
	if err != nil {
		return nil, fmt.Errorf("actors: %w", err)
	}
	return r, nil
}
