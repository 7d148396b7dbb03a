package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// FileName is the repository-local configuration file
const FileName = ".gitx.yml"

// Config is the workflow configuration. It is immutable after Load.
type Config struct {
	BaseBranch        string   `yaml:"base_branch"`
	AggregateBranches []string `yaml:"aggregate_branches"`
	ReservedBranches  []string `yaml:"reserved_branches"`
	TaggableBranches  []string `yaml:"taggable_branches"`
	AfterRelease      []string `yaml:"after_release"`
	MigrationsDir     string   `yaml:"migrations_dir"`
	Remote            string   `yaml:"remote"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		BaseBranch:        "main",
		AggregateBranches: []string{"staging", "prototype"},
		ReservedBranches:  []string{"main", "staging", "prototype"},
		TaggableBranches:  []string{"main", "staging"},
		AfterRelease:      []string{},
		MigrationsDir:     "db/migrate",
		Remote:            "origin",
	}
}

// Load reads FileName from repoRoot and overlays it on the defaults.
// A missing file yields the defaults.
func Load(repoRoot string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(filepath.Join(repoRoot, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	overrides, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(cfg, overrides, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge %s: %w", FileName, err)
	}
	return cfg, nil
}

// Parse decodes configuration file contents without applying defaults
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// IsBase reports whether branch is the base branch
func (c *Config) IsBase(branch string) bool {
	return branch == c.BaseBranch
}

// IsAggregate reports whether branch is a configured aggregate branch
func (c *Config) IsAggregate(branch string) bool {
	return slices.Contains(c.AggregateBranches, branch)
}

// IsReserved reports whether branch is protected from deletion and direct
// mutation. The base and aggregate branches are always reserved even when
// the file leaves them out of reserved_branches.
func (c *Config) IsReserved(branch string) bool {
	return slices.Contains(c.ReservedBranches, branch) || c.IsAggregate(branch) || c.IsBase(branch)
}

// IsTaggable reports whether builds of branch may be tagged
func (c *Config) IsTaggable(branch string) bool {
	return slices.Contains(c.TaggableBranches, branch)
}

// DefaultAggregate returns the aggregate branch releases are integrated into
func (c *Config) DefaultAggregate() string {
	if len(c.AggregateBranches) == 0 {
		return ""
	}
	return c.AggregateBranches[0]
}
