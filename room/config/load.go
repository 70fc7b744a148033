package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadOptions configures the behavior of config loading
type LoadOptions struct {
	ValidateImmediately bool
	ResolvePaths        bool
	MergeDefaults       bool
}

// LoadFromFile loads a Config from a YAML file
func LoadFromFile(path string, opts LoadOptions) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if opts.ResolvePaths {
		config.ResolvePaths(NewPathResolver(filepath.Dir(path)))
	}

	if opts.MergeDefaults {
		config.MergeDefaults(Default())
	}

	if opts.ValidateImmediately {
		if errs := config.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("validation errors: %v", errs)
		}
	}

	return config, nil
}

// SaveToFile saves a Config to a YAML file
func SaveToFile(config *Config, path string) error {
	// Update metadata before saving
	NewMetadataCollector().PopulateMetadata(config)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ResolvePaths resolves all relative paths in the config against the
// resolver's base directory
func (c *Config) ResolvePaths(resolver *PathResolver) {
	if c.Input.Room.Path != "" {
		c.Input.Room.Path = resolver.ResolvePath(c.Input.Room.Path)
	}
	if c.Input.Mesh.Path != "" {
		c.Input.Mesh.Path = resolver.ResolvePath(c.Input.Mesh.Path)
	}
	if c.Output.Dir != "" {
		c.Output.Dir = resolver.ResolvePath(c.Output.Dir)
	}
	if c.Server.DBPath != "" {
		c.Server.DBPath = resolver.ResolvePath(c.Server.DBPath)
	}
}
