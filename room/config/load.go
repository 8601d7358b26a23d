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
	MergeFiles          bool
}

// LoadFromFile loads a SessionConfig from a YAML file. Fields missing from the file keep the
// values from Default.
func LoadFromFile(path string, opts LoadOptions) (*SessionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Load(data, filepath.Dir(path), opts)
}

// Load parses YAML config data. baseDir anchors relative paths.
func Load(data []byte, baseDir string, opts LoadOptions) (*SessionConfig, error) {
	config := Default()
	// Mirror assignments in the file replace the defaults rather than adding to them
	config.Mirrors.Inline = nil
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if config.Mirrors.Inline == nil && config.Mirrors.FromFile == "" {
		config.Mirrors = Default().Mirrors
	}

	if opts.ResolvePaths {
		resolver := NewPathResolver(baseDir)
		if err := config.ResolvePaths(resolver); err != nil {
			return nil, fmt.Errorf("resolving paths: %w", err)
		}
	}

	if opts.MergeFiles {
		if err := config.LoadAndMerge(); err != nil {
			return nil, fmt.Errorf("merging external files: %w", err)
		}
	}

	if opts.ValidateImmediately {
		if errs := config.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("validation errors: %v", errs)
		}
	}

	config.ClampSliders()
	return config, nil
}

// SaveToFile saves a SessionConfig to a YAML file
func SaveToFile(config *SessionConfig, path string) error {
	// Update metadata before saving
	collector, err := NewMetadataCollector()
	if err != nil {
		return fmt.Errorf("creating metadata collector: %w", err)
	}
	collector.PopulateMetadata(config)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ResolvePaths resolves all relative paths in the config to absolute paths
func (c *SessionConfig) ResolvePaths(resolver *PathResolver) error {
	if c.Source.Mesh != "" {
		c.Source.Mesh = resolver.ResolvePath(c.Source.Mesh)
	}

	if c.Mirrors.FromFile != "" {
		c.Mirrors.FromFile = resolver.ResolvePath(c.Mirrors.FromFile)
	}

	return nil
}
