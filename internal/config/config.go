// Package config holds run configuration and the pre-flight path checks
// performed before anything is mutated.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"guid-corrector/internal/diagnostic"
	"guid-corrector/internal/scan"
)

// Config describes one correction run. Values come from an optional YAML
// file overridden by command-line flags.
type Config struct {
	// SourcePath is the tree of decompiled descriptors whose GUIDs need
	// remapping.
	SourcePath string `yaml:"source"`

	// ReferencePath is the tree holding the authoritative descriptors.
	ReferencePath string `yaml:"reference"`

	// ProjectPath is the tree whose files are rewritten.
	ProjectPath string `yaml:"project"`

	// DescriptorExt is the descriptor sidecar extension.
	DescriptorExt string `yaml:"descriptor_ext,omitempty"`

	// TargetExtensions is the allow-list of extensions to rewrite.
	TargetExtensions []string `yaml:"target_extensions,omitempty"`

	// LogFile is where the persistent run log goes.
	LogFile string `yaml:"log_file,omitempty"`

	// MappingFile, when set, is a reviewed mapping YAML applied instead of
	// building the table from the trees.
	MappingFile string `yaml:"mapping_file,omitempty"`

	// ExportFile, when set, receives the built table as YAML for review.
	ExportFile string `yaml:"export_file,omitempty"`

	// DryRun reports would-be modifications without writing.
	DryRun bool `yaml:"dry_run,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		DescriptorExt:    scan.DefaultDescriptorExt,
		TargetExtensions: scan.DefaultTargetExtensions(),
		LogFile:          "guid_correction.log",
	}
}

// Load reads a YAML config file. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}

	if err != nil {
		return Default(), fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (Config, error) {
	cfg := Config{}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.DescriptorExt == "" {
		cfg.DescriptorExt = scan.DefaultDescriptorExt
	}

	if len(cfg.TargetExtensions) == 0 {
		cfg.TargetExtensions = scan.DefaultTargetExtensions()
	}

	if cfg.LogFile == "" {
		cfg.LogFile = "guid_correction.log"
	}
}

// Validate runs the pre-flight checks: each of the three paths must exist,
// be a directory, and contain at least one descriptor file. All failures
// are reported together so the user can fix them in one go. Nothing is
// mutated when validation fails.
func (c Config) Validate() *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	checks := []struct {
		path string
		desc string
	}{
		{c.SourcePath, "source descriptor path"},
		{c.ReferencePath, "reference descriptor path"},
		{c.ProjectPath, "project path"},
	}

	for _, check := range checks {
		if check.path == "" {
			diags.AddError("path_missing", check.desc+" is not configured", check.desc, "")
			continue
		}

		info, err := os.Stat(check.path)
		if err != nil {
			diags.AddError("path_not_found", check.desc+" does not exist", check.desc, check.path)
			continue
		}

		if !info.IsDir() {
			diags.AddError("path_not_dir", check.desc+" is not a directory", check.desc, check.path)
			continue
		}

		if !scan.HasDescriptor(check.path, c.DescriptorExt) {
			diags.AddError("no_descriptors",
				"no "+c.DescriptorExt+" files found under "+check.desc, check.desc, check.path)
		}
	}

	return diags
}
