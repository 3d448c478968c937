package ports

import (
	"botics.dev/cli/internal/core/project"
)

// ProjectRepository persists the project marker file
type ProjectRepository interface {
	// Load reads the marker file under root
	Load(root string) (*project.Config, error)

	// Save writes cfg to the marker file under root, keeping fields it does not model
	Save(root string, cfg *project.Config) error

	// Create writes a new marker file and the plugins directory
	Create(root string, cfg *project.Config) error
}

// ManifestReader reads the optional generator declaration shipped with a plugin
type ManifestReader interface {
	// ReadGenerators returns declared generator names in declaration order.
	// A module without a declaration yields an empty slice.
	ReadGenerators(modulePath string) ([]string, error)
}

// ConfigurationRepository resolves the tool configuration from its sources
type ConfigurationRepository interface {
	// Load retrieves the current configuration
	Load() (*Configuration, error)

	// Validate validates the configuration
	Validate(config *Configuration) error

	// GetConfigPath returns the path to the configuration file
	GetConfigPath() string
}

// Package manager names accepted in Configuration.PackageManager
const (
	PackageManagerAuto = "auto"
	PackageManagerYarn = "yarn"
	PackageManagerNPM  = "npm"
)

// Configuration represents the tool configuration
type Configuration struct {
	PackageManager string `yaml:"packageManager" json:"package_manager"`
	Debug          bool   `yaml:"debug" json:"debug"`
	AssumeYes      bool   `yaml:"assumeYes" json:"assume_yes"`
}
