package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"botics.dev/cli/internal/application/ports"
)

// ConfigFileEnv overrides the location of the tool config file
const ConfigFileEnv = "BOTICS_CONFIG_FILE"

// CompositeConfigRepository implements the ConfigurationRepository interface
type CompositeConfigRepository struct {
	sources    []ConfigSource
	configPath string
}

// ConfigSource defines the interface for configuration sources
type ConfigSource interface {
	Load() (*Overrides, error)
	Priority() int
	Name() string
}

// Overrides holds the settings a single source provides. A nil field means
// the source is silent on it, so an explicit false still overrides.
type Overrides struct {
	PackageManager *string `yaml:"packageManager"`
	Debug          *bool   `yaml:"debug"`
	AssumeYes      *bool   `yaml:"assumeYes"`
}

// NewCompositeConfigRepository creates a repository reading path, or the
// default location when path is empty
func NewCompositeConfigRepository(path string) *CompositeConfigRepository {
	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path == "" {
		path = getDefaultConfigPath()
	}

	repo := &CompositeConfigRepository{configPath: path}

	// Lower priority value wins
	repo.AddSource(NewEnvironmentConfigSource())
	repo.AddSource(NewFileConfigSource(repo.configPath))

	return repo
}

// AddSource adds a configuration source
func (r *CompositeConfigRepository) AddSource(source ConfigSource) {
	r.sources = append(r.sources, source)
}

// Load retrieves the current configuration
func (r *CompositeConfigRepository) Load() (*ports.Configuration, error) {
	config := defaultConfiguration()

	sorted := make([]ConfigSource, len(r.sources))
	copy(sorted, r.sources)
	// Apply lowest precedence first so higher priority sources overwrite
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})

	for _, source := range sorted {
		sourceConfig, err := source.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", source.Name(), err)
		}
		if sourceConfig != nil {
			config = mergeConfigurations(config, sourceConfig)
		}
	}

	if err := r.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func defaultConfiguration() *ports.Configuration {
	return &ports.Configuration{
		PackageManager: ports.PackageManagerAuto,
		Debug:          false,
		AssumeYes:      false,
	}
}

// Validate validates the configuration
func (r *CompositeConfigRepository) Validate(config *ports.Configuration) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	valid := []string{ports.PackageManagerAuto, ports.PackageManagerYarn, ports.PackageManagerNPM}
	for _, name := range valid {
		if config.PackageManager == name {
			return nil
		}
	}
	return fmt.Errorf("package manager must be one of: %s", strings.Join(valid, ", "))
}

// GetConfigPath returns the path to the configuration file
func (r *CompositeConfigRepository) GetConfigPath() string {
	return r.configPath
}

// mergeConfigurations overlays the fields override sets onto base
func mergeConfigurations(base *ports.Configuration, override *Overrides) *ports.Configuration {
	merged := *base
	if override.PackageManager != nil {
		merged.PackageManager = *override.PackageManager
	}
	if override.Debug != nil {
		merged.Debug = *override.Debug
	}
	if override.AssumeYes != nil {
		merged.AssumeYes = *override.AssumeYes
	}
	return &merged
}

func getDefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".botics", "config.yaml")
	}
	return filepath.Join(home, ".botics", "config.yaml")
}
