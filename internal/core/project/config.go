package project

import (
	"os"
	"path/filepath"
	"sort"
)

const (
	// MarkerDir is the project-relative directory holding tool state
	MarkerDir = "botics"

	// MarkerFile is the project config file inside MarkerDir
	MarkerFile = "botics.json"

	// DefaultBoilerplate is recorded when a project is attached rather than generated
	DefaultBoilerplate = "empty"
)

// Config is the project marker file. It records which module supplies each generator.
type Config struct {
	CreatedWith string            `json:"createdWith"`
	Boilerplate string            `json:"boilerplate"`
	Generators  map[string]string `json:"generators"`
}

// NewConfig creates a config for a freshly attached project
func NewConfig(version string) *Config {
	return &Config{
		CreatedWith: version,
		Boilerplate: DefaultBoilerplate,
		Generators:  make(map[string]string),
	}
}

// MarkerPath returns the absolute location of the marker file under root
func MarkerPath(root string) string {
	return filepath.Join(root, MarkerDir, MarkerFile)
}

// PluginsDir returns the project-local plugins directory
func PluginsDir(root string) string {
	return filepath.Join(root, MarkerDir, "plugins")
}

// ModulePath returns where the package manager places an installed module
func ModulePath(root, moduleName string) string {
	return filepath.Join(root, "node_modules", filepath.FromSlash(moduleName))
}

// IsProjectDirectory reports whether dir is a compatible project root
func IsProjectDirectory(dir string) bool {
	info, err := os.Stat(MarkerPath(dir))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// GeneratorsOwnedBy returns the generator names owned by module, sorted
func (c *Config) GeneratorsOwnedBy(module string) []string {
	var owned []string
	for name, owner := range c.Generators {
		if owner == module {
			owned = append(owned, name)
		}
	}
	sort.Strings(owned)
	return owned
}

// Clone returns a deep copy
func (c *Config) Clone() *Config {
	clone := *c
	clone.Generators = make(map[string]string, len(c.Generators))
	for k, v := range c.Generators {
		clone.Generators[k] = v
	}
	return &clone
}
