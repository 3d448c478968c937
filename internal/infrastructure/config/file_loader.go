package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfigSource reads the YAML config file
type FileConfigSource struct {
	path string
}

// NewFileConfigSource creates a new file configuration source
func NewFileConfigSource(path string) *FileConfigSource {
	return &FileConfigSource{path: path}
}

func (s *FileConfigSource) Name() string  { return "file" }
func (s *FileConfigSource) Priority() int { return 2 }

// Load reads the file; a missing file yields no configuration
func (s *FileConfigSource) Load() (*Overrides, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Overrides
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", s.path, err)
	}
	return &config, nil
}
