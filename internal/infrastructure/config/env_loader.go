package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvironmentConfigSource builds configuration from BOTICS_* variables (priority 1)
type EnvironmentConfigSource struct {
	lookup func(string) (string, bool)
}

// NewEnvironmentConfigSource creates a new environment configuration source
func NewEnvironmentConfigSource() *EnvironmentConfigSource {
	return &EnvironmentConfigSource{lookup: os.LookupEnv}
}

func (s *EnvironmentConfigSource) Name() string  { return "environment" }
func (s *EnvironmentConfigSource) Priority() int { return 1 }

// Load returns only the values that are set; empty variables are ignored
func (s *EnvironmentConfigSource) Load() (*Overrides, error) {
	config := &Overrides{}

	if v, ok := s.lookup("BOTICS_PACKAGE_MANAGER"); ok && v != "" {
		manager := strings.ToLower(strings.TrimSpace(v))
		config.PackageManager = &manager
	}

	addBool := func(key string, field **bool) error {
		v, ok := s.lookup(key)
		if !ok || v == "" {
			return nil
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		*field = &parsed
		return nil
	}

	if err := addBool("BOTICS_DEBUG", &config.Debug); err != nil {
		return nil, err
	}
	if err := addBool("BOTICS_ASSUME_YES", &config.AssumeYes); err != nil {
		return nil, err
	}

	return config, nil
}
