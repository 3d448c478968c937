package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// BlueprintFile declares the generators a plugin module contributes
const BlueprintFile = "blueprint.json"

// ErrMalformedBlueprint is returned for a declaration that cannot be read as generators
var ErrMalformedBlueprint = errors.New("malformed plugin declaration")

// BlueprintReader reads generator declarations from installed modules
type BlueprintReader struct{}

// NewBlueprintReader creates a new declaration reader
func NewBlueprintReader() *BlueprintReader {
	return &BlueprintReader{}
}

// ReadGenerators returns the names listed under "generators" in declaration
// order. A module without blueprint.json, or one without the key, declares none.
func (r *BlueprintReader) ReadGenerators(modulePath string) ([]string, error) {
	path := filepath.Join(modulePath, BlueprintFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrMalformedBlueprint, path)
	}

	list := gjson.GetBytes(data, "generators")
	if !list.Exists() || list.Type == gjson.Null {
		return []string{}, nil
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: generators in %s must be an array", ErrMalformedBlueprint, path)
	}

	names := []string{}
	for i, item := range list.Array() {
		if item.Type != gjson.String || item.String() == "" {
			return nil, fmt.Errorf("%w: generators[%d] in %s must be a non-empty string", ErrMalformedBlueprint, i, path)
		}
		names = append(names, item.String())
	}
	return names, nil
}
