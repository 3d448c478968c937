package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"botics.dev/cli/internal/core/project"
)

// ErrMalformedConfig is returned when the marker file is not a JSON object
var ErrMalformedConfig = errors.New("malformed project config")

var prettyOptions = &pretty.Options{Width: 80, Prefix: "", Indent: "  ", SortKeys: false}

// FileRepository stores the project config in <root>/botics/botics.json.
// Fields it does not model are left untouched on save.
type FileRepository struct{}

// NewFileRepository creates a new marker file repository
func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// Load reads the marker file under root
func (r *FileRepository) Load(root string) (*project.Config, error) {
	path := project.MarkerPath(root)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("%w: %s", ErrMalformedConfig, path)
	}

	doc := gjson.ParseBytes(data)
	cfg := &project.Config{
		CreatedWith: doc.Get("createdWith").String(),
		Boilerplate: doc.Get("boilerplate").String(),
		Generators:  make(map[string]string),
	}

	generators := doc.Get("generators")
	if generators.Exists() && !generators.IsObject() {
		return nil, fmt.Errorf("%w: generators must be an object", ErrMalformedConfig)
	}
	var bad string
	generators.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			bad = key.String()
			return false
		}
		cfg.Generators[key.String()] = value.String()
		return true
	})
	if bad != "" {
		return nil, fmt.Errorf("%w: generator %q must map to a module name", ErrMalformedConfig, bad)
	}

	return cfg, nil
}

// Save writes cfg into the existing marker file, preserving unknown fields
func (r *FileRepository) Save(root string, cfg *project.Config) error {
	path := project.MarkerPath(root)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read project config: %w", err)
		}
		data = []byte("{}")
	}

	data, err = setFields(data, configFields(cfg))
	if err != nil {
		return err
	}
	return writeMarker(path, data)
}

// Create writes a fresh marker file and the project plugins directory
func (r *FileRepository) Create(root string, cfg *project.Config) error {
	if err := os.MkdirAll(project.PluginsDir(root), 0755); err != nil {
		return fmt.Errorf("failed to create plugins directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(project.PluginsDir(root), ".gitkeep"), nil, 0644); err != nil {
		return fmt.Errorf("failed to create plugins directory: %w", err)
	}

	data, err := setFields([]byte("{}"), []field{
		{"createdWith", cfg.CreatedWith},
		{"boilerplate", cfg.Boilerplate},
		{"examples", "none"},
		{"generators", generatorsOrEmpty(cfg)},
	})
	if err != nil {
		return err
	}
	return writeMarker(project.MarkerPath(root), data)
}

type field struct {
	path  string
	value interface{}
}

func configFields(cfg *project.Config) []field {
	return []field{
		{"createdWith", cfg.CreatedWith},
		{"boilerplate", cfg.Boilerplate},
		{"generators", generatorsOrEmpty(cfg)},
	}
}

// setFields writes each field in order; existing keys keep their position
func setFields(data []byte, fields []field) ([]byte, error) {
	var err error
	for _, f := range fields {
		if data, err = sjson.SetBytes(data, f.path, f.value); err != nil {
			return nil, fmt.Errorf("failed to encode project config: %w", err)
		}
	}
	return data, nil
}

func generatorsOrEmpty(cfg *project.Config) map[string]string {
	if cfg.Generators == nil {
		return map[string]string{}
	}
	return cfg.Generators
}

func writeMarker(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := os.WriteFile(path, pretty.PrettyOptions(data, prettyOptions), 0644); err != nil {
		return fmt.Errorf("failed to write project config: %w", err)
	}
	return nil
}
