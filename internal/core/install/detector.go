package install

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// PluginPrefix is prepended to bare registry names ("maps" becomes "botics-maps")
const PluginPrefix = "botics-"

// Type classifies where a plugin module comes from
type Type string

const (
	TypeRegistry     Type = "registry"
	TypeLocalPath    Type = "directory"
	TypeGitShorthand Type = "github"
)

var (
	// ErrEmptyTarget is returned for a blank install target
	ErrEmptyTarget = errors.New("plugin target cannot be empty")

	// ErrInvalidName is returned when a registry name is not a valid package name
	ErrInvalidName = errors.New("invalid plugin name")

	// ErrPathNotFound is returned when an explicit local path does not exist
	ErrPathNotFound = errors.New("plugin path does not exist")
)

var (
	gitShorthandPattern = regexp.MustCompile(`^(?:github:)?([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)(#\S+)?$`)
	packageNamePattern  = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)
)

// Descriptor is the normalized form of a user supplied install target
type Descriptor struct {
	// Name is the module name as it appears under node_modules
	Name string
	Type Type
	// Source is the argument handed to the package manager
	Source  string
	Version string
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%s: %s)", d.Name, d.Type, d.Source)
}

// Detect classifies raw into a Descriptor. Explicit or existing local paths win,
// then owner/repo shorthands; everything else is a registry package name.
func Detect(raw, cwd string) (Descriptor, error) {
	target := strings.TrimSpace(raw)
	if target == "" {
		return Descriptor{}, ErrEmptyTarget
	}

	if dir, ok := localDirectory(target, cwd); ok {
		return detectLocal(dir), nil
	}
	if isExplicitPath(target) {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrPathNotFound, target)
	}

	if m := gitShorthandPattern.FindStringSubmatch(target); m != nil {
		return Descriptor{
			Name:   m[2],
			Type:   TypeGitShorthand,
			Source: fmt.Sprintf("github:%s/%s%s", m[1], m[2], m[3]),
		}, nil
	}

	return detectRegistry(target)
}

// ModuleName returns the installed module name for target without consulting
// package metadata beyond what Detect reads.
func ModuleName(raw, cwd string) (string, error) {
	desc, err := Detect(raw, cwd)
	if err != nil {
		return "", err
	}
	return desc.Name, nil
}

func isExplicitPath(target string) bool {
	if filepath.IsAbs(target) || target == "." || target == ".." {
		return true
	}
	for _, prefix := range []string{"./", "../", "~/", "file:"} {
		if strings.HasPrefix(target, prefix) {
			return true
		}
	}
	return false
}

func localDirectory(target, cwd string) (string, bool) {
	path := strings.TrimSpace(strings.TrimPrefix(target, "file:"))
	if path == "" {
		return "", false
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		path = filepath.Join(home, path[2:])
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return filepath.Clean(path), true
}

func detectLocal(dir string) Descriptor {
	name := filepath.Base(dir)
	if data, err := os.ReadFile(filepath.Join(dir, "package.json")); err == nil {
		if pkgName := gjson.GetBytes(data, "name").String(); pkgName != "" {
			name = pkgName
		}
	}

	return Descriptor{
		Name:   name,
		Type:   TypeLocalPath,
		Source: "file:" + dir,
	}
}

func detectRegistry(target string) (Descriptor, error) {
	name, version := splitVersion(target)
	if !packageNamePattern.MatchString(name) {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrInvalidName, target)
	}

	if !strings.HasPrefix(name, "@") && !strings.HasPrefix(name, PluginPrefix) {
		name = PluginPrefix + name
	}

	source := name
	if version != "" {
		source = name + "@" + version
	}

	return Descriptor{
		Name:    name,
		Type:    TypeRegistry,
		Source:  source,
		Version: version,
	}, nil
}

// splitVersion separates "name@1.2.3" and "@scope/name@1.2.3"
func splitVersion(target string) (string, string) {
	start := 0
	if strings.HasPrefix(target, "@") {
		start = 1
	}
	if i := strings.LastIndex(target[start:], "@"); i >= 0 {
		at := start + i
		return target[:at], target[at+1:]
	}
	return target, ""
}
