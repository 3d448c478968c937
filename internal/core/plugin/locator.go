package plugin

import (
	"fmt"
	"os"
	"path/filepath"
)

// EntryPointCandidates are searched in order inside an installed module
var EntryPointCandidates = []string{
	"plugin.lua",
	filepath.Join("plugin", "plugin.lua"),
	"init.lua",
}

// FindEntryPoint returns the first entry point candidate present in modulePath.
// A module without one yields an error wrapping ErrNoEntryPoint.
func FindEntryPoint(modulePath string) (string, error) {
	for _, candidate := range EntryPointCandidates {
		path := filepath.Join(modulePath, candidate)
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoEntryPoint, modulePath)
}
