package lua

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"botics.dev/cli/internal/core/plugin"
)

// newContextTable exposes pc to a hook. Relative paths resolve against the
// project root and may not leave it; reads may also target the plugin directory.
func newContextTable(L *lua.LState, pc *plugin.Context) *lua.LTable {
	h := &host{pc: pc}
	tbl := L.NewTable()

	L.SetField(tbl, "module_name", lua.LString(pc.ModuleName))
	L.SetField(tbl, "plugin_path", lua.LString(pc.PluginPath))
	L.SetField(tbl, "project_root", lua.LString(pc.ProjectRoot))

	L.SetFuncs(tbl, map[string]lua.LGFunction{
		"log":           h.log,
		"exists":        h.exists,
		"read_file":     h.readFile,
		"write_file":    h.writeFile,
		"remove_file":   h.removeFile,
		"template_path": h.templatePath,
	})
	return tbl
}

type host struct {
	pc *plugin.Context
}

// resolve joins rel onto base and rejects results outside base
func resolve(base, rel string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("no base directory for %q", rel)
	}
	path := rel
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	path = filepath.Clean(path)

	within, err := filepath.Rel(base, path)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes %s", rel, base)
	}
	return path, nil
}

// resolveReadable also admits absolute paths inside the plugin's own directory
func (h *host) resolveReadable(rel string) (string, error) {
	path, err := resolve(h.pc.ProjectRoot, rel)
	if err != nil && filepath.IsAbs(rel) && h.pc.PluginPath != "" {
		if inPlugin, pluginErr := resolve(h.pc.PluginPath, rel); pluginErr == nil {
			return inPlugin, nil
		}
	}
	return path, err
}

// fail pushes the Lua convention for a recoverable failure: nil, message
func fail(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}

func (h *host) log(L *lua.LState) int {
	if h.pc.Printer != nil {
		h.pc.Printer.Info(L.CheckString(1))
	}
	return 0
}

func (h *host) exists(L *lua.LState) int {
	path, err := h.resolveReadable(L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	_, statErr := os.Stat(path)
	L.Push(lua.LBool(statErr == nil))
	return 1
}

func (h *host) readFile(L *lua.LState) int {
	path, err := h.resolveReadable(L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(L, err)
	}
	L.Push(lua.LString(data))
	return 1
}

func (h *host) writeFile(L *lua.LState) int {
	path, err := resolve(h.pc.ProjectRoot, L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	content := L.CheckString(2)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fail(L, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fail(L, err)
	}
	L.Push(lua.LTrue)
	return 1
}

func (h *host) removeFile(L *lua.LState) int {
	path, err := resolve(h.pc.ProjectRoot, L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	if err := os.RemoveAll(path); err != nil {
		return fail(L, err)
	}
	L.Push(lua.LTrue)
	return 1
}

// templatePath resolves a file shipped inside the running plugin
func (h *host) templatePath(L *lua.LState) int {
	path, err := resolve(h.pc.PluginPath, L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LString(path))
	return 1
}
