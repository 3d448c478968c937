// Package lua runs botics plugins written in Lua.
package lua

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// newState creates a Lua state with only the safe standard libraries opened.
func newState(ctx context.Context) *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})

	openSafeLibraries(L)
	installSandbox(L)
	L.SetContext(ctx)

	return L
}

// openSafeLibraries opens base, table, string and math. io, os, debug and
// package stay closed; filesystem access goes through the hook context.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// installSandbox removes globals that load code from outside the entry point
func installSandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// protect runs fn, turning a Go panic raised inside the VM into an error
func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
