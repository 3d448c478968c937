package lua

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"botics.dev/cli/internal/core/plugin"
)

// Loader evaluates Lua entry points. The chunk either returns a table of
// hooks or defines them as globals:
//
//	return {
//	  add = function(ctx) ... end,
//	  remove = function(ctx) ... end,
//	}
//
// A hook fails by raising error("message") or returning nil/false and a message.
type Loader struct{}

// NewLoader creates a new Lua plugin loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses and runs the chunk at entryPath. The returned unit owns its
// Lua state until Close.
func (l *Loader) Load(ctx context.Context, entryPath string) (plugin.Unit, error) {
	L := newState(ctx)

	var exports *lua.LTable
	err := protect(func() error {
		fn, err := L.LoadFile(entryPath)
		if err != nil {
			return err
		}
		L.Push(fn)
		if err := L.PCall(0, 1, nil); err != nil {
			return err
		}
		exports, _ = L.Get(-1).(*lua.LTable)
		L.Pop(1)
		return nil
	})
	if err != nil {
		L.Close()
		return nil, &plugin.LoadError{Path: entryPath, Err: err}
	}

	return &unit{L: L, exports: exports}, nil
}

type unit struct {
	L       *lua.LState
	exports *lua.LTable
}

func (u *unit) lookup(op plugin.Operation) *lua.LFunction {
	var value lua.LValue = lua.LNil
	if u.exports != nil {
		value = u.exports.RawGetString(string(op))
	}
	if value == lua.LNil {
		value = u.L.GetGlobal(string(op))
	}
	fn, _ := value.(*lua.LFunction)
	return fn
}

// Hook returns op when the chunk exposes it as a function
func (u *unit) Hook(op plugin.Operation) (plugin.Hook, bool) {
	fn := u.lookup(op)
	if fn == nil {
		return nil, false
	}
	return func(ctx context.Context, pc *plugin.Context) error {
		return u.call(ctx, op, fn, pc)
	}, true
}

func (u *unit) call(ctx context.Context, op plugin.Operation, fn *lua.LFunction, pc *plugin.Context) error {
	L := u.L
	L.SetContext(ctx)

	var ok lua.LValue = lua.LTrue
	var message lua.LValue = lua.LNil
	err := protect(func() error {
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 2, Protect: true}, newContextTable(L, pc)); err != nil {
			return err
		}
		ok, message = L.Get(-2), L.Get(-1)
		L.Pop(2)
		return nil
	})
	if err != nil {
		return &plugin.HookError{Operation: op, Message: errorMessage(err), Err: err}
	}

	// Returning nothing counts as success; only an explicit nil/false with a
	// message, or a bare false, is a failure.
	if message != lua.LNil && lua.LVIsFalse(ok) {
		return &plugin.HookError{Operation: op, Message: message.String()}
	}
	if ok == lua.LFalse {
		return &plugin.HookError{Operation: op}
	}
	return nil
}

func (u *unit) Close() error {
	u.L.Close()
	return nil
}
