package plugin

import (
	"context"
	"fmt"
)

// Operation names a lifecycle hook every plugin must expose
type Operation string

const (
	OperationAdd    Operation = "add"
	OperationRemove Operation = "remove"
)

// RequiredOperations lists the hooks a plugin must expose, in reporting order
var RequiredOperations = []Operation{OperationAdd, OperationRemove}

// Hook is a single lifecycle entry point of a loaded plugin
type Hook func(ctx context.Context, pc *Context) error

// Unit is a loaded but not yet validated plugin entry point
type Unit interface {
	// Hook returns the named capability if the unit exposes it
	Hook(op Operation) (Hook, bool)

	// Close releases the runtime backing the unit
	Close() error
}

// Plugin is a unit that satisfies the add/remove contract
type Plugin interface {
	Add(ctx context.Context, pc *Context) error
	Remove(ctx context.Context, pc *Context) error
	Close() error
}

// Printer receives user-facing messages emitted by a running hook
type Printer interface {
	Info(message string)
}

// Context is handed to exactly one hook call. It carries the running plugin's
// own location so the hook can resolve its assets.
type Context struct {
	ModuleName  string
	PluginPath  string
	ProjectRoot string
	Printer     Printer
}

// Validate checks that u exposes every required hook. Missing hooks are
// reported together; nothing is invoked.
func Validate(u Unit, path string) (Plugin, error) {
	hooks := make(map[Operation]Hook, len(RequiredOperations))
	var missing []Operation
	for _, op := range RequiredOperations {
		hook, ok := u.Hook(op)
		if !ok || hook == nil {
			missing = append(missing, op)
			continue
		}
		hooks[op] = hook
	}

	if len(missing) > 0 {
		return nil, &ContractError{Path: path, Missing: missing}
	}

	return &validatedPlugin{unit: u, hooks: hooks}, nil
}

// Invoke runs op on p
func Invoke(ctx context.Context, p Plugin, op Operation, pc *Context) error {
	switch op {
	case OperationAdd:
		return p.Add(ctx, pc)
	case OperationRemove:
		return p.Remove(ctx, pc)
	default:
		return fmt.Errorf("unknown plugin operation %q", op)
	}
}

type validatedPlugin struct {
	unit  Unit
	hooks map[Operation]Hook
}

func (p *validatedPlugin) Add(ctx context.Context, pc *Context) error {
	return p.hooks[OperationAdd](ctx, pc)
}

func (p *validatedPlugin) Remove(ctx context.Context, pc *Context) error {
	return p.hooks[OperationRemove](ctx, pc)
}

func (p *validatedPlugin) Close() error {
	return p.unit.Close()
}
