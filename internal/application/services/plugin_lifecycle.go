package services

import (
	"context"
	"errors"

	"botics.dev/cli/internal/application/ports"
	"botics.dev/cli/internal/core/plugin"
)

// PluginLifecycle loads an entry point, enforces the add/remove contract and
// runs one hook. Each call walks Located -> Loaded -> ContractValidated ->
// Invoked -> Succeeded|Failed.
type PluginLifecycle struct {
	loader ports.PluginLoader
	logger ports.LoggingGateway
}

// NewPluginLifecycle creates a new lifecycle invoker
func NewPluginLifecycle(loader ports.PluginLoader, logger ports.LoggingGateway) *PluginLifecycle {
	return &PluginLifecycle{
		loader: loader,
		logger: logger,
	}
}

// Run invokes op on the plugin at entryPath. The returned state is terminal.
// Load and contract failures come back as *plugin.LoadError and
// *plugin.ContractError; a failing hook comes back as *plugin.HookError.
func (l *PluginLifecycle) Run(ctx context.Context, op plugin.Operation, modulePath, entryPath string, pc *plugin.Context) (plugin.State, error) {
	l.transition(op, entryPath, plugin.StateLocated)

	unit, err := l.loader.Load(ctx, entryPath)
	if err != nil {
		var loadErr *plugin.LoadError
		if !errors.As(err, &loadErr) {
			err = &plugin.LoadError{Path: entryPath, Err: err}
		}
		return l.fail(op, entryPath, err)
	}
	l.transition(op, entryPath, plugin.StateLoaded)

	p, err := plugin.Validate(unit, entryPath)
	if err != nil {
		unit.Close()
		return l.fail(op, entryPath, err)
	}
	defer p.Close()
	l.transition(op, entryPath, plugin.StateContractValidated)

	pc.PluginPath = modulePath
	l.transition(op, entryPath, plugin.StateInvoked)

	if err := plugin.Invoke(ctx, p, op, pc); err != nil {
		var hookErr *plugin.HookError
		if !errors.As(err, &hookErr) {
			err = &plugin.HookError{Operation: op, Message: err.Error(), Err: err}
		}
		return l.fail(op, entryPath, err)
	}

	l.transition(op, entryPath, plugin.StateSucceeded)
	return plugin.StateSucceeded, nil
}

func (l *PluginLifecycle) transition(op plugin.Operation, entryPath string, state plugin.State) {
	l.logger.Log(ports.LogLevelDebug, "plugin lifecycle", map[string]interface{}{
		"operation": string(op),
		"entry":     entryPath,
		"state":     state.String(),
	})
}

func (l *PluginLifecycle) fail(op plugin.Operation, entryPath string, err error) (plugin.State, error) {
	l.logger.LogError(err, "plugin lifecycle failed", map[string]interface{}{
		"operation": string(op),
		"entry":     entryPath,
		"state":     plugin.StateFailed.String(),
	})
	return plugin.StateFailed, err
}
