package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botics.dev/cli/internal/core/plugin"
)

func TestPluginLifecycle_Run(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(f *fixture)
		expectedState plugin.State
		expectedErr   interface{}
		expectHook    bool
	}{
		{
			name:          "Success",
			setup:         func(f *fixture) {},
			expectedState: plugin.StateSucceeded,
			expectHook:    true,
		},
		{
			name: "LoadFailure",
			setup: func(f *fixture) {
				f.loader.err = errors.New("unexpected symbol near 'end'")
			},
			expectedState: plugin.StateFailed,
			expectedErr:   &plugin.LoadError{},
		},
		{
			name: "ContractFailure",
			setup: func(f *fixture) {
				delete(f.loader.unit.hooks, plugin.OperationRemove)
			},
			expectedState: plugin.StateFailed,
			expectedErr:   &plugin.ContractError{},
		},
		{
			name: "HookFailure",
			setup: func(f *fixture) {
				f.hookErr = errors.New("disk full")
			},
			expectedState: plugin.StateFailed,
			expectedErr:   &plugin.HookError{},
			expectHook:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			tt.setup(f)
			lifecycle := NewPluginLifecycle(f.loader, f.logger)
			pc := &plugin.Context{ModuleName: "botics-x"}

			state, err := lifecycle.Run(context.Background(), plugin.OperationAdd, "/app/node_modules/botics-x", "/app/node_modules/botics-x/plugin.lua", pc)

			assert.Equal(t, tt.expectedState, state)
			assert.True(t, state.IsTerminal())
			assert.Equal(t, tt.expectHook, len(f.hookCalls) == 1)

			switch want := tt.expectedErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.Equal(t, "/app/node_modules/botics-x", pc.PluginPath)
			case *plugin.LoadError:
				assert.True(t, errors.As(err, &want))
				assert.Empty(t, pc.PluginPath)
			case *plugin.ContractError:
				assert.True(t, errors.As(err, &want))
				assert.Empty(t, pc.PluginPath)
				assert.True(t, f.loader.unit.closed)
			case *plugin.HookError:
				assert.True(t, errors.As(err, &want))
				assert.Equal(t, "disk full", want.Message)
				assert.Equal(t, plugin.OperationAdd, want.Operation)
			}
		})
	}
}

func TestPluginLifecycle_PassesTypedHookErrorThrough(t *testing.T) {
	f := newFixture(t, nil)
	f.hookErr = &plugin.HookError{Operation: plugin.OperationRemove, Message: "nope"}

	_, err := NewPluginLifecycle(f.loader, f.logger).Run(context.Background(), plugin.OperationRemove, "/m", "/m/plugin.lua", &plugin.Context{})

	var hookErr *plugin.HookError
	require.True(t, errors.As(err, &hookErr))
	assert.Same(t, f.hookErr, hookErr)
}
