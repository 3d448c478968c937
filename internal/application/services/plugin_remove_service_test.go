package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"botics.dev/cli/internal/core/exitcode"
	"botics.dev/cli/internal/core/plugin"
)

func TestRemove_RunsHookDropsGeneratorsAndUninstalls(t *testing.T) {
	f := newFixture(t, map[string]string{"component": "botics-x", "screen": "botics-base"})
	f.installModule(t, "botics-x", true)
	f.importer.On("Remove", mock.Anything, "botics-x").Return(nil)

	result, err := NewPluginRemoveService(f.deps()).Remove(context.Background(), RemoveRequest{ProjectRoot: f.root, Target: "x"})

	require.NoError(t, err)
	assert.Equal(t, OutcomeRemoved, result.Outcome)
	assert.True(t, result.HookRan)
	assert.Equal(t, []string{"component"}, result.Removed)
	assert.Equal(t, []plugin.Operation{plugin.OperationRemove}, f.hookCalls)
	assert.Equal(t, map[string]string{"screen": "botics-base"}, f.projects.configs[f.root].Generators)
	assert.Equal(t, []string{"removed botics-x in 1.23s"}, f.reporter.successes)
	f.importer.AssertCalled(t, "Remove", mock.Anything, "botics-x")
}

func TestRemove_Guards(t *testing.T) {
	t.Run("NotProject", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := NewPluginRemoveService(f.deps()).Remove(context.Background(), RemoveRequest{ProjectRoot: t.TempDir(), Target: "x"})
		requireExitCode(t, err, exitcode.NotIgniteProject)
	})

	t.Run("BlankTarget", func(t *testing.T) {
		f := newFixture(t, nil)
		result, err := NewPluginRemoveService(f.deps()).Remove(context.Background(), RemoveRequest{ProjectRoot: f.root, Target: " "})
		require.NoError(t, err)
		assert.Equal(t, OutcomeUsage, result.Outcome)
	})

	t.Run("NotInstalled", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := NewPluginRemoveService(f.deps()).Remove(context.Background(), RemoveRequest{ProjectRoot: f.root, Target: "x"})
		requireExitCode(t, err, exitcode.PluginNotInstalled)
		f.importer.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})
}

func TestRemove_DeclineKeepsEverything(t *testing.T) {
	f := newFixture(t, map[string]string{"component": "botics-x"})
	f.installModule(t, "botics-x", true)
	f.prompter.answer = false

	result, err := NewPluginRemoveService(f.deps()).Remove(context.Background(), RemoveRequest{ProjectRoot: f.root, Target: "x"})

	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, result.Outcome)
	assert.Empty(t, f.hookCalls)
	assert.Equal(t, 0, f.projects.saves)
	f.importer.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestRemove_HookFailureStopsBeforeUninstall(t *testing.T) {
	f := newFixture(t, nil)
	f.installModule(t, "botics-x", true)
	f.hookErr = errors.New("could not unlink module")

	_, err := NewPluginRemoveService(f.deps()).Remove(context.Background(), RemoveRequest{ProjectRoot: f.root, Target: "x"})

	exitErr := requireExitCode(t, err, exitcode.PluginRemove)
	assert.Equal(t, "could not unlink module", exitErr.Error())
	assert.Equal(t, 0, f.projects.saves)
	f.importer.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestRemove_InvalidPluginIsRejected(t *testing.T) {
	f := newFixture(t, nil)
	f.installModule(t, "botics-x", true)
	delete(f.loader.unit.hooks, plugin.OperationAdd)

	_, err := NewPluginRemoveService(f.deps()).Remove(context.Background(), RemoveRequest{ProjectRoot: f.root, Target: "x"})

	requireExitCode(t, err, exitcode.PluginInvalid)
	assert.Empty(t, f.hookCalls)
}

func TestRemove_WithoutEntryPointStillUninstalls(t *testing.T) {
	f := newFixture(t, nil)
	f.installModule(t, "botics-x", false)
	f.importer.On("Remove", mock.Anything, "botics-x").Return(nil)

	result, err := NewPluginRemoveService(f.deps()).Remove(context.Background(), RemoveRequest{ProjectRoot: f.root, Target: "x"})

	require.NoError(t, err)
	assert.False(t, result.HookRan)
	assert.Contains(t, f.reporter.warnings[0], "skipping remove hook")
	f.importer.AssertCalled(t, "Remove", mock.Anything, "botics-x")
}

func TestRemove_UninstallFailurePropagatesExitCode(t *testing.T) {
	f := newFixture(t, nil)
	f.installModule(t, "botics-x", true)
	f.importer.On("Remove", mock.Anything, "botics-x").Return(&exitStatusError{code: 2})

	_, err := NewPluginRemoveService(f.deps()).Remove(context.Background(), RemoveRequest{ProjectRoot: f.root, Target: "x"})

	requireExitCode(t, err, exitcode.Code(2))
}
