package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"botics.dev/cli/internal/application/ports"
	"botics.dev/cli/internal/core/exitcode"
	"botics.dev/cli/internal/core/generator"
	"botics.dev/cli/internal/core/install"
	"botics.dev/cli/internal/core/plugin"
	"botics.dev/cli/internal/core/project"
)

// NotInstalledMessage is shown when removing a module that is not present
const NotInstalledMessage = "🥺  We couldn't find that botics plugin.\nPlease make sure you spelled it correctly and that it is installed."

// RemoveRequest describes one `botics remove` invocation
type RemoveRequest struct {
	ProjectRoot string
	Target      string
	AssumeYes   bool
}

// RemoveResult describes a non-fatal end of the remove flow
type RemoveResult struct {
	Outcome    Outcome
	ModuleName string
	Removed    []string
	HookRan    bool
	Elapsed    time.Duration
}

// PluginRemoveService runs a plugin's remove hook, drops its generators from
// the project config and uninstalls the module
type PluginRemoveService struct {
	deps PluginDependencies
}

// NewPluginRemoveService creates a new remove service
func NewPluginRemoveService(deps PluginDependencies) *PluginRemoveService {
	return &PluginRemoveService{deps: deps}
}

// Remove uninstalls req.Target
func (s *PluginRemoveService) Remove(ctx context.Context, req RemoveRequest) (*RemoveResult, error) {
	start := s.deps.now()
	root := req.ProjectRoot
	s.deps.Logger.Log(ports.LogLevelDebug, "running remove command", map[string]interface{}{
		"target": req.Target,
		"root":   root,
	})

	if !project.IsProjectDirectory(root) {
		return nil, exitcode.New(exitcode.NotIgniteProject, fmt.Sprintf(NotProjectMessage, "remove"))
	}

	if strings.TrimSpace(req.Target) == "" {
		return &RemoveResult{Outcome: OutcomeUsage}, nil
	}

	cfg, err := s.deps.Projects.Load(root)
	if err != nil {
		return nil, exitcode.Wrap(exitcode.Generic, "failed to load project config", err)
	}

	name, err := install.ModuleName(req.Target, root)
	if err != nil {
		return nil, exitcode.Wrap(exitcode.PluginName, "failed to resolve plugin", err)
	}
	modulePath := project.ModulePath(root, name)
	if info, err := os.Stat(modulePath); err != nil || !info.IsDir() {
		return nil, exitcode.New(exitcode.PluginNotInstalled, NotInstalledMessage)
	}

	result := &RemoveResult{ModuleName: name, Removed: cfg.GeneratorsOwnedBy(name)}
	if len(result.Removed) > 0 {
		s.deps.Reporter.Warn(fmt.Sprintf("🔥  The following generators would be removed: %s", strings.Join(result.Removed, ", ")))

		ok, err := confirm(ctx, s.deps.Prompter, "You ok with that?", req.AssumeYes)
		if err != nil {
			return nil, exitcode.Wrap(exitcode.Generic, "confirmation failed", err)
		}
		if !ok {
			result.Outcome = OutcomeCancelled
			return result, nil
		}
	}

	if entry, err := plugin.FindEntryPoint(modulePath); err == nil {
		s.deps.Logger.Log(ports.LogLevelDebug, "running remove() on plugin", map[string]interface{}{"entry": entry})
		pc := &plugin.Context{
			ModuleName:  name,
			ProjectRoot: root,
			Printer:     s.deps.Reporter,
		}
		if _, err := s.deps.Lifecycle.Run(ctx, plugin.OperationRemove, modulePath, entry, pc); err != nil {
			if plugin.IsPreInvocation(err) {
				return nil, exitcode.Wrap(exitcode.PluginInvalid, "", err)
			}
			return nil, exitcode.Wrap(exitcode.PluginRemove, "", err)
		}
		result.HookRan = true
	} else {
		s.deps.Reporter.Warn(fmt.Sprintf("%s has no entry point, skipping remove hook", name))
	}

	updated := cfg.Clone()
	updated.Generators = generator.Without(cfg.Generators, name)
	if err := s.deps.Projects.Save(root, updated); err != nil {
		return nil, exitcode.Wrap(exitcode.Generic, "failed to save project config", err)
	}

	if err := s.deps.Importer.Remove(ctx, name); err != nil {
		return nil, exitcode.Wrap(importerExitCode(err), fmt.Sprintf("failed to remove %s", name), err)
	}

	result.Elapsed = s.deps.now().Sub(start)
	result.Outcome = OutcomeRemoved
	s.deps.Reporter.Succeed(fmt.Sprintf("removed %s in %ss", name, FormatElapsed(result.Elapsed)))
	return result, nil
}
