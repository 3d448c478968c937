package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"botics.dev/cli/internal/application/ports"
	"botics.dev/cli/internal/core/exitcode"
	"botics.dev/cli/internal/core/generator"
	"botics.dev/cli/internal/core/install"
	"botics.dev/cli/internal/core/plugin"
	"botics.dev/cli/internal/core/project"
)

// NotProjectMessage is shown when a plugin command runs outside a project root
const NotProjectMessage = "The `botics %s` command must be run in a botics-compatible directory.\nUse `botics attach` to make compatible."

// AddRequest describes one `botics add` invocation
type AddRequest struct {
	ProjectRoot string
	Target      string
	AssumeYes   bool
}

// AddResult describes a non-fatal end of the add flow
type AddResult struct {
	Outcome    Outcome
	Module     install.Descriptor
	ModulePath string
	Changes    generator.ChangeSet
	Generators map[string]string
	Elapsed    time.Duration
}

// PluginInstallService adds a plugin module to a project and rolls it back
// when the plugin turns out to be unusable
type PluginInstallService struct {
	deps PluginDependencies
}

// NewPluginInstallService creates a new install service
func NewPluginInstallService(deps PluginDependencies) *PluginInstallService {
	return &PluginInstallService{deps: deps}
}

// Add installs req.Target. Fatal failures are returned as *exitcode.Error;
// the project config is written only after the plugin's add hook succeeded.
func (s *PluginInstallService) Add(ctx context.Context, req AddRequest) (*AddResult, error) {
	start := s.deps.now()
	root := req.ProjectRoot
	s.deps.Logger.Log(ports.LogLevelDebug, "running add command", map[string]interface{}{
		"target": req.Target,
		"root":   root,
	})

	if !project.IsProjectDirectory(root) {
		return nil, exitcode.New(exitcode.NotIgniteProject, fmt.Sprintf(NotProjectMessage, "add"))
	}

	if strings.TrimSpace(req.Target) == "" {
		return &AddResult{Outcome: OutcomeUsage}, nil
	}

	cfg, err := s.deps.Projects.Load(root)
	if err != nil {
		return nil, exitcode.Wrap(exitcode.Generic, "failed to load project config", err)
	}

	desc, err := install.Detect(req.Target, root)
	if err != nil {
		return nil, exitcode.Wrap(exitcode.PluginName, "failed to resolve plugin", err)
	}
	modulePath := project.ModulePath(root, desc.Name)
	result := &AddResult{Module: desc, ModulePath: modulePath}

	s.deps.Logger.Log(ports.LogLevelDebug, "installing plugin module", map[string]interface{}{
		"module":     modulePath,
		"descriptor": desc.String(),
		"manager":    s.deps.Importer.Manager(),
	})
	s.deps.Reporter.Info(fmt.Sprintf("adding %s", desc.Name))

	if err := s.deps.Importer.Import(ctx, desc); err != nil {
		return nil, exitcode.Wrap(importerExitCode(err), fmt.Sprintf("failed to add %s", desc.Name), err)
	}

	names, err := s.deps.Manifests.ReadGenerators(modulePath)
	if err != nil {
		s.rollback(ctx, desc.Name)
		return nil, exitcode.Wrap(exitcode.PluginInvalid, "problem reading the plugin blueprint", err)
	}
	proposal := generator.Propose(desc.Name, names)

	result.Changes = generator.DetectChanges(cfg.Generators, proposal)
	if !result.Changes.IsEmpty() {
		s.deps.Reporter.Warn(fmt.Sprintf("🔥  The following generators would be changed: %s", strings.Join(result.Changes, ", ")))

		ok, err := confirm(ctx, s.deps.Prompter, "You ok with that?", req.AssumeYes)
		if err != nil {
			s.rollback(ctx, desc.Name)
			return nil, exitcode.Wrap(exitcode.Generic, "confirmation failed", err)
		}
		if !ok {
			s.rollback(ctx, desc.Name)
			result.Outcome = OutcomeCancelled
			return result, nil
		}
	}

	// A module without an entry point stays installed. This differs from the
	// load/contract failure paths below and is reported, not fatal.
	entry, err := plugin.FindEntryPoint(modulePath)
	if err != nil {
		s.deps.Logger.Log(ports.LogLevelDebug, err.Error(), nil)
		s.deps.Reporter.Fail(fmt.Sprintf("%s does not exist.  skipping.", filepath.Join(modulePath, plugin.EntryPointCandidates[0])))
		result.Outcome = OutcomeMissingEntry
		return result, nil
	}

	s.deps.Logger.Log(ports.LogLevelDebug, "running add() on plugin", map[string]interface{}{"entry": entry})
	pc := &plugin.Context{
		ModuleName:  desc.Name,
		ProjectRoot: root,
		Printer:     s.deps.Reporter,
	}
	if _, err := s.deps.Lifecycle.Run(ctx, plugin.OperationAdd, modulePath, entry, pc); err != nil {
		if plugin.IsPreInvocation(err) {
			s.rollback(ctx, desc.Name)
			return nil, exitcode.Wrap(exitcode.PluginInvalid, "", err)
		}
		return nil, exitcode.Wrap(exitcode.PluginInstall, "", err)
	}

	updated := cfg.Clone()
	updated.Generators = generator.Merge(cfg.Generators, proposal)
	if err := s.deps.Projects.Save(root, updated); err != nil {
		return nil, exitcode.Wrap(exitcode.Generic, "failed to save project config", err)
	}
	result.Generators = updated.Generators

	result.Elapsed = s.deps.now().Sub(start)
	result.Outcome = OutcomeAdded
	s.deps.Reporter.Succeed(fmt.Sprintf("added %s in %ss", desc.Name, FormatElapsed(result.Elapsed)))
	return result, nil
}

// rollback removes a just-imported module. It is best effort: a failed
// removal is logged and otherwise ignored.
func (s *PluginInstallService) rollback(ctx context.Context, moduleName string) {
	s.deps.Reporter.Warn("Rolling back...run with --debug to see more info")

	if err := s.deps.Importer.Remove(context.WithoutCancel(ctx), moduleName); err != nil {
		s.deps.Logger.LogError(err, "rollback failed", map[string]interface{}{
			"module": moduleName,
		})
	}
}
