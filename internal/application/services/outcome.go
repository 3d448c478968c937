package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"botics.dev/cli/internal/application/ports"
	"botics.dev/cli/internal/core/exitcode"
)

// Outcome is how a plugin command finished when it did not fail
type Outcome string

const (
	OutcomeUsage        Outcome = "usage"
	OutcomeAdded        Outcome = "added"
	OutcomeRemoved      Outcome = "removed"
	OutcomeCancelled    Outcome = "cancelled"
	OutcomeMissingEntry Outcome = "missing-entry"
)

// PluginDependencies bundles the collaborators shared by the plugin services
type PluginDependencies struct {
	Importer  ports.ModuleImporter
	Projects  ports.ProjectRepository
	Manifests ports.ManifestReader
	Lifecycle *PluginLifecycle
	Prompter  ports.Prompter
	Reporter  ports.Reporter
	Logger    ports.LoggingGateway

	// Now is overridable for tests
	Now func() time.Time
}

func (d PluginDependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// FormatElapsed renders d in seconds truncated to two decimals ("1.23", "0.5")
func FormatElapsed(d time.Duration) string {
	hundredths := d.Milliseconds() / 10
	return strconv.FormatFloat(float64(hundredths)/100, 'f', -1, 64)
}

// importerExitCode maps a package manager failure onto a process exit code
func importerExitCode(err error) exitcode.Code {
	var coder ports.ExitCoder
	if errors.As(err, &coder) && coder.ExitCode() > 0 {
		return exitcode.Code(coder.ExitCode())
	}
	return exitcode.Generic
}

// confirm asks question unless assumeYes is set
func confirm(ctx context.Context, prompter ports.Prompter, question string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	return prompter.Confirm(ctx, question)
}
