package packagemanager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"botics.dev/cli/internal/application/ports"
	"botics.dev/cli/internal/core/install"
)

// Runner executes name with args inside dir
type Runner func(ctx context.Context, dir, name string, args ...string) error

// CommandError reports a package manager invocation that did not succeed
type CommandError struct {
	Command string
	Code    int
	Err     error
}

func (e *CommandError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
	}
	return fmt.Sprintf("%s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns the subprocess exit status, or 0 when the process never ran
func (e *CommandError) ExitCode() int { return e.Code }

// Manager imports plugin modules as development dependencies via yarn or npm
type Manager struct {
	kind   string
	dir    string
	logger ports.LoggingGateway
	run    Runner
}

// NewManager creates a manager running kind inside projectRoot. kind "auto"
// resolves to yarn when it is on PATH and npm otherwise.
func NewManager(kind, projectRoot string, logger ports.LoggingGateway) *Manager {
	return NewManagerWithRunner(Resolve(kind, exec.LookPath), projectRoot, logger, ExecRunner(os.Stdout, os.Stderr))
}

// NewManagerWithRunner creates a manager with an explicit runner
func NewManagerWithRunner(kind, projectRoot string, logger ports.LoggingGateway, run Runner) *Manager {
	return &Manager{
		kind:   kind,
		dir:    projectRoot,
		logger: logger,
		run:    run,
	}
}

// Resolve picks the concrete package manager for kind
func Resolve(kind string, lookPath func(string) (string, error)) string {
	switch kind {
	case ports.PackageManagerYarn, ports.PackageManagerNPM:
		return kind
	}
	if _, err := lookPath(ports.PackageManagerYarn); err == nil {
		return ports.PackageManagerYarn
	}
	return ports.PackageManagerNPM
}

// Manager returns the name of the active package manager
func (m *Manager) Manager() string {
	return m.kind
}

// Import adds desc to the project's development dependencies
func (m *Manager) Import(ctx context.Context, desc install.Descriptor) error {
	args := []string{"add", desc.Source, "--dev"}
	if m.kind == ports.PackageManagerNPM {
		args = []string{"install", desc.Source, "--save-dev"}
	}
	return m.exec(ctx, args)
}

// Remove uninstalls moduleName from the project's development dependencies
func (m *Manager) Remove(ctx context.Context, moduleName string) error {
	args := []string{"remove", moduleName, "--dev"}
	if m.kind == ports.PackageManagerNPM {
		args = []string{"rm", moduleName, "--save-dev"}
	}
	return m.exec(ctx, args)
}

func (m *Manager) exec(ctx context.Context, args []string) error {
	command := m.kind + " " + strings.Join(args, " ")
	m.logger.Log(ports.LogLevelDebug, "Running package manager", map[string]interface{}{
		"command": command,
		"dir":     m.dir,
	})

	err := m.run(ctx, m.dir, m.kind, args...)
	if err == nil {
		return nil
	}

	cmdErr := &CommandError{Command: command, Err: err}
	var coder ports.ExitCoder
	if errors.As(err, &coder) {
		cmdErr.Code = coder.ExitCode()
	}
	return cmdErr
}

// ExecRunner returns a Runner that streams subprocess output to stdout and stderr
func ExecRunner(stdout, stderr io.Writer) Runner {
	return func(ctx context.Context, dir, name string, args ...string) error {
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Dir = dir
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		cmd.Env = os.Environ()
		return cmd.Run()
	}
}
