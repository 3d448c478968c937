package ports

import (
	"context"

	"botics.dev/cli/internal/core/install"
	"botics.dev/cli/internal/core/plugin"
)

// ModuleImporter adds and removes plugin modules as development dependencies
type ModuleImporter interface {
	// Import adds the module to the project's dependency manifest. A failed
	// import returns an error that may implement ExitCoder.
	Import(ctx context.Context, desc install.Descriptor) error

	// Remove uninstalls a previously imported module
	Remove(ctx context.Context, moduleName string) error

	// Manager returns the name of the active package manager
	Manager() string
}

// ExitCoder is implemented by errors that carry a process exit status
type ExitCoder interface {
	ExitCode() int
}

// PluginLoader turns an entry point file into a loaded unit
type PluginLoader interface {
	// Load parses and evaluates the entry point. Failures are *plugin.LoadError.
	Load(ctx context.Context, entryPath string) (plugin.Unit, error)
}

// Prompter asks the user a yes/no question
type Prompter interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Reporter presents progress and outcomes to the user
type Reporter interface {
	Info(message string)
	Warn(message string)
	Succeed(message string)
	Fail(message string)
}

// LoggingGateway defines the interface for logging operations
type LoggingGateway interface {
	// Log logs a message with the specified level
	Log(level LogLevel, message string, fields map[string]interface{})

	// LogError logs an error
	LogError(err error, message string, fields map[string]interface{})

	// SetLogLevel sets the logging level
	SetLogLevel(level LogLevel)

	// GetLogLevel returns the current logging level
	GetLogLevel() LogLevel
}

// LogLevel defines the logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
