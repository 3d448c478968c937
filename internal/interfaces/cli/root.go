package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"botics.dev/cli/internal/application/services"
	"botics.dev/cli/internal/core/exitcode"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	InstallService *services.PluginInstallService
	RemoveService  *services.PluginRemoveService
	ProjectService *services.ProjectService
	Reporter       *Reporter
	Out            io.Writer
	WorkDir        string
	AssumeYes      bool
	MainContainer  interface{} // Will be set to *di.Container, avoiding circular import
}

// NewRootCommand represents the base command when called without any subcommands
func NewRootCommand(container *CLIContainer) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "botics",
		Short: "botics - manage chatbot project plugins",
		Long: `botics manages the plugins of a botics chatbot project.

Plugins are packages installed as development dependencies. Each plugin can
contribute generators to the project and runs its own add/remove hooks when
it is installed or uninstalled.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigurationOverrides(cmd, container); err != nil {
				return fmt.Errorf("failed to apply configuration overrides: %w", err)
			}
			return nil
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	rootCmd.PersistentFlags().Bool("debug", false, "Show debug output")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default is $HOME/.botics/config.yaml)")
	rootCmd.PersistentFlags().String("package-manager", "", "Package manager to use: yarn, npm or auto")

	rootCmd.AddCommand(NewAddCommand(container))
	rootCmd.AddCommand(NewRemoveCommand(container))
	rootCmd.AddCommand(NewAttachCommand(container))

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// applyConfigurationOverrides applies configuration overrides from command line flags
func applyConfigurationOverrides(cmd *cobra.Command, container *CLIContainer) error {
	mainContainer, ok := container.MainContainer.(interface {
		ApplyConfigFileOverride(string) error
		ApplyPackageManagerOverride(string) error
		ApplyDebugOverride()
	})
	if !ok {
		return nil
	}

	// --config first so the other flags win over the file it names
	if cmd.Flags().Changed("config") {
		path, _ := cmd.Flags().GetString("config")
		if err := mainContainer.ApplyConfigFileOverride(path); err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if cmd.Flags().Changed("package-manager") {
		name, _ := cmd.Flags().GetString("package-manager")
		if err := mainContainer.ApplyPackageManagerOverride(name); err != nil {
			return fmt.Errorf("failed to override package manager: %w", err)
		}
	}

	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		mainContainer.ApplyDebugOverride()
	}

	return nil
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context, container *CLIContainer, args []string) int {
	rootCmd := NewRootCommand(container)
	rootCmd.SetArgs(args)
	if container.Out != nil {
		rootCmd.SetOut(container.Out)
		rootCmd.SetErr(container.Out)
	}

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return int(exitcode.OK)
	}

	container.Reporter.Fail(err.Error())

	var exitErr *exitcode.Error
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return int(exitcode.Generic)
}
