package di

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"botics.dev/cli/internal/application/ports"
	"botics.dev/cli/internal/application/services"
	"botics.dev/cli/internal/infrastructure/config"
	"botics.dev/cli/internal/infrastructure/logging"
	"botics.dev/cli/internal/infrastructure/lua"
	"botics.dev/cli/internal/infrastructure/packagemanager"
	"botics.dev/cli/internal/infrastructure/project"
	"botics.dev/cli/internal/interfaces/cli"
)

// IO bundles the terminal streams the container hands to its components
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Container holds all application dependencies
type Container struct {
	// Configuration
	ConfigRepo ports.ConfigurationRepository
	Config     *ports.Configuration

	// Infrastructure
	Logger    *logging.LogrusGateway
	Importer  ports.ModuleImporter
	Projects  *project.FileRepository
	Manifests *project.BlueprintReader
	Loader    *lua.Loader

	// Terminal
	Reporter *cli.Reporter
	Prompter *cli.TeaPrompter

	// Application services
	Lifecycle      *services.PluginLifecycle
	InstallService *services.PluginInstallService
	RemoveService  *services.PluginRemoveService
	ProjectService *services.ProjectService

	// CLI
	CLIContainer *cli.CLIContainer

	workDir string
	streams IO
}

// NewContainer creates a container rooted at the current directory and
// attached to the process's standard streams
func NewContainer() (*Container, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}
	return NewContainerWithIO(workDir, "", IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
}

// NewContainerWithIO creates a container for workDir. An empty configPath
// selects the default config file location.
func NewContainerWithIO(workDir, configPath string, streams IO) (*Container, error) {
	container := &Container{
		workDir:  workDir,
		streams:  streams,
		Logger:   logging.NewLogrusGateway(streams.Err, ports.LogLevelWarn).WithRunID(uuid.NewString()),
		Reporter: cli.NewReporter(streams.Out),
		Prompter: cli.NewTeaPrompter(streams.In, streams.Out),
	}
	container.CLIContainer = &cli.CLIContainer{
		Reporter:      container.Reporter,
		Out:           streams.Out,
		WorkDir:       workDir,
		MainContainer: container, // Reference to self for override methods
	}

	if err := container.loadConfiguration(configPath); err != nil {
		return nil, err
	}
	container.initializeComponents()

	return container, nil
}

func (c *Container) loadConfiguration(configPath string) error {
	c.ConfigRepo = config.NewCompositeConfigRepository(configPath)

	appConfig, err := c.ConfigRepo.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	c.Config = appConfig

	// A reload must also drop a debug level left by the previous file
	level := ports.LogLevelWarn
	if appConfig.Debug {
		level = ports.LogLevelDebug
	}
	c.Logger.SetLogLevel(level)
	return nil
}

// initializeComponents builds every component from the current configuration
func (c *Container) initializeComponents() {
	c.Importer = packagemanager.NewManager(c.Config.PackageManager, c.workDir, c.Logger)
	c.Projects = project.NewFileRepository()
	c.Manifests = project.NewBlueprintReader()
	c.Loader = lua.NewLoader()

	c.Lifecycle = services.NewPluginLifecycle(c.Loader, c.Logger)
	deps := services.PluginDependencies{
		Importer:  c.Importer,
		Projects:  c.Projects,
		Manifests: c.Manifests,
		Lifecycle: c.Lifecycle,
		Prompter:  c.Prompter,
		Reporter:  c.Reporter,
		Logger:    c.Logger,
	}
	c.InstallService = services.NewPluginInstallService(deps)
	c.RemoveService = services.NewPluginRemoveService(deps)
	c.ProjectService = services.NewProjectService(c.Projects, c.Logger, cli.Version)

	c.CLIContainer.InstallService = c.InstallService
	c.CLIContainer.RemoveService = c.RemoveService
	c.CLIContainer.ProjectService = c.ProjectService
	c.CLIContainer.AssumeYes = c.Config.AssumeYes

	c.Logger.Log(ports.LogLevelDebug, "Dependency injection container initialized", map[string]interface{}{
		"work_dir":        c.workDir,
		"package_manager": c.Importer.Manager(),
		"config_path":     c.ConfigRepo.GetConfigPath(),
	})
}

// GetCLIContainer returns the CLI container for command execution
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}

// ApplyConfigFileOverride reloads configuration from path and rebuilds components
func (c *Container) ApplyConfigFileOverride(path string) error {
	if path == "" {
		return fmt.Errorf("config file path cannot be empty")
	}
	if err := c.loadConfiguration(path); err != nil {
		return err
	}
	c.initializeComponents()
	return nil
}

// ApplyPackageManagerOverride switches the package manager used for imports
func (c *Container) ApplyPackageManagerOverride(name string) error {
	override := *c.Config
	override.PackageManager = name
	if err := c.ConfigRepo.Validate(&override); err != nil {
		return err
	}

	c.Config = &override
	c.initializeComponents()
	return nil
}

// ApplyDebugOverride enables debug logging
func (c *Container) ApplyDebugOverride() {
	c.Config.Debug = true
	c.Logger.SetLogLevel(ports.LogLevelDebug)
}
