package cli

import (
	"github.com/spf13/cobra"

	"botics.dev/cli/internal/application/services"
)

// NewAddCommand creates the add command
func NewAddCommand(container *CLIContainer) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:     "add <plugin>",
		Aliases: []string{"a"},
		Short:   "Add a plugin to the project",
		Long: `Install a plugin as a development dependency, register the generators it
declares and run its add hook.

A plugin can be a registry package, a GitHub repository or a local directory.
Bare registry names get the botics- prefix.`,
		Example: `  botics add maps                 # installs botics-maps
  botics add maps@1.2.0           # pinned version
  botics add acme/botics-maps     # GitHub repository
  botics add ../my-plugin         # local directory`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) > 0 {
				target = args[0]
			}

			result, err := container.InstallService.Add(cmd.Context(), services.AddRequest{
				ProjectRoot: container.WorkDir,
				Target:      target,
				AssumeYes:   assumeYes || container.AssumeYes,
			})
			if err != nil {
				return err
			}

			switch result.Outcome {
			case services.OutcomeUsage:
				return cmd.Usage()
			case services.OutcomeCancelled:
				container.Reporter.Info("Cancelled, nothing was changed.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask before changing generators")

	return cmd
}
