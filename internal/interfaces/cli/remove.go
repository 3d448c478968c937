package cli

import (
	"github.com/spf13/cobra"

	"botics.dev/cli/internal/application/services"
)

// NewRemoveCommand creates the remove command
func NewRemoveCommand(container *CLIContainer) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:     "remove <plugin>",
		Aliases: []string{"r"},
		Short:   "Remove a plugin from the project",
		Long: `Run the plugin's remove hook, drop the generators it owns from the project
config and uninstall the package.`,
		Example: `  botics remove maps
  botics r botics-maps --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) > 0 {
				target = args[0]
			}

			result, err := container.RemoveService.Remove(cmd.Context(), services.RemoveRequest{
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

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask before removing generators")

	return cmd
}
