package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAttachCommand creates the attach command
func NewAttachCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "attach",
		Short: "Make the current directory a botics project",
		Long: `Write the botics project marker into the current directory so that
plugins can be added to it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := container.ProjectService.Attach(cmd.Context(), container.WorkDir)
			if err != nil {
				return err
			}

			if result.AlreadyAttached {
				container.Reporter.Info(fmt.Sprintf("%s already exists, nothing to do.", result.MarkerPath))
				return nil
			}
			container.Reporter.Succeed(fmt.Sprintf("created %s", result.MarkerPath))
			return nil
		},
	}
}
