package root

import (
	"github.com/spf13/cobra"
)

const jsonFlag = "json"

// New builds the top-level sidelines command with its persistent flags.
// Subcommands are attached by each package's Init function.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sidelines",
		Short:         "Sidelines CLI",
		Long:          "Command line interface for the Sidelines football API: accounts, forum posts and transfer search.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().Bool(jsonFlag, false, "print raw JSON instead of tables")
	return cmd
}

// WantsJSON reports whether --json was given to cmd or any parent.
func WantsJSON(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool(jsonFlag)
	return err == nil && v
}
