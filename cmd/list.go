package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"latte.dev/pkg/latte/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [patterns...]",
		Short: "List suite files and what they declare",
		Long:  listLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{
				LoadArgs: domain.LoadArgs{
					Patterns: args,
					Exclude:  viper.GetStringSlice(excludeConfigKey),
					Parallel: viper.GetInt(parallelConfigKey),
				},
				Out: cmd.OutOrStdout(),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
