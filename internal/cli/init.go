package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the configuration and data directories",
		Long:  "Create config.yaml and the data directory, then seed the root category.",
		Args:  checkArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(func(c types.Catalog) error {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"config_file": a.config.ConfigFileUsed(),
					"initialized": true,
				})
			})
		},
	}
}
