package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/cleaner"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

func newCleanCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove references to deleted entities from product documents",
		Long: `Clean walks every product and removes its product type, category codes,
values and options that point to entities that no longer exist. Documents
that do not have the expected shape are reported and left untouched.`,
		Args: checkArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalog(func(c types.Catalog) error {
				cl, err := cleaner.New(c, a.logger)
				if err != nil {
					return err
				}
				report, err := cl.Run(cmd.Context(), cleaner.Options{DryRun: dryRun})
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), report)
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report without storing changes")
	return cmd
}
