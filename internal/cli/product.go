package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
)

func newProductCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products",
	}

	var typeCode string
	create := &cobra.Command{
		Use:   "create <identifier>",
		Short: "Create an empty product of a product type",
		Args:  checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(s *catalog.Service) error {
				res, err := s.CreateProduct(typeCode, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	create.Flags().StringVar(&typeCode, "type", "", "product type code")

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import product documents, one JSON object per line",
		Long: `Import product documents from a JSONL file, or stdin when the file is
omitted or "-". A document replaces the stored document of the product with
the same identifier.`,
		Args: checkArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return usageError{err}
				}
				defer f.Close()
				r = f
			}
			return a.withService(func(s *catalog.Service) error {
				n, err := s.ImportProducts(r)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]int{"imported": n})
			})
		},
	}

	cmd.AddCommand(
		listCmd(a, "products", "identifier, product_type", (*catalog.Service).ListProducts),
		create,
		importCmd,
	)
	return cmd
}
