package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
)

func newCategoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	var data, file string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a category from a JSON object of fields",
		Long: `Create a category. Recognized fields are code, parent and labels.

Example:
  catalog category create -d '{"code":"shoes","parent":"master","labels":{"en_US":"Shoes"}}'`,
		Args: checkArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := readFields(cmd, data, file)
			if err != nil {
				return err
			}
			return a.withService(func(s *catalog.Service) error {
				res, err := s.CreateCategory(fields)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	addDataFlags(create, &data, &file)

	var updData, updFile string
	update := &cobra.Command{
		Use:   "update <code>",
		Short: "Apply a JSON object of fields to a category",
		Long: `Update a category. A null or empty parent makes it a root.

Example:
  catalog category update shoes -d '{"parent":null}'`,
		Args: checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := readFields(cmd, updData, updFile)
			if err != nil {
				return err
			}
			return a.withService(func(s *catalog.Service) error {
				res, err := s.UpdateCategory(args[0], fields)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	addDataFlags(update, &updData, &updFile)

	cmd.AddCommand(
		listCmd(a, "categories", "code, parent (empty for roots)", (*catalog.Service).ListCategories),
		getCmd(a, "category", (*catalog.Service).GetCategory),
		create,
		update,
		deleteCmd(a, "category", "Delete a category and its subcategories", (*catalog.Service).DeleteCategory),
	)
	return cmd
}
