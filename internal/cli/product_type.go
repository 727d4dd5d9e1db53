package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/pkg/hal"
)

// productTypeRun builds the RunE of a subcommand changing one product type.
func productTypeRun(a *app, run func(s *catalog.Service, args []string) (*hal.Resource, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return a.withService(func(s *catalog.Service) error {
			res, err := run(s, args)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		})
	}
}

func newProductTypeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product-type",
		Aliases: []string{"type"},
		Short:   "Manage product types and their field groups",
	}

	var title string
	create := &cobra.Command{
		Use:   "create <code>",
		Short: "Create a product type",
		Args:  checkArgs(cobra.ExactArgs(1)),
		RunE: productTypeRun(a, func(s *catalog.Service, args []string) (*hal.Resource, error) {
			return s.CreateProductType(args[0], title)
		}),
	}
	create.Flags().StringVar(&title, "title", "", "display title (default: the code)")

	var data, file string
	update := &cobra.Command{
		Use:   "update <code>",
		Short: "Apply a JSON object of fields (code, title, groups) to a product type",
		Args:  checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := readFields(cmd, data, file)
			if err != nil {
				return err
			}
			return productTypeRun(a, func(s *catalog.Service, args []string) (*hal.Resource, error) {
				return s.UpdateProductType(args[0], fields)
			})(cmd, args)
		},
	}
	addDataFlags(update, &data, &file)

	var groupTitle string
	addGroup := &cobra.Command{
		Use:   "add-group <type> <group>",
		Short: "Append a field group",
		Args:  checkArgs(cobra.ExactArgs(2)),
		RunE: productTypeRun(a, func(s *catalog.Service, args []string) (*hal.Resource, error) {
			return s.AddGroup(args[0], args[1], groupTitle)
		}),
	}
	addGroup.Flags().StringVar(&groupTitle, "title", "", "group title (default: the group code)")

	var fieldType, fieldGroup, fieldTitle string
	addField := &cobra.Command{
		Use:   "add-field <type> <field>",
		Short: "Append a field to a group",
		Args:  checkArgs(cobra.ExactArgs(2)),
		RunE: productTypeRun(a, func(s *catalog.Service, args []string) (*hal.Resource, error) {
			return s.AddField(args[0], args[1], fieldType, fieldGroup, fieldTitle)
		}),
	}
	addField.Flags().StringVar(&fieldType, "type", "", "field type: text, number, boolean, date, simple_select or multi_select")
	addField.Flags().StringVar(&fieldGroup, "group", "", "code of the group receiving the field")
	addField.Flags().StringVar(&fieldTitle, "title", "", "field title (default: the field code)")

	removeField := &cobra.Command{
		Use:   "remove-field <type> <field>",
		Short: "Remove a field",
		Args:  checkArgs(cobra.ExactArgs(2)),
		RunE: productTypeRun(a, func(s *catalog.Service, args []string) (*hal.Resource, error) {
			return s.RemoveField(args[0], args[1])
		}),
	}

	cmd.AddCommand(
		listCmd(a, "product types", "code", (*catalog.Service).ListProductTypes),
		getCmd(a, "product type", (*catalog.Service).GetProductType),
		create,
		update,
		addGroup,
		addField,
		removeField,
		deleteCmd(a, "product_type", "Delete a product type", (*catalog.Service).DeleteProductType),
	)
	return cmd
}
