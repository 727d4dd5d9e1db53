package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
)

func newAttributeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attribute",
		Short: "Manage attributes",
	}

	var attrType string
	var options []string
	create := &cobra.Command{
		Use:   "create <code>",
		Short: "Create an attribute",
		Long: `Create an attribute. Options are only accepted on simple_select and
multi_select attributes.

Example:
  catalog attribute create color --type simple_select --option red --option blue`,
		Args: checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(s *catalog.Service) error {
				res, err := s.CreateAttribute(args[0], attrType, options)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	create.Flags().StringVar(&attrType, "type", "", "attribute type")
	create.Flags().StringArrayVar(&options, "option", nil, "option code (repeatable)")

	cmd.AddCommand(
		listCmd(a, "attributes", "code, type", (*catalog.Service).ListAttributes),
		create,
	)
	return cmd
}
