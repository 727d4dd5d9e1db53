package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/pkg/hal"
	"github.com/mesh-intelligence/catalog/pkg/pagination"
)

// listCmd builds a "list" subcommand printing one HAL page.
func listCmd(a *app, plural, filters string, list func(*catalog.Service, map[string]string) (*hal.Resource, error)) *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "list [key=value...]",
		Short: "List " + plural + " one page at a time",
		Long: fmt.Sprintf(`List %s as a paginated HAL document.

Arguments are key=value filters. Accepted keys: %s.
page and limit may also be given as arguments.`, plural, filters),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed(pagination.ParamPage) {
				params[pagination.ParamPage] = strconv.Itoa(page)
			}
			if cmd.Flags().Changed(pagination.ParamLimit) {
				params[pagination.ParamLimit] = strconv.Itoa(limit)
			}
			return a.withService(func(s *catalog.Service) error {
				res, err := list(s, params)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	cmd.Flags().IntVar(&page, pagination.ParamPage, 1, "page number")
	cmd.Flags().IntVar(&limit, pagination.ParamLimit, catalog.DefaultLimit, "items per page")
	return cmd
}

// getCmd builds a "get <code>" subcommand.
func getCmd(a *app, noun string, get func(*catalog.Service, string) (*hal.Resource, error)) *cobra.Command {
	return &cobra.Command{
		Use:     "get <code>",
		Aliases: []string{"show"},
		Short:   "Show one " + noun,
		Args:    checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(s *catalog.Service) error {
				res, err := get(s, args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), res)
			})
		},
	}
}

// deleteCmd builds a "delete <code>" subcommand.
func deleteCmd(a *app, noun, short string, del func(*catalog.Service, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <code>",
		Short: short,
		Args:  checkArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withService(func(s *catalog.Service) error {
				if err := del(s, args[0]); err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[0], "type": noun})
			})
		},
	}
}
