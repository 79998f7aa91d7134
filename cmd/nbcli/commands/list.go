package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/my0373/nbcli/pkg/netbox"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	var (
		params     []string
		filters    []string
		selectPath string
		allPages   bool
	)

	cmd := &cobra.Command{
		Use:   "list [ENDPOINT]",
		Short: "List an endpoint with optional pagination",
		Long: `List a catalog endpoint, e.g. dcim/devices.

With --all the pagination chain is followed and the merged result set is
returned as {count, results}. Without an endpoint the flat catalog listing
is shown instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := CurrentSession()
			if err != nil {
				return err
			}

			catalog, err := session.Client()
			if err != nil {
				return err
			}

			ctx := context.Background()

			if len(args) == 0 {
				payload, err := catalog.ShowPayload(ctx, "endpoints")
				if err != nil {
					return err
				}

				return session.RenderSelected(payload, selectPath)
			}

			query, err := netbox.CombineParams(params, filters)
			if err != nil {
				return err
			}

			var payload any
			if allPages {
				payload, err = catalog.ListAll(ctx, args[0], query)
			} else {
				payload, err = catalog.GetPath(ctx, args[0], query)
			}

			if err != nil {
				return err
			}

			return session.RenderSelected(payload, selectPath)
		},
	}

	cmd.Flags().StringArrayVar(&params, "param", nil, "query param in key=value form (repeatable)")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter in key=value form (repeatable)")
	cmd.Flags().StringVar(&selectPath, "path", "", "select a value using a dotted path (e.g. .results.0.name)")
	cmd.Flags().BoolVar(&allPages, "all", false, "follow pagination and return all results")

	return cmd
}
