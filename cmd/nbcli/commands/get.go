package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/my0373/nbcli/pkg/netbox"
)

// NewGetCommand creates the get command
func NewGetCommand() *cobra.Command {
	var (
		params     []string
		filters    []string
		selectPath string
	)

	cmd := &cobra.Command{
		Use:   "get PATH...",
		Short: "GET an API path, e.g. dcim/devices/1",
		Long: `GET an API path or full URL and render the response.

Multi-word paths address the synthetic local targets, e.g. "get cli config"
shows the active connection settings without touching the network.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := CurrentSession()
			if err != nil {
				return err
			}

			spaced, slashed := netbox.PathVariants(args)

			if netbox.IsConfigPath(spaced) {
				return session.RenderSelected(session.ConfigPayload(), selectPath)
			}

			catalog, err := session.Client()
			if err != nil {
				return err
			}

			ctx := context.Background()

			if netbox.IsStatusPath(spaced) {
				payload, err := catalog.Status(ctx)
				if err != nil {
					return err
				}

				return renderStatus(session, payload, selectPath)
			}

			query, err := netbox.CombineParams(params, filters)
			if err != nil {
				return err
			}

			payload, err := catalog.GetPath(ctx, slashed, query)
			if err != nil {
				return err
			}

			return session.RenderSelected(payload, selectPath)
		},
	}

	cmd.Flags().StringArrayVar(&params, "param", nil, "query param in key=value form (repeatable)")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter in key=value form (repeatable)")
	cmd.Flags().StringVar(&selectPath, "path", "", "select a value using a dotted path (e.g. .name)")

	return cmd
}
