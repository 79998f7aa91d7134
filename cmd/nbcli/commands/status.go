package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	var selectPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Fetch /api/status/",
		Long:  "Fetch the NetBox status endpoint and show the reported version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := CurrentSession()
			if err != nil {
				return err
			}

			catalog, err := session.Client()
			if err != nil {
				return err
			}

			payload, err := catalog.Status(context.Background())
			if err != nil {
				return err
			}

			return renderStatus(session, payload, selectPath)
		},
	}

	cmd.Flags().StringVar(&selectPath, "path", "", "select a value using a dotted path (e.g. .netbox-version)")

	return cmd
}
