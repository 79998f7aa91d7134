package commands

import (
	"context"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/my0373/nbcli/pkg/netbox"
)

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	var (
		selectPath string
		allFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "show [TARGET]",
		Short: "Show options for a given verb",
		Long: `Show what the catalog offers: verbs, apps, endpoints, or any search
term matched against app/endpoint paths.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := CurrentSession()
			if err != nil {
				return err
			}

			target := ""
			if len(args) > 0 {
				target = args[0]
			}

			if allFlag {
				target = "endpoints"
			}

			if target == "" {
				return netbox.ErrShowTargetRequired
			}

			catalog, err := session.Client()
			if err != nil {
				return err
			}

			payload, err := catalog.ShowPayload(context.Background(), target)
			if err != nil {
				return err
			}

			if selectPath == "" && !session.Format.Machine() && renderShowTable(payload) {
				return nil
			}

			return session.RenderSelected(payload, selectPath)
		},
	}

	cmd.Flags().BoolVar(&allFlag, "all", false, "show all endpoints (equivalent to 'show endpoints')")
	cmd.Flags().StringVar(&selectPath, "path", "", "select a value using a dotted path (e.g. .apps.0)")

	return cmd
}

// renderShowTable renders a show payload as a table when it has one of the
// known single-list shapes. It returns false to fall through to the generic
// formatter.
func renderShowTable(payload any) bool {
	object, ok := payload.(map[string]any)
	if !ok || len(object) != 1 {
		return false
	}

	for _, column := range []string{"verbs", "apps", "endpoints"} {
		entries, ok := object[column].([]any)
		if !ok {
			continue
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header(strings.ToUpper(column[:1]) + column[1:])

		for _, entry := range entries {
			if name, ok := entry.(string); ok {
				_ = table.Append(name)
			}
		}

		_ = table.Render()

		return true
	}

	return false
}
