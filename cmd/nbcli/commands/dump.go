package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/my0373/nbcli/internal/constants"
	"github.com/my0373/nbcli/internal/output"
	"github.com/my0373/nbcli/pkg/netbox"
)

// NewDumpCommand creates the dump command
func NewDumpCommand() *cobra.Command {
	var includeAll bool

	cmd := &cobra.Command{
		Use:   "dump FILENAME",
		Short: "Dump all API objects to a file",
		Long: `Walk the whole catalog and write every endpoint's contents to a file.

The dump is YAML by default (or JSON with --output json). A failing endpoint
becomes an {error, status} entry instead of aborting the dump. The noisy
core/jobs and core/object-changes endpoints are skipped unless --include-all
is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := CurrentSession()
			if err != nil {
				return err
			}

			dumpFormat := session.Format
			if dumpFormat == output.FormatPretty {
				dumpFormat = output.FormatYAML
			}

			if dumpFormat != output.FormatJSON && dumpFormat != output.FormatYAML {
				return netbox.ErrDumpFormatUnsupported
			}

			catalog, err := session.Client()
			if err != nil {
				return err
			}

			payload, err := catalog.DumpPayload(context.Background(), includeAll)
			if err != nil {
				return err
			}

			data, err := output.Serialize(payload, dumpFormat)
			if err != nil {
				return err
			}

			if err := os.WriteFile(args[0], data, constants.DumpFilePerm); err != nil {
				return fmt.Errorf("writing dump file: %w", err)
			}

			fmt.Printf("Wrote %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVar(&includeAll, "include-all", false, "include jobs and object-changes in the dump")

	return cmd
}
