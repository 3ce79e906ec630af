// Package cli wires configuration, credentials and the ingestion pipeline into the
// single raw-ingest command.
package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRootCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "raw-ingest",
		Short: "Land NYC taxi trips into the raw BigQuery layer",
		Long: `Land a fixed slice of the public NYC yellow taxi trips into a raw BigQuery table.

The command ensures the raw dataset exists, rebuilds the raw table from the
source with sync metadata columns, then prints a verification summary.
Credentials come from GOOGLE_APPLICATION_CREDENTIALS, then
~/.dbt/bigquery-keyfile.json, then Application Default Credentials.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, version)
		},
	}
}

// Execute runs the root command. The error, if any, has already been printed.
func Execute(version string) error {
	return execute(newRootCmd(version))
}

func execute(cmd *cobra.Command) error {
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
		return err
	}

	return nil
}
