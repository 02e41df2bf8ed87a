package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, live watcher and background rescan",
	Long: `Starts the HTTP API. An initial scan of the PDF directory runs first;
afterwards new and modified PDFs are ingested as they appear and the
directory is rescanned periodically. Stops on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := services(cmd)
	if err != nil {
		return err
	}
	if s.Runtime == nil {
		return errors.New("runtime not configured")
	}
	return s.Runtime.Serve(cmd.Context())
}
