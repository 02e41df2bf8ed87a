package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

var ingestJSON bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [pdf...]",
	Short: "Ingest PDFs into the document store",
	Long: `Ingests the given PDF files. Without arguments every PDF under the
configured directory is scanned. Unchanged files are skipped; changed
files are stored as a new document version.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	s, err := services(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if len(args) == 0 {
		summary, err := s.Ingest.IngestAll(ctx)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		if ingestJSON {
			return outputJSON(cmd, summary)
		}
		cmd.Printf("Scanned %d PDFs in %s: %d ingested, %d skipped, %d failed\n",
			summary.Scanned, summary.Root, summary.Ingested, summary.Skipped, summary.Failed)
		for _, f := range summary.Failures {
			cmd.Printf("  FAILED %s: %s\n", f.Path, f.Error)
		}
		return nil
	}

	results := make([]domain.IngestResult, 0, len(args))
	var failed int
	for _, path := range args {
		result, err := s.Ingest.IngestFile(ctx, path)
		if err != nil {
			failed++
			cmd.PrintErrf("FAILED %s: %v\n", path, err)
			continue
		}
		results = append(results, result)
	}

	if ingestJSON {
		if err := outputJSON(cmd, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			cmd.Printf("%-8s %s (document %d, version %d)\n", r.Outcome, r.Path, r.DocumentID, r.Version)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to ingest", failed, len(args))
	}
	return nil
}
