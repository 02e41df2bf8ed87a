package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report [match-id]",
	Short: "Generate the report for a confirmed match",
	Long: `Renders the Markdown report for a match whose document has been
confirmed. The report is printed, or written to the file given with
--output, and archived according to the configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write the report to this file")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	matchID, err := parseID("match-id", args[0])
	if err != nil {
		return err
	}

	s, err := services(cmd)
	if err != nil {
		return err
	}

	report, err := s.Report.GenerateReport(cmd.Context(), matchID)
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}

	if reportOutput == "" {
		cmd.Print(report.Content)
	} else {
		if err := os.WriteFile(reportOutput, []byte(report.Content), 0600); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		cmd.Printf("Report written to %s\n", reportOutput)
	}
	if report.Location != "" {
		cmd.PrintErrf("Archived at %s\n", report.Location)
	}
	return nil
}
