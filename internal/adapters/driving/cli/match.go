package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	matchJSON    bool
	matchesLimit int
	matchesSkip  int
	matchesJSON  bool
)

var matchCmd = &cobra.Command{
	Use:   "match [query]",
	Short: "Rank documents against a device description",
	Long: `Searches the current version of every document and lists the best
candidates with a score and a short rationale. The match is stored and
can be confirmed with "docmatch confirm".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMatch,
}

var confirmCmd = &cobra.Command{
	Use:   "confirm [match-id] [document-id]",
	Short: "Record the selected document for a match",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfirm,
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Inspect past matches",
}

var matchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past matches, newest first",
	Args:  cobra.NoArgs,
	RunE:  runMatchesList,
}

func init() {
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(matchCmd)

	rootCmd.AddCommand(confirmCmd)

	matchesListCmd.Flags().IntVarP(&matchesLimit, "limit", "n", 20, "maximum number of matches")
	matchesListCmd.Flags().IntVar(&matchesSkip, "offset", 0, "number of matches to skip")
	matchesListCmd.Flags().BoolVar(&matchesJSON, "json", false, "output results as JSON")
	matchesCmd.AddCommand(matchesListCmd)
	rootCmd.AddCommand(matchesCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	s, err := services(cmd)
	if err != nil {
		return err
	}

	result, err := s.Match.Match(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	if matchJSON {
		return outputJSON(cmd, result)
	}

	cmd.Printf("Match %d: %q\n", result.MatchID, result.QueryText)
	if len(result.Candidates) == 0 {
		cmd.Println("No candidates found.")
		return nil
	}
	cmd.Println()
	for i, c := range result.Candidates {
		cmd.Printf("  [%d] %s (%.4f)\n", i+1, orDash(c.DocumentName), c.Score)
		cmd.Printf("      Document: %d  510(k): %s  Manufacturer: %s\n",
			c.DocumentID, orDash(c.RegistrationNumber), orDash(c.ManufacturerName))
		cmd.Printf("      %s\n", c.Rationale)
		cmd.Println()
	}
	cmd.Printf("Confirm with: docmatch confirm %d <document-id>\n", result.MatchID)
	return nil
}

func runConfirm(cmd *cobra.Command, args []string) error {
	matchID, err := parseID("match-id", args[0])
	if err != nil {
		return err
	}
	documentID, err := parseID("document-id", args[1])
	if err != nil {
		return err
	}

	s, err := services(cmd)
	if err != nil {
		return err
	}

	match, err := s.Match.ConfirmMatch(cmd.Context(), matchID, documentID)
	if err != nil {
		return fmt.Errorf("confirm failed: %w", err)
	}

	cmd.Printf("Match %d: selected document %d\n", matchID, documentID)
	if !match.HasCandidate(documentID) {
		cmd.Printf("Warning: document %d was not among the candidates %v\n", documentID, match.CandidateIDs)
	}
	return nil
}

func runMatchesList(cmd *cobra.Command, _ []string) error {
	s, err := services(cmd)
	if err != nil {
		return err
	}

	items, total, err := s.Match.History(cmd.Context(), matchesLimit, matchesSkip)
	if err != nil {
		return fmt.Errorf("listing matches failed: %w", err)
	}

	if matchesJSON {
		return outputJSON(cmd, map[string]any{"matches": items, "total": total})
	}

	if len(items) == 0 {
		cmd.Println("No matches found.")
		return nil
	}
	for _, m := range items {
		selected := "unconfirmed"
		if m.SelectedDocumentID != nil {
			selected = fmt.Sprintf("-> %d %s (%s)", *m.SelectedDocumentID,
				orDash(m.SelectedDocumentName), orDash(m.SelectedRegistrationNumber))
		}
		cmd.Printf("  %4d  %s  %q  %d candidates  %s\n",
			m.ID, m.CreatedAt.Format("2006-01-02 15:04"), m.QueryText, m.CandidateCount, selected)
	}
	cmd.Printf("Showing %d of %d matches\n", len(items), total)
	return nil
}
