package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

var (
	auditType     string
	auditMatch    int64
	auditDocument int64
	auditLimit    int
	auditJSON     bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the audit trail",
	Long: `Lists audit events in the order they were recorded. Events can be
filtered by type (INGEST, SEARCH, SELECT, REPORT_GENERATED), match or document.`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringVarP(&auditType, "type", "t", "", "event type")
	auditCmd.Flags().Int64Var(&auditMatch, "match", 0, "only events for this match")
	auditCmd.Flags().Int64Var(&auditDocument, "document", 0, "only events for this document")
	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", 0, "maximum number of events (0 = all)")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, _ []string) error {
	filter := domain.AuditFilter{Limit: auditLimit}
	if auditType != "" {
		filter.Type = domain.AuditEventType(strings.ToUpper(auditType))
		if !filter.Type.Valid() {
			return fmt.Errorf("unknown event type %q", auditType)
		}
	}
	if auditMatch > 0 {
		filter.MatchID = &auditMatch
	}
	if auditDocument > 0 {
		filter.DocumentID = &auditDocument
	}

	s, err := services(cmd)
	if err != nil {
		return err
	}

	events, err := s.Audit.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("listing audit events failed: %w", err)
	}

	if auditJSON {
		return outputJSON(cmd, events)
	}

	if len(events) == 0 {
		cmd.Println("No audit events found.")
		return nil
	}
	for _, ev := range events {
		payload, err := json.Marshal(ev.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		cmd.Printf("  %5d  %s  %-16s doc=%s match=%s  %s\n",
			ev.ID, ev.CreatedAt.Format("2006-01-02 15:04:05"), ev.Type,
			optionalID(ev.DocumentID), optionalID(ev.MatchID), payload)
	}
	return nil
}

func optionalID(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
