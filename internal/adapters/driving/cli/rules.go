package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docmatch/internal/core/domain"
)

var (
	ruleField    string
	rulePattern  string
	rulePriority int
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage extraction rules",
	Long: `Extraction rules are regular expressions with a named group "value".
Rules for a field are tried in ascending priority; the first match wins.`,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List extraction rules",
	Args:  cobra.NoArgs,
	RunE:  runRulesList,
}

var rulesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an extraction rule",
	Long: `Adds a rule and reloads the rule engine. Documents already ingested
keep their fields until their file changes.

Example:
  docmatch rules add --field document_name --priority 0 \
    --pattern '^Proprietary Name:\s*(?P<value>.+)$'`,
	Args: cobra.NoArgs,
	RunE: runRulesAdd,
}

func init() {
	rulesAddCmd.Flags().StringVarP(&ruleField, "field", "f", "", "field the rule extracts")
	rulesAddCmd.Flags().StringVarP(&rulePattern, "pattern", "p", "", "regular expression with a (?P<value>...) group")
	rulesAddCmd.Flags().IntVar(&rulePriority, "priority", 1, "lower priorities are tried first")
	_ = rulesAddCmd.MarkFlagRequired("field")
	_ = rulesAddCmd.MarkFlagRequired("pattern")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	s, err := services(cmd)
	if err != nil {
		return err
	}

	rules, err := s.Rules.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing rules failed: %w", err)
	}
	if len(rules) == 0 {
		cmd.Println("No extraction rules configured.")
		return nil
	}
	for _, r := range rules {
		cmd.Printf("  %4d  %-22s %3d  %s\n", r.ID, r.FieldName, r.Priority, r.Pattern)
	}
	return nil
}

func runRulesAdd(cmd *cobra.Command, _ []string) error {
	s, err := services(cmd)
	if err != nil {
		return err
	}

	id, err := s.Rules.Add(cmd.Context(), domain.ExtractionRule{
		FieldName: ruleField,
		Pattern:   rulePattern,
		Priority:  rulePriority,
	})
	if err != nil {
		return fmt.Errorf("adding rule failed: %w", err)
	}
	cmd.Printf("Added rule %d for %s\n", id, ruleField)
	return nil
}
