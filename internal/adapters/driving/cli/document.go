package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	documentsLimit int
	documentsSkip  int
	documentsJSON  bool
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Inspect ingested documents",
	Long:  `List the current version of each ingested document or view one in detail.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List current documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document's extracted fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsGet,
}

func init() {
	documentsListCmd.Flags().IntVarP(&documentsLimit, "limit", "n", 20, "maximum number of documents")
	documentsListCmd.Flags().IntVar(&documentsSkip, "offset", 0, "number of documents to skip")
	documentsListCmd.Flags().BoolVar(&documentsJSON, "json", false, "output results as JSON")
	documentsGetCmd.Flags().BoolVar(&documentsJSON, "json", false, "output results as JSON")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsGetCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	s, err := services(cmd)
	if err != nil {
		return err
	}

	docs, total, err := s.Document.List(cmd.Context(), documentsLimit, documentsSkip)
	if err != nil {
		return fmt.Errorf("listing documents failed: %w", err)
	}

	if documentsJSON {
		return outputJSON(cmd, map[string]any{"documents": docs, "total": total})
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}
	for _, d := range docs {
		cmd.Printf("  %4d  v%-2d %-8s %s\n", d.ID, d.Version, orDash(d.RegistrationNumber), orDash(d.DocumentName))
		cmd.Printf("        %s | %s\n", orDash(d.ManufacturerName), d.FilePath)
	}
	cmd.Printf("Showing %d of %d documents\n", len(docs), total)
	return nil
}

func runDocumentsGet(cmd *cobra.Command, args []string) error {
	id, err := parseID("doc-id", args[0])
	if err != nil {
		return err
	}

	s, err := services(cmd)
	if err != nil {
		return err
	}

	doc, err := s.Document.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("getting document failed: %w", err)
	}

	if documentsJSON {
		return outputJSON(cmd, doc)
	}

	f := doc.Fields
	cmd.Printf("Document %d (version %d)\n", doc.ID, doc.Version)
	cmd.Printf("  File:           %s\n", doc.FilePath)
	cmd.Printf("  Name:           %s\n", orDash(f.DocumentName))
	cmd.Printf("  Type:           %s\n", orDash(f.DocumentType))
	cmd.Printf("  510(k):         %s\n", orDash(f.RegistrationNumber))
	cmd.Printf("  Regulation:     %s %s\n", orDash(f.RegulationNumber), f.RegulationName)
	cmd.Printf("  Class:          %s\n", orDash(f.ClassificationCode))
	cmd.Printf("  Product codes:  %s\n", orDash(f.ProductCodes))
	cmd.Printf("  Manufacturer:   %s, %s\n", orDash(f.ManufacturerName), orDash(f.ManufacturerAddress))
	cmd.Println()
	cmd.Println("Indications for use:")
	cmd.Printf("  %s\n", orDash(f.IndicationsForUse))
	cmd.Println()
	cmd.Println("Excerpt:")
	cmd.Println(doc.FullTextExcerpt)
	return nil
}
