package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-qc/internal/extract"
	"github.com/rezonia/invoice-qc/internal/pdftext"
)

var (
	extractOutput   string
	extractSeparate bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract invoice records from document files",
	Long: `Extract structured invoice records from document text.

Text files are consumed as-is; PDF files go through best-effort page
text extraction first. Documents are processed in lexicographic order
and a document that cannot be extracted is reported without aborting
the batch.

Examples:
  invoiceqc extract orders/ -o invoices.json
  invoiceqc extract order1.txt order2.pdf
  invoiceqc extract orders/ -o invoices.json --separate`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractSeparate, "separate", false, "Additionally save each invoice as its own JSON file")
}

func runExtract(cmd *cobra.Command, args []string) error {
	docs, err := collectDocuments(args)
	if err != nil {
		return err
	}

	extractor := extract.New(extract.WithLogger(cliLogger()))
	invoices, failures := extractor.ExtractBatch(docs)

	printVerbose("Extracted %d invoices (%d failures)\n", len(invoices), len(failures))
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "✗ %s: %s\n", f.DocumentID, f.Reason)
	}

	if extractSeparate {
		dir := "invoices_json"
		if extractOutput != "" {
			dir = filepath.Join(filepath.Dir(extractOutput), "invoices_json")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		for i := range invoices {
			name := filepath.Join(dir, invoices[i].ID()+".json")
			if err := writeJSON(name, invoices[i]); err != nil {
				return err
			}
			printVerbose("Saved: %s\n", name)
		}
	}

	return writeJSON(extractOutput, invoices)
}

// collectDocuments reads the given files into extraction inputs keyed by
// file path.
func collectDocuments(args []string) ([]extract.Document, error) {
	files, err := collectFiles(args)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to extract")
	}

	pdf := pdftext.NewExtractor()
	docs := make([]extract.Document, 0, len(files))

	for _, file := range files {
		printVerbose("Reading: %s\n", file)

		var text string
		if strings.EqualFold(filepath.Ext(file), ".pdf") {
			f, err := os.Open(file)
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %w", file, err)
			}
			text, err = pdf.ExtractText(f)
			f.Close()
			if err != nil {
				// Surface as a batch failure, not a hard stop.
				docs = append(docs, extract.Document{ID: file, Text: ""})
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", file, err)
				continue
			}
		} else {
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", file, err)
			}
			text = string(data)
		}

		docs = append(docs, extract.Document{ID: file, Text: text})
	}

	return docs, nil
}

func cliLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
