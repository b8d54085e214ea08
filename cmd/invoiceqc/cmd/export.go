package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-qc/internal/export"
	"github.com/rezonia/invoice-qc/internal/validate"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [invoices.json]",
	Short: "Export invoices and their validation report as an XLSX workbook",
	Long: `Validate a JSON file of invoice records and write an XLSX workbook
with one sheet of records and one sheet of validation findings.

Examples:
  invoiceqc export invoices.json -o report.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "validation_report.xlsx", "Workbook output file")
}

func runExport(cmd *cobra.Command, args []string) error {
	invoices, err := loadInvoices(args[0])
	if err != nil {
		return err
	}

	engine := validate.New(
		validate.WithTolerance(tolerance),
		validate.WithMaxAmount(maxAmount),
	)
	report := engine.ValidateBatch(invoices)

	if err := export.WriteFile(exportOutput, invoices, report); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	fmt.Printf("Saved %s (%d invoices, %d invalid)\n",
		exportOutput, report.Summary.TotalInvoices, report.Summary.InvalidInvoices)
	return nil
}
