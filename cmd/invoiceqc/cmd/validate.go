package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-qc/internal/model"
	"github.com/rezonia/invoice-qc/internal/validate"
)

var validateReport string

var validateCmd = &cobra.Command{
	Use:   "validate [invoices.json]",
	Short: "Validate extracted invoice records",
	Long: `Validate a JSON file of extracted invoice records against the rule set.

Rule families:
  - Completeness: required fields, party reachability, money fields, currency
  - Format: ISO dates, known currency codes, non-negative amounts
  - Business: line-item sums, net + tax = gross, due-date ordering
  - Anomaly: duplicates within the batch, gross total bounds

Examples:
  invoiceqc validate invoices.json
  invoiceqc validate invoices.json --report report.json
  invoiceqc validate invoices.json --tolerance 0.05 -f table`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateReport, "report", "r", "", "Report output file (default: stdout)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	invoices, err := loadInvoices(args[0])
	if err != nil {
		return err
	}

	engine := validate.New(
		validate.WithTolerance(tolerance),
		validate.WithMaxAmount(maxAmount),
	)
	report := engine.ValidateBatch(invoices)

	if outputFormat == "table" {
		printReportTable(report)
		if report.Summary.InvalidInvoices > 0 {
			return fmt.Errorf("validation failed for %d of %d invoices",
				report.Summary.InvalidInvoices, report.Summary.TotalInvoices)
		}
		return nil
	}

	if err := writeJSON(validateReport, report); err != nil {
		return err
	}
	if report.Summary.InvalidInvoices > 0 {
		return fmt.Errorf("validation failed for %d of %d invoices",
			report.Summary.InvalidInvoices, report.Summary.TotalInvoices)
	}
	return nil
}

func printReportTable(report *model.ValidationReport) {
	for _, r := range report.Results {
		if r.IsValid {
			fmt.Printf("✓ %s: VALID\n", r.InvoiceID)
		} else {
			fmt.Printf("✗ %s: INVALID\n", r.InvoiceID)
			for _, e := range r.Errors {
				fmt.Printf("  - [%s] %s\n", e.Rule, e.Message)
			}
		}
		for _, w := range r.Warnings {
			fmt.Printf("  ⚠ [%s] %s\n", w.Rule, w.Message)
		}
	}

	fmt.Printf("\nTotal: %d  Valid: %d  Invalid: %d\n",
		report.Summary.TotalInvoices,
		report.Summary.ValidInvoices,
		report.Summary.InvalidInvoices)

	if len(report.Summary.ErrorCounts) > 0 {
		fmt.Println("\nMost frequent errors:")
		keys := make([]string, 0, len(report.Summary.ErrorCounts))
		for k := range report.Summary.ErrorCounts {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			ci, cj := report.Summary.ErrorCounts[keys[i]], report.Summary.ErrorCounts[keys[j]]
			if ci != cj {
				return ci > cj
			}
			return keys[i] < keys[j]
		})
		for _, k := range keys {
			fmt.Printf("  %4d × %s\n", report.Summary.ErrorCounts[k], k)
		}
	}
}
