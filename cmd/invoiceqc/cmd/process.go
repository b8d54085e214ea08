package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-qc/internal/extract"
	"github.com/rezonia/invoice-qc/internal/model"
	"github.com/rezonia/invoice-qc/internal/validate"
)

var processOutput string

var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Extract and validate documents in one pass",
	Long: `Extract invoice records from document files and immediately validate
them, producing the combined extraction output and validation report.

Examples:
  invoiceqc process orders/
  invoiceqc process orders/*.pdf -o results.json
  invoiceqc process orders/ -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Output file (default: stdout)")
}

// processOutputDoc is the combined output of one process run.
type processOutputDoc struct {
	Invoices []model.Invoice         `json:"invoices"`
	Failures []extract.Failure       `json:"failures"`
	Report   *model.ValidationReport `json:"report"`
}

func runProcess(cmd *cobra.Command, args []string) error {
	docs, err := collectDocuments(args)
	if err != nil {
		return err
	}

	extractor := extract.New(extract.WithLogger(cliLogger()))
	invoices, failures := extractor.ExtractBatch(docs)

	engine := validate.New(
		validate.WithTolerance(tolerance),
		validate.WithMaxAmount(maxAmount),
	)
	report := engine.ValidateBatch(invoices)

	if outputFormat == "table" {
		printProcessTable(invoices, failures, report)
		return nil
	}

	return writeJSON(processOutput, processOutputDoc{
		Invoices: invoices,
		Failures: failures,
		Report:   report,
	})
}

func printProcessTable(invoices []model.Invoice, failures []extract.Failure, report *model.ValidationReport) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tDATE\tSELLER\tBUYER\tNET\tGROSS\tITEMS\tVALID")
	fmt.Fprintln(tw, "------\t----\t------\t-----\t---\t-----\t-----\t-----")

	for i := range invoices {
		inv := &invoices[i]
		valid := "✓"
		if i < len(report.Results) && !report.Results[i].IsValid {
			valid = "✗"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			inv.ID(),
			orDash(inv.InvoiceDate),
			orDash(inv.SellerName),
			orDash(inv.BuyerName),
			amountOrDash(inv.NetTotal),
			amountOrDash(inv.GrossTotal),
			len(inv.LineItems),
			valid,
		)
	}
	tw.Flush()

	for _, f := range failures {
		fmt.Printf("✗ %s: %s\n", f.DocumentID, f.Reason)
	}

	fmt.Printf("\nTotal: %d  Valid: %d  Invalid: %d  Extraction failures: %d\n",
		report.Summary.TotalInvoices,
		report.Summary.ValidInvoices,
		report.Summary.InvalidInvoices,
		len(failures))
}

func orDash(p *string) string {
	if p == nil || *p == "" {
		return "-"
	}
	return *p
}

func amountOrDash(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *p)
}
