// Package export renders extraction and validation output as an XLSX
// workbook for back-office review.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rezonia/invoice-qc/internal/model"
)

const (
	sheetInvoices   = "Invoices"
	sheetValidation = "Validation"
)

var invoiceColumns = []string{
	"Invoice Number",
	"Invoice Date",
	"Due Date",
	"Seller Name",
	"Seller Address",
	"Seller Tax ID",
	"Buyer Name",
	"Buyer Address",
	"Buyer Tax ID",
	"Currency",
	"Net Total",
	"Tax Amount",
	"Gross Total",
	"Payment Terms",
	"External Reference",
	"Line Item Count",
}

var validationColumns = []string{
	"Invoice ID",
	"Valid",
	"Severity",
	"Rule",
	"Message",
}

// Workbook builds an XLSX workbook with one sheet of invoice records and
// one sheet of validation findings plus the run summary. The report may
// be nil when only extraction output is wanted.
func Workbook(invoices []model.Invoice, report *model.ValidationReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetInvoices); err != nil {
		return nil, err
	}

	writeRow(f, sheetInvoices, 1, invoiceColumns)
	for i := range invoices {
		writeRow(f, sheetInvoices, i+2, invoiceRow(&invoices[i]))
	}

	if report != nil {
		if _, err := f.NewSheet(sheetValidation); err != nil {
			return nil, err
		}
		writeValidation(f, report)
	}

	return f, nil
}

// Bytes renders the workbook to a byte slice, for HTTP responses.
func Bytes(invoices []model.Invoice, report *model.ValidationReport) ([]byte, error) {
	f, err := Workbook(invoices, report)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders the workbook to path.
func WriteFile(path string, invoices []model.Invoice, report *model.ValidationReport) error {
	f, err := Workbook(invoices, report)
	if err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeValidation(f *excelize.File, report *model.ValidationReport) {
	writeRow(f, sheetValidation, 1, validationColumns)
	row := 2
	for _, result := range report.Results {
		findings := append(append([]model.ValidationError{}, result.Errors...), result.Warnings...)
		if len(findings) == 0 {
			writeRow(f, sheetValidation, row, []string{result.InvoiceID, "yes", "", "", ""})
			row++
			continue
		}
		for _, finding := range findings {
			valid := "no"
			if result.IsValid {
				valid = "yes"
			}
			writeRow(f, sheetValidation, row, []string{
				result.InvoiceID,
				valid,
				string(finding.Severity),
				finding.Rule,
				finding.Message,
			})
			row++
		}
	}

	row++
	writeRow(f, sheetValidation, row, []string{"Total", fmt.Sprintf("%d", report.Summary.TotalInvoices)})
	writeRow(f, sheetValidation, row+1, []string{"Valid", fmt.Sprintf("%d", report.Summary.ValidInvoices)})
	writeRow(f, sheetValidation, row+2, []string{"Invalid", fmt.Sprintf("%d", report.Summary.InvalidInvoices)})
}

func invoiceRow(inv *model.Invoice) []string {
	return []string{
		strText(inv.InvoiceNumber),
		strText(inv.InvoiceDate),
		strText(inv.DueDate),
		strText(inv.SellerName),
		strText(inv.SellerAddress),
		strText(inv.SellerTaxID),
		strText(inv.BuyerName),
		strText(inv.BuyerAddress),
		strText(inv.BuyerTaxID),
		strText(inv.Currency),
		numText(inv.NetTotal),
		numText(inv.TaxAmount),
		numText(inv.GrossTotal),
		strText(inv.PaymentTerms),
		strText(inv.ExternalReference),
		fmt.Sprintf("%d", len(inv.LineItems)),
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []string) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func strText(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func numText(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *p)
}
