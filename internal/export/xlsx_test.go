package export_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rezonia/invoice-qc/internal/export"
	"github.com/rezonia/invoice-qc/internal/model"
	"github.com/rezonia/invoice-qc/internal/money"
	"github.com/rezonia/invoice-qc/internal/validate"
)

func sampleInvoices() []model.Invoice {
	number := "AUFNR100"
	date := "2024-05-22"
	seller := "Muster Corporation"
	buyer := "Beispiel GmbH"
	currency := "EUR"
	return []model.Invoice{
		{
			InvoiceNumber: &number,
			InvoiceDate:   &date,
			SellerName:    &seller,
			BuyerName:     &buyer,
			Currency:      &currency,
			NetTotal:      money.Ptr(100.0),
			TaxAmount:     money.Ptr(19.0),
			GrossTotal:    money.Ptr(119.0),
			LineItems: []model.LineItem{
				{Description: "Widget", Quantity: 2, UnitPrice: 50, LineTotal: 100},
			},
		},
		{}, // empty record with every field absent
	}
}

func TestWorkbook(t *testing.T) {
	invoices := sampleInvoices()
	report := validate.New().ValidateBatch(invoices)

	f, err := export.Workbook(invoices, report)
	require.NoError(t, err)

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Invoices")
	assert.Contains(t, sheets, "Validation")

	header, err := f.GetCellValue("Invoices", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice Number", header)

	number, err := f.GetCellValue("Invoices", "A2")
	require.NoError(t, err)
	assert.Equal(t, "AUFNR100", number)

	net, err := f.GetCellValue("Invoices", "K2")
	require.NoError(t, err)
	assert.Equal(t, "100.00", net)

	// Absent fields render as empty cells, not "nil".
	empty, err := f.GetCellValue("Invoices", "A3")
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}

func TestWorkbook_WithoutReport(t *testing.T) {
	f, err := export.Workbook(sampleInvoices(), nil)
	require.NoError(t, err)

	assert.NotContains(t, f.GetSheetList(), "Validation")
}

func TestBytes_ProducesReadableWorkbook(t *testing.T) {
	invoices := sampleInvoices()
	report := validate.New().ValidateBatch(invoices)

	data, err := export.Bytes(invoices, report)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	id, err := f.GetCellValue("Validation", "A2")
	require.NoError(t, err)
	assert.Equal(t, "AUFNR100", id)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	invoices := sampleInvoices()
	report := validate.New().ValidateBatch(invoices)

	require.NoError(t, export.WriteFile(path, invoices, report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.GetSheetList(), "Invoices")
}
