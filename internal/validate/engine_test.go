package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-qc/internal/model"
	"github.com/rezonia/invoice-qc/internal/money"
	"github.com/rezonia/invoice-qc/internal/validate"
)

func str(s string) *string {
	return &s
}

// validInvoice builds an invoice that passes every rule family.
func validInvoice() model.Invoice {
	return model.Invoice{
		InvoiceNumber: str("AUFNR100"),
		InvoiceDate:   str("2024-05-22"),
		SellerName:    str("Muster Corporation"),
		SellerAddress: str("Hauptstraße 5, 10115 Berlin"),
		BuyerName:     str("Beispiel GmbH"),
		BuyerTaxID:    str("778899"),
		Currency:      str("EUR"),
		NetTotal:      money.Ptr(100.0),
		TaxAmount:     money.Ptr(19.0),
		GrossTotal:    money.Ptr(119.0),
		LineItems: []model.LineItem{
			{Description: "Widget", Quantity: 2, UnitPrice: 30, LineTotal: 60},
			{Description: "Gadget", Quantity: 1, UnitPrice: 40, LineTotal: 40},
		},
	}
}

func rules(errs []model.ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Rule)
	}
	return out
}

func countRule(errs []model.ValidationError, rule string) int {
	n := 0
	for _, e := range errs {
		if e.Rule == rule {
			n++
		}
	}
	return n
}

func TestValidateOne_ValidInvoice(t *testing.T) {
	inv := validInvoice()
	result := validate.New().ValidateOne(&inv)

	assert.True(t, result.IsValid)
	assert.Equal(t, "AUFNR100", result.InvoiceID)
	assert.Empty(t, result.Errors)
	assert.NotNil(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.NotNil(t, result.Warnings)
}

func TestValidateOne_MissingRequiredFields(t *testing.T) {
	inv := validInvoice()
	inv.InvoiceDate = nil
	inv.SellerName = nil
	inv.BuyerName = nil

	result := validate.New().ValidateOne(&inv)

	assert.False(t, result.IsValid)
	assert.Equal(t, 3, countRule(result.Errors, "required_field"))
	// An absent seller or buyer name must not also trip the party rule.
	assert.Equal(t, 0, countRule(result.Errors, "party_information"))
}

func TestValidateOne_BlankFieldIsMissing(t *testing.T) {
	inv := validInvoice()
	inv.InvoiceNumber = str("   ")

	result := validate.New().ValidateOne(&inv)

	assert.False(t, result.IsValid)
	assert.Contains(t, rules(result.Errors), "required_field")
}

func TestValidateOne_PartyInformation(t *testing.T) {
	inv := validInvoice()
	inv.SellerAddress = nil
	inv.SellerTaxID = nil

	result := validate.New().ValidateOne(&inv)

	require.Equal(t, 1, countRule(result.Errors, "party_information"))
	assert.Equal(t, "Seller must have address or tax ID", result.Errors[0].Message)

	// A tax id alone restores reachability.
	inv.SellerTaxID = str("445566")
	result = validate.New().ValidateOne(&inv)
	assert.True(t, result.IsValid)
}

func TestValidateOne_MissingFinancialFields(t *testing.T) {
	inv := validInvoice()
	inv.NetTotal = nil
	inv.TaxAmount = nil
	inv.GrossTotal = nil
	inv.LineItems = nil

	result := validate.New().ValidateOne(&inv)

	assert.Equal(t, 3, countRule(result.Errors, "financial_field"))
}

func TestValidateOne_CurrencyRequired(t *testing.T) {
	inv := validInvoice()
	inv.Currency = nil

	result := validate.New().ValidateOne(&inv)
	assert.Equal(t, 1, countRule(result.Errors, "currency_required"))
}

func TestValidateOne_DateFormat(t *testing.T) {
	inv := validInvoice()
	inv.InvoiceDate = str("22.05.2024")

	result := validate.New().ValidateOne(&inv)

	require.Equal(t, 1, countRule(result.Errors, "date_format"))
	assert.Contains(t, result.Errors[0].Message, "22.05.2024")
}

func TestValidateOne_UnknownCurrency(t *testing.T) {
	inv := validInvoice()
	inv.Currency = str("XXX")

	result := validate.New().ValidateOne(&inv)

	require.Equal(t, 1, countRule(result.Errors, "currency_validation"))
	assert.Equal(t, "Unknown currency: XXX", result.Errors[0].Message)
}

func TestValidateOne_NegativeAmounts(t *testing.T) {
	inv := validInvoice()
	inv.NetTotal = money.Ptr(-1.0)
	inv.LineItems = nil

	result := validate.New().ValidateOne(&inv)
	assert.Equal(t, 1, countRule(result.Errors, "numeric_validation"))
}

func TestValidateOne_LineItemsSum(t *testing.T) {
	inv := validInvoice()
	inv.LineItems = []model.LineItem{
		{Description: "Widget", Quantity: 1, UnitPrice: 70, LineTotal: 70},
	}

	result := validate.New().ValidateOne(&inv)

	require.Equal(t, 1, countRule(result.Errors, "line_items_sum"))
	assert.Equal(t,
		"Line items sum (70.00) doesn't match net_total (100.00)",
		result.Errors[0].Message)
}

func TestValidateOne_LineItemsSumWithinTolerance(t *testing.T) {
	inv := validInvoice()
	inv.LineItems = []model.LineItem{
		{Description: "Widget", Quantity: 1, UnitPrice: 99.99, LineTotal: 99.99},
	}

	result := validate.New().ValidateOne(&inv)
	assert.Equal(t, 0, countRule(result.Errors, "line_items_sum"))
}

func TestValidateOne_LineItemsSumSkippedWithoutNetTotal(t *testing.T) {
	inv := validInvoice()
	inv.NetTotal = nil

	result := validate.New().ValidateOne(&inv)
	assert.Equal(t, 0, countRule(result.Errors, "line_items_sum"))
}

func TestValidateOne_TaxCalculation(t *testing.T) {
	inv := validInvoice()
	inv.GrossTotal = money.Ptr(130.0)

	result := validate.New().ValidateOne(&inv)

	require.Equal(t, 1, countRule(result.Errors, "tax_calculation"))
	assert.Equal(t,
		"net_total + tax_amount (119.00) doesn't match gross_total (130.00)",
		result.Errors[0].Message)
}

func TestValidateOne_DueDateLogic(t *testing.T) {
	inv := validInvoice()
	inv.DueDate = str("2024-05-01")

	result := validate.New().ValidateOne(&inv)

	require.Equal(t, 1, countRule(result.Errors, "due_date_logic"))
	assert.Equal(t,
		"due_date (2024-05-01) is before invoice_date (2024-05-22)",
		result.Errors[0].Message)

	// Same day is acceptable.
	inv.DueDate = str("2024-05-22")
	result = validate.New().ValidateOne(&inv)
	assert.Equal(t, 0, countRule(result.Errors, "due_date_logic"))
}

func TestValidateOne_MalformedDueDateSkipsOrderingCheck(t *testing.T) {
	inv := validInvoice()
	inv.DueDate = str("01.05.2024")

	result := validate.New().ValidateOne(&inv)

	assert.Equal(t, 1, countRule(result.Errors, "date_format"))
	assert.Equal(t, 0, countRule(result.Errors, "due_date_logic"))
}

func TestValidateOne_ReasonableAmount(t *testing.T) {
	inv := validInvoice()
	inv.LineItems = nil
	inv.NetTotal = nil
	inv.TaxAmount = nil

	inv.GrossTotal = money.Ptr(0.0)
	result := validate.New().ValidateOne(&inv)
	require.Equal(t, 1, countRule(result.Errors, "reasonable_amount"))

	inv.GrossTotal = money.Ptr(2_000_000.0)
	result = validate.New().ValidateOne(&inv)
	require.Equal(t, 1, countRule(result.Errors, "reasonable_amount"))

	inv.GrossTotal = money.Ptr(999_999.0)
	result = validate.New().ValidateOne(&inv)
	assert.Equal(t, 0, countRule(result.Errors, "reasonable_amount"))
}

func TestValidateOne_MaxAmountOverride(t *testing.T) {
	inv := validInvoice()

	result := validate.New(validate.WithMaxAmount(100)).ValidateOne(&inv)
	assert.Equal(t, 1, countRule(result.Errors, "reasonable_amount"))
}

func TestValidateOne_ToleranceOverride(t *testing.T) {
	inv := validInvoice()
	inv.LineItems = []model.LineItem{
		{Description: "Widget", Quantity: 1, UnitPrice: 99.0, LineTotal: 99.0},
	}

	strict := validate.New().ValidateOne(&inv)
	assert.Equal(t, 1, countRule(strict.Errors, "line_items_sum"))

	loose := validate.New(validate.WithTolerance(1.5)).ValidateOne(&inv)
	assert.Equal(t, 0, countRule(loose.Errors, "line_items_sum"))
}

func TestValidateBatch_DuplicateDetection(t *testing.T) {
	first := validInvoice()
	second := validInvoice()
	other := validInvoice()
	other.InvoiceNumber = str("AUFNR200")

	report := validate.New().ValidateBatch([]model.Invoice{first, second, other})

	require.Len(t, report.Results, 3)
	assert.True(t, report.Results[0].IsValid, "first sighting is not a duplicate")
	assert.False(t, report.Results[1].IsValid)
	require.Equal(t, 1, countRule(report.Results[1].Errors, "duplicate_invoice"))
	assert.Equal(t, "Duplicate invoice detected: AUFNR100", report.Results[1].Errors[0].Message)
	assert.True(t, report.Results[2].IsValid, "different number is not a duplicate")
}

func TestValidateBatch_DuplicateStateDoesNotSpanEngines(t *testing.T) {
	inv := validInvoice()

	report1 := validate.New().ValidateBatch([]model.Invoice{inv})
	report2 := validate.New().ValidateBatch([]model.Invoice{inv})

	assert.True(t, report1.Results[0].IsValid)
	assert.True(t, report2.Results[0].IsValid)
}

func TestValidateBatch_TripleOccurrenceFlagsTwoDuplicates(t *testing.T) {
	inv := validInvoice()

	report := validate.New().ValidateBatch([]model.Invoice{inv, inv, inv})

	assert.True(t, report.Results[0].IsValid)
	assert.Equal(t, 1, countRule(report.Results[1].Errors, "duplicate_invoice"))
	assert.Equal(t, 1, countRule(report.Results[2].Errors, "duplicate_invoice"))
}

func TestValidateBatch_SummaryAndOrder(t *testing.T) {
	good := validInvoice()
	bad := validInvoice()
	bad.InvoiceNumber = str("AUFNR200")
	bad.Currency = str("XXX")

	report := validate.New().ValidateBatch([]model.Invoice{good, bad})

	require.Len(t, report.Results, 2)
	assert.Equal(t, "AUFNR100", report.Results[0].InvoiceID)
	assert.Equal(t, "AUFNR200", report.Results[1].InvoiceID)

	assert.Equal(t, 2, report.Summary.TotalInvoices)
	assert.Equal(t, 1, report.Summary.ValidInvoices)
	assert.Equal(t, 1, report.Summary.InvalidInvoices)
	assert.Equal(t, 1, report.Summary.ErrorCounts["currency_validation: Unknown currency: XXX"])
}

func TestValidateBatch_FreshEnginesAreDeterministic(t *testing.T) {
	invoices := []model.Invoice{validInvoice(), validInvoice()}

	report1 := validate.New().ValidateBatch(invoices)
	report2 := validate.New().ValidateBatch(invoices)

	assert.Equal(t, report1, report2)
}

func TestValidateBatch_EmptyInput(t *testing.T) {
	report := validate.New().ValidateBatch(nil)

	assert.Equal(t, 0, report.Summary.TotalInvoices)
	assert.NotNil(t, report.Results)
	assert.Empty(t, report.Results)
}

func TestValidateOne_UnknownInvoiceID(t *testing.T) {
	inv := model.Invoice{}

	result := validate.New().ValidateOne(&inv)

	assert.Equal(t, "UNKNOWN", result.InvoiceID)
	assert.False(t, result.IsValid)
}
