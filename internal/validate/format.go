package validate

import (
	"fmt"

	"github.com/rezonia/invoice-qc/internal/dates"
	"github.com/rezonia/invoice-qc/internal/model"
)

// knownCurrencies is the fixed set of accepted currency codes.
var knownCurrencies = map[string]struct{}{
	"EUR": {}, "USD": {}, "GBP": {}, "INR": {}, "JPY": {},
	"CHF": {}, "CAD": {}, "AUD": {}, "CNY": {}, "SEK": {},
}

// formatRules checks that present values are well-formed. Dates are
// re-checked against the canonical ISO form independently of
// extraction-time normalization, since invoices may arrive as
// caller-supplied JSON with arbitrary literals.
func (e *Engine) formatRules(inv *model.Invoice) []model.ValidationError {
	var errs []model.ValidationError

	if present(inv.InvoiceDate) && !dates.IsISO(*inv.InvoiceDate) {
		errs = append(errs, errorf("date_format",
			fmt.Sprintf("Invalid invoice_date format: %s", *inv.InvoiceDate)))
	}
	if present(inv.DueDate) && !dates.IsISO(*inv.DueDate) {
		errs = append(errs, errorf("date_format",
			fmt.Sprintf("Invalid due_date format: %s", *inv.DueDate)))
	}

	if present(inv.Currency) {
		if _, ok := knownCurrencies[*inv.Currency]; !ok {
			errs = append(errs, errorf("currency_validation",
				fmt.Sprintf("Unknown currency: %s", *inv.Currency)))
		}
	}

	if inv.NetTotal != nil && *inv.NetTotal < 0 {
		errs = append(errs, errorf("numeric_validation", "net_total cannot be negative"))
	}
	if inv.TaxAmount != nil && *inv.TaxAmount < 0 {
		errs = append(errs, errorf("numeric_validation", "tax_amount cannot be negative"))
	}
	if inv.GrossTotal != nil && *inv.GrossTotal < 0 {
		errs = append(errs, errorf("numeric_validation", "gross_total cannot be negative"))
	}

	return errs
}
