package validate

import (
	"fmt"

	"github.com/rezonia/invoice-qc/internal/dates"
	"github.com/rezonia/invoice-qc/internal/model"
	"github.com/rezonia/invoice-qc/internal/money"
)

// businessRules checks cross-field arithmetic consistency within the
// engine's tolerance and the date ordering between invoice and due date.
func (e *Engine) businessRules(inv *model.Invoice) []model.ValidationError {
	var errs []model.ValidationError

	if len(inv.LineItems) > 0 && inv.NetTotal != nil {
		totals := make([]float64, 0, len(inv.LineItems))
		for _, item := range inv.LineItems {
			totals = append(totals, item.LineTotal)
		}
		sum := money.Sum(totals)
		if !money.WithinTolerance(&sum, inv.NetTotal, e.tolerance) {
			errs = append(errs, errorf("line_items_sum",
				fmt.Sprintf("Line items sum (%.2f) doesn't match net_total (%.2f)",
					sum, *inv.NetTotal)))
		}
	}

	if inv.NetTotal != nil && inv.TaxAmount != nil && inv.GrossTotal != nil {
		expected := money.Sum([]float64{*inv.NetTotal, *inv.TaxAmount})
		if !money.WithinTolerance(&expected, inv.GrossTotal, e.tolerance) {
			errs = append(errs, errorf("tax_calculation",
				fmt.Sprintf("net_total + tax_amount (%.2f) doesn't match gross_total (%.2f)",
					expected, *inv.GrossTotal)))
		}
	}

	// Malformed dates are skipped here; the format family already
	// reported them.
	if present(inv.InvoiceDate) && present(inv.DueDate) {
		invDate, err1 := dates.ParseISO(*inv.InvoiceDate)
		dueDate, err2 := dates.ParseISO(*inv.DueDate)
		if err1 == nil && err2 == nil && dueDate.Before(invDate) {
			errs = append(errs, errorf("due_date_logic",
				fmt.Sprintf("due_date (%s) is before invoice_date (%s)",
					*inv.DueDate, *inv.InvoiceDate)))
		}
	}

	return errs
}
