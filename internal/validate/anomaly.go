package validate

import (
	"fmt"

	"github.com/rezonia/invoice-qc/internal/model"
)

// anomalyRules detects repeated invoices within the run and gross totals
// outside the acceptable range.
func (e *Engine) anomalyRules(inv *model.Invoice) []model.ValidationError {
	var errs []model.ValidationError

	key := duplicateKey{
		number: deref(inv.InvoiceNumber),
		seller: deref(inv.SellerName),
		date:   deref(inv.InvoiceDate),
	}
	if _, dup := e.seen[key]; dup {
		// Only the repeat occurrences are flagged; the first sighting
		// stays in the set and is not re-added.
		errs = append(errs, errorf("duplicate_invoice",
			fmt.Sprintf("Duplicate invoice detected: %s", inv.ID())))
	} else {
		e.seen[key] = struct{}{}
	}

	if inv.GrossTotal != nil {
		switch {
		case *inv.GrossTotal <= 0:
			errs = append(errs, errorf("reasonable_amount", "gross_total must be greater than 0"))
		case *inv.GrossTotal > e.maxAmount:
			errs = append(errs, errorf("reasonable_amount",
				fmt.Sprintf("gross_total (%.2f) exceeds maximum (%.2f)",
					*inv.GrossTotal, e.maxAmount)))
		}
	}

	return errs
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
