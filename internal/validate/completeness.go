package validate

import (
	"fmt"
	"strings"

	"github.com/rezonia/invoice-qc/internal/model"
)

// completenessRules checks that the fields a payable invoice cannot do
// without are present and non-blank. Each absence is its own finding.
func (e *Engine) completenessRules(inv *model.Invoice) []model.ValidationError {
	var errs []model.ValidationError

	required := []struct {
		name  string
		value *string
	}{
		{"invoice_number", inv.InvoiceNumber},
		{"invoice_date", inv.InvoiceDate},
		{"seller_name", inv.SellerName},
		{"buyer_name", inv.BuyerName},
	}
	for _, field := range required {
		if field.value == nil || strings.TrimSpace(*field.value) == "" {
			errs = append(errs, errorf("required_field",
				fmt.Sprintf("Missing required field: %s", field.name)))
		}
	}

	// A named party must be reachable: address or tax id.
	if present(inv.SellerName) && !present(inv.SellerAddress) && !present(inv.SellerTaxID) {
		errs = append(errs, errorf("party_information", "Seller must have address or tax ID"))
	}
	if present(inv.BuyerName) && !present(inv.BuyerAddress) && !present(inv.BuyerTaxID) {
		errs = append(errs, errorf("party_information", "Buyer must have address or tax ID"))
	}

	if inv.NetTotal == nil {
		errs = append(errs, errorf("financial_field", "Missing net_total"))
	}
	if inv.TaxAmount == nil {
		errs = append(errs, errorf("financial_field", "Missing tax_amount"))
	}
	if inv.GrossTotal == nil {
		errs = append(errs, errorf("financial_field", "Missing gross_total"))
	}

	if inv.Currency == nil || strings.TrimSpace(*inv.Currency) == "" {
		errs = append(errs, errorf("currency_required", "Currency must be specified"))
	}

	return errs
}
