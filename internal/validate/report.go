package validate

import "github.com/rezonia/invoice-qc/internal/model"

// Summarize folds per-invoice results into run statistics. It is a pure
// function: counts are exact, and no iteration order is promised on the
// frequency maps.
func Summarize(results []model.InvoiceValidationResult) model.ValidationSummary {
	summary := model.ValidationSummary{
		TotalInvoices: len(results),
		ErrorCounts:   map[string]int{},
		WarningCounts: map[string]int{},
	}

	for _, result := range results {
		if result.IsValid {
			summary.ValidInvoices++
		} else {
			summary.InvalidInvoices++
		}
		for _, e := range result.Errors {
			summary.ErrorCounts[e.Rule+": "+e.Message]++
		}
		for _, w := range result.Warnings {
			summary.WarningCounts[w.Rule+": "+w.Message]++
		}
	}

	return summary
}
