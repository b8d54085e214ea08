package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rezonia/invoice-qc/internal/model"
	"github.com/rezonia/invoice-qc/internal/money"
)

var (
	// A line item starts with a position number, then a description, then
	// a quantity with the VE (Verpackungseinheit) unit marker.
	lineItemRe = regexp.MustCompile(`^(\d+)\s+(.+?)\s+(\d+)\s+VE`)

	// The line total is the last numeric token on the line.
	trailingAmountRe = regexp.MustCompile(`([\d.,]+)\s*$`)
)

// LineItems scans the text one physical line at a time and reconstructs
// line items. Candidate lines whose amount or quantity cannot be resolved
// are dropped silently; the result may be empty but extraction itself
// never fails. Items spanning multiple physical lines are not
// reconstructed.
func LineItems(text string) []model.LineItem {
	items := []model.LineItem{}

	for _, line := range strings.Split(text, "\n") {
		m := lineItemRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		qty, err := strconv.Atoi(m[3])
		if err != nil || qty <= 0 {
			continue
		}

		am := trailingAmountRe.FindStringSubmatch(line)
		if am == nil {
			continue
		}
		total := money.ParseAmount(am[1])
		if total == nil || *total == 0 {
			continue
		}

		items = append(items, model.LineItem{
			Description: strings.TrimSpace(m[2]),
			Quantity:    float64(qty),
			UnitPrice:   *total / float64(qty),
			LineTotal:   *total,
		})
	}

	return items
}
