// Package model defines the invoice record and validation report types
// shared by the extraction and validation engines.
//
// Extraction is best effort, so every field that may be missing from a
// source document is a pointer. A nil pointer means "absent" and is
// reported by the validation engine, never papered over with a zero value.
package model

import "encoding/json"

// LineItem is one billed position on an invoice. Immutable once built.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// Invoice is the structured representation of one billing document.
// Built once by the extractor and never mutated afterwards.
type Invoice struct {
	InvoiceNumber     *string    `json:"invoice_number"`
	InvoiceDate       *string    `json:"invoice_date"`
	DueDate           *string    `json:"due_date"`
	SellerName        *string    `json:"seller_name"`
	SellerAddress     *string    `json:"seller_address"`
	SellerTaxID       *string    `json:"seller_tax_id"`
	BuyerName         *string    `json:"buyer_name"`
	BuyerAddress      *string    `json:"buyer_address"`
	BuyerTaxID        *string    `json:"buyer_tax_id"`
	Currency          *string    `json:"currency"`
	NetTotal          *float64   `json:"net_total"`
	TaxAmount         *float64   `json:"tax_amount"`
	GrossTotal        *float64   `json:"gross_total"`
	PaymentTerms      *string    `json:"payment_terms"`
	ExternalReference *string    `json:"external_reference"`
	LineItems         []LineItem `json:"line_items"`
}

// MarshalJSON guarantees line_items serializes as [] rather than null
// for invoices decoded from caller-supplied JSON with the field omitted.
func (inv Invoice) MarshalJSON() ([]byte, error) {
	type alias Invoice
	a := alias(inv)
	if a.LineItems == nil {
		a.LineItems = []LineItem{}
	}
	return json.Marshal(a)
}

// ID returns the invoice number, or "UNKNOWN" when it was not extracted.
func (inv *Invoice) ID() string {
	if inv.InvoiceNumber == nil || *inv.InvoiceNumber == "" {
		return "UNKNOWN"
	}
	return *inv.InvoiceNumber
}

// Severity of a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationError is one rule failure on one invoice. It is a structured
// outcome of rule evaluation, not a Go error.
type ValidationError struct {
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// InvoiceValidationResult holds all findings for one invoice.
// IsValid is true iff Errors is empty.
type InvoiceValidationResult struct {
	InvoiceID string            `json:"invoice_id"`
	IsValid   bool              `json:"is_valid"`
	Errors    []ValidationError `json:"errors"`
	Warnings  []ValidationError `json:"warnings"`
}

// ValidationSummary aggregates a batch of results. Counts are keyed
// "<rule>: <message>".
type ValidationSummary struct {
	TotalInvoices   int            `json:"total_invoices"`
	ValidInvoices   int            `json:"valid_invoices"`
	InvalidInvoices int            `json:"invalid_invoices"`
	ErrorCounts     map[string]int `json:"error_counts"`
	WarningCounts   map[string]int `json:"warning_counts"`
}

// ValidationReport is the terminal artifact of one validation run.
// Results appear in input order.
type ValidationReport struct {
	Summary ValidationSummary         `json:"summary"`
	Results []InvoiceValidationResult `json:"results"`
}
