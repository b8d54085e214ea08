// Package invoiceqc provides the public API for invoice quality control.
//
// It exposes the core types for extracting typed invoice records from
// document text and validating them against the layered rule set.
//
// Example usage:
//
//	qc := invoiceqc.New()
//	invoices, failures := qc.ExtractBatch(docs)
//	report := qc.ValidateBatch(invoices)
//	fmt.Println(report.Summary.InvalidInvoices)
package invoiceqc

import (
	"github.com/rezonia/invoice-qc/internal/extract"
	"github.com/rezonia/invoice-qc/internal/model"
	"github.com/rezonia/invoice-qc/internal/money"
	"github.com/rezonia/invoice-qc/internal/validate"
)

// Re-export core types for public API
type (
	Invoice                 = model.Invoice
	LineItem                = model.LineItem
	ValidationError         = model.ValidationError
	InvoiceValidationResult = model.InvoiceValidationResult
	ValidationSummary       = model.ValidationSummary
	ValidationReport        = model.ValidationReport
	ExtractionError         = model.ExtractionError

	Document = extract.Document
	Failure  = extract.Failure
)

// Re-export severities
const (
	SeverityError   = model.SeverityError
	SeverityWarning = model.SeverityWarning
)

// Defaults applied when no option overrides them.
const (
	DefaultTolerance = money.DefaultTolerance
	DefaultMaxAmount = validate.DefaultMaxAmount
)

// Options configures a QC run.
type Options struct {
	// Tolerance is the absolute tolerance for financial sum checks.
	Tolerance float64
	// MaxAmount is the gross total above which invoices are flagged.
	MaxAmount float64
}

// DefaultOptions returns the default QC options.
func DefaultOptions() Options {
	return Options{
		Tolerance: DefaultTolerance,
		MaxAmount: DefaultMaxAmount,
	}
}

// QC bundles the extraction engine with validation defaults. Extraction
// is stateless and safe to reuse; each ValidateBatch call runs with a
// fresh rule engine so duplicate detection never spans runs.
type QC struct {
	extractor *extract.Extractor
	options   Options
}

// New creates a QC processor with default options.
func New() *QC {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a QC processor with the given options.
func NewWithOptions(opts Options) *QC {
	if opts.Tolerance == 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.MaxAmount == 0 {
		opts.MaxAmount = DefaultMaxAmount
	}
	return &QC{
		extractor: extract.New(),
		options:   opts,
	}
}

// ExtractOne builds one invoice record from raw document text.
func (q *QC) ExtractOne(id, text string) (*Invoice, error) {
	return q.extractor.ExtractOne(id, text)
}

// ExtractBatch processes documents in lexicographic id order, isolating
// per-document failures.
func (q *QC) ExtractBatch(docs []Document) ([]Invoice, []Failure) {
	return q.extractor.ExtractBatch(docs)
}

// ValidateBatch validates invoices in input order with a fresh engine.
func (q *QC) ValidateBatch(invoices []Invoice) *ValidationReport {
	engine := validate.New(
		validate.WithTolerance(q.options.Tolerance),
		validate.WithMaxAmount(q.options.MaxAmount),
	)
	return engine.ValidateBatch(invoices)
}
