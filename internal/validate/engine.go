// Package validate checks extracted invoice records against a layered
// rule set: completeness, format, business arithmetic, and anomaly
// detection. Rule failures are structured findings, never Go errors.
package validate

import (
	"github.com/rezonia/invoice-qc/internal/model"
	"github.com/rezonia/invoice-qc/internal/money"
)

// DefaultMaxAmount is the gross total above which an invoice is flagged
// as anomalous, in currency units.
const DefaultMaxAmount = 1_000_000

// duplicateKey is the composite identity used for duplicate detection.
// Absent components key as empty strings; an invoice with an absent
// number already fails required_field, so the collision is harmless.
type duplicateKey struct {
	number string
	seller string
	date   string
}

// Engine validates invoices. One engine owns the duplicate-detection set
// for exactly one validation run: validating two unrelated batches with
// the same engine makes duplicate detection span both, so callers must
// construct a fresh engine per run. The set only grows for the life of
// the instance.
type Engine struct {
	tolerance float64
	maxAmount float64
	seen      map[duplicateKey]struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithTolerance overrides the absolute tolerance for financial sum checks.
func WithTolerance(t float64) Option {
	return func(e *Engine) { e.tolerance = t }
}

// WithMaxAmount overrides the maximum acceptable gross total.
func WithMaxAmount(m float64) Option {
	return func(e *Engine) { e.maxAmount = m }
}

// New creates an engine with a fresh duplicate set.
func New(opts ...Option) *Engine {
	e := &Engine{
		tolerance: money.DefaultTolerance,
		maxAmount: DefaultMaxAmount,
		seen:      make(map[duplicateKey]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValidateOne runs the four rule families in a fixed order. The order
// only affects the sequence of findings, not validity: IsValid is true
// iff the combined error list is empty.
func (e *Engine) ValidateOne(inv *model.Invoice) model.InvoiceValidationResult {
	errs := []model.ValidationError{}
	errs = append(errs, e.completenessRules(inv)...)
	errs = append(errs, e.formatRules(inv)...)
	errs = append(errs, e.businessRules(inv)...)
	errs = append(errs, e.anomalyRules(inv)...)

	return model.InvoiceValidationResult{
		InvoiceID: inv.ID(),
		IsValid:   len(errs) == 0,
		Errors:    errs,
		Warnings:  []model.ValidationError{},
	}
}

// ValidateBatch validates invoices in input order with this engine
// instance, so duplicate state accumulates across the whole batch, then
// folds the results into a report.
func (e *Engine) ValidateBatch(invoices []model.Invoice) *model.ValidationReport {
	results := make([]model.InvoiceValidationResult, 0, len(invoices))
	for i := range invoices {
		results = append(results, e.ValidateOne(&invoices[i]))
	}
	return &model.ValidationReport{
		Summary: Summarize(results),
		Results: results,
	}
}

func errorf(rule, message string) model.ValidationError {
	return model.ValidationError{
		Rule:     rule,
		Message:  message,
		Severity: model.SeverityError,
	}
}

func present(p *string) bool {
	return p != nil && *p != ""
}
