package extract

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rezonia/invoice-qc/internal/model"
)

// DefaultCurrency is assumed for this document family when the text does
// not state one.
const DefaultCurrency = "EUR"

// Document is one raw input: a stable identifier (file name, upload id)
// and the already-converted page text, concatenated.
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Failure reports one document that could not be extracted.
type Failure struct {
	DocumentID string `json:"document_id"`
	Reason     string `json:"reason"`
}

// Extractor orchestrates field and line-item extraction over documents.
type Extractor struct {
	fields *Fields
	logger *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used to report per-document batch failures.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		fields: NewFields(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractOne builds one invoice record from raw document text. Fields
// that no pattern matches stay absent; only unusable input (blank text)
// or an internal fault is an error.
func (e *Extractor) ExtractOne(id, text string) (inv *model.Invoice, err error) {
	defer func() {
		if r := recover(); r != nil {
			inv = nil
			err = model.NewExtractionError(id, fmt.Sprintf("internal fault: %v", r), nil)
		}
	}()

	if strings.TrimSpace(text) == "" {
		return nil, model.NewExtractionError(id, "document text is empty", nil)
	}

	currency := DefaultCurrency
	inv = &model.Invoice{
		InvoiceNumber:     e.fields.ExtractText(FieldInvoiceNumber, text),
		InvoiceDate:       e.fields.ExtractDate(FieldInvoiceDate, text),
		DueDate:           nil, // not present in this document family
		SellerName:        e.fields.ExtractText(FieldSellerName, text),
		SellerAddress:     e.fields.ExtractText(FieldSellerAddress, text),
		SellerTaxID:       e.fields.ExtractText(FieldSellerTaxID, text),
		BuyerName:         e.fields.ExtractText(FieldBuyerName, text),
		BuyerAddress:      e.fields.ExtractText(FieldBuyerAddress, text),
		BuyerTaxID:        e.fields.ExtractText(FieldBuyerTaxID, text),
		Currency:          &currency,
		NetTotal:          e.fields.ExtractAmount(FieldNetTotal, text),
		TaxAmount:         e.fields.ExtractAmount(FieldTaxAmount, text),
		GrossTotal:        e.fields.ExtractAmount(FieldGrossTotal, text),
		PaymentTerms:      e.fields.ExtractText(FieldPaymentTerms, text),
		ExternalReference: e.fields.ExtractText(FieldExternalReference, text),
		LineItems:         LineItems(text),
	}
	return inv, nil
}

// ExtractBatch processes documents in lexicographic id order. A failure
// on one document is reported in the failure list and logged; it never
// aborts the batch. Given the same documents the output is identical
// across runs.
func (e *Extractor) ExtractBatch(docs []Document) ([]model.Invoice, []Failure) {
	sorted := make([]Document, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	invoices := []model.Invoice{}
	failures := []Failure{}

	for _, doc := range sorted {
		inv, err := e.ExtractOne(doc.ID, doc.Text)
		if err != nil {
			e.logger.Warn("document extraction failed",
				zap.String("document_id", doc.ID),
				zap.Error(err))
			failures = append(failures, Failure{DocumentID: doc.ID, Reason: err.Error()})
			continue
		}
		invoices = append(invoices, *inv)
	}

	return invoices, failures
}
