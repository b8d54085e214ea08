// Package extract implements the pattern-matching extraction engine for
// purchase order and invoice text. Documents are German B2B orders
// (Bestellung/Rechnung) rendered as plain text, one string per document.
package extract

import (
	"regexp"
	"strings"

	"github.com/rezonia/invoice-qc/internal/dates"
	"github.com/rezonia/invoice-qc/internal/money"
)

// FieldKind identifies one extractable invoice field.
type FieldKind string

const (
	FieldInvoiceNumber     FieldKind = "invoice_number"
	FieldInvoiceDate       FieldKind = "invoice_date"
	FieldSellerName        FieldKind = "seller_name"
	FieldSellerAddress     FieldKind = "seller_address"
	FieldSellerTaxID       FieldKind = "seller_tax_id"
	FieldBuyerName         FieldKind = "buyer_name"
	FieldBuyerAddress      FieldKind = "buyer_address"
	FieldBuyerTaxID        FieldKind = "buyer_tax_id"
	FieldNetTotal          FieldKind = "net_total"
	FieldTaxAmount         FieldKind = "tax_amount"
	FieldGrossTotal        FieldKind = "gross_total"
	FieldPaymentTerms      FieldKind = "payment_terms"
	FieldExternalReference FieldKind = "external_reference"
)

// A matcher attempts to locate one field in the document text. Matchers
// for a field are tried in registration order and the first success wins;
// the order encodes layout precedence and is part of the contract.
type matcher func(text string) (string, bool)

// pattern builds a matcher from a regexp whose first capture group is the
// field value.
func pattern(expr string) matcher {
	re := regexp.MustCompile(expr)
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		return strings.TrimSpace(m[1]), true
	}
}

// Fields locates scalar invoice fields in raw document text.
type Fields struct {
	matchers map[FieldKind][]matcher
}

// NewFields builds the extractor with the known layout patterns.
func NewFields() *Fields {
	f := &Fields{matchers: make(map[FieldKind][]matcher)}

	f.matchers[FieldInvoiceNumber] = []matcher{
		pattern(`(?i)Bestellung\s+(AUFNR\d+)`),
		pattern(`(?i)(AUFNR\d+)`),
		pattern(`(?i)Rechnung\s*(?:Nr\.?|Number|#)?[:\s]*([A-Z0-9-]+)`),
		pattern(`(?i)Invoice\s*(?:No\.?|Number|#)?[:\s]*([A-Z0-9-]+)`),
	}

	f.matchers[FieldInvoiceDate] = []matcher{
		pattern(`(?i)vom\s+(\d{2}\.\d{2}\.\d{4})`),
		pattern(`(?i)Datum[:\s]*(\d{2}\.\d{2}\.\d{4})`),
		pattern(`(?i)Date[:\s]*(\d{2}[./-]\d{2}[./-]\d{4})`),
	}

	f.matchers[FieldSellerName] = []matcher{
		pattern(`(?m)^([A-Z][A-Za-z\s]+Corporation)`),
		pattern(`(?m)^([A-Z][A-Za-z\s]+GmbH)`),
		pattern(`Kundenanschrift\s*\n([^\n]+)`),
		companyLineFallback,
	}

	f.matchers[FieldSellerAddress] = []matcher{
		sellerAddressAfterCustomerBlock,
		industriestrasseAddress,
		pattern(`(\d{5}\s+[A-Za-zäöüÄÖÜß]+)\s*\n?\s*Deutschland`),
		pattern(`(?i)([A-Za-zäöüÄÖÜß\-]+(?:str\.|straße|weg|platz)[^\n]*\d{5}[^\n]+)`),
		pattern(`([A-Z]{2}\s+\d{5})`),
		fallback("Germany"),
	}

	f.matchers[FieldSellerTaxID] = []matcher{
		pattern(`Kundennummer\s*\n(\d+)`),
	}

	f.matchers[FieldBuyerName] = []matcher{
		minLength(pattern(`Kundenanschrift\s*\n([^\n]+)`), 4),
		minLength(pattern(`im Auftrag von\s+\d+\s*\n([^\n]+)`), 4),
	}

	f.matchers[FieldBuyerAddress] = []matcher{
		pattern(`·\s*([^·\n]+,\s*[A-Za-zäöüÄÖÜß\s]+,\s*[A-Z]{2}\s+\d+)`),
	}

	f.matchers[FieldBuyerTaxID] = []matcher{
		pattern(`Endkundennummer\s*\n(\d+)`),
	}

	f.matchers[FieldNetTotal] = []matcher{
		pattern(`Gesamtwert\s+EUR\s+([\d.,]+)`),
		pattern(`Netto[:\s]*([\d.,]+)`),
		pattern(`Subtotal[:\s]*([\d.,]+)`),
	}

	f.matchers[FieldTaxAmount] = []matcher{
		pattern(`MwSt\.\s+[\d,]+%\s+EUR\s+([\d.,]+)`),
		pattern(`VAT[:\s]*([\d.,]+)`),
		pattern(`Tax[:\s]*([\d.,]+)`),
	}

	f.matchers[FieldGrossTotal] = []matcher{
		pattern(`Gesamtwert\s+inkl\.\s+MwSt\.\s+EUR\s+([\d.,]+)`),
		pattern(`Total\s+inkl[:\s]*([\d.,]+)`),
		pattern(`Brutto[:\s]*([\d.,]+)`),
	}

	f.matchers[FieldPaymentTerms] = []matcher{
		pattern(`Zahlungsbedingungen\s*\n([^\n]+)`),
	}

	f.matchers[FieldExternalReference] = []matcher{
		pattern(`im Auftrag von\s+(\d+)`),
	}

	return f
}

// Extract returns the first successful match for the field, or false when
// no pattern matches. Never fails on unmatched input.
func (f *Fields) Extract(kind FieldKind, text string) (string, bool) {
	for _, m := range f.matchers[kind] {
		if v, ok := m(text); ok {
			return v, true
		}
	}
	return "", false
}

// ExtractText returns the field as an optional string.
func (f *Fields) ExtractText(kind FieldKind, text string) *string {
	v, ok := f.Extract(kind, text)
	if !ok {
		return nil
	}
	return &v
}

// ExtractDate routes the first matched substring through date
// normalization. A match that fails to normalize is absent; later
// patterns are not retried.
func (f *Fields) ExtractDate(kind FieldKind, text string) *string {
	raw, ok := f.Extract(kind, text)
	if !ok {
		return nil
	}
	iso, ok := dates.Normalize(raw)
	if !ok {
		return nil
	}
	return &iso
}

// ExtractAmount routes the first matched substring through the amount
// parser. As with dates, a match that fails to parse is absent.
func (f *Fields) ExtractAmount(kind FieldKind, text string) *float64 {
	raw, ok := f.Extract(kind, text)
	if !ok {
		return nil
	}
	return money.ParseAmount(raw)
}

var (
	sellerAddressBlockRe = regexp.MustCompile(`Kundenanschrift\s*\n[^\n]+\n([^\n]+(?:GmbH|AG|Ltd)?)\s*\n([^\n]+)`)
	industriestrasseRe   = regexp.MustCompile(`Industriestraße\s+\d+[^\n]*\n([^\n]+)`)
)

// sellerAddressAfterCustomerBlock joins the two lines following the
// Kundenanschrift name line into "street, city".
func sellerAddressAfterCustomerBlock(text string) (string, bool) {
	m := sellerAddressBlockRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]) + ", " + strings.TrimSpace(m[2]), true
}

func industriestrasseAddress(text string) (string, bool) {
	m := industriestrasseRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return "Industriestraße, " + strings.TrimSpace(m[1]), true
}

// companyLineFallback scans the document header for the first line that
// looks like a company name.
func companyLineFallback(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for i := 1; i < limit; i++ {
		line := lines[i]
		if strings.Contains(line, "Corporation") ||
			strings.Contains(line, "GmbH") ||
			strings.Contains(line, "Unternehmen") {
			return strings.TrimSpace(line), true
		}
	}
	return "", false
}

// minLength rejects matches shorter than n characters.
func minLength(m matcher, n int) matcher {
	return func(text string) (string, bool) {
		v, ok := m(text)
		if !ok || len(v) < n {
			return "", false
		}
		return v, true
	}
}

// fallback always matches with a fixed value. Terminal entry in a list.
func fallback(value string) matcher {
	return func(string) (string, bool) {
		return value, true
	}
}
