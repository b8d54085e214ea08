package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-qc/internal/model"
)

func TestInvoice_ID(t *testing.T) {
	number := "AUFNR100"
	inv := model.Invoice{InvoiceNumber: &number}
	assert.Equal(t, "AUFNR100", inv.ID())

	empty := ""
	inv = model.Invoice{InvoiceNumber: &empty}
	assert.Equal(t, "UNKNOWN", inv.ID())

	inv = model.Invoice{}
	assert.Equal(t, "UNKNOWN", inv.ID())
}

func TestInvoice_JSONRoundTrip(t *testing.T) {
	number := "AUFNR100"
	date := "2024-05-22"
	net := 191.25
	inv := model.Invoice{
		InvoiceNumber: &number,
		InvoiceDate:   &date,
		NetTotal:      &net,
		LineItems: []model.LineItem{
			{Description: "Widget", Quantity: 2, UnitPrice: 50, LineTotal: 100},
		},
	}

	data, err := json.Marshal(inv)
	require.NoError(t, err)

	var decoded model.Invoice
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.NotNil(t, decoded.InvoiceNumber)
	assert.Equal(t, "AUFNR100", *decoded.InvoiceNumber)
	assert.Nil(t, decoded.DueDate)
	require.NotNil(t, decoded.NetTotal)
	assert.Equal(t, 191.25, *decoded.NetTotal)
	require.Len(t, decoded.LineItems, 1)
	assert.Equal(t, "Widget", decoded.LineItems[0].Description)
}

func TestInvoice_MarshalEmitsAbsentFieldsAsNull(t *testing.T) {
	data, err := json.Marshal(model.Invoice{})
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Equal(t, "null", string(m["invoice_number"]))
	assert.Equal(t, "null", string(m["net_total"]))
	// line_items is never null, even when nothing was extracted.
	assert.Equal(t, "[]", string(m["line_items"]))
}

func TestExtractionError(t *testing.T) {
	err := model.NewExtractionError("doc-1", "document text is empty", nil)

	assert.Contains(t, err.Error(), "doc-1")
	assert.Contains(t, err.Error(), "document text is empty")
	assert.Equal(t, "doc-1", err.DocumentID)
}
