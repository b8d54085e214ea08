package server

import (
	"github.com/rezonia/invoice-qc/internal/extract"
	"github.com/rezonia/invoice-qc/internal/model"
)

// ExtractResponse is the response for the extract endpoint.
type ExtractResponse struct {
	Invoices []model.Invoice   `json:"invoices"`
	Failures []extract.Failure `json:"failures"`
}

// ProcessResponse is the response for the process endpoint.
type ProcessResponse struct {
	Invoices []model.Invoice         `json:"invoices"`
	Failures []extract.Failure       `json:"failures"`
	Report   *model.ValidationReport `json:"report"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
