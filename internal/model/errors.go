package model

import "fmt"

// ExtractionError represents a per-document extraction failure. It is
// caught at the batch boundary and reported alongside the successful
// invoices; it never aborts a batch.
type ExtractionError struct {
	DocumentID string
	Message    string
	Cause      error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed [%s]: %s (%v)", e.DocumentID, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed [%s]: %s", e.DocumentID, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// NewExtractionError creates a new extraction error
func NewExtractionError(documentID, message string, cause error) *ExtractionError {
	return &ExtractionError{
		DocumentID: documentID,
		Message:    message,
		Cause:      cause,
	}
}
