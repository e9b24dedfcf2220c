package dto

import "errors"

// Custom errors
var (
	ErrNoDocuments  = errors.New("at least one document is required")
	ErrUnknownField = errors.New("unknown record field")
	ErrFieldKind    = errors.New("field value has the wrong kind")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ParseResponse is returned for JSON batch requests.
type ParseResponse struct {
	Records     []PaystubRecord   `json:"records"`
	Failures    []DocumentFailure `json:"failures"`
	ProcessedAt string            `json:"processed_at"`
}
