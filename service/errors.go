package service

import (
	"errors"
	"fmt"
)

var ErrNoTokens = errors.New("no text could be extracted from the document")

// ExtractionError wraps a failure to turn a document into tokens.
type ExtractionError struct {
	Document string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: extraction failed: %v", e.Document, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
