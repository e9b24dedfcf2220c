package paystub

import (
	"errors"
	"fmt"
)

var (
	ErrMissingGrossPay      = errors.New("gross_pay not found")
	ErrMissingNetPay        = errors.New("net_pay not found")
	ErrUnexpectedCandidates = errors.New("unexpected candidate values")
)

// StructuralError rejects a single document. Other documents in a batch are unaffected.
type StructuralError struct {
	Document string
	Path     string
	Err      error
}

func (e *StructuralError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Document, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Document, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}
