package dto

import (
	"errors"
	"mime/multipart"
)

// ParseRequest represents an uploaded batch of statements.
type ParseRequest struct {
	Files    []*multipart.FileHeader `form:"files[]" binding:"required"`
	Metadata string                  `form:"metadata"`
}

// Validate performs basic validation on the request
func (r *ParseRequest) Validate() error {
	if len(r.Files) == 0 {
		return ErrNoDocuments
	}
	return nil
}

// TokensRequest carries a token stream produced by an external extractor.
type TokensRequest struct {
	Filename string   `json:"filename" binding:"required"`
	Tokens   []string `json:"tokens"`
}

func (r *TokensRequest) Validate() error {
	if r.Filename == "" {
		return errors.New("filename is required")
	}
	return nil
}
