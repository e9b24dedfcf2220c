package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/paystub-extraction/dto"
	"github.com/Aashish23092/paystub-extraction/export"
	"github.com/Aashish23092/paystub-extraction/utils/paystub"
)

// PaystubParser is the service surface used by the handler.
type PaystubParser interface {
	ParseTokens(name string, tokens []string) (*dto.PaystubRecord, error)
	ParseBatch(ctx context.Context, docs []dto.Document) dto.BatchResult
}

type PaystubHandler struct {
	parser        PaystubParser
	exportOptions export.Options
	maxFileSize   int64
}

// NewPaystubHandler creates a handler. Uploaded files larger than maxFileSize
// bytes are rejected; zero disables the check.
func NewPaystubHandler(parser PaystubParser, exportOptions export.Options, maxFileSize int64) *PaystubHandler {
	return &PaystubHandler{
		parser:        parser,
		exportOptions: exportOptions,
		maxFileSize:   maxFileSize,
	}
}

// ParseStatements handles POST /paystubs/parse. Files are uploaded as
// files[]; an optional metadata JSON field carries per-file passwords.
func (h *PaystubHandler) ParseStatements(c *gin.Context) {
	format, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatJSON)))
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_FORMAT", "Unsupported output format", err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to parse multipart form", err)
		return
	}

	request := &dto.ParseRequest{
		Files:    form.File["files[]"],
		Metadata: c.PostForm("metadata"),
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "No files provided", err)
		return
	}

	var meta dto.UploadMetadata
	if request.Metadata != "" {
		if err := json.Unmarshal([]byte(request.Metadata), &meta); err != nil {
			h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Metadata is not valid JSON", err)
			return
		}
	}

	docs := make([]dto.Document, 0, len(request.Files))
	for _, fh := range request.Files {
		if h.maxFileSize > 0 && fh.Size > h.maxFileSize {
			h.sendError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
				fmt.Sprintf("%s exceeds the %d byte limit", fh.Filename, h.maxFileSize), nil)
			return
		}
		data, err := readUpload(fh)
		if err != nil {
			h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read uploaded file", err)
			return
		}
		docs = append(docs, dto.Document{
			Meta: dto.DocumentMeta{Filename: fh.Filename, Password: meta.PasswordFor(fh.Filename)},
			Data: data,
		})
	}

	log.Printf("Processing %d statements", len(docs))
	result := h.parser.ParseBatch(c.Request.Context(), docs)
	log.Printf("Parsed %d statements, %d failed", len(result.Records), len(result.Failures))

	if format == export.FormatJSON {
		c.JSON(http.StatusOK, dto.ParseResponse{
			Records:     result.Records,
			Failures:    result.Failures,
			ProcessedAt: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	var buf bytes.Buffer
	if err := export.Write(format, &buf, result.Records, h.exportOptions); err != nil {
		h.sendError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to render records", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="paystubs.%s"`, format))
	c.Header("X-Failed-Documents", strconv.Itoa(len(result.Failures)))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// ParseTokens handles POST /paystubs/tokens for statements whose text was
// extracted elsewhere.
func (h *PaystubHandler) ParseTokens(c *gin.Context) {
	var request dto.TokensRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), err)
		return
	}

	rec, err := h.parser.ParseTokens(request.Filename, request.Tokens)
	if err != nil {
		var structural *paystub.StructuralError
		if errors.As(err, &structural) {
			h.sendError(c, http.StatusUnprocessableEntity, "PARSE_FAILED", "Statement layout not recognised", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "PARSE_FAILED", "Failed to parse statement", err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// sendError sends a structured error response
func (h *PaystubHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}
