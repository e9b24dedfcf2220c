package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Aashish23092/paystub-extraction/dto"
	"github.com/Aashish23092/paystub-extraction/utils"
	"github.com/Aashish23092/paystub-extraction/utils/paystub"
)

// OCRClient reads text from a page image. Implemented by client.TesseractClient.
type OCRClient interface {
	ExtractTextAndQuality(filePath string) (string, float64, error)
}

type Options struct {
	// Concurrency bounds how many documents of a batch are parsed at once.
	Concurrency int
	// MinTokens is the token count under which a PDF is treated as scanned.
	MinTokens int
	Hooks     paystub.Hooks
}

type PaystubService struct {
	pdfProcessor PDFProcessor
	ocr          OCRClient
	opts         Options
}

// NewPaystubService wires the extraction collaborators. ocr may be nil, in
// which case scanned statements fail extraction.
func NewPaystubService(pdfProcessor PDFProcessor, ocr OCRClient, opts Options) *PaystubService {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &PaystubService{
		pdfProcessor: pdfProcessor,
		ocr:          ocr,
		opts:         opts,
	}
}

// ParseTokens matches an already extracted token stream.
func (s *PaystubService) ParseTokens(name string, tokens []string) (*dto.PaystubRecord, error) {
	rec, err := paystub.Parse(tokens, paystub.Options{Document: name, Hooks: s.opts.Hooks})
	if err != nil {
		return nil, err
	}
	rec.Filename = name
	return rec, nil
}

// ParseDocument extracts tokens from a PDF statement and parses them.
func (s *PaystubService) ParseDocument(ctx context.Context, doc dto.Document) (*dto.PaystubRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tokens, err := s.extractTokens(doc)
	if err != nil {
		return nil, &ExtractionError{Document: doc.Meta.Filename, Err: err}
	}
	return s.ParseTokens(doc.Meta.Filename, tokens)
}

// ParseBatch parses every document independently. A failing document is
// recorded and does not stop the others; output keeps input order.
func (s *PaystubService) ParseBatch(ctx context.Context, docs []dto.Document) dto.BatchResult {
	records := make([]*dto.PaystubRecord, len(docs))
	failures := make([]error, len(docs))

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			records[i], failures[i] = s.ParseDocument(ctx, doc)
			return nil
		})
	}
	_ = g.Wait()

	result := dto.BatchResult{
		Records:  []dto.PaystubRecord{},
		Failures: []dto.DocumentFailure{},
	}
	for i, doc := range docs {
		if err := failures[i]; err != nil {
			log.Printf("Failed to parse %s: %v", doc.Meta.Filename, err)
			result.Failures = append(result.Failures, dto.DocumentFailure{
				Filename: doc.Meta.Filename,
				Kind:     Classify(err),
				Error:    err.Error(),
			})
			continue
		}
		result.Records = append(result.Records, *records[i])
	}
	return result
}

// Classify maps a parse error to the failure kind reported to callers.
func Classify(err error) dto.FailureKind {
	var structural *paystub.StructuralError
	if errors.As(err, &structural) {
		return dto.FailureStructural
	}
	return dto.FailureExtraction
}

func (s *PaystubService) extractTokens(doc dto.Document) ([]string, error) {
	tokens, err := s.pdfProcessor.ExtractTokens(doc.Data, doc.Meta.Password)
	if err != nil {
		log.Printf("PDF text extraction failed for %s: %v", doc.Meta.Filename, err)
	}
	if len(tokens) >= s.opts.MinTokens && err == nil {
		return tokens, nil
	}
	if s.ocr == nil {
		if err != nil {
			return nil, err
		}
		if len(tokens) == 0 {
			return nil, ErrNoTokens
		}
		return tokens, nil
	}

	log.Printf("PDF %s has %d text tokens, attempting image-based OCR", doc.Meta.Filename, len(tokens))
	ocrTokens, ocrErr := s.ocrTokens(doc)
	if ocrErr != nil {
		if err != nil {
			return nil, fmt.Errorf("%w; ocr: %v", err, ocrErr)
		}
		if len(tokens) > 0 {
			return tokens, nil
		}
		return nil, ocrErr
	}
	return ocrTokens, nil
}

func (s *PaystubService) ocrTokens(doc dto.Document) ([]string, error) {
	images, err := s.pdfProcessor.ExtractImages(doc.Data, doc.Meta.Password)
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, img := range images {
		tempImgFile, err := saveImageToTempFile(img)
		if err != nil {
			log.Printf("Failed to save temporary image for OCR: %v", err)
			continue
		}

		pageText, conf, err := s.ocr.ExtractTextAndQuality(tempImgFile)
		os.Remove(tempImgFile)
		if err != nil {
			log.Printf("OCR failed for a page in %s: %v", doc.Meta.Filename, err)
			continue
		}
		if conf > 0 && conf < 60 {
			log.Printf("Warning: low OCR confidence %.1f for a page in %s", conf, doc.Meta.Filename)
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	tokens := utils.SplitOCRText(text.String())
	if len(tokens) == 0 {
		return nil, ErrNoTokens
	}
	return tokens, nil
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "paystub-page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}
