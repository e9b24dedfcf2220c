package service_test

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/paystub-extraction/dto"
	"github.com/Aashish23092/paystub-extraction/mocks"
	"github.com/Aashish23092/paystub-extraction/service"
	"github.com/Aashish23092/paystub-extraction/utils/paystub"
)

func statementTokens() []string {
	return []string{"Pay Date", "03/15/2024", "Gross Pay", "$1,234.56", "Net Pay", "$", "1,234.56"}
}

func newService(proc *mocks.MockPDFProcessor, ocr service.OCRClient, concurrency int) *service.PaystubService {
	return service.NewPaystubService(proc, ocr, service.Options{Concurrency: concurrency, MinTokens: 5})
}

func TestParseTokensSetsFilename(t *testing.T) {
	svc := newService(new(mocks.MockPDFProcessor), nil, 1)

	rec, err := svc.ParseTokens("march.pdf", statementTokens())
	require.NoError(t, err)

	assert.Equal(t, "march.pdf", rec.Filename)
	require.NotNil(t, rec.PayDate)
	assert.Equal(t, "2024-03-15", *rec.PayDate)
	require.NotNil(t, rec.GrossPay)
	assert.Equal(t, int64(123456), *rec.GrossPay)
	require.NotNil(t, rec.NetPay)
	assert.Equal(t, int64(123456), *rec.NetPay)
}

func TestParseDocumentUsesTextLayer(t *testing.T) {
	proc := new(mocks.MockPDFProcessor)
	ocr := new(mocks.MockOCRClient)
	proc.On("ExtractTokens", []byte("pdf"), "secret").Return(statementTokens(), nil)

	svc := newService(proc, ocr, 1)
	rec, err := svc.ParseDocument(context.Background(), dto.Document{
		Meta: dto.DocumentMeta{Filename: "march.pdf", Password: "secret"},
		Data: []byte("pdf"),
	})
	require.NoError(t, err)
	assert.Equal(t, "march.pdf", rec.Filename)

	proc.AssertExpectations(t)
	ocr.AssertNotCalled(t, "ExtractTextAndQuality", mock.Anything)
}

func TestParseDocumentFallsBackToOCR(t *testing.T) {
	proc := new(mocks.MockPDFProcessor)
	ocr := new(mocks.MockOCRClient)
	proc.On("ExtractTokens", mock.Anything, "").Return([]string{"Page 1"}, nil)
	proc.On("ExtractImages", mock.Anything, "").
		Return([]image.Image{image.NewRGBA(image.Rect(0, 0, 4, 4))}, nil)
	ocr.On("ExtractTextAndQuality", mock.AnythingOfType("string")).
		Return("Pay Date 03/15/2024\nGross Pay   $1,234.56\nNet Pay   $1,200.00\n", 91.5, nil)

	svc := newService(proc, ocr, 1)
	rec, err := svc.ParseDocument(context.Background(), dto.Document{
		Meta: dto.DocumentMeta{Filename: "scan.pdf"},
		Data: []byte("scan"),
	})
	require.NoError(t, err)

	require.NotNil(t, rec.NetPay)
	assert.Equal(t, int64(120000), *rec.NetPay)
	require.NotNil(t, rec.NetPayDiscrepancy)
	assert.Equal(t, int64(3456), *rec.NetPayDiscrepancy)
	proc.AssertExpectations(t)
	ocr.AssertExpectations(t)
}

func TestParseDocumentExtractionError(t *testing.T) {
	proc := new(mocks.MockPDFProcessor)
	bad := errors.New("malformed xref table")
	proc.On("ExtractTokens", mock.Anything, "").Return(nil, bad)

	svc := newService(proc, nil, 1)
	_, err := svc.ParseDocument(context.Background(), dto.Document{Meta: dto.DocumentMeta{Filename: "broken.pdf"}})

	var extraction *service.ExtractionError
	require.ErrorAs(t, err, &extraction)
	assert.Equal(t, "broken.pdf", extraction.Document)
	assert.ErrorIs(t, err, bad)
	assert.Equal(t, dto.FailureExtraction, service.Classify(err))
}

func TestParseDocumentNoTokens(t *testing.T) {
	proc := new(mocks.MockPDFProcessor)
	proc.On("ExtractTokens", mock.Anything, "").Return([]string{}, nil)

	svc := newService(proc, nil, 1)
	_, err := svc.ParseDocument(context.Background(), dto.Document{Meta: dto.DocumentMeta{Filename: "blank.pdf"}})
	assert.ErrorIs(t, err, service.ErrNoTokens)
}

func TestParseDocumentCancelled(t *testing.T) {
	svc := newService(new(mocks.MockPDFProcessor), nil, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ParseDocument(ctx, dto.Document{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseBatchKeepsOrderAndIsolatesFailures(t *testing.T) {
	proc := new(mocks.MockPDFProcessor)
	proc.On("ExtractTokens", []byte("a"), "").Return(statementTokens(), nil)
	proc.On("ExtractTokens", []byte("b"), "").
		Return([]string{"Pay Date", "03/15/2024", "Gross Pay", "$1,234.56", "Remarks"}, nil)
	proc.On("ExtractTokens", []byte("c"), "").Return(nil, errors.New("not a pdf"))
	proc.On("ExtractTokens", []byte("d"), "").Return(statementTokens(), nil)

	svc := newService(proc, nil, 3)
	result := svc.ParseBatch(context.Background(), []dto.Document{
		{Meta: dto.DocumentMeta{Filename: "a.pdf"}, Data: []byte("a")},
		{Meta: dto.DocumentMeta{Filename: "b.pdf"}, Data: []byte("b")},
		{Meta: dto.DocumentMeta{Filename: "c.pdf"}, Data: []byte("c")},
		{Meta: dto.DocumentMeta{Filename: "d.pdf"}, Data: []byte("d")},
	})

	require.Len(t, result.Records, 2)
	assert.Equal(t, "a.pdf", result.Records[0].Filename)
	assert.Equal(t, "d.pdf", result.Records[1].Filename)

	require.Len(t, result.Failures, 2)
	assert.Equal(t, "b.pdf", result.Failures[0].Filename)
	assert.Equal(t, dto.FailureStructural, result.Failures[0].Kind)
	assert.Contains(t, result.Failures[0].Error, paystub.ErrMissingNetPay.Error())
	assert.Equal(t, "c.pdf", result.Failures[1].Filename)
	assert.Equal(t, dto.FailureExtraction, result.Failures[1].Kind)
}

func TestParseBatchEmpty(t *testing.T) {
	svc := newService(new(mocks.MockPDFProcessor), nil, 2)
	result := svc.ParseBatch(context.Background(), nil)
	assert.Empty(t, result.Records)
	assert.Empty(t, result.Failures)
	assert.NotNil(t, result.Records)
}

func TestLogHooks(t *testing.T) {
	quiet := service.LogHooks(false)
	assert.NotNil(t, quiet.Discrepancy)
	assert.NotNil(t, quiet.Unresolved)
	assert.Nil(t, quiet.Token)
	assert.Nil(t, quiet.Tree)

	verbose := service.LogHooks(true)
	assert.NotNil(t, verbose.Token)
	assert.NotNil(t, verbose.Tree)
	assert.NotNil(t, verbose.Capture)
}
