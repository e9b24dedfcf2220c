package mocks

import (
	"image"

	"github.com/stretchr/testify/mock"
)

// MockPDFProcessor is a mock implementation of service.PDFProcessor.
type MockPDFProcessor struct {
	mock.Mock
}

func (m *MockPDFProcessor) ExtractTokens(pdfData []byte, password string) ([]string, error) {
	args := m.Called(pdfData, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPDFProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	args := m.Called(pdfData, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]image.Image), args.Error(1)
}
