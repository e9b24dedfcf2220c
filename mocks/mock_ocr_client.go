package mocks

import "github.com/stretchr/testify/mock"

// MockOCRClient is a mock implementation of service.OCRClient.
type MockOCRClient struct {
	mock.Mock
}

func (m *MockOCRClient) ExtractTextAndQuality(filePath string) (string, float64, error) {
	args := m.Called(filePath)
	return args.String(0), args.Get(1).(float64), args.Error(2)
}
