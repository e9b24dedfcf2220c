package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Aashish23092/paystub-extraction/dto"
)

// MockPaystubParser is a mock implementation of handler.PaystubParser.
type MockPaystubParser struct {
	mock.Mock
}

func (m *MockPaystubParser) ParseTokens(name string, tokens []string) (*dto.PaystubRecord, error) {
	args := m.Called(name, tokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaystubRecord), args.Error(1)
}

func (m *MockPaystubParser) ParseBatch(ctx context.Context, docs []dto.Document) dto.BatchResult {
	args := m.Called(ctx, docs)
	return args.Get(0).(dto.BatchResult)
}
