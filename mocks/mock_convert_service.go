package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sheetdoc/internal/domain"
)

// MockConvertService is a mock implementation of service.ConvertService.
type MockConvertService struct {
	mock.Mock
}

func (m *MockConvertService) Convert(ctx context.Context, filename string, data []byte) (*domain.DocumentResult, error) {
	args := m.Called(ctx, filename, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentResult), args.Error(1)
}
