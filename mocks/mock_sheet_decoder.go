package mocks

import (
	"github.com/stretchr/testify/mock"

	"sheetdoc/internal/domain"
)

// MockSheetDecoder is a mock implementation of port.SheetDecoder.
type MockSheetDecoder struct {
	mock.Mock
}

func (m *MockSheetDecoder) Decode(data []byte) ([]domain.Sheet, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sheet), args.Error(1)
}
