package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billmint/internal/domain"
)

// MockSaleRepo is a mock implementation of port.SaleRepository.
type MockSaleRepo struct {
	mock.Mock
}

func (m *MockSaleRepo) GetByID(ctx context.Context, id int64) (*domain.SaleWithItems, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleWithItems), args.Error(1)
}

func (m *MockSaleRepo) List(ctx context.Context, offset, limit int) ([]domain.Sale, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Sale), args.Int(1), args.Error(2)
}
