package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billmint/internal/domain"
	"billmint/internal/service"
)

// MockSaleService is a mock implementation of service.SaleService.
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) Create(ctx context.Context, input service.CreateSaleInput) (*service.CreateSaleResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreateSaleResult), args.Error(1)
}

func (m *MockSaleService) Update(ctx context.Context, id int64, input service.UpdateSaleInput) (*service.UpdateSaleResult, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UpdateSaleResult), args.Error(1)
}

func (m *MockSaleService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleService) GetByID(ctx context.Context, id int64) (*domain.SaleWithItems, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SaleWithItems), args.Error(1)
}

func (m *MockSaleService) List(ctx context.Context, offset, limit int) ([]domain.Sale, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Sale), args.Int(1), args.Error(2)
}
