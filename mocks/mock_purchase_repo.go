package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billmint/internal/domain"
)

// MockPurchaseRepo is a mock implementation of port.PurchaseRepository.
type MockPurchaseRepo struct {
	mock.Mock
}

func (m *MockPurchaseRepo) GetByID(ctx context.Context, id int64) (*domain.PurchaseWithItems, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseWithItems), args.Error(1)
}

func (m *MockPurchaseRepo) List(ctx context.Context, offset, limit int) ([]domain.Purchase, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Purchase), args.Int(1), args.Error(2)
}
