package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billmint/internal/domain"
)

// MockSalePaymentRepo is a mock implementation of port.SalePaymentRepository.
type MockSalePaymentRepo struct {
	mock.Mock
}

func (m *MockSalePaymentRepo) ListBySale(ctx context.Context, saleID int64) ([]domain.SalePayment, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalePayment), args.Error(1)
}
