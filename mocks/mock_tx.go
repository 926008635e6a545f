package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"billmint/internal/domain"
)

// MockTx is a mock implementation of port.Tx.
type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetProductForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockTx) SetProductStock(ctx context.Context, id int64, size decimal.Decimal) error {
	args := m.Called(ctx, id, size)
	return args.Error(0)
}

func (m *MockTx) InsertSale(ctx context.Context, sale *domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockTx) GetSale(ctx context.Context, id int64) (*domain.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockTx) UpdateSale(ctx context.Context, sale *domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockTx) DeleteSale(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTx) SetSalePaymentStatus(ctx context.Context, saleID int64, status domain.PaymentStatus) error {
	args := m.Called(ctx, saleID, status)
	return args.Error(0)
}

func (m *MockTx) InsertSaleItem(ctx context.Context, item *domain.SaleItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTx) ListSaleItems(ctx context.Context, saleID int64) ([]domain.SaleItem, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleItem), args.Error(1)
}

func (m *MockTx) DeleteSaleItems(ctx context.Context, saleID int64) error {
	args := m.Called(ctx, saleID)
	return args.Error(0)
}

func (m *MockTx) SumCustomerSales(ctx context.Context, customerID, excludeSaleID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID, excludeSaleID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTx) ListCustomerSales(ctx context.Context, customerID int64) ([]domain.Sale, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockTx) InsertPayment(ctx context.Context, payment *domain.SalePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockTx) GetPayment(ctx context.Context, id int64) (*domain.SalePayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalePayment), args.Error(1)
}

func (m *MockTx) DeletePayment(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTx) SumSalePayments(ctx context.Context, saleID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, saleID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTx) SumCustomerPayments(ctx context.Context, customerID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTx) ListCustomerPayments(ctx context.Context, customerID int64) ([]domain.SalePayment, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalePayment), args.Error(1)
}

func (m *MockTx) InsertPurchase(ctx context.Context, purchase *domain.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockTx) GetPurchase(ctx context.Context, id int64) (*domain.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockTx) UpdatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockTx) DeletePurchase(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTx) InsertPurchaseItem(ctx context.Context, item *domain.PurchaseItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTx) GetPurchaseItem(ctx context.Context, id int64) (*domain.PurchaseItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseItem), args.Error(1)
}

func (m *MockTx) UpdatePurchaseItem(ctx context.Context, item *domain.PurchaseItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTx) ListPurchaseItems(ctx context.Context, purchaseID int64) ([]domain.PurchaseItem, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseItem), args.Error(1)
}

func (m *MockTx) DeletePurchaseItems(ctx context.Context, purchaseID int64) error {
	args := m.Called(ctx, purchaseID)
	return args.Error(0)
}

func (m *MockTx) InsertPurchaseOrder(ctx context.Context, order *domain.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockTx) GetPurchaseOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockTx) UpdatePurchaseOrder(ctx context.Context, order *domain.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockTx) DeletePurchaseOrder(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTx) InsertPurchaseOrderItem(ctx context.Context, item *domain.PurchaseOrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTx) DeletePurchaseOrderItems(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockTx) GetVendorByName(ctx context.Context, name string) (*domain.Vendor, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockTx) InsertVendor(ctx context.Context, vendor *domain.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockTx) NextBillNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTx) EnsureBillSequence(ctx context.Context, min int64) error {
	args := m.Called(ctx, min)
	return args.Error(0)
}
