package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billmint/internal/domain"
	"billmint/internal/service"
	"billmint/mocks"
)

func newPaymentFixture(t *testing.T) (*mocks.MockUnitOfWork, *mocks.MockSalePaymentRepo, service.PaymentService) {
	t.Helper()
	uow := mocks.NewMockUnitOfWork()
	paymentRepo := &mocks.MockSalePaymentRepo{}
	svc := service.NewPaymentService(uow, paymentRepo)
	return uow, paymentRepo, svc
}

func TestPaymentService_Add_Partial(t *testing.T) {
	uow, _, svc := newPaymentFixture(t)
	tx := uow.Tx

	sale := &domain.Sale{ID: 3, CustomerID: 5, TotalAmount: dec("1180")}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("GetSale", mock.Anything, int64(3)).Return(sale, nil)
	tx.On("InsertPayment", mock.Anything, mock.AnythingOfType("*domain.SalePayment")).Return(nil)
	tx.On("SumSalePayments", mock.Anything, int64(3)).Return(dec("500"), nil)
	tx.On("SetSalePaymentStatus", mock.Anything, int64(3), domain.PaymentStatusPartial).Return(nil)

	result, err := svc.Add(context.Background(), service.AddPaymentInput{
		SaleID:      3,
		CustomerID:  5,
		PaymentDate: "2026-02-01",
		Amount:      dec("500"),
		Method:      "UPI",
	})

	require.NoError(t, err)
	assert.True(t, result.Paid.Equal(dec("500")))
	assert.True(t, result.Due.Equal(dec("680")))
	assert.Equal(t, domain.PaymentStatusPartial, result.PaymentStatus)
	tx.AssertExpectations(t)
}

func TestPaymentService_Add_OverpaymentIsPaidWithZeroDue(t *testing.T) {
	uow, _, svc := newPaymentFixture(t)
	tx := uow.Tx

	sale := &domain.Sale{ID: 3, CustomerID: 5, TotalAmount: dec("1180")}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("GetSale", mock.Anything, int64(3)).Return(sale, nil)
	tx.On("InsertPayment", mock.Anything, mock.AnythingOfType("*domain.SalePayment")).Return(nil)
	tx.On("SumSalePayments", mock.Anything, int64(3)).Return(dec("1500"), nil)
	tx.On("SetSalePaymentStatus", mock.Anything, int64(3), domain.PaymentStatusPaid).Return(nil)

	result, err := svc.Add(context.Background(), service.AddPaymentInput{
		SaleID:      3,
		CustomerID:  5,
		PaymentDate: "2026-02-01",
		Amount:      dec("1500"),
	})

	require.NoError(t, err)
	assert.True(t, result.Due.IsZero(), "due = %s", result.Due)
	assert.Equal(t, domain.PaymentStatusPaid, result.PaymentStatus)
}

func TestPaymentService_Add_Validation(t *testing.T) {
	uow, _, svc := newPaymentFixture(t)

	cases := []struct {
		name  string
		input service.AddPaymentInput
	}{
		{"zero amount", service.AddPaymentInput{SaleID: 3, CustomerID: 5, PaymentDate: "2026-02-01", Amount: dec("0")}},
		{"negative amount", service.AddPaymentInput{SaleID: 3, CustomerID: 5, PaymentDate: "2026-02-01", Amount: dec("-5")}},
		{"missing sale", service.AddPaymentInput{CustomerID: 5, PaymentDate: "2026-02-01", Amount: dec("5")}},
		{"bad date", service.AddPaymentInput{SaleID: 3, CustomerID: 5, PaymentDate: "01-02-2026", Amount: dec("5")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	uow.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPaymentService_Add_SaleNotFound(t *testing.T) {
	uow, _, svc := newPaymentFixture(t)
	tx := uow.Tx

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("GetSale", mock.Anything, int64(99)).Return(nil, domain.ErrSaleNotFound)

	_, err := svc.Add(context.Background(), service.AddPaymentInput{
		SaleID:      99,
		CustomerID:  5,
		PaymentDate: "2026-02-01",
		Amount:      dec("5"),
	})

	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
	tx.AssertNotCalled(t, "InsertPayment", mock.Anything, mock.Anything)
}

func TestPaymentService_Delete_RevertsStatus(t *testing.T) {
	uow, _, svc := newPaymentFixture(t)
	tx := uow.Tx

	payment := &domain.SalePayment{ID: 12, SaleID: 3, CustomerID: 5, Amount: dec("500")}
	sale := &domain.Sale{ID: 3, CustomerID: 5, TotalAmount: dec("1180")}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("GetPayment", mock.Anything, int64(12)).Return(payment, nil)
	tx.On("DeletePayment", mock.Anything, int64(12)).Return(int64(1), nil)
	tx.On("GetSale", mock.Anything, int64(3)).Return(sale, nil)
	tx.On("SumSalePayments", mock.Anything, int64(3)).Return(dec("0"), nil)
	tx.On("SetSalePaymentStatus", mock.Anything, int64(3), domain.PaymentStatusUnpaid).Return(nil)

	result, err := svc.Delete(context.Background(), 12)

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.AffectedRows)
	tx.AssertExpectations(t)
}

func TestPaymentService_Delete_NotFound(t *testing.T) {
	uow, _, svc := newPaymentFixture(t)
	tx := uow.Tx

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("GetPayment", mock.Anything, int64(7)).Return(nil, domain.ErrPaymentNotFound)

	_, err := svc.Delete(context.Background(), 7)

	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
	tx.AssertNotCalled(t, "DeletePayment", mock.Anything, mock.Anything)
}

func TestPaymentService_CustomerLedger(t *testing.T) {
	uow, _, svc := newPaymentFixture(t)
	tx := uow.Tx

	billDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("ListCustomerSales", mock.Anything, int64(5)).Return([]domain.Sale{
		{ID: 1, CustomerID: 5, BillNo: "BILL-001", BillDate: billDate, TotalAmount: dec("1180")},
		{ID: 2, CustomerID: 5, BillNo: "BILL-002", BillDate: billDate, TotalAmount: dec("500")},
	}, nil)
	tx.On("ListCustomerPayments", mock.Anything, int64(5)).Return([]domain.SalePayment{
		{ID: 10, SaleID: 1, CustomerID: 5, Amount: dec("500")},
		{ID: 11, SaleID: 1, CustomerID: 5, Amount: dec("680")},
	}, nil)

	ledger, err := svc.CustomerLedger(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, ledger.Ledger, 2)

	first := ledger.Ledger[0]
	assert.Equal(t, "BILL-001", first.BillNo)
	assert.Equal(t, "2026-01-15", first.Date)
	assert.True(t, first.Paid.Equal(dec("1180")))
	assert.True(t, first.Pending.IsZero())
	assert.Len(t, first.Payments, 2)

	second := ledger.Ledger[1]
	assert.True(t, second.Paid.IsZero())
	assert.True(t, second.Pending.Equal(dec("500")))
	assert.NotNil(t, second.Payments)
	assert.Len(t, second.Payments, 0)

	assert.True(t, ledger.TotalSale.Equal(dec("1680")))
	assert.True(t, ledger.TotalPaid.Equal(dec("1180")))
	assert.True(t, ledger.TotalPending.Equal(dec("500")))
}

func TestPaymentService_CustomerLedger_OverpaidSaleClampsPending(t *testing.T) {
	uow, _, svc := newPaymentFixture(t)
	tx := uow.Tx

	billDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("ListCustomerSales", mock.Anything, int64(5)).Return([]domain.Sale{
		{ID: 1, CustomerID: 5, BillNo: "BILL-001", BillDate: billDate, TotalAmount: dec("100")},
	}, nil)
	tx.On("ListCustomerPayments", mock.Anything, int64(5)).Return([]domain.SalePayment{
		{ID: 10, SaleID: 1, CustomerID: 5, Amount: dec("150")},
	}, nil)

	ledger, err := svc.CustomerLedger(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, ledger.Ledger, 1)
	assert.True(t, ledger.Ledger[0].Pending.IsZero())
	assert.True(t, ledger.TotalPending.IsZero())
}

func TestPaymentService_ListBySale(t *testing.T) {
	_, paymentRepo, svc := newPaymentFixture(t)

	paymentRepo.On("ListBySale", mock.Anything, int64(3)).Return([]domain.SalePayment{
		{ID: 10, SaleID: 3, Amount: dec("500")},
	}, nil)

	payments, err := svc.ListBySale(context.Background(), 3)

	require.NoError(t, err)
	assert.Len(t, payments, 1)
}
