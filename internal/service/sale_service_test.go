package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billmint/internal/config"
	"billmint/internal/domain"
	"billmint/internal/service"
	"billmint/mocks"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// decEq matches a decimal argument by numeric value rather than internal
// representation.
func decEq(want string) interface{} {
	w := dec(want)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(w) })
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func newSaleFixture(t *testing.T) (*mocks.MockUnitOfWork, *mocks.MockSaleRepo, service.SaleService) {
	t.Helper()
	uow := mocks.NewMockUnitOfWork()
	saleRepo := &mocks.MockSaleRepo{}
	svc := service.NewSaleService(uow, saleRepo, config.SalesConfig{RestoreStockOnDelete: true})
	return uow, saleRepo, svc
}

func TestSaleService_Create_GSTNoDiscount(t *testing.T) {
	uow, _, svc := newSaleFixture(t)
	tx := uow.Tx

	product := &domain.Product{ID: 1, Name: "Widget", Rate: dec("100"), Size: dec("50"), GST: "18%", Unit: "PCS"}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("NextBillNumber", mock.Anything).Return(int64(7), nil)
	tx.On("InsertSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Sale).ID = 42
	}).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, int64(1)).Return(product, nil)
	tx.On("InsertSaleItem", mock.Anything, mock.AnythingOfType("*domain.SaleItem")).Return(nil)
	tx.On("SetProductStock", mock.Anything, int64(1), decEq("40")).Return(nil)
	tx.On("UpdateSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return(nil)
	tx.On("SumCustomerSales", mock.Anything, int64(5), int64(42)).Return(decimal.Zero, nil)
	tx.On("SumCustomerPayments", mock.Anything, int64(5)).Return(decimal.Zero, nil)
	tx.On("SetSalePaymentStatus", mock.Anything, int64(42), domain.PaymentStatusUnpaid).Return(nil)

	result, err := svc.Create(context.Background(), service.CreateSaleInput{
		CustomerID: 5,
		BillDate:   "2026-01-15",
		Items:      []service.SaleItemInput{{ProductID: 1, Qty: dec("10")}},
	})

	require.NoError(t, err)
	assert.Equal(t, "BILL-007", result.BillNo)
	assert.True(t, result.TotalTaxable.Equal(dec("1000")), "taxable = %s", result.TotalTaxable)
	assert.True(t, result.TotalGST.Equal(dec("180")), "gst = %s", result.TotalGST)
	assert.True(t, result.TotalAmount.Equal(dec("1180")), "total = %s", result.TotalAmount)
	assert.True(t, result.NewDue.Equal(dec("1180")))
	assert.Equal(t, domain.PaymentStatusUnpaid, result.PaymentStatus)
	tx.AssertExpectations(t)
}

func TestSaleService_Create_DiscountAndCash(t *testing.T) {
	uow, _, svc := newSaleFixture(t)
	tx := uow.Tx

	// 2 x 100 with 5% discount and 18% GST: taxable 190, gst 34.20, net 224.20.
	product := &domain.Product{ID: 3, Name: "Gadget", Rate: dec("100"), Size: dec("20"), GST: "18%", Unit: "PCS"}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("InsertSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Sale).ID = 9
	}).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, int64(3)).Return(product, nil)
	var line *domain.SaleItem
	tx.On("InsertSaleItem", mock.Anything, mock.AnythingOfType("*domain.SaleItem")).Run(func(args mock.Arguments) {
		line = args.Get(1).(*domain.SaleItem)
	}).Return(nil)
	tx.On("SetProductStock", mock.Anything, int64(3), decEq("18")).Return(nil)
	tx.On("UpdateSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return(nil)
	tx.On("SumCustomerSales", mock.Anything, int64(5), int64(9)).Return(decimal.Zero, nil)
	tx.On("SumCustomerPayments", mock.Anything, int64(5)).Return(decimal.Zero, nil)
	var payment *domain.SalePayment
	tx.On("InsertPayment", mock.Anything, mock.AnythingOfType("*domain.SalePayment")).Run(func(args mock.Arguments) {
		payment = args.Get(1).(*domain.SalePayment)
	}).Return(nil)
	tx.On("SetSalePaymentStatus", mock.Anything, int64(9), domain.PaymentStatusPartial).Return(nil)

	result, err := svc.Create(context.Background(), service.CreateSaleInput{
		CustomerID:   5,
		BillNo:       "INV-100",
		BillDate:     "2026-01-15",
		Items:        []service.SaleItemInput{{ProductID: 3, Qty: dec("2"), DiscountRate: decPtr("5")}},
		CashReceived: dec("100"),
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-100", result.BillNo)
	assert.True(t, result.TotalTaxable.Equal(dec("190")))
	assert.True(t, result.TotalGST.Equal(dec("34.2")))
	assert.True(t, result.TotalAmount.Equal(dec("224.2")))
	assert.True(t, result.NewDue.Equal(dec("124.2")), "new due = %s", result.NewDue)
	assert.Equal(t, domain.PaymentStatusPartial, result.PaymentStatus)

	require.NotNil(t, line)
	assert.True(t, line.DiscountAmount.Equal(dec("10")))
	assert.True(t, line.TaxableAmount.Equal(dec("190")))
	assert.True(t, line.NetTotal.Equal(dec("224.2")))

	require.NotNil(t, payment)
	assert.Equal(t, "Received at billing", payment.Remarks)
	assert.True(t, payment.Amount.Equal(dec("100")))
	tx.AssertNotCalled(t, "NextBillNumber", mock.Anything)
}

func TestSaleService_Create_CashCoversEverything(t *testing.T) {
	uow, _, svc := newSaleFixture(t)
	tx := uow.Tx

	product := &domain.Product{ID: 1, Name: "Widget", Rate: dec("100"), Size: dec("50"), GST: "", Unit: "PCS"}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("NextBillNumber", mock.Anything).Return(int64(1), nil)
	tx.On("InsertSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Sale).ID = 1
	}).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, int64(1)).Return(product, nil)
	tx.On("InsertSaleItem", mock.Anything, mock.AnythingOfType("*domain.SaleItem")).Return(nil)
	tx.On("SetProductStock", mock.Anything, int64(1), decEq("49")).Return(nil)
	tx.On("UpdateSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return(nil)
	// 300 previously billed, 100 previously paid: previous due 200.
	tx.On("SumCustomerSales", mock.Anything, int64(5), int64(1)).Return(dec("300"), nil)
	tx.On("SumCustomerPayments", mock.Anything, int64(5)).Return(dec("100"), nil)
	tx.On("InsertPayment", mock.Anything, mock.AnythingOfType("*domain.SalePayment")).Return(nil)
	tx.On("SetSalePaymentStatus", mock.Anything, int64(1), domain.PaymentStatusPaid).Return(nil)

	result, err := svc.Create(context.Background(), service.CreateSaleInput{
		CustomerID:   5,
		BillDate:     "2026-01-15",
		Items:        []service.SaleItemInput{{ProductID: 1, Qty: dec("1")}},
		CashReceived: dec("300"),
	})

	require.NoError(t, err)
	assert.True(t, result.PreviousDue.Equal(dec("200")))
	assert.True(t, result.TotalAmount.Equal(dec("100")))
	assert.True(t, result.NewDue.Equal(dec("0")))
	assert.Equal(t, domain.PaymentStatusPaid, result.PaymentStatus)
}

func TestSaleService_Create_InsufficientStock(t *testing.T) {
	uow, _, svc := newSaleFixture(t)
	tx := uow.Tx

	product := &domain.Product{ID: 1, Name: "Widget", Rate: dec("100"), Size: dec("5"), GST: "18%"}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("NextBillNumber", mock.Anything).Return(int64(2), nil)
	tx.On("InsertSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, int64(1)).Return(product, nil)

	_, err := svc.Create(context.Background(), service.CreateSaleInput{
		CustomerID: 5,
		BillDate:   "2026-01-15",
		Items:      []service.SaleItemInput{{ProductID: 1, Qty: dec("10")}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(1), stockErr.ProductID)
	assert.True(t, stockErr.Available.Equal(dec("5")))
	tx.AssertNotCalled(t, "InsertSaleItem", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "SetProductStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaleService_Create_RetriesAutoBillNo(t *testing.T) {
	uow, _, svc := newSaleFixture(t)
	tx := uow.Tx

	product := &domain.Product{ID: 1, Name: "Widget", Rate: dec("100"), Size: dec("50"), GST: ""}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("NextBillNumber", mock.Anything).Return(int64(7), nil).Once()
	tx.On("NextBillNumber", mock.Anything).Return(int64(8), nil).Once()
	// The rolled-back attempt drew 7, so the committed counter must be
	// pushed past it before the redraw.
	tx.On("EnsureBillSequence", mock.Anything, int64(7)).Return(nil).Once()
	tx.On("InsertSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return(domain.ErrDuplicateBillNo).Once()
	tx.On("InsertSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Sale).ID = 2
	}).Return(nil).Once()
	tx.On("GetProductForUpdate", mock.Anything, int64(1)).Return(product, nil)
	tx.On("InsertSaleItem", mock.Anything, mock.AnythingOfType("*domain.SaleItem")).Return(nil)
	tx.On("SetProductStock", mock.Anything, int64(1), decEq("49")).Return(nil)
	tx.On("UpdateSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return(nil)
	tx.On("SumCustomerSales", mock.Anything, int64(5), int64(2)).Return(decimal.Zero, nil)
	tx.On("SumCustomerPayments", mock.Anything, int64(5)).Return(decimal.Zero, nil)
	tx.On("SetSalePaymentStatus", mock.Anything, int64(2), domain.PaymentStatusUnpaid).Return(nil)

	result, err := svc.Create(context.Background(), service.CreateSaleInput{
		CustomerID: 5,
		BillDate:   "2026-01-15",
		Items:      []service.SaleItemInput{{ProductID: 1, Qty: dec("1")}},
	})

	require.NoError(t, err)
	assert.Equal(t, "BILL-008", result.BillNo)
	tx.AssertExpectations(t)
}

func TestSaleService_Create_ExplicitBillNoDoesNotRetry(t *testing.T) {
	uow, _, svc := newSaleFixture(t)
	tx := uow.Tx

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("InsertSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return(domain.ErrDuplicateBillNo).Once()

	_, err := svc.Create(context.Background(), service.CreateSaleInput{
		CustomerID: 5,
		BillNo:     "INV-1",
		BillDate:   "2026-01-15",
		Items:      []service.SaleItemInput{{ProductID: 1, Qty: dec("1")}},
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateBillNo)
	tx.AssertNumberOfCalls(t, "InsertSale", 1)
	tx.AssertNotCalled(t, "EnsureBillSequence", mock.Anything, mock.Anything)
}

func TestSaleService_Create_ValidationShortCircuits(t *testing.T) {
	uow, _, svc := newSaleFixture(t)

	cases := []struct {
		name  string
		input service.CreateSaleInput
	}{
		{"missing customer", service.CreateSaleInput{BillDate: "2026-01-15", Items: []service.SaleItemInput{{ProductID: 1, Qty: dec("1")}}}},
		{"bad date", service.CreateSaleInput{CustomerID: 5, BillDate: "15/01/2026", Items: []service.SaleItemInput{{ProductID: 1, Qty: dec("1")}}}},
		{"no items", service.CreateSaleInput{CustomerID: 5, BillDate: "2026-01-15"}},
		{"negative cash", service.CreateSaleInput{CustomerID: 5, BillDate: "2026-01-15", Items: []service.SaleItemInput{{ProductID: 1, Qty: dec("1")}}, CashReceived: dec("-1")}},
		{"zero qty", service.CreateSaleInput{CustomerID: 5, BillDate: "2026-01-15", Items: []service.SaleItemInput{{ProductID: 1, Qty: dec("0")}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	uow.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestSaleService_Update_ReplacesItems(t *testing.T) {
	uow, _, svc := newSaleFixture(t)
	tx := uow.Tx

	sale := &domain.Sale{ID: 4, CustomerID: 5, TotalAmount: dec("500"), Status: domain.RecordStatusActive}
	oldProduct := &domain.Product{ID: 2, Name: "Old", Rate: dec("50"), Size: dec("10"), GST: ""}
	newProduct := &domain.Product{ID: 1, Name: "New", Rate: dec("100"), Size: dec("30"), GST: "18%"}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("GetSale", mock.Anything, int64(4)).Return(sale, nil)
	tx.On("ListSaleItems", mock.Anything, int64(4)).Return([]domain.SaleItem{
		{ID: 90, SaleID: 4, ProductID: 2, Qty: dec("5")},
	}, nil)
	tx.On("GetProductForUpdate", mock.Anything, int64(2)).Return(oldProduct, nil)
	tx.On("SetProductStock", mock.Anything, int64(2), decEq("15")).Return(nil)
	tx.On("DeleteSaleItems", mock.Anything, int64(4)).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, int64(1)).Return(newProduct, nil)
	tx.On("InsertSaleItem", mock.Anything, mock.AnythingOfType("*domain.SaleItem")).Return(nil)
	tx.On("SetProductStock", mock.Anything, int64(1), decEq("27")).Return(nil)
	tx.On("SumSalePayments", mock.Anything, int64(4)).Return(dec("100"), nil)
	tx.On("UpdateSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return(nil)

	result, err := svc.Update(context.Background(), 4, service.UpdateSaleInput{
		Items: []service.SaleItemInput{{ProductID: 1, Qty: dec("3")}},
	})

	require.NoError(t, err)
	assert.True(t, result.TotalTaxable.Equal(dec("300")))
	assert.True(t, result.TotalGST.Equal(dec("54")))
	assert.True(t, result.TotalAmount.Equal(dec("354")))
	assert.Equal(t, domain.PaymentStatusPartial, sale.PaymentStatus)
	tx.AssertExpectations(t)
}

func TestSaleService_Update_HeaderOnlyLeavesTotals(t *testing.T) {
	uow, _, svc := newSaleFixture(t)
	tx := uow.Tx

	sale := &domain.Sale{ID: 4, CustomerID: 5, TotalAmount: dec("500"), Status: domain.RecordStatusActive}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("GetSale", mock.Anything, int64(4)).Return(sale, nil)
	tx.On("UpdateSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return(nil)

	remarks := "rush order"
	result, err := svc.Update(context.Background(), 4, service.UpdateSaleInput{Remarks: &remarks})

	require.NoError(t, err)
	assert.True(t, result.TotalAmount.Equal(dec("500")))
	assert.Equal(t, "rush order", sale.Remarks)
	tx.AssertNotCalled(t, "DeleteSaleItems", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "SetProductStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaleService_Update_RejectsBadStatus(t *testing.T) {
	uow, _, svc := newSaleFixture(t)

	bad := "Archived"
	_, err := svc.Update(context.Background(), 4, service.UpdateSaleInput{Status: &bad})

	assert.ErrorIs(t, err, domain.ErrValidation)
	uow.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestSaleService_Update_RejectsBlankBillNo(t *testing.T) {
	uow, _, svc := newSaleFixture(t)

	blank := "   "
	_, err := svc.Update(context.Background(), 4, service.UpdateSaleInput{BillNo: &blank})

	assert.ErrorIs(t, err, domain.ErrValidation)
	uow.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestSaleService_Delete_RestoresStock(t *testing.T) {
	uow, _, svc := newSaleFixture(t)
	tx := uow.Tx

	product := &domain.Product{ID: 1, Name: "Widget", Size: dec("40")}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("GetSale", mock.Anything, int64(4)).Return(&domain.Sale{ID: 4}, nil)
	tx.On("ListSaleItems", mock.Anything, int64(4)).Return([]domain.SaleItem{
		{ID: 90, SaleID: 4, ProductID: 1, Qty: dec("10")},
	}, nil)
	tx.On("GetProductForUpdate", mock.Anything, int64(1)).Return(product, nil)
	tx.On("SetProductStock", mock.Anything, int64(1), decEq("50")).Return(nil)
	tx.On("DeleteSaleItems", mock.Anything, int64(4)).Return(nil)
	tx.On("DeleteSale", mock.Anything, int64(4)).Return(nil)

	err := svc.Delete(context.Background(), 4)

	require.NoError(t, err)
	tx.AssertExpectations(t)
}

func TestSaleService_Delete_LegacyModeKeepsStock(t *testing.T) {
	uow := mocks.NewMockUnitOfWork()
	svc := service.NewSaleService(uow, &mocks.MockSaleRepo{}, config.SalesConfig{RestoreStockOnDelete: false})
	tx := uow.Tx

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("GetSale", mock.Anything, int64(4)).Return(&domain.Sale{ID: 4}, nil)
	tx.On("DeleteSaleItems", mock.Anything, int64(4)).Return(nil)
	tx.On("DeleteSale", mock.Anything, int64(4)).Return(nil)

	err := svc.Delete(context.Background(), 4)

	require.NoError(t, err)
	tx.AssertNotCalled(t, "ListSaleItems", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "SetProductStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestSaleService_Delete_NotFound(t *testing.T) {
	uow, _, svc := newSaleFixture(t)
	tx := uow.Tx

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("GetSale", mock.Anything, int64(99)).Return(nil, domain.ErrSaleNotFound)

	err := svc.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
	tx.AssertNotCalled(t, "DeleteSale", mock.Anything, mock.Anything)
}

func TestSaleService_Create_TxOpenFailure(t *testing.T) {
	uow, _, svc := newSaleFixture(t)

	boom := errors.New("connection refused")
	uow.On("WithinTx", mock.Anything).Return(boom)

	_, err := svc.Create(context.Background(), service.CreateSaleInput{
		CustomerID: 5,
		BillNo:     "INV-2",
		BillDate:   "2026-01-15",
		Items:      []service.SaleItemInput{{ProductID: 1, Qty: dec("1")}},
	})

	assert.ErrorIs(t, err, boom)
}
