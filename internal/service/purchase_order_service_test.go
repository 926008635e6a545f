package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billmint/internal/domain"
	"billmint/internal/service"
	"billmint/mocks"
)

func newOrderFixture(t *testing.T) (*mocks.MockUnitOfWork, *mocks.MockPurchaseOrderRepo, service.PurchaseOrderService) {
	t.Helper()
	uow := mocks.NewMockUnitOfWork()
	orderRepo := &mocks.MockPurchaseOrderRepo{}
	svc := service.NewPurchaseOrderService(uow, orderRepo)
	return uow, orderRepo, svc
}

func TestPurchaseOrderService_Create_RoundsEveryLineField(t *testing.T) {
	uow, _, svc := newOrderFixture(t)
	tx := uow.Tx

	product := &domain.Product{ID: 1, Name: "Widget", Rate: dec("33.33"), Size: dec("50"), GST: "18%", Unit: "PCS"}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("InsertPurchaseOrder", mock.Anything, mock.AnythingOfType("*domain.PurchaseOrder")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.PurchaseOrder).ID = 61
	}).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, int64(1)).Return(product, nil)
	var line *domain.PurchaseOrderItem
	tx.On("InsertPurchaseOrderItem", mock.Anything, mock.AnythingOfType("*domain.PurchaseOrderItem")).Run(func(args mock.Arguments) {
		line = args.Get(1).(*domain.PurchaseOrderItem)
	}).Return(nil)
	tx.On("UpdatePurchaseOrder", mock.Anything, mock.AnythingOfType("*domain.PurchaseOrder")).Return(nil)

	result, err := svc.Create(context.Background(), service.CreateOrderInput{
		VendorID:  7,
		OrderDate: "2026-03-10",
		Items:     []service.OrderItemInput{{ProductID: 1, Qty: dec("3"), DiscountRate: dec("5")}},
	})

	require.NoError(t, err)
	require.NotNil(t, line)
	// 3 x 33.33 with 5% discount and 18% GST, each field rounded on its own.
	assert.True(t, line.Amount.Equal(dec("99.99")), "amount = %s", line.Amount)
	assert.True(t, line.DiscountTotal.Equal(dec("5")), "discount = %s", line.DiscountTotal)
	assert.True(t, line.GSTAmount.Equal(dec("17.1")), "gst = %s", line.GSTAmount)
	assert.True(t, line.FinalAmount.Equal(dec("112.09")), "final = %s", line.FinalAmount)

	assert.True(t, result.TotalAmount.Equal(dec("94.99")))
	assert.True(t, result.GSTAmount.Equal(dec("17.1")))
	assert.True(t, result.FinalAmount.Equal(dec("112.09")))
	tx.AssertExpectations(t)
}

func TestPurchaseOrderService_Create_NoStockEffect(t *testing.T) {
	uow, _, svc := newOrderFixture(t)
	tx := uow.Tx

	product := &domain.Product{ID: 1, Name: "Widget", Rate: dec("100"), Size: dec("2"), GST: ""}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("InsertPurchaseOrder", mock.Anything, mock.AnythingOfType("*domain.PurchaseOrder")).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, int64(1)).Return(product, nil)
	tx.On("InsertPurchaseOrderItem", mock.Anything, mock.AnythingOfType("*domain.PurchaseOrderItem")).Return(nil)
	tx.On("UpdatePurchaseOrder", mock.Anything, mock.AnythingOfType("*domain.PurchaseOrder")).Return(nil)

	// Ordering more than is on hand is fine; orders never check or move stock.
	_, err := svc.Create(context.Background(), service.CreateOrderInput{
		VendorID:  7,
		OrderDate: "2026-03-10",
		Items:     []service.OrderItemInput{{ProductID: 1, Qty: dec("100")}},
	})

	require.NoError(t, err)
	tx.AssertNotCalled(t, "SetProductStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestPurchaseOrderService_Update_ReplacesItems(t *testing.T) {
	uow, _, svc := newOrderFixture(t)
	tx := uow.Tx

	order := &domain.PurchaseOrder{ID: 61, VendorID: 7, TotalAmount: dec("94.99")}
	product := &domain.Product{ID: 2, Name: "Gadget", Rate: dec("40"), GST: "12%"}

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("GetPurchaseOrder", mock.Anything, int64(61)).Return(order, nil)
	tx.On("DeletePurchaseOrderItems", mock.Anything, int64(61)).Return(nil)
	tx.On("GetProductForUpdate", mock.Anything, int64(2)).Return(product, nil)
	tx.On("InsertPurchaseOrderItem", mock.Anything, mock.AnythingOfType("*domain.PurchaseOrderItem")).Return(nil)
	tx.On("UpdatePurchaseOrder", mock.Anything, mock.AnythingOfType("*domain.PurchaseOrder")).Return(nil)

	result, err := svc.Update(context.Background(), 61, service.UpdateOrderInput{
		Items: []service.OrderItemInput{{ProductID: 2, Qty: dec("5")}},
	})

	require.NoError(t, err)
	assert.True(t, result.TotalAmount.Equal(dec("200")))
	assert.True(t, result.GSTAmount.Equal(dec("24")))
	assert.True(t, result.FinalAmount.Equal(dec("224")))
	tx.AssertExpectations(t)
}

func TestPurchaseOrderService_Update_EmptyItemsRejected(t *testing.T) {
	uow, _, svc := newOrderFixture(t)

	_, err := svc.Update(context.Background(), 61, service.UpdateOrderInput{
		Items: []service.OrderItemInput{},
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	uow.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestPurchaseOrderService_Delete(t *testing.T) {
	uow, _, svc := newOrderFixture(t)
	tx := uow.Tx

	uow.On("WithinTx", mock.Anything).Return(nil)
	tx.On("GetPurchaseOrder", mock.Anything, int64(61)).Return(&domain.PurchaseOrder{ID: 61}, nil)
	tx.On("DeletePurchaseOrderItems", mock.Anything, int64(61)).Return(nil)
	tx.On("DeletePurchaseOrder", mock.Anything, int64(61)).Return(nil)

	err := svc.Delete(context.Background(), 61)

	require.NoError(t, err)
	tx.AssertExpectations(t)
}
