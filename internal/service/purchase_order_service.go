package service

import (
	"context"

	"github.com/shopspring/decimal"

	"billmint/internal/domain"
	"billmint/internal/money"
	"billmint/internal/port"
)

// OrderItemInput is one requested purchase-order line.
type OrderItemInput struct {
	ProductID    int64            `json:"product_id" binding:"required"`
	Qty          decimal.Decimal  `json:"qty" binding:"required"`
	Rate         decimal.Decimal  `json:"rate"`
	DiscountRate decimal.Decimal  `json:"discount_rate"`
	GSTPercent   *decimal.Decimal `json:"gst_percent"`
	Unit         string           `json:"unit"`
}

// CreateOrderInput is the DTO for drafting a purchase order.
type CreateOrderInput struct {
	VendorID  int64            `json:"vendor_id" binding:"required"`
	OrderDate string           `json:"order_date" binding:"required"`
	Items     []OrderItemInput `json:"items" binding:"required"`
	Remarks   string           `json:"remarks"`
}

// UpdateOrderInput is the DTO for editing a purchase order. A non-nil
// Items slice replaces every existing line.
type UpdateOrderInput struct {
	VendorID  *int64           `json:"vendor_id"`
	OrderDate *string          `json:"order_date"`
	Remarks   *string          `json:"remarks"`
	Items     []OrderItemInput `json:"items"`
}

// PurchaseOrderService manages draft orders to vendors. Orders are
// paperwork only: nothing here touches stock.
type PurchaseOrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*domain.PurchaseOrderWithItems, error)
	Update(ctx context.Context, id int64, input UpdateOrderInput) (*domain.PurchaseOrderWithItems, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.PurchaseOrderWithItems, error)
	List(ctx context.Context, offset, limit int) ([]domain.PurchaseOrder, int, error)
}

type purchaseOrderService struct {
	uow    port.UnitOfWork
	orders port.PurchaseOrderRepository
}

// NewPurchaseOrderService creates a new PurchaseOrderService implementation.
func NewPurchaseOrderService(uow port.UnitOfWork, orders port.PurchaseOrderRepository) PurchaseOrderService {
	return &purchaseOrderService{uow: uow, orders: orders}
}

func (s *purchaseOrderService) Create(ctx context.Context, input CreateOrderInput) (*domain.PurchaseOrderWithItems, error) {
	if input.VendorID == 0 {
		return nil, domain.NewValidationError("vendor_id is required")
	}
	orderDate, err := parseDate(input.OrderDate, "order_date")
	if err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, domain.NewValidationError("items must not be empty")
	}
	if err := validateOrderItems(input.Items); err != nil {
		return nil, err
	}

	var result *domain.PurchaseOrderWithItems
	err = s.uow.WithinTx(ctx, func(tx port.Tx) error {
		order := &domain.PurchaseOrder{
			VendorID:    input.VendorID,
			OrderDate:   orderDate,
			TotalAmount: decimal.Zero,
			GSTAmount:   decimal.Zero,
			FinalAmount: decimal.Zero,
			Status:      domain.RecordStatusActive,
			Remarks:     input.Remarks,
		}
		if err := tx.InsertPurchaseOrder(ctx, order); err != nil {
			return err
		}
		items, err := insertOrderLines(ctx, tx, order, input.Items)
		if err != nil {
			return err
		}
		if err := tx.UpdatePurchaseOrder(ctx, order); err != nil {
			return err
		}
		result = &domain.PurchaseOrderWithItems{PurchaseOrder: *order, Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *purchaseOrderService) Update(ctx context.Context, id int64, input UpdateOrderInput) (*domain.PurchaseOrderWithItems, error) {
	if input.Items != nil {
		if len(input.Items) == 0 {
			return nil, domain.NewValidationError("items must not be empty")
		}
		if err := validateOrderItems(input.Items); err != nil {
			return nil, err
		}
	}

	var result *domain.PurchaseOrderWithItems
	err := s.uow.WithinTx(ctx, func(tx port.Tx) error {
		order, err := tx.GetPurchaseOrder(ctx, id)
		if err != nil {
			return err
		}
		if input.VendorID != nil {
			order.VendorID = *input.VendorID
		}
		if input.OrderDate != nil {
			orderDate, err := parseDate(*input.OrderDate, "order_date")
			if err != nil {
				return err
			}
			order.OrderDate = orderDate
		}
		if input.Remarks != nil {
			order.Remarks = *input.Remarks
		}

		var items []domain.PurchaseOrderItem
		if input.Items != nil {
			if err := tx.DeletePurchaseOrderItems(ctx, order.ID); err != nil {
				return err
			}
			items, err = insertOrderLines(ctx, tx, order, input.Items)
			if err != nil {
				return err
			}
		}
		if err := tx.UpdatePurchaseOrder(ctx, order); err != nil {
			return err
		}
		result = &domain.PurchaseOrderWithItems{PurchaseOrder: *order, Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *purchaseOrderService) Delete(ctx context.Context, id int64) error {
	return s.uow.WithinTx(ctx, func(tx port.Tx) error {
		if _, err := tx.GetPurchaseOrder(ctx, id); err != nil {
			return err
		}
		if err := tx.DeletePurchaseOrderItems(ctx, id); err != nil {
			return err
		}
		return tx.DeletePurchaseOrder(ctx, id)
	})
}

func (s *purchaseOrderService) GetByID(ctx context.Context, id int64) (*domain.PurchaseOrderWithItems, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *purchaseOrderService) List(ctx context.Context, offset, limit int) ([]domain.PurchaseOrder, int, error) {
	return s.orders.List(ctx, offset, limit)
}

// insertOrderLines persists the given lines and writes the recomputed
// header totals back onto order. Unlike sale lines, every order line
// field is rounded the moment it is computed, and the header re-rounds
// the sums once more.
func insertOrderLines(ctx context.Context, tx port.Tx, order *domain.PurchaseOrder, items []OrderItemInput) ([]domain.PurchaseOrderItem, error) {
	out := make([]domain.PurchaseOrderItem, 0, len(items))
	total := decimal.Zero
	totalGST := decimal.Zero
	totalFinal := decimal.Zero

	for _, item := range items {
		product, err := tx.GetProductForUpdate(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		rate := item.Rate
		if rate.IsZero() {
			rate = product.Rate
		}
		var gstPercent decimal.Decimal
		if item.GSTPercent != nil {
			gstPercent = *item.GSTPercent
		} else if gstPercent, err = money.ParseGSTPercent(product.GST); err != nil {
			return nil, err
		}
		unit := item.Unit
		if unit == "" {
			unit = product.Unit
		}
		if unit == "" {
			unit = domain.DefaultUnit
		}

		amounts := money.ComputeOrderLine(money.Line{
			Qty:             item.Qty,
			Rate:            rate,
			DiscountPercent: item.DiscountRate,
			GSTPercent:      gstPercent,
		})

		line := domain.PurchaseOrderItem{
			PurchaseOrderID: order.ID,
			ProductID:       item.ProductID,
			Qty:             item.Qty,
			Rate:            rate,
			Amount:          amounts.Amount,
			DiscountRate:    item.DiscountRate,
			DiscountTotal:   amounts.DiscountTotal,
			GSTPercent:      gstPercent,
			GSTAmount:       amounts.GSTAmount,
			FinalAmount:     amounts.FinalAmount,
			Unit:            unit,
		}
		if err := tx.InsertPurchaseOrderItem(ctx, &line); err != nil {
			return nil, err
		}
		out = append(out, line)

		total = total.Add(amounts.Amount.Sub(amounts.DiscountTotal))
		totalGST = totalGST.Add(amounts.GSTAmount)
		totalFinal = totalFinal.Add(amounts.FinalAmount)
	}

	order.TotalAmount = money.Round2(total)
	order.GSTAmount = money.Round2(totalGST)
	order.FinalAmount = money.Round2(totalFinal)
	return out, nil
}

func validateOrderItems(items []OrderItemInput) error {
	for i, item := range items {
		if item.ProductID == 0 {
			return domain.NewValidationError("items[%d].product_id is required", i)
		}
		if !item.Qty.IsPositive() {
			return domain.NewValidationError("items[%d].qty must be positive", i)
		}
		if item.Rate.IsNegative() {
			return domain.NewValidationError("items[%d].rate must not be negative", i)
		}
		if item.DiscountRate.IsNegative() {
			return domain.NewValidationError("items[%d].discount_rate must not be negative", i)
		}
	}
	return nil
}
