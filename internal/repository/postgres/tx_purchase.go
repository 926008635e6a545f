package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"billmint/internal/domain"
)

func (t *txStore) InsertPurchase(ctx context.Context, purchase *domain.Purchase) error {
	query := `INSERT INTO purchases
		(vendor_id, gst_no, bill_no, bill_date, total_amount, status, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := t.tx.QueryRowxContext(ctx, query,
		purchase.VendorID, purchase.GSTNo, purchase.BillNo, purchase.BillDate,
		purchase.TotalAmount, purchase.Status, purchase.Remarks).
		Scan(&purchase.ID, &purchase.CreatedAt, &purchase.UpdatedAt)
	if err != nil {
		return fmt.Errorf("txStore.InsertPurchase: %w", err)
	}
	return nil
}

func (t *txStore) GetPurchase(ctx context.Context, id int64) (*domain.Purchase, error) {
	var p domain.Purchase
	err := t.tx.GetContext(ctx, &p, "SELECT * FROM purchases WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("txStore.GetPurchase: %w", err)
	}
	return &p, nil
}

func (t *txStore) UpdatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	query := `UPDATE purchases SET
		vendor_id = $1, gst_no = $2, bill_no = $3, bill_date = $4,
		total_amount = $5, status = $6, remarks = $7, updated_at = now()
		WHERE id = $8`
	result, err := t.tx.ExecContext(ctx, query,
		purchase.VendorID, purchase.GSTNo, purchase.BillNo, purchase.BillDate,
		purchase.TotalAmount, purchase.Status, purchase.Remarks, purchase.ID)
	if err != nil {
		return fmt.Errorf("txStore.UpdatePurchase: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPurchaseNotFound
	}
	return nil
}

func (t *txStore) DeletePurchase(ctx context.Context, id int64) error {
	result, err := t.tx.ExecContext(ctx, "DELETE FROM purchases WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("txStore.DeletePurchase: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPurchaseNotFound
	}
	return nil
}

func (t *txStore) InsertPurchaseItem(ctx context.Context, item *domain.PurchaseItem) error {
	query := `INSERT INTO purchase_items
		(purchase_id, product_id, rate, size, unit, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := t.tx.GetContext(ctx, &item.ID, query,
		item.PurchaseID, item.ProductID, item.Rate, item.Size, item.Unit, item.Status)
	if err != nil {
		return fmt.Errorf("txStore.InsertPurchaseItem: %w", err)
	}
	return nil
}

func (t *txStore) GetPurchaseItem(ctx context.Context, id int64) (*domain.PurchaseItem, error) {
	var item domain.PurchaseItem
	err := t.tx.GetContext(ctx, &item, "SELECT * FROM purchase_items WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("txStore.GetPurchaseItem: %w", err)
	}
	return &item, nil
}

func (t *txStore) UpdatePurchaseItem(ctx context.Context, item *domain.PurchaseItem) error {
	query := `UPDATE purchase_items SET
		product_id = $1, rate = $2, size = $3, unit = $4, status = $5
		WHERE id = $6 AND purchase_id = $7`
	result, err := t.tx.ExecContext(ctx, query,
		item.ProductID, item.Rate, item.Size, item.Unit, item.Status,
		item.ID, item.PurchaseID)
	if err != nil {
		return fmt.Errorf("txStore.UpdatePurchaseItem: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *txStore) ListPurchaseItems(ctx context.Context, purchaseID int64) ([]domain.PurchaseItem, error) {
	var items []domain.PurchaseItem
	err := t.tx.SelectContext(ctx, &items,
		"SELECT * FROM purchase_items WHERE purchase_id = $1 ORDER BY id", purchaseID)
	if err != nil {
		return nil, fmt.Errorf("txStore.ListPurchaseItems: %w", err)
	}
	return items, nil
}

func (t *txStore) DeletePurchaseItems(ctx context.Context, purchaseID int64) error {
	_, err := t.tx.ExecContext(ctx, "DELETE FROM purchase_items WHERE purchase_id = $1", purchaseID)
	if err != nil {
		return fmt.Errorf("txStore.DeletePurchaseItems: %w", err)
	}
	return nil
}

func (t *txStore) InsertPurchaseOrder(ctx context.Context, order *domain.PurchaseOrder) error {
	query := `INSERT INTO purchase_orders
		(vendor_id, order_date, total_amount, gst_amount, final_amount, status, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := t.tx.QueryRowxContext(ctx, query,
		order.VendorID, order.OrderDate, order.TotalAmount, order.GSTAmount,
		order.FinalAmount, order.Status, order.Remarks).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("txStore.InsertPurchaseOrder: %w", err)
	}
	return nil
}

func (t *txStore) GetPurchaseOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	var o domain.PurchaseOrder
	err := t.tx.GetContext(ctx, &o, "SELECT * FROM purchase_orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPurchaseOrderNotFound
		}
		return nil, fmt.Errorf("txStore.GetPurchaseOrder: %w", err)
	}
	return &o, nil
}

func (t *txStore) UpdatePurchaseOrder(ctx context.Context, order *domain.PurchaseOrder) error {
	query := `UPDATE purchase_orders SET
		vendor_id = $1, order_date = $2, total_amount = $3, gst_amount = $4,
		final_amount = $5, status = $6, remarks = $7, updated_at = now()
		WHERE id = $8`
	result, err := t.tx.ExecContext(ctx, query,
		order.VendorID, order.OrderDate, order.TotalAmount, order.GSTAmount,
		order.FinalAmount, order.Status, order.Remarks, order.ID)
	if err != nil {
		return fmt.Errorf("txStore.UpdatePurchaseOrder: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPurchaseOrderNotFound
	}
	return nil
}

func (t *txStore) DeletePurchaseOrder(ctx context.Context, id int64) error {
	result, err := t.tx.ExecContext(ctx, "DELETE FROM purchase_orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("txStore.DeletePurchaseOrder: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPurchaseOrderNotFound
	}
	return nil
}

func (t *txStore) InsertPurchaseOrderItem(ctx context.Context, item *domain.PurchaseOrderItem) error {
	query := `INSERT INTO purchase_order_items
		(purchase_order_id, product_id, qty, rate, amount, discount_rate,
		 discount_total, gst_percent, gst_amount, final_amount, unit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := t.tx.GetContext(ctx, &item.ID, query,
		item.PurchaseOrderID, item.ProductID, item.Qty, item.Rate, item.Amount,
		item.DiscountRate, item.DiscountTotal, item.GSTPercent, item.GSTAmount,
		item.FinalAmount, item.Unit)
	if err != nil {
		return fmt.Errorf("txStore.InsertPurchaseOrderItem: %w", err)
	}
	return nil
}

func (t *txStore) DeletePurchaseOrderItems(ctx context.Context, orderID int64) error {
	_, err := t.tx.ExecContext(ctx, "DELETE FROM purchase_order_items WHERE purchase_order_id = $1", orderID)
	if err != nil {
		return fmt.Errorf("txStore.DeletePurchaseOrderItems: %w", err)
	}
	return nil
}
