package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"billmint/internal/domain"
	"billmint/internal/port"
)

type purchaseOrderRepo struct {
	db *sqlx.DB
}

// NewPurchaseOrderRepo creates a new PostgreSQL-backed PurchaseOrderRepository.
func NewPurchaseOrderRepo(db *sqlx.DB) port.PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) GetByID(ctx context.Context, id int64) (*domain.PurchaseOrderWithItems, error) {
	var order domain.PurchaseOrder
	err := r.db.GetContext(ctx, &order, "SELECT * FROM purchase_orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPurchaseOrderNotFound
		}
		return nil, fmt.Errorf("purchaseOrderRepo.GetByID: %w", err)
	}

	var items []domain.PurchaseOrderItem
	err = r.db.SelectContext(ctx, &items,
		"SELECT * FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id", id)
	if err != nil {
		return nil, fmt.Errorf("purchaseOrderRepo.GetByID items: %w", err)
	}

	return &domain.PurchaseOrderWithItems{PurchaseOrder: order, Items: items}, nil
}

func (r *purchaseOrderRepo) List(ctx context.Context, offset, limit int) ([]domain.PurchaseOrder, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM purchase_orders"); err != nil {
		return nil, 0, fmt.Errorf("purchaseOrderRepo.List count: %w", err)
	}

	var orders []domain.PurchaseOrder
	err := r.db.SelectContext(ctx, &orders,
		"SELECT * FROM purchase_orders ORDER BY order_date DESC, id DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("purchaseOrderRepo.List: %w", err)
	}
	return orders, total, nil
}
