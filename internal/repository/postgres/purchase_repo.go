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

type purchaseRepo struct {
	db *sqlx.DB
}

// NewPurchaseRepo creates a new PostgreSQL-backed PurchaseRepository.
func NewPurchaseRepo(db *sqlx.DB) port.PurchaseRepository {
	return &purchaseRepo{db: db}
}

func (r *purchaseRepo) GetByID(ctx context.Context, id int64) (*domain.PurchaseWithItems, error) {
	var purchase domain.Purchase
	err := r.db.GetContext(ctx, &purchase, "SELECT * FROM purchases WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("purchaseRepo.GetByID: %w", err)
	}

	var items []domain.PurchaseItem
	err = r.db.SelectContext(ctx, &items,
		"SELECT * FROM purchase_items WHERE purchase_id = $1 ORDER BY id", id)
	if err != nil {
		return nil, fmt.Errorf("purchaseRepo.GetByID items: %w", err)
	}

	return &domain.PurchaseWithItems{Purchase: purchase, Items: items}, nil
}

func (r *purchaseRepo) List(ctx context.Context, offset, limit int) ([]domain.Purchase, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM purchases"); err != nil {
		return nil, 0, fmt.Errorf("purchaseRepo.List count: %w", err)
	}

	var purchases []domain.Purchase
	err := r.db.SelectContext(ctx, &purchases,
		"SELECT * FROM purchases ORDER BY bill_date DESC, id DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("purchaseRepo.List: %w", err)
	}
	return purchases, total, nil
}
