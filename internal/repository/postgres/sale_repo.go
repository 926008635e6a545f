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

type saleRepo struct {
	db *sqlx.DB
}

// NewSaleRepo creates a new PostgreSQL-backed SaleRepository.
func NewSaleRepo(db *sqlx.DB) port.SaleRepository {
	return &saleRepo{db: db}
}

func (r *saleRepo) GetByID(ctx context.Context, id int64) (*domain.SaleWithItems, error) {
	var sale domain.Sale
	err := r.db.GetContext(ctx, &sale, "SELECT * FROM sales WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, fmt.Errorf("saleRepo.GetByID: %w", err)
	}

	var items []domain.SaleItem
	err = r.db.SelectContext(ctx, &items,
		"SELECT * FROM sale_items WHERE sale_id = $1 ORDER BY id", id)
	if err != nil {
		return nil, fmt.Errorf("saleRepo.GetByID items: %w", err)
	}

	return &domain.SaleWithItems{Sale: sale, Items: items}, nil
}

func (r *saleRepo) List(ctx context.Context, offset, limit int) ([]domain.Sale, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM sales"); err != nil {
		return nil, 0, fmt.Errorf("saleRepo.List count: %w", err)
	}

	var sales []domain.Sale
	err := r.db.SelectContext(ctx, &sales,
		"SELECT * FROM sales ORDER BY bill_date DESC, id DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("saleRepo.List: %w", err)
	}
	return sales, total, nil
}
