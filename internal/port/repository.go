package port

import (
	"context"

	"billmint/internal/domain"
)

// ProductRepository defines read and master-data persistence for products.
// Stock mutations never go through here; they belong to the transactional
// stores in Tx so they always run under a row lock.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]domain.Product, int, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// CustomerRepository defines customer master-data persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id int64) error
}

// VendorRepository defines vendor master-data persistence.
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
	GetByName(ctx context.Context, name string) (*domain.Vendor, error)
	List(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error)
	Update(ctx context.Context, vendor *domain.Vendor) error
	Delete(ctx context.Context, id int64) error
}

// SaleRepository defines the read side of sales. All writes happen through
// the unit of work.
type SaleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SaleWithItems, error)
	List(ctx context.Context, offset, limit int) ([]domain.Sale, int, error)
}

// SalePaymentRepository defines the read side of sale payments. Customer
// statements read through the unit of work instead, so sales and payments
// come from one snapshot.
type SalePaymentRepository interface {
	ListBySale(ctx context.Context, saleID int64) ([]domain.SalePayment, error)
}

// PurchaseRepository defines the read side of purchases.
type PurchaseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PurchaseWithItems, error)
	List(ctx context.Context, offset, limit int) ([]domain.Purchase, int, error)
}

// PurchaseOrderRepository defines the read side of purchase orders.
type PurchaseOrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PurchaseOrderWithItems, error)
	List(ctx context.Context, offset, limit int) ([]domain.PurchaseOrder, int, error)
}
