package port

import (
	"context"

	"github.com/shopspring/decimal"

	"billmint/internal/domain"
)

// UnitOfWork runs fn inside a single database transaction. The transaction
// commits when fn returns nil and rolls back when it returns an error or
// panics, so multi-step engine operations are all-or-nothing.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the transaction-scoped command surface handed to engine code.
// Every method executes on the same underlying transaction.
type Tx interface {
	ProductTx
	SaleTx
	PaymentTx
	PurchaseTx
	PurchaseOrderTx
	VendorTx
	SequenceTx
}

// ProductTx guards stock. GetProductForUpdate takes a row lock held until
// commit, which is what prevents two concurrent sales from both passing a
// stale availability check.
type ProductTx interface {
	GetProductForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	SetProductStock(ctx context.Context, id int64, size decimal.Decimal) error
}

// SaleTx covers sale headers and lines.
type SaleTx interface {
	InsertSale(ctx context.Context, sale *domain.Sale) error
	GetSale(ctx context.Context, id int64) (*domain.Sale, error)
	UpdateSale(ctx context.Context, sale *domain.Sale) error
	DeleteSale(ctx context.Context, id int64) error
	SetSalePaymentStatus(ctx context.Context, saleID int64, status domain.PaymentStatus) error

	InsertSaleItem(ctx context.Context, item *domain.SaleItem) error
	ListSaleItems(ctx context.Context, saleID int64) ([]domain.SaleItem, error)
	DeleteSaleItems(ctx context.Context, saleID int64) error

	// SumCustomerSales totals total_amount over the customer's
	// non-cancelled sales, optionally excluding one sale id (0 = none).
	SumCustomerSales(ctx context.Context, customerID, excludeSaleID int64) (decimal.Decimal, error)

	ListCustomerSales(ctx context.Context, customerID int64) ([]domain.Sale, error)
}

// PaymentTx covers the payment ledger.
type PaymentTx interface {
	InsertPayment(ctx context.Context, payment *domain.SalePayment) error
	GetPayment(ctx context.Context, id int64) (*domain.SalePayment, error)
	DeletePayment(ctx context.Context, id int64) (int64, error)
	SumSalePayments(ctx context.Context, saleID int64) (decimal.Decimal, error)
	SumCustomerPayments(ctx context.Context, customerID int64) (decimal.Decimal, error)
	ListCustomerPayments(ctx context.Context, customerID int64) ([]domain.SalePayment, error)
}

// PurchaseTx covers purchase headers and lines.
type PurchaseTx interface {
	InsertPurchase(ctx context.Context, purchase *domain.Purchase) error
	GetPurchase(ctx context.Context, id int64) (*domain.Purchase, error)
	UpdatePurchase(ctx context.Context, purchase *domain.Purchase) error
	DeletePurchase(ctx context.Context, id int64) error

	InsertPurchaseItem(ctx context.Context, item *domain.PurchaseItem) error
	GetPurchaseItem(ctx context.Context, id int64) (*domain.PurchaseItem, error)
	UpdatePurchaseItem(ctx context.Context, item *domain.PurchaseItem) error
	ListPurchaseItems(ctx context.Context, purchaseID int64) ([]domain.PurchaseItem, error)
	DeletePurchaseItems(ctx context.Context, purchaseID int64) error
}

// PurchaseOrderTx covers quotation headers and lines.
type PurchaseOrderTx interface {
	InsertPurchaseOrder(ctx context.Context, order *domain.PurchaseOrder) error
	GetPurchaseOrder(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	UpdatePurchaseOrder(ctx context.Context, order *domain.PurchaseOrder) error
	DeletePurchaseOrder(ctx context.Context, id int64) error

	InsertPurchaseOrderItem(ctx context.Context, item *domain.PurchaseOrderItem) error
	DeletePurchaseOrderItems(ctx context.Context, orderID int64) error
}

// VendorTx supports the purchase engine's resolve-or-create-by-name
// side effect inside the purchase transaction.
type VendorTx interface {
	GetVendorByName(ctx context.Context, name string) (*domain.Vendor, error)
	InsertVendor(ctx context.Context, vendor *domain.Vendor) error
}

// SequenceTx hands out bill numbers from an atomic counter row, read and
// incremented inside the sale transaction. EnsureBillSequence raises the
// counter to at least min; a rolled-back sale reverts its own increment,
// so a retry after a uniqueness collision bumps the counter in a separate
// committed transaction to move past the occupied number.
type SequenceTx interface {
	NextBillNumber(ctx context.Context) (int64, error)
	EnsureBillSequence(ctx context.Context, min int64) error
}
