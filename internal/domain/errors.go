package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound              = errors.New("resource not found")
	ErrProductNotFound       = errors.New("product not found")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrVendorNotFound        = errors.New("vendor not found")
	ErrSaleNotFound          = errors.New("sale not found")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPurchaseNotFound      = errors.New("purchase not found")
	ErrPurchaseOrderNotFound = errors.New("purchase order not found")

	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateBillNo   = errors.New("bill number already exists")
)

// NewValidationError wraps ErrValidation with a field-level reason so
// callers can still match with errors.Is.
func NewValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// InsufficientStockError identifies the offending product and the
// requested vs available quantities. It matches ErrInsufficientStock
// under errors.Is.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (%s): requested %s, available %s",
		e.ProductID, e.ProductName, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
