package domain

import "fmt"

// PaymentStatus tracks how much of a sale has been settled.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "Unpaid"
	PaymentStatusPartial PaymentStatus = "Partial"
	PaymentStatusPaid    PaymentStatus = "Paid"
)

// RecordStatus marks a header or line as active or cancelled. Cancelled
// sales are excluded from a customer's outstanding due.
type RecordStatus string

const (
	RecordStatusActive    RecordStatus = "Active"
	RecordStatusCancelled RecordStatus = "Cancelled"
)

// DefaultUnit is applied to line items that do not name a unit.
const DefaultUnit = "PCS"

// FormatBillNo renders a bill sequence value as the human-readable bill
// number. The numeric suffix is zero-padded to three digits but grows
// beyond that without truncation.
func FormatBillNo(seq int64) string {
	return fmt.Sprintf("BILL-%03d", seq)
}
