// Package money holds the pure tax and discount arithmetic shared by the
// sale, purchase, and purchase-order engines. Nothing here touches I/O;
// validation of negative inputs is the calling engine's job.
package money

import (
	"strings"

	"github.com/shopspring/decimal"

	"billmint/internal/domain"
)

// Line is the input to a per-line computation. DiscountPercent is a
// percentage of the rate applied per unit; GSTPercent applies to the
// taxable amount after discount.
type Line struct {
	Qty             decimal.Decimal
	Rate            decimal.Decimal
	DiscountPercent decimal.Decimal
	GSTPercent      decimal.Decimal
}

// Amounts is the result of a per-line computation.
type Amounts struct {
	Amount          decimal.Decimal
	DiscountPerUnit decimal.Decimal
	DiscountTotal   decimal.Decimal
	Taxable         decimal.Decimal
	GSTAmount       decimal.Decimal
	FinalAmount     decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// ComputeLine evaluates a sale or purchase line without rounding. Callers
// round each field once with Round2 when persisting, so intermediate steps
// keep full precision.
func ComputeLine(in Line) Amounts {
	amount := in.Qty.Mul(in.Rate)
	discountPerUnit := in.Rate.Mul(in.DiscountPercent).Div(oneHundred)
	discountTotal := discountPerUnit.Mul(in.Qty)

	taxable := amount.Sub(discountTotal)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	gst := taxable.Mul(in.GSTPercent).Div(oneHundred)

	return Amounts{
		Amount:          amount,
		DiscountPerUnit: discountPerUnit,
		DiscountTotal:   discountTotal,
		Taxable:         taxable,
		GSTAmount:       gst,
		FinalAmount:     taxable.Add(gst),
	}
}

// ComputeOrderLine evaluates a purchase-order line. Orders are quotations,
// so every output is rounded to two decimals immediately rather than at
// aggregation.
func ComputeOrderLine(in Line) Amounts {
	a := ComputeLine(in)
	a.Amount = Round2(a.Amount)
	a.DiscountPerUnit = Round2(a.DiscountPerUnit)
	a.DiscountTotal = Round2(a.DiscountTotal)
	a.Taxable = Round2(a.Taxable)
	a.GSTAmount = Round2(a.GSTAmount)
	a.FinalAmount = Round2(a.FinalAmount)
	return a
}

// Round2 rounds to two decimal places, half away from zero, matching
// currency display semantics.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Floor0 clamps negative dues to zero.
func Floor0(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseGSTPercent reads the legacy product GST column, a numeric string
// with an optional trailing "%" (e.g. "18%"). Empty input means 0.
func ParseGSTPercent(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return decimal.Zero, nil
	}
	pct, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.NewValidationError("malformed gst percentage %q", s)
	}
	return pct, nil
}
