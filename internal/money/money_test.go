package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"billmint/internal/domain"
	"billmint/internal/money"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeLine_NoDiscountNoGST(t *testing.T) {
	a := money.ComputeLine(money.Line{Qty: d("10"), Rate: d("100")})

	assert.True(t, a.Amount.Equal(d("1000")))
	assert.True(t, a.DiscountTotal.IsZero())
	assert.True(t, a.Taxable.Equal(d("1000")))
	assert.True(t, a.GSTAmount.IsZero())
	assert.True(t, a.FinalAmount.Equal(d("1000")))
}

func TestComputeLine_GSTOnly(t *testing.T) {
	// Scenario: 10 units at 100 with 18% GST bills 1180.00.
	a := money.ComputeLine(money.Line{Qty: d("10"), Rate: d("100"), GSTPercent: d("18")})

	assert.True(t, a.Taxable.Equal(d("1000")))
	assert.True(t, a.GSTAmount.Equal(d("180")))
	assert.True(t, a.FinalAmount.Equal(d("1180")))
}

func TestComputeLine_DiscountAndGST(t *testing.T) {
	a := money.ComputeLine(money.Line{
		Qty: d("2"), Rate: d("100"), DiscountPercent: d("5"), GSTPercent: d("18"),
	})

	assert.True(t, a.DiscountPerUnit.Equal(d("5")))
	assert.True(t, a.DiscountTotal.Equal(d("10")))
	assert.True(t, a.Taxable.Equal(d("190")))
	assert.True(t, a.GSTAmount.Equal(d("34.2")))
	assert.True(t, a.FinalAmount.Equal(d("224.2")))
}

func TestComputeLine_DiscountOverAmountClampsTaxable(t *testing.T) {
	a := money.ComputeLine(money.Line{
		Qty: d("1"), Rate: d("100"), DiscountPercent: d("150"), GSTPercent: d("18"),
	})

	assert.True(t, a.Taxable.IsZero())
	assert.True(t, a.GSTAmount.IsZero())
	assert.True(t, a.FinalAmount.IsZero())
}

func TestComputeOrderLine_RoundsEveryField(t *testing.T) {
	// 3 * 33.33 with 5% discount: per-unit discount 1.6665 rounds to 1.67.
	a := money.ComputeOrderLine(money.Line{
		Qty: d("3"), Rate: d("33.33"), DiscountPercent: d("5"), GSTPercent: d("18"),
	})

	assert.True(t, a.Amount.Equal(d("99.99")), "amount %s", a.Amount)
	assert.True(t, a.DiscountPerUnit.Equal(d("1.67")), "discount per unit %s", a.DiscountPerUnit)
	assert.True(t, a.DiscountTotal.Equal(d("5.00")), "discount total %s", a.DiscountTotal)
	assert.True(t, a.Taxable.Equal(d("94.99")), "taxable %s", a.Taxable)
	assert.True(t, a.GSTAmount.Equal(d("17.10")), "gst %s", a.GSTAmount)
	assert.True(t, a.FinalAmount.Equal(d("112.09")), "final %s", a.FinalAmount)
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	assert.True(t, money.Round2(d("2.005")).Equal(d("2.01")))
	assert.True(t, money.Round2(d("-2.005")).Equal(d("-2.01")))
	assert.True(t, money.Round2(d("2.004")).Equal(d("2.00")))
}

func TestFloor0(t *testing.T) {
	assert.True(t, money.Floor0(d("-5")).IsZero())
	assert.True(t, money.Floor0(d("5")).Equal(d("5")))
}

func TestParseGSTPercent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"18%", "18"},
		{"18", "18"},
		{" 12.5% ", "12.5"},
		{"", "0"},
		{"  ", "0"},
	}
	for _, tc := range cases {
		got, err := money.ParseGSTPercent(tc.in)
		assert.NoError(t, err, "input %q", tc.in)
		assert.True(t, got.Equal(d(tc.want)), "input %q got %s", tc.in, got)
	}
}

func TestParseGSTPercent_Malformed(t *testing.T) {
	_, err := money.ParseGSTPercent("eighteen%")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
