package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalculate_NoDiscount(t *testing.T) {
	totals := Calculate(decimal.NewFromInt(99), 0)

	assert.True(t, decimal.NewFromInt(99).Equal(totals.Subtotal))
	assert.True(t, decimal.RequireFromString("14.85").Equal(totals.VAT), "vat = %s", totals.VAT)
	assert.True(t, decimal.Zero.Equal(totals.Discount))
	assert.True(t, decimal.RequireFromString("113.85").Equal(totals.Total), "total = %s", totals.Total)
}

func TestCalculate_WithDiscount(t *testing.T) {
	totals := Calculate(decimal.NewFromInt(249), 20)

	assert.True(t, decimal.RequireFromString("37.35").Equal(totals.VAT))
	assert.True(t, decimal.RequireFromString("57.27").Equal(totals.Discount), "discount = %s", totals.Discount)
	assert.True(t, decimal.RequireFromString("229.08").Equal(totals.Total), "total = %s", totals.Total)
}

func TestCalculate_TotalProperties(t *testing.T) {
	factor := decimal.RequireFromString("1.15")
	discounted := decimal.RequireFromString("0.8")

	prices := []string{"0.01", "1", "9.99", "99", "249", "1234.56", "100000"}
	for _, p := range prices {
		t.Run(p, func(t *testing.T) {
			price := decimal.RequireFromString(p)

			plain := Calculate(price, 0)
			assert.True(t, price.Mul(factor).Equal(plain.Total), "price %s: got %s", p, plain.Total)

			withCoupon := Calculate(price, CouponPercent)
			assert.True(t, price.Mul(factor).Mul(discounted).Equal(withCoupon.Total), "price %s: got %s", p, withCoupon.Total)

			// total = subtotal + vat - discount
			assert.True(t, withCoupon.Subtotal.Add(withCoupon.VAT).Sub(withCoupon.Discount).Equal(withCoupon.Total))
		})
	}
}
