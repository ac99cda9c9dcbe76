package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/streamcheckout/internal/domain"
)

// VATRate is the Saudi VAT rate applied on top of the product price
var VATRate = decimal.RequireFromString("0.15")

var hundred = decimal.NewFromInt(100)

// Calculate computes the checkout totals for a price and a discount percentage.
// The discount applies to the VAT-inclusive amount.
func Calculate(price decimal.Decimal, discountPercent int) domain.PriceTotals {
	subtotal := price
	vat := subtotal.Mul(VATRate)
	gross := subtotal.Add(vat)
	discount := gross.Mul(decimal.NewFromInt(int64(discountPercent))).Div(hundred)

	return domain.PriceTotals{
		Subtotal: subtotal,
		VAT:      vat,
		Discount: discount,
		Total:    gross.Sub(discount),
	}
}
