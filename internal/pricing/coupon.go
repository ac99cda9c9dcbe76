package pricing

import (
	"errors"
	"strings"
)

const (
	// CouponCode is the only code currently honoured
	CouponCode = "DISCOUNT20"
	// CouponPercent is the discount granted by CouponCode
	CouponPercent = 20
)

// ErrInvalidCoupon is returned for a non-empty code that is not recognised.
// It is a user-visible warning, not a failure of the checkout.
var ErrInvalidCoupon = errors.New("invalid coupon code")

// ValidateCoupon maps a coupon code to a discount percentage
func ValidateCoupon(code string) (int, error) {
	if code == "" {
		return 0, nil
	}
	if strings.EqualFold(code, CouponCode) {
		return CouponPercent, nil
	}
	return 0, ErrInvalidCoupon
}
