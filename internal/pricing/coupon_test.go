package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCoupon(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		percent int
		wantErr error
	}{
		{name: "upper case", code: "DISCOUNT20", percent: 20},
		{name: "lower case", code: "discount20", percent: 20},
		{name: "mixed case", code: "DiScOuNt20", percent: 20},
		{name: "empty", code: "", percent: 0},
		{name: "unknown", code: "XYZ", percent: 0, wantErr: ErrInvalidCoupon},
		{name: "padded", code: " DISCOUNT20 ", percent: 0, wantErr: ErrInvalidCoupon},
		{name: "prefix", code: "DISCOUNT", percent: 0, wantErr: ErrInvalidCoupon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percent, err := ValidateCoupon(tt.code)
			assert.Equal(t, tt.percent, percent)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
