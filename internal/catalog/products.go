package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jafarshop/streamcheckout/internal/domain"
)

// IDs are Stream Pay product UUIDs created with `streampayctl create-product`.
const (
	MonthlyID   = "3025034d-48f9-41cf-a32e-c93a5fe36d93"
	QuarterlyID = "cfaea086-8da7-4220-afa1-0f06eef10ff0"
)

var products = []domain.Product{
	{
		ID:          MonthlyID,
		Name:        "Monthly Subscription",
		Price:       decimal.NewFromInt(99),
		Description: "Full access for one month",
	},
	{
		ID:          QuarterlyID,
		Name:        "3-Month Subscription",
		Price:       decimal.NewFromInt(249),
		Description: "Save 48 SAR",
		Popular:     true,
	},
}

// Products returns a copy of the catalog in display order
func Products() []domain.Product {
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

// ByID looks up a product by its Stream Pay ID
func ByID(id string) (domain.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Default is the product preselected when a checkout starts
func Default() domain.Product {
	return products[1]
}
