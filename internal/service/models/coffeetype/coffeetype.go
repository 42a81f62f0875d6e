package coffeetype

import "github.com/shopspring/decimal"

// CoffeeType represents a coffee sold by the storefront.
type CoffeeType struct {
	ID       int64           `json:"id"`
	TypeName string          `json:"typeName"`
	Price    decimal.Decimal `json:"price"`
	Disabled DisabledFlag    `json:"disabled"`
}
