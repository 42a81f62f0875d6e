package cost

import "github.com/shopspring/decimal"

// Cost is the priced breakdown of an order.
type Cost struct {
	CoffeeTotalCost decimal.Decimal `json:"coffeeTotalCost"`
	DeliveryCost    decimal.Decimal `json:"deliveryCost"`
}

// Total returns coffee plus delivery.
func (c Cost) Total() decimal.Decimal {
	return c.CoffeeTotalCost.Add(c.DeliveryCost)
}
