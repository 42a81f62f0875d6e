package order

import (
	"time"

	"github.com/corray333/backend-labs/coffee/internal/service/models/cost"
	"github.com/corray333/backend-labs/coffee/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

// Order represents a coffee order header.
type Order struct {
	ID              int64           `json:"id"`
	CreatedAt       time.Time       `json:"createdAt"`
	CustomerName    string          `json:"customerName"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Cost            decimal.Decimal `json:"cost"`
}

// OrderAndCost is the result of placing an order.
type OrderAndCost struct {
	Order Order                 `json:"order"`
	Items []orderitem.OrderItem `json:"items"`
	Cost  cost.Cost             `json:"cost"`
}
