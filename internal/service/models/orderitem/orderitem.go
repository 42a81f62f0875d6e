package orderitem

// OrderItem represents a single coffee line of an order.
type OrderItem struct {
	ID           int64 `json:"id"`
	OrderID      int64 `json:"orderId"`
	CoffeeTypeID int64 `json:"coffeeTypeId"`
	Quantity     int   `json:"quantity"`
}
