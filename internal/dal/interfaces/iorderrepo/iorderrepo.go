package iorder

import (
	"context"

	"github.com/corray333/backend-labs/coffee/internal/service/models/order"
)

// IOrderRepository is an interface for order repository.
type IOrderRepository interface {
	// Save inserts the order and returns it with the assigned ID. A nil order is a no-op.
	Save(ctx context.Context, o *order.Order) (*order.Order, error)
	// Get returns nil when the order does not exist.
	Get(ctx context.Context, id int64) (*order.Order, error)
	Update(ctx context.Context, o *order.Order) error
	// Delete returns the number of deleted rows.
	Delete(ctx context.Context, id int64) (int64, error)
}
