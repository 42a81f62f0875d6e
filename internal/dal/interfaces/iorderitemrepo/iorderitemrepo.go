package iorderitem

import (
	"context"

	"github.com/corray333/backend-labs/coffee/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for order item repository.
type IOrderItemRepository interface {
	Save(ctx context.Context, item *orderitem.OrderItem) (*orderitem.OrderItem, error)
	Get(ctx context.Context, id int64) (*orderitem.OrderItem, error)
	Update(ctx context.Context, item *orderitem.OrderItem) error
	Delete(ctx context.Context, id int64) (int64, error)
	Query(
		ctx context.Context,
		filter *orderitem.QueryOrderItemsModel,
	) ([]orderitem.OrderItem, error)
	ListForOrder(ctx context.Context, orderID int64) ([]orderitem.OrderItem, error)
}
