package ordersvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/coffee/internal/dal/uow"
	"github.com/corray333/backend-labs/coffee/internal/service/models/order"
	"github.com/corray333/backend-labs/coffee/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/coffee/internal/service/models/outbox"
	"github.com/corray333/backend-labs/coffee/internal/service/serviceerr"
	"github.com/corray333/backend-labs/coffee/internal/service/services/catalogsvc"
	"github.com/corray333/backend-labs/coffee/internal/service/services/configsvc"
	"github.com/corray333/backend-labs/coffee/internal/service/services/pricing"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

type transactor interface {
	Repositories() uow.Repositories
	Do(ctx context.Context, fn uow.TxFunc) error
}

// OrderService is a service for managing orders.
type OrderService struct {
	uow        transactor
	exchange   string
	maxRetries int
	now        func() time.Time
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		exchange:   viper.GetString("rabbitmq.exchange"),
		maxRetries: viper.GetInt("rabbitmq.outbox.max_retries"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.uow == nil {
		panic("ordersvc: unit of work is required")
	}
	if s.maxRetries <= 0 {
		s.maxRetries = 5
	}

	return s
}

// WithUnitOfWork sets the unit of work for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(u transactor) option {
	return func(s *OrderService) {
		s.uow = u
	}
}

// WithExchange sets the exchange order events are published to.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithExchange(exchange string) option {
	return func(s *OrderService) {
		s.exchange = exchange
	}
}

// WithClock replaces time.Now for order timestamps.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *OrderService) {
		s.now = now
	}
}

// MakeOrder prices and stores an order with its items in one transaction.
// It returns nil without touching storage when the address or the item list is empty.
func (s *OrderService) MakeOrder(
	ctx context.Context,
	customerName string,
	deliveryAddress string,
	items []orderitem.OrderItem,
) (*order.OrderAndCost, error) {
	if deliveryAddress == "" || len(items) == 0 {
		return nil, nil
	}

	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.MakeOrder")
	defer span.End()

	var result *order.OrderAndCost
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		header := &order.Order{
			CreatedAt:       s.now(),
			CustomerName:    customerName,
			DeliveryAddress: deliveryAddress,
		}

		engine := pricing.NewEngine(
			configsvc.NewResolver(repos.ConfigurationRepository()),
			catalogsvc.NewAccessor(repos.CoffeeTypeRepository()),
		)
		c, err := engine.ComputeCost(ctx, items)
		if err != nil {
			return err
		}
		header.Cost = c.Total()

		saved, err := repos.OrderRepository().Save(ctx, header)
		if err != nil {
			return err
		}

		savedItems := make([]orderitem.OrderItem, 0, len(items))
		for _, item := range items {
			item.OrderID = saved.ID
			savedItem, err := repos.OrderItemRepository().Save(ctx, &item)
			if err != nil {
				return err
			}
			savedItems = append(savedItems, *savedItem)
		}

		msg, err := s.newOutboxMessage(outbox.RoutingKeyOrderCreated, orderCreatedEvent(saved, savedItems, c))
		if err != nil {
			return err
		}
		if err := repos.OutboxRepository().Insert(ctx, msg); err != nil {
			return err
		}

		result = &order.OrderAndCost{
			Order: *saved,
			Items: savedItems,
			Cost:  c,
		}

		return nil
	})
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to make order",
			"customer_name", customerName,
			"delivery_address", deliveryAddress,
			"error", err,
		)

		return nil, serviceerr.New(err, "failed to make order for customer %q at %q", customerName, deliveryAddress)
	}

	slog.Info("Order created", "order_id", result.Order.ID, "cost", result.Order.Cost.String())

	return result, nil
}

// GetOrder returns the order header or nil if it does not exist.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*order.Order, error) {
	o, err := s.uow.Repositories().OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, serviceerr.New(err, "failed to get order %d", orderID)
	}

	return o, nil
}

// ItemsForOrder returns the items of the order, empty when it has none.
func (s *OrderService) ItemsForOrder(ctx context.Context, orderID int64) ([]orderitem.OrderItem, error) {
	items, err := s.uow.Repositories().OrderItemRepository().ListForOrder(ctx, orderID)
	if err != nil {
		return nil, serviceerr.New(err, "failed to get items for order %d", orderID)
	}

	return items, nil
}

// DeleteOrder removes the order with all its items and returns the number of
// deleted order headers.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) (int64, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.DeleteOrder")
	defer span.End()

	var deleted int64
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		items, err := repos.OrderItemRepository().ListForOrder(ctx, orderID)
		if err != nil {
			return err
		}

		for _, item := range items {
			if _, err := repos.OrderItemRepository().Delete(ctx, item.ID); err != nil {
				return err
			}
		}

		deleted, err = repos.OrderRepository().Delete(ctx, orderID)
		if err != nil || deleted == 0 {
			return err
		}

		msg, err := s.newOutboxMessage(outbox.RoutingKeyOrderCancelled, orderCancelledEvent{OrderID: orderID})
		if err != nil {
			return err
		}

		return repos.OutboxRepository().Insert(ctx, msg)
	})
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to delete order", "order_id", orderID, "error", err)

		return 0, serviceerr.New(err, "failed to delete order %d", orderID)
	}

	if deleted > 0 {
		slog.Info("Order deleted", "order_id", orderID)
	}

	return deleted, nil
}
