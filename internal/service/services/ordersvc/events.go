package ordersvc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/corray333/backend-labs/coffee/internal/service/models/cost"
	"github.com/corray333/backend-labs/coffee/internal/service/models/order"
	"github.com/corray333/backend-labs/coffee/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/coffee/internal/service/models/outbox"
	"github.com/google/uuid"
)

type orderCreatedItem struct {
	CoffeeTypeID int64 `json:"coffeeTypeId"`
	Quantity     int   `json:"quantity"`
}

type orderCreated struct {
	OrderID         int64              `json:"orderId"`
	CreatedAt       time.Time          `json:"createdAt"`
	CustomerName    string             `json:"customerName"`
	DeliveryAddress string             `json:"deliveryAddress"`
	CoffeeTotalCost string             `json:"coffeeTotalCost"`
	DeliveryCost    string             `json:"deliveryCost"`
	Cost            string             `json:"cost"`
	Items           []orderCreatedItem `json:"items"`
}

type orderCancelledEvent struct {
	OrderID int64 `json:"orderId"`
}

func orderCreatedEvent(o *order.Order, items []orderitem.OrderItem, c cost.Cost) orderCreated {
	event := orderCreated{
		OrderID:         o.ID,
		CreatedAt:       o.CreatedAt,
		CustomerName:    o.CustomerName,
		DeliveryAddress: o.DeliveryAddress,
		CoffeeTotalCost: c.CoffeeTotalCost.String(),
		DeliveryCost:    c.DeliveryCost.String(),
		Cost:            o.Cost.String(),
		Items:           make([]orderCreatedItem, 0, len(items)),
	}
	for _, item := range items {
		event.Items = append(event.Items, orderCreatedItem{
			CoffeeTypeID: item.CoffeeTypeID,
			Quantity:     item.Quantity,
		})
	}

	return event
}

func (s *OrderService) newOutboxMessage(routingKey string, event any) (outbox.OutboxMessage, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return outbox.OutboxMessage{}, fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	now := s.now()

	return outbox.OutboxMessage{
		MessageID:    uuid.NewString(),
		ExchangeName: s.exchange,
		RoutingKey:   routingKey,
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   s.maxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	}, nil
}
