package orders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/backend-labs/coffee/internal/service/models/order"
	"github.com/corray333/backend-labs/coffee/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/coffee/internal/transport/http/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	MakeOrder(
		ctx context.Context,
		customerName string,
		deliveryAddress string,
		items []orderitem.OrderItem,
	) (*order.OrderAndCost, error)
	GetOrder(ctx context.Context, orderID int64) (*order.Order, error)
	ItemsForOrder(ctx context.Context, orderID int64) ([]orderitem.OrderItem, error)
	DeleteOrder(ctx context.Context, orderID int64) (int64, error)
}

var validate = validator.New()

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	CoffeeTypeID int64 `json:"coffeeTypeId" validate:"gt=0"`
	Quantity     int   `json:"quantity"     validate:"gt=0"`
}

// createOrderRequest represents a create order request. Empty address or
// items are passed through, the service decides whether an order is formed.
type createOrderRequest struct {
	CustomerName    string                     `json:"customerName"`
	DeliveryAddress string                     `json:"deliveryAddress"`
	Items           []itemInCreateOrderRequest `json:"items"           validate:"dive"`
}

func (r *createOrderRequest) toModel() []orderitem.OrderItem {
	items := make([]orderitem.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, orderitem.OrderItem{
			CoffeeTypeID: item.CoffeeTypeID,
			Quantity:     item.Quantity,
		})
	}

	return items
}

type deleteOrderResponse struct {
	Deleted int64 `json:"deleted"`
}

// CreateOrder handles POST /orders.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Message(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := validate.Struct(&req); err != nil {
		render.Message(w, http.StatusBadRequest, err.Error())
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	result, err := service.MakeOrder(r.Context(), req.CustomerName, req.DeliveryAddress, req.toModel())
	if err != nil {
		render.Error(w, err)
		slog.Error("Error creating order", "error", err)

		return
	}

	if result == nil {
		render.Message(w, http.StatusBadRequest, "order is not formed: delivery address and items are required")

		return
	}

	render.JSON(w, http.StatusCreated, result)
}

// GetOrder handles GET /orders/{id}.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	o, err := service.GetOrder(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		slog.Error("Error getting order", "order_id", id, "error", err)

		return
	}

	if o == nil {
		render.Message(w, http.StatusNotFound, "order not found")

		return
	}

	render.JSON(w, http.StatusOK, o)
}

// ListItems handles GET /orders/{id}/items.
func ListItems(w http.ResponseWriter, r *http.Request, service service) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	items, err := service.ItemsForOrder(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		slog.Error("Error getting order items", "order_id", id, "error", err)

		return
	}

	render.JSON(w, http.StatusOK, items)
}

// DeleteOrder handles DELETE /orders/{id}.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	deleted, err := service.DeleteOrder(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		slog.Error("Error deleting order", "order_id", id, "error", err)

		return
	}

	render.JSON(w, http.StatusOK, deleteOrderResponse{Deleted: deleted})
}

func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Message(w, http.StatusBadRequest, "invalid order id")

		return 0, false
	}

	return id, true
}
