package coffeetypes

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/backend-labs/coffee/internal/service/models/coffeetype"
	"github.com/corray333/backend-labs/coffee/internal/transport/http/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

type service interface {
	Add(ctx context.Context, ct *coffeetype.CoffeeType) (*coffeetype.CoffeeType, error)
	Get(ctx context.Context, id int64) (*coffeetype.CoffeeType, error)
	Update(ctx context.Context, ct *coffeetype.CoffeeType) (*coffeetype.CoffeeType, error)
	Delete(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context) ([]coffeetype.CoffeeType, error)
	ListByDisabled(ctx context.Context, flag coffeetype.DisabledFlag) ([]coffeetype.CoffeeType, error)
}

var (
	validate = validator.New()
	decoder  = schema.NewDecoder()
)

type listCoffeeTypesRequest struct {
	Disabled string `schema:"disabled" validate:"omitempty,oneof=Y N"`
}

// coffeeTypeRequest is the body of create and update requests.
type coffeeTypeRequest struct {
	TypeName string          `json:"typeName" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Disabled string          `json:"disabled" validate:"omitempty,oneof=Y N"`
}

func (r *coffeeTypeRequest) toModel(id int64) *coffeetype.CoffeeType {
	flag := coffeetype.Enabled
	if r.Disabled != "" {
		flag = coffeetype.DisabledFlag(r.Disabled)
	}

	return &coffeetype.CoffeeType{
		ID:       id,
		TypeName: r.TypeName,
		Price:    r.Price,
		Disabled: flag,
	}
}

type deleteCoffeeTypeResponse struct {
	Deleted int64 `json:"deleted"`
}

// List handles GET /coffee-types with an optional disabled=Y|N filter.
func List(w http.ResponseWriter, r *http.Request, service service) {
	req := listCoffeeTypesRequest{}
	if err := decoder.Decode(&req, r.URL.Query()); err != nil {
		render.Message(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding request", "error", err)

		return
	}
	if err := validate.Struct(&req); err != nil {
		render.Message(w, http.StatusBadRequest, err.Error())

		return
	}

	var (
		types []coffeetype.CoffeeType
		err   error
	)
	if req.Disabled == "" {
		types, err = service.List(r.Context())
	} else {
		types, err = service.ListByDisabled(r.Context(), coffeetype.DisabledFlag(req.Disabled))
	}
	if err != nil {
		render.Error(w, err)
		slog.Error("Error listing coffee types", "error", err)

		return
	}

	render.JSON(w, http.StatusOK, types)
}

// Create handles POST /coffee-types.
func Create(w http.ResponseWriter, r *http.Request, service service) {
	req, ok := decodeBody(w, r)
	if !ok {
		return
	}

	created, err := service.Add(r.Context(), req.toModel(0))
	if err != nil {
		render.Error(w, err)
		slog.Error("Error creating coffee type", "error", err)

		return
	}

	render.JSON(w, http.StatusCreated, created)
}

// Get handles GET /coffee-types/{id}.
func Get(w http.ResponseWriter, r *http.Request, service service) {
	id, ok := coffeeTypeID(w, r)
	if !ok {
		return
	}

	ct, err := service.Get(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		slog.Error("Error getting coffee type", "coffee_type_id", id, "error", err)

		return
	}

	if ct == nil {
		render.Message(w, http.StatusNotFound, "coffee type not found")

		return
	}

	render.JSON(w, http.StatusOK, ct)
}

// Update handles PUT /coffee-types/{id}.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	id, ok := coffeeTypeID(w, r)
	if !ok {
		return
	}

	req, ok := decodeBody(w, r)
	if !ok {
		return
	}

	updated, err := service.Update(r.Context(), req.toModel(id))
	if err != nil {
		render.Error(w, err)
		slog.Error("Error updating coffee type", "coffee_type_id", id, "error", err)

		return
	}

	if updated == nil {
		render.Message(w, http.StatusNotFound, "coffee type not found")

		return
	}

	render.JSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /coffee-types/{id}.
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	id, ok := coffeeTypeID(w, r)
	if !ok {
		return
	}

	deleted, err := service.Delete(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		slog.Error("Error deleting coffee type", "coffee_type_id", id, "error", err)

		return
	}

	render.JSON(w, http.StatusOK, deleteCoffeeTypeResponse{Deleted: deleted})
}

func decodeBody(w http.ResponseWriter, r *http.Request) (*coffeeTypeRequest, bool) {
	req := &coffeeTypeRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		render.Message(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding coffee type request body", "error", err)

		return nil, false
	}

	if err := validate.Struct(req); err != nil {
		render.Message(w, http.StatusBadRequest, err.Error())

		return nil, false
	}

	if req.Price.IsNegative() {
		render.Message(w, http.StatusBadRequest, "price must not be negative")

		return nil, false
	}

	return req, true
}

func coffeeTypeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Message(w, http.StatusBadRequest, "invalid coffee type id")

		return 0, false
	}

	return id, true
}
