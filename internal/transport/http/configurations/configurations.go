package configurations

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/coffee/internal/service/models/configuration"
	"github.com/corray333/backend-labs/coffee/internal/transport/http/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type service interface {
	Value(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) (*configuration.Configuration, error)
	Delete(ctx context.Context, key string) (int64, error)
}

var validate = validator.New()

type setConfigurationRequest struct {
	Value string `json:"value" validate:"required"`
}

type deleteConfigurationResponse struct {
	Deleted int64 `json:"deleted"`
}

// Get handles GET /configurations/{key}. The effective value is returned,
// falling back to the built-in default when nothing is stored.
func Get(w http.ResponseWriter, r *http.Request, service service) {
	key := chi.URLParam(r, "key")

	value, ok, err := service.Value(r.Context(), key)
	if err != nil {
		render.Error(w, err)
		slog.Error("Error resolving configuration", "key", key, "error", err)

		return
	}

	if !ok {
		render.Message(w, http.StatusNotFound, "configuration not found")

		return
	}

	render.JSON(w, http.StatusOK, configuration.Configuration{ID: key, Value: value})
}

// Put handles PUT /configurations/{key}.
func Put(w http.ResponseWriter, r *http.Request, service service) {
	key := chi.URLParam(r, "key")

	req := setConfigurationRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Message(w, http.StatusBadRequest, err.Error())
		slog.Error("Error decoding configuration request body", "error", err)

		return
	}

	if err := validate.Struct(&req); err != nil {
		render.Message(w, http.StatusBadRequest, err.Error())

		return
	}

	cfg, err := service.Set(r.Context(), key, req.Value)
	if err != nil {
		render.Error(w, err)
		slog.Error("Error setting configuration", "key", key, "error", err)

		return
	}

	render.JSON(w, http.StatusOK, cfg)
}

// Delete handles DELETE /configurations/{key}.
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	key := chi.URLParam(r, "key")

	deleted, err := service.Delete(r.Context(), key)
	if err != nil {
		render.Error(w, err)
		slog.Error("Error deleting configuration", "key", key, "error", err)

		return
	}

	render.JSON(w, http.StatusOK, deleteConfigurationResponse{Deleted: deleted})
}
