package httptransport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corray333/backend-labs/coffee/internal/dal/memory"
	"github.com/corray333/backend-labs/coffee/internal/service/services/catalogsvc"
	"github.com/corray333/backend-labs/coffee/internal/service/services/configsvc"
	"github.com/corray333/backend-labs/coffee/internal/service/services/ordersvc"
	httptransport "github.com/corray333/backend-labs/coffee/internal/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	transport := httptransport.NewHTTPTransport(
		ordersvc.MustNewOrderService(ordersvc.WithUnitOfWork(store)),
		catalogsvc.MustNewCoffeeTypeService(catalogsvc.WithUnitOfWork(store)),
		configsvc.MustNewConfigurationService(configsvc.WithUnitOfWork(store)),
	)
	transport.RegisterRoutes()

	srv := httptest.NewServer(transport.Handler())
	t.Cleanup(srv.Close)

	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)

	if m, ok := decoded.(map[string]any); ok {
		return resp, m
	}

	return resp, map[string]any{"list": decoded}
}

func addCoffeeType(t *testing.T, srv *httptest.Server, name, price string) int64 {
	t.Helper()

	resp, body := do(t, srv, http.MethodPost, "/api/coffee-types", map[string]any{"typeName": name, "price": price})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return int64(body["id"].(float64))
}

func TestOrderLifecycle(t *testing.T) {
	srv := newServer(t)

	espresso := addCoffeeType(t, srv, "Espresso", "3")
	latte := addCoffeeType(t, srv, "Latte", "7")

	resp, body := do(t, srv, http.MethodPost, "/api/orders", map[string]any{
		"customerName":    "Alice",
		"deliveryAddress": "Sunny street, 12",
		"items": []map[string]any{
			{"coffeeTypeId": espresso, "quantity": 4},
			{"coffeeTypeId": latte, "quantity": 5},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	o := body["order"].(map[string]any)
	assert.Equal(t, "40", o["cost"])
	c := body["cost"].(map[string]any)
	assert.Equal(t, "40", c["coffeeTotalCost"])
	assert.Equal(t, "0", c["deliveryCost"])

	id := int64(o["id"].(float64))

	resp, body = do(t, srv, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Alice", body["customerName"])

	resp, body = do(t, srv, http.MethodGet, fmt.Sprintf("/api/orders/%d/items", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["list"], 2)

	resp, body = do(t, srv, http.MethodDelete, fmt.Sprintf("/api/orders/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["deleted"])

	resp, _ = do(t, srv, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, srv, http.MethodDelete, fmt.Sprintf("/api/orders/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["deleted"])
}

func TestCreateOrder_Rejected(t *testing.T) {
	srv := newServer(t)
	espresso := addCoffeeType(t, srv, "Espresso", "3")

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{name: "malformed json", body: "{", status: http.StatusBadRequest},
		{
			name:   "empty address",
			body:   map[string]any{"items": []map[string]any{{"coffeeTypeId": espresso, "quantity": 1}}},
			status: http.StatusBadRequest,
		},
		{
			name:   "no items",
			body:   map[string]any{"deliveryAddress": "Sunny street, 12"},
			status: http.StatusBadRequest,
		},
		{
			name: "non-positive quantity",
			body: map[string]any{
				"deliveryAddress": "Sunny street, 12",
				"items":           []map[string]any{{"coffeeTypeId": espresso, "quantity": 0}},
			},
			status: http.StatusBadRequest,
		},
		{
			name: "unknown coffee type",
			body: map[string]any{
				"deliveryAddress": "Sunny street, 12",
				"items":           []map[string]any{{"coffeeTypeId": espresso + 100, "quantity": 1}},
			},
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, srv, http.MethodPost, "/api/orders", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestCoffeeTypes(t *testing.T) {
	srv := newServer(t)

	id := addCoffeeType(t, srv, "Mocha", "4.20")

	resp, body := do(t, srv, http.MethodPut, fmt.Sprintf("/api/coffee-types/%d", id), map[string]any{
		"typeName": "Mocha",
		"price":    "4.50",
		"disabled": "Y",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Y", body["disabled"])

	resp, body = do(t, srv, http.MethodGet, "/api/coffee-types?disabled=N", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["list"])

	resp, body = do(t, srv, http.MethodGet, "/api/coffee-types?disabled=Y", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["list"], 1)

	resp, _ = do(t, srv, http.MethodGet, "/api/coffee-types?disabled=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPost, "/api/coffee-types", map[string]any{"typeName": "Free lunch", "price": "-1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPut, "/api/coffee-types/999", map[string]any{"typeName": "Ghost", "price": "1"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, srv, http.MethodDelete, fmt.Sprintf("/api/coffee-types/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["deleted"])

	resp, _ = do(t, srv, http.MethodGet, fmt.Sprintf("/api/coffee-types/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/api/coffee-types/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConfigurations(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, srv, http.MethodGet, "/api/configurations/n", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "5", body["value"])

	resp, _ = do(t, srv, http.MethodPut, "/api/configurations/n", map[string]any{"value": "0"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = do(t, srv, http.MethodGet, "/api/configurations/n", nil)
	assert.Equal(t, "5", body["value"])

	resp, _ = do(t, srv, http.MethodPut, "/api/configurations/x", map[string]any{"value": "25"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = do(t, srv, http.MethodGet, "/api/configurations/x", nil)
	assert.Equal(t, "25", body["value"])

	resp, body = do(t, srv, http.MethodDelete, "/api/configurations/x", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["deleted"])

	_, body = do(t, srv, http.MethodGet, "/api/configurations/x", nil)
	assert.Equal(t, "10", body["value"])

	resp, _ = do(t, srv, http.MethodGet, "/api/configurations/unknown", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPut, "/api/configurations/m", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSwaggerDoc(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, srv, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2.0", body["swagger"])
}
