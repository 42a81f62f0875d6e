package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/corray333/backend-labs/coffee/internal/service/models/coffeetype"
	"github.com/corray333/backend-labs/coffee/internal/service/models/configuration"
	"github.com/corray333/backend-labs/coffee/internal/service/models/order"
	"github.com/corray333/backend-labs/coffee/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/coffee/internal/transport/http/coffeetypes"
	"github.com/corray333/backend-labs/coffee/internal/transport/http/configurations"
	"github.com/corray333/backend-labs/coffee/internal/transport/http/orders"
	"github.com/corray333/backend-labs/coffee/internal/transport/http/swagger"
	"github.com/corray333/backend-labs/coffee/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/coffee/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type orderService interface {
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

type coffeeTypeService interface {
	Add(ctx context.Context, ct *coffeetype.CoffeeType) (*coffeetype.CoffeeType, error)
	Get(ctx context.Context, id int64) (*coffeetype.CoffeeType, error)
	Update(ctx context.Context, ct *coffeetype.CoffeeType) (*coffeetype.CoffeeType, error)
	Delete(ctx context.Context, id int64) (int64, error)
	List(ctx context.Context) ([]coffeetype.CoffeeType, error)
	ListByDisabled(ctx context.Context, flag coffeetype.DisabledFlag) ([]coffeetype.CoffeeType, error)
}

type configurationService interface {
	Value(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) (*configuration.Configuration, error)
	Delete(ctx context.Context, key string) (int64, error)
}

type HTTPTransport struct {
	server         *http.Server
	router         *chi.Mux
	orders         orderService
	coffeeTypes    coffeeTypeService
	configurations configurationService
}

func NewHTTPTransport(
	orders orderService,
	coffeeTypes coffeeTypeService,
	configurations configurationService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:         server,
		router:         router,
		orders:         orders,
		coffeeTypes:    coffeeTypes,
		configurations: configurations,
	}
}

// Handler returns the router serving the registered routes.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.createOrder)
			r.Get("/{id}", h.getOrder)
			r.Get("/{id}/items", h.listOrderItems)
			r.Delete("/{id}", h.deleteOrder)
		})

		r.Route("/coffee-types", func(r chi.Router) {
			r.Get("/", h.listCoffeeTypes)
			r.Post("/", h.createCoffeeType)
			r.Get("/{id}", h.getCoffeeType)
			r.Put("/{id}", h.updateCoffeeType)
			r.Delete("/{id}", h.deleteCoffeeType)
		})

		r.Route("/configurations", func(r chi.Router) {
			r.Get("/{key}", h.getConfiguration)
			r.Put("/{key}", h.putConfiguration)
			r.Delete("/{key}", h.deleteConfiguration)
		})
	})

	swagger.Register(h.router)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	orders.CreateOrder(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	orders.GetOrder(w, r, h.orders)
}

func (h *HTTPTransport) listOrderItems(w http.ResponseWriter, r *http.Request) {
	orders.ListItems(w, r, h.orders)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	orders.DeleteOrder(w, r, h.orders)
}

func (h *HTTPTransport) listCoffeeTypes(w http.ResponseWriter, r *http.Request) {
	coffeetypes.List(w, r, h.coffeeTypes)
}

func (h *HTTPTransport) createCoffeeType(w http.ResponseWriter, r *http.Request) {
	coffeetypes.Create(w, r, h.coffeeTypes)
}

func (h *HTTPTransport) getCoffeeType(w http.ResponseWriter, r *http.Request) {
	coffeetypes.Get(w, r, h.coffeeTypes)
}

func (h *HTTPTransport) updateCoffeeType(w http.ResponseWriter, r *http.Request) {
	coffeetypes.Update(w, r, h.coffeeTypes)
}

func (h *HTTPTransport) deleteCoffeeType(w http.ResponseWriter, r *http.Request) {
	coffeetypes.Delete(w, r, h.coffeeTypes)
}

func (h *HTTPTransport) getConfiguration(w http.ResponseWriter, r *http.Request) {
	configurations.Get(w, r, h.configurations)
}

func (h *HTTPTransport) putConfiguration(w http.ResponseWriter, r *http.Request) {
	configurations.Put(w, r, h.configurations)
}

func (h *HTTPTransport) deleteConfiguration(w http.ResponseWriter, r *http.Request) {
	configurations.Delete(w, r, h.configurations)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:              "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
