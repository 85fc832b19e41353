package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"

	"github.com/fastfood-uz/pos/internal/service/models/branch"
	"github.com/fastfood-uz/pos/internal/service/models/category"
	"github.com/fastfood-uz/pos/internal/service/models/order"
	"github.com/fastfood-uz/pos/internal/service/models/product"
	"github.com/fastfood-uz/pos/internal/service/models/stats"
	"github.com/fastfood-uz/pos/internal/service/models/user"
	brancheshandler "github.com/fastfood-uz/pos/internal/transport/http/v1/branches"
	cataloghandler "github.com/fastfood-uz/pos/internal/transport/http/v1/catalog"
	createorder "github.com/fastfood-uz/pos/internal/transport/http/v1/create_order"
	getorder "github.com/fastfood-uz/pos/internal/transport/http/v1/get_order"
	listorders "github.com/fastfood-uz/pos/internal/transport/http/v1/list_orders"
	staffhandler "github.com/fastfood-uz/pos/internal/transport/http/v1/staff"
	statshandler "github.com/fastfood-uz/pos/internal/transport/http/v1/stats"
	updateorderstatus "github.com/fastfood-uz/pos/internal/transport/http/v1/update_order_status"
	tracemw "github.com/fastfood-uz/pos/pkg/http/middleware/trace"
	"github.com/fastfood-uz/pos/pkg/logger"
)

type orderService interface {
	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
	GetOrder(ctx context.Context, id int64) (order.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, expected *order.Status, next order.Status) (order.Order, error)
}

type catalogService interface {
	GetProducts(ctx context.Context, filter product.QueryProductsModel) ([]product.Product, error)
	CreateProduct(ctx context.Context, p product.Product) (product.Product, error)
	UpdateProduct(ctx context.Context, p product.Product) (product.Product, error)
	GetCategories(ctx context.Context, onlyActive bool) ([]category.Category, error)
	CreateCategory(ctx context.Context, c category.Category) (category.Category, error)
}

type branchService interface {
	GetBranches(ctx context.Context) ([]branch.Branch, error)
	CreateBranch(ctx context.Context, b branch.Branch) (branch.Branch, error)
}

type staffService interface {
	GetStaff(ctx context.Context) ([]user.User, error)
	CreateStaff(ctx context.Context, u user.User) (user.User, error)
}

type statsService interface {
	GetDashboard(ctx context.Context, period stats.Period) (stats.Dashboard, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	orders  orderService
	catalog catalogService
	branch  branchService
	staff   staffService
	stats   statsService
}

func NewHTTPTransport(
	orders orderService,
	catalog catalogService,
	branch branchService,
	staff staffService,
	stats statsService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:  server,
		router:  router,
		orders:  orders,
		catalog: catalog,
		branch:  branch,
		staff:   staff,
		stats:   stats,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", h.createOrder)
			r.Get("/", h.listOrders)
			r.Get("/{id}", h.getOrder)
			r.Patch("/{id}/status", h.updateOrderStatus)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.listProducts)
			r.Post("/", h.createProduct)
			r.Patch("/{id}", h.updateProduct)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.listCategories)
			r.Post("/", h.createCategory)
		})

		r.Route("/branches", func(r chi.Router) {
			r.Get("/", h.listBranches)
			r.Post("/", h.createBranch)
		})

		r.Route("/staff", func(r chi.Router) {
			r.Get("/", h.listStaff)
			r.Post("/", h.createStaff)
		})

		r.Get("/stats", h.getStats)
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orders)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orders)
}

func (h *HTTPTransport) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	updateorderstatus.UpdateOrderStatus(w, r, h.orders)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	cataloghandler.ListProducts(w, r, h.catalog)
}

func (h *HTTPTransport) createProduct(w http.ResponseWriter, r *http.Request) {
	cataloghandler.CreateProduct(w, r, h.catalog)
}

func (h *HTTPTransport) updateProduct(w http.ResponseWriter, r *http.Request) {
	cataloghandler.UpdateProduct(w, r, h.catalog)
}

func (h *HTTPTransport) listCategories(w http.ResponseWriter, r *http.Request) {
	cataloghandler.ListCategories(w, r, h.catalog)
}

func (h *HTTPTransport) createCategory(w http.ResponseWriter, r *http.Request) {
	cataloghandler.CreateCategory(w, r, h.catalog)
}

func (h *HTTPTransport) listBranches(w http.ResponseWriter, r *http.Request) {
	brancheshandler.ListBranches(w, r, h.branch)
}

func (h *HTTPTransport) createBranch(w http.ResponseWriter, r *http.Request) {
	brancheshandler.CreateBranch(w, r, h.branch)
}

func (h *HTTPTransport) listStaff(w http.ResponseWriter, r *http.Request) {
	staffhandler.ListStaff(w, r, h.staff)
}

func (h *HTTPTransport) createStaff(w http.ResponseWriter, r *http.Request) {
	staffhandler.CreateStaff(w, r, h.staff)
}

func (h *HTTPTransport) getStats(w http.ResponseWriter, r *http.Request) {
	statshandler.GetStats(w, r, h.stats)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(tracemw.NewTraceMiddleware)
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
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
