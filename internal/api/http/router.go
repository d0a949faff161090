package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/metrics"
	"society-management-backend/internal/security"
)

type RouterOptions struct {
	Tokens         security.TokenManager
	Metrics        *metrics.Metrics
	Store          Pinger
	AllowedOrigins []string
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// NewRouter wires every REST route. Middleware order: tracing, metrics, access
// log, panic recovery, then authentication.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := mux.NewRouter()

	otelOpts := []otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
			return req.Method + " " + routeTemplate(req)
		}),
		otelhttp.WithFilter(func(req *http.Request) bool {
			return req.URL.Path != "/metrics" && req.URL.Path != "/healthz"
		}),
	}
	if opts.TracerProvider != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(opts.TracerProvider))
	}
	r.Use(otelhttp.NewMiddleware("society-api", otelOpts...))
	r.Use(opts.Metrics.Middleware())
	r.Use(requestLogger)
	r.Use(recoverer)
	r.Use(NewAuthMiddleware(opts.Tokens).Middleware)

	r.HandleFunc("/healthz", healthz(opts.Store)).Methods(http.MethodGet)
	r.Handle("/metrics", opts.Metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	api.HandleFunc("/user/profile", h.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/user/balance-request", h.RequestBalance).Methods(http.MethodPost)
	api.HandleFunc("/user/balance-request/history", h.BalanceRequestHistory).Methods(http.MethodGet)

	api.HandleFunc("/bills", h.GetBills).Methods(http.MethodGet)
	api.HandleFunc("/bills/history", h.BillHistory).Methods(http.MethodGet)
	api.HandleFunc("/bills/{id}/pay", h.PayBill).Methods(http.MethodPost)

	api.HandleFunc("/events", h.ListEvents).Methods(http.MethodGet)
	api.HandleFunc("/events/transactions", h.ListTransactions).Methods(http.MethodGet)
	api.HandleFunc("/events/{id}/book", h.BookEvent).Methods(http.MethodPost)

	api.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/orders", h.PlaceOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)

	api.HandleFunc("/complaints", h.CreateComplaint).Methods(http.MethodPost)
	api.HandleFunc("/complaints", h.ListMyComplaints).Methods(http.MethodGet)

	api.HandleFunc("/doctors", h.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/appointments", h.BookAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments", h.ListMyAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", h.UpdateMyAppointment).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id}", h.DeleteMyAppointment).Methods(http.MethodDelete)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/dashboard", h.withAdmin(h.Dashboard)).Methods(http.MethodGet)

	users := func(fn adminHandlerFunc) http.HandlerFunc { return h.withPermission(domain.CapManageUsers, fn) }
	admin.HandleFunc("/users", users(h.ListUsers)).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/role", users(h.UpdateUserRole)).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/activate", users(h.ActivateUser)).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/deactivate", users(h.DeactivateUser)).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/balance", users(h.UpdateUserBalance)).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/details", users(h.UpdateUserDetails)).Methods(http.MethodPut)
	admin.HandleFunc("/balance-requests", users(h.ListBalanceRequests)).Methods(http.MethodGet)
	admin.HandleFunc("/balance-requests/{id}/process", users(h.ProcessBalanceRequest)).Methods(http.MethodPut)

	events := func(fn adminHandlerFunc) http.HandlerFunc { return h.withPermission(domain.CapManageEvents, fn) }
	admin.HandleFunc("/events", events(h.CreateEvent)).Methods(http.MethodPost)
	admin.HandleFunc("/events/{id}", events(h.UpdateEvent)).Methods(http.MethodPut)
	admin.HandleFunc("/events/{id}", events(h.DeleteEvent)).Methods(http.MethodDelete)

	store := func(fn adminHandlerFunc) http.HandlerFunc { return h.withPermission(domain.CapManageStore, fn) }
	admin.HandleFunc("/products", store(h.AddProduct)).Methods(http.MethodPost)
	admin.HandleFunc("/products/low-stock", store(h.LowStockProducts)).Methods(http.MethodGet)
	admin.HandleFunc("/products/category/{category}", store(h.ProductsByCategory)).Methods(http.MethodGet)
	admin.HandleFunc("/products/{id}", store(h.UpdateProduct)).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", store(h.DeleteProduct)).Methods(http.MethodDelete)
	admin.HandleFunc("/products/{id}/stock", store(h.UpdateStock)).Methods(http.MethodPut)

	admin.HandleFunc("/complaints", h.withPermission(domain.CapManageComplaints, h.ListAllComplaints)).Methods(http.MethodGet)
	admin.HandleFunc("/complaints/{id}/status", h.withPermission(domain.CapManageComplaints, h.UpdateComplaintStatus)).Methods(http.MethodPut)

	admin.HandleFunc("/bills/generate-all", h.withPermission(domain.CapManageBills, h.GenerateAllBills)).Methods(http.MethodPost)

	admin.HandleFunc("/appointments", h.withPermission(domain.CapManageAppointments, h.ListAllAppointments)).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/status", h.withPermission(domain.CapManageAppointments, h.UpdateAppointmentStatus)).Methods(http.MethodPut)

	return cors(opts.AllowedOrigins)(r)
}
