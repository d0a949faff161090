package http

import (
	"context"
	"net/http"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/service"
)

// Services groups the business services the REST API exposes.
type Services struct {
	Auth           service.AuthService
	User           service.UserService
	Access         service.AccessService
	Ledger         service.LedgerService
	Bill           service.BillService
	Event          service.EventService
	Store          service.StoreService
	BalanceRequest service.BalanceRequestService
	AdminUser      service.AdminUserService
	Complaint      service.ComplaintService
	Health         service.HealthService
	Dashboard      service.DashboardService
}

type Handler struct {
	svc Services
}

func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

type adminHandlerFunc func(w http.ResponseWriter, r *http.Request, admin *domain.User)

// withPermission checks the caller's stored role and permissions before every
// admin request.
func (h *Handler) withPermission(capability domain.Capability, next adminHandlerFunc) http.HandlerFunc {
	return h.gate(func(ctx context.Context, userID int32) (*domain.User, error) {
		return h.svc.Access.RequirePermission(ctx, userID, capability)
	}, next)
}

func (h *Handler) withAdmin(next adminHandlerFunc) http.HandlerFunc {
	return h.gate(h.svc.Access.RequireAdmin, next)
}

func (h *Handler) gate(check func(context.Context, int32) (*domain.User, error), next adminHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}
		admin, err := check(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		next(w, r, admin)
	}
}

// callerID returns the authenticated user id. Routes behind the auth middleware
// always have one.
func callerID(r *http.Request) int32 {
	id, _ := UserIDFromContext(r.Context())
	return id
}
