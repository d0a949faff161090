package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/service"
)

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	dashboard, err := h.svc.Dashboard.GetDashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	users, err := h.svc.AdminUser.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type roleRequest struct {
	Role        domain.Role              `json:"role"`
	Permissions *domain.PermissionsPatch `json:"permissions"`
}

func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request, admin *domain.User) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	var req roleRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	user, err := h.svc.AdminUser.UpdateRole(r.Context(), admin, userID, req.Role, req.Permissions)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "User updated successfully", "user": user})
}

func (h *Handler) ActivateUser(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	h.setActive(w, r, true, "User activated successfully")
}

func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	h.setActive(w, r, false, "User deactivated successfully")
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool, message string) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err := h.svc.AdminUser.SetActive(r.Context(), userID, active); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, message)
}

type balanceUpdateRequest struct {
	Balance   decimal.Decimal          `json:"balance"`
	Operation service.BalanceOperation `json:"operation"`
}

func (h *Handler) UpdateUserBalance(w http.ResponseWriter, r *http.Request, admin *domain.User) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	var req balanceUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	user, err := h.svc.AdminUser.UpdateBalance(r.Context(), admin, userID, req.Operation, req.Balance)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User balance updated successfully",
		"user":    map[string]any{"id": user.ID, "balance": user.Balance},
	})
}

type detailsRequest struct {
	Name  string       `json:"name"`
	Phone string       `json:"phone"`
	Email string       `json:"email"`
	House domain.House `json:"house"`
}

func (h *Handler) UpdateUserDetails(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	var req detailsRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	user, err := h.svc.AdminUser.UpdateDetails(r.Context(), userID, service.UserDetailsPatch{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		MarlaSize:   req.House.MarlaSize,
		HouseChoice: req.House.Choice,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "User details updated successfully", "user": user})
}

func (h *Handler) ListBalanceRequests(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	requests, err := h.svc.BalanceRequest.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

type processRequest struct {
	Status     domain.BalanceRequestStatus `json:"status"`
	AdminNotes string                      `json:"adminNotes"`
}

func (h *Handler) ProcessBalanceRequest(w http.ResponseWriter, r *http.Request, admin *domain.User) {
	requestID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Balance request not found")
		return
	}
	var req processRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	processed, err := h.svc.BalanceRequest.Process(r.Context(), admin, requestID, req.Status, req.AdminNotes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Balance request " + string(processed.Status) + " successfully",
		"request": processed,
	})
}
