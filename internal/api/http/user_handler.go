package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/service"
)

type registerRequest struct {
	Username string       `json:"username"`
	Password string       `json:"password"`
	Name     string       `json:"name"`
	Phone    string       `json:"phone"`
	Email    string       `json:"email"`
	House    domain.House `json:"house"`
}

type authResponse struct {
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	user, token, err := h.svc.Auth.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		House:    req.House,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Message: "User registered successfully", Token: token, User: user})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	user, token, err := h.svc.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.User.GetProfile(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type balanceRequestBody struct {
	RequestedAmount decimal.Decimal `json:"requestedAmount"`
	Reason          string          `json:"reason"`
}

func (h *Handler) RequestBalance(w http.ResponseWriter, r *http.Request) {
	var req balanceRequestBody
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Please provide a valid amount")
		return
	}

	created, err := h.svc.BalanceRequest.RequestBalance(r.Context(), callerID(r), req.RequestedAmount, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Balance request submitted successfully",
		"request": created,
	})
}

func (h *Handler) BalanceRequestHistory(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.BalanceRequest.History(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}
