package http

import (
	"net/http"

	"society-management-backend/internal/domain"
)

// GetBills returns the caller's bills for the current month, creating them on first access.
func (h *Handler) GetBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.Bill.GenerateOrFetch(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

// BillHistory lists stored bills, optionally filtered by ?month=YYYY-MM.
func (h *Handler) BillHistory(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.Bill.ListBills(r.Context(), callerID(r), r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

func (h *Handler) PayBill(w http.ResponseWriter, r *http.Request) {
	billID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Bill not found")
		return
	}

	payment, err := h.svc.Bill.PayBill(r.Context(), callerID(r), billID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":          "Bill paid successfully",
		"remainingBalance": payment.RemainingBalance,
		"paidAmount":       payment.PaidAmount,
		"penalty":          payment.Penalty,
		"bill":             payment.Bill,
	})
}

func (h *Handler) GenerateAllBills(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	result, err := h.svc.Bill.GenerateForAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Bills generated for all users",
		"count":   result.Count,
		"skipped": result.Skipped,
	})
}
