package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/service"
)

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.Event.ListEvents(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *Handler) BookEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Event not found")
		return
	}

	booking, err := h.svc.Event.BookEvent(r.Context(), callerID(r), eventID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":         "Event booked successfully",
		"event":           booking.Event,
		"balanceDeducted": booking.BalanceDeducted,
		"newBalance":      booking.NewBalance,
	})
}

// ListTransactions returns the caller's most recent ledger records.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.Ledger.ListTransactions(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

type eventRequest struct {
	Name        string          `json:"name"`
	Date        requestDate     `json:"date"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Capacity    int             `json:"capacity"`
	TicketType  string          `json:"ticketType"`
	TicketPrice decimal.Decimal `json:"ticketPrice"`
}

func (req eventRequest) input() service.EventInput {
	return service.EventInput{
		Name:        req.Name,
		Date:        req.Date.Time,
		Location:    req.Location,
		Description: req.Description,
		Capacity:    req.Capacity,
		TicketType:  req.TicketType,
		TicketPrice: req.TicketPrice,
	}
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	event, err := h.svc.Event.CreateEvent(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	eventID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Event not found")
		return
	}
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	event, err := h.svc.Event.UpdateEvent(r.Context(), eventID, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	eventID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Event not found")
		return
	}
	if err := h.svc.Event.DeleteEvent(r.Context(), eventID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Event deleted successfully")
}
