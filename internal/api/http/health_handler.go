package http

import (
	"context"
	"net/http"
	"time"

	"society-management-backend/internal/domain"
)

func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.svc.Health.ListDoctors(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

type appointmentRequest struct {
	DoctorID        int32        `json:"doctorId"`
	Disease         string       `json:"disease"`
	AppointmentDate *requestDate `json:"appointmentDate"`
}

func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	appointment, doctor, err := h.svc.Health.BookAppointment(r.Context(), callerID(r), req.DoctorID, req.Disease, req.AppointmentDate.ptr())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "Appointment booked",
		"appointment": appointment,
		"doctor":      doctor,
	})
}

func (h *Handler) ListMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.svc.Health.ListMyAppointments(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *Handler) UpdateMyAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Appointment not found")
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	err := h.svc.Health.UpdateMyAppointment(r.Context(), callerID(r), appointmentID, domain.AppointmentStatus(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Appointment updated")
}

func (h *Handler) DeleteMyAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if err := h.svc.Health.DeleteMyAppointment(r.Context(), callerID(r), appointmentID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Appointment deleted")
}

func (h *Handler) ListAllAppointments(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	appointments, err := h.svc.Health.ListAllAppointments(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *Handler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	appointmentID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Appointment not found")
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	if err := h.svc.Health.UpdateAppointmentStatus(r.Context(), appointmentID, domain.AppointmentStatus(req.Status)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Appointment updated")
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func healthz(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
