package http

import (
	"net/http"

	"society-management-backend/internal/domain"
)

type complaintRequest struct {
	ComplaintType    string `json:"complaintType"`
	ComplaintDetails string `json:"complaintDetails"`
}

func (h *Handler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req complaintRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	complaint, err := h.svc.Complaint.Create(r.Context(), callerID(r), req.ComplaintType, req.ComplaintDetails)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "Complaint registered",
		"complaint": complaint,
	})
}

func (h *Handler) ListMyComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.svc.Complaint.ListMine(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, complaints)
}

func (h *Handler) ListAllComplaints(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	complaints, err := h.svc.Complaint.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, complaints)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateComplaintStatus(w http.ResponseWriter, r *http.Request, _ *domain.User) {
	complaintID, ok := pathID(r, "id")
	if !ok {
		writeMessage(w, http.StatusNotFound, "Complaint not found")
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	complaint, err := h.svc.Complaint.UpdateStatus(r.Context(), complaintID, domain.ComplaintStatus(req.Status))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, complaint)
}
