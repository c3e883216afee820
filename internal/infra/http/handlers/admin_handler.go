package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/casereach/intake-api/internal/entity"
	"github.com/casereach/intake-api/internal/usecase"
)

// AdminHandler exposes the staff CRUD surface over stored leads. Records are
// decrypted by the usecase before they reach this layer.
type AdminHandler struct {
	AdminUC *usecase.LeadAdminUseCase
}

func NewAdminHandler(uc *usecase.LeadAdminUseCase) *AdminHandler {
	return &AdminHandler{AdminUC: uc}
}

type listLeadsResponse struct {
	Leads []*entity.Lead `json:"leads"`
	Count int            `json:"count"`
}

type updateLeadRequest struct {
	Status     *string `json:"status"`
	Notes      *string `json:"notes"`
	AssignedTo *string `json:"assignedTo"`
}

type deleteLeadResponse struct {
	DeletedID string `json:"deletedId"`
}

// List handles GET /admin/leads with optional status/practiceArea filters
// and limit/offset pagination.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	filter := entity.LeadFilter{
		Status:       q.Get("status"),
		PracticeArea: q.Get("practiceArea"),
		Limit:        limit,
		Offset:       offset,
	}

	leads, err := h.AdminUC.List(r.Context(), filter)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list leads")
		return
	}

	writeJSON(w, http.StatusOK, listLeadsResponse{Leads: leads, Count: len(leads)})
}

func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	lead, err := h.AdminUC.Get(r.Context(), id)
	if errors.Is(err, entity.ErrLeadNotFound) {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "lead not found")
		return
	}
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load lead")
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// Update handles PATCH /admin/leads/{id}. Only status, notes and assignedTo
// are mutable; fields absent from the body are left untouched.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON")
		return
	}

	if req.Status != nil && !entity.ValidStatus(*req.Status) {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", "unknown status value")
		return
	}

	patch := entity.LeadPatch{
		Status:     req.Status,
		Notes:      req.Notes,
		AssignedTo: req.AssignedTo,
	}

	lead, err := h.AdminUC.Update(r.Context(), id, patch)
	if errors.Is(err, entity.ErrLeadNotFound) {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "lead not found")
		return
	}
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update lead")
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.AdminUC.Delete(r.Context(), id)
	if errors.Is(err, entity.ErrLeadNotFound) {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "lead not found")
		return
	}
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to delete lead")
		return
	}

	writeJSON(w, http.StatusOK, deleteLeadResponse{DeletedID: id})
}
