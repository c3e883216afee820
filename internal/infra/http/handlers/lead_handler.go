package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/casereach/intake-api/internal/usecase"
)

type LeadHandler struct {
	SubmitLeadUC *usecase.SubmitLeadUseCase
}

func NewLeadHandler(uc *usecase.SubmitLeadUseCase) *LeadHandler {
	return &LeadHandler{SubmitLeadUC: uc}
}

type submitFailureResponse struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message,omitempty"`
	Errors  []usecase.ValidationError `json:"errors,omitempty"`
}

// Submit handles POST /leads. A validation failure reports every bad field;
// a server failure reports a generic message and nothing else.
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, submitFailureResponse{
			Success: false,
			Message: "invalid JSON",
		})
		return
	}

	output, err := h.SubmitLeadUC.Execute(r.Context(), input)
	if err != nil {
		if domainErr, ok := err.(*usecase.DomainError); ok {
			writeJSON(w, http.StatusBadRequest, submitFailureResponse{
				Success: false,
				Errors:  domainErr.Fields,
			})
			return
		}

		writeJSON(w, http.StatusInternalServerError, submitFailureResponse{
			Success: false,
			Message: "Something went wrong. Please try again.",
		})
		return
	}

	writeJSON(w, http.StatusCreated, output)
}
