package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/courtflow/intake-server-go/internal/errors"
	"github.com/courtflow/intake-server-go/internal/model"
	"github.com/courtflow/intake-server-go/internal/repository"
)

type CaseHandler struct {
	cases repository.CaseRepository
}

func NewCaseHandler(cases repository.CaseRepository) *CaseHandler {
	return &CaseHandler{cases: cases}
}

func (h *CaseHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/analytics", h.Analytics)
	r.Get("/{caseID}", h.GetByCaseID)
	return r
}

// Analytics reports aggregate case numbers.
func (h *CaseHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	total, err := h.cases.Count(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to count cases")
		writeError(w, apperrors.Database("Failed to compute analytics").WithCause(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"totalCases": total})
}

func (h *CaseHandler) GetByCaseID(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "caseID")

	c, err := h.cases.FindByCaseID(r.Context(), caseID)
	if err != nil {
		log.Error().Err(err).Str("caseId", caseID).Msg("failed to fetch case")
		writeError(w, apperrors.Database("Failed to fetch case").WithCause(err))
		return
	}
	if c == nil {
		writeError(w, apperrors.NotFound("Case not found"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"case": c})
}

// List returns every case the given participant holds a role in.
func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	participant := r.URL.Query().Get("participant")
	if participant == "" {
		writeError(w, apperrors.MissingRequired("participant"))
		return
	}

	cases, err := h.cases.FindByParticipant(r.Context(), participant)
	if err != nil {
		log.Error().Err(err).Str("participant", participant).Msg("failed to list cases")
		writeError(w, apperrors.Database("Failed to list cases").WithCause(err))
		return
	}
	if cases == nil {
		cases = []model.Case{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"cases": cases})
}
