package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/courtflow/intake-server-go/internal/errors"
)

// RAGQuerier forwards a free-text question to the retrieval service.
type RAGQuerier interface {
	Query(ctx context.Context, query string) (string, error)
}

type RAGHandler struct {
	rag RAGQuerier
}

func NewRAGHandler(rag RAGQuerier) *RAGHandler {
	return &RAGHandler{rag: rag}
}

type ragQueryRequest struct {
	Query string `json:"query"`
}

// Query is a passthrough to the retrieval service's question answering.
func (h *RAGHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req ragQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("Invalid request body"))
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeError(w, apperrors.Validation("Query is required and must be a non-empty string"))
		return
	}

	response, err := h.rag.Query(r.Context(), query)
	if err != nil {
		log.Error().Err(err).Msg("rag query failed")
		writeError(w, apperrors.External("RAG service is unavailable").WithCause(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"response": response,
	})
}
