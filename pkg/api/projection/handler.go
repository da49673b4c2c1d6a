package projection

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"investment_projection/pkg/api/httputil"
	"investment_projection/pkg/api/middleware"
	"investment_projection/pkg/core/logger"
	coreProjection "investment_projection/pkg/core/projection"
	"investment_projection/pkg/core/utils"
)

// maxBodyBytes caps the inbound payload.
const maxBodyBytes = 1 << 20

// Generator is the projection core as seen by the handler.
type Generator interface {
	Generate(ctx context.Context, req coreProjection.Request) (interface{}, error)
}

// Handler serves POST /api/investment-projection.
type Handler struct {
	generator    Generator
	log          *logger.Logger
	maxInterests int
}

// NewHandler creates a new projection handler
func NewHandler(gen Generator, log *logger.Logger, maxInterests int) *Handler {
	return &Handler{generator: gen, log: log, maxInterests: maxInterests}
}

func (h *Handler) HandleProjection(w http.ResponseWriter, r *http.Request) {
	httputil.SetCORS(w, "POST, OPTIONS")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	log := h.log.With("request_id", middleware.RequestID(r.Context()))

	payload, ok := decodePayload(w, r)
	if !ok {
		log.Debug("projection request rejected", "reason", "no JSON object")
		httputil.WriteError(w, http.StatusBadRequest, coreProjection.ErrNoPayload.Error())
		return
	}

	req, err := coreProjection.ParseRequest(payload, h.maxInterests)
	if err != nil {
		log.Debug("projection request rejected", "reason", err.Error())
		httputil.WriteError(w, coreProjection.StatusCode(err), err.Error())
		return
	}

	result, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		h.writeGenerateError(w, log, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) writeGenerateError(w http.ResponseWriter, log *logger.Logger, err error) {
	var ufe *coreProjection.UpstreamFormatError
	if errors.As(err, &ufe) {
		log.Warn("upstream returned malformed JSON",
			"diagnosis", utils.DiagnoseJSON(ufe.Raw),
			"raw_length", len(ufe.Raw),
		)
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := coreProjection.StatusCode(err)
	if status == http.StatusInternalServerError {
		log.Error("projection failed", "error", err)
		httputil.WriteError(w, status, "Internal server error: "+err.Error())
		return
	}
	httputil.WriteError(w, status, err.Error())
}

// decodePayload reads exactly one JSON object, keeping numbers as json.Number.
func decodePayload(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var payload map[string]interface{}
	if err := dec.Decode(&payload); err != nil || len(payload) == 0 {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return payload, true
}
