package config

import (
	"net/http"

	"investment_projection/pkg/api/httputil"
	"investment_projection/pkg/core/agent"
)

type Response struct {
	ActiveProvider string   `json:"active_provider"`
	Model          string   `json:"model,omitempty"`
	Available      []string `json:"available"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	AgentMgr *agent.Manager
}

// NewHandler creates a new config handler
func NewHandler(agentMgr *agent.Manager) *Handler {
	return &Handler{
		AgentMgr: agentMgr,
	}
}

// HandleConfig reports which provider serves projections. Read-only: the
// provider is fixed for the life of the process.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	httputil.SetCORS(w, "GET, OPTIONS")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	active := h.AgentMgr.GetActiveProvider()
	httputil.WriteJSON(w, http.StatusOK, Response{
		ActiveProvider: active,
		Model:          h.AgentMgr.Model(active),
		Available:      h.AgentMgr.Available(),
	})
}
