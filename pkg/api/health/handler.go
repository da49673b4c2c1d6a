package health

import (
	"net/http"

	"investment_projection/pkg/api/httputil"
)

// ServiceName is reported by the health check.
const ServiceName = "investment-projection-api"

type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// HandleHealth reports liveness with a fixed payload.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, Response{Status: "healthy", Service: ServiceName})
}
