package httpx

import (
	"net/http"

	"github.com/medconnect/medconnect-api/internal/service"
)

// DashboardHandlers serves the aggregated landing page.
type DashboardHandlers struct {
	Svc *service.DashboardService
}

// Load handles GET /dashboard.
func (h *DashboardHandlers) Load(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	dashboard, err := h.Svc.Load(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, dashboard)
}
