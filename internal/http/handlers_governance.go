package httpx

import (
	"net/http"

	"github.com/medconnect/medconnect-api/internal/service"
)

// GovernanceHandlers serves the leadership analytics page.
type GovernanceHandlers struct {
	Svc *service.GovernanceService
}

// Dashboard handles GET /governance/dashboard.
func (h *GovernanceHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	dashboard, err := h.Svc.Dashboard(r.Context(), caller)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, dashboard)
}
