package httpx

import (
	"errors"
	"net/http"

	"github.com/medconnect/medconnect-api/internal/domain/nav"
	"github.com/medconnect/medconnect-api/internal/domain/view"
)

// NavHandlers serves the navigation menu, the route table and the SPA route
// guard. The logic itself is pure and lives in internal/domain/nav; these
// handlers only bind it to the session.
type NavHandlers struct{}

type navigationResponse struct {
	Entries   []nav.Entry `json:"entries"`
	RoleColor string      `json:"role_color"`
}

// Navigation handles GET /navigation: the menu entries visible to the
// caller's role plus the role badge color.
func (h *NavHandlers) Navigation(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerSession(w, r)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, navigationResponse{
		Entries:   nav.VisibleEntries(caller.Role),
		RoleColor: nav.RoleColor(caller.Role),
	})
}

type routeResponse struct {
	Path   string          `json:"path"`
	Access nav.RouteAccess `json:"access"`
}

// Routes handles GET /routes: the static route table for the SPA guard.
func (h *NavHandlers) Routes(w http.ResponseWriter, _ *http.Request) {
	descriptors := nav.Routes()
	out := make([]routeResponse, 0, len(descriptors))
	for _, rd := range descriptors {
		out = append(out, routeResponse{Path: rd.Path, Access: rd.Access})
	}
	WriteJSON(w, http.StatusOK, out)
}

// Resolve handles GET /routes/resolve?path=... Runs behind OptionalAuth:
// the outcome depends on whether the caller is logged in, not on who they
// are. Denials always redirect, never error.
func (h *NavHandlers) Resolve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_query",
			Err:     errors.New("path is required"),
		})
		return
	}

	WriteJSON(w, http.StatusOK, nav.Resolve(IsAuthenticated(r.Context()), path))
}

type viewStateResponse struct {
	State view.State `json:"state"`
	// Query is the canonical encoding of the state; a pristine page yields "".
	Query string   `json:"query"`
	Tabs  []string `json:"tabs,omitempty"`
}

// ViewState handles GET /view/{page}: decodes the page's view state from the
// request query and returns it with its canonical re-encoding, so the portal
// can normalize the address bar.
func (h *NavHandlers) ViewState(w http.ResponseWriter, r *http.Request) {
	page := r.PathValue("page")
	if page == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("page is required"),
		})
		return
	}

	state := view.DecodeQuery(page, r.URL.Query())
	WriteJSON(w, http.StatusOK, viewStateResponse{
		State: state,
		Query: state.EncodeQuery().Encode(),
		Tabs:  view.TabsFor(page),
	})
}
