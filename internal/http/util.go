package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
)

// callerSession returns the authenticated session or writes a 401.
// Handlers behind RequireAuth always get a session; the guard keeps a
// miswired route from dereferencing nil.
func callerSession(w http.ResponseWriter, r *http.Request) (domainauth.Session, bool) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return domainauth.Session{}, false
	}
	return *session, true
}

// parseIntQuery returns the integer query parameter or the default when the
// parameter is absent or malformed.
func parseIntQuery(r *http.Request, name string, def int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// optStringQuery returns a pointer to the query parameter, or nil when absent.
func optStringQuery(r *http.Request, name string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	return &raw
}

// boolQuery reports whether the query parameter is the literal "true".
func boolQuery(r *http.Request, name string) bool {
	return r.URL.Query().Get(name) == "true"
}

// pathID returns the {id} path value or writes a 400.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_path",
			Err:     errors.New("id is required"),
		})
		return "", false
	}
	return id, true
}
