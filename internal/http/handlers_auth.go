// Package httpx provides the HTTP surface of the MedConnect portal API.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/service"
)

// AuthHandlers provides HTTP handlers for login, registration, token refresh
// and session maintenance.
type AuthHandlers struct {
	Svc    *service.AuthService
	Logger *slog.Logger // Optional
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login handles POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if !DecodeJSON(w, r, &input) {
		return
	}

	session, err := h.Svc.Login(r.Context(), input)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.logger().InfoContext(r.Context(), "login", slog.String("user_id", session.UserID), slog.String("role", string(session.Role)))
	WriteJSON(w, http.StatusOK, session)
}

// Register handles POST /auth/register. A successful registration is also a
// login: the response carries a full session.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	session, err := h.Svc.Register(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, session)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /auth/refresh. It needs no access token; the refresh
// token is the credential.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	session, err := h.Svc.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, session)
}

// Logout handles POST /auth/logout. Runs behind RequireAuth, so a session is
// always present.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}

	if err := h.Svc.Logout(r.Context(), session.ID); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Session handles GET /auth/session: the session as the portal should
// reconstruct it on reload.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}
	WriteJSON(w, http.StatusOK, session)
}

// UpdateProfile handles PUT /users/me. The stored session is synced so the
// portal header reflects the change without a re-login.
func (h *AuthHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required", Err: errors.New("authentication required")})
		return
	}

	var req model.UpdateUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	updated, err := h.Svc.UpdateUser(r.Context(), session.ID, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}
