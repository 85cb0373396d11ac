package httpx

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/medconnect/medconnect-api/internal/ports"
)

// SSOLogin handles GET /auth/sso/login. It starts the campus single sign-on
// flow and sends the browser to the identity provider. State and nonce ride
// in short-lived cookies until the callback verifies them.
func (h *AuthHandlers) SSOLogin(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.BeginSSO(r.Context(), "")
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.setSSOCookie(w, r, "sso_state", result.State)
	h.setSSOCookie(w, r, "sso_nonce", result.Nonce)

	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// SSOCallback handles GET /auth/callback?code=<code>&state=<state>. A
// verified exchange opens a portal session; the response body carries the
// session with its tokens, which the portal reads from the sign-on popup.
func (h *AuthHandlers) SSOCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_callback",
			Err:     errors.New("code and state parameters are required"),
		})
		return
	}

	stateCookie, err := r.Cookie("sso_state")
	if err != nil || stateCookie.Value != state {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_state",
			Err:     errors.New("invalid or missing state parameter"),
		})
		return
	}
	nonceCookie, err := r.Cookie("sso_nonce")
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_nonce",
			Err:     errors.New("missing nonce cookie"),
		})
		return
	}

	session, err := h.Svc.CompleteSSO(r.Context(), ports.ExchangeInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.clearSSOCookie(w, r, "sso_state")
	h.clearSSOCookie(w, r, "sso_nonce")

	h.logger().InfoContext(r.Context(), "sso login", "user_id", session.UserID, "role", string(session.Role))
	WriteJSON(w, http.StatusOK, session)
}

func (h *AuthHandlers) setSSOCookie(w http.ResponseWriter, r *http.Request, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((10 * time.Minute).Seconds()),
	})
}

// clearSSOCookie mirrors the attributes used when setting the cookie so
// browsers reliably drop it.
func (h *AuthHandlers) clearSSOCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}

func secureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
