package httpx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/fixture"
)

func TestLoginReturnsSessionWithTokens(t *testing.T) {
	env := newTestEnv(t)

	session := env.login(t, "asha@gmc.edu")

	assert.Equal(t, fixture.SeedStudentID, session.UserID)
	assert.Equal(t, domainauth.RoleStudent, session.Role)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, 1, env.Sessions.Len())
}

func TestLoginWrongPasswordIs401WithDetail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "asha@gmc.edu",
		"password": "not-the-password",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", errorDetail(t, rec))
}

func TestRegisterCreatesAccountAndLogsIn(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"full_name":  "Meera Varma",
		"email":      "meera@gmc.edu",
		"password":   "longenough",
		"role":       "student",
		"college_id": fixture.SeedCollegeID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var session domainauth.Session
	decodeBody(t, rec, &session)
	assert.NotEmpty(t, session.AccessToken)

	// The new credentials work for a fresh login.
	login := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "meera@gmc.edu",
		"password": "longenough",
	})
	assert.Equal(t, http.StatusOK, login.Code)
}

func TestRegisterUnknownCollegeIsValidationError(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"full_name":  "Nobody",
		"email":      "nobody@gmc.edu",
		"password":   "longenough",
		"role":       "student",
		"college_id": "col-unknown",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"college_id"`)
}

func TestRefreshRotatesTokensAndRejectsReplay(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "asha@gmc.edu")

	rec := env.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{
		"refresh_token": session.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var refreshed domainauth.Session
	decodeBody(t, rec, &refreshed)
	assert.Equal(t, session.ID, refreshed.ID, "refresh extends the same session")
	assert.NotEqual(t, session.RefreshToken, refreshed.RefreshToken)

	// Replaying the superseded refresh token revokes the session outright.
	replay := env.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{
		"refresh_token": session.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, replay.Code)
	assert.Equal(t, 0, env.Sessions.Len())
}

func TestStaleAccessTokenAfterRefreshIsRejected(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "asha@gmc.edu")

	rec := env.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{
		"refresh_token": session.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	stale := env.do(t, http.MethodGet, "/auth/session", session.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, stale.Code)
}

func TestLogoutEndsSession(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "asha@gmc.edu")

	rec := env.do(t, http.MethodPost, "/auth/logout", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, env.Sessions.Len())

	after := env.do(t, http.MethodGet, "/auth/session", session.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, after.Code)
}

func TestSessionEndpointReconstructsLoginState(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "ravi.menon@gmc.edu")

	rec := env.do(t, http.MethodGet, "/auth/session", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got domainauth.Session
	decodeBody(t, rec, &got)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, domainauth.RoleFaculty, got.Role)
	assert.Equal(t, fixture.SeedCollegeID, got.CollegeID)
}

func TestUpdateProfileSyncsSession(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "asha@gmc.edu")

	rec := env.do(t, http.MethodPut, "/users/me", session.AccessToken, map[string]string{
		"full_name": "Asha N. Nair",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated domainauth.Session
	decodeBody(t, rec, &updated)
	assert.Equal(t, "Asha N. Nair", updated.FullName)

	// The session endpoint reflects the change without a re-login.
	check := env.do(t, http.MethodGet, "/auth/session", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, check.Code)
	assert.Contains(t, check.Body.String(), "Asha N. Nair")
}

func TestUpdateProfileRejectsUnknownFields(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "asha@gmc.edu")

	rec := env.do(t, http.MethodPut, "/users/me", session.AccessToken, map[string]string{
		"role": "admin", // not an updatable field
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
