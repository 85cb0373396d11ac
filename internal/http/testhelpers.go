package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/medconnect/medconnect-api/config"
	"github.com/medconnect/medconnect-api/internal/adapters/passwordauth"
	"github.com/medconnect/medconnect-api/internal/adapters/tokens"
	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/fixture"
	mockauth "github.com/medconnect/medconnect-api/internal/mocks/auth"
	"github.com/medconnect/medconnect-api/internal/service"
)

// testEnv bundles a fully wired router over fixture repositories, with the
// pieces tests commonly reach into.
type testEnv struct {
	Router   http.Handler
	Repos    *fixture.Repositories
	Auth     *service.AuthService
	Sessions *mockauth.MemorySessionStore
}

// newTestEnv wires the whole portal over the seeded fixture: real token
// issuer, real password provider, in-memory sessions. Tests exercise the
// same stack production runs, minus Postgres and Redis.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repos := fixture.New()
	sessions := mockauth.NewMemorySessionStore()
	issuer := tokens.NewIssuer(config.TokenConfig{
		SigningKey: "httpx-test-secret",
		Issuer:     "medconnect-test",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: time.Hour,
	})

	auth := service.NewAuthService(service.AuthServiceOptions{
		Provider: passwordauth.NewProvider(repos.Users, 30*time.Minute),
		Sessions: sessions,
		Tokens:   issuer,
		Users:    repos.Users,
		Colleges: repos.Colleges,
		Hasher:   passwordauth.HashPassword,
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(RouterServices{
		Auth:     auth,
		Academic: service.NewAcademicService(service.AcademicServiceOptions{Repo: repos.Academic}),
		Clinical: service.NewClinicalService(service.ClinicalServiceOptions{
			Repo:          repos.Clinical,
			Notifications: repos.Notifications,
			Logger:        logger,
		}),
		Hostel: service.NewHostelService(service.HostelServiceOptions{Repo: repos.Hostel}),
		Admin: service.NewAdminService(service.AdminServiceOptions{
			Repo:          repos.Admin,
			Notifications: repos.Notifications,
			Logger:        logger,
		}),
		Notifications: service.NewNotificationService(service.NotificationServiceOptions{Repo: repos.Notifications}),
		Directory: service.NewDirectoryService(service.DirectoryServiceOptions{
			Users:    repos.Users,
			Colleges: repos.Colleges,
		}),
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Academic:      repos.Academic,
			Clinical:      repos.Clinical,
			Admin:         repos.Admin,
			Notifications: repos.Notifications,
		}),
		Governance: service.NewGovernanceService(service.GovernanceServiceOptions{
			Users:    repos.Users,
			Clinical: repos.Clinical,
			Admin:    repos.Admin,
			Hostel:   repos.Hostel,
		}),
		Logger: logger,
	})

	return &testEnv{Router: router, Repos: repos, Auth: auth, Sessions: sessions}
}

// login authenticates a seeded account and returns its session.
func (e *testEnv) login(t *testing.T, email string) *domainauth.Session {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": fixture.SeedPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	var session domainauth.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	return &session
}

// do performs a request against the router. A non-empty token becomes the
// bearer credential; a non-nil body is JSON-encoded.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a JSON response into dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), "body: %s", rec.Body.String())
}

// errorDetail extracts the detail string from an error response.
func errorDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	decodeBody(t, rec, &body)
	return body.Detail
}
