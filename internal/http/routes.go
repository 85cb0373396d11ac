package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth          *service.AuthService
	Academic      *service.AcademicService
	Clinical      *service.ClinicalService
	Hostel        *service.HostelService
	Admin         *service.AdminService
	Notifications *service.NotificationService
	Directory     *service.DirectoryService
	Dashboard     *service.DashboardService
	Governance    *service.GovernanceService
	Logger        *slog.Logger // Optional
}

// middleware is the shape shared by all route guards.
type middleware func(http.Handler) http.Handler

// NewRouter creates and configures the portal API router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authed := RequireAuth(services.Auth)
	optional := OptionalAuth(services.Auth)

	authHandlers := &AuthHandlers{Svc: services.Auth, Logger: services.Logger}
	registerAuthRoutes(mux, authHandlers, authed)
	registerAcademicRoutes(mux, &AcademicHandlers{Svc: services.Academic}, authed)
	registerClinicalRoutes(mux, &ClinicalHandlers{Svc: services.Clinical}, authed)
	registerHostelRoutes(mux, &HostelHandlers{Svc: services.Hostel}, authed)
	registerAdminRoutes(mux, &AdminHandlers{Svc: services.Admin}, authed)
	registerNotificationRoutes(mux, &NotificationHandlers{Svc: services.Notifications}, authed)
	registerDirectoryRoutes(mux, &DirectoryHandlers{Svc: services.Directory}, authed)
	registerNavRoutes(mux, &NavHandlers{}, authed, optional)

	dashboardHandlers := &DashboardHandlers{Svc: services.Dashboard}
	mux.Handle("GET /dashboard", authed(http.HandlerFunc(dashboardHandlers.Load)))

	// Leadership-only analytics; the role gate sits on the route so the
	// denial never touches the repositories.
	leadership := RequireRole(services.Auth,
		domainauth.RoleHOD, domainauth.RoleDME, domainauth.RolePrincipal, domainauth.RoleSuperintendent)
	governanceHandlers := &GovernanceHandlers{Svc: services.Governance}
	mux.Handle("GET /governance/dashboard", leadership(http.HandlerFunc(governanceHandlers.Dashboard)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return Logging(logger)(Recover(logger)(mux))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, authed middleware) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/register", h.Register)
	mux.HandleFunc("POST /auth/refresh", h.Refresh)
	mux.HandleFunc("GET /auth/sso/login", h.SSOLogin)
	mux.HandleFunc("GET /auth/callback", h.SSOCallback)
	mux.Handle("POST /auth/logout", authed(http.HandlerFunc(h.Logout)))
	mux.Handle("GET /auth/session", authed(http.HandlerFunc(h.Session)))
	mux.Handle("PUT /users/me", authed(http.HandlerFunc(h.UpdateProfile)))
}

func registerAcademicRoutes(mux *http.ServeMux, h *AcademicHandlers, authed middleware) {
	mux.Handle("GET /academic/subjects", authed(http.HandlerFunc(h.ListSubjects)))
	mux.Handle("POST /academic/subjects", authed(http.HandlerFunc(h.CreateSubject)))
	mux.Handle("GET /academic/subjects/{id}", authed(http.HandlerFunc(h.GetSubject)))
	mux.Handle("GET /academic/subjects/{id}/modules", authed(http.HandlerFunc(h.ListModules)))
	mux.Handle("GET /academic/resources", authed(http.HandlerFunc(h.ListResources)))
	mux.Handle("POST /academic/progress", authed(http.HandlerFunc(h.RecordProgress)))
	mux.Handle("GET /academic/progress/me", authed(http.HandlerFunc(h.ListProgress)))
}

func registerClinicalRoutes(mux *http.ServeMux, h *ClinicalHandlers, authed middleware) {
	mux.Handle("GET /clinical/postings/me", authed(http.HandlerFunc(h.ListPostings)))
	mux.Handle("POST /clinical/postings", authed(http.HandlerFunc(h.CreatePosting)))
	mux.Handle("PUT /clinical/postings/{id}/status", authed(http.HandlerFunc(h.SetPostingStatus)))
	mux.Handle("GET /clinical/logbooks", authed(http.HandlerFunc(h.ListLogbookEntries)))
	mux.Handle("POST /clinical/logbooks", authed(http.HandlerFunc(h.CreateLogbookEntry)))
	mux.Handle("GET /clinical/logbooks/{id}", authed(http.HandlerFunc(h.GetLogbookEntry)))
	mux.Handle("POST /clinical/logbooks/{id}/submit", authed(http.HandlerFunc(h.SubmitLogbookEntry)))
	mux.Handle("POST /clinical/logbooks/{id}/review", authed(http.HandlerFunc(h.ReviewLogbookEntry)))
}

func registerHostelRoutes(mux *http.ServeMux, h *HostelHandlers, authed middleware) {
	mux.Handle("GET /hostel/hostels", authed(http.HandlerFunc(h.ListHostels)))
	mux.Handle("GET /hostel/rooms", authed(http.HandlerFunc(h.ListRooms)))
	mux.Handle("POST /hostel/allocations", authed(http.HandlerFunc(h.AllocateRoom)))
	mux.Handle("POST /hostel/allocations/{id}/vacate", authed(http.HandlerFunc(h.VacateRoom)))
	mux.Handle("GET /hostel/allocations/me", authed(http.HandlerFunc(h.MyAllocations)))
	mux.Handle("POST /hostel/visitors", authed(http.HandlerFunc(h.RequestVisitor)))
	mux.Handle("GET /hostel/visitors", authed(http.HandlerFunc(h.ListVisitors)))
	mux.Handle("GET /hostel/visitors/me", authed(http.HandlerFunc(h.MyVisitors)))
	mux.Handle("PUT /hostel/visitors/{id}/status", authed(http.HandlerFunc(h.DecideVisitor)))
}

func registerAdminRoutes(mux *http.ServeMux, h *AdminHandlers, authed middleware) {
	mux.Handle("POST /admin/certificates", authed(http.HandlerFunc(h.RequestCertificate)))
	mux.Handle("GET /admin/certificates/me", authed(http.HandlerFunc(h.MyCertificates)))
	mux.Handle("GET /admin/certificates/pending", authed(http.HandlerFunc(h.PendingCertificates)))
	mux.Handle("POST /admin/certificates/{id}/review", authed(http.HandlerFunc(h.ReviewCertificate)))
	mux.Handle("POST /admin/notices", authed(http.HandlerFunc(h.PublishNotice)))
	mux.Handle("GET /admin/notices", authed(http.HandlerFunc(h.ListNotices)))
	mux.Handle("POST /admin/events", authed(http.HandlerFunc(h.CreateEvent)))
	mux.Handle("GET /admin/events", authed(http.HandlerFunc(h.ListEvents)))
	mux.Handle("POST /admin/events/{id}/register", authed(http.HandlerFunc(h.RegisterForEvent)))
	mux.Handle("GET /admin/events/registrations/me", authed(http.HandlerFunc(h.MyRegistrations)))
}

func registerNotificationRoutes(mux *http.ServeMux, h *NotificationHandlers, authed middleware) {
	mux.Handle("GET /notifications", authed(http.HandlerFunc(h.List)))
	mux.Handle("POST /notifications/{id}/read", authed(http.HandlerFunc(h.MarkRead)))
	mux.Handle("POST /notifications/read-all", authed(http.HandlerFunc(h.MarkAllRead)))
}

func registerDirectoryRoutes(mux *http.ServeMux, h *DirectoryHandlers, authed middleware) {
	// The college list is public so the registration form can render.
	mux.HandleFunc("GET /colleges", h.ListColleges)
	mux.Handle("POST /colleges", authed(http.HandlerFunc(h.RegisterCollege)))
	mux.Handle("GET /students", authed(http.HandlerFunc(h.ListStudents)))
	mux.Handle("GET /faculty", authed(http.HandlerFunc(h.ListFaculty)))
	mux.Handle("GET /users/me", authed(http.HandlerFunc(h.GetProfile)))
}

func registerNavRoutes(mux *http.ServeMux, h *NavHandlers, authed, optional middleware) {
	mux.Handle("GET /navigation", authed(http.HandlerFunc(h.Navigation)))
	mux.HandleFunc("GET /routes", h.Routes)
	mux.Handle("GET /routes/resolve", optional(http.HandlerFunc(h.Resolve)))
	mux.Handle("GET /view/{page}", authed(http.HandlerFunc(h.ViewState)))
}
