package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/medconnect/medconnect-api/config"
	"github.com/medconnect/medconnect-api/internal/data"
	"github.com/medconnect/medconnect-api/internal/fixture"
	"github.com/medconnect/medconnect-api/internal/ports"
	"github.com/medconnect/medconnect-api/internal/service"
)

// RepositorySet holds one implementation of every repository port. The
// backend is chosen once here; services never know which one they got.
type RepositorySet struct {
	Colleges      ports.CollegeRepository
	Users         ports.UserRepository
	Academic      ports.AcademicRepository
	Clinical      ports.ClinicalRepository
	Hostel        ports.HostelRepository
	Admin         ports.AdminRepository
	Notifications ports.NotificationRepository
}

// BuildRepositories selects the repository backend. The fixture backend
// serves seeded in-memory data and needs no database; the postgres backend
// needs a connected pool.
func BuildRepositories(cfg config.RepoConfig, db *sql.DB, logger *slog.Logger) (RepositorySet, error) {
	switch cfg.Backend {
	case config.RepoBackendFixture:
		if logger != nil {
			logger.Info("using fixture repositories", "backend", cfg.Backend)
		}
		repos := fixture.New()
		return RepositorySet{
			Colleges:      repos.Colleges,
			Users:         repos.Users,
			Academic:      repos.Academic,
			Clinical:      repos.Clinical,
			Hostel:        repos.Hostel,
			Admin:         repos.Admin,
			Notifications: repos.Notifications,
		}, nil

	case config.RepoBackendPostgres:
		if db == nil {
			return RepositorySet{}, fmt.Errorf("postgres repository backend requires a database connection")
		}
		repos := data.NewRepositories(db)
		return RepositorySet{
			Colleges:      repos.Colleges,
			Users:         repos.Users,
			Academic:      repos.Academic,
			Clinical:      repos.Clinical,
			Hostel:        repos.Hostel,
			Admin:         repos.Admin,
			Notifications: repos.Notifications,
		}, nil

	default:
		return RepositorySet{}, fmt.Errorf("unknown repository backend: %q", cfg.Backend)
	}
}

// ServiceContainer holds every constructed service.
type ServiceContainer struct {
	Auth          *service.AuthService
	Academic      *service.AcademicService
	Clinical      *service.ClinicalService
	Hostel        *service.HostelService
	Admin         *service.AdminService
	Notifications *service.NotificationService
	Directory     *service.DirectoryService
	Dashboard     *service.DashboardService
	Governance    *service.GovernanceService
}

// ServiceDeps groups dependencies needed to construct services.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices constructs every service over the configured repositories.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, fmt.Errorf("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	repos, err := BuildRepositories(deps.Config.Repos, deps.DB, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	auth, err := BuildAuthService(AuthDeps{
		Auth:        deps.Config.Auth,
		Repos:       repos,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Auth: auth,
		Academic: service.NewAcademicService(service.AcademicServiceOptions{
			Repo: repos.Academic,
		}),
		Clinical: service.NewClinicalService(service.ClinicalServiceOptions{
			Repo:          repos.Clinical,
			Notifications: repos.Notifications,
			Logger:        logger,
		}),
		Hostel: service.NewHostelService(service.HostelServiceOptions{
			Repo: repos.Hostel,
		}),
		Admin: service.NewAdminService(service.AdminServiceOptions{
			Repo:          repos.Admin,
			Notifications: repos.Notifications,
			Logger:        logger,
		}),
		Notifications: service.NewNotificationService(service.NotificationServiceOptions{
			Repo: repos.Notifications,
		}),
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
	}, nil
}
