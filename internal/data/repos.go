package data

// Package data implements the repository ports against PostgreSQL. Queries
// go through the pgx stdlib bridge so the *sql.DB pool stays the single
// connection owner; failures are translated to portal errors by
// apperrors.MapDBError.

import (
	"context"
	"database/sql"

	"github.com/medconnect/medconnect-api/internal/migrate"
	"github.com/medconnect/medconnect-api/internal/ports"
)

// Repositories bundles one PostgreSQL-backed implementation of every
// repository port, all sharing one pool.
type Repositories struct {
	Colleges      *CollegeRepo
	Users         *UserRepo
	Academic      *AcademicRepo
	Clinical      *ClinicalRepo
	Hostel        *HostelRepo
	Admin         *AdminRepo
	Notifications *NotificationRepo
}

// Compile-time conformance to the repository ports.
var (
	_ ports.CollegeRepository      = (*CollegeRepo)(nil)
	_ ports.UserRepository         = (*UserRepo)(nil)
	_ ports.AcademicRepository     = (*AcademicRepo)(nil)
	_ ports.ClinicalRepository     = (*ClinicalRepo)(nil)
	_ ports.HostelRepository       = (*HostelRepo)(nil)
	_ ports.AdminRepository        = (*AdminRepo)(nil)
	_ ports.NotificationRepository = (*NotificationRepo)(nil)
)

// NewRepositories constructs the full repository set on one pool.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Colleges:      NewCollegeRepo(db),
		Users:         NewUserRepo(db),
		Academic:      NewAcademicRepo(db),
		Clinical:      NewClinicalRepo(db),
		Hostel:        NewHostelRepo(db),
		Admin:         NewAdminRepo(db),
		Notifications: NewNotificationRepo(db),
	}
}

// RunMigrations sets up the schema by delegating to the migrate package.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}
