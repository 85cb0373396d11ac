package service

import (
	"time"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/fixture"
)

// sessionFor builds an authenticated session for a seeded account.
func sessionFor(role domainauth.Role, userID string) domainauth.Session {
	return domainauth.Session{
		ID:        "sess-" + userID,
		UserID:    userID,
		FullName:  "Seeded " + string(role),
		Email:     userID + "@gmc.edu",
		Role:      role,
		CollegeID: fixture.SeedCollegeID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func studentSession() domainauth.Session {
	return sessionFor(domainauth.RoleStudent, fixture.SeedStudentID)
}

func facultySession() domainauth.Session {
	return sessionFor(domainauth.RoleFaculty, fixture.SeedFacultyID)
}

func hodSession() domainauth.Session {
	return sessionFor(domainauth.RoleHOD, fixture.SeedHODID)
}

func adminSession() domainauth.Session {
	return sessionFor(domainauth.RoleAdmin, fixture.SeedAdminID)
}
