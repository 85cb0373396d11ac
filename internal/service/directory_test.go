package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
	"github.com/medconnect/medconnect-api/internal/fixture"
)

func newDirectoryService(repos *fixture.Repositories) *DirectoryService {
	return NewDirectoryService(DirectoryServiceOptions{Users: repos.Users, Colleges: repos.Colleges})
}

func TestListCollegesIsPublic(t *testing.T) {
	svc := newDirectoryService(fixture.New())

	colleges, err := svc.ListColleges(context.Background())
	require.NoError(t, err)
	require.Len(t, colleges, 1)
	assert.Equal(t, fixture.SeedCollegeID, colleges[0].ID)
}

func TestRegisterCollegeIsDirectorateOnly(t *testing.T) {
	svc := newDirectoryService(fixture.New())

	req := &model.CreateCollegeRequest{
		Name: "Government Medical College, Kozhikode", Code: "GMC-KKD",
		City: "Kozhikode", State: "Kerala",
	}

	_, err := svc.RegisterCollege(context.Background(), adminSession(), req)
	assert.True(t, apperrors.IsForbidden(err), "college admins do not onboard colleges")

	college, err := svc.RegisterCollege(context.Background(), sessionFor(domainauth.RoleDME, "usr-dme-rao"), req)
	require.NoError(t, err)
	assert.NotEmpty(t, college.ID)

	colleges, err := svc.ListColleges(context.Background())
	require.NoError(t, err)
	assert.Len(t, colleges, 2)
}

func TestDirectoryListingsAreStaffOnly(t *testing.T) {
	svc := newDirectoryService(fixture.New())

	_, err := svc.ListStudents(context.Background(), studentSession(), nil)
	assert.True(t, apperrors.IsForbidden(err))

	students, err := svc.ListStudents(context.Background(), facultySession(), nil)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, fixture.SeedStudentID, students[0].ID)

	faculty, err := svc.ListFaculty(context.Background(), hodSession(), nil)
	require.NoError(t, err)
	require.Len(t, faculty, 1)
	assert.Equal(t, fixture.SeedFacultyID, faculty[0].ID)
}

func TestDirectoryRejectsUnknownRole(t *testing.T) {
	svc := newDirectoryService(fixture.New())

	caller := facultySession()
	caller.Role = "registrar"
	_, err := svc.ListStudents(context.Background(), caller, nil)
	assert.True(t, apperrors.IsForbidden(err), "unknown roles are denied, never defaulted")
}

func TestGetProfileReturnsCaller(t *testing.T) {
	svc := newDirectoryService(fixture.New())

	user, err := svc.GetProfile(context.Background(), studentSession())
	require.NoError(t, err)
	assert.Equal(t, fixture.SeedStudentID, user.ID)
	assert.Equal(t, domainauth.RoleStudent, user.Role)
}
