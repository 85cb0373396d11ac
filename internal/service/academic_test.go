package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
	"github.com/medconnect/medconnect-api/internal/fixture"
)

func TestListSubjectsScopedToCallerCollege(t *testing.T) {
	svc := NewAcademicService(AcademicServiceOptions{Repo: fixture.New().Academic})

	subjects, err := svc.ListSubjects(context.Background(), studentSession())
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	for _, s := range subjects {
		assert.Equal(t, fixture.SeedCollegeID, s.CollegeID)
	}

	foreign := studentSession()
	foreign.CollegeID = "col-elsewhere"
	subjects, err = svc.ListSubjects(context.Background(), foreign)
	require.NoError(t, err)
	assert.Empty(t, subjects)
}

func TestGetSubjectHidesForeignCollege(t *testing.T) {
	svc := NewAcademicService(AcademicServiceOptions{Repo: fixture.New().Academic})

	_, err := svc.GetSubject(context.Background(), studentSession(), fixture.SeedSubjectID)
	require.NoError(t, err)

	foreign := studentSession()
	foreign.CollegeID = "col-elsewhere"
	_, err = svc.GetSubject(context.Background(), foreign, fixture.SeedSubjectID)
	assert.True(t, apperrors.IsNotFound(err), "foreign subjects look missing, not forbidden")
}

func TestCreateSubjectRequiresCurriculumRole(t *testing.T) {
	svc := NewAcademicService(AcademicServiceOptions{Repo: fixture.New().Academic})

	req := &model.CreateSubjectRequest{Name: "Biochemistry", Code: "BIOC-101", Year: 1, Semester: 2}

	_, err := svc.CreateSubject(context.Background(), studentSession(), req)
	assert.True(t, apperrors.IsForbidden(err))

	_, err = svc.CreateSubject(context.Background(), facultySession(), req)
	assert.True(t, apperrors.IsForbidden(err), "plain faculty do not edit the curriculum")

	subject, err := svc.CreateSubject(context.Background(), hodSession(), req)
	require.NoError(t, err)
	assert.Equal(t, fixture.SeedCollegeID, subject.CollegeID, "college defaults to the caller's")
}

func TestCreateSubjectRejectsForeignCollege(t *testing.T) {
	svc := NewAcademicService(AcademicServiceOptions{Repo: fixture.New().Academic})

	_, err := svc.CreateSubject(context.Background(), hodSession(), &model.CreateSubjectRequest{
		CollegeID: "col-elsewhere", Name: "Biochemistry", Code: "BIOC-101", Year: 1, Semester: 2,
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListModulesChecksSubjectVisibility(t *testing.T) {
	svc := NewAcademicService(AcademicServiceOptions{Repo: fixture.New().Academic})

	modules, err := svc.ListModules(context.Background(), studentSession(), fixture.SeedSubjectID)
	require.NoError(t, err)
	assert.Len(t, modules, 2)

	foreign := studentSession()
	foreign.CollegeID = "col-elsewhere"
	_, err = svc.ListModules(context.Background(), foreign, fixture.SeedSubjectID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListResourcesBookmarkFilterUsesCallerBookmarks(t *testing.T) {
	svc := NewAcademicService(AcademicServiceOptions{Repo: fixture.New().Academic})

	// The seed bookmarks the skull video for the student only.
	resources, err := svc.ListResources(context.Background(), studentSession(), model.ResourceListOptions{BookmarkedOnly: true})
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, fixture.SeedResourceID, resources[0].ID)

	resources, err = svc.ListResources(context.Background(), facultySession(), model.ResourceListOptions{BookmarkedOnly: true})
	require.NoError(t, err)
	assert.Empty(t, resources, "bookmarks never leak across users")
}

func TestRecordProgressIsCallerScoped(t *testing.T) {
	repos := fixture.New()
	svc := NewAcademicService(AcademicServiceOptions{Repo: repos.Academic})

	caller := facultySession()
	progress, err := svc.RecordProgress(context.Background(), caller, &model.RecordProgressRequest{
		ResourceID: fixture.SeedResourceID,
		Percent:    40,
	})
	require.NoError(t, err)
	assert.Equal(t, caller.UserID, progress.UserID)

	records, err := svc.ListProgress(context.Background(), caller)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 40, records[0].Percent)
}
