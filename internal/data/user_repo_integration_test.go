package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
	"github.com/medconnect/medconnect-api/internal/testutil"
)

// withTestDB opens the shared test database and makes sure the schema is up.
func withTestDB(t *testing.T, fn func(db *sql.DB)) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	defer func() { _ = db.Close() }()
	require.NoError(t, RunMigrations(context.Background(), db))
	fn(db)
}

func createTestCollege(t *testing.T, db *sql.DB) *model.College {
	t.Helper()
	college, err := NewCollegeRepo(db).Create(context.Background(), &model.CreateCollegeRequest{
		Name:  "Integration Test College " + uuid.NewString(),
		Code:  "ITC-" + uuid.NewString()[:8],
		City:  "Kochi",
		State: "Kerala",
	})
	require.NoError(t, err)
	return college
}

func TestUserRepoIntegrationCreateAndFetch(t *testing.T) {
	withTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		college := createTestCollege(t, db)
		email := fmt.Sprintf("it-%s@gmc.edu", uuid.NewString()[:8])

		created, err := repo.Create(context.Background(), &model.CreateUserRequest{
			FullName:  "Integration Student",
			Email:     "  " + email + "  ",
			Password:  "longenough",
			Role:      domainauth.RoleStudent,
			CollegeID: college.ID,
		}, "hash")
		require.NoError(t, err)
		assert.Equal(t, email, created.Email, "emails are trimmed and lowercased")

		byEmail, err := repo.GetByEmail(context.Background(), email)
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)

		// Duplicate email is a conflict, not an internal error.
		_, err = repo.Create(context.Background(), &model.CreateUserRequest{
			FullName:  "Duplicate",
			Email:     email,
			Password:  "longenough",
			Role:      domainauth.RoleStudent,
			CollegeID: college.ID,
		}, "hash")
		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestUserRepoIntegrationPartialUpdate(t *testing.T) {
	withTestDB(t, func(db *sql.DB) {
		repo := NewUserRepo(db)
		college := createTestCollege(t, db)

		created, err := repo.Create(context.Background(), &model.CreateUserRequest{
			FullName:  "Dr. Update Target",
			Email:     fmt.Sprintf("it-%s@gmc.edu", uuid.NewString()[:8]),
			Password:  "longenough",
			Role:      domainauth.RoleFaculty,
			CollegeID: college.ID,
		}, "hash")
		require.NoError(t, err)

		updated, err := repo.Update(context.Background(), created.ID, &model.UpdateUserRequest{
			Department: testutil.StringPtr("Pathology"),
		})
		require.NoError(t, err)
		require.NotNil(t, updated.Department)
		assert.Equal(t, "Pathology", *updated.Department)
		assert.Equal(t, created.Email, updated.Email, "untouched fields stay as they were")
	})
}

func TestAcademicRepoIntegrationProgressUpsert(t *testing.T) {
	withTestDB(t, func(db *sql.DB) {
		college := createTestCollege(t, db)
		users := NewUserRepo(db)
		academic := NewAcademicRepo(db)
		ctx := context.Background()

		student, err := users.Create(ctx, &model.CreateUserRequest{
			FullName:  "Progress Student",
			Email:     fmt.Sprintf("it-%s@gmc.edu", uuid.NewString()[:8]),
			Password:  "longenough",
			Role:      domainauth.RoleStudent,
			CollegeID: college.ID,
		}, "hash")
		require.NoError(t, err)

		subject, err := academic.CreateSubject(ctx, &model.CreateSubjectRequest{
			CollegeID: college.ID,
			Name:      "Pharmacology",
			Code:      "PHARM-" + uuid.NewString()[:8],
			Year:      2,
			Semester:  1,
		})
		require.NoError(t, err)

		// Modules and resources have no create port; seed them directly.
		moduleID := uuid.NewString()
		resourceID := uuid.NewString()
		_, err = db.ExecContext(ctx,
			`INSERT INTO curriculum_modules (id, subject_id, title) VALUES ($1, $2, 'General Pharmacology')`,
			moduleID, subject.ID)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx,
			`INSERT INTO learning_resources (id, module_id, title, kind) VALUES ($1, $2, 'Intro Lecture', 'video')`,
			resourceID, moduleID)
		require.NoError(t, err)

		first, err := academic.RecordProgress(ctx, student.ID, &model.RecordProgressRequest{
			ResourceID: resourceID,
			Percent:    100,
		})
		require.NoError(t, err)
		require.NotNil(t, first.CompletedAt)

		// Rewatching keeps the original completion stamp.
		second, err := academic.RecordProgress(ctx, student.ID, &model.RecordProgressRequest{
			ResourceID: resourceID,
			Percent:    100,
			Bookmarked: testutil.BoolPtr(true),
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID, "upsert reuses the row")
		require.NotNil(t, second.CompletedAt)
		assert.Equal(t, first.CompletedAt.Unix(), second.CompletedAt.Unix())
		assert.True(t, second.Bookmarked)
	})
}
