package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
	"github.com/medconnect/medconnect-api/internal/testutil"
)

func TestSeedIsCoherent(t *testing.T) {
	repos := New()
	ctx := context.Background()

	college, err := repos.Colleges.GetByID(ctx, SeedCollegeID)
	require.NoError(t, err)
	assert.Equal(t, "GMC-TVM", college.Code)

	// One account per role, all in the seed college.
	for _, role := range domainauth.AllRoles() {
		r := role
		users, err := repos.Users.List(ctx, model.UsersListOptions{Role: &r})
		require.NoError(t, err)
		require.NotEmpty(t, users, "no seeded account for role %s", role)
		assert.Equal(t, SeedCollegeID, users[0].CollegeID)
	}

	subjects, err := repos.Academic.ListSubjects(ctx, SeedCollegeID)
	require.NoError(t, err)
	assert.Len(t, subjects, 2)

	modules, err := repos.Academic.ListModules(ctx, SeedSubjectID)
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, "Osteology", modules[0].Title, "modules come back in teaching order")
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	repos := New()
	ctx := context.Background()

	req := &model.CreateUserRequest{
		FullName:  "Second Asha",
		Email:     "ASHA@gmc.edu",
		Password:  "longenough",
		Role:      domainauth.RoleStudent,
		CollegeID: SeedCollegeID,
	}
	_, err := repos.Users.Create(ctx, req, "hash")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "email", apperrors.GetField(err))
}

func TestUserRepoPartialUpdate(t *testing.T) {
	repos := New()
	ctx := context.Background()

	name := "Asha N. Nair"
	updated, err := repos.Users.Update(ctx, SeedStudentID, &model.UpdateUserRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.FullName)
	assert.Equal(t, "asha@gmc.edu", updated.Email, "unset fields stay as they were")
}

func TestAcademicBookmarkFilter(t *testing.T) {
	repos := New()
	ctx := context.Background()

	all, err := repos.Academic.ListResources(ctx, model.ResourceListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bookmarked, err := repos.Academic.ListResources(ctx, model.ResourceListOptions{
		BookmarkedOnly: true,
		ForUserID:      SeedStudentID,
	})
	require.NoError(t, err)
	require.Len(t, bookmarked, 1)
	assert.Equal(t, SeedResourceID, bookmarked[0].ID)
}

func TestAcademicProgressCompletion(t *testing.T) {
	repos := New()
	ctx := context.Background()

	p, err := repos.Academic.RecordProgress(ctx, SeedStudentID, &model.RecordProgressRequest{
		ResourceID: SeedResourceID,
		Percent:    100,
	})
	require.NoError(t, err)
	assert.True(t, p.Completed())
	require.NotNil(t, p.CompletedAt)
	first := *p.CompletedAt

	// Re-recording keeps the original completion stamp.
	p, err = repos.Academic.RecordProgress(ctx, SeedStudentID, &model.RecordProgressRequest{
		ResourceID: SeedResourceID,
		Percent:    100,
	})
	require.NoError(t, err)
	assert.Equal(t, first, *p.CompletedAt)
}

func TestLogbookLifecycle(t *testing.T) {
	repos := New()
	ctx := context.Background()

	t.Run("draft submit review", func(t *testing.T) {
		entry, err := repos.Clinical.SubmitLogbookEntry(ctx, SeedLogbookDraft, SeedStudentID)
		require.NoError(t, err)
		assert.Equal(t, model.LogbookSubmitted, entry.Status)

		remarks := "well documented"
		entry, err = repos.Clinical.ReviewLogbookEntry(ctx, SeedLogbookDraft, SeedFacultyID,
			&model.ReviewLogbookEntryRequest{Approve: true, Remarks: &remarks})
		require.NoError(t, err)
		assert.Equal(t, model.LogbookVerified, entry.Status)
		require.NotNil(t, entry.VerifiedBy)
		assert.Equal(t, SeedFacultyID, *entry.VerifiedBy)
	})

	t.Run("only the owner submits", func(t *testing.T) {
		repos := New()
		_, err := repos.Clinical.SubmitLogbookEntry(ctx, SeedLogbookDraft, SeedFacultyID)
		assert.True(t, apperrors.IsForbidden(err))
	})

	t.Run("submitted entries cannot be resubmitted", func(t *testing.T) {
		repos := New()
		_, err := repos.Clinical.SubmitLogbookEntry(ctx, SeedLogbookSubmit, SeedStudentID)
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("rejection records remarks", func(t *testing.T) {
		repos := New()
		remarks := "notes too brief"
		entry, err := repos.Clinical.ReviewLogbookEntry(ctx, SeedLogbookSubmit, SeedFacultyID,
			&model.ReviewLogbookEntryRequest{Approve: false, Remarks: &remarks})
		require.NoError(t, err)
		assert.Equal(t, model.LogbookRejected, entry.Status)
		assert.Equal(t, &remarks, entry.Remarks)
	})
}

func TestRoomAllocationCycle(t *testing.T) {
	repos := New()
	ctx := context.Background()

	// The seeded student already holds a room.
	_, err := repos.Hostel.AllocateRoom(ctx, &model.AllocateRoomRequest{
		RoomID: SeedRoomID, UserID: SeedStudentID,
	})
	assert.True(t, apperrors.IsConflict(err))

	// A free bed goes to the faculty account (no active allocation).
	alloc, err := repos.Hostel.AllocateRoom(ctx, &model.AllocateRoomRequest{
		RoomID: SeedRoomID, UserID: SeedFacultyID,
	})
	require.NoError(t, err)

	room, err := repos.Hostel.GetRoom(ctx, SeedRoomID)
	require.NoError(t, err)
	assert.Equal(t, 2, room.Occupied)

	// Vacating frees the spot again.
	_, err = repos.Hostel.VacateRoom(ctx, alloc.ID)
	require.NoError(t, err)

	room, err = repos.Hostel.GetRoom(ctx, SeedRoomID)
	require.NoError(t, err)
	assert.Equal(t, 1, room.Occupied)
	assert.Equal(t, model.RoomAvailable, room.Status)

	_, err = repos.Hostel.VacateRoom(ctx, alloc.ID)
	assert.True(t, apperrors.IsConflict(err), "double vacate")
}

func TestRoomFillsToOccupied(t *testing.T) {
	repos := New()
	ctx := context.Background()

	// Capacity 3 with one seeded resident: two more fill it.
	for _, uid := range []string{SeedFacultyID, SeedHODID} {
		_, err := repos.Hostel.AllocateRoom(ctx, &model.AllocateRoomRequest{
			RoomID: SeedRoomID, UserID: uid,
		})
		require.NoError(t, err)
	}

	room, err := repos.Hostel.GetRoom(ctx, SeedRoomID)
	require.NoError(t, err)
	assert.Equal(t, model.RoomOccupied, room.Status)

	_, err = repos.Hostel.AllocateRoom(ctx, &model.AllocateRoomRequest{
		RoomID: SeedRoomID, UserID: SeedAdminID,
	})
	assert.True(t, apperrors.IsConflict(err))
}

func TestVisitorLifecycle(t *testing.T) {
	repos := New()
	ctx := context.Background()

	v, err := repos.Hostel.SetVisitorStatus(ctx, "vis-pending", model.VisitorApproved)
	require.NoError(t, err)
	assert.NotNil(t, v.CheckedIn)

	v, err = repos.Hostel.SetVisitorStatus(ctx, "vis-pending", model.VisitorCompleted)
	require.NoError(t, err)
	assert.NotNil(t, v.CheckedOut)

	_, err = repos.Hostel.SetVisitorStatus(ctx, "vis-pending", model.VisitorApproved)
	assert.True(t, apperrors.IsConflict(err), "completed visits cannot be re-approved")
}

func TestCertificateReview(t *testing.T) {
	repos := New()
	ctx := context.Background()

	pending, err := repos.Admin.ListPendingCertificates(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	cert, err := repos.Admin.ReviewCertificate(ctx, pending[0].ID, SeedAdminID,
		&model.ReviewCertificateRequest{Approve: true, FileURL: testutil.StringPtr("https://files.example/cert.pdf")})
	require.NoError(t, err)
	assert.Equal(t, model.CertificateApproved, cert.Status)

	_, err = repos.Admin.ReviewCertificate(ctx, pending[0].ID, SeedAdminID,
		&model.ReviewCertificateRequest{Approve: false})
	assert.True(t, apperrors.IsConflict(err), "certificates are reviewed once")
}

func TestEventRegistrationLimits(t *testing.T) {
	repos := New()
	ctx := context.Background()

	_, err := repos.Admin.RegisterForEvent(ctx, SeedEventID, SeedStudentID)
	require.NoError(t, err)

	_, err = repos.Admin.RegisterForEvent(ctx, SeedEventID, SeedStudentID)
	assert.True(t, apperrors.IsConflict(err), "double registration")

	// A capacity-1 event fills after one registration.
	starts := time.Now().AddDate(0, 0, 7)
	event, err := repos.Admin.CreateEvent(ctx, &model.CreateEventRequest{
		CollegeID: SeedCollegeID, Title: "CPR Workshop",
		StartsAt: starts, EndsAt: starts.Add(2 * time.Hour),
		Capacity: 1,
	})
	require.NoError(t, err)

	_, err = repos.Admin.RegisterForEvent(ctx, event.ID, SeedStudentID)
	require.NoError(t, err)
	_, err = repos.Admin.RegisterForEvent(ctx, event.ID, SeedFacultyID)
	assert.True(t, apperrors.IsConflict(err))
}

func TestNotificationsMarkRead(t *testing.T) {
	repos := New()
	ctx := context.Background()

	unread, err := repos.Notifications.ListForUser(ctx, SeedStudentID, model.NotificationListOptions{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 1)

	n, err := repos.Notifications.MarkRead(ctx, unread[0].ID, SeedStudentID)
	require.NoError(t, err)
	assert.True(t, n.Read())

	// Someone else's notification looks missing.
	_, err = repos.Notifications.MarkRead(ctx, unread[0].ID, SeedFacultyID)
	assert.True(t, apperrors.IsNotFound(err))

	changed, err := repos.Notifications.MarkAllRead(ctx, SeedStudentID)
	require.NoError(t, err)
	assert.Zero(t, changed, "everything already read")
}
