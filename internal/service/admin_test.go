package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
	"github.com/medconnect/medconnect-api/internal/fixture"
	"github.com/medconnect/medconnect-api/internal/testutil"
)

func newAdminService(repos *fixture.Repositories) *AdminService {
	return NewAdminService(AdminServiceOptions{
		Repo:          repos.Admin,
		Notifications: repos.Notifications,
	})
}

func TestCertificateRequestAndReview(t *testing.T) {
	repos := fixture.New()
	svc := newAdminService(repos)

	_, err := svc.RequestCertificate(context.Background(), facultySession(), &model.RequestCertificateRequest{
		Kind: "bonafide", Purpose: "passport",
	})
	assert.True(t, apperrors.IsForbidden(err), "only students request certificates")

	cert, err := svc.RequestCertificate(context.Background(), studentSession(), &model.RequestCertificateRequest{
		Kind: "conduct", Purpose: "internship application",
	})
	require.NoError(t, err)
	assert.Equal(t, model.CertificateSubmitted, cert.Status)

	_, err = svc.PendingCertificates(context.Background(), studentSession())
	assert.True(t, apperrors.IsForbidden(err))

	pending, err := svc.PendingCertificates(context.Background(), adminSession())
	require.NoError(t, err)
	assert.Len(t, pending, 2, "seeded request plus the new one")

	before, err := repos.Notifications.ListForUser(context.Background(), fixture.SeedStudentID, model.NotificationListOptions{UnreadOnly: true})
	require.NoError(t, err)

	reviewed, err := svc.ReviewCertificate(context.Background(), adminSession(), cert.ID, &model.ReviewCertificateRequest{
		Approve: true,
		FileURL: testutil.StringPtr("https://files.medconnect.example/certs/conduct.pdf"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CertificateApproved, reviewed.Status)

	after, err := repos.Notifications.ListForUser(context.Background(), fixture.SeedStudentID, model.NotificationListOptions{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, "Certificate approved", after[0].Title)
}

func TestPublishNoticeDefaultsToCallerCollege(t *testing.T) {
	svc := newAdminService(fixture.New())

	_, err := svc.PublishNotice(context.Background(), studentSession(), &model.CreateNoticeRequest{
		Title: "Lost ID card", Body: "Found near the library.", Audience: "all",
	})
	assert.True(t, apperrors.IsForbidden(err))

	notice, err := svc.PublishNotice(context.Background(), adminSession(), &model.CreateNoticeRequest{
		Title: "Library hours", Body: "Open till 22:00 during exams.", Audience: "all",
	})
	require.NoError(t, err)
	assert.Equal(t, fixture.SeedCollegeID, notice.CollegeID)

	notices, err := svc.ListNotices(context.Background(), studentSession())
	require.NoError(t, err)
	assert.Len(t, notices, 2)
}

func TestEventRegistration(t *testing.T) {
	repos := fixture.New()
	svc := newAdminService(repos)

	reg, err := svc.RegisterForEvent(context.Background(), studentSession(), fixture.SeedEventID)
	require.NoError(t, err)
	assert.Equal(t, fixture.SeedStudentID, reg.UserID)

	_, err = svc.RegisterForEvent(context.Background(), studentSession(), fixture.SeedEventID)
	assert.True(t, apperrors.IsConflict(err), "no double registration")

	regs, err := svc.MyRegistrations(context.Background(), studentSession())
	require.NoError(t, err)
	assert.Len(t, regs, 1)
}

func TestCreateEventRoles(t *testing.T) {
	svc := newAdminService(fixture.New())

	starts := time.Now().AddDate(0, 0, 7)
	req := &model.CreateEventRequest{
		Title:       "CPR Workshop",
		Description: "Hands-on basic life support training",
		Venue:       "Skills Lab",
		StartsAt:    starts,
		EndsAt:      starts.Add(2 * time.Hour),
		Capacity:    40,
	}

	_, err := svc.CreateEvent(context.Background(), studentSession(), req)
	assert.True(t, apperrors.IsForbidden(err))

	event, err := svc.CreateEvent(context.Background(), facultySession(), req)
	require.NoError(t, err)
	assert.Equal(t, fixture.SeedCollegeID, event.CollegeID)
}
