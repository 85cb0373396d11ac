package httpx

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/fixture"
)

func TestListSubjectsScopedToCallerCollege(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "asha@gmc.edu")

	rec := env.do(t, http.MethodGet, "/academic/subjects", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var subjects []*model.Subject
	decodeBody(t, rec, &subjects)
	require.NotEmpty(t, subjects)
	for _, s := range subjects {
		assert.Equal(t, fixture.SeedCollegeID, s.CollegeID)
	}
}

func TestCreateSubjectForbiddenForStudents(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "asha@gmc.edu")

	rec := env.do(t, http.MethodPost, "/academic/subjects", session.AccessToken, map[string]any{
		"name":     "Biochemistry",
		"code":     "BIO-101",
		"year":     1,
		"semester": 1,
	})

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Your role does not permit this action.", errorDetail(t, rec))
}

func TestCreateSubjectAsHOD(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "lakshmi.pillai@gmc.edu")

	rec := env.do(t, http.MethodPost, "/academic/subjects", session.AccessToken, map[string]any{
		"name":     "Biochemistry",
		"code":     "BIO-101",
		"year":     1,
		"semester": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var subject model.Subject
	decodeBody(t, rec, &subject)
	assert.Equal(t, fixture.SeedCollegeID, subject.CollegeID, "college defaults to the caller's")
}

func TestGetUnknownSubjectIs404(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "asha@gmc.edu")

	rec := env.do(t, http.MethodGet, "/academic/subjects/sub-nope", session.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, errorDetail(t, rec))
}

func TestRecordProgressRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "asha@gmc.edu")

	rec := env.do(t, http.MethodPost, "/academic/progress", session.AccessToken, map[string]any{
		"resource_id": fixture.SeedResourceID,
		"percent":     100,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	list := env.do(t, http.MethodGet, "/academic/progress/me", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, list.Code)

	var progress []*model.ResourceProgress
	decodeBody(t, list, &progress)
	require.NotEmpty(t, progress)
	assert.Equal(t, fixture.SeedStudentID, progress[0].UserID)
}

func TestLogbookReviewFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	student := env.login(t, "asha@gmc.edu")
	faculty := env.login(t, "ravi.menon@gmc.edu")

	// A student cannot work the verification queue.
	forbidden := env.do(t, http.MethodPost, "/clinical/logbooks/"+fixture.SeedLogbookSubmit+"/review",
		student.AccessToken, map[string]any{"approve": true})
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	// Faculty rejecting without remarks is a validation error.
	noRemarks := env.do(t, http.MethodPost, "/clinical/logbooks/"+fixture.SeedLogbookSubmit+"/review",
		faculty.AccessToken, map[string]any{"approve": false})
	assert.Equal(t, http.StatusBadRequest, noRemarks.Code)

	rec := env.do(t, http.MethodPost, "/clinical/logbooks/"+fixture.SeedLogbookSubmit+"/review",
		faculty.AccessToken, map[string]any{"approve": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var entry model.LogbookEntry
	decodeBody(t, rec, &entry)
	assert.Equal(t, model.LogbookVerified, entry.Status)
	require.NotNil(t, entry.VerifiedBy)
	assert.Equal(t, fixture.SeedFacultyID, *entry.VerifiedBy)

	// Reviewing the same entry twice conflicts.
	again := env.do(t, http.MethodPost, "/clinical/logbooks/"+fixture.SeedLogbookSubmit+"/review",
		faculty.AccessToken, map[string]any{"approve": true})
	assert.Equal(t, http.StatusConflict, again.Code)

	// The decision lands in the student's inbox.
	inbox := env.do(t, http.MethodGet, "/notifications?unread=true", student.AccessToken, nil)
	require.Equal(t, http.StatusOK, inbox.Code)
	assert.Contains(t, inbox.Body.String(), "Logbook entry verified")
}

func TestLogbookListDefaultsToVerificationQueueForFaculty(t *testing.T) {
	env := newTestEnv(t)
	faculty := env.login(t, "ravi.menon@gmc.edu")

	rec := env.do(t, http.MethodGet, "/clinical/logbooks", faculty.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []*model.LogbookEntry
	decodeBody(t, rec, &entries)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, model.LogbookSubmitted, e.Status)
	}
}

func TestLogbookListRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	faculty := env.login(t, "ravi.menon@gmc.edu")

	rec := env.do(t, http.MethodGet, "/clinical/logbooks?status=telepathic", faculty.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogbookListAcceptsPendingAlias(t *testing.T) {
	env := newTestEnv(t)
	faculty := env.login(t, "ravi.menon@gmc.edu")

	// "pending" is the portal wording for the stored "submitted" status.
	rec := env.do(t, http.MethodGet, "/clinical/logbooks?status=pending", faculty.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []*model.LogbookEntry
	decodeBody(t, rec, &entries)
	for _, e := range entries {
		assert.Equal(t, model.LogbookSubmitted, e.Status)
	}
}

func TestHostelRoomFilters(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "asha@gmc.edu")

	rec := env.do(t, http.MethodGet, "/hostel/rooms?status=available", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rooms []*model.Room
	decodeBody(t, rec, &rooms)
	require.NotEmpty(t, rooms)
	for _, room := range rooms {
		assert.Equal(t, model.RoomAvailable, room.Status)
	}

	bad := env.do(t, http.MethodGet, "/hostel/rooms?status=luxurious", session.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestVisitorDecisionOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	student := env.login(t, "asha@gmc.edu")
	admin := env.login(t, "thomas@gmc.edu")

	// Residents cannot decide their own visitor requests.
	forbidden := env.do(t, http.MethodPut, "/hostel/visitors/vis-pending/status",
		student.AccessToken, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	rec := env.do(t, http.MethodPut, "/hostel/visitors/vis-pending/status",
		admin.AccessToken, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var visit model.VisitorLog
	decodeBody(t, rec, &visit)
	assert.Equal(t, model.VisitorApproved, visit.Status)
	assert.NotNil(t, visit.CheckedIn)
}

func TestMyVisitorsOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	student := env.login(t, "asha@gmc.edu")

	rec := env.do(t, http.MethodGet, "/hostel/visitors/me", student.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var visits []*model.VisitorLog
	decodeBody(t, rec, &visits)
	require.Len(t, visits, 1)
	assert.Equal(t, "vis-pending", visits[0].ID)
}

func TestCertificateReviewOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	student := env.login(t, "asha@gmc.edu")
	admin := env.login(t, "thomas@gmc.edu")

	// The pending queue is admin-only.
	forbidden := env.do(t, http.MethodGet, "/admin/certificates/pending", student.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, forbidden.Code)
	assert.Equal(t, "Your role does not permit this action.", errorDetail(t, forbidden))

	queue := env.do(t, http.MethodGet, "/admin/certificates/pending", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, queue.Code)

	var pending []*model.Certificate
	decodeBody(t, queue, &pending)
	require.NotEmpty(t, pending)

	// Approval must attach the generated document.
	noFile := env.do(t, http.MethodPost, "/admin/certificates/cert-pending/review",
		admin.AccessToken, map[string]any{"approve": true})
	assert.Equal(t, http.StatusBadRequest, noFile.Code)

	rec := env.do(t, http.MethodPost, "/admin/certificates/cert-pending/review",
		admin.AccessToken, map[string]any{"approve": true, "file_url": "https://files.gmc.edu/cert-pending.pdf"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cert model.Certificate
	decodeBody(t, rec, &cert)
	assert.Equal(t, model.CertificateApproved, cert.Status)

	// The requester hears about the decision.
	inbox := env.do(t, http.MethodGet, "/notifications?unread=true", student.AccessToken, nil)
	require.Equal(t, http.StatusOK, inbox.Code)
	assert.Contains(t, inbox.Body.String(), "Certificate approved")
}

func TestMyCertificatesAcceptsPendingAlias(t *testing.T) {
	env := newTestEnv(t)
	student := env.login(t, "asha@gmc.edu")

	// The portal says "pending" but the stored status is "submitted".
	rec := env.do(t, http.MethodGet, "/admin/certificates/me?status=pending", student.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var certs []*model.Certificate
	decodeBody(t, rec, &certs)
	require.NotEmpty(t, certs)
	for _, c := range certs {
		assert.Equal(t, model.CertificateSubmitted, c.Status)
	}
	assert.Contains(t, rec.Body.String(), `"status":"submitted"`)

	bad := env.do(t, http.MethodGet, "/admin/certificates/me?status=notarized", student.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestEventRegistrationConflictsOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "asha@gmc.edu")

	first := env.do(t, http.MethodPost, "/admin/events/"+fixture.SeedEventID+"/register", session.AccessToken, nil)
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	second := env.do(t, http.MethodPost, "/admin/events/"+fixture.SeedEventID+"/register", session.AccessToken, nil)
	require.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, "Already registered for this event.", errorDetail(t, second))
}

func TestCreateEventDefaultsStartAndCollege(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "ravi.menon@gmc.edu")

	starts := time.Now().Add(48 * time.Hour).UTC()
	rec := env.do(t, http.MethodPost, "/admin/events", session.AccessToken, map[string]any{
		"title":       "CME: Sepsis Update",
		"description": "Continuing medical education session.",
		"venue":       "Lecture Hall 2",
		"starts_at":   starts.Format(time.RFC3339),
		"ends_at":     starts.Add(2 * time.Hour).Format(time.RFC3339),
		"capacity":    100,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var event model.Event
	decodeBody(t, rec, &event)
	assert.Equal(t, fixture.SeedCollegeID, event.CollegeID)
}

func TestNotificationsMarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "asha@gmc.edu")

	rec := env.do(t, http.MethodPost, "/notifications/read-all", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"updated":1`)

	unread := env.do(t, http.MethodGet, "/notifications?unread=true", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, unread.Code)
	assert.JSONEq(t, "[]", unread.Body.String())
}

func TestMarkReadForeignNotificationIs404(t *testing.T) {
	env := newTestEnv(t)
	faculty := env.login(t, "ravi.menon@gmc.edu")

	// ntf-logbook belongs to the student; for anyone else it does not exist.
	rec := env.do(t, http.MethodPost, "/notifications/ntf-logbook/read", faculty.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCollegesListIsPublicButRegistrationIsNot(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/colleges", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var colleges []*model.College
	decodeBody(t, rec, &colleges)
	assert.NotEmpty(t, colleges)

	anon := env.do(t, http.MethodPost, "/colleges", "", map[string]any{
		"name": "New College", "code": "NC", "city": "Kochi", "state": "Kerala",
	})
	assert.Equal(t, http.StatusUnauthorized, anon.Code)

	admin := env.login(t, "thomas@gmc.edu")
	forbidden := env.do(t, http.MethodPost, "/colleges", admin.AccessToken, map[string]any{
		"name": "New College", "code": "NC", "city": "Kochi", "state": "Kerala",
	})
	assert.Equal(t, http.StatusForbidden, forbidden.Code, "college registration belongs to the directorate")
}

func TestStudentsDirectoryIsStaffOnly(t *testing.T) {
	env := newTestEnv(t)
	student := env.login(t, "asha@gmc.edu")
	faculty := env.login(t, "ravi.menon@gmc.edu")

	forbidden := env.do(t, http.MethodGet, "/students", student.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	rec := env.do(t, http.MethodGet, "/students?q=asha", faculty.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var students []*model.User
	decodeBody(t, rec, &students)
	require.NotEmpty(t, students)
	assert.Equal(t, fixture.SeedStudentID, students[0].ID)
}

func TestGetProfileOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	session := env.login(t, "asha@gmc.edu")

	rec := env.do(t, http.MethodGet, "/users/me", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user model.User
	decodeBody(t, rec, &user)
	assert.Equal(t, fixture.SeedStudentID, user.ID)
	assert.Empty(t, user.PasswordHash, "hashes never serialize")
}
