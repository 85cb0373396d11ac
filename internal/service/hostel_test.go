package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
	"github.com/medconnect/medconnect-api/internal/fixture"
)

func TestAllocateRoomRequiresHousingRole(t *testing.T) {
	repos := fixture.New()
	svc := NewHostelService(HostelServiceOptions{Repo: repos.Hostel})

	resident, err := repos.Users.Create(context.Background(), &model.CreateUserRequest{
		FullName:  "Ravi Kumar",
		Email:     "ravi.kumar@gmc.edu",
		Password:  "longenough",
		Role:      domainauth.RoleStudent,
		CollegeID: fixture.SeedCollegeID,
	}, "hash")
	require.NoError(t, err)

	req := &model.AllocateRoomRequest{RoomID: fixture.SeedRoomID, UserID: resident.ID}

	_, err = svc.AllocateRoom(context.Background(), studentSession(), req)
	assert.True(t, apperrors.IsForbidden(err))
	_, err = svc.AllocateRoom(context.Background(), facultySession(), req)
	assert.True(t, apperrors.IsForbidden(err))

	alloc, err := svc.AllocateRoom(context.Background(), adminSession(), req)
	require.NoError(t, err)
	assert.True(t, alloc.Active())

	history, err := svc.MyAllocations(context.Background(), sessionFor(domainauth.RoleStudent, resident.ID))
	require.NoError(t, err)
	require.Len(t, history, 1)

	vacated, err := svc.VacateRoom(context.Background(), adminSession(), alloc.ID)
	require.NoError(t, err)
	assert.False(t, vacated.Active())
}

func TestListRoomsFilters(t *testing.T) {
	svc := NewHostelService(HostelServiceOptions{Repo: fixture.New().Hostel})

	available := model.RoomAvailable
	rooms, err := svc.ListRooms(context.Background(), model.RoomListOptions{Status: &available})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, fixture.SeedRoomID, rooms[0].ID)
	assert.True(t, rooms[0].HasSpace())
}

func TestRequestVisitorIsStudentOnly(t *testing.T) {
	svc := NewHostelService(HostelServiceOptions{Repo: fixture.New().Hostel})

	req := &model.CreateVisitorLogRequest{
		HostelID:    fixture.SeedHostelID,
		VisitorName: "Suma Nair",
		Relation:    "mother",
		VisitDate:   time.Now().AddDate(0, 0, 2),
	}

	_, err := svc.RequestVisitor(context.Background(), facultySession(), req)
	assert.True(t, apperrors.IsForbidden(err))

	visit, err := svc.RequestVisitor(context.Background(), studentSession(), req)
	require.NoError(t, err)
	assert.Equal(t, model.VisitorPending, visit.Status)
	assert.Equal(t, fixture.SeedStudentID, visit.ResidentID)
}

func TestVisitorDecisionsBelongToHousingRoles(t *testing.T) {
	svc := NewHostelService(HostelServiceOptions{Repo: fixture.New().Hostel})

	_, err := svc.ListVisitors(context.Background(), studentSession(), fixture.SeedHostelID)
	assert.True(t, apperrors.IsForbidden(err))

	visits, err := svc.ListVisitors(context.Background(), adminSession(), fixture.SeedHostelID)
	require.NoError(t, err)
	require.NotEmpty(t, visits)

	_, err = svc.DecideVisitor(context.Background(), studentSession(), "vis-pending", model.VisitorApproved)
	assert.True(t, apperrors.IsForbidden(err))

	visit, err := svc.DecideVisitor(context.Background(), adminSession(), "vis-pending", model.VisitorApproved)
	require.NoError(t, err)
	assert.Equal(t, model.VisitorApproved, visit.Status)
}

func TestListHostelsScopedToCallerCollege(t *testing.T) {
	svc := NewHostelService(HostelServiceOptions{Repo: fixture.New().Hostel})

	hostels, err := svc.ListHostels(context.Background(), studentSession())
	require.NoError(t, err)
	require.Len(t, hostels, 1)

	foreign := studentSession()
	foreign.CollegeID = "col-elsewhere"
	hostels, err = svc.ListHostels(context.Background(), foreign)
	require.NoError(t, err)
	assert.Empty(t, hostels)
}

func TestMyVisitorsReturnsOnlyOwnRequests(t *testing.T) {
	svc := NewHostelService(HostelServiceOptions{Repo: fixture.New().Hostel})

	visits, err := svc.MyVisitors(context.Background(), studentSession())
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, fixture.SeedStudentID, visits[0].ResidentID)

	other, err := svc.MyVisitors(context.Background(), facultySession())
	require.NoError(t, err)
	assert.Empty(t, other)
}
