package ports

import (
	"context"

	"github.com/medconnect/medconnect-api/internal/domain/model"
)

// Repository ports for the portal's domain resources. Each has two
// implementations: a PostgreSQL one in internal/data and a seeded in-memory
// one in internal/fixture. Wiring picks one per deployment; services never
// know which they hold.

// CollegeRepository manages registered colleges.
type CollegeRepository interface {
	List(ctx context.Context) ([]*model.College, error)
	GetByID(ctx context.Context, id string) (*model.College, error)
	Create(ctx context.Context, req *model.CreateCollegeRequest) (*model.College, error)
}

// UserRepository manages portal accounts.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest, passwordHash string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.User, error)
	List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error)
}

// AcademicRepository manages subjects, curriculum modules, learning
// resources and per-student progress.
type AcademicRepository interface {
	ListSubjects(ctx context.Context, collegeID string) ([]*model.Subject, error)
	GetSubject(ctx context.Context, id string) (*model.Subject, error)
	CreateSubject(ctx context.Context, req *model.CreateSubjectRequest) (*model.Subject, error)

	ListModules(ctx context.Context, subjectID string) ([]*model.CurriculumModule, error)
	ListResources(ctx context.Context, opts model.ResourceListOptions) ([]*model.LearningResource, error)
	GetResource(ctx context.Context, id string) (*model.LearningResource, error)

	RecordProgress(ctx context.Context, userID string, req *model.RecordProgressRequest) (*model.ResourceProgress, error)
	ListProgress(ctx context.Context, userID string) ([]*model.ResourceProgress, error)
}

// ClinicalRepository manages postings and logbook entries.
type ClinicalRepository interface {
	ListPostings(ctx context.Context, userID string) ([]*model.Posting, error)
	GetPosting(ctx context.Context, id string) (*model.Posting, error)
	CreatePosting(ctx context.Context, req *model.CreatePostingRequest) (*model.Posting, error)
	SetPostingStatus(ctx context.Context, id string, status model.PostingStatus) (*model.Posting, error)

	ListLogbookEntries(ctx context.Context, opts model.LogbookListOptions) ([]*model.LogbookEntry, error)
	GetLogbookEntry(ctx context.Context, id string) (*model.LogbookEntry, error)
	CreateLogbookEntry(ctx context.Context, userID string, req *model.CreateLogbookEntryRequest) (*model.LogbookEntry, error)
	SubmitLogbookEntry(ctx context.Context, id, userID string) (*model.LogbookEntry, error)
	ReviewLogbookEntry(ctx context.Context, id, reviewerID string, req *model.ReviewLogbookEntryRequest) (*model.LogbookEntry, error)
}

// HostelRepository manages hostels, rooms, allocations and visitor logs.
type HostelRepository interface {
	ListHostels(ctx context.Context, collegeID string) ([]*model.Hostel, error)
	ListRooms(ctx context.Context, opts model.RoomListOptions) ([]*model.Room, error)
	GetRoom(ctx context.Context, id string) (*model.Room, error)

	AllocateRoom(ctx context.Context, req *model.AllocateRoomRequest) (*model.RoomAllocation, error)
	VacateRoom(ctx context.Context, allocationID string) (*model.RoomAllocation, error)
	ListAllocations(ctx context.Context, userID string) ([]*model.RoomAllocation, error)

	CreateVisitorLog(ctx context.Context, residentID string, req *model.CreateVisitorLogRequest) (*model.VisitorLog, error)
	ListVisitorLogs(ctx context.Context, hostelID string) ([]*model.VisitorLog, error)
	ListVisitorLogsForResident(ctx context.Context, residentID string) ([]*model.VisitorLog, error)
	SetVisitorStatus(ctx context.Context, id string, status model.VisitorStatus) (*model.VisitorLog, error)
}

// AdminRepository manages certificates, notices, events and registrations.
type AdminRepository interface {
	RequestCertificate(ctx context.Context, userID string, req *model.RequestCertificateRequest) (*model.Certificate, error)
	ListCertificates(ctx context.Context, userID string) ([]*model.Certificate, error)
	ListPendingCertificates(ctx context.Context) ([]*model.Certificate, error)
	ReviewCertificate(ctx context.Context, id, reviewerID string, req *model.ReviewCertificateRequest) (*model.Certificate, error)

	CreateNotice(ctx context.Context, postedBy string, req *model.CreateNoticeRequest) (*model.Notice, error)
	ListNotices(ctx context.Context, collegeID string) ([]*model.Notice, error)

	CreateEvent(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error)
	ListEvents(ctx context.Context, collegeID string) ([]*model.Event, error)
	RegisterForEvent(ctx context.Context, eventID, userID string) (*model.EventRegistration, error)
	ListRegistrations(ctx context.Context, userID string) ([]*model.EventRegistration, error)
}

// NotificationRepository manages per-user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error)
	ListForUser(ctx context.Context, userID string, opts model.NotificationListOptions) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
}
