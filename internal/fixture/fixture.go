package fixture

// Package fixture provides seeded in-memory repositories. A deployment with
// REPO_BACKEND=fixture runs entirely from this data: demos, local frontend
// work and CI need neither PostgreSQL nor seed scripts. The same repos back
// most service tests.

import (
	"sync"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	"github.com/medconnect/medconnect-api/internal/ports"
)

// Repositories bundles one fixture-backed implementation of every
// repository port, all sharing one state.
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

// state is the shared in-memory dataset. All repos lock it through mu.
type state struct {
	mu sync.RWMutex

	colleges      map[string]*model.College
	users         map[string]*model.User
	subjects      map[string]*model.Subject
	modules       map[string]*model.CurriculumModule
	resources     map[string]*model.LearningResource
	progress      map[string]*model.ResourceProgress // keyed userID+"/"+resourceID
	postings      map[string]*model.Posting
	logbook       map[string]*model.LogbookEntry
	hostels       map[string]*model.Hostel
	rooms         map[string]*model.Room
	allocations   map[string]*model.RoomAllocation
	visitors      map[string]*model.VisitorLog
	certificates  map[string]*model.Certificate
	notices       map[string]*model.Notice
	events        map[string]*model.Event
	registrations map[string]*model.EventRegistration
	notifications map[string]*model.Notification

	now func() time.Time
}

// New returns fixture repositories seeded with a small but coherent campus:
// one college, accounts for every role, an anatomy curriculum, an active
// clinical posting with logbook entries in each status, a hostel with rooms
// in each status, and pending admin paperwork.
func New() *Repositories {
	s := newSeededState()
	return &Repositories{
		Colleges:      &CollegeRepo{s: s},
		Users:         &UserRepo{s: s},
		Academic:      &AcademicRepo{s: s},
		Clinical:      &ClinicalRepo{s: s},
		Hostel:        &HostelRepo{s: s},
		Admin:         &AdminRepo{s: s},
		Notifications: &NotificationRepo{s: s},
	}
}

// NewEmpty returns fixture repositories with no seed data, for tests that
// want full control of their dataset.
func NewEmpty() *Repositories {
	s := newState()
	return &Repositories{
		Colleges:      &CollegeRepo{s: s},
		Users:         &UserRepo{s: s},
		Academic:      &AcademicRepo{s: s},
		Clinical:      &ClinicalRepo{s: s},
		Hostel:        &HostelRepo{s: s},
		Admin:         &AdminRepo{s: s},
		Notifications: &NotificationRepo{s: s},
	}
}

func newState() *state {
	return &state{
		colleges:      make(map[string]*model.College),
		users:         make(map[string]*model.User),
		subjects:      make(map[string]*model.Subject),
		modules:       make(map[string]*model.CurriculumModule),
		resources:     make(map[string]*model.LearningResource),
		progress:      make(map[string]*model.ResourceProgress),
		postings:      make(map[string]*model.Posting),
		logbook:       make(map[string]*model.LogbookEntry),
		hostels:       make(map[string]*model.Hostel),
		rooms:         make(map[string]*model.Room),
		allocations:   make(map[string]*model.RoomAllocation),
		visitors:      make(map[string]*model.VisitorLog),
		certificates:  make(map[string]*model.Certificate),
		notices:       make(map[string]*model.Notice),
		events:        make(map[string]*model.Event),
		registrations: make(map[string]*model.EventRegistration),
		notifications: make(map[string]*model.Notification),
		now:           time.Now,
	}
}

// Well-known IDs of the seed dataset. Tests and demo clients rely on them.
const (
	SeedCollegeID     = "col-gmc-trivandrum"
	SeedStudentID     = "usr-student-asha"
	SeedFacultyID     = "usr-faculty-menon"
	SeedHODID         = "usr-hod-pillai"
	SeedAdminID       = "usr-admin-thomas"
	SeedSubjectID     = "sub-anatomy-1"
	SeedModuleID      = "mod-osteology"
	SeedResourceID    = "res-skull-video"
	SeedPostingID     = "pst-genmed-asha"
	SeedHostelID      = "hst-mens-block-a"
	SeedRoomID        = "room-a-101"
	SeedEventID       = "evt-white-coat"
	SeedLogbookDraft  = "log-draft"
	SeedLogbookSubmit = "log-submitted"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "medconnect"

// seedPasswordHash is bcrypt(SeedPassword), precomputed so fixture startup
// stays instant.
const seedPasswordHash = "$2a$10$KiXq1q2pGINUHdIGFsSF.ucXrXN6OGpPtRzOA8nBbmDMD/vkPkBC2"

func newSeededState() *state {
	s := newState()
	now := time.Now()

	s.colleges[SeedCollegeID] = &model.College{
		ID: SeedCollegeID, Name: "Government Medical College, Thiruvananthapuram",
		Code: "GMC-TVM", City: "Thiruvananthapuram", State: "Kerala",
		CreatedAt: now, UpdatedAt: now,
	}

	seedUser := func(id, name, email string, role domainauth.Role, dept string) {
		u := &model.User{
			ID: id, FullName: name, Email: email, Role: role,
			CollegeID: SeedCollegeID, PasswordHash: seedPasswordHash,
			CreatedAt: now, UpdatedAt: now,
		}
		if dept != "" {
			u.Department = &dept
		}
		s.users[id] = u
	}
	seedUser(SeedStudentID, "Asha Nair", "asha@gmc.edu", domainauth.RoleStudent, "")
	seedUser(SeedFacultyID, "Dr. Ravi Menon", "ravi.menon@gmc.edu", domainauth.RoleFaculty, "General Medicine")
	seedUser(SeedHODID, "Dr. Lakshmi Pillai", "lakshmi.pillai@gmc.edu", domainauth.RoleHOD, "Anatomy")
	seedUser(SeedAdminID, "Thomas George", "thomas@gmc.edu", domainauth.RoleAdmin, "")
	seedUser("usr-dme-rao", "Dr. Prakash Rao", "dme@health.gov.in", domainauth.RoleDME, "")
	seedUser("usr-principal-iyer", "Dr. Meera Iyer", "principal@gmc.edu", domainauth.RolePrincipal, "")
	seedUser("usr-supt-varma", "Dr. Anil Varma", "superintendent@gmc.edu", domainauth.RoleSuperintendent, "")

	s.subjects[SeedSubjectID] = &model.Subject{
		ID: SeedSubjectID, CollegeID: SeedCollegeID, Name: "Human Anatomy",
		Code: "ANAT-101", Year: 1, Semester: 1, CreatedAt: now, UpdatedAt: now,
	}
	s.subjects["sub-physio-1"] = &model.Subject{
		ID: "sub-physio-1", CollegeID: SeedCollegeID, Name: "Physiology",
		Code: "PHYS-101", Year: 1, Semester: 1, CreatedAt: now, UpdatedAt: now,
	}

	s.modules[SeedModuleID] = &model.CurriculumModule{
		ID: SeedModuleID, SubjectID: SeedSubjectID, Title: "Osteology",
		Description: "Bones of the human skeleton", OrderIndex: 1,
		CreatedAt: now, UpdatedAt: now,
	}
	s.modules["mod-myology"] = &model.CurriculumModule{
		ID: "mod-myology", SubjectID: SeedSubjectID, Title: "Myology",
		Description: "Muscular system", OrderIndex: 2,
		CreatedAt: now, UpdatedAt: now,
	}

	s.resources[SeedResourceID] = &model.LearningResource{
		ID: SeedResourceID, ModuleID: SeedModuleID, Title: "The Skull: Guided Dissection",
		Kind: model.ResourceKindVideo, URL: "https://media.medconnect.example/skull.mp4",
		DurationMn: 42, CreatedAt: now, UpdatedAt: now,
	}
	s.resources["res-osteology-notes"] = &model.LearningResource{
		ID: "res-osteology-notes", ModuleID: SeedModuleID, Title: "Osteology Lecture Notes",
		Kind: model.ResourceKindDocument, URL: "https://media.medconnect.example/osteology.pdf",
		DurationMn: 0, CreatedAt: now, UpdatedAt: now,
	}

	s.progress[SeedStudentID+"/"+SeedResourceID] = &model.ResourceProgress{
		ID: uuid.NewString(), UserID: SeedStudentID, ResourceID: SeedResourceID,
		Percent: 60, Bookmarked: true, UpdatedAt: now,
	}

	s.postings[SeedPostingID] = &model.Posting{
		ID: SeedPostingID, UserID: SeedStudentID, Department: "General Medicine",
		Ward: "Ward 4", Supervisor: "Dr. Ravi Menon",
		StartDate: now.AddDate(0, -1, 0), EndDate: now.AddDate(0, 1, 0),
		Status: model.PostingActive, CreatedAt: now, UpdatedAt: now,
	}

	remark := "Good clinical reasoning"
	verifier := SeedFacultyID
	s.logbook[SeedLogbookDraft] = &model.LogbookEntry{
		ID: SeedLogbookDraft, PostingID: SeedPostingID, UserID: SeedStudentID,
		ActivityDate: now.AddDate(0, 0, -1), Procedure: "History taking",
		Notes: "Bedside history, Ward 4", Status: model.LogbookDraft,
		CreatedAt: now, UpdatedAt: now,
	}
	s.logbook[SeedLogbookSubmit] = &model.LogbookEntry{
		ID: SeedLogbookSubmit, PostingID: SeedPostingID, UserID: SeedStudentID,
		ActivityDate: now.AddDate(0, 0, -3), Procedure: "IV cannulation",
		Notes: "Supervised", Status: model.LogbookSubmitted,
		CreatedAt: now, UpdatedAt: now,
	}
	s.logbook["log-verified"] = &model.LogbookEntry{
		ID: "log-verified", PostingID: SeedPostingID, UserID: SeedStudentID,
		ActivityDate: now.AddDate(0, 0, -7), Procedure: "Venipuncture",
		Notes: "Three successful draws", Status: model.LogbookVerified,
		VerifiedBy: &verifier, Remarks: &remark,
		CreatedAt: now, UpdatedAt: now,
	}

	s.hostels[SeedHostelID] = &model.Hostel{
		ID: SeedHostelID, CollegeID: SeedCollegeID, Name: "Men's Hostel Block A",
		Warden: "Dr. Suresh Kumar", CreatedAt: now, UpdatedAt: now,
	}
	s.rooms[SeedRoomID] = &model.Room{
		ID: SeedRoomID, HostelID: SeedHostelID, Number: "101", Floor: 1,
		Capacity: 3, Occupied: 1, Status: model.RoomAvailable,
		CreatedAt: now, UpdatedAt: now,
	}
	s.rooms["room-a-102"] = &model.Room{
		ID: "room-a-102", HostelID: SeedHostelID, Number: "102", Floor: 1,
		Capacity: 2, Occupied: 2, Status: model.RoomOccupied,
		CreatedAt: now, UpdatedAt: now,
	}
	s.rooms["room-a-201"] = &model.Room{
		ID: "room-a-201", HostelID: SeedHostelID, Number: "201", Floor: 2,
		Capacity: 2, Occupied: 0, Status: model.RoomMaintenance,
		CreatedAt: now, UpdatedAt: now,
	}
	s.allocations["alloc-asha"] = &model.RoomAllocation{
		ID: "alloc-asha", RoomID: SeedRoomID, UserID: SeedStudentID,
		AllocatedAt: now.AddDate(0, -6, 0),
	}
	s.visitors["vis-pending"] = &model.VisitorLog{
		ID: "vis-pending", HostelID: SeedHostelID, ResidentID: SeedStudentID,
		VisitorName: "R. Nair", Relation: "parent",
		VisitDate: now.AddDate(0, 0, 3), Status: model.VisitorPending,
		CreatedAt: now, UpdatedAt: now,
	}

	s.certificates["cert-pending"] = &model.Certificate{
		ID: "cert-pending", UserID: SeedStudentID, Kind: "bonafide",
		Purpose: "Passport application", Status: model.CertificateSubmitted,
		CreatedAt: now, UpdatedAt: now,
	}

	s.notices["ntc-exam"] = &model.Notice{
		ID: "ntc-exam", CollegeID: SeedCollegeID, Title: "First-year exam schedule",
		Body: "University examinations begin on the 14th.", Audience: "student",
		PostedBy: SeedAdminID, CreatedAt: now, UpdatedAt: now,
	}

	s.events[SeedEventID] = &model.Event{
		ID: SeedEventID, CollegeID: SeedCollegeID, Title: "White Coat Ceremony",
		Description: "Induction of the incoming batch", Venue: "Main Auditorium",
		StartsAt: now.AddDate(0, 0, 14), EndsAt: now.AddDate(0, 0, 14).Add(3 * time.Hour),
		Capacity: 300, CreatedAt: now, UpdatedAt: now,
	}

	s.notifications["ntf-logbook"] = &model.Notification{
		ID: "ntf-logbook", UserID: SeedStudentID, Kind: model.NotificationAction,
		Title: "Logbook entry verified",
		Body:  "Dr. Ravi Menon verified your venipuncture entry.",
		Link:  strptr("/clinical/logbooks"), CreatedAt: now,
	}

	return s
}

func strptr(s string) *string { return &s }

func newID() string { return uuid.NewString() }
