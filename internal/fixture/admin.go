package fixture

import (
	"context"
	"sort"
	"strings"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
)

// AdminRepo is the fixture-backed administration repository.
type AdminRepo struct {
	s *state
}

// RequestCertificate files a certificate request for a student.
func (r *AdminRepo) RequestCertificate(_ context.Context, userID string, req *model.RequestCertificateRequest) (*model.Certificate, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return nil, apperrors.NotFoundf("user %s not found", userID)
	}

	now := r.s.now()
	c := &model.Certificate{
		ID:        newID(),
		UserID:    userID,
		Kind:      strings.TrimSpace(req.Kind),
		Purpose:   strings.TrimSpace(req.Purpose),
		Status:    model.CertificateSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.certificates[c.ID] = c
	cc := *c
	return &cc, nil
}

// ListCertificates returns a user's certificate requests, newest first.
func (r *AdminRepo) ListCertificates(_ context.Context, userID string) ([]*model.Certificate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Certificate
	for _, c := range r.s.certificates {
		if c.UserID != userID {
			continue
		}
		cc := *c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ListPendingCertificates returns every request awaiting review, oldest first
// so the queue is worked in arrival order.
func (r *AdminRepo) ListPendingCertificates(_ context.Context) ([]*model.Certificate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Certificate
	for _, c := range r.s.certificates {
		if c.Status != model.CertificateSubmitted {
			continue
		}
		cc := *c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ReviewCertificate applies an admin decision to a pending request.
func (r *AdminRepo) ReviewCertificate(_ context.Context, id, reviewerID string, req *model.ReviewCertificateRequest) (*model.Certificate, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.certificates[id]
	if !ok {
		return nil, apperrors.NotFoundf("certificate %s not found", id)
	}
	if c.Status != model.CertificateSubmitted {
		return nil, apperrors.Conflictf("certificate is %s, only pending requests can be reviewed", c.Status.DisplayLabel())
	}

	if req.Approve {
		c.Status = model.CertificateApproved
		c.FileURL = req.FileURL
	} else {
		c.Status = model.CertificateRejected
	}
	c.ReviewedBy = &reviewerID
	c.UpdatedAt = r.s.now()
	cc := *c
	return &cc, nil
}

// CreateNotice publishes a notice to a college.
func (r *AdminRepo) CreateNotice(_ context.Context, postedBy string, req *model.CreateNoticeRequest) (*model.Notice, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.colleges[req.CollegeID]; !ok {
		return nil, apperrors.NotFoundf("college %s not found", req.CollegeID)
	}

	now := r.s.now()
	n := &model.Notice{
		ID:        newID(),
		CollegeID: req.CollegeID,
		Title:     strings.TrimSpace(req.Title),
		Body:      req.Body,
		Audience:  req.Audience,
		PostedBy:  postedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.notices[n.ID] = n
	nn := *n
	return &nn, nil
}

// ListNotices returns a college's notices, newest first.
func (r *AdminRepo) ListNotices(_ context.Context, collegeID string) ([]*model.Notice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Notice
	for _, n := range r.s.notices {
		if n.CollegeID != collegeID {
			continue
		}
		nn := *n
		out = append(out, &nn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// CreateEvent schedules a campus event.
func (r *AdminRepo) CreateEvent(_ context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.colleges[req.CollegeID]; !ok {
		return nil, apperrors.NotFoundf("college %s not found", req.CollegeID)
	}

	now := r.s.now()
	e := &model.Event{
		ID:          newID(),
		CollegeID:   req.CollegeID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.events[e.ID] = e
	ee := *e
	return &ee, nil
}

// ListEvents returns a college's events, soonest first.
func (r *AdminRepo) ListEvents(_ context.Context, collegeID string) ([]*model.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Event
	for _, e := range r.s.events {
		if e.CollegeID != collegeID {
			continue
		}
		ee := *e
		out = append(out, &ee)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

// RegisterForEvent registers a user for an event. Double registration and
// full events are conflicts.
func (r *AdminRepo) RegisterForEvent(_ context.Context, eventID, userID string) (*model.EventRegistration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	event, ok := r.s.events[eventID]
	if !ok {
		return nil, apperrors.NotFoundf("event %s not found", eventID)
	}
	if _, ok := r.s.users[userID]; !ok {
		return nil, apperrors.NotFoundf("user %s not found", userID)
	}

	var count int
	for _, reg := range r.s.registrations {
		if reg.EventID != eventID {
			continue
		}
		if reg.UserID == userID {
			return nil, apperrors.Conflict("Already registered for this event.")
		}
		count++
	}
	if event.Capacity > 0 && count >= event.Capacity {
		return nil, apperrors.Conflict("Event is at capacity.")
	}

	reg := &model.EventRegistration{
		ID:           newID(),
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: r.s.now(),
	}
	r.s.registrations[reg.ID] = reg
	rr := *reg
	return &rr, nil
}

// ListRegistrations returns a user's event registrations, newest first.
func (r *AdminRepo) ListRegistrations(_ context.Context, userID string) ([]*model.EventRegistration, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.EventRegistration
	for _, reg := range r.s.registrations {
		if reg.UserID != userID {
			continue
		}
		rr := *reg
		out = append(out, &rr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.After(out[j].RegisteredAt) })
	return out, nil
}
