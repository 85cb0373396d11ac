package fixture

import (
	"context"
	"sort"
	"strings"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
)

// AcademicRepo is the fixture-backed academic repository.
type AcademicRepo struct {
	s *state
}

// ListSubjects returns the subjects of a college, ordered by code.
func (r *AcademicRepo) ListSubjects(_ context.Context, collegeID string) ([]*model.Subject, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Subject
	for _, sub := range r.s.subjects {
		if sub.CollegeID != collegeID {
			continue
		}
		ss := *sub
		out = append(out, &ss)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// GetSubject retrieves a subject by ID.
func (r *AcademicRepo) GetSubject(_ context.Context, id string) (*model.Subject, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sub, ok := r.s.subjects[id]
	if !ok {
		return nil, apperrors.NotFoundf("subject %s not found", id)
	}
	ss := *sub
	return &ss, nil
}

// CreateSubject adds a subject to a college's curriculum.
func (r *AcademicRepo) CreateSubject(_ context.Context, req *model.CreateSubjectRequest) (*model.Subject, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.colleges[req.CollegeID]; !ok {
		return nil, apperrors.NotFoundf("college %s not found", req.CollegeID)
	}
	for _, sub := range r.s.subjects {
		if sub.CollegeID == req.CollegeID && strings.EqualFold(sub.Code, req.Code) {
			return nil, apperrors.ConflictField("code", "A subject with this code already exists.")
		}
	}

	now := r.s.now()
	sub := &model.Subject{
		ID:        newID(),
		CollegeID: req.CollegeID,
		Name:      strings.TrimSpace(req.Name),
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		Year:      req.Year,
		Semester:  req.Semester,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.subjects[sub.ID] = sub
	ss := *sub
	return &ss, nil
}

// ListModules returns the curriculum modules of a subject in teaching order.
func (r *AcademicRepo) ListModules(_ context.Context, subjectID string) ([]*model.CurriculumModule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.CurriculumModule
	for _, m := range r.s.modules {
		if m.SubjectID != subjectID {
			continue
		}
		mm := *m
		out = append(out, &mm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

// ListResources returns learning resources matching the options. When
// BookmarkedOnly is set, ForUserID scopes the bookmark lookup.
func (r *AcademicRepo) ListResources(_ context.Context, opts model.ResourceListOptions) ([]*model.LearningResource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.LearningResource
	for _, res := range r.s.resources {
		if opts.ModuleID != nil && res.ModuleID != *opts.ModuleID {
			continue
		}
		if opts.Q != nil && !strings.Contains(strings.ToLower(res.Title), strings.ToLower(*opts.Q)) {
			continue
		}
		if opts.BookmarkedOnly {
			p, ok := r.s.progress[opts.ForUserID+"/"+res.ID]
			if !ok || !p.Bookmarked {
				continue
			}
		}
		rr := *res
		out = append(out, &rr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// GetResource retrieves a learning resource by ID.
func (r *AcademicRepo) GetResource(_ context.Context, id string) (*model.LearningResource, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	res, ok := r.s.resources[id]
	if !ok {
		return nil, apperrors.NotFoundf("resource %s not found", id)
	}
	rr := *res
	return &rr, nil
}

// RecordProgress upserts a student's progress on a resource. Reaching 100%
// stamps the completion time once; later updates keep the original stamp.
func (r *AcademicRepo) RecordProgress(_ context.Context, userID string, req *model.RecordProgressRequest) (*model.ResourceProgress, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.resources[req.ResourceID]; !ok {
		return nil, apperrors.NotFoundf("resource %s not found", req.ResourceID)
	}

	key := userID + "/" + req.ResourceID
	now := r.s.now()
	p, ok := r.s.progress[key]
	if !ok {
		p = &model.ResourceProgress{
			ID:         newID(),
			UserID:     userID,
			ResourceID: req.ResourceID,
		}
		r.s.progress[key] = p
	}

	p.Percent = req.Percent
	if req.Bookmarked != nil {
		p.Bookmarked = *req.Bookmarked
	}
	if p.Percent >= 100 && p.CompletedAt == nil {
		t := now
		p.CompletedAt = &t
	}
	p.UpdatedAt = now

	pp := *p
	return &pp, nil
}

// ListProgress returns a student's progress records, most recent first.
func (r *AcademicRepo) ListProgress(_ context.Context, userID string) ([]*model.ResourceProgress, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.ResourceProgress
	for _, p := range r.s.progress {
		if p.UserID != userID {
			continue
		}
		pp := *p
		out = append(out, &pp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}
