package fixture

import (
	"context"
	"sort"
	"strings"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
)

// ClinicalRepo is the fixture-backed clinical repository.
type ClinicalRepo struct {
	s *state
}

// ListPostings returns a student's postings, newest start date first.
// An empty userID lists every posting.
func (r *ClinicalRepo) ListPostings(_ context.Context, userID string) ([]*model.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.Posting
	for _, p := range r.s.postings {
		if userID != "" && p.UserID != userID {
			continue
		}
		pp := *p
		out = append(out, &pp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

// GetPosting retrieves a posting by ID.
func (r *ClinicalRepo) GetPosting(_ context.Context, id string) (*model.Posting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.postings[id]
	if !ok {
		return nil, apperrors.NotFoundf("posting %s not found", id)
	}
	pp := *p
	return &pp, nil
}

// CreatePosting schedules a new posting.
func (r *ClinicalRepo) CreatePosting(_ context.Context, req *model.CreatePostingRequest) (*model.Posting, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[req.UserID]; !ok {
		return nil, apperrors.NotFoundf("user %s not found", req.UserID)
	}

	now := r.s.now()
	p := &model.Posting{
		ID:         newID(),
		UserID:     req.UserID,
		Department: strings.TrimSpace(req.Department),
		Ward:       req.Ward,
		Supervisor: req.Supervisor,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     model.PostingScheduled,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.s.postings[p.ID] = p
	pp := *p
	return &pp, nil
}

// SetPostingStatus moves a posting through its lifecycle.
func (r *ClinicalRepo) SetPostingStatus(_ context.Context, id string, status model.PostingStatus) (*model.Posting, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("unknown posting status %q", status)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.postings[id]
	if !ok {
		return nil, apperrors.NotFoundf("posting %s not found", id)
	}
	p.Status = status
	p.UpdatedAt = r.s.now()
	pp := *p
	return &pp, nil
}

// ListLogbookEntries returns entries matching the options, newest activity first.
func (r *ClinicalRepo) ListLogbookEntries(_ context.Context, opts model.LogbookListOptions) ([]*model.LogbookEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.LogbookEntry
	for _, e := range r.s.logbook {
		if opts.UserID != nil && e.UserID != *opts.UserID {
			continue
		}
		if opts.PostingID != nil && e.PostingID != *opts.PostingID {
			continue
		}
		if opts.Status != nil && e.Status != *opts.Status {
			continue
		}
		ee := *e
		out = append(out, &ee)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActivityDate.After(out[j].ActivityDate) })
	return paginate(out, opts.Limit, opts.Offset), nil
}

// GetLogbookEntry retrieves a logbook entry by ID.
func (r *ClinicalRepo) GetLogbookEntry(_ context.Context, id string) (*model.LogbookEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.logbook[id]
	if !ok {
		return nil, apperrors.NotFoundf("logbook entry %s not found", id)
	}
	ee := *e
	return &ee, nil
}

// CreateLogbookEntry records a clinical activity under one of the student's
// own postings.
func (r *ClinicalRepo) CreateLogbookEntry(_ context.Context, userID string, req *model.CreateLogbookEntryRequest) (*model.LogbookEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	posting, ok := r.s.postings[req.PostingID]
	if !ok {
		return nil, apperrors.NotFoundf("posting %s not found", req.PostingID)
	}
	if posting.UserID != userID {
		return nil, apperrors.Forbidden("Logbook entries can only be added to your own postings.")
	}

	status := model.LogbookDraft
	if req.Submit {
		status = model.LogbookSubmitted
	}

	now := r.s.now()
	e := &model.LogbookEntry{
		ID:           newID(),
		PostingID:    req.PostingID,
		UserID:       userID,
		ActivityDate: req.ActivityDate,
		Procedure:    strings.TrimSpace(req.Procedure),
		Notes:        req.Notes,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.s.logbook[e.ID] = e
	ee := *e
	return &ee, nil
}

// SubmitLogbookEntry hands a draft in for verification. Only the entry's
// owner can submit, and only drafts move.
func (r *ClinicalRepo) SubmitLogbookEntry(_ context.Context, id, userID string) (*model.LogbookEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.logbook[id]
	if !ok {
		return nil, apperrors.NotFoundf("logbook entry %s not found", id)
	}
	if e.UserID != userID {
		return nil, apperrors.Forbidden("Only your own entries can be submitted.")
	}
	if e.Status != model.LogbookDraft {
		return nil, apperrors.Conflictf("entry is %s, only drafts can be submitted", e.Status)
	}

	e.Status = model.LogbookSubmitted
	e.UpdatedAt = r.s.now()
	ee := *e
	return &ee, nil
}

// ReviewLogbookEntry applies a verification decision to a submitted entry.
func (r *ClinicalRepo) ReviewLogbookEntry(_ context.Context, id, reviewerID string, req *model.ReviewLogbookEntryRequest) (*model.LogbookEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.logbook[id]
	if !ok {
		return nil, apperrors.NotFoundf("logbook entry %s not found", id)
	}
	if e.Status != model.LogbookSubmitted {
		return nil, apperrors.Conflictf("entry is %s, only submitted entries can be reviewed", e.Status)
	}

	if req.Approve {
		e.Status = model.LogbookVerified
	} else {
		e.Status = model.LogbookRejected
	}
	e.VerifiedBy = &reviewerID
	e.Remarks = req.Remarks
	e.UpdatedAt = r.s.now()
	ee := *e
	return &ee, nil
}
