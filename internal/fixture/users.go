package fixture

import (
	"context"
	"sort"
	"strings"

	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
)

// CollegeRepo is the fixture-backed college repository.
type CollegeRepo struct {
	s *state
}

// List returns all colleges ordered by name.
func (r *CollegeRepo) List(_ context.Context) ([]*model.College, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*model.College, 0, len(r.s.colleges))
	for _, c := range r.s.colleges {
		cc := *c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetByID retrieves a college by ID.
func (r *CollegeRepo) GetByID(_ context.Context, id string) (*model.College, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.colleges[id]
	if !ok {
		return nil, apperrors.NotFoundf("college %s not found", id)
	}
	cc := *c
	return &cc, nil
}

// Create registers a new college. Codes are unique.
func (r *CollegeRepo) Create(_ context.Context, req *model.CreateCollegeRequest) (*model.College, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.colleges {
		if strings.EqualFold(c.Code, req.Code) {
			return nil, apperrors.ConflictField("code", "A college with this code already exists.")
		}
	}

	now := r.s.now()
	c := &model.College{
		ID:        newID(),
		Name:      strings.TrimSpace(req.Name),
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		City:      req.City,
		State:     req.State,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.s.colleges[c.ID] = c
	cc := *c
	return &cc, nil
}

// UserRepo is the fixture-backed user repository.
type UserRepo struct {
	s *state
}

// Create inserts a new account. Emails are unique across the portal.
func (r *UserRepo) Create(_ context.Context, req *model.CreateUserRequest, passwordHash string) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	for _, u := range r.s.users {
		if u.Email == email {
			return nil, apperrors.ConflictField("email", "An account with this email already exists.")
		}
	}

	now := r.s.now()
	u := &model.User{
		ID:           newID(),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		Role:         req.Role,
		CollegeID:    req.CollegeID,
		Department:   req.Department,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.s.users[u.ID] = u
	uu := *u
	return &uu, nil
}

// GetByID retrieves an account by ID.
func (r *UserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.NotFoundf("user %s not found", id)
	}
	uu := *u
	return &uu, nil
}

// GetByEmail retrieves an account by email (case-insensitive).
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.s.users {
		if u.Email == email {
			uu := *u
			return &uu, nil
		}
	}
	return nil, apperrors.NotFound("user not found")
}

// Update applies a partial profile update. Nil fields stay as they are.
func (r *UserRepo) Update(_ context.Context, id string, req *model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.NotFoundf("user %s not found", id)
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		for otherID, other := range r.s.users {
			if otherID != id && other.Email == email {
				return nil, apperrors.ConflictField("email", "An account with this email already exists.")
			}
		}
		u.Email = email
	}
	if req.FullName != nil {
		u.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Department != nil {
		u.Department = req.Department
	}
	u.UpdatedAt = r.s.now()

	uu := *u
	return &uu, nil
}

// List returns accounts matching the options, ordered by full name.
func (r *UserRepo) List(_ context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*model.User
	for _, u := range r.s.users {
		if opts.Role != nil && u.Role != *opts.Role {
			continue
		}
		if opts.CollegeID != nil && u.CollegeID != *opts.CollegeID {
			continue
		}
		if opts.Q != nil {
			q := strings.ToLower(*opts.Q)
			if !strings.Contains(strings.ToLower(u.FullName), q) &&
				!strings.Contains(u.Email, q) {
				continue
			}
		}
		uu := *u
		out = append(out, &uu)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return paginate(out, opts.Limit, opts.Offset), nil
}

// paginate applies limit/offset with the portal's defaults.
func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
