package data

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/medconnect/medconnect-api/internal/data/pgxutil"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
)

const (
	subjectColumns  = `id, college_id, name, code, year, semester, created_at, updated_at`
	moduleColumns   = `id, subject_id, title, description, order_index, created_at, updated_at`
	resourceColumns = `id, module_id, title, kind, url, duration_minutes, created_at, updated_at`
	progressColumns = `id, user_id, resource_id, percent, bookmarked, completed_at, updated_at`
)

// AcademicRepo provides database operations for subjects, curriculum
// modules, learning resources and per-student progress.
type AcademicRepo struct {
	DB *sql.DB
}

// NewAcademicRepo creates a new AcademicRepo.
func NewAcademicRepo(db *sql.DB) *AcademicRepo {
	return &AcademicRepo{DB: db}
}

// ListSubjects returns the subjects of a college, ordered by code.
func (r *AcademicRepo) ListSubjects(ctx context.Context, collegeID string) ([]*model.Subject, error) {
	var out []model.Subject
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+subjectColumns+` FROM subjects WHERE college_id = $1 ORDER BY code`, collegeID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Subject])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// GetSubject retrieves a subject by ID.
func (r *AcademicRepo) GetSubject(ctx context.Context, id string) (*model.Subject, error) {
	var out model.Subject
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Subject])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// CreateSubject adds a subject to a college's curriculum.
func (r *AcademicRepo) CreateSubject(ctx context.Context, req *model.CreateSubjectRequest) (*model.Subject, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Subject
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO subjects (id, college_id, name, code, year, semester)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+subjectColumns,
			uuid.NewString(),
			req.CollegeID,
			strings.TrimSpace(req.Name),
			strings.ToUpper(strings.TrimSpace(req.Code)),
			req.Year,
			req.Semester,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Subject])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListModules returns the curriculum modules of a subject in teaching order.
func (r *AcademicRepo) ListModules(ctx context.Context, subjectID string) ([]*model.CurriculumModule, error) {
	var out []model.CurriculumModule
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+moduleColumns+` FROM curriculum_modules WHERE subject_id = $1 ORDER BY order_index`, subjectID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CurriculumModule])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// ListResources returns learning resources matching the options. When
// BookmarkedOnly is set, ForUserID scopes the bookmark lookup.
func (r *AcademicRepo) ListResources(ctx context.Context, opts model.ResourceListOptions) ([]*model.LearningResource, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if opts.ModuleID != nil {
		where = append(where, "lr.module_id = "+arg(*opts.ModuleID))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		where = append(where, "lr.title ILIKE "+arg("%"+strings.TrimSpace(*opts.Q)+"%"))
	}

	query := `SELECT lr.id, lr.module_id, lr.title, lr.kind, lr.url, lr.duration_minutes, lr.created_at, lr.updated_at
		FROM learning_resources lr`
	if opts.BookmarkedOnly {
		query += ` JOIN resource_progress rp
			ON rp.resource_id = lr.id AND rp.user_id = ` + arg(opts.ForUserID) + ` AND rp.bookmarked`
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY lr.title"

	var out []model.LearningResource
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.LearningResource])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// GetResource retrieves a learning resource by ID.
func (r *AcademicRepo) GetResource(ctx context.Context, id string) (*model.LearningResource, error) {
	var out model.LearningResource
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+resourceColumns+` FROM learning_resources WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LearningResource])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// RecordProgress upserts a student's progress on a resource. Reaching 100%
// stamps the completion time once; later updates keep the original stamp.
func (r *AcademicRepo) RecordProgress(ctx context.Context, userID string, req *model.RecordProgressRequest) (*model.ResourceProgress, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.ResourceProgress
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO resource_progress (id, user_id, resource_id, percent, bookmarked, completed_at)
			VALUES ($1, $2, $3, $4, COALESCE($5, FALSE), CASE WHEN $4 >= 100 THEN now() END)
			ON CONFLICT (user_id, resource_id) DO UPDATE SET
				percent      = EXCLUDED.percent,
				bookmarked   = COALESCE($5, resource_progress.bookmarked),
				completed_at = COALESCE(resource_progress.completed_at, CASE WHEN EXCLUDED.percent >= 100 THEN now() END),
				updated_at   = now()
			RETURNING `+progressColumns,
			uuid.NewString(),
			userID,
			req.ResourceID,
			req.Percent,
			req.Bookmarked,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.ResourceProgress])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListProgress returns a student's progress records, most recent first.
func (r *AcademicRepo) ListProgress(ctx context.Context, userID string) ([]*model.ResourceProgress, error) {
	var out []model.ResourceProgress
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+progressColumns+` FROM resource_progress WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ResourceProgress])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}
