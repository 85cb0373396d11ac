package data

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/medconnect/medconnect-api/internal/data/pgxutil"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
)

const collegeColumns = `id, name, code, city, state, created_at, updated_at`

// CollegeRepo provides database operations for colleges.
type CollegeRepo struct {
	DB *sql.DB
}

// NewCollegeRepo creates a new CollegeRepo.
func NewCollegeRepo(db *sql.DB) *CollegeRepo {
	return &CollegeRepo{DB: db}
}

// List returns all colleges ordered by name.
func (r *CollegeRepo) List(ctx context.Context) ([]*model.College, error) {
	var out []model.College
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+collegeColumns+` FROM colleges ORDER BY name`)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.College])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// GetByID retrieves a college by ID.
func (r *CollegeRepo) GetByID(ctx context.Context, id string) (*model.College, error) {
	var out model.College
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+collegeColumns+` FROM colleges WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.College])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Create registers a new college. Codes are unique.
func (r *CollegeRepo) Create(ctx context.Context, req *model.CreateCollegeRequest) (*model.College, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.College
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO colleges (id, name, code, city, state)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+collegeColumns,
			uuid.NewString(),
			strings.TrimSpace(req.Name),
			strings.ToUpper(strings.TrimSpace(req.Code)),
			req.City,
			req.State,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.College])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// toPtrs converts a collected row slice into the pointer slice the ports use.
func toPtrs[T any](rows []T) []*T {
	if len(rows) == 0 {
		return nil
	}
	out := make([]*T, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out
}
