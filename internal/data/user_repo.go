package data

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/medconnect/medconnect-api/internal/data/pgxutil"
	"github.com/medconnect/medconnect-api/internal/domain/model"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
)

const userColumns = `id, full_name, email, role, college_id, department, password_hash, created_at, updated_at`

// UserRepo provides database operations for portal accounts.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// Create inserts a new account. Emails are unique across the portal.
func (r *UserRepo) Create(ctx context.Context, req *model.CreateUserRequest, passwordHash string) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (id, full_name, email, role, college_id, department, password_hash)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+userColumns,
			uuid.NewString(),
			strings.TrimSpace(req.FullName),
			strings.ToLower(strings.TrimSpace(req.Email)),
			req.Role,
			req.CollegeID,
			req.Department,
			passwordHash,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves an account by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

// GetByEmail retrieves an account by email (case-insensitive).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, `WHERE lower(email) = lower($1)`, strings.TrimSpace(email))
}

func (r *UserRepo) getBy(ctx context.Context, where string, arg any) (*model.User, error) {
	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+userColumns+` FROM users `+where, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Update applies a partial profile update. Nil fields stay as they are.
func (r *UserRepo) Update(ctx context.Context, id string, req *model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if req.Empty() {
		return r.GetByID(ctx, id)
	}

	sets := []string{"updated_at = now()"}
	args := []any{id}
	next := 2
	if req.FullName != nil {
		sets = append(sets, "full_name = $"+strconv.Itoa(next))
		args = append(args, strings.TrimSpace(*req.FullName))
		next++
	}
	if req.Email != nil {
		sets = append(sets, "email = $"+strconv.Itoa(next))
		args = append(args, strings.ToLower(strings.TrimSpace(*req.Email)))
		next++
	}
	if req.Department != nil {
		sets = append(sets, "department = $"+strconv.Itoa(next))
		args = append(args, *req.Department)
		next++
	}

	var out model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, fmt.Sprintf(
			`UPDATE users SET %s WHERE id = $1 RETURNING %s`,
			strings.Join(sets, ", "), userColumns), args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List returns accounts matching the options, ordered by full name.
func (r *UserRepo) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if opts.Role != nil {
		where = append(where, "role = "+arg(*opts.Role))
	}
	if opts.CollegeID != nil {
		where = append(where, "college_id = "+arg(*opts.CollegeID))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		p := arg("%" + strings.TrimSpace(*opts.Q) + "%")
		where = append(where, "(full_name ILIKE "+p+" OR email ILIKE "+p+")")
	}

	query := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY full_name"
	query += limitOffset(&args, opts.Limit, opts.Offset)

	var out []model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// limitOffset appends LIMIT/OFFSET placeholders when set.
func limitOffset(args *[]any, limit, offset int) string {
	var out string
	if limit > 0 {
		*args = append(*args, limit)
		out += " LIMIT $" + strconv.Itoa(len(*args))
	}
	if offset > 0 {
		*args = append(*args, offset)
		out += " OFFSET $" + strconv.Itoa(len(*args))
	}
	return out
}
