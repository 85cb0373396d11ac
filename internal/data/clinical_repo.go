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
	postingColumns = `id, user_id, department, ward, supervisor, start_date, end_date, status, created_at, updated_at`
	logbookColumns = `id, posting_id, user_id, activity_date, procedure, notes, status, verified_by, remarks, created_at, updated_at`
)

// ClinicalRepo provides database operations for postings and logbooks.
type ClinicalRepo struct {
	DB *sql.DB
}

// NewClinicalRepo creates a new ClinicalRepo.
func NewClinicalRepo(db *sql.DB) *ClinicalRepo {
	return &ClinicalRepo{DB: db}
}

// ListPostings returns a student's postings, newest start date first.
// An empty userID lists every posting.
func (r *ClinicalRepo) ListPostings(ctx context.Context, userID string) ([]*model.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM postings`
	var args []any
	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY start_date DESC`

	var out []model.Posting
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Posting])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// GetPosting retrieves a posting by ID.
func (r *ClinicalRepo) GetPosting(ctx context.Context, id string) (*model.Posting, error) {
	var out model.Posting
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+postingColumns+` FROM postings WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Posting])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// CreatePosting schedules a new posting.
func (r *ClinicalRepo) CreatePosting(ctx context.Context, req *model.CreatePostingRequest) (*model.Posting, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Posting
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO postings (id, user_id, department, ward, supervisor, start_date, end_date, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 'scheduled')
			RETURNING `+postingColumns,
			uuid.NewString(),
			req.UserID,
			strings.TrimSpace(req.Department),
			req.Ward,
			req.Supervisor,
			req.StartDate,
			req.EndDate,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Posting])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// SetPostingStatus moves a posting through its lifecycle.
func (r *ClinicalRepo) SetPostingStatus(ctx context.Context, id string, status model.PostingStatus) (*model.Posting, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("unknown posting status %q", status)
	}

	var out model.Posting
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE postings SET status = $2, updated_at = now()
			WHERE id = $1
			RETURNING `+postingColumns, id, status)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Posting])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListLogbookEntries returns entries matching the options, newest activity first.
func (r *ClinicalRepo) ListLogbookEntries(ctx context.Context, opts model.LogbookListOptions) ([]*model.LogbookEntry, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if opts.UserID != nil {
		where = append(where, "user_id = "+arg(*opts.UserID))
	}
	if opts.PostingID != nil {
		where = append(where, "posting_id = "+arg(*opts.PostingID))
	}
	if opts.Status != nil {
		where = append(where, "status = "+arg(*opts.Status))
	}

	query := `SELECT ` + logbookColumns + ` FROM logbook_entries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY activity_date DESC"
	query += limitOffset(&args, opts.Limit, opts.Offset)

	var out []model.LogbookEntry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.LogbookEntry])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// GetLogbookEntry retrieves a logbook entry by ID.
func (r *ClinicalRepo) GetLogbookEntry(ctx context.Context, id string) (*model.LogbookEntry, error) {
	var out model.LogbookEntry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+logbookColumns+` FROM logbook_entries WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LogbookEntry])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// CreateLogbookEntry records a clinical activity under one of the student's
// own postings.
func (r *ClinicalRepo) CreateLogbookEntry(ctx context.Context, userID string, req *model.CreateLogbookEntryRequest) (*model.LogbookEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	status := model.LogbookDraft
	if req.Submit {
		status = model.LogbookSubmitted
	}

	var out model.LogbookEntry
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		var owner string
		err := tx.QueryRow(ctx, `SELECT user_id FROM postings WHERE id = $1`, req.PostingID).Scan(&owner)
		if err != nil {
			return err
		}
		if owner != userID {
			return apperrors.Forbidden("Logbook entries can only be added to your own postings.")
		}

		rows, err := tx.Query(ctx, `
			INSERT INTO logbook_entries (id, posting_id, user_id, activity_date, procedure, notes, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+logbookColumns,
			uuid.NewString(),
			req.PostingID,
			userID,
			req.ActivityDate,
			strings.TrimSpace(req.Procedure),
			req.Notes,
			status,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LogbookEntry])
		return err
	}})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// SubmitLogbookEntry hands a draft in for verification. Only the entry's
// owner can submit, and only drafts move.
func (r *ClinicalRepo) SubmitLogbookEntry(ctx context.Context, id, userID string) (*model.LogbookEntry, error) {
	var out model.LogbookEntry
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		var owner string
		var status model.LogbookStatus
		err := tx.QueryRow(ctx,
			`SELECT user_id, status FROM logbook_entries WHERE id = $1 FOR UPDATE`, id).Scan(&owner, &status)
		if err != nil {
			return err
		}
		if owner != userID {
			return apperrors.Forbidden("Only your own entries can be submitted.")
		}
		if status != model.LogbookDraft {
			return apperrors.Conflictf("entry is %s, only drafts can be submitted", status)
		}

		rows, err := tx.Query(ctx, `
			UPDATE logbook_entries SET status = 'submitted', updated_at = now()
			WHERE id = $1
			RETURNING `+logbookColumns, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LogbookEntry])
		return err
	}})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ReviewLogbookEntry applies a verification decision to a submitted entry.
func (r *ClinicalRepo) ReviewLogbookEntry(ctx context.Context, id, reviewerID string, req *model.ReviewLogbookEntryRequest) (*model.LogbookEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	decided := model.LogbookRejected
	if req.Approve {
		decided = model.LogbookVerified
	}

	var out model.LogbookEntry
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		var status model.LogbookStatus
		err := tx.QueryRow(ctx,
			`SELECT status FROM logbook_entries WHERE id = $1 FOR UPDATE`, id).Scan(&status)
		if err != nil {
			return err
		}
		if status != model.LogbookSubmitted {
			return apperrors.Conflictf("entry is %s, only submitted entries can be reviewed", status)
		}

		rows, err := tx.Query(ctx, `
			UPDATE logbook_entries
			SET status = $2, verified_by = $3, remarks = $4, updated_at = now()
			WHERE id = $1
			RETURNING `+logbookColumns, id, decided, reviewerID, req.Remarks)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.LogbookEntry])
		return err
	}})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
