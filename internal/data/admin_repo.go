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

const (
	certificateColumns  = `id, user_id, kind, purpose, status, file_url, reviewed_by, created_at, updated_at`
	noticeColumns       = `id, college_id, title, body, audience, posted_by, created_at, updated_at`
	eventColumns        = `id, college_id, title, description, venue, starts_at, ends_at, capacity, created_at, updated_at`
	registrationColumns = `id, event_id, user_id, registered_at`
)

// AdminRepo provides database operations for certificates, notices, events
// and registrations.
type AdminRepo struct {
	DB *sql.DB
}

// NewAdminRepo creates a new AdminRepo.
func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{DB: db}
}

// RequestCertificate files a certificate request for a student.
func (r *AdminRepo) RequestCertificate(ctx context.Context, userID string, req *model.RequestCertificateRequest) (*model.Certificate, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Certificate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO certificates (id, user_id, kind, purpose, status)
			VALUES ($1, $2, $3, $4, 'submitted')
			RETURNING `+certificateColumns,
			uuid.NewString(),
			userID,
			strings.TrimSpace(req.Kind),
			strings.TrimSpace(req.Purpose),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Certificate])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListCertificates returns a user's certificate requests, newest first.
func (r *AdminRepo) ListCertificates(ctx context.Context, userID string) ([]*model.Certificate, error) {
	var out []model.Certificate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+certificateColumns+` FROM certificates WHERE user_id = $1 ORDER BY created_at DESC`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Certificate])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// ListPendingCertificates returns every request awaiting review, oldest
// first so the queue is worked in arrival order.
func (r *AdminRepo) ListPendingCertificates(ctx context.Context) ([]*model.Certificate, error) {
	var out []model.Certificate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+certificateColumns+` FROM certificates WHERE status = 'submitted' ORDER BY created_at`)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Certificate])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// ReviewCertificate applies an admin decision to a pending request.
func (r *AdminRepo) ReviewCertificate(ctx context.Context, id, reviewerID string, req *model.ReviewCertificateRequest) (*model.Certificate, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	decided := model.CertificateRejected
	if req.Approve {
		decided = model.CertificateApproved
	}

	var out model.Certificate
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		var status model.CertificateStatus
		err := tx.QueryRow(ctx,
			`SELECT status FROM certificates WHERE id = $1 FOR UPDATE`, id).Scan(&status)
		if err != nil {
			return err
		}
		if status != model.CertificateSubmitted {
			return apperrors.Conflictf("certificate is %s, only pending requests can be reviewed", status.DisplayLabel())
		}

		rows, err := tx.Query(ctx, `
			UPDATE certificates
			SET status = $2, file_url = $3, reviewed_by = $4, updated_at = now()
			WHERE id = $1
			RETURNING `+certificateColumns, id, decided, req.FileURL, reviewerID)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Certificate])
		return err
	}})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// CreateNotice publishes a notice to a college.
func (r *AdminRepo) CreateNotice(ctx context.Context, postedBy string, req *model.CreateNoticeRequest) (*model.Notice, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Notice
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO notices (id, college_id, title, body, audience, posted_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+noticeColumns,
			uuid.NewString(),
			req.CollegeID,
			strings.TrimSpace(req.Title),
			req.Body,
			req.Audience,
			postedBy,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Notice])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListNotices returns a college's notices, newest first.
func (r *AdminRepo) ListNotices(ctx context.Context, collegeID string) ([]*model.Notice, error) {
	var out []model.Notice
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+noticeColumns+` FROM notices WHERE college_id = $1 ORDER BY created_at DESC`, collegeID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Notice])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// CreateEvent schedules a campus event.
func (r *AdminRepo) CreateEvent(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Event
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO events (id, college_id, title, description, venue, starts_at, ends_at, capacity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+eventColumns,
			uuid.NewString(),
			req.CollegeID,
			strings.TrimSpace(req.Title),
			req.Description,
			req.Venue,
			req.StartsAt,
			req.EndsAt,
			req.Capacity,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Event])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListEvents returns a college's events, soonest first.
func (r *AdminRepo) ListEvents(ctx context.Context, collegeID string) ([]*model.Event, error) {
	var out []model.Event
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+eventColumns+` FROM events WHERE college_id = $1 ORDER BY starts_at`, collegeID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Event])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// RegisterForEvent registers a user for an event. Double registration and
// full events are conflicts.
func (r *AdminRepo) RegisterForEvent(ctx context.Context, eventID, userID string) (*model.EventRegistration, error) {
	var out model.EventRegistration
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		var capacity int
		err := tx.QueryRow(ctx,
			`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&capacity)
		if err != nil {
			return err
		}

		var taken int
		err = tx.QueryRow(ctx,
			`SELECT count(*) FROM event_registrations WHERE event_id = $1`, eventID).Scan(&taken)
		if err != nil {
			return err
		}
		if capacity > 0 && taken >= capacity {
			return apperrors.Conflict("Event is at capacity.")
		}

		var already bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM event_registrations WHERE event_id = $1 AND user_id = $2)`,
			eventID, userID).Scan(&already)
		if err != nil {
			return err
		}
		if already {
			return apperrors.Conflict("Already registered for this event.")
		}

		rows, err := tx.Query(ctx, `
			INSERT INTO event_registrations (id, event_id, user_id)
			VALUES ($1, $2, $3)
			RETURNING `+registrationColumns,
			uuid.NewString(), eventID, userID)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.EventRegistration])
		return err
	}})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListRegistrations returns a user's event registrations, newest first.
func (r *AdminRepo) ListRegistrations(ctx context.Context, userID string) ([]*model.EventRegistration, error) {
	var out []model.EventRegistration
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+registrationColumns+` FROM event_registrations WHERE user_id = $1 ORDER BY registered_at DESC`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.EventRegistration])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}
