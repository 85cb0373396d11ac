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
	hostelColumns     = `id, college_id, name, warden, created_at, updated_at`
	roomColumns       = `id, hostel_id, number, floor, capacity, occupied, status, created_at, updated_at`
	allocationColumns = `id, room_id, user_id, allocated_at, vacated_at`
	visitorColumns    = `id, hostel_id, resident_id, visitor_name, relation, visit_date, status, checked_in, checked_out, created_at, updated_at`
)

// HostelRepo provides database operations for hostels, rooms, allocations
// and visitor logs.
type HostelRepo struct {
	DB *sql.DB
}

// NewHostelRepo creates a new HostelRepo.
func NewHostelRepo(db *sql.DB) *HostelRepo {
	return &HostelRepo{DB: db}
}

// ListHostels returns the hostels of a college, ordered by name.
func (r *HostelRepo) ListHostels(ctx context.Context, collegeID string) ([]*model.Hostel, error) {
	var out []model.Hostel
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+hostelColumns+` FROM hostels WHERE college_id = $1 ORDER BY name`, collegeID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Hostel])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// ListRooms returns rooms matching the options, ordered by room number.
func (r *HostelRepo) ListRooms(ctx context.Context, opts model.RoomListOptions) ([]*model.Room, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if opts.HostelID != nil {
		where = append(where, "hostel_id = "+arg(*opts.HostelID))
	}
	if opts.Status != nil {
		where = append(where, "status = "+arg(*opts.Status))
	}
	if opts.Floor != nil {
		where = append(where, "floor = "+arg(*opts.Floor))
	}

	query := `SELECT ` + roomColumns + ` FROM rooms`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY number"

	var out []model.Room
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Room])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// GetRoom retrieves a room by ID.
func (r *HostelRepo) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	var out model.Room
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Room])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// AllocateRoom assigns a student to a room with space. A student holds at
// most one active allocation; a full room flips to occupied.
func (r *HostelRepo) AllocateRoom(ctx context.Context, req *model.AllocateRoomRequest) (*model.RoomAllocation, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.RoomAllocation
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		var room model.Room
		rows, err := tx.Query(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1 FOR UPDATE`, req.RoomID)
		if err != nil {
			return err
		}
		room, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Room])
		if err != nil {
			return err
		}
		if !room.HasSpace() {
			return apperrors.Conflict("Room has no free space.")
		}

		var held bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM room_allocations WHERE user_id = $1 AND vacated_at IS NULL)`,
			req.UserID).Scan(&held)
		if err != nil {
			return err
		}
		if held {
			return apperrors.Conflict("Student already holds a room allocation.")
		}

		rows, err = tx.Query(ctx, `
			INSERT INTO room_allocations (id, room_id, user_id)
			VALUES ($1, $2, $3)
			RETURNING `+allocationColumns,
			uuid.NewString(), req.RoomID, req.UserID)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RoomAllocation])
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE rooms SET
				occupied   = occupied + 1,
				status     = CASE WHEN occupied + 1 >= capacity THEN 'occupied' ELSE status END,
				updated_at = now()
			WHERE id = $1`, req.RoomID)
		return err
	}})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// VacateRoom ends an active allocation and frees its spot.
func (r *HostelRepo) VacateRoom(ctx context.Context, allocationID string) (*model.RoomAllocation, error) {
	var out model.RoomAllocation
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		var vacated *string
		var roomID string
		err := tx.QueryRow(ctx,
			`SELECT room_id, vacated_at::text FROM room_allocations WHERE id = $1 FOR UPDATE`,
			allocationID).Scan(&roomID, &vacated)
		if err != nil {
			return err
		}
		if vacated != nil {
			return apperrors.Conflict("Allocation has already been vacated.")
		}

		rows, err := tx.Query(ctx, `
			UPDATE room_allocations SET vacated_at = now()
			WHERE id = $1
			RETURNING `+allocationColumns, allocationID)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.RoomAllocation])
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE rooms SET
				occupied   = GREATEST(occupied - 1, 0),
				status     = CASE WHEN status = 'occupied' AND occupied - 1 < capacity THEN 'available' ELSE status END,
				updated_at = now()
			WHERE id = $1`, roomID)
		return err
	}})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListAllocations returns a student's allocations, most recent first.
func (r *HostelRepo) ListAllocations(ctx context.Context, userID string) ([]*model.RoomAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM room_allocations`
	var args []any
	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY allocated_at DESC`

	var out []model.RoomAllocation
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.RoomAllocation])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// CreateVisitorLog files a visitor request for a resident. Requests start
// pending until the warden decides.
func (r *HostelRepo) CreateVisitorLog(ctx context.Context, residentID string, req *model.CreateVisitorLogRequest) (*model.VisitorLog, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.VisitorLog
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO visitor_logs (id, hostel_id, resident_id, visitor_name, relation, visit_date, status)
			VALUES ($1, $2, $3, $4, $5, $6, 'pending')
			RETURNING `+visitorColumns,
			uuid.NewString(),
			req.HostelID,
			residentID,
			strings.TrimSpace(req.VisitorName),
			req.Relation,
			req.VisitDate,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.VisitorLog])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// ListVisitorLogs returns the visitor log of a hostel, newest visit first.
func (r *HostelRepo) ListVisitorLogs(ctx context.Context, hostelID string) ([]*model.VisitorLog, error) {
	query := `SELECT ` + visitorColumns + ` FROM visitor_logs`
	var args []any
	if hostelID != "" {
		query += ` WHERE hostel_id = $1`
		args = append(args, hostelID)
	}
	query += ` ORDER BY visit_date DESC`

	var out []model.VisitorLog
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.VisitorLog])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// ListVisitorLogsForResident returns a resident's own visitor requests,
// newest visit first.
func (r *HostelRepo) ListVisitorLogsForResident(ctx context.Context, residentID string) ([]*model.VisitorLog, error) {
	query := `SELECT ` + visitorColumns + ` FROM visitor_logs
		WHERE resident_id = $1
		ORDER BY visit_date DESC`

	var out []model.VisitorLog
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, residentID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.VisitorLog])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return toPtrs(out), nil
}

// SetVisitorStatus moves a visitor request through its lifecycle. Approval
// stamps check-in; completion stamps check-out.
func (r *HostelRepo) SetVisitorStatus(ctx context.Context, id string, status model.VisitorStatus) (*model.VisitorLog, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("unknown visitor status %q", status)
	}
	if status == model.VisitorPending {
		return nil, apperrors.Validation("visitor requests cannot return to pending")
	}

	var out model.VisitorLog
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		var current model.VisitorStatus
		err := tx.QueryRow(ctx,
			`SELECT status FROM visitor_logs WHERE id = $1 FOR UPDATE`, id).Scan(&current)
		if err != nil {
			return err
		}

		switch status {
		case model.VisitorApproved:
			if current != model.VisitorPending {
				return apperrors.Conflictf("visitor request is %s, only pending requests can be approved", current)
			}
		case model.VisitorRejected:
			if current != model.VisitorPending {
				return apperrors.Conflictf("visitor request is %s, only pending requests can be rejected", current)
			}
		case model.VisitorCompleted:
			if current != model.VisitorApproved {
				return apperrors.Conflictf("visitor request is %s, only approved visits can be completed", current)
			}
		}

		rows, err := tx.Query(ctx, `
			UPDATE visitor_logs SET
				status      = $2,
				checked_in  = CASE WHEN $2 = 'approved'  THEN now() ELSE checked_in  END,
				checked_out = CASE WHEN $2 = 'completed' THEN now() ELSE checked_out END,
				updated_at  = now()
			WHERE id = $1
			RETURNING `+visitorColumns, id, status)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.VisitorLog])
		return err
	}})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
