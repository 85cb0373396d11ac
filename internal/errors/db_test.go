package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapDBErrorPassthrough(t *testing.T) {
	assert.Nil(t, MapDBError(nil))

	plain := errors.New("not a db error")
	assert.Same(t, plain, MapDBError(plain))
}

func TestMapDBErrorContext(t *testing.T) {
	assert.True(t, IsTimeout(MapDBError(context.DeadlineExceeded)))
	assert.True(t, IsCanceled(MapDBError(context.Canceled)))
}

func TestMapDBErrorNoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestMapDBErrorUniqueViolation(t *testing.T) {
	t.Run("field from detail", func(t *testing.T) {
		err := MapDBError(&pgconn.PgError{
			Code:   pgerrcode.UniqueViolation,
			Detail: "Key (email)=(a@b.edu) already exists.",
		})
		assert.True(t, IsConflict(err))
		assert.Equal(t, "email", GetField(err))
	})

	t.Run("field inferred from constraint name", func(t *testing.T) {
		err := MapDBError(&pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: "users_email_key",
		})
		assert.Equal(t, "email", GetField(err))
	})

	t.Run("multi-column constraint names no field", func(t *testing.T) {
		err := MapDBError(&pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: "room_allocations_room_id_user_id_key",
		})
		assert.True(t, IsConflict(err))
		assert.Empty(t, GetField(err))
	})
}

func TestMapDBErrorForeignKeyViolation(t *testing.T) {
	t.Run("parent still referenced", func(t *testing.T) {
		err := MapDBError(&pgconn.PgError{
			Code:   pgerrcode.ForeignKeyViolation,
			Detail: `Key (id)=(c1) is still referenced from table "room_allocations".`,
		})
		assert.True(t, IsForeignKey(err))
		assert.Contains(t, err.Error(), "Room Allocation")
	})

	t.Run("missing parent", func(t *testing.T) {
		err := MapDBError(&pgconn.PgError{
			Code:   pgerrcode.ForeignKeyViolation,
			Detail: `Key (college_id)=(c9) is not present in table "colleges".`,
		})
		assert.True(t, IsForeignKey(err))
		assert.Contains(t, err.Error(), "College")
		assert.Contains(t, err.Error(), "does not exist")
	})
}

func TestMapDBErrorConstraintViolations(t *testing.T) {
	t.Run("not null names the column", func(t *testing.T) {
		err := MapDBError(&pgconn.PgError{
			Code:       pgerrcode.NotNullViolation,
			ColumnName: "full_name",
		})
		assert.True(t, IsValidation(err))
		assert.Equal(t, "full_name", GetField(err))
	})

	t.Run("check violation", func(t *testing.T) {
		err := MapDBError(&pgconn.PgError{Code: pgerrcode.CheckViolation})
		assert.True(t, IsValidation(err))
	})
}

func TestMapDBErrorUnknownPgError(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	assert.True(t, IsInternal(err))
}
