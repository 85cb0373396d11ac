package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	assert.Equal(t, "student not found", NotFound("student not found").Error())

	wrapped := Wrap(errors.New("boom"), ErrCodeInternal, "fetch failed")
	assert.Equal(t, "fetch failed: boom", wrapped.Error())
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, ErrCodeInternal, "database unavailable")
	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.ErrorAs(t, fmt.Errorf("handler: %w", err), &appErr)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
}

func TestConstructorsAndPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		is   func(error) bool
	}{
		{name: "not found", err: NotFoundf("user %s not found", "u1"), code: ErrCodeNotFound, is: IsNotFound},
		{name: "conflict", err: Conflict("email taken"), code: ErrCodeConflict, is: IsConflict},
		{name: "validation", err: Validation("bad input"), code: ErrCodeValidation, is: IsValidation},
		{name: "unauthorized", err: Unauthorized("login required"), code: ErrCodeUnauthorized, is: IsUnauthorized},
		{name: "forbidden", err: Forbidden("role not allowed"), code: ErrCodeForbidden, is: IsForbidden},
		{name: "foreign key", err: ForeignKey("college in use"), code: ErrCodeForeignKey, is: IsForeignKey},
		{name: "internal", err: Internalf("oops: %d", 42), code: ErrCodeInternal, is: IsInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.is(tt.err))
			assert.Equal(t, tt.code, GetCode(tt.err))
		})
	}
}

func TestPredicatesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("gone"))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "This field is required.")
	assert.Equal(t, "email", GetField(err))
	assert.True(t, IsValidation(err))

	assert.Empty(t, GetField(errors.New("plain")))
	assert.Empty(t, GetCode(errors.New("plain")))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "ignored %d", 1))
}
