package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medconnect/medconnect-api/internal/errors"
)

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c","surprise":true}`))
	rec := httptest.NewRecorder()

	var dst struct {
		Email string `json:"email"`
	}
	ok := DecodeJSON(rec, req, &dst)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}

func TestWriteErrorCarriesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrorParams{
		Code:    http.StatusConflict,
		ErrCode: "conflict",
		Err:     assert.AnError,
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"detail"`)
}

func TestWriteAppErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperrors.NotFound("subject not found"), http.StatusNotFound},
		{"conflict", apperrors.Conflict("Already registered for this event."), http.StatusConflict},
		{"validation", apperrors.Validation("email is required"), http.StatusBadRequest},
		{"unauthorized", apperrors.Unauthorized("Invalid access token"), http.StatusUnauthorized},
		{"forbidden", apperrors.Forbidden("Your role does not permit this action."), http.StatusForbidden},
		{"foreign key", apperrors.ForeignKey("college does not exist"), http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteAppError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"detail"`)
		})
	}
}

func TestWriteAppErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteAppError(rec, assert.AnError)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error(), "raw internal errors must not leak")
	assert.Contains(t, rec.Body.String(), "something went wrong")
}

func TestWriteAppErrorIncludesValidationField(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteAppError(rec, apperrors.ValidationField("college_id", "Selected college does not exist."))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"college_id"`)
}
