package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medconnect/medconnect-api/internal/domain/auth"
)

func validCreateUser() CreateUserRequest {
	return CreateUserRequest{
		FullName:  "Asha Nair",
		Email:     "asha@gmc.edu",
		Password:  "correct horse",
		Role:      auth.RoleStudent,
		CollegeID: "c1",
	}
}

func TestCreateUserRequestValidate(t *testing.T) {
	req := validCreateUser()
	assert.NoError(t, req.Validate())

	tests := []struct {
		name   string
		mutate func(*CreateUserRequest)
	}{
		{name: "empty name", mutate: func(r *CreateUserRequest) { r.FullName = " " }},
		{name: "empty email", mutate: func(r *CreateUserRequest) { r.Email = "" }},
		{name: "malformed email", mutate: func(r *CreateUserRequest) { r.Email = "not-an-address" }},
		{name: "short password", mutate: func(r *CreateUserRequest) { r.Password = "short" }},
		{name: "unknown role", mutate: func(r *CreateUserRequest) { r.Role = "registrar" }},
		{name: "missing college", mutate: func(r *CreateUserRequest) { r.CollegeID = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateUser()
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestUpdateUserRequest(t *testing.T) {
	t.Run("empty update is a valid no-op", func(t *testing.T) {
		req := UpdateUserRequest{}
		assert.NoError(t, req.Validate())
		assert.True(t, req.Empty())
	})

	t.Run("partial update", func(t *testing.T) {
		name := "Asha N."
		req := UpdateUserRequest{FullName: &name}
		assert.NoError(t, req.Validate())
		assert.False(t, req.Empty())
	})

	t.Run("blank name rejected", func(t *testing.T) {
		name := "  "
		assert.Error(t, (&UpdateUserRequest{FullName: &name}).Validate())
	})

	t.Run("bad email rejected", func(t *testing.T) {
		email := "nope"
		assert.Error(t, (&UpdateUserRequest{Email: &email}).Validate())
	})
}
