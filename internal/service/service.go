package service

// Package service holds the portal's business logic. Services depend on the
// repository ports only; wiring decides whether fixture or PostgreSQL
// repositories sit behind them. Role checks live here so every transport
// (and every repository backend) enforces the same rules.

import (
	domainauth "github.com/medconnect/medconnect-api/internal/domain/auth"
	apperrors "github.com/medconnect/medconnect-api/internal/errors"
)

// staffRoles is every role above student: faculty, department heads,
// admins and the governance tier.
var staffRoles = []domainauth.Role{
	domainauth.RoleFaculty,
	domainauth.RoleHOD,
	domainauth.RoleAdmin,
	domainauth.RoleDME,
	domainauth.RolePrincipal,
	domainauth.RoleSuperintendent,
}

// requireRole fails closed: the caller's role must be one of the allowed
// roles, and an unknown role is never allowed anything.
func requireRole(caller domainauth.Session, allowed ...domainauth.Role) error {
	if !caller.Role.Valid() {
		return apperrors.Forbidden("Your role does not permit this action.")
	}
	for _, role := range allowed {
		if caller.Role == role {
			return nil
		}
	}
	return apperrors.Forbidden("Your role does not permit this action.")
}

// requireFacultyLike allows faculty and heads of department.
func requireFacultyLike(caller domainauth.Session) error {
	if caller.Role.IsFacultyLike() {
		return nil
	}
	return apperrors.Forbidden("Your role does not permit this action.")
}
