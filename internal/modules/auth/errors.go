package auth

import "sahayak/internal/pkg/apperror"

var (
	ErrInvalidCredentials = apperror.New(apperror.ErrUnauthorized, "invalid email or password")
	ErrAccountBlocked     = apperror.New(apperror.ErrForbidden, "account is blocked")
	ErrEmailTaken         = apperror.New(apperror.ErrConflict, "email is already registered")
	ErrUnknownRole        = apperror.New(apperror.ErrUnauthorized, "unknown role")
)
