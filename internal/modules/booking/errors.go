package booking

import "sahayak/internal/pkg/apperror"

var (
	ErrInvalidPrice     = apperror.New(apperror.ErrInvalidArgument, "price must be greater than zero")
	ErrInvalidDate      = apperror.New(apperror.ErrInvalidArgument, "date is required")
	ErrNotPending       = apperror.New(apperror.ErrInvalidState, "booking is not pending")
	ErrNotAccepted      = apperror.New(apperror.ErrInvalidState, "booking is not accepted")
	ErrNotOwner         = apperror.New(apperror.ErrForbidden, "booking does not belong to this user")
	ErrNotAssigned      = apperror.New(apperror.ErrForbidden, "booking is not assigned to this provider")
	ErrProviderBlocked  = apperror.New(apperror.ErrForbidden, "provider is blocked")
	ErrCategoryMismatch = apperror.New(apperror.ErrForbidden, "provider does not serve this category")
)
