package ticket

import "sahayak/internal/pkg/apperror"

var (
	ErrInvalidStatus  = apperror.New(apperror.ErrInvalidArgument, "status must be OPEN, PENDING or RESOLVED")
	ErrForeignBooking = apperror.New(apperror.ErrForbidden, "booking does not belong to you")
	ErrNotRaiser      = apperror.New(apperror.ErrForbidden, "ticket was raised by someone else")
	ErrRoleCannotFile = apperror.New(apperror.ErrForbidden, "only customers and providers raise tickets")
)
