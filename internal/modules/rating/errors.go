package rating

import "sahayak/internal/pkg/apperror"

var (
	ErrInvalidStars = apperror.New(apperror.ErrInvalidArgument, "stars must be an integer between 1 and 5")
	ErrNotCompleted = apperror.New(apperror.ErrInvalidState, "only completed bookings can be reviewed")
	ErrNotOwner     = apperror.New(apperror.ErrForbidden, "booking does not belong to this user")
	ErrNotVisible   = apperror.New(apperror.ErrForbidden, "booking is not visible to this caller")
)
