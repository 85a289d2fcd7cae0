package chat

import "sahayak/internal/pkg/apperror"

var (
	ErrNotParticipant = apperror.New(apperror.ErrForbidden, "you are not a participant of this booking")
	ErrEmptyContent   = apperror.New(apperror.ErrInvalidArgument, "message content cannot be empty")
	ErrBookingClosed  = apperror.New(apperror.ErrInvalidState, "booking is cancelled")
)
