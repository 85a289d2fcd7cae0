package payment

import "sahayak/internal/pkg/apperror"

var (
	ErrNotOwner          = apperror.New(apperror.ErrForbidden, "booking does not belong to this user")
	ErrNotCompleted      = apperror.New(apperror.ErrInvalidState, "booking is not completed")
	ErrAlreadyPaid       = apperror.New(apperror.ErrInvalidState, "booking is already paid")
	ErrSignatureMismatch = apperror.New(apperror.ErrSignatureMismatch, "payment signature does not match")
	ErrGatewayFailed     = apperror.New(apperror.ErrGateway, "payment gateway request failed")
	ErrInvalidAmount     = apperror.New(apperror.ErrInvalidArgument, "booking amount must be greater than zero")
)
