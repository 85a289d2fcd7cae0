package catalog

import "sahayak/internal/pkg/apperror"

var (
	ErrInvalidPrice = apperror.New(apperror.ErrInvalidArgument, "price must be greater than zero")
	ErrEmptyName    = apperror.New(apperror.ErrInvalidArgument, "name is required")
)
