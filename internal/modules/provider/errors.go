package provider

import "sahayak/internal/pkg/apperror"

var (
	ErrFileTooLarge    = apperror.New(apperror.ErrInvalidArgument, "file exceeds maximum allowed size")
	ErrInvalidMimeType = apperror.New(apperror.ErrInvalidArgument, "only jpeg, png and webp images are accepted")
	ErrEmptyFile       = apperror.New(apperror.ErrInvalidArgument, "file is empty")
	ErrEmptyName       = apperror.New(apperror.ErrInvalidArgument, "name cannot be empty")
)
