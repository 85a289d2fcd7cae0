package chatbot

import "sahayak/internal/pkg/apperror"

var (
	ErrUnavailable  = apperror.New(apperror.ErrUnavailable, "assistant is not configured")
	ErrNoAnswer     = apperror.New(apperror.ErrGateway, "assistant did not answer")
	ErrEmptyMessage = apperror.New(apperror.ErrInvalidArgument, "message is required")
)
