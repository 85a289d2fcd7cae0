package chatbot

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

const preamble = `You are Sahayak's help assistant. Sahayak connects customers with verified
home-service providers (plumbing, electrical, cleaning, carpentry and more).
Help customers choose a service, explain how booking, price confirmation,
completion and payment work, and keep answers short and polite.
Never invent prices, providers or booking details.

Customer: `

// Completer turns a prompt into model text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	completer Completer
	log       *zap.Logger
}

// NewService accepts a nil completer; Ask then reports ErrUnavailable.
func NewService(completer Completer, log *zap.Logger) *Service {
	return &Service{completer: completer, log: log}
}

func (s *Service) Ask(ctx context.Context, message string) (string, error) {
	if s.completer == nil {
		return "", ErrUnavailable
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	answer, err := s.completer.Complete(ctx, preamble+message)
	if err != nil {
		s.log.Warn("assistant completion failed", zap.Error(err))
		return "", ErrNoAnswer
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", ErrNoAnswer
	}
	return answer, nil
}
