package chat

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"sahayak/internal/domain"
	"sahayak/internal/relay"
)

type Service struct {
	bookings BookingReader
	messages MessageRepository
	notifier Notifier
	log      *zap.Logger
}

func NewService(bookings BookingReader, messages MessageRepository, notifier Notifier, log *zap.Logger) *Service {
	return &Service{bookings: bookings, messages: messages, notifier: notifier, log: log}
}

// Send stores a chat line from the booking's customer or assigned provider and
// relays it to the other side.
func (s *Service) Send(ctx context.Context, bookingID, senderID string, role domain.Role, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyContent
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	recipient, ok := counterpart(b, senderID, role)
	if !ok {
		return nil, ErrNotParticipant
	}
	if b.Status == domain.BookingCancelled {
		return nil, ErrBookingClosed
	}

	m := &domain.Message{
		BookingID:  b.ID,
		SenderID:   senderID,
		SenderRole: role,
		Body:       body,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}

	s.log.Debug("chat message stored", zap.String("booking_id", b.ID), zap.String("message_id", m.ID))
	s.notifier.Fire(relay.EventSendMessage, MessageEvent{
		BookingID:   b.ID,
		MessageID:   m.ID,
		SenderID:    senderID,
		SenderRole:  string(role),
		RecipientID: recipient,
		Body:        m.Body,
		SentAt:      m.CreatedAt,
	})
	return m, nil
}

// List returns the booking's conversation to a participant or an admin.
func (s *Service) List(ctx context.Context, bookingID, principalID string, role domain.Role, limit int) ([]domain.Message, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleAdmin {
		if _, ok := counterpart(b, principalID, role); !ok {
			return nil, ErrNotParticipant
		}
	}
	return s.messages.ListByBooking(ctx, b.ID, limit)
}

// counterpart returns the other participant of b when id takes part in it.
func counterpart(b *domain.Booking, id string, role domain.Role) (string, bool) {
	switch role {
	case domain.RoleUser:
		if b.UserID != id {
			return "", false
		}
		if b.ProviderID != nil {
			return *b.ProviderID, true
		}
		return "", true
	case domain.RoleProvider:
		if !b.IsAssignedTo(id) {
			return "", false
		}
		return b.UserID, true
	}
	return "", false
}
