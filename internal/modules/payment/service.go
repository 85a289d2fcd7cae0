package payment

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"sahayak/internal/domain"
	"sahayak/internal/relay"
)

type Service struct {
	bookings BookingStore
	gateway  Gateway
	notifier Notifier
	currency string
	log      *zap.Logger
	now      func() time.Time
}

func NewService(bookings BookingStore, gateway Gateway, notifier Notifier, currency string, log *zap.Logger) *Service {
	return &Service{
		bookings: bookings,
		gateway:  gateway,
		notifier: notifier,
		currency: currency,
		log:      log,
		now:      time.Now,
	}
}

// CreateOrder opens a gateway order for a completed, unpaid booking of userID.
// The amount is the booking's base price in minor units.
func (s *Service) CreateOrder(ctx context.Context, bookingID, userID string) (*OrderResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}
	if b.IsPaid {
		return nil, ErrAlreadyPaid
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrNotCompleted
	}

	amount := int64(math.Round(b.BasePrice * 100))
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	order, err := s.gateway.CreateOrder(ctx, amount, s.currency, b.ID)
	if err != nil {
		s.log.Error("create payment order failed",
			zap.String("gateway", s.gateway.Name()),
			zap.String("booking_id", b.ID),
			zap.Error(err))
		return nil, ErrGatewayFailed
	}

	ok, err := s.bookings.SetOrderID(ctx, b.ID, userID, order.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotCompleted
	}

	s.log.Info("payment order created",
		zap.String("gateway", s.gateway.Name()),
		zap.String("booking_id", b.ID),
		zap.String("order_id", order.ID),
		zap.Int64("amount", amount))

	return &OrderResponse{
		BookingID:    b.ID,
		OrderID:      order.ID,
		Amount:       amount,
		Currency:     s.currency,
		Gateway:      s.gateway.Name(),
		KeyID:        s.gateway.KeyID(),
		ClientSecret: order.ClientSecret,
	}, nil
}

// Verify checks the gateway signature and marks the booking paid. Repeating a
// successful verification returns the paid booking without stamping it again.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (*domain.Booking, error) {
	b, err := s.bookings.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if err := s.gateway.VerifySignature(ctx, req.OrderID, req.PaymentID, req.Signature); err != nil {
		if errors.Is(err, ErrSignatureMismatch) {
			s.log.Warn("payment signature mismatch",
				zap.String("booking_id", b.ID),
				zap.String("order_id", req.OrderID))
			return nil, ErrSignatureMismatch
		}
		s.log.Error("verify payment failed",
			zap.String("gateway", s.gateway.Name()),
			zap.String("order_id", req.OrderID),
			zap.Error(err))
		return nil, ErrGatewayFailed
	}

	if b.IsPaid {
		return s.alreadyPaid(b, req.PaymentID)
	}

	ok, err := s.bookings.MarkPaid(ctx, req.OrderID, req.PaymentID, req.Signature, s.now().UTC())
	if err != nil {
		return nil, err
	}

	b, err = s.bookings.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost to a concurrent verification or the booking left COMPLETED
		if b.IsPaid {
			return s.alreadyPaid(b, req.PaymentID)
		}
		return nil, ErrNotCompleted
	}

	s.log.Info("payment verified",
		zap.String("booking_id", b.ID),
		zap.String("order_id", req.OrderID),
		zap.String("payment_id", req.PaymentID))

	s.notifier.Fire(relay.EventPayment, PaidEvent{
		BookingID:  b.ID,
		UserID:     b.UserID,
		ProviderID: b.ProviderID,
		OrderID:    req.OrderID,
		PaymentID:  req.PaymentID,
		Amount:     b.BasePrice,
	})
	return b, nil
}

func (s *Service) alreadyPaid(b *domain.Booking, paymentID string) (*domain.Booking, error) {
	if b.PaymentID != nil && *b.PaymentID == paymentID {
		return b, nil
	}
	return nil, ErrAlreadyPaid
}
