package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sahayak/internal/domain"
	"sahayak/internal/middleware"
	"sahayak/internal/pkg/apperror"
	"sahayak/internal/pkg/jwt"
	"sahayak/internal/relay"
)

const testSecret = "rzp_test_secret"

// memStore mirrors the guarded updates of the gorm booking repository.
type memStore struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
	marks    int
}

func newMemStore(bookings ...*domain.Booking) *memStore {
	s := &memStore{bookings: map[string]*domain.Booking{}}
	for _, b := range bookings {
		s.bookings[b.ID] = b
	}
	return s
}

func (s *memStore) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, apperror.New(apperror.ErrNotFound, "booking not found")
	}
	cp := *b
	return &cp, nil
}

func (s *memStore) GetByOrderID(_ context.Context, orderID string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.OrderID != nil && *b.OrderID == orderID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, apperror.New(apperror.ErrNotFound, "booking not found")
}

func (s *memStore) SetOrderID(_ context.Context, id, userID, orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.UserID != userID || b.Status != domain.BookingCompleted || b.IsPaid {
		return false, nil
	}
	b.OrderID = &orderID
	return true, nil
}

func (s *memStore) MarkPaid(_ context.Context, orderID, paymentID, signature string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.OrderID != nil && *b.OrderID == orderID && !b.IsPaid && b.Status == domain.BookingCompleted {
			b.IsPaid = true
			b.PaymentID = &paymentID
			b.PaymentSignature = &signature
			b.PaymentVerifiedAt = &at
			s.marks++
			return true, nil
		}
	}
	return false, nil
}

// stubGateway creates orders locally and verifies like Razorpay.
type stubGateway struct {
	*RazorpayGateway
	orderID string
	err     error
	amounts []int64
}

func (g *stubGateway) CreateOrder(_ context.Context, amountMinor int64, _, _ string) (*Order, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.amounts = append(g.amounts, amountMinor)
	return &Order{ID: g.orderID}, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []relay.Event
}

func (r *recordingNotifier) Fire(event relay.Event, _ any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func ptr[T any](v T) *T { return &v }

func completedBooking() *domain.Booking {
	return &domain.Booking{
		Model:      domain.Model{ID: "b1"},
		UserID:     "u1",
		ProviderID: ptr("p1"),
		Status:     domain.BookingCompleted,
		BasePrice:  650.5,
	}
}

func newTestService(store *memStore) (*Service, *stubGateway, *recordingNotifier) {
	gw := &stubGateway{RazorpayGateway: NewRazorpayGateway("rzp_test_key", testSecret), orderID: "order_1"}
	n := &recordingNotifier{}
	return NewService(store, gw, n, "INR", zap.NewNop()), gw, n
}

func TestComputeSignature_KnownVector(t *testing.T) {
	// hex(HMAC-SHA256("secret", "order|payment"))
	sig := ComputeSignature("secret", "order", "payment")
	assert.Len(t, sig, 64)
	assert.Equal(t, sig, ComputeSignature("secret", "order", "payment"))
	assert.NotEqual(t, sig, ComputeSignature("secret", "payment", "order"))
	assert.NotEqual(t, sig, ComputeSignature("other", "order", "payment"))
}

func TestRazorpayGateway_VerifySignature(t *testing.T) {
	g := NewRazorpayGateway("key", testSecret)
	ctx := context.Background()

	require.NoError(t, g.VerifySignature(ctx, "order_1", "pay_1", ComputeSignature(testSecret, "order_1", "pay_1")))
	assert.ErrorIs(t, g.VerifySignature(ctx, "order_1", "pay_1", "deadbeef"), ErrSignatureMismatch)
	assert.ErrorIs(t, g.VerifySignature(ctx, "order_1", "pay_2", ComputeSignature(testSecret, "order_1", "pay_1")), ErrSignatureMismatch)
}

func TestService_CreateOrder_UsesMinorUnits(t *testing.T) {
	store := newMemStore(completedBooking())
	svc, gw, _ := newTestService(store)

	resp, err := svc.CreateOrder(context.Background(), "b1", "u1")
	require.NoError(t, err)

	assert.Equal(t, "order_1", resp.OrderID)
	assert.Equal(t, int64(65050), resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "rzp_test_key", resp.KeyID)
	assert.Equal(t, []int64{65050}, gw.amounts)

	b, _ := store.GetByID(context.Background(), "b1")
	require.NotNil(t, b.OrderID)
	assert.Equal(t, "order_1", *b.OrderID)
}

func TestService_CreateOrder_Rejections(t *testing.T) {
	pending := completedBooking()
	pending.Status = domain.BookingAccepted
	paid := completedBooking()
	paid.ID = "b2"
	paid.IsPaid = true

	store := newMemStore(pending, paid)
	svc, _, _ := newTestService(store)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, "b1", "u1")
	assert.ErrorIs(t, err, apperror.ErrInvalidState)

	_, err = svc.CreateOrder(ctx, "b1", "u2")
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.CreateOrder(ctx, "b2", "u1")
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	_, err = svc.CreateOrder(ctx, "missing", "u1")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestService_CreateOrder_GatewayFailure(t *testing.T) {
	store := newMemStore(completedBooking())
	svc, gw, _ := newTestService(store)
	gw.err = errors.New("connection refused")

	_, err := svc.CreateOrder(context.Background(), "b1", "u1")
	assert.ErrorIs(t, err, apperror.ErrGateway)

	b, _ := store.GetByID(context.Background(), "b1")
	assert.Nil(t, b.OrderID)
}

func TestService_Verify_TamperedSignatureNeverPays(t *testing.T) {
	b := completedBooking()
	b.OrderID = ptr("order_1")
	store := newMemStore(b)
	svc, _, n := newTestService(store)

	_, err := svc.Verify(context.Background(), VerifyRequest{OrderID: "order_1", PaymentID: "pay_1", Signature: "tampered"})
	assert.ErrorIs(t, err, apperror.ErrSignatureMismatch)

	got, _ := store.GetByID(context.Background(), "b1")
	assert.False(t, got.IsPaid)
	assert.Nil(t, got.PaymentID)
	assert.Empty(t, n.events)
}

func TestService_Verify_IsIdempotent(t *testing.T) {
	b := completedBooking()
	b.OrderID = ptr("order_1")
	store := newMemStore(b)
	svc, _, n := newTestService(store)
	ctx := context.Background()
	req := VerifyRequest{OrderID: "order_1", PaymentID: "pay_1", Signature: ComputeSignature(testSecret, "order_1", "pay_1")}

	first, err := svc.Verify(ctx, req)
	require.NoError(t, err)
	assert.True(t, first.IsPaid)
	require.NotNil(t, first.PaymentVerifiedAt)

	second, err := svc.Verify(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.IsPaid)
	assert.Equal(t, *first.PaymentVerifiedAt, *second.PaymentVerifiedAt)

	assert.Equal(t, 1, store.marks)
	assert.Equal(t, []relay.Event{relay.EventPayment}, n.events)
}

func TestService_Verify_DifferentPaymentOnPaidBooking(t *testing.T) {
	b := completedBooking()
	b.OrderID = ptr("order_1")
	store := newMemStore(b)
	svc, _, _ := newTestService(store)
	ctx := context.Background()

	_, err := svc.Verify(ctx, VerifyRequest{OrderID: "order_1", PaymentID: "pay_1", Signature: ComputeSignature(testSecret, "order_1", "pay_1")})
	require.NoError(t, err)

	_, err = svc.Verify(ctx, VerifyRequest{OrderID: "order_1", PaymentID: "pay_2", Signature: ComputeSignature(testSecret, "order_1", "pay_2")})
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestService_Verify_UnknownOrder(t *testing.T) {
	svc, _, _ := newTestService(newMemStore())

	_, err := svc.Verify(context.Background(), VerifyRequest{OrderID: "nope", PaymentID: "pay_1", Signature: "x"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestHandler_CallbackRedirects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b := completedBooking()
	b.OrderID = ptr("order_1")
	svc, _, _ := newTestService(newMemStore(b))

	router := gin.New()
	NewHandler(svc, "https://app.example/paid", "https://app.example/failed", zap.NewNop()).RegisterPublicRoutes(router.Group("/api/v1"))

	post := func(sig string) *httptest.ResponseRecorder {
		form := url.Values{}
		form.Set("razorpay_order_id", "order_1")
		form.Set("razorpay_payment_id", "pay_1")
		form.Set("razorpay_signature", sig)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/callback", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post("tampered")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "https://app.example/failed"))

	w = post(ComputeSignature(testSecret, "order_1", "pay_1"))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "https://app.example/paid?booking_id=b1", w.Header().Get("Location"))
}

func TestHandler_VerifyJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	b := completedBooking()
	b.OrderID = ptr("order_1")
	svc, _, _ := newTestService(newMemStore(b))

	jwtSvc := jwt.New("payment-secret", time.Hour)
	router := gin.New()
	NewHandler(svc, "https://app.example/paid", "https://app.example/failed", zap.NewNop()).
		RegisterProtectedRoutes(router.Group("/api/v1", middleware.JWTAuth(jwtSvc, nil)))

	token, err := jwtSvc.GenerateToken("u1", "USER")
	require.NoError(t, err)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/verify", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post(`{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"tampered"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "SIGNATURE_MISMATCH")

	w = post(`{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"` +
		ComputeSignature(testSecret, "order_1", "pay_1") + `"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_paid":true`)

	w = post(`{"order_id":"order_1","payment_id":"pay_1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ARGUMENT")
}
