package rating

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sahayak/internal/database"
	"sahayak/internal/domain"
	"sahayak/internal/pkg/apperror"
	"sahayak/internal/repository"
)

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) CreateOnce(ctx context.Context, r *domain.Rating) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRatingRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Rating, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *MockRatingRepository) Update(ctx context.Context, bookingID, userID string, stars int, review string) (*domain.Rating, error) {
	args := m.Called(ctx, bookingID, userID, stars, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Rating, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).([]domain.Rating), args.Error(1)
}

func (m *MockRatingRepository) ProviderSummary(ctx context.Context, providerID string) (float64, int64, error) {
	args := m.Called(ctx, providerID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

type MockBookings struct {
	mock.Mock
}

func (m *MockBookings) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func completedBooking() *domain.Booking {
	p := "p1"
	return &domain.Booking{
		Model:      domain.Model{ID: "b1"},
		UserID:     "u1",
		ServiceID:  "s1",
		ProviderID: &p,
		Status:     domain.BookingCompleted,
	}
}

func TestService_Create_DerivesIDsFromBooking(t *testing.T) {
	ratings, bookings := new(MockRatingRepository), new(MockBookings)
	svc := NewService(ratings, bookings, zap.NewNop())
	ctx := context.Background()

	bookings.On("GetByID", ctx, "b1").Return(completedBooking(), nil)
	ratings.On("CreateOnce", ctx, mock.MatchedBy(func(r *domain.Rating) bool {
		return r.BookingID == "b1" && r.ProviderID == "p1" && r.ServiceID == "s1" && r.Stars == 5 && r.Review == "Great"
	})).Return(nil)

	r, err := svc.Create(ctx, "u1", "b1", 5, "  Great ")
	require.NoError(t, err)
	assert.Equal(t, 5, r.Stars)
	ratings.AssertExpectations(t)
}

func TestService_Create_Rejections(t *testing.T) {
	ctx := context.Background()

	for _, stars := range []int{0, 6, -1} {
		svc := NewService(new(MockRatingRepository), new(MockBookings), zap.NewNop())
		_, err := svc.Create(ctx, "u1", "b1", stars, "")
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument, "stars=%d", stars)
	}

	t.Run("not completed", func(t *testing.T) {
		bookings := new(MockBookings)
		b := completedBooking()
		b.Status = domain.BookingAccepted
		bookings.On("GetByID", ctx, "b1").Return(b, nil)

		_, err := NewService(new(MockRatingRepository), bookings, zap.NewNop()).Create(ctx, "u1", "b1", 4, "")
		assert.ErrorIs(t, err, apperror.ErrInvalidState)
	})

	t.Run("someone else's booking", func(t *testing.T) {
		bookings := new(MockBookings)
		bookings.On("GetByID", ctx, "b1").Return(completedBooking(), nil)

		_, err := NewService(new(MockRatingRepository), bookings, zap.NewNop()).Create(ctx, "u2", "b1", 4, "")
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("missing booking", func(t *testing.T) {
		bookings := new(MockBookings)
		bookings.On("GetByID", ctx, "nope").Return(nil, apperror.New(apperror.ErrNotFound, "booking not found"))

		_, err := NewService(new(MockRatingRepository), bookings, zap.NewNop()).Create(ctx, "u1", "nope", 4, "")
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	ratings := new(MockRatingRepository)
	svc := NewService(ratings, new(MockBookings), zap.NewNop())

	_, err := svc.Update(ctx, "u1", "b1", 6, "")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	ratings.On("Update", ctx, "b1", "u1", 3, "meh").Return(nil, apperror.New(apperror.ErrNotFound, "rating not found"))
	_, err = svc.Update(ctx, "u1", "b1", 3, "meh")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestService_Check(t *testing.T) {
	ctx := context.Background()
	ratings := new(MockRatingRepository)
	bookings := new(MockBookings)
	svc := NewService(ratings, bookings, zap.NewNop())

	unrated := completedBooking()
	unrated.ID = "b2"
	bookings.On("GetByID", ctx, "b1").Return(completedBooking(), nil)
	bookings.On("GetByID", ctx, "b2").Return(unrated, nil)
	ratings.On("GetByBookingID", ctx, "b2").Return(nil, apperror.New(apperror.ErrNotFound, "rating not found"))
	ratings.On("GetByBookingID", ctx, "b1").Return(&domain.Rating{Stars: 4}, nil)

	res, err := svc.Check(ctx, "b2", "u1", domain.RoleUser)
	require.NoError(t, err)
	assert.False(t, res.HasReviewed)

	res, err = svc.Check(ctx, "b1", "u1", domain.RoleUser)
	require.NoError(t, err)
	assert.True(t, res.HasReviewed)
	assert.Equal(t, 4, res.Review.Stars)

	for _, caller := range []struct {
		id   string
		role domain.Role
	}{{"p1", domain.RoleProvider}, {"admin", domain.RoleAdmin}} {
		_, err := svc.Check(ctx, "b1", caller.id, caller.role)
		assert.NoError(t, err, caller.role)
	}
}

func TestService_Check_HiddenFromStrangers(t *testing.T) {
	ctx := context.Background()
	ratings := new(MockRatingRepository)
	bookings := new(MockBookings)
	svc := NewService(ratings, bookings, zap.NewNop())

	bookings.On("GetByID", ctx, "b1").Return(completedBooking(), nil)
	bookings.On("GetByID", ctx, "missing").Return(nil, apperror.New(apperror.ErrNotFound, "booking not found"))

	_, err := svc.Check(ctx, "b1", "u2", domain.RoleUser)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.Check(ctx, "b1", "p2", domain.RoleProvider)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.Check(ctx, "missing", "u1", domain.RoleUser)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	ratings.AssertNotCalled(t, "GetByBookingID", mock.Anything, mock.Anything)
}

func TestService_ListForProviderRoundsAverage(t *testing.T) {
	ctx := context.Background()
	ratings := new(MockRatingRepository)
	ratings.On("ProviderSummary", ctx, "p1").Return(4.3333, int64(3), nil)
	ratings.On("ListByProvider", ctx, "p1").Return([]domain.Rating(nil), nil)

	res, err := NewService(ratings, new(MockBookings), zap.NewNop()).ListForProvider(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4.3, res.Average)
	assert.Equal(t, int64(3), res.Count)
	assert.NotNil(t, res.Ratings)
}

func TestService_ConcurrentCreateAgainstSQLite(t *testing.T) {
	db, err := database.OpenSQLite(
		fmt.Sprintf("file:rating_%s?mode=memory&cache=shared", uuid.NewString()),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))

	ctx := context.Background()
	user := &domain.User{Name: "U", Email: "u@x.in", PasswordHash: "h", Role: domain.RoleUser, Status: domain.StatusActive}
	require.NoError(t, repository.NewUserRepository(db).Create(ctx, user))
	cat := &domain.ServiceCategory{Name: "Plumbing"}
	catalog := repository.NewCatalogRepository(db)
	require.NoError(t, catalog.CreateCategory(ctx, cat))
	svcRow := &domain.Service{Name: "Leak fix", Price: 300, CategoryID: cat.ID}
	require.NoError(t, catalog.CreateService(ctx, svcRow))
	prov := &domain.ServiceProvider{Name: "P", Email: "p@x.in", PasswordHash: "h", CategoryID: cat.ID, Status: domain.StatusActive}
	_, err = repository.NewProviderRepository(db).CreateWithServices(ctx, prov)
	require.NoError(t, err)

	bookings := repository.NewBookingRepository(db)
	b := &domain.Booking{
		UserID: user.ID, ServiceID: svcRow.ID, ServiceCategoryID: cat.ID, ProviderID: &prov.ID,
		Date: time.Now(), Status: domain.BookingCompleted, BasePrice: 300,
	}
	require.NoError(t, bookings.Create(ctx, b))

	svc := NewService(repository.NewRatingRepository(db), bookings, zap.NewNop())

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, user.ID, b.ID, 5, "Great")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		if assert.ErrorIs(t, err, apperror.ErrConflict) {
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)
}
