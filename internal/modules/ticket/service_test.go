package ticket

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sahayak/internal/database"
	"sahayak/internal/domain"
	"sahayak/internal/pkg/apperror"
	"sahayak/internal/repository"
)

type world struct {
	svc      *Service
	user     *domain.User
	other    *domain.User
	provider *domain.ServiceProvider
	booking  *domain.Booking
}

func newWorld(t *testing.T) *world {
	t.Helper()
	db, err := database.OpenSQLite(
		fmt.Sprintf("file:ticket_%s?mode=memory&cache=shared", uuid.NewString()),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	w := &world{
		user:  &domain.User{Name: "U", Email: "u@x.in", PasswordHash: "h", Role: domain.RoleUser, Status: domain.StatusActive},
		other: &domain.User{Name: "O", Email: "o@x.in", PasswordHash: "h", Role: domain.RoleUser, Status: domain.StatusActive},
	}
	require.NoError(t, users.Create(ctx, w.user))
	require.NoError(t, users.Create(ctx, w.other))

	catalog := repository.NewCatalogRepository(db)
	cat := &domain.ServiceCategory{Name: "Pest control"}
	require.NoError(t, catalog.CreateCategory(ctx, cat))
	svc := &domain.Service{Name: "Termite", Price: 900, CategoryID: cat.ID}
	require.NoError(t, catalog.CreateService(ctx, svc))

	w.provider = &domain.ServiceProvider{Name: "P", Email: "p@x.in", PasswordHash: "h", CategoryID: cat.ID, Status: domain.StatusActive}
	_, err = repository.NewProviderRepository(db).CreateWithServices(ctx, w.provider)
	require.NoError(t, err)

	bookings := repository.NewBookingRepository(db)
	w.booking = &domain.Booking{
		UserID: w.user.ID, ServiceID: svc.ID, ServiceCategoryID: cat.ID, ProviderID: &w.provider.ID,
		Date: time.Now().Add(48 * time.Hour), Status: domain.BookingAccepted, BasePrice: 900,
	}
	require.NoError(t, bookings.Create(ctx, w.booking))

	w.svc = NewService(repository.NewTicketRepository(db), bookings, zap.NewNop())
	return w
}

func TestCreate_SetsExactlyOneRaiser(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	ut, err := w.svc.Create(ctx, w.user.ID, domain.RoleUser, CreateTicketRequest{Subject: "Late", Description: "Provider is late", BookingID: &w.booking.ID})
	require.NoError(t, err)
	require.NotNil(t, ut.UserID)
	assert.Nil(t, ut.ProviderID)
	assert.Equal(t, domain.TicketOpen, ut.Status)

	pt, err := w.svc.Create(ctx, w.provider.ID, domain.RoleProvider, CreateTicketRequest{Subject: "Address", Description: "Wrong address", BookingID: &w.booking.ID})
	require.NoError(t, err)
	require.NotNil(t, pt.ProviderID)
	assert.Nil(t, pt.UserID)

	_, err = w.svc.Create(ctx, "admin", domain.RoleAdmin, CreateTicketRequest{Subject: "x", Description: "y"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestCreate_ForeignBookingRejected(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	_, err := w.svc.Create(ctx, w.other.ID, domain.RoleUser, CreateTicketRequest{Subject: "s", Description: "d", BookingID: &w.booking.ID})
	assert.ErrorIs(t, err, ErrForeignBooking)

	missing := "nope"
	_, err = w.svc.Create(ctx, w.user.ID, domain.RoleUser, CreateTicketRequest{Subject: "s", Description: "d", BookingID: &missing})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	mine, err := w.svc.ListMine(ctx, w.other.ID, domain.RoleUser)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestAdminStatusFlow(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	tk, err := w.svc.Create(ctx, w.user.ID, domain.RoleUser, CreateTicketRequest{Subject: "Refund", Description: "Please refund"})
	require.NoError(t, err)

	_, err = w.svc.UpdateStatus(ctx, tk.ID, "closed")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := w.svc.UpdateStatus(ctx, tk.ID, "resolved")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketResolved, updated.Status)

	open, err := w.svc.List(ctx, "OPEN")
	require.NoError(t, err)
	assert.Empty(t, open)

	all, err := w.svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = w.svc.Get(ctx, tk.ID, w.other.ID, domain.RoleUser)
	assert.ErrorIs(t, err, ErrNotRaiser)
	_, err = w.svc.Get(ctx, tk.ID, "admin", domain.RoleAdmin)
	assert.NoError(t, err)
}
