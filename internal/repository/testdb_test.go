package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sahayak/internal/database"
	"sahayak/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.OpenSQLite(dsn, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

type fixture struct {
	user     *domain.User
	category *domain.ServiceCategory
	service  *domain.Service
	provider *domain.ServiceProvider
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()

	f := fixture{
		user:     &domain.User{Name: "Asha", Email: uuid.NewString() + "@x.in", PasswordHash: "h", Role: domain.RoleUser, Status: domain.StatusActive},
		category: &domain.ServiceCategory{Name: "Cleaning " + uuid.NewString()},
	}
	require.NoError(t, NewUserRepository(db).Create(ctx, f.user))

	catalog := NewCatalogRepository(db)
	require.NoError(t, catalog.CreateCategory(ctx, f.category))
	f.service = &domain.Service{Name: "Deep clean", Price: 500, CategoryID: f.category.ID}
	require.NoError(t, catalog.CreateService(ctx, f.service))

	f.provider = &domain.ServiceProvider{Name: "Ravi", Email: uuid.NewString() + "@p.in", PasswordHash: "h", CategoryID: f.category.ID, Status: domain.StatusActive}
	_, err := NewProviderRepository(db).CreateWithServices(ctx, f.provider)
	require.NoError(t, err)
	return f
}

func (f fixture) booking(status domain.BookingStatus) *domain.Booking {
	b := &domain.Booking{
		UserID:            f.user.ID,
		ServiceID:         f.service.ID,
		ServiceCategoryID: f.category.ID,
		Date:              time.Now().Add(24 * time.Hour),
		Status:            status,
		BasePrice:         f.service.Price,
	}
	if status != domain.BookingPending && status != domain.BookingCancelled {
		b.ProviderID = &f.provider.ID
	}
	return b
}
