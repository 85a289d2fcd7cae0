package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sahayak/internal/domain"
)

func TestConnectSQLiteMigrates(t *testing.T) {
	db, err := Connect(fmt.Sprintf("file:db_%s?mode=memory&cache=shared", t.Name()), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&domain.Booking{}))
	assert.True(t, db.Migrator().HasTable(&domain.Rating{}))
}

func TestOpenSQLiteEnforcesForeignKeys(t *testing.T) {
	db, err := OpenSQLite(":memory:", &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db))

	err = db.Create(&domain.Service{Name: "Deep clean", Price: 100, CategoryID: "missing"}).Error
	assert.Error(t, err)
}

func TestConnectRejectsBadMySQLDSN(t *testing.T) {
	_, err := Connect("mysql://not a dsn", zap.NewNop())
	assert.Error(t, err)
}
