package database

import (
	"fmt"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"sahayak/internal/domain"
)

// Connect opens postgres:// and mysql:// DSNs with their drivers. Anything
// else is treated as a SQLite DSN served by the pure-Go modernc driver.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		log.Info("connecting to postgres")
		return gorm.Open(postgres.Open(dsn), cfg)

	case strings.HasPrefix(dsn, "mysql://"):
		mcfg, err := mysqldriver.ParseDSN(strings.TrimPrefix(dsn, "mysql://"))
		if err != nil {
			return nil, fmt.Errorf("database: parse mysql dsn: %w", err)
		}
		mcfg.ParseTime = true
		log.Info("connecting to mysql", zap.String("addr", mcfg.Addr), zap.String("db", mcfg.DBName))
		return gorm.Open(mysql.New(mysql.Config{DSNConfig: mcfg}), cfg)
	}

	log.Info("using sqlite", zap.String("dsn", dsn))
	return OpenSQLite(dsn, cfg)
}

// OpenSQLite pins the pool to one connection so :memory: databases survive
// and writers serialize, then turns on foreign key enforcement.
func OpenSQLite(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{
		DriverName: "sqlite",
		DSN:        dsn,
	}), cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("database: enable foreign keys: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.ServiceCategory{},
		&domain.Service{},
		&domain.ServiceProvider{},
		&domain.ServiceProviderService{},
		&domain.Booking{},
		&domain.Rating{},
		&domain.Ticket{},
		&domain.Message{},
	)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
