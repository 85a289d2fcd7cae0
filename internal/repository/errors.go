package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"sahayak/internal/pkg/apperror"
)

var (
	ErrEmptyCategory = apperror.New(apperror.ErrInvalidArgument, "category has no services")
	ErrCategoryInUse = apperror.New(apperror.ErrConflict, "category still has services or providers")
	ErrAlreadyRated  = apperror.New(apperror.ErrConflict, "booking already reviewed")
)

// normalize maps store errors onto apperror kinds. entity names the record
// in the resulting message.
func normalize(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.New(apperror.ErrNotFound, entity+" not found")
	case IsUniqueViolation(err):
		return apperror.New(apperror.ErrConflict, entity+" already exists")
	case IsForeignKeyViolation(err):
		return apperror.New(apperror.ErrNotFound, entity+" references a missing record")
	}
	return err
}

// IsUniqueViolation recognises duplicate key errors from every supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1451 || myErr.Number == 1452
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
