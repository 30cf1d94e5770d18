package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrNotFound means a required referenced entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller may not perform the operation on the
	// entity (e.g. deleting someone else's thread).
	ErrForbidden = errors.New("forbidden")
	// ErrConflict means a unique key already holds the value (e.g. username
	// taken).
	ErrConflict = errors.New("conflict")
	// ErrInvalid means the input fails validation (e.g. empty thread text).
	ErrInvalid = errors.New("invalid input")
)

func NotFound(entity, id string) error {
	return fmt.Errorf("%s %q: %w", entity, id, ErrNotFound)
}

func Conflict(detail string) error {
	return fmt.Errorf("%s: %w", detail, ErrConflict)
}

const mysqlDupEntry = 1062

// IsDupKeyErr reports whether err is a unique-key violation. Covers the mysql
// driver used in production and the generic constraint text sqlite emits in
// tests.
func IsDupKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDupEntry
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}
