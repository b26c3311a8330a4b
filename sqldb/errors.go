package sqldb

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL error code for unique constraint violations.
const pgConflictCode = "23505"

// IsConflict reports a unique constraint violation on either backend.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgConflictCode
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// primary result code only; fall back to the message
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}

	return false
}

// IsNotFound checks if the error indicates that no rows were found.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ConstraintName returns the violated constraint of a PostgreSQL error, if any.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// ErrorDetails describes a failed query for errx details.
func ErrorDetails(err error, query fmt.Stringer) errx.D {
	details := make(errx.D)
	if queryStr := safeQueryString(query); queryStr != "" {
		details["query"] = strings.ReplaceAll(queryStr, `"`, ``)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		details["pg.code"] = pgErr.Code
		details["pg.message"] = pgErr.Message
		details["pg.detail"] = pgErr.Detail
		details["pg.table"] = pgErr.TableName
		details["pg.constraint"] = pgErr.ConstraintName
		return details
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		details["sqlite.code"] = liteErr.Code()
		details["sqlite.message"] = liteErr.Error()
	}

	return details
}

// safeQueryString renders query, swallowing panics some bun queries raise
// when String is called on an incomplete model.
func safeQueryString(query fmt.Stringer) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()

	if query == nil {
		return ""
	}

	return query.String()
}
