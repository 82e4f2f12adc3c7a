// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver errors. ErrNotFound is wrapped by the per-entity
// not found errors so callers may test for either.
package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a row addressed by id does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// Per-entity not found errors.
var (
	ErrVenueNotFound  = fmt.Errorf("venue %w", ErrNotFound)
	ErrArtistNotFound = fmt.Errorf("artist %w", ErrNotFound)
	ErrShowNotFound   = fmt.Errorf("show %w", ErrNotFound)
)

// ErrConstraint is returned when a write violates a foreign key or
// uniqueness rule, such as creating a show for a venue that does not
// exist. Handlers should translate this into an HTTP 409 response.
var ErrConstraint = errors.New("constraint violation")

// ErrConnection is returned when the store cannot be reached. Handlers
// should translate this into an HTTP 503 response.
var ErrConnection = errors.New("store unavailable")

// translate maps a gorm/driver error onto the sentinels above. notFound is
// the entity error used for gorm.ErrRecordNotFound.
func translate(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConstraint), errors.Is(err, ErrConnection):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	case isConnErr(err):
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return err
}

func isConnErr(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}
