package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/questx-lab/fittrack/pkg/errorx"
	"github.com/questx-lab/fittrack/pkg/xcontext"
)

// ErrVersionConflict is returned when an optimistic update lost the race
// against a concurrent writer.
var ErrVersionConflict = errors.New("version conflict")

const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// IsConflict reports whether err is a lost update or a lock conflict that may
// succeed when the whole transaction is retried.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrVersionConflict) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDeadlock || mysqlErr.Number == mysqlErrLockWaitTimeout
	}

	// The sqlite driver is only linked into tests, so match its messages.
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}

// IsUnavailable reports whether err comes from an unreachable or timed out
// backing store.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// StoreError maps an unexpected repository error. Conflicts and outages keep
// their own codes so callers can retry them.
func StoreError(ctx context.Context, err error, action string) error {
	if IsConflict(err) {
		xcontext.Logger(ctx).Debugf("Conflict when %s: %v", action, err)
		return errorx.New(errorx.ConcurrencyConflict, "Concurrent update, please retry")
	}

	if IsUnavailable(err) {
		xcontext.Logger(ctx).Warnf("Storage unavailable when %s: %v", action, err)
		return errorx.New(errorx.Unavailable, "Storage is unavailable")
	}

	xcontext.Logger(ctx).Errorf("Cannot %s: %v", action, err)
	return errorx.Unknown
}
