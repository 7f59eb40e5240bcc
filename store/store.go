// Package store is the durable relational backing for the catalog. It owns
// the authoritative category counters: the only code path that writes
// completed_count/uncompleted_count is CategoryStore.RecomputeCounters, the
// explicit stand-in for the database triggers that maintain these columns in
// production. Every other update runs with an explicit column list that
// structurally excludes the counter columns.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	platformerrors "github.com/jmgilman/go/errors"
)

// notFound builds the NotFound error surfaced when an operation targets a
// nonexistent row. The message carries entity type and id so the calling
// layer can render it directly.
func notFound(entity string, id int64) error {
	return platformerrors.Newf(platformerrors.CodeNotFound, "%s id=%d not found", entity, id)
}

// isNoRows reports row absence, which callers translate into a NotFound that
// names the entity and id instead of the generic classification.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// wrapError classifies a database error and wraps it with operation context.
// Returns nil if err is nil.
func wrapError(err error, op string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, classifyError(err))
}

// classifyError maps database/sql failures onto the catalog error surface.
// Row absence becomes NotFound; timeouts, cancellations, and connection
// failures become Unavailable; transaction serialization failures become
// Conflict. Unknown errors pass through unchanged.
func classifyError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return platformerrors.New(platformerrors.CodeNotFound, "row not found")
	case errors.Is(err, context.DeadlineExceeded):
		return platformerrors.New(platformerrors.CodeUnavailable, "store query timed out")
	case errors.Is(err, context.Canceled):
		return platformerrors.New(platformerrors.CodeUnavailable, "store query canceled")
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone):
		return platformerrors.New(platformerrors.CodeUnavailable, "store connection lost")
	case isSerializationFailure(err):
		return platformerrors.New(platformerrors.CodeConflict, "concurrent counter recomputation conflict")
	default:
		return err
	}
}

// isSerializationFailure detects transaction isolation violations. Postgres
// reports SQLSTATE 40001; drivers differ in how they expose it, so the check
// falls back to the error text.
func isSerializationFailure(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "40001") || strings.Contains(msg, "could not serialize")
}
